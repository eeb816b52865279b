package sink

import (
	"bufio"
	"errors"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joshuapare/lioli/internal/logger"
)

const (
	// DefaultMaxLines is the per-file record cap when rotation is enabled.
	DefaultMaxLines = 1_000_000

	// DefaultFlushEvery is the number of records between flushes.
	DefaultFlushEvery = 100
)

var (
	// ErrNoFileName indicates a write before SetFileName.
	ErrNoFileName = errors.New("sink: log file name not set")

	// ErrFileNameSet indicates SetFileName called a second time or after
	// the first write.
	ErrFileNameSet = errors.New("sink: log file name already set")
)

// State is the lifecycle state of a RotatingFile.
type State int

const (
	// StateInitial: no file open; the next record opens one.
	StateInitial State = iota
	// StateOpen: a file is open and records go through.
	StateOpen
	// StateFull: the current file reached its cap; the next record closes
	// it and opens a new one.
	StateFull
	// StateAborted: an open failed; records are dropped from now on.
	StateAborted
	// StateClosed: Close was called; records are dropped.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateOpen:
		return "open"
	case StateFull:
		return "full"
	case StateAborted:
		return "aborted"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// RotatingOptions controls a RotatingFile.
type RotatingOptions struct {
	// Rotate enables count-based rollover and timestamped file names. When
	// false the sink appends to the base name forever.
	Rotate bool

	// MaxLines is the number of records per file. Default: DefaultMaxLines.
	MaxLines int

	// FlushEvery is the number of records between flushes within a file.
	// Default: DefaultFlushEvery.
	FlushEvery int

	// Sync additionally asks the OS to write flushed data to stable storage.
	Sync bool

	// Binary writes records back to back without a trailing newline.
	Binary bool

	// Header is written at the start of every file opened; Trailer before
	// every file is closed.
	Header  []byte
	Trailer []byte

	// Clock supplies the time used in rollover file names. Default: time.Now.
	Clock func() time.Time
}

// RotatingFile is an append-only record sink with line-counted rollover.
type RotatingFile struct {
	mu   sync.Mutex
	opts RotatingOptions

	base  string
	state State
	f     *os.File
	w     *bufio.Writer

	path       string   // current file
	lastStamp  int64    // suffix of the last rollover name
	paths      []string // every file opened, in order
	inFile     int      // records in the current file
	sinceFlush int

	stats counters
}

// NewRotatingFile returns a sink in the initial state. SetFileName must be
// called before the first record.
func NewRotatingFile(opts RotatingOptions) *RotatingFile {
	if opts.MaxLines <= 0 {
		opts.MaxLines = DefaultMaxLines
	}
	if opts.FlushEvery <= 0 {
		opts.FlushEvery = DefaultFlushEvery
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &RotatingFile{opts: opts}
}

// SetFileName sets the base file name. It may be called once, before any
// record is written; anything else is a programming error and panics.
func (r *RotatingFile) SetFileName(base string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.base != "" || r.state != StateInitial {
		panic(ErrFileNameSet)
	}
	if base == "" {
		panic(ErrNoFileName)
	}
	r.base = base
}

// LogLine writes line followed by a newline (unless the sink is binary).
func (r *RotatingFile) LogLine(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready() {
		return
	}
	_, err := r.w.WriteString(line)
	r.commit(err)
}

// LogRecord writes rec as one record.
func (r *RotatingFile) LogRecord(rec []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready() {
		return
	}
	_, err := r.w.Write(rec)
	r.commit(err)
}

// ready drives the state machine up to StateOpen and reports whether the
// record can be written.
func (r *RotatingFile) ready() bool {
	switch r.state {
	case StateAborted, StateClosed:
		return false
	case StateFull:
		r.closeFile()
		r.state = StateInitial
	}
	if r.state == StateInitial {
		return r.open()
	}
	return true
}

func (r *RotatingFile) open() bool {
	if r.base == "" {
		panic(ErrNoFileName)
	}

	name := r.base
	if r.opts.Rotate {
		// Rollovers within one millisecond take the next free value so
		// every file name is distinct.
		r.lastStamp = max(r.opts.Clock().UnixMilli(), r.lastStamp+1)
		name += strconv.FormatInt(r.lastStamp, 10)
	}

	// O_APPEND keeps records other writers add between ours.
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		logger.Error("log file open failed, dropping further records", "file", name, "error", err)
		r.state = StateAborted
		return false
	}

	r.f = f
	r.w = bufio.NewWriter(f)
	r.path = name
	r.paths = append(r.paths, name)
	r.state = StateOpen
	r.inFile = 0
	r.sinceFlush = 0
	r.stats.files.Add(1)
	if len(r.opts.Header) > 0 {
		r.w.Write(r.opts.Header)
	}
	logger.Debug("log file opened", "file", name)
	return true
}

// commit finishes the record just written to r.w. A failed write marks the
// file full so the next record starts a fresh one.
func (r *RotatingFile) commit(err error) {
	if err == nil && !r.opts.Binary {
		err = r.w.WriteByte('\n')
	}
	r.stats.lines.Add(1)
	r.inFile++
	r.sinceFlush++

	switch {
	case err != nil:
		logger.Warn("log file write failed", "file", r.path, "error", err)
		r.state = StateFull
	case r.opts.Rotate && r.inFile >= r.opts.MaxLines:
		r.flush()
		r.state = StateFull
	case r.sinceFlush >= r.opts.FlushEvery:
		r.flush()
	}
}

func (r *RotatingFile) flush() {
	r.sinceFlush = 0
	if err := r.w.Flush(); err != nil {
		logger.Warn("log file flush failed", "file", r.path, "error", err)
		return
	}
	if r.opts.Sync {
		if err := fdatasync(r.f); err != nil {
			logger.Warn("log file sync failed", "file", r.path, "error", err)
		}
	}
}

func (r *RotatingFile) closeFile() {
	if r.f == nil {
		return
	}
	if len(r.opts.Trailer) > 0 {
		r.w.Write(r.opts.Trailer)
	}
	r.flush()
	if err := r.f.Close(); err != nil {
		logger.Warn("log file close failed", "file", r.path, "error", err)
	}
	r.f = nil
	r.w = nil
}

// Close flushes and closes the current file. Later records are dropped.
func (r *RotatingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closeFile()
	r.state = StateClosed
	return nil
}

// State returns the current lifecycle state.
func (r *RotatingFile) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Path returns the file currently (or most recently) written.
func (r *RotatingFile) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path
}

// Paths returns every file opened so far, oldest first.
func (r *RotatingFile) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

// Stats returns the sink's counters.
func (r *RotatingFile) Stats() Stats {
	return r.stats.snapshot()
}
