package inspect

import (
	"fmt"

	"github.com/joshuapare/lioli/config"
	"github.com/joshuapare/lioli/flowcache"
	"github.com/joshuapare/lioli/internal/logger"
	"github.com/joshuapare/lioli/sink"
)

// MapperStats are the network mapper's counters.
type MapperStats struct {
	Log   sink.Stats      `json:"log"`
	Cache flowcache.Stats `json:"cache"`
}

// NetworkMapper logs who talks to whom. Every IP packet is written as
// "src:sp -> dst:dp" and remembered in the pairing cache; every flow
// service change is written as "client:cp -> server:sp - service" and
// matched against the cache.
type NetworkMapper struct {
	file  *sink.RotatingFile
	cache *flowcache.Cache
}

// NewNetworkMapper opens nothing yet: the log file is created on the first
// line. Records are cut into files of rotate.MaxLines lines when
// opts.SizeRotate is set; the other rotate fields are passed through.
func NewNetworkMapper(opts config.MappingOptions, rotate sink.RotatingOptions) (*NetworkMapper, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("network mapper: %w", err)
	}

	rotate.Rotate = opts.SizeRotate
	file := sink.NewRotatingFile(rotate)
	file.SetFileName(opts.LogFile)

	m := &NetworkMapper{file: file}
	m.cache = flowcache.New(opts.CacheSize, m.orphan)
	return m, nil
}

// Eval logs p when it carries IP and caches its tuple.
func (m *NetworkMapper) Eval(p Packet) {
	if p == nil || !p.HasIP() {
		return
	}
	src, dst := p.Src(), p.Dst()
	t := flowcache.Tuple{
		SrcIP: src.Addr(), SrcPort: src.Port(),
		DstIP: dst.Addr(), DstPort: dst.Port(),
	}
	m.file.LogLine(t.String())
	m.cache.Add(t)
}

// ServiceChange logs a flow whose service was identified.
func (m *NetworkMapper) ServiceChange(f Flow) {
	if f == nil {
		return
	}
	client, server := f.Client(), f.Server()
	t := flowcache.Tuple{
		SrcIP: client.Addr(), SrcPort: client.Port(),
		DstIP: server.Addr(), DstPort: server.Port(),
	}
	m.file.LogLine(t.String() + " - " + f.Service())
	m.cache.Match(t)
}

func (m *NetworkMapper) orphan(t flowcache.Tuple) {
	logger.Debug("flow without service", "flow", t.String())
}

// Close orphans the cached tuples and closes the log.
func (m *NetworkMapper) Close() error {
	m.cache.Flush()
	return m.file.Close()
}

// Stats returns the log and cache counters.
func (m *NetworkMapper) Stats() MapperStats {
	return MapperStats{Log: m.file.Stats(), Cache: m.cache.Stats()}
}

// Paths returns the log files written so far.
func (m *NetworkMapper) Paths() []string { return m.file.Paths() }
