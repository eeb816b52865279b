// Package config holds the option sets of the alert and network-mapping
// modules and loads them from YAML.
//
// Options are applied by name through Set, the same path LoadYAML uses, so
// a value is validated identically wherever it comes from.
package config

import (
	"math"
	"strconv"

	"github.com/joshuapare/lioli/internal/logger"
)

// Module names as they appear in configuration documents.
const (
	AlertModule   = "alert_lioli"
	MappingModule = "network_mapping"
)

// DefaultLogFile is the network-mapping log base name.
const DefaultLogFile = "flow.txt"

// AlertOptions configures the alert logger.
type AlertOptions struct {
	// Logger names the registered tree sink alerts go to.
	Logger string `yaml:"logger" json:"logger"`
}

// Set applies one option by name.
func (o *AlertOptions) Set(name, value string) error {
	switch name {
	case "logger":
		if value == "" {
			return reject(&Error{Kind: KindEmptyValue, Module: AlertModule, Option: name})
		}
		o.Logger = value
		return nil
	default:
		return reject(&Error{Kind: KindUnknownOption, Module: AlertModule, Option: name, Value: value})
	}
}

// Validate reports whether the options are usable. An alert logger without
// a sink name discards everything.
func (o AlertOptions) Validate() error {
	if o.Logger == "" {
		return &Error{Kind: KindEmptyValue, Module: AlertModule, Option: "logger"}
	}
	return nil
}

// MappingOptions configures the network-mapping inspector.
type MappingOptions struct {
	// CacheSize bounds the pairing cache. 0 selects the minimum of one entry.
	CacheSize int `yaml:"cache_size" json:"cache_size"`

	// LogFile is the base name of the flow log.
	LogFile string `yaml:"log_file" json:"log_file"`

	// SizeRotate rolls the flow log over by line count and timestamps each
	// file name.
	SizeRotate bool `yaml:"size_rotate" json:"size_rotate"`
}

// DefaultMappingOptions returns the network-mapping defaults.
func DefaultMappingOptions() MappingOptions {
	return MappingOptions{LogFile: DefaultLogFile}
}

// Set applies one option by name.
func (o *MappingOptions) Set(name, value string) error {
	switch name {
	case "cache_size":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return reject(&Error{Kind: KindInvalidValue, Module: MappingModule, Option: name, Value: value, Err: err})
		}
		if n < 0 || n > math.MaxInt32 {
			return reject(&Error{Kind: KindInvalidValue, Module: MappingModule, Option: name, Value: value})
		}
		o.CacheSize = int(n)
	case "log_file":
		if value == "" {
			return reject(&Error{Kind: KindEmptyValue, Module: MappingModule, Option: name})
		}
		o.LogFile = value
	case "size_rotate":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return reject(&Error{Kind: KindInvalidValue, Module: MappingModule, Option: name, Value: value, Err: err})
		}
		o.SizeRotate = b
	default:
		return reject(&Error{Kind: KindUnknownOption, Module: MappingModule, Option: name, Value: value})
	}
	return nil
}

// Validate reports whether the options are usable.
func (o MappingOptions) Validate() error {
	if o.LogFile == "" {
		return &Error{Kind: KindEmptyValue, Module: MappingModule, Option: "log_file"}
	}
	if o.CacheSize < 0 || o.CacheSize > math.MaxInt32 {
		return &Error{Kind: KindInvalidValue, Module: MappingModule, Option: "cache_size", Value: strconv.Itoa(o.CacheSize)}
	}
	return nil
}

func reject(e *Error) error {
	logger.Warn("option rejected", "module", e.Module, "option", e.Option, "reason", e.Kind.String())
	return e
}
