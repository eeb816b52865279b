package config

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// File is a configuration document: one optional section per module.
//
//	alert_lioli:
//	  logger: lioli_file
//	network_mapping:
//	  cache_size: 16
//	  log_file: /var/log/flow.txt
//	  size_rotate: true
type File struct {
	Alert   AlertOptions   `json:"alert_lioli"`
	Mapping MappingOptions `json:"network_mapping"`
}

// Default returns a File with every module at its defaults.
func Default() File {
	return File{Mapping: DefaultMappingOptions()}
}

// LoadYAML reads a configuration document from r. Every option goes
// through the module's Set; the first rejected option aborts the load. An
// empty document yields Default().
func LoadYAML(r io.Reader) (File, error) {
	f := Default()

	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return f, nil
		}
		return f, fmt.Errorf("config: parse: %w", err)
	}
	if len(doc.Content) == 0 {
		return f, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return f, fmt.Errorf("config: line %d: document must be a mapping of module sections", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		module, section := root.Content[i].Value, root.Content[i+1]

		var set func(name, value string) error
		switch module {
		case AlertModule:
			set = f.Alert.Set
		case MappingModule:
			set = f.Mapping.Set
		default:
			return f, &Error{Kind: KindUnknownOption, Module: module}
		}

		if err := applySection(module, section, set); err != nil {
			return f, err
		}
	}
	return f, nil
}

func applySection(module string, section *yaml.Node, set func(name, value string) error) error {
	switch section.Kind {
	case yaml.MappingNode:
	case yaml.ScalarNode:
		// "network_mapping:" with nothing below it.
		if section.ShortTag() == "!!null" {
			return nil
		}
		fallthrough
	default:
		return fmt.Errorf("config: line %d: section %q must be a mapping", section.Line, module)
	}

	for i := 0; i+1 < len(section.Content); i += 2 {
		key, val := section.Content[i], section.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return &Error{Kind: KindInvalidValue, Module: module, Option: key.Value,
				Err: fmt.Errorf("line %d: expected a scalar", val.Line)}
		}
		if err := set(key.Value, val.Value); err != nil {
			return err
		}
	}
	return nil
}
