package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FromFile loads an action file, choosing the format by extension:
// .yaml, .yml and .json are structured documents, .toml is TOML, and
// anything else is the line-oriented .qs.cfg format.
func FromFile(fsys afero.Fs, path string) (*ActionFile, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, &LineError{Path: path, Message: "Failed to read config file. Aborting"}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FromYAML(path, data)
	case ".json":
		// JSON is a subset of YAML; the YAML decoder keeps key order.
		return FromYAML(path, data)
	case ".toml":
		return FromTOML(path, data)
	default:
		return ParseCfg(path, data)
	}
}

// FromYAML parses a structured action file:
//
//	vars:
//	  engine: google
//	actions:
//	  search: xdg-open https://www.${engine}.com/${0?}?q=${0}${end}
//
// Declaration order is preserved.
func FromYAML(path string, data []byte) (*ActionFile, error) {
	var doc struct {
		Vars    yaml.Node `yaml:"vars"`
		Actions yaml.Node `yaml:"actions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LineError{Path: path, Message: fmt.Sprintf("parse yaml: %v", err)}
	}

	f := newActionFile(path)
	err := eachScalarPair(&doc.Vars, func(key, value string, line int) error {
		f.Vars.Set(key, value)
		return nil
	})
	if err != nil {
		return nil, &LineError{Path: path, Line: doc.Vars.Line, Message: "vars: " + err.Error()}
	}

	err = eachScalarPair(&doc.Actions, func(key, value string, line int) error {
		if value == "" {
			return fmt.Errorf("action %s has no template", key)
		}
		f.addAction(Action{Name: key, Template: value, Line: line})
		return nil
	})
	if err != nil {
		return nil, &LineError{Path: path, Line: doc.Actions.Line, Message: "actions: " + err.Error()}
	}
	return f, nil
}

// eachScalarPair walks a mapping node of scalar keys and values in order.
// A zero node (section absent) is skipped.
func eachScalarPair(n *yaml.Node, fn func(key, value string, line int) error) error {
	if n.Kind == 0 {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("expected a mapping")
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("value of %s must be a string", k.Value)
		}
		if err := fn(k.Value, v.Value, k.Line); err != nil {
			return err
		}
	}
	return nil
}

// FromTOML parses a TOML action file with [vars] and [actions] tables.
// Declaration order is taken from the document's key order.
func FromTOML(path string, data []byte) (*ActionFile, error) {
	var doc struct {
		Vars    map[string]string `toml:"vars"`
		Actions map[string]string `toml:"actions"`
	}
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, &LineError{Path: path, Message: fmt.Sprintf("parse toml: %v", err)}
	}

	f := newActionFile(path)
	for _, key := range md.Keys() {
		if len(key) != 2 {
			continue
		}
		switch key[0] {
		case "vars":
			f.Vars.Set(key[1], doc.Vars[key[1]])
		case "actions":
			tmpl := doc.Actions[key[1]]
			if tmpl == "" {
				return nil, &LineError{Path: path, Message: fmt.Sprintf("actions: action %s has no template", key[1])}
			}
			f.addAction(Action{Name: key[1], Template: tmpl})
		}
	}
	return f, nil
}
