package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/RAraghavarora/lisdf/schema"
	"github.com/RAraghavarora/lisdf/vocabulary"
)

// LoadDeclarations reads a JSON declarations file into a schema
// declaration list. The file carries the same structure as
// schema.Declarations:
//
//	{
//	  "types": [
//	    {"name": "lab::gripper", "category": "object", "parent": "qr::body"},
//	    {"name": "lab::grip-width", "category": "value"}
//	  ],
//	  "predicates": [
//	    {"name": "lab::grip", "parameters": [
//	      {"role": "gripper", "type": "lab::gripper"},
//	      {"role": "width", "type": "lab::grip-width"}
//	    ]}
//	  ]
//	}
func LoadDeclarations(path string) (schema.Declarations, error) {
	var decls schema.Declarations

	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied declarations path
	if err != nil {
		return decls, fmt.Errorf("failed to read declarations %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &decls); err != nil {
		return decls, fmt.Errorf("failed to parse declarations %s: %w", path, err)
	}

	return decls, nil
}

// BuildSchema loads the frozen schema for this deployment: the built-in
// vocabulary plus, when configured, the declarations file layered on top.
// Declared types must precede their subtypes in the file, matching the
// load order guarantee of schema.Load.
func (c *Config) BuildSchema() (*schema.Schema, error) {
	if c.Schema.DeclarationsFile == "" {
		return vocabulary.Builtin()
	}

	extra, err := LoadDeclarations(c.Schema.DeclarationsFile)
	if err != nil {
		return nil, err
	}

	return schema.Load(vocabulary.Declarations().Merge(extra))
}
