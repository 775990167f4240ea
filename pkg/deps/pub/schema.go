package pub

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/*.schema.json
var schemaFS embed.FS

const (
	treeSchema    = "tree.schema.json"
	catalogSchema = "catalog.schema.json"
)

var schemas = map[string]func() (*jsonschema.Schema, error){
	treeSchema:    sync.OnceValues(func() (*jsonschema.Schema, error) { return compileSchema(treeSchema) }),
	catalogSchema: sync.OnceValues(func() (*jsonschema.Schema, error) { return compileSchema(catalogSchema) }),
}

func compileSchema(name string) (*jsonschema.Schema, error) {
	data, err := schemaFS.ReadFile("schema/" + name)
	if err != nil {
		return nil, err
	}
	comp := jsonschema.NewCompiler()
	if err := comp.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("loading schema %q: %w", name, err)
	}
	s, err := comp.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compiling schema %q: %w", name, err)
	}
	return s, nil
}

// validate checks the JSON document in data against the named embedded schema.
func validate(name string, data []byte) error {
	load, ok := schemas[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}
	s, err := load()
	if err != nil {
		return err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("schema validation against %q failed: %w", name, err)
	}
	return nil
}
