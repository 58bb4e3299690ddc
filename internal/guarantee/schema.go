package guarantee

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache memoizes compiled JSON schemas keyed by guarantee ID
// (spec.md §4.9 "a schema compiler cache is keyed by guarantee id and
// invalidated on update").
type schemaCache struct {
	mu   sync.Mutex
	byID map[string]*jsonschema.Schema
}

func newSchemaCache() *schemaCache {
	return &schemaCache{byID: make(map[string]*jsonschema.Schema)}
}

func (c *schemaCache) invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byID, id)
}

// get returns the compiled schema for id, compiling and caching raw on
// first use.
func (c *schemaCache) get(id string, raw []byte) (*jsonschema.Schema, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.byID[id]; ok {
		return s, nil
	}

	compiler := jsonschema.NewCompiler()
	resourceURL := "mem://guarantee/" + id
	res, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("guarantee: decode schema for %s: %w", id, err)
	}
	if err := compiler.AddResource(resourceURL, res); err != nil {
		return nil, fmt.Errorf("guarantee: register schema for %s: %w", id, err)
	}
	schema, err := compiler.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("guarantee: compile schema for %s: %w", id, err)
	}

	c.byID[id] = schema
	return schema, nil
}
