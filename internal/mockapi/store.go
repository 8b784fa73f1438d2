package mockapi

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

type record = map[string]any

// resourceDef describes one in-memory collection.
type resourceDef struct {
	defaults   record
	afterWrite func(record)
	name       string
	path       string
	key        string
	required   []string
	enveloped  bool
}

type collection struct {
	def    resourceDef
	records []record
}

type store struct {
	collections map[string]*collection
	mu          sync.Mutex
	nextID      int
}

func newStore(defs []resourceDef) *store {
	s := &store{collections: make(map[string]*collection, len(defs)), nextID: 1}
	for _, def := range defs {
		if def.key == "" {
			def.key = "id"
		}
		s.collections[def.name] = &collection{def: def}
	}
	return s
}

func (s *store) collection(name string) (*collection, error) {
	c, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("unknown resource %q", name)
	}
	return c, nil
}

func (s *store) list(name string) []record {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collections[name]
	out := make([]record, len(c.records))
	for i, r := range c.records {
		out[i] = clone(r)
	}
	return out
}

func (s *store) count(names ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, name := range names {
		if c, ok := s.collections[name]; ok {
			total += len(c.records)
		}
	}
	return total
}

func (s *store) create(name string, in record, createdAt string) (record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collections[name]
	if missing := missingFields(in, c.def.required); len(missing) > 0 {
		return nil, fmt.Errorf("%s is required", strings.Join(missing, ", "))
	}

	r := clone(c.def.defaults)
	for k, v := range in {
		r[k] = v
	}
	r["id"] = s.nextID
	s.nextID++
	if _, ok := r["created_at"]; !ok && createdAt != "" {
		r["created_at"] = createdAt
	}
	if c.def.afterWrite != nil {
		c.def.afterWrite(r)
	}
	c.records = append(c.records, r)
	return clone(r), nil
}

func (s *store) find(name, key string) (record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collections[name]
	if i := c.index(key); i >= 0 {
		return clone(c.records[i]), true
	}
	return nil, false
}

func (s *store) update(name, key string, patch record) (record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collections[name]
	i := c.index(key)
	if i < 0 {
		return nil, false
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		c.records[i][k] = v
	}
	if c.def.afterWrite != nil {
		c.def.afterWrite(c.records[i])
	}
	return clone(c.records[i]), true
}

func (s *store) remove(name, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collections[name]
	i := c.index(key)
	if i < 0 {
		return false
	}
	c.records = append(c.records[:i], c.records[i+1:]...)
	return true
}

func (c *collection) index(key string) int {
	for i, r := range c.records {
		if keyString(r[c.def.key]) == key {
			return i
		}
	}
	return -1
}

func missingFields(r record, required []string) []string {
	var missing []string
	for _, field := range required {
		v, ok := r[field]
		if !ok || v == nil {
			missing = append(missing, field)
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

func keyString(v any) string {
	switch typed := v.(type) {
	case string:
		return typed
	case int:
		return strconv.Itoa(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case json.Number:
		return typed.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(typed)
	}
}

func toFloat(v any) float64 {
	switch typed := v.(type) {
	case float64:
		return typed
	case int:
		return float64(typed)
	case string:
		f, _ := strconv.ParseFloat(typed, 64)
		return f
	}
	return 0
}

func clone(r record) record {
	out := make(record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// toRecord converts a typed value into the generic stored shape.
func toRecord(v any) (record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return r, nil
}

func sortedKeys(r record) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
