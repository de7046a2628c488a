// Package category holds the fixed set of document categories.
package category

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// Key identifies a category.
type Key string

const (
	Report   Key = "REPORT"
	Tech     Key = "TECH"
	Spec     Key = "SPEC"
	Manual   Key = "MANUAL"
	Proposal Key = "PROPOSAL"
	Meeting  Key = "MEETING"
	Other    Key = "OTHER"
)

// All is the wildcard accepted by category filters.
const All = "all"

// Category describes how a category is numbered and displayed.
type Category struct {
	Key    Key    `yaml:"key" json:"key"`
	Prefix string `yaml:"prefix" json:"prefix"`
	Name   string `yaml:"name" json:"name"`
	Color  string `yaml:"color" json:"color"`
}

// Stat is a category together with the number of documents filed under it.
type Stat struct {
	Category
	Count int `json:"count"`
}

//go:embed categories.yaml
var categoriesFile []byte

var keys = []Key{Report, Tech, Spec, Manual, Proposal, Meeting, Other}

// Registry is an immutable, ordered category table.
type Registry struct {
	ordered []Category
	byKey   map[Key]Category
}

type registryFile struct {
	Categories []Category `yaml:"categories"`
}

// Parse builds a registry from YAML. Every known key must be present exactly once with a prefix.
func Parse(data []byte) (*Registry, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal categories: %w", err)
	}

	r := &Registry{byKey: make(map[Key]Category, len(f.Categories))}
	for _, c := range f.Categories {
		if !known(c.Key) {
			return nil, fmt.Errorf("unknown category %q", c.Key)
		}
		if c.Prefix == "" {
			return nil, fmt.Errorf("category %s has no prefix", c.Key)
		}
		if _, dup := r.byKey[c.Key]; dup {
			return nil, fmt.Errorf("category %s defined twice", c.Key)
		}
		r.byKey[c.Key] = c
		r.ordered = append(r.ordered, c)
	}
	for _, k := range keys {
		if _, ok := r.byKey[k]; !ok {
			return nil, fmt.Errorf("category %s missing", k)
		}
	}
	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry loaded from the embedded categories file.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := Parse(categoriesFile)
		if err != nil {
			panic(fmt.Sprintf("embedded categories: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Get returns the category for k.
func (r *Registry) Get(k Key) (Category, bool) {
	c, ok := r.byKey[k]
	return c, ok
}

// Valid reports whether k names a registered category.
func (r *Registry) Valid(k Key) bool {
	_, ok := r.byKey[k]
	return ok
}

// List returns the categories in display order.
func (r *Registry) List() []Category {
	out := make([]Category, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Prefix returns the document-number prefix for k. Unknown keys fall back to OTHER's prefix.
func (r *Registry) Prefix(k Key) string {
	if c, ok := r.byKey[k]; ok {
		return c.Prefix
	}
	return r.byKey[Other].Prefix
}

func known(k Key) bool {
	for _, v := range keys {
		if v == k {
			return true
		}
	}
	return false
}
