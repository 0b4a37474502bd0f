package core

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports every field that violated a constraint, keyed by
// field name with a human-readable reason. It is raised before any storage
// call is made.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// StoreError wraps a read or write rejected by the active backend.
type StoreError struct {
	Op  string // "create", "update", "delete", "get"
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
