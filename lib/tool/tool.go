// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

// Package tool defines the tool model the MCP server exposes: a named
// operation with a reflected input schema, a typed handler, and
// categorized errors. The GitHub-backed tools live in lib/githubtool;
// this package is protocol- and domain-agnostic.
package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
)

// Annotations carry MCP tool behavior hints. They are advisory:
// clients may use them for display or confirmation prompts, but they
// are not access control.
type Annotations struct {
	// ReadOnly marks tools that never mutate repository state.
	ReadOnly bool `json:"readOnlyHint,omitempty"`

	// Destructive marks tools that can delete or overwrite data
	// (branch deletion, force ref updates, file deletion).
	Destructive bool `json:"destructiveHint,omitempty"`

	// Idempotent marks tools where repeating a call with the same
	// arguments has no additional effect.
	Idempotent bool `json:"idempotentHint,omitempty"`
}

// Tool is a single callable operation. Params is a freshly allocated
// parameter struct for each call; Run receives the decoded value.
type Tool struct {
	// Name is the tool's wire name, e.g. "github_issues_create".
	Name string

	// Title is a short human-readable label.
	Title string

	// Description tells the calling agent what the tool does and when
	// to use it.
	Description string

	// Annotations are behavior hints surfaced in tools/list.
	Annotations Annotations

	// NewParams allocates the parameter struct the arguments decode
	// into. Must return a pointer to a struct with json/desc/required
	// tags.
	NewParams func() any

	// Output is a zero value of the result type, used to derive the
	// output schema. Nil means the tool has no structured output
	// schema.
	Output any

	// Run executes the tool. params is the value NewParams returned,
	// populated from the call arguments. The result is serialized as
	// the structured content of the call.
	Run func(ctx context.Context, params any) (any, error)
}

// InputSchema derives the JSON Schema for the tool's parameters.
func (t *Tool) InputSchema() (*Schema, error) {
	return ParamsSchema(t.NewParams())
}

// OutputSchemaJSON derives the JSON Schema for the tool's result type,
// or nil when the tool declares none.
func (t *Tool) OutputSchemaJSON() (*Schema, error) {
	if t.Output == nil {
		return nil, nil
	}
	return OutputSchema(t.Output)
}

// DecodeParams decodes raw JSON arguments into a fresh parameter
// struct, rejecting unknown fields so misspelled argument names fail
// loudly instead of being silently dropped.
func (t *Tool) DecodeParams(arguments json.RawMessage) (any, error) {
	params := t.NewParams()
	if len(arguments) == 0 {
		arguments = json.RawMessage("{}")
	}

	// Defaults go in first so the advertised schema and the runtime
	// behavior agree; the JSON overlay then wins for any field the
	// caller set, explicit zeros included.
	if value := reflect.ValueOf(params).Elem(); value.Kind() == reflect.Struct {
		if err := applyDefaults(value); err != nil {
			return nil, err
		}
	}

	decoder := json.NewDecoder(bytes.NewReader(arguments))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(params); err != nil {
		return nil, Validation("decoding arguments for %s: %v", t.Name, err)
	}

	if err := checkRequired(params); err != nil {
		return nil, err
	}
	return params, nil
}

// applyDefaults sets default-tagged fields on a freshly constructed
// params struct, recursing through embedded structs.
func applyDefaults(value reflect.Value) error {
	structType := value.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := applyDefaults(value.Field(i)); err != nil {
				return err
			}
			continue
		}
		defaultString := field.Tag.Get("default")
		if defaultString == "" {
			continue
		}
		parsed, err := parseDefault(field.Type, defaultString)
		if err != nil {
			return Internal("default for %s: %v", field.Name, err)
		}
		value.Field(i).Set(reflect.ValueOf(parsed).Convert(field.Type))
	}
	return nil
}

// checkRequired verifies that every required-tagged field is set to a
// non-zero value. JSON decoding cannot distinguish a missing field
// from an explicit zero, so required fields must be non-zero.
func checkRequired(params any) error {
	value := reflect.ValueOf(params)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	return checkRequiredValue(value)
}

// checkRequiredValue walks a struct value directly. Embedded structs
// recurse on the field value itself; going through Interface() would
// panic on unexported embedded types.
func checkRequiredValue(value reflect.Value) error {
	structType := value.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := checkRequiredValue(value.Field(i)); err != nil {
				return err
			}
			continue
		}
		if field.Tag.Get("required") != "true" {
			continue
		}
		if value.Field(i).IsZero() {
			name := jsonPropertyName(field)
			if name == "" {
				name = field.Name
			}
			return Validation("missing required parameter %q", name)
		}
	}
	return nil
}

// Registry holds the tool catalog. Registration happens at startup;
// lookups after that are read-only, so no locking is needed.
type Registry struct {
	tools map[string]*Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// Register adds a tool. Panics on a duplicate or unnamed tool: both
// are programming errors in the catalog, not runtime conditions.
func (r *Registry) Register(t *Tool) {
	if t.Name == "" {
		panic("tool: registering tool with empty name")
	}
	if t.NewParams == nil || t.Run == nil {
		panic(fmt.Sprintf("tool: %s registered without params or run function", t.Name))
	}
	if _, exists := r.tools[t.Name]; exists {
		panic(fmt.Sprintf("tool: duplicate registration of %s", t.Name))
	}
	r.tools[t.Name] = t
}

// Get returns the named tool, or nil when unknown.
func (r *Registry) Get(name string) *Tool {
	return r.tools[name]
}

// Names returns all registered tool names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tools returns all registered tools in name order.
func (r *Registry) Tools() []*Tool {
	names := r.Names()
	tools := make([]*Tool, 0, len(names))
	for _, name := range names {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.tools) }
