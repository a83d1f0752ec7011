// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"encoding/json"
	"testing"
	"time"
)

type sampleParams struct {
	Owner    string   `json:"owner" desc:"repository owner" required:"true"`
	Repo     string   `json:"repo" desc:"repository name" required:"true"`
	State    string   `json:"state" desc:"issue state filter" default:"open"`
	PerPage  int      `json:"per_page" desc:"results per page" default:"30"`
	Labels   []string `json:"labels" desc:"label filter"`
	DryRun   bool     `json:"dry_run"`
	Skipped  string   `json:"-"`
	NoTag    string
}

func TestParamsSchema(t *testing.T) {
	schema, err := ParamsSchema(&sampleParams{})
	if err != nil {
		t.Fatalf("ParamsSchema: %v", err)
	}

	if schema.Type != "object" {
		t.Errorf("Type = %q, want object", schema.Type)
	}
	if len(schema.Properties) != 6 {
		t.Errorf("expected 6 properties, got %d: %v", len(schema.Properties), schema.Properties)
	}

	owner := schema.Properties["owner"]
	if owner == nil || owner.Type != "string" || owner.Description != "repository owner" {
		t.Errorf("unexpected owner schema: %+v", owner)
	}

	// Defaults parse to their JSON type.
	if got := schema.Properties["per_page"].Default; got != 30 {
		t.Errorf("per_page default = %v (%T), want 30", got, got)
	}
	if got := schema.Properties["state"].Default; got != "open" {
		t.Errorf("state default = %v, want open", got)
	}

	if labels := schema.Properties["labels"]; labels.Type != "array" || labels.Items.Type != "string" {
		t.Errorf("unexpected labels schema: %+v", labels)
	}

	if len(schema.Required) != 2 {
		t.Errorf("Required = %v, want [owner repo]", schema.Required)
	}

	// Untagged and excluded fields are absent.
	if _, present := schema.Properties["Skipped"]; present {
		t.Error("json:\"-\" field included")
	}
	if _, present := schema.Properties["NoTag"]; present {
		t.Error("untagged field included")
	}
}

func TestParamsSchema_Embedded(t *testing.T) {
	type base struct {
		Owner string `json:"owner" required:"true"`
	}
	type derived struct {
		base
		Branch string `json:"branch"`
	}

	schema, err := ParamsSchema(&derived{})
	if err != nil {
		t.Fatalf("ParamsSchema: %v", err)
	}
	if _, present := schema.Properties["owner"]; !present {
		t.Error("embedded property missing")
	}
	if _, present := schema.Properties["branch"]; !present {
		t.Error("outer property missing")
	}
	if len(schema.Required) != 1 || schema.Required[0] != "owner" {
		t.Errorf("Required = %v, want [owner]", schema.Required)
	}
}

func TestParamsSchema_NonStruct(t *testing.T) {
	if _, err := ParamsSchema("not a struct"); err == nil {
		t.Error("expected error for non-struct params")
	}
}

func TestOutputSchema(t *testing.T) {
	type result struct {
		Number    int       `json:"number"`
		CreatedAt time.Time `json:"created_at"`
		Raw       []byte    `json:"raw"`
	}

	schema, err := OutputSchema(&[]result{})
	if err != nil {
		t.Fatalf("OutputSchema: %v", err)
	}
	if schema.Type != "array" {
		t.Fatalf("Type = %q, want array", schema.Type)
	}
	items := schema.Items
	if items.Properties["created_at"].Format != "date-time" {
		t.Errorf("created_at format = %q, want date-time", items.Properties["created_at"].Format)
	}
	if items.Properties["raw"].Format != "byte" {
		t.Errorf("raw format = %q, want byte", items.Properties["raw"].Format)
	}
}

func TestOutputSchema_Map(t *testing.T) {
	schema, err := OutputSchema(map[string]int{})
	if err != nil {
		t.Fatalf("OutputSchema: %v", err)
	}
	if schema.Type != "object" || schema.AdditionalProperties == nil || schema.AdditionalProperties.Type != "integer" {
		t.Errorf("unexpected map schema: %+v", schema)
	}
}

func TestSchema_MarshalsClean(t *testing.T) {
	schema, err := ParamsSchema(&struct {
		Name string `json:"name" required:"true"`
	}{})
	if err != nil {
		t.Fatalf("ParamsSchema: %v", err)
	}
	encoded, err := json.Marshal(schema)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"type":"object","properties":{"name":{"type":"string"}},"required":["name"]}`
	if string(encoded) != want {
		t.Errorf("marshaled schema = %s, want %s", encoded, want)
	}
}
