package model_test

import (
	"encoding/json"
	"testing"

	"github.com/nikbrunner/snip/internal/model"
)

func TestEntry_JSONSerialization(t *testing.T) {
	tests := []struct {
		name  string
		entry model.Entry
	}{
		{
			name: "entry with all fields",
			entry: model.Entry{
				Text:   "The quick brown fox jumps over the lazy dog.",
				Name:   "Typography Basics",
				Handle: "@typesetter",
				URL:    "https://example.com/typography",
				Mode:   model.ModeSentence,
			},
		},
		{
			name: "entry with empty metadata",
			entry: model.Entry{
				Text: "A snippet with no attribution.",
				Mode: model.ModeParagraph,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.entry)
			if err != nil {
				t.Fatalf("failed to marshal: %v", err)
			}

			var got model.Entry
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("failed to unmarshal: %v", err)
			}

			if got != tt.entry {
				t.Errorf("round-trip mismatch: got %+v, want %+v", got, tt.entry)
			}
		})
	}
}

func TestMode_IsValid(t *testing.T) {
	valid := []model.Mode{model.ModeSentence, model.ModeParagraph, model.ModeFixed}
	for _, m := range valid {
		if !m.IsValid() {
			t.Errorf("expected %q to be valid", m)
		}
	}

	if model.Mode("word").IsValid() {
		t.Error("expected unknown mode to be invalid")
	}
	if model.Mode("").IsValid() {
		t.Error("expected empty mode to be invalid")
	}
}

func TestDecodeEntries_StructuredForm(t *testing.T) {
	data := []byte(`[
		{"text":"first","name":"Article","handle":"@a","url":"https://a.example","mode":"sentence"},
		{"text":"second","name":"","handle":"","url":"","mode":"paragraph"}
	]`)

	entries := model.DecodeEntries(data)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Text != "first" || entries[0].Name != "Article" {
		t.Errorf("first entry decoded wrong: %+v", entries[0])
	}
	if entries[1].Mode != model.ModeParagraph {
		t.Errorf("expected paragraph mode, got %q", entries[1].Mode)
	}
}

func TestDecodeEntries_LegacyStrings(t *testing.T) {
	data := []byte(`["plain old snippet","another one"]`)

	entries := model.DecodeEntries(data)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Text != "plain old snippet" {
		t.Errorf("legacy string not normalized: %+v", entries[0])
	}
	if entries[0].Name != "" || entries[0].Mode != "" {
		t.Errorf("legacy entry should have empty metadata: %+v", entries[0])
	}
}

func TestDecodeEntries_MixedShapes(t *testing.T) {
	data := []byte(`["legacy",{"text":"structured","mode":"sentence"}]`)

	entries := model.DecodeEntries(data)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Text != "legacy" || entries[1].Text != "structured" {
		t.Errorf("mixed decode wrong: %+v", entries)
	}
}

func TestDecodeEntries_Malformed(t *testing.T) {
	cases := map[string][]byte{
		"invalid json":  []byte(`{not json`),
		"not an array":  []byte(`{"text":"x"}`),
		"empty input":   nil,
		"number array":  []byte(`[1,2,3]`),
		"empty strings": []byte(`["",""]`),
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			entries := model.DecodeEntries(data)
			if len(entries) != 0 {
				t.Errorf("expected empty collection, got %d entries", len(entries))
			}
		})
	}
}

func TestContainsText(t *testing.T) {
	entries := []model.Entry{{Text: "alpha"}, {Text: "beta"}}

	if !model.ContainsText(entries, "alpha") {
		t.Error("expected to find alpha")
	}
	if model.ContainsText(entries, "gamma") {
		t.Error("should not find gamma")
	}
}

func TestFilterText(t *testing.T) {
	entries := []model.Entry{{Text: "alpha"}, {Text: "beta"}, {Text: "alpha"}}

	filtered := model.FilterText(entries, "alpha")
	if len(filtered) != 1 {
		t.Fatalf("expected 1 entry after filter, got %d", len(filtered))
	}
	if filtered[0].Text != "beta" {
		t.Errorf("expected beta to survive, got %q", filtered[0].Text)
	}

	// Filtering a missing text is a no-op.
	same := model.FilterText(entries, "gamma")
	if len(same) != 3 {
		t.Errorf("expected 3 entries, got %d", len(same))
	}
}
