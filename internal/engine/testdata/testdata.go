package testdata

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed corpus.json
var corpusJSON []byte

// NestedTrace is an ArmNN profiler dump with console noise around it.
//
//go:embed nested_trace.txt
var NestedTrace string

// FlatTrace is a flat event list covering every category.
//
//go:embed flat_trace.json
var FlatTrace string

// CorpusEntry is a kernel-timer label with its expected classification and normalization.
type CorpusEntry struct {
	Label            string            `json:"label"`
	ExpectedCategory string            `json:"expected_category"`
	ExpectedName     string            `json:"expected_name"`
	ExpectedAttrs    map[string]string `json:"expected_attrs"`
	Description      string            `json:"description"`
}

// LoadCorpus parses the embedded corpus.json and returns all entries.
func LoadCorpus() ([]CorpusEntry, error) {
	var entries []CorpusEntry
	if err := json.Unmarshal(corpusJSON, &entries); err != nil {
		return nil, fmt.Errorf("parse corpus.json: %w", err)
	}
	return entries, nil
}
