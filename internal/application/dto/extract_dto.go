package dto

import "github.com/YoshitsuguKoike/propdoc/internal/domain/model/prop"

// ExtractInput describes one extraction run
type ExtractInput struct {
	RunID      string
	InputPath  string
	OutputPath string
	DryRun     bool // encode but do not write OutputPath
}

// ComponentCount is one report line: a retained component and its prop count
type ComponentCount struct {
	Title string
	Count int
}

// ExtractResult is the in-memory result of the extraction pipeline
type ExtractResult struct {
	Catalog *prop.Catalog
	Counts  []ComponentCount // one per retained section, duplicates included
	Total   int
}

// ExtractOutput is the result of a full run including the encoded artifact
type ExtractOutput struct {
	ExtractResult
	JSON       []byte
	OutputPath string
	Written    bool
}
