package convert

import (
	"io"

	"github.com/goccy/go-json"
)

// Action is what happened to one lump.
type Action string

const (
	ActionCopied    Action = "copied"
	ActionConverted Action = "converted"
	ActionMissing   Action = "missing"
	ActionFailed    Action = "failed"
)

// LumpReport describes one lump of a run.
type LumpReport struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Action    Action `json:"action"`
	Converter string `json:"converter,omitempty"`
	OldOffset int32  `json:"old_offset"`
	OldLength int32  `json:"old_length"`
	NewOffset int32  `json:"new_offset"`
	NewLength int32  `json:"new_length"`
	Version   int32  `json:"version"`
	NewFile   string `json:"new_file,omitempty"`
	Error     string `json:"error,omitempty"`
}

// PartitionReport describes one standalone entity partition.
type PartitionReport struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Output      string `json:"output,omitempty"`
	BrushModels int    `json:"brush_models"`
	Error       string `json:"error,omitempty"`
}

// Report is the outcome of converting one container.
type Report struct {
	RunID         string            `json:"run_id"`
	Input         string            `json:"input"`
	Output        string            `json:"output"`
	Packed        bool              `json:"packed"`
	FromContainer bool              `json:"from_container"`
	SourceVersion int32             `json:"source_version"`
	TargetVersion int32             `json:"target_version"`
	Partitions    []PartitionReport `json:"partitions,omitempty"`
	Lumps         []LumpReport      `json:"lumps"`
	Error         string            `json:"error,omitempty"`
}

// Counts returns how many lumps ended in each action.
func (r *Report) Counts() map[Action]int {
	counts := make(map[Action]int, 4)
	for _, l := range r.Lumps {
		counts[l.Action]++
	}
	return counts
}

// Failed reports whether the run, a lump or a partition failed.
func (r *Report) Failed() bool {
	if r.Error != "" {
		return true
	}
	for _, l := range r.Lumps {
		if l.Action == ActionFailed {
			return true
		}
	}
	for _, p := range r.Partitions {
		if p.Error != "" {
			return true
		}
	}
	return false
}

// WriteReports writes reports as an indented JSON array.
func WriteReports(w io.Writer, reports []*Report) error {
	if reports == nil {
		reports = []*Report{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}
