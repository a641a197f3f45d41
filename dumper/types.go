package dumper

import "fmt"

// ProgressInfo represents progress information for extraction
type ProgressInfo struct {
	TotalBlocks     int     `json:"total_blocks"`
	CompletedBlocks int     `json:"completed_blocks"`
	ProgressPercent float64 `json:"progress_percent"`
	Variant         string  `json:"variant,omitempty"`
	SizeReadable    string  `json:"size_readable"`
}

// ProgressCallback is a function type for receiving progress updates
type ProgressCallback func(progress ProgressInfo)

// ProbeResult describes what Probe learned from the first compressed block.
type ProbeResult struct {
	Block          int      `json:"block"`
	InputLength    int      `json:"input_length"`
	OutputLength   int      `json:"output_length"`
	Variant        string   `json:"variant"`
	Confirmed      bool     `json:"confirmed"`
	CandidateOrder []string `json:"candidate_order"`

	// MapVariant is the variant recorded in the block map, if any.
	MapVariant        string `json:"map_variant,omitempty"`
	MapVariantMatches bool   `json:"map_variant_matches,omitempty"`
}

// formatSize converts bytes into a human-readable string.
func formatSize(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	if bytes >= GB {
		return fmt.Sprintf("%.1fGB", float64(bytes)/GB)
	} else if bytes >= MB {
		return fmt.Sprintf("%.1fMB", float64(bytes)/MB)
	} else {
		return fmt.Sprintf("%.1fKB", float64(bytes)/KB)
	}
}
