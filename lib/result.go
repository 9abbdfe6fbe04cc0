package lib

import "io"

// RunResult is the report of one wrapper run.
type RunResult struct {
	RunID       string    `json:"run_id"`
	Project     string    `json:"project"`
	Command     []string  `json:"command"`
	Success     bool      `json:"success"`
	ExitCode    int       `json:"exit_code"`
	Coverage    float64   `json:"coverage"`
	HasCoverage bool      `json:"has_coverage"`
	DurationMS  int64     `json:"duration_ms"`
	Output      io.Reader `json:"-"`
}
