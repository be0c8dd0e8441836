package console

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/entrhq/websurf/pkg/agent"
)

// RunSummary is the machine-readable record of one agent run.
type RunSummary struct {
	Task        string        `json:"task"`
	Status      string        `json:"status"`
	Answer      string        `json:"answer,omitempty"`
	Error       string        `json:"error,omitempty"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	Duration    time.Duration `json:"duration"`
	Turns       int           `json:"turns"`
	TotalTokens int           `json:"total_tokens"`
}

// NewRunSummary builds a summary from the agent's result.
func NewRunSummary(task string, result *agent.Result, runErr error, start, end time.Time) *RunSummary {
	summary := &RunSummary{
		Task:      task,
		Status:    "success",
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	}
	if result != nil {
		summary.Answer = result.Answer
		summary.Turns = result.Turns
		summary.TotalTokens = result.TotalTokens
	}
	if runErr != nil {
		summary.Status = "failed"
		summary.Error = runErr.Error()
	}
	return summary
}

// ArtifactWriter writes run artifacts into an output directory.
type ArtifactWriter struct {
	outputDir string
}

// NewArtifactWriter creates an artifact writer rooted at outputDir.
func NewArtifactWriter(outputDir string) *ArtifactWriter {
	return &ArtifactWriter{outputDir: outputDir}
}

// WriteAll writes every artifact format.
func (w *ArtifactWriter) WriteAll(summary *RunSummary) error {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := w.WriteRunJSON(summary); err != nil {
		return err
	}
	return w.WriteSummaryMarkdown(summary)
}

// WriteScreenshot saves one turn's viewport PNG so the run can be
// replayed visually afterwards.
func (w *ArtifactWriter) WriteScreenshot(turn int, png []byte) error {
	if len(png) == 0 {
		return nil
	}
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(w.outputDir, fmt.Sprintf("turn-%03d.png", turn))
	if err := os.WriteFile(path, png, 0600); err != nil {
		return fmt.Errorf("failed to write screenshot: %w", err)
	}
	return nil
}

// WriteRunJSON writes the full run summary as JSON.
func (w *ArtifactWriter) WriteRunJSON(summary *RunSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}
	path := filepath.Join(w.outputDir, "run.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write run JSON: %w", err)
	}
	return nil
}

// WriteSummaryMarkdown writes a human-readable summary.
func (w *ArtifactWriter) WriteSummaryMarkdown(summary *RunSummary) error {
	var md strings.Builder

	md.WriteString("# Websurf Run Summary\n\n")
	md.WriteString(fmt.Sprintf("**Task:** %s\n\n", summary.Task))
	md.WriteString(fmt.Sprintf("**Status:** %s\n\n", summary.Status))
	md.WriteString(fmt.Sprintf("**Started:** %s\n\n", summary.StartTime.Format(time.RFC3339)))
	md.WriteString(fmt.Sprintf("**Duration:** %s\n\n", summary.Duration.Round(time.Millisecond)))

	md.WriteString("## Result\n\n")
	if summary.Error != "" {
		md.WriteString(fmt.Sprintf("❌ **Error:** %s\n\n", summary.Error))
	} else {
		md.WriteString(summary.Answer + "\n\n")
	}

	md.WriteString("## Metrics\n\n")
	md.WriteString(fmt.Sprintf("- **Turns:** %d\n", summary.Turns))
	md.WriteString(fmt.Sprintf("- **Tokens Used:** %d\n", summary.TotalTokens))

	path := filepath.Join(w.outputDir, "summary.md")
	if err := os.WriteFile(path, []byte(md.String()), 0600); err != nil {
		return fmt.Errorf("failed to write summary markdown: %w", err)
	}
	return nil
}
