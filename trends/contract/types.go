package contract

import (
	"time"
)

// KnowledgeChunk is a stored fragment of background knowledge text.
// Chunks are written by an external ingestion pipeline and read-only here.
type KnowledgeChunk struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// TrendReport is a stored structured trend summary. Extra carries open-ended
// attributes the ingestion pipeline attaches beyond the fixed columns.
type TrendReport struct {
	ID              string         `json:"id"`
	TrendName       string         `json:"trend_name"`
	Analysis        string         `json:"analysis"`
	Field           string         `json:"field,omitempty"`
	ConfidenceScore float64        `json:"confidence_score,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	Extra           map[string]any `json:"extra,omitempty"`
}

// ReportQuery parameterizes a latest-reports lookup. Limit is expected to be
// clamped by the caller before it reaches the store.
type ReportQuery struct {
	Field         string
	MinConfidence float64
	Limit         int
}

// Content is a single entry in a tool response payload.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolResult is the uniform envelope every tool call returns, success or
// failure. IsError marks a per-call failure that has already been converted
// to a human-readable message.
type ToolResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"is_error,omitempty"`
}

// TextResult wraps a single text payload in a success envelope.
func TextResult(text string) ToolResult {
	return ToolResult{
		Content: []Content{{Type: "text", Text: text}},
	}
}

// ErrorResult wraps a failure message in an error envelope.
func ErrorResult(message string) ToolResult {
	return ToolResult{
		Content: []Content{{Type: "text", Text: message}},
		IsError: true,
	}
}

// Text joins the textual content of a result. Convenience for transports and
// tests.
func (r ToolResult) Text() string {
	switch len(r.Content) {
	case 0:
		return ""
	case 1:
		return r.Content[0].Text
	}
	out := r.Content[0].Text
	for _, c := range r.Content[1:] {
		out += "\n" + c.Text
	}
	return out
}
