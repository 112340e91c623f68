package assistant

import "context"

// Chat roles for conversation turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is one entry in a conversational session's history.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SourceRef cites one retrieved chunk's provenance. Missing metadata
// fields are filled with the literal "Unknown".
type SourceRef struct {
	Title   string `json:"title"`
	Source  string `json:"source"`
	Section string `json:"section"`
	Type    string `json:"type"`
}

// QueryResult is the answer to one query plus citations for every
// retrieved chunk, in rank order.
type QueryResult struct {
	Answer  string      `json:"answer"`
	Sources []SourceRef `json:"sources"`
}

// QueryService answers free-text questions over the indexed
// documentation. An unavailable knowledge base is a normal answer, not
// an error.
type QueryService interface {
	ProcessQuery(ctx context.Context, query string, k int) (*QueryResult, error)
	ClearHistory()
	History() []ChatTurn
}

// SourceRefFromMetadata builds a citation from chunk metadata, defaulting
// every missing field to "Unknown".
func SourceRefFromMetadata(m Metadata) SourceRef {
	ref := SourceRef{
		Title:   m.Title,
		Source:  m.Source,
		Section: m.Section,
		Type:    string(m.Type),
	}
	if ref.Title == "" {
		ref.Title = "Unknown"
	}
	if ref.Source == "" {
		ref.Source = "Unknown"
	}
	if ref.Section == "" {
		ref.Section = "Unknown"
	}
	if ref.Type == "" {
		ref.Type = "Unknown"
	}
	return ref
}
