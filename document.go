package assistant

import "context"

// ContentType classifies a documentation page by its likely purpose.
type ContentType string

// Content types recognized by ClassifyContent, most specific first.
const (
	TypeTutorial      ContentType = "tutorial"
	TypeGuide         ContentType = "guide"
	TypeAPI           ContentType = "api"
	TypeHowTo         ContentType = "how-to"
	TypeFAQ           ContentType = "faq"
	TypeExample       ContentType = "example"
	TypeDocumentation ContentType = "documentation"
)

// Metadata describes the provenance of a crawled page. It is attached to
// the Document at crawl time and inherited verbatim by every chunk the
// document produces.
type Metadata struct {
	Title   string      `json:"title"`
	Source  string      `json:"source"`
	Section string      `json:"section"`
	Type    ContentType `json:"type"`
}

// Document represents one successfully crawled documentation page.
// Documents are immutable after creation.
type Document struct {
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.Metadata.Source == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	if d.Content == "" {
		return Errorf(EINVALID, "document content required")
	}
	return nil
}

// DocumentStore persists the crawled document list, decoupling crawling
// from indexing. Save always overwrites the full list; there is no
// merge or diff logic.
type DocumentStore interface {
	// Save writes the documents, replacing any previous contents.
	Save(ctx context.Context, docs []*Document) error

	// Load restores a previously saved document list.
	// Returns ENOTFOUND if nothing has been saved.
	Load(ctx context.Context) ([]*Document, error)
}
