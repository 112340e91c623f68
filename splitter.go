package assistant

import "strings"

// DefaultSeparators is the separator hierarchy used to split document
// text: heading markers at decreasing levels, then newline, then space.
// The final empty separator hard-cuts oversized runs of characters and
// guarantees termination.
var DefaultSeparators = []string{"\n## ", "\n### ", "\n#### ", "\n", " ", ""}

// Default chunking parameters, matching the indexer defaults.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// SplitDocuments splits each document's content into overlapping chunks
// of at most targetSize runes, with each chunk overlapping the previous
// by exactly overlap runes. Every chunk inherits its document's full
// metadata plus an ordinal index within the document. A document with
// empty content produces no chunks.
//
// Returns EINVALID unless 0 <= overlap < targetSize.
func SplitDocuments(docs []*Document, targetSize, overlap int) ([]Chunk, error) {
	var chunks []Chunk
	for _, doc := range docs {
		texts, err := SplitText(doc.Content, targetSize, overlap)
		if err != nil {
			return nil, err
		}
		for i, text := range texts {
			chunks = append(chunks, Chunk{
				Text:     text,
				Metadata: doc.Metadata,
				Index:    i,
			})
		}
	}
	return chunks, nil
}

// SplitText splits text into overlapping windows of at most targetSize
// runes. The text is first divided into pieces along DefaultSeparators,
// applied recursively so every piece fits targetSize, then adjacent
// pieces are merged into windows. Each window after the first starts
// exactly overlap runes before the previous window's end, so
// concatenating the windows with the overlap removed reconstructs the
// original text.
func SplitText(text string, targetSize, overlap int) ([]string, error) {
	if targetSize <= 0 {
		return nil, Errorf(EINVALID, "chunk size must be positive, got %d", targetSize)
	}
	if overlap < 0 || overlap >= targetSize {
		return nil, Errorf(EINVALID, "chunk overlap must be in [0, %d), got %d", targetSize, overlap)
	}
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	if len(runes) <= targetSize {
		return []string{text}, nil
	}

	pieces := splitPieces(text, DefaultSeparators, targetSize)
	return mergePieces(runes, pieceBoundaries(pieces), targetSize, overlap), nil
}

// splitPieces recursively splits text along the separator hierarchy.
// Every returned piece is at most target runes long and the pieces
// concatenate back to the original text.
func splitPieces(text string, separators []string, target int) []string {
	if runeLen(text) <= target {
		return []string{text}
	}
	if len(separators) == 0 || separators[0] == "" {
		return hardCut(text, target)
	}

	sep, rest := separators[0], separators[1:]
	parts := splitKeepSeparator(text, sep)
	if len(parts) == 1 {
		// Separator absent; try the next one down the hierarchy.
		return splitPieces(text, rest, target)
	}

	var pieces []string
	for _, part := range parts {
		if runeLen(part) <= target {
			pieces = append(pieces, part)
			continue
		}
		pieces = append(pieces, splitPieces(part, rest, target)...)
	}
	return pieces
}

// splitKeepSeparator splits text on sep, reattaching the separator to
// the start of the following part so no characters are lost. Heading
// separators begin with a newline, which keeps markers adjacent to
// their headings.
func splitKeepSeparator(text, sep string) []string {
	raw := strings.Split(text, sep)
	parts := make([]string, 0, len(raw))
	for i, part := range raw {
		if i > 0 {
			part = sep + part
		}
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// hardCut slices text into runs of exactly target runes (the last run
// may be shorter).
func hardCut(text string, target int) []string {
	runes := []rune(text)
	var pieces []string
	for start := 0; start < len(runes); start += target {
		end := min(start+target, len(runes))
		pieces = append(pieces, string(runes[start:end]))
	}
	return pieces
}

// pieceBoundaries returns the cumulative rune offsets at which pieces
// end. The final boundary equals the total rune length.
func pieceBoundaries(pieces []string) []int {
	boundaries := make([]int, 0, len(pieces))
	offset := 0
	for _, piece := range pieces {
		offset += runeLen(piece)
		boundaries = append(boundaries, offset)
	}
	return boundaries
}

// mergePieces assembles windows of at most target runes over the piece
// boundaries. Windows prefer ending on a piece boundary; when no
// boundary past the previous window fits, the window is hard-cut at
// exactly target runes. Because overlap < target each window extends
// past the previous one, so the merge always terminates.
func mergePieces(runes []rune, boundaries []int, target, overlap int) []string {
	total := len(runes)
	var windows []string

	start, prevEnd := 0, 0
	for start < total {
		// Furthest boundary that keeps the window within target.
		end := -1
		for _, b := range boundaries {
			if b-start > target {
				break
			}
			if b > start {
				end = b
			}
		}
		if end <= prevEnd {
			end = min(start+target, total)
		}

		windows = append(windows, string(runes[start:end]))
		if end >= total {
			break
		}
		prevEnd = end
		start = end - overlap
	}
	return windows
}

func runeLen(s string) int {
	return len([]rune(s))
}
