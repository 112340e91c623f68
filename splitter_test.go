package assistant_test

import (
	"strings"
	"testing"

	assistant "github.com/chaurasiavikash/openSimAssistant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitText_rejects_overlap_not_less_than_size(t *testing.T) {
	t.Parallel()

	_, err := assistant.SplitText("some text", 100, 100)
	require.Error(t, err)
	assert.Equal(t, assistant.EINVALID, assistant.ErrorCode(err))

	_, err = assistant.SplitText("some text", 100, 150)
	require.Error(t, err)
	assert.Equal(t, assistant.EINVALID, assistant.ErrorCode(err))

	_, err = assistant.SplitText("some text", 100, -1)
	require.Error(t, err)
	assert.Equal(t, assistant.EINVALID, assistant.ErrorCode(err))
}

func TestSplitText_empty_text_produces_no_chunks(t *testing.T) {
	t.Parallel()

	chunks, err := assistant.SplitText("", 100, 20)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSplitText_short_text_is_a_single_chunk(t *testing.T) {
	t.Parallel()

	chunks, err := assistant.SplitText("short text", 100, 20)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0])
}

func TestSplitText_every_chunk_fits_target_size(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 50)

	chunks, err := assistant.SplitText(text, 100, 20)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for i, chunk := range chunks {
		assert.LessOrEqual(t, len([]rune(chunk)), 100, "chunk %d exceeds target size", i)
	}
}

func TestSplitText_overlap_removed_reconstructs_original(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		size    int
		overlap int
	}{
		{"prose with spaces", strings.Repeat("alpha beta gamma delta epsilon ", 40), 80, 16},
		{"markdown headings", "# Title\n\nintro text\n## Install\ndownload the installer\n## Usage\nrun the tool\n### Flags\nmany flags here", 40, 10},
		{"no separators at all", strings.Repeat("x", 500), 64, 8},
		{"newline separated", strings.Repeat("line of text\n", 60), 50, 12},
		{"zero overlap", strings.Repeat("word ", 100), 32, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			chunks, err := assistant.SplitText(tt.text, tt.size, tt.overlap)
			require.NoError(t, err)
			require.NotEmpty(t, chunks)

			var sb strings.Builder
			for i, chunk := range chunks {
				runes := []rune(chunk)
				assert.LessOrEqual(t, len(runes), tt.size)
				if i == 0 {
					sb.WriteString(chunk)
					continue
				}
				require.GreaterOrEqual(t, len(runes), tt.overlap)
				sb.WriteString(string(runes[tt.overlap:]))
			}
			assert.Equal(t, tt.text, sb.String())
		})
	}
}

func TestSplitText_prefers_heading_boundaries(t *testing.T) {
	t.Parallel()

	text := "intro paragraph" + strings.Repeat(" filler", 5) +
		"\n## Section Two\nbody of section two" + strings.Repeat(" more", 5)

	chunks, err := assistant.SplitText(text, 60, 0)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	// The second chunk should start at the heading marker rather than
	// mid-word.
	assert.True(t, strings.HasPrefix(chunks[1], "\n## Section Two"),
		"second chunk starts with %q", chunks[1][:min(20, len(chunks[1]))])
}

func TestSplitDocuments_chunks_inherit_document_metadata(t *testing.T) {
	t.Parallel()

	docs := []*assistant.Document{
		{
			Content: strings.Repeat("OpenSim is a musculoskeletal modeling tool. ", 10),
			Metadata: assistant.Metadata{
				Title:   "About OpenSim",
				Source:  "https://simtk.org/projects/opensim",
				Section: "General",
				Type:    assistant.TypeDocumentation,
			},
		},
		{
			Content: "",
			Metadata: assistant.Metadata{
				Title:  "Empty Page",
				Source: "https://simtk.org/empty",
			},
		},
	}

	chunks, err := assistant.SplitDocuments(docs, 100, 20)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for i, chunk := range chunks {
		assert.Equal(t, docs[0].Metadata, chunk.Metadata, "chunk %d metadata", i)
		assert.Equal(t, i, chunk.Index)
	}
}

func TestSplitDocuments_propagates_configuration_error(t *testing.T) {
	t.Parallel()

	docs := []*assistant.Document{{Content: "text", Metadata: assistant.Metadata{Source: "https://x"}}}

	_, err := assistant.SplitDocuments(docs, 10, 10)
	require.Error(t, err)
	assert.Equal(t, assistant.EINVALID, assistant.ErrorCode(err))
}
