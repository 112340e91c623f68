package readability_test

import (
	"strings"
	"testing"

	assistant "github.com/chaurasiavikash/openSimAssistant"
	"github.com/chaurasiavikash/openSimAssistant/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_extracts_article_content(t *testing.T) {
	t.Parallel()

	// Readability needs enough text to score the content block.
	body := strings.Repeat("OpenSim lets you build musculoskeletal models and run dynamic simulations of movement. ", 10)
	html := `<html><head><title>Inverse Kinematics</title></head><body>
		<nav><a href="/">Home</a><a href="/docs">Docs</a></nav>
		<article><h1>Inverse Kinematics</h1><p>` + body + `</p></article>
		<footer>Copyright</footer>
	</body></html>`

	result, err := readability.NewExtractor().Extract(html)
	require.NoError(t, err)

	assert.Equal(t, "Inverse Kinematics", result.Title)
	assert.Contains(t, result.ContentHTML, "musculoskeletal models")
	assert.NotContains(t, result.ContentHTML, "Copyright")
}

func TestExtractor_rejects_empty_input(t *testing.T) {
	t.Parallel()

	_, err := readability.NewExtractor().Extract("")
	require.Error(t, err)
	assert.Equal(t, assistant.EINVALID, assistant.ErrorCode(err))
}
