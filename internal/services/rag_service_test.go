package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitContent_ShortContentIsSingleChunk(t *testing.T) {
	content := "A short document about Docker."

	chunks := splitContent(content)

	require.Len(t, chunks, 1)
	assert.Equal(t, content, chunks[0])
}

func TestSplitContent_SplitsOnParagraphBoundaries(t *testing.T) {
	para := strings.Repeat("word ", 120) // ~600 bytes
	content := strings.Join([]string{para, para, para}, "\n\n")

	chunks := splitContent(content)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.NotEmpty(t, strings.TrimSpace(chunk))
	}
	// No content is lost across the split.
	joined := strings.Join(chunks, " ")
	assert.Equal(t, strings.Count(content, "word"), strings.Count(joined, "word"))
}

func TestSplitContent_OversizedParagraphKeptWhole(t *testing.T) {
	// A single paragraph above the chunk limit cannot be split further.
	big := strings.Repeat("x", maxChunkSize+500)

	chunks := splitContent(big)

	require.Len(t, chunks, 1)
	assert.Equal(t, big, chunks[0])
}
