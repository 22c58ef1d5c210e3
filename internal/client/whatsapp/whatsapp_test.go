package whatsapp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessageShortTextUnchanged(t *testing.T) {
	chunks := SplitMessage("hello", MaxMessageLength)
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello", chunks[0])
}

func TestSplitMessagePrefersNewlines(t *testing.T) {
	line := strings.Repeat("a", 30)
	text := strings.Join([]string{line, line, line, line}, "\n")

	chunks := SplitMessage(text, 70)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 70)
	}
	// splits land on line boundaries, so each chunk is whole lines
	for _, c := range chunks {
		for _, l := range strings.Split(c, "\n") {
			assert.Equal(t, line, l)
		}
	}
}

func TestSplitMessageFallsBackToSpaces(t *testing.T) {
	word := strings.Repeat("b", 9)
	text := strings.TrimSpace(strings.Repeat(word+" ", 30))

	chunks := SplitMessage(text, 50)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 50)
		assert.False(t, strings.HasPrefix(c, " "))
	}
	assert.Equal(t, strings.ReplaceAll(text, " ", ""), strings.ReplaceAll(strings.Join(chunks, ""), " ", ""))
}

func TestSplitMessageHardCutsUnbrokenRuns(t *testing.T) {
	text := strings.Repeat("x", 105)

	chunks := SplitMessage(text, 50)

	require.Len(t, chunks, 3)
	assert.Equal(t, 50, len(chunks[0]))
	assert.Equal(t, 50, len(chunks[1]))
	assert.Equal(t, 5, len(chunks[2]))
	assert.Equal(t, text, strings.Join(chunks, ""))
}
