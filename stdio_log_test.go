package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStdioLogAppendsRunMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "stdio.log")

	for i := 0; i < 2; i++ {
		f, err := openStdioLog(path)
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, countLines(string(data)))
	assert.Contains(t, string(data), "--- scoreboard start ")

	f, err := openStdioLog("")
	assert.NoError(t, err)
	assert.Nil(t, f)
}

func countLines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}
