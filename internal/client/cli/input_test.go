package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("  Supra Mk4  \n"))

	got, err := GetSimpleText(reader, "Name", &out)
	require.NoError(t, err)
	require.Equal(t, "Supra Mk4", got)
	require.Contains(t, out.String(), "Name")
}

func TestGetSimpleText_EOFWithPartialLine(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("no newline"))

	got, err := GetSimpleText(reader, "Name", &out)
	require.NoError(t, err)
	require.Equal(t, "no newline", got)
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback int
		want     int
	}{
		{name: "valid number", input: "620\n", fallback: 0, want: 620},
		{name: "empty uses fallback", input: "\n", fallback: 150, want: 150},
		{name: "retries then succeeds", input: "abc\n42\n", fallback: 0, want: 42},
		{name: "gives up after retries", input: "a\nb\nc\n", fallback: 9, want: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			reader := bufio.NewReader(strings.NewReader(tt.input))
			got, err := GetInt(reader, "Horsepower", tt.fallback, &out)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
