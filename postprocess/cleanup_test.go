package postprocess

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupStripsWrappingQuotes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"double quotes", `"Could you send the file?"`, "Could you send the file?"},
		{"single quotes", "'Hello there.'", "Hello there."},
		{"curly quotes", "“Hello there.”", "Hello there."},
		{"guillemets", "«Bonjour.»", "Bonjour."},
		{"unmatched quote kept", `"Hello there.`, `"Hello there.`},
		{"inner quotes kept", `"first" and "second"`, `"first" and "second"`},
		{"no quotes", "Hello there.", "Hello there."},
		{"whitespace trimmed", "  Hello there.  ", "Hello there."},
	}

	p := Cleanup()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Process(context.Background(), tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanupStripsCodeFence(t *testing.T) {
	in := "```\nCould you send the file?\n```"
	got, err := Cleanup().Process(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Could you send the file?", got)

	// Language marker on the fence
	in = "```text\nHello there.\n```"
	got, err = Cleanup().Process(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Hello there.", got)
}

func TestProcessAllDropsEmptyAlternatives(t *testing.T) {
	p := Cleanup()
	got := p.ProcessAll(context.Background(), "original", []string{" a ", "   ", "b"})
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestProcessAllFallsBackToOriginal(t *testing.T) {
	p := Cleanup()
	got := p.ProcessAll(context.Background(), "original", []string{"  ", ""})
	assert.Equal(t, []string{"original"}, got)
}

func TestPipelineRunsInOrder(t *testing.T) {
	var order []string
	p := NewPipeline(
		func(ctx context.Context, text string) (string, error) {
			order = append(order, "first")
			return text + "-1", nil
		},
		func(ctx context.Context, text string) (string, error) {
			order = append(order, "second")
			return text + "-2", nil
		},
	)

	got, err := p.Process(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "x-1-2", got)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestPipelineStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	p := NewPipeline(
		func(ctx context.Context, text string) (string, error) {
			return "partial", boom
		},
		func(ctx context.Context, text string) (string, error) {
			t.Fatal("second processor should not run")
			return text, nil
		},
	)

	got, err := p.Process(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "partial", got)
}

func TestProcessAllKeepsRawTextOnProcessorError(t *testing.T) {
	p := NewPipeline(func(ctx context.Context, text string) (string, error) {
		return "", errors.New("boom")
	})

	got := p.ProcessAll(context.Background(), "original", []string{"keep me"})
	assert.Equal(t, []string{"keep me"}, got)
}
