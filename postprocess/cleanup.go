package postprocess

import (
	"context"
	"strings"
)

// Cleanup returns the default pipeline for provider output: models sometimes
// wrap the rewrite in quotes or a code fence despite being told not to.
func Cleanup() *Pipeline {
	return NewPipeline(
		TrimProcessor(),
		StripFenceProcessor(),
		StripQuotesProcessor(),
	)
}

// TrimProcessor removes surrounding whitespace
func TrimProcessor() Processor {
	return func(ctx context.Context, text string) (string, error) {
		return strings.TrimSpace(text), nil
	}
}

// quotePairs lists wrapping pairs stripped from a completion when the whole
// text is enclosed by one of them
var quotePairs = [][2]string{
	{`"`, `"`},
	{"'", "'"},
	{"“", "”"},
	{"‘", "’"},
	{"«", "»"},
}

// StripQuotesProcessor removes one matched pair of wrapping quotes
func StripQuotesProcessor() Processor {
	return func(ctx context.Context, text string) (string, error) {
		for _, pair := range quotePairs {
			left, right := pair[0], pair[1]
			if len(text) > len(left)+len(right) &&
				strings.HasPrefix(text, left) && strings.HasSuffix(text, right) {
				inner := text[len(left) : len(text)-len(right)]
				// Don't strip when the closing quote belongs to an inner
				// quotation, e.g. "first" and "second"
				if left == right && strings.Contains(inner, left) {
					continue
				}
				return strings.TrimSpace(inner), nil
			}
		}
		return text, nil
	}
}

// StripFenceProcessor removes a wrapping markdown code fence
func StripFenceProcessor() Processor {
	return func(ctx context.Context, text string) (string, error) {
		if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") {
			return text, nil
		}

		lines := strings.Split(text, "\n")
		if len(lines) < 3 {
			return text, nil
		}

		inner := strings.Join(lines[1:len(lines)-1], "\n")
		return strings.TrimSpace(inner), nil
	}
}
