package postprocess

import (
	"context"
	"log/slog"
)

// Processor is a function that transforms text
type Processor func(ctx context.Context, text string) (string, error)

// Pipeline runs a series of processors in sequence
type Pipeline struct {
	processors []Processor
}

// NewPipeline creates a new processing pipeline
func NewPipeline(processors ...Processor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs all processors in sequence
func (p *Pipeline) Process(ctx context.Context, text string) (string, error) {
	result := text
	var err error

	for i, proc := range p.processors {
		result, err = proc(ctx, result)
		if err != nil {
			slog.Error("Processor failed", "index", i, "error", err)
			return result, err
		}
	}

	return result, nil
}

// ProcessAll runs the pipeline over each alternative, dropping any that end
// up empty. If every alternative drops out, the original text is kept as the
// single result so the caller always has something to put on the clipboard.
func (p *Pipeline) ProcessAll(ctx context.Context, original string, alternatives []string) []string {
	var results []string
	for _, alt := range alternatives {
		cleaned, err := p.Process(ctx, alt)
		if err != nil {
			cleaned = alt
		}
		if cleaned != "" {
			results = append(results, cleaned)
		}
	}

	if len(results) == 0 {
		return []string{original}
	}
	return results
}

// AddProcessor adds a processor to the pipeline
func (p *Pipeline) AddProcessor(proc Processor) {
	p.processors = append(p.processors, proc)
}
