package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/parser"
)

// Metric status labels.
const (
	outcomeOK     = "ok"
	outcomeFailed = "failed"
)

// Output is the result of processing one document.
type Output struct {
	Outline   doctree.DocumentOutline
	Fragments int
	Duration  time.Duration
}

// Processor runs extraction and outline inference for single documents and
// records their latency. It holds no per-document state and is safe for
// concurrent use.
type Processor struct {
	stats   *LatencyStats
	metrics *Metrics
	log     *slog.Logger
}

func NewProcessor(stats *LatencyStats, metrics *Metrics, log *slog.Logger) *Processor {
	if stats == nil {
		stats = NewLatencyStats(time.Hour)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Processor{stats: stats, metrics: metrics, log: log}
}

// Process extracts fragments from data and infers its outline. Extraction
// failures are returned as *parser.ExtractionError.
func (p *Processor) Process(ctx context.Context, data []byte, filename string, cfg outline.Config) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Output{}, fmt.Errorf("invalid outline config: %w", err)
	}

	start := time.Now()
	frags, err := parser.Extract(data, filename, cfg.MaxPages)
	if err != nil {
		elapsed := time.Since(start)
		p.record(outcomeFailed, 0, elapsed)
		p.log.Warn("extraction failed", "filename", filename, "error", err)
		return Output{Duration: elapsed}, err
	}

	doc := outline.Infer(frags, cfg)
	elapsed := time.Since(start)
	p.record(outcomeOK, len(frags), elapsed)
	p.log.Debug("outline inferred",
		"filename", filename,
		"fragments", len(frags),
		"headings", len(doc.Outline),
		"duration_ms", elapsed.Milliseconds(),
	)
	return Output{Outline: doc, Fragments: len(frags), Duration: elapsed}, nil
}

func (p *Processor) record(status string, fragments int, d time.Duration) {
	p.stats.Record(d, status == outcomeFailed)
	p.metrics.ObserveDocument(status, fragments, d)
}

// Stats returns the rolling latency aggregate.
func (p *Processor) Stats() StatsSnapshot {
	return p.stats.Snapshot()
}
