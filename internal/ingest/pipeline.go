package ingest

import (
	"context"
	"errors"
	"io"

	"github.com/dmitrijs2005/coursework/internal/logging"
)

// DefaultBatchSize is used when the configured batch size is not positive.
const DefaultBatchSize = 1000

// Counters are the per-run totals.
type Counters struct {
	Parsed     int
	Inserted   int
	Duplicates int
	Failed     int
}

// Invariant reports whether every parsed element has exactly one outcome.
func (c Counters) Invariant() bool {
	return c.Parsed == c.Inserted+c.Duplicates+c.Failed
}

// Pipeline streams elements from a reader into a Store in batches.
type Pipeline struct {
	store     Store
	batchSize int
	logger    logging.Logger
	metrics   *Metrics
}

func NewPipeline(store Store, batchSize int, logger logging.Logger, metrics *Metrics) *Pipeline {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Pipeline{
		store:     store,
		batchSize: batchSize,
		logger:    logger.With("module", "ingest_pipeline"),
		metrics:   metrics,
	}
}

// Run ingests every element of the JSON array read from r.
//
// Elements that cannot be mapped are counted as failed and skipped. Stream
// errors, store errors and context cancellation end the run; the counters
// returned alongside the error cover the batches committed so far, with Parsed
// clamped to the elements whose outcome is known.
func (p *Pipeline) Run(ctx context.Context, r io.Reader) (Counters, error) {
	var c Counters

	reader := NewArrayReader(r)
	batch := make([]Row, 0, p.batchSize)

	flush := func() error {
		res, err := p.store.FlushBatch(ctx, batch)
		if err != nil {
			return err
		}
		c.Inserted += res.Inserted
		c.Duplicates += res.Duplicates
		p.metrics.flushed(res)
		p.logger.Debug(ctx, "batch flushed",
			"rows", len(batch), "inserted", res.Inserted, "duplicates", res.Duplicates)
		batch = batch[:0]
		return nil
	}

	abort := func(err error) (Counters, error) {
		c.Parsed -= len(batch)
		return c, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return abort(err)
		}

		raw, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return abort(err)
		}

		c.Parsed++

		row, err := MapRecord(raw)
		if err != nil {
			c.Failed++
			p.metrics.failed()
			p.logger.Debug(ctx, "record skipped", "index", c.Parsed-1, "error", err.Error())
			continue
		}

		batch = append(batch, row)
		if len(batch) >= p.batchSize {
			if err := flush(); err != nil {
				return abort(err)
			}
		}
	}

	if len(batch) > 0 {
		if err := flush(); err != nil {
			return abort(err)
		}
	}

	return c, nil
}
