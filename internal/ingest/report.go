package ingest

import (
	"fmt"
	"io"
	"time"
)

// Report is the end-of-run summary.
type Report struct {
	Counters Counters
	Elapsed  time.Duration
}

// Print writes the summary in its fixed human-readable layout.
func (r Report) Print(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"=== INGESTION RESULTS ===\n"+
			"Parsed:     %d\n"+
			"Inserted:   %d\n"+
			"Duplicates: %d\n"+
			"Failed:     %d\n"+
			"Elapsed:    %.2fs\n"+
			"Invariant check: %t\n",
		r.Counters.Parsed,
		r.Counters.Inserted,
		r.Counters.Duplicates,
		r.Counters.Failed,
		r.Elapsed.Seconds(),
		r.Counters.Invariant(),
	)
	return err
}
