package ingest

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_Print(t *testing.T) {
	var buf bytes.Buffer
	r := Report{
		Counters: Counters{Parsed: 10, Inserted: 6, Duplicates: 3, Failed: 1},
		Elapsed:  1234 * time.Millisecond,
	}
	require.NoError(t, r.Print(&buf))

	want := "=== INGESTION RESULTS ===\n" +
		"Parsed:     10\n" +
		"Inserted:   6\n" +
		"Duplicates: 3\n" +
		"Failed:     1\n" +
		"Elapsed:    1.23s\n" +
		"Invariant check: true\n"
	assert.Equal(t, want, buf.String())
}

func TestReport_PrintBrokenInvariant(t *testing.T) {
	var buf bytes.Buffer
	r := Report{Counters: Counters{Parsed: 2, Inserted: 1}}
	require.NoError(t, r.Print(&buf))
	assert.Contains(t, buf.String(), "Invariant check: false\n")
}
