package ingest

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, in string) ([]string, error) {
	t.Helper()
	r := NewArrayReader(strings.NewReader(in))
	var out []string
	for {
		raw, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, string(raw))
	}
}

func TestArrayReader_YieldsElementsInOrder(t *testing.T) {
	got, err := readAll(t, ` [ {"name":"a"}, 1, "two", null, [3] ] `)
	require.NoError(t, err)
	assert.Equal(t, []string{`{"name":"a"}`, `1`, `"two"`, `null`, `[3]`}, got)
}

func TestArrayReader_EmptyArray(t *testing.T) {
	got, err := readAll(t, `[]`)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestArrayReader_EOFIsSticky(t *testing.T) {
	r := NewArrayReader(strings.NewReader(`[1]`))
	_, err := r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestArrayReader_NotAnArray(t *testing.T) {
	for _, in := range []string{`{"name":"a"}`, `42`, ``} {
		_, err := readAll(t, in)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, ErrNotArray), "input %q: %v", in, err)
	}
}

func TestArrayReader_MalformedElement(t *testing.T) {
	got, err := readAll(t, `[{"name":"a"}, {"name": }]`)
	require.Error(t, err)
	assert.Equal(t, []string{`{"name":"a"}`}, got)
}

func TestArrayReader_Truncated(t *testing.T) {
	_, err := readAll(t, `[{"name":"a"}`)
	require.Error(t, err)
}

func TestArrayReader_TruncatedIsNotCleanEnd(t *testing.T) {
	for _, in := range []string{`[1`, `[1,`, `[`} {
		r := NewArrayReader(strings.NewReader(in))
		var err error
		for err == nil {
			_, err = r.Next()
		}
		assert.False(t, errors.Is(err, io.EOF), "input %q: %v", in, err)
	}
}
