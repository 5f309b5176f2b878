package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotArray is returned when the document does not start with '['.
var ErrNotArray = errors.New("document is not a JSON array")

// ArrayReader yields the elements of a top-level JSON array one at a time,
// so memory use does not depend on the size of the document.
type ArrayReader struct {
	dec     *json.Decoder
	started bool
	done    bool
}

func NewArrayReader(r io.Reader) *ArrayReader {
	return &ArrayReader{dec: json.NewDecoder(r)}
}

// Next returns the next element, or io.EOF after the closing bracket.
// Any other error means the stream cannot be resumed.
func (a *ArrayReader) Next() (json.RawMessage, error) {
	if a.done {
		return nil, io.EOF
	}

	if !a.started {
		tok, err := a.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: empty document", ErrNotArray)
			}
			return nil, fmt.Errorf("read array start: %w", err)
		}
		if d, ok := tok.(json.Delim); !ok || d != '[' {
			return nil, fmt.Errorf("%w: starts with %v", ErrNotArray, tok)
		}
		a.started = true
	}

	if !a.dec.More() {
		if _, err := a.dec.Token(); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("read array end: %w", err)
		}
		a.done = true
		return nil, io.EOF
	}

	var raw json.RawMessage
	if err := a.dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("decode element: %w", err)
	}
	return raw, nil
}
