package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// UnknownName is the canonical name used when a record has no usable name.
const UnknownName = "UNKNOWN"

// ErrNotObject is returned by MapRecord for elements that are not JSON objects.
var ErrNotObject = errors.New("record is not a JSON object")

// Row is one ransomware_overview row. Nil pointers are stored as NULL.
type Row struct {
	CanonicalName          string
	NameJSON               *string
	Extensions             *string
	ExtensionPattern       *string
	RansomNoteFilenames    *string
	Comment                *string
	EncryptionAlgorithm    *string
	Decryptor              *string
	ResourcesJSON          *string
	Screenshots            *string
	MicrosoftDetectionName *string
	MicrosoftInfo          *string
	Sandbox                *string
	Iocs                   *string
	Snort                  *string
	RawJSON                string
}

// args returns the column values in insert order.
func (r *Row) args() []any {
	return []any{
		r.CanonicalName,
		r.NameJSON,
		r.Extensions,
		r.ExtensionPattern,
		r.RansomNoteFilenames,
		r.Comment,
		r.EncryptionAlgorithm,
		r.Decryptor,
		r.ResourcesJSON,
		r.Screenshots,
		r.MicrosoftDetectionName,
		r.MicrosoftInfo,
		r.Sandbox,
		r.Iocs,
		r.Snort,
		r.RawJSON,
	}
}

// MapRecord maps one array element to a Row.
func MapRecord(raw json.RawMessage) (Row, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Row{}, fmt.Errorf("%w: %v", ErrNotObject, err)
	}
	if fields == nil {
		return Row{}, fmt.Errorf("%w: null", ErrNotObject)
	}

	rawJSON, err := compact(raw)
	if err != nil {
		return Row{}, err
	}

	return Row{
		CanonicalName:          CanonicalName(fields["name"]),
		NameJSON:               jsonText(fields["name"]),
		Extensions:             normText(fields["extensions"]),
		ExtensionPattern:       normText(fields["extensionPattern"]),
		RansomNoteFilenames:    normText(fields["ransomNoteFilenames"]),
		Comment:                normText(fields["comment"]),
		EncryptionAlgorithm:    normText(fields["encryptionAlgorithm"]),
		Decryptor:              normText(fields["decryptor"]),
		ResourcesJSON:          jsonText(fields["resources"]),
		Screenshots:            normText(fields["screenshots"]),
		MicrosoftDetectionName: normText(fields["microsoftDetectionName"]),
		MicrosoftInfo:          normText(fields["microsoftInfo"]),
		Sandbox:                normText(fields["sandbox"]),
		Iocs:                   normText(fields["iocs"]),
		Snort:                  normText(fields["snort"]),
		RawJSON:                rawJSON,
	}, nil
}

// CanonicalName derives the deduplication key from a "name" value, which is
// either a string or a list whose first element is used. Anything else, or a
// value that normalizes to nothing, yields UnknownName.
func CanonicalName(name json.RawMessage) string {
	if isNull(name) {
		return UnknownName
	}

	var first *string
	switch bytes.TrimSpace(name)[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(name, &items); err != nil || len(items) == 0 {
			return UnknownName
		}
		first = normText(items[0])
	case '"':
		first = normText(name)
	}

	if first == nil {
		return UnknownName
	}
	return *first
}

// normText renders a value as trimmed text: strings as-is, numbers and
// booleans as their literal, arrays and objects as compact JSON.
// Null, absent and blank values give nil.
func normText(v json.RawMessage) *string {
	if isNull(v) {
		return nil
	}

	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		text, cerr := compact(v)
		if cerr != nil {
			return nil
		}
		s = text
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// jsonText returns the compact JSON text of v, or nil for null and absent values.
func jsonText(v json.RawMessage) *string {
	if isNull(v) {
		return nil
	}
	s, err := compact(v)
	if err != nil {
		return nil
	}
	return &s
}

func isNull(v json.RawMessage) bool {
	t := bytes.TrimSpace(v)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func compact(v json.RawMessage) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
