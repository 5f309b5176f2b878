package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", "Response body is empty.\n"},
		{"whitespace", "  \n", "Response body is empty.\n"},
		{"json", `{"a":1}`, "Response: {\n  \"a\": 1\n}\n"},
		{"raw", "oops", "Response (raw): oops\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			printBody(&out, "Response", []byte(tt.body))
			assert.Equal(t, tt.want, out.String())
		})
	}
}
