package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// printBody writes body after label: indented when it is JSON, raw otherwise.
func printBody(w io.Writer, label string, body []byte) {
	if len(bytes.TrimSpace(body)) == 0 {
		fmt.Fprintln(w, "Response body is empty.")
		return
	}

	if pretty, ok := indent(body); ok {
		fmt.Fprintf(w, "%s: %s\n", label, pretty)
		return
	}
	fmt.Fprintf(w, "%s (raw): %s\n", label, body)
}

func indent(body []byte) (string, bool) {
	if !json.Valid(body) {
		return "", false
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(body), "", "  "); err != nil {
		return "", false
	}
	return buf.String(), true
}
