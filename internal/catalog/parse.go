package catalog

import (
	"encoding/json"
	"strings"
)

// payload is the document the search script prints to stdout: either a bare
// entry list or an object carrying results plus diagnostics.
type payload struct {
	Entries     []Entry
	Diagnostics map[string]interface{}
}

// ExtractJSON locates the JSON document in shell output. The shell
// occasionally emits non-JSON preamble (progress text, culture warnings)
// before the document, so parsing starts at the first '[' or '{'.
func ExtractJSON(stdout string) (string, bool) {
	trimmed := strings.TrimSpace(stdout)
	if trimmed == "" {
		return "", false
	}

	first := -1
	for _, c := range []string{"[", "{"} {
		if i := strings.Index(trimmed, c); i != -1 && (first == -1 || i < first) {
			first = i
		}
	}
	if first == -1 {
		return "", false
	}
	return trimmed[first:], true
}

// parsePayload decodes shell stdout into entries plus diagnostics. It accepts
// a bare list, an object with "results"/"diagnostics" fields, or a single
// entry object (the shell unwraps one-element arrays).
func parsePayload(doc string) (*payload, error) {
	var raw interface{}
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		return nil, err
	}

	p := &payload{}
	switch v := raw.(type) {
	case []interface{}:
		p.Entries = toEntries(v)
	case map[string]interface{}:
		if results, ok := v["results"]; ok {
			if diag, ok := v["diagnostics"].(map[string]interface{}); ok {
				p.Diagnostics = diag
			}
			switch r := results.(type) {
			case []interface{}:
				p.Entries = toEntries(r)
			case map[string]interface{}:
				p.Entries = []Entry{Entry(r)}
			case nil:
				// zero matches
			}
		} else {
			p.Entries = []Entry{Entry(v)}
		}
	}

	return p, nil
}

func toEntries(items []interface{}) []Entry {
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]interface{}); ok {
			entries = append(entries, Entry(m))
		}
	}
	return entries
}

// AttemptsFromDiagnostics extracts the typed attempt log from a diagnostics
// map. Missing or malformed attempt data yields an empty slice rather than an
// error; diagnostics are best-effort by nature.
func AttemptsFromDiagnostics(diag map[string]interface{}) []AttemptRecord {
	raw, ok := diag["attempts"]
	if !ok {
		return nil
	}

	// Round-trip through JSON rather than walking interface{} shapes by hand.
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var records []AttemptRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil
	}
	return records
}
