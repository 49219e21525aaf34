package catalog

import (
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		found bool
	}{
		{"clean object", `{"results":[]}`, `{"results":[]}`, true},
		{"clean array", `[{"Name":"a"}]`, `[{"Name":"a"}]`, true},
		{"preamble before object", `garbage{"results":[{"Name":"a"}]}`, `{"results":[{"Name":"a"}]}`, true},
		{"preamble before array", "Preparing modules...\n[1,2]", "[1,2]", true},
		{"array before object", `[1] then {"a":1}`, `[1] then {"a":1}`, true},
		{"no json", "nothing here", "", false},
		{"empty", "", "", false},
		{"whitespace only", "   \n\t ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractJSON(tt.in)
			if found != tt.found {
				t.Fatalf("found = %v, want %v", found, tt.found)
			}
			if got != tt.want {
				t.Errorf("ExtractJSON = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParsePayloadBareList(t *testing.T) {
	p, err := parsePayload(`[{"Name":"a"},{"Name":"b"}]`)
	if err != nil {
		t.Fatalf("parsePayload: %v", err)
	}
	if len(p.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(p.Entries))
	}
	if p.Entries[0]["Name"] != "a" {
		t.Errorf("first entry = %v", p.Entries[0])
	}
	if p.Diagnostics != nil {
		t.Errorf("bare list should carry no diagnostics, got %v", p.Diagnostics)
	}
}

func TestParsePayloadObjectWithResults(t *testing.T) {
	doc := `{"results":[{"Name":"a"}],"diagnostics":{"pathsToTry":["a*"],"attempts":[{"name":"all_agents_dir=false","pattern":"a*","success":true,"count":1}]}}`

	p, err := parsePayload(doc)
	if err != nil {
		t.Fatalf("parsePayload: %v", err)
	}
	if len(p.Entries) != 1 || p.Entries[0]["Name"] != "a" {
		t.Errorf("entries = %v", p.Entries)
	}
	if p.Diagnostics == nil {
		t.Fatal("diagnostics should be populated")
	}

	attempts := AttemptsFromDiagnostics(p.Diagnostics)
	if len(attempts) != 1 {
		t.Fatalf("attempts = %d, want 1", len(attempts))
	}
	a := attempts[0]
	if a.Name != "all_agents_dir=false" || a.Pattern != "a*" || !a.Success || a.MatchCount != 1 {
		t.Errorf("attempt = %+v", a)
	}
}

func TestParsePayloadSingleResultObject(t *testing.T) {
	// The shell unwraps one-element arrays into a bare object.
	p, err := parsePayload(`{"results":{"Name":"only"},"diagnostics":{}}`)
	if err != nil {
		t.Fatalf("parsePayload: %v", err)
	}
	if len(p.Entries) != 1 || p.Entries[0]["Name"] != "only" {
		t.Errorf("entries = %v", p.Entries)
	}
}

func TestParsePayloadNullResults(t *testing.T) {
	p, err := parsePayload(`{"results":null,"diagnostics":{}}`)
	if err != nil {
		t.Fatalf("parsePayload: %v", err)
	}
	if len(p.Entries) != 0 {
		t.Errorf("entries = %v, want none", p.Entries)
	}
}

func TestParsePayloadObjectWithoutResults(t *testing.T) {
	p, err := parsePayload(`{"Name":"bare"}`)
	if err != nil {
		t.Fatalf("parsePayload: %v", err)
	}
	if len(p.Entries) != 1 || p.Entries[0]["Name"] != "bare" {
		t.Errorf("entries = %v", p.Entries)
	}
}

func TestAttemptsFromDiagnosticsMalformed(t *testing.T) {
	tests := []struct {
		name string
		diag map[string]interface{}
	}{
		{"missing", map[string]interface{}{}},
		{"wrong type", map[string]interface{}{"attempts": "nope"}},
		{"nil", map[string]interface{}{"attempts": nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AttemptsFromDiagnostics(tt.diag); len(got) != 0 {
				t.Errorf("want empty attempts, got %v", got)
			}
		})
	}
}
