package catalog

import (
	"reflect"
	"strings"
	"testing"
)

func TestGenerateVariantsEmptyPath(t *testing.T) {
	got := GenerateVariants("")
	if !reflect.DeepEqual(got, []string{"*"}) {
		t.Errorf("GenerateVariants(\"\") = %v, want [*]", got)
	}
}

func TestGenerateVariantsPlainPath(t *testing.T) {
	got := GenerateVariants(`D:\toBackup`)

	want := []string{
		`D:\toBackup`,
		`D:\toBackup*`,
		`*D:\toBackup*`,
		`toBackup`,
		`toBackup*`,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GenerateVariants = %v, want %v", got, want)
	}
}

func TestGenerateVariantsWildcardedPath(t *testing.T) {
	got := GenerateVariants(`C:\Data\Projects\*`)

	for _, want := range []string{`C:\Data\Projects\*`, `Data\Projects\*`, `Projects*`} {
		if !contains(got, want) {
			t.Errorf("variants %v missing %q", got, want)
		}
	}

	// An existing wildcard suppresses the plain suffix/prefix forms for that
	// exact literal.
	for _, v := range got {
		if v == `C:\Data\Projects\**` || v == `*C:\Data\Projects\**` {
			t.Errorf("wildcarded input should not gain extra suffix forms, got %q", v)
		}
	}
}

func TestGenerateVariantsUNCPath(t *testing.T) {
	got := GenerateVariants(`\\fileserver\share\folder`)

	for _, want := range []string{
		`\\fileserver\share\folder`,
		`share\folder`,
		`share\folder*`,
		`folder*`,
	} {
		if !contains(got, want) {
			t.Errorf("variants %v missing %q", got, want)
		}
	}
}

func TestGenerateVariantsNoDuplicatesNoBlanks(t *testing.T) {
	paths := []string{
		"",
		"*",
		`C:\`,
		`C:\Data`,
		`C:\Data\file.txt`,
		`\\srv\s\x`,
		`toBackup`,
		`a?b`,
	}

	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			got := GenerateVariants(p)
			seen := make(map[string]bool)
			for _, v := range got {
				if strings.TrimSpace(v) == "" {
					t.Errorf("blank variant in %v", got)
				}
				if seen[v] {
					t.Errorf("duplicate variant %q in %v", v, got)
				}
				seen[v] = true
			}
		})
	}
}

func TestGenerateVariantsRawPathFirst(t *testing.T) {
	got := GenerateVariants(`E:\archive`)
	if len(got) == 0 || got[0] != `E:\archive` {
		t.Errorf("raw path should come first, got %v", got)
	}
}

func TestLeafSegment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`C:\Data\Projects\*`, "Projects"},
		{`C:\Data\file.txt`, "file.txt"},
		{`toBackup`, "toBackup"},
		{`*`, ""},
		{``, ""},
		{`\\srv\share\x`, "x"},
	}

	for _, tt := range tests {
		if got := leafSegment(tt.in); got != tt.want {
			t.Errorf("leafSegment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
