package services

import (
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	for _, k := range Kinds {
		e, ok := c.Entry(k)
		if !ok {
			t.Fatalf("missing %s", k)
		}
		if e.Kind != k {
			t.Fatalf("entry kind: want %s, got %s", k, e.Kind)
		}
		if !strings.HasSuffix(e.Filename, ".pdf") {
			t.Fatalf("%s filename %q", k, e.Filename)
		}
	}
	if len(c.Contract.Instructor.Items) != 6 || len(c.Contract.Participant.Items) != 6 {
		t.Fatalf("want 6 commitments each, got %d/%d", len(c.Contract.Instructor.Items), len(c.Contract.Participant.Items))
	}
	keys := []string{"instalaciones", "equipo", "mats", "rh", "otros"}
	for i, k := range keys {
		if c.Checklist[i].Key != k {
			t.Fatalf("checklist %d: want %s, got %s", i, k, c.Checklist[i].Key)
		}
	}
}

func TestLoadCatalogRejectsIncomplete(t *testing.T) {
	tests := map[string]string{
		"bad yaml":     "documents: [",
		"missing kind": "documents:\n  diagnostic:\n    title: X\n    filename: x.pdf\n",
		"no sections":  strings.Replace(string(catalogYAML), "\nchecklist:\n", "\nunused:\n", 1),
	}
	for name, in := range tests {
		if _, err := LoadCatalog([]byte(in)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestEntryUnknownKind(t *testing.T) {
	if _, ok := DefaultCatalog().Entry("brochure"); ok {
		t.Fatalf("unexpected entry for unknown kind")
	}
}
