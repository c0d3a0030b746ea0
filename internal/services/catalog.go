package services

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DocumentKind names one of the document templates.
type DocumentKind string

const (
	KindDiagnostic   DocumentKind = "diagnostic"
	KindSummative    DocumentKind = "summative"
	KindSatisfaction DocumentKind = "satisfaction"
	KindAttendance   DocumentKind = "attendance"
	KindContract     DocumentKind = "contract"
	KindChecklist    DocumentKind = "checklist"
	KindUnified      DocumentKind = "unified"
)

// Kinds lists every document kind in catalog order.
var Kinds = []DocumentKind{
	KindDiagnostic, KindSummative, KindSatisfaction, KindAttendance,
	KindContract, KindChecklist, KindUnified,
}

// CatalogEntry describes how a kind is presented to the client.
type CatalogEntry struct {
	Kind     DocumentKind `yaml:"-"`
	Title    string       `yaml:"title"`
	Filename string       `yaml:"filename"`
}

type commitmentList struct {
	Title string   `yaml:"title"`
	Width int      `yaml:"width"`
	Items []string `yaml:"items"`
}

type checklistSection struct {
	Key   string `yaml:"key"`
	Title string `yaml:"title"`
}

// Catalog holds the fixed template text of every document.
type Catalog struct {
	Documents map[DocumentKind]CatalogEntry `yaml:"documents"`
	Contract  struct {
		Instructor  commitmentList `yaml:"instructor"`
		Participant commitmentList `yaml:"participant"`
	} `yaml:"contract"`
	Checklist []checklistSection `yaml:"checklist"`
}

//go:embed catalog.yaml
var catalogYAML []byte

// LoadCatalog parses a catalog definition and checks that every kind is
// present.
func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for _, k := range Kinds {
		e, ok := c.Documents[k]
		if !ok || e.Title == "" || e.Filename == "" {
			return nil, fmt.Errorf("catalog: missing document %q", k)
		}
		e.Kind = k
		c.Documents[k] = e
	}
	if len(c.Checklist) != 5 {
		return nil, fmt.Errorf("catalog: want 5 checklist sections, got %d", len(c.Checklist))
	}
	return &c, nil
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(catalogYAML)
	if err != nil {
		// The embedded file is covered by tests.
		panic(err)
	}
	return c
}

// Entry returns the entry for kind.
func (c *Catalog) Entry(kind DocumentKind) (CatalogEntry, bool) {
	e, ok := c.Documents[kind]
	return e, ok
}
