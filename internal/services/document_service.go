package services

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const PDFContentType = "application/pdf"

// Document is a rendered document ready to be sent as an attachment. The
// body is plain text; the PDF media type and filename are part of the
// client contract.
type Document struct {
	Kind        DocumentKind
	Filename    string
	ContentType string
	Data        []byte
}

type DocumentService struct {
	cat *Catalog
}

func NewDocumentService(cat *Catalog) *DocumentService {
	if cat == nil {
		cat = DefaultCatalog()
	}
	return &DocumentService{cat: cat}
}

// Catalog exposes the catalog the service renders with.
func (s *DocumentService) Catalog() *Catalog { return s.cat }

// Render decodes body as the payload of kind and renders it. A body that is
// not valid JSON for the kind is an invalid error; anything that goes wrong
// while building the text is a render error and no partial output is
// returned.
func (s *DocumentService) Render(kind DocumentKind, body []byte) (*Document, error) {
	entry, ok := s.cat.Entry(kind)
	if !ok {
		return nil, NewNotFoundError("document.unknown_kind")
	}
	text, err := s.render(kind, body)
	if err != nil {
		return nil, err
	}
	return &Document{Kind: kind, Filename: entry.Filename, ContentType: PDFContentType, Data: []byte(text)}, nil
}

// RenderUnified renders an already assembled unified sheet.
func (s *DocumentService) RenderUnified(in UnifiedSheetInput) (*Document, error) {
	entry, _ := s.cat.Entry(KindUnified)
	text, err := s.guard(func() string { return renderer{cat: s.cat}.unified(in) })
	if err != nil {
		return nil, err
	}
	return &Document{Kind: KindUnified, Filename: entry.Filename, ContentType: PDFContentType, Data: []byte(text)}, nil
}

func (s *DocumentService) render(kind DocumentKind, body []byte) (string, error) {
	r := renderer{cat: s.cat}
	switch kind {
	case KindDiagnostic:
		var p diagnosticPayload
		if err := decodePayload(body, &p); err != nil {
			return "", err
		}
		return s.guard(func() string { return r.diagnostic(p.normalize()) })
	case KindSummative:
		var p summativePayload
		if err := decodePayload(body, &p); err != nil {
			return "", err
		}
		return s.guard(func() string { return r.summative(p.normalize()) })
	case KindSatisfaction:
		var p satisfactionPayload
		if err := decodePayload(body, &p); err != nil {
			return "", err
		}
		return s.guard(func() string { return r.satisfaction(p.normalize()) })
	case KindAttendance:
		var p attendancePayload
		if err := decodePayload(body, &p); err != nil {
			return "", err
		}
		rec, err := p.normalize()
		if err != nil {
			return "", err
		}
		return s.guard(func() string { return r.attendance(rec) })
	case KindContract:
		var p contractPayload
		if err := decodePayload(body, &p); err != nil {
			return "", err
		}
		return s.guard(func() string { return r.contract(p.normalize()) })
	case KindChecklist:
		var p checklistPayload
		if err := decodePayload(body, &p); err != nil {
			return "", err
		}
		return s.guard(func() string { return r.checklist(p.normalize(s.cat.Checklist)) })
	case KindUnified:
		var p unifiedSheetPayload
		if err := decodePayload(body, &p); err != nil {
			return "", err
		}
		return s.guard(func() string { return r.unified(p.normalize()) })
	default:
		return "", NewNotFoundError("document.unknown_kind")
	}
}

// guard runs fn and converts a panic into a render error.
func (s *DocumentService) guard(fn func() string) (out string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out = ""
			err = NewRenderError("document.render_failed", fmt.Errorf("panic: %v", rec))
		}
	}()
	return fn(), nil
}

func decodePayload(body []byte, v any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &ServiceError{Code: ErrorInvalid, Message: "request.invalid_json", Err: err}
	}
	return nil
}
