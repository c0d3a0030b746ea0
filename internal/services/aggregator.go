package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// AnswerKeyStore supplies the stored answer keys of each evaluation of a
// course. Implementations return a not-found error for unknown courses.
type AnswerKeyStore interface {
	CourseHeader(ctx context.Context, courseID string) (Header, error)
	DiagnosticKey(ctx context.Context, courseID string) ([]AnswerRecord, error)
	SummativeKey(ctx context.Context, courseID string) ([]AnswerRecord, error)
	ChecklistCriteria(ctx context.Context, courseID string) ([]CriterionRecord, error)
	ObservationCriteria(ctx context.Context, courseID string) ([]ScoredCriterionRecord, error)
}

// ResponseAggregator assembles the unified answer sheet input by querying
// every evaluation concurrently.
type ResponseAggregator struct {
	store AnswerKeyStore
}

func NewResponseAggregator(store AnswerKeyStore) *ResponseAggregator {
	return &ResponseAggregator{store: store}
}

// Collect fails as a whole if any evaluation fails.
func (a *ResponseAggregator) Collect(ctx context.Context, courseID string) (*UnifiedSheetInput, error) {
	var in UnifiedSheetInput
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Header, err = a.store.CourseHeader(ctx, courseID)
		return wrapSource("header", err)
	})
	g.Go(func() (err error) {
		in.Diagnostic, err = a.store.DiagnosticKey(ctx, courseID)
		return wrapSource("diagnostic", err)
	})
	g.Go(func() (err error) {
		in.Summative, err = a.store.SummativeKey(ctx, courseID)
		return wrapSource("summative", err)
	})
	g.Go(func() (err error) {
		in.ChecklistCriteria, err = a.store.ChecklistCriteria(ctx, courseID)
		return wrapSource("checklist", err)
	})
	g.Go(func() (err error) {
		in.ObservationCriteria, err = a.store.ObservationCriteria(ctx, courseID)
		return wrapSource("observation", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &in, nil
}

func wrapSource(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("collect %s: %w", name, err)
}

// Collected is the JSON shape of an aggregated bundle. It is accepted back
// unchanged by the unified sheet renderer.
type Collected struct {
	Header struct {
		Curso      string `json:"curso"`
		Instructor string `json:"instructor"`
		Lugar      string `json:"lugar"`
		Fecha      string `json:"fecha"`
	} `json:"header"`
	Diagnostica     []CollectedAnswer    `json:"diagnostica"`
	Sumativa        []CollectedAnswer    `json:"sumativa"`
	FormativaCotejo []CollectedCriterion `json:"formativaCotejo"`
	FormativaGuia   []CollectedScored    `json:"formativaGuia"`
}

type CollectedAnswer struct {
	Num      any    `json:"num"`
	Correcta string `json:"correcta"`
	Texto    string `json:"texto"`
}

type CollectedCriterion struct {
	Num         any    `json:"num"`
	Descripcion string `json:"descripcion"`
}

type CollectedScored struct {
	Num         any    `json:"num"`
	Descripcion string `json:"descripcion"`
	MaxPuntos   any    `json:"maxPuntos"`
}

// NewCollected converts an aggregated bundle to its wire form. Numeric
// fields are emitted as JSON numbers when they parse as such.
func NewCollected(in *UnifiedSheetInput) Collected {
	var c Collected
	c.Header.Curso = in.Header.Course
	c.Header.Instructor = in.Header.Instructor
	c.Header.Lugar = in.Header.Venue
	c.Header.Fecha = in.Header.Date
	c.Diagnostica = collectedAnswers(in.Diagnostic)
	c.Sumativa = collectedAnswers(in.Summative)
	c.FormativaCotejo = make([]CollectedCriterion, 0, len(in.ChecklistCriteria))
	for _, r := range in.ChecklistCriteria {
		c.FormativaCotejo = append(c.FormativaCotejo, CollectedCriterion{Num: number(r.Num), Descripcion: r.Description})
	}
	c.FormativaGuia = make([]CollectedScored, 0, len(in.ObservationCriteria))
	for _, r := range in.ObservationCriteria {
		c.FormativaGuia = append(c.FormativaGuia, CollectedScored{Num: number(r.Num), Descripcion: r.Description, MaxPuntos: number(r.MaxPoints)})
	}
	return c
}

func collectedAnswers(rs []AnswerRecord) []CollectedAnswer {
	out := make([]CollectedAnswer, 0, len(rs))
	for _, r := range rs {
		out = append(out, CollectedAnswer{Num: number(r.Num), Correcta: r.Correct, Texto: r.Text})
	}
	return out
}

func number(s string) any {
	t := strings.TrimSpace(s)
	if t != "" && (t[0] == '-' || (t[0] >= '0' && t[0] <= '9')) && json.Valid([]byte(t)) {
		return json.Number(t)
	}
	return s
}
