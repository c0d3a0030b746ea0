package services

import (
	"context"
	"time"
)

// DemoAnswerKeys serves the same sample answer keys for every course. It
// stands in until evaluations are persisted.
type DemoAnswerKeys struct {
	now func() time.Time
}

func NewDemoAnswerKeys() *DemoAnswerKeys {
	return &DemoAnswerKeys{now: time.Now}
}

// CourseHeader dates the bundle today, day/month/year without padding.
func (d *DemoAnswerKeys) CourseHeader(context.Context, string) (Header, error) {
	return Header{
		Course:     "Curso EC0301 Demo",
		Instructor: "Instructor Demo",
		Venue:      "Aula Virtual",
		Date:       d.now().Format("2/1/2006"),
	}, nil
}

func (d *DemoAnswerKeys) DiagnosticKey(context.Context, string) ([]AnswerRecord, error) {
	return []AnswerRecord{
		{Num: "1", Correct: "b", Text: "Respuesta diagnóstica 1"},
		{Num: "2", Correct: "a", Text: "Respuesta diagnóstica 2"},
	}, nil
}

func (d *DemoAnswerKeys) SummativeKey(context.Context, string) ([]AnswerRecord, error) {
	return []AnswerRecord{
		{Num: "1", Correct: "b", Text: "GAFI"},
		{Num: "2", Correct: "c", Text: "UIF"},
		{Num: "3", Correct: "a", Text: "Respuesta sumativa 3"},
	}, nil
}

func (d *DemoAnswerKeys) ChecklistCriteria(context.Context, string) ([]CriterionRecord, error) {
	return []CriterionRecord{
		{Num: "1", Description: "El producto está redactado de forma clara"},
		{Num: "2", Description: "Cumple con los criterios establecidos"},
	}, nil
}

func (d *DemoAnswerKeys) ObservationCriteria(context.Context, string) ([]ScoredCriterionRecord, error) {
	return []ScoredCriterionRecord{
		{Num: "1", Description: "Participa activamente en discusiones", MaxPoints: "2"},
		{Num: "2", Description: "Demuestra comprensión del tema", MaxPoints: "3"},
	}, nil
}

var _ AnswerKeyStore = (*DemoAnswerKeys)(nil)
