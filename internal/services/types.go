package services

import "time"

// Header is the normalized course block printed at the top of every document.
type Header struct {
	Course     string
	Instructor string
	Venue      string
	Date       string
	Duration   string
	Schedule   string
}

type Question struct {
	Text string
}

type DiagnosticRecord struct {
	Header    Header
	Questions []Question
}

type SummativeConfig struct {
	Objective string
	Minutes   string
	ItemValue string
}

// MultipleChoiceItem keeps options keyed by letter; a missing letter renders
// as an empty option.
type MultipleChoiceItem struct {
	Prompt  string
	Options map[string]string
	Correct string
}

type SummativeRecord struct {
	Header Header
	Config SummativeConfig
	Items  []MultipleChoiceItem
}

type SatisfactionSection struct {
	Name    string
	Prompts []string
}

type SatisfactionRecord struct {
	Header      Header
	Sections    []SatisfactionSection
	OpenPrompts []string
}

type AttendanceRecord struct {
	Header Header
	Rows   int
}

type ContractRecord struct {
	Header Header
}

type ChecklistItem struct {
	Description string
	Present     bool
	Absent      bool
	Note        string
}

type ChecklistCategory struct {
	Title string
	Items []ChecklistItem
}

type ChecklistRecord struct {
	Header     Header
	Categories []ChecklistCategory
}

type AnswerRecord struct {
	Num     string
	Correct string
	Text    string
}

type CriterionRecord struct {
	Num         string
	Description string
}

type ScoredCriterionRecord struct {
	Num         string
	Description string
	MaxPoints   string
}

// UnifiedSheetInput is the instructor answer sheet assembled from the
// answer keys of every evaluation of a course.
type UnifiedSheetInput struct {
	Header              Header
	Diagnostic          []AnswerRecord
	Summative           []AnswerRecord
	ChecklistCriteria   []CriterionRecord
	ObservationCriteria []ScoredCriterionRecord
}

// AccessKey is a registration key. Nothing records issued keys.
type AccessKey struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
