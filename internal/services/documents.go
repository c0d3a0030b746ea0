package services

import "strings"

var choiceLetters = []string{"a", "b", "c", "d"}

const (
	satisfactionScale  = "Excelente (10) | Bueno (8-9) | Regular (6-7) | Malo/Deficiente (5)"
	satisfactionRating = "   [  ] Excelente  [  ] Bueno  [  ] Regular  [  ] Malo"
	attendanceBlank    = "_______________________"
)

// renderer turns normalized records into document text. Every method is a
// pure function of the catalog and its input.
type renderer struct {
	cat *Catalog
}

func (r renderer) begin(kind DocumentKind) *textDoc {
	d := &textDoc{}
	d.line("%s", r.cat.Documents[kind].Title)
	d.blank()
	return d
}

func (r renderer) diagnostic(rec DiagnosticRecord) string {
	d := r.begin(KindDiagnostic)
	h := rec.Header
	d.header(
		field("Curso", h.Course),
		field("Instructor", h.Instructor),
		field("Lugar", h.Venue),
		headerField{label: "Duración", value: h.Duration, suffix: " hrs"},
		field("Fecha", h.Date),
	)
	d.line("INSTRUCCIONES: Responda las siguientes preguntas de acuerdo a sus conocimientos previos.")
	d.blank()
	for i, q := range rec.Questions {
		d.numbered(i, q.Text)
		d.answerLine()
		d.blank()
	}
	d.line("Nombre del participante: %s", strings.Repeat("_", 25))
	d.line("Fecha de aplicación: %s", strings.Repeat("_", 28))
	d.raw("Firma: " + strings.Repeat("_", 41))
	return d.String()
}

func (r renderer) summative(rec SummativeRecord) string {
	d := r.begin(KindSummative)
	d.header(standardHeader(rec.Header)...)
	d.header(
		field("Objetivo", rec.Config.Objective),
		headerField{label: "Tiempo", value: rec.Config.Minutes, suffix: " minutos"},
		headerField{label: "Valor por reactivo", value: rec.Config.ItemValue, suffix: " puntos"},
	)
	d.line("INSTRUCCIONES: Seleccione la respuesta correcta para cada pregunta.")
	d.blank()
	for i, it := range rec.Items {
		d.numbered(i, it.Prompt)
		for _, l := range choiceLetters {
			d.line("   %s) %s", l, it.Options[l])
		}
		d.blank()
	}

	d.blank()
	d.rule(50)
	d.line("HOJA DE RESPUESTAS")
	d.blank()
	for i, it := range rec.Items {
		d.line("%d. %s) %s", i+1, it.Correct, it.Options[it.Correct])
	}
	return d.String()
}

func (r renderer) satisfaction(rec SatisfactionRecord) string {
	d := r.begin(KindSatisfaction)
	h := rec.Header
	d.header(
		field("Curso", h.Course),
		field("Instructor", h.Instructor),
		field("Lugar", h.Venue),
		field("Duración", h.Duration),
		field("Horario", h.Schedule),
		field("Fecha", h.Date),
	)
	d.line("ESCALA DE EVALUACIÓN:")
	d.line(satisfactionScale)
	d.blank()
	for _, sec := range rec.Sections {
		d.line("%s", upper(sec.Name))
		d.rule(runeLen(sec.Name))
		for i, p := range sec.Prompts {
			d.numbered(i, p)
			d.line(satisfactionRating)
			d.blank()
		}
		d.blank()
	}

	d.ruled("PREGUNTAS ABIERTAS", 18)
	for i, p := range rec.OpenPrompts {
		d.numbered(i, p)
		d.answerLine()
		d.answerLine()
		d.blank()
	}
	return d.String()
}

func (r renderer) attendance(rec AttendanceRecord) string {
	d := r.begin(KindAttendance)
	d.header(standardHeader(rec.Header)...)
	d.line("No.\tNOMBRE\t\t\t\tFIRMA")
	d.rule(60)
	for i := 1; i <= rec.Rows; i++ {
		d.line("%d\t%s\t%s", i, attendanceBlank, attendanceBlank)
		d.blank()
	}
	return d.String()
}

func (r renderer) contract(rec ContractRecord) string {
	d := r.begin(KindContract)
	d.header(standardHeader(rec.Header)...)

	in := r.cat.Contract.Instructor
	d.ruled(in.Title, in.Width)
	for i, c := range in.Items {
		d.numbered(i, c)
	}

	pa := r.cat.Contract.Participant
	d.blank()
	d.ruled(pa.Title, pa.Width)
	for i, c := range pa.Items {
		d.numbered(i, c)
	}

	d.blank()
	d.blank()
	d.line("Nombre y firma del Participante: %s", strings.Repeat("_", 25))
	d.blank()
	d.line("Firma del Facilitador/Instructor: %s", strings.Repeat("_", 23))
	return d.String()
}

func (r renderer) checklist(rec ChecklistRecord) string {
	d := r.begin(KindChecklist)
	d.header(standardHeader(rec.Header)...)
	for _, cat := range rec.Categories {
		d.titled(cat.Title)
		d.line("DESCRIPCIÓN\t\t\tEXISTE\tNO EXISTE\tNOTA")
		d.rule(60)
		for _, it := range cat.Items {
			d.line("%s\t\t%s\t%s\t%s", it.Description, checkbox(it.Present), checkbox(it.Absent), it.Note)
		}
		d.blank()
	}
	return d.String()
}

func (r renderer) unified(in UnifiedSheetInput) string {
	d := r.begin(KindUnified)
	d.header(standardHeader(in.Header)...)

	d.ruled("1. RESPUESTAS DEL CUESTIONARIO FINAL (EVALUACIÓN SUMATIVA)", 60)
	for _, a := range in.Summative {
		d.line("%s. %s) %s", a.Num, a.Correct, a.Text)
	}
	d.blank()

	d.ruled("2. CRITERIOS DE LOGRO ESPERADOS (EVALUACIÓN FORMATIVA - LISTA DE COTEJO)", 70)
	for _, c := range in.ChecklistCriteria {
		d.line("* %s → Resultado Esperado: Sí", c.Description)
	}
	d.blank()

	d.ruled("3. CRITERIOS DE LOGRO ESPERADOS (EVALUACIÓN FORMATIVA - GUÍA DE OBSERVACIÓN)", 75)
	for _, c := range in.ObservationCriteria {
		d.line("* %s → Logro Máximo (%s pts)", c.Description, c.MaxPoints)
	}
	d.blank()

	d.ruled("4. RESPUESTAS DEL CUESTIONARIO INICIAL (EVALUACIÓN DIAGNÓSTICA)", 65)
	for _, a := range in.Diagnostic {
		d.line("%s. %s) %s", a.Num, a.Correct, a.Text)
	}
	return d.String()
}
