package services

// Wire payloads. Field names are part of the public contract and differ per
// document kind; each payload normalizes into the formatter records.

// courseHeader is the short header used by most documents.
type courseHeader struct {
	Curso      Text `json:"curso"`
	Instructor Text `json:"instructor"`
	Lugar      Text `json:"lugar"`
	Duracion   Text `json:"duracion"`
	Fecha      Text `json:"fecha"`
}

func (h *courseHeader) normalize() Header {
	if h == nil {
		return Header{}
	}
	return Header{
		Course:     h.Curso.String(),
		Instructor: h.Instructor.String(),
		Venue:      h.Lugar.String(),
		Duration:   h.Duracion.String(),
		Date:       h.Fecha.String(),
	}
}

// satisfactionHeader is the long-form header of the satisfaction survey.
type satisfactionHeader struct {
	NombreCurso      Text `json:"nombreCurso"`
	NombreInstructor Text `json:"nombreInstructor"`
	LugarImparticion Text `json:"lugarImparticion"`
	DuracionCurso    Text `json:"duracionCurso"`
	Horario          Text `json:"horario"`
	FechaImparticion Text `json:"fechaImparticion"`
}

func (h *satisfactionHeader) normalize() Header {
	if h == nil {
		return Header{}
	}
	return Header{
		Course:     h.NombreCurso.String(),
		Instructor: h.NombreInstructor.String(),
		Venue:      h.LugarImparticion.String(),
		Duration:   h.DuracionCurso.String(),
		Schedule:   h.Horario.String(),
		Date:       h.FechaImparticion.String(),
	}
}

type diagnosticPayload struct {
	Encabezado *courseHeader `json:"encabezado"`
	Preguntas  []struct {
		Texto Text `json:"texto"`
	} `json:"preguntas"`
}

func (p *diagnosticPayload) normalize() DiagnosticRecord {
	rec := DiagnosticRecord{Header: p.Encabezado.normalize(), Questions: make([]Question, 0, len(p.Preguntas))}
	for _, q := range p.Preguntas {
		rec.Questions = append(rec.Questions, Question{Text: q.Texto.String()})
	}
	return rec
}

type summativePayload struct {
	Encabezado    *courseHeader `json:"encabezado"`
	Configuracion *struct {
		Objetivo      Text `json:"objetivo"`
		Tiempo        Text `json:"tiempo"`
		ValorReactivo Text `json:"valor_reactivo"`
	} `json:"configuracion"`
	Reactivos []struct {
		Pregunta Text            `json:"pregunta"`
		Opciones map[string]Text `json:"opciones"`
		Correcta Value           `json:"correcta"`
	} `json:"reactivos"`
}

func (p *summativePayload) normalize() SummativeRecord {
	rec := SummativeRecord{Header: p.Encabezado.normalize(), Config: SummativeConfig{Minutes: "0", ItemValue: "0"}}
	if c := p.Configuracion; c != nil {
		rec.Config = SummativeConfig{
			Objective: c.Objetivo.String(),
			Minutes:   c.Tiempo.Or("0"),
			ItemValue: c.ValorReactivo.Or("0"),
		}
	}
	rec.Items = make([]MultipleChoiceItem, 0, len(p.Reactivos))
	for _, r := range p.Reactivos {
		opts := make(map[string]string, len(r.Opciones))
		for k, v := range r.Opciones {
			opts[k] = v.String()
		}
		rec.Items = append(rec.Items, MultipleChoiceItem{Prompt: r.Pregunta.String(), Options: opts, Correct: r.Correcta.String()})
	}
	return rec
}

type satisfactionPayload struct {
	Encabezado             *satisfactionHeader `json:"encabezado"`
	PreguntasSeleccionadas OrderedSections     `json:"preguntasSeleccionadas"`
	PreguntasAbiertas      []Value             `json:"preguntasAbiertas"`
}

func (p *satisfactionPayload) normalize() SatisfactionRecord {
	rec := SatisfactionRecord{
		Header:      p.Encabezado.normalize(),
		Sections:    []SatisfactionSection(p.PreguntasSeleccionadas),
		OpenPrompts: make([]string, 0, len(p.PreguntasAbiertas)),
	}
	for _, q := range p.PreguntasAbiertas {
		rec.OpenPrompts = append(rec.OpenPrompts, q.String())
	}
	return rec
}

const (
	defaultAttendanceRows = 10
	maxAttendanceRows     = 1000
)

type attendancePayload struct {
	Header *courseHeader `json:"header"`
	Num    Count         `json:"num"`
}

func (p *attendancePayload) normalize() (AttendanceRecord, error) {
	rows := defaultAttendanceRows
	if p.Num.Set {
		rows = p.Num.N
	}
	if rows > maxAttendanceRows {
		return AttendanceRecord{}, NewInvalidError("document.too_many_rows")
	}
	if rows < 0 {
		rows = 0
	}
	return AttendanceRecord{Header: p.Header.normalize(), Rows: rows}, nil
}

type contractPayload struct {
	Header *courseHeader `json:"header"`
}

func (p *contractPayload) normalize() ContractRecord {
	return ContractRecord{Header: p.Header.normalize()}
}

type checklistEntry struct {
	Desc     Text `json:"desc"`
	Existe   Flag `json:"existe"`
	NoExiste Flag `json:"noExiste"`
	Nota     Text `json:"nota"`
}

type checklistPayload struct {
	Header        *courseHeader    `json:"header"`
	Instalaciones []checklistEntry `json:"instalaciones"`
	Equipo        []checklistEntry `json:"equipo"`
	Mats          []checklistEntry `json:"mats"`
	RH            []checklistEntry `json:"rh"`
	Otros         []checklistEntry `json:"otros"`
}

func (p *checklistPayload) category(key string) []checklistEntry {
	switch key {
	case "instalaciones":
		return p.Instalaciones
	case "equipo":
		return p.Equipo
	case "mats":
		return p.Mats
	case "rh":
		return p.RH
	case "otros":
		return p.Otros
	}
	return nil
}

func (p *checklistPayload) normalize(sections []checklistSection) ChecklistRecord {
	rec := ChecklistRecord{Header: p.Header.normalize(), Categories: make([]ChecklistCategory, 0, len(sections))}
	for _, sec := range sections {
		entries := p.category(sec.Key)
		cat := ChecklistCategory{Title: sec.Title, Items: make([]ChecklistItem, 0, len(entries))}
		for _, e := range entries {
			cat.Items = append(cat.Items, ChecklistItem{
				Description: truncateRunes(e.Desc.String(), 30),
				Present:     bool(e.Existe),
				Absent:      bool(e.NoExiste),
				Note:        truncateRunes(e.Nota.String(), 20),
			})
		}
		rec.Categories = append(rec.Categories, cat)
	}
	return rec
}

type wireAnswer struct {
	Num      Value `json:"num"`
	Correcta Value `json:"correcta"`
	Texto    Value `json:"texto"`
}

type wireCriterion struct {
	Num         Value `json:"num"`
	Descripcion Value `json:"descripcion"`
}

type wireScoredCriterion struct {
	Num         Value `json:"num"`
	Descripcion Value `json:"descripcion"`
	MaxPuntos   Value `json:"maxPuntos"`
}

type unifiedSheetPayload struct {
	Header          *courseHeader         `json:"header"`
	Diagnostica     []wireAnswer          `json:"diagnostica"`
	Sumativa        []wireAnswer          `json:"sumativa"`
	FormativaCotejo []wireCriterion       `json:"formativaCotejo"`
	FormativaGuia   []wireScoredCriterion `json:"formativaGuia"`
}

func (p *unifiedSheetPayload) normalize() UnifiedSheetInput {
	in := UnifiedSheetInput{Header: p.Header.normalize()}
	answers := func(ws []wireAnswer) []AnswerRecord {
		out := make([]AnswerRecord, 0, len(ws))
		for _, w := range ws {
			out = append(out, AnswerRecord{Num: w.Num.String(), Correct: w.Correcta.String(), Text: w.Texto.String()})
		}
		return out
	}
	in.Diagnostic = answers(p.Diagnostica)
	in.Summative = answers(p.Sumativa)
	for _, c := range p.FormativaCotejo {
		in.ChecklistCriteria = append(in.ChecklistCriteria, CriterionRecord{Num: c.Num.String(), Description: c.Descripcion.String()})
	}
	for _, c := range p.FormativaGuia {
		in.ObservationCriteria = append(in.ObservationCriteria, ScoredCriterionRecord{Num: c.Num.String(), Description: c.Descripcion.String(), MaxPoints: c.MaxPuntos.String()})
	}
	return in
}
