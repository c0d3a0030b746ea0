package services

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func renderText(t *testing.T, kind DocumentKind, body string) string {
	t.Helper()
	doc, err := NewDocumentService(nil).Render(kind, []byte(body))
	if err != nil {
		t.Fatalf("render %s: %v", kind, err)
	}
	return string(doc.Data)
}

func underscores(n int) string { return strings.Repeat("_", n) }

func TestRenderDiagnostic(t *testing.T) {
	got := renderText(t, KindDiagnostic, `{
		"encabezado": {"curso": "Prevención de lavado", "instructor": "Ana", "lugar": "CDMX", "duracion": 8, "fecha": "2024-05-01"},
		"preguntas": [{"texto": "¿Qué es el GAFI?"}, {"texto": "Defina UIF"}]
	}`)
	want := "EVALUACIÓN DIAGNÓSTICA\n\n" +
		"Curso: Prevención de lavado\n" +
		"Instructor: Ana\n" +
		"Lugar: CDMX\n" +
		"Duración: 8 hrs\n" +
		"Fecha: 2024-05-01\n\n" +
		"INSTRUCCIONES: Responda las siguientes preguntas de acuerdo a sus conocimientos previos.\n\n" +
		"1. ¿Qué es el GAFI?\n" + underscores(60) + "\n\n" +
		"2. Defina UIF\n" + underscores(60) + "\n\n" +
		"Nombre del participante: " + underscores(25) + "\n" +
		"Fecha de aplicación: " + underscores(28) + "\n" +
		"Firma: " + underscores(41)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("diagnostic mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderDiagnosticNoQuestions(t *testing.T) {
	got := renderText(t, KindDiagnostic, `{"encabezado": {"curso": "X"}, "preguntas": []}`)
	if strings.Contains(got, "1. ") {
		t.Fatalf("unexpected numbered question in %q", got)
	}
	if !strings.Contains(got, "sus conocimientos previos.\n\nNombre del participante: ") {
		t.Fatalf("signature block should follow instructions directly: %q", got)
	}
	if !strings.Contains(got, "Duración:  hrs\n") {
		t.Fatalf("missing duration should render empty: %q", got)
	}
}

func TestRenderSummative(t *testing.T) {
	got := renderText(t, KindSummative, `{
		"encabezado": {"curso": "AML", "instructor": "Luis", "lugar": "Sala 2", "fecha": "01/06/2024"},
		"configuracion": {"objetivo": "Evaluar", "tiempo": 30, "valor_reactivo": "10"},
		"reactivos": [
			{"pregunta": "Organismo internacional", "opciones": {"a": "OCDE", "b": "GAFI", "c": "ONU", "d": "FMI"}, "correcta": "b"}
		]
	}`)
	want := "EVALUACIÓN SUMATIVA\n\n" +
		"Curso: AML\nInstructor: Luis\nLugar: Sala 2\nFecha: 01/06/2024\n\n" +
		"Objetivo: Evaluar\nTiempo: 30 minutos\nValor por reactivo: 10 puntos\n\n" +
		"INSTRUCCIONES: Seleccione la respuesta correcta para cada pregunta.\n\n" +
		"1. Organismo internacional\n" +
		"   a) OCDE\n   b) GAFI\n   c) ONU\n   d) FMI\n\n" +
		"\n" + strings.Repeat("=", 50) + "\n" +
		"HOJA DE RESPUESTAS\n\n" +
		"1. b) GAFI\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summative mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderSummativeDefaults(t *testing.T) {
	got := renderText(t, KindSummative, `{"reactivos": [{"pregunta": "P", "opciones": {"a": "x"}, "correcta": "c"}]}`)
	for _, want := range []string{
		"Objetivo: \n",
		"Tiempo: 0 minutos\n",
		"Valor por reactivo: 0 puntos\n",
		"   b) \n",
		"1. c) \n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("want %q in:\n%s", want, got)
		}
	}
}

func TestRenderSatisfactionKeepsSectionOrder(t *testing.T) {
	got := renderText(t, KindSatisfaction, `{
		"encabezado": {"nombreCurso": "AML", "nombreInstructor": "Ana", "lugarImparticion": "CDMX", "duracionCurso": "8 horas", "horario": "9-17", "fechaImparticion": "2024-05-01"},
		"preguntasSeleccionadas": {"Organización": ["Puntualidad"], "Instructor": ["Domina el tema", "Resuelve dudas"]},
		"preguntasAbiertas": ["¿Qué mejorarías?"]
	}`)
	rating := "   [  ] Excelente  [  ] Bueno  [  ] Regular  [  ] Malo\n"
	want := "EVALUACIÓN DE SATISFACCIÓN\n\n" +
		"Curso: AML\nInstructor: Ana\nLugar: CDMX\nDuración: 8 horas\nHorario: 9-17\nFecha: 2024-05-01\n\n" +
		"ESCALA DE EVALUACIÓN:\n" +
		"Excelente (10) | Bueno (8-9) | Regular (6-7) | Malo/Deficiente (5)\n\n" +
		"ORGANIZACIÓN\n" + strings.Repeat("=", 12) + "\n" +
		"1. Puntualidad\n" + rating + "\n" +
		"\n" +
		"INSTRUCTOR\n" + strings.Repeat("=", 10) + "\n" +
		"1. Domina el tema\n" + rating + "\n" +
		"2. Resuelve dudas\n" + rating + "\n" +
		"\n" +
		"PREGUNTAS ABIERTAS\n" + strings.Repeat("=", 18) + "\n" +
		"1. ¿Qué mejorarías?\n" + underscores(60) + "\n" + underscores(60) + "\n\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("satisfaction mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderAttendance(t *testing.T) {
	blank := underscores(23)
	tests := []struct {
		name string
		body string
		rows int
	}{
		{name: "default", body: `{}`, rows: 10},
		{name: "null", body: `{"num": null}`, rows: 10},
		{name: "explicit", body: `{"num": 3}`, rows: 3},
		{name: "string", body: `{"num": "2"}`, rows: 2},
		{name: "zero", body: `{"num": 0}`, rows: 0},
		{name: "negative", body: `{"num": -4}`, rows: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderText(t, KindAttendance, tt.body)
			if n := strings.Count(got, "\t"+blank+"\t"+blank+"\n"); n != tt.rows {
				t.Fatalf("want %d rows, got %d:\n%s", tt.rows, n, got)
			}
		})
	}

	got := renderText(t, KindAttendance, `{"header": {"curso": "AML", "fecha": "hoy"}, "num": 2}`)
	want := "LISTA DE ASISTENCIA\n\n" +
		"Curso: AML\nInstructor: \nLugar: \nFecha: hoy\n\n" +
		"No.\tNOMBRE\t\t\t\tFIRMA\n" + strings.Repeat("=", 60) + "\n" +
		"1\t" + blank + "\t" + blank + "\n\n" +
		"2\t" + blank + "\t" + blank + "\n\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("attendance mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderAttendanceTooManyRows(t *testing.T) {
	_, err := NewDocumentService(nil).Render(KindAttendance, []byte(`{"num": 1001}`))
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorInvalid || se.Message != "document.too_many_rows" {
		t.Fatalf("want invalid too_many_rows, got %v", err)
	}
}

func TestRenderContract(t *testing.T) {
	got := renderText(t, KindContract, `{"header": {"curso": "AML", "instructor": "Ana", "lugar": "CDMX", "fecha": "2024-05-01"}}`)
	wantParts := []string{
		"CONTRATO DE APRENDIZAJE\n\nCurso: AML\nInstructor: Ana\nLugar: CDMX\nFecha: 2024-05-01\n\n",
		"1. COMPROMISOS DEL FACILITADOR/INSTRUCTOR\n" + strings.Repeat("=", 40) + "\n1. Proporcionar materiales claros y completos\n",
		"6. Fomentar la participación activa\n\n2. COMPROMISOS DEL PARTICIPANTE\n" + strings.Repeat("=", 32) + "\n",
		"6. Cumplir con los objetivos de aprendizaje\n\n\nNombre y firma del Participante: " + underscores(25) + "\n\n",
		"Firma del Facilitador/Instructor: " + underscores(23) + "\n",
	}
	for _, w := range wantParts {
		if !strings.Contains(got, w) {
			t.Fatalf("want %q in:\n%s", w, got)
		}
	}
	if !strings.HasSuffix(got, underscores(23)+"\n") {
		t.Fatalf("contract should end with the instructor signature: %q", got)
	}
}

func TestRenderChecklist(t *testing.T) {
	got := renderText(t, KindChecklist, `{
		"header": {"curso": "AML"},
		"instalaciones": [{"desc": "Aula con capacidad para veinte personas", "existe": true, "noExiste": false, "nota": "Revisar aire acondicionado"}],
		"otros": [{"desc": "Café", "existe": 0, "noExiste": "si", "nota": null}]
	}`)
	for _, w := range []string{
		"1. INSTALACIONES, MOBILIARIO Y DISTRIBUCIÓN\n" + strings.Repeat("=", 43) + "\nDESCRIPCIÓN\t\t\tEXISTE\tNO EXISTE\tNOTA\n" + strings.Repeat("=", 60) + "\n",
		"Aula con capacidad para veinte\t\t[X]\t[ ]\tRevisar aire acondic\n\n",
		"Café\t\t[ ]\t[X]\t\n\n",
		"2. EQUIPO DE APOYO Y DISTRIBUCIÓN\n",
		"4. REQUERIMIENTOS HUMANOS\n",
	} {
		if !strings.Contains(got, w) {
			t.Fatalf("want %q in:\n%s", w, got)
		}
	}
	if n := strings.Count(got, "DESCRIPCIÓN\t"); n != 5 {
		t.Fatalf("want 5 sections, got %d", n)
	}
}

func TestRenderUnified(t *testing.T) {
	got := renderText(t, KindUnified, `{
		"header": {"curso": "AML", "instructor": "Ana", "lugar": "CDMX", "fecha": "1/5/2024"},
		"diagnostica": [{"num": 1, "correcta": "b", "texto": "Respuesta"}],
		"sumativa": [{"num": "1", "correcta": "c", "texto": "UIF"}],
		"formativaCotejo": [{"num": 1, "descripcion": "Redacción clara"}],
		"formativaGuia": [{"num": 1, "descripcion": "Participa", "maxPuntos": 2}]
	}`)
	want := "HOJA DE RESPUESTAS UNIFICADA PARA EL INSTRUCTOR\n\n" +
		"Curso: AML\nInstructor: Ana\nLugar: CDMX\nFecha: 1/5/2024\n\n" +
		"1. RESPUESTAS DEL CUESTIONARIO FINAL (EVALUACIÓN SUMATIVA)\n" + strings.Repeat("=", 60) + "\n" +
		"1. c) UIF\n\n" +
		"2. CRITERIOS DE LOGRO ESPERADOS (EVALUACIÓN FORMATIVA - LISTA DE COTEJO)\n" + strings.Repeat("=", 70) + "\n" +
		"* Redacción clara → Resultado Esperado: Sí\n\n" +
		"3. CRITERIOS DE LOGRO ESPERADOS (EVALUACIÓN FORMATIVA - GUÍA DE OBSERVACIÓN)\n" + strings.Repeat("=", 75) + "\n" +
		"* Participa → Logro Máximo (2 pts)\n\n" +
		"4. RESPUESTAS DEL CUESTIONARIO INICIAL (EVALUACIÓN DIAGNÓSTICA)\n" + strings.Repeat("=", 65) + "\n" +
		"1. b) Respuesta\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unified mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderUnifiedKeepsZeroValues(t *testing.T) {
	got := renderText(t, KindUnified, `{
		"sumativa": [{"num": 0, "correcta": "b", "texto": 0}],
		"formativaGuia": [{"num": 1, "descripcion": "Puntualidad", "maxPuntos": 0}],
		"diagnostica": [{"num": 1, "correcta": false, "texto": "Respuesta"}]
	}`)
	for _, want := range []string{
		"\n0. b) 0\n",
		"* Puntualidad → Logro Máximo (0 pts)\n",
		"\n1. false) Respuesta\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
}

func TestRenderSatisfactionKeepsZeroPrompts(t *testing.T) {
	got := renderText(t, KindSatisfaction, `{
		"preguntasSeleccionadas": {"Curso": [0, "Contenido"]},
		"preguntasAbiertas": [false]
	}`)
	for _, want := range []string{"\n1. 0\n", "\n2. Contenido\n", "\n1. false\n"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
}

func TestRenderIgnoresCompositeFields(t *testing.T) {
	got := renderText(t, KindDiagnostic, `{
		"encabezado": {"curso": ["AML"]},
		"preguntas": [{"texto": {"es": "uno"}}, {"texto": "dos"}]
	}`)
	for _, want := range []string{"Curso: \n", "1. \n", "2. dos\n"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	body := `{"encabezado": {"curso": "AML"}, "reactivos": [{"pregunta": "P", "opciones": {"a": "1", "b": "2", "c": "3", "d": "4"}, "correcta": "d"}]}`
	first := renderText(t, KindSummative, body)
	for i := 0; i < 5; i++ {
		if got := renderText(t, KindSummative, body); got != first {
			t.Fatalf("render %d differs:\n%s", i, cmp.Diff(first, got))
		}
	}
}

func TestRenderEmptyBody(t *testing.T) {
	svc := NewDocumentService(nil)
	for _, k := range Kinds {
		doc, err := svc.Render(k, nil)
		if err != nil {
			t.Fatalf("%s with empty body: %v", k, err)
		}
		title := svc.Catalog().Documents[k].Title
		if !strings.HasPrefix(string(doc.Data), title+"\n\n") {
			t.Fatalf("%s should start with its title, got %q", k, doc.Data)
		}
	}
}
