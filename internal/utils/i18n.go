package utils

// Server-side messages. Spanish is the primary language of the forms;
// English is offered for API clients that ask for it.

const DefaultLocale = "es"

// SupportedLocales lists the locales T can translate into.
var SupportedLocales = []string{"es", "en"}

var translations = map[string]map[string]string{
	"es": {
		"payment.invalid_card":     "Tarjeta inválida. Use: 4111 1111 1111 1111",
		"register.fields_required": "Todos los campos son requeridos",
		"register.bad_key":         "Formato de clave de acceso incorrecto",
		"register.ok":              "Usuario registrado exitosamente",
		"request.invalid_json":     "El cuerpo de la solicitud no es JSON válido",
		"request.too_large":        "El cuerpo de la solicitud es demasiado grande",
		"document.render_failed":   "Error generando PDF",
		"document.unknown_kind":    "Tipo de documento desconocido",
		"document.too_many_rows":   "Número de filas demasiado grande",
		"collect.failed":           "Error recopilando respuestas",
		"collect.not_found":        "No hay respuestas para el curso",
		"server.error":             "Error interno del servidor",
	},
	"en": {
		"payment.invalid_card":     "Invalid card. Use: 4111 1111 1111 1111",
		"register.fields_required": "All fields are required",
		"register.bad_key":         "Invalid access key format",
		"register.ok":              "User registered successfully",
		"request.invalid_json":     "Request body is not valid JSON",
		"request.too_large":        "Request body is too large",
		"document.render_failed":   "Error generating PDF",
		"document.unknown_kind":    "Unknown document kind",
		"document.too_many_rows":   "Row count is too large",
		"collect.failed":           "Error collecting responses",
		"collect.not_found":        "No responses for course",
		"server.error":             "Internal server error",
	},
}

// T returns the translated string for key in locale; falls back to Spanish,
// then to the key itself.
func T(locale, key string) string {
	if m, ok := translations[locale]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if m, ok := translations[DefaultLocale]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return key
}
