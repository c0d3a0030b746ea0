package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Text is a lenient JSON scalar for fields printed with an empty default.
// Browser forms send numbers and strings interchangeably, so any scalar is
// accepted and printed the way the form would show it. Falsy values (null,
// false, 0, "") decode to "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	s, err := decodeScalar(b, false)
	*t = Text(s)
	return err
}

// Value is a JSON scalar printed verbatim: only null or absent decode to "",
// so 0 prints "0" and false prints "false".
type Value string

func (v *Value) UnmarshalJSON(b []byte) error {
	s, err := decodeScalar(b, true)
	*v = Value(s)
	return err
}

func (v Value) String() string { return string(v) }

// decodeScalar prints a JSON scalar. Objects and arrays decode to "" so one
// odd field does not reject the whole document.
func decodeScalar(b []byte, keepFalsy bool) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return "", nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return s, nil
	case 'n':
		return "", nil
	case 'f':
		if keepFalsy {
			return "false", nil
		}
		return "", nil
	case 't':
		return "true", nil
	case '{', '[':
		return "", nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return "", fmt.Errorf("invalid number %q: %w", b, err)
	}
	if f == 0 {
		if keepFalsy {
			return "0", nil
		}
		return "", nil
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

func (t Text) String() string { return string(t) }

// Or returns def when t is empty.
func (t Text) Or(def string) string {
	if t == "" {
		return def
	}
	return string(t)
}

// Flag decodes JSON truthiness: true, non-zero numbers and non-empty strings.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case bool:
		*f = Flag(x)
	case float64:
		*f = x != 0
	case string:
		*f = x != ""
	case nil:
		*f = false
	default:
		*f = true
	}
	return nil
}

// Count is an optional JSON integer. Set is false when the field was absent
// or null.
type Count struct {
	N   int
	Set bool
}

func (c *Count) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = Count{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	f, err := strconv.ParseFloat(string(bytes.TrimSpace(b)), 64)
	if err != nil {
		return fmt.Errorf("invalid count %q: %w", b, err)
	}
	*c = Count{N: int(f), Set: true}
	return nil
}

// OrderedSections decodes a JSON object of section name -> prompt list while
// keeping the key order of the payload. Integer-like names such as "2024"
// keep their payload position; they are not sorted ahead of the others.
type OrderedSections []SatisfactionSection

func (o *OrderedSections) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object of sections, got %v", tok)
	}
	var out OrderedSections
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := keyTok.(string)
		var prompts []Value
		if err := dec.Decode(&prompts); err != nil {
			return fmt.Errorf("section %q: %w", name, err)
		}
		sec := SatisfactionSection{Name: name, Prompts: make([]string, 0, len(prompts))}
		for _, p := range prompts {
			sec.Prompts = append(sec.Prompts, p.String())
		}
		out = append(out, sec)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = out
	return nil
}
