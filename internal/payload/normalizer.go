// Package payload normalizes request bodies forwarded by the messaging-bot
// gateway. Bodies arrive as clean JSON objects, JSON double-encoded as a
// string, or free-form text with recognizable fragments; the normalizer runs
// an ordered chain of parse strategies and stops at the first success.
// Irrecoverable input yields empty Fields, never an error.
package payload

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Canonical field names. Aliases sent by different bot revisions are folded
// into these.
const (
	FieldDate           = "data"
	FieldStartTime      = "horario_inicio"
	FieldCustomerName   = "cliente_nome"
	FieldCustomerPhone  = "cliente_telefone"
	FieldServiceID      = "servico_id"
	FieldProfessionalID = "funcionario_id"
)

var aliases = map[string]string{
	"date":            FieldDate,
	"hora":            FieldStartTime,
	"nome":            FieldCustomerName,
	"telefone":        FieldCustomerPhone,
	"profissional_id": FieldProfessionalID,
}

var (
	reClockTime = regexp.MustCompile(`\b([01]?\d|2[0-3]):[0-5]\d\b`)
	reUUID      = regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`)
	reNameLabel = regexp.MustCompile(`(?i)\bnome\s*[:=]\s*([^\n,;{}"]+)`)
	rePhone     = regexp.MustCompile(`(?i)\btelefone\s*[:=]\s*\+?([\d][\d\s().-]{7,})`)
)

// Fields is the normalized key-value record produced from a raw payload.
type Fields map[string]string

func (f Fields) Get(key string) string {
	return f[key]
}

func (f Fields) Has(key string) bool {
	return f[key] != ""
}

// Merge overlays non-empty values of other on top of f. Body fields win over
// query-string fields this way.
func (f Fields) Merge(other Fields) Fields {
	for k, v := range other {
		if v != "" {
			f[k] = v
		}
	}
	return f
}

type Normalizer struct {
	dates *DateResolver
}

func NewNormalizer(dates *DateResolver) *Normalizer {
	return &Normalizer{dates: dates}
}

// Normalize runs the strategy chain over a raw body:
//  1. structured JSON object
//  2. JSON object double-encoded as a JSON string
//  3. stray outer quotes stripped and escapes undone
//  4. first balanced {...} region of the text
//  5. regex extraction of individual fields from the raw text
func (n *Normalizer) Normalize(raw []byte) Fields {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return Fields{}
	}

	if m, ok := parseObject(text); ok {
		return n.canonicalize(m)
	}

	var inner string
	if err := json.Unmarshal([]byte(text), &inner); err == nil {
		if m, ok := parseObject(strings.TrimSpace(inner)); ok {
			return n.canonicalize(m)
		}
		text = strings.TrimSpace(inner)
	} else if strings.HasPrefix(text, `"`) || strings.HasPrefix(text, "'") {
		// The gateway sometimes wraps the body in quotes without producing a
		// valid JSON string, so undo the damage by hand.
		cleaned := strings.Trim(text, `"'`)
		cleaned = strings.ReplaceAll(cleaned, `\"`, `"`)
		cleaned = strings.ReplaceAll(cleaned, `\\`, `\`)
		if m, ok := parseObject(cleaned); ok {
			return n.canonicalize(m)
		}
		text = cleaned
	}

	if region, ok := braceRegion(text); ok {
		if m, ok := parseObject(region); ok {
			return n.canonicalize(m)
		}
	}

	return n.extract(text)
}

// FromValues normalizes query-string parameters through the same alias and
// date canonicalization as body fields.
func (n *Normalizer) FromValues(values url.Values) Fields {
	m := make(map[string]interface{}, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			m[k] = vs[0]
		}
	}
	return n.canonicalize(m)
}

func parseObject(text string) (map[string]interface{}, bool) {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return nil, false
	}
	return m, true
}

func (n *Normalizer) canonicalize(m map[string]interface{}) Fields {
	fields := make(Fields, len(m))
	for k, v := range m {
		key := strings.ToLower(strings.TrimSpace(k))
		if canonical, ok := aliases[key]; ok {
			key = canonical
		}
		value := stringify(v)
		if value == "" {
			continue
		}
		if key == FieldDate {
			if resolved, ok := n.dates.Resolve(value); ok {
				value = resolved
			}
		}
		fields[key] = value
	}
	return fields
}

// extract is the last resort: pull individual fields out of unstructured text.
// Without at least a resolvable date the payload is unusable and the result is
// empty, which callers must report as a missing required field.
func (n *Normalizer) extract(text string) Fields {
	date, ok := n.dates.ResolveText(text)
	if !ok {
		return Fields{}
	}

	fields := Fields{FieldDate: date}
	if t := reClockTime.FindString(text); t != "" {
		fields[FieldStartTime] = t
	}
	if m := reNameLabel.FindStringSubmatch(text); len(m) > 1 {
		fields[FieldCustomerName] = strings.TrimSpace(m[1])
	}
	if m := rePhone.FindStringSubmatch(text); len(m) > 1 {
		fields[FieldCustomerPhone] = strings.TrimSpace(m[1])
	}
	if u := reUUID.FindString(text); u != "" {
		fields[FieldServiceID] = u
	}
	return fields
}

// braceRegion returns the first balanced {...} region of the text, respecting
// JSON string literals and escapes.
func braceRegion(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1], true
				}
			}
		}
	}
	return "", false
}

func stringify(v interface{}) string {
	switch value := v.(type) {
	case string:
		return strings.TrimSpace(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}
