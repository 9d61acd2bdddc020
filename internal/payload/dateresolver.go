package payload

import (
	"regexp"
	"strings"
	"time"
)

var (
	reISODate = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	reBRDate  = regexp.MustCompile(`\b(\d{2}/\d{2}/\d{4})\b`)
)

// weekday tokens in Portuguese and English. The bot forwards whatever the end
// user typed, so both languages show up in practice.
var weekdayTokens = map[string]time.Weekday{
	"domingo":       time.Sunday,
	"segunda":       time.Monday,
	"segunda-feira": time.Monday,
	"terca":         time.Tuesday,
	"terça":         time.Tuesday,
	"terca-feira":   time.Tuesday,
	"terça-feira":   time.Tuesday,
	"quarta":        time.Wednesday,
	"quarta-feira":  time.Wednesday,
	"quinta":        time.Thursday,
	"quinta-feira":  time.Thursday,
	"sexta":         time.Friday,
	"sexta-feira":   time.Friday,
	"sabado":        time.Saturday,
	"sábado":        time.Saturday,
	"sunday":        time.Sunday,
	"monday":        time.Monday,
	"tuesday":       time.Tuesday,
	"wednesday":     time.Wednesday,
	"thursday":      time.Thursday,
	"friday":        time.Friday,
	"saturday":      time.Saturday,
}

var todayTokens = []string{"hoje", "today"}
var tomorrowTokens = []string{"amanhã", "amanha", "tomorrow"}

// DateResolver turns calendar dates and natural-language day references into
// canonical YYYY-MM-DD strings, relative to the service timezone.
type DateResolver struct {
	loc *time.Location
	now func() time.Time
}

func NewDateResolver(loc *time.Location) *DateResolver {
	if loc == nil {
		loc = time.UTC
	}
	return &DateResolver{loc: loc, now: time.Now}
}

// Resolve canonicalizes a single date token. Accepts YYYY-MM-DD, DD/MM/YYYY,
// "hoje"/"today", "amanhã"/"tomorrow" and weekday names (resolving to the next
// future occurrence).
func (r *DateResolver) Resolve(s string) (string, bool) {
	token := strings.ToLower(strings.TrimSpace(s))
	if token == "" {
		return "", false
	}

	if reISODate.MatchString(token) && len(token) == 10 {
		if _, err := time.Parse("2006-01-02", token); err == nil {
			return token, true
		}
		return "", false
	}

	if reBRDate.MatchString(token) && len(token) == 10 {
		d, err := time.Parse("02/01/2006", token)
		if err != nil {
			return "", false
		}
		return d.Format("2006-01-02"), true
	}

	today := r.now().In(r.loc)
	for _, t := range todayTokens {
		if token == t {
			return today.Format("2006-01-02"), true
		}
	}
	for _, t := range tomorrowTokens {
		if token == t {
			return today.AddDate(0, 0, 1).Format("2006-01-02"), true
		}
	}

	if wd, ok := weekdayTokens[token]; ok {
		delta := (int(wd) - int(today.Weekday()) + 7) % 7
		if delta == 0 {
			delta = 7
		}
		return today.AddDate(0, 0, delta).Format("2006-01-02"), true
	}

	return "", false
}

// ResolveText searches free-form text for anything date-like: an explicit
// date first, then a natural-language reference.
func (r *DateResolver) ResolveText(text string) (string, bool) {
	if m := reISODate.FindString(text); m != "" {
		return r.Resolve(m)
	}
	if m := reBRDate.FindString(text); m != "" {
		return r.Resolve(m)
	}

	lowered := strings.ToLower(text)
	for _, t := range tomorrowTokens {
		if strings.Contains(lowered, t) {
			return r.Resolve(t)
		}
	}
	for _, t := range todayTokens {
		if containsWord(lowered, t) {
			return r.Resolve(t)
		}
	}
	for token := range weekdayTokens {
		if containsWord(lowered, token) {
			return r.Resolve(token)
		}
	}
	return "", false
}

// containsWord avoids substring hits inside larger words ("hoje" in "hojear").
func containsWord(text, word string) bool {
	idx := strings.Index(text, word)
	for idx >= 0 {
		before := idx == 0 || !isLetter(rune(text[idx-1]))
		afterIdx := idx + len(word)
		after := afterIdx >= len(text) || !isLetter(rune(text[afterIdx]))
		if before && after {
			return true
		}
		next := strings.Index(text[idx+1:], word)
		if next < 0 {
			return false
		}
		idx = idx + 1 + next
	}
	return false
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
