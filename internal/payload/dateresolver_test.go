package payload

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedResolver pins "now" to Wednesday 2026-01-14 12:00 in São Paulo.
func fixedResolver(t *testing.T) *DateResolver {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	r := NewDateResolver(loc)
	r.now = func() time.Time {
		return time.Date(2026, 1, 14, 12, 0, 0, 0, loc)
	}
	return r
}

func TestDateResolver_Resolve(t *testing.T) {
	r := fixedResolver(t)

	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{name: "iso passthrough", in: "2026-01-20", want: "2026-01-20", ok: true},
		{name: "brazilian format", in: "20/01/2026", want: "2026-01-20", ok: true},
		{name: "hoje", in: "hoje", want: "2026-01-14", ok: true},
		{name: "today", in: "Today", want: "2026-01-14", ok: true},
		{name: "amanha", in: "amanhã", want: "2026-01-15", ok: true},
		{name: "tomorrow", in: "tomorrow", want: "2026-01-15", ok: true},
		{name: "next friday", in: "sexta", want: "2026-01-16", ok: true},
		{name: "same weekday goes to next week", in: "quarta", want: "2026-01-21", ok: true},
		{name: "english weekday", in: "monday", want: "2026-01-19", ok: true},
		{name: "invalid calendar date", in: "2026-13-45", ok: false},
		{name: "unparseable", in: "qualquer dia", ok: false},
		{name: "empty", in: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDateResolver_TomorrowUsesConfiguredTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	r := NewDateResolver(loc)
	// 01:00 UTC on the 15th is still 22:00 on the 14th in São Paulo, so
	// "tomorrow" must resolve to the 15th, not the 16th.
	r.now = func() time.Time {
		return time.Date(2026, 1, 15, 1, 0, 0, 0, time.UTC)
	}

	got, ok := r.Resolve("tomorrow")
	require.True(t, ok)
	assert.Equal(t, "2026-01-15", got)
}

func TestDateResolver_ResolveText(t *testing.T) {
	r := fixedResolver(t)

	got, ok := r.ResolveText("pode ser amanhã as 10h?")
	require.True(t, ok)
	assert.Equal(t, "2026-01-15", got)

	got, ok = r.ResolveText("marcar para 2026-02-01 por favor")
	require.True(t, ok)
	assert.Equal(t, "2026-02-01", got)

	got, ok = r.ResolveText("tem horario na sexta?")
	require.True(t, ok)
	assert.Equal(t, "2026-01-16", got)

	_, ok = r.ResolveText("quero cortar o cabelo")
	assert.False(t, ok)
}
