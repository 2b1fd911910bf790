package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckTargetURL(t *testing.T) {
	accepted := []string{
		"https://example.com/a?b=c#d",
		"http://localhost:8080",
		"ftp://example.com/file",
		"mailto:a@b.com",
		"urn:isbn:0451450523",
		"tel:+15551234567",
		"  https://example.com  ",
	}
	for _, raw := range accepted {
		got, err := CheckTargetURL(raw)
		assert.NoError(t, err, raw)
		assert.Equal(t, strings.TrimSpace(raw), got)
	}

	rejected := map[string]error{
		"":                        ErrTargetURLEmpty,
		"   ":                     ErrTargetURLEmpty,
		"example.com/no-scheme":   ErrTargetURLNotAbsolute,
		"/relative/path":          ErrTargetURLNotAbsolute,
		"https://":                ErrTargetURLNotAbsolute,
		"http://[::1":             ErrTargetURLNotAbsolute,
		"javascript:alert(1)":     ErrTargetURLScheme,
		"JavaScript:alert(1)":     ErrTargetURLScheme,
		"data:text/html,<b>x</b>": ErrTargetURLScheme,
	}
	rejected["https://example.com/"+strings.Repeat("a", 2100)] = ErrTargetURLTooLong
	for raw, want := range rejected {
		_, err := CheckTargetURL(raw)
		assert.ErrorIs(t, err, want, raw)
	}
}
