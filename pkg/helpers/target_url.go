package helpers

import (
	"errors"
	"net/url"
	"strings"
)

const MaxTargetURLLength = 2048

var (
	ErrTargetURLEmpty       = errors.New("url is required")
	ErrTargetURLTooLong     = errors.New("url is too long")
	ErrTargetURLNotAbsolute = errors.New("url must be an absolute URI")
	ErrTargetURLScheme      = errors.New("url scheme is not allowed")
)

// scripts run in the visitor's browser instead of navigating
var blockedSchemes = map[string]bool{"javascript": true, "data": true}

// CheckTargetURL accepts any absolute URI (scheme plus a non-empty remainder) and returns it trimmed.
func CheckTargetURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrTargetURLEmpty
	}
	if len(raw) > MaxTargetURLLength {
		return "", ErrTargetURLTooLong
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return "", ErrTargetURLNotAbsolute
	}
	if u.Opaque == "" && u.Host == "" && u.Path == "" {
		return "", ErrTargetURLNotAbsolute
	}
	if blockedSchemes[strings.ToLower(u.Scheme)] {
		return "", ErrTargetURLScheme
	}
	return raw, nil
}
