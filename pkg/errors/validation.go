package errors

import (
	"strings"
	"unicode"
)

// MaxDepthLimit bounds user-supplied depth limits. Depth-limited search over
// the 8-puzzle grows by roughly a factor of three per level.
const MaxDepthLimit = 40

// Domains lists the accepted domain names.
var Domains = []string{"slidingtile", "tictactoe"}

// ValidateDepthLimit accepts 0 (use the default) through MaxDepthLimit.
func ValidateDepthLimit(limit int) error {
	if limit < 0 {
		return New(ErrCodeInvalidInput, "depth limit cannot be negative (got %d)", limit)
	}
	if limit > MaxDepthLimit {
		return New(ErrCodeInvalidInput, "depth limit too large (max %d, got %d)", MaxDepthLimit, limit)
	}
	return nil
}

// ValidateBoardText performs cheap checks on board text before a domain
// parser sees it: it must be non-empty, reasonably short and free of control
// characters other than newlines.
func ValidateBoardText(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeInvalidBoard, "board cannot be empty")
	}
	if len(text) > 128 {
		return New(ErrCodeInvalidBoard, "board text too long (max 128 characters)")
	}
	for _, r := range text {
		if r != '\n' && unicode.IsControl(r) {
			return New(ErrCodeInvalidBoard, "board contains invalid control characters")
		}
	}
	return nil
}

// ValidateStrategyName rejects empty or oversized names. Whether the name
// resolves to a strategy is decided by search.ParseStrategy.
func ValidateStrategyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return New(ErrCodeInvalidStrategy, "strategy cannot be empty")
	}
	if len(name) > 32 {
		return New(ErrCodeInvalidStrategy, "strategy name too long (max 32 characters)")
	}
	return nil
}

// ValidateDomainName accepts one of Domains, ignoring case.
func ValidateDomainName(name string) error {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, d := range Domains {
		if n == d {
			return nil
		}
	}
	return New(ErrCodeInvalidDomain, "unknown domain %q (expected one of %s)", name, strings.Join(Domains, ", "))
}
