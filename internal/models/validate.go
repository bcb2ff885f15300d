package models

import (
	"strings"
	"unicode/utf8"

	"github.com/trentd187/statteam/internal/errs"
)

// CleanName trims surrounding whitespace and enforces the shared name rules.
// Length is counted in characters, not bytes.
func CleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errs.ErrNameRequired
	}

	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", errs.ErrNameTooLong
	}

	return name, nil
}

// ParseSide accepts "" (meaning the default "my") or one of the two known tags.
func ParseSide(side string) (Side, error) {
	switch Side(strings.ToLower(strings.TrimSpace(side))) {
	case "", SideMine:
		return SideMine, nil
	case SideOpponent:
		return SideOpponent, nil
	default:
		return "", errs.ErrInvalidSide
	}
}
