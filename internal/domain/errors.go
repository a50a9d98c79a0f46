package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Domain errors.
var (
	ErrSchema      = errors.New("définition de schéma invalide")
	ErrMissingName = errors.New("nom manquant dans les bundles de traduction")
	ErrRange       = errors.New("valeur hors de la plage autorisée")
	ErrType        = errors.New("type de valeur incompatible")
	ErrUnknownPath = errors.New("chemin de réglage inconnu")
	ErrSnapshot    = errors.New("valeurs persistées rejetées")
)

// SchemaError reports every problem found in a schema definition.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("schema: %s", e.Problems[0])
	}
	return fmt.Sprintf("schema: %d problems:\n  - %s", len(e.Problems), strings.Join(e.Problems, "\n  - "))
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// Add records a problem. Arguments follow fmt.Sprintf.
func (e *SchemaError) Add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// AsError returns nil when no problem was recorded.
func (e *SchemaError) AsError() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}

// MissingNameError lists the name keys absent from both a locale and the
// fallback locale.
type MissingNameError struct {
	// Missing maps a locale to the keys it could not resolve.
	Missing map[string][]string
}

func (e *MissingNameError) Error() string {
	locales := make([]string, 0, len(e.Missing))
	for locale := range e.Missing {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	var b strings.Builder
	b.WriteString("i18n: missing names")
	for _, locale := range locales {
		fmt.Fprintf(&b, "\n  [%s] %s", locale, strings.Join(e.Missing[locale], ", "))
	}
	return b.String()
}

func (e *MissingNameError) Unwrap() error { return ErrMissingName }

// RangeError is returned when a value falls outside a leaf's declared domain.
type RangeError struct {
	Path     string
	Value    any
	Expected string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: value %v is out of range (expected %s)", e.Path, e.Value, e.Expected)
}

func (e *RangeError) Unwrap() error { return ErrRange }

// TypeError is returned when a value's shape does not match the leaf kind.
type TypeError struct {
	Path     string
	Value    any
	Expected string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %T", e.Path, e.Expected, e.Value)
}

func (e *TypeError) Unwrap() error { return ErrType }

// UnknownPathError is returned when a path names no settable node.
type UnknownPathError struct {
	Path string
}

func (e *UnknownPathError) Error() string {
	return fmt.Sprintf("%s: unknown setting path", e.Path)
}

func (e *UnknownPathError) Unwrap() error { return ErrUnknownPath }

// SnapshotError lists the persisted entries that were dropped while binding.
// The bound tree is still usable; rejected paths keep their defaults.
type SnapshotError struct {
	Rejected []error
}

func (e *SnapshotError) Error() string {
	msgs := make([]string, len(e.Rejected))
	for i, err := range e.Rejected {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("snapshot: %d entries rejected:\n  - %s", len(e.Rejected), strings.Join(msgs, "\n  - "))
}

// Paths returns the path of every rejected entry.
func (e *SnapshotError) Paths() []string {
	paths := make([]string, 0, len(e.Rejected))
	for _, err := range e.Rejected {
		var (
			rangeErr   *RangeError
			typeErr    *TypeError
			unknownErr *UnknownPathError
		)
		switch {
		case errors.As(err, &rangeErr):
			paths = append(paths, rangeErr.Path)
		case errors.As(err, &typeErr):
			paths = append(paths, typeErr.Path)
		case errors.As(err, &unknownErr):
			paths = append(paths, unknownErr.Path)
		}
	}
	return paths
}

func (e *SnapshotError) Unwrap() []error {
	return append([]error{ErrSnapshot}, e.Rejected...)
}

// Code returns a stable code for a domain error, or "" for foreign errors.
// Codes are used as i18n keys ("error.<code>").
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSchema):
		return "schema"
	case errors.Is(err, ErrMissingName):
		return "missing_name"
	case errors.Is(err, ErrSnapshot):
		return "snapshot"
	case errors.Is(err, ErrRange):
		return "range"
	case errors.Is(err, ErrType):
		return "type"
	case errors.Is(err, ErrUnknownPath):
		return "unknown_path"
	default:
		return ""
	}
}
