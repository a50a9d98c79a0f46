package discord

import (
	"errors"

	"alvrsettings/internal/domain"
	"alvrsettings/internal/ports/output"
)

// TranslateDomainError maps a domain error code to a user-facing message in
// locale. data fills the message placeholders.
func TranslateDomainError(tr output.T, locale, code string, data map[string]any) string {
	switch code {
	case "range", "type", "unknown_path":
		return tr.T(locale, "error."+code, data)
	default:
		return tr.T(locale, "error.generic", nil)
	}
}

// DomainErrorMessage is a convenience helper that extracts the domain error code
// and immediately resolves it to a user-facing message.
func DomainErrorMessage(tr output.T, locale string, err error) string {
	if err == nil {
		return ""
	}
	data := map[string]any{}
	var (
		rangeErr   *domain.RangeError
		typeErr    *domain.TypeError
		unknownErr *domain.UnknownPathError
	)
	switch {
	case errors.As(err, &rangeErr):
		data["Path"], data["Value"], data["Expected"] = rangeErr.Path, rangeErr.Value, rangeErr.Expected
	case errors.As(err, &typeErr):
		data["Path"], data["Value"], data["Expected"] = typeErr.Path, typeErr.Value, typeErr.Expected
	case errors.As(err, &unknownErr):
		data["Path"] = unknownErr.Path
	}
	return TranslateDomainError(tr, locale, domain.Code(err), data)
}
