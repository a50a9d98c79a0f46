package discord

import (
	"alvrsettings/internal/ports/input"
	"alvrsettings/internal/ports/output"
)

// Handler handles Discord interactions using use cases.
type Handler struct {
	settings      input.SettingsUseCase
	tr            output.T
	defaultLocale string
}

// NewHandler creates a Handler. defaultLocale is used when an interaction
// carries no locale.
func NewHandler(settings input.SettingsUseCase, tr output.T, defaultLocale string) *Handler {
	return &Handler{
		settings:      settings,
		tr:            tr,
		defaultLocale: defaultLocale,
	}
}
