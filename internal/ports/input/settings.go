package input

import "alvrsettings/internal/domain/entities"

// SettingsUseCase is what a rendering collaborator drives.
type SettingsUseCase interface {
	Get(path string) (any, error)
	Set(path string, value any, source string) error
	Reset(path, source string) error
	ResetAll(source string) ([]string, error)
	Describe(locale, path string) (entities.SettingView, error)
	Form(locale, tab string) ([]entities.SettingView, error)
	Tabs(locale string) ([]entities.SettingView, error)
	// Find returns the settable nodes whose path or localized name contains
	// query (case-insensitive), at most limit of them.
	Find(locale, query string, limit int) ([]entities.SettingView, error)
}
