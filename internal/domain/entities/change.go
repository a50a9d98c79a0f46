package entities

import "time"

// Change describes one successful update of a bound setting.
type Change struct {
	Path     string
	OldValue any
	NewValue any
	Source   string // who asked for the change (e.g. "discord:<user id>", "reset")
	At       time.Time
}
