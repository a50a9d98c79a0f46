package entities

// SettingView is what a rendering collaborator needs to paint one node:
// its localized texts plus, for settable nodes, the bound value.
type SettingView struct {
	Path        string
	Kind        string
	Name        string
	Description string
	Settable    bool
	Active      bool
	Value       any // nil for non-settable nodes
	Default     any
	Min         *float64
	Max         *float64
	Variants    []VariantView // Choice only
}

// VariantView is one selectable alternative of a Choice.
type VariantView struct {
	Name        string // variant segment, the value stored for the choice
	Label       string // localized name
	Description string
	Selected    bool
}
