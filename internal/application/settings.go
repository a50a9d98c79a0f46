package application

import (
	"strings"

	"alvrsettings/internal/domain"
	"alvrsettings/internal/domain/entities"
	"alvrsettings/internal/domain/schema"
	"alvrsettings/internal/ports/input"
	"alvrsettings/internal/ports/output"
)

var _ input.SettingsUseCase = (*SettingsService)(nil)

// SettingsService serves a rendering collaborator: bound values plus the
// localized texts of the nodes holding them.
type SettingsService struct {
	bound    *BoundTree
	resolver output.Resolver
}

func NewSettingsService(bound *BoundTree, resolver output.Resolver) *SettingsService {
	return &SettingsService{
		bound:    bound,
		resolver: resolver,
	}
}

func (s *SettingsService) Get(path string) (any, error) {
	return s.bound.Get(path)
}

func (s *SettingsService) Set(path string, value any, source string) error {
	return s.bound.Set(path, value, source)
}

func (s *SettingsService) Reset(path, source string) error {
	return s.bound.Reset(path, source)
}

func (s *SettingsService) ResetAll(source string) ([]string, error) {
	return s.bound.ResetAll(source), nil
}

// Describe returns the view of the node or variant at path.
func (s *SettingsService) Describe(locale, path string) (entities.SettingView, error) {
	tree := s.bound.Tree()
	if v, ok := tree.LookupVariant(path); ok {
		return s.variantView(locale, v)
	}
	n, ok := tree.Lookup(path)
	if !ok {
		return entities.SettingView{}, &domain.UnknownPathError{Path: path}
	}
	return s.view(locale, n)
}

// Form returns, in tree order, the view of every named node under the tab
// with the given segment, the tab itself first. Anonymous sections are
// skipped but their children are kept.
func (s *SettingsService) Form(locale, tab string) ([]entities.SettingView, error) {
	tree := s.bound.Tree()
	root, ok := tree.Tab(tab)
	if !ok {
		return nil, &domain.UnknownPathError{Path: schema.RootMarker + schema.Separator + tab + schema.TabSuffix}
	}

	var (
		views []entities.SettingView
		err   error
	)
	var walk func(n *schema.Node)
	walk = func(n *schema.Node) {
		if err != nil {
			return
		}
		if n.Named() {
			var view entities.SettingView
			if view, err = s.view(locale, n); err != nil {
				return
			}
			views = append(views, view)
		}
		for _, c := range tree.Children(n) {
			walk(c)
		}
	}
	walk(root)
	if err != nil {
		return nil, err
	}
	return views, nil
}

// Tabs returns the view of every tab.
func (s *SettingsService) Tabs(locale string) ([]entities.SettingView, error) {
	tabs := s.bound.Tree().Tabs()
	views := make([]entities.SettingView, 0, len(tabs))
	for _, tab := range tabs {
		view, err := s.view(locale, tab)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// Find matches query against settable paths and their localized names, in
// tree order.
func (s *SettingsService) Find(locale, query string, limit int) ([]entities.SettingView, error) {
	tree := s.bound.Tree()
	query = strings.ToLower(strings.TrimSpace(query))

	var views []entities.SettingView
	for _, p := range tree.SettablePaths() {
		if limit > 0 && len(views) >= limit {
			break
		}
		n, _ := tree.Settable(p)
		name, err := s.resolver.Resolve(p, schema.FieldName, locale)
		if err != nil {
			return nil, err
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p), query) &&
			!strings.Contains(strings.ToLower(name), query) {
			continue
		}
		view, err := s.view(locale, n)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *SettingsService) view(locale string, n *schema.Node) (entities.SettingView, error) {
	view := entities.SettingView{
		Path:     n.Path(),
		Kind:     n.Kind().String(),
		Settable: n.Settable(),
	}
	if n.Named() {
		if err := s.texts(locale, n.Path(), &view.Name, &view.Description); err != nil {
			return view, err
		}
	}

	active, err := s.bound.IsActive(n.Path())
	if err != nil {
		return view, err
	}
	view.Active = active

	if !n.Settable() {
		return view, nil
	}
	if view.Value, err = s.bound.Get(n.Path()); err != nil {
		return view, err
	}
	view.Default = n.Default()
	if rng, ok := n.Range(); ok {
		view.Min, view.Max = &rng.Min, &rng.Max
	}
	for _, v := range n.Variants() {
		vv := entities.VariantView{Name: v.Name(), Selected: view.Value == v.Name()}
		if err := s.texts(locale, v.Path(), &vv.Label, &vv.Description); err != nil {
			return view, err
		}
		view.Variants = append(view.Variants, vv)
	}
	return view, nil
}

func (s *SettingsService) variantView(locale string, v *schema.Variant) (entities.SettingView, error) {
	view := entities.SettingView{Path: v.Path(), Kind: "variant"}
	if err := s.texts(locale, v.Path(), &view.Name, &view.Description); err != nil {
		return view, err
	}
	active, err := s.bound.IsActive(v.Path())
	if err != nil {
		return view, err
	}
	view.Active = active
	return view, nil
}

func (s *SettingsService) texts(locale, path string, name, description *string) error {
	var err error
	if *name, err = s.resolver.Resolve(path, schema.FieldName, locale); err != nil {
		return err
	}
	*description, err = s.resolver.Resolve(path, schema.FieldDescription, locale)
	return err
}
