package application

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"alvrsettings/internal/domain"
	"alvrsettings/internal/domain/entities"
	"alvrsettings/internal/domain/schema"
	"alvrsettings/internal/ports/output"
)

// SourceReset tags changes made by Reset and ResetAll when the caller gives
// no source.
const SourceReset = "reset"

// slot holds the bound value of one settable path. Its mutex is held across
// validation, update and notification, so writes to a path are serialized
// and their notifications delivered in order.
type slot struct {
	mu    sync.Mutex
	node  *schema.Node
	value any
}

// BoundTree pairs every settable path of a schema with its current value.
// The path set is fixed at Bind time; only values change.
type BoundTree struct {
	tree  *schema.Tree
	slots map[string]*slot
	order []string
	sink  output.ChangeSink
	now   func() time.Time
}

type nopSink struct{}

func (nopSink) Notify(entities.Change) {}

// Bind pairs every settable path of tree with its value in current, or its
// default when current has none. Entries of current that name no settable
// path or hold an invalid value are dropped and reported together in a
// *domain.SnapshotError; the returned tree is usable in that case too.
func Bind(tree *schema.Tree, current map[string]any, sink output.ChangeSink) (*BoundTree, error) {
	if sink == nil {
		sink = nopSink{}
	}
	b := &BoundTree{
		tree:  tree,
		slots: make(map[string]*slot),
		order: tree.SettablePaths(),
		sink:  sink,
		now:   time.Now,
	}
	for _, p := range b.order {
		n, _ := tree.Settable(p)
		b.slots[p] = &slot{node: n, value: n.Default()}
	}

	paths := make([]string, 0, len(current))
	for p := range current {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var rejected []error
	for _, p := range paths {
		s, ok := b.slots[p]
		if !ok {
			rejected = append(rejected, &domain.UnknownPathError{Path: p})
			continue
		}
		v, err := check(s.node, current[p])
		if err != nil {
			rejected = append(rejected, err)
			continue
		}
		s.value = v
	}
	if len(rejected) > 0 {
		return b, &domain.SnapshotError{Rejected: rejected}
	}
	return b, nil
}

// Tree returns the schema the values are bound to.
func (b *BoundTree) Tree() *schema.Tree { return b.tree }

// Get returns the current value of a settable path.
func (b *BoundTree) Get(path string) (any, error) {
	s, ok := b.slots[path]
	if !ok {
		return nil, &domain.UnknownPathError{Path: path}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, nil
}

// Set validates value against the node at path, stores its canonical form
// and notifies the sink exactly once. On error nothing changes and nothing
// is notified.
//
// The sink is called with the path's lock held: a synchronous observer must
// not call back into the tree for the same path.
func (b *BoundTree) Set(path string, value any, source string) error {
	s, ok := b.slots[path]
	if !ok {
		return &domain.UnknownPathError{Path: path}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := check(s.node, value)
	if err != nil {
		return err
	}
	b.store(s, path, v, source)
	return nil
}

// Reset restores the default of path. It notifies once, like Set.
func (b *BoundTree) Reset(path, source string) error {
	s, ok := b.slots[path]
	if !ok {
		return &domain.UnknownPathError{Path: path}
	}
	if source == "" {
		source = SourceReset
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b.store(s, path, s.node.Default(), source)
	return nil
}

// ResetAll restores the default of every path whose value differs from it
// and returns those paths in tree order.
func (b *BoundTree) ResetAll(source string) []string {
	if source == "" {
		source = SourceReset
	}
	var changed []string
	for _, p := range b.order {
		s := b.slots[p]
		s.mu.Lock()
		if s.value != s.node.Default() {
			b.store(s, p, s.node.Default(), source)
			changed = append(changed, p)
		}
		s.mu.Unlock()
	}
	return changed
}

// store must be called with s.mu held.
func (b *BoundTree) store(s *slot, path string, v any, source string) {
	old := s.value
	s.value = v
	b.sink.Notify(entities.Change{
		Path:     path,
		OldValue: old,
		NewValue: v,
		Source:   source,
		At:       b.now(),
	})
}

// IsActive reports whether the node or variant at path is reachable under
// the current selections: every enclosing variant is selected and every
// enclosing switch is enabled.
func (b *BoundTree) IsActive(path string) (bool, error) {
	if v, ok := b.tree.LookupVariant(path); ok {
		if !b.reachable(v.Choice()) {
			return false, nil
		}
		selected, err := b.Get(v.Choice().Path())
		if err != nil {
			return false, err
		}
		return selected == v.Name(), nil
	}
	n, ok := b.tree.Lookup(path)
	if !ok {
		return false, &domain.UnknownPathError{Path: path}
	}
	return b.reachable(n), nil
}

func (b *BoundTree) reachable(n *schema.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent() {
		ctrl, want, gated := cur.Gate()
		if !gated {
			continue
		}
		got, err := b.Get(ctrl.Path())
		if err != nil || got != want {
			return false
		}
	}
	return true
}

// Values returns a copy of every bound value keyed by path.
func (b *BoundTree) Values() map[string]any {
	out := make(map[string]any, len(b.slots))
	for p, s := range b.slots {
		s.mu.Lock()
		out[p] = s.value
		s.mu.Unlock()
	}
	return out
}

// check returns the canonical form of value for n, or a typed error.
func check(n *schema.Node, value any) (any, error) {
	path := n.Path()
	if n.Kind() == schema.KindChoice {
		name, ok := value.(string)
		if !ok {
			return nil, &domain.TypeError{Path: path, Value: value, Expected: "string"}
		}
		if _, ok := n.Variant(name); !ok {
			return nil, &domain.RangeError{Path: path, Value: value, Expected: variantList(n)}
		}
		return name, nil
	}

	v, ok := schema.Normalize(n.ValueType(), value)
	if !ok {
		return nil, &domain.TypeError{Path: path, Value: value, Expected: n.ValueType().String()}
	}
	if rng, ok := n.Range(); ok {
		f, _ := schema.AsFloat(v)
		if !rng.Contains(f) {
			return nil, &domain.RangeError{Path: path, Value: value, Expected: rng.String()}
		}
	}
	return v, nil
}

func variantList(n *schema.Node) string {
	names := make([]string, 0, len(n.Variants()))
	for _, v := range n.Variants() {
		names = append(names, v.Name())
	}
	return fmt.Sprintf("one of %s", strings.Join(names, ", "))
}
