package schema

import (
	"fmt"
	"regexp"
	"strings"

	"alvrsettings/internal/domain"
)

// Segments written by schema authors. Separator, the "-" of ChoiceSuffix and
// the "." of bundle keys can never appear inside one.
var segmentPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

// Tree is a built settings schema. It is immutable and safe for concurrent
// readers.
type Tree struct {
	root     *Node
	nodes    map[string]*Node
	variants map[string]*Variant
	order    []string // every path in preorder, variant paths included
}

// Build constructs a tree from top-level tab specs. Every problem in the
// definition is reported in a single *domain.SchemaError.
func Build(specs []NodeSpec) (*Tree, error) {
	b := &builder{
		errs: &domain.SchemaError{},
		tree: &Tree{
			nodes:    make(map[string]*Node),
			variants: make(map[string]*Variant),
		},
	}
	root := &Node{kind: KindSection, anonymous: true}
	b.tree.root = root
	b.tree.root.path = RootMarker
	if len(specs) == 0 {
		b.errs.Add("definition has no tabs")
	}
	b.children(root, specs)

	if err := b.errs.AsError(); err != nil {
		return nil, err
	}
	return b.tree, nil
}

// MustBuild is like Build but panics on error. Useful for built-in
// definitions.
func MustBuild(specs []NodeSpec) *Tree {
	t, err := Build(specs)
	if err != nil {
		panic(err)
	}
	return t
}

// Root returns the unnamed root node; its children are the tabs.
func (t *Tree) Root() *Node { return t.root }

// Tabs returns the top-level tabs in declaration order.
func (t *Tree) Tabs() []*Node { return t.root.Children() }

// Tab returns the tab with the given segment.
func (t *Tree) Tab(segment string) (*Node, bool) {
	for _, tab := range t.root.children {
		if tab.segment == segment {
			return tab, true
		}
	}
	return nil, false
}

// Lookup returns the node encoded as path. Variant paths are resolved by
// LookupVariant.
func (t *Tree) Lookup(path string) (*Node, bool) {
	n, ok := t.nodes[path]
	return n, ok
}

// LookupVariant returns the variant encoded as path.
func (t *Tree) LookupVariant(path string) (*Variant, bool) {
	v, ok := t.variants[path]
	return v, ok
}

// Settable returns the settable node at path.
func (t *Tree) Settable(path string) (*Node, bool) {
	n, ok := t.nodes[path]
	if !ok || !n.Settable() {
		return nil, false
	}
	return n, true
}

// Children returns the children of n. For a Choice it returns the content
// roots of its variants.
func (t *Tree) Children(n *Node) []*Node {
	if n.kind != KindChoice {
		return n.Children()
	}
	var out []*Node
	for _, v := range n.variants {
		if v.content != nil {
			out = append(out, v.content)
		}
	}
	return out
}

// Walk visits every node in preorder, variant contents included. Returning
// false from fn skips the node's subtree.
func (t *Tree) Walk(fn func(n *Node) bool) {
	var walk func(n *Node)
	walk = func(n *Node) {
		if !fn(n) {
			return
		}
		for _, c := range t.Children(n) {
			walk(c)
		}
	}
	for _, tab := range t.root.children {
		walk(tab)
	}
}

// Paths returns every path of the tree in preorder: node paths and variant
// paths.
func (t *Tree) Paths() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// NamedPaths returns the paths that must have a localized name.
func (t *Tree) NamedPaths() []string {
	out := make([]string, 0, len(t.order))
	for _, p := range t.order {
		if n, ok := t.nodes[p]; ok && !n.Named() {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SettablePaths returns the paths holding a bound value, in preorder.
func (t *Tree) SettablePaths() []string {
	var out []string
	for _, p := range t.order {
		if n, ok := t.nodes[p]; ok && n.Settable() {
			out = append(out, p)
		}
	}
	return out
}

// Defaults returns the default value of every settable path.
func (t *Tree) Defaults() map[string]any {
	out := make(map[string]any)
	for p, n := range t.nodes {
		if n.Settable() {
			out[p] = n.def
		}
	}
	return out
}

type builder struct {
	errs *domain.SchemaError
	tree *Tree
}

func (b *builder) children(parent *Node, specs []NodeSpec) {
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if seen[spec.Segment] {
			b.errs.Add("%s: duplicate segment %q", parent.path, spec.Segment)
			continue
		}
		seen[spec.Segment] = true
		if !segmentPattern.MatchString(spec.Segment) {
			b.errs.Add("%s: invalid segment %q", parent.path, spec.Segment)
			continue
		}
		if parent == b.tree.root && spec.Kind != KindTab {
			b.errs.Add("top-level node %q must be a tab, got %s", spec.Segment, spec.Kind)
			continue
		}
		if parent != b.tree.root && spec.Kind == KindTab {
			b.errs.Add("%s: tab %q must be top-level", parent.path, spec.Segment)
			continue
		}
		if n := b.node(parent, spec, spec.Segment, roleChild); n != nil {
			parent.children = append(parent.children, n)
		}
	}
}

func (b *builder) node(parent *Node, spec NodeSpec, segment string, r role) *Node {
	n := &Node{
		kind:    spec.Kind,
		segment: segment,
		role:    r,
		parent:  parent,
	}
	n.path = Encode(n)

	switch spec.Kind {
	case KindTab, KindSection:
		n.anonymous = r == roleVariantContent
		b.register(n)
		b.children(n, spec.Children)
	case KindSwitch:
		b.register(n)
		b.switchNode(n, spec)
	case KindChoice:
		b.register(n)
		b.choice(n, spec)
	case KindIndexedArray:
		b.register(n)
		b.array(n, spec)
	case KindLeaf:
		if !b.leaf(n, spec) {
			return nil
		}
		b.register(n)
	default:
		b.errs.Add("%s: unknown kind %s", n.path, spec.Kind)
		return nil
	}
	return n
}

func (b *builder) switchNode(n *Node, spec NodeSpec) {
	enabled := &Node{kind: KindLeaf, segment: "enabled", role: roleSwitchEnabled, parent: n, valueType: TypeBool}
	enabled.path = Encode(enabled)
	def := spec.Default
	if def == nil {
		def = false
	}
	if v, ok := Normalize(TypeBool, def); ok {
		enabled.def = v
	} else {
		b.errs.Add("%s: switch default %v is not a bool", n.path, spec.Default)
		enabled.def = false
	}
	content := &Node{kind: KindSection, segment: "content", role: roleSwitchContent, anonymous: true, parent: n}
	content.path = Encode(content)

	n.children = []*Node{enabled, content}
	b.register(enabled)
	b.register(content)
	b.children(content, spec.Children)
}

func (b *builder) choice(n *Node, spec NodeSpec) {
	if len(spec.Variants) == 0 {
		b.errs.Add("%s: choice has no variants", n.path)
		return
	}
	seen := make(map[string]bool, len(spec.Variants))
	for _, vs := range spec.Variants {
		if !segmentPattern.MatchString(vs.Name) {
			b.errs.Add("%s: invalid variant name %q", n.path, vs.Name)
			continue
		}
		if seen[vs.Name] {
			b.errs.Add("%s: duplicate variant %q", n.path, vs.Name)
			continue
		}
		seen[vs.Name] = true

		v := &Variant{name: vs.Name, choice: n, path: EncodeVariant(n, vs.Name)}
		b.registerVariant(v)
		n.variants = append(n.variants, v)

		if vs.Content == nil {
			continue
		}
		c := *vs.Content
		if c.Kind != KindLeaf && c.Kind != KindSection {
			b.errs.Add("%s: variant content must be a leaf or a section, got %s", v.path, c.Kind)
			continue
		}
		if c.Segment != "" && c.Segment != vs.Name {
			b.errs.Add("%s: variant content segment %q must be empty or %q", v.path, c.Segment, vs.Name)
			continue
		}
		v.content = b.node(n, c, vs.Name, roleVariantContent)
	}

	switch def := spec.Default.(type) {
	case nil:
		if len(n.variants) > 0 {
			n.def = n.variants[0].name
		}
	case string:
		if _, ok := n.Variant(def); !ok {
			b.errs.Add("%s: default variant %q does not exist", n.path, def)
		}
		n.def = def
	default:
		b.errs.Add("%s: choice default %v is not a variant name", n.path, spec.Default)
	}
}

func (b *builder) array(n *Node, spec NodeSpec) {
	items := spec.Items
	switch {
	case len(items) > 0 && spec.Element != nil:
		b.errs.Add("%s: array declares both items and element", n.path)
		return
	case len(items) == 0 && spec.Element != nil:
		if spec.Length <= 0 {
			b.errs.Add("%s: array length must be positive", n.path)
			return
		}
		defaults, _ := spec.Default.([]any)
		if defaults != nil && len(defaults) != spec.Length {
			b.errs.Add("%s: array has %d defaults for %d elements", n.path, len(defaults), spec.Length)
			return
		}
		items = make([]NodeSpec, spec.Length)
		for i := range items {
			items[i] = *spec.Element
			if defaults != nil {
				items[i].Default = defaults[i]
			}
		}
	case len(items) == 0:
		b.errs.Add("%s: array has no items", n.path)
		return
	}

	want := shape(items[0])
	for i, item := range items {
		seg := indexSegment(i)
		if item.Segment != "" && item.Segment != seg {
			b.errs.Add("%s: element %d must not be renamed (segment %q)", n.path, i, item.Segment)
			continue
		}
		if got := shape(item); got != want {
			b.errs.Add("%s: element %d is %s, expected %s", n.path, i, got, want)
			continue
		}
		if c := b.node(n, item, seg, roleElement); c != nil {
			n.children = append(n.children, c)
		}
	}
}

func (b *builder) leaf(n *Node, spec NodeSpec) bool {
	if spec.Type == TypeNone {
		b.errs.Add("%s: leaf has no value type", n.path)
		return false
	}
	n.valueType = spec.Type

	def := spec.Default
	if def == nil {
		def = Zero(spec.Type)
	}
	v, ok := Normalize(spec.Type, def)
	if !ok {
		b.errs.Add("%s: default %v (%T) is not a %s", n.path, spec.Default, spec.Default, spec.Type)
		return false
	}
	n.def = v

	if spec.Range == nil {
		return true
	}
	if !spec.Type.Numeric() {
		b.errs.Add("%s: range declared on %s leaf", n.path, spec.Type)
		return false
	}
	if spec.Range.Min > spec.Range.Max {
		b.errs.Add("%s: range %s has min > max", n.path, spec.Range)
		return false
	}
	f, _ := AsFloat(v)
	if !spec.Range.Contains(f) {
		b.errs.Add("%s: default %v outside range %s", n.path, v, spec.Range)
		return false
	}
	rng := *spec.Range
	n.rng = &rng
	return true
}

func (b *builder) register(n *Node) {
	if b.taken(n.path) {
		b.errs.Add("path %q is produced by more than one node", n.path)
		return
	}
	b.tree.nodes[n.path] = n
	b.tree.order = append(b.tree.order, n.path)
}

func (b *builder) registerVariant(v *Variant) {
	if b.taken(v.path) {
		b.errs.Add("path %q is produced by more than one node", v.path)
		return
	}
	b.tree.variants[v.path] = v
	b.tree.order = append(b.tree.order, v.path)
}

func (b *builder) taken(path string) bool {
	_, n := b.tree.nodes[path]
	_, v := b.tree.variants[path]
	return n || v
}

// shape is the structural signature used to check that array elements are
// homogeneous. Defaults and segments are ignored.
func shape(s NodeSpec) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s", s.Kind)
	if s.Kind == KindLeaf {
		fmt.Fprintf(&sb, ":%s", s.Type)
	}
	if s.Range != nil {
		fmt.Fprintf(&sb, "%s", s.Range)
	}
	if len(s.Children) > 0 {
		parts := make([]string, len(s.Children))
		for i, c := range s.Children {
			parts[i] = c.Segment + "=" + shape(c)
		}
		fmt.Fprintf(&sb, "{%s}", strings.Join(parts, ","))
	}
	if len(s.Variants) > 0 {
		parts := make([]string, len(s.Variants))
		for i, v := range s.Variants {
			parts[i] = v.Name
			if v.Content != nil {
				parts[i] += "=" + shape(*v.Content)
			}
		}
		fmt.Fprintf(&sb, "<%s>", strings.Join(parts, "|"))
	}
	return sb.String()
}
