package schema

// role says how a node hangs off its parent. It drives path encoding and
// activity gating.
type role int

const (
	roleChild role = iota
	roleElement
	roleVariantContent
	roleSwitchEnabled
	roleSwitchContent
)

// Node is one node of a built tree. Nodes are immutable once the tree is
// built and can be shared between goroutines.
type Node struct {
	kind      Kind
	segment   string
	role      role
	anonymous bool
	parent    *Node
	children  []*Node
	variants  []*Variant
	valueType ValueType
	def       any
	rng       *Range
	path      string
}

// Variant is one selectable alternative of a Choice node.
type Variant struct {
	name    string
	choice  *Node
	content *Node
	path    string
}

func (n *Node) Kind() Kind           { return n.kind }
func (n *Node) Segment() string      { return n.segment }
func (n *Node) Parent() *Node        { return n.parent }
func (n *Node) ValueType() ValueType { return n.valueType }

// Path returns the node's encoded path. For a Choice this is the selector
// path.
func (n *Node) Path() string { return n.path }

// Children returns the ordered children. A Switch has exactly two: its
// enabled leaf and its content section. Choices expose their subtrees
// through Variants instead.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Variants returns the variants of a Choice, in declaration order.
func (n *Node) Variants() []*Variant {
	out := make([]*Variant, len(n.variants))
	copy(out, n.variants)
	return out
}

// Variant returns the variant with the given name.
func (n *Node) Variant(name string) (*Variant, bool) {
	for _, v := range n.variants {
		if v.name == name {
			return v, true
		}
	}
	return nil, false
}

// Default returns the default value of a Leaf (canonical type) or the
// default variant name of a Choice. Other kinds return nil.
func (n *Node) Default() any { return n.def }

// Range returns the numeric range of a Leaf, if declared.
func (n *Node) Range() (Range, bool) {
	if n.rng == nil {
		return Range{}, false
	}
	return *n.rng, true
}

// Named reports whether the node must carry a localized name. Only the
// content sections of switches and variants are anonymous.
func (n *Node) Named() bool { return !n.anonymous }

// Settable reports whether the node holds a bound value: leaves, and
// choices (whose value is the selected variant name).
func (n *Node) Settable() bool {
	return n.kind == KindLeaf || n.kind == KindChoice
}

// SwitchEnabled returns the enabled leaf of a Switch.
func (n *Node) SwitchEnabled() *Node {
	if n.kind != KindSwitch {
		return nil
	}
	return n.children[0]
}

// SwitchContent returns the content section of a Switch.
func (n *Node) SwitchContent() *Node {
	if n.kind != KindSwitch {
		return nil
	}
	return n.children[1]
}

// Gate returns the settable node that controls whether n is reachable, and
// the value it must hold. It reports false for nodes that are always
// reachable from their parent.
func (n *Node) Gate() (ctrl *Node, want any, ok bool) {
	switch n.role {
	case roleVariantContent:
		return n.parent, n.segment, true
	case roleSwitchContent:
		return n.parent.SwitchEnabled(), true, true
	default:
		return nil, nil, false
	}
}

func (v *Variant) Name() string  { return v.name }
func (v *Variant) Choice() *Node { return v.choice }

// Content returns the variant's subtree root, or nil.
func (v *Variant) Content() *Node { return v.content }

// Path returns the variant path, e.g. "_root_video_codec_HEVC-choice-".
func (v *Variant) Path() string { return v.path }
