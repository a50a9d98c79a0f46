// Package schema models the settings tree: a typed, nested definition made of
// tabs, sections, choices with variants, switches, fixed-size indexed arrays
// and scalar leaves.
//
// A tree is built once from a declarative list of NodeSpec values and never
// changes shape afterwards. Every node gets a stable path (see Encode) which
// is the only key used for localization and persistence.
package schema

import (
	"fmt"
	"strings"
)

// Kind is the tag of a schema node.
type Kind int

const (
	KindTab Kind = iota
	KindSection
	KindChoice
	KindIndexedArray
	KindLeaf
	KindSwitch
)

var kindNames = map[Kind]string{
	KindTab:          "tab",
	KindSection:      "section",
	KindChoice:       "choice",
	KindIndexedArray: "array",
	KindLeaf:         "leaf",
	KindSwitch:       "switch",
}

// String returns the kind name used in YAML definitions.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for kind, n := range kindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown node kind %q", text)
}

// ValueType is the declared type of a leaf value.
type ValueType int

const (
	TypeNone ValueType = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
)

var typeNames = map[ValueType]string{
	TypeNone:   "none",
	TypeBool:   "bool",
	TypeInt:    "int",
	TypeFloat:  "float",
	TypeString: "string",
}

func (t ValueType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t ValueType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ValueType) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for vt, n := range typeNames {
		if n == name {
			*t = vt
			return nil
		}
	}
	return fmt.Errorf("unknown value type %q", text)
}

// Numeric reports whether values of this type can carry a range.
func (t ValueType) Numeric() bool {
	return t == TypeInt || t == TypeFloat
}

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("[%v, %v]", r.Min, r.Max)
}

// NodeSpec is the declarative description of one node.
//
// Which fields matter depends on Kind:
//   - Tab, Section: Children.
//   - Switch: Children (the content) and Default (the enabled flag).
//   - Choice: Variants and Default (the selected variant name).
//   - IndexedArray: Items, or Length copies of Element. Default may be a
//     list overriding each element's default.
//   - Leaf: Type, Default and an optional Range.
type NodeSpec struct {
	Kind     Kind          `yaml:"kind"`
	Segment  string        `yaml:"segment"`
	Type     ValueType     `yaml:"type,omitempty"`
	Default  any           `yaml:"default,omitempty"`
	Range    *Range        `yaml:"range,omitempty"`
	Children []NodeSpec    `yaml:"children,omitempty"`
	Variants []VariantSpec `yaml:"variants,omitempty"`
	Items    []NodeSpec    `yaml:"items,omitempty"`
	Length   int           `yaml:"length,omitempty"`
	Element  *NodeSpec     `yaml:"element,omitempty"`
}

// VariantSpec is one alternative of a Choice. Content is either a Leaf or a
// Section; its segment is replaced by the variant name.
type VariantSpec struct {
	Name    string    `yaml:"name"`
	Content *NodeSpec `yaml:"content,omitempty"`
}

// Within returns a copy of the spec constrained to [min, max].
func (s NodeSpec) Within(min, max float64) NodeSpec {
	s.Range = &Range{Min: min, Max: max}
	return s
}

// Tab declares a top-level tab.
func Tab(segment string, children ...NodeSpec) NodeSpec {
	return NodeSpec{Kind: KindTab, Segment: segment, Children: children}
}

// Section declares a named group.
func Section(segment string, children ...NodeSpec) NodeSpec {
	return NodeSpec{Kind: KindSection, Segment: segment, Children: children}
}

// Switch declares an optional group with an enabled flag.
func Switch(segment string, enabled bool, children ...NodeSpec) NodeSpec {
	return NodeSpec{Kind: KindSwitch, Segment: segment, Default: enabled, Children: children}
}

// Choice declares a choice whose default is the variant named def.
func Choice(segment, def string, variants ...VariantSpec) NodeSpec {
	return NodeSpec{Kind: KindChoice, Segment: segment, Default: def, Variants: variants}
}

// Option declares a variant without content.
func Option(name string) VariantSpec {
	return VariantSpec{Name: name}
}

// VariantWith declares a variant owning a single leaf.
func VariantWith(name string, content NodeSpec) VariantSpec {
	return VariantSpec{Name: name, Content: &content}
}

// VariantGroup declares a variant owning several nodes.
func VariantGroup(name string, children ...NodeSpec) VariantSpec {
	content := NodeSpec{Kind: KindSection, Children: children}
	return VariantSpec{Name: name, Content: &content}
}

// Array declares an indexed array from explicit items.
func Array(segment string, items ...NodeSpec) NodeSpec {
	return NodeSpec{Kind: KindIndexedArray, Segment: segment, Items: items}
}

// Vec3 declares a 3-component float vector constrained to rng.
func Vec3(segment string, rng Range, x, y, z float64) NodeSpec {
	return Array(segment,
		Float("", x).Within(rng.Min, rng.Max),
		Float("", y).Within(rng.Min, rng.Max),
		Float("", z).Within(rng.Min, rng.Max),
	)
}

// Bool declares a boolean leaf.
func Bool(segment string, def bool) NodeSpec {
	return NodeSpec{Kind: KindLeaf, Segment: segment, Type: TypeBool, Default: def}
}

// Int declares an integer leaf.
func Int(segment string, def int64) NodeSpec {
	return NodeSpec{Kind: KindLeaf, Segment: segment, Type: TypeInt, Default: def}
}

// Float declares a float leaf.
func Float(segment string, def float64) NodeSpec {
	return NodeSpec{Kind: KindLeaf, Segment: segment, Type: TypeFloat, Default: def}
}

// String declares a string leaf.
func String(segment, def string) NodeSpec {
	return NodeSpec{Kind: KindLeaf, Segment: segment, Type: TypeString, Default: def}
}
