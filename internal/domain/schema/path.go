package schema

import (
	"strconv"
	"strings"
)

// Flat key convention. This file is the only place that knows it.
const (
	RootMarker   = "_root"
	Separator    = "_"
	ChoiceSuffix = "-choice-"
	TabSuffix    = "_tab"

	FieldName        = "name"
	FieldDescription = "description"
)

// Encode returns the path of n: the root marker followed by the segments of
// every ancestor, joined by Separator. Tabs get TabSuffix and Choices get
// ChoiceSuffix so that the node's own key never collides with the keys of
// its children.
//
// Encode is pure and total; Build checks that it is injective over a tree.
func Encode(n *Node) string {
	base := encodeBase(n)
	switch n.kind {
	case KindTab:
		return base + TabSuffix
	case KindChoice:
		return base + ChoiceSuffix
	default:
		return base
	}
}

// EncodeVariant returns the path naming one variant of a Choice, e.g.
// "_root_video_codec_HEVC-choice-".
func EncodeVariant(choice *Node, variant string) string {
	return encodeBase(choice) + Separator + variant + ChoiceSuffix
}

// Key returns the bundle key for a path and field.
func Key(path, field string) string {
	return path + "." + field
}

// SplitKey splits a bundle key into its path and field. It reports false
// for keys that are not path keys (free UI messages).
func SplitKey(key string) (path, field string, ok bool) {
	if !strings.HasPrefix(key, RootMarker) {
		return "", "", false
	}
	i := strings.LastIndexByte(key, '.')
	if i < 0 {
		return "", "", false
	}
	path, field = key[:i], key[i+1:]
	if field != FieldName && field != FieldDescription {
		return "", "", false
	}
	return path, field, true
}

// encodeBase walks from n up to the root and joins the segments.
func encodeBase(n *Node) string {
	var segments []string
	for cur := n; cur != nil && cur.parent != nil; cur = cur.parent {
		segments = append(segments, cur.segment)
	}
	var b strings.Builder
	b.WriteString(RootMarker)
	for i := len(segments) - 1; i >= 0; i-- {
		b.WriteString(Separator)
		b.WriteString(segments[i])
	}
	return b.String()
}

func indexSegment(i int) string {
	return strconv.Itoa(i)
}
