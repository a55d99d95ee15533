package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <main>, <div>, etc.
	KindText                  // Escaped text
	KindFragment              // Children without a wrapper
	KindRaw                   // Trusted HTML written verbatim
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is a node in a page tree.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name
	Props    Props    // Attributes
	Children []*VNode // Child nodes
	Text     string   // For KindText and KindRaw
}

// Props holds element attributes.
type Props map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Attrs returns the node's attributes as a plain string map.
// Boolean attributes that are false are omitted.
func (v *VNode) Attrs() map[string]string {
	if v == nil || len(v.Props) == 0 {
		return nil
	}
	out := make(map[string]string, len(v.Props))
	for key, value := range v.Props {
		switch val := value.(type) {
		case bool:
			if val {
				out[key] = ""
			}
		case string:
			out[key] = val
		}
	}
	return out
}
