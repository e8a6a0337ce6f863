package markup

import "golang.org/x/net/html/atom"

// Namespace identifies the XML namespace an element or attribute belongs
// to. The zero value is the HTML namespace.
type Namespace uint8

const (
	HTMLNamespace Namespace = iota
	MathMLNamespace
	SVGNamespace
	XLinkNamespace
	XMLNamespace
	XMLNSNamespace
	NoNamespace // used for XML documents with no namespace binding
)

func (n Namespace) URI() string {
	switch n {
	case MathMLNamespace:
		return "http://www.w3.org/1998/Math/MathML"
	case SVGNamespace:
		return "http://www.w3.org/2000/svg"
	case XLinkNamespace:
		return "http://www.w3.org/1999/xlink"
	case XMLNamespace:
		return "http://www.w3.org/XML/1998/namespace"
	case XMLNSNamespace:
		return "http://www.w3.org/2000/xmlns/"
	default:
		return ""
	}
}

// Name is an interned element or attribute name. For the fixed set of
// names golang.org/x/net/html/atom knows, Local is backed by the atom
// table directly (the spec's "interned once at tokenizer output"); custom
// elements, SVG/MathML names and all XML names fall back to a plain
// string, since atom only carries the static HTML vocabulary.
type Name struct {
	NS    Namespace
	Local string
	atom  atom.Atom
}

// NewName interns local against the atom table when possible.
func NewName(ns Namespace, local string) Name {
	return Name{NS: ns, Local: local, atom: atom.Lookup([]byte(local))}
}

// String returns the local name, unqualified.
func (n Name) String() string { return n.Local }

// IsAtom reports whether Local interned to the atom a. It is false for any
// name outside golang.org/x/net/html/atom's fixed HTML tag/attribute
// vocabulary, whatever a is.
func (n Name) IsAtom(a atom.Atom) bool { return n.atom == a && n.atom != 0 }

// Attribute is a single name/value pair on a start tag. Attributes are
// deduplicated per tag at the tokenizer: the first occurrence of a name
// wins and later duplicates raise DuplicateAttribute (§3).
type Attribute struct {
	Name  Name
	Value string
}
