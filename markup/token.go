package markup

import "strings"

//go:generate stringer -type=tokenType
type tokenType uint

const (
	characterToken tokenType = iota
	startTagToken
	endTagToken
	commentToken
	docTypeToken
	xmlDeclToken
	piToken
	eofToken
)

const missingIdentifier string = "MISSING"

// Token is a concrete token produced by a tokenizer and consumed by a
// tree/nesting builder. Only the fields relevant to TokenType are set.
type Token struct {
	Type             tokenType
	Name             string
	Attrs            []Attribute
	SelfClosing      bool
	Data             string // character data, comment text, or PI body
	PITarget         string
	PublicIdentifier string
	SystemIdentifier string
	ForceQuirks      bool
	XMLVersion       string
	XMLEncoding      string
	XMLStandalone    *bool
	Loc              Location
}

func (t *Token) attr(name string) (string, bool) {
	for _, a := range t.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// tokenBuilder accumulates the pieces of a token across many tokenizer
// states before it is committed and emitted. One builder is reused for the
// whole stream; NewToken resets it between tokens.
type tokenBuilder struct {
	attrs          []Attribute
	attrNames      map[string]bool
	attrKey        strings.Builder
	attrValue      strings.Builder
	name           strings.Builder
	data           strings.Builder
	tempBuffer     strings.Builder
	publicID       strings.Builder
	systemID       strings.Builder
	selfClosing    bool
	forceQuirks    bool
	removeNextAttr bool
	hasPublicID    bool
	hasSystemID    bool
	curTagType     tagType
	charRefCode    int
	additionalAllowedChar rune
}

type tagType uint

const (
	startTag tagType = iota
	endTag
)

func newTokenBuilder() *tokenBuilder {
	return &tokenBuilder{attrNames: map[string]bool{}}
}

// NewToken clears all the builders and attributes so the next token starts
// from a blank slate. The temp buffer is left alone: it spans multiple
// token lifetimes inside character-reference and script-data states.
func (t *tokenBuilder) NewToken() {
	t.attrs = nil
	t.attrNames = map[string]bool{}
	t.attrKey.Reset()
	t.attrValue.Reset()
	t.publicID.Reset()
	t.systemID.Reset()
	t.hasPublicID = false
	t.hasSystemID = false
	t.data.Reset()
	t.name.Reset()
	t.selfClosing = false
	t.forceQuirks = false
	t.removeNextAttr = false
}

func (t *tokenBuilder) WritePublicIdentifier(r rune) { t.hasPublicID = true; t.publicID.WriteRune(r) }
func (t *tokenBuilder) WriteSystemIdentifier(r rune) { t.hasSystemID = true; t.systemID.WriteRune(r) }
func (t *tokenBuilder) WriteAttributeName(r rune)    { t.attrKey.WriteRune(r) }
func (t *tokenBuilder) WriteData(r rune)             { t.data.WriteRune(r) }
func (t *tokenBuilder) WriteAttributeValue(r rune)   { t.attrValue.WriteRune(r) }
func (t *tokenBuilder) WriteName(r rune)             { t.name.WriteRune(r) }
func (t *tokenBuilder) WriteTempBuffer(r rune)       { t.tempBuffer.WriteRune(r) }
func (t *tokenBuilder) ResetTempBuffer()             { t.tempBuffer.Reset() }
func (t *tokenBuilder) TempBuffer() string           { return t.tempBuffer.String() }
func (t *tokenBuilder) SetCharRef(i int)             { t.charRefCode = i }
func (t *tokenBuilder) GetCharRef() int              { return t.charRefCode }
func (t *tokenBuilder) AddToCharRef(i int)           { t.charRefCode += i }
func (t *tokenBuilder) MultByCharRef(i int)          { t.charRefCode *= i }
func (t *tokenBuilder) EnableSelfClosing()           { t.selfClosing = true }
func (t *tokenBuilder) EnableForceQuirks()           { t.forceQuirks = true }

// RemoveDuplicateAttributeName checks whether the attribute name currently
// being built has already been committed to this tag. If so, the pending
// attribute is marked for removal: the first occurrence always wins.
func (t *tokenBuilder) RemoveDuplicateAttributeName() bool {
	if t.attrNames[t.attrKey.String()] {
		t.removeNextAttr = true
		return true
	}
	return false
}

// CommitAttribute finishes the current key/value pair, appending it to
// Attrs unless it was flagged as a duplicate.
func (t *tokenBuilder) CommitAttribute(ns Namespace) {
	if !t.removeNextAttr {
		k := t.attrKey.String()
		if k != "" {
			t.attrNames[k] = true
			t.attrs = append(t.attrs, Attribute{Name: NewName(ns, k), Value: t.attrValue.String()})
		}
	}
	t.attrKey.Reset()
	t.attrValue.Reset()
	t.removeNextAttr = false
}

func (t *tokenBuilder) StartTagToken(loc Location) Token {
	return Token{Type: startTagToken, Name: t.name.String(), Attrs: t.attrs, SelfClosing: t.selfClosing, Loc: loc}
}

func (t *tokenBuilder) EndTagToken(loc Location) Token {
	return Token{Type: endTagToken, Name: t.name.String(), Attrs: t.attrs, SelfClosing: t.selfClosing, Loc: loc}
}

func (t *tokenBuilder) CharacterToken(r rune, loc Location) Token {
	return Token{Type: characterToken, Data: string(r), Loc: loc}
}

func (t *tokenBuilder) EOFToken(loc Location) Token {
	return Token{Type: eofToken, Loc: loc}
}

func (t *tokenBuilder) CommentToken(loc Location) Token {
	return Token{Type: commentToken, Data: t.data.String(), Loc: loc}
}

func (t *tokenBuilder) DocTypeToken(loc Location) Token {
	pub, sys := missingIdentifier, missingIdentifier
	if t.hasPublicID {
		pub = t.publicID.String()
	}
	if t.hasSystemID {
		sys = t.systemID.String()
	}
	return Token{
		Type:             docTypeToken,
		Name:             t.name.String(),
		ForceQuirks:      t.forceQuirks,
		PublicIdentifier: pub,
		SystemIdentifier: sys,
		Loc:              loc,
	}
}
