package markup

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// xmlState is the XML 1.0 tokenizer's state set (§4.4): far smaller than
// the HTML one since XML has no content-model switching, no implicit tag
// inference and a single well-formed tag grammar.
type xmlState uint8

const (
	xmlTextState xmlState = iota
	xmlTagOpenState
	xmlEndTagOpenState
	xmlTagNameState
	xmlBeforeAttrNameState
	xmlAttrNameState
	xmlBeforeAttrValueState
	xmlAttrValueDoubleQuotedState
	xmlAttrValueSingleQuotedState
	xmlSelfClosingStartTagState
	xmlMarkupDeclOpenState
	xmlCommentState
	xmlCommentEndDashState
	xmlCommentEndState
	xmlCDATAState
	xmlCDATAEndBracketState
	xmlCDATAEndState
	xmlPITargetState
	xmlPIBeforeBodyState
	xmlPIBodyState
	xmlXMLDeclState
	xmlBogusDeclState
)

// xmlTokenizer is the streaming XML 1.0 tokenizer of §4.4, sharing the
// HTML side's InputStream/Location/ParseError plumbing but driving its own
// smaller state machine (grounded on the HTML tokenizer's dispatch-by-state
// shape in tokenizer.go, not its ~70-state table).
type xmlTokenizer struct {
	in    *InputStream
	state xmlState
	log   *logrus.Logger

	name      []rune
	data      []rune
	attrs     []Attribute
	attrNames map[string]bool
	attrKey   []rune
	attrValue []rune
	quote     rune
	curTag    tagType
	selfClose bool
	target    []rune

	pendingXMLDecl *Token

	report ReportFunc
}

func newXMLTokenizer(in *InputStream, report ReportFunc, log *logrus.Logger) *xmlTokenizer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &xmlTokenizer{in: in, state: xmlTextState, report: report, log: log, attrNames: map[string]bool{}}
}

func (t *xmlTokenizer) reportErr(kind ErrorKind, loc Location, offending string) {
	if t.report == nil {
		return
	}
	t.report(&ParseError{Kind: kind, Loc: loc, Offending: offending})
}

func (t *xmlTokenizer) resetTag() {
	t.name = t.name[:0]
	t.attrs = nil
	t.attrNames = map[string]bool{}
	t.selfClose = false
}

// next produces the next Token. At end of input it returns an eofToken
// with ok=true, and does so again on every later call.
func (t *xmlTokenizer) next() (Token, bool) {
	for {
		r, ok := t.in.next()
		loc := t.in.location()
		if !ok {
			return t.atEOF(loc)
		}
		if tok, emitted := t.step(r, loc); emitted {
			return tok, true
		}
	}
}

func (t *xmlTokenizer) atEOF(loc Location) (Token, bool) {
	switch t.state {
	case xmlTextState:
		if len(t.data) > 0 {
			s := string(t.data)
			t.data = t.data[:0]
			return Token{Type: characterToken, Data: s, Loc: loc}, true
		}
		return Token{Type: eofToken, Loc: loc}, true
	default:
		t.reportErr(UnexpectedEOF, loc, "")
		return Token{Type: eofToken, Loc: loc}, true
	}
}

// step feeds one scalar through the state machine, returning a token when
// one completes. It mirrors the HTML tokenizer's "reconsume" pattern by
// looping the caller rather than itself.
func (t *xmlTokenizer) step(r rune, loc Location) (Token, bool) {
	switch t.state {
	case xmlTextState:
		if r == '<' {
			if len(t.data) > 0 {
				s := string(t.data)
				t.data = t.data[:0]
				t.in.pushBack(r)
				return Token{Type: characterToken, Data: s, Loc: loc}, true
			}
			t.state = xmlTagOpenState
			return Token{}, false
		}
		if r == '&' {
			if ref, tail := t.resolveEntityAt(); tail {
				t.data = append(t.data, ref...)
				return Token{}, false
			}
		}
		t.data = append(t.data, r)
		return Token{}, false

	case xmlTagOpenState:
		switch {
		case r == '/':
			t.resetTag()
			t.curTag = endTag
			t.state = xmlEndTagOpenState
		case r == '?':
			t.target = t.target[:0]
			t.state = xmlPITargetState
		case r == '!':
			t.state = xmlMarkupDeclOpenState
		case isXMLNameStart(r):
			t.resetTag()
			t.curTag = startTag
			t.name = append(t.name, r)
			t.state = xmlTagNameState
		default:
			t.reportErr(UnexpectedCharacter, loc, string(r))
			t.state = xmlTextState
		}
		return Token{}, false

	case xmlEndTagOpenState:
		if isXMLNameStart(r) {
			t.name = append(t.name, r)
			t.state = xmlTagNameState
			return Token{}, false
		}
		t.reportErr(UnexpectedCharacter, loc, string(r))
		t.state = xmlTextState
		return Token{}, false

	case xmlTagNameState:
		switch {
		case isWhitespace(r):
			t.state = xmlBeforeAttrNameState
		case r == '/':
			t.state = xmlSelfClosingStartTagState
		case r == '>':
			tok := t.emitTag(loc)
			t.state = xmlTextState
			return tok, true
		case isXMLNameChar(r):
			t.name = append(t.name, r)
		default:
			t.reportErr(UnexpectedCharacter, loc, string(r))
		}
		return Token{}, false

	case xmlBeforeAttrNameState:
		switch {
		case isWhitespace(r):
		case r == '/':
			t.state = xmlSelfClosingStartTagState
		case r == '>':
			tok := t.emitTag(loc)
			t.state = xmlTextState
			return tok, true
		case isXMLNameStart(r):
			t.attrKey = []rune{r}
			t.attrValue = nil
			t.state = xmlAttrNameState
		default:
			t.reportErr(UnexpectedCharacter, loc, string(r))
		}
		return Token{}, false

	case xmlAttrNameState:
		switch {
		case r == '=':
			t.state = xmlBeforeAttrValueState
		case isWhitespace(r):
			t.state = xmlBeforeAttrNameState
			t.reportErr(UnexpectedCharacter, loc, "attribute without value")
		case isXMLNameChar(r):
			t.attrKey = append(t.attrKey, r)
		default:
			t.reportErr(UnexpectedCharacter, loc, string(r))
		}
		return Token{}, false

	case xmlBeforeAttrValueState:
		switch r {
		case '"', '\'':
			t.quote = r
			if r == '"' {
				t.state = xmlAttrValueDoubleQuotedState
			} else {
				t.state = xmlAttrValueSingleQuotedState
			}
		default:
			t.reportErr(UnexpectedCharacter, loc, string(r))
			t.state = xmlBeforeAttrNameState
		}
		return Token{}, false

	case xmlAttrValueDoubleQuotedState, xmlAttrValueSingleQuotedState:
		if r == t.quote {
			t.commitAttr()
			t.state = xmlBeforeAttrNameState
			return Token{}, false
		}
		if r == '&' {
			if ref, tail := t.resolveEntityAt(); tail {
				t.attrValue = append(t.attrValue, ref...)
				return Token{}, false
			}
		}
		if r == '<' {
			t.reportErr(UnexpectedCharacter, loc, "<")
		}
		t.attrValue = append(t.attrValue, r)
		return Token{}, false

	case xmlSelfClosingStartTagState:
		if r == '>' {
			t.selfClose = true
			tok := t.emitTag(loc)
			t.state = xmlTextState
			return tok, true
		}
		t.reportErr(UnexpectedCharacter, loc, string(r))
		t.state = xmlBeforeAttrNameState
		return Token{}, false

	case xmlMarkupDeclOpenState:
		// simplified literal match against "--" (comment) or "[CDATA["
		t.data = append(t.data, r)
		s := string(t.data)
		switch {
		case s == "-":
			return Token{}, false
		case s == "--":
			t.data = t.data[:0]
			t.state = xmlCommentState
		case len(s) <= 7 && "[CDATA["[:len(s)] == s:
			if len(s) == 7 {
				t.data = t.data[:0]
				t.state = xmlCDATAState
			}
		default:
			t.reportErr(UnexpectedCharacter, loc, s)
			t.data = t.data[:0]
			t.state = xmlBogusDeclState
		}
		return Token{}, false

	case xmlBogusDeclState:
		if r == '>' {
			t.state = xmlTextState
		}
		return Token{}, false

	case xmlCommentState:
		if r == '-' {
			t.state = xmlCommentEndDashState
			return Token{}, false
		}
		t.data = append(t.data, r)
		return Token{}, false

	case xmlCommentEndDashState:
		if r == '-' {
			t.state = xmlCommentEndState
			return Token{}, false
		}
		t.data = append(t.data, '-', r)
		t.state = xmlCommentState
		return Token{}, false

	case xmlCommentEndState:
		if r == '>' {
			s := string(t.data)
			t.data = t.data[:0]
			t.state = xmlTextState
			return Token{Type: commentToken, Data: s, Loc: loc}, true
		}
		if r == '-' {
			t.data = append(t.data, '-')
			return Token{}, false
		}
		t.reportErr(UnexpectedCharacter, loc, "--"+string(r))
		t.data = append(t.data, '-', '-', r)
		t.state = xmlCommentState
		return Token{}, false

	case xmlCDATAState:
		if r == ']' {
			t.state = xmlCDATAEndBracketState
			return Token{}, false
		}
		t.data = append(t.data, r)
		return Token{}, false

	case xmlCDATAEndBracketState:
		if r == ']' {
			t.state = xmlCDATAEndState
			return Token{}, false
		}
		t.data = append(t.data, ']', r)
		t.state = xmlCDATAState
		return Token{}, false

	case xmlCDATAEndState:
		if r == '>' {
			s := string(t.data)
			t.data = t.data[:0]
			t.state = xmlTextState
			return Token{Type: characterToken, Data: s, Loc: loc}, true
		}
		if r == ']' {
			t.data = append(t.data, ']')
			return Token{}, false
		}
		t.data = append(t.data, ']', ']', r)
		t.state = xmlCDATAState
		return Token{}, false

	case xmlPITargetState:
		switch {
		case isWhitespace(r):
			if string(t.target) == "xml" {
				t.data = t.data[:0]
				t.state = xmlXMLDeclState
			} else {
				t.state = xmlPIBeforeBodyState
			}
		case r == '?':
			// empty-bodied PI, e.g. <?target?>
			t.state = xmlPIBodyState
			t.in.pushBack(r)
		default:
			t.target = append(t.target, r)
		}
		return Token{}, false

	case xmlPIBeforeBodyState:
		if r == '?' {
			t.state = xmlPIBodyState
			t.in.pushBack(r)
			return Token{}, false
		}
		t.data = append(t.data, r)
		t.state = xmlPIBodyState
		return Token{}, false

	case xmlPIBodyState:
		if r == '?' {
			if b, ok := t.in.peekIsGT(); ok && b {
				t.in.next()
				tgt := string(t.target)
				body := string(t.data)
				t.target = t.target[:0]
				t.data = t.data[:0]
				t.state = xmlTextState
				return Token{Type: piToken, PITarget: tgt, Data: body, Loc: loc}, true
			}
		}
		t.data = append(t.data, r)
		return Token{}, false

	case xmlXMLDeclState:
		if r == '?' {
			if b, ok := t.in.peekIsGT(); ok && b {
				t.in.next()
				tok := t.emitXMLDecl(loc)
				t.state = xmlTextState
				return tok, true
			}
		}
		t.data = append(t.data, r)
		return Token{}, false
	}
	return Token{}, false
}

func (t *xmlTokenizer) commitAttr() {
	name := string(t.attrKey)
	if t.attrNames[name] {
		t.reportErr(DuplicateAttribute, t.in.location(), name)
		t.attrKey = nil
		t.attrValue = nil
		return
	}
	t.attrNames[name] = true
	t.attrs = append(t.attrs, Attribute{Name: newXMLName(name), Value: string(t.attrValue)})
	t.attrKey = nil
	t.attrValue = nil
}

func (t *xmlTokenizer) emitTag(loc Location) Token {
	name := string(t.name)
	if t.curTag == startTag {
		return Token{Type: startTagToken, Name: name, Attrs: t.attrs, SelfClosing: t.selfClose, Loc: loc}
	}
	return Token{Type: endTagToken, Name: name, Loc: loc}
}

// emitXMLDecl parses the accumulated `version="1.0" encoding="..."
// standalone="..."` pseudo-attribute text of an <?xml ...?> declaration.
func (t *xmlTokenizer) emitXMLDecl(loc Location) Token {
	text := string(t.data)
	t.data = t.data[:0]
	tok := Token{Type: xmlDeclToken, Loc: loc}
	tok.XMLVersion = extractPseudoAttr(text, "version")
	tok.XMLEncoding = extractPseudoAttr(text, "encoding")
	if sa := extractPseudoAttr(text, "standalone"); sa != "" {
		v := sa == "yes"
		tok.XMLStandalone = &v
	}
	return tok
}

func extractPseudoAttr(s, key string) string {
	i := indexFold(s, key+"=")
	if i == -1 {
		return ""
	}
	rest := s[i+len(key)+1:]
	for len(rest) > 0 && (rest[0] == ' ' || rest[0] == '\t') {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return ""
	}
	quote := rest[0]
	if quote != '"' && quote != '\'' {
		return ""
	}
	j := indexByte(rest[1:], quote)
	if j == -1 {
		return ""
	}
	return rest[1 : 1+j]
}

// resolveEntityAt consumes a `&name;` or `&#...;` character reference from
// the input directly (XML has no temp-buffer/ambiguous-ampersand tolerance
// like HTML does: a bare `&` not starting a well-formed reference is always
// an error, per XML 1.0 §4.1). Returns the decoded rune(s) and true; on a
// malformed reference it reports the error here and returns the consumed
// text, leading `&` included, for the caller to keep literally.
func (t *xmlTokenizer) resolveEntityAt() ([]rune, bool) {
	var buf []rune
	for i := 0; i < 32; i++ {
		r, ok := t.in.next()
		if !ok {
			t.reportErr(UnexpectedEOF, t.in.location(), "&"+string(buf))
			return []rune("&" + string(buf)), true
		}
		if r == ';' {
			name := string(buf)
			if len(name) > 1 && name[0] == '#' {
				return t.resolveNumericRef(name)
			}
			if ref, ok := xmlPredefinedEntities[name]; ok {
				return ref, true
			}
			t.reportErr(BadCharacterReference, t.in.location(), name)
			return []rune("&" + name + ";"), true
		}
		if !isXMLNameChar(r) && r != '#' {
			t.in.pushBack(r)
			t.reportErr(BadCharacterReference, t.in.location(), string(buf))
			return []rune("&" + string(buf)), true
		}
		buf = append(buf, r)
	}
	t.reportErr(BadCharacterReference, t.in.location(), string(buf))
	return []rune("&" + string(buf)), true
}

func (t *xmlTokenizer) resolveNumericRef(name string) ([]rune, bool) {
	digits := name[1:]
	base := 10
	if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X') {
		digits = digits[1:]
		base = 16
	}
	n, err := strconv.ParseInt(digits, base, 32)
	if err != nil {
		t.reportErr(BadCharacterReference, t.in.location(), name)
		return []rune{'�'}, true
	}
	return []rune{rune(n)}, true
}

var xmlPredefinedEntities = map[string][]rune{
	"amp": {'&'}, "lt": {'<'}, "gt": {'>'}, "apos": {'\''}, "quot": {'"'},
}

func isXMLNameStart(r rune) bool {
	return isAlpha(r) || r == '_' || r == ':' || r > 0x7F
}

func isXMLNameChar(r rune) bool {
	return isXMLNameStart(r) || isDigit(r) || r == '-' || r == '.'
}

// newXMLName builds a placeholder Name carrying the raw, unresolved
// qualified name (e.g. "ns:tag") exactly as the tokenizer saw it. Real
// prefix-to-URI resolution happens downstream in xmlNestingTracker.resolveName,
// which has the scope context (open xmlns/xmlns:prefix bindings) this
// tokenizer-level helper doesn't; xmlNestingTracker.step replaces every
// Attribute.Name built here with a resolved one before emitting a Signal.
func newXMLName(raw string) Name {
	return Name{NS: NoNamespace, Local: raw}
}

// peekIsGT is a one-rune lookahead used by the PI/XMLDecl states to check
// for the closing `>` of `?>` without consuming a non-matching rune.
func (in *InputStream) peekIsGT() (bool, bool) {
	r, ok := in.next()
	if !ok {
		return false, false
	}
	if r == '>' {
		return true, true
	}
	in.pushBack(r)
	return false, true
}

// xmlOpenElement is one entry of xmlNestingTracker's open-elements stack: the
// element's raw, unresolved tag text (end-tag matching in XML 1.0 is a
// literal byte-for-byte well-formedness check, independent of namespaces),
// its namespace-resolved Name, and the prefix-to-Namespace scope in effect
// for its children (this element's own xmlns/xmlns:prefix declarations
// already folded in).
type xmlOpenElement struct {
	Raw   string
	Name  Name
	Scope map[string]Namespace
}

// xmlNestingTracker is the §4.4 "nesting tracker": a plain name stack that
// validates end-tag matching and, at EOF, synthesizes End_element signals
// for every still-open element rather than raising a fatal error — the
// behavior spec.md §9's Open Question resolves in favor of (see DESIGN.md).
// It also owns Namespaces in XML 1.0 resolution (§3/§6/§7): each start tag
// extends the parent scope with its own `xmlns`/`xmlns:prefix` bindings
// before resolving its own name and its attributes' names against that
// scope.
type xmlNestingTracker struct {
	tok    *xmlTokenizer
	stack  []xmlOpenElement
	report ReportFunc
	ns     NamespaceResolver

	pendingDecl *Token
	sawRoot     bool

	pending []Signal
	done    bool
	err     error
}

func newXMLNestingTracker(tok *xmlTokenizer, report ReportFunc, ns NamespaceResolver) *xmlNestingTracker {
	return &xmlNestingTracker{tok: tok, report: report, ns: ns}
}

func (nt *xmlNestingTracker) reportErr(kind ErrorKind, loc Location, offending string) {
	if nt.report == nil {
		return
	}
	if err := nt.report(&ParseError{Kind: kind, Loc: loc, Offending: offending}); err != nil {
		nt.err = err
	}
}

// bindNamespace resolves a single xmlns/xmlns:prefix declaration's URI to a
// Namespace tag: the 5 well-known URIs first (§3's fixed MathML/SVG/XLink/
// XML/XMLNS mapping), then the Config.Namespace fallback for anything else
// the caller wired up, then BadNamespace for a URI nothing recognizes.
func (nt *xmlNestingTracker) bindNamespace(prefix, uri string, loc Location) Namespace {
	switch uri {
	case "":
		return NoNamespace
	case MathMLNamespace.URI():
		return MathMLNamespace
	case SVGNamespace.URI():
		return SVGNamespace
	case XLinkNamespace.URI():
		return XLinkNamespace
	case XMLNamespace.URI():
		return XMLNamespace
	case XMLNSNamespace.URI():
		return XMLNSNamespace
	}
	if nt.ns != nil {
		if ns, ok := nt.ns(prefix); ok {
			return ns
		}
	}
	nt.reportErr(BadNamespace, loc, uri)
	return NoNamespace
}

// splitQName splits a qualified name on its first colon, XML 1.0 Namespaces
// §3's "prefix:local" grammar.
func splitQName(s string) (prefix, local string) {
	if i := strings.IndexByte(s, ':'); i != -1 {
		return s[:i], s[i+1:]
	}
	return "", s
}

// resolveName resolves a raw qualified name against the given scope: per
// §3, unprefixed attributes never take on a default namespace (only
// unprefixed elements do), "xml:"/"xmlns:" prefixes are always bound to
// their reserved namespaces regardless of scope, a prefix not present in
// scope is passed to Config.Namespace, and one that neither binds is a
// well-formedness error (BadNamespace).
func (nt *xmlNestingTracker) resolveName(qname string, scope map[string]Namespace, isAttr bool, loc Location) Name {
	if isAttr && qname == "xmlns" {
		return NewName(XMLNSNamespace, "xmlns")
	}
	prefix, local := splitQName(qname)
	if prefix == "" {
		if isAttr {
			return NewName(NoNamespace, local)
		}
		if ns, ok := scope[""]; ok {
			return NewName(ns, local)
		}
		return NewName(NoNamespace, local)
	}
	if prefix == "xml" {
		return NewName(XMLNamespace, local)
	}
	if prefix == "xmlns" {
		return NewName(XMLNSNamespace, local)
	}
	if ns, ok := scope[prefix]; ok {
		return NewName(ns, local)
	}
	if nt.ns != nil {
		if ns, ok := nt.ns(prefix); ok {
			return NewName(ns, local)
		}
	}
	nt.reportErr(BadNamespace, loc, qname)
	return NewName(NoNamespace, local)
}

// buildScope extends the parent element's namespace scope (copy-on-write:
// §3's scoping is per-subtree, never mutates an ancestor's bindings) with
// whatever xmlns/xmlns:prefix declarations this start tag's attributes
// carry.
func (nt *xmlNestingTracker) buildScope(tok Token, loc Location) map[string]Namespace {
	var parent map[string]Namespace
	if len(nt.stack) > 0 {
		parent = nt.stack[len(nt.stack)-1].Scope
	}
	scope := make(map[string]Namespace, len(parent))
	for k, v := range parent {
		scope[k] = v
	}
	for _, a := range tok.Attrs {
		switch {
		case a.Name.Local == "xmlns":
			scope[""] = nt.bindNamespace("", a.Value, loc)
		case strings.HasPrefix(a.Name.Local, "xmlns:"):
			prefix := a.Name.Local[len("xmlns:"):]
			scope[prefix] = nt.bindNamespace(prefix, a.Value, loc)
		}
	}
	return scope
}

func (nt *xmlNestingTracker) Next() (Signal, error, bool) {
	for {
		if nt.err != nil {
			return Signal{}, nt.err, false
		}
		if len(nt.pending) > 0 {
			s := nt.pending[0]
			nt.pending = nt.pending[1:]
			return s, nil, true
		}
		if nt.done {
			return Signal{}, nil, false
		}
		nt.step()
	}
}

func (nt *xmlNestingTracker) step() {
	tok, ok := nt.tok.next()
	if !ok || tok.Type == eofToken {
		nt.atEOF(tok.Loc)
		return
	}
	switch tok.Type {
	case characterToken:
		nt.pending = append(nt.pending, Signal{Kind: Text, Chunks: []string{tok.Data}, Loc: tok.Loc})
	case commentToken:
		nt.pending = append(nt.pending, Signal{Kind: Comment, CommentText: tok.Data, Loc: tok.Loc})
	case piToken:
		nt.pending = append(nt.pending, Signal{Kind: PI, PITarget: tok.PITarget, PIBody: tok.Data, Loc: tok.Loc})
	case xmlDeclToken:
		nt.pending = append(nt.pending, Signal{
			Kind: XMLDecl, XMLVersion: tok.XMLVersion, XMLEncoding: tok.XMLEncoding,
			XMLStandalone: tok.XMLStandalone, Loc: tok.Loc,
		})
	case startTagToken:
		scope := nt.buildScope(tok, tok.Loc)
		name := nt.resolveName(tok.Name, scope, false, tok.Loc)
		attrs := make([]Attribute, len(tok.Attrs))
		for i, a := range tok.Attrs {
			attrs[i] = Attribute{Name: nt.resolveName(a.Name.Local, scope, true, tok.Loc), Value: a.Value}
		}
		nt.sawRoot = true
		nt.pending = append(nt.pending, Signal{Kind: StartElement, Name: name, Attrs: attrs, Loc: tok.Loc})
		if !tok.SelfClosing {
			nt.stack = append(nt.stack, xmlOpenElement{Raw: tok.Name, Name: name, Scope: scope})
		} else {
			nt.pending = append(nt.pending, Signal{Kind: EndElement, Name: name, Loc: tok.Loc})
		}
	case endTagToken:
		nt.closeThrough(tok.Name, tok.Loc)
	}
}

// closeThrough implements well-formedness recovery for a mismatched end
// tag: if the name matches some open ancestor, every element between the
// top of the stack and that ancestor is implicitly closed (reported as
// MisnestedTag) before the match itself closes; if no ancestor matches,
// the end tag is dropped with an UnmatchedEndTag report and the stack is
// left untouched.
func (nt *xmlNestingTracker) closeThrough(name string, loc Location) {
	idx := -1
	for i := len(nt.stack) - 1; i >= 0; i-- {
		if nt.stack[i].Raw == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		nt.reportErr(UnmatchedEndTag, loc, name)
		return
	}
	for len(nt.stack)-1 > idx {
		top := nt.stack[len(nt.stack)-1]
		nt.stack = nt.stack[:len(nt.stack)-1]
		nt.reportErr(MisnestedTag, loc, top.Raw)
		nt.pending = append(nt.pending, Signal{Kind: EndElement, Name: top.Name, Loc: loc})
	}
	top := nt.stack[len(nt.stack)-1]
	nt.stack = nt.stack[:len(nt.stack)-1]
	nt.pending = append(nt.pending, Signal{Kind: EndElement, Name: top.Name, Loc: loc})
}

// atEOF synthesizes a matching End_element for everything still open,
// exactly as the HTML tree builder's closeAllImpliedAtEOF does, and flags
// UnexpectedEOF when the stack was non-empty (a well-formedness violation
// that is nonetheless recovered from rather than treated as fatal, per the
// "never fatal by itself" contract in §7).
func (nt *xmlNestingTracker) atEOF(loc Location) {
	if len(nt.stack) > 0 {
		nt.reportErr(UnexpectedEOF, loc, "")
	}
	if !nt.sawRoot {
		nt.reportErr(UnexpectedEOF, loc, "no root element")
	}
	for len(nt.stack) > 0 {
		top := nt.stack[len(nt.stack)-1]
		nt.stack = nt.stack[:len(nt.stack)-1]
		nt.pending = append(nt.pending, Signal{Kind: EndElement, Name: top.Name, Loc: loc})
	}
	nt.done = true
}
