package markup

import (
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

//go:generate stringer -type=insertionMode
type insertionMode uint8

// The 23 insertion modes named in §3, the full set HTML5 tree construction
// defines.
const (
	initialMode insertionMode = iota
	beforeHTMLMode
	beforeHeadMode
	inHeadMode
	inHeadNoscriptMode
	afterHeadMode
	inBodyMode
	textMode
	inTableMode
	inTableTextMode
	inCaptionMode
	inColumnGroupMode
	inTableBodyMode
	inRowMode
	inCellMode
	inSelectMode
	inSelectInTableMode
	inTemplateMode
	afterBodyMode
	inFramesetMode
	afterFramesetMode
	afterAfterBodyMode
	afterAfterFramesetMode
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

var rawTextElements = map[string]bool{
	"script": true, "style": true, "xmp": true, "iframe": true,
	"noembed": true, "noframes": true,
}

var rcDataElements = map[string]bool{"title": true, "textarea": true}

// treeBuilder is the HTML5 tree construction stage (§4.3): a state machine
// over 23 insertion modes, consuming tokens from an HTMLTokenizer and
// emitting Signals. It owns the open-elements stack, the active-formatting-
// elements list, and the current insertion mode (§3 Ownership).
type treeBuilder struct {
	tok *HTMLTokenizer

	open elementStack
	afe  []*afeEntry

	mode         insertionMode
	originalMode insertionMode

	head *openElement
	form *openElement

	framesetOK   bool
	scripting    bool
	quirks       QuirksMode
	ignoreNextLF bool

	fosterParenting   bool
	pendingTableChars []rune
	pendingTableNonWS bool

	fragment      bool
	contextElem   *openElement
	templateModes []insertionMode

	report ReportFunc
	log    *logrus.Logger

	pending []Signal
	curLoc  Location

	done bool
	err  error
}

// NewHTMLTreeBuilder wires a tokenizer to a fresh tree builder starting in
// the Initial insertion mode.
func NewHTMLTreeBuilder(tok *HTMLTokenizer, report ReportFunc, log *logrus.Logger) *treeBuilder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &treeBuilder{tok: tok, mode: initialMode, framesetOK: true, report: report, log: log}
}

func (tc *treeBuilder) reportErr(kind ErrorKind, loc Location, offending string) {
	if tc.report == nil {
		return
	}
	if err := tc.report(&ParseError{Kind: kind, Loc: loc, Offending: offending}); err != nil {
		tc.err = err
	}
}

func (tc *treeBuilder) emit(s Signal) { tc.pending = append(tc.pending, s) }

func (tc *treeBuilder) emitStartElement(e *openElement, loc Location) {
	tc.emit(Signal{Kind: StartElement, Name: e.Name, Attrs: e.Attrs, Loc: loc})
}

func (tc *treeBuilder) emitEndElement(e *openElement, loc Location) {
	tc.emit(Signal{Kind: EndElement, Name: e.Name, Loc: loc})
}

func (tc *treeBuilder) emitText(s string, loc Location) {
	if s == "" {
		return
	}
	tc.emit(Signal{Kind: Text, Chunks: []string{s}, Loc: loc})
}

func (tc *treeBuilder) emitComment(data string, loc Location) {
	tc.emit(Signal{Kind: Comment, CommentText: data, Loc: loc})
}

func (tc *treeBuilder) emitDoctype(name, public, system string, loc Location) {
	tc.emit(Signal{Kind: Doctype, DoctypeName: name, PublicID: public, SystemID: system, Loc: loc})
}

// Next pulls and returns the next Signal, driving the tokenizer and mode
// dispatch as needed. It returns ok=false at EOF and on every call after.
func (tc *treeBuilder) Next() (Signal, error, bool) {
	for {
		if tc.err != nil {
			return Signal{}, tc.err, false
		}
		if len(tc.pending) > 0 {
			s := tc.pending[0]
			tc.pending = tc.pending[1:]
			return s, nil, true
		}
		if tc.done {
			return Signal{}, nil, false
		}
		tc.step()
	}
}

// step consumes exactly one token from the tokenizer and dispatches it to
// the current mode's handler, looping internally while a handler signals
// "reprocess" (the HTML5 "anything else" / "process again" directives).
func (tc *treeBuilder) step() {
	tok, ok := tc.tok.Next()
	tc.curLoc = tok.Loc
	if !ok || tok.Type == eofToken {
		tc.handleEOF()
		return
	}
	tc.dispatch(tok)
}

// dispatch applies §4.3's "tree construction dispatcher": tokens route
// through foreignContentHandler while the current node is inside SVG/MathML
// content and isn't an integration point back into HTML (inForeignContent),
// and through the current insertion mode's handler otherwise.
func (tc *treeBuilder) dispatch(tok Token) {
	again := true
	for again {
		if tc.inForeignContent(tok) {
			again = tc.foreignContentHandler(tok)
		} else {
			again = tc.handlers()[tc.mode](tok)
		}
	}
}

func (tc *treeBuilder) handlers() map[insertionMode]func(Token) bool {
	return map[insertionMode]func(Token) bool{
		initialMode:            tc.initialModeHandler,
		beforeHTMLMode:         tc.beforeHTMLModeHandler,
		beforeHeadMode:         tc.beforeHeadModeHandler,
		inHeadMode:             tc.inHeadModeHandler,
		inHeadNoscriptMode:     tc.inHeadNoscriptModeHandler,
		afterHeadMode:          tc.afterHeadModeHandler,
		inBodyMode:             tc.inBodyModeHandler,
		textMode:               tc.textModeHandler,
		inTableMode:            tc.inTableModeHandler,
		inTableTextMode:        tc.inTableTextModeHandler,
		inCaptionMode:          tc.inCaptionModeHandler,
		inColumnGroupMode:      tc.inColumnGroupModeHandler,
		inTableBodyMode:        tc.inTableBodyModeHandler,
		inRowMode:              tc.inRowModeHandler,
		inCellMode:             tc.inCellModeHandler,
		inSelectMode:           tc.inSelectModeHandler,
		inSelectInTableMode:    tc.inSelectInTableModeHandler,
		inTemplateMode:         tc.inTemplateModeHandler,
		afterBodyMode:          tc.afterBodyModeHandler,
		inFramesetMode:         tc.inFramesetModeHandler,
		afterFramesetMode:      tc.afterFramesetModeHandler,
		afterAfterBodyMode:     tc.afterAfterBodyModeHandler,
		afterAfterFramesetMode: tc.afterAfterFramesetModeHandler,
	}
}

func (tc *treeBuilder) handleEOF() {
	tc.closeAllImpliedAtEOF()
	tc.done = true
}

// closeAllImpliedAtEOF synthesizes End_element signals for everything left
// open, satisfying §3's "every Start_element is matched by exactly one
// End_element by EOF" invariant. In fragment mode the synthetic root and
// the context element were never emitted, so they get no End_element.
func (tc *treeBuilder) closeAllImpliedAtEOF() {
	for !tc.open.empty() {
		e := tc.open.pop()
		if tc.fragment && (e == tc.contextElem || tc.open.empty()) {
			continue
		}
		tc.emitEndElement(e, tc.curLoc)
	}
}

// insertHTMLElement implements "insert an HTML element for the token"
// (used throughout §4.3): it pushes a new openElement, emits its
// Start_element, and applies any tokenizer content-model switch the
// element name requires.
func (tc *treeBuilder) insertHTMLElement(tok Token) *openElement {
	e := tc.open.push(NewName(HTMLNamespace, tok.Name), tok.Attrs)
	tc.emitStartElement(e, tok.Loc)
	tc.applyContentModelSwitch(tok.Name)
	return e
}

// insertVoidElement emits a Start_element immediately followed by its
// End_element without touching the open-elements stack; used for HTML void
// elements.
func (tc *treeBuilder) insertVoidElement(tok Token) {
	e := &openElement{Name: NewName(HTMLNamespace, tok.Name), Attrs: tok.Attrs}
	tc.emitStartElement(e, tok.Loc)
	tc.emitEndElement(e, tok.Loc)
}

func (tc *treeBuilder) applyContentModelSwitch(name string) {
	switch {
	case name == "script":
		tc.tok.SwitchToScriptData()
		tc.originalMode = tc.mode
		tc.mode = textMode
	case name == "title" || name == "textarea":
		tc.tok.SwitchToRCDATA()
		tc.tok.SetLastStartTag(name)
		tc.originalMode = tc.mode
		tc.mode = textMode
	case name == "style" || name == "xmp" || name == "iframe" || name == "noembed" ||
		(name == "noframes"):
		tc.tok.SwitchToRAWTEXT()
		tc.tok.SetLastStartTag(name)
		tc.originalMode = tc.mode
		tc.mode = textMode
	case name == "plaintext":
		tc.tok.SwitchToPLAINTEXT()
	case name == "noscript" && tc.scripting:
		tc.tok.SwitchToRAWTEXT()
		tc.tok.SetLastStartTag(name)
		tc.originalMode = tc.mode
		tc.mode = textMode
	}
}

// insertCharacter emits a character through §4.3's "insert a character"
// procedure at the current position; it does not foster-parent, even when
// called from a table mode. s is a single scalar already encoded as a string by the
// tokenizer (Token.Data for a characterToken is always exactly one rune).
func (tc *treeBuilder) insertCharacter(s string, loc Location) {
	if tc.ignoreNextLF {
		tc.ignoreNextLF = false
		if s == "\n" {
			return
		}
	}
	tc.emitText(s, loc)
}

func isWhitespaceToken(tok Token) bool {
	return tok.Type == characterToken && len(tok.Data) == 1 && isWhitespace(rune(tok.Data[0]))
}

// singleRune decodes the one scalar a character token's Data always holds.
func singleRune(s string) (rune, bool) {
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, true
}

// inBodyAnyOtherEndTag is the "any other end tag" branch of the InBody
// insertion mode (§4.3's in-body end-tag fallback), reused by the adoption
// agency when no matching formatting element remains.
func (tc *treeBuilder) inBodyAnyOtherEndTag(name string) {
	for i := len(tc.open.entries) - 1; i >= 0; i-- {
		node := tc.open.entries[i]
		if node.Name.Local == name {
			tc.generateImpliedEndTags(name)
			for !tc.open.empty() {
				e := tc.open.pop()
				tc.emitEndElement(e, tc.curLoc)
				if e == node {
					break
				}
			}
			return
		}
		if isSpecialElement(node.Name.Local) {
			tc.reportErr(UnmatchedEndTag, tc.curLoc, name)
			return
		}
	}
}
