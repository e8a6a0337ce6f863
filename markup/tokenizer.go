package markup

import (
	"github.com/sirupsen/logrus"
)

// parserStateHandler is a pure Mealy transition: state × scalar ->
// (reconsume?, next state), emitting zero or more tokens as a side effect
// onto the tokenizer's pending queue (§4.2, §9 "tagged dispatch over a
// single enum").
type parserStateHandler func(r rune, eof bool) (reconsume bool, next tokenizerState)

// HTMLTokenizer is a Mealy machine over Unicode scalars (§4.2).
type HTMLTokenizer struct {
	in      *InputStream
	state   tokenizerState
	retState tokenizerState
	b       *tokenBuilder
	pending []Token
	lastStartTagName string
	report  ReportFunc
	log     *logrus.Logger
	tokStart Location
	curLoc  Location

	entityResolver EntityResolver
}

// SetEntityResolver installs a caller-supplied entity table extension,
// consulted before entities.go's built-in table (§6 Config.Entity).
func (t *HTMLTokenizer) SetEntityResolver(r EntityResolver) { t.entityResolver = r }

// NewHTMLTokenizer creates a tokenizer reading from in, starting in the
// Data state.
func NewHTMLTokenizer(in *InputStream, report ReportFunc, log *logrus.Logger) *HTMLTokenizer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &HTMLTokenizer{in: in, state: dataState, b: newTokenBuilder(), report: report, log: log}
}

// Content-model switches, written by the tree builder and read by the
// tokenizer only (§3 Ownership, §4.2 "this coupling is unidirectional").
func (t *HTMLTokenizer) SwitchToRCDATA()   { t.state = rcDataState }
func (t *HTMLTokenizer) SwitchToRAWTEXT()  { t.state = rawTextState }
func (t *HTMLTokenizer) SwitchToScriptData() { t.state = scriptDataState }
func (t *HTMLTokenizer) SwitchToPLAINTEXT() { t.state = plaintextState }
func (t *HTMLTokenizer) SwitchToData()     { t.state = dataState }
func (t *HTMLTokenizer) SetLastStartTag(name string) { t.lastStartTagName = name }

func (t *HTMLTokenizer) emit(tok Token) { t.pending = append(t.pending, tok) }

func (t *HTMLTokenizer) reportErr(kind ErrorKind, loc Location, offending string) {
	if t.report == nil {
		return
	}
	t.report(&ParseError{Kind: kind, Loc: loc, Offending: offending})
}

// Next produces the next Token, blocking on input as needed. It returns
// ok=false only once, at EOF (callers should stop calling after that).
func (t *HTMLTokenizer) Next() (Token, bool) {
	for {
		if len(t.pending) > 0 {
			tok := t.pending[0]
			t.pending = t.pending[1:]
			return tok, true
		}

		loc := t.in.location()
		r, ok := t.in.next()
		t.processRune(r, !ok, loc)
		if !ok && len(t.pending) == 0 {
			return Token{}, false
		}
	}
}

func (t *HTMLTokenizer) processRune(r rune, eof bool, loc Location) {
	reconsume := true
	for reconsume {
		t.log.WithField("state", t.state).Debugf("[tokenizer] rune=%q eof=%v", r, eof)
		reconsume, t.state = t.stateToParser(t.state)(r, loc, eof)
	}
}

// Every state handler takes a location parameter for error reporting even
// though most states don't use it; it's threaded through uniformly rather
// than recomputed per-state.
func (t *HTMLTokenizer) stateToParser(s tokenizerState) func(rune, Location, bool) (bool, tokenizerState) {
	fn := t.stateFunc(s)
	return func(r rune, loc Location, eof bool) (bool, tokenizerState) {
		t.curLoc = loc
		return fn(r, eof)
	}
}
