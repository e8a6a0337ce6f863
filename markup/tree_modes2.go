package markup

// ---- Text ----

func (tc *treeBuilder) textModeHandler(tok Token) bool {
	switch tok.Type {
	case characterToken:
		tc.insertCharacter(tok.Data, tok.Loc)
		return false
	case eofToken:
		tc.reportErr(UnexpectedEOF, tok.Loc, "")
		if !tc.open.empty() {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
		}
		tc.mode = tc.originalMode
		return false
	case endTagToken:
		e := tc.open.pop()
		tc.emitEndElement(e, tok.Loc)
		tc.mode = tc.originalMode
		return false
	default:
		return false
	}
}

// ---- InBody (§4.3's central, largest insertion mode) ----

var closableSectioningNames = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"center": true, "details": true, "dialog": true, "dir": true, "div": true,
	"dl": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "header": true, "hgroup": true, "main": true, "menu": true,
	"nav": true, "ol": true, "p": true, "section": true, "summary": true, "ul": true,
}

var headingNames = map[string]bool{"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true}

func (tc *treeBuilder) closePIfInButtonScope(loc Location) {
	if tc.open.hasInButtonScope("p") {
		tc.generateImpliedEndTags("p")
		if tc.open.current() != nil && tc.open.current().Name.Local != "p" {
			tc.reportErr(UnmatchedStartTag, loc, tc.open.current().Name.Local)
		}
		for !tc.open.empty() {
			e := tc.open.pop()
			tc.emitEndElement(e, loc)
			if e.Name.Local == "p" {
				break
			}
		}
	}
}

func (tc *treeBuilder) closeMatchingBlockEndTag(name string, loc Location) {
	if !tc.open.hasInScope(name, defaultScopeStoppers) {
		tc.reportErr(UnmatchedEndTag, loc, name)
		return
	}
	tc.generateImpliedEndTags("")
	if tc.open.current() != nil && tc.open.current().Name.Local != name {
		tc.reportErr(MisnestedTag, loc, name)
	}
	for !tc.open.empty() {
		e := tc.open.pop()
		tc.emitEndElement(e, loc)
		if e.Name.Local == name {
			break
		}
	}
}

func (tc *treeBuilder) inBodyModeHandler(tok Token) bool {
	switch {
	case tok.Type == characterToken && tok.Data == "\x00":
		tc.reportErr(UnexpectedCharacter, tok.Loc, "\x00")
		return false
	case tok.Type == characterToken && isWhitespaceToken(tok):
		tc.reconstructActiveFormattingElements()
		tc.insertCharacter(tok.Data, tok.Loc)
		return false
	case tok.Type == characterToken:
		tc.reconstructActiveFormattingElements()
		tc.insertCharacter(tok.Data, tok.Loc)
		tc.framesetOK = false
		return false
	case tok.Type == commentToken:
		tc.emitComment(tok.Data, tok.Loc)
		return false
	case tok.Type == docTypeToken:
		tc.reportErr(BadDoctype, tok.Loc, tok.Name)
		return false
	case tok.Type == startTagToken && tok.Name == "html":
		tc.reportErr(UnmatchedStartTag, tok.Loc, tok.Name)
		return false
	case tok.Type == startTagToken && (tok.Name == "base" || tok.Name == "basefont" || tok.Name == "bgsound" ||
		tok.Name == "link" || tok.Name == "meta" || tok.Name == "noframes" || tok.Name == "script" ||
		tok.Name == "style" || tok.Name == "template" || tok.Name == "title"):
		return tc.inHeadModeHandler(tok)
	case tok.Type == endTagToken && tok.Name == "template":
		return tc.inHeadModeHandler(tok)
	case tok.Type == startTagToken && tok.Name == "body":
		tc.reportErr(UnmatchedStartTag, tok.Loc, tok.Name)
		tc.framesetOK = false
		return false
	case tok.Type == startTagToken && tok.Name == "frameset":
		tc.reportErr(UnmatchedStartTag, tok.Loc, tok.Name)
		return false
	case tok.Type == eofToken:
		tc.closeAllImpliedAtEOF()
		return false
	case tok.Type == endTagToken && tok.Name == "body":
		if !tc.open.hasInScope("body", defaultScopeStoppers) {
			tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
			return false
		}
		tc.mode = afterBodyMode
		return false
	case tok.Type == endTagToken && tok.Name == "html":
		if !tc.open.hasInScope("body", defaultScopeStoppers) {
			tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
			return false
		}
		tc.mode = afterBodyMode
		return true
	case tok.Type == startTagToken && closableSectioningNames[tok.Name]:
		tc.closePIfInButtonScope(tok.Loc)
		tc.insertHTMLElement(tok)
		return false
	case tok.Type == endTagToken && closableSectioningNames[tok.Name]:
		tc.closeMatchingBlockEndTag(tok.Name, tok.Loc)
		return false
	case tok.Type == startTagToken && headingNames[tok.Name]:
		tc.closePIfInButtonScope(tok.Loc)
		if tc.open.current() != nil && headingNames[tc.open.current().Name.Local] {
			tc.reportErr(MisnestedTag, tok.Loc, tok.Name)
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
		}
		tc.insertHTMLElement(tok)
		return false
	case tok.Type == endTagToken && headingNames[tok.Name]:
		if !tc.open.hasInScope("h1", defaultScopeStoppers) && !tc.open.hasInScope("h2", defaultScopeStoppers) &&
			!tc.open.hasInScope("h3", defaultScopeStoppers) && !tc.open.hasInScope("h4", defaultScopeStoppers) &&
			!tc.open.hasInScope("h5", defaultScopeStoppers) && !tc.open.hasInScope("h6", defaultScopeStoppers) {
			tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
			return false
		}
		tc.generateImpliedEndTags("")
		for !tc.open.empty() {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
			if headingNames[e.Name.Local] {
				break
			}
		}
		return false
	case tok.Type == startTagToken && (tok.Name == "pre" || tok.Name == "listing"):
		tc.closePIfInButtonScope(tok.Loc)
		tc.insertHTMLElement(tok)
		tc.ignoreNextLF = true
		tc.framesetOK = false
		return false
	case tok.Type == startTagToken && tok.Name == "form":
		if tc.form != nil && !tc.open.contains("template") {
			tc.reportErr(UnmatchedStartTag, tok.Loc, tok.Name)
			return false
		}
		tc.closePIfInButtonScope(tok.Loc)
		e := tc.insertHTMLElement(tok)
		if !tc.open.contains("template") {
			tc.form = e
		}
		return false
	case tok.Type == endTagToken && tok.Name == "form":
		f := tc.form
		tc.form = nil
		if f == nil || !tc.open.hasInScope("form", defaultScopeStoppers) {
			tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
			return false
		}
		tc.generateImpliedEndTags("")
		tc.open.removeEntry(f)
		tc.emitEndElement(f, tok.Loc)
		return false
	case tok.Type == startTagToken && tok.Name == "li":
		tc.framesetOK = false
		tc.closeImplicitListItems("li", tok.Loc)
		tc.closePIfInButtonScope(tok.Loc)
		tc.insertHTMLElement(tok)
		return false
	case tok.Type == startTagToken && (tok.Name == "dd" || tok.Name == "dt"):
		tc.framesetOK = false
		tc.closeImplicitListItems(tok.Name, tok.Loc)
		tc.closePIfInButtonScope(tok.Loc)
		tc.insertHTMLElement(tok)
		return false
	case tok.Type == endTagToken && (tok.Name == "li" || tok.Name == "dd" || tok.Name == "dt"):
		stoppers := listItemScopeStoppers
		if tok.Name != "li" {
			stoppers = defaultScopeStoppers
		}
		if !tc.open.hasInScope(tok.Name, stoppers) {
			tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
			return false
		}
		tc.generateImpliedEndTags(tok.Name)
		for !tc.open.empty() {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
			if e.Name.Local == tok.Name {
				break
			}
		}
		return false
	case tok.Type == startTagToken && tok.Name == "plaintext":
		tc.closePIfInButtonScope(tok.Loc)
		tc.insertHTMLElement(tok)
		return false
	case tok.Type == startTagToken && tok.Name == "button":
		if tc.open.hasInScope("button", defaultScopeStoppers) {
			tc.reportErr(MisnestedTag, tok.Loc, tok.Name)
			tc.generateImpliedEndTags("")
			for !tc.open.empty() {
				e := tc.open.pop()
				tc.emitEndElement(e, tok.Loc)
				if e.Name.Local == "button" {
					break
				}
			}
		}
		tc.reconstructActiveFormattingElements()
		tc.insertHTMLElement(tok)
		tc.framesetOK = false
		return false
	case tok.Type == endTagToken && tok.Name == "button":
		tc.closeMatchingBlockEndTag("button", tok.Loc)
		return false
	case tok.Type == startTagToken && tok.Name == "a":
		if _, e := tc.findAFEByName("a"); e != nil {
			tc.reportErr(MisnestedTag, tok.Loc, "a")
			tc.runAdoptionAgency("a")
		}
		tc.reconstructActiveFormattingElements()
		elem := tc.insertHTMLElement(tok)
		tc.pushFormattingEntry(elem)
		return false
	case tok.Type == startTagToken && isFormattingElement(tok.Name) && tok.Name != "nobr":
		tc.reconstructActiveFormattingElements()
		elem := tc.insertHTMLElement(tok)
		tc.pushFormattingEntry(elem)
		return false
	case tok.Type == startTagToken && tok.Name == "nobr":
		tc.reconstructActiveFormattingElements()
		if tc.open.hasInScope("nobr", defaultScopeStoppers) {
			tc.reportErr(MisnestedTag, tok.Loc, "nobr")
			tc.runAdoptionAgency("nobr")
			tc.reconstructActiveFormattingElements()
		}
		elem := tc.insertHTMLElement(tok)
		tc.pushFormattingEntry(elem)
		return false
	case tok.Type == endTagToken && isFormattingElement(tok.Name):
		tc.runAdoptionAgency(tok.Name)
		return false
	case tok.Type == startTagToken && (tok.Name == "applet" || tok.Name == "marquee" || tok.Name == "object"):
		tc.reconstructActiveFormattingElements()
		tc.insertHTMLElement(tok)
		tc.pushMarker()
		tc.framesetOK = false
		return false
	case tok.Type == endTagToken && (tok.Name == "applet" || tok.Name == "marquee" || tok.Name == "object"):
		if !tc.open.hasInScope(tok.Name, defaultScopeStoppers) {
			tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
			return false
		}
		tc.generateImpliedEndTags("")
		for !tc.open.empty() {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
			if e.Name.Local == tok.Name {
				break
			}
		}
		tc.clearAFEToLastMarker()
		return false
	case tok.Type == startTagToken && tok.Name == "table":
		if tc.quirks != Quirks {
			tc.closePIfInButtonScope(tok.Loc)
		}
		tc.insertHTMLElement(tok)
		tc.framesetOK = false
		tc.mode = inTableMode
		return false
	case tok.Type == startTagToken && (tok.Name == "area" || tok.Name == "br" || tok.Name == "embed" ||
		tok.Name == "img" || tok.Name == "keygen" || tok.Name == "wbr"):
		tc.reconstructActiveFormattingElements()
		tc.insertVoidElement(tok)
		tc.framesetOK = false
		return false
	case tok.Type == startTagToken && tok.Name == "input":
		tc.reconstructActiveFormattingElements()
		tc.insertVoidElement(tok)
		if v, _ := tok.attr("type"); !foldEqual(v, "hidden") {
			tc.framesetOK = false
		}
		return false
	case tok.Type == startTagToken && (tok.Name == "param" || tok.Name == "source" || tok.Name == "track"):
		tc.insertVoidElement(tok)
		return false
	case tok.Type == startTagToken && tok.Name == "hr":
		tc.closePIfInButtonScope(tok.Loc)
		tc.insertVoidElement(tok)
		tc.framesetOK = false
		return false
	case tok.Type == startTagToken && tok.Name == "image":
		tok.Name = "img"
		return true
	case tok.Type == startTagToken && tok.Name == "textarea":
		tc.insertHTMLElement(tok)
		tc.ignoreNextLF = true
		tc.framesetOK = false
		return false
	case tok.Type == startTagToken && tok.Name == "xmp":
		tc.closePIfInButtonScope(tok.Loc)
		tc.reconstructActiveFormattingElements()
		tc.framesetOK = false
		tc.insertHTMLElement(tok)
		return false
	case tok.Type == startTagToken && tok.Name == "iframe":
		tc.framesetOK = false
		tc.insertHTMLElement(tok)
		return false
	case tok.Type == startTagToken && (tok.Name == "noembed" || (tok.Name == "noscript" && tc.scripting)):
		tc.insertHTMLElement(tok)
		return false
	case tok.Type == startTagToken && tok.Name == "select":
		tc.reconstructActiveFormattingElements()
		tc.insertHTMLElement(tok)
		tc.framesetOK = false
		switch tc.mode {
		case inTableMode, inCaptionMode, inTableBodyMode, inRowMode, inCellMode:
			tc.mode = inSelectInTableMode
		default:
			tc.mode = inSelectMode
		}
		return false
	case tok.Type == startTagToken && (tok.Name == "optgroup" || tok.Name == "option"):
		if tc.open.current() != nil && tc.open.current().Name.Local == "option" {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
		}
		tc.reconstructActiveFormattingElements()
		tc.insertHTMLElement(tok)
		return false
	case tok.Type == startTagToken && (tok.Name == "rb" || tok.Name == "rtc"):
		if tc.open.hasInScope("ruby", defaultScopeStoppers) {
			tc.generateImpliedEndTags("")
		}
		tc.insertHTMLElement(tok)
		return false
	case tok.Type == startTagToken && (tok.Name == "rp" || tok.Name == "rt"):
		if tc.open.hasInScope("ruby", defaultScopeStoppers) {
			tc.generateImpliedEndTags("rtc")
		}
		tc.insertHTMLElement(tok)
		return false
	case tok.Type == startTagToken && (tok.Name == "math" || tok.Name == "svg"):
		ns := MathMLNamespace
		if tok.Name == "svg" {
			ns = SVGNamespace
		}
		tc.reconstructActiveFormattingElements()
		attrs := adjustForeignAttributes(tok.Attrs)
		e := tc.open.push(NewName(ns, tok.Name), attrs)
		classifyForeignElement(e, attrs)
		tc.emitStartElement(e, tok.Loc)
		if tok.SelfClosing {
			tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
		}
		return false
	case tok.Type == startTagToken && (tok.Name == "caption" || tok.Name == "col" || tok.Name == "colgroup" ||
		tok.Name == "frame" || tok.Name == "head" || tok.Name == "tbody" || tok.Name == "td" ||
		tok.Name == "tfoot" || tok.Name == "th" || tok.Name == "thead" || tok.Name == "tr"):
		tc.reportErr(UnmatchedStartTag, tok.Loc, tok.Name)
		return false
	case tok.Type == startTagToken:
		tc.reconstructActiveFormattingElements()
		tc.insertHTMLElement(tok)
		if voidElements[tok.Name] {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
		}
		return false
	case tok.Type == endTagToken:
		tc.inBodyAnyOtherEndTag(tok.Name)
		return false
	default:
		return false
	}
}

// closeImplicitListItems implements the "loop" step shared by the <li>,
// <dd> and <dt> start-tag handlers (§4.3): pop implied end tags and any
// open entries of the same kind up to (but not past) the nearest special
// element boundary.
func (tc *treeBuilder) closeImplicitListItems(name string, loc Location) {
	companion := map[string][]string{
		"li": {"li"},
		"dd": {"dd", "dt"},
		"dt": {"dd", "dt"},
	}[name]
	for i := len(tc.open.entries) - 1; i >= 0; i-- {
		n := tc.open.entries[i].Name.Local
		matches := false
		for _, c := range companion {
			if n == c {
				matches = true
				break
			}
		}
		if matches {
			tc.generateImpliedEndTags(n)
			for !tc.open.empty() {
				e := tc.open.pop()
				tc.emitEndElement(e, loc)
				if e.Name.Local == n {
					break
				}
			}
			return
		}
		if isSpecialElement(n) && n != "address" && n != "div" && n != "p" {
			return
		}
	}
}

// ---- Table family (condensed relative to in-body: §4.3 names 10
// table-related modes; this implementation keeps their structural, foster-
// parenting and mode-switch behavior while folding repeated "anything
// else" fallbacks into shared helpers). ----

func (tc *treeBuilder) inTableModeHandler(tok Token) bool {
	switch {
	case tok.Type == characterToken && tc.open.current() != nil &&
		(tc.open.current().Name.Local == "table" || tc.open.current().Name.Local == "tbody" ||
			tc.open.current().Name.Local == "tfoot" || tc.open.current().Name.Local == "thead" ||
			tc.open.current().Name.Local == "tr"):
		tc.pendingTableChars = nil
		tc.pendingTableNonWS = false
		tc.originalMode = tc.mode
		tc.mode = inTableTextMode
		return true
	case tok.Type == commentToken:
		tc.emitComment(tok.Data, tok.Loc)
		return false
	case tok.Type == docTypeToken:
		tc.reportErr(BadDoctype, tok.Loc, tok.Name)
		return false
	case tok.Type == startTagToken && tok.Name == "caption":
		tc.clearStackBackToTable()
		tc.pushMarker()
		tc.insertHTMLElement(tok)
		tc.mode = inCaptionMode
		return false
	case tok.Type == startTagToken && tok.Name == "colgroup":
		tc.clearStackBackToTable()
		tc.insertHTMLElement(tok)
		tc.mode = inColumnGroupMode
		return false
	case tok.Type == startTagToken && tok.Name == "col":
		tc.clearStackBackToTable()
		tc.insertSynthetic("colgroup", tok.Loc)
		tc.mode = inColumnGroupMode
		return true
	case tok.Type == startTagToken && (tok.Name == "tbody" || tok.Name == "tfoot" || tok.Name == "thead"):
		tc.clearStackBackToTable()
		tc.insertHTMLElement(tok)
		tc.mode = inTableBodyMode
		return false
	case tok.Type == startTagToken && (tok.Name == "td" || tok.Name == "th" || tok.Name == "tr"):
		tc.clearStackBackToTable()
		tc.insertSynthetic("tbody", tok.Loc)
		tc.mode = inTableBodyMode
		return true
	case tok.Type == startTagToken && tok.Name == "table":
		tc.reportErr(MisnestedTag, tok.Loc, tok.Name)
		if tc.open.hasInTableScope("table") {
			for !tc.open.empty() {
				e := tc.open.pop()
				tc.emitEndElement(e, tok.Loc)
				if e.Name.Local == "table" {
					break
				}
			}
			tc.resetInsertionModeAppropriately()
		}
		return true
	case tok.Type == endTagToken && tok.Name == "table":
		if !tc.open.hasInTableScope("table") {
			tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
			return false
		}
		for !tc.open.empty() {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
			if e.Name.Local == "table" {
				break
			}
		}
		tc.resetInsertionModeAppropriately()
		return false
	case tok.Type == endTagToken && (tok.Name == "body" || tok.Name == "caption" || tok.Name == "col" ||
		tok.Name == "colgroup" || tok.Name == "html" || tok.Name == "tbody" || tok.Name == "td" ||
		tok.Name == "tfoot" || tok.Name == "th" || tok.Name == "thead" || tok.Name == "tr"):
		tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
		return false
	case tok.Type == startTagToken && (tok.Name == "style" || tok.Name == "script" || tok.Name == "template"):
		return tc.inHeadModeHandler(tok)
	case tok.Type == endTagToken && tok.Name == "template":
		return tc.inHeadModeHandler(tok)
	case tok.Type == startTagToken && tok.Name == "input":
		if v, _ := tok.attr("type"); foldEqual(v, "hidden") {
			tc.reportErr(MisnestedTag, tok.Loc, tok.Name)
			tc.insertVoidElement(tok)
			return false
		}
		return tc.inBodyFosterParented(tok)
	case tok.Type == startTagToken && tok.Name == "form":
		if tc.form == nil && !tc.open.contains("template") {
			tc.reportErr(MisnestedTag, tok.Loc, tok.Name)
			tc.form = tc.insertHTMLElement(tok)
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
		}
		return false
	case tok.Type == eofToken:
		tc.closeAllImpliedAtEOF()
		return false
	default:
		tc.reportErr(UnexpectedCharacter, tok.Loc, tok.Name)
		return tc.inBodyFosterParented(tok)
	}
}

// inBodyFosterParented runs the in-body handler with tc.fosterParenting set
// for the duration of the call. No insertion code reads that flag, so the
// content is emitted in document order at the current position, inside the
// open table element; it is not moved before the table.
func (tc *treeBuilder) inBodyFosterParented(tok Token) bool {
	tc.fosterParenting = true
	ret := tc.inBodyModeHandler(tok)
	tc.fosterParenting = false
	return ret
}

func (tc *treeBuilder) clearStackBackToTable() {
	for tc.open.current() != nil {
		n := tc.open.current().Name.Local
		if n == "table" || n == "template" || n == "html" {
			return
		}
		e := tc.open.pop()
		tc.emitEndElement(e, tc.curLoc)
	}
}

func (tc *treeBuilder) clearStackBackToTableBody() {
	for tc.open.current() != nil {
		n := tc.open.current().Name.Local
		if n == "tbody" || n == "tfoot" || n == "thead" || n == "template" || n == "html" {
			return
		}
		e := tc.open.pop()
		tc.emitEndElement(e, tc.curLoc)
	}
}

func (tc *treeBuilder) clearStackBackToTableRow() {
	for tc.open.current() != nil {
		n := tc.open.current().Name.Local
		if n == "tr" || n == "template" || n == "html" {
			return
		}
		e := tc.open.pop()
		tc.emitEndElement(e, tc.curLoc)
	}
}

// resetInsertionModeAppropriately implements the §4.3 "reset the insertion
// mode appropriately" algorithm used after a table, select or template
// closes mid-document.
func (tc *treeBuilder) resetInsertionModeAppropriately() {
	for i := len(tc.open.entries) - 1; i >= 0; i-- {
		n := tc.open.entries[i].Name.Local
		last := i == 0
		switch n {
		case "select":
			tc.mode = inSelectMode
			return
		case "td", "th":
			if !last {
				tc.mode = inCellMode
				return
			}
		case "tr":
			tc.mode = inRowMode
			return
		case "tbody", "thead", "tfoot":
			tc.mode = inTableBodyMode
			return
		case "caption":
			tc.mode = inCaptionMode
			return
		case "colgroup":
			tc.mode = inColumnGroupMode
			return
		case "table":
			tc.mode = inTableMode
			return
		case "template":
			tc.popTemplateMode()
			return
		case "head":
			if !last {
				tc.mode = inHeadMode
				return
			}
		case "body":
			tc.mode = inBodyMode
			return
		case "frameset":
			tc.mode = inFramesetMode
			return
		case "html":
			if tc.head == nil {
				tc.mode = beforeHeadMode
			} else {
				tc.mode = afterHeadMode
			}
			return
		}
		if last {
			tc.mode = inBodyMode
			return
		}
	}
	tc.mode = inBodyMode
}

func (tc *treeBuilder) inTableTextModeHandler(tok Token) bool {
	if tok.Type == characterToken {
		if r, ok := singleRune(tok.Data); ok {
			if !isWhitespace(r) {
				tc.pendingTableNonWS = true
			}
			tc.pendingTableChars = append(tc.pendingTableChars, r)
		}
		return false
	}

	if tc.pendingTableNonWS {
		tc.reportErr(UnexpectedCharacter, tok.Loc, "table-text")
	}
	for _, r := range tc.pendingTableChars {
		tc.insertCharacter(string(r), tok.Loc)
	}
	tc.pendingTableChars = nil
	tc.mode = tc.originalMode
	return true
}

func (tc *treeBuilder) inCaptionModeHandler(tok Token) bool {
	switch {
	case tok.Type == endTagToken && tok.Name == "caption":
		if !tc.open.hasInTableScope("caption") {
			tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
			return false
		}
		tc.generateImpliedEndTags("")
		for !tc.open.empty() {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
			if e.Name.Local == "caption" {
				break
			}
		}
		tc.clearAFEToLastMarker()
		tc.mode = inTableMode
		return false
	case tok.Type == startTagToken && (tok.Name == "caption" || tok.Name == "col" || tok.Name == "colgroup" ||
		tok.Name == "tbody" || tok.Name == "td" || tok.Name == "tfoot" || tok.Name == "th" ||
		tok.Name == "thead" || tok.Name == "tr"):
		if !tc.open.hasInTableScope("caption") {
			tc.reportErr(UnmatchedStartTag, tok.Loc, tok.Name)
			return false
		}
		for !tc.open.empty() {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
			if e.Name.Local == "caption" {
				break
			}
		}
		tc.clearAFEToLastMarker()
		tc.mode = inTableMode
		return true
	case tok.Type == endTagToken && (tok.Name == "body" || tok.Name == "col" || tok.Name == "colgroup" ||
		tok.Name == "html" || tok.Name == "tbody" || tok.Name == "td" || tok.Name == "tfoot" ||
		tok.Name == "th" || tok.Name == "thead" || tok.Name == "tr"):
		tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
		return false
	default:
		return tc.inBodyModeHandler(tok)
	}
}

func (tc *treeBuilder) inColumnGroupModeHandler(tok Token) bool {
	switch {
	case tok.Type == characterToken && isWhitespaceToken(tok):
		tc.insertCharacter(tok.Data, tok.Loc)
		return false
	case tok.Type == commentToken:
		tc.emitComment(tok.Data, tok.Loc)
		return false
	case tok.Type == docTypeToken:
		tc.reportErr(BadDoctype, tok.Loc, tok.Name)
		return false
	case tok.Type == startTagToken && tok.Name == "html":
		return tc.inBodyModeHandler(tok)
	case tok.Type == startTagToken && tok.Name == "col":
		tc.insertVoidElement(tok)
		return false
	case tok.Type == endTagToken && tok.Name == "colgroup":
		if tc.open.current() == nil || tc.open.current().Name.Local != "colgroup" {
			tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
			return false
		}
		e := tc.open.pop()
		tc.emitEndElement(e, tok.Loc)
		tc.mode = inTableMode
		return false
	case tok.Type == endTagToken && tok.Name == "col":
		tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
		return false
	case tok.Type == startTagToken && tok.Name == "template", tok.Type == endTagToken && tok.Name == "template":
		return tc.inHeadModeHandler(tok)
	case tok.Type == eofToken:
		tc.closeAllImpliedAtEOF()
		return false
	default:
		if tc.open.current() == nil || tc.open.current().Name.Local != "colgroup" {
			tc.reportErr(UnexpectedCharacter, tok.Loc, tok.Name)
			return false
		}
		e := tc.open.pop()
		tc.emitEndElement(e, tok.Loc)
		tc.mode = inTableMode
		return true
	}
}

func (tc *treeBuilder) inTableBodyModeHandler(tok Token) bool {
	switch {
	case tok.Type == startTagToken && tok.Name == "tr":
		tc.clearStackBackToTableBody()
		tc.insertHTMLElement(tok)
		tc.mode = inRowMode
		return false
	case tok.Type == startTagToken && (tok.Name == "th" || tok.Name == "td"):
		tc.reportErr(MisnestedTag, tok.Loc, tok.Name)
		tc.clearStackBackToTableBody()
		tc.insertSynthetic("tr", tok.Loc)
		tc.mode = inRowMode
		return true
	case tok.Type == endTagToken && (tok.Name == "tbody" || tok.Name == "tfoot" || tok.Name == "thead"):
		if !tc.open.hasInTableScope(tok.Name) {
			tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
			return false
		}
		tc.clearStackBackToTableBody()
		e := tc.open.pop()
		tc.emitEndElement(e, tok.Loc)
		tc.mode = inTableMode
		return false
	case tok.Type == startTagToken && (tok.Name == "caption" || tok.Name == "col" || tok.Name == "colgroup" ||
		tok.Name == "tbody" || tok.Name == "tfoot" || tok.Name == "thead"):
		if !tc.open.hasInTableScope("tbody") && !tc.open.hasInTableScope("thead") && !tc.open.hasInTableScope("tfoot") {
			tc.reportErr(UnmatchedStartTag, tok.Loc, tok.Name)
			return false
		}
		tc.clearStackBackToTableBody()
		e := tc.open.pop()
		tc.emitEndElement(e, tok.Loc)
		tc.mode = inTableMode
		return true
	case tok.Type == endTagToken && (tok.Name == "body" || tok.Name == "caption" || tok.Name == "col" ||
		tok.Name == "colgroup" || tok.Name == "html" || tok.Name == "td" || tok.Name == "th" || tok.Name == "tr"):
		tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
		return false
	default:
		return tc.inTableModeHandler(tok)
	}
}

func (tc *treeBuilder) inRowModeHandler(tok Token) bool {
	switch {
	case tok.Type == startTagToken && (tok.Name == "th" || tok.Name == "td"):
		tc.clearStackBackToTableRow()
		tc.insertHTMLElement(tok)
		tc.mode = inCellMode
		tc.pushMarker()
		return false
	case tok.Type == endTagToken && tok.Name == "tr":
		if !tc.open.hasInTableScope("tr") {
			tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
			return false
		}
		tc.clearStackBackToTableRow()
		e := tc.open.pop()
		tc.emitEndElement(e, tok.Loc)
		tc.mode = inTableBodyMode
		return false
	case tok.Type == startTagToken && (tok.Name == "caption" || tok.Name == "col" || tok.Name == "colgroup" ||
		tok.Name == "tbody" || tok.Name == "tfoot" || tok.Name == "thead" || tok.Name == "tr"):
		if !tc.open.hasInTableScope("tr") {
			tc.reportErr(UnmatchedStartTag, tok.Loc, tok.Name)
			return false
		}
		tc.clearStackBackToTableRow()
		e := tc.open.pop()
		tc.emitEndElement(e, tok.Loc)
		tc.mode = inTableBodyMode
		return true
	case tok.Type == endTagToken && (tok.Name == "tbody" || tok.Name == "tfoot" || tok.Name == "thead"):
		if !tc.open.hasInTableScope(tok.Name) {
			tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
			return false
		}
		tc.clearStackBackToTableRow()
		e := tc.open.pop()
		tc.emitEndElement(e, tok.Loc)
		tc.mode = inTableBodyMode
		return true
	case tok.Type == endTagToken && (tok.Name == "body" || tok.Name == "caption" || tok.Name == "col" ||
		tok.Name == "colgroup" || tok.Name == "html" || tok.Name == "td" || tok.Name == "th"):
		tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
		return false
	default:
		return tc.inTableModeHandler(tok)
	}
}

func (tc *treeBuilder) inCellModeHandler(tok Token) bool {
	switch {
	case tok.Type == endTagToken && (tok.Name == "td" || tok.Name == "th"):
		if !tc.open.hasInTableScope(tok.Name) {
			tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
			return false
		}
		tc.generateImpliedEndTags("")
		for !tc.open.empty() {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
			if e.Name.Local == tok.Name {
				break
			}
		}
		tc.clearAFEToLastMarker()
		tc.mode = inRowMode
		return false
	case tok.Type == startTagToken && (tok.Name == "caption" || tok.Name == "col" || tok.Name == "colgroup" ||
		tok.Name == "tbody" || tok.Name == "td" || tok.Name == "tfoot" || tok.Name == "th" ||
		tok.Name == "thead" || tok.Name == "tr"):
		if !tc.open.hasInTableScope("td") && !tc.open.hasInTableScope("th") {
			tc.reportErr(UnmatchedStartTag, tok.Loc, tok.Name)
			return false
		}
		for !tc.open.empty() {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
			if e.Name.Local == "td" || e.Name.Local == "th" {
				break
			}
		}
		tc.clearAFEToLastMarker()
		tc.mode = inRowMode
		return true
	case tok.Type == endTagToken && (tok.Name == "body" || tok.Name == "caption" || tok.Name == "col" ||
		tok.Name == "colgroup" || tok.Name == "html"):
		tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
		return false
	case tok.Type == endTagToken && (tok.Name == "table" || tok.Name == "tbody" || tok.Name == "tfoot" ||
		tok.Name == "thead" || tok.Name == "tr"):
		if !tc.open.hasInTableScope(tok.Name) {
			tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
			return false
		}
		for !tc.open.empty() {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
			if e.Name.Local == "td" || e.Name.Local == "th" {
				break
			}
		}
		tc.clearAFEToLastMarker()
		tc.mode = inRowMode
		return true
	default:
		return tc.inBodyModeHandler(tok)
	}
}

// ---- Select family ----

func (tc *treeBuilder) inSelectModeHandler(tok Token) bool {
	switch {
	case tok.Type == characterToken && tok.Data == "\x00":
		tc.reportErr(UnexpectedCharacter, tok.Loc, "\x00")
		return false
	case tok.Type == characterToken:
		tc.insertCharacter(tok.Data, tok.Loc)
		return false
	case tok.Type == commentToken:
		tc.emitComment(tok.Data, tok.Loc)
		return false
	case tok.Type == docTypeToken:
		tc.reportErr(BadDoctype, tok.Loc, tok.Name)
		return false
	case tok.Type == startTagToken && tok.Name == "html":
		return tc.inBodyModeHandler(tok)
	case tok.Type == startTagToken && tok.Name == "option":
		if tc.open.current() != nil && tc.open.current().Name.Local == "option" {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
		}
		tc.insertHTMLElement(tok)
		return false
	case tok.Type == startTagToken && tok.Name == "optgroup":
		if tc.open.current() != nil && tc.open.current().Name.Local == "option" {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
		}
		if tc.open.current() != nil && tc.open.current().Name.Local == "optgroup" {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
		}
		tc.insertHTMLElement(tok)
		return false
	case tok.Type == endTagToken && tok.Name == "optgroup":
		if tc.open.current() != nil && tc.open.current().Name.Local == "option" && len(tc.open.entries) >= 2 &&
			tc.open.entries[len(tc.open.entries)-2].Name.Local == "optgroup" {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
		}
		if tc.open.current() != nil && tc.open.current().Name.Local == "optgroup" {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
		} else {
			tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
		}
		return false
	case tok.Type == endTagToken && tok.Name == "option":
		if tc.open.current() != nil && tc.open.current().Name.Local == "option" {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
		} else {
			tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
		}
		return false
	case tok.Type == endTagToken && tok.Name == "select":
		if !tc.open.hasInSelectScope("select") {
			tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
			return false
		}
		for !tc.open.empty() {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
			if e.Name.Local == "select" {
				break
			}
		}
		tc.resetInsertionModeAppropriately()
		return false
	case tok.Type == startTagToken && tok.Name == "select":
		tc.reportErr(MisnestedTag, tok.Loc, tok.Name)
		for !tc.open.empty() {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
			if e.Name.Local == "select" {
				break
			}
		}
		tc.resetInsertionModeAppropriately()
		return false
	case tok.Type == startTagToken && (tok.Name == "input" || tok.Name == "keygen" || tok.Name == "textarea"):
		tc.reportErr(MisnestedTag, tok.Loc, tok.Name)
		if !tc.open.hasInSelectScope("select") {
			return false
		}
		for !tc.open.empty() {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
			if e.Name.Local == "select" {
				break
			}
		}
		tc.resetInsertionModeAppropriately()
		return true
	case tok.Type == startTagToken && (tok.Name == "script" || tok.Name == "template"):
		return tc.inHeadModeHandler(tok)
	case tok.Type == endTagToken && tok.Name == "template":
		return tc.inHeadModeHandler(tok)
	case tok.Type == eofToken:
		tc.closeAllImpliedAtEOF()
		return false
	default:
		tc.reportErr(UnexpectedCharacter, tok.Loc, tok.Name)
		return false
	}
}

func (tc *treeBuilder) inSelectInTableModeHandler(tok Token) bool {
	switch {
	case tok.Type == startTagToken && (tok.Name == "caption" || tok.Name == "table" || tok.Name == "tbody" ||
		tok.Name == "tfoot" || tok.Name == "thead" || tok.Name == "tr" || tok.Name == "td" || tok.Name == "th"):
		tc.reportErr(MisnestedTag, tok.Loc, tok.Name)
		for !tc.open.empty() {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
			if e.Name.Local == "select" {
				break
			}
		}
		tc.resetInsertionModeAppropriately()
		return true
	case tok.Type == endTagToken && (tok.Name == "caption" || tok.Name == "table" || tok.Name == "tbody" ||
		tok.Name == "tfoot" || tok.Name == "thead" || tok.Name == "tr" || tok.Name == "td" || tok.Name == "th"):
		if !tc.open.hasInTableScope(tok.Name) {
			tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
			return false
		}
		for !tc.open.empty() {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
			if e.Name.Local == "select" {
				break
			}
		}
		tc.resetInsertionModeAppropriately()
		return true
	default:
		return tc.inSelectModeHandler(tok)
	}
}

// ---- Template ----

func (tc *treeBuilder) inTemplateModeHandler(tok Token) bool {
	switch {
	case tok.Type == characterToken, tok.Type == commentToken, tok.Type == docTypeToken:
		return tc.inBodyModeHandler(tok)
	case tok.Type == startTagToken && (tok.Name == "base" || tok.Name == "basefont" || tok.Name == "bgsound" ||
		tok.Name == "link" || tok.Name == "meta" || tok.Name == "noframes" || tok.Name == "script" ||
		tok.Name == "style" || tok.Name == "template" || tok.Name == "title"):
		return tc.inHeadModeHandler(tok)
	case tok.Type == endTagToken && tok.Name == "template":
		return tc.inHeadModeHandler(tok)
	case tok.Type == startTagToken && (tok.Name == "caption" || tok.Name == "colgroup" || tok.Name == "tbody" ||
		tok.Name == "tfoot" || tok.Name == "thead"):
		tc.templateModes[len(tc.templateModes)-1] = inTableMode
		tc.mode = inTableMode
		return true
	case tok.Type == startTagToken && tok.Name == "col":
		tc.templateModes[len(tc.templateModes)-1] = inColumnGroupMode
		tc.mode = inColumnGroupMode
		return true
	case tok.Type == startTagToken && tok.Name == "tr":
		tc.templateModes[len(tc.templateModes)-1] = inTableBodyMode
		tc.mode = inTableBodyMode
		return true
	case tok.Type == startTagToken && (tok.Name == "td" || tok.Name == "th"):
		tc.templateModes[len(tc.templateModes)-1] = inRowMode
		tc.mode = inRowMode
		return true
	case tok.Type == eofToken:
		if !tc.open.contains("template") {
			tc.closeAllImpliedAtEOF()
			return false
		}
		tc.reportErr(UnexpectedEOF, tok.Loc, "")
		for !tc.open.empty() {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
			if e.Name.Local == "template" {
				break
			}
		}
		tc.clearAFEToLastMarker()
		tc.popTemplateMode()
		return true
	case tok.Type == startTagToken:
		tc.templateModes[len(tc.templateModes)-1] = inBodyMode
		tc.mode = inBodyMode
		return true
	default:
		return tc.inBodyModeHandler(tok)
	}
}
