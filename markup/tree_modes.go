package markup

// This file and tree_modes2.go implement the 23 insertion-mode handlers of
// §4.3. Each
// handler has the signature func(Token) bool, returning true when the
// token must be reprocessed after a mode change (the HTML5 spec's
// "reprocess the token" / "process again" directives).

func (tc *treeBuilder) insertSynthetic(name string, loc Location) *openElement {
	return tc.insertHTMLElement(Token{Type: startTagToken, Name: name, Loc: loc})
}

// ---- Initial ----

func (tc *treeBuilder) initialModeHandler(tok Token) bool {
	switch {
	case tok.Type == characterToken && isWhitespaceToken(tok):
		return false
	case tok.Type == commentToken:
		tc.emitComment(tok.Data, tok.Loc)
		return false
	case tok.Type == docTypeToken:
		tc.quirks = doctypeQuirksMode(tok.Name, tok.PublicIdentifier, tok.SystemIdentifier, tok.ForceQuirks)
		if tok.Name != "html" || tok.PublicIdentifier != missingIdentifier ||
			(tok.SystemIdentifier != missingIdentifier && tok.SystemIdentifier != "about:legacy-compat") {
			tc.reportErr(BadDoctype, tok.Loc, tok.Name)
		}
		tc.emitDoctype(tok.Name, tok.PublicIdentifier, tok.SystemIdentifier, tok.Loc)
		tc.mode = beforeHTMLMode
		return false
	default:
		tc.quirks = Quirks
		tc.mode = beforeHTMLMode
		return true
	}
}

// ---- BeforeHTML ----

func (tc *treeBuilder) beforeHTMLModeHandler(tok Token) bool {
	switch {
	case tok.Type == docTypeToken:
		tc.reportErr(BadDoctype, tok.Loc, tok.Name)
		return false
	case tok.Type == commentToken:
		tc.emitComment(tok.Data, tok.Loc)
		return false
	case tok.Type == characterToken && isWhitespaceToken(tok):
		return false
	case tok.Type == startTagToken && tok.Name == "html":
		tc.insertHTMLElement(tok)
		tc.mode = beforeHeadMode
		return false
	case tok.Type == endTagToken && (tok.Name == "head" || tok.Name == "body" || tok.Name == "html" || tok.Name == "br"):
		tc.insertSynthetic("html", tok.Loc)
		tc.mode = beforeHeadMode
		return true
	case tok.Type == endTagToken:
		tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
		return false
	default:
		tc.insertSynthetic("html", tok.Loc)
		tc.mode = beforeHeadMode
		return true
	}
}

// ---- BeforeHead ----

func (tc *treeBuilder) beforeHeadModeHandler(tok Token) bool {
	switch {
	case tok.Type == characterToken && isWhitespaceToken(tok):
		return false
	case tok.Type == commentToken:
		tc.emitComment(tok.Data, tok.Loc)
		return false
	case tok.Type == docTypeToken:
		tc.reportErr(BadDoctype, tok.Loc, tok.Name)
		return false
	case tok.Type == startTagToken && tok.Name == "html":
		return tc.inBodyModeHandler(tok)
	case tok.Type == startTagToken && tok.Name == "head":
		tc.head = tc.insertHTMLElement(tok)
		tc.mode = inHeadMode
		return false
	case tok.Type == endTagToken && (tok.Name == "head" || tok.Name == "body" || tok.Name == "html" || tok.Name == "br"):
		tc.head = tc.insertSynthetic("head", tok.Loc)
		tc.mode = inHeadMode
		return true
	case tok.Type == endTagToken:
		tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
		return false
	default:
		tc.head = tc.insertSynthetic("head", tok.Loc)
		tc.mode = inHeadMode
		return true
	}
}

// ---- InHead ----

func (tc *treeBuilder) inHeadModeHandler(tok Token) bool {
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
	case tok.Type == startTagToken && (tok.Name == "base" || tok.Name == "basefont" || tok.Name == "bgsound" || tok.Name == "link"):
		tc.insertVoidElement(tok)
		return false
	case tok.Type == startTagToken && tok.Name == "meta":
		tc.insertVoidElement(tok)
		return false
	case tok.Type == startTagToken && tok.Name == "title":
		tc.insertHTMLElement(tok)
		return false
	case tok.Type == startTagToken && (tok.Name == "noframes" || tok.Name == "style"):
		tc.insertHTMLElement(tok)
		return false
	case tok.Type == startTagToken && tok.Name == "noscript":
		if tc.scripting {
			tc.insertHTMLElement(tok)
		} else {
			tc.insertHTMLElement(Token{Type: startTagToken, Name: tok.Name, Attrs: tok.Attrs, Loc: tok.Loc})
			tc.mode = inHeadNoscriptMode
		}
		return false
	case tok.Type == startTagToken && tok.Name == "script":
		tc.insertHTMLElement(tok)
		return false
	case tok.Type == startTagToken && tok.Name == "template":
		tc.insertHTMLElement(tok)
		tc.pushMarker()
		tc.framesetOK = false
		tc.templateModes = append(tc.templateModes, tc.mode)
		tc.mode = inTemplateMode
		return false
	case tok.Type == endTagToken && tok.Name == "template":
		if !tc.open.contains("template") {
			tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
			return false
		}
		tc.generateAllImpliedEndTagsThoroughly()
		for !tc.open.empty() {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
			if e.Name.Local == "template" {
				break
			}
		}
		tc.clearAFEToLastMarker()
		tc.popTemplateMode()
		return false
	case tok.Type == endTagToken && tok.Name == "head":
		e := tc.open.pop()
		tc.emitEndElement(e, tok.Loc)
		tc.mode = afterHeadMode
		return false
	case tok.Type == endTagToken && (tok.Name == "body" || tok.Name == "html" || tok.Name == "br"):
		e := tc.open.pop()
		tc.emitEndElement(e, tok.Loc)
		tc.mode = afterHeadMode
		return true
	case tok.Type == startTagToken && tok.Name == "head":
		tc.reportErr(UnmatchedStartTag, tok.Loc, tok.Name)
		return false
	case tok.Type == endTagToken:
		tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
		return false
	default:
		e := tc.open.pop()
		tc.emitEndElement(e, tok.Loc)
		tc.mode = afterHeadMode
		return true
	}
}

func (tc *treeBuilder) popTemplateMode() {
	if len(tc.templateModes) == 0 {
		tc.mode = inBodyMode
		return
	}
	tc.mode = tc.templateModes[len(tc.templateModes)-1]
	tc.templateModes = tc.templateModes[:len(tc.templateModes)-1]
}

// ---- InHeadNoscript ----

func (tc *treeBuilder) inHeadNoscriptModeHandler(tok Token) bool {
	switch {
	case tok.Type == startTagToken && tok.Name == "html":
		return tc.inBodyModeHandler(tok)
	case tok.Type == endTagToken && tok.Name == "noscript":
		e := tc.open.pop()
		tc.emitEndElement(e, tok.Loc)
		tc.mode = inHeadMode
		return false
	case tok.Type == characterToken && isWhitespaceToken(tok):
		return tc.inHeadModeHandler(tok)
	case tok.Type == commentToken:
		return tc.inHeadModeHandler(tok)
	case tok.Type == startTagToken && (tok.Name == "basefont" || tok.Name == "bgsound" || tok.Name == "link" ||
		tok.Name == "meta" || tok.Name == "noframes" || tok.Name == "style"):
		return tc.inHeadModeHandler(tok)
	case tok.Type == endTagToken && tok.Name == "br":
		e := tc.open.pop()
		tc.emitEndElement(e, tok.Loc)
		tc.mode = inHeadMode
		return true
	case tok.Type == startTagToken && (tok.Name == "head" || tok.Name == "noscript"):
		tc.reportErr(UnmatchedStartTag, tok.Loc, tok.Name)
		return false
	default:
		tc.reportErr(UnexpectedCharacter, tok.Loc, tok.Name)
		e := tc.open.pop()
		tc.emitEndElement(e, tok.Loc)
		tc.mode = inHeadMode
		return true
	}
}

// ---- AfterHead ----

func (tc *treeBuilder) afterHeadModeHandler(tok Token) bool {
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
	case tok.Type == startTagToken && tok.Name == "body":
		tc.insertHTMLElement(tok)
		tc.framesetOK = false
		tc.mode = inBodyMode
		return false
	case tok.Type == startTagToken && tok.Name == "frameset":
		tc.insertHTMLElement(tok)
		tc.mode = inFramesetMode
		return false
	case tok.Type == startTagToken && (tok.Name == "base" || tok.Name == "basefont" || tok.Name == "bgsound" ||
		tok.Name == "link" || tok.Name == "meta" || tok.Name == "noframes" || tok.Name == "script" ||
		tok.Name == "style" || tok.Name == "template" || tok.Name == "title"):
		tc.reportErr(UnmatchedStartTag, tok.Loc, tok.Name)
		if tc.head != nil {
			tc.open.pushEntry(tc.head)
		}
		tc.inHeadModeHandler(tok)
		if tc.head != nil {
			tc.open.removeEntry(tc.head)
		}
		return false
	case tok.Type == endTagToken && tok.Name == "template":
		return tc.inHeadModeHandler(tok)
	case tok.Type == endTagToken && (tok.Name == "body" || tok.Name == "html" || tok.Name == "br"):
		tc.insertSynthetic("body", tok.Loc)
		tc.framesetOK = true
		tc.mode = inBodyMode
		return true
	case tok.Type == startTagToken && tok.Name == "head":
		tc.reportErr(UnmatchedStartTag, tok.Loc, tok.Name)
		return false
	case tok.Type == endTagToken:
		tc.reportErr(UnmatchedEndTag, tok.Loc, tok.Name)
		return false
	default:
		tc.insertSynthetic("body", tok.Loc)
		tc.framesetOK = true
		tc.mode = inBodyMode
		return true
	}
}

// ---- AfterBody / AfterAfterBody / Frameset family ----

func (tc *treeBuilder) afterBodyModeHandler(tok Token) bool {
	switch {
	case tok.Type == characterToken && isWhitespaceToken(tok):
		return tc.inBodyModeHandler(tok)
	case tok.Type == commentToken:
		tc.emitComment(tok.Data, tok.Loc)
		return false
	case tok.Type == docTypeToken:
		tc.reportErr(BadDoctype, tok.Loc, tok.Name)
		return false
	case tok.Type == startTagToken && tok.Name == "html":
		return tc.inBodyModeHandler(tok)
	case tok.Type == endTagToken && tok.Name == "html":
		tc.mode = afterAfterBodyMode
		return false
	case tok.Type == eofToken:
		tc.closeAllImpliedAtEOF()
		return false
	default:
		tc.reportErr(UnexpectedCharacter, tok.Loc, tok.Name)
		tc.mode = inBodyMode
		return true
	}
}

func (tc *treeBuilder) afterAfterBodyModeHandler(tok Token) bool {
	switch {
	case tok.Type == commentToken:
		tc.emitComment(tok.Data, tok.Loc)
		return false
	case tok.Type == docTypeToken:
		return false
	case tok.Type == characterToken && isWhitespaceToken(tok):
		return tc.inBodyModeHandler(tok)
	case tok.Type == startTagToken && tok.Name == "html":
		return tc.inBodyModeHandler(tok)
	default:
		tc.reportErr(UnexpectedCharacter, tok.Loc, tok.Name)
		tc.mode = inBodyMode
		return true
	}
}

func (tc *treeBuilder) inFramesetModeHandler(tok Token) bool {
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
	case tok.Type == startTagToken && tok.Name == "frameset":
		tc.insertHTMLElement(tok)
		return false
	case tok.Type == endTagToken && tok.Name == "frameset":
		if tc.open.current() != nil && tc.open.current().Name.Local != "html" {
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
		}
		if tc.open.current() != nil && tc.open.current().Name.Local != "frameset" {
			tc.mode = afterFramesetMode
		}
		return false
	case tok.Type == startTagToken && tok.Name == "frame":
		tc.insertVoidElement(tok)
		return false
	case tok.Type == startTagToken && tok.Name == "noframes":
		return tc.inHeadModeHandler(tok)
	case tok.Type == eofToken:
		tc.closeAllImpliedAtEOF()
		return false
	default:
		tc.reportErr(UnexpectedCharacter, tok.Loc, tok.Name)
		return false
	}
}

func (tc *treeBuilder) afterFramesetModeHandler(tok Token) bool {
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
	case tok.Type == endTagToken && tok.Name == "html":
		tc.mode = afterAfterFramesetMode
		return false
	case tok.Type == startTagToken && tok.Name == "noframes":
		return tc.inHeadModeHandler(tok)
	case tok.Type == eofToken:
		tc.closeAllImpliedAtEOF()
		return false
	default:
		tc.reportErr(UnexpectedCharacter, tok.Loc, tok.Name)
		return false
	}
}

func (tc *treeBuilder) afterAfterFramesetModeHandler(tok Token) bool {
	switch {
	case tok.Type == commentToken:
		tc.emitComment(tok.Data, tok.Loc)
		return false
	case tok.Type == docTypeToken:
		return tc.inBodyModeHandler(tok)
	case tok.Type == characterToken && isWhitespaceToken(tok):
		return tc.inBodyModeHandler(tok)
	case tok.Type == startTagToken && tok.Name == "html":
		return tc.inBodyModeHandler(tok)
	case tok.Type == startTagToken && tok.Name == "noframes":
		return tc.inHeadModeHandler(tok)
	default:
		tc.reportErr(UnexpectedCharacter, tok.Loc, tok.Name)
		return false
	}
}
