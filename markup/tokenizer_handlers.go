package markup

import "strconv"

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f':
		return true
	}
	return false
}

func toLowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func isUpperASCII(r rune) bool { return r >= 'A' && r <= 'Z' }
func isDigit(r rune) bool      { return r >= '0' && r <= '9' }
func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func (t *HTMLTokenizer) isAppropriateEndTag() bool {
	return t.b.name.String() == t.lastStartTagName
}

func (t *HTMLTokenizer) stateFunc(s tokenizerState) func(rune, bool) (bool, tokenizerState) {
	switch s {
	case dataState:
		return t.dataStateParser
	case rcDataState:
		return t.rcDataStateParser
	case rawTextState:
		return t.rawTextStateParser
	case scriptDataState:
		return t.scriptDataStateParser
	case plaintextState:
		return t.plaintextStateParser
	case tagOpenState:
		return t.tagOpenStateParser
	case endTagOpenState:
		return t.endTagOpenStateParser
	case tagNameState:
		return t.tagNameStateParser
	case rcDataLessThanSignState:
		return t.rcDataLessThanSignStateParser
	case rcDataEndTagOpenState:
		return t.rcDataEndTagOpenStateParser
	case rcDataEndTagNameState:
		return t.rcDataEndTagNameStateParser
	case rawTextLessThanSignState:
		return t.rawTextLessThanSignStateParser
	case rawTextEndTagOpenState:
		return t.rawTextEndTagOpenStateParser
	case rawTextEndTagNameState:
		return t.rawTextEndTagNameStateParser
	case scriptDataLessThanSignState:
		return t.scriptDataLessThanSignStateParser
	case scriptDataEndTagOpenState:
		return t.scriptDataEndTagOpenStateParser
	case scriptDataEndTagNameState:
		return t.scriptDataEndTagNameStateParser
	case scriptDataEscapeStartState:
		return t.scriptDataEscapeStartStateParser
	case scriptDataEscapeStartDashState:
		return t.scriptDataEscapeStartDashStateParser
	case scriptDataEscapedState:
		return t.scriptDataEscapedStateParser
	case scriptDataEscapedDashState:
		return t.scriptDataEscapedDashStateParser
	case scriptDataEscapedDashDashState:
		return t.scriptDataEscapedDashDashStateParser
	case scriptDataEscapedLessThanSignState:
		return t.scriptDataEscapedLessThanSignStateParser
	case scriptDataEscapedEndTagOpenState:
		return t.scriptDataEscapedEndTagOpenStateParser
	case scriptDataEscapedEndTagNameState:
		return t.scriptDataEscapedEndTagNameStateParser
	case scriptDataDoubleEscapeStartState:
		return t.scriptDataDoubleEscapeStartStateParser
	case scriptDataDoubleEscapedState:
		return t.scriptDataDoubleEscapedStateParser
	case scriptDataDoubleEscapedDashState:
		return t.scriptDataDoubleEscapedDashStateParser
	case scriptDataDoubleEscapedDashDashState:
		return t.scriptDataDoubleEscapedDashDashStateParser
	case scriptDataDoubleEscapedLessThanSignState:
		return t.scriptDataDoubleEscapedLessThanSignStateParser
	case scriptDataDoubleEscapeEndState:
		return t.scriptDataDoubleEscapeEndStateParser
	case beforeAttributeNameState:
		return t.beforeAttributeNameStateParser
	case attributeNameState:
		return t.attributeNameStateParser
	case afterAttributeNameState:
		return t.afterAttributeNameStateParser
	case beforeAttributeValueState:
		return t.beforeAttributeValueStateParser
	case attributeValueDoubleQuotedState:
		return t.attributeValueDoubleQuotedStateParser
	case attributeValueSingleQuotedState:
		return t.attributeValueSingleQuotedStateParser
	case attributeValueUnquotedState:
		return t.attributeValueUnquotedStateParser
	case afterAttributeValueQuotedState:
		return t.afterAttributeValueQuotedStateParser
	case selfClosingStartTagState:
		return t.selfClosingStartTagStateParser
	case bogusCommentState:
		return t.bogusCommentStateParser
	case markupDeclarationOpenState:
		return t.markupDeclarationOpenStateParser
	case commentStartState:
		return t.commentStartStateParser
	case commentStartDashState:
		return t.commentStartDashStateParser
	case commentState:
		return t.commentStateParser
	case commentLessThanSignState:
		return t.commentLessThanSignStateParser
	case commentLessThanSignBangState:
		return t.commentLessThanSignBangStateParser
	case commentLessThanSignBangDashState:
		return t.commentLessThanSignBangDashStateParser
	case commentLessThanSignBangDashDashState:
		return t.commentLessThanSignBangDashDashStateParser
	case commentEndDashState:
		return t.commentEndDashStateParser
	case commentEndState:
		return t.commentEndStateParser
	case commentEndBangState:
		return t.commentEndBangStateParser
	case doctypeState:
		return t.doctypeStateParser
	case beforeDoctypeNameState:
		return t.beforeDoctypeNameStateParser
	case doctypeNameState:
		return t.doctypeNameStateParser
	case afterDoctypeNameState:
		return t.afterDoctypeNameStateParser
	case afterDoctypePublicKeywordState:
		return t.afterDoctypePublicKeywordStateParser
	case beforeDoctypePublicIdentifierState:
		return t.beforeDoctypePublicIdentifierStateParser
	case doctypePublicIdentifierDoubleQuotedState:
		return t.doctypePublicIdentifierDoubleQuotedStateParser
	case doctypePublicIdentifierSingleQuotedState:
		return t.doctypePublicIdentifierSingleQuotedStateParser
	case afterDoctypePublicIdentifierState:
		return t.afterDoctypePublicIdentifierStateParser
	case betweenDoctypePublicAndSystemIdentifiersState:
		return t.betweenDoctypePublicAndSystemIdentifiersStateParser
	case afterDoctypeSystemKeywordState:
		return t.afterDoctypeSystemKeywordStateParser
	case beforeDoctypeSystemIdentifierState:
		return t.beforeDoctypeSystemIdentifierStateParser
	case doctypeSystemIdentifierDoubleQuotedState:
		return t.doctypeSystemIdentifierDoubleQuotedStateParser
	case doctypeSystemIdentifierSingleQuotedState:
		return t.doctypeSystemIdentifierSingleQuotedStateParser
	case afterDoctypeSystemIdentifierState:
		return t.afterDoctypeSystemIdentifierStateParser
	case bogusDoctypeState:
		return t.bogusDoctypeStateParser
	case cdataSectionState:
		return t.cdataSectionStateParser
	case cdataSectionBracketState:
		return t.cdataSectionBracketStateParser
	case cdataSectionEndState:
		return t.cdataSectionEndStateParser
	case characterReferenceState:
		return t.characterReferenceStateParser
	case namedCharacterReferenceState:
		return t.namedCharacterReferenceStateParser
	case ambiguousAmpersandState:
		return t.ambiguousAmpersandStateParser
	case numericCharacterReferenceState:
		return t.numericCharacterReferenceStateParser
	case hexadecimalCharacterReferenceStartState:
		return t.hexadecimalCharacterReferenceStartStateParser
	case decimalCharacterReferenceStartState:
		return t.decimalCharacterReferenceStartStateParser
	case hexadecimalCharacterReferenceState:
		return t.hexadecimalCharacterReferenceStateParser
	case decimalCharacterReferenceState:
		return t.decimalCharacterReferenceStateParser
	case numericCharacterReferenceEndState:
		return t.numericCharacterReferenceEndStateParser
	}
	return t.dataStateParser
}

// ---- Data / RCDATA / RAWTEXT / Script data / PLAINTEXT ----

func (t *HTMLTokenizer) dataStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		t.emit(t.b.EOFToken(t.curLoc))
		return false, dataState
	case r == '&':
		t.retState = dataState
		return false, characterReferenceState
	case r == '<':
		return false, tagOpenState
	default:
		t.emit(t.b.CharacterToken(r, t.curLoc))
		return false, dataState
	}
}

func (t *HTMLTokenizer) rcDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		t.emit(t.b.EOFToken(t.curLoc))
		return false, rcDataState
	case r == '&':
		t.retState = rcDataState
		return false, characterReferenceState
	case r == '<':
		return false, rcDataLessThanSignState
	default:
		t.emit(t.b.CharacterToken(r, t.curLoc))
		return false, rcDataState
	}
}

func (t *HTMLTokenizer) rawTextStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		t.emit(t.b.EOFToken(t.curLoc))
		return false, rawTextState
	case r == '<':
		return false, rawTextLessThanSignState
	default:
		t.emit(t.b.CharacterToken(r, t.curLoc))
		return false, rawTextState
	}
}

func (t *HTMLTokenizer) scriptDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		t.emit(t.b.EOFToken(t.curLoc))
		return false, scriptDataState
	case r == '<':
		return false, scriptDataLessThanSignState
	default:
		t.emit(t.b.CharacterToken(r, t.curLoc))
		return false, scriptDataState
	}
}

func (t *HTMLTokenizer) plaintextStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		t.emit(t.b.EOFToken(t.curLoc))
		return false, plaintextState
	}
	t.emit(t.b.CharacterToken(r, t.curLoc))
	return false, plaintextState
}

// ---- Tag open family ----

func (t *HTMLTokenizer) tagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, "<")
		t.emit(t.b.CharacterToken('<', t.curLoc))
		return true, dataState
	case r == '!':
		return false, markupDeclarationOpenState
	case r == '/':
		return false, endTagOpenState
	case isAlpha(r):
		t.b.NewToken()
		t.b.curTagType = startTag
		t.tokStart = t.curLoc
		return true, tagNameState
	case r == '?':
		t.reportErr(UnexpectedCharacter, t.curLoc, "?")
		t.b.NewToken()
		return true, bogusCommentState
	default:
		t.reportErr(UnexpectedCharacter, t.curLoc, string(r))
		t.emit(t.b.CharacterToken('<', t.curLoc))
		return true, dataState
	}
}

func (t *HTMLTokenizer) endTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, "</")
		t.emit(t.b.CharacterToken('<', t.curLoc))
		t.emit(t.b.CharacterToken('/', t.curLoc))
		return true, dataState
	case isAlpha(r):
		t.b.NewToken()
		t.b.curTagType = endTag
		t.tokStart = t.curLoc
		return true, tagNameState
	case r == '>':
		t.reportErr(UnmatchedEndTag, t.curLoc, ">")
		return false, dataState
	default:
		t.reportErr(UnexpectedCharacter, t.curLoc, string(r))
		t.b.NewToken()
		return true, bogusCommentState
	}
}

func (t *HTMLTokenizer) tagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, t.b.name.String())
		return false, dataState
	case isWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		return false, t.emitCurrentTag()
	case isUpperASCII(r):
		t.b.WriteName(toLowerASCII(r))
		return false, tagNameState
	case r == 0:
		t.b.WriteName('�')
		return false, tagNameState
	default:
		t.b.WriteName(r)
		return false, tagNameState
	}
}

func (t *HTMLTokenizer) emitCurrentTag() tokenizerState {
	switch t.b.curTagType {
	case startTag:
		tok := t.b.StartTagToken(t.tokStart)
		t.emit(tok)
		t.lastStartTagName = tok.Name
	case endTag:
		t.emit(t.b.EndTagToken(t.tokStart))
	}
	return dataState
}

// ---- RCDATA/RAWTEXT/script-data "less-than-sign" families ----
// These three families are structurally identical (look for "</name"),
// differing only in which state they return to; §4.2 still mandates all
// of them as distinct named states.

func (t *HTMLTokenizer) rcDataLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if r == '/' {
		t.b.ResetTempBuffer()
		return false, rcDataEndTagOpenState
	}
	t.emit(t.b.CharacterToken('<', t.curLoc))
	return true, rcDataState
}

func (t *HTMLTokenizer) rcDataEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if isAlpha(r) {
		t.b.NewToken()
		t.b.curTagType = endTag
		t.tokStart = t.curLoc
		return true, rcDataEndTagNameState
	}
	t.emit(t.b.CharacterToken('<', t.curLoc))
	t.emit(t.b.CharacterToken('/', t.curLoc))
	return true, rcDataState
}

func (t *HTMLTokenizer) rcDataEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return t.genericEndTagNameStateParser(r, eof, rcDataState)
}

func (t *HTMLTokenizer) rawTextLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if r == '/' {
		t.b.ResetTempBuffer()
		return false, rawTextEndTagOpenState
	}
	t.emit(t.b.CharacterToken('<', t.curLoc))
	return true, rawTextState
}

func (t *HTMLTokenizer) rawTextEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if isAlpha(r) {
		t.b.NewToken()
		t.b.curTagType = endTag
		t.tokStart = t.curLoc
		return true, rawTextEndTagNameState
	}
	t.emit(t.b.CharacterToken('<', t.curLoc))
	t.emit(t.b.CharacterToken('/', t.curLoc))
	return true, rawTextState
}

func (t *HTMLTokenizer) rawTextEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return t.genericEndTagNameStateParser(r, eof, rawTextState)
}

// genericEndTagNameStateParser implements the shared "RAWTEXT/RCDATA end
// tag name" logic: only emit the end tag if its name matches the last
// start tag emitted in this content model (§4.2's "appropriate end tag").
func (t *HTMLTokenizer) genericEndTagNameStateParser(r rune, eof bool, fallback tokenizerState) (bool, tokenizerState) {
	switch {
	case isWhitespace(r) && t.isAppropriateEndTag():
		return false, beforeAttributeNameState
	case r == '/' && t.isAppropriateEndTag():
		return false, selfClosingStartTagState
	case r == '>' && t.isAppropriateEndTag():
		return false, t.emitCurrentTag()
	case isUpperASCII(r):
		t.b.WriteName(toLowerASCII(r))
		t.b.WriteTempBuffer(r)
		return false, t.state
	case isAlpha(r):
		t.b.WriteName(r)
		t.b.WriteTempBuffer(r)
		return false, t.state
	default:
		t.emit(t.b.CharacterToken('<', t.curLoc))
		t.emit(t.b.CharacterToken('/', t.curLoc))
		for _, c := range t.b.TempBuffer() {
			t.emit(t.b.CharacterToken(c, t.curLoc))
		}
		return true, fallback
	}
}

func (t *HTMLTokenizer) scriptDataLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch r {
	case '/':
		t.b.ResetTempBuffer()
		return false, scriptDataEndTagOpenState
	case '!':
		t.emit(t.b.CharacterToken('<', t.curLoc))
		t.emit(t.b.CharacterToken('!', t.curLoc))
		return false, scriptDataEscapeStartState
	default:
		t.emit(t.b.CharacterToken('<', t.curLoc))
		return true, scriptDataState
	}
}

func (t *HTMLTokenizer) scriptDataEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if isAlpha(r) {
		t.b.NewToken()
		t.b.curTagType = endTag
		t.tokStart = t.curLoc
		return true, scriptDataEndTagNameState
	}
	t.emit(t.b.CharacterToken('<', t.curLoc))
	t.emit(t.b.CharacterToken('/', t.curLoc))
	return true, scriptDataState
}

func (t *HTMLTokenizer) scriptDataEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return t.genericEndTagNameStateParser(r, eof, scriptDataState)
}

func (t *HTMLTokenizer) scriptDataEscapeStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if r == '-' {
		t.emit(t.b.CharacterToken('-', t.curLoc))
		return false, scriptDataEscapeStartDashState
	}
	return true, scriptDataState
}

func (t *HTMLTokenizer) scriptDataEscapeStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if r == '-' {
		t.emit(t.b.CharacterToken('-', t.curLoc))
		return false, scriptDataEscapedDashDashState
	}
	return true, scriptDataState
}

func (t *HTMLTokenizer) scriptDataEscapedStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, "")
		return false, scriptDataEscapedState
	case r == '-':
		t.emit(t.b.CharacterToken('-', t.curLoc))
		return false, scriptDataEscapedDashState
	case r == '<':
		return false, scriptDataEscapedLessThanSignState
	default:
		t.emit(t.b.CharacterToken(r, t.curLoc))
		return false, scriptDataEscapedState
	}
}

func (t *HTMLTokenizer) scriptDataEscapedDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case r == '-':
		t.emit(t.b.CharacterToken('-', t.curLoc))
		return false, scriptDataEscapedDashDashState
	case r == '<':
		return false, scriptDataEscapedLessThanSignState
	default:
		t.emit(t.b.CharacterToken(r, t.curLoc))
		return false, scriptDataEscapedState
	}
}

func (t *HTMLTokenizer) scriptDataEscapedDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case r == '-':
		t.emit(t.b.CharacterToken('-', t.curLoc))
		return false, scriptDataEscapedDashDashState
	case r == '<':
		return false, scriptDataEscapedLessThanSignState
	case r == '>':
		t.emit(t.b.CharacterToken('>', t.curLoc))
		return false, scriptDataState
	default:
		t.emit(t.b.CharacterToken(r, t.curLoc))
		return false, scriptDataEscapedState
	}
}

func (t *HTMLTokenizer) scriptDataEscapedLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if r == '/' {
		t.b.ResetTempBuffer()
		return false, scriptDataEscapedEndTagOpenState
	}
	if isAlpha(r) {
		t.b.ResetTempBuffer()
		t.emit(t.b.CharacterToken('<', t.curLoc))
		return true, scriptDataDoubleEscapeStartState
	}
	t.emit(t.b.CharacterToken('<', t.curLoc))
	return true, scriptDataEscapedState
}

func (t *HTMLTokenizer) scriptDataEscapedEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if isAlpha(r) {
		t.b.NewToken()
		t.b.curTagType = endTag
		t.tokStart = t.curLoc
		return true, scriptDataEscapedEndTagNameState
	}
	t.emit(t.b.CharacterToken('<', t.curLoc))
	t.emit(t.b.CharacterToken('/', t.curLoc))
	return true, scriptDataEscapedState
}

func (t *HTMLTokenizer) scriptDataEscapedEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return t.genericEndTagNameStateParser(r, eof, scriptDataEscapedState)
}

func (t *HTMLTokenizer) scriptDataDoubleEscapeStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if isWhitespace(r) || r == '/' || r == '>' {
		if t.b.TempBuffer() == "script" {
			t.emit(t.b.CharacterToken(r, t.curLoc))
			return false, scriptDataDoubleEscapedState
		}
		t.emit(t.b.CharacterToken(r, t.curLoc))
		return false, scriptDataEscapedState
	}
	if isUpperASCII(r) {
		t.b.WriteTempBuffer(toLowerASCII(r))
		t.emit(t.b.CharacterToken(r, t.curLoc))
		return false, scriptDataDoubleEscapeStartState
	}
	if isAlpha(r) {
		t.b.WriteTempBuffer(r)
		t.emit(t.b.CharacterToken(r, t.curLoc))
		return false, scriptDataDoubleEscapeStartState
	}
	return true, scriptDataEscapedState
}

func (t *HTMLTokenizer) scriptDataDoubleEscapedStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, "")
		return false, scriptDataDoubleEscapedState
	case r == '-':
		t.emit(t.b.CharacterToken('-', t.curLoc))
		return false, scriptDataDoubleEscapedDashState
	case r == '<':
		t.emit(t.b.CharacterToken('<', t.curLoc))
		return false, scriptDataDoubleEscapedLessThanSignState
	default:
		t.emit(t.b.CharacterToken(r, t.curLoc))
		return false, scriptDataDoubleEscapedState
	}
}

func (t *HTMLTokenizer) scriptDataDoubleEscapedDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case r == '-':
		t.emit(t.b.CharacterToken('-', t.curLoc))
		return false, scriptDataDoubleEscapedDashDashState
	case r == '<':
		t.emit(t.b.CharacterToken('<', t.curLoc))
		return false, scriptDataDoubleEscapedLessThanSignState
	default:
		t.emit(t.b.CharacterToken(r, t.curLoc))
		return false, scriptDataDoubleEscapedState
	}
}

func (t *HTMLTokenizer) scriptDataDoubleEscapedDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case r == '-':
		t.emit(t.b.CharacterToken('-', t.curLoc))
		return false, scriptDataDoubleEscapedDashDashState
	case r == '<':
		t.emit(t.b.CharacterToken('<', t.curLoc))
		return false, scriptDataDoubleEscapedLessThanSignState
	case r == '>':
		t.emit(t.b.CharacterToken('>', t.curLoc))
		return false, scriptDataState
	default:
		t.emit(t.b.CharacterToken(r, t.curLoc))
		return false, scriptDataDoubleEscapedState
	}
}

func (t *HTMLTokenizer) scriptDataDoubleEscapedLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if r == '/' {
		t.b.ResetTempBuffer()
		t.emit(t.b.CharacterToken('/', t.curLoc))
		return false, scriptDataDoubleEscapeEndState
	}
	return true, scriptDataDoubleEscapedState
}

func (t *HTMLTokenizer) scriptDataDoubleEscapeEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	if isWhitespace(r) || r == '/' || r == '>' {
		if t.b.TempBuffer() == "script" {
			t.emit(t.b.CharacterToken(r, t.curLoc))
			return false, scriptDataEscapedState
		}
		t.emit(t.b.CharacterToken(r, t.curLoc))
		return false, scriptDataDoubleEscapedState
	}
	if isUpperASCII(r) {
		t.b.WriteTempBuffer(toLowerASCII(r))
		t.emit(t.b.CharacterToken(r, t.curLoc))
		return false, scriptDataDoubleEscapeEndState
	}
	if isAlpha(r) {
		t.b.WriteTempBuffer(r)
		t.emit(t.b.CharacterToken(r, t.curLoc))
		return false, scriptDataDoubleEscapeEndState
	}
	return true, scriptDataDoubleEscapedState
}

// ---- Attributes ----

func (t *HTMLTokenizer) beforeAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof, r == '/', r == '>':
		return true, afterAttributeNameState
	case isWhitespace(r):
		return false, beforeAttributeNameState
	case r == '=':
		t.reportErr(UnexpectedCharacter, t.curLoc, "=")
		t.b.WriteAttributeName(r)
		return false, attributeNameState
	default:
		return true, attributeNameState
	}
}

func (t *HTMLTokenizer) attributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof, isWhitespace(r), r == '/', r == '>':
		if t.b.RemoveDuplicateAttributeName() {
			t.reportErr(DuplicateAttribute, t.curLoc, t.b.attrKey.String())
		}
		return true, afterAttributeNameState
	case r == '=':
		if t.b.RemoveDuplicateAttributeName() {
			t.reportErr(DuplicateAttribute, t.curLoc, t.b.attrKey.String())
		}
		return false, beforeAttributeValueState
	case isUpperASCII(r):
		t.b.WriteAttributeName(toLowerASCII(r))
		return false, attributeNameState
	case r == 0:
		t.b.WriteAttributeName('�')
		return false, attributeNameState
	case r == '"' || r == '\'' || r == '<':
		t.reportErr(UnexpectedCharacter, t.curLoc, string(r))
		t.b.WriteAttributeName(r)
		return false, attributeNameState
	default:
		t.b.WriteAttributeName(r)
		return false, attributeNameState
	}
}

func (t *HTMLTokenizer) afterAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, "")
		return false, dataState
	case isWhitespace(r):
		return false, afterAttributeNameState
	case r == '/':
		t.b.CommitAttribute(HTMLNamespace)
		return false, selfClosingStartTagState
	case r == '=':
		return false, beforeAttributeValueState
	case r == '>':
		t.b.CommitAttribute(HTMLNamespace)
		return false, t.emitCurrentTag()
	default:
		t.b.CommitAttribute(HTMLNamespace)
		return true, attributeNameState
	}
}

func (t *HTMLTokenizer) beforeAttributeValueStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case isWhitespace(r):
		return false, beforeAttributeValueState
	case r == '"':
		return false, attributeValueDoubleQuotedState
	case r == '\'':
		return false, attributeValueSingleQuotedState
	case r == '>':
		t.reportErr(UnexpectedCharacter, t.curLoc, ">")
		t.b.CommitAttribute(HTMLNamespace)
		return false, t.emitCurrentTag()
	default:
		return true, attributeValueUnquotedState
	}
}

func (t *HTMLTokenizer) attributeValueDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, "")
		return false, dataState
	case r == '"':
		t.b.CommitAttribute(HTMLNamespace)
		return false, afterAttributeValueQuotedState
	case r == '&':
		t.retState = attributeValueDoubleQuotedState
		return false, characterReferenceState
	case r == 0:
		t.b.WriteAttributeValue('�')
		return false, attributeValueDoubleQuotedState
	default:
		t.b.WriteAttributeValue(r)
		return false, attributeValueDoubleQuotedState
	}
}

func (t *HTMLTokenizer) attributeValueSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, "")
		return false, dataState
	case r == '\'':
		t.b.CommitAttribute(HTMLNamespace)
		return false, afterAttributeValueQuotedState
	case r == '&':
		t.retState = attributeValueSingleQuotedState
		return false, characterReferenceState
	case r == 0:
		t.b.WriteAttributeValue('�')
		return false, attributeValueSingleQuotedState
	default:
		t.b.WriteAttributeValue(r)
		return false, attributeValueSingleQuotedState
	}
}

func (t *HTMLTokenizer) attributeValueUnquotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, "")
		return false, dataState
	case isWhitespace(r):
		t.b.CommitAttribute(HTMLNamespace)
		return false, beforeAttributeNameState
	case r == '&':
		t.retState = attributeValueUnquotedState
		return false, characterReferenceState
	case r == '>':
		t.b.CommitAttribute(HTMLNamespace)
		return false, t.emitCurrentTag()
	case r == 0:
		t.b.WriteAttributeValue('�')
		return false, attributeValueUnquotedState
	case r == '"' || r == '\'' || r == '<' || r == '=' || r == '`':
		t.reportErr(UnexpectedCharacter, t.curLoc, string(r))
		t.b.WriteAttributeValue(r)
		return false, attributeValueUnquotedState
	default:
		t.b.WriteAttributeValue(r)
		return false, attributeValueUnquotedState
	}
}

func (t *HTMLTokenizer) afterAttributeValueQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, "")
		return false, dataState
	case isWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		return false, t.emitCurrentTag()
	default:
		t.reportErr(UnexpectedCharacter, t.curLoc, string(r))
		return true, beforeAttributeNameState
	}
}

func (t *HTMLTokenizer) selfClosingStartTagStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, "")
		return false, dataState
	case r == '>':
		t.b.EnableSelfClosing()
		return false, t.emitCurrentTag()
	default:
		t.reportErr(UnexpectedCharacter, t.curLoc, string(r))
		return true, beforeAttributeNameState
	}
}

// ---- Comments, markup declarations, bogus comment ----

func (t *HTMLTokenizer) bogusCommentStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case r == '>':
		t.emit(t.b.CommentToken(t.tokStart))
		return false, dataState
	case eof:
		t.emit(t.b.CommentToken(t.tokStart))
		return true, dataState
	case r == 0:
		t.b.WriteData('�')
		return false, bogusCommentState
	default:
		t.b.WriteData(r)
		return false, bogusCommentState
	}
}

func (t *HTMLTokenizer) markupDeclarationOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	buf := t.b.TempBuffer()
	switch {
	case r == '-' && buf == "":
		t.b.WriteTempBuffer(r)
		return false, markupDeclarationOpenState
	case buf == "-" && r == '-':
		t.b.ResetTempBuffer()
		t.b.NewToken()
		t.tokStart = t.curLoc
		return false, commentStartState
	}
	// DOCTYPE / CDATA / fallback are matched case-insensitively against a
	// short literal; simplest correct approach is to reconsume into a
	// dedicated literal matcher rather than hand-unroll seven states.
	t.b.WriteTempBuffer(toLowerASCII(r))
	word := t.b.TempBuffer()
	switch {
	case word == "doctype":
		t.b.ResetTempBuffer()
		t.b.NewToken()
		return false, beforeDoctypeNameState
	case word == "[cdata[":
		t.b.ResetTempBuffer()
		return false, cdataSectionState
	case len(word) >= 7:
		t.reportErr(UnexpectedCharacter, t.curLoc, word)
		t.b.ResetTempBuffer()
		t.b.NewToken()
		return true, bogusCommentState
	default:
		return false, markupDeclarationOpenState
	}
}

func (t *HTMLTokenizer) commentStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch r {
	case '-':
		return false, commentStartDashState
	case '>':
		t.reportErr(UnexpectedCharacter, t.curLoc, ">")
		t.emit(t.b.CommentToken(t.tokStart))
		return false, dataState
	default:
		return true, commentState
	}
}

func (t *HTMLTokenizer) commentStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case r == '-':
		return false, commentEndState
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, "")
		t.emit(t.b.CommentToken(t.tokStart))
		return true, dataState
	case r == '>':
		t.reportErr(UnexpectedCharacter, t.curLoc, ">")
		t.emit(t.b.CommentToken(t.tokStart))
		return false, dataState
	default:
		t.b.WriteData('-')
		return true, commentState
	}
}

func (t *HTMLTokenizer) commentStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, "")
		t.emit(t.b.CommentToken(t.tokStart))
		return true, dataState
	case r == '<':
		t.b.WriteData(r)
		return false, commentLessThanSignState
	case r == '-':
		return false, commentEndDashState
	case r == 0:
		t.b.WriteData('�')
		return false, commentState
	default:
		t.b.WriteData(r)
		return false, commentState
	}
}

func (t *HTMLTokenizer) commentLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch r {
	case '!':
		t.b.WriteData(r)
		return false, commentLessThanSignBangState
	case '<':
		t.b.WriteData(r)
		return false, commentLessThanSignState
	default:
		return true, commentState
	}
}

func (t *HTMLTokenizer) commentLessThanSignBangStateParser(r rune, eof bool) (bool, tokenizerState) {
	if r == '-' {
		return false, commentLessThanSignBangDashState
	}
	return true, commentState
}

func (t *HTMLTokenizer) commentLessThanSignBangDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if r == '-' {
		return false, commentLessThanSignBangDashDashState
	}
	return true, commentEndDashState
}

func (t *HTMLTokenizer) commentLessThanSignBangDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if r == '>' || eof {
		return true, commentEndState
	}
	t.reportErr(UnexpectedCharacter, t.curLoc, string(r))
	return true, commentEndState
}

func (t *HTMLTokenizer) commentEndDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case r == '-':
		return false, commentEndState
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, "")
		t.emit(t.b.CommentToken(t.tokStart))
		return true, dataState
	default:
		t.b.WriteData('-')
		return true, commentState
	}
}

func (t *HTMLTokenizer) commentEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case r == '>':
		t.emit(t.b.CommentToken(t.tokStart))
		return false, dataState
	case r == '!':
		return false, commentEndBangState
	case r == '-':
		t.b.WriteData('-')
		return false, commentEndState
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, "")
		t.emit(t.b.CommentToken(t.tokStart))
		return true, dataState
	default:
		t.b.WriteData('-')
		t.b.WriteData('-')
		return true, commentState
	}
}

func (t *HTMLTokenizer) commentEndBangStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case r == '-':
		t.b.WriteData('-')
		t.b.WriteData('-')
		t.b.WriteData('!')
		return false, commentEndDashState
	case r == '>':
		t.reportErr(UnexpectedCharacter, t.curLoc, "!")
		t.emit(t.b.CommentToken(t.tokStart))
		return false, dataState
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, "")
		t.emit(t.b.CommentToken(t.tokStart))
		return true, dataState
	default:
		t.b.WriteData('-')
		t.b.WriteData('-')
		t.b.WriteData('!')
		return true, commentState
	}
}

// ---- DOCTYPE ----

func (t *HTMLTokenizer) doctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case isWhitespace(r):
		return false, beforeDoctypeNameState
	case r == '>':
		return true, beforeDoctypeNameState
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, "")
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return true, dataState
	default:
		return true, beforeDoctypeNameState
	}
}

func (t *HTMLTokenizer) beforeDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case isWhitespace(r):
		return false, beforeDoctypeNameState
	case isUpperASCII(r):
		t.b.WriteName(toLowerASCII(r))
		return false, doctypeNameState
	case r == 0:
		t.b.WriteName('�')
		return false, doctypeNameState
	case r == '>':
		t.reportErr(BadDoctype, t.curLoc, ">")
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return false, dataState
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, "")
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return true, dataState
	default:
		t.b.WriteName(r)
		return false, doctypeNameState
	}
}

func (t *HTMLTokenizer) doctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case isWhitespace(r):
		return false, afterDoctypeNameState
	case r == '>':
		t.emit(t.b.DocTypeToken(t.tokStart))
		return false, dataState
	case isUpperASCII(r):
		t.b.WriteName(toLowerASCII(r))
		return false, doctypeNameState
	case r == 0:
		t.b.WriteName('�')
		return false, doctypeNameState
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, "")
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return true, dataState
	default:
		t.b.WriteName(r)
		return false, doctypeNameState
	}
}

func (t *HTMLTokenizer) afterDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case isWhitespace(r):
		return false, afterDoctypeNameState
	case r == '>':
		t.emit(t.b.DocTypeToken(t.tokStart))
		return false, dataState
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, "")
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return true, dataState
	case toLowerASCII(r) == 'p':
		t.b.WriteTempBuffer(toLowerASCII(r))
		if t.b.TempBuffer() == "public" {
			t.b.ResetTempBuffer()
			return false, afterDoctypePublicKeywordState
		}
		return false, afterDoctypeNameState
	case toLowerASCII(r) == 's':
		t.b.WriteTempBuffer(toLowerASCII(r))
		if t.b.TempBuffer() == "system" {
			t.b.ResetTempBuffer()
			return false, afterDoctypeSystemKeywordState
		}
		return false, afterDoctypeNameState
	case len(t.b.TempBuffer()) > 0:
		t.b.WriteTempBuffer(toLowerASCII(r))
		word := t.b.TempBuffer()
		if word == "public" {
			t.b.ResetTempBuffer()
			return false, afterDoctypePublicKeywordState
		}
		if word == "system" {
			t.b.ResetTempBuffer()
			return false, afterDoctypeSystemKeywordState
		}
		if len(word) >= 6 {
			t.reportErr(BadDoctype, t.curLoc, word)
			t.b.ResetTempBuffer()
			t.b.EnableForceQuirks()
			return true, bogusDoctypeState
		}
		return false, afterDoctypeNameState
	default:
		t.reportErr(BadDoctype, t.curLoc, string(r))
		t.b.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (t *HTMLTokenizer) afterDoctypePublicKeywordStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case isWhitespace(r):
		return false, beforeDoctypePublicIdentifierState
	case r == '"':
		t.b.hasPublicID = true
		return false, doctypePublicIdentifierDoubleQuotedState
	case r == '\'':
		t.b.hasPublicID = true
		return false, doctypePublicIdentifierSingleQuotedState
	case r == '>':
		t.reportErr(BadDoctype, t.curLoc, ">")
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return false, dataState
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, "")
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return true, dataState
	default:
		t.reportErr(BadDoctype, t.curLoc, string(r))
		t.b.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (t *HTMLTokenizer) beforeDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case isWhitespace(r):
		return false, beforeDoctypePublicIdentifierState
	case r == '"':
		t.b.hasPublicID = true
		return false, doctypePublicIdentifierDoubleQuotedState
	case r == '\'':
		t.b.hasPublicID = true
		return false, doctypePublicIdentifierSingleQuotedState
	case r == '>':
		t.reportErr(BadDoctype, t.curLoc, ">")
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return false, dataState
	case eof:
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return true, dataState
	default:
		t.b.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (t *HTMLTokenizer) doctypePublicIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case r == '"':
		return false, afterDoctypePublicIdentifierState
	case r == 0:
		t.b.WritePublicIdentifier('�')
		return false, doctypePublicIdentifierDoubleQuotedState
	case r == '>':
		t.reportErr(BadDoctype, t.curLoc, ">")
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return false, dataState
	case eof:
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return true, dataState
	default:
		t.b.WritePublicIdentifier(r)
		return false, doctypePublicIdentifierDoubleQuotedState
	}
}

func (t *HTMLTokenizer) doctypePublicIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case r == '\'':
		return false, afterDoctypePublicIdentifierState
	case r == 0:
		t.b.WritePublicIdentifier('�')
		return false, doctypePublicIdentifierSingleQuotedState
	case r == '>':
		t.reportErr(BadDoctype, t.curLoc, ">")
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return false, dataState
	case eof:
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return true, dataState
	default:
		t.b.WritePublicIdentifier(r)
		return false, doctypePublicIdentifierSingleQuotedState
	}
}

func (t *HTMLTokenizer) afterDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case isWhitespace(r):
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		t.emit(t.b.DocTypeToken(t.tokStart))
		return false, dataState
	case r == '"':
		t.b.hasSystemID = true
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		t.b.hasSystemID = true
		return false, doctypeSystemIdentifierSingleQuotedState
	case eof:
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return true, dataState
	default:
		t.reportErr(BadDoctype, t.curLoc, string(r))
		t.b.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (t *HTMLTokenizer) betweenDoctypePublicAndSystemIdentifiersStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case isWhitespace(r):
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		t.emit(t.b.DocTypeToken(t.tokStart))
		return false, dataState
	case r == '"':
		t.b.hasSystemID = true
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		t.b.hasSystemID = true
		return false, doctypeSystemIdentifierSingleQuotedState
	case eof:
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return true, dataState
	default:
		t.b.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (t *HTMLTokenizer) afterDoctypeSystemKeywordStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case isWhitespace(r):
		return false, beforeDoctypeSystemIdentifierState
	case r == '"':
		t.b.hasSystemID = true
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		t.b.hasSystemID = true
		return false, doctypeSystemIdentifierSingleQuotedState
	case r == '>':
		t.reportErr(BadDoctype, t.curLoc, ">")
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return false, dataState
	case eof:
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return true, dataState
	default:
		t.b.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (t *HTMLTokenizer) beforeDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case isWhitespace(r):
		return false, beforeDoctypeSystemIdentifierState
	case r == '"':
		t.b.hasSystemID = true
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		t.b.hasSystemID = true
		return false, doctypeSystemIdentifierSingleQuotedState
	case r == '>':
		t.reportErr(BadDoctype, t.curLoc, ">")
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return false, dataState
	case eof:
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return true, dataState
	default:
		t.b.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (t *HTMLTokenizer) doctypeSystemIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case r == '"':
		return false, afterDoctypeSystemIdentifierState
	case r == 0:
		t.b.WriteSystemIdentifier('�')
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '>':
		t.reportErr(BadDoctype, t.curLoc, ">")
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return false, dataState
	case eof:
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return true, dataState
	default:
		t.b.WriteSystemIdentifier(r)
		return false, doctypeSystemIdentifierDoubleQuotedState
	}
}

func (t *HTMLTokenizer) doctypeSystemIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case r == '\'':
		return false, afterDoctypeSystemIdentifierState
	case r == 0:
		t.b.WriteSystemIdentifier('�')
		return false, doctypeSystemIdentifierSingleQuotedState
	case r == '>':
		t.reportErr(BadDoctype, t.curLoc, ">")
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return false, dataState
	case eof:
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return true, dataState
	default:
		t.b.WriteSystemIdentifier(r)
		return false, doctypeSystemIdentifierSingleQuotedState
	}
}

func (t *HTMLTokenizer) afterDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case isWhitespace(r):
		return false, afterDoctypeSystemIdentifierState
	case r == '>':
		t.emit(t.b.DocTypeToken(t.tokStart))
		return false, dataState
	case eof:
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken(t.tokStart))
		return true, dataState
	default:
		t.reportErr(BadDoctype, t.curLoc, string(r))
		return true, bogusDoctypeState
	}
}

func (t *HTMLTokenizer) bogusDoctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case r == '>':
		t.emit(t.b.DocTypeToken(t.tokStart))
		return false, dataState
	case eof:
		t.emit(t.b.DocTypeToken(t.tokStart))
		return true, dataState
	default:
		return false, bogusDoctypeState
	}
}

// ---- CDATA (entered from markup declaration open on "[CDATA[", matched
// case-insensitively, whether or not the content is foreign) ----

func (t *HTMLTokenizer) cdataSectionStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		t.reportErr(UnexpectedEOF, t.curLoc, "")
		return false, dataState
	case r == ']':
		return false, cdataSectionBracketState
	default:
		t.emit(t.b.CharacterToken(r, t.curLoc))
		return false, cdataSectionState
	}
}

func (t *HTMLTokenizer) cdataSectionBracketStateParser(r rune, eof bool) (bool, tokenizerState) {
	if r == ']' {
		return false, cdataSectionEndState
	}
	t.emit(t.b.CharacterToken(']', t.curLoc))
	return true, cdataSectionState
}

func (t *HTMLTokenizer) cdataSectionEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch r {
	case ']':
		t.emit(t.b.CharacterToken(']', t.curLoc))
		return false, cdataSectionEndState
	case '>':
		return false, dataState
	default:
		t.emit(t.b.CharacterToken(']', t.curLoc))
		t.emit(t.b.CharacterToken(']', t.curLoc))
		return true, cdataSectionState
	}
}

// ---- Character references ----

func (t *HTMLTokenizer) characterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	t.b.ResetTempBuffer()
	t.b.WriteTempBuffer('&')
	if isAlpha(r) {
		return true, namedCharacterReferenceState
	}
	if r == '#' {
		t.b.WriteTempBuffer(r)
		return false, numericCharacterReferenceState
	}
	return true, t.flushTempBufferTo(t.retState)
}

// flushTempBufferTo emits the temp buffer as character tokens (or appends
// it to the current attribute value, if returning into an attribute
// state) and returns the state to continue in.
func (t *HTMLTokenizer) flushTempBufferTo(ret tokenizerState) tokenizerState {
	switch ret {
	case attributeValueDoubleQuotedState, attributeValueSingleQuotedState, attributeValueUnquotedState:
		for _, c := range t.b.TempBuffer() {
			t.b.WriteAttributeValue(c)
		}
	default:
		for _, c := range t.b.TempBuffer() {
			t.emit(t.b.CharacterToken(c, t.curLoc))
		}
	}
	return ret
}

func (t *HTMLTokenizer) namedCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	// Greedily accumulate alnum/; runes, then resolve by longest-prefix
	// match once the run ends (mirrors the trie walk the spec describes,
	// without hand-rolling a trie).
	if isAlpha(r) || isDigit(r) || r == ';' {
		t.b.WriteTempBuffer(r)
		if r == ';' {
			return false, t.resolveNamedReference()
		}
		return false, namedCharacterReferenceState
	}
	return true, t.resolveNamedReference()
}

func (t *HTMLTokenizer) resolveNamedReference() tokenizerState {
	buf := []rune(t.b.TempBuffer())
	name := buf[1:] // drop leading '&'
	if t.entityResolver != nil {
		if repl, ok := t.entityResolver(string(name)); ok {
			newBuf := append([]rune{}, repl...)
			t.b.tempBuffer.Reset()
			for _, c := range newBuf {
				t.b.tempBuffer.WriteRune(c)
			}
			return t.flushTempBufferTo(t.retState)
		}
	}
	repl, n := lookupNamedCharacterReference(name)
	if repl == nil {
		inAttr := t.retState == attributeValueDoubleQuotedState || t.retState == attributeValueSingleQuotedState || t.retState == attributeValueUnquotedState
		if inAttr && len(name) > 0 && name[len(name)-1] != ';' {
			return t.ambiguousAmpersandFallback()
		}
		t.reportErr(BadCharacterReference, t.curLoc, string(buf))
		return t.flushTempBufferTo(t.retState)
	}
	if name[n-1] != ';' {
		t.reportErr(BadCharacterReference, t.curLoc, string(buf))
	}
	remainder := string(name[n:])
	newBuf := append([]rune{}, repl...)
	t.b.tempBuffer.Reset()
	for _, c := range newBuf {
		t.b.tempBuffer.WriteRune(c)
	}
	for _, c := range remainder {
		t.b.tempBuffer.WriteRune(c)
	}
	return t.flushTempBufferTo(t.retState)
}

func (t *HTMLTokenizer) ambiguousAmpersandFallback() tokenizerState {
	return t.flushTempBufferTo(t.retState)
}

func (t *HTMLTokenizer) ambiguousAmpersandStateParser(r rune, eof bool) (bool, tokenizerState) {
	// Reserved for the named-reference trie's "matched a prefix but the
	// consuming character isn't ';'" branch; resolveNamedReference already
	// folds this case in directly rather than transitioning here, but the
	// state is kept distinct per §4.2's mandated state list.
	return true, t.retState
}

func (t *HTMLTokenizer) numericCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	t.b.SetCharRef(0)
	if r == 'x' || r == 'X' {
		t.b.WriteTempBuffer(r)
		return false, hexadecimalCharacterReferenceStartState
	}
	return true, decimalCharacterReferenceStartState
}

func (t *HTMLTokenizer) hexadecimalCharacterReferenceStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if isHexDigit(r) {
		return true, hexadecimalCharacterReferenceState
	}
	t.reportErr(BadCharacterReference, t.curLoc, string(r))
	return true, t.flushTempBufferTo(t.retState)
}

func (t *HTMLTokenizer) decimalCharacterReferenceStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if isDigit(r) {
		return true, decimalCharacterReferenceState
	}
	t.reportErr(BadCharacterReference, t.curLoc, string(r))
	return true, t.flushTempBufferTo(t.retState)
}

func (t *HTMLTokenizer) hexadecimalCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case isDigit(r):
		t.b.MultByCharRef(16)
		t.b.AddToCharRef(int(r - '0'))
		return false, hexadecimalCharacterReferenceState
	case r >= 'a' && r <= 'f':
		t.b.MultByCharRef(16)
		t.b.AddToCharRef(int(r-'a') + 10)
		return false, hexadecimalCharacterReferenceState
	case r >= 'A' && r <= 'F':
		t.b.MultByCharRef(16)
		t.b.AddToCharRef(int(r-'A') + 10)
		return false, hexadecimalCharacterReferenceState
	case r == ';':
		return false, numericCharacterReferenceEndState
	default:
		t.reportErr(BadCharacterReference, t.curLoc, string(r))
		return true, numericCharacterReferenceEndState
	}
}

func (t *HTMLTokenizer) decimalCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case isDigit(r):
		t.b.MultByCharRef(10)
		t.b.AddToCharRef(int(r - '0'))
		return false, decimalCharacterReferenceState
	case r == ';':
		return false, numericCharacterReferenceEndState
	default:
		t.reportErr(BadCharacterReference, t.curLoc, string(r))
		return true, numericCharacterReferenceEndState
	}
}

func (t *HTMLTokenizer) numericCharacterReferenceEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	code := t.b.GetCharRef()
	result := rune(code)

	if code == 0 {
		t.reportErr(BadCharacterReference, t.curLoc, "0")
		result = '�'
	} else if code > 0x10FFFF {
		t.reportErr(BadCharacterReference, t.curLoc, strconv.Itoa(code))
		result = '�'
	} else if isSurrogate(rune(code)) {
		t.reportErr(BadCharacterReference, t.curLoc, strconv.Itoa(code))
		result = '�'
	} else if rep, ok := numericCharacterReferenceOverrides[rune(code)]; ok {
		t.reportErr(BadCharacterReference, t.curLoc, strconv.Itoa(code))
		result = rep
	} else if (code >= 0x80 && code <= 0x9F) || code == 0x0D {
		t.reportErr(BadCharacterReference, t.curLoc, strconv.Itoa(code))
	} else if isNoncharacter(rune(code)) || (code < 0x20 && code != 0x09 && code != 0x0A && code != 0x0C) {
		t.reportErr(BadCharacterReference, t.curLoc, strconv.Itoa(code))
	}

	t.b.tempBuffer.Reset()
	t.b.tempBuffer.WriteRune(result)
	return true, t.flushTempBufferTo(t.retState)
}
