package markup

//go:generate stringer -type=tokenizerState
type tokenizerState uint

// The canonical ~70 HTML5 tokenizer states (§4.2), named identically to
// the WHATWG specification's state names.
const (
	dataState tokenizerState = iota
	rcDataState
	rawTextState
	scriptDataState
	plaintextState
	tagOpenState
	endTagOpenState
	tagNameState
	rcDataLessThanSignState
	rcDataEndTagOpenState
	rcDataEndTagNameState
	rawTextLessThanSignState
	rawTextEndTagOpenState
	rawTextEndTagNameState
	scriptDataLessThanSignState
	scriptDataEndTagOpenState
	scriptDataEndTagNameState
	scriptDataEscapeStartState
	scriptDataEscapeStartDashState
	scriptDataEscapedState
	scriptDataEscapedDashState
	scriptDataEscapedDashDashState
	scriptDataEscapedLessThanSignState
	scriptDataEscapedEndTagOpenState
	scriptDataEscapedEndTagNameState
	scriptDataDoubleEscapeStartState
	scriptDataDoubleEscapedState
	scriptDataDoubleEscapedDashState
	scriptDataDoubleEscapedDashDashState
	scriptDataDoubleEscapedLessThanSignState
	scriptDataDoubleEscapeEndState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	bogusCommentState
	markupDeclarationOpenState
	commentStartState
	commentStartDashState
	commentState
	commentLessThanSignState
	commentLessThanSignBangState
	commentLessThanSignBangDashState
	commentLessThanSignBangDashDashState
	commentEndDashState
	commentEndState
	commentEndBangState
	doctypeState
	beforeDoctypeNameState
	doctypeNameState
	afterDoctypeNameState
	afterDoctypePublicKeywordState
	beforeDoctypePublicIdentifierState
	doctypePublicIdentifierDoubleQuotedState
	doctypePublicIdentifierSingleQuotedState
	afterDoctypePublicIdentifierState
	betweenDoctypePublicAndSystemIdentifiersState
	afterDoctypeSystemKeywordState
	beforeDoctypeSystemIdentifierState
	doctypeSystemIdentifierDoubleQuotedState
	doctypeSystemIdentifierSingleQuotedState
	afterDoctypeSystemIdentifierState
	bogusDoctypeState
	cdataSectionState
	cdataSectionBracketState
	cdataSectionEndState
	characterReferenceState
	namedCharacterReferenceState
	ambiguousAmpersandState
	numericCharacterReferenceState
	hexadecimalCharacterReferenceStartState
	decimalCharacterReferenceStartState
	hexadecimalCharacterReferenceState
	decimalCharacterReferenceState
	numericCharacterReferenceEndState
	endTagNameAfterState // no transition enters this state
)

func (s tokenizerState) String() string {
	names := [...]string{
		"Data", "RCDATA", "RAWTEXT", "ScriptData", "PLAINTEXT",
		"TagOpen", "EndTagOpen", "TagName",
		"RCDATALessThanSign", "RCDATAEndTagOpen", "RCDATAEndTagName",
		"RAWTEXTLessThanSign", "RAWTEXTEndTagOpen", "RAWTEXTEndTagName",
		"ScriptDataLessThanSign", "ScriptDataEndTagOpen", "ScriptDataEndTagName",
		"ScriptDataEscapeStart", "ScriptDataEscapeStartDash",
		"ScriptDataEscaped", "ScriptDataEscapedDash", "ScriptDataEscapedDashDash",
		"ScriptDataEscapedLessThanSign", "ScriptDataEscapedEndTagOpen", "ScriptDataEscapedEndTagName",
		"ScriptDataDoubleEscapeStart", "ScriptDataDoubleEscaped", "ScriptDataDoubleEscapedDash",
		"ScriptDataDoubleEscapedDashDash", "ScriptDataDoubleEscapedLessThanSign", "ScriptDataDoubleEscapeEnd",
		"BeforeAttributeName", "AttributeName", "AfterAttributeName",
		"BeforeAttributeValue", "AttributeValueDoubleQuoted", "AttributeValueSingleQuoted",
		"AttributeValueUnquoted", "AfterAttributeValueQuoted", "SelfClosingStartTag",
		"BogusComment", "MarkupDeclarationOpen",
		"CommentStart", "CommentStartDash", "Comment",
		"CommentLessThanSign", "CommentLessThanSignBang", "CommentLessThanSignBangDash",
		"CommentLessThanSignBangDashDash", "CommentEndDash", "CommentEnd", "CommentEndBang",
		"Doctype", "BeforeDoctypeName", "DoctypeName", "AfterDoctypeName",
		"AfterDoctypePublicKeyword", "BeforeDoctypePublicIdentifier",
		"DoctypePublicIdentifierDoubleQuoted", "DoctypePublicIdentifierSingleQuoted",
		"AfterDoctypePublicIdentifier", "BetweenDoctypePublicAndSystemIdentifiers",
		"AfterDoctypeSystemKeyword", "BeforeDoctypeSystemIdentifier",
		"DoctypeSystemIdentifierDoubleQuoted", "DoctypeSystemIdentifierSingleQuoted",
		"AfterDoctypeSystemIdentifier", "BogusDoctype",
		"CDATASection", "CDATASectionBracket", "CDATASectionEnd",
		"CharacterReference", "NamedCharacterReference", "AmbiguousAmpersand",
		"NumericCharacterReference", "HexadecimalCharacterReferenceStart",
		"DecimalCharacterReferenceStart", "HexadecimalCharacterReference",
		"DecimalCharacterReference", "NumericCharacterReferenceEnd", "EndTagNameAfter",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}
