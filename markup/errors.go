package markup

import "fmt"

// Location is a 1-based line/column position in the original byte stream.
type Location struct {
	Line, Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// ErrorKind is the closed set of parse-error conditions this package
// reports. It is never a free-form string: callers that want to branch on
// error class switch on Kind, not on ParseError.Error()'s text.
type ErrorKind uint

const (
	BadByteSequence ErrorKind = iota
	UnexpectedCharacter
	UnexpectedEOF
	UnmatchedStartTag
	UnmatchedEndTag
	MisnestedTag
	BadDoctype
	DuplicateAttribute
	BadCharacterReference
	BadNamespace
)

//go:generate stringer -type=ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case BadByteSequence:
		return "bad-byte-sequence"
	case UnexpectedCharacter:
		return "unexpected-character"
	case UnexpectedEOF:
		return "unexpected-eof"
	case UnmatchedStartTag:
		return "unmatched-start-tag"
	case UnmatchedEndTag:
		return "unmatched-end-tag"
	case MisnestedTag:
		return "misnested-tag"
	case BadDoctype:
		return "bad-doctype"
	case DuplicateAttribute:
		return "duplicate-attribute"
	case BadCharacterReference:
		return "bad-character-reference"
	case BadNamespace:
		return "bad-namespace"
	}
	return "unknown-error"
}

// ParseError is reported through Config.Report. It is never fatal by
// itself (§7): the parser continues on the recovery path named by §4.3/§4.4
// regardless of what Report does, unless Report returns ErrStop.
type ParseError struct {
	Kind      ErrorKind
	Loc       Location
	Offending string
	Expected  string
}

func (e *ParseError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("%s: %s (offending %q, expected %q)", e.Loc, e.Kind, e.Offending, e.Expected)
	}
	if e.Offending != "" {
		return fmt.Sprintf("%s: %s (%q)", e.Loc, e.Kind, e.Offending)
	}
	return fmt.Sprintf("%s: %s", e.Loc, e.Kind)
}

// ReportFunc receives every parse error as it is detected. Returning
// ErrStop for an error reported by HTML tree construction or by the XML
// nesting tracker ends the stream: the next call to SignalStream.Next
// returns ErrStop. Any other returned error is treated identically to
// ErrStop. The return value is ignored for errors reported by the input
// stream and by the HTML and XML tokenizers; parsing continues after those.
type ReportFunc func(*ParseError) error

// ErrStop is the sentinel a Report callback can return to cancel parsing.
// It is the only error a Report callback is expected to hand back; the
// parser does not distinguish it from any other non-nil return value.
var ErrStop = fmt.Errorf("markup: stop requested by report callback")
