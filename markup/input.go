package markup

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// sniffWindow is how many bytes of the document the encoding detector may
// inspect for a <meta charset> / <meta http-equiv> declaration (§4.1).
const sniffWindow = 1024

// InputStream is a scalar ring buffer with push-back and a line/column
// counter, exclusively owned by a tokenizer (§3 Ownership). next() yields
// Unicode scalars already normalized per §4.1 (CR/CRLF/LF collapse, NUL ->
// U+FFFD). Encoding detection and decoding happen once, at construction.
type InputStream struct {
	src      *bufio.Reader
	pushback []rune
	line, col int
	eof      bool
	report   ReportFunc

	raw       io.Reader // underlying byte source, kept for resync
	buffered  []byte    // bytes already consumed by the decoder, for resync
	committed bool       // true once a non-whitespace scalar has been returned
}

// DetectedEncoding describes the outcome of the §4.1 detection algorithm.
type DetectedEncoding struct {
	Name string
	Enc  encoding.Encoding
	// Source records which rule fired: "explicit", "bom", "meta", "declaration", "default".
	Source string
}

// htmlindexLookup resolves a name to its encoding and canonical name, as
// htmlindex.Lookup would, using the Get/Name pair exposed by this version
// of golang.org/x/text/encoding/htmlindex.
func htmlindexLookup(name string) (encoding.Encoding, string, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, "", err
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		return nil, "", err
	}
	return enc, canonical, nil
}

// detectHTMLEncoding implements the HTML order from §4.1: explicit >
// BOM > meta scan (first 1024 bytes) > heuristic UTF-8. It delegates the
// BOM/meta/heuristic portion to golang.org/x/net/html/charset, which
// already implements that exact three-step algorithm against the WHATWG
// Encoding sniffing algorithm, and layers the explicit override on top.
func detectHTMLEncoding(explicit string, peek []byte) (DetectedEncoding, error) {
	if explicit != "" {
		enc, canonical, err := htmlindexLookup(explicit)
		if err != nil {
			return DetectedEncoding{}, errors.Wrapf(err, "markup: unknown explicit encoding %q", explicit)
		}
		return DetectedEncoding{Name: canonical, Enc: enc, Source: "explicit"}, nil
	}

	enc, name, _ := charset.DetermineEncoding(peek, "")
	source := "default"
	if hasBOM(peek) {
		source = "bom"
	} else if hasMeta(peek) {
		source = "meta"
	}
	return DetectedEncoding{Name: name, Enc: enc, Source: source}, nil
}

func hasBOM(b []byte) bool {
	return (len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF) ||
		(len(b) >= 2 && ((b[0] == 0xFF && b[1] == 0xFE) || (b[0] == 0xFE && b[1] == 0xFF)))
}

func hasMeta(b []byte) bool {
	// cheap substring probe; charset.DetermineEncoding already did the
	// real parsing, this only distinguishes "meta" from "default" for
	// DetectedEncoding.Source bookkeeping.
	s := string(b)
	return containsFold(s, "charset") || containsFold(s, "http-equiv")
}

func containsFold(s, sub string) bool {
	ls, lsub := len(s), len(sub)
	if lsub == 0 || lsub > ls {
		return false
	}
	for i := 0; i+lsub <= ls; i++ {
		if foldEqual(s[i:i+lsub], sub) {
			return true
		}
	}
	return false
}

func foldEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// NewHTMLInputStream detects the encoding of r per §4.1's HTML rules and
// returns a decoded InputStream plus the encoding that was selected.
func NewHTMLInputStream(r io.Reader, explicit string, report ReportFunc) (*InputStream, DetectedEncoding, error) {
	br := bufio.NewReaderSize(r, sniffWindow*2)
	peek, _ := br.Peek(sniffWindow)
	det, err := detectHTMLEncoding(explicit, peek)
	if err != nil {
		return nil, DetectedEncoding{}, err
	}
	return newInputStream(br, det, report), det, nil
}

// NewXMLInputStream detects the encoding of r per §4.1's XML rules: BOM >
// XML declaration encoding="…" > UTF-8. The XML declaration itself is
// parsed by the XML tokenizer's first state, not here; this stage only
// needs the BOM, and a best-effort ASCII-literal scan for `encoding="…"`
// inside a leading `<?xml …?>` since the declaration must be pure ASCII.
func NewXMLInputStream(r io.Reader, explicit string, report ReportFunc) (*InputStream, DetectedEncoding, error) {
	br := bufio.NewReaderSize(r, sniffWindow*2)
	peek, _ := br.Peek(sniffWindow)

	if explicit != "" {
		enc, canonical, err := htmlindexLookup(explicit)
		if err != nil {
			return nil, DetectedEncoding{}, errors.Wrapf(err, "markup: unknown explicit encoding %q", explicit)
		}
		det := DetectedEncoding{Name: canonical, Enc: enc, Source: "explicit"}
		return newInputStream(br, det, report), det, nil
	}

	if hasBOM(peek) {
		enc, name, _ := charset.DetermineEncoding(peek, "")
		det := DetectedEncoding{Name: name, Enc: enc, Source: "bom"}
		return newInputStream(br, det, report), det, nil
	}

	if name := scanXMLDeclEncoding(peek); name != "" {
		if enc, canonical, err := htmlindexLookup(name); err == nil {
			det := DetectedEncoding{Name: canonical, Enc: enc, Source: "declaration"}
			return newInputStream(br, det, report), det, nil
		}
	}

	enc, _ := htmlindex.Get("utf-8")
	det := DetectedEncoding{Name: "utf-8", Enc: enc, Source: "default"}
	return newInputStream(br, det, report), det, nil
}

// scanXMLDeclEncoding looks for `encoding="..."` or `encoding='...'` inside
// a leading `<?xml ... ?>` declaration, which by the XML spec is always
// ASCII-literal at this point.
func scanXMLDeclEncoding(b []byte) string {
	s := string(b)
	if len(s) < 5 || s[:5] != "<?xml" {
		return ""
	}
	end := indexByte(s, '>')
	if end == -1 {
		end = len(s)
	}
	decl := s[:end]
	key := "encoding="
	i := indexFold(decl, key)
	if i == -1 {
		return ""
	}
	rest := decl[i+len(key):]
	if len(rest) == 0 {
		return ""
	}
	quote := rest[0]
	if quote != '"' && quote != '\'' {
		return ""
	}
	j := indexByteFrom(rest[1:], quote)
	if j == -1 {
		return ""
	}
	return rest[1 : 1+j]
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

func indexByteFrom(s string, c byte) int { return indexByte(s, c) }

func indexFold(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if foldEqual(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

func newInputStream(br *bufio.Reader, det DetectedEncoding, report ReportFunc) *InputStream {
	if det.Source == "bom" {
		br.Discard(bomLen(det.Name))
	}
	dr := transform.NewReader(br, det.Enc.NewDecoder())
	return &InputStream{
		src:    bufio.NewReader(dr),
		line:   1,
		col:    1,
		report: report,
		raw:    br,
	}
}

// bomLen returns the byte length of the BOM that detectHTMLEncoding/
// NewXMLInputStream already matched for the given canonical encoding name,
// so newInputStream can skip it before handing bytes to the decoder: the
// decoders this package uses (encoding.Nop for UTF-8 chief among them) are
// pure passthroughs and never strip a BOM themselves.
func bomLen(name string) int {
	switch name {
	case "utf-8":
		return 3
	case "utf-16be", "utf-16le":
		return 2
	default:
		return 0
	}
}

// pushBack re-inserts a scalar so the next call to next() returns it.
func (in *InputStream) pushBack(r rune) {
	in.pushback = append(in.pushback, r)
}

// location returns the position of the next scalar to be produced.
func (in *InputStream) location() Location {
	return Location{Line: in.line, Column: in.col}
}

func (in *InputStream) advanceLocation(r rune) {
	if r == '\n' {
		in.line++
		in.col = 1
		return
	}
	if r == '\t' {
		in.col += 8 - ((in.col - 1) % 8)
		return
	}
	in.col++
}

// next advances one Unicode scalar, applying §4.1 normalization: CR/CRLF/LF
// collapse to LF, NUL becomes U+FFFD with a BadByteSequence-adjacent
// UnexpectedCharacter report, and surrogates/noncharacters are reported but
// passed through untouched.
func (in *InputStream) next() (rune, bool) {
	if n := len(in.pushback); n > 0 {
		r := in.pushback[n-1]
		in.pushback = in.pushback[:n-1]
		in.advanceLocation(r)
		if r != ' ' && r != '\t' && r != '\n' {
			in.committed = true
		}
		return r, true
	}
	if in.eof {
		return 0, false
	}

	r, _, err := in.src.ReadRune()
	if err != nil {
		in.eof = true
		return 0, false
	}

	if r == '\r' {
		if b, err := in.src.Peek(1); err == nil && len(b) > 0 && b[0] == '\n' {
			in.src.Discard(1)
		}
		r = '\n'
	}

	loc := in.location()
	if r == 0 {
		in.reportErr(UnexpectedCharacter, loc, "\x00")
		r = '�'
	} else if isSurrogate(r) || isNoncharacter(r) {
		in.reportErr(UnexpectedCharacter, loc, string(r))
	}

	in.advanceLocation(r)
	if r != ' ' && r != '\t' && r != '\n' {
		in.committed = true
	}
	return r, true
}

func (in *InputStream) reportErr(kind ErrorKind, loc Location, offending string) {
	if in.report == nil {
		return
	}
	in.report(&ParseError{Kind: kind, Loc: loc, Offending: offending})
}

func isSurrogate(r rune) bool { return r >= 0xD800 && r <= 0xDFFF }

func isNoncharacter(r rune) bool {
	if r >= 0xFDD0 && r <= 0xFDEF {
		return true
	}
	switch r & 0xFFFF {
	case 0xFFFE, 0xFFFF:
		return true
	}
	return false
}
