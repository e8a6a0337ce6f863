package markup

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// WriteHTML serializes a Signal stream back to HTML5 text (§4.5): void
// elements are emitted without a closing tag, raw-text/RCDATA element
// content passes through unescaped, and text/attribute escaping covers
// only the characters HTML5 serialization requires (`&`, `<`, `>` in text;
// `&`, `"` in attribute values).
func WriteHTML(w io.Writer, s *SignalStream) error {
	bw := bufio.NewWriter(w)
	var rawDepth int
	for {
		sig, err, ok := s.Next()
		if err != nil {
			return errors.Wrap(err, "markup: writing HTML")
		}
		if !ok {
			return bw.Flush()
		}
		switch sig.Kind {
		case StartElement:
			writeStartTag(bw, sig, false)
			bw.WriteByte('>')
			if voidElements[sig.Name.Local] {
				continue
			}
			if rawTextElements[sig.Name.Local] || rcDataElements[sig.Name.Local] {
				rawDepth++
			}
		case EndElement:
			if voidElements[sig.Name.Local] {
				continue
			}
			bw.WriteString("</")
			bw.WriteString(sig.Name.Local)
			bw.WriteByte('>')
			if rawTextElements[sig.Name.Local] || rcDataElements[sig.Name.Local] {
				rawDepth--
			}
		case Text:
			for _, c := range sig.Chunks {
				if rawDepth > 0 {
					bw.WriteString(c)
				} else {
					writeEscapedText(bw, c, false)
				}
			}
		case Comment:
			bw.WriteString("<!--")
			bw.WriteString(sig.CommentText)
			bw.WriteString("-->")
		case Doctype:
			bw.WriteString("<!DOCTYPE ")
			bw.WriteString(sig.DoctypeName)
			bw.WriteByte('>')
		case PI:
			// HTML has no processing instructions; §4.5 treats a stray PI
			// signal (possible only via a caller-constructed stream) as a
			// bogus comment, matching the tokenizer's own PI-in-HTML
			// recovery path.
			bw.WriteString("<!--?")
			bw.WriteString(sig.PITarget)
			bw.WriteByte(' ')
			bw.WriteString(sig.PIBody)
			bw.WriteString("-->")
		}
		if bw.Available() < 256 {
			if err := bw.Flush(); err != nil {
				return errors.Wrap(err, "markup: writing HTML")
			}
		}
	}
}

// WriteXML serializes a Signal stream back to well-formed XML 1.0 text
// (§4.5): every element is closed explicitly unless cfg.SelfClose folds a
// childless element into `<a/>` form, and attribute escaping additionally
// covers `'` as XML requires.
func WriteXML(cfg Config, w io.Writer, s *SignalStream) error {
	selfClose := cfg.SelfClose
	bw := bufio.NewWriter(w)
	var open []string
	pendingOpen := false
	flushPendingOpen := func() {
		if pendingOpen {
			bw.WriteByte('>')
			pendingOpen = false
		}
	}
	for {
		sig, err, ok := s.Next()
		if err != nil {
			return errors.Wrap(err, "markup: writing XML")
		}
		if !ok {
			flushPendingOpen()
			return bw.Flush()
		}
		switch sig.Kind {
		case XMLDecl:
			bw.WriteString("<?xml")
			if sig.XMLVersion != "" {
				bw.WriteString(` version="`)
				bw.WriteString(sig.XMLVersion)
				bw.WriteByte('"')
			}
			if sig.XMLEncoding != "" {
				bw.WriteString(` encoding="`)
				bw.WriteString(sig.XMLEncoding)
				bw.WriteByte('"')
			}
			if sig.XMLStandalone != nil {
				bw.WriteString(` standalone="`)
				if *sig.XMLStandalone {
					bw.WriteString("yes")
				} else {
					bw.WriteString("no")
				}
				bw.WriteByte('"')
			}
			bw.WriteString("?>")
		case StartElement:
			flushPendingOpen()
			writeStartTag(bw, sig, true)
			if selfClose {
				pendingOpen = true
			} else {
				bw.WriteByte('>')
			}
			open = append(open, sig.Name.Local)
		case EndElement:
			if pendingOpen && len(open) > 0 && open[len(open)-1] == sig.Name.Local {
				bw.WriteString("/>")
				pendingOpen = false
				open = open[:len(open)-1]
				continue
			}
			flushPendingOpen()
			bw.WriteString("</")
			bw.WriteString(sig.Name.Local)
			bw.WriteByte('>')
			if len(open) > 0 {
				open = open[:len(open)-1]
			}
		case Text:
			flushPendingOpen()
			for _, c := range sig.Chunks {
				writeEscapedText(bw, c, true)
			}
		case Comment:
			flushPendingOpen()
			bw.WriteString("<!--")
			bw.WriteString(sig.CommentText)
			bw.WriteString("-->")
		case PI:
			flushPendingOpen()
			bw.WriteString("<?")
			bw.WriteString(sig.PITarget)
			if sig.PIBody != "" {
				bw.WriteByte(' ')
				bw.WriteString(sig.PIBody)
			}
			bw.WriteString("?>")
		case Doctype:
			flushPendingOpen()
			bw.WriteString("<!DOCTYPE ")
			bw.WriteString(sig.DoctypeName)
			bw.WriteByte('>')
		}
		if bw.Available() < 256 {
			if err := bw.Flush(); err != nil {
				return errors.Wrap(err, "markup: writing XML")
			}
		}
	}
}

func writeStartTag(bw *bufio.Writer, sig Signal, xml bool) {
	bw.WriteByte('<')
	bw.WriteString(sig.Name.Local)
	for _, a := range sig.Attrs {
		bw.WriteByte(' ')
		bw.WriteString(a.Name.Local)
		bw.WriteString(`="`)
		writeEscapedAttr(bw, a.Value, xml)
		bw.WriteByte('"')
	}
}

func writeEscapedText(bw *bufio.Writer, s string, xml bool) {
	for _, r := range s {
		switch r {
		case '&':
			bw.WriteString("&amp;")
		case '<':
			bw.WriteString("&lt;")
		case '>':
			bw.WriteString("&gt;")
		default:
			bw.WriteRune(r)
		}
	}
	_ = xml // text escaping is identical for HTML and XML
}

func writeEscapedAttr(bw *bufio.Writer, s string, xml bool) {
	for _, r := range s {
		switch r {
		case '&':
			bw.WriteString("&amp;")
		case '"':
			bw.WriteString("&quot;")
		case '\'':
			if xml {
				bw.WriteString("&apos;")
			} else {
				bw.WriteRune(r)
			}
		default:
			bw.WriteRune(r)
		}
	}
}
