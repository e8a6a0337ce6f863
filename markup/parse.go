package markup

import "io"

// ParseHTML wires the four lazy pull stages of §2 (byte source → encoding
// detector/decoder → tokenizer → tree construction) into one SignalStream,
// per §6's external interface.
func ParseHTML(cfg Config, r io.Reader) *SignalStream {
	report := cfg.wrapReport()
	in, _, err := NewHTMLInputStream(r, cfg.Encoding, report)
	if err != nil {
		return newSignalStream(func() (Signal, error, bool) { return Signal{}, err, false })
	}

	tok := NewHTMLTokenizer(in, report, cfg.logger())
	if cfg.Entity != nil {
		tok.SetEntityResolver(cfg.Entity)
	}

	tc := NewHTMLTreeBuilder(tok, report, cfg.logger())
	tc.scripting = cfg.Scripting
	if cfg.Context != nil {
		applyFragmentContext(tc, *cfg.Context)
	}

	return newSignalStream(tc.Next)
}

// ParseXML wires the XML-side stages: input stream → xmlTokenizer →
// xmlNestingTracker → SignalStream (§4.4).
func ParseXML(cfg Config, r io.Reader) *SignalStream {
	report := cfg.wrapReport()
	in, _, err := NewXMLInputStream(r, cfg.Encoding, report)
	if err != nil {
		return newSignalStream(func() (Signal, error, bool) { return Signal{}, err, false })
	}

	tok := newXMLTokenizer(in, report, cfg.logger())
	nt := newXMLNestingTracker(tok, report, cfg.Namespace)
	return newSignalStream(nt.Next)
}

// applyFragmentContext implements a simplified version of the WHATWG
// "parsing HTML fragments" algorithm (§6 ContextElement): it seeds the
// open-elements stack with a synthetic "html" root and the context element
// above it, neither emitted as a Start_element, and resets the insertion
// mode as if that element were already
// open, skipping the Initial/BeforeHTML/BeforeHead modes a full document
// parse would otherwise require.
func applyFragmentContext(tc *treeBuilder, ctx ContextElement) {
	tc.fragment = true
	tc.open.push(NewName(ctx.Namespace, "html"), nil)
	tc.contextElem = tc.open.push(NewName(ctx.Namespace, ctx.Name), nil)
	tc.resetInsertionModeAppropriately()

	switch ctx.Name {
	case "title", "textarea":
		tc.tok.SwitchToRCDATA()
		tc.tok.SetLastStartTag(ctx.Name)
		tc.originalMode = tc.mode
		tc.mode = textMode
	case "style", "xmp", "iframe", "noembed", "noframes", "script":
		tc.tok.SwitchToRAWTEXT()
		tc.tok.SetLastStartTag(ctx.Name)
		tc.originalMode = tc.mode
		tc.mode = textMode
	case "plaintext":
		tc.tok.SwitchToPLAINTEXT()
	}
}
