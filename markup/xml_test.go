package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func parseXMLAll(t *testing.T, xml string) []Signal {
	t.Helper()
	stream := ParseXML(Config{}, strings.NewReader(xml))
	sigs, err := stream.All()
	require.NoError(t, err)
	return sigs
}

func TestXMLWellFormedDocument(t *testing.T) {
	sigs := parseXMLAll(t, `<?xml version="1.0" encoding="UTF-8"?><root><child a="1">text</child></root>`)
	require.Equal(t, XMLDecl, sigs[0].Kind)
	require.Equal(t, "1.0", sigs[0].XMLVersion)
	require.Equal(t, "UTF-8", sigs[0].XMLEncoding)

	require.Equal(t, StartElement, sigs[1].Kind)
	require.Equal(t, "root", sigs[1].Name.Local)

	require.Equal(t, StartElement, sigs[2].Kind)
	require.Equal(t, "child", sigs[2].Name.Local)
	require.Len(t, sigs[2].Attrs, 1)
	require.Equal(t, "1", sigs[2].Attrs[0].Value)
}

func TestXMLSelfClosingElement(t *testing.T) {
	sigs := parseXMLAll(t, `<root><leaf/></root>`)
	var kinds []SignalKind
	var names []string
	for _, s := range sigs {
		kinds = append(kinds, s.Kind)
		names = append(names, s.Name.Local)
	}
	require.Equal(t, []SignalKind{StartElement, StartElement, EndElement, EndElement}, kinds)
	require.Equal(t, []string{"root", "leaf", "leaf", "root"}, names)
}

func TestXMLCDATASection(t *testing.T) {
	sigs := parseXMLAll(t, `<root><![CDATA[<not a tag>]]></root>`)
	var text string
	for _, s := range sigs {
		if s.Kind == Text {
			text += s.Text_()
		}
	}
	require.Equal(t, "<not a tag>", text)
}

func TestXMLPredefinedEntities(t *testing.T) {
	sigs := parseXMLAll(t, `<root>a &amp; b &lt; c</root>`)
	var text string
	for _, s := range sigs {
		if s.Kind == Text {
			text += s.Text_()
		}
	}
	require.Equal(t, "a & b < c", text)
}

func TestXMLSynthesizesMissingEndTagsAtEOF(t *testing.T) {
	var errs []ErrorKind
	stream := ParseXML(Config{Report: func(e *ParseError) error {
		errs = append(errs, e.Kind)
		return nil
	}}, strings.NewReader(`<root><child>text`))
	sigs, err := stream.All()
	require.NoError(t, err)

	var depth int
	for _, s := range sigs {
		switch s.Kind {
		case StartElement:
			depth++
		case EndElement:
			depth--
		}
	}
	require.Zero(t, depth)
	require.Contains(t, errs, UnexpectedEOF)
}

func TestXMLMismatchedEndTagRecovery(t *testing.T) {
	var errs []ErrorKind
	stream := ParseXML(Config{Report: func(e *ParseError) error {
		errs = append(errs, e.Kind)
		return nil
	}}, strings.NewReader(`<a><b>x</a>`))
	sigs, err := stream.All()
	require.NoError(t, err)
	require.Contains(t, errs, MisnestedTag)

	names := namesOf(sigs, EndElement)
	require.Equal(t, []string{"b", "a"}, names)
}

func TestXMLComment(t *testing.T) {
	sigs := parseXMLAll(t, `<root><!-- a comment --></root>`)
	require.Equal(t, Comment, sigs[1].Kind)
	require.Equal(t, " a comment ", sigs[1].CommentText)
}

func TestXMLProcessingInstruction(t *testing.T) {
	sigs := parseXMLAll(t, `<root><?target body text?></root>`)
	require.Equal(t, PI, sigs[1].Kind)
	require.Equal(t, "target", sigs[1].PITarget)
	require.Equal(t, "body text", sigs[1].PIBody)
}

func TestXMLDefaultNamespaceAppliesToUnprefixedElementsOnly(t *testing.T) {
	sigs := parseXMLAll(t, `<root xmlns="urn:example" a="1"><child/></root>`)
	require.Equal(t, "root", sigs[0].Name.Local)
	require.Equal(t, "1", sigs[0].Attrs[1].Value)
	require.Equal(t, NoNamespace, sigs[0].Attrs[1].Name.NS, "unprefixed attributes never take the default namespace")

	names := namesOf(sigs, StartElement)
	require.Equal(t, []string{"root", "child"}, names)
	require.Equal(t, NoNamespace, sigs[0].Name.NS, "no well-known URI means Config.Namespace (unset here) decides, falling back to NoNamespace")
}

func TestXMLPrefixedNamespaceResolvesViaWellKnownURI(t *testing.T) {
	sigs := parseXMLAll(t, `<svg:svg xmlns:svg="http://www.w3.org/2000/svg"><svg:rect/></svg:svg>`)
	require.Equal(t, SVGNamespace, sigs[0].Name.NS)
	require.Equal(t, "svg", sigs[0].Name.Local)
	require.Equal(t, SVGNamespace, sigs[1].Name.NS)
	require.Equal(t, "rect", sigs[1].Name.Local)
}

func TestXMLUnboundPrefixReportsBadNamespace(t *testing.T) {
	var errs []ErrorKind
	stream := ParseXML(Config{Report: func(e *ParseError) error {
		errs = append(errs, e.Kind)
		return nil
	}}, strings.NewReader(`<ns:root>text</ns:root>`))
	sigs, err := stream.All()
	require.NoError(t, err)
	require.Contains(t, errs, BadNamespace)
	require.Equal(t, NoNamespace, sigs[0].Name.NS)
}

func TestXMLNamespaceResolverFallback(t *testing.T) {
	sigs := ParseXML(Config{Namespace: func(prefix string) (Namespace, bool) {
		if prefix == "m" {
			return MathMLNamespace, true
		}
		return NoNamespace, false
	}}, strings.NewReader(`<m:math><m:mi/></m:math>`))
	all, err := sigs.All()
	require.NoError(t, err)
	require.Equal(t, MathMLNamespace, all[0].Name.NS)
	require.Equal(t, MathMLNamespace, all[1].Name.NS)
}

func TestXMLNamespaceScopeDoesNotLeakBetweenSiblings(t *testing.T) {
	sigs := parseXMLAll(t, `<root><a xmlns="urn:a"><inner/></a><b><inner/></b></root>`)
	var innerNS []Namespace
	for _, s := range sigs {
		if s.Kind == StartElement && s.Name.Local == "inner" {
			innerNS = append(innerNS, s.Name.NS)
		}
	}
	require.Len(t, innerNS, 2)
	require.Equal(t, NoNamespace, innerNS[1], "b's child must not inherit a's default namespace")
}
