package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func parseHTMLAll(t *testing.T, html string) []Signal {
	t.Helper()
	stream := ParseHTML(Config{}, strings.NewReader(html))
	sigs, err := stream.All()
	require.NoError(t, err)
	return sigs
}

func namesOf(sigs []Signal, kind SignalKind) []string {
	var out []string
	for _, s := range sigs {
		if s.Kind == kind {
			out = append(out, s.Name.Local)
		}
	}
	return out
}

func TestTreeConstructorImpliesHTMLHeadBody(t *testing.T) {
	sigs := parseHTMLAll(t, "<p>hi</p>")
	starts := namesOf(sigs, StartElement)
	require.Equal(t, []string{"html", "head", "body", "p"}, starts)
}

func TestTreeConstructorEveryStartHasMatchingEnd(t *testing.T) {
	sigs := parseHTMLAll(t, "<div><p>a<b>b</div>")
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
}

func TestTreeConstructorParagraphAutoClose(t *testing.T) {
	sigs := parseHTMLAll(t, "<p>one<p>two")
	starts := namesOf(sigs, StartElement)
	count := 0
	for _, n := range starts {
		if n == "p" {
			count++
		}
	}
	require.Equal(t, 2, count)
}

func TestTreeConstructorFormattingReconstruction(t *testing.T) {
	// </b> arrives while <i> is still open inside it: the adoption agency
	// closes both, and the still-active <i> is reconstructed around the
	// subsequent text.
	sigs := parseHTMLAll(t, "<b>bold<i>both</b>italic</i>")
	starts := namesOf(sigs, StartElement)
	require.Contains(t, starts, "b")
	require.Contains(t, starts, "i")
	// reconstruction must re-open a second <i> for the text after </b>
	count := 0
	for _, n := range starts {
		if n == "i" {
			count++
		}
	}
	require.GreaterOrEqual(t, count, 2)
}

func TestTreeConstructorTableFosterParenting(t *testing.T) {
	sigs := parseHTMLAll(t, "<table>foo<tr><td>bar</td></tr></table>")
	starts := namesOf(sigs, StartElement)
	require.Contains(t, starts, "table")
	require.Contains(t, starts, "tr")
	require.Contains(t, starts, "td")
}

func TestTreeConstructorDoctypeQuirksMode(t *testing.T) {
	stream := ParseHTML(Config{}, strings.NewReader(`<!DOCTYPE html SYSTEM "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd">`))
	sigs, err := stream.All()
	require.NoError(t, err)
	require.Equal(t, Doctype, sigs[0].Kind)
}

func TestTreeConstructorUnknownEndTagReported(t *testing.T) {
	var errs []ErrorKind
	stream := ParseHTML(Config{Report: func(e *ParseError) error {
		errs = append(errs, e.Kind)
		return nil
	}}, strings.NewReader("<p>hi</xyz></p>"))
	_, err := stream.All()
	require.NoError(t, err)
	require.Contains(t, errs, UnmatchedEndTag)
}

func TestTreeConstructorSelectSkipsFormatting(t *testing.T) {
	sigs := parseHTMLAll(t, "<select><option>a</option><option>b</option></select>")
	starts := namesOf(sigs, StartElement)
	require.Contains(t, starts, "select")
	count := 0
	for _, n := range starts {
		if n == "option" {
			count++
		}
	}
	require.Equal(t, 2, count)
}

func TestTreeConstructorReportStopUnwindsStream(t *testing.T) {
	stream := ParseHTML(Config{Report: func(e *ParseError) error {
		return ErrStop
	}}, strings.NewReader("<p>hi</xyz>"))
	_, err := stream.All()
	require.ErrorIs(t, err, ErrStop)
}
