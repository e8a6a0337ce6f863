package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteHTMLRoundTripsVoidAndText(t *testing.T) {
	in := "<div>a &amp; b<br>after</div>"
	stream := ParseHTML(Config{}, strings.NewReader(in))
	var buf strings.Builder
	require.NoError(t, WriteHTML(&buf, stream))

	out := buf.String()
	require.Contains(t, out, "<br>")
	require.NotContains(t, out, "</br>")
	require.Contains(t, out, "a &amp; b")
}

func TestWriteHTMLRawTextPassthrough(t *testing.T) {
	in := "<script>if (a < b) { alert('x'); }</script>"
	stream := ParseHTML(Config{}, strings.NewReader(in))
	var buf strings.Builder
	require.NoError(t, WriteHTML(&buf, stream))
	require.Contains(t, buf.String(), "if (a < b)")
}

func TestWriteXMLSelfCloseOption(t *testing.T) {
	stream := ParseXML(Config{}, strings.NewReader(`<root><leaf/></root>`))
	var buf strings.Builder
	require.NoError(t, WriteXML(Config{SelfClose: true}, &buf, stream))
	require.Equal(t, `<root><leaf/></root>`, buf.String())
}

func TestWriteXMLExplicitCloseOption(t *testing.T) {
	stream := ParseXML(Config{}, strings.NewReader(`<root><leaf/></root>`))
	var buf strings.Builder
	require.NoError(t, WriteXML(Config{SelfClose: false}, &buf, stream))
	require.Equal(t, `<root><leaf></leaf></root>`, buf.String())
}

func TestWriteXMLAttributeEscaping(t *testing.T) {
	stream := ParseXML(Config{}, strings.NewReader(`<root a="x&amp;y"></root>`))
	var buf strings.Builder
	require.NoError(t, WriteXML(Config{}, &buf, stream))
	require.Contains(t, buf.String(), `a="x&amp;y"`)
}
