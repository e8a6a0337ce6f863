package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestTokenizer(t *testing.T, html string) *HTMLTokenizer {
	t.Helper()
	in, _, err := NewHTMLInputStream(strings.NewReader(html), "utf-8", nil)
	require.NoError(t, err)
	return NewHTMLTokenizer(in, nil, nil)
}

func collectTokens(tok *HTMLTokenizer) []Token {
	var out []Token
	for {
		tk, ok := tok.Next()
		out = append(out, tk)
		if !ok || tk.Type == eofToken {
			break
		}
	}
	return out
}

type attrAccuracyTest struct {
	inHTML string
	attrs  map[string]string
}

var attrAccuracyTests = []attrAccuracyTest{
	{"<head></head>", map[string]string{}},
	{"<script src='123' onload='test'></script>", map[string]string{
		"src": "123", "onload": "test",
	}},
	{"<script src='123' src='456'></script>", map[string]string{
		"src": "123",
	}},
	{"<script src=123 onload=test></script>", map[string]string{
		"src": "123", "onload": "test",
	}},
	{"<script src></script>", map[string]string{
		"src": "",
	}},
	{"<script ABC=123></script>", map[string]string{
		"abc": "123",
	}},
	{"<script abc='\x00123'></script>", map[string]string{
		"abc": "�123",
	}},
}

func TestTokenizerAttributeAccuracy(t *testing.T) {
	for _, tt := range attrAccuracyTests {
		tt := tt
		t.Run(tt.inHTML, func(t *testing.T) {
			tok := newTestTokenizer(t, tt.inHTML)
			var found *Token
			for {
				tk, ok := tok.Next()
				if tk.Type == startTagToken {
					cp := tk
					found = &cp
					break
				}
				if !ok {
					break
				}
			}
			require.NotNil(t, found)
			got := map[string]string{}
			for _, a := range found.Attrs {
				got[a.Name.Local] = a.Value
			}
			require.Equal(t, tt.attrs, got)
		})
	}
}

func TestTokenizerEmitsEOFExactlyOnce(t *testing.T) {
	tok := newTestTokenizer(t, "<p>hi</p>")
	toks := collectTokens(tok)
	require.Equal(t, eofToken, toks[len(toks)-1].Type)

	count := 0
	for _, tk := range toks {
		if tk.Type == eofToken {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestTokenizerTagNamesLowercased(t *testing.T) {
	tok := newTestTokenizer(t, "<DIV><SPAN></SPAN></DIV>")
	toks := collectTokens(tok)
	require.Equal(t, "div", toks[0].Name)
	require.Equal(t, "span", toks[1].Name)
}

func TestTokenizerCharacterReferenceInData(t *testing.T) {
	tok := newTestTokenizer(t, "a&amp;b")
	toks := collectTokens(tok)
	var data strings.Builder
	for _, tk := range toks {
		if tk.Type == characterToken {
			data.WriteString(tk.Data)
		}
	}
	require.Equal(t, "a&b", data.String())
}

func TestTokenizerNumericCharacterReferenceOverride(t *testing.T) {
	tok := newTestTokenizer(t, "&#x80;")
	toks := collectTokens(tok)
	require.Equal(t, "€", toks[0].Data)
}

func TestTokenizerSelfClosingTag(t *testing.T) {
	tok := newTestTokenizer(t, "<br/>")
	toks := collectTokens(tok)
	require.Equal(t, startTagToken, toks[0].Type)
	require.True(t, toks[0].SelfClosing)
}

func TestTokenizerCommentState(t *testing.T) {
	tok := newTestTokenizer(t, "<!-- hello -->")
	toks := collectTokens(tok)
	require.Equal(t, commentToken, toks[0].Type)
	require.Equal(t, " hello ", toks[0].Data)
}

func TestTokenizerDoctypeQuirksFields(t *testing.T) {
	tok := newTestTokenizer(t, "<!DOCTYPE html>")
	toks := collectTokens(tok)
	require.Equal(t, docTypeToken, toks[0].Type)
	require.Equal(t, "html", toks[0].Name)
	require.Equal(t, missingIdentifier, toks[0].PublicIdentifier)
}

func TestTokenizerRawTextDoesNotInterpretTags(t *testing.T) {
	tok := newTestTokenizer(t, "p { color: red } </style>")
	tok.SwitchToRAWTEXT()
	tok.SetLastStartTag("style")

	toks := collectTokens(tok)
	require.Equal(t, characterToken, toks[0].Type)
	// each character token carries one rune, so join them before checking
	var text strings.Builder
	for _, tk := range toks {
		if tk.Type == characterToken {
			text.WriteString(tk.Data)
		}
	}
	require.Contains(t, text.String(), "color")
}
