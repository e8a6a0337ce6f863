package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func drainRunes(in *InputStream) string {
	var b strings.Builder
	for {
		r, ok := in.next()
		if !ok {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestInputStreamExplicitEncodingWins(t *testing.T) {
	// declares utf-8 via meta but caller passes an explicit override
	_, det, err := NewHTMLInputStream(strings.NewReader(`<meta charset="utf-8">hi`), "iso-8859-1", nil)
	require.NoError(t, err)
	require.Equal(t, "explicit", det.Source)
}

func TestInputStreamBOMDetected(t *testing.T) {
	in, det, err := NewHTMLInputStream(strings.NewReader("\xEF\xBB\xBFhello"), "", nil)
	require.NoError(t, err)
	require.Equal(t, "bom", det.Source)
	require.Equal(t, "hello", drainRunes(in))
}

func TestInputStreamMetaCharsetDetected(t *testing.T) {
	_, det, err := NewHTMLInputStream(strings.NewReader(`<html><head><meta charset="windows-1252"></head></html>`), "", nil)
	require.NoError(t, err)
	require.Equal(t, "meta", det.Source)
}

func TestInputStreamPlainASCIIDecodesCleanly(t *testing.T) {
	// no BOM, no declared charset: whatever the sniffer falls back to must
	// still decode plain ASCII losslessly.
	in, _, err := NewHTMLInputStream(strings.NewReader("<p>plain ascii</p>"), "", nil)
	require.NoError(t, err)
	require.Equal(t, "<p>plain ascii</p>", drainRunes(in))
}

func TestInputStreamCRLFNormalizesToLF(t *testing.T) {
	in, _, err := NewHTMLInputStream(strings.NewReader("a\r\nb\rc\nd"), "utf-8", nil)
	require.NoError(t, err)
	require.Equal(t, "a\nb\nc\nd", drainRunes(in))
}

func TestInputStreamNULBecomesReplacementChar(t *testing.T) {
	var errs []ErrorKind
	in, _, err := NewHTMLInputStream(strings.NewReader("a\x00b"), "utf-8", func(e *ParseError) error {
		errs = append(errs, e.Kind)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "a�b", drainRunes(in))
	require.Contains(t, errs, UnexpectedCharacter)
}

func TestInputStreamPushBack(t *testing.T) {
	in, _, err := NewHTMLInputStream(strings.NewReader("xy"), "utf-8", nil)
	require.NoError(t, err)

	r, ok := in.next()
	require.True(t, ok)
	require.Equal(t, 'x', r)

	in.pushBack(r)
	r2, ok := in.next()
	require.True(t, ok)
	require.Equal(t, 'x', r2)

	r3, ok := in.next()
	require.True(t, ok)
	require.Equal(t, 'y', r3)
}

func TestInputStreamLineColumnTracking(t *testing.T) {
	in, _, err := NewHTMLInputStream(strings.NewReader("ab\ncd"), "utf-8", nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		in.next()
	}
	loc := in.location()
	require.Equal(t, 2, loc.Line)
	require.Equal(t, 1, loc.Column)
}

func TestXMLInputStreamDeclarationEncoding(t *testing.T) {
	_, det, err := NewXMLInputStream(strings.NewReader(`<?xml version="1.0" encoding="ISO-8859-1"?><root/>`), "", nil)
	require.NoError(t, err)
	require.Equal(t, "declaration", det.Source)
}

func TestXMLInputStreamDefaultsToUTF8(t *testing.T) {
	_, det, err := NewXMLInputStream(strings.NewReader(`<root/>`), "", nil)
	require.NoError(t, err)
	require.Equal(t, "default", det.Source)
	require.Equal(t, "utf-8", det.Name)
}
