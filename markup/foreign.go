package markup

import "strings"

// svgTagNameAdjustments restores the camelCase SVG tag names the tokenizer's
// blanket lowercasing destroyed (§4.2 lowercases every tag name regardless
// of namespace, since tokenization happens before foreign content is even
// recognized). Table per the WHATWG "adjust SVG tag names" algorithm.
var svgTagNameAdjustments = map[string]string{
	"altglyph":            "altGlyph",
	"altglyphdef":         "altGlyphDef",
	"altglyphitem":        "altGlyphItem",
	"animatecolor":        "animateColor",
	"animatemotion":       "animateMotion",
	"animatetransform":    "animateTransform",
	"clippath":            "clipPath",
	"feblend":             "feBlend",
	"fecolormatrix":       "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer",
	"fecomposite":         "feComposite",
	"feconvolvematrix":    "feConvolveMatrix",
	"fediffuselighting":   "feDiffuseLighting",
	"fedisplacementmap":   "feDisplacementMap",
	"fedistantlight":      "feDistantLight",
	"fedropshadow":        "feDropShadow",
	"feflood":             "feFlood",
	"fefunca":             "feFuncA",
	"fefuncb":             "feFuncB",
	"fefuncg":             "feFuncG",
	"fefuncr":             "feFuncR",
	"fegaussianblur":      "feGaussianBlur",
	"feimage":             "feImage",
	"femerge":             "feMerge",
	"femergenode":         "feMergeNode",
	"femorphology":        "feMorphology",
	"feoffset":            "feOffset",
	"fepointlight":        "fePointLight",
	"fespecularlighting":  "feSpecularLighting",
	"fespotlight":         "feSpotLight",
	"fetile":              "feTile",
	"feturbulence":        "feTurbulence",
	"foreignobject":       "foreignObject",
	"glyphref":            "glyphRef",
	"lineargradient":      "linearGradient",
	"radialgradient":      "radialGradient",
	"textpath":            "textPath",
}

// svgAttrNameAdjustments restores camelCase attribute names for the same
// reason as svgTagNameAdjustments, applied only to elements in the SVG
// namespace. Table per the WHATWG "adjust SVG attributes" algorithm.
var svgAttrNameAdjustments = map[string]string{
	"attributename":             "attributeName",
	"attributetype":             "attributeType",
	"basefrequency":             "baseFrequency",
	"baseprofile":               "baseProfile",
	"calcmode":                  "calcMode",
	"clippathunits":             "clipPathUnits",
	"contentscripttype":         "contentScriptType",
	"contentstyletype":          "contentStyleType",
	"diffuseconstant":           "diffuseConstant",
	"edgemode":                  "edgeMode",
	"externalresourcesrequired": "externalResourcesRequired",
	"filterres":                 "filterRes",
	"filterunits":               "filterUnits",
	"glyphref":                  "glyphRef",
	"gradienttransform":         "gradientTransform",
	"gradientunits":             "gradientUnits",
	"kernelmatrix":              "kernelMatrix",
	"kernelunitlength":          "kernelUnitLength",
	"keypoints":                 "keyPoints",
	"keysplines":                "keySplines",
	"keytimes":                  "keyTimes",
	"lengthadjust":              "lengthAdjust",
	"limitingconeangle":         "limitingConeAngle",
	"markerheight":              "markerHeight",
	"markerunits":               "markerUnits",
	"markerwidth":               "markerWidth",
	"maskcontentunits":          "maskContentUnits",
	"maskunits":                 "maskUnits",
	"numoctaves":                "numOctaves",
	"pathlength":                "pathLength",
	"patterncontentunits":       "patternContentUnits",
	"patterntransform":          "patternTransform",
	"patternunits":              "patternUnits",
	"pointsatx":                 "pointsAtX",
	"pointsaty":                 "pointsAtY",
	"pointsatz":                 "pointsAtZ",
	"preservealpha":             "preserveAlpha",
	"preserveaspectratio":       "preserveAspectRatio",
	"primitiveunits":            "primitiveUnits",
	"refx":                      "refX",
	"refy":                      "refY",
	"repeatcount":               "repeatCount",
	"repeatdur":                 "repeatDur",
	"requiredextensions":        "requiredExtensions",
	"requiredfeatures":          "requiredFeatures",
	"specularconstant":          "specularConstant",
	"specularexponent":          "specularExponent",
	"spreadmethod":              "spreadMethod",
	"startoffset":               "startOffset",
	"stddeviation":              "stdDeviation",
	"stitchtiles":               "stitchTiles",
	"surfacescale":              "surfaceScale",
	"systemlanguage":            "systemLanguage",
	"tablevalues":               "tableValues",
	"targetx":                   "targetX",
	"targety":                   "targetY",
	"textlength":                "textLength",
	"viewbox":                   "viewBox",
	"viewtarget":                "viewTarget",
	"xchannelselector":          "xChannelSelector",
	"ychannelselector":          "yChannelSelector",
	"zoomandpan":                "zoomAndPan",
}

// foreignAttrNamespaces maps the qualified, already-lowercased attribute
// name the tokenizer produced to the namespace it binds to (per the WHATWG
// "adjust foreign attributes" algorithm); Local is rewritten to drop the
// prefix. Applies inside both the SVG and MathML namespaces.
var foreignAttrNamespaces = map[string]Namespace{
	"xlink:actuate": XLinkNamespace,
	"xlink:arcrole": XLinkNamespace,
	"xlink:href":    XLinkNamespace,
	"xlink:role":    XLinkNamespace,
	"xlink:show":    XLinkNamespace,
	"xlink:title":   XLinkNamespace,
	"xlink:type":    XLinkNamespace,
	"xml:base":      XMLNamespace,
	"xml:lang":      XMLNamespace,
	"xml:space":     XMLNamespace,
	"xmlns":         XMLNSNamespace,
	"xmlns:xlink":   XMLNSNamespace,
}

// htmlBreakoutTags is the WHATWG "parsing tokens in foreign content" list of
// start tags that force a return to HTML insertion, regardless of which
// foreign namespace is currently open. "font" only breaks out when carrying
// one of the three attributes checked by hasBreakoutFontAttr.
var htmlBreakoutTags = map[string]bool{
	"b": true, "big": true, "blockquote": true, "body": true, "br": true,
	"center": true, "code": true, "dd": true, "div": true, "dl": true,
	"dt": true, "em": true, "embed": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "head": true, "hr": true, "i": true,
	"img": true, "li": true, "listing": true, "menu": true, "meta": true,
	"nav": true, "ol": true, "p": true, "pre": true, "ruby": true, "s": true,
	"small": true, "span": true, "strong": true, "strike": true, "sub": true,
	"sup": true, "table": true, "tt": true, "u": true, "ul": true, "var": true,
}

func hasBreakoutFontAttr(attrs []Attribute) bool {
	for _, a := range attrs {
		if a.Name.Local == "color" || a.Name.Local == "face" || a.Name.Local == "size" {
			return true
		}
	}
	return false
}

func isBreakoutStartTag(name string, attrs []Attribute) bool {
	if htmlBreakoutTags[name] {
		return true
	}
	return name == "font" && hasBreakoutFontAttr(attrs)
}

var mathMLTextIntegrationNames = map[string]bool{
	"mi": true, "mo": true, "mn": true, "ms": true, "mtext": true,
}

// classifyForeignElement sets the two integration-point flags §4.3's
// foreign-content dispatcher consults, at the point a foreign element is
// inserted (cheaper than recomputing them on every token).
func classifyForeignElement(e *openElement, attrs []Attribute) {
	switch {
	case e.Name.NS == MathMLNamespace && mathMLTextIntegrationNames[e.Name.Local]:
		e.isMathMLTextIntegrationPoint = true
	case e.Name.NS == MathMLNamespace && e.Name.Local == "annotation-xml":
		for _, a := range attrs {
			if a.Name.Local == "encoding" && (foldEqual(a.Value, "text/html") || foldEqual(a.Value, "application/xhtml+xml")) {
				e.isHTMLIntegrationPoint = true
			}
		}
	case e.Name.NS == SVGNamespace && (e.Name.Local == "foreignObject" || e.Name.Local == "desc" || e.Name.Local == "title"):
		e.isHTMLIntegrationPoint = true
	}
}

// adjustSVGAttributes case-corrects attribute names for elements in the SVG
// namespace (§4.3's "adjust SVG attributes"), leaving unrecognized names
// untouched.
func adjustSVGAttributes(attrs []Attribute) []Attribute {
	out := make([]Attribute, len(attrs))
	for i, a := range attrs {
		if adj, ok := svgAttrNameAdjustments[a.Name.Local]; ok {
			a.Name.Local = adj
		}
		out[i] = a
	}
	return out
}

// adjustForeignAttributes namespaces xlink:/xml:/xmlns-prefixed attributes
// on a foreign element (§4.3's "adjust foreign attributes"); every other
// attribute keeps NoNamespace/HTMLNamespace and its qualified name verbatim.
func adjustForeignAttributes(attrs []Attribute) []Attribute {
	out := make([]Attribute, len(attrs))
	for i, a := range attrs {
		if ns, ok := foreignAttrNamespaces[a.Name.Local]; ok {
			local := a.Name.Local
			if j := strings.IndexByte(local, ':'); j != -1 {
				local = local[j+1:]
			}
			a.Name = NewName(ns, local)
		}
		out[i] = a
	}
	return out
}

// foreignContentHandler implements §4.3's "parsing tokens in foreign
// content" (WHATWG §13.2.6.5), reached only while the tree construction
// dispatcher (inForeignContent) finds the current node outside the HTML
// namespace and not at an integration point.
func (tc *treeBuilder) foreignContentHandler(tok Token) bool {
	switch {
	case tok.Type == characterToken && tok.Data == "\x00":
		tc.reportErr(UnexpectedCharacter, tok.Loc, "\x00")
		tc.insertCharacter("�", tok.Loc)
		return false
	case tok.Type == characterToken:
		tc.insertCharacter(tok.Data, tok.Loc)
		if !isWhitespaceToken(tok) {
			tc.framesetOK = false
		}
		return false
	case tok.Type == commentToken:
		tc.emitComment(tok.Data, tok.Loc)
		return false
	case tok.Type == docTypeToken:
		tc.reportErr(BadDoctype, tok.Loc, tok.Name)
		return false
	case tok.Type == startTagToken && isBreakoutStartTag(tok.Name, tok.Attrs):
		tc.reportErr(UnmatchedStartTag, tok.Loc, tok.Name)
		for tc.open.current() != nil {
			cur := tc.open.current()
			if cur.Name.NS == HTMLNamespace || cur.isHTMLIntegrationPoint || cur.isMathMLTextIntegrationPoint {
				break
			}
			e := tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
		}
		return true
	case tok.Type == startTagToken:
		cur := tc.open.current()
		ns := HTMLNamespace
		if cur != nil {
			ns = cur.Name.NS
		}
		name := tok.Name
		attrs := tok.Attrs
		if ns == SVGNamespace {
			if adj, ok := svgTagNameAdjustments[name]; ok {
				name = adj
			}
			attrs = adjustSVGAttributes(attrs)
		}
		attrs = adjustForeignAttributes(attrs)
		e := tc.open.push(NewName(ns, name), attrs)
		classifyForeignElement(e, attrs)
		tc.emitStartElement(e, tok.Loc)
		if tok.SelfClosing {
			tc.open.pop()
			tc.emitEndElement(e, tok.Loc)
		}
		return false
	case tok.Type == endTagToken:
		return tc.foreignEndTag(tok)
	default:
		return false
	}
}

// foreignEndTag is the generic end-tag branch of §13.2.6.5: walk down from
// the current node, case-insensitively (SVG's case-adjusted tag names mean
// the token's own name, already lowercased by the tokenizer, won't match
// byte-for-byte), popping until a match is found and closed, or until an
// HTML-namespace node is reached, in which case the token is reprocessed
// under the current (HTML) insertion mode instead.
func (tc *treeBuilder) foreignEndTag(tok Token) bool {
	for i := len(tc.open.entries) - 1; i > 0; i-- {
		node := tc.open.entries[i]
		if strings.EqualFold(node.Name.Local, tok.Name) {
			for len(tc.open.entries) > i {
				e := tc.open.pop()
				tc.emitEndElement(e, tok.Loc)
			}
			return false
		}
		if tc.open.entries[i-1].Name.NS == HTMLNamespace {
			break
		}
	}
	return true
}

// inForeignContent implements the "tree construction dispatcher" of §4.3:
// most tokens route through the named insertion mode as usual, but once an
// SVG/MathML element is open (and the current node isn't an integration
// point back into HTML), tokens instead go through foreignContentHandler.
// The "adjusted current node" the WHATWG algorithm refers to (which
// substitutes the fragment-parsing context element when the stack holds
// exactly one node) is approximated here by the plain current node; fragment
// parsing rooted directly inside foreign content is not exercised by this
// package's Config.Context (see DESIGN.md).
func (tc *treeBuilder) inForeignContent(tok Token) bool {
	cur := tc.open.current()
	if cur == nil || cur.Name.NS == HTMLNamespace {
		return false
	}
	if cur.isMathMLTextIntegrationPoint {
		if tok.Type == startTagToken && tok.Name != "mglyph" && tok.Name != "malignmark" {
			return false
		}
		if tok.Type == characterToken {
			return false
		}
	}
	if cur.Name.NS == MathMLNamespace && cur.Name.Local == "annotation-xml" && tok.Type == startTagToken && tok.Name == "svg" {
		return false
	}
	if cur.isHTMLIntegrationPoint && (tok.Type == startTagToken || tok.Type == characterToken) {
		return false
	}
	return true
}
