package markup

import "strings"

// QuirksMode is the result of the DOCTYPE quirks-mode detection algorithm
// (§6 "HTML5 public-identifier quirks table").
type QuirksMode uint8

const (
	NoQuirks QuirksMode = iota
	Quirks
	LimitedQuirks
)

const (
	w30DTDW3HTMLStrict3En           = "-//W3O//DTD W3 HTML Strict 3.0//EN//"
	w3cDTDHTML4TransitionalEN       = "-/W3C/DTD HTML 4.0 Transitional/EN"
	ibmxhtml                        = "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd"
	silmarilDTDHTMLPro              = "+//Silmaril//dtd html Pro v0r11 19970101//"
	dTDHTML3asWedit                 = "-//AS//DTD HTML 3.0 asWedit + extensions//"
	advaSoftDTDHTML3                = "-//AdvaSoft Ltd//DTD HTML 3.0 asWedit + extensions//"
	iETFDTDHTML2Level1              = "-//IETF//DTD HTML 2.0 Level 1//"
	iETFDTDHTML2Level2              = "-//IETF//DTD HTML 2.0 Level 2//"
	iETFDTDHTML2StrictLevel1        = "-//IETF//DTD HTML 2.0 Strict Level 1//"
	iETFDTDHTML2StrictLevel2        = "-//IETF//DTD HTML 2.0 Strict Level 2//"
	iETFDTDHTML2Strict              = "-//IETF//DTD HTML 2.0 Strict//"
	iETFDTDHTML2                    = "-//IETF//DTD HTML 2.0//"
	iIETFDTDHTML2E                  = "-//IETF//DTD HTML 2.1E//"
	iETFDTDHTML30                   = "-//IETF//DTD HTML 3.0//"
	iETFDTDHTML32Final              = "-//IETF//DTD HTML 3.2 Final//"
	iETFDTDHTML32                   = "-//IETF//DTD HTML 3.2//"
	iETFDTDHTML3                    = "-//IETF//DTD HTML 3//"
	iETFDTDHTMLLevel0               = "-//IETF//DTD HTML Level 0//"
	iETFDTDHTMLLevel1               = "-//IETF//DTD HTML Level 1//"
	iETFDTDHTMLLevel2               = "-//IETF//DTD HTML Level 2//"
	iETFDTDHTMLLevel3               = "-//IETF//DTD HTML Level 3//"
	iETFDTDHTMLStrictLevel0         = "-//IETF//DTD HTML Strict Level 0//"
	iETFDTDHTMLStrictLevel1         = "-//IETF//DTD HTML Strict Level 1//"
	iETFDTDHTMLStrictLevel2         = "-//IETF//DTD HTML Strict Level 2//"
	iETFDTDHTMLStrictLevel3         = "-//IETF//DTD HTML Strict Level 3//"
	iETFDTDHTMLStrict               = "-//IETF//DTD HTML Strict//"
	iETFDTDHTML                     = "-//IETF//DTD HTML//"
	metriusDTDMetriusPresentational = "-//Metrius//DTD Metrius Presentational//"
	msDTDIE2HTMLStrict              = "-//Microsoft//DTD Internet Explorer 2.0 HTML Strict//"
	msDTDIE2HTML                    = "-//Microsoft//DTD Internet Explorer 2.0 HTML//"
	msDTDIE2Tables                  = "-//Microsoft//DTD Internet Explorer 2.0 Tables//"
	msDTDIE3HTMLStrict              = "-//Microsoft//DTD Internet Explorer 3.0 HTML Strict//"
	msDTDIE3HTML                    = "-//Microsoft//DTD Internet Explorer 3.0 HTML//"
	msDTDIE3Tables                  = "-//Microsoft//DTD Internet Explorer 3.0 Tables//"
	netscapeDTDHTML                 = "-//Netscape Comm. Corp.//DTD HTML//"
	netscapeDTDStrictHTML           = "-//Netscape Comm. Corp.//DTD Strict HTML//"
	oreillyDTDHTML2                 = "-//O'Reilly and Associates//DTD HTML 2.0//"
	oreillyDTDHTMLExtended1         = "-//O'Reilly and Associates//DTD HTML Extended 1.0//"
	oreillyDTDHTMLExtendedRelaxed1  = "-//O'Reilly and Associates//DTD HTML Extended Relaxed 1.0//"
	sqDTDHTML2HoTMetaLExtensions    = "-//SQ//DTD HTML 2.0 HoTMetaL + extensions//"
	softQuadDTDHoTMetaLPRO6         = "-//SoftQuad Software//DTD HoTMetaL PRO 6.0::19990601::extensions to HTML 4.0//"
	softQuadDTDHoTMetaLPRO4         = "-//SoftQuad//DTD HoTMetaL PRO 4.0::19971010::extensions to HTML 4.0//"
	spyglassDTDHTML2Extended        = "-//Spyglass//DTD HTML 2.0 Extended//"
	sunDTDHotJavaHTML               = "-//Sun Microsystems Corp.//DTD HotJava HTML//"
	sunDTDHotJavaStrictHTML         = "-//Sun Microsystems Corp.//DTD HotJava Strict HTML//"
	w3cDTDHTML31                    = "-//W3C//DTD HTML 3 1995-03-24//"
	w3cDTDHTML32Draft               = "-//W3C//DTD HTML 3.2 Draft//"
	w3cDTDHTML32Final               = "-//W3C//DTD HTML 3.2 Final//"
	w3cDTDHTML32                    = "-//W3C//DTD HTML 3.2//"
	w3cDTDHTML32SDraft              = "-//W3C//DTD HTML 3.2S Draft//"
	w3cDTDHTML4Frameset             = "-//W3C//DTD HTML 4.0 Frameset//"
	w3cDTDHTML4Transitional         = "-//W3C//DTD HTML 4.0 Transitional//"
	w3cDTDHTML401Frameset           = "-//W3C//DTD HTML 4.01 Frameset//"
	w3cDTDHTML401Transitional       = "-//W3C//DTD HTML 4.01 Transitional//"
	w3cDTDHTMLExperimental1996      = "-//W3C//DTD HTML Experimental 19960712//"
	w3cDTDHTMLExperimental9704      = "-//W3C//DTD HTML Experimental 970421//"
	w3cDTDXHTML1Frameset            = "-//W3C//DTD XHTML 1.0 Frameset//"
	w3cDTDXHTML1Transitional        = "-//W3C//DTD XHTML 1.0 Transitional//"
	w3cDTDW3HTML                    = "-//W3C//DTD W3 HTML//"
	w3cDTDW3HTML3                   = "-//W3O//DTD W3 HTML 3.0//"
	webTechsDTDMozillaHTML2         = "-//WebTechs//DTD Mozilla HTML 2.0//"
	webTechsDTDMozillaHTML          = "-//WebTechs//DTD Mozilla HTML//"
)

var knownPublicIdentifiers = []string{
	silmarilDTDHTMLPro, dTDHTML3asWedit, advaSoftDTDHTML3,
	iETFDTDHTML2Level1, iETFDTDHTML2Level2, iETFDTDHTML2StrictLevel1, iETFDTDHTML2StrictLevel2,
	iETFDTDHTML2Strict, iETFDTDHTML2, iIETFDTDHTML2E, iETFDTDHTML30, iETFDTDHTML32Final,
	iETFDTDHTML32, iETFDTDHTML3, iETFDTDHTMLLevel0, iETFDTDHTMLLevel1, iETFDTDHTMLLevel2, iETFDTDHTMLLevel3,
	iETFDTDHTMLStrictLevel0, iETFDTDHTMLStrictLevel1, iETFDTDHTMLStrictLevel2, iETFDTDHTMLStrictLevel3,
	iETFDTDHTMLStrict, iETFDTDHTML, metriusDTDMetriusPresentational,
	msDTDIE2HTMLStrict, msDTDIE2HTML, msDTDIE2Tables, msDTDIE3HTMLStrict, msDTDIE3HTML, msDTDIE3Tables,
	netscapeDTDHTML, netscapeDTDStrictHTML,
	oreillyDTDHTML2, oreillyDTDHTMLExtended1, oreillyDTDHTMLExtendedRelaxed1,
	sqDTDHTML2HoTMetaLExtensions, softQuadDTDHoTMetaLPRO6, softQuadDTDHoTMetaLPRO4,
	spyglassDTDHTML2Extended, sunDTDHotJavaHTML, sunDTDHotJavaStrictHTML,
	w3cDTDHTML31, w3cDTDHTML32Draft, w3cDTDHTML32Final, w3cDTDHTML32, w3cDTDHTML32SDraft,
	w3cDTDHTML4Frameset, w3cDTDHTML4Transitional, w3cDTDHTMLExperimental1996, w3cDTDHTMLExperimental9704,
	w3cDTDW3HTML, w3cDTDW3HTML3, webTechsDTDMozillaHTML2, webTechsDTDMozillaHTML,
}

// doctypeQuirksMode implements the WHATWG "quirks mode" detection table
// against a DOCTYPE token's name/public/system identifiers.
func doctypeQuirksMode(name, public, system string, forceQuirks bool) QuirksMode {
	if isForceQuirksDoctype(name, public, system, forceQuirks) {
		return Quirks
	}
	if isLimitedQuirksDoctype(public, system) {
		return LimitedQuirks
	}
	return NoQuirks
}

func isForceQuirksDoctype(name, public, system string, forceQuirks bool) bool {
	if forceQuirks {
		return true
	}
	if name != "html" {
		return true
	}
	switch public {
	case w30DTDW3HTMLStrict3En, w3cDTDHTML4TransitionalEN, "HTML":
		return true
	}
	if system == ibmxhtml {
		return true
	}
	for _, v := range knownPublicIdentifiers {
		if strings.HasPrefix(public, v) {
			return true
		}
	}
	if system == missingIdentifier && strings.HasPrefix(public, w3cDTDHTML401Frameset) {
		return true
	}
	if system == missingIdentifier && strings.HasPrefix(public, w3cDTDHTML401Transitional) {
		return true
	}
	return false
}

func isLimitedQuirksDoctype(public, system string) bool {
	if strings.HasPrefix(public, w3cDTDXHTML1Frameset) {
		return true
	}
	if strings.HasPrefix(public, w3cDTDXHTML1Transitional) {
		return true
	}
	if system != missingIdentifier {
		if strings.HasPrefix(public, w3cDTDHTML401Frameset) {
			return true
		}
		if strings.HasPrefix(public, w3cDTDHTML401Transitional) {
			return true
		}
	}
	return false
}
