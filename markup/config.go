package markup

import "github.com/sirupsen/logrus"

// NamespaceResolver maps an XML namespace prefix to a Namespace (§6).
// ParseXML consults it for a prefix the document leaves unbound and for an
// `xmlns`/`xmlns:` declaration whose URI is not one of the well-known ones;
// ParseHTML does not use it.
type NamespaceResolver func(prefix string) (Namespace, bool)

// EntityResolver lets a caller extend or override the named-character-
// reference table (§6) without forking entities.go; looked up before the
// package's own namedCharacterReferences table.
type EntityResolver func(name string) ([]rune, bool)

// ContextElement seeds HTML fragment parsing (§6): when set, ParseHTML
// starts tree construction as if inside an existing element of this name
// rather than at the Initial insertion mode, per the WHATWG "parsing HTML
// fragments" algorithm.
type ContextElement struct {
	Name      string
	Namespace Namespace
}

// Config is passed by value to ParseHTML/ParseXML/WriteHTML/WriteXML (§6);
// there is no global mutable parser state anywhere in this package.
type Config struct {
	// Encoding, if non-empty, overrides encoding detection (§4.1 "explicit").
	Encoding string

	Namespace NamespaceResolver
	Entity    EntityResolver

	// Context enables HTML fragment parsing rooted at this element.
	Context *ContextElement

	// Report receives every ParseError as it's detected (§7). Returning
	// ErrStop ends the stream for the errors listed on ReportFunc. A nil
	// Report means errors are only
	// surfaced through Logger, never returned from the stream.
	Report ReportFunc

	// SelfClose controls whether WriteXML emits childless elements as
	// `<a/>` (true) or `<a></a>` (false, the default).
	SelfClose bool

	// Logger receives a Warn-level entry for every ParseError in addition
	// to whatever Report does (§AMBIENT logging); defaults to
	// logrus.StandardLogger() when nil.
	Logger *logrus.Logger

	// Scripting enables the HTML5 "scripting flag" (§4.3's <noscript>
	// branch): when true, <noscript> content is treated as raw text.
	Scripting bool
}

func (c Config) logger() *logrus.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return logrus.StandardLogger()
}

// wrapReport composes the user's Report callback with the §AMBIENT
// Warn-level logging side channel: Logger always sees every ParseError,
// regardless of what Report does with it.
func (c Config) wrapReport() ReportFunc {
	log := c.logger()
	user := c.Report
	return func(e *ParseError) error {
		log.WithFields(logrus.Fields{
			"kind":      e.Kind.String(),
			"loc":       e.Loc.String(),
			"offending": e.Offending,
		}).Warn("markup: parse error")
		if user == nil {
			return nil
		}
		return user(e)
	}
}
