package markup

// openElement is one entry of the tree builder's open-elements stack (§3).
// It carries enough of the original start tag to drive scope checks,
// content-model switches and signal emission without a live tree.
type openElement struct {
	id      int
	Name    Name
	Attrs   []Attribute
	isHTMLIntegrationPoint bool
	isMathMLTextIntegrationPoint bool
}

// elementStack is the open-elements stack: bottom = document root (usually
// <html>), top = current insertion point (§3 Invariant: never empty after
// the first start tag until the parser terminates).
type elementStack struct {
	entries []*openElement
	nextID  int
}

func (s *elementStack) push(n Name, attrs []Attribute) *openElement {
	s.nextID++
	e := &openElement{id: s.nextID, Name: n, Attrs: attrs}
	s.entries = append(s.entries, e)
	return e
}

func (s *elementStack) pushEntry(e *openElement) { s.entries = append(s.entries, e) }

func (s *elementStack) pop() *openElement {
	if len(s.entries) == 0 {
		return nil
	}
	e := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return e
}

func (s *elementStack) current() *openElement {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1]
}

func (s *elementStack) empty() bool { return len(s.entries) == 0 }

// popThrough pops entries (inclusive) until one named name (case-sensitive,
// already-lowercased local name) is popped, or the stack empties.
func (s *elementStack) popThrough(name string) []*openElement {
	var popped []*openElement
	for len(s.entries) > 0 {
		e := s.pop()
		popped = append(popped, e)
		if e.Name.Local == name {
			break
		}
	}
	return popped
}

// indexOf returns the stack index of e, or -1.
func (s *elementStack) indexOf(e *openElement) int {
	for i, x := range s.entries {
		if x == e {
			return i
		}
	}
	return -1
}

// contains reports whether any entry has the given local name.
func (s *elementStack) contains(name string) bool {
	for _, e := range s.entries {
		if e.Name.Local == name {
			return true
		}
	}
	return false
}

func (s *elementStack) removeEntry(e *openElement) {
	idx := s.indexOf(e)
	if idx == -1 {
		return
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
}

func (s *elementStack) insertAt(idx int, e *openElement) {
	s.entries = append(s.entries, nil)
	copy(s.entries[idx+1:], s.entries[idx:])
	s.entries[idx] = e
}

// Scope lists per §4.3 (elementInSpecificScope) and the HTML5 spec's named
// scope variants. Each is the set of element local names (HTML namespace
// unless noted) that stop the scope walk.
var defaultScopeStoppers = map[string]bool{
	"applet": true, "caption": true, "html": true, "table": true,
	"td": true, "th": true, "marquee": true, "object": true, "template": true,
	"mi": true, "mo": true, "mn": true, "ms": true, "mtext": true,
	"annotation-xml": true, "foreignObject": true, "desc": true, "title": true,
}

var listItemScopeStoppers = unionScope(defaultScopeStoppers, map[string]bool{"ol": true, "ul": true})
var buttonScopeStoppers = unionScope(defaultScopeStoppers, map[string]bool{"button": true})
var tableScopeStoppers = map[string]bool{"html": true, "table": true, "template": true}
var selectScopeStoppers = map[string]bool{} // inverse: everything EXCEPT optgroup/option stops

func unionScope(a, b map[string]bool) map[string]bool {
	out := map[string]bool{}
	for k := range a {
		out[k] = true
	}
	for k := range b {
		out[k] = true
	}
	return out
}

// hasInScope walks the stack from the top per the named scope's stopper
// set, returning true if target's local name is found before a stopper.
func (s *elementStack) hasInScope(target string, stoppers map[string]bool) bool {
	for i := len(s.entries) - 1; i >= 0; i-- {
		n := s.entries[i].Name.Local
		if n == target {
			return true
		}
		if stoppers[n] {
			return false
		}
	}
	return false
}

func (s *elementStack) hasInSelectScope(target string) bool {
	for i := len(s.entries) - 1; i >= 0; i-- {
		n := s.entries[i].Name.Local
		if n == target {
			return true
		}
		if n != "optgroup" && n != "option" {
			return false
		}
	}
	return false
}

func (s *elementStack) hasInTableScope(target string) bool {
	return s.hasInScope(target, tableScopeStoppers)
}

func (s *elementStack) hasInButtonScope(target string) bool {
	return s.hasInScope(target, buttonScopeStoppers)
}

func (s *elementStack) hasInListItemScope(target string) bool {
	return s.hasInScope(target, listItemScopeStoppers)
}

// generateImpliedEndTags pops elements matching the implied-end-tag set
// (§4.3 #3), emitting a synthesized End_element for each, optionally
// excluding one local name from the set (e.g. the tag currently closing).
func (tc *treeBuilder) generateImpliedEndTags(except string) {
	implied := map[string]bool{
		"dd": true, "dt": true, "li": true, "optgroup": true, "option": true,
		"p": true, "rb": true, "rp": true, "rt": true, "rtc": true,
	}
	for !tc.open.empty() && implied[tc.open.current().Name.Local] && tc.open.current().Name.Local != except {
		e := tc.open.pop()
		tc.emitEndElement(e, tc.curLoc)
	}
}

// generateAllImpliedEndTagsThoroughly is the "thorough" variant used by the
// </template> end-tag handler, which additionally closes
// <tbody>/<td>/<tfoot>/<th>/<thead>/<tr>.
func (tc *treeBuilder) generateAllImpliedEndTagsThoroughly() {
	implied := map[string]bool{
		"caption": true, "colgroup": true, "dd": true, "dt": true, "li": true,
		"optgroup": true, "option": true, "p": true, "rb": true, "rp": true,
		"rt": true, "rtc": true, "tbody": true, "td": true, "tfoot": true,
		"th": true, "thead": true, "tr": true,
	}
	for !tc.open.empty() && implied[tc.open.current().Name.Local] {
		e := tc.open.pop()
		tc.emitEndElement(e, tc.curLoc)
	}
}
