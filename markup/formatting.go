package markup

// afeEntry is one entry of the active-formatting-elements list (§3). A
// marker entry (elem == nil) delimits the scope introduced by
// <applet>/<marquee>/<object>/<table>/<template>; reconstruction and the
// adoption agency algorithm never walk past one.
type afeEntry struct {
	marker bool
	elem   *openElement
	name   Name
	attrs  []Attribute
}

// formattingElementNames is the closed set named in the GLOSSARY.
var formattingElementNames = map[string]bool{
	"a": true, "b": true, "big": true, "code": true, "em": true, "font": true,
	"i": true, "nobr": true, "s": true, "small": true, "strike": true,
	"strong": true, "tt": true, "u": true,
}

func isFormattingElement(name string) bool { return formattingElementNames[name] }

func (tc *treeBuilder) pushMarker() {
	tc.afe = append(tc.afe, &afeEntry{marker: true})
}

func (tc *treeBuilder) clearAFEToLastMarker() {
	for len(tc.afe) > 0 {
		e := tc.afe[len(tc.afe)-1]
		tc.afe = tc.afe[:len(tc.afe)-1]
		if e.marker {
			return
		}
	}
}

// sameAttrs reports attribute-set equality irrespective of order, as
// required by the Noah's Ark clause.
func sameAttrs(a, b []Attribute) bool {
	if len(a) != len(b) {
		return false
	}
	idx := map[string]string{}
	for _, at := range a {
		idx[at.Name.Local] = at.Value
	}
	for _, bt := range b {
		v, ok := idx[bt.Name.Local]
		if !ok || v != bt.Value {
			return false
		}
	}
	return true
}

// pushFormattingEntry appends a new entry to the active formatting elements
// list, applying the Noah's Ark clause: if three identical entries (same
// local name and attributes; the namespace is not compared) already exist
// since the last marker, the earliest is removed.
func (tc *treeBuilder) pushFormattingEntry(e *openElement) {
	matches := 0
	earliestIdx := -1
	for i := len(tc.afe) - 1; i >= 0; i-- {
		cur := tc.afe[i]
		if cur.marker {
			break
		}
		if cur.name.Local == e.Name.Local && sameAttrs(cur.attrs, e.Attrs) {
			matches++
			earliestIdx = i
		}
	}
	if matches >= 3 && earliestIdx != -1 {
		tc.afe = append(tc.afe[:earliestIdx], tc.afe[earliestIdx+1:]...)
	}
	tc.afe = append(tc.afe, &afeEntry{elem: e, name: e.Name, attrs: e.Attrs})
}

// findAFEByElem returns the index of the most recent non-marker entry for elem,
// or -1.
func (tc *treeBuilder) findAFEByElem(elem *openElement) int {
	for i := len(tc.afe) - 1; i >= 0; i-- {
		if !tc.afe[i].marker && tc.afe[i].elem == elem {
			return i
		}
	}
	return -1
}

func (tc *treeBuilder) findAFEByName(name string) (int, *afeEntry) {
	for i := len(tc.afe) - 1; i >= 0; i-- {
		if tc.afe[i].marker {
			return -1, nil
		}
		if tc.afe[i].name.Local == name {
			return i, tc.afe[i]
		}
	}
	return -1, nil
}

// reconstructActiveFormattingElements is algorithm #1 of §4.3: walk back to
// the last marker or the first entry that's still open, then walk forward
// re-opening (cloning) every entry after it.
func (tc *treeBuilder) reconstructActiveFormattingElements() {
	if len(tc.afe) == 0 {
		return
	}
	last := tc.afe[len(tc.afe)-1]
	if last.marker || tc.open.indexOf(last.elem) != -1 {
		return
	}

	i := len(tc.afe) - 1
	for i > 0 {
		i--
		entry := tc.afe[i]
		if entry.marker || tc.open.indexOf(entry.elem) != -1 {
			i++
			break
		}
	}

	for ; i < len(tc.afe); i++ {
		entry := tc.afe[i]
		clone := tc.open.push(entry.name, entry.attrs)
		tc.emitStartElement(clone, tc.curLoc)
		entry.elem = clone
	}
}

// runAdoptionAgency is algorithm #2 of §4.3, invoked for an end tag naming a
// formatting element that the tree builder determines is not simply the
// current node. Bounded to 8 outer iterations per the HTML5 spec.
func (tc *treeBuilder) runAdoptionAgency(subject string) {
	if tc.open.current() != nil && tc.open.current().Name.Local == subject {
		if _, e := tc.findAFEByName(subject); e == nil {
			e2 := tc.open.pop()
			tc.emitEndElement(e2, tc.curLoc)
			return
		}
	}

	for outer := 0; outer < 8; outer++ {
		idx, formatting := tc.findAFEByName(subject)
		if formatting == nil {
			tc.inBodyAnyOtherEndTag(subject)
			return
		}
		feIdx := tc.open.indexOf(formatting.elem)
		if feIdx == -1 {
			tc.reportErr(MisnestedTag, tc.curLoc, subject)
			tc.afe = append(tc.afe[:idx], tc.afe[idx+1:]...)
			return
		}
		if !tc.open.hasInScope(subject, defaultScopeStoppers) {
			tc.reportErr(MisnestedTag, tc.curLoc, subject)
			return
		}

		var furthestBlock *openElement
		fbIdx := -1
		for i := feIdx + 1; i < len(tc.open.entries); i++ {
			if isSpecialElement(tc.open.entries[i].Name.Local) {
				furthestBlock = tc.open.entries[i]
				fbIdx = i
				break
			}
		}

		if furthestBlock == nil {
			for len(tc.open.entries) > feIdx {
				e := tc.open.pop()
				tc.emitEndElement(e, tc.curLoc)
			}
			tc.afe = append(tc.afe[:idx], tc.afe[idx+1:]...)
			return
		}

		commonAncestor := tc.open.entries[feIdx-1]
		bookmark := idx + 1
		node := furthestBlock
		lastNode := furthestBlock
		nodeIdx := fbIdx

		for inner := 0; inner < 3; inner++ {
			nodeIdx--
			if nodeIdx <= feIdx {
				break
			}
			node = tc.open.entries[nodeIdx]
			nodeAFEIdx := tc.findAFEByElem(node)
			if nodeAFEIdx == -1 {
				tc.open.removeEntry(node)
				continue
			}
			if node == formatting.elem {
				break
			}

			clone := &openElement{id: node.id, Name: node.Name, Attrs: node.Attrs}
			tc.afe[nodeAFEIdx].elem = clone
			tc.open.entries[nodeIdx] = clone

			if lastNode == furthestBlock {
				bookmark = nodeAFEIdx + 1
			}
			_ = lastNode
			lastNode = clone
		}

		_ = commonAncestor

		newFormatting := &openElement{id: 0, Name: formatting.name, Attrs: formatting.attrs}
		tc.open.removeEntry(formatting.elem)
		tc.afe = append(tc.afe[:idx], tc.afe[idx+1:]...)
		if bookmark > len(tc.afe) {
			bookmark = len(tc.afe)
		}
		newEntry := &afeEntry{elem: newFormatting, name: newFormatting.Name, attrs: newFormatting.Attrs}
		tc.afe = append(tc.afe[:bookmark], append([]*afeEntry{newEntry}, tc.afe[bookmark:]...)...)

		tc.open.removeEntry(furthestBlock)
		fbIdx = tc.open.indexOf(lastNode)
		if fbIdx == -1 {
			fbIdx = len(tc.open.entries)
		}
		tc.open.insertAt(fbIdx+1, newFormatting)

		tc.emitStartElement(newFormatting, tc.curLoc)
	}
}

// isSpecialElement approximates the HTML5 "special" category (§4.3 step
// "furthest block"): elements that terminate implicit closing and scope
// walks. This is the practical subset exercised by the adoption agency and
// implied-end-tag machinery rather than the full ~90-name table.
func isSpecialElement(name string) bool {
	switch name {
	case "address", "applet", "area", "article", "aside", "base", "basefont",
		"bgsound", "blockquote", "body", "br", "button", "caption", "center",
		"col", "colgroup", "dd", "details", "dir", "div", "dl", "dt",
		"embed", "fieldset", "figcaption", "figure", "footer", "form",
		"frame", "frameset", "h1", "h2", "h3", "h4", "h5", "h6", "head",
		"header", "hgroup", "hr", "html", "iframe", "img", "input",
		"keygen", "li", "link", "listing", "main", "marquee", "menu",
		"meta", "nav", "noembed", "noframes", "noscript", "object", "ol",
		"p", "param", "plaintext", "pre", "script", "section", "select",
		"source", "style", "summary", "table", "tbody", "td", "template",
		"textarea", "tfoot", "th", "thead", "title", "tr", "track", "ul",
		"wbr", "xmp":
		return true
	}
	return false
}
