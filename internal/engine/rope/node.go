package rope

import "strings"

// MaxChildren is the fan-out limit of internal nodes.
const MaxChildren = 8

// node is a rope tree node. Leaves (height 0) hold text; internal nodes
// hold children whose heights are all height-1.
type node struct {
	height   int
	summary  Summary
	children []*node
	text     string
}

func newLeaf(text string) *node {
	return &node{text: text, summary: Summarize(text)}
}

func newInternal(children []*node) *node {
	n := &node{height: children[0].height + 1, children: children}
	for _, c := range children {
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

func (n *node) isLeaf() bool {
	return n.height == 0
}

// fromChildren builds nodes of one level into a single subtree.
func fromChildren(nodes []*node) *node {
	switch len(nodes) {
	case 0:
		return nil
	case 1:
		return nodes[0]
	}
	for len(nodes) > 1 {
		parents := make([]*node, 0, len(nodes)/MaxChildren+1)
		for i := 0; i < len(nodes); i += MaxChildren {
			end := min(i+MaxChildren, len(nodes))
			group := make([]*node, end-i)
			copy(group, nodes[i:end])
			parents = append(parents, newInternal(group))
		}
		nodes = parents
	}
	return nodes[0]
}

// concat joins two subtrees keeping every leaf at the same depth.
func concat(a, b *node) *node {
	if a == nil || a.summary.Bytes == 0 {
		return b
	}
	if b == nil || b.summary.Bytes == 0 {
		return a
	}
	switch {
	case a.height == b.height:
		return joinLevel(a, b)
	case a.height > b.height:
		last := len(a.children) - 1
		merged := concat(a.children[last], b)
		children := make([]*node, 0, len(a.children)+1)
		children = append(children, a.children[:last]...)
		children = appendLevel(children, merged, a.height-1)
		return packLevel(children)
	default:
		merged := concat(a, b.children[0])
		children := make([]*node, 0, len(b.children)+1)
		children = appendLevel(children, merged, b.height-1)
		children = append(children, b.children[1:]...)
		return packLevel(children)
	}
}

// appendLevel appends n to a list of height-h nodes. A node that grew one
// level taller is flattened into its children.
func appendLevel(list []*node, n *node, h int) []*node {
	if n.height == h {
		return append(list, n)
	}
	return append(list, n.children...)
}

// packLevel wraps same-height nodes in one parent, or two when they
// exceed the fan-out.
func packLevel(children []*node) *node {
	if len(children) <= MaxChildren {
		return newInternal(children)
	}
	mid := len(children) / 2
	left := newInternal(append([]*node(nil), children[:mid]...))
	right := newInternal(append([]*node(nil), children[mid:]...))
	return newInternal([]*node{left, right})
}

// joinLevel joins two nodes of equal height.
func joinLevel(a, b *node) *node {
	if a.isLeaf() {
		if len(a.text)+len(b.text) <= MaxChunkSize {
			return newLeaf(a.text + b.text)
		}
		return newInternal([]*node{a, b})
	}
	children := make([]*node, 0, len(a.children)+len(b.children))
	children = append(children, a.children...)
	children = append(children, b.children...)
	return packLevel(children)
}

// split divides the subtree at byte offset off.
func split(n *node, off int) (*node, *node) {
	if n == nil {
		return nil, nil
	}
	if off <= 0 {
		return nil, n
	}
	if off >= n.summary.Bytes {
		return n, nil
	}
	if n.isLeaf() {
		return newLeaf(n.text[:off]), newLeaf(n.text[off:])
	}

	pos := 0
	for i, c := range n.children {
		size := c.summary.Bytes
		if off < pos+size {
			l, r := split(c, off-pos)
			left := concat(fromSiblings(n.children[:i]), l)
			right := concat(r, fromSiblings(n.children[i+1:]))
			return left, right
		}
		pos += size
	}
	return n, nil
}

// fromSiblings wraps a run of siblings without copying them into a tree
// taller than necessary.
func fromSiblings(children []*node) *node {
	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0]
	}
	return newInternal(append([]*node(nil), children...))
}

func (n *node) appendRange(sb *strings.Builder, start, end int) {
	if n.isLeaf() {
		sb.WriteString(n.text[start:end])
		return
	}
	pos := 0
	for _, c := range n.children {
		size := c.summary.Bytes
		cs, ce := pos, pos+size
		if ce > start && cs < end {
			c.appendRange(sb, max(start, cs)-cs, min(end, ce)-cs)
		}
		if ce >= end {
			return
		}
		pos = ce
	}
}
