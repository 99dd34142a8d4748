package rope

import "strings"

// Tree shape constants.
const (
	// maxLeafBytes is the maximum text size stored in one leaf.
	maxLeafBytes = 512

	// targetLeafBytes is the preferred leaf size when building.
	targetLeafBytes = 384

	// maxChildren is the maximum children per internal node.
	maxChildren = 8
)

// node is a node in the rope tree. Leaves (height 0) hold text;
// internal nodes hold children with per-child summaries for seeking.
type node struct {
	height   int
	sum      Summary
	text     string // leaf only
	children []*node
	childSum []Summary
}

func newLeaf(text string) *node {
	return &node{sum: computeSummary(text), text: text}
}

func newInternal(children []*node) *node {
	if len(children) == 0 {
		return newLeaf("")
	}
	n := &node{
		height:   children[0].height + 1,
		children: children,
		childSum: make([]Summary, len(children)),
	}
	for i, c := range children {
		n.childSum[i] = c.sum
		n.sum = n.sum.Add(c.sum)
	}
	return n
}

func (n *node) isLeaf() bool { return n.height == 0 }

// appendTo writes the subtree's text to sb in order.
func (n *node) appendTo(sb *strings.Builder) {
	if n.isLeaf() {
		sb.WriteString(n.text)
		return
	}
	for _, c := range n.children {
		c.appendTo(sb)
	}
}

// appendRange writes text in [start, end) to sb. Bounds are relative
// to the subtree.
func (n *node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}
	if n.isLeaf() {
		if start < 0 {
			start = 0
		}
		if end > len(n.text) {
			end = len(n.text)
		}
		sb.WriteString(n.text[start:end])
		return
	}
	off := 0
	for i, c := range n.children {
		clen := n.childSum[i].Bytes
		if off+clen > start && off < end {
			c.appendRange(sb, start-off, end-off)
		}
		off += clen
		if off >= end {
			break
		}
	}
}

// byteAt returns the byte at the given offset within the subtree.
// The caller guarantees 0 <= offset < n.sum.Bytes.
func (n *node) byteAt(offset int) byte {
	for !n.isLeaf() {
		i := 0
		for i < len(n.children)-1 && offset >= n.childSum[i].Bytes {
			offset -= n.childSum[i].Bytes
			i++
		}
		n = n.children[i]
	}
	return n.text[offset]
}

// split divides the subtree at a byte offset into two balanced trees.
func (n *node) split(offset int) (*node, *node) {
	if offset <= 0 {
		return newLeaf(""), n
	}
	if offset >= n.sum.Bytes {
		return n, newLeaf("")
	}
	if n.isLeaf() {
		return newLeaf(n.text[:offset]), newLeaf(n.text[offset:])
	}

	var left, right []*node
	off := 0
	for i, c := range n.children {
		clen := n.childSum[i].Bytes
		switch {
		case off+clen <= offset:
			left = append(left, c)
		case off >= offset:
			right = append(right, c)
		default:
			l, r := c.split(offset - off)
			if l.sum.Bytes > 0 {
				left = append(left, l)
			}
			if r.sum.Bytes > 0 {
				right = append(right, r)
			}
		}
		off += clen
	}
	return buildFromNodes(left), buildFromNodes(right)
}

// buildFromNodes assembles a balanced tree from in-order nodes of
// possibly different heights.
func buildFromNodes(nodes []*node) *node {
	switch len(nodes) {
	case 0:
		return newLeaf("")
	case 1:
		return nodes[0]
	}

	// Lift runs of minimum-height nodes until all heights agree,
	// then group upward until one root remains.
	for !uniformHeight(nodes) {
		h := minHeight(nodes)
		var out []*node
		i := 0
		for i < len(nodes) {
			if nodes[i].height > h {
				out = append(out, nodes[i])
				i++
				continue
			}
			j := i
			for j < len(nodes) && nodes[j].height == h {
				j++
			}
			out = append(out, liftRun(nodes[i:j])...)
			i = j
		}
		nodes = out
	}

	for len(nodes) > 1 {
		var parents []*node
		for i := 0; i < len(nodes); i += maxChildren {
			end := i + maxChildren
			if end > len(nodes) {
				end = len(nodes)
			}
			group := make([]*node, end-i)
			copy(group, nodes[i:end])
			parents = append(parents, newInternal(group))
		}
		nodes = parents
	}
	return nodes[0]
}

// liftRun wraps a run of equal-height nodes one level up.
func liftRun(run []*node) []*node {
	var out []*node
	for i := 0; i < len(run); i += maxChildren {
		end := i + maxChildren
		if end > len(run) {
			end = len(run)
		}
		group := make([]*node, end-i)
		copy(group, run[i:end])
		out = append(out, newInternal(group))
	}
	return out
}

func uniformHeight(nodes []*node) bool {
	for _, n := range nodes[1:] {
		if n.height != nodes[0].height {
			return false
		}
	}
	return true
}

func minHeight(nodes []*node) int {
	h := nodes[0].height
	for _, n := range nodes[1:] {
		if n.height < h {
			h = n.height
		}
	}
	return h
}

// concatNodes joins two subtrees preserving text order.
func concatNodes(left, right *node) *node {
	if left == nil || left.sum.Bytes == 0 {
		if right == nil {
			return newLeaf("")
		}
		return right
	}
	if right == nil || right.sum.Bytes == 0 {
		return left
	}

	// Small adjacent leaves merge into one.
	if left.isLeaf() && right.isLeaf() && len(left.text)+len(right.text) <= maxLeafBytes {
		return newLeaf(left.text + right.text)
	}

	for left.height < right.height {
		left = newInternal([]*node{left})
	}
	for right.height < left.height {
		right = newInternal([]*node{right})
	}

	all := make([]*node, 0, len(childrenOf(left))+len(childrenOf(right)))
	all = append(all, childrenOf(left)...)
	all = append(all, childrenOf(right)...)
	return buildFromNodes(all)
}

// childrenOf returns a node's children, or the node itself for leaves.
func childrenOf(n *node) []*node {
	if n.isLeaf() {
		return []*node{n}
	}
	return n.children
}
