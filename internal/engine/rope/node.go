package rope

import "strings"

// Tree structure constants
const (
	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// Node represents a node in the rope B+ tree.
// Leaf nodes (height == 0) contain text chunks.
// Internal nodes (height > 0) contain child node references.
type Node struct {
	height  uint8
	summary Summary

	// Internal node fields (height > 0)
	children       []*Node
	childSummaries []Summary

	// Leaf node fields (height == 0)
	chunks []Chunk
}

// newLeafNode creates an empty leaf node.
func newLeafNode() *Node {
	return &Node{
		height: 0,
		chunks: make([]Chunk, 0, MaxChunksPerLeaf),
	}
}

// newLeafNodeWithChunks creates a leaf node with the given chunks.
func newLeafNodeWithChunks(chunks []Chunk) *Node {
	n := &Node{
		height: 0,
		chunks: chunks,
	}
	n.recomputeSummary()
	return n
}

// newInternalNode creates an internal node with the given children.
func newInternalNode(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}

	height := children[0].height + 1
	summaries := make([]Summary, len(children))
	var total Summary
	for i, child := range children {
		summaries[i] = child.summary
		total = total.Add(child.summary)
	}

	return &Node{
		height:         height,
		summary:        total,
		children:       children,
		childSummaries: summaries,
	}
}

// IsLeaf returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.height == 0
}

// Chars returns the char length of text in this subtree.
func (n *Node) Chars() int {
	return n.summary.Chars
}

// recomputeSummary recalculates the summary from children or chunks.
func (n *Node) recomputeSummary() {
	n.summary = Summary{}
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			n.summary = n.summary.Add(chunk.Summary())
		}
		return
	}
	n.childSummaries = make([]Summary, len(n.children))
	for i, child := range n.children {
		n.childSummaries[i] = child.summary
		n.summary = n.summary.Add(child.summary)
	}
}

// clone creates a shallow copy of the node.
func (n *Node) clone() *Node {
	if n.IsLeaf() {
		chunks := make([]Chunk, len(n.chunks))
		copy(chunks, n.chunks)
		return &Node{
			height:  0,
			summary: n.summary,
			chunks:  chunks,
		}
	}

	children := make([]*Node, len(n.children))
	copy(children, n.children)
	summaries := make([]Summary, len(n.childSummaries))
	copy(summaries, n.childSummaries)

	return &Node{
		height:         n.height,
		summary:        n.summary,
		children:       children,
		childSummaries: summaries,
	}
}

// appendTo appends all text in this subtree to the builder.
func (n *Node) appendTo(sb *strings.Builder) {
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			sb.WriteString(chunk.String())
		}
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// appendRange appends text in the char range [start, end) to the builder.
func (n *Node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}

	if n.IsLeaf() {
		offset := 0
		for _, chunk := range n.chunks {
			chunkEnd := offset + chunk.Chars()
			if chunkEnd <= start {
				offset = chunkEnd
				continue
			}
			if offset >= end {
				break
			}

			s := chunk.String()
			lo := 0
			if start > offset {
				lo = charToByte(s, start-offset)
			}
			hi := len(s)
			if end < chunkEnd {
				hi = charToByte(s, end-offset)
			}
			sb.WriteString(s[lo:hi])
			offset = chunkEnd
		}
		return
	}

	offset := 0
	for i, child := range n.children {
		childEnd := offset + n.childSummaries[i].Chars
		if childEnd <= start {
			offset = childEnd
			continue
		}
		if offset >= end {
			break
		}

		childStart := 0
		if start > offset {
			childStart = start - offset
		}
		childEndAdj := n.childSummaries[i].Chars
		if end < childEnd {
			childEndAdj = end - offset
		}
		child.appendRange(sb, childStart, childEndAdj)
		offset = childEnd
	}
}

// split splits the node at the given char offset.
// Returns two nodes: left contains [0, offset), right contains [offset, end).
func (n *Node) split(offset int) (*Node, *Node) {
	if offset <= 0 {
		return newLeafNode(), n.clone()
	}
	if offset >= n.Chars() {
		return n.clone(), newLeafNode()
	}
	if n.IsLeaf() {
		return n.splitLeaf(offset)
	}
	return n.splitInternal(offset)
}

func (n *Node) splitLeaf(offset int) (*Node, *Node) {
	var leftChunks, rightChunks []Chunk
	current := 0

	for _, chunk := range n.chunks {
		chars := chunk.Chars()
		switch {
		case current+chars <= offset:
			leftChunks = append(leftChunks, chunk)
		case current >= offset:
			rightChunks = append(rightChunks, chunk)
		default:
			left, right := chunk.Split(offset - current)
			if !left.IsEmpty() {
				leftChunks = append(leftChunks, left)
			}
			if !right.IsEmpty() {
				rightChunks = append(rightChunks, right)
			}
		}
		current += chars
	}

	return newLeafNodeWithChunks(leftChunks), newLeafNodeWithChunks(rightChunks)
}

func (n *Node) splitInternal(offset int) (*Node, *Node) {
	var leftChildren, rightChildren []*Node
	current := 0

	for i, child := range n.children {
		chars := n.childSummaries[i].Chars
		switch {
		case current+chars <= offset:
			leftChildren = append(leftChildren, child)
		case current >= offset:
			rightChildren = append(rightChildren, child)
		default:
			leftChild, rightChild := child.split(offset - current)
			if leftChild.Chars() > 0 {
				leftChildren = append(leftChildren, leftChild)
			}
			if rightChild.Chars() > 0 {
				rightChildren = append(rightChildren, rightChild)
			}
		}
		current += chars
	}

	return buildNodeFromChildren(leftChildren), buildNodeFromChildren(rightChildren)
}

// buildNodeFromChildren creates a balanced tree from a list of child nodes.
func buildNodeFromChildren(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}
	if len(children) == 1 {
		return children[0]
	}
	if len(children) <= MaxChildren {
		return newInternalNode(children)
	}

	var parents []*Node
	for i := 0; i < len(children); i += MaxChildren {
		end := i + MaxChildren
		if end > len(children) {
			end = len(children)
		}
		parents = append(parents, newInternalNode(children[i:end]))
	}
	return buildNodeFromChildren(parents)
}

// concat concatenates two nodes.
func concat(left, right *Node) *Node {
	if left == nil || left.Chars() == 0 {
		if right == nil {
			return newLeafNode()
		}
		return right
	}
	if right == nil || right.Chars() == 0 {
		return left
	}

	if left.IsLeaf() && right.IsLeaf() {
		return concatLeaves(left, right)
	}

	// Bring to same height by wrapping the shorter one.
	for left.height < right.height {
		left = newInternalNode([]*Node{left})
	}
	for right.height < left.height {
		right = newInternalNode([]*Node{right})
	}

	return mergeNodes(left, right)
}

func concatLeaves(left, right *Node) *Node {
	total := len(left.chunks) + len(right.chunks)
	if total <= MaxChunksPerLeaf {
		chunks := make([]Chunk, 0, total)
		chunks = append(chunks, left.chunks...)
		chunks = append(chunks, right.chunks...)
		return newLeafNodeWithChunks(chunks)
	}
	return newInternalNode([]*Node{left.clone(), right.clone()})
}

func mergeNodes(left, right *Node) *Node {
	if left.IsLeaf() {
		return concatLeaves(left, right)
	}

	allChildren := make([]*Node, 0, len(left.children)+len(right.children))
	allChildren = append(allChildren, left.children...)
	allChildren = append(allChildren, right.children...)

	if len(allChildren) <= MaxChildren {
		return newInternalNode(allChildren)
	}
	return buildNodeFromChildren(allChildren)
}

// lineStartChar returns the char offset of the start of the given line
// within this subtree. Line 0 starts at offset 0; line N starts just
// past the Nth newline. Lines past the end map to the subtree length.
func (n *Node) lineStartChar(line int) int {
	if line <= 0 {
		return 0
	}
	if line > n.summary.Lines {
		return n.summary.Chars
	}

	if n.IsLeaf() {
		chars := 0
		for _, chunk := range n.chunks {
			cs := chunk.Summary()
			if cs.Lines >= line {
				s := chunk.String()
				for i, r := range s {
					if r == '\n' {
						line--
						if line == 0 {
							return chars + charsBefore(s, i) + 1
						}
					}
				}
			}
			line -= cs.Lines
			chars += cs.Chars
		}
		return chars
	}

	chars := 0
	for i, child := range n.children {
		cs := n.childSummaries[i]
		if cs.Lines >= line {
			return chars + child.lineStartChar(line)
		}
		line -= cs.Lines
		chars += cs.Chars
	}
	return chars
}

// linesBefore counts the newlines in the char range [0, offset).
func (n *Node) linesBefore(offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= n.summary.Chars {
		return n.summary.Lines
	}

	if n.IsLeaf() {
		lines := 0
		current := 0
		for _, chunk := range n.chunks {
			cs := chunk.Summary()
			if current+cs.Chars <= offset {
				lines += cs.Lines
				current += cs.Chars
				continue
			}
			s := chunk.String()
			b := charToByte(s, offset-current)
			lines += strings.Count(s[:b], "\n")
			break
		}
		return lines
	}

	lines := 0
	current := 0
	for i, child := range n.children {
		cs := n.childSummaries[i]
		if current+cs.Chars <= offset {
			lines += cs.Lines
			current += cs.Chars
			continue
		}
		lines += child.linesBefore(offset - current)
		break
	}
	return lines
}
