package rope

// ChunkIter walks the leaf chunks of a rope in order.
type ChunkIter struct {
	stack []*node
	cur   string
	pos   int
	next  int
}

// Chunks returns an iterator over the rope's leaf text.
func (r Rope) Chunks() *ChunkIter {
	it := &ChunkIter{}
	if r.root != nil {
		it.stack = append(it.stack, r.root)
	}
	return it
}

// Next advances to the next chunk.
func (it *ChunkIter) Next() bool {
	for len(it.stack) > 0 {
		n := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]
		if n.isLeaf() {
			if n.text == "" {
				continue
			}
			it.cur = n.text
			it.pos = it.next
			it.next += len(n.text)
			return true
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			it.stack = append(it.stack, n.children[i])
		}
	}
	return false
}

// Chunk returns the current chunk text.
func (it *ChunkIter) Chunk() string {
	return it.cur
}

// Offset returns the byte offset of the current chunk.
func (it *ChunkIter) Offset() int {
	return it.pos
}
