package span

import "slices"

// Entry is one interval stored in a Tree together with its value.
type Entry[V any] struct {
	Interval Interval
	Value    V
}

// Tree is an interval tree: an AVL tree keyed by interval start where
// every node caches the greatest end in its subtree. Equal starts are
// inserted to the left. The zero value is an empty tree.
type Tree[V any] struct {
	root *treeNode[V]
	size int
}

type treeNode[V any] struct {
	entry  Entry[V]
	max    int
	height int
	left   *treeNode[V]
	right  *treeNode[V]
}

// Len returns the number of stored intervals.
func (t *Tree[V]) Len() int { return t.size }

// Height returns the height of the tree; an empty tree has height 0.
func (t *Tree[V]) Height() int { return height(t.root) }

// Insert stores v under iv.
func (t *Tree[V]) Insert(iv Interval, v V) {
	t.root = insertNode(t.root, Entry[V]{Interval: iv, Value: v})
	t.size++
}

// Find returns every entry whose interval intersects q, ordered by start
// then end. Zero-width intervals never match.
func (t *Tree[V]) Find(q Interval) []Entry[V] {
	if q.IsEmpty() || t.root == nil {
		return nil
	}
	var out []Entry[V]
	stack := []*treeNode[V]{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.entry.Interval.Intersects(q) {
			out = append(out, n.entry)
		}
		if n.left != nil && q.Start < n.left.max {
			stack = append(stack, n.left)
		}
		if n.right != nil && q.End > n.entry.Interval.Start {
			stack = append(stack, n.right)
		}
	}
	sortEntries(out)
	return out
}

// All returns every entry in start order.
func (t *Tree[V]) All() []Entry[V] {
	out := make([]Entry[V], 0, t.size)
	var walk func(n *treeNode[V])
	walk = func(n *treeNode[V]) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, n.entry)
		walk(n.right)
	}
	walk(t.root)
	return out
}

// Remove deletes the first entry stored under exactly iv for which match
// returns true. It reports whether an entry was removed.
func (t *Tree[V]) Remove(iv Interval, match func(V) bool) bool {
	var removed bool
	t.root, removed = removeNode(t.root, iv, match)
	if removed {
		t.size--
	}
	return removed
}

// UpdateInterval moves the first entry stored under old that match
// accepts to next, passing its value through rewrite when rewrite is not
// nil. It reports whether an entry was found.
func (t *Tree[V]) UpdateInterval(old Interval, match func(V) bool, next Interval, rewrite func(V) V) bool {
	var found V
	ok := t.Remove(old, func(v V) bool {
		if match(v) {
			found = v
			return true
		}
		return false
	})
	if !ok {
		return false
	}
	if rewrite != nil {
		found = rewrite(found)
	}
	t.Insert(next, found)
	return true
}

func sortEntries[V any](entries []Entry[V]) {
	slices.SortStableFunc(entries, func(a, b Entry[V]) int {
		if a.Interval.Start != b.Interval.Start {
			return a.Interval.Start - b.Interval.Start
		}
		return a.Interval.End - b.Interval.End
	})
}

func height[V any](n *treeNode[V]) int {
	if n == nil {
		return 0
	}
	return n.height
}

func (n *treeNode[V]) fix() {
	n.height = 1 + max(height(n.left), height(n.right))
	n.max = n.entry.Interval.End
	if n.left != nil && n.left.max > n.max {
		n.max = n.left.max
	}
	if n.right != nil && n.right.max > n.max {
		n.max = n.right.max
	}
}

func rotateLeft[V any](n *treeNode[V]) *treeNode[V] {
	r := n.right
	n.right = r.left
	r.left = n
	n.fix()
	r.fix()
	return r
}

func rotateRight[V any](n *treeNode[V]) *treeNode[V] {
	l := n.left
	n.left = l.right
	l.right = n
	n.fix()
	l.fix()
	return l
}

// rebalance restores the height invariant at n after one of its
// subtrees changed height by at most one.
func rebalance[V any](n *treeNode[V]) *treeNode[V] {
	n.fix()
	balance := height(n.left) - height(n.right)
	switch {
	case balance > 1:
		if height(n.left.left) < height(n.left.right) {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case balance < -1:
		if height(n.right.right) < height(n.right.left) {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}
	return n
}

func insertNode[V any](n *treeNode[V], e Entry[V]) *treeNode[V] {
	if n == nil {
		leaf := &treeNode[V]{entry: e}
		leaf.fix()
		return leaf
	}
	if e.Interval.Start <= n.entry.Interval.Start {
		n.left = insertNode(n.left, e)
	} else {
		n.right = insertNode(n.right, e)
	}
	return rebalance(n)
}

func removeNode[V any](n *treeNode[V], iv Interval, match func(V) bool) (*treeNode[V], bool) {
	if n == nil {
		return nil, false
	}
	var removed bool
	switch start := n.entry.Interval.Start; {
	case iv.Start < start:
		n.left, removed = removeNode(n.left, iv, match)
	case iv.Start > start:
		n.right, removed = removeNode(n.right, iv, match)
	default:
		if n.entry.Interval == iv && match(n.entry.Value) {
			return removeRoot(n), true
		}
		// Rotations can leave equal starts on either side.
		n.left, removed = removeNode(n.left, iv, match)
		if !removed {
			n.right, removed = removeNode(n.right, iv, match)
		}
	}
	if !removed {
		return n, false
	}
	return rebalance(n), true
}

func removeRoot[V any](n *treeNode[V]) *treeNode[V] {
	switch {
	case n.left == nil:
		return n.right
	case n.right == nil:
		return n.left
	}
	var succ *treeNode[V]
	n.right, succ = removeMin(n.right)
	succ.left = n.left
	succ.right = n.right
	return rebalance(succ)
}

func removeMin[V any](n *treeNode[V]) (*treeNode[V], *treeNode[V]) {
	if n.left == nil {
		return n.right, n
	}
	var m *treeNode[V]
	n.left, m = removeMin(n.left)
	return rebalance(n), m
}

// Clone returns an independent copy of the tree. Values are copied
// shallowly.
func (t *Tree[V]) Clone() Tree[V] {
	return Tree[V]{root: cloneNode(t.root), size: t.size}
}

func cloneNode[V any](n *treeNode[V]) *treeNode[V] {
	if n == nil {
		return nil
	}
	c := *n
	c.left = cloneNode(n.left)
	c.right = cloneNode(n.right)
	return &c
}
