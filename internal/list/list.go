// Package list provides the intrusive doubly linked list shared by all
// eviction engines. Unlike container/list it is generic over the cached
// key/value pair and keeps the access counter on the node itself, so an
// engine needs exactly one allocation and one map entry per resident key.
package list

// Node is an intrusive list element. A node belongs to exactly one List
// at any time and to at most one index map of its owning engine.
type Node[K comparable, V any] struct {
	Key   K
	Value V

	// Count is the per-node access counter. Engines give it meaning:
	// hit count for the promotion threshold (ARC T1), frequency class
	// for frequency-bucketed engines (LFU, ARC T2).
	Count int

	prev, next *Node[K, V]
}

// List is a doubly linked list with a ring sentinel. Front is the cold
// (least recently used) end; Back is the hot (most recently used) end.
// Insertion happens at Back, eviction at Front. All operations are O(1).
//
// Concurrency: a List performs no locking of its own. Engines guard it
// with their state mutex.
type List[K comparable, V any] struct {
	root Node[K, V] // sentinel; root.next is front, root.prev is back
	len  int
}

// New returns an initialized empty list.
func New[K comparable, V any]() *List[K, V] {
	l := &List[K, V]{}
	l.root.prev = &l.root
	l.root.next = &l.root
	return l
}

// Len returns the number of elements in the list.
func (l *List[K, V]) Len() int { return l.len }

// Front returns the coldest element, or nil if the list is empty.
func (l *List[K, V]) Front() *Node[K, V] {
	if l.len == 0 {
		return nil
	}
	return l.root.next
}

// Back returns the hottest element, or nil if the list is empty.
func (l *List[K, V]) Back() *Node[K, V] {
	if l.len == 0 {
		return nil
	}
	return l.root.prev
}

// PushBack links n at the hot end. n must not be an element of any list.
func (l *List[K, V]) PushBack(n *Node[K, V]) {
	at := l.root.prev
	n.prev = at
	n.next = &l.root
	at.next = n
	l.root.prev = n
	l.len++
}

// Remove unlinks n. n must be an element of l.
func (l *List[K, V]) Remove(n *Node[K, V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
	l.len--
}

// MoveToBack relinks n at the hot end. n must be an element of l.
func (l *List[K, V]) MoveToBack(n *Node[K, V]) {
	if l.root.prev == n {
		return
	}
	n.prev.next = n.next
	n.next.prev = n.prev
	at := l.root.prev
	n.prev = at
	n.next = &l.root
	at.next = n
	l.root.prev = n
}
