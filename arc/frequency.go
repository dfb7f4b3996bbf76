package arc

import (
	"sync"

	"github.com/IvanBrykalov/polycache/internal/list"
)

// frequencyPart is the T2 side of ARC: live entries organized in
// per-frequency buckets with a minimum-frequency cursor, plus the B2
// ghost history. The victim is always the oldest entry of the lowest
// bucket; like T1, demoted keys keep no value.
type frequencyPart[K comparable, V any] struct {
	mu sync.Mutex

	cap      int
	ghostCap int

	live    map[K]*list.Node[K, V]
	buckets map[int]*list.List[K, V]
	minFreq int

	ghost      map[K]*list.Node[K, struct{}]
	ghostOrder *list.List[K, struct{}]

	onEvict func(K, V)
}

func newFrequencyPart[K comparable, V any](capacity int, onEvict func(K, V)) *frequencyPart[K, V] {
	return &frequencyPart[K, V]{
		cap:        capacity,
		ghostCap:   capacity,
		live:       make(map[K]*list.Node[K, V], capacity),
		buckets:    make(map[int]*list.List[K, V]),
		minFreq:    1,
		ghost:      make(map[K]*list.Node[K, struct{}], capacity),
		ghostOrder: list.New[K, struct{}](),
		onEvict:    onEvict,
	}
}

// put inserts or updates k→v and reports whether k is now live here.
// Updating a live key counts as an access and raises its frequency.
func (p *frequencyPart[K, V]) put(k K, v V) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cap == 0 {
		return false
	}
	if n, ok := p.live[k]; ok {
		n.Value = v
		p.raise(n)
		return true
	}
	if len(p.live) >= p.cap {
		p.evictLeastFrequent()
	}
	n := &list.Node[K, V]{Key: k, Value: v, Count: 1}
	p.live[k] = n
	p.bucket(1).PushBack(n)
	p.minFreq = 1
	return true
}

// get returns the value for k on hit, raising its frequency.
func (p *frequencyPart[K, V]) get(k K) (V, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n, ok := p.live[k]
	if !ok {
		var zero V
		return zero, false
	}
	v := n.Value
	p.raise(n)
	return v, true
}

// checkGhost removes k from the ghost history and reports whether it was
// there.
func (p *frequencyPart[K, V]) checkGhost(k K) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	g, ok := p.ghost[k]
	if !ok {
		return false
	}
	p.ghostOrder.Remove(g)
	delete(p.ghost, k)
	return true
}

// increaseCapacity grows the live capacity by one.
func (p *frequencyPart[K, V]) increaseCapacity() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cap++
}

// decreaseCapacity shrinks the live capacity by one, evicting first when
// full. It fails when the capacity is already 0.
func (p *frequencyPart[K, V]) decreaseCapacity() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cap == 0 {
		return false
	}
	if len(p.live) >= p.cap {
		p.evictLeastFrequent()
	}
	p.cap--
	return true
}

func (p *frequencyPart[K, V]) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.live)
}

// -------------------- internals (mu held) --------------------

// raise moves n one frequency bucket up, advancing minFreq past a
// drained minimum bucket.
func (p *frequencyPart[K, V]) raise(n *list.Node[K, V]) {
	old := n.Count
	p.unbucket(n)
	n.Count = old + 1
	p.bucket(n.Count).PushBack(n)
	if old == p.minFreq && p.buckets[old] == nil {
		p.minFreq = n.Count
	}
}

func (p *frequencyPart[K, V]) bucket(f int) *list.List[K, V] {
	b := p.buckets[f]
	if b == nil {
		b = list.New[K, V]()
		p.buckets[f] = b
	}
	return b
}

func (p *frequencyPart[K, V]) unbucket(n *list.Node[K, V]) {
	b := p.buckets[n.Count]
	b.Remove(n)
	if b.Len() == 0 {
		delete(p.buckets, n.Count)
	}
}

// evictLeastFrequent demotes the oldest entry of the minFreq bucket to
// the ghost history.
func (p *frequencyPart[K, V]) evictLeastFrequent() {
	b := p.buckets[p.minFreq]
	if b == nil {
		p.updateMinFreq()
		if b = p.buckets[p.minFreq]; b == nil {
			return
		}
	}
	n := b.Front()
	p.unbucket(n)
	delete(p.live, n.Key)
	if p.buckets[p.minFreq] == nil {
		p.updateMinFreq()
	}
	p.pushGhost(n.Key)
	if p.onEvict != nil {
		p.onEvict(n.Key, n.Value)
	}
}

func (p *frequencyPart[K, V]) updateMinFreq() {
	smallest := 0
	for f := range p.buckets {
		if smallest == 0 || f < smallest {
			smallest = f
		}
	}
	if smallest == 0 {
		smallest = 1
	}
	p.minFreq = smallest
}

func (p *frequencyPart[K, V]) pushGhost(k K) {
	if p.ghostCap <= 0 {
		return
	}
	if len(p.ghost) >= p.ghostCap {
		if old := p.ghostOrder.Front(); old != nil {
			p.ghostOrder.Remove(old)
			delete(p.ghost, old.Key)
		}
	}
	g := &list.Node[K, struct{}]{Key: k}
	p.ghost[k] = g
	p.ghostOrder.PushBack(g)
}
