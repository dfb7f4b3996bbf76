package arc

import (
	"sync"

	"github.com/IvanBrykalov/polycache/internal/list"
)

// recencyPart is the T1 side of ARC: an LRU live list plus the B1 ghost
// history. Evicted keys are demoted to the ghost list without their
// values; a ghost hit is the signal that T1 deserves more capacity.
//
// Live capacity is dynamic (the coordinator shifts it on ghost hits);
// ghost capacity stays fixed at the initial live capacity so capacity
// shifts do not immediately invalidate the history.
type recencyPart[K comparable, V any] struct {
	mu sync.Mutex

	cap       int
	ghostCap  int
	threshold int // hit count at which an entry should move to the frequency side

	live  map[K]*list.Node[K, V]
	order *list.List[K, V]

	ghost      map[K]*list.Node[K, struct{}]
	ghostOrder *list.List[K, struct{}]

	onEvict func(K, V)
}

func newRecencyPart[K comparable, V any](capacity, threshold int, onEvict func(K, V)) *recencyPart[K, V] {
	return &recencyPart[K, V]{
		cap:        capacity,
		ghostCap:   capacity,
		threshold:  threshold,
		live:       make(map[K]*list.Node[K, V], capacity),
		order:      list.New[K, V](),
		ghost:      make(map[K]*list.Node[K, struct{}], capacity),
		ghostOrder: list.New[K, struct{}](),
		onEvict:    onEvict,
	}
}

// put inserts or updates k→v and reports whether k is now live here.
func (p *recencyPart[K, V]) put(k K, v V) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cap == 0 {
		return false
	}
	if n, ok := p.live[k]; ok {
		n.Value = v
		p.order.MoveToBack(n)
		return true
	}
	if len(p.live) >= p.cap {
		p.evictOldest()
	}
	n := &list.Node[K, V]{Key: k, Value: v, Count: 1}
	p.live[k] = n
	p.order.PushBack(n)
	return true
}

// get returns the value on hit, promoting the entry to MRU and bumping
// its hit count. promote reports that the count reached the transform
// threshold and the entry belongs on the frequency side now.
func (p *recencyPart[K, V]) get(k K) (v V, promote, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n, ok := p.live[k]
	if !ok {
		var zero V
		return zero, false, false
	}
	p.order.MoveToBack(n)
	n.Count++
	return n.Value, n.Count >= p.threshold, true
}

// checkGhost removes k from the ghost history and reports whether it was
// there. Ghost membership is only ever a boolean signal; no value exists.
func (p *recencyPart[K, V]) checkGhost(k K) bool {
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
func (p *recencyPart[K, V]) increaseCapacity() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cap++
}

// decreaseCapacity shrinks the live capacity by one, evicting first when
// full. It fails when the capacity is already 0.
func (p *recencyPart[K, V]) decreaseCapacity() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cap == 0 {
		return false
	}
	if len(p.live) >= p.cap {
		p.evictOldest()
	}
	p.cap--
	return true
}

func (p *recencyPart[K, V]) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.live)
}

// evictOldest demotes the LRU live entry to the ghost history, dropping
// its value. mu held.
func (p *recencyPart[K, V]) evictOldest() {
	n := p.order.Front()
	if n == nil {
		return
	}
	p.order.Remove(n)
	delete(p.live, n.Key)
	p.pushGhost(n.Key)
	if p.onEvict != nil {
		p.onEvict(n.Key, n.Value)
	}
}

// pushGhost appends k to the ghost history, trimming its oldest entry
// when the history is full. mu held.
func (p *recencyPart[K, V]) pushGhost(k K) {
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
