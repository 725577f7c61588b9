package pure

import "sync"

// Table is a bounded memo table split into two generations. Stores go to
// the head generation; when it holds maxSize entries it becomes the tail
// and the previous tail is dropped. A hit in the tail is promoted.
type Table[K comparable, V any] struct {
	mu      sync.Mutex
	head    map[K]V
	tail    map[K]V
	maxSize int
}

func NewTable[K comparable, V any](maxSize int) *Table[K, V] {
	if maxSize <= 0 {
		panic("maxSize should be greater than 0")
	}
	return &Table[K, V]{
		head:    make(map[K]V, maxSize),
		tail:    map[K]V{},
		maxSize: maxSize,
	}
}

func (t *Table[K, V]) Load(key K) (V, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := t.head[key]; ok {
		return v, true
	}
	v, ok := t.tail[key]
	if ok {
		delete(t.tail, key)
		t.storeLocked(key, v)
	}
	return v, ok
}

func (t *Table[K, V]) Store(key K, value V) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.storeLocked(key, value)
}

// Len counts the entries of both generations.
func (t *Table[K, V]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.head) + len(t.tail)
}

func (t *Table[K, V]) storeLocked(key K, value V) {
	if _, ok := t.head[key]; !ok && len(t.head) >= t.maxSize {
		t.tail = t.head
		t.head = make(map[K]V, t.maxSize)
	}
	t.head[key] = value
}
