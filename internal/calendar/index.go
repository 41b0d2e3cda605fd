package calendar

// Index is an insertion-ordered map supporting keyed and positional access.
// The zero value is ready to use.
type Index[K comparable, V any] struct {
	keys   []K
	values []V
	pos    map[K]int
}

// Put appends value under key, or replaces the value in place when key is
// already present (its position is kept).
func (ix *Index[K, V]) Put(key K, value V) {
	if ix.pos == nil {
		ix.pos = make(map[K]int)
	}
	if i, ok := ix.pos[key]; ok {
		ix.values[i] = value
		return
	}
	ix.pos[key] = len(ix.keys)
	ix.keys = append(ix.keys, key)
	ix.values = append(ix.values, value)
}

func (ix *Index[K, V]) Get(key K) (V, bool) {
	i, ok := ix.pos[key]
	if !ok {
		var zero V
		return zero, false
	}
	return ix.values[i], true
}

// IndexOf returns the insertion position of key, or -1.
func (ix *Index[K, V]) IndexOf(key K) int {
	if i, ok := ix.pos[key]; ok {
		return i
	}
	return -1
}

// At returns the value at position i. It panics when i is out of range.
func (ix *Index[K, V]) At(i int) V {
	return ix.values[i]
}

func (ix *Index[K, V]) Len() int {
	return len(ix.keys)
}

func (ix *Index[K, V]) Keys() []K {
	return append([]K(nil), ix.keys...)
}

func (ix *Index[K, V]) Clear() {
	ix.keys = nil
	ix.values = nil
	ix.pos = nil
}
