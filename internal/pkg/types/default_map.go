package types

// DefaultMap is a generic map wrapper that returns default values for
// missing keys.
//
// It is useful when you want to avoid key existence checks and automatically
// initialize map entries with default values produced by a user-defined
// function, e.g. histogram buckets that start at zero:
//
//	m := NewDefaultMap[int](func() int { return 0 })
//	count := m.Get(13) // returns 0 if bucket 13 is not yet in the map
type DefaultMap[K comparable, V any] struct {
	data        map[K]V  // underlying map storing the key-value pairs
	defaultFunc func() V // produces default values for missing keys
}

// NewDefaultMap creates a new DefaultMap with a user-defined default function.
func NewDefaultMap[K comparable, V any](defaultFunc func() V) DefaultMap[K, V] {
	return DefaultMap[K, V]{
		data:        make(map[K]V),
		defaultFunc: defaultFunc,
	}
}

// Get retrieves the value associated with the given key.
//
// If the key is not present, it invokes the default function to generate a
// value, stores it in the map, and returns it.
func (d *DefaultMap[K, V]) Get(key K) V {
	val, ok := d.data[key]
	if ok {
		return val
	}

	val = d.defaultFunc()
	d.data[key] = val
	return val
}

// Set manually assigns a value to the given key in the map.
func (d *DefaultMap[K, V]) Set(key K, val V) {
	d.data[key] = val
}

// Len returns the number of keys currently stored in the map.
func (d *DefaultMap[K, V]) Len() int {
	return len(d.data)
}

// ToMap returns the underlying map used by the DefaultMap, allowing external
// access for iteration, serialization, or bulk operations.
func (d *DefaultMap[K, V]) ToMap() map[K]V {
	return d.data
}
