// Package pure memoizes pure functions.
//
// Tableize turns a function into a lazily filled lookup table keyed by its
// arguments. Only use it on functions whose result depends on nothing but
// their inputs.
package pure

type args4[I1, I2, I3, I4 comparable] struct {
	i1 I1
	i2 I2
	i3 I3
	i4 I4
}

// TableizeI4O1 memoizes a four-argument pure function.
func TableizeI4O1[I1, I2, I3, I4 comparable, O1 any](
	pureFn func(I1, I2, I3, I4) O1,
	maxTableSize int,
) func(I1, I2, I3, I4) O1 {
	tableized := tableize(func(a args4[I1, I2, I3, I4]) O1 {
		return pureFn(a.i1, a.i2, a.i3, a.i4)
	}, maxTableSize)
	return func(i1 I1, i2 I2, i3 I3, i4 I4) O1 {
		return tableized(args4[I1, I2, I3, I4]{i1, i2, i3, i4})
	}
}

func tableize[K comparable, O any](pureFn func(K) O, maxTableSize int) func(K) O {
	memo := NewTable[K, O](maxTableSize)
	return func(key K) O {
		v, ok := memo.Load(key)
		if !ok {
			v = pureFn(key)
			memo.Store(key, v)
		}
		return v
	}
}
