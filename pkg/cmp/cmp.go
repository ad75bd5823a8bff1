// Comparison helpers for tests and for model equality.
package cmp

type BiPredicator[V any, U any] func(a V, b U) bool

// a == b as BiPredicator function
func EqEq[T comparable](a, b T) bool {
	return a == b
}

// SliceEq checks two slices have the same elements in the same order.
func SliceEq[T comparable](a []T, b []T) bool {
	return SliceEqWith(a, b, EqEq[T])
}

func SliceEqWith[T any, U any](a []T, b []U, pred BiPredicator[T, U]) bool {
	if len(a) != len(b) {
		return false
	}
	for nth := range a {
		if !pred(a[nth], b[nth]) {
			return false
		}
	}
	return true
}

// SliceContentEq checks two slices are equal as bags (= ordering is ignored).
//
//	SliceContentEq([]string{"a", "b"}, []string{"b", "a"})       // ==> true
//	SliceContentEq([]string{"a", "b", "b"}, []string{"a", "b"})  // ==> false
func SliceContentEq[T comparable](a, b []T) bool {
	return SliceContentEqWith(a, b, EqEq[T])
}

func SliceContentEqWith[S, T any](a []S, b []T, equiv BiPredicator[S, T]) bool {
	if len(a) != len(b) {
		return false
	}

	rest := make(map[int]*T, len(b))
	for i := range b {
		rest[i] = &b[i]
	}

NEXT_A:
	for _, va := range a {
		for k, vb := range rest {
			if equiv(va, *vb) {
				delete(rest, k)
				continue NEXT_A
			}
		}
		return false
	}

	return len(rest) == 0
}

// MapEqWith checks two maps have the same keys and equivalent values.
func MapEqWith[K comparable, V any, U any](a map[K]V, b map[K]U, equiv BiPredicator[V, U]) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !equiv(va, vb) {
			return false
		}
	}
	return true
}

// KeysEq checks two maps have the same key set.
func KeysEq[K comparable, V any, U any](a map[K]V, b map[K]U) bool {
	return MapEqWith(a, b, func(V, U) bool { return true })
}
