package domain

// Coalesce returns the first value in vals that is not the zero value.
func Coalesce[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}

// Deref returns *p, or fallback when p is nil. Model replies leave optional
// activity fields out, which decode to nil pointers.
func Deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
