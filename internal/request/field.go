// Package request builds nested ARM request records from sparse,
// optionally supplied inputs.
package request

// Field is an input whose presence is tracked separately from its value.
// The zero Field is absent.
type Field[T any] struct {
	value T
	set   bool
}

// Some returns a present Field holding v.
func Some[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// Set stores v and marks the field present.
func (f *Field[T]) Set(v T) {
	f.value = v
	f.set = true
}

func (f Field[T]) Get() (T, bool) {
	return f.value, f.set
}

func (f Field[T]) Present() bool {
	return f.set
}

// Value returns the stored value, or the zero value of T when absent.
func (f Field[T]) Value() T {
	return f.value
}

// NonEmpty reports whether a list field was supplied with at least one
// element. A present but empty list is treated like an absent one.
func NonEmpty[T any](f Field[[]T]) bool {
	return f.set && len(f.value) > 0
}
