package request

import (
	"github.com/sirupsen/logrus"
)

// Ensure returns the node *p points to, allocating it first if it is nil.
// Calling it again on the same pointer returns the same node.
func Ensure[T any](p **T) *T {
	if *p == nil {
		*p = new(T)
	}
	return *p
}

// Setter assigns one input onto a request record of type R.
type Setter[R any] struct {
	Name  string
	set   bool
	apply func(*R)
}

// Bind returns a setter that runs apply with the field's value only when
// the field was supplied.
func Bind[R, T any](name string, f Field[T], apply func(r *R, v T)) Setter[R] {
	v, ok := f.Get()
	return Setter[R]{
		Name: name,
		set:  ok,
		apply: func(r *R) {
			apply(r, v)
		},
	}
}

// BindList is Bind for list fields. A list supplied without elements is
// treated as absent.
func BindList[R, T any](name string, f Field[[]T], apply func(r *R, v []T)) Setter[R] {
	s := Bind(name, f, apply)
	s.set = NonEmpty(f)
	return s
}

// Force returns a setter that always runs, whether or not the caller
// supplied anything. Use it for the individual fields that must carry a
// concrete value in every request.
func Force[R any](name string, apply func(r *R)) Setter[R] {
	return Setter[R]{
		Name:  name,
		set:   true,
		apply: apply,
	}
}

// Applies reports whether the setter will write to the record.
func (s Setter[R]) Applies() bool {
	return s.set
}

// Group is the set of inputs that land in one sub-record.
type Group[R any] struct {
	Name    string
	Setters []Setter[R]
}

// NewGroup is a convenience constructor for a Group.
func NewGroup[R any](name string, setters ...Setter[R]) Group[R] {
	return Group[R]{Name: name, Setters: setters}
}

// Apply runs every applicable setter in declaration order and returns the
// names of the fields it wrote. Setters are responsible for allocating the
// nested nodes they write into, see Ensure.
func (g Group[R]) Apply(r *R) []string {
	var applied []string
	for _, s := range g.Setters {
		if !s.Applies() {
			continue
		}
		s.apply(r)
		applied = append(applied, s.Name)
	}
	return applied
}

// Build applies groups to r in order and returns r.
func Build[R any](r *R, groups ...Group[R]) *R {
	for _, g := range groups {
		applied := g.Apply(r)
		if len(applied) == 0 {
			continue
		}
		logrus.WithFields(logrus.Fields{
			"group":  g.Name,
			"fields": applied,
		}).Debug("populated sub-record")
	}
	return r
}
