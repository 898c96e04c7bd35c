package schema

// Ordered maps names to values and remembers insertion order.
// The zero value is ready to use.
type Ordered[T any] struct {
	names []string
	items map[string]T
}

// Placement pairs an element with the element declared right before it
type Placement struct {
	Name  string
	After string
}

// Set stores v under name. Overwriting keeps the original position.
func (o *Ordered[T]) Set(name string, v T) {
	if o.items == nil {
		o.items = make(map[string]T)
	}
	if _, exists := o.items[name]; !exists {
		o.names = append(o.names, name)
	}
	o.items[name] = v
}

func (o *Ordered[T]) Get(name string) (T, bool) {
	v, ok := o.items[name]
	return v, ok
}

func (o *Ordered[T]) Has(name string) bool {
	_, ok := o.items[name]
	return ok
}

// Names returns the names in insertion order
func (o *Ordered[T]) Names() []string {
	out := make([]string, len(o.names))
	copy(out, o.names)
	return out
}

func (o *Ordered[T]) Len() int {
	return len(o.names)
}

// Order returns every element paired with its predecessor. The first
// element has no predecessor and is not part of the result.
func (o *Ordered[T]) Order() []Placement {
	if len(o.names) < 2 {
		return nil
	}
	placements := make([]Placement, 0, len(o.names)-1)
	for i := 1; i < len(o.names); i++ {
		placements = append(placements, Placement{Name: o.names[i], After: o.names[i-1]})
	}
	return placements
}

// Missing returns the names of a, in order, that b does not have
func Missing[T any](a, b *Ordered[T]) []string {
	var out []string
	for _, name := range a.names {
		if !b.Has(name) {
			out = append(out, name)
		}
	}
	return out
}
