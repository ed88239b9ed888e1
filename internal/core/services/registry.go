package services

// registry is an insertion-ordered map of entities keyed by id.
type registry[T any] struct {
	items map[string]T
	order []string
	clone func(T) T // nil copies by value
}

func newRegistry[T any](clone func(T) T) *registry[T] {
	return &registry[T]{items: make(map[string]T), clone: clone}
}

func (r *registry[T]) has(id string) bool {
	_, ok := r.items[id]
	return ok
}

func (r *registry[T]) add(id string, v T) {
	if !r.has(id) {
		r.order = append(r.order, id)
	}
	r.items[id] = r.copy(v)
}

func (r *registry[T]) get(id string) (T, bool) {
	v, ok := r.items[id]
	if !ok {
		return v, false
	}
	return r.copy(v), true
}

func (r *registry[T]) list() []T {
	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.copy(r.items[id]))
	}
	return out
}

func (r *registry[T]) ids() []string {
	return append([]string(nil), r.order...)
}

func (r *registry[T]) copy(v T) T {
	if r.clone == nil {
		return v
	}
	return r.clone(v)
}
