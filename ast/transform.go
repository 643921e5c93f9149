package ast

// MapNodes applies fn to each node. Returns (newSlice, true) if any node
// changed, or (original, false) if all nodes are identical. The input slice
// is never written to.
func MapNodes(items []Node, fn func(Node) Node) ([]Node, bool) {
	return mapSlice(items, fn)
}

// mapSlice applies fn to each element. Returns (newSlice, true) if any
// element changed, or (original, false) if all elements are identical.
func mapSlice[T any](items []T, fn func(T) T) ([]T, bool) {
	var out []T
	modified := false
	for i, item := range items {
		newItem := fn(item)
		if any(newItem) != any(item) {
			if !modified {
				out = make([]T, len(items))
				copy(out[:i], items[:i])
				modified = true
			}
		}
		if modified {
			out[i] = newItem
		}
	}
	if !modified {
		return items, false
	}
	return out, true
}

// filterNodes drops the nodes keep rejects, copying only when needed.
func filterNodes(items []Node, keep func(Node) bool) ([]Node, bool) {
	for i, n := range items {
		if keep(n) {
			continue
		}
		out := make([]Node, i, len(items))
		copy(out, items[:i])
		for _, m := range items[i+1:] {
			if keep(m) {
				out = append(out, m)
			}
		}
		return out, true
	}
	return items, false
}

// DropNoOps removes NoOperation nodes from a statement list.
func DropNoOps(items []Node) ([]Node, bool) {
	return filterNodes(items, func(n Node) bool { return !IsNoOp(n) })
}
