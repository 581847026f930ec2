package spec

// Location is a persistent linked-list path from the root of a document to
// a single value, built from the tail forward so that sibling Nodes created
// from the same parent share the rest of their path.
//
// A nil *Location represents the root location (the empty path).
type Location struct {
	// key is the name or index component at this link. The root has no
	// link of its own: it is the nil *Location.
	key  any // string or int
	prev *Location
}

// Push returns a new Location extending loc with key, which must be a
// string (object member name) or an int (array index).
func (loc *Location) Push(key any) *Location {
	return &Location{key: key, prev: loc}
}

// Keys returns loc's path components in root-to-leaf order.
func (loc *Location) Keys() []any {
	n := 0
	for l := loc; l != nil; l = l.prev {
		n++
	}

	keys := make([]any, n)
	i := n - 1
	for l := loc; l != nil; l = l.prev {
		keys[i] = l.key
		i--
	}
	return keys
}

// Len returns the number of components in loc.
func (loc *Location) Len() int {
	n := 0
	for l := loc; l != nil; l = l.prev {
		n++
	}
	return n
}

// Last returns the final path component and true, or nil and false if loc is
// the root location.
func (loc *Location) Last() (any, bool) {
	if loc == nil {
		return nil, false
	}
	return loc.key, true
}
