package model

// CategorySet is an ordered set of category names: duplicates collapse and
// first-seen order is preserved.
type CategorySet struct {
	seen  map[string]struct{}
	items []string
}

// NewCategorySet creates a CategorySet with the given initial members.
func NewCategorySet(names ...string) *CategorySet {
	s := &CategorySet{seen: make(map[string]struct{})}
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add inserts a name unless already present. Returns true when inserted.
func (x *CategorySet) Add(name string) bool {
	if _, ok := x.seen[name]; ok {
		return false
	}
	x.seen[name] = struct{}{}
	x.items = append(x.items, name)
	return true
}

// Has reports whether name is a member.
func (x *CategorySet) Has(name string) bool {
	_, ok := x.seen[name]
	return ok
}

// Empty reports whether the set has no members.
func (x *CategorySet) Empty() bool {
	return len(x.items) == 0
}

// Len returns the number of members.
func (x *CategorySet) Len() int {
	return len(x.items)
}

// Values returns the members in insertion order. The returned slice is a
// copy and safe to hold.
func (x *CategorySet) Values() []string {
	values := make([]string, len(x.items))
	copy(values, x.items)
	return values
}
