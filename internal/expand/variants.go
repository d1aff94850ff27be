package expand

// VariantSet is an ordered set of search terms. Insertion order is kept and
// duplicates are dropped.
type VariantSet struct {
	terms []string
	index map[string]struct{}
}

func NewVariantSet(terms ...string) VariantSet {
	v := VariantSet{index: make(map[string]struct{}, len(terms))}
	for _, t := range terms {
		v.add(t)
	}
	return v
}

func (v *VariantSet) add(term string) {
	if term == "" {
		return
	}
	if v.index == nil {
		v.index = make(map[string]struct{})
	}
	if _, ok := v.index[term]; ok {
		return
	}
	v.index[term] = struct{}{}
	v.terms = append(v.terms, term)
}

// Terms returns a copy of the variants in order.
func (v VariantSet) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

func (v VariantSet) Len() int { return len(v.terms) }

func (v VariantSet) Contains(term string) bool {
	_, ok := v.index[term]
	return ok
}
