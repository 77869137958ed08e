package paginate

// Union returns the distinct elements of a followed by the elements of b not
// already present, in first-occurrence order. The result never aliases a or b.
func Union[ID comparable](a, b []ID) []ID {
	out := make([]ID, 0, len(a)+len(b))
	seen := make(map[ID]struct{}, len(a)+len(b))

	for _, list := range [2][]ID{a, b} {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}

	return out
}
