package promptbuild

// Randomize picks a concrete candidate for every attribute, never RandomSelection.
// Attributes with no concrete candidates are left out. The result depends only on set and seed.
func Randomize(set AttributeSet, seed uint64) Selections {
	rng := newRand(seed)
	out := make(Selections, len(set.attrs))
	for _, attr := range set.attrs {
		concrete := make([]string, 0, len(attr.Values))
		for _, v := range attr.Values {
			if v != RandomSelection {
				concrete = append(concrete, v)
			}
		}
		if v := pick(rng, concrete); v != "" {
			out[attr.Name] = v
		}
	}
	return out
}
