package catalog

// RecommendationOverrides holds operator-edited recommended quantities keyed by
// item name and day type. An override wins over the catalog value for that day
// type only; day types without an override fall back to the catalog.
type RecommendationOverrides map[string]map[DayType]int

// Get returns the override for name and day, if one is set
func (o RecommendationOverrides) Get(name string, day DayType) (int, bool) {
	days, ok := o[name]
	if !ok {
		return 0, false
	}
	v, ok := days[day]
	return v, ok
}

// With returns a copy with the override for name and day set to qty
func (o RecommendationOverrides) With(name string, day DayType, qty int) RecommendationOverrides {
	out := o.Clone()
	if out[name] == nil {
		out[name] = make(map[DayType]int)
	}
	out[name][day] = clampQuantity(qty)
	return out
}

// Without returns a copy with every override for name removed
func (o RecommendationOverrides) Without(name string) RecommendationOverrides {
	out := o.Clone()
	delete(out, name)
	return out
}

// Clone returns a deep copy; the result is never nil
func (o RecommendationOverrides) Clone() RecommendationOverrides {
	out := make(RecommendationOverrides, len(o))
	for name, days := range o {
		cp := make(map[DayType]int, len(days))
		for d, v := range days {
			cp[d] = v
		}
		out[name] = cp
	}
	return out
}

// Apply returns the catalog with overrides merged into each item's recommendations
func (o RecommendationOverrides) Apply(c Catalog) Catalog {
	out := c.Clone()
	for i := range out {
		days, ok := o[out[i].Name]
		if !ok {
			continue
		}
		if out[i].Recommended == nil {
			out[i].Recommended = Recommendation{}
		}
		for day, qty := range days {
			out[i].Recommended[day] = qty
		}
	}
	return out
}
