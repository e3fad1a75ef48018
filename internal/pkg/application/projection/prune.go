package projection

// Prune removes null values from maps and null elements from slices, bottom up.
// Containers left empty by the removal are kept.
func Prune(v any) any {
	switch t := v.(type) {
	case map[string]any:
		pruned := make(map[string]any, len(t))
		for key, value := range t {
			if value == nil {
				continue
			}
			pruned[key] = Prune(value)
		}
		return pruned
	case []any:
		pruned := make([]any, 0, len(t))
		for _, value := range t {
			if value == nil {
				continue
			}
			pruned = append(pruned, Prune(value))
		}
		return pruned
	default:
		return v
	}
}
