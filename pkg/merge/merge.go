// Package merge folds an untyped imported document into a base document.
package merge

// DeepMerge returns base with override applied. Keys whose override value is
// nil, "" or an empty list are skipped, so an import never erases data with
// emptiness. Nested maps merge recursively; any other value, lists included,
// replaces the base value whole. Keys unknown to base are copied. Neither
// argument is modified.
func DeepMerge(base, override map[string]any) map[string]any {
	result := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range override {
		if isEmpty(v) {
			continue
		}
		ov, overrideIsMap := asMap(v)
		bv, baseIsMap := asMap(result[k])
		if overrideIsMap && baseIsMap {
			result[k] = DeepMerge(bv, ov)
			continue
		}
		result[k] = v
	}
	return result
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	}
	return false
}

// asMap accepts the map shapes produced by encoding/json and yaml.v3.
func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}
