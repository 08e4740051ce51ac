package diff

import "sort"

// CollectPaths walks a JSON Schema and returns every property path, sorted.
// Object members extend the prefix with ".name"; array items append "[]".
func CollectPaths(schema any) []string {
	acc := map[string]struct{}{}
	collect(schema, "", acc)
	return sortedKeys(acc)
}

func collect(schema any, prefix string, acc map[string]struct{}) {
	obj, ok := schema.(map[string]any)
	if !ok {
		return
	}

	if props, ok := obj["properties"].(map[string]any); ok {
		for k, v := range props {
			next := k
			if prefix != "" {
				next = prefix + "." + k
			}
			acc[next] = struct{}{}
			collect(v, next, acc)
		}
	}

	if items, ok := obj["items"]; ok {
		next := prefix + "[]"
		acc[next] = struct{}{}
		collect(items, next, acc)
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
