package cache

import "strings"

// keyType returns the namespace of key, used to label cache hook events.
func keyType(key string) string {
	if ns, _, ok := strings.Cut(key, ":"); ok {
		return ns
	}
	return "unknown"
}
