// Package envslice edits KEY=VALUE environment slices.
package envslice

import "strings"

// Get returns the value for key from an env slice. When the key appears more
// than once the last entry wins, matching how the OS resolves duplicates.
func Get(env []string, key string) (string, bool) {
	value, found := "", false
	for _, entry := range env {
		k, v, ok := strings.Cut(entry, "=")
		if ok && k == key {
			value, found = v, true
		}
	}
	return value, found
}

// Set returns env with every entry for key replaced by a single key=value
// entry, keeping the position of the first match.
func Set(env []string, key string, value string) []string {
	return set(env, key, value, func(a, b string) bool { return a == b })
}

// SetFold is Set with case-insensitive key matching, for Windows where
// "Path" and "PATH" name the same variable.
func SetFold(env []string, key string, value string) []string {
	return set(env, key, value, strings.EqualFold)
}

func set(env []string, key string, value string, match func(a, b string) bool) []string {
	entry := key + "=" + value
	result := make([]string, 0, len(env)+1)
	replaced := false
	for _, existing := range env {
		k, _, ok := strings.Cut(existing, "=")
		if ok && match(k, key) {
			if !replaced {
				result = append(result, entry)
				replaced = true
			}
			continue
		}
		result = append(result, existing)
	}
	if !replaced {
		result = append(result, entry)
	}
	return result
}
