package secret

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

// ExpandEnvStrict expands $VAR and ${VAR} references in s from the process
// environment. Every referenced variable must be set; unset names are
// reported together in one ErrMissingEnv error. "$$" yields a literal "$".
func ExpandEnvStrict(s string) (string, error) {
	return expandStrict(s, os.LookupEnv)
}

func expandStrict(s string, lookup func(string) (string, bool)) (string, error) {
	if !strings.Contains(s, "$") {
		return s, nil
	}

	var missing []string
	out := os.Expand(s, func(name string) string {
		if name == "$" {
			return "$"
		}
		v, ok := lookup(name)
		if !ok {
			if !slices.Contains(missing, name) {
				missing = append(missing, name)
			}
			return ""
		}
		return v
	})

	if len(missing) > 0 {
		slices.Sort(missing)
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}
	return out, nil
}
