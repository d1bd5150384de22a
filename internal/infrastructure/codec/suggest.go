package codec

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// suggest returns a " (did you mean ...)" hint naming the registered type
// closest to name, or "" when nothing is close.
func suggest(name string, known []string) string {
	candidates := append([]string(nil), known...)
	sort.Strings(candidates)

	best, bestDist := "", -1
	for _, k := range candidates {
		d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(k))
		if bestDist < 0 || d < bestDist {
			best, bestDist = k, d
		}
	}
	if best == "" || bestDist > max(2, len(name)/3) {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}
