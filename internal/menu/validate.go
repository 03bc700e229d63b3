package menu

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Validate checks a forest and returns warnings.
// None of the warnings prevent the forest from rendering.
func Validate(forest Forest, maxDepth int) []string {
	var warnings []string

	if maxDepth > 0 {
		if depth := forest.Depth(); depth > maxDepth {
			warnings = append(warnings, fmt.Sprintf("Menu is %d levels deep; nodes below level %d will not expand", depth, maxDepth))
		}
	}

	var walk func(level []Node, trail []string)
	walk = func(level []Node, trail []string) {
		seen := make(map[string]bool)
		for i, n := range level {
			where := describe(trail, i)
			if strings.TrimSpace(n.Name) == "" {
				warnings = append(warnings, fmt.Sprintf("Node %s has an empty name", where))
			} else if seen[n.Name] {
				warnings = append(warnings, fmt.Sprintf("Duplicate name %q under %s", n.Name, parentLabel(trail)))
			}
			seen[n.Name] = true
			walk(n.Children, append(trail[:len(trail):len(trail)], labelOr(n.Name, i)))
		}
	}
	walk(forest, nil)

	return warnings
}

// describe names a node by its label trail and sibling index.
func describe(trail []string, idx int) string {
	if len(trail) == 0 {
		return fmt.Sprintf("#%d at top level", idx)
	}
	return fmt.Sprintf("#%d under %s", idx, strings.Join(trail, " › "))
}

func parentLabel(trail []string) string {
	if len(trail) == 0 {
		return "top level"
	}
	return strings.Join(trail, " › ")
}

func labelOr(name string, idx int) string {
	if name == "" {
		return fmt.Sprintf("#%d", idx)
	}
	return name
}

// Suggest returns the label in forest closest to query by edit distance,
// or "" when nothing is reasonably close.
func Suggest(query string, forest Forest) string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return ""
	}

	best := ""
	bestDist := -1
	var walk func(level []Node)
	walk = func(level []Node) {
		for _, n := range level {
			if n.Name != "" {
				dist := levenshtein.ComputeDistance(query, strings.ToLower(n.Name))
				if bestDist < 0 || dist < bestDist {
					best, bestDist = n.Name, dist
				}
			}
			walk(n.Children)
		}
	}
	walk(forest)

	// Reject suggestions that share less than half the query
	if bestDist < 0 || bestDist > (len(query)+1)/2 {
		return ""
	}
	return best
}
