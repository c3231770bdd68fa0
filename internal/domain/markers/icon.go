package markers

import (
	"strings"

	"github.com/FACorreiaa/nyc-restroom-finder/internal/types"
)

// iconCategoryFor picks the legend icon by a case-insensitive substring
// match on the location name. The park check runs before the playground
// check, so a name like "Parkside Playground" classifies as Park. That
// tie-break is inherited behavior and kept as given.
func iconCategoryFor(name string) types.IconCategory {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "park"):
		return types.IconPark
	case strings.Contains(lower, "playground"):
		return types.IconPlayground
	default:
		return types.IconOther
	}
}

// titleMatches is the search predicate: case-insensitive substring.
// Empty text matches every title.
func titleMatches(title, text string) bool {
	return strings.Contains(strings.ToLower(title), strings.ToLower(text))
}
