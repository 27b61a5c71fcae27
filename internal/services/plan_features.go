package services

import (
	"fmt"
	"strings"

	"brandoraBack/internal/models"
)

// Category substrings covered by the structured plan fields. A free-text
// feature mentioning one of these duplicates a structured entry and is
// dropped.
var structuredCategories = []string{
	"credit",
	"project",
	"brand message",
	"product version",
	"team",
	"support",
	"api",
	"branding",
}

// FormatPlanFeatures merges a plan's three feature declarations into one
// ordered, de-duplicated display list: highlighted features first, then the
// structured fields in a fixed order, then remaining free-text features.
// Duplicates are matched on trimmed, case-insensitive text.
func FormatPlanFeatures(plan models.Plan) []string {
	out := make([]string, 0, len(plan.HighlightedFeatures)+8+len(plan.Features))
	seen := make(map[string]bool)

	add := func(feature string) {
		feature = strings.TrimSpace(feature)
		if feature == "" {
			return
		}
		key := strings.ToLower(feature)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, feature)
	}

	for _, f := range plan.HighlightedFeatures {
		add(f)
	}

	add(countedFeature(plan.Credits, "Credit", "Credits"))
	add(countedFeature(plan.MaxProjects, "Project", "Projects"))
	add(countedFeature(plan.MaxBrandMessages, "Brand Message", "Brand Messages"))
	add(countedFeature(plan.MaxProductVersions, "Product Version", "Product Versions"))
	add(countedFeature(plan.TeamMembers, "Team Member", "Team Members"))
	if level := strings.TrimSpace(plan.SupportLevel); level != "" {
		add(titleCase(level) + " Support")
	}
	if plan.APIAccess {
		add("API Access")
	}
	if plan.CustomBranding {
		add("Custom Branding")
	}

	for _, f := range plan.Features {
		if coveredByStructured(f) {
			continue
		}
		add(f)
	}

	return out
}

// countedFeature renders a numeric limit: -1 is unlimited, zero or unset is
// omitted entirely.
func countedFeature(n int, singular, plural string) string {
	switch {
	case n == -1:
		return "Unlimited " + plural
	case n == 0:
		return ""
	case n == 1:
		return fmt.Sprintf("1 %s", singular)
	default:
		return fmt.Sprintf("%d %s", n, plural)
	}
}

func coveredByStructured(feature string) bool {
	lower := strings.ToLower(feature)
	for _, cat := range structuredCategories {
		if strings.Contains(lower, cat) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	parts := strings.Fields(strings.ToLower(s))
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
