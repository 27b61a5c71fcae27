package services

import (
	"reflect"
	"testing"

	"brandoraBack/internal/models"
)

func TestFormatPlanFeaturesOrdering(t *testing.T) {
	plan := models.Plan{
		HighlightedFeatures: []string{"Best for agencies", "Priority onboarding"},
		Credits:             500,
		MaxProjects:         -1,
		MaxBrandMessages:    0,
		MaxProductVersions:  3,
		TeamMembers:         1,
		SupportLevel:        "priority",
		APIAccess:           true,
		CustomBranding:      false,
		Features:            []string{"Exports to PDF", "Unlimited projects", "Dedicated support line"},
	}

	got := FormatPlanFeatures(plan)
	want := []string{
		"Best for agencies",
		"Priority onboarding",
		"500 Credits",
		"Unlimited Projects",
		"3 Product Versions",
		"1 Team Member",
		"Priority Support",
		"API Access",
		"Exports to PDF",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v\nwant %v", got, want)
	}
}

func TestFormatPlanFeaturesDedup(t *testing.T) {
	plan := models.Plan{
		HighlightedFeatures: []string{"24/7 Support"},
		SupportLevel:        "priority",
		Features:            []string{"Priority Support"},
	}

	got := FormatPlanFeatures(plan)
	want := []string{"24/7 Support", "Priority Support"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v\nwant %v", got, want)
	}
}

func TestFormatPlanFeaturesCaseInsensitiveDedup(t *testing.T) {
	plan := models.Plan{
		HighlightedFeatures: []string{"Exports to PDF"},
		Features:            []string{"  exports to pdf  "},
	}
	got := FormatPlanFeatures(plan)
	if !reflect.DeepEqual(got, []string{"Exports to PDF"}) {
		t.Fatalf("got %v", got)
	}
}

func TestFormatPlanFeaturesZeroAndUnsetOmitted(t *testing.T) {
	got := FormatPlanFeatures(models.Plan{})
	if len(got) != 0 {
		t.Fatalf("empty plan must format to no features, got %v", got)
	}
}
