package domain

import (
	"testing"
	"time"
)

func TestCategoryMetadata(t *testing.T) {
	cases := []struct {
		category ServiceCategory
		min      time.Duration
		max      time.Duration
		weekends bool
	}{
		{CategoryCleaning, 2 * time.Hour, 4 * time.Hour, true},
		{CategoryMaintenance, time.Hour, 8 * time.Hour, true},
		{CategorySecurity, 24 * time.Hour, 24 * time.Hour, true},
		{CategoryGardening, time.Hour, 3 * time.Hour, true},
		{CategoryPestControl, 30 * time.Minute, 2 * time.Hour, false},
		{CategoryPoolMaintenance, time.Hour, 2 * time.Hour, false},
		{CategoryWasteManagement, time.Hour, time.Hour, false},
	}
	for _, tc := range cases {
		info, ok := tc.category.Info()
		if !ok {
			t.Fatalf("%s: expected metadata", tc.category)
		}
		if info.MinDuration != tc.min || info.MaxDuration != tc.max {
			t.Fatalf("%s: durations %v/%v, want %v/%v", tc.category, info.MinDuration, info.MaxDuration, tc.min, tc.max)
		}
		if info.WeekendsAvailable != tc.weekends {
			t.Fatalf("%s: weekends %v, want %v", tc.category, info.WeekendsAvailable, tc.weekends)
		}
		if tc.category.AvailableOnWeekends() != tc.weekends {
			t.Fatalf("%s: AvailableOnWeekends mismatch", tc.category)
		}
		if info.DisplayName == "" || info.Description == "" {
			t.Fatalf("%s: expected display name and description", tc.category)
		}
	}
}

func TestCategoriesCoverInfos(t *testing.T) {
	cats := Categories()
	if len(cats) != 7 {
		t.Fatalf("expected 7 categories, got %d", len(cats))
	}
	seen := make(map[ServiceCategory]struct{}, len(cats))
	for _, c := range cats {
		if !c.Valid() {
			t.Fatalf("category %s missing metadata", c)
		}
		if _, dup := seen[c]; dup {
			t.Fatalf("duplicate category %s", c)
		}
		seen[c] = struct{}{}
	}
	if ServiceCategory("SNOW_REMOVAL").Valid() {
		t.Fatalf("unexpected metadata for unknown category")
	}
}
