package domain

import (
	"testing"
)

func testDeals() []Deal {
	return []Deal{
		{ID: "1", Title: "AWS Activate", Description: "Cloud credits for startups", Partner: Partner{Name: "Amazon Web Services"}, Category: CategoryCloud, IsLocked: true},
		{ID: "2", Title: "HubSpot for Startups", Description: "CRM and marketing platform", Partner: Partner{Name: "HubSpot"}, Category: CategoryMarketing, IsLocked: false},
		{ID: "3", Title: "Mixpanel Startup Plan", Description: "Product analytics", Partner: Partner{Name: "Mixpanel"}, Category: CategoryAnalytics, IsLocked: false},
		{ID: "4", Title: "Notion for Startups", Description: "Workspace for notes and docs", Partner: Partner{Name: "Notion"}, Category: CategoryProductivity, IsLocked: true},
	}
}

func ids(deals []Deal) []string {
	out := make([]string, 0, len(deals))
	for _, d := range deals {
		out = append(out, d.ID)
	}
	return out
}

func TestFilterDeals_NoFilters(t *testing.T) {
	got := FilterDeals(testDeals(), "", CategoryAll, AccessAll)
	if len(got) != 4 {
		t.Fatalf("expected all 4 deals, got %d", len(got))
	}
	want := []string{"1", "2", "3", "4"}
	for i, id := range ids(got) {
		if id != want[i] {
			t.Fatalf("order not preserved: got %v", ids(got))
		}
	}
}

func TestFilterDeals_SearchMatchesTitle(t *testing.T) {
	got := FilterDeals(testDeals(), "aws", CategoryAll, AccessAll)
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected deal 1, got %v", ids(got))
	}
}

func TestFilterDeals_SearchMatchesPartnerCaseInsensitive(t *testing.T) {
	got := FilterDeals(testDeals(), "HUBSPOT", CategoryAll, AccessAll)
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected deal 2, got %v", ids(got))
	}
}

func TestFilterDeals_SearchMatchesDescription(t *testing.T) {
	got := FilterDeals(testDeals(), "analytics", CategoryAll, AccessAll)
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("expected deal 3, got %v", ids(got))
	}
}

func TestFilterDeals_Category(t *testing.T) {
	got := FilterDeals(testDeals(), "", string(CategoryCloud), AccessAll)
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected deal 1, got %v", ids(got))
	}
}

func TestFilterDeals_Access(t *testing.T) {
	locked := FilterDeals(testDeals(), "", CategoryAll, AccessLocked)
	if len(locked) != 2 || locked[0].ID != "1" || locked[1].ID != "4" {
		t.Fatalf("expected deals 1 and 4, got %v", ids(locked))
	}

	unlocked := FilterDeals(testDeals(), "", CategoryAll, AccessUnlocked)
	if len(unlocked) != 2 || unlocked[0].ID != "2" || unlocked[1].ID != "3" {
		t.Fatalf("expected deals 2 and 3, got %v", ids(unlocked))
	}
}

func TestFilterDeals_CombinedFilters(t *testing.T) {
	got := FilterDeals(testDeals(), "startups", string(CategoryProductivity), AccessLocked)
	if len(got) != 1 || got[0].ID != "4" {
		t.Fatalf("expected deal 4, got %v", ids(got))
	}
}

func TestFilterDeals_UnknownValuesMatchNothing(t *testing.T) {
	if got := FilterDeals(testDeals(), "", "no-such-category", AccessAll); len(got) != 0 {
		t.Fatalf("unknown category should match nothing, got %v", ids(got))
	}
	if got := FilterDeals(testDeals(), "", CategoryAll, AccessLevel("bogus")); len(got) != 0 {
		t.Fatalf("unknown access level should match nothing, got %v", ids(got))
	}
}

func TestFilterDeals_NoMatch(t *testing.T) {
	if got := FilterDeals(testDeals(), "zzz-not-there", CategoryAll, AccessAll); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", ids(got))
	}
}

func TestCategories_CompleteAndLabelled(t *testing.T) {
	cats := Categories()
	if len(cats) != 8 {
		t.Fatalf("expected 8 categories, got %d", len(cats))
	}
	for _, c := range cats {
		if !c.Valid() {
			t.Fatalf("category %q not valid", c)
		}
		if c.Label() == string(c) {
			t.Fatalf("category %q has no display label", c)
		}
		if c.Icon() == "" {
			t.Fatalf("category %q has no icon", c)
		}
	}
}

func TestCategory_UnknownFallsBack(t *testing.T) {
	c := Category("mystery")
	if c.Valid() {
		t.Fatalf("unknown category should not be valid")
	}
	if c.Label() != "mystery" {
		t.Fatalf("unknown category label should fall back to raw value, got %q", c.Label())
	}
	if c.Icon() != "" {
		t.Fatalf("unknown category should have empty icon, got %q", c.Icon())
	}
}
