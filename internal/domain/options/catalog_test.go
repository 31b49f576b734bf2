package options

import "testing"

func TestDefaultCatalogContents(t *testing.T) {
	c := Default()

	leagues := c.Leagues()
	wantLeagues := []string{"bl1", "bl2", "bl3", "dfb", "ucl"}
	if len(leagues) != len(wantLeagues) {
		t.Fatalf("expected %d leagues, got %d", len(wantLeagues), len(leagues))
	}
	for i, id := range wantLeagues {
		if leagues[i].ID != id {
			t.Fatalf("league %d: expected %s, got %s", i, id, leagues[i].ID)
		}
	}

	seasons := c.Seasons()
	if len(seasons) != 3 || seasons[0].ID != "2025" || seasons[0].Label != "2025/26" {
		t.Fatalf("unexpected seasons %+v", seasons)
	}
}

func TestDefaultsAreFirstEntries(t *testing.T) {
	c := Default()
	if c.DefaultLeague().ID != "bl1" {
		t.Fatalf("expected bl1 default, got %s", c.DefaultLeague().ID)
	}
	if c.DefaultSeason().ID != "2025" {
		t.Fatalf("expected 2025 default, got %s", c.DefaultSeason().ID)
	}
}

func TestLookups(t *testing.T) {
	c := Default()
	if o, ok := c.League("dfb"); !ok || o.Label != "DFB-Pokal" {
		t.Fatalf("unexpected dfb lookup %+v %v", o, ok)
	}
	if _, ok := c.League("epl"); ok {
		t.Fatalf("expected unknown league")
	}
	if o, ok := c.Season("2023"); !ok || o.Label != "2023/24" {
		t.Fatalf("unexpected season lookup %+v %v", o, ok)
	}
	if _, ok := c.Season("1999"); ok {
		t.Fatalf("expected unknown season")
	}
	if c.ResolveLeague("nope").ID != "bl1" || c.ResolveLeague("ucl").ID != "ucl" {
		t.Fatalf("unexpected league resolution")
	}
	if c.ResolveSeason("").ID != "2025" || c.ResolveSeason("2024").ID != "2024" {
		t.Fatalf("unexpected season resolution")
	}
}

func TestCatalogIsImmutable(t *testing.T) {
	src := []Option{{ID: "a", Label: "A"}}
	c := NewCatalog(src, nil)
	src[0].ID = "changed"

	leagues := c.Leagues()
	if leagues[0].ID != "a" {
		t.Fatalf("catalog observed caller mutation")
	}
	leagues[0].ID = "mutated"
	if c.Leagues()[0].ID != "a" {
		t.Fatalf("catalog observed returned-slice mutation")
	}
	if c.DefaultSeason() != (Option{}) {
		t.Fatalf("expected zero default season for empty list")
	}
}
