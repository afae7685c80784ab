package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_WarOutbreak(t *testing.T) {
	bd := NewBookmarkDetector(10)
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int64(i * 600), Units: 50, CombatDeaths: 1})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 3000, Units: 50, CombatDeaths: 6})
	if !hasBookmark(bookmarks, BookmarkWarOutbreak) {
		t.Error("expected war_outbreak bookmark")
	}
}

func TestBookmarkDetector_BabyBoomNeedsMinimum(t *testing.T) {
	bd := NewBookmarkDetector(10)
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int64(i * 600), Units: 50})
	}

	if hasBookmark(bd.Check(WindowStats{Units: 50, Births: 4}), BookmarkBabyBoom) {
		t.Error("4 births should be below the minimum")
	}
	if !hasBookmark(bd.Check(WindowStats{Units: 50, Births: 12}), BookmarkBabyBoom) {
		t.Error("expected baby_boom bookmark")
	}
}

func TestBookmarkDetector_PopulationCrash(t *testing.T) {
	bd := NewBookmarkDetector(10)
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int64(i * 600), Units: 100})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 3000, Units: 50})
	if !hasBookmark(bookmarks, BookmarkPopulationCrash) {
		t.Error("expected population_crash bookmark")
	}

	// The peak resets after a crash.
	if hasBookmark(bd.Check(WindowStats{WindowEndTick: 3600, Units: 48}), BookmarkPopulationCrash) {
		t.Error("crash fired twice")
	}
}

func TestBookmarkDetector_ExtinctionOnce(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bd.Check(WindowStats{Units: 20})

	if !hasBookmark(bd.Check(WindowStats{Units: 0}), BookmarkExtinction) {
		t.Error("expected extinction bookmark")
	}
	if hasBookmark(bd.Check(WindowStats{Units: 0}), BookmarkExtinction) {
		t.Error("extinction fired twice")
	}
}

func TestBookmarkDetector_StablePopulation(t *testing.T) {
	bd := NewBookmarkDetector(10)

	fired := 0
	for i := 0; i < 12; i++ {
		bookmarks := bd.Check(WindowStats{WindowEndTick: int64(i * 600), Units: 40 + i%2})
		if hasBookmark(bookmarks, BookmarkStablePopulation) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("stable_population fired %d times, want 1", fired)
	}
}
