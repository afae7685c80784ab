package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkWarOutbreak      BookmarkType = "war_outbreak"
	BookmarkBabyBoom         BookmarkType = "baby_boom"
	BookmarkPopulationCrash  BookmarkType = "population_crash"
	BookmarkExtinction       BookmarkType = "extinction"
	BookmarkStablePopulation BookmarkType = "stable_population"
)

// Bookmark marks a notable window.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector watches the stream of WindowStats for notable moments.
type BookmarkDetector struct {
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	peakUnits     int
	extinct       bool
	stableWindows int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark
	add := func(b *Bookmark) {
		if b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	add(bd.checkSpike(stats, BookmarkWarOutbreak, "combat deaths", func(s WindowStats) int { return s.CombatDeaths }, 3))
	add(bd.checkSpike(stats, BookmarkBabyBoom, "births", func(s WindowStats) int { return s.Births }, 5))
	add(bd.checkCrash(stats))
	add(bd.checkExtinction(stats))
	add(bd.checkStable(stats))

	bd.addToHistory(stats)
	if stats.Units > bd.peakUnits {
		bd.peakUnits = stats.Units
	}
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkSpike fires when a counter exceeds twice its rolling average and a
// minimum count.
func (bd *BookmarkDetector) checkSpike(stats WindowStats, typ BookmarkType, label string, field func(WindowStats) int, minCount int) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	total := 0
	for _, h := range history {
		total += field(h)
	}
	avg := float64(total) / float64(len(history))

	cur := field(stats)
	if cur < minCount || float64(cur) <= avg*2 {
		return nil
	}
	return &Bookmark{
		Type:        typ,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d %s against a rolling average of %.1f", cur, label, avg),
	}
}

func (bd *BookmarkDetector) checkCrash(stats WindowStats) *Bookmark {
	if bd.peakUnits == 0 {
		return nil
	}

	drop := 1 - float64(stats.Units)/float64(bd.peakUnits)
	if drop <= 0.30 || stats.Units >= bd.peakUnits-10 {
		return nil
	}

	oldPeak := bd.peakUnits
	bd.peakUnits = stats.Units
	return &Bookmark{
		Type:        BookmarkPopulationCrash,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Population crashed %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Units),
	}
}

func (bd *BookmarkDetector) checkExtinction(stats WindowStats) *Bookmark {
	if stats.Units > 0 {
		bd.extinct = false
		return nil
	}
	if bd.extinct || bd.peakUnits == 0 {
		return nil
	}
	bd.extinct = true
	return &Bookmark{
		Type:        BookmarkExtinction,
		Tick:        stats.WindowEndTick,
		Description: "No units left alive",
	}
}

// checkStable fires once the population has held a coefficient of variation
// under 20% across the last four windows for five consecutive checks.
func (bd *BookmarkDetector) checkStable(stats WindowStats) *Bookmark {
	if stats.Units < 10 {
		bd.stableWindows = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	recent := make([]float64, 4)
	for i, h := range history[len(history)-4:] {
		recent[i] = float64(h.Units)
	}
	mean, variance := stat.PopMeanVariance(recent, nil)

	if mean > 0 && variance/(mean*mean) < 0.04 {
		bd.stableWindows++
	} else {
		bd.stableWindows = 0
	}

	if bd.stableWindows != 5 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkStablePopulation,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Population stable around %.0f units over 5+ windows", mean),
	}
}
