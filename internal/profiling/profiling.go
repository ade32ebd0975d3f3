// Package profiling is a lightweight per-frame CPU profiler for tick-level
// timing. Costs one map write per tracked section per frame.
package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
)

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("subsystem.Operation")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
	}
}

// ResetFrame clears the per-frame totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	for k := range frameTotals {
		delete(frameTotals, k)
	}
	mu.Unlock()
}

// Snapshot returns a copy of the current per-frame totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// TopLines returns the n largest sections of the current frame, formatted
// one per line for the HUD overlay.
func TopLines(n int) []string {
	sorted := sortedTotals()
	if n > len(sorted) {
		n = len(sorted)
	}
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, fmt.Sprintf("%s %.1fms", sorted[i].name, float64(sorted[i].dur.Microseconds())/1000.0))
	}
	return lines
}

// TopN returns the n largest sections on a single line, for log output.
func TopN(n int) string {
	return strings.Join(TopLines(n), ", ")
}

type section struct {
	name string
	dur  time.Duration
}

func sortedTotals() []section {
	ss := Snapshot()
	list := make([]section, 0, len(ss))
	for k, v := range ss {
		list = append(list, section{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].dur > list[j].dur })
	return list
}
