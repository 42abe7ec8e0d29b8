//go:build profile

package profiler

import (
	"sort"
	"sync"
	"time"
)

// Pass timing behind the "profile" build tag. Scopes are cheap enough to
// leave in the render path; without the tag they compile to no-ops.

type stat struct {
	count int64
	total time.Duration
	max   time.Duration
}

var (
	mu    sync.Mutex
	stats = map[string]*stat{}
)

// Start begins a named scope and returns the end func to be deferred.
func Start(name string) func() {
	begin := time.Now()
	return func() {
		d := time.Since(begin)
		mu.Lock()
		s := stats[name]
		if s == nil {
			s = &stat{}
			stats[name] = s
		}
		s.count++
		s.total += d
		if d > s.max {
			s.max = d
		}
		mu.Unlock()
	}
}

// PassStat is one scope's aggregate since the last Reset.
type PassStat struct {
	Name  string
	Count int64
	Total time.Duration
	Avg   time.Duration
	Max   time.Duration
}

// Stats returns the aggregates sorted by total time, slowest first.
func Stats() []PassStat {
	mu.Lock()
	defer mu.Unlock()

	out := make([]PassStat, 0, len(stats))
	for name, s := range stats {
		out = append(out, PassStat{
			Name:  name,
			Count: s.count,
			Total: s.total,
			Avg:   s.total / time.Duration(s.count),
			Max:   s.max,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

func Reset() {
	mu.Lock()
	stats = map[string]*stat{}
	mu.Unlock()
}
