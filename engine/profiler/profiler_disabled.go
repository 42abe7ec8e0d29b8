//go:build !profile

package profiler

import "time"

// No-op versions when the "profile" build tag is not set.

func Start(name string) func() { return func() {} }

type PassStat struct {
	Name  string
	Count int64
	Total time.Duration
	Avg   time.Duration
	Max   time.Duration
}

func Stats() []PassStat { return nil }

func Reset() {}
