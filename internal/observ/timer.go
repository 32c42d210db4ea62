// Package observ collects per-phase timings of a check.
package observ

import (
	"sync"
	"time"
)

type phase struct {
	dur   time.Duration
	note  string
	count int
}

// Timer accumulates durations per named phase, in order of first use.
// Lap measures a phase on the calling goroutine, Add takes durations
// measured elsewhere (lint workers). A nil *Timer records nothing.
type Timer struct {
	mu     sync.Mutex
	order  []string
	phases map[string]*phase
}

func NewTimer() *Timer {
	return &Timer{phases: make(map[string]*phase, 8)}
}

func (t *Timer) slot(name string) *phase {
	p, ok := t.phases[name]
	if !ok {
		p = &phase{}
		t.phases[name] = p
		t.order = append(t.order, name)
	}
	return p
}

// Lap is a running measurement started by Begin.
type Lap struct {
	t     *Timer
	name  string
	start time.Time
}

// Begin starts measuring name. The phase appears in the report once the
// lap ends.
func (t *Timer) Begin(name string) Lap {
	if t == nil {
		return Lap{}
	}
	return Lap{t: t, name: name, start: time.Now()}
}

// End stops the lap and attaches note to its phase. Ending a lap twice
// counts it twice.
func (l Lap) End(note string) {
	if l.t == nil {
		return
	}
	d := time.Since(l.start)
	l.t.mu.Lock()
	defer l.t.mu.Unlock()
	p := l.t.slot(l.name)
	p.dur += d
	p.note = note
}

// Add accumulates d into name and bumps its count.
func (t *Timer) Add(name string, d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.slot(name)
	p.dur += d
	p.count++
}

// PhaseReport — одна фаза в миллисекундах.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count,omitempty"`
	Note       string  `json:"note,omitempty"`
}

// Report is the serializable view of a Timer. TotalMS sums the phases, so
// with parallel workers it can exceed wall-clock time.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	var rep Report
	if t == nil {
		return rep
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, name := range t.order {
		p := t.phases[name]
		ms := millis(p.dur)
		rep.TotalMS += ms
		rep.Phases = append(rep.Phases, PhaseReport{Name: name, DurationMS: ms, Count: p.count, Note: p.note})
	}
	return rep
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
