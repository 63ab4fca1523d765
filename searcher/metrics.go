package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarizes one search invocation for diagnostics.
type SearchMetric struct {
	Goroutines    int
	StartTime     time.Time
	Duration      time.Duration
	Iterations    int64
	TerminalHits  int64 // iterations that reached an exact fold-out payoff
	TableHits     int64 // expansions seeded from the transposition table
	TableEntries  int
}

type Collector interface {
	Start(goroutines int)
	AddIteration()
	AddTerminalHit()
	AddTableHit()
	SetTableEntries(n int)
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	startTime    time.Time
	iterations   atomic.Int64
	terminalHits atomic.Int64
	tableHits    atomic.Int64
	tableEntries atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
}

func (m *collector) AddIteration() {
	m.iterations.Add(1)
}

func (m *collector) AddTerminalHit() {
	m.terminalHits.Add(1)
}

func (m *collector) AddTableHit() {
	m.tableHits.Add(1)
}

func (m *collector) SetTableEntries(n int) {
	m.tableEntries.Store(int64(n))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		StartTime:    m.startTime,
		Duration:     time.Since(m.startTime),
		Iterations:   m.iterations.Load(),
		TerminalHits: m.terminalHits.Load(),
		TableHits:    m.tableHits.Load(),
		TableEntries: int(m.tableEntries.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(int)            {}
func (m *dummyCollector) AddIteration()        {}
func (m *dummyCollector) AddTerminalHit()      {}
func (m *dummyCollector) AddTableHit()         {}
func (m *dummyCollector) SetTableEntries(int)  {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
