// Package config loads advisor settings from an HCL file. Every field
// is optional; zero values fall back to the searcher defaults.
package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"pokermind/searcher"
)

type Search struct {
	TimeBudgetMS  int     `hcl:"time_budget_ms,optional"`
	Iterations    int     `hcl:"iterations,optional"`
	Goroutines    int     `hcl:"goroutines,optional"`
	Exploration   float64 `hcl:"exploration,optional"`
	WideningC     float64 `hcl:"widening_constant,optional"`
	WideningExp   float64 `hcl:"widening_exponent,optional"`
	TableCapacity int     `hcl:"table_capacity,optional"`
	Seed          uint64  `hcl:"seed,optional"`
}

type ICM struct {
	Payouts   []float64 `hcl:"payouts,optional"`
	PrizePool float64   `hcl:"prize_pool,optional"`
	Places    int       `hcl:"places,optional"`
	Decay     float64   `hcl:"decay,optional"`
}

type Config struct {
	Search Search `hcl:"search,block"`
	ICM    *ICM   `hcl:"icm,block"`
}

func Default() *Config {
	return &Config{
		Search: Search{
			TimeBudgetMS: 1000,
			Goroutines:   1,
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := Default()
	if err := hclsimple.DecodeFile(path, nil, cfg); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

// SearchOptions translates the search block into searcher options.
func (c *Config) SearchOptions() []searcher.Option {
	s := c.Search
	options := []searcher.Option{
		searcher.WithMetrics(),
	}
	if s.Iterations > 0 {
		options = append(options, searcher.WithIterations(s.Iterations))
	} else {
		options = append(options, searcher.WithDuration(time.Duration(s.TimeBudgetMS)*time.Millisecond))
	}
	if s.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(s.Goroutines))
	}
	if s.Exploration > 0 {
		options = append(options, searcher.WithExploration(s.Exploration))
	}
	if s.WideningC > 0 || s.WideningExp > 0 {
		options = append(options, searcher.WithWidening(s.WideningC, s.WideningExp))
	}
	if s.TableCapacity > 0 {
		options = append(options, searcher.WithTableCapacity(s.TableCapacity))
	}
	if s.Seed != 0 {
		options = append(options, searcher.WithSeed(s.Seed))
	}
	return options
}
