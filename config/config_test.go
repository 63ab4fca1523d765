package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "advisor.hcl")
	body := `
search {
  time_budget_ms    = 250
  goroutines        = 2
  exploration       = 1.2
  widening_constant = 3
  table_capacity    = 5000
  seed              = 42
}

icm {
  payouts = [500, 300]
}
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 250, cfg.Search.TimeBudgetMS)
	require.Equal(t, 2, cfg.Search.Goroutines)
	require.Equal(t, 1.2, cfg.Search.Exploration)
	require.Equal(t, 3.0, cfg.Search.WideningC)
	require.Equal(t, 5000, cfg.Search.TableCapacity)
	require.Equal(t, uint64(42), cfg.Search.Seed)
	require.NotNil(t, cfg.ICM)
	require.Equal(t, []float64{500, 300}, cfg.ICM.Payouts)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.Error(t, err)
}

func TestSearchOptions(t *testing.T) {
	cfg := Default()
	require.NotEmpty(t, cfg.SearchOptions())

	cfg.Search.Iterations = 100
	cfg.Search.Goroutines = 4
	cfg.Search.Seed = 7
	require.Len(t, cfg.SearchOptions(), 4)
}
