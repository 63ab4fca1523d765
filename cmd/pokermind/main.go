package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pokermind/advisor"
	"pokermind/config"
	"pokermind/game"
	"pokermind/icm"
	"pokermind/searcher"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Debug   bool             `help:"Enable debug logging"`

	Advise  AdviseCmd  `cmd:"" help:"Recommend an action for a decision point"`
	Payouts PayoutsCmd `cmd:"" help:"Generate a payout structure for a prize pool"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokermind"),
		kong.Description("MCTS + ICM poker decision engine"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: colorable.NewColorableStderr()})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cli.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

type AdviseCmd struct {
	Pot        int64    `help:"Chips already in the pot" required:""`
	Stacks     []int64  `help:"Stack per seat, in seat order" required:""`
	Current    int      `help:"Seat index of the player to act" default:"0"`
	Board      string   `help:"Board cards, e.g. 'Ah Kd 7c'"`
	Budget     int      `help:"Time budget in milliseconds" default:"1000"`
	Iterations int      `help:"Iteration budget (overrides time budget)"`
	Goroutines int      `help:"Parallel search trees" default:"1"`
	Payouts    []string `help:"Tournament payouts by rank, e.g. 500,300"`
	Config     string   `help:"HCL config file" type:"existingfile"`
}

func (c *AdviseCmd) Run() error {
	cfg := config.Default()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if c.Iterations > 0 {
		cfg.Search.Iterations = c.Iterations
	} else if c.Budget > 0 && cfg.Search.Iterations == 0 {
		cfg.Search.TimeBudgetMS = c.Budget
	}
	if c.Goroutines > 0 {
		cfg.Search.Goroutines = c.Goroutines
	}

	board, err := parseBoard(c.Board)
	if err != nil {
		return err
	}
	state, err := game.NewGameState(c.Pot, c.Stacks, board, c.Current)
	if err != nil {
		return err
	}

	tour, err := c.tournament(cfg)
	if err != nil {
		return err
	}

	a := advisor.New(searcher.NewMCTS(cfg.SearchOptions()...))
	start := time.Now()
	rec, err := a.Advise(state, tour)
	if err != nil {
		return err
	}
	log.Debug().Dur("wall", time.Since(start)).Msg("advise finished")

	printRecommendation(rec)
	return nil
}

func (c *AdviseCmd) tournament(cfg *config.Config) (*icm.TournamentState, error) {
	var payouts []float64
	switch {
	case len(c.Payouts) > 0:
		for _, raw := range c.Payouts {
			var p float64
			if _, err := fmt.Sscanf(raw, "%g", &p); err != nil {
				return nil, fmt.Errorf("invalid payout %q", raw)
			}
			payouts = append(payouts, p)
		}
	case cfg.ICM != nil && len(cfg.ICM.Payouts) > 0:
		payouts = cfg.ICM.Payouts
	case cfg.ICM != nil && cfg.ICM.PrizePool > 0:
		payouts = icm.OptimizePayouts(cfg.ICM.PrizePool, cfg.ICM.Places, cfg.ICM.Decay)
	default:
		return nil, nil
	}

	players := make([]icm.PlayerStack, len(c.Stacks))
	for i, s := range c.Stacks {
		players[i] = icm.PlayerStack{ID: fmt.Sprintf("seat%d", i), Stack: float64(s)}
	}
	return &icm.TournamentState{Players: players, Payouts: payouts}, nil
}

type PayoutsCmd struct {
	Pool   float64 `help:"Total prize pool" required:""`
	Places int     `help:"Paid places" default:"3"`
	Decay  float64 `help:"Exponential decay per rank" default:"0.5"`
}

func (c *PayoutsCmd) Run() error {
	payouts := icm.OptimizePayouts(c.Pool, c.Places, c.Decay)
	for rank, p := range payouts {
		fmt.Printf("%d. %.2f\n", rank+1, p)
	}
	return nil
}

func parseBoard(s string) ([]game.Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ','
	})
	board := make([]game.Card, 0, len(fields))
	for _, f := range fields {
		card, err := game.ParseCard(f)
		if err != nil {
			return nil, err
		}
		board = append(board, card)
	}
	return board, nil
}

func printRecommendation(rec *advisor.Recommendation) {
	fmt.Printf("recommended: %s\n", rec.Action)
	fmt.Printf("iterations: %d in %s\n", rec.Iterations, rec.Elapsed)
	for _, s := range rec.ChipStats {
		fmt.Printf("  %-12s visits=%-7d mean=%+.3f chipEV=%+.1f\n",
			s.Action, s.Visits, s.Mean, s.ChipEV)
	}
	if rec.DollarEV != nil {
		fmt.Printf("bubble factor: %.2f  risk premium: %.2f\n", rec.BubbleFactor, rec.RiskPremium)
		for _, e := range rec.DollarEV {
			fmt.Printf("  %-12s chipEV=%+.1f dollarEV=%.2f\n", e.Action, e.ChipEV, e.DollarEV)
		}
		if rec.Diverged {
			fmt.Println("note: ICM pressure reversed the chip-EV pick")
		}
	}
}
