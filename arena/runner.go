package arena

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"

	"chessbots/bots"
)

// OpponentFactory creates one opponent per worker. Opponents that hold
// resources implement io.Closer and are closed when the worker exits.
type OpponentFactory func() (bots.ChessBot, error)

type RunConfig struct {
	Games    int
	Workers  int
	MaxPlies int
}

type gameTask struct {
	index    int
	botColor chess.Color
}

// Run plays cfg.Games games of bot against fresh opponents, alternating the
// bot's color starting with White. Results are returned in game order.
func Run(ctx context.Context, bot bots.ChessBot, newOpponent OpponentFactory, cfg RunConfig) ([]GameResult, error) {
	if cfg.Games <= 0 {
		return nil, nil
	}
	workers := min(max(cfg.Workers, 1), cfg.Games)

	// Create opponents up front so a missing engine binary fails fast.
	opponents := make([]bots.ChessBot, 0, workers)
	defer func() {
		for _, o := range opponents {
			if c, ok := o.(io.Closer); ok {
				c.Close()
			}
		}
	}()
	for i := 0; i < workers; i++ {
		o, err := newOpponent()
		if err != nil {
			return nil, fmt.Errorf("failed to create opponent: %w", err)
		}
		opponents = append(opponents, o)
	}

	tasks := make(chan gameTask, cfg.Games)
	for i := 0; i < cfg.Games; i++ {
		color := chess.White
		if i%2 == 1 {
			color = chess.Black
		}
		tasks <- gameTask{index: i, botColor: color}
	}
	close(tasks)

	results := make([]GameResult, cfg.Games)
	var wg sync.WaitGroup
	for _, opponent := range opponents {
		wg.Add(1)
		go func(opponent bots.ChessBot) {
			defer wg.Done()
			for task := range tasks {
				log.Info().Msgf("starting game %d of %d (%s as %s vs %s)...", task.index+1, cfg.Games, bot.Name(), task.botColor, opponent.Name())
				res := Play(ctx, bot, opponent, task.botColor, cfg.MaxPlies)
				results[task.index] = res
				log.Info().Msgf("completed game %d with winner: %s (%s after %d plies)", task.index+1, res.Winner, res.Ending, res.Moves)
			}
		}(opponent)
	}
	wg.Wait()
	return results, ctx.Err()
}
