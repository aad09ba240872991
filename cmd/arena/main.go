// Command arena benchmarks a bot against a random mover or a UCI engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"

	"chessbots/arena"
	"chessbots/bots"
	"chessbots/config"
	"chessbots/render"
	"chessbots/rules"
)

func main() {
	botName := flag.String("bot", "hybrid", "bot variant or config entry")
	configPath := flag.String("config", "", "YAML bot configuration file")
	opponent := flag.String("opponent", "random", "opponent: random, newborn, any bot variant, or stockfish")
	enginePath := flag.String("engine", "stockfish", "path to the UCI engine binary")
	elo := flag.Int("elo", 1200, "UCI engine strength (skill level = elo/100)")
	moveTime := flag.Duration("movetime", arena.DefaultMoveTime, "UCI engine time per move")
	games := flag.Int("games", 10, "number of games")
	workers := flag.Int("workers", runtime.NumCPU(), "concurrent games")
	maxPlies := flag.Int("max-plies", arena.MaxPlies, "half-move cap per game")
	outDir := flag.String("out", "test_results", "output directory")
	diagrams := flag.Bool("svg", false, "write an SVG of every final position")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	if err := config.SetupLogging(*logLevel, true); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}

	bot, err := config.LoadBot(*botName, *configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create bot")
	}

	newOpponent := func() (bots.ChessBot, error) {
		if *opponent == "stockfish" {
			return arena.NewEngineBot(*enginePath, *elo, *moveTime)
		}
		return bots.New(*opponent)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	started := time.Now()

	log.Info().Msgf("starting %d games of %s vs %s...", *games, bot.Name(), *opponent)
	results, err := arena.Run(ctx, bot, newOpponent, arena.RunConfig{Games: *games, Workers: *workers, MaxPlies: *maxPlies})
	if err != nil && results == nil {
		log.Fatal().Err(err).Msg("arena failed")
	}
	runtime.ReadMemStats(&after)

	session := arena.NewSession(bot.Name(), *opponent, results, started)
	session.MemoryUsageMB = float64(int64(after.HeapAlloc)-int64(before.HeapAlloc)) / (1024 * 1024)

	dir := filepath.Join(*outDir, session.Timestamp)
	path, err := session.Save(dir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to save session")
	}
	if err := session.WriteCSV(dir); err != nil {
		log.Fatal().Err(err).Msg("failed to write games")
	}
	if *diagrams {
		writeDiagrams(dir, results)
	}
	log.Info().Str("path", path).Msg("stored session")

	fmt.Printf("\n%s vs %s (took %s):\n", bot.Name(), *opponent, time.Since(started).Round(time.Millisecond))
	fmt.Printf("Wins: %d\nLosses: %d\nDraws: %d\n", session.Wins, session.Losses, session.Draws)
	fmt.Printf("Win rate: %.0f%%  Not-loss rate: %.0f%%\n", 100*session.WinRate(), 100*session.NotLossRate())
	fmt.Printf("Average move time: %.4fs  Max move time: %.4fs\n", session.AvgMoveTime, session.MaxMoveTime)
}

func writeDiagrams(dir string, results []arena.GameResult) {
	engine := rules.NotnilEngine{}
	for i, r := range results {
		pos, err := engine.Parse(r.FinalFEN)
		if err != nil {
			log.Warn().Err(err).Int("game", i+1).Msg("skipping diagram")
			continue
		}
		f, err := os.Create(filepath.Join(dir, fmt.Sprintf("game_%03d.svg", i+1)))
		if err != nil {
			log.Warn().Err(err).Int("game", i+1).Msg("skipping diagram")
			continue
		}
		render.SVG(f, pos, fmt.Sprintf("game %d: %s (%s)", i+1, r.Winner, r.Ending))
		f.Close()
	}
}
