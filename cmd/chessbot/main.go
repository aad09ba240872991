// Command chessbot prints the move a bot picks for a position.
//
//	chessbot -bot hybrid -fen "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
//	echo '{"board": "..."}' | chessbot -bot naive
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"chessbots/bots"
	"chessbots/config"
)

func main() {
	botName := flag.String("bot", "hybrid", "bot variant or config entry: "+strings.Join(bots.Names(), ", "))
	fen := flag.String("fen", "", "position in FEN; read a JSON observation from stdin when empty")
	configPath := flag.String("config", "", "YAML bot configuration file")
	logLevel := flag.String("log-level", "warn", "log level")
	verbose := flag.Bool("v", false, "print the deciding stage and mode")
	flag.Parse()

	if err := config.SetupLogging(*logLevel, true); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}

	bot, err := config.LoadBot(*botName, *configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create bot")
	}

	obs := bots.Observation{Board: *fen}
	if obs.Board == "" {
		if err := json.NewDecoder(os.Stdin).Decode(&obs); err != nil {
			log.Fatal().Err(err).Msg("failed to read observation")
		}
	}

	if p, ok := bot.(*bots.Pipeline); ok && *verbose {
		d := p.Decide(obs)
		fmt.Printf("%s\tstage=%s mode=%s\n", d.Move, d.Stage, d.Mode)
		if d.Err != nil {
			fmt.Fprintf(os.Stderr, "absorbed error: %v\n", d.Err)
		}
		return
	}
	fmt.Println(bot.BestMove(obs))
}
