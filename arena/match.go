// Package arena plays full games between bots and collects results.
package arena

import (
	"context"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"

	"chessbots/bots"
)

const (
	// MaxPlies ends a game as a draw after this many half-moves.
	MaxPlies = 200
	// MoveBudget is the per-move time a bot is expected to stay under.
	MoveBudget = 100 * time.Millisecond
)

const (
	WinnerBot      = "bot"
	WinnerOpponent = "opponent"
	WinnerDraw     = "draw"
)

const (
	EndingCheckmate    = "checkmate"
	EndingStalemate    = "stalemate"
	EndingFiftyMove    = "fifty-move"
	EndingRepetition   = "repetition"
	EndingInsufficient = "insufficient-material"
	EndingMoveLimit    = "move-limit"
	EndingError        = "error"
	EndingCancelled    = "cancelled"
	EndingUnknown      = "unknown"
)

// GameResult records one finished game from the bot's point of view.
type GameResult struct {
	Winner    string          `json:"winner"`
	Moves     int             `json:"moves"`
	TimeTaken float64         `json:"time_taken"`
	Ending    string          `json:"ending"`
	FinalFEN  string          `json:"final_fen"`
	BotColor  string          `json:"bot_color"`
	Opponent  string          `json:"opponent"`
	MoveTimes []time.Duration `json:"-"`
}

// Play runs one game between bot and opponent, the bot playing botColor.
// An illegal or empty move loses the game for the side that produced it.
func Play(ctx context.Context, bot, opponent bots.ChessBot, botColor chess.Color, maxPlies int) GameResult {
	if maxPlies <= 0 {
		maxPlies = MaxPlies
	}
	g := chess.NewGame(chess.UseNotation(chess.UCINotation{}))
	start := time.Now()
	res := GameResult{BotColor: botColor.String(), Opponent: opponent.Name()}

	finish := func(winner, ending string) GameResult {
		res.Winner, res.Ending = winner, ending
		res.TimeTaken = time.Since(start).Seconds()
		res.FinalFEN = g.Position().String()
		return res
	}

	for g.Outcome() == chess.NoOutcome && res.Moves < maxPlies {
		if ctx.Err() != nil {
			return finish(WinnerDraw, EndingCancelled)
		}
		botTurn := g.Position().Turn() == botColor
		player := opponent
		if botTurn {
			player = bot
		}

		began := time.Now()
		move := player.BestMove(bots.Observation{Board: g.Position().String()})
		elapsed := time.Since(began)
		if botTurn {
			res.MoveTimes = append(res.MoveTimes, elapsed)
			if elapsed > MoveBudget {
				log.Warn().Str("bot", bot.Name()).Dur("elapsed", elapsed).Msg("move exceeded time budget")
			}
		}

		if err := g.MoveStr(move); err != nil {
			log.Warn().Err(err).Str("player", player.Name()).Str("move", move).Msg("player produced an invalid move")
			if botTurn {
				return finish(WinnerOpponent, EndingError)
			}
			return finish(WinnerBot, EndingError)
		}
		res.Moves++
		claimDraw(g)
	}
	return finish(classify(g, botColor, res.Moves >= maxPlies))
}

// claimDraw claims threefold repetition or the fifty-move rule as soon as
// either becomes available.
func claimDraw(g *chess.Game) {
	for _, m := range g.EligibleDraws() {
		if m == chess.ThreefoldRepetition || m == chess.FiftyMoveRule {
			if err := g.Draw(m); err == nil {
				return
			}
		}
	}
}

func classify(g *chess.Game, botColor chess.Color, capped bool) (winner, ending string) {
	switch g.Method() {
	case chess.Checkmate:
		if g.Position().Turn() != botColor {
			return WinnerBot, EndingCheckmate
		}
		return WinnerOpponent, EndingCheckmate
	case chess.Stalemate:
		return WinnerDraw, EndingStalemate
	case chess.FiftyMoveRule, chess.SeventyFiveMoveRule:
		return WinnerDraw, EndingFiftyMove
	case chess.ThreefoldRepetition, chess.FivefoldRepetition:
		return WinnerDraw, EndingRepetition
	case chess.InsufficientMaterial:
		return WinnerDraw, EndingInsufficient
	}
	if capped {
		return WinnerDraw, EndingMoveLimit
	}
	return WinnerDraw, EndingUnknown
}
