package arena

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/notnil/chess"
	"github.com/notnil/chess/uci"
	"github.com/rs/zerolog/log"

	"chessbots/bots"
)

// DefaultMoveTime is the thinking time given to a UCI opponent per move.
const DefaultMoveTime = 100 * time.Millisecond

// EngineBot plays moves from an external UCI engine such as Stockfish.
type EngineBot struct {
	mu       sync.Mutex
	eng      *uci.Engine
	elo      int
	moveTime time.Duration
}

// NewEngineBot starts the engine binary at path ("stockfish" when empty) at a
// skill level of elo/100, clamped to the UCI range 0-20.
func NewEngineBot(path string, elo int, moveTime time.Duration) (*EngineBot, error) {
	if path == "" {
		path = "stockfish"
	}
	if moveTime <= 0 {
		moveTime = DefaultMoveTime
	}
	eng, err := uci.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to start engine %q: %w", path, err)
	}
	skill := min(max(elo/100, 0), 20)
	setup := []uci.Cmd{
		uci.CmdUCI,
		uci.CmdIsReady,
		uci.CmdSetOption{Name: "Skill Level", Value: strconv.Itoa(skill)},
		uci.CmdUCINewGame,
	}
	if err := eng.Run(setup...); err != nil {
		eng.Close()
		return nil, fmt.Errorf("failed to initialise engine %q: %w", path, err)
	}
	return &EngineBot{eng: eng, elo: elo, moveTime: moveTime}, nil
}

func (e *EngineBot) Name() string {
	return fmt.Sprintf("stockfish-%d", e.elo)
}

func (e *EngineBot) BestMove(obs bots.Observation) string {
	opt, err := chess.FEN(obs.Board)
	if err != nil {
		log.Error().Err(err).Msg("engine received invalid position")
		return ""
	}
	pos := chess.NewGame(opt).Position()

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.eng.Run(uci.CmdPosition{Position: pos}, uci.CmdGo{MoveTime: e.moveTime}); err != nil {
		log.Error().Err(err).Msg("engine search failed")
		return ""
	}
	best := e.eng.SearchResults().BestMove
	if best == nil {
		return ""
	}
	return chess.UCINotation{}.Encode(pos, best)
}

func (e *EngineBot) Close() error {
	return e.eng.Close()
}
