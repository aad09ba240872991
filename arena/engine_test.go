package arena

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"chessbots/bots"
)

func TestEngineBot(t *testing.T) {
	path, err := exec.LookPath("stockfish")
	if err != nil {
		t.Skip("stockfish not installed")
	}

	engine, err := NewEngineBot(path, 800, 0)
	require.NoError(t, err)
	defer engine.Close()

	require.Equal(t, "stockfish-800", engine.Name())
	move := engine.BestMove(bots.Observation{Board: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"})
	require.Len(t, move, 4)
}
