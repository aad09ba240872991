package arena

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Session summarises a series of games of one bot against one opponent.
type Session struct {
	BotName       string       `json:"bot_name"`
	Opponent      string       `json:"opponent"`
	Timestamp     string       `json:"timestamp"`
	Results       []GameResult `json:"results"`
	Wins          int          `json:"wins"`
	Losses        int          `json:"losses"`
	Draws         int          `json:"draws"`
	AvgMoveTime   float64      `json:"avg_move_time"`
	MaxMoveTime   float64      `json:"max_move_time"`
	MemoryUsageMB float64      `json:"memory_usage"`
}

func NewSession(botName, opponent string, results []GameResult, now time.Time) *Session {
	s := &Session{
		BotName:   botName,
		Opponent:  opponent,
		Timestamp: now.UTC().Format("20060102_150405"),
		Results:   results,
	}
	var total time.Duration
	var count int
	var slowest time.Duration
	for _, r := range results {
		switch r.Winner {
		case WinnerBot:
			s.Wins++
		case WinnerOpponent:
			s.Losses++
		default:
			s.Draws++
		}
		for _, d := range r.MoveTimes {
			total += d
			count++
			slowest = max(slowest, d)
		}
	}
	if count > 0 {
		s.AvgMoveTime = (total / time.Duration(count)).Seconds()
	}
	s.MaxMoveTime = slowest.Seconds()
	return s
}

// WinRate is wins over games played.
func (s *Session) WinRate() float64 {
	if len(s.Results) == 0 {
		return 0
	}
	return float64(s.Wins) / float64(len(s.Results))
}

// NotLossRate is wins plus draws over games played.
func (s *Session) NotLossRate() float64 {
	if len(s.Results) == 0 {
		return 0
	}
	return float64(s.Wins+s.Draws) / float64(len(s.Results))
}

// Save writes the session as indented JSON into dir and returns the path.
func (s *Session) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("test_session_%s_%s.json", s.BotName, s.Timestamp))
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write session: %w", err)
	}
	return path, nil
}

// WriteCSV writes one row per game into dir/games.csv.
func (s *Session) WriteCSV(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "games.csv"))
	if err != nil {
		return fmt.Errorf("failed to create games file: %w", err)
	}
	if err := s.writeGames(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close games file: %w", err)
	}
	return nil
}

func (s *Session) writeGames(w io.Writer) error {
	writer := csv.NewWriter(w)
	header := []string{"game", "bot", "opponent", "bot_color", "winner", "ending", "moves", "time_taken", "final_fen"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write games header: %w", err)
	}
	for i, r := range s.Results {
		row := []string{
			strconv.Itoa(i + 1),
			s.BotName,
			r.Opponent,
			r.BotColor,
			r.Winner,
			r.Ending,
			strconv.Itoa(r.Moves),
			strconv.FormatFloat(r.TimeTaken, 'f', 3, 64),
			r.FinalFEN,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write game row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush games file: %w", err)
	}
	return nil
}
