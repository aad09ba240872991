package main

import (
	"flag"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"

	"chessbots/bots"
	"chessbots/config"
)

var (
	screenWidth  int
	screenHeight int
	squareSize   int
)

var (
	lightColor    = color.RGBA{240, 217, 181, 255}
	darkColor     = color.RGBA{181, 136, 99, 255}
	selectedColor = color.RGBA{130, 170, 90, 255}
)

type Game struct {
	chessGame    *chess.Game
	selected     chess.Square
	dragging     bool
	playerColor  chess.Color
	gameStarted  bool
	boardOffsetX int
	boardOffsetY int

	botMutex    sync.Mutex
	botThinking bool
	botNames    []string
	botIndex    int
	currentBot  bots.ChessBot
	lastMove    string

	squares map[color.RGBA]*ebiten.Image
}

func NewGame(botName string) *Game {
	// Получаем размеры экрана
	screenWidth, screenHeight = ebiten.ScreenSizeInFullscreen()

	// Оставляем место для информации сверху
	boardHeight := screenHeight - 80
	squareSize = boardHeight / 8
	if screenWidth/8 < squareSize {
		squareSize = screenWidth / 8
	}

	boardWidth := squareSize * 8
	g := &Game{
		selected:     chess.NoSquare,
		boardOffsetX: (screenWidth - boardWidth) / 2,
		boardOffsetY: (screenHeight - boardHeight) / 2,
		botNames:     bots.Names(),
		squares:      make(map[color.RGBA]*ebiten.Image),
	}
	for i, name := range g.botNames {
		if name == botName {
			g.botIndex = i
		}
	}
	g.switchBot(0)
	return g
}

func (g *Game) switchBot(step int) {
	g.botMutex.Lock()
	defer g.botMutex.Unlock()

	g.botIndex = (g.botIndex + step + len(g.botNames)) % len(g.botNames)
	bot, err := bots.New(g.botNames[g.botIndex])
	if err != nil {
		log.Error().Err(err).Str("bot", g.botNames[g.botIndex]).Msg("failed to create bot")
		return
	}
	g.currentBot = bot
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.switchBot(1)
	}

	g.botMutex.Lock()
	defer g.botMutex.Unlock()

	if !g.gameStarted {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			x, y := ebiten.CursorPosition()
			btnWidth := 200
			btnHeight := 60
			btnY := screenHeight/2 + 100

			if y > btnY && y < btnY+btnHeight {
				if x > screenWidth/2-btnWidth-20 && x < screenWidth/2-20 {
					g.startGame(chess.White)
				} else if x > screenWidth/2+20 && x < screenWidth/2+20+btnWidth {
					g.startGame(chess.Black)
				}
			}
		}
		return nil
	}

	if g.chessGame.Outcome() != chess.NoOutcome {
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			g.gameStarted = false
		}
		return nil
	}

	if g.botThinking || g.chessGame.Position().Turn() != g.playerColor {
		return nil
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if sq, ok := g.squareAtCursor(); ok {
			piece := g.chessGame.Position().Board().Piece(sq)
			if piece != chess.NoPiece && piece.Color() == g.playerColor {
				g.selected = sq
				g.dragging = true
			}
		}
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.dragging {
		if target, ok := g.squareAtCursor(); ok {
			if move := findMove(g.chessGame, g.selected, target); move != nil {
				if err := g.chessGame.Move(move); err == nil {
					g.askBot()
				}
			}
		}
		g.selected = chess.NoSquare
		g.dragging = false
	}
	return nil
}

func (g *Game) squareAtCursor() (chess.Square, bool) {
	x, y := ebiten.CursorPosition()
	x -= g.boardOffsetX
	y -= g.boardOffsetY
	if x < 0 || x >= squareSize*8 || y < 0 || y >= squareSize*8 {
		return chess.NoSquare, false
	}
	file, rank := x/squareSize, 7-y/squareSize
	if g.playerColor == chess.Black {
		file, rank = 7-file, 7-rank
	}
	return chess.NewSquare(chess.File(file), chess.Rank(rank)), true
}

func (g *Game) startGame(playerColor chess.Color) {
	g.chessGame = chess.NewGame(chess.UseNotation(chess.UCINotation{}))
	g.playerColor = playerColor
	g.gameStarted = true
	g.lastMove = ""
	if playerColor == chess.Black {
		g.askBot()
	}
}

// askBot asks the current bot for a reply without blocking the frame loop.
// The caller holds botMutex.
func (g *Game) askBot() {
	if g.chessGame.Outcome() != chess.NoOutcome {
		return
	}
	g.botThinking = true
	bot := g.currentBot
	fen := g.chessGame.Position().String()

	go func() {
		// Небольшая задержка, чтобы ход игрока успел отрисоваться
		time.Sleep(300 * time.Millisecond)
		started := time.Now()
		move := bot.BestMove(bots.Observation{Board: fen})

		g.botMutex.Lock()
		defer g.botMutex.Unlock()
		g.botThinking = false
		if err := g.chessGame.MoveStr(move); err != nil {
			log.Warn().Err(err).Str("bot", bot.Name()).Str("move", move).Msg("bot returned an unusable move")
			return
		}
		g.lastMove = move
		log.Debug().Str("bot", bot.Name()).Str("move", move).Dur("took", time.Since(started)).Msg("bot moved")
	}()
}

func findMove(game *chess.Game, from, to chess.Square) *chess.Move {
	for _, m := range game.ValidMoves() {
		if m.S1() == from && m.S2() == to {
			// Превращение всегда в ферзя
			if m.Promo() != chess.NoPieceType && m.Promo() != chess.Queen {
				continue
			}
			return m
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.botMutex.Lock()
	defer g.botMutex.Unlock()

	botLine := "Бот: " + g.currentBot.Name() + " (B - сменить)"
	if !g.gameStarted {
		// Экран выбора цвета
		ebitenutil.DebugPrintAt(screen, "Шахматы на Go", screenWidth/2-70, screenHeight/2-50)
		ebitenutil.DebugPrintAt(screen, botLine, screenWidth/2-100, screenHeight/2-25)
		ebitenutil.DebugPrintAt(screen, "Выберите цвет фигур:", screenWidth/2-100, screenHeight/2)

		whiteBtn := ebiten.NewImage(200, 60)
		whiteBtn.Fill(color.RGBA{200, 200, 200, 255})
		ebitenutil.DebugPrintAt(whiteBtn, "Играть белыми", 50, 20)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(screenWidth/2-200-20), float64(screenHeight/2+100))
		screen.DrawImage(whiteBtn, op)

		blackBtn := ebiten.NewImage(200, 60)
		blackBtn.Fill(color.RGBA{50, 50, 50, 255})
		ebitenutil.DebugPrintAt(blackBtn, "Играть черными", 50, 20)
		op = &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(screenWidth/2+20), float64(screenHeight/2+100))
		screen.DrawImage(blackBtn, op)
		return
	}

	board := g.chessGame.Position().Board()
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			file, rank := x, 7-y
			if g.playerColor == chess.Black {
				file, rank = 7-x, y
			}
			sq := chess.NewSquare(chess.File(file), chess.Rank(rank))

			clr := lightColor
			if (file+rank)%2 == 0 {
				clr = darkColor
			}
			if g.dragging && sq == g.selected {
				clr = selectedColor
			}
			square := g.squareImage(clr)
			px, py := x*squareSize+g.boardOffsetX, y*squareSize+g.boardOffsetY
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(px), float64(py))
			screen.DrawImage(square, op)

			// Фигуры рисуем буквами: заглавные белые, строчные черные
			if piece := board.Piece(sq); piece != chess.NoPiece {
				ebitenutil.DebugPrintAt(screen, pieceLetter(piece), px+squareSize/2-3, py+squareSize/2-8)
			}
		}
	}

	status := "Ваш ход"
	if g.botThinking {
		status = "Бот думает..."
	} else if g.chessGame.Position().Turn() != g.playerColor {
		status = "Ход бота"
	}
	if g.lastMove != "" {
		status += "   последний ход бота: " + g.lastMove
	}
	ebitenutil.DebugPrintAt(screen, status, 20, 20)
	ebitenutil.DebugPrintAt(screen, botLine, 20, 40)

	if outcome := g.chessGame.Outcome(); outcome != chess.NoOutcome {
		ebitenutil.DebugPrintAt(screen, "Результат: "+fmt.Sprintf("%s (%v)", outcome, g.chessGame.Method())+", N - новая игра", screenWidth/2-50, 20)
	}
}

func (g *Game) squareImage(clr color.RGBA) *ebiten.Image {
	if img, ok := g.squares[clr]; ok {
		return img
	}
	img := ebiten.NewImage(squareSize, squareSize)
	img.Fill(clr)
	g.squares[clr] = img
	return img
}

func pieceLetter(p chess.Piece) string {
	letter := p.Type().String()
	if p.Color() == chess.White {
		return string(letter[0] - 'a' + 'A')
	}
	return letter
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	botName := flag.String("bot", "hybrid", "bot to play against")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	if err := config.SetupLogging(*logLevel, true); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}

	game := NewGame(*botName)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Шахматы на Go")
	ebiten.SetWindowResizable(true)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("game loop stopped")
	}
}
