package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// cellW is the number of terminal columns per frame buffer pixel; terminal
// cells are roughly twice as tall as they are wide.
const cellW = 2

// Frame buffer regions, in pixel coordinates (X = column, Y = row).
var (
	// fullView is the whole 32x32 frame.
	fullView = core.NewRect(0, 0, engine.FrameCols, engine.FrameRows)
	// fieldView is the field with its walls and floor.
	fieldView = core.NewRect(
		engine.FrameCols-1-(engine.FieldShift+engine.BoardWidth),
		engine.FieldTop,
		engine.BoardWidth+2,
		engine.BoardHeight+1,
	)
)

// Render draws the frame buffer and a status line onto the screen. The full
// frame is shown when it fits; otherwise only the field and its border.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	bounds := dst.Bounds()
	view := fullView
	if !bounds.Fits(view.W*cellW, view.H+2) {
		view = fieldView
	}
	if !bounds.Fits(view.W*cellW, view.H+2) {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorYellow)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("need %dx%d", view.W*cellW, view.H+2), core.ColorGray)
		return
	}

	area := bounds.CenterIn(view.W*cellW, view.H+2)
	state := g.State()

	status, statusColor := fmt.Sprintf("Lines: %d", state.Score), core.ColorWhite
	if state.GameOver {
		status, statusColor = fmt.Sprintf("Game Over! %d", state.Score), core.ColorRed
	}
	dst.DrawTextCentered(area.Y, status, statusColor)

	for r := 0; r < view.H; r++ {
		row := view.Y + r
		y := area.Y + 1 + r
		for c := 0; c < view.W; c++ {
			col := view.X + c
			x := area.X + c*cellW
			inField := engine.InField(row, col)
			switch {
			case g.fb.Lit(row, col):
				color := core.ColorGray
				if inField {
					color = core.ColorBrightGreen
				}
				dst.SetColored(x, y, '█', color)
				dst.SetColored(x+1, y, '█', color)
			case inField:
				dst.SetColored(x, y, '·', core.ColorGray)
			}
		}
	}

	footer := area.Bottom() - 1
	switch {
	case state.GameOver:
		dst.DrawTextCentered(footer, "Press R or Esc to restart", core.ColorYellow)
	case state.Paused:
		dst.DrawTextCentered(footer, "Paused - press P to continue", core.ColorYellow)
	}
}
