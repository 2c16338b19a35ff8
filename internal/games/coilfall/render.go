package coilfall

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-coilfall/internal/core"
	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/core"
)

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}
	if g.sim == nil {
		g.renderOverlay(dst, "No levels found", "Check the levels directory")
		return
	}

	g.renderBoard(dst)

	switch {
	case g.won:
		g.renderOverlay(dst, "You Win!", "All levels cleared!")
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := " Coilfall"
	if g.sim != nil {
		hud = fmt.Sprintf(" Coilfall | Score: %d | Level %d/%d: %s | Moves: %d",
			g.score, g.levelIndex+1, len(g.allLevels), g.level.Name, g.sim.Moves())
		if g.level.Par > 0 {
			hud += fmt.Sprintf(" (par %d)", g.level.Par)
		}
		hud += fmt.Sprintf(" | Undos: %d", g.sim.Undos())
		if g.sim.FoodsRemaining() > 0 {
			hud += fmt.Sprintf(" | Food: %d", g.sim.FoodsRemaining())
		}
		if g.viewZ != 0 {
			hud += fmt.Sprintf(" | Depth: %d", g.viewZ)
		}
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)

	for x := 0; x < dst.Width(); x++ {
		dst.SetWithColor(x, 1, '─', platformcore.ColorGray)
	}

	controls := " Arrows/WASD: Move | Space/E: Rise | Q: Dive | U: Undo | Tab: Snake | R: Retry"
	dst.DrawTextWithColor(0, 2, controls, platformcore.ColorGray)

	for x := 0; x < dst.Width(); x++ {
		dst.SetWithColor(x, 3, '─', platformcore.ColorGray)
	}
}

// renderBoard draws the depth slice the controlled snake occupies.
// Fixtures and resting cells come from the grid; snakes and boxes are
// drawn from their entities so that falling pieces stay visible.
func (g *Game) renderBoard(dst *platformcore.Screen) {
	goalPos, hasGoal := g.sim.Goal()

	for pos, ref := range g.sim.Grid().Snapshot() {
		if ref.Kind == core.KindSnake || ref.Kind == core.KindBox {
			continue
		}
		if pos.Z != g.viewZ {
			continue
		}
		switch ref.Kind {
		case core.KindWall:
			g.drawCell(dst, pos, '█', platformcore.ColorGray)
		case core.KindFood:
			g.drawCell(dst, pos, '●', platformcore.ColorBrightGreen)
		case core.KindSpike:
			g.drawCell(dst, pos, '▲', platformcore.ColorBrightRed)
		}
	}

	for _, tr := range g.sim.TriggerInfos() {
		if tr.Position.Z != g.viewZ {
			continue
		}
		if tr.Loaded {
			g.drawCell(dst, tr.Position, '≡', platformcore.ColorBrightCyan)
		} else {
			g.drawCell(dst, tr.Position, '_', platformcore.ColorCyan)
		}
	}

	if hasGoal && goalPos.Z == g.viewZ {
		if g.sim.GoalActive() {
			g.drawCell(dst, goalPos, '◎', platformcore.ColorBrightYellow)
		} else {
			g.drawCell(dst, goalPos, '◌', platformcore.ColorGray)
		}
	}

	// Off-slice pieces show up as faint markers so depth moves stay
	// readable.
	for _, box := range g.sim.Boxes() {
		for _, pos := range box.Positions() {
			if pos.Z != g.viewZ {
				g.drawCell(dst, pos, '░', platformcore.ColorGray)
			}
		}
	}
	for _, info := range g.sim.SnakeInfos() {
		if !info.Active {
			continue
		}
		for _, el := range info.Snake.Parts() {
			if el.Position.Z != g.viewZ {
				g.drawCell(dst, el.Position, '░', platformcore.ColorGray)
			}
		}
	}

	for _, box := range g.sim.Boxes() {
		for _, pos := range box.Positions() {
			if pos.Z == g.viewZ {
				g.drawCell(dst, pos, '▓', platformcore.ColorYellow)
			}
		}
	}

	for _, info := range g.sim.SnakeInfos() {
		if !info.Active {
			continue
		}
		color := platformcore.ColorBlue
		if info.Selected {
			color = platformcore.ColorBrightGreen
		}
		if info.Falling {
			color = platformcore.ColorMagenta
		}

		parts := info.Snake.Parts()
		for i := len(parts) - 1; i >= 0; i-- {
			el := parts[i]
			if el.Position.Z != g.viewZ {
				continue
			}
			glyph := '█'
			if i == 0 {
				glyph = headGlyph(el.Direction)
			}
			g.drawCell(dst, el.Position, glyph, color)
		}
	}
}

// headGlyph picks a marker showing where the head points.
func headGlyph(dir core.Vec3) rune {
	switch dir {
	case core.Left:
		return '◀'
	case core.Up:
		return '▲'
	case core.Down:
		return '▼'
	case core.Forward:
		return '◆'
	case core.Back:
		return '◇'
	default:
		return '▶'
	}
}

// drawCell paints one board cell as a cellW x cellH block.
func (g *Game) drawCell(dst *platformcore.Screen, pos core.Vec3, glyph rune, color platformcore.Color) {
	x := g.gridOffsetX + (pos.X-g.minX)*g.cellW
	y := g.gridOffsetY + (g.maxY-pos.Y)*g.cellH

	for cy := 0; cy < g.cellH; cy++ {
		for cx := 0; cx < g.cellW; cx++ {
			px := x + cx
			py := y + cy
			if px >= 0 && px < dst.Width() && py >= 0 && py < dst.Height() {
				dst.SetWithColor(px, py, glyph, color)
			}
		}
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	maxLen := len(line1)
	if len(line2) > maxLen {
		maxLen = len(line2)
	}

	box := platformcore.NewRect((dst.Width()-maxLen-4)/2, (dst.Height()-5)/2, maxLen+4, 5)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
