package game

import (
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/poke-scramble/puzzle"
)

// HandleEvent applies one terminal event. Returns false when the player quits.
func (g *Game) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}

	case *tcell.EventMouse:
		g.handleMouse(ev)

	case *tcell.EventResize:
		g.width, g.height = ev.Size()
		if g.board != nil {
			g.board.Relayout(g.width, g.height)
		}
		g.screen.Sync()
	}

	return true
}

// handleMouse runs the drag state machine: press on a tile grabs it, motion
// with the button held moves it, release resolves the drop. Only the press
// itself can grab; sweeping a held button onto a tile does nothing.
func (g *Game) handleMouse(ev *tcell.EventMouse) {
	pressed := ev.Buttons()&tcell.Button1 != 0
	wasDown := g.buttonDown
	g.buttonDown = pressed
	if g.board == nil {
		return
	}
	x, y := ev.Position()
	p := puzzle.Point{X: x, Y: y}

	if pressed {
		if g.drag == nil {
			if wasDown {
				return
			}
			id, ok := g.board.TileAt(p)
			if !ok {
				return
			}
			tile, _ := g.board.Tile(id)
			g.drag = &dragState{
				id:   id,
				grab: puzzle.Point{X: p.X - tile.Pos.X, Y: p.Y - tile.Pos.Y},
			}
			return
		}
		g.board.Move(g.drag.id, puzzle.Point{X: p.X - g.drag.grab.X, Y: p.Y - g.drag.grab.Y})
		return
	}

	if g.drag != nil {
		g.board.Move(g.drag.id, puzzle.Point{X: p.X - g.drag.grab.X, Y: p.Y - g.drag.grab.Y})
		g.drop()
	}
}

// drop resolves the dragged tile at its current top-left cell
func (g *Game) drop() {
	id := g.drag.id
	g.drag = nil

	tile, ok := g.board.Tile(id)
	if !ok {
		return
	}
	res := g.board.Resolve(id, tile.Pos)
	log.Printf("drop tile %d (%c) at %d,%d: %s", id, tile.Letter, tile.Pos.X, tile.Pos.Y, res.Outcome)

	switch res.Outcome {
	case puzzle.OutcomePlaced:
		if g.board.Solved() {
			g.sounds.PlayComplete()
		} else {
			g.sounds.PlaySnap()
		}
	case puzzle.OutcomeReturned:
		g.sounds.PlayReject()
		g.flashTile = id
		g.flashUntil = g.now().Add(flashDuration)
	}
	g.status = progressStatus(g.board)
}
