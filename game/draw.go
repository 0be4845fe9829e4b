package game

import (
	"fmt"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/poke-scramble/puzzle"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const title = "Who's that Pokémon?"

var (
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleBanner  = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleGuide   = tcell.StyleDefault.Foreground(tcell.ColorGray).Dim(true)
	styleTile    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleCorrect = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	styleDrag    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Reverse(true)
	styleFlash   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon)
)

var titleCaser = cases.Title(language.English)

// Draw renders the full frame
func (g *Game) Draw() {
	g.screen.Clear()

	g.drawCentered(1, title, styleTitle)

	if g.board != nil {
		g.drawImage()
		g.drawGuides()
		g.drawTiles()
		if g.board.Solved() {
			img := g.board.Image()
			g.drawCentered(img.Y-1, "It's "+titleCaser.String(g.board.Name())+"!", styleBanner)
		}
	}

	g.drawCentered(g.height-1, g.status, styleStatus)
	g.screen.Show()
}

func (g *Game) drawImage() {
	if g.art == nil {
		return
	}
	box := g.board.Image()
	for y := 0; y < g.art.Height; y++ {
		for x := 0; x < g.art.Width; x++ {
			c := g.art.At(x, y)
			if c.Rune == ' ' && c.Style == tcell.StyleDefault {
				continue
			}
			g.setCell(box.X+x, box.Y+y, c.Rune, c.Style)
		}
	}
}

// drawGuides shows the faint expected letter of every unfilled slot
func (g *Game) drawGuides() {
	w := g.board.Layout().TileWidth
	for _, s := range g.board.Slots() {
		if s.Filled {
			continue
		}
		g.setCell(s.Pos.X+w/2, s.Pos.Y, displayRune(s.Letter), styleGuide)
	}
}

// drawTiles draws placed and idle tiles, the dragged one last so it stays on top
func (g *Game) drawTiles() {
	var dragged *puzzle.LetterTile
	for _, t := range g.board.Tiles() {
		if g.drag != nil && t.ID == g.drag.id {
			tile := t
			dragged = &tile
			continue
		}
		style := styleTile
		switch {
		case t.Correct:
			style = styleCorrect
		case t.ID == g.flashTile && g.now().Before(g.flashUntil):
			style = styleFlash
		}
		g.drawTile(t, style)
	}
	if dragged != nil {
		g.drawTile(*dragged, styleDrag)
	}
}

func (g *Game) drawTile(t puzzle.LetterTile, style tcell.Style) {
	w := g.board.Layout().TileWidth
	for i := 0; i < w; i++ {
		r := ' '
		if i == w/2 {
			r = displayRune(t.Letter)
		}
		g.setCell(t.Pos.X+i, t.Pos.Y, r, style)
	}
}

// drawCentered writes s centred on row y, measuring display width
func (g *Game) drawCentered(y int, s string, style tcell.Style) {
	if s == "" {
		return
	}
	x := (g.width - runewidth.StringWidth(s)) / 2
	if x < 0 {
		x = 0
	}
	for _, r := range s {
		g.setCell(x, y, r, style)
		x += runewidth.RuneWidth(r)
	}
}

func (g *Game) setCell(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	g.screen.SetContent(x, y, r, nil, style)
}

// displayRune shows letters in upper case; other runes such as '-' pass through
func displayRune(r rune) rune {
	return unicode.ToUpper(r)
}

// progressStatus formats the status line for a loaded board
func progressStatus(b *puzzle.Board) string {
	if b == nil || b.Len() == 0 {
		return "nothing to spell"
	}
	if b.Solved() {
		return fmt.Sprintf("solved %d/%d  ·  q quits", b.Placed(), b.Len())
	}
	return fmt.Sprintf("placed %d/%d  ·  drag the letters onto the slots  ·  q quits", b.Placed(), b.Len())
}
