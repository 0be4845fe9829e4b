package puzzle

import (
	"math/rand/v2"
)

// placementAttempts bounds the retries used to keep tiles apart
const placementAttempts = 16

// Board is the puzzle state for one name
type Board struct {
	name   []rune
	layout Layout
	image  Rect
	slots  []GuideSlot
	tiles  []LetterTile

	// placedIn maps a placed tile id to the slot index holding it
	placedIn map[int]int
}

// Setup builds a board for name on a width x height play area.
// An empty name yields a board without slots or tiles.
func Setup(name string, width, height int, layout Layout, rng *rand.Rand) *Board {
	letters := []rune(name)
	b := &Board{
		name:     letters,
		layout:   layout,
		slots:    make([]GuideSlot, len(letters)),
		tiles:    make([]LetterTile, 0, len(letters)),
		placedIn: make(map[int]int),
	}
	for i, r := range letters {
		b.slots[i] = GuideSlot{ID: i, Letter: r}
	}
	b.arrange(width, height)

	if len(letters) == 0 {
		return b
	}

	for i, r := range letters {
		pos := b.spawnPosition(r, width, height, rng)
		b.tiles = append(b.tiles, LetterTile{
			ID:     i,
			Letter: r,
			Pos:    pos,
			Origin: pos,
		})
	}

	return b
}

// arrange centres the image box and lays the guide row under it
func (b *Board) arrange(width, height int) {
	l := b.layout
	b.image = Rect{
		X:      width/2 - l.ImageWidth/2,
		Y:      height/2 - l.ImageHeight/2,
		Width:  l.ImageWidth,
		Height: l.ImageHeight,
	}

	rowWidth := len(b.slots) * l.SlotPitch
	rowX := width/2 - rowWidth/2
	rowY := b.image.Y + l.ImageHeight + l.GuideGap
	for i := range b.slots {
		b.slots[i].Pos = Point{X: rowX + i*l.SlotPitch, Y: rowY}
	}
}

// Relayout fits the board to a new play area. The image box and guide row
// are re-centred, placed tiles follow their slot, and loose tiles along with
// their return positions are pulled back inside the spawn area.
func (b *Board) Relayout(width, height int) {
	b.arrange(width, height)

	l := b.layout
	maxX := max(0, width-l.TileWidth)
	maxY := max(l.TopBand, height-l.BottomBand-1)
	for i := range b.tiles {
		t := &b.tiles[i]
		if slot, ok := b.placedIn[t.ID]; ok {
			t.Pos = b.slots[slot].Pos
			continue
		}
		t.Pos = clamp(t.Pos, maxX, l.TopBand, maxY)
		t.Origin = clamp(t.Origin, maxX, l.TopBand, maxY)
	}
}

// spawnPosition draws a random cell outside the top and bottom bands,
// retrying a bounded number of times to keep clear of the image box, other
// tiles and slots, and snapping range of a slot expecting the same letter
func (b *Board) spawnPosition(letter rune, width, height int, rng *rand.Rand) Point {
	spanX := width - b.layout.TileWidth + 1
	if spanX < 1 {
		spanX = 1
	}
	spanY := height - b.layout.BottomBand - b.layout.TopBand
	if spanY < 1 {
		spanY = 1
	}

	var p Point
	for attempt := 0; attempt < placementAttempts; attempt++ {
		p = Point{
			X: rng.IntN(spanX),
			Y: b.layout.TopBand + rng.IntN(spanY),
		}
		if !b.occupied(p, letter) {
			return p
		}
	}
	return p
}

// occupied reports whether a tile at p would overlap the image box, an
// existing tile or slot, or spawn already within tolerance of its own slot
func (b *Board) occupied(p Point, letter rune) bool {
	w := b.layout.TileWidth
	img := b.image
	if p.Y >= img.Y && p.Y < img.Y+img.Height && p.X+w > img.X && p.X < img.X+img.Width {
		return true
	}
	for _, t := range b.tiles {
		if t.Pos.Y == p.Y && abs(t.Pos.X-p.X) < w {
			return true
		}
	}
	tol := b.layout.Tolerance
	for _, s := range b.slots {
		if s.Pos.Y == p.Y && abs(s.Pos.X-p.X) < w {
			return true
		}
		if s.Letter == letter && abs(s.Pos.X-p.X) < tol.X && abs(s.Pos.Y-p.Y) < tol.Y {
			return true
		}
	}
	return false
}

// Name returns the name the board spells
func (b *Board) Name() string {
	return string(b.name)
}

// Layout returns the geometry the board was built with
func (b *Board) Layout() Layout {
	return b.layout
}

// Image returns the image box
func (b *Board) Image() Rect {
	return b.image
}

// Slots returns a copy of the guide slots in creation order
func (b *Board) Slots() []GuideSlot {
	out := make([]GuideSlot, len(b.slots))
	copy(out, b.slots)
	return out
}

// Tiles returns a copy of the tiles in creation order
func (b *Board) Tiles() []LetterTile {
	out := make([]LetterTile, len(b.tiles))
	copy(out, b.tiles)
	return out
}

// Tile returns the tile with the given id
func (b *Board) Tile(id int) (LetterTile, bool) {
	if t := b.find(id); t != nil {
		return *t, true
	}
	return LetterTile{}, false
}

// TileAt returns the id of the topmost draggable tile covering p.
// Later tiles are drawn above earlier ones, so the scan runs backwards.
func (b *Board) TileAt(p Point) (int, bool) {
	for i := len(b.tiles) - 1; i >= 0; i-- {
		t := &b.tiles[i]
		if t.Correct {
			continue
		}
		if p.Y == t.Pos.Y && p.X >= t.Pos.X && p.X < t.Pos.X+b.layout.TileWidth {
			return t.ID, true
		}
	}
	return 0, false
}

// Move sets the current position of a draggable tile.
// Returns false for unknown or already placed tiles.
func (b *Board) Move(id int, p Point) bool {
	t := b.find(id)
	if t == nil || t.Correct {
		return false
	}
	t.Pos = p
	return true
}

// Resolve drops tile id at release, the tile's top-left cell.
// The first unfilled slot in slot order that expects the tile's letter and
// lies strictly within tolerance on both axes receives the tile.
func (b *Board) Resolve(id int, release Point) Result {
	t := b.find(id)
	if t == nil || t.Correct {
		res := Result{Outcome: OutcomeIgnored, Slot: -1}
		if t != nil {
			res.Tile = *t
		}
		return res
	}

	tol := b.layout.Tolerance
	for i := range b.slots {
		s := &b.slots[i]
		if s.Filled || s.Letter != t.Letter {
			continue
		}
		if abs(s.Pos.X-release.X) < tol.X && abs(s.Pos.Y-release.Y) < tol.Y {
			s.Filled = true
			t.Pos = s.Pos
			t.Correct = true
			b.placedIn[t.ID] = i
			return Result{Outcome: OutcomePlaced, Slot: i, Tile: *t}
		}
	}

	t.Pos = t.Origin
	return Result{Outcome: OutcomeReturned, Slot: -1, Tile: *t}
}

// Placed returns the number of tiles already in a slot
func (b *Board) Placed() int {
	n := 0
	for _, t := range b.tiles {
		if t.Correct {
			n++
		}
	}
	return n
}

// Len returns the number of letters on the board
func (b *Board) Len() int {
	return len(b.tiles)
}

// Solved reports whether every tile is placed. An empty board is never solved.
func (b *Board) Solved() bool {
	return len(b.tiles) > 0 && b.Placed() == len(b.tiles)
}

func (b *Board) find(id int) *LetterTile {
	for i := range b.tiles {
		if b.tiles[i].ID == id {
			return &b.tiles[i]
		}
	}
	return nil
}

func clamp(p Point, maxX, minY, maxY int) Point {
	return Point{
		X: min(max(p.X, 0), maxX),
		Y: min(max(p.Y, minY), maxY),
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
