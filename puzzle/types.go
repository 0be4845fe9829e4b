package puzzle

// Point is a cell position
type Point struct {
	X, Y int
}

// Rect is a cell-aligned box
type Rect struct {
	X, Y          int
	Width, Height int
}

// GuideSlot is a target cell labelled with one expected letter
type GuideSlot struct {
	ID     int
	Letter rune
	Pos    Point
	Filled bool
}

// LetterTile is one draggable letter of the scrambled name
type LetterTile struct {
	ID      int
	Letter  rune
	Pos     Point // Current position, follows the drag
	Origin  Point // Spawn position, never changes
	Correct bool  // Set once the tile snaps into a slot
}

// Outcome classifies the effect of a drop
type Outcome int

const (
	// OutcomeIgnored means the tile was unknown or already placed
	OutcomeIgnored Outcome = iota
	// OutcomeReturned means no slot matched and the tile went back to its origin
	OutcomeReturned
	// OutcomePlaced means the tile snapped into a slot
	OutcomePlaced
)

// String returns the outcome name for logs
func (o Outcome) String() string {
	switch o {
	case OutcomeReturned:
		return "returned"
	case OutcomePlaced:
		return "placed"
	default:
		return "ignored"
	}
}

// Result describes a resolved drop
type Result struct {
	Outcome Outcome
	Slot    int // Index of the filled slot, -1 unless placed
	Tile    LetterTile
}

// Layout carries the geometry constants used by Setup and Resolve
type Layout struct {
	TileWidth   int // Cells one tile occupies horizontally
	SlotPitch   int // Horizontal distance between guide slots
	ImageWidth  int
	ImageHeight int
	GuideGap    int // Rows between image bottom and guide row
	TopBand     int // Rows at the top where tiles never spawn
	BottomBand  int // Rows at the bottom where tiles never spawn
	Tolerance   Point
}

// DefaultLayout returns the layout used by the game
func DefaultLayout() Layout {
	return Layout{
		TileWidth:   3,
		SlotPitch:   4,
		ImageWidth:  24,
		ImageHeight: 12,
		GuideGap:    1,
		TopBand:     3,
		BottomBand:  2,
		Tolerance:   Point{X: 3, Y: 2},
	}
}
