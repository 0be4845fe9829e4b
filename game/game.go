// Package game runs the letter-drag puzzle on a tcell screen.
//
// One goroutine owns all game state: it consumes terminal events, the result
// of the single creature fetch and the redraw ticker. Helper goroutines only
// forward data over channels.
package game

import (
	"context"
	"fmt"
	"image"
	"log"
	"math/rand/v2"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/poke-scramble/creature"
	"github.com/lixenwraith/poke-scramble/puzzle"
	"github.com/lixenwraith/poke-scramble/sprite"
)

const (
	frameInterval = 33 * time.Millisecond
	flashDuration = 400 * time.Millisecond
)

// Source provides creature records and sprites
type Source interface {
	Fetch(ctx context.Context, id int) (creature.Record, error)
	Sprite(ctx context.Context, url string) (image.Image, error)
}

// Sounds plays placement feedback
type Sounds interface {
	PlaySnap()
	PlayReject()
	PlayComplete()
}

// Options configures a Game
type Options struct {
	Layout     puzzle.Layout
	CreatureID int // 0 picks a random id in [1, MaxID]
	MaxID      int
	Rand       *rand.Rand

	// OnCrash receives a panic recovered in a helper goroutine. Nil resets
	// the terminal, prints the stack and exits.
	OnCrash func(r any)
}

// dragState tracks the tile under the pointer
type dragState struct {
	id   int
	grab puzzle.Point // Pointer offset from the tile's top-left cell
}

// Game holds the screen and puzzle state
type Game struct {
	screen tcell.Screen
	source Source
	sounds Sounds
	opts   Options
	rng    *rand.Rand
	now    func() time.Time

	width, height int

	board  *puzzle.Board
	art    *sprite.Image
	status string

	buttonDown bool
	drag       *dragState
	flashTile  int
	flashUntil time.Time
}

// New creates a game on an initialized screen
func New(screen tcell.Screen, source Source, sounds Sounds, opts Options) *Game {
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	if sounds == nil {
		sounds = silent{}
	}
	if opts.MaxID <= 0 {
		opts.MaxID = creature.DefaultMaxID
	}

	g := &Game{
		screen: screen,
		source: source,
		sounds: sounds,
		opts:   opts,
		rng:    rng,
		now:    time.Now,
		status: "loading creature...",
	}
	g.width, g.height = screen.Size()
	return g
}

// Run drives the game until the player quits or ctx is done
func (g *Game) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g.screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	defer g.screen.DisableMouse()

	loaded := make(chan loadResult, 1)
	go func() {
		defer g.guard()
		loaded <- g.load(ctx)
	}()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		defer g.guard()
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	g.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-eventChan:
			if !g.HandleEvent(ev) {
				return nil
			}
			g.Draw()

		case res := <-loaded:
			g.apply(res)
			g.Draw()

		case <-ticker.C:
			g.Draw()
		}
	}
}

// guard hands a panic in the calling goroutine to the crash handler
func (g *Game) guard() {
	r := recover()
	if r == nil {
		return
	}
	if g.opts.OnCrash != nil {
		g.opts.OnCrash(r)
		return
	}
	g.screen.Fini()
	fmt.Fprintf(os.Stderr, "\n\x1b[31mPOKE-SCRAMBLE CRASHED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
	os.Exit(1)
}

// Board returns the current puzzle, nil until a creature is loaded
func (g *Game) Board() *puzzle.Board {
	return g.board
}

// Status returns the status line text
func (g *Game) Status() string {
	return g.status
}

// Load (re)initializes the puzzle for name at the current screen size.
// img may be nil, in which case the image box stays blank.
func (g *Game) Load(name string, img image.Image) {
	g.width, g.height = g.screen.Size()
	g.board = puzzle.Setup(name, g.width, g.height, g.opts.Layout, g.rng)
	g.art = nil
	if img != nil {
		g.art = sprite.Convert(img, g.opts.Layout.ImageWidth, g.opts.Layout.ImageHeight)
	}
	g.drag = nil
	g.flashUntil = time.Time{}
	g.status = progressStatus(g.board)
	log.Printf("puzzle ready: %d letters", g.board.Len())
}

// silent is the Sounds used when none is supplied
type silent struct{}

func (silent) PlaySnap()     {}
func (silent) PlayReject()   {}
func (silent) PlayComplete() {}
