package game

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/lixenwraith/poke-scramble/creature"
)

// errNoSprite marks a record without a front sprite; such a creature is not played
var errNoSprite = errors.New("creature has no sprite")

// loadResult is what the fetch goroutine hands to the loop
type loadResult struct {
	record creature.Record
	image  image.Image // nil when the sprite download failed
	err    error
}

// load fetches one creature and its sprite. It runs off the loop goroutine
// and must not touch game state.
func (g *Game) load(ctx context.Context) loadResult {
	id := g.opts.CreatureID
	if id == 0 {
		id = creature.RandomID(g.rng, g.opts.MaxID)
	}
	log.Printf("fetching creature %d", id)

	rec, err := g.source.Fetch(ctx, id)
	if err != nil {
		return loadResult{err: err}
	}
	if rec.SpriteURL == "" {
		return loadResult{record: rec, err: fmt.Errorf("creature %d: %w", id, errNoSprite)}
	}

	img, err := g.source.Sprite(ctx, rec.SpriteURL)
	if err != nil {
		log.Printf("sprite for creature %d unavailable: %v", id, err)
		img = nil
	}
	return loadResult{record: rec, image: img}
}

// apply performs the name-loaded transition on the loop goroutine
func (g *Game) apply(res loadResult) {
	if res.err != nil {
		log.Printf("creature load failed: %v", res.err)
		g.board = nil
		g.art = nil
		g.drag = nil
		g.status = "could not load a creature, restart to try again"
		return
	}
	log.Printf("loaded creature %d (%s)", res.record.ID, res.record.Name)
	g.Load(res.record.Name, res.image)
}
