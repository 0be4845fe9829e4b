package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/poke-scramble/audio"
	"github.com/lixenwraith/poke-scramble/config"
	"github.com/lixenwraith/poke-scramble/creature"
	"github.com/lixenwraith/poke-scramble/game"
	"github.com/lixenwraith/poke-scramble/puzzle"
)

var (
	idFlag    = flag.Int("id", -1, "Creature id to play (0 = random, default from POKESCRAMBLE_ID)")
	debugFlag = flag.Bool("debug", false, "Write logs to logs/poke-scramble.log")
	muteFlag  = flag.Bool("mute", false, "Disable sound effects")
	seedFlag  = flag.Uint64("seed", 0, "Random seed for id and letter placement (0 = time based)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		os.Exit(1)
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: reset the terminal before printing the crash
	onCrash := func(r any) {
		screen.Fini()
		log.Printf("crash: %v", r)
		fmt.Fprintf(os.Stderr, "\n\x1b[31mPOKE-SCRAMBLE CRASHED: %v\x1b[0m\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
		os.Exit(1)
	}
	defer func() {
		if r := recover(); r != nil {
			onCrash(r)
		}
	}()
	defer screen.Fini()

	sounds := audio.NewSoundManager()
	if cfg.Sound {
		// Non-fatal, game can run without sound
		if err := sounds.Initialize(); err != nil {
			log.Printf("Audio initialization failed: %v", err)
		} else {
			defer sounds.Cleanup()
		}
	}

	layout := puzzle.DefaultLayout()
	layout.Tolerance = puzzle.Point{X: cfg.ToleranceX, Y: cfg.ToleranceY}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("starting: id=%d seed=%d api=%s", cfg.CreatureID, seed, cfg.APIBaseURL)

	g := game.New(
		screen,
		creature.NewClient(cfg.APIBaseURL, cfg.MaxID, cfg.HTTPTimeout),
		sounds,
		game.Options{
			Layout:     layout,
			CreatureID: cfg.CreatureID,
			MaxID:      cfg.MaxID,
			Rand:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
			OnCrash:    onCrash,
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := g.Run(ctx); err != nil {
		log.Printf("game stopped: %v", err)
	}
}

// applyFlags overrides environment settings with explicitly set flags
func applyFlags(cfg *config.Config) {
	if *idFlag >= 0 {
		cfg.CreatureID = *idFlag
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if *muteFlag {
		cfg.Sound = false
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
}
