// Eliksir: a dwell-to-click memory game. Watch the recipe glow, then point
// at the ingredients in the same order with your hand or the mouse.
//
// Usage:
//
//	eliksir [-verbose] [-quiet] [-no-sound] [-replay hands.jsonl] [-seed n]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/eliksir/internal/display"
	"github.com/hammamikhairi/eliksir/internal/domain"
	"github.com/hammamikhairi/eliksir/internal/dwell"
	"github.com/hammamikhairi/eliksir/internal/engine"
	"github.com/hammamikhairi/eliksir/internal/flow"
	"github.com/hammamikhairi/eliksir/internal/logger"
	"github.com/hammamikhairi/eliksir/internal/notify"
	"github.com/hammamikhairi/eliksir/internal/pointer"
	"github.com/hammamikhairi/eliksir/internal/recipe"
	"github.com/hammamikhairi/eliksir/internal/sound"
	"github.com/hammamikhairi/eliksir/internal/tracker"
)

// EnvNoSound disables audio cues when set to a non-empty value.
const EnvNoSound = "ELIKSIR_NO_SOUND"

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".eliksir-logs/eliksir.log", "file to write logs to (use \"stderr\" to log to console)")
	noSound := flag.Bool("no-sound", false, "disable audio cues")
	replay := flag.String("replay", "", "JSON-lines hand landmark recording to use as the camera")
	seed := flag.Int64("seed", 0, "recipe choice seed (0 = time-based)")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Logs go to a file by default; the game owns the terminal.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Third-party libraries log through the standard package.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	if *replay == "" {
		*replay = os.Getenv(tracker.EnvReplayFile)
	}
	if os.Getenv(EnvNoSound) != "" {
		*noSound = true
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	// Cancelled when the UI quits or on SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Pointer sources: the tracker publishes into hand, the UI into mouse.
	hand := pointer.NewSlot()
	mouse := pointer.NewFallback()
	fusion := pointer.NewFusion(hand, mouse)

	if *replay != "" {
		cam := tracker.NewReplayCamera(*replay, 0)
		trk := tracker.New(cam, hand, log.Named("tracker"))
		if err := trk.Start(ctx); err != nil {
			if errors.Is(err, domain.ErrCameraUnavailable) {
				log.Warn("hand tracking disabled: %v", err)
			} else {
				log.Error("hand tracking disabled: %v", err)
			}
		} else {
			defer trk.Stop()
		}
	} else {
		log.Info("no camera source configured (set -replay or %s); mouse only", tracker.EnvReplayFile)
	}

	// Notifications: printed lines, plus chimes when a device is available.
	feed := notify.NewFeed(log.Named("notify"))
	var notifier domain.Notifier = feed

	if !*noSound {
		player, err := sound.NewPlayer(log.Named("sound"))
		if err != nil {
			log.Warn("audio cues disabled: %v", err)
		} else {
			chimes := sound.NewChimes(player, log.Named("sound"))
			chimes.Start(ctx)
			defer chimes.Stop()
			notifier = sound.NewChimeNotifier(feed, chimes)
		}
	}

	// Game core.
	recipes := recipe.NewMemorySource(log.Named("recipe"))
	eng := engine.New(recipes, log.Named("engine"),
		engine.WithRand(rand.New(rand.NewSource(*seed))),
	)
	det := dwell.New(fusion, log.Named("dwell"))
	machine := flow.New(det, eng, notifier, log.Named("flow"))

	ui := display.NewUI(machine, fusion, mouse, feed, log.Named("display"))

	fmt.Print(display.RenderBanner("Przytrzymaj dłoń nad przyciskiem · q lub Esc kończy grę"))
	log.Info("eliksir starting (seed=%d, sound=%v, replay=%q)", *seed, !*noSound, *replay)

	// Bubble Tea owns the terminal; blocks until quit.
	if err := ui.Run(ctx); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
	log.Info("eliksir stopped")
}
