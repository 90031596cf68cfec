// terminal renders the wriggle scene in a terminal using half-block cells.
// The mouse steers and sprays particles; 0-5 switch creatures with a short
// chirp, q quits.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/phanxgames/wriggle"
	"github.com/phanxgames/wriggle/termrender"
)

const sampleRate = beep.SampleRate(44100)

func main() {
	configPath := flag.String("config", "", "TOML config file")
	mute := flag.Bool("mute", false, "disable the creature-switch chirp")
	logPath := flag.String("log", "wriggle-terminal.log", "log file (the terminal is busy drawing)")
	flag.Parse()

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logrus.WithError(err).Fatal("open log")
	}
	defer logFile.Close()

	cfg := wriggle.DefaultConfig()
	if *configPath != "" {
		if cfg, err = wriggle.LoadConfig(*configPath); err != nil {
			logrus.WithError(err).Fatal("load config")
		}
	}
	log := wriggle.NewLogger(cfg.Log, logFile)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.WithError(err).Fatal("new screen")
	}
	if err := screen.Init(); err != nil {
		log.WithError(err).Fatal("init screen")
	}
	defer screen.Fini()

	scene := wriggle.NewScene(cfg, log)
	app := termrender.NewApp(screen, scene, log)

	if !*mute {
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			// Non-fatal, the demo runs without sound
			log.WithError(err).Warn("audio init failed")
		} else {
			app.OnSelect = func(wriggle.Kind) { chirp() }
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		log.WithError(err).Error("run")
	}
}

func chirp() {
	sine, err := generators.SineTone(sampleRate, 660)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(60*time.Millisecond), sine))
}
