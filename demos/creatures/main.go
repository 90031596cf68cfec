// creatures runs the full wriggle scene in a window. Move the pointer to
// steer the creature, hold the button to spray particles and use the
// number keys to switch creatures.
//
//	creatures -config wriggle.toml
//	creatures -write-config wriggle.toml
//	creatures -script walkthrough.json -quit
package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/phanxgames/wriggle"
	"github.com/phanxgames/wriggle/ebitenrender"
)

func main() {
	var (
		configPath  = flag.String("config", "", "TOML config file")
		writeConfig = flag.String("write-config", "", "write the default config to this path and exit")
		scriptPath  = flag.String("script", "", "JSON test script to run")
		quit        = flag.Bool("quit", false, "exit when the test script finishes")
		entity      = flag.String("entity", "", "initial creature: none, snake, fish, koi, centipede, dragon")
		debug       = flag.Bool("debug", false, "log per-frame stats")
	)
	flag.Parse()

	cfg := wriggle.DefaultConfig()
	log := wriggle.NewLogger(cfg.Log, os.Stderr)

	if *writeConfig != "" {
		if err := writeDefault(*writeConfig, cfg); err != nil {
			log.WithError(err).Fatal("write config")
		}
		log.WithField("path", *writeConfig).Info("default config written")
		return
	}

	if *configPath != "" {
		loaded, err := wriggle.LoadConfig(*configPath)
		if err != nil {
			log.WithError(err).Fatal("load config")
		}
		cfg = loaded
		log = wriggle.NewLogger(cfg.Log, os.Stderr)
	}
	if *entity != "" {
		kind, ok := wriggle.ParseKind(*entity)
		if !ok {
			log.WithField("entity", *entity).Warn("unknown creature, starting empty")
		}
		cfg.Settings.Entity = kind
	}
	if *debug {
		cfg.Debug = true
		log.SetLevel(logrus.DebugLevel)
	}

	scene := wriggle.NewScene(cfg, log)
	game := ebitenrender.NewGame(scene, cfg, log)

	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.WithError(err).Fatal("read script")
		}
		runner, err := wriggle.LoadTestScript(data)
		if err != nil {
			log.WithError(err).Fatal("load script")
		}
		scene.SetTestRunner(runner)
		game.Script = runner
		game.QuitWhenScriptDone = *quit
	}

	log.WithFields(logrus.Fields{
		"entity": cfg.Settings.Entity,
		"width":  cfg.Window.Width,
		"height": cfg.Window.Height,
	}).Info("starting")

	if err := game.Run(cfg.Window.Title); err != nil {
		log.WithError(err).Fatal("run")
	}
}

func writeDefault(path string, cfg wriggle.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := wriggle.WriteConfig(f, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
