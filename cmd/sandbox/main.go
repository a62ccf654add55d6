package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rigidsync/scene"
	"github.com/milk9111/rigidsync/telemetry"
)

func main() {
	sceneName := flag.String("scene", "sandbox.yaml", "scene file in scene/scenes/")
	debug := flag.Bool("debug", false, "draw constraints and contact points")
	watch := flag.Bool("watch", false, "reload scenes and scripts edited under scene/")
	csvPath := flag.String("csv", "", "write per-frame step telemetry to this CSV file")
	flag.Parse()

	var rec *telemetry.Recorder
	if *csvPath != "" {
		f, err := os.Create(*csvPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		rec = telemetry.NewRecorder(f)
	}

	game, err := NewGame(*sceneName, *debug, rec)
	if err != nil {
		log.Fatal(err)
	}

	if *watch {
		w, err := scene.NewWatcher(
			scene.DiskRoot+"/scenes",
			scene.DiskRoot+"/scripts",
		)
		if err != nil {
			log.Printf("sandbox: hot reload disabled: %v", err)
		} else {
			game.watcher = w
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("rigidsync sandbox")

	err = ebiten.RunGame(game)
	game.Close()
	if err != nil {
		log.Fatal(err)
	}
	if rec != nil {
		log.Printf("sandbox: %s", rec.Summary())
	}
}
