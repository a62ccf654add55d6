package main

import (
	"flag"
	"io"
	"log"
	"math"
	"os"

	"github.com/milk9111/rigidsync/ecs"
	"github.com/milk9111/rigidsync/ecs/component"
	"github.com/milk9111/rigidsync/scene"
	"github.com/milk9111/rigidsync/telemetry"
)

func main() {
	sceneName := flag.String("scene", "sandbox.yaml", "scene file in scene/scenes/")
	frames := flag.Int("frames", 600, "number of frames to simulate")
	dt := flag.Float64("dt", 1.0/60.0, "elapsed seconds reported for every frame")
	csvPath := flag.String("csv", "", "write per-frame step telemetry to this CSV file")
	flag.Parse()

	if *frames <= 0 || *dt <= 0 || math.IsNaN(*dt) {
		log.Fatalf("headless: frames and dt must be positive")
	}

	var out io.Writer = io.Discard
	if *csvPath != "" {
		f, err := os.Create(*csvPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}

	spec, err := scene.LoadSpec(*sceneName)
	if err != nil {
		log.Fatal(err)
	}
	elapsed := *dt
	rt, err := scene.Start(spec, func() float64 { return elapsed })
	if err != nil {
		log.Fatal(err)
	}
	defer rt.Close()

	rec := telemetry.NewRecorder(out)
	rt.Physics.OnFrame(rec.Observe(rt.Physics))

	for i := 0; i < *frames; i++ {
		rt.Update()
	}
	rec.SetSimulated(rt.Physics.Driver().Simulated())

	log.Printf("headless: %s: %s", spec.Name, rec.Summary())
	ecs.ForEach2(rt.World, component.NameComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, name *component.Name, t *component.Transform) {
			log.Printf("headless: %-12s x=%8.2f y=%8.2f angle=%6.3f", name.Value, t.X, t.Y, t.Angle)
		})
}
