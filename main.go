package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-volumetric-pathtracer/pkg/integrator"
	"github.com/df07/go-volumetric-pathtracer/pkg/renderer"
	"github.com/df07/go-volumetric-pathtracer/pkg/scene"
)

// sceneFlags select and configure the scene; shared by render and inspect
func sceneFlags() []cli.Flag {
	defaults := scene.DefaultOptions()
	return []cli.Flag{
		cli.StringFlag{
			Name:  "scene, s",
			Value: "cornell",
			Usage: "'cornell', or an OBJ file placed inside the Cornell box",
		},
		cli.StringFlag{
			Name:  "tall-box",
			Value: "glossy",
			Usage: "material of the tall box: glossy, mirror or transparent",
		},
		cli.StringFlag{
			Name:  "texture",
			Usage: "image texture applied to the OBJ mesh",
		},
		cli.Float64Flag{
			Name:  "mesh-scale",
			Value: 1,
			Usage: "scale applied to the OBJ mesh",
		},
		cli.StringFlag{
			Name:  "mesh-offset",
			Value: "278,0,280",
			Usage: "translation applied to the OBJ mesh as x,y,z",
		},
		cli.StringFlag{
			Name:  "sphere",
			Value: "none",
			Usage: "add a sphere of this material: none, glossy, mirror or transparent",
		},
		cli.StringFlag{
			Name:  "sphere-center",
			Value: "185,225,169",
			Usage: "sphere center as x,y,z; the default rests on the short box",
		},
		cli.Float64Flag{
			Name:  "sphere-radius",
			Value: 60,
			Usage: "sphere radius",
		},
		cli.Float64Flag{
			Name:  "sigma-a",
			Value: 0.00025,
			Usage: "absorption coefficient of the medium (0 with sigma-s 0 for vacuum)",
		},
		cli.Float64Flag{
			Name:  "sigma-s",
			Value: 0.0003,
			Usage: "scattering coefficient of the medium",
		},
		cli.Float64Flag{
			Name:  "g",
			Value: 0.7,
			Usage: "Henyey-Greenstein asymmetry of the medium",
		},
		cli.IntFlag{
			Name:  "width",
			Value: defaults.Width,
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: defaults.Height,
			Usage: "frame height",
		},
		cli.Float64Flag{
			Name:  "fov",
			Value: defaults.Fov,
			Usage: "vertical field of view in degrees",
		},
		cli.Float64Flag{
			Name:  "rr",
			Value: defaults.RussianRoulette,
			Usage: "russian roulette continuation probability",
		},
		cli.IntFlag{
			Name:  "max-depth",
			Value: defaults.MaxDepth,
			Usage: "maximum path length",
		},
	}
}

func main() {
	renderDefaults := renderer.DefaultOptions()

	app := cli.NewApp()
	app.Name = "go-volumetric-pathtracer"
	app.Usage = "render scenes with participating media using path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Build the scene, estimate every pixel with the selected integrator and write
the tone mapped frame as PNG.`,
			Flags: append(sceneFlags(),
				cli.IntFlag{
					Name:  "spp",
					Value: renderDefaults.SamplesPerPixel,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "threads",
					Value: 0,
					Usage: "number of render threads (0 uses every CPU)",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: renderDefaults.Seed,
					Usage: "random seed",
				},
				cli.StringFlag{
					Name:  "integrator, i",
					Value: string(integrator.TypePath),
					Usage: "light transport algorithm: path or whitted",
				},
				cli.Float64Flag{
					Name:  "light-scale",
					Value: integrator.DefaultWhittedConfig().LightScale,
					Usage: "light scale of the whitted integrator",
				},
				cli.Float64Flag{
					Name:  "gamma",
					Value: renderer.DefaultGamma,
					Usage: "display exponent of the tone mapping",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			),
			Action: renderFrame,
		},
		{
			Name:   "inspect",
			Usage:  "build the scene and print BVH statistics",
			Flags:  sceneFlags(),
			Action: inspectScene,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
