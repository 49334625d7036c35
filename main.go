package main

import (
	"os"

	"github.com/achilleasa/aabboctree/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "aabboctree"
	app.Usage = "build and query a flat-buffer AABB octree"
	app.Version = "0.0.1"
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
			Name:   "build",
			Usage:  "build an octree over a random object cloud and report pool occupancy",
			Flags:  cmd.CommonFlags(),
			Action: cmd.Build,
		},
		{
			Name:      "raycast",
			Usage:     "build an octree and cast a single ray against it",
			ArgsUsage: "ox oy oz dx dy dz",
			Flags:     cmd.CommonFlags(),
			Action:    cmd.Raycast,
		},
		{
			Name:   "sweep",
			Usage:  "drive a sweep.Worker over a shared AABB/ray buffer pair",
			Flags:  cmd.SweepFlags(),
			Action: cmd.Sweep,
		},
	}

	app.Run(os.Args)
}
