// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command molview is an interactive 3D viewer of molecular structures.
package main

import (
	"os"

	"cogentcore.org/molview/base/logx"
	"cogentcore.org/molview/config"
	"cogentcore.org/molview/loader"
	"cogentcore.org/molview/render"
	"cogentcore.org/molview/view"
	"github.com/spf13/cobra"
)

// App holds the global flags and the config they select.
type App struct {
	ConfigFile  string
	EnvFiles    []string
	VeryVerbose bool
	Verbose     bool
	Quiet       bool

	Config *config.Config

	watchFlag bool
}

func main() {
	if err := newRootCmd(&App{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "molview [source]",
		Short:        "View a molecular structure in 3D",
		Long:         "molview shows a PDB structure, from a local path or URL, as an interactive 3D scene.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				app.Config.Source = args[0]
			}
			return app.run()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&app.ConfigFile, "config", "c", "", "config file (default: molview.toml or molview.yaml if found)")
	pf.StringSliceVar(&app.EnvFiles, "env", nil, ".env files to load (default: .env)")
	pf.BoolVar(&app.VeryVerbose, "vv", false, "print debug messages")
	pf.BoolVarP(&app.Verbose, "verbose", "v", false, "print info messages")
	pf.BoolVarP(&app.Quiet, "quiet", "q", false, "only print errors")

	f := root.Flags()
	f.BoolVarP(&app.watchFlag, "watch", "w", false, "reload a local source whenever it is written")

	root.AddCommand(newInfoCmd(app), newConfigCmd(app))
	return root
}

// setup configures logging and loads the config.
func (app *App) setup() error {
	logx.UserLevel = logx.LevelFromFlags(app.VeryVerbose, app.Verbose, app.Quiet)
	logx.SetDefaultLogger(os.Stderr)
	if err := config.LoadEnv(app.EnvFiles...); err != nil {
		return err
	}
	c, err := config.Load(app.ConfigFile)
	if err != nil {
		return err
	}
	if err := c.ApplyEnv(); err != nil {
		return err
	}
	app.Config = c
	return nil
}

// newLoader returns a loader set up from the config.
func (app *App) newLoader() (*loader.Loader, error) {
	timeout, err := app.Config.LoadTimeout()
	if err != nil {
		return nil, err
	}
	ld := loader.New(nil)
	ld.Timeout = timeout
	ld.Watch = app.Config.Watch
	return ld, nil
}

// run opens the viewer window.
func (app *App) run() error {
	c := app.Config
	if app.watchFlag {
		c.Watch = true
	}
	opts, err := c.Options()
	if err != nil {
		return err
	}
	ld, err := app.newLoader()
	if err != nil {
		return err
	}
	v := view.New(opts, ld, nil)
	v.Axes = c.Axes
	return render.Run(v, c.Window)
}
