// Command demo opens a window and renders a scene file with the forward
// renderer, the movement and collision systems and a free-fly camera.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/NouranFoda/CMPN205-Graphics-Project/internal/log"
	"github.com/NouranFoda/CMPN205-Graphics-Project/internal/window"
)

type options struct {
	width    int
	height   int
	title    string
	logLevel string
	watch    bool
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	def := window.DefaultConfig()
	opts := options{width: def.Width, height: def.Height, title: def.Title}

	cmd := &cobra.Command{
		Use:   "demo [scene-file]",
		Short: "Render a scene file in an OpenGL window",
		Long: "Render a scene file (JSON, YAML or TOML) in an OpenGL window.\n\n" +
			"WASD/QE move, right mouse drag looks around, Shift speeds up,\n" +
			"F5 reloads the scene and Escape quits.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			logger := log.New(level)
			defer logger.Sync()

			path := "assets/demo.json"
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd.Context(), path, opts, logger)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.width, "width", opts.width, "window width in pixels")
	f.IntVar(&opts.height, "height", opts.height, "window height in pixels")
	f.StringVar(&opts.title, "title", opts.title, "window title")
	f.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn, error or silent")
	f.BoolVar(&opts.watch, "watch", false, "reload the scene when the file changes")
	return cmd
}
