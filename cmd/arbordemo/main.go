// Command arbordemo shows an arbor scene graph: a small orbiting system of
// 2D nodes that can be opened in a window or stepped headlessly.
package main

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/arbor"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "arbordemo",
		Short:        "Demonstrates the arbor scene graph",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			arbor.Logger().SetLevel(level)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRunCmd())
	root.AddCommand(newDumpCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		configPath string
		showFPS    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open a window and animate the demo scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := arbor.DefaultRunConfig()
			if configPath != "" {
				var err error
				if cfg, err = arbor.LoadRunConfig(configPath); err != nil {
					return err
				}
			}
			scene := arbor.NewScene()
			buildSystem(scene, cfg.Viewport())
			if showFPS {
				scene.Root().AddChild(scene.Registry().NewFPSWidget())
			}
			return arbor.Run(scene, cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML run configuration")
	cmd.Flags().BoolVar(&showFPS, "fps", false, "show an FPS/TPS overlay")
	return cmd
}

func newDumpCmd() *cobra.Command {
	var (
		frames int
		tps    int
		order  string
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Step the demo scene without a window and print world positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			var o arbor.Order
			switch order {
			case "depth":
				o = arbor.DepthFirst
			case "breadth":
				o = arbor.BreadthFirst
			default:
				return fmt.Errorf("unknown order %q (want depth or breadth)", order)
			}
			if tps <= 0 {
				return fmt.Errorf("tps %d must be positive", tps)
			}

			cfg := arbor.DefaultRunConfig()
			scene := arbor.NewSceneWithRegistry(arbor.NewRegistry())
			buildSystem(scene, cfg.Viewport())
			for i := 0; i < frames; i++ {
				scene.Step(1 / float64(tps))
			}
			return dumpTree(cmd.OutOrStdout(), scene.Root(), o)
		},
	}
	cmd.Flags().IntVarP(&frames, "frames", "n", 60, "number of frames to simulate")
	cmd.Flags().IntVar(&tps, "tps", 60, "simulated ticks per second")
	cmd.Flags().StringVar(&order, "order", "depth", "traversal order: depth or breadth")
	return cmd
}
