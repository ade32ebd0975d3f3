// mini-64 is a small 3D collect-a-thon platformer: run, chain jumps, gather
// coins and stars, catch bunnies and warp between courses through paintings.
//
// Usage:
//
//	mini-64                  - Play with the built-in courses
//	mini-64 play             - Same as above
//	mini-64 records          - Show completed runs
//
// Global flags:
//
//	--config <path>  - YAML config overriding the built-in tuning
//	--courses <path> - YAML course set replacing the built-in one
//	--db <path>      - Records database path (default: ~/.mini-64/records.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagCourses string
	flagDBPath  string
	flagWidth   int
	flagHeight  int
	flagFPS     int
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mini-64",
	Short: "A tiny 3D platformer about stars, coins and bunnies",
	Long: `mini-64 is a miniature 3D collect-a-thon. Explore the castle grounds,
warp into courses through paintings, collect all the stars and catch the
bunnies on the way.

Controls:
  WASD / arrows  - move
  Shift          - run
  Space          - jump (press again after landing for a higher one)
  E              - enter a painting
  Esc            - pause
  V              - profiling overlay`,
	RunE: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.mini-64/records.db", "Path to the records database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	playCmd.Flags().StringVar(&flagCourses, "courses", "", "Path to a YAML course file (default: built-in)")
	playCmd.Flags().IntVar(&flagWidth, "width", 0, "Window width (overrides config)")
	playCmd.Flags().IntVar(&flagHeight, "height", 0, "Window height (overrides config)")
	playCmd.Flags().IntVar(&flagFPS, "fps", -1, "FPS cap, 0 for uncapped (overrides config)")
	rootCmd.Flags().AddFlagSet(playCmd.Flags())

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(recordsCmd)
}
