package main

import (
	"fmt"
	"os"

	"github.com/cropsage/cropsage/cmd/cli/agri"
	"github.com/cropsage/cropsage/cmd/cli/anime"
	"github.com/cropsage/cropsage/cmd/cli/vision"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func init() {
	// The .env file is optional, exported variables work too.
	_ = godotenv.Load()
	rootCmd.AddGroup(vision.Group)
	rootCmd.AddCommand(vision.Detect)
	rootCmd.AddCommand(vision.Celeb)
	rootCmd.AddGroup(agri.Group)
	rootCmd.AddCommand(agri.Location)
	rootCmd.AddCommand(agri.Products)
	rootCmd.AddCommand(agri.Advise)
	rootCmd.AddGroup(anime.Group)
	rootCmd.AddCommand(anime.Index)
	rootCmd.AddCommand(anime.Recommend)
}

var rootCmd = &cobra.Command{
	Use:  "cropsage",
	Long: `Command line harness for the CropSage detectors and advisor`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
