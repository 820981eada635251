package vision

import (
	"fmt"
	"os"

	"github.com/cropsage/cropsage/internal/celeb"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var Celeb = &cobra.Command{
	Use:     "celeb [image]",
	GroupID: "vision",
	Short:   "Identify a celebrity in a photo",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		image, mimeType, err := readImage(args[0])
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Image read error: %v\n", err)
			return
		}

		detector := celeb.NewDetector(groqClient(), newLogger())
		result := detector.Identify(cmd.Context(), image, mimeType)

		fmt.Println(result.Analysis)
		fmt.Println()
		if !result.FaceDetected {
			fmt.Println(color.RedString("No face detected"))
			return
		}
		fmt.Println(color.GreenString("Name: %s", result.Name))
		fmt.Println(color.CyanString("Profession: %s", result.Profession))
	},
}
