package vision

import (
	"fmt"
	"os"

	"github.com/cropsage/cropsage/internal/detect"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	Detect.Flags().Bool("gemini", false, "analyze with the Gemini vision model instead of Groq")
}

var Detect = &cobra.Command{
	Use:     "detect [image]",
	GroupID: "vision",
	Short:   "Identify plant disease or pest",
	Long:    `Analyzes a plant photo and extracts the issue, severity and plant type`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		image, mimeType, err := readImage(args[0])
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Image read error: %v\n", err)
			return
		}
		useGemini, err := cmd.Flags().GetBool("gemini")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "invalid gemini flag: %v\n", err)
			return
		}
		client := groqClient()
		if useGemini {
			client = geminiClient()
		}

		detector := detect.NewDetector(client, newLogger())
		result := detector.Identify(cmd.Context(), image, mimeType)

		fmt.Println(result.Analysis)
		fmt.Println()
		fmt.Println(color.GreenString("Issue: %s", result.Issue))
		fmt.Println(color.YellowString("Severity: %s", result.Severity))
		fmt.Println(color.CyanString("Plant: %s", result.PlantType))
		fmt.Println(color.HiBlackString("Subject: %s", result.Subject))
	},
}
