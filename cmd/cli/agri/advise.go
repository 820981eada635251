package agri

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cropsage/cropsage/internal/advisor"
	"github.com/cropsage/cropsage/internal/detect"
	"github.com/cropsage/cropsage/internal/location"
	"github.com/cropsage/cropsage/internal/products"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const rule = "──────────────────────────────────────────────────────────────────────"

var Advise = &cobra.Command{
	Use:     "advise [image]",
	GroupID: "agri",
	Short:   "Interactive advisor session for a plant photo",
	Long: `Analyzes a plant photo, asks for crop details and answers follow-up
questions about treatment, soil, weather and monitoring`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		logger := newLogger()

		image, mimeType, err := readImage(args[0])
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Image read error: %v\n", err)
			return
		}

		fmt.Println("📸 Analyzing image...")
		gemini := geminiClient()
		detection := detect.NewDetector(groqClient(), logger).Identify(ctx, image, mimeType)

		plant := detection.PlantType
		if plant == "Unknown" {
			plant = "Not identified"
		}
		fmt.Println()
		fmt.Println(color.New(color.Bold).Sprint("✓ Detection Results:"))
		fmt.Printf("   Issue: %s\n", detection.Issue)
		fmt.Printf("   Severity: %s\n", detection.Severity)
		fmt.Printf("   Plant: %s\n", plant)

		assessment := advisor.BriefAssessment(ctx, logger, gemini, detection.Issue, detection.Severity, detection.PlantType)
		fmt.Println()
		fmt.Println(color.YellowString("⚠️  %s", assessment))

		reader := bufio.NewReader(os.Stdin)
		fmt.Println()
		fmt.Println(rule)
		fmt.Println("📝 Get Personalized Treatment Plan")
		fmt.Println(rule)
		fmt.Println("\nShare your plant type, zip code and infestation level.")
		fmt.Println("Example: tomato, 92336, low")
		fmt.Print("\n➤ Enter details: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		details := advisor.ParseDetails(line)
		if details.PlantType == "" && detection.PlantType != "Unknown" {
			details.PlantType = detection.PlantType
		}

		session := advisor.NewSession(logger, func(standingContext string) advisor.Channel {
			return gemini.NewChat(standingContext)
		}, location.NewService(logger, location.BaseURLs{}),
			products.NewSerperSearcher(logger, os.Getenv("SERPER_API_KEY"), ""),
			detection, details)

		fmt.Println("\n💊 Generating treatment recommendations...")
		fmt.Println()
		fmt.Println(session.GenerateTreatment(ctx))

		menuLoop(ctx, session, reader)
	},
}

var menuOptions = []string{
	"1️⃣ Detailed Soil Impact",
	"2️⃣ Weather-Based Timing",
	"3️⃣ Monitoring & Prevention",
	"4️⃣ Detailed Report (All recommendations)",
	"5️⃣ Ask Custom Question",
}

// menuLoop answers selections until the grower quits or stdin ends. Displayed
// options 1-4 map to the dispatcher selectors, 5 asks a free-form question.
func menuLoop(ctx context.Context, session *advisor.Session, reader *bufio.Reader) {
	for {
		fmt.Println()
		fmt.Println(rule)
		fmt.Println("WHAT ELSE WOULD YOU LIKE TO KNOW?")
		fmt.Println(rule)
		for _, option := range menuOptions {
			fmt.Println(option)
		}
		fmt.Println("\n(Type 'quit' to exit)")
		fmt.Print("\n➤ Select option (1-5): ")

		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		choice := strings.ToLower(strings.TrimSpace(line))
		switch choice {
		case "q", "quit", "exit":
			return
		case "5":
			fmt.Print("\n❓ Your question: ")
			if line, err = reader.ReadString('\n'); err != nil {
				return
			}
			question := strings.TrimSpace(line)
			if question == "" {
				continue
			}
			fmt.Println()
			fmt.Println(session.AskCustom(ctx, question))
		default:
			option, err := strconv.Atoi(choice)
			if err != nil || option < 1 || option > 4 {
				fmt.Println(color.RedString("❌ Invalid option. Please select 1-5."))
				continue
			}
			// The displayed menu starts at soil; the treatment selector was
			// already answered above.
			fmt.Println()
			fmt.Println(session.Answer(ctx, option+1))
		}
	}
}
