package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/cropsage/cropsage/internal/anime"
	"github.com/cropsage/cropsage/internal/celeb"
	"github.com/cropsage/cropsage/internal/detect"
	"github.com/cropsage/cropsage/internal/envstruct"
	"github.com/cropsage/cropsage/internal/errors"
	"github.com/cropsage/cropsage/internal/llm"
	"github.com/cropsage/cropsage/internal/location"
	"github.com/cropsage/cropsage/internal/logging"
	"github.com/cropsage/cropsage/internal/pprofserver"
	"github.com/cropsage/cropsage/internal/products"
	"github.com/joho/godotenv"
)

type application struct {
	logger         *slog.Logger
	plantDetector  *detect.Detector
	celebDetector  *celeb.Detector
	assistant      llm.Client
	locations      *location.Service
	searcher       products.Searcher
	recommender    *anime.Recommender
	sessionManager *scs.SessionManager
	sessions       *sessionRegistry
}

type config struct {
	Addr           string `env:"CROPSAGE_ADDR" envDefault:"localhost:4000"`
	PprofPort      string `env:"CROPSAGE_PPROF_PORT" envDefault:""`
	GroqAPIKey     string `env:"GROQ_API_KEY"`
	GoogleAPIKey   string `env:"GOOGLE_API_KEY"`
	SerperAPIKey   string `env:"SERPER_API_KEY"`
	PineconeAPIKey string `env:"PINECONE_API_KEY" envDefault:""`
	PineconeIndex  string `env:"PINECONE_INDEX" envDefault:""`

	// Base URL overrides point the external integrations at stub servers in tests.
	GroqBaseURL    string `env:"CROPSAGE_GROQ_URL" envDefault:""`
	GeminiBaseURL  string `env:"CROPSAGE_GEMINI_URL" envDefault:""`
	SerperBaseURL  string `env:"CROPSAGE_SERPER_URL" envDefault:""`
	GeocodeBaseURL string `env:"CROPSAGE_GEOCODE_URL" envDefault:""`
	WeatherBaseURL string `env:"CROPSAGE_WEATHER_URL" envDefault:""`
	SoilBaseURL    string `env:"CROPSAGE_SOIL_URL" envDefault:""`
}

func main() {
	ctx := context.Background()
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   true,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	})))

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded")
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server start failed", errors.SlogError(err))
		os.Exit(1)
	}
}

// run wires the application together and starts the server. Tests call it with
// their own logger and environment to boot the real server on a random port.
func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	// pprof listens on localhost so that it is not open to the world.
	pprofserver.Launch(cfg.PprofPort, logger)

	groqURL := cfg.GroqBaseURL
	if groqURL == "" {
		groqURL = llm.GroqBaseURL
	}
	geminiURL := cfg.GeminiBaseURL
	if geminiURL == "" {
		geminiURL = llm.GeminiBaseURL
	}
	groq := llm.NewClient(cfg.GroqAPIKey, groqURL, llm.GroqVisionModel)
	gemini := llm.NewClient(cfg.GoogleAPIKey, geminiURL, llm.GeminiModel)

	var recommender *anime.Recommender
	if cfg.PineconeAPIKey != "" && cfg.PineconeIndex != "" {
		index, err := anime.NewPineconeIndex(ctx, cfg.PineconeAPIKey, cfg.PineconeIndex, "")
		if err != nil {
			return errors.Wrap(err, "connect to pinecone index")
		}
		embedder := llm.NewEmbedder(cfg.GoogleAPIKey, cfg.GeminiBaseURL, llm.GeminiEmbeddingModel)
		recommender = anime.NewRecommender(logger, gemini, embedder, index)
	} else {
		logger.Info("anime recommender disabled, set PINECONE_API_KEY and PINECONE_INDEX to enable it")
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = 12 * time.Hour

	app := application{
		logger:        logger,
		plantDetector: detect.NewDetector(groq, logger),
		celebDetector: celeb.NewDetector(groq, logger),
		assistant:     gemini,
		locations: location.NewService(logger, location.BaseURLs{
			Geocode: cfg.GeocodeBaseURL,
			Weather: cfg.WeatherBaseURL,
			Soil:    cfg.SoilBaseURL,
		}),
		searcher:       products.NewSerperSearcher(logger, cfg.SerperAPIKey, cfg.SerperBaseURL),
		recommender:    recommender,
		sessionManager: sessionManager,
		sessions:       newSessionRegistry(),
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}
