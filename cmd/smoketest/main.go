package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/cropsage/cropsage/internal/e2etest"
	"github.com/cropsage/cropsage/internal/errors"
	"github.com/cropsage/cropsage/internal/logging"
)

// TestPages loads the public pages and checks that the upload forms render
// with their CSRF tokens.
func TestPages(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()
	var err error

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return errors.Wrap(err, "load front page")
	}
	if doc.Find("form[action='/analyze'] input[name=csrf_token]").Length() == 0 {
		return errors.New("analyze form missing")
	}
	if doc, err = client.GetDoc(ctx, "/celebrity"); err != nil {
		return errors.Wrap(err, "load celebrity page")
	}
	if doc.Find("form[action='/celebrity'] input[name=csrf_token]").Length() == 0 {
		return errors.New("celebrity form missing")
	}
	if _, err = client.GetDoc(ctx, "/anime"); err != nil {
		return errors.Wrap(err, "load anime page")
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error waiting for healthy endpoint", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestPages(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing pages", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
