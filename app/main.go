package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/presswatch/presswatch/app/archive"
	"github.com/presswatch/presswatch/app/cfg"
	"github.com/presswatch/presswatch/app/digest"
	"github.com/presswatch/presswatch/app/extractor"
	"github.com/presswatch/presswatch/app/mailer"
	"github.com/presswatch/presswatch/app/preview"
	"github.com/presswatch/presswatch/app/reader"
	"github.com/presswatch/presswatch/app/render"
	"github.com/presswatch/presswatch/app/roster"
	"github.com/presswatch/presswatch/app/sources"
)

func main() {
	appConfig, err := cfg.Load()
	if err != nil {
		slog.Error("Configuration error", "error", err)
		os.Exit(1)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	if appConfig.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	ctx := context.Background()

	records, err := collectRecords(ctx, appConfig)
	if err != nil {
		slog.Error("Fetch error", "error", err)
		os.Exit(1)
	}

	blocklist := digest.LoadBlocklist(appConfig.BlocklistPhrases)
	builder := digest.NewBuilder(roster.Clients, blocklist, appConfig.Location)
	d := builder.Run(records)

	if appConfig.ExtractContent {
		extractor.NewExtractor(appConfig.UserAgent).Run(ctx, d)
	}

	htmlBody := render.HTML(d, roster.Clients, appConfig.LookbackHours)

	var opmlBody string
	if appConfig.OPMLPath != "" || appConfig.Serve {
		opmlBody = render.OPML(d, roster.Clients, appConfig.LookbackHours)
	}

	if appConfig.OPMLPath != "" {
		if err := os.WriteFile(appConfig.OPMLPath, []byte(opmlBody), 0o644); err != nil {
			slog.Error("Failed to write OPML", "path", appConfig.OPMLPath, "error", err)
			os.Exit(1)
		}
		slog.Info("OPML written", "path", appConfig.OPMLPath)
	}

	if appConfig.ArchiveDB != "" {
		if err := archiveRun(appConfig, d, len(records)); err != nil {
			slog.Error("Failed to archive run", "error", err)
			os.Exit(1)
		}
	}

	if appConfig.Serve {
		serveDigest(appConfig, d, htmlBody, opmlBody)
		return
	}

	if appConfig.DryRun {
		fmt.Println(htmlBody)
		return
	}

	err = mailer.Send(mailer.Config{
		Host:     appConfig.SMTPHost,
		Port:     appConfig.SMTPPort,
		Username: appConfig.SMTPUsername,
		Password: appConfig.SMTPPassword,
		UseTLS:   appConfig.SMTPUseTLS,
		From:     appConfig.FromEmail,
		To:       appConfig.ToEmails,
	}, render.Subject(d.GeneratedAt), htmlBody)
	if err != nil {
		slog.Error("Delivery error", "error", err)
		os.Exit(1)
	}

	slog.Info("Digest sent", "recipients", len(appConfig.ToEmails), "items", d.TotalItems())
}

// collectRecords gathers the input batch: the FreshRSS reading list (when
// configured) plus any direct RSS/Atom sources. A reading-list failure is
// fatal; individual direct sources fail soft inside the fetcher.
func collectRecords(ctx context.Context, appConfig *cfg.Cfg) ([]reader.Record, error) {
	var records []reader.Record

	if appConfig.HasReader() {
		client := reader.NewClient(appConfig.BaseURL, appConfig.Username, appConfig.APIPassword, appConfig.UserAgent)
		oldest := time.Now().UTC().Add(-time.Duration(appConfig.LookbackHours * float64(time.Hour)))
		recs, err := client.FetchReadingList(ctx, appConfig.MaxItems, oldest)
		if err != nil {
			return nil, err
		}
		records = append(records, reader.FilterByLabel(recs, appConfig.Label)...)
	}

	if appConfig.FeedsDir != "" {
		configs, err := sources.NewLoader(appConfig.FeedsDir).LoadAll()
		if err != nil {
			return nil, err
		}
		slog.Info("Loaded source configurations", "count", len(configs))

		fetcher := sources.NewFetcher(appConfig.UserAgent)
		records = append(records, fetcher.FetchAll(ctx, configs)...)
	}

	return records, nil
}

func archiveRun(appConfig *cfg.Cfg, d *digest.Digest, recordCount int) error {
	db, err := archive.NewConnection(appConfig.ArchiveDB)
	if err != nil {
		return err
	}
	defer db.Close()

	version, dirty, err := archive.RunMigrations(db)
	if err != nil {
		return err
	}
	slog.Debug("Archive migrations applied", "version", version, "dirty", dirty)

	runID, err := archive.NewRepository(db).StoreRun(d, roster.Clients, appConfig.LookbackHours, recordCount)
	if err != nil {
		return err
	}

	slog.Info("Run archived", "path", appConfig.ArchiveDB, "run_id", runID, "items", d.TotalItems())
	return nil
}

// serveDigest keeps the process up serving the rendered digest until
// interrupted.
func serveDigest(appConfig *cfg.Cfg, d *digest.Digest, htmlBody, opmlBody string) {
	server := preview.NewServer(d, htmlBody, opmlBody, appConfig.Version)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Serving digest preview", "port", appConfig.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
