package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kiri-osint/CS2-Info-Hub-Bot/internal/bot"
	"github.com/kiri-osint/CS2-Info-Hub-Bot/internal/catalog"
	"github.com/kiri-osint/CS2-Info-Hub-Bot/internal/config"
	"github.com/kiri-osint/CS2-Info-Hub-Bot/internal/logging"
	"github.com/kiri-osint/CS2-Info-Hub-Bot/internal/progress"
	"github.com/kiri-osint/CS2-Info-Hub-Bot/internal/session"
	"github.com/kiri-osint/CS2-Info-Hub-Bot/internal/steam"
	"github.com/kiri-osint/CS2-Info-Hub-Bot/internal/transport"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bot server",
	Long: `Loads the item catalog from all configured feeds, then starts the HTTP
transport serving the webhook and websocket endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		log := logging.New(logging.Options{
			FilePath: cfg.Log.File,
			Prod:     cfg.Log.Prod,
			Debug:    cfg.Log.Debug || verbose,
		})
		defer log.Sync()

		if cfg.SteamAPIKey == "" {
			log.Error("steam_api_key is not set, profile lookups will fail")
		}

		sources := make([]catalog.Source, 0, len(cfg.CatalogSources))
		for _, src := range cfg.CatalogSources {
			sources = append(sources, catalog.Source{Name: src.Name, URL: src.URL})
		}

		loader := catalog.NewLoader(log, progress.NewLoadReporter())
		index := loader.Load(cmd.Context(), sources)
		log.Info("catalog loaded", zap.Int("items", index.Len()))

		ttl, err := cfg.SessionDuration()
		if err != nil {
			return fmt.Errorf("invalid session_ttl: %w", err)
		}

		gateway := steam.NewClient(cfg.SteamAPIKey, log)
		sessions := session.NewStore(ttl)
		machine := bot.NewMachine(index, gateway, sessions, cfg.InventoryPageSize, log)

		srv := transport.New(transport.Config{
			Port:          cfg.Port,
			WebhookSecret: cfg.WebhookSecret,
			AllowAll:      cfg.AllowAll,
		}, machine, log)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			log.Info("shutting down")
			if err := srv.Shutdown(context.Background()); err != nil {
				log.Error("shutdown", zap.Error(err))
			}
		}()

		fmt.Fprintf(os.Stderr, "cshub v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Catalog items: %d\n", index.Len())
		fmt.Fprintf(os.Stderr, "  Session TTL: %s\n", ttl)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
