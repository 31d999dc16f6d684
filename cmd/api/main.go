package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pet-grooming-manager/internal/adapters/auth/supabase"
	"pet-grooming-manager/internal/adapters/messaging/twilio"
	notifysinks "pet-grooming-manager/internal/adapters/notify"
	mem "pet-grooming-manager/internal/adapters/storage/memory"
	pg "pet-grooming-manager/internal/adapters/storage/postgres"
	"pet-grooming-manager/internal/config"
	"pet-grooming-manager/internal/domain/reminders"
	"pet-grooming-manager/internal/domain/shop"
	"pet-grooming-manager/internal/platform/httpclient"
	"pet-grooming-manager/internal/platform/logger"
	"pet-grooming-manager/internal/platform/metrics"
	"pet-grooming-manager/internal/ports/auth"
	"pet-grooming-manager/internal/ports/messaging"
	"pet-grooming-manager/internal/ports/notify"
	"pet-grooming-manager/internal/router"

	"github.com/spf13/cobra"
)

// @title Pet Grooming Manager API
// @version 1.0
// @description Backend de gestión para negocios de banho e tosa: clientes, pets, catálogo, agendamentos, caja, gastos y reportes.
// @BasePath /
func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pet-grooming-manager",
		Short:         "Backend de gestión para banho e tosa",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Levanta la API HTTP (y el cron de recordatorios)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones de Postgres y sale",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			if cfg.StoreBackend != config.BackendPostgres {
				return errors.New("migrate requires DB_DSN / STORE_BACKEND=postgres")
			}
			db, err := pg.Open(cfg.DBDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := pg.Migrate(db); err != nil {
				return err
			}
			log.Info("migrations applied", nil)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remind",
		Short: "Manda una vez los recordatorios de mañana",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			store, db, err := openStore(cfg, log)
			if err != nil {
				return err
			}
			if db != nil {
				defer db.Close()
			}

			job := reminders.NewJob(store, newSender(cfg, log), reminders.WithLogger(log))
			res, err := job.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("date=%s sent=%d skipped=%d failed=%d\n", res.Date, res.Sent, res.Skipped, res.Failed)
			return nil
		},
	})

	return cmd
}

func bootstrap() (config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, err
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	return cfg, log, nil
}

// openStore devuelve el Entity Store según STORE_BACKEND; db != nil solo en Postgres.
func openStore(cfg config.Config, log logger.Logger) (shop.Repository, *sql.DB, error) {
	if cfg.StoreBackend != config.BackendPostgres {
		log.Warn("using in-memory store; data is lost on restart", nil)
		return mem.NewStore(), nil, nil
	}

	db, err := pg.Open(cfg.DBDSN)
	if err != nil {
		return nil, nil, err
	}
	if cfg.MigrateOnStart {
		if err := pg.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
	}
	return pg.NewStore(db), db, nil
}

func newSender(cfg config.Config, log logger.Logger) messaging.Sender {
	if !cfg.TwilioEnabled() {
		log.Info("twilio not configured; reminders are only logged", nil)
		return twilio.NewLogSender(log)
	}
	s, err := twilio.NewSender(twilio.Config{
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
		From:       cfg.TwilioWhatsAppFrom,
	}, log)
	if err != nil {
		log.Warn("twilio sender unavailable", map[string]any{"error": err.Error()})
		return twilio.NewLogSender(log)
	}
	return s
}

func serve(parent context.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, db, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	m := metrics.New()

	sinks := notifysinks.Multi{notifysinks.NewLogSink(log), notifysinks.NewMetricsSink(m)}
	if cfg.NotifyWebhookURL != "" {
		sinks = append(sinks, notifysinks.NewWebhookSink(cfg.NotifyWebhookURL, httpclient.New(httpclient.DefaultTimeout, nil), log))
	}

	// sin secret queda el modo dev (X-Debug-User-ID)
	var verifier auth.AuthVerifier
	if cfg.SupabaseJWTSecret != "" {
		verifier = supabase.NewVerifier(cfg.SupabaseJWTSecret, supabase.WithAudience(cfg.SupabaseAudience))
	} else {
		log.Warn("SUPABASE_JWT_SECRET not set; running in dev auth mode", nil)
	}

	if cfg.RemindersEnabled() {
		job := reminders.NewJob(store, newSender(cfg, log), reminders.WithLogger(log), reminders.WithMetrics(m))
		c, err := reminders.Schedule(cfg.ReminderCron, job)
		if err != nil {
			return err
		}
		c.Start()
		defer c.Stop()
		log.Info("reminder cron scheduled", map[string]any{"spec": cfg.ReminderCron})
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			AuthVerifier: verifier,
			Store:        store,
			Logger:       log,
			Notifier:     notify.Notifier(sinks),
			Metrics:      m,
		}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "store": cfg.StoreBackend})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
