/* Copyright 2025 Revue Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	stdContext "context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pkgErrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/revuehub/revue/pkg/clock"
	"github.com/revuehub/revue/pkg/server/app"
	"github.com/revuehub/revue/pkg/server/config"
	"github.com/revuehub/revue/pkg/server/controllers"
	"github.com/revuehub/revue/pkg/server/database"
	"github.com/revuehub/revue/pkg/server/log"
	"github.com/revuehub/revue/pkg/server/mailer"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the api server",
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

// openDB opens the database for the configured driver
func openDB(cfg config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case config.DBDriverPostgres:
		return database.OpenPostgres(cfg.DatabaseURL), nil
	case config.DBDriverSQLite:
		return database.OpenSQLite(cfg.DBPath), nil
	default:
		return nil, pkgErrors.Errorf("unsupported db driver %s", cfg.DBDriver)
	}
}

// initEmailBackend picks the email backend. Outside production, a
// missing SMTP configuration falls back to writing emails to stdout.
func initEmailBackend(cfg config.Config) (mailer.Backend, error) {
	backend, err := mailer.NewDefaultBackend()
	if err == nil {
		return backend, nil
	}

	if pkgErrors.Cause(err) == mailer.ErrSMTPNotConfigured && !cfg.IsProd() {
		log.Info("SMTP is not configured. Emails are written to stdout")
		return mailer.NewStdoutBackend(), nil
	}

	return nil, pkgErrors.Wrap(err, "initializing email backend")
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return pkgErrors.Wrap(err, "loading config")
	}

	log.SetLevel(cfg.LogLevel)

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	database.InitSchema(db)
	if err := database.Migrate(db); err != nil {
		return pkgErrors.Wrap(err, "running migrations")
	}

	maintenance := database.StartMaintenance(db)
	defer maintenance.Stop()

	emailBackend, err := initEmailBackend(cfg)
	if err != nil {
		return err
	}

	a := app.App{
		DB:           db,
		Clock:        clock.New(),
		EmailBackend: emailBackend,
		Config:       cfg,
	}

	api := controllers.NewAPI(&a)
	handler, err := controllers.NewRouter(&a, controllers.RouteConfig{
		Routes: controllers.NewAPIRoutes(&a, api),
	})
	if err != nil {
		return pkgErrors.Wrap(err, "initializing router")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"port": cfg.Port,
			"env":  cfg.AppEnv,
		}).Info("starting server")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return pkgErrors.Wrap(err, "running server")
	case sig := <-quit:
		log.WithFields(log.Fields{"signal": sig.String()}).Info("shutting down")
	}

	ctx, cancel := stdContext.WithTimeout(stdContext.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return pkgErrors.Wrap(err, "shutting down server")
	}

	return nil
}
