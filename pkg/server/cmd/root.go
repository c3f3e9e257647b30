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

// Package cmd provides the commands of the server binary
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/revuehub/revue/pkg/server/config"
)

var rootCmd = &cobra.Command{
	Use:           "revue-server",
	Short:         "Revue - a review and rating service",
	SilenceErrors: true,
	SilenceUsage:  true,
}

var (
	configFile  string
	port        string
	webURL      string
	dbDriver    string
	dbPath      string
	databaseURL string
	logLevel    string
)

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&configFile, "configFile", "", "path to a YAML config file")
	f.StringVar(&port, "port", "", "port to listen on")
	f.StringVar(&webURL, "webUrl", "", "the public URL of the service")
	f.StringVar(&dbDriver, "dbDriver", "", "database driver. sqlite or postgres")
	f.StringVar(&dbPath, "dbPath", "", "path to the SQLite database file")
	f.StringVar(&databaseURL, "databaseUrl", "", "PostgreSQL connection string")
	f.StringVar(&logLevel, "logLevel", "", "minimum log level. debug, info, warn or error")
}

// loadConfig builds the configuration from flags, the optional config
// file, environment variables and defaults, in that precedence.
func loadConfig() (config.Config, error) {
	// missing .env is fine. the environment may be set another way.
	godotenv.Load()

	params := config.Params{
		Port:        port,
		WebURL:      webURL,
		DBDriver:    dbDriver,
		DBPath:      dbPath,
		DatabaseURL: databaseURL,
		LogLevel:    logLevel,
	}

	if configFile != "" {
		var err error
		params, err = config.ReadFile(configFile, params)
		if err != nil {
			return config.Config{}, err
		}
	}

	return config.New(params)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
