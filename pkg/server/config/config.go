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

package config

import (
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	// AppEnvProduction represents an app environment for production.
	AppEnvProduction string = "PRODUCTION"
	// DBDriverSQLite selects the SQLite database driver
	DBDriverSQLite = "sqlite"
	// DBDriverPostgres selects the Postgres database driver
	DBDriverPostgres = "postgres"

	defaultDBPath = "./revue.db"
)

var (
	// ErrWebURLInvalid is an error for a configuration with an invalid web url
	ErrWebURLInvalid = errors.New("invalid WebURL")
	// ErrPortInvalid is an error for a configuration with an invalid port
	ErrPortInvalid = errors.New("invalid Port")
	// ErrSecretKeyMissing is an error for a configuration without a secret key
	ErrSecretKeyMissing = errors.New("no SecretKey was provided")
	// ErrDBMisconfigured is an error for an incomplete database configuration
	ErrDBMisconfigured = errors.New("database is misconfigured")
	// ErrScoreBoundsInvalid is an error for inverted review score bounds
	ErrScoreBoundsInvalid = errors.New("ScoreMin must be less than ScoreMax")
)

func readBoolEnv(name string) bool {
	return os.Getenv(name) == "true"
}

// getOrEnv returns value if non-empty, otherwise env var, otherwise default
func getOrEnv(value, envKey, defaultVal string) string {
	if value != "" {
		return value
	}
	if env := os.Getenv(envKey); env != "" {
		return env
	}
	return defaultVal
}

func getIntOrEnv(value int, envKey string, defaultVal int) int {
	if value != 0 {
		return value
	}
	if env := os.Getenv(envKey); env != "" {
		if n, err := strconv.Atoi(env); err == nil {
			return n
		}
	}
	return defaultVal
}

func getDurationOrEnv(value time.Duration, envKey string, defaultVal time.Duration) time.Duration {
	if value != 0 {
		return value
	}
	if env := os.Getenv(envKey); env != "" {
		if d, err := time.ParseDuration(env); err == nil {
			return d
		}
	}
	return defaultVal
}

// Config is an application configuration
type Config struct {
	AppEnv      string
	Port        string
	WebURL      string
	DBDriver    string
	DBPath      string
	DatabaseURL string
	SecretKey   string
	TokenTTL    time.Duration
	CodeTTL     time.Duration
	ScoreMin    int
	ScoreMax    int
	LogLevel    string
}

// Params are the configuration parameters for creating a new Config
type Params struct {
	AppEnv      string
	Port        string
	WebURL      string
	DBDriver    string
	DBPath      string
	DatabaseURL string
	SecretKey   string
	TokenTTL    time.Duration
	CodeTTL     time.Duration
	ScoreMin    int
	ScoreMax    int
	LogLevel    string
}

// fileParams is the YAML shape of an optional config file. Values from the
// file have the lowest precedence: flags and env vars override them.
type fileParams struct {
	Port        string `yaml:"port"`
	WebURL      string `yaml:"webUrl"`
	DBDriver    string `yaml:"dbDriver"`
	DBPath      string `yaml:"dbPath"`
	DatabaseURL string `yaml:"databaseUrl"`
	SecretKey   string `yaml:"secretKey"`
	TokenTTL    string `yaml:"tokenTtl"`
	CodeTTL     string `yaml:"codeTtl"`
	ScoreMin    int    `yaml:"scoreMin"`
	ScoreMax    int    `yaml:"scoreMax"`
	LogLevel    string `yaml:"logLevel"`
}

// ReadFile merges values from the YAML file at the given path into p,
// keeping any value that p already carries.
func ReadFile(path string, p Params) (Params, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return p, errors.Wrap(err, "reading config file")
	}

	var f fileParams
	if err := yaml.Unmarshal(b, &f); err != nil {
		return p, errors.Wrap(err, "unmarshalling config file")
	}

	if p.Port == "" {
		p.Port = f.Port
	}
	if p.WebURL == "" {
		p.WebURL = f.WebURL
	}
	if p.DBDriver == "" {
		p.DBDriver = f.DBDriver
	}
	if p.DBPath == "" {
		p.DBPath = f.DBPath
	}
	if p.DatabaseURL == "" {
		p.DatabaseURL = f.DatabaseURL
	}
	if p.SecretKey == "" {
		p.SecretKey = f.SecretKey
	}
	if p.TokenTTL == 0 && f.TokenTTL != "" {
		d, err := time.ParseDuration(f.TokenTTL)
		if err != nil {
			return p, errors.Wrap(err, "parsing tokenTtl")
		}
		p.TokenTTL = d
	}
	if p.CodeTTL == 0 && f.CodeTTL != "" {
		d, err := time.ParseDuration(f.CodeTTL)
		if err != nil {
			return p, errors.Wrap(err, "parsing codeTtl")
		}
		p.CodeTTL = d
	}
	if p.ScoreMin == 0 {
		p.ScoreMin = f.ScoreMin
	}
	if p.ScoreMax == 0 {
		p.ScoreMax = f.ScoreMax
	}
	if p.LogLevel == "" {
		p.LogLevel = f.LogLevel
	}

	return p, nil
}

// New constructs and returns a new validated config.
// Empty params fall back to environment variables and defaults.
func New(p Params) (Config, error) {
	c := Config{
		AppEnv:      getOrEnv(p.AppEnv, "APP_ENV", AppEnvProduction),
		Port:        getOrEnv(p.Port, "PORT", "3001"),
		WebURL:      getOrEnv(p.WebURL, "WebURL", "http://localhost:3001"),
		DBDriver:    getOrEnv(p.DBDriver, "DBDriver", DBDriverSQLite),
		DBPath:      getOrEnv(p.DBPath, "DBPath", defaultDBPath),
		DatabaseURL: getOrEnv(p.DatabaseURL, "DATABASE_URL", ""),
		SecretKey:   getOrEnv(p.SecretKey, "SecretKey", ""),
		TokenTTL:    getDurationOrEnv(p.TokenTTL, "TokenTTL", 24*time.Hour),
		CodeTTL:     getDurationOrEnv(p.CodeTTL, "CodeTTL", 72*time.Hour),
		ScoreMin:    getIntOrEnv(p.ScoreMin, "ScoreMin", 1),
		ScoreMax:    getIntOrEnv(p.ScoreMax, "ScoreMax", 10),
		LogLevel:    getOrEnv(p.LogLevel, "LOG_LEVEL", "info"),
	}

	if err := validate(c); err != nil {
		return Config{}, err
	}

	return c, nil
}

// IsProd checks if the app environment is configured to be production.
func (c Config) IsProd() bool {
	return c.AppEnv == AppEnvProduction
}

func validate(c Config) error {
	if _, err := url.ParseRequestURI(c.WebURL); err != nil {
		return errors.Wrapf(ErrWebURLInvalid, "'%s'", c.WebURL)
	}
	if c.Port == "" {
		return ErrPortInvalid
	}
	if c.SecretKey == "" {
		return ErrSecretKeyMissing
	}
	if c.ScoreMin >= c.ScoreMax {
		return ErrScoreBoundsInvalid
	}

	switch c.DBDriver {
	case DBDriverSQLite:
		if c.DBPath == "" {
			return errors.Wrap(ErrDBMisconfigured, "DBPath is empty")
		}
	case DBDriverPostgres:
		if c.DatabaseURL == "" {
			return errors.Wrap(ErrDBMisconfigured, "DATABASE_URL is empty")
		}
	default:
		return errors.Wrapf(ErrDBMisconfigured, "unknown driver '%s'", c.DBDriver)
	}

	return nil
}
