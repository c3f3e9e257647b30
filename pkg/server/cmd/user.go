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
	"github.com/fatih/color"
	pkgErrors "github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/revuehub/revue/pkg/clock"
	"github.com/revuehub/revue/pkg/server/app"
	"github.com/revuehub/revue/pkg/server/database"
	"github.com/revuehub/revue/pkg/server/log"
	"github.com/revuehub/revue/pkg/server/mailer"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var (
	addUsername  string
	addEmail     string
	addRole      string
	addSuperuser bool
)

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a user without going through signup",
	RunE:  runUserAdd,
}

func init() {
	f := userAddCmd.Flags()
	f.StringVar(&addUsername, "username", "", "username of the new user")
	f.StringVar(&addEmail, "email", "", "email of the new user")
	f.StringVar(&addRole, "role", database.RoleUser, "role of the new user")
	f.BoolVar(&addSuperuser, "superuser", false, "grant the new user superuser status")

	userCmd.AddCommand(userAddCmd)
	rootCmd.AddCommand(userCmd)
}

// runUserAdd bootstraps a user directly in the database. It is how the
// first admin is created on a fresh deployment.
func runUserAdd(cmd *cobra.Command, args []string) error {
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

	a := app.App{
		DB:           db,
		Clock:        clock.New(),
		EmailBackend: mailer.NewStdoutBackend(),
		Config:       cfg,
	}

	user, err := a.CreateUser(addUsername, addEmail, addRole, addSuperuser)
	if err != nil {
		return pkgErrors.Wrap(err, "creating user")
	}

	color.Green("✔ created user %s (%s)", user.Username, user.Role)
	return nil
}
