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

package database

import (
	"github.com/pkg/errors"
	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/gorm"

	"github.com/revuehub/revue/pkg/server/database/migrations"
	"github.com/revuehub/revue/pkg/server/log"
)

// MigrationTableName is the name of the table that keeps track of migrations
var MigrationTableName = "migrations"

// dialectName maps a gorm dialector name to a sql-migrate dialect
func dialectName(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "postgres"
	}

	return "sqlite3"
}

// Migrate runs the embedded data migrations that AutoMigrate cannot express
func Migrate(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "getting sql.DB")
	}

	migrate.SetTable(MigrationTableName)
	source := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrations.Files,
		Root:       ".",
	}

	n, err := migrate.Exec(sqlDB, dialectName(db), source, migrate.Up)
	if err != nil {
		return errors.Wrap(err, "executing migrations")
	}

	if n > 0 {
		log.WithFields(log.Fields{
			"count": n,
		}).Info("applied migrations")
	}

	return nil
}
