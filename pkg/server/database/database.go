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
	"errors"
	"os"
	"path/filepath"

	pkgErrors "github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitSchema migrates database schema to reflect the latest model definition
func InitSchema(db *gorm.DB) {
	if err := db.AutoMigrate(
		&User{},
		&Category{},
		&Genre{},
		&Title{},
		&Review{},
		&Comment{},
	); err != nil {
		panic(err)
	}
}

// OpenSQLite initializes a SQLite database connection at the given path
func OpenSQLite(dbPath string) *gorm.DB {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		panic(pkgErrors.Wrapf(err, "creating database directory at %s", dir))
	}

	return open(sqlite.Open(dbPath))
}

// OpenPostgres initializes a Postgres database connection with the given DSN
func OpenPostgres(dsn string) *gorm.DB {
	return open(postgres.Open(dsn))
}

func open(dialector gorm.Dialector) *gorm.DB {
	// TranslateError makes drivers surface unique index violations as
	// gorm.ErrDuplicatedKey so that they can be mapped to domain conflicts.
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		panic(pkgErrors.Wrap(err, "opening database connection"))
	}

	return db
}

// IsUniqueViolation checks if the given error was caused by a violation of
// a store-level unique constraint.
func IsUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
