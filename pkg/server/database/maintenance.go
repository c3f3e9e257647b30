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
	"github.com/robfig/cron"
	"gorm.io/gorm"

	"github.com/revuehub/revue/pkg/server/log"
)

// StartMaintenance schedules periodic SQLite maintenance: WAL checkpointing
// to keep the WAL file from growing unbounded, and a daily VACUUM to reclaim
// space. It is a no-op for non-SQLite databases, where the server relies on
// the database's own maintenance. The returned cron can be stopped by the
// caller on shutdown.
func StartMaintenance(db *gorm.DB) *cron.Cron {
	c := cron.New()

	if db.Dialector.Name() != "sqlite" {
		return c
	}

	c.AddFunc("@every 5m", func() {
		if err := db.Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error; err != nil {
			log.ErrorWrap(err, "checkpointing WAL")
		}
	})
	c.AddFunc("@daily", func() {
		if err := db.Exec("VACUUM").Error; err != nil {
			log.ErrorWrap(err, "vacuuming database")
		}
	})

	c.Start()

	return c
}
