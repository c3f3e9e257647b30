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

package app

import (
	"time"

	"github.com/revuehub/revue/pkg/clock"
	"github.com/revuehub/revue/pkg/server/config"
	"github.com/revuehub/revue/pkg/server/testutils"
)

// NewTest returns an app configured for tests with a mock clock and a mock
// email backend. The caller assigns the database.
func NewTest() App {
	return App{
		Clock:        clock.NewMock(),
		EmailBackend: &testutils.MockEmailbackendImplementation{},
		Config: config.Config{
			AppEnv:    "TEST",
			Port:      "3001",
			WebURL:    "http://mock.revuehub.test",
			SecretKey: testutils.TestSecretKey,
			TokenTTL:  24 * time.Hour,
			CodeTTL:   72 * time.Hour,
			ScoreMin:  1,
			ScoreMax:  10,
		},
	}
}
