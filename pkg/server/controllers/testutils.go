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

package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"

	"github.com/revuehub/revue/pkg/server/app"
)

// NewServer returns a test server serving the api routes of the given app
func NewServer(a *app.App) (*httptest.Server, error) {
	api := NewAPI(a)

	handler, err := NewRouter(a, RouteConfig{Routes: NewAPIRoutes(a, api)})
	if err != nil {
		return nil, errors.Wrap(err, "initializing router")
	}

	return httptest.NewServer(handler), nil
}

// MustNewServer returns a test server and fails the test on error
func MustNewServer(t *testing.T, a *app.App) *httptest.Server {
	server, err := NewServer(a)
	if err != nil {
		t.Fatal(errors.Wrap(err, "initializing test server"))
	}

	return server
}
