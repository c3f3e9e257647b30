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

// Package controllers provides the http handlers for the api endpoints
package controllers

import (
	"github.com/revuehub/revue/pkg/server/app"
)

// API is a set of api handlers sharing an application instance
type API struct {
	App *app.App
}

// NewAPI returns a new API
func NewAPI(a *app.App) *API {
	return &API{App: a}
}
