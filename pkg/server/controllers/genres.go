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
	"net/http"

	"github.com/gorilla/mux"

	"github.com/revuehub/revue/pkg/server/context"
	"github.com/revuehub/revue/pkg/server/middleware"
	"github.com/revuehub/revue/pkg/server/permissions"
	"github.com/revuehub/revue/pkg/server/presenters"
)

func (c *API) listGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := c.App.ListGenres(r.URL.Query().Get("search"))
	if err != nil {
		handleJSONError(w, err, "listing genres")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentGenres(genres))
}

func (c *API) createGenre(w http.ResponseWriter, r *http.Request) {
	if !permissions.CanWriteCatalog(context.User(r.Context())) {
		middleware.RespondForbidden(w)
		return
	}

	var params catalogPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	genre, err := c.App.CreateGenre(params.Name, params.Slug)
	if err != nil {
		handleJSONError(w, err, "creating genre")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentGenre(genre))
}

func (c *API) deleteGenre(w http.ResponseWriter, r *http.Request) {
	if !permissions.CanWriteCatalog(context.User(r.Context())) {
		middleware.RespondForbidden(w)
		return
	}

	genre, err := c.App.GetGenreBySlug(mux.Vars(r)["slug"])
	if err != nil {
		handleJSONError(w, err, "finding genre")
		return
	}

	if err := c.App.DeleteGenre(genre); err != nil {
		handleJSONError(w, err, "deleting genre")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
