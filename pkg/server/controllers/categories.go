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

type catalogPayload struct {
	Name string `json:"name" schema:"name"`
	Slug string `json:"slug" schema:"slug"`
}

func (c *API) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.App.ListCategories(r.URL.Query().Get("search"))
	if err != nil {
		handleJSONError(w, err, "listing categories")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentCategories(categories))
}

func (c *API) createCategory(w http.ResponseWriter, r *http.Request) {
	if !permissions.CanWriteCatalog(context.User(r.Context())) {
		middleware.RespondForbidden(w)
		return
	}

	var params catalogPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	category, err := c.App.CreateCategory(params.Name, params.Slug)
	if err != nil {
		handleJSONError(w, err, "creating category")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentCategory(category))
}

func (c *API) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if !permissions.CanWriteCatalog(context.User(r.Context())) {
		middleware.RespondForbidden(w)
		return
	}

	category, err := c.App.GetCategoryBySlug(mux.Vars(r)["slug"])
	if err != nil {
		handleJSONError(w, err, "finding category")
		return
	}

	if err := c.App.DeleteCategory(category); err != nil {
		handleJSONError(w, err, "deleting category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
