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
	"strconv"

	"github.com/revuehub/revue/pkg/server/app"
	"github.com/revuehub/revue/pkg/server/context"
	"github.com/revuehub/revue/pkg/server/middleware"
	"github.com/revuehub/revue/pkg/server/permissions"
	"github.com/revuehub/revue/pkg/server/presenters"
)

type titlePayload struct {
	Name        *string  `json:"name" schema:"name"`
	Year        *int     `json:"year" schema:"year"`
	Description *string  `json:"description" schema:"description"`
	Category    *string  `json:"category" schema:"category"`
	Genre       []string `json:"genre" schema:"genre"`
}

func (p titlePayload) toParams() app.TitleParams {
	return app.TitleParams{
		Name:         p.Name,
		Year:         p.Year,
		Description:  p.Description,
		CategorySlug: p.Category,
		GenreSlugs:   p.Genre,
	}
}

func (c *API) listTitles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filters := app.TitleFilters{
		CategorySlug: query.Get("category"),
		GenreSlug:    query.Get("genre"),
		Name:         query.Get("name"),
	}
	if rawYear := query.Get("year"); rawYear != "" {
		year, err := strconv.Atoi(rawYear)
		if err != nil {
			handleJSONError(w, app.ValidationError{Field: "year", Message: "must be an integer"}, "parsing year filter")
			return
		}
		filters.Year = year
	}

	titles, err := c.App.ListTitles(filters)
	if err != nil {
		handleJSONError(w, err, "listing titles")
		return
	}

	titleIDs := make([]int, 0, len(titles))
	for _, title := range titles {
		titleIDs = append(titleIDs, title.ID)
	}

	ratings, err := c.App.TitleRatings(titleIDs)
	if err != nil {
		handleJSONError(w, err, "computing ratings")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentTitles(titles, ratings))
}

func (c *API) createTitle(w http.ResponseWriter, r *http.Request) {
	if !permissions.CanWriteCatalog(context.User(r.Context())) {
		middleware.RespondForbidden(w)
		return
	}

	var params titlePayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	title, err := c.App.CreateTitle(params.toParams())
	if err != nil {
		handleJSONError(w, err, "creating title")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentTitle(title, nil))
}

func (c *API) getTitle(w http.ResponseWriter, r *http.Request) {
	titleID, err := getIntParam(r, "titleID")
	if err != nil {
		handleJSONError(w, err, "parsing title id")
		return
	}

	title, err := c.App.GetTitle(titleID)
	if err != nil {
		handleJSONError(w, err, "finding title")
		return
	}

	rating, err := c.App.TitleRating(title.ID)
	if err != nil {
		handleJSONError(w, err, "computing rating")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentTitle(title, rating))
}

func (c *API) updateTitle(w http.ResponseWriter, r *http.Request) {
	if !permissions.CanWriteCatalog(context.User(r.Context())) {
		middleware.RespondForbidden(w)
		return
	}

	titleID, err := getIntParam(r, "titleID")
	if err != nil {
		handleJSONError(w, err, "parsing title id")
		return
	}

	title, err := c.App.GetTitle(titleID)
	if err != nil {
		handleJSONError(w, err, "finding title")
		return
	}

	var params titlePayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	if err := c.App.UpdateTitle(&title, params.toParams()); err != nil {
		handleJSONError(w, err, "updating title")
		return
	}

	rating, err := c.App.TitleRating(title.ID)
	if err != nil {
		handleJSONError(w, err, "computing rating")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentTitle(title, rating))
}

func (c *API) deleteTitle(w http.ResponseWriter, r *http.Request) {
	if !permissions.CanWriteCatalog(context.User(r.Context())) {
		middleware.RespondForbidden(w)
		return
	}

	titleID, err := getIntParam(r, "titleID")
	if err != nil {
		handleJSONError(w, err, "parsing title id")
		return
	}

	title, err := c.App.GetTitle(titleID)
	if err != nil {
		handleJSONError(w, err, "finding title")
		return
	}

	if err := c.App.DeleteTitle(title); err != nil {
		handleJSONError(w, err, "deleting title")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
