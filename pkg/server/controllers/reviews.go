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

	"github.com/revuehub/revue/pkg/server/app"
	"github.com/revuehub/revue/pkg/server/context"
	"github.com/revuehub/revue/pkg/server/database"
	"github.com/revuehub/revue/pkg/server/middleware"
	"github.com/revuehub/revue/pkg/server/permissions"
	"github.com/revuehub/revue/pkg/server/presenters"
)

type reviewPayload struct {
	Text  *string `json:"text" schema:"text"`
	Score *int    `json:"score" schema:"score"`
}

// findTitle resolves the titleID path parameter into a title
func (c *API) findTitle(r *http.Request) (database.Title, error) {
	titleID, err := getIntParam(r, "titleID")
	if err != nil {
		return database.Title{}, err
	}

	return c.App.GetTitle(titleID)
}

// findReview resolves the titleID and reviewID path parameters into a
// review. A review is only addressable under the title it belongs to.
func (c *API) findReview(r *http.Request) (database.Review, error) {
	titleID, err := getIntParam(r, "titleID")
	if err != nil {
		return database.Review{}, err
	}
	reviewID, err := getIntParam(r, "reviewID")
	if err != nil {
		return database.Review{}, err
	}

	return c.App.GetReview(titleID, reviewID)
}

func (c *API) listReviews(w http.ResponseWriter, r *http.Request) {
	title, err := c.findTitle(r)
	if err != nil {
		handleJSONError(w, err, "finding title")
		return
	}

	reviews, err := c.App.ListReviews(title.ID)
	if err != nil {
		handleJSONError(w, err, "listing reviews")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentReviews(reviews))
}

func (c *API) createReview(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	title, err := c.findTitle(r)
	if err != nil {
		handleJSONError(w, err, "finding title")
		return
	}

	var params reviewPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	if params.Text == nil {
		handleJSONError(w, app.ValidationError{Field: "text", Message: "required"}, "validating payload")
		return
	}
	if params.Score == nil {
		handleJSONError(w, app.ValidationError{Field: "score", Message: "required"}, "validating payload")
		return
	}

	review, err := c.App.CreateReview(title, *user, *params.Text, *params.Score)
	if err != nil {
		handleJSONError(w, err, "creating review")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentReview(review))
}

func (c *API) getReview(w http.ResponseWriter, r *http.Request) {
	review, err := c.findReview(r)
	if err != nil {
		handleJSONError(w, err, "finding review")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentReview(review))
}

func (c *API) updateReview(w http.ResponseWriter, r *http.Request) {
	review, err := c.findReview(r)
	if err != nil {
		handleJSONError(w, err, "finding review")
		return
	}

	if !permissions.CanModifyContent(context.User(r.Context()), review.AuthorID) {
		middleware.RespondForbidden(w)
		return
	}

	var params reviewPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	if err := c.App.UpdateReview(&review, params.Text, params.Score); err != nil {
		handleJSONError(w, err, "updating review")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentReview(review))
}

func (c *API) deleteReview(w http.ResponseWriter, r *http.Request) {
	review, err := c.findReview(r)
	if err != nil {
		handleJSONError(w, err, "finding review")
		return
	}

	if !permissions.CanModifyContent(context.User(r.Context()), review.AuthorID) {
		middleware.RespondForbidden(w)
		return
	}

	if err := c.App.DeleteReview(review); err != nil {
		handleJSONError(w, err, "deleting review")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
