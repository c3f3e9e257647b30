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

type commentPayload struct {
	Text *string `json:"text" schema:"text"`
}

// findComment resolves the path parameters into a comment, checking the
// full title-review-comment chain so that a comment is only addressable
// under its own review.
func (c *API) findComment(r *http.Request) (database.Comment, error) {
	review, err := c.findReview(r)
	if err != nil {
		return database.Comment{}, err
	}
	commentID, err := getIntParam(r, "commentID")
	if err != nil {
		return database.Comment{}, err
	}

	return c.App.GetComment(review.ID, commentID)
}

func (c *API) listComments(w http.ResponseWriter, r *http.Request) {
	review, err := c.findReview(r)
	if err != nil {
		handleJSONError(w, err, "finding review")
		return
	}

	comments, err := c.App.ListComments(review.ID)
	if err != nil {
		handleJSONError(w, err, "listing comments")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentComments(comments))
}

func (c *API) createComment(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	review, err := c.findReview(r)
	if err != nil {
		handleJSONError(w, err, "finding review")
		return
	}

	var params commentPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	if params.Text == nil {
		handleJSONError(w, app.ValidationError{Field: "text", Message: "required"}, "validating payload")
		return
	}

	comment, err := c.App.CreateComment(review, *user, *params.Text)
	if err != nil {
		handleJSONError(w, err, "creating comment")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentComment(comment))
}

func (c *API) getComment(w http.ResponseWriter, r *http.Request) {
	comment, err := c.findComment(r)
	if err != nil {
		handleJSONError(w, err, "finding comment")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentComment(comment))
}

func (c *API) updateComment(w http.ResponseWriter, r *http.Request) {
	comment, err := c.findComment(r)
	if err != nil {
		handleJSONError(w, err, "finding comment")
		return
	}

	if !permissions.CanModifyContent(context.User(r.Context()), comment.AuthorID) {
		middleware.RespondForbidden(w)
		return
	}

	var params commentPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	if err := c.App.UpdateComment(&comment, params.Text); err != nil {
		handleJSONError(w, err, "updating comment")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentComment(comment))
}

func (c *API) deleteComment(w http.ResponseWriter, r *http.Request) {
	comment, err := c.findComment(r)
	if err != nil {
		handleJSONError(w, err, "finding comment")
		return
	}

	if !permissions.CanModifyContent(context.User(r.Context()), comment.AuthorID) {
		middleware.RespondForbidden(w)
		return
	}

	if err := c.App.DeleteComment(comment); err != nil {
		handleJSONError(w, err, "deleting comment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
