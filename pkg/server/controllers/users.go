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

	"github.com/revuehub/revue/pkg/server/app"
	"github.com/revuehub/revue/pkg/server/context"
	"github.com/revuehub/revue/pkg/server/database"
	"github.com/revuehub/revue/pkg/server/middleware"
	"github.com/revuehub/revue/pkg/server/permissions"
	"github.com/revuehub/revue/pkg/server/presenters"
)

type userPayload struct {
	Username  *string `json:"username" schema:"username"`
	Email     *string `json:"email" schema:"email"`
	Role      *string `json:"role" schema:"role"`
	Bio       *string `json:"bio" schema:"bio"`
	FirstName *string `json:"first_name" schema:"first_name"`
	LastName  *string `json:"last_name" schema:"last_name"`
}

func (c *API) createUser(w http.ResponseWriter, r *http.Request) {
	if !permissions.CanManageUsers(context.User(r.Context())) {
		middleware.RespondForbidden(w)
		return
	}

	var params userPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	var username, email string
	if params.Username != nil {
		username = *params.Username
	}
	if params.Email != nil {
		email = *params.Email
	}

	role := database.RoleUser
	if params.Role != nil {
		role = *params.Role
	}

	user, err := c.App.CreateUser(username, email, role, false)
	if err != nil {
		handleJSONError(w, err, "creating user")
		return
	}

	profile := userPayload{Bio: params.Bio, FirstName: params.FirstName, LastName: params.LastName}
	if profile.Bio != nil || profile.FirstName != nil || profile.LastName != nil {
		err = c.App.UpdateUser(&user, app.UserParams{
			Bio:       profile.Bio,
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
		})
		if err != nil {
			handleJSONError(w, err, "updating profile fields")
			return
		}
	}

	respondJSON(w, http.StatusCreated, presenters.PresentUser(user))
}

func (c *API) listUsers(w http.ResponseWriter, r *http.Request) {
	if !permissions.CanManageUsers(context.User(r.Context())) {
		middleware.RespondForbidden(w)
		return
	}

	users, err := c.App.ListUsers()
	if err != nil {
		handleJSONError(w, err, "listing users")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentUsers(users))
}

func (c *API) getUser(w http.ResponseWriter, r *http.Request) {
	if !permissions.CanManageUsers(context.User(r.Context())) {
		middleware.RespondForbidden(w)
		return
	}

	user, err := c.App.GetUserByUsername(mux.Vars(r)["username"])
	if err != nil {
		handleJSONError(w, err, "finding user")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentUser(user))
}

func (c *API) updateUser(w http.ResponseWriter, r *http.Request) {
	if !permissions.CanManageUsers(context.User(r.Context())) {
		middleware.RespondForbidden(w)
		return
	}

	user, err := c.App.GetUserByUsername(mux.Vars(r)["username"])
	if err != nil {
		handleJSONError(w, err, "finding user")
		return
	}

	var params userPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	err = c.App.UpdateUser(&user, app.UserParams{
		Username:  params.Username,
		Email:     params.Email,
		Role:      params.Role,
		Bio:       params.Bio,
		FirstName: params.FirstName,
		LastName:  params.LastName,
	})
	if err != nil {
		handleJSONError(w, err, "updating user")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentUser(user))
}

func (c *API) deleteUser(w http.ResponseWriter, r *http.Request) {
	if !permissions.CanManageUsers(context.User(r.Context())) {
		middleware.RespondForbidden(w)
		return
	}

	user, err := c.App.GetUserByUsername(mux.Vars(r)["username"])
	if err != nil {
		handleJSONError(w, err, "finding user")
		return
	}

	if err := c.App.DeleteUser(user); err != nil {
		handleJSONError(w, err, "deleting user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getMe returns the profile of the authenticated user
func (c *API) getMe(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	respondJSON(w, http.StatusOK, presenters.PresentUser(*user))
}

// updateMe updates the profile of the authenticated user. The role field
// is ignored so that users cannot escalate their own role.
func (c *API) updateMe(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	var params userPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	err := c.App.UpdateUser(user, app.UserParams{
		Username:  params.Username,
		Email:     params.Email,
		Bio:       params.Bio,
		FirstName: params.FirstName,
		LastName:  params.LastName,
	})
	if err != nil {
		handleJSONError(w, err, "updating profile")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentUser(*user))
}
