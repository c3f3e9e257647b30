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
)

type signupPayload struct {
	Username string `json:"username" schema:"username"`
	Email    string `json:"email" schema:"email"`
}

// signup handles a signup or a confirmation code re-request. The
// response does not tell a new identity apart from an existing one.
func (c *API) signup(w http.ResponseWriter, r *http.Request) {
	var params signupPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	user, err := c.App.SignUp(params.Username, params.Email)
	if err != nil {
		handleJSONError(w, err, "signing up")
		return
	}

	respondJSON(w, http.StatusOK, signupPayload{
		Username: user.Username,
		Email:    user.Email,
	})
}

type tokenPayload struct {
	Username         string `json:"username" schema:"username"`
	ConfirmationCode string `json:"confirmation_code" schema:"confirmation_code"`
}

type tokenResp struct {
	Token string `json:"token"`
}

// issueToken exchanges a valid confirmation code for a bearer token
func (c *API) issueToken(w http.ResponseWriter, r *http.Request) {
	var params tokenPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	value, err := c.App.IssueToken(params.Username, params.ConfirmationCode)
	if err != nil {
		handleJSONError(w, err, "issuing token")
		return
	}

	respondJSON(w, http.StatusOK, tokenResp{Token: value})
}
