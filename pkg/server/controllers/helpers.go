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
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	pkgErrors "github.com/pkg/errors"

	"github.com/revuehub/revue/pkg/server/app"
	"github.com/revuehub/revue/pkg/server/log"
	"github.com/revuehub/revue/pkg/server/token"
)

var formDecoder = schema.NewDecoder()

func init() {
	formDecoder.IgnoreUnknownKeys(true)
}

// parseRequestData decodes the request payload into the given value. It
// accepts a JSON body as well as an urlencoded or multipart form.
func parseRequestData(r *http.Request, v interface{}) error {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			return app.ValidationError{Field: "body", Message: "malformed JSON"}
		}

		return nil
	}

	if err := r.ParseForm(); err != nil {
		return app.ValidationError{Field: "body", Message: "malformed form"}
	}
	if err := formDecoder.Decode(v, r.PostForm); err != nil {
		return app.ValidationError{Field: "body", Message: "malformed form"}
	}

	return nil
}

// getIntParam reads the named path parameter as an integer. A
// non-numeric value means the identified record cannot exist, so the
// caller treats the error as a not-found.
func getIntParam(r *http.Request, name string) (int, error) {
	vars := mux.Vars(r)

	val, err := strconv.Atoi(vars[name])
	if err != nil {
		return 0, pkgErrors.Wrapf(app.ErrNotFound, "parsing param %s", name)
	}

	return val, nil
}

type errResp struct {
	Error string `json:"error"`
}

// respondJSON encodes the given payload into JSON and writes it to the response
func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ErrorWrap(err, "encoding response")
	}
}

// statusForError maps an application error to an http status code
func statusForError(err error) int {
	cause := pkgErrors.Cause(err)

	switch {
	case app.IsValidationError(err), cause == app.ErrInvalidCode:
		return http.StatusBadRequest
	case cause == token.ErrInvalid:
		return http.StatusUnauthorized
	case cause == app.ErrNotFound:
		return http.StatusNotFound
	case app.IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// handleJSONError responds to the request with the status code derived
// from the given error. Internal errors are logged and masked.
func handleJSONError(w http.ResponseWriter, err error, msg string) {
	statusCode := statusForError(err)

	if statusCode == http.StatusInternalServerError {
		log.ErrorWrap(err, msg)
		respondJSON(w, statusCode, errResp{Error: http.StatusText(statusCode)})
		return
	}

	respondJSON(w, statusCode, errResp{Error: pkgErrors.Cause(err).Error()})
}
