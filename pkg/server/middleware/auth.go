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

package middleware

import (
	"net/http"
	"strings"

	pkgErrors "github.com/pkg/errors"

	"github.com/revuehub/revue/pkg/server/app"
	"github.com/revuehub/revue/pkg/server/context"
	"github.com/revuehub/revue/pkg/server/database"
	"github.com/revuehub/revue/pkg/server/helpers"
	"github.com/revuehub/revue/pkg/server/token"
)

// GetCredential extracts the bearer token value from the authorization
// header of the given request. It returns an empty string for requests
// without one.
func GetCredential(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}

// authWithToken resolves the request to a user through its bearer token.
// A missing, forged, or expired token resolves to an anonymous request;
// only an unexpected store failure is an error.
func authWithToken(a *app.App, r *http.Request) (database.User, bool, error) {
	var user database.User

	value := GetCredential(r)
	if value == "" {
		return user, false, nil
	}

	uuid, err := token.Verify(a.Config.SecretKey, value, a.Clock.Now())
	if err != nil {
		return user, false, nil
	}
	if !helpers.ValidateUUID(uuid) {
		return user, false, nil
	}

	user, err = a.GetUserByUUID(uuid)
	if pkgErrors.Cause(err) == app.ErrNotFound {
		return user, false, nil
	} else if err != nil {
		return user, false, pkgErrors.Wrap(err, "finding user from token")
	}

	return user, true, nil
}

// Auth is an authentication middleware. Requests without a valid resolved
// identity are rejected before any business logic runs.
func Auth(a *app.App, next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok, err := authWithToken(a, r)
		if err != nil {
			DoError(w, "authenticating with token", err, http.StatusInternalServerError)
			return
		}
		if !ok {
			RespondUnauthorized(w)
			return
		}

		ctx := context.WithUser(r.Context(), &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth resolves the request identity when a valid token is
// presented and passes the request through anonymously otherwise. It is
// used on endpoints whose reads are public while their mutations are
// role-gated in the handler.
func OptionalAuth(a *app.App, next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok, err := authWithToken(a, r)
		if err != nil {
			DoError(w, "authenticating with token", err, http.StatusInternalServerError)
			return
		}

		ctx := r.Context()
		if ok {
			ctx = context.WithUser(ctx, &user)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
