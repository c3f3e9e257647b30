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

// Package middleware provides the http middlewares for the api server
package middleware

import (
	"net/http"
	"time"

	"github.com/revuehub/revue/pkg/server/log"
)

// DoError logs the given error and responds with a plain status message.
// Details never leak to the client.
func DoError(w http.ResponseWriter, msg string, err error, statusCode int) {
	log.ErrorWrap(err, msg)
	http.Error(w, http.StatusText(statusCode), statusCode)
}

// RespondUnauthorized rejects the request with a 401 and a challenge header.
func RespondUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="revue"`)
	http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
}

// RespondForbidden rejects the request with a 403.
func RespondForbidden(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
}

func logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
			"remote":   lookupIP(r),
		}).Debug("request handled")
	})
}

// Global wraps the whole router with the middlewares that apply to every
// request regardless of the route.
func Global(h http.Handler) http.Handler {
	return logRequest(h)
}
