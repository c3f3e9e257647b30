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
	pkgErrors "github.com/pkg/errors"

	"github.com/revuehub/revue/pkg/server/app"
	"github.com/revuehub/revue/pkg/server/middleware"
)

// Route represents a single route
type Route struct {
	Method    string
	Pattern   string
	Handler   http.Handler
	RateLimit bool
}

// NewAPIRoutes returns the routes for the api endpoints. Reads on the
// catalog and content are public. Writes require authentication and are
// further role-gated in the handlers.
func NewAPIRoutes(a *app.App, c *API) []Route {
	requireAuth := func(h http.HandlerFunc) http.Handler {
		return middleware.Auth(a, h)
	}
	open := func(h http.HandlerFunc) http.Handler {
		return http.HandlerFunc(h)
	}

	return []Route{
		{"GET", "/health", open(c.health), false},

		{"POST", "/auth/signup", open(c.signup), true},
		{"POST", "/auth/token", open(c.issueToken), true},

		{"GET", "/users/me", requireAuth(c.getMe), true},
		{"PATCH", "/users/me", requireAuth(c.updateMe), true},
		{"GET", "/users", requireAuth(c.listUsers), true},
		{"POST", "/users", requireAuth(c.createUser), true},
		{"GET", "/users/{username}", requireAuth(c.getUser), true},
		{"PATCH", "/users/{username}", requireAuth(c.updateUser), true},
		{"DELETE", "/users/{username}", requireAuth(c.deleteUser), true},

		{"GET", "/categories", open(c.listCategories), true},
		{"POST", "/categories", requireAuth(c.createCategory), true},
		{"DELETE", "/categories/{slug}", requireAuth(c.deleteCategory), true},

		{"GET", "/genres", open(c.listGenres), true},
		{"POST", "/genres", requireAuth(c.createGenre), true},
		{"DELETE", "/genres/{slug}", requireAuth(c.deleteGenre), true},

		{"GET", "/titles", open(c.listTitles), true},
		{"POST", "/titles", requireAuth(c.createTitle), true},
		{"GET", "/titles/{titleID}", open(c.getTitle), true},
		{"PATCH", "/titles/{titleID}", requireAuth(c.updateTitle), true},
		{"DELETE", "/titles/{titleID}", requireAuth(c.deleteTitle), true},

		{"GET", "/titles/{titleID}/reviews", open(c.listReviews), true},
		{"POST", "/titles/{titleID}/reviews", requireAuth(c.createReview), true},
		{"GET", "/titles/{titleID}/reviews/{reviewID}", open(c.getReview), true},
		{"PATCH", "/titles/{titleID}/reviews/{reviewID}", requireAuth(c.updateReview), true},
		{"DELETE", "/titles/{titleID}/reviews/{reviewID}", requireAuth(c.deleteReview), true},

		{"GET", "/titles/{titleID}/reviews/{reviewID}/comments", open(c.listComments), true},
		{"POST", "/titles/{titleID}/reviews/{reviewID}/comments", requireAuth(c.createComment), true},
		{"GET", "/titles/{titleID}/reviews/{reviewID}/comments/{commentID}", open(c.getComment), true},
		{"PATCH", "/titles/{titleID}/reviews/{reviewID}/comments/{commentID}", requireAuth(c.updateComment), true},
		{"DELETE", "/titles/{titleID}/reviews/{reviewID}/comments/{commentID}", requireAuth(c.deleteComment), true},
	}
}

// RouteConfig is the configuration for routes
type RouteConfig struct {
	Routes []Route
}

// NewRouter creates and returns a new router
func NewRouter(a *app.App, rc RouteConfig) (http.Handler, error) {
	if err := a.Validate(); err != nil {
		return nil, pkgErrors.Wrap(err, "validating app")
	}

	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusNotFound, errResp{Error: "not found"})
	})
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusMethodNotAllowed, errResp{Error: "method not allowed"})
	})

	router := mux.NewRouter().StrictSlash(true)
	router.NotFoundHandler = notFound
	router.MethodNotAllowedHandler = methodNotAllowed

	api := router.PathPrefix("/api/v1").Subrouter()
	api.NotFoundHandler = notFound
	api.MethodNotAllowedHandler = methodNotAllowed
	for _, route := range rc.Routes {
		api.Handle(route.Pattern, middleware.ApplyLimit(route.Handler, route.RateLimit)).Methods(route.Method)
	}

	return middleware.Global(router), nil
}
