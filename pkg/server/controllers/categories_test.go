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
	"testing"

	"github.com/revuehub/revue/pkg/assert"
	"github.com/revuehub/revue/pkg/server/app"
	"github.com/revuehub/revue/pkg/server/database"
	"github.com/revuehub/revue/pkg/server/presenters"
	"github.com/revuehub/revue/pkg/server/testutils"
)

func TestCategoriesEndpoint(t *testing.T) {
	t.Run("anonymous read", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		if _, err := a.CreateCategory("Films", "films"); err != nil {
			t.Fatal(err)
		}

		res := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "GET", "/api/v1/categories", ""))
		assert.StatusCodeEquals(t, res, http.StatusOK, "anonymous category listing")

		var payload []presenters.Category
		testutils.MustUnmarshalJSON(t, res, &payload, "unmarshalling payload")
		assert.Equal(t, len(payload), 1, "category count mismatch")
		assert.Equal(t, payload[0].Slug, "films", "Slug mismatch")
	})

	t.Run("anonymous write", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		res := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "POST", "/api/v1/categories", `{"name": "Films", "slug": "films"}`))
		assert.StatusCodeEquals(t, res, http.StatusUnauthorized, "anonymous category creation")
	})

	t.Run("non-admin write", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", database.RoleUser)
		moderator := testutils.SetupUserData(a.DB, "mod", "mod@example.com", database.RoleModerator)

		res := testutils.HTTPAuthDo(t, testutils.MakeReq(server.URL, "POST", "/api/v1/categories", `{"name": "Films", "slug": "films"}`), user)
		assert.StatusCodeEquals(t, res, http.StatusForbidden, "user category creation")

		res = testutils.HTTPAuthDo(t, testutils.MakeReq(server.URL, "POST", "/api/v1/categories", `{"name": "Films", "slug": "films"}`), moderator)
		assert.StatusCodeEquals(t, res, http.StatusForbidden, "moderator category creation")
	})

	t.Run("admin write", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		admin := testutils.SetupUserData(a.DB, "admin", "admin@example.com", database.RoleAdmin)

		res := testutils.HTTPAuthDo(t, testutils.MakeReq(server.URL, "POST", "/api/v1/categories", `{"name": "Films", "slug": "films"}`), admin)
		assert.StatusCodeEquals(t, res, http.StatusCreated, "admin category creation")

		res = testutils.HTTPAuthDo(t, testutils.MakeReq(server.URL, "POST", "/api/v1/categories", `{"name": "Movies", "slug": "films"}`), admin)
		assert.StatusCodeEquals(t, res, http.StatusConflict, "duplicate category creation")
	})

	t.Run("delete", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		admin := testutils.SetupUserData(a.DB, "admin", "admin@example.com", database.RoleAdmin)
		if _, err := a.CreateCategory("Films", "films"); err != nil {
			t.Fatal(err)
		}

		res := testutils.HTTPAuthDo(t, testutils.MakeReq(server.URL, "DELETE", "/api/v1/categories/films", ""), admin)
		assert.StatusCodeEquals(t, res, http.StatusNoContent, "deleting category")

		res = testutils.HTTPAuthDo(t, testutils.MakeReq(server.URL, "DELETE", "/api/v1/categories/films", ""), admin)
		assert.StatusCodeEquals(t, res, http.StatusNotFound, "deleting nonexistent category")
	})

	t.Run("no detail route", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		admin := testutils.SetupUserData(a.DB, "admin", "admin@example.com", database.RoleAdmin)
		if _, err := a.CreateCategory("Films", "films"); err != nil {
			t.Fatal(err)
		}

		res := testutils.HTTPAuthDo(t, testutils.MakeReq(server.URL, "PATCH", "/api/v1/categories/films", `{"name": "Movies"}`), admin)
		assert.StatusCodeEquals(t, res, http.StatusMethodNotAllowed, "patching a category")

		res = testutils.HTTPDo(t, testutils.MakeReq(server.URL, "GET", "/api/v1/categories/films", ""))
		assert.StatusCodeEquals(t, res, http.StatusMethodNotAllowed, "reading a single category")
	})
}

func TestGenresEndpoint(t *testing.T) {
	t.Run("anonymous read with search", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		if _, err := a.CreateGenre("Drama", "drama"); err != nil {
			t.Fatal(err)
		}
		if _, err := a.CreateGenre("Comedy", "comedy"); err != nil {
			t.Fatal(err)
		}

		res := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "GET", "/api/v1/genres?search=Dra", ""))
		assert.StatusCodeEquals(t, res, http.StatusOK, "genre search")

		var payload []presenters.Genre
		testutils.MustUnmarshalJSON(t, res, &payload, "unmarshalling payload")
		assert.Equal(t, len(payload), 1, "genre count mismatch")
		assert.Equal(t, payload[0].Slug, "drama", "Slug mismatch")
	})

	t.Run("admin write and delete", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		admin := testutils.SetupUserData(a.DB, "admin", "admin@example.com", database.RoleAdmin)

		res := testutils.HTTPAuthDo(t, testutils.MakeReq(server.URL, "POST", "/api/v1/genres", `{"name": "Drama", "slug": "drama"}`), admin)
		assert.StatusCodeEquals(t, res, http.StatusCreated, "creating genre")

		res = testutils.HTTPAuthDo(t, testutils.MakeReq(server.URL, "DELETE", "/api/v1/genres/drama", ""), admin)
		assert.StatusCodeEquals(t, res, http.StatusNoContent, "deleting genre")
	})
}
