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

func TestUsersEndpoint(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		res := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "GET", "/api/v1/users", ""))
		assert.StatusCodeEquals(t, res, http.StatusUnauthorized, "anonymous user listing")
	})

	t.Run("plain user", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", database.RoleUser)

		res := testutils.HTTPAuthDo(t, testutils.MakeReq(server.URL, "GET", "/api/v1/users", ""), user)
		assert.StatusCodeEquals(t, res, http.StatusForbidden, "non-admin user listing")
	})

	t.Run("moderator is not an admin", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		moderator := testutils.SetupUserData(a.DB, "mod", "mod@example.com", database.RoleModerator)

		res := testutils.HTTPAuthDo(t, testutils.MakeReq(server.URL, "GET", "/api/v1/users", ""), moderator)
		assert.StatusCodeEquals(t, res, http.StatusForbidden, "moderator user listing")
	})

	t.Run("admin lists users", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		admin := testutils.SetupUserData(a.DB, "admin", "admin@example.com", database.RoleAdmin)
		testutils.SetupUserData(a.DB, "alice", "alice@example.com", database.RoleUser)

		res := testutils.HTTPAuthDo(t, testutils.MakeReq(server.URL, "GET", "/api/v1/users", ""), admin)
		assert.StatusCodeEquals(t, res, http.StatusOK, "admin user listing")

		var payload []presenters.User
		testutils.MustUnmarshalJSON(t, res, &payload, "unmarshalling payload")
		assert.Equal(t, len(payload), 2, "user count mismatch")
	})

	t.Run("superuser acts as admin regardless of role", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		superuser := testutils.SetupUserData(a.DB, "root", "root@example.com", database.RoleUser)
		testutils.MustExec(t, a.DB.Model(&superuser).Update("superuser", true), "granting superuser")

		res := testutils.HTTPAuthDo(t, testutils.MakeReq(server.URL, "GET", "/api/v1/users", ""), superuser)
		assert.StatusCodeEquals(t, res, http.StatusOK, "superuser user listing")
	})

	t.Run("admin creates a user", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		admin := testutils.SetupUserData(a.DB, "admin", "admin@example.com", database.RoleAdmin)

		req := testutils.MakeReq(server.URL, "POST", "/api/v1/users", `{"username": "mod", "email": "mod@example.com", "role": "moderator"}`)
		res := testutils.HTTPAuthDo(t, req, admin)
		assert.StatusCodeEquals(t, res, http.StatusCreated, "creating user")

		var payload presenters.User
		testutils.MustUnmarshalJSON(t, res, &payload, "unmarshalling payload")
		assert.Equal(t, payload.Role, database.RoleModerator, "Role mismatch")
	})

	t.Run("admin changes a role", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		admin := testutils.SetupUserData(a.DB, "admin", "admin@example.com", database.RoleAdmin)
		testutils.SetupUserData(a.DB, "alice", "alice@example.com", database.RoleUser)

		req := testutils.MakeReq(server.URL, "PATCH", "/api/v1/users/alice", `{"role": "moderator"}`)
		res := testutils.HTTPAuthDo(t, req, admin)
		assert.StatusCodeEquals(t, res, http.StatusOK, "updating user")

		got, err := a.GetUserByUsername("alice")
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, got.Role, database.RoleModerator, "Role mismatch")
	})

	t.Run("admin deletes a user", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		admin := testutils.SetupUserData(a.DB, "admin", "admin@example.com", database.RoleAdmin)
		testutils.SetupUserData(a.DB, "alice", "alice@example.com", database.RoleUser)

		res := testutils.HTTPAuthDo(t, testutils.MakeReq(server.URL, "DELETE", "/api/v1/users/alice", ""), admin)
		assert.StatusCodeEquals(t, res, http.StatusNoContent, "deleting user")

		res = testutils.HTTPAuthDo(t, testutils.MakeReq(server.URL, "GET", "/api/v1/users/alice", ""), admin)
		assert.StatusCodeEquals(t, res, http.StatusNotFound, "deleted user lookup")
	})

	t.Run("unknown username", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		admin := testutils.SetupUserData(a.DB, "admin", "admin@example.com", database.RoleAdmin)

		res := testutils.HTTPAuthDo(t, testutils.MakeReq(server.URL, "GET", "/api/v1/users/nobody", ""), admin)
		assert.StatusCodeEquals(t, res, http.StatusNotFound, "unknown user lookup")
	})
}

func TestMeEndpoint(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		res := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "GET", "/api/v1/users/me", ""))
		assert.StatusCodeEquals(t, res, http.StatusUnauthorized, "anonymous profile read")
	})

	t.Run("reads own profile", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", database.RoleUser)

		res := testutils.HTTPAuthDo(t, testutils.MakeReq(server.URL, "GET", "/api/v1/users/me", ""), user)
		assert.StatusCodeEquals(t, res, http.StatusOK, "profile read")

		var payload presenters.User
		testutils.MustUnmarshalJSON(t, res, &payload, "unmarshalling payload")
		assert.Equal(t, payload.Username, "alice", "Username mismatch")
	})

	t.Run("updates own profile", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", database.RoleUser)

		req := testutils.MakeReq(server.URL, "PATCH", "/api/v1/users/me", `{"bio": "hello"}`)
		res := testutils.HTTPAuthDo(t, req, user)
		assert.StatusCodeEquals(t, res, http.StatusOK, "profile update")

		got, err := a.GetUserByUsername("alice")
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, got.Bio, "hello", "Bio mismatch")
	})

	t.Run("cannot change own role", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", database.RoleUser)

		req := testutils.MakeReq(server.URL, "PATCH", "/api/v1/users/me", `{"role": "admin", "bio": "still me"}`)
		res := testutils.HTTPAuthDo(t, req, user)
		assert.StatusCodeEquals(t, res, http.StatusOK, "profile update")

		got, err := a.GetUserByUsername("alice")
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, got.Role, database.RoleUser, "role should be unchanged")
		assert.Equal(t, got.Bio, "still me", "other fields should be applied")
	})
}
