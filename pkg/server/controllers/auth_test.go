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
	"github.com/revuehub/revue/pkg/server/confirm"
	"github.com/revuehub/revue/pkg/server/database"
	"github.com/revuehub/revue/pkg/server/testutils"
	"github.com/revuehub/revue/pkg/server/token"
)

func TestSignupEndpoint(t *testing.T) {
	t.Run("creates an identity", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		req := testutils.MakeReq(server.URL, "POST", "/api/v1/auth/signup", `{"username": "alice", "email": "alice@example.com"}`)
		res := testutils.HTTPDo(t, req)

		assert.StatusCodeEquals(t, res, http.StatusOK, "signing up")

		var payload struct {
			Username string `json:"username"`
			Email    string `json:"email"`
		}
		testutils.MustUnmarshalJSON(t, res, &payload, "unmarshalling payload")
		assert.Equal(t, payload.Username, "alice", "Username mismatch")
		assert.Equal(t, payload.Email, "alice@example.com", "Email mismatch")

		var count int64
		testutils.MustExec(t, a.DB.Model(&database.User{}).Count(&count), "counting users")
		assert.Equal(t, count, int64(1), "user count mismatch")
	})

	t.Run("is idempotent for the same pair", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		for i := 0; i < 2; i++ {
			req := testutils.MakeReq(server.URL, "POST", "/api/v1/auth/signup", `{"username": "alice", "email": "alice@example.com"}`)
			res := testutils.HTTPDo(t, req)
			assert.StatusCodeEquals(t, res, http.StatusOK, "signing up")
		}

		var count int64
		testutils.MustExec(t, a.DB.Model(&database.User{}).Count(&count), "counting users")
		assert.Equal(t, count, int64(1), "user count mismatch")
	})

	t.Run("conflicting username", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		res := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "POST", "/api/v1/auth/signup", `{"username": "alice", "email": "alice@example.com"}`))
		assert.StatusCodeEquals(t, res, http.StatusOK, "signing up")

		res = testutils.HTTPDo(t, testutils.MakeReq(server.URL, "POST", "/api/v1/auth/signup", `{"username": "alice", "email": "other@example.com"}`))
		assert.StatusCodeEquals(t, res, http.StatusConflict, "conflicting signup")
	})

	t.Run("reserved username", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		res := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "POST", "/api/v1/auth/signup", `{"username": "me", "email": "me@example.com"}`))
		assert.StatusCodeEquals(t, res, http.StatusBadRequest, "reserved username signup")
	})

	t.Run("malformed payload", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		res := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "POST", "/api/v1/auth/signup", `not json`))
		assert.StatusCodeEquals(t, res, http.StatusBadRequest, "malformed signup")
	})
}

func TestTokenEndpoint(t *testing.T) {
	t.Run("exchanges a valid code", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", database.RoleUser)
		code := confirm.Generate(user, a.Clock.Now(), a.Config.SecretKey)

		req := testutils.MakeReq(server.URL, "POST", "/api/v1/auth/token", `{"username": "alice", "confirmation_code": "`+code+`"}`)
		res := testutils.HTTPDo(t, req)

		assert.StatusCodeEquals(t, res, http.StatusOK, "exchanging code")

		var payload struct {
			Token string `json:"token"`
		}
		testutils.MustUnmarshalJSON(t, res, &payload, "unmarshalling payload")

		uuid, err := token.Verify(a.Config.SecretKey, payload.Token, a.Clock.Now())
		assert.Equal(t, err, nil, "token should verify")
		assert.Equal(t, uuid, user.UUID, "token subject mismatch")
	})

	t.Run("unknown username", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		res := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "POST", "/api/v1/auth/token", `{"username": "nobody", "confirmation_code": "x"}`))
		assert.StatusCodeEquals(t, res, http.StatusNotFound, "unknown username")
	})

	t.Run("bad code", func(t *testing.T) {
		a := app.NewTest()
		a.DB = testutils.InitMemoryDB(t)
		server := MustNewServer(t, &a)
		defer server.Close()

		testutils.SetupUserData(a.DB, "alice", "alice@example.com", database.RoleUser)

		res := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "POST", "/api/v1/auth/token", `{"username": "alice", "confirmation_code": "bogus"}`))
		assert.StatusCodeEquals(t, res, http.StatusBadRequest, "bad code")
	})
}
