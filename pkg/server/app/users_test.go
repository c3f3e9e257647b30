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

package app

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/revuehub/revue/pkg/assert"
	"github.com/revuehub/revue/pkg/server/database"
	"github.com/revuehub/revue/pkg/server/mailer"
	"github.com/revuehub/revue/pkg/server/testutils"
)

func TestRegisterUser(t *testing.T) {
	t.Run("creates a new user", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)

		user, err := a.RegisterUser("alice", "alice@example.com")
		if err != nil {
			t.Fatal(err)
		}

		assert.Equal(t, user.Username, "alice", "Username mismatch")
		assert.Equal(t, user.Email, "alice@example.com", "Email mismatch")
		assert.Equal(t, user.Role, database.RoleUser, "Role mismatch")
		assert.NotEqual(t, user.UUID, "", "UUID should be set")
		assert.NotEqual(t, user.CodeSalt, "", "CodeSalt should be set")
	})

	t.Run("returns the existing user for a matching pair", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)

		first, err := a.RegisterUser("alice", "alice@example.com")
		if err != nil {
			t.Fatal(err)
		}
		second, err := a.RegisterUser("alice", "alice@example.com")
		if err != nil {
			t.Fatal(err)
		}

		assert.Equal(t, second.ID, first.ID, "should be the same user")

		var count int64
		testutils.MustExec(t, a.DB.Model(&database.User{}).Count(&count), "counting users")
		assert.Equal(t, count, int64(1), "user count mismatch")
	})

	t.Run("username taken by another email", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)

		if _, err := a.RegisterUser("alice", "alice@example.com"); err != nil {
			t.Fatal(err)
		}

		_, err := a.RegisterUser("alice", "other@example.com")
		assert.Equal(t, errors.Cause(err), ErrDuplicateUsername, "error mismatch")
	})

	t.Run("email taken by another username", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)

		if _, err := a.RegisterUser("alice", "alice@example.com"); err != nil {
			t.Fatal(err)
		}

		_, err := a.RegisterUser("alice2", "alice@example.com")
		assert.Equal(t, errors.Cause(err), ErrDuplicateEmail, "error mismatch")
	})

	t.Run("reserved username", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)

		_, err := a.RegisterUser("me", "me@example.com")
		assert.Equal(t, IsValidationError(err), true, "reserved username should be a validation error")
	})

	t.Run("invalid username", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)

		for _, username := range []string{"", "has space", "has/slash"} {
			_, err := a.RegisterUser(username, "x@example.com")
			assert.Equal(t, IsValidationError(err), true, "invalid username should be a validation error")
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)

		for _, email := range []string{"", "notanemail", "no@tld@double"} {
			_, err := a.RegisterUser("alice", email)
			assert.Equal(t, IsValidationError(err), true, "invalid email should be a validation error")
		}
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("creates a user with a role", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)

		user, err := a.CreateUser("mod", "mod@example.com", database.RoleModerator, false)
		if err != nil {
			t.Fatal(err)
		}

		assert.Equal(t, user.Role, database.RoleModerator, "Role mismatch")
		assert.Equal(t, user.Superuser, false, "Superuser mismatch")
	})

	t.Run("creates a superuser", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)

		user, err := a.CreateUser("root", "root@example.com", database.RoleUser, true)
		if err != nil {
			t.Fatal(err)
		}

		assert.Equal(t, user.Superuser, true, "Superuser mismatch")
	})

	t.Run("sends a welcome email", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)
		backend := a.EmailBackend.(*testutils.MockEmailbackendImplementation)

		if _, err := a.CreateUser("alice", "alice@example.com", database.RoleUser, false); err != nil {
			t.Fatal(err)
		}

		emails := waitForEmails(t, backend, 1)
		assert.Equal(t, emails[0].TemplateType, mailer.EmailTypeWelcome, "template type mismatch")
		assert.DeepEqual(t, emails[0].To, []string{"alice@example.com"}, "recipient mismatch")
	})

	t.Run("unknown role", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)

		_, err := a.CreateUser("alice", "alice@example.com", "owner", false)
		assert.Equal(t, IsValidationError(err), true, "unknown role should be a validation error")
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("updates profile fields", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", database.RoleUser)

		bio := "hello"
		firstName := "Alice"
		err := a.UpdateUser(&user, UserParams{Bio: &bio, FirstName: &firstName})
		if err != nil {
			t.Fatal(err)
		}

		got, err := a.GetUserByUsername("alice")
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, got.Bio, "hello", "Bio mismatch")
		assert.Equal(t, got.FirstName, "Alice", "FirstName mismatch")
	})

	t.Run("updates role", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", database.RoleUser)

		role := database.RoleModerator
		if err := a.UpdateUser(&user, UserParams{Role: &role}); err != nil {
			t.Fatal(err)
		}

		got, err := a.GetUserByUsername("alice")
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, got.Role, database.RoleModerator, "Role mismatch")
	})

	t.Run("username conflict", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)

		testutils.SetupUserData(a.DB, "alice", "alice@example.com", database.RoleUser)
		user := testutils.SetupUserData(a.DB, "bob", "bob@example.com", database.RoleUser)

		username := "alice"
		err := a.UpdateUser(&user, UserParams{Username: &username})
		assert.Equal(t, errors.Cause(err), ErrDuplicateUsername, "error mismatch")
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("deletes the user with their content", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)

		user := testutils.SetupUserData(a.DB, "alice", "alice@example.com", database.RoleUser)
		other := testutils.SetupUserData(a.DB, "bob", "bob@example.com", database.RoleUser)

		title, err := a.CreateTitle(TitleParams{Name: strPtr("Solaris"), Year: intPtr(1972)})
		if err != nil {
			t.Fatal(err)
		}
		review, err := a.CreateReview(title, user, "great", 9)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := a.CreateComment(review, other, "agreed"); err != nil {
			t.Fatal(err)
		}

		if err := a.DeleteUser(user); err != nil {
			t.Fatal(err)
		}

		_, err = a.GetUserByUsername("alice")
		assert.Equal(t, errors.Cause(err), ErrNotFound, "user should be gone")

		var reviewCount, commentCount int64
		testutils.MustExec(t, a.DB.Model(&database.Review{}).Count(&reviewCount), "counting reviews")
		testutils.MustExec(t, a.DB.Model(&database.Comment{}).Count(&commentCount), "counting comments")
		assert.Equal(t, reviewCount, int64(0), "reviews by the user should be gone")
		assert.Equal(t, commentCount, int64(0), "comments on the user's reviews should be gone")
	})
}

func strPtr(s string) *string {
	return &s
}

func intPtr(n int) *int {
	return &n
}
