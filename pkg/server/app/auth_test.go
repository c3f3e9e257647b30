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
	"time"

	"github.com/pkg/errors"

	"github.com/revuehub/revue/pkg/assert"
	"github.com/revuehub/revue/pkg/clock"
	"github.com/revuehub/revue/pkg/server/confirm"
	"github.com/revuehub/revue/pkg/server/mailer"
	"github.com/revuehub/revue/pkg/server/testutils"
	"github.com/revuehub/revue/pkg/server/token"
)

// waitForEmails polls the mock backend until the expected number of emails
// has been sent. Delivery happens on a separate goroutine.
func waitForEmails(t *testing.T, backend *testutils.MockEmailbackendImplementation, count int) []testutils.MockEmail {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if emails := backend.Sent(); len(emails) >= count {
			return emails
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("timed out waiting for %d emails", count)
	return nil
}

func TestSignUp(t *testing.T) {
	t.Run("sends a confirmation code", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)
		backend := a.EmailBackend.(*testutils.MockEmailbackendImplementation)

		user, err := a.SignUp("alice", "alice@example.com")
		if err != nil {
			t.Fatal(err)
		}

		emails := waitForEmails(t, backend, 1)
		assert.Equal(t, emails[0].TemplateType, mailer.EmailTypeConfirmationCode, "template type mismatch")
		assert.DeepEqual(t, emails[0].To, []string{"alice@example.com"}, "recipient mismatch")

		data := emails[0].Data.(mailer.ConfirmationCodeTmplData)
		valid := confirm.Check(user, data.Code, a.Clock.Now(), a.Config.SecretKey, a.Config.CodeTTL)
		assert.Equal(t, valid, true, "emailed code should be valid")
	})

	t.Run("re-signup sends a fresh code to the same identity", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)
		backend := a.EmailBackend.(*testutils.MockEmailbackendImplementation)

		first, err := a.SignUp("alice", "alice@example.com")
		if err != nil {
			t.Fatal(err)
		}
		second, err := a.SignUp("alice", "alice@example.com")
		if err != nil {
			t.Fatal(err)
		}

		assert.Equal(t, second.ID, first.ID, "should be the same user")
		waitForEmails(t, backend, 2)
	})

	t.Run("conflicting pair sends nothing", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)
		backend := a.EmailBackend.(*testutils.MockEmailbackendImplementation)

		if _, err := a.SignUp("alice", "alice@example.com"); err != nil {
			t.Fatal(err)
		}
		waitForEmails(t, backend, 1)
		backend.Clear()

		_, err := a.SignUp("alice", "other@example.com")
		assert.Equal(t, errors.Cause(err), ErrDuplicateUsername, "error mismatch")

		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, len(backend.Sent()), 0, "no email should be sent on conflict")
	})
}

func TestIssueToken(t *testing.T) {
	t.Run("valid code", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)

		user, err := a.RegisterUser("alice", "alice@example.com")
		if err != nil {
			t.Fatal(err)
		}

		code := confirm.Generate(user, a.Clock.Now(), a.Config.SecretKey)
		value, err := a.IssueToken("alice", code)
		if err != nil {
			t.Fatal(err)
		}

		uuid, err := token.Verify(a.Config.SecretKey, value, a.Clock.Now())
		assert.Equal(t, err, nil, "token should verify")
		assert.Equal(t, uuid, user.UUID, "token subject mismatch")
	})

	t.Run("code survives reuse", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)

		user, err := a.RegisterUser("alice", "alice@example.com")
		if err != nil {
			t.Fatal(err)
		}

		code := confirm.Generate(user, a.Clock.Now(), a.Config.SecretKey)
		if _, err := a.IssueToken("alice", code); err != nil {
			t.Fatal(err)
		}
		if _, err := a.IssueToken("alice", code); err != nil {
			t.Fatal(errors.Wrap(err, "second exchange should succeed"))
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)

		_, err := a.IssueToken("nobody", "whatever")
		assert.Equal(t, errors.Cause(err), ErrNotFound, "error mismatch")
	})

	t.Run("bad code", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)

		if _, err := a.RegisterUser("alice", "alice@example.com"); err != nil {
			t.Fatal(err)
		}

		_, err := a.IssueToken("alice", "bogus-code")
		assert.Equal(t, errors.Cause(err), ErrInvalidCode, "error mismatch")
	})

	t.Run("expired code", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)
		mockClock := a.Clock.(*clock.Mock)

		user, err := a.RegisterUser("alice", "alice@example.com")
		if err != nil {
			t.Fatal(err)
		}

		code := confirm.Generate(user, mockClock.Now(), a.Config.SecretKey)
		mockClock.SetNow(mockClock.Now().Add(a.Config.CodeTTL + time.Hour))

		_, err = a.IssueToken("alice", code)
		assert.Equal(t, errors.Cause(err), ErrInvalidCode, "error mismatch")
	})

	t.Run("code invalidated by email change", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)

		user, err := a.RegisterUser("alice", "alice@example.com")
		if err != nil {
			t.Fatal(err)
		}

		code := confirm.Generate(user, a.Clock.Now(), a.Config.SecretKey)

		email := "alice2@example.com"
		if err := a.UpdateUser(&user, UserParams{Email: &email}); err != nil {
			t.Fatal(err)
		}

		_, err = a.IssueToken("alice", code)
		assert.Equal(t, errors.Cause(err), ErrInvalidCode, "error mismatch")
	})
}
