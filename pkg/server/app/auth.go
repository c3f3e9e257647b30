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
	"github.com/pkg/errors"

	"github.com/revuehub/revue/pkg/server/confirm"
	"github.com/revuehub/revue/pkg/server/database"
	"github.com/revuehub/revue/pkg/server/log"
	"github.com/revuehub/revue/pkg/server/token"
)

// SignUp looks up or creates an identity for the username/email pair and
// sends a confirmation code to the email address. Delivery is best-effort:
// a failure is logged and never rolls back the identity or surfaces to the
// caller.
func (a *App) SignUp(username, email string) (database.User, error) {
	user, err := a.RegisterUser(username, email)
	if err != nil {
		return database.User{}, err
	}

	code := confirm.Generate(user, a.Clock.Now(), a.Config.SecretKey)

	go func() {
		if err := a.SendConfirmationCodeEmail(user, code); err != nil {
			log.ErrorWrap(err, "sending confirmation code email")
		}
	}()

	return user, nil
}

// IssueToken exchanges a valid confirmation code for a signed bearer token.
// It fails with ErrNotFound when the username is unknown and ErrInvalidCode
// when the code does not match the derivation from the user's current
// state. A successful exchange consumes nothing: the code stays valid until
// it expires or the user's state changes.
func (a *App) IssueToken(username, code string) (string, error) {
	user, err := a.GetUserByUsername(username)
	if err != nil {
		return "", err
	}

	if !confirm.Check(user, code, a.Clock.Now(), a.Config.SecretKey, a.Config.CodeTTL) {
		return "", ErrInvalidCode
	}

	value, err := token.Mint(a.Config.SecretKey, user.UUID, a.Clock.Now(), a.Config.TokenTTL)
	if err != nil {
		return "", errors.Wrap(err, "minting token")
	}

	return value, nil
}
