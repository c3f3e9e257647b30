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

// Package confirm derives and checks email confirmation codes.
//
// A code is a pure function of the user's stored state, a timestamp, and the
// server secret. Nothing is persisted per code: a code stays valid until it
// ages past its ttl or until the user's underlying state changes (the
// per-user code salt, username, email, or role). Codes are deliberately not
// single-use; rotating the user's code salt is the explicit way to
// invalidate all outstanding codes.
package confirm

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base32"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/revuehub/revue/pkg/server/database"
)

// codeHashLen is the number of HMAC bytes kept in a code
const codeHashLen = 10

var codeEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

func hashValue(user database.User, ts int64, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s\x00%s\x00%s\x00%s\x00%s\x00%d",
		user.UUID, user.Username, user.Email, user.Role, user.CodeSalt, ts)

	sum := mac.Sum(nil)

	return strings.ToLower(codeEncoding.EncodeToString(sum[:codeHashLen]))
}

// Generate derives a confirmation code for the user at the given instant.
// The code embeds its issuance timestamp so that Check can recompute the
// same derivation.
func Generate(user database.User, now time.Time, secret string) string {
	ts := now.Unix()

	return fmt.Sprintf("%s-%s", strconv.FormatInt(ts, 36), hashValue(user, ts, secret))
}

// Check reports whether the given code is a valid derivation from the
// user's current state: the embedded timestamp must not be in the future or
// older than ttl, and the HMAC part must match the recomputation.
func Check(user database.User, code string, now time.Time, secret string, ttl time.Duration) bool {
	parts := strings.SplitN(code, "-", 2)
	if len(parts) != 2 {
		return false
	}

	ts, err := strconv.ParseInt(parts[0], 36, 64)
	if err != nil {
		return false
	}

	issuedAt := time.Unix(ts, 0)
	if issuedAt.After(now) || now.Sub(issuedAt) > ttl {
		return false
	}

	return hmac.Equal([]byte(parts[1]), []byte(hashValue(user, ts, secret)))
}
