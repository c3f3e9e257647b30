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

// Package token mints and verifies stateless bearer tokens. A token is an
// HS256-signed JWT carrying the user's durable identifier and an expiry.
// There is no server-side session and no revocation before expiry.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// ErrInvalid is an error for a token that fails signature or expiry checks
var ErrInvalid = errors.New("invalid token")

// Mint produces a signed bearer token for the user with the given uuid,
// expiring after ttl.
func Mint(secret, userUUID string, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userUUID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}

	return signed, nil
}

// Verify checks the signature and expiry of the given token value and
// returns the user uuid it was minted for. Any failure is reported as
// ErrInvalid without detail, so that callers cannot distinguish a forged
// token from an expired one.
func Verify(secret, value string, now time.Time) (string, error) {
	parsed, err := jwt.Parse(value, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil || !parsed.Valid {
		return "", ErrInvalid
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalid
	}

	return subject, nil
}
