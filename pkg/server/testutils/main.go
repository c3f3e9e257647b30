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

// Package testutils provides utilities used in tests
package testutils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/revuehub/revue/pkg/server/database"
	"github.com/revuehub/revue/pkg/server/helpers"
	"github.com/revuehub/revue/pkg/server/token"
)

// TestSecretKey is the signing secret used by test configurations
const TestSecretKey = "test-secret-key"

// InitMemoryDB creates an in-memory SQLite database with the schema
// initialized. Each test gets its own database via a unique shared-cache
// name.
func InitMemoryDB(t *testing.T) *gorm.DB {
	uuid, err := helpers.GenUUID()
	if err != nil {
		t.Fatalf("failed to generate UUID for test database: %v", err)
	}

	db := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid))
	database.InitSchema(db)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// SetupUserData creates and returns a new user with the given role for
// testing purposes
func SetupUserData(db *gorm.DB, username, email, role string) database.User {
	uuid, err := helpers.GenUUID()
	if err != nil {
		panic(errors.Wrap(err, "Failed to generate UUID"))
	}

	user := database.User{
		UUID:     uuid,
		Username: username,
		Email:    email,
		Role:     role,
		CodeSalt: "test-code-salt",
	}
	if err := db.Save(&user).Error; err != nil {
		panic(errors.Wrap(err, "Failed to prepare user"))
	}

	return user
}

// HTTPDo makes an HTTP request and returns a response
func HTTPDo(t *testing.T, req *http.Request) *http.Response {
	hc := http.Client{
		// Do not follow redirects so that redirects themselves can be tested
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	res, err := hc.Do(req)
	if err != nil {
		t.Fatal(errors.Wrap(err, "performing http request"))
	}

	return res
}

// SetReqAuthHeader sets the authorization header in the given request to a
// freshly minted bearer token for the given user
func SetReqAuthHeader(t *testing.T, req *http.Request, user database.User) {
	value, err := token.Mint(TestSecretKey, user.UUID, time.Now(), time.Hour)
	if err != nil {
		t.Fatal(errors.Wrap(err, "minting token"))
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", value))
}

// HTTPAuthDo makes an HTTP request with an authorization header for the user
func HTTPAuthDo(t *testing.T, req *http.Request, user database.User) *http.Response {
	SetReqAuthHeader(t, req, user)

	return HTTPDo(t, req)
}

// MakeReq makes an HTTP request and returns a response
func MakeReq(endpoint string, method, path, data string) *http.Request {
	u := fmt.Sprintf("%s%s", endpoint, path)

	req, err := http.NewRequest(method, u, strings.NewReader(data))
	if err != nil {
		panic(errors.Wrap(err, "constructing http request"))
	}
	if data != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	return req
}

// MustExec fails the test if the given database query has error
func MustExec(t *testing.T, db *gorm.DB, message string) {
	if err := db.Error; err != nil {
		t.Fatalf("%s: %s", message, err.Error())
	}
}

// MustUnmarshalJSON decodes the JSON from the given reader into the given
// value and fails the test on error
func MustUnmarshalJSON(t *testing.T, res *http.Response, v interface{}, message string) {
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		t.Fatalf("%s: %s", message, err.Error())
	}
}

// MockEmail is a mock email data
type MockEmail struct {
	TemplateType string
	From         string
	To           []string
	Data         interface{}
}

// MockEmailbackendImplementation is an email backend that records emails
// instead of sending them
type MockEmailbackendImplementation struct {
	mu     sync.RWMutex
	Emails []MockEmail
}

// Clear clears the recorded emails
func (b *MockEmailbackendImplementation) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Emails = []MockEmail{}
}

// SendEmail is an implementation of mailer.Backend.SendEmail
func (b *MockEmailbackendImplementation) SendEmail(templateType, from string, to []string, data interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Emails = append(b.Emails, MockEmail{
		TemplateType: templateType,
		From:         from,
		To:           to,
		Data:         data,
	})

	return nil
}

// Sent returns a copy of the recorded emails
func (b *MockEmailbackendImplementation) Sent() []MockEmail {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ret := make([]MockEmail, len(b.Emails))
	copy(ret, b.Emails)

	return ret
}
