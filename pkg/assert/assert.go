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

// Package assert provides test assertion helpers
package assert

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Equal fails the test if the actual does not match the expected
func Equal(t *testing.T, actual, expected interface{}, message string) {
	t.Helper()

	if actual != expected {
		t.Errorf("%s. Actual: %+v. Expected: %+v.", message, actual, expected)
	}
}

// NotEqual fails the test if the actual matches the expected
func NotEqual(t *testing.T, actual, expected interface{}, message string) {
	t.Helper()

	if actual == expected {
		t.Errorf("%s. Got: %+v.", message, actual)
	}
}

// DeepEqual fails the test if the actual does not deeply equal the expected
func DeepEqual(t *testing.T, actual, expected interface{}, message string) {
	t.Helper()

	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("%s. (-expected +actual):\n%s", message, diff)
	}
}

// StatusCodeEquals fails the test if the response status code does not
// match the expected
func StatusCodeEquals(t *testing.T, res *http.Response, expected int, message string) {
	t.Helper()

	if res.StatusCode != expected {
		t.Errorf("status code mismatch (%s). Actual: %d. Expected: %d.", message, res.StatusCode, expected)
	}
}
