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
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is an error for a referenced record that does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidCode is an error for a confirmation code that does not match
	// the derivation from the user's current state
	ErrInvalidCode = errors.New("invalid confirmation code")

	// ErrDuplicateUsername is an error for a username that is already taken
	ErrDuplicateUsername = errors.New("a user with that username already exists")
	// ErrDuplicateEmail is an error for an email that is already taken
	ErrDuplicateEmail = errors.New("a user with that email already exists")
	// ErrDuplicateCategory is an error for a category name or slug that is already taken
	ErrDuplicateCategory = errors.New("a category with that name or slug already exists")
	// ErrDuplicateGenre is an error for a genre name or slug that is already taken
	ErrDuplicateGenre = errors.New("a genre with that name or slug already exists")
	// ErrDuplicateTitle is an error for a (name, year, category) triple that is already taken
	ErrDuplicateTitle = errors.New("a title with that name, year and category already exists")
	// ErrDuplicateReview is an error for a second review by the same author on the same title
	ErrDuplicateReview = errors.New("you have already reviewed this title")
)

// ValidationError is an error for a malformed or out-of-range field. It
// carries the field name so that the caller gets field-level detail.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError checks if the cause of the given error is a ValidationError
func IsValidationError(err error) bool {
	_, ok := errors.Cause(err).(ValidationError)
	return ok
}

// IsConflict checks if the given error is one of the duplicate record errors
func IsConflict(err error) bool {
	cause := errors.Cause(err)

	return cause == ErrDuplicateUsername ||
		cause == ErrDuplicateEmail ||
		cause == ErrDuplicateCategory ||
		cause == ErrDuplicateGenre ||
		cause == ErrDuplicateTitle ||
		cause == ErrDuplicateReview
}
