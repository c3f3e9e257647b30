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
	"crypto/rand"
	"encoding/base64"
	"errors"
	"regexp"

	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/revuehub/revue/pkg/server/database"
	"github.com/revuehub/revue/pkg/server/helpers"
	"github.com/revuehub/revue/pkg/server/log"
)

// reservedUsername cannot be registered because it addresses the
// self-service endpoint.
const reservedUsername = "me"

const (
	maxUsernameLen = 150
	maxEmailLen    = 254
)

var (
	usernameRegexp = regexp.MustCompile(`^[a-zA-Z0-9.@+_-]+$`)
	emailRegexp    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

func validateUsername(username string) error {
	if username == "" {
		return ValidationError{Field: "username", Message: "required"}
	}
	if len(username) > maxUsernameLen {
		return ValidationError{Field: "username", Message: "too long"}
	}
	if !usernameRegexp.MatchString(username) {
		return ValidationError{Field: "username", Message: "contains invalid characters"}
	}
	if username == reservedUsername {
		return ValidationError{Field: "username", Message: "'me' is reserved"}
	}

	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return ValidationError{Field: "email", Message: "required"}
	}
	if len(email) > maxEmailLen {
		return ValidationError{Field: "email", Message: "too long"}
	}
	if !emailRegexp.MatchString(email) {
		return ValidationError{Field: "email", Message: "not a valid email address"}
	}

	return nil
}

// genCodeSalt generates the random per-user value that confirmation codes
// are derived from
func genCodeSalt() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", pkgErrors.Wrap(err, "reading random bytes")
	}

	return base64.URLEncoding.EncodeToString(b), nil
}

func newUser(username, email, role string) (database.User, error) {
	uuid, err := helpers.GenUUID()
	if err != nil {
		return database.User{}, err
	}
	salt, err := genCodeSalt()
	if err != nil {
		return database.User{}, err
	}

	return database.User{
		UUID:     uuid,
		Username: username,
		Email:    email,
		Role:     role,
		CodeSalt: salt,
	}, nil
}

// identityConflict determines which of the identity fields collided with an
// existing record. The write already failed on the store constraint; this
// only refines the error for the caller.
func (a *App) identityConflict(username, email string, excludeID int) error {
	var count int64
	err := a.DB.Model(&database.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error
	if err == nil && count > 0 {
		return ErrDuplicateUsername
	}

	return ErrDuplicateEmail
}

// RegisterUser looks up or creates a user by the given username/email pair.
// The pair must be jointly available: if another user holds either field,
// the returned error identifies which one collided. Uniqueness is enforced
// by the store constraints, not by a pre-check, so concurrent signups
// cannot race past it.
func (a *App) RegisterUser(username, email string) (database.User, error) {
	if err := validateUsername(username); err != nil {
		return database.User{}, err
	}
	if err := validateEmail(email); err != nil {
		return database.User{}, err
	}

	var user database.User
	err := a.DB.Where("username = ? AND email = ?", username, email).First(&user).Error
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return database.User{}, pkgErrors.Wrap(err, "finding user")
	}

	user, err = newUser(username, email, database.RoleUser)
	if err != nil {
		return database.User{}, err
	}

	if err := a.DB.Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return database.User{}, a.identityConflict(username, email, 0)
		}

		return database.User{}, pkgErrors.Wrap(err, "creating user")
	}

	return user, nil
}

// UserParams are the updatable fields of a user. Nil fields are left
// untouched.
type UserParams struct {
	Username  *string
	Email     *string
	Role      *string
	Bio       *string
	FirstName *string
	LastName  *string
}

// CreateUser creates a user with the given role. It is used by the user
// administration endpoints and the bootstrap CLI, not by signup.
func (a *App) CreateUser(username, email, role string, superuser bool) (database.User, error) {
	if err := validateUsername(username); err != nil {
		return database.User{}, err
	}
	if err := validateEmail(email); err != nil {
		return database.User{}, err
	}
	if role == "" {
		role = database.RoleUser
	}
	if !database.ValidRole(role) {
		return database.User{}, ValidationError{Field: "role", Message: "unknown role"}
	}

	user, err := newUser(username, email, role)
	if err != nil {
		return database.User{}, err
	}
	user.Superuser = superuser

	if err := a.DB.Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return database.User{}, a.identityConflict(username, email, 0)
		}

		return database.User{}, pkgErrors.Wrap(err, "creating user")
	}

	go func() {
		if err := a.SendWelcomeEmail(user); err != nil {
			log.ErrorWrap(err, "sending welcome email")
		}
	}()

	return user, nil
}

// UpdateUser applies the given params to the user. Callers decide which
// fields may change; the self-service path never passes a role.
func (a *App) UpdateUser(user *database.User, p UserParams) error {
	if p.Username != nil {
		if err := validateUsername(*p.Username); err != nil {
			return err
		}
		user.Username = *p.Username
	}
	if p.Email != nil {
		if err := validateEmail(*p.Email); err != nil {
			return err
		}
		user.Email = *p.Email
	}
	if p.Role != nil {
		if !database.ValidRole(*p.Role) {
			return ValidationError{Field: "role", Message: "unknown role"}
		}
		user.Role = *p.Role
	}
	if p.Bio != nil {
		user.Bio = *p.Bio
	}
	if p.FirstName != nil {
		user.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		user.LastName = *p.LastName
	}

	if err := a.DB.Save(user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return a.identityConflict(user.Username, user.Email, user.ID)
		}

		return pkgErrors.Wrap(err, "updating user")
	}

	return nil
}

// GetUserByUsername finds a user with the given username
func (a *App) GetUserByUsername(username string) (database.User, error) {
	var user database.User
	err := a.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, ErrNotFound
	} else if err != nil {
		return user, pkgErrors.Wrap(err, "finding user")
	}

	return user, nil
}

// GetUserByUUID finds a user with the given uuid
func (a *App) GetUserByUUID(uuid string) (database.User, error) {
	var user database.User
	err := a.DB.Where("uuid = ?", uuid).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, ErrNotFound
	} else if err != nil {
		return user, pkgErrors.Wrap(err, "finding user")
	}

	return user, nil
}

// ListUsers returns all users ordered by username
func (a *App) ListUsers() ([]database.User, error) {
	var users []database.User
	if err := a.DB.Order("username ASC").Find(&users).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "listing users")
	}

	return users, nil
}

// DeleteUser removes the user along with the reviews and comments they
// authored
func (a *App) DeleteUser(user database.User) error {
	tx := a.DB.Begin()

	if err := tx.
		Where("author_id = ? OR review_id IN (?)",
			user.ID,
			tx.Model(&database.Review{}).Select("id").Where("author_id = ?", user.ID),
		).
		Delete(&database.Comment{}).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting comments")
	}
	if err := tx.Where("author_id = ?", user.ID).Delete(&database.Review{}).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting reviews")
	}
	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting user")
	}

	tx.Commit()

	return nil
}
