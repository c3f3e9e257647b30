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

// Package permissions evaluates role and ownership based authorization
// decisions. Roles form a closed, totally ordered set: user < moderator <
// admin. The superuser flag grants admin capability regardless of role.
//
// Object-level checks must run only after the target object has been
// loaded, so that a missing object surfaces as not-found rather than
// forbidden.
package permissions

import (
	"github.com/revuehub/revue/pkg/server/database"
)

// Level is the rank of a role in the hierarchy
type Level int

const (
	// LevelUser is the rank of the user role
	LevelUser Level = iota
	// LevelModerator is the rank of the moderator role
	LevelModerator
	// LevelAdmin is the rank of the admin role
	LevelAdmin
)

// RoleLevel maps a stored role string onto its rank. Unknown roles rank as
// a plain user.
func RoleLevel(role string) Level {
	switch role {
	case database.RoleAdmin:
		return LevelAdmin
	case database.RoleModerator:
		return LevelModerator
	default:
		return LevelUser
	}
}

// IsAdmin checks if the given user holds admin capability, either through
// the admin role or the superuser flag.
func IsAdmin(user *database.User) bool {
	if user == nil {
		return false
	}

	return RoleLevel(user.Role) >= LevelAdmin || user.Superuser
}

// CanWriteCatalog checks if the given user may mutate catalog entities
// (categories, genres, titles). Reads are open to everyone and are not
// evaluated here.
func CanWriteCatalog(user *database.User) bool {
	return IsAdmin(user)
}

// CanModifyContent checks if the given user may mutate a review or comment
// authored by authorID: the author themselves, a moderator, or an admin.
func CanModifyContent(user *database.User, authorID int) bool {
	if user == nil {
		return false
	}
	if user.ID == authorID {
		return true
	}

	return RoleLevel(user.Role) >= LevelModerator || user.Superuser
}

// CanManageUsers checks if the given user may access the user
// administration endpoints.
func CanManageUsers(user *database.User) bool {
	return IsAdmin(user)
}
