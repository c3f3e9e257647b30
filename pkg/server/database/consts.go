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

package database

const (
	// RoleUser is the default role for a registered account
	RoleUser = "user"
	// RoleModerator is the role for an account that can manage any review or comment
	RoleModerator = "moderator"
	// RoleAdmin is the role for an account with full access
	RoleAdmin = "admin"
)

// ValidRole checks if the given string names a known role
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleModerator || role == RoleAdmin
}
