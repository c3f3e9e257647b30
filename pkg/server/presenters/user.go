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

package presenters

import (
	"github.com/revuehub/revue/pkg/server/database"
)

// User is a result of PresentUser
type User struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Bio       string `json:"bio"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// PresentUser presents a user
func PresentUser(user database.User) User {
	return User{
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		Bio:       user.Bio,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

// PresentUsers presents users
func PresentUsers(users []database.User) []User {
	ret := []User{}

	for _, user := range users {
		ret = append(ret, PresentUser(user))
	}

	return ret
}
