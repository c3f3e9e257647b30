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

import (
	"time"
)

// Model is the base model definition
type Model struct {
	ID        int       `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// User is a model for a registered account. CodeSalt is the per-user
// random value that confirmation codes are derived from; rotating it
// invalidates every outstanding code for the user.
type User struct {
	Model
	UUID      string `json:"uuid" gorm:"uniqueIndex;type:text"`
	Username  string `json:"username" gorm:"uniqueIndex;type:text"`
	Email     string `json:"email" gorm:"uniqueIndex;type:text"`
	Role      string `json:"role" gorm:"type:text;default:user"`
	Superuser bool   `json:"-" gorm:"default:false"`
	Bio       string `json:"bio"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	CodeSalt  string `json:"-" gorm:"type:text"`
}

// Category is a model for a title category
type Category struct {
	Model
	Name string `json:"name" gorm:"uniqueIndex;type:text"`
	Slug string `json:"slug" gorm:"uniqueIndex;type:text"`
}

// Genre is a model for a title genre
type Genre struct {
	Model
	Name string `json:"name" gorm:"uniqueIndex;type:text"`
	Slug string `json:"slug" gorm:"uniqueIndex;type:text"`
}

// Title is a model for a reviewable work. CategoryID is nullable so that
// deleting a category detaches its titles instead of cascading. The
// (name, year, category_id) triple is unique at the store level.
type Title struct {
	Model
	Name        string    `json:"name" gorm:"index;uniqueIndex:idx_titles_name_year_category;type:text"`
	Year        int       `json:"year" gorm:"index;uniqueIndex:idx_titles_name_year_category"`
	Description string    `json:"description"`
	CategoryID  *int      `json:"-" gorm:"uniqueIndex:idx_titles_name_year_category"`
	Category    *Category `json:"category"`
	Genres      []Genre   `json:"genres" gorm:"many2many:title_genres"`
}

// Review is a model for a review on a title. A user can review a given
// title at most once, enforced by the unique (title_id, author_id) index.
type Review struct {
	Model
	Text     string `json:"text"`
	Score    int    `json:"score"`
	TitleID  int    `json:"title_id" gorm:"index;uniqueIndex:idx_reviews_title_author"`
	AuthorID int    `json:"-" gorm:"uniqueIndex:idx_reviews_title_author"`
	Author   User   `json:"author" gorm:"constraint:OnDelete:CASCADE"`
}

// Comment is a model for a comment on a review
type Comment struct {
	Model
	Text     string `json:"text"`
	ReviewID int    `json:"review_id" gorm:"index"`
	AuthorID int    `json:"-" gorm:"index"`
	Author   User   `json:"author" gorm:"constraint:OnDelete:CASCADE"`
}
