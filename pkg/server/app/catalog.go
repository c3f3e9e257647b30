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
	"errors"
	"regexp"

	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/revuehub/revue/pkg/server/database"
)

const (
	maxCatalogNameLen = 256
	maxSlugLen        = 50
)

var slugRegexp = regexp.MustCompile(`^[a-z0-9_-]+$`)

func validateCatalogName(name string) error {
	if name == "" {
		return ValidationError{Field: "name", Message: "required"}
	}
	if len(name) > maxCatalogNameLen {
		return ValidationError{Field: "name", Message: "too long"}
	}

	return nil
}

func validateSlug(slug string) error {
	if slug == "" {
		return ValidationError{Field: "slug", Message: "required"}
	}
	if len(slug) > maxSlugLen {
		return ValidationError{Field: "slug", Message: "too long"}
	}
	if !slugRegexp.MatchString(slug) {
		return ValidationError{Field: "slug", Message: "must contain only lowercase letters, digits, '-' and '_'"}
	}

	return nil
}

// CreateCategory creates a category. Name and slug uniqueness is enforced
// by the store constraints.
func (a *App) CreateCategory(name, slug string) (database.Category, error) {
	if err := validateCatalogName(name); err != nil {
		return database.Category{}, err
	}
	if err := validateSlug(slug); err != nil {
		return database.Category{}, err
	}

	category := database.Category{Name: name, Slug: slug}
	if err := a.DB.Create(&category).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return database.Category{}, ErrDuplicateCategory
		}

		return database.Category{}, pkgErrors.Wrap(err, "creating category")
	}

	return category, nil
}

// ListCategories returns categories ordered by name, optionally narrowed to
// those whose name contains the search term
func (a *App) ListCategories(search string) ([]database.Category, error) {
	conn := a.DB.Order("name ASC")
	if search != "" {
		conn = conn.Where("name LIKE ?", "%"+search+"%")
	}

	var categories []database.Category
	if err := conn.Find(&categories).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "listing categories")
	}

	return categories, nil
}

// GetCategoryBySlug finds a category with the given slug
func (a *App) GetCategoryBySlug(slug string) (database.Category, error) {
	var category database.Category
	err := a.DB.Where("slug = ?", slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return category, ErrNotFound
	} else if err != nil {
		return category, pkgErrors.Wrap(err, "finding category")
	}

	return category, nil
}

// DeleteCategory removes the category. Titles referencing it are detached,
// not deleted: their category becomes null.
func (a *App) DeleteCategory(category database.Category) error {
	tx := a.DB.Begin()

	if err := tx.Model(&database.Title{}).
		Where("category_id = ?", category.ID).
		Update("category_id", nil).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "detaching titles")
	}
	if err := tx.Delete(&category).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting category")
	}

	tx.Commit()

	return nil
}

// CreateGenre creates a genre
func (a *App) CreateGenre(name, slug string) (database.Genre, error) {
	if err := validateCatalogName(name); err != nil {
		return database.Genre{}, err
	}
	if err := validateSlug(slug); err != nil {
		return database.Genre{}, err
	}

	genre := database.Genre{Name: name, Slug: slug}
	if err := a.DB.Create(&genre).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return database.Genre{}, ErrDuplicateGenre
		}

		return database.Genre{}, pkgErrors.Wrap(err, "creating genre")
	}

	return genre, nil
}

// ListGenres returns genres ordered by name, optionally narrowed to those
// whose name contains the search term
func (a *App) ListGenres(search string) ([]database.Genre, error) {
	conn := a.DB.Order("name ASC")
	if search != "" {
		conn = conn.Where("name LIKE ?", "%"+search+"%")
	}

	var genres []database.Genre
	if err := conn.Find(&genres).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "listing genres")
	}

	return genres, nil
}

// GetGenreBySlug finds a genre with the given slug
func (a *App) GetGenreBySlug(slug string) (database.Genre, error) {
	var genre database.Genre
	err := a.DB.Where("slug = ?", slug).First(&genre).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return genre, ErrNotFound
	} else if err != nil {
		return genre, pkgErrors.Wrap(err, "finding genre")
	}

	return genre, nil
}

// DeleteGenre removes the genre and its associations with titles
func (a *App) DeleteGenre(genre database.Genre) error {
	tx := a.DB.Begin()

	if err := tx.Exec("DELETE FROM title_genres WHERE genre_id = ?", genre.ID).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "detaching titles")
	}
	if err := tx.Delete(&genre).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting genre")
	}

	tx.Commit()

	return nil
}
