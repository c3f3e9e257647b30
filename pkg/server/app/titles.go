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
	"fmt"

	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/revuehub/revue/pkg/server/database"
)

const maxTitleNameLen = 255

// TitleParams are the writable fields of a title. Nil fields are left
// untouched on update. Category and genres are addressed by slug.
type TitleParams struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   []string
}

// TitleFilters narrow down a title listing
type TitleFilters struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         int
}

func validateTitleName(name string) error {
	if name == "" {
		return ValidationError{Field: "name", Message: "required"}
	}
	if len(name) > maxTitleNameLen {
		return ValidationError{Field: "name", Message: "too long"}
	}

	return nil
}

// validateYear bounds the year by the current calendar year. The bound is
// evaluated against the clock at request time, so it moves forward each
// year.
func (a *App) validateYear(year int) error {
	if year == 0 {
		return ValidationError{Field: "year", Message: "required"}
	}
	if now := a.Clock.Now().Year(); year > now {
		return ValidationError{Field: "year", Message: fmt.Sprintf("must not be later than %d", now)}
	}

	return nil
}

func (a *App) resolveCategory(slug string) (database.Category, error) {
	category, err := a.GetCategoryBySlug(slug)
	if errors.Is(err, ErrNotFound) {
		return category, ValidationError{Field: "category", Message: fmt.Sprintf("unknown slug '%s'", slug)}
	}

	return category, err
}

func (a *App) resolveGenres(slugs []string) ([]database.Genre, error) {
	genres := []database.Genre{}

	for _, slug := range slugs {
		genre, err := a.GetGenreBySlug(slug)
		if errors.Is(err, ErrNotFound) {
			return nil, ValidationError{Field: "genre", Message: fmt.Sprintf("unknown slug '%s'", slug)}
		} else if err != nil {
			return nil, err
		}

		genres = append(genres, genre)
	}

	return genres, nil
}

// CreateTitle creates a title. The (name, year, category) uniqueness is
// enforced by the store constraint and surfaced as a conflict.
func (a *App) CreateTitle(p TitleParams) (database.Title, error) {
	if p.Name == nil {
		return database.Title{}, ValidationError{Field: "name", Message: "required"}
	}
	if err := validateTitleName(*p.Name); err != nil {
		return database.Title{}, err
	}
	if p.Year == nil {
		return database.Title{}, ValidationError{Field: "year", Message: "required"}
	}
	if err := a.validateYear(*p.Year); err != nil {
		return database.Title{}, err
	}

	title := database.Title{
		Name: *p.Name,
		Year: *p.Year,
	}
	if p.Description != nil {
		title.Description = *p.Description
	}
	if p.CategorySlug != nil && *p.CategorySlug != "" {
		category, err := a.resolveCategory(*p.CategorySlug)
		if err != nil {
			return database.Title{}, err
		}
		title.CategoryID = &category.ID
		title.Category = &category
	}

	genres, err := a.resolveGenres(p.GenreSlugs)
	if err != nil {
		return database.Title{}, err
	}
	title.Genres = genres

	if err := a.DB.Create(&title).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return database.Title{}, ErrDuplicateTitle
		}

		return database.Title{}, pkgErrors.Wrap(err, "creating title")
	}

	return title, nil
}

// UpdateTitle applies the given params to the title
func (a *App) UpdateTitle(title *database.Title, p TitleParams) error {
	if p.Name != nil {
		if err := validateTitleName(*p.Name); err != nil {
			return err
		}
		title.Name = *p.Name
	}
	if p.Year != nil {
		if err := a.validateYear(*p.Year); err != nil {
			return err
		}
		title.Year = *p.Year
	}
	if p.Description != nil {
		title.Description = *p.Description
	}
	if p.CategorySlug != nil {
		if *p.CategorySlug == "" {
			title.CategoryID = nil
			title.Category = nil
		} else {
			category, err := a.resolveCategory(*p.CategorySlug)
			if err != nil {
				return err
			}
			title.CategoryID = &category.ID
			title.Category = &category
		}
	}

	var genres []database.Genre
	if p.GenreSlugs != nil {
		resolved, err := a.resolveGenres(p.GenreSlugs)
		if err != nil {
			return err
		}
		genres = resolved
	}

	tx := a.DB.Begin()

	if err := tx.Omit(clause.Associations).Save(title).Error; err != nil {
		tx.Rollback()
		if database.IsUniqueViolation(err) {
			return ErrDuplicateTitle
		}

		return pkgErrors.Wrap(err, "updating title")
	}
	if p.GenreSlugs != nil {
		if err := tx.Model(title).Association("Genres").Replace(&genres); err != nil {
			tx.Rollback()
			return pkgErrors.Wrap(err, "replacing genres")
		}
		title.Genres = genres
	}

	tx.Commit()

	return nil
}

// GetTitle finds a title with the given id along with its category and
// genres
func (a *App) GetTitle(id int) (database.Title, error) {
	var title database.Title
	err := a.DB.Preload("Category").Preload("Genres").Where("id = ?", id).First(&title).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return title, ErrNotFound
	} else if err != nil {
		return title, pkgErrors.Wrap(err, "finding title")
	}

	return title, nil
}

// ListTitles returns titles matching the given filters, ordered by id
func (a *App) ListTitles(f TitleFilters) ([]database.Title, error) {
	conn := a.DB.Preload("Category").Preload("Genres").Order("titles.id ASC")

	if f.CategorySlug != "" {
		conn = conn.
			Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", f.CategorySlug)
	}
	if f.GenreSlug != "" {
		conn = conn.
			Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", f.GenreSlug)
	}
	if f.Name != "" {
		conn = conn.Where("titles.name LIKE ?", "%"+f.Name+"%")
	}
	if f.Year != 0 {
		conn = conn.Where("titles.year = ?", f.Year)
	}

	var titles []database.Title
	if err := conn.Find(&titles).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "listing titles")
	}

	return titles, nil
}

// DeleteTitle removes the title along with its reviews, their comments,
// and its genre associations
func (a *App) DeleteTitle(title database.Title) error {
	tx := a.DB.Begin()

	if err := tx.
		Where("review_id IN (?)", tx.Model(&database.Review{}).Select("id").Where("title_id = ?", title.ID)).
		Delete(&database.Comment{}).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting comments")
	}
	if err := tx.Where("title_id = ?", title.ID).Delete(&database.Review{}).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting reviews")
	}
	if err := tx.Exec("DELETE FROM title_genres WHERE title_id = ?", title.ID).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "detaching genres")
	}
	if err := tx.Delete(&title).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting title")
	}

	tx.Commit()

	return nil
}

type titleRating struct {
	TitleID int
	Rating  float64
}

// TitleRatings computes the mean review score for each of the given
// titles. The aggregation runs in the store on every read; it is never
// cached. Titles with no reviews are absent from the result.
func (a *App) TitleRatings(titleIDs []int) (map[int]float64, error) {
	ratings := map[int]float64{}
	if len(titleIDs) == 0 {
		return ratings, nil
	}

	var rows []titleRating
	err := a.DB.Model(&database.Review{}).
		Select("title_id, AVG(score) AS rating").
		Where("title_id IN ?", titleIDs).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgErrors.Wrap(err, "aggregating ratings")
	}

	for _, row := range rows {
		ratings[row.TitleID] = row.Rating
	}

	return ratings, nil
}

// TitleRating computes the mean review score of a single title. It returns
// nil, not zero, when the title has no reviews.
func (a *App) TitleRating(titleID int) (*float64, error) {
	ratings, err := a.TitleRatings([]int{titleID})
	if err != nil {
		return nil, err
	}

	if rating, ok := ratings[titleID]; ok {
		return &rating, nil
	}

	return nil, nil
}
