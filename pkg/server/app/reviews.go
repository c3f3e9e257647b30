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

	"github.com/revuehub/revue/pkg/server/database"
)

func (a *App) validateScore(score int) error {
	if score < a.Config.ScoreMin || score > a.Config.ScoreMax {
		return ValidationError{
			Field:   "score",
			Message: fmt.Sprintf("must be between %d and %d", a.Config.ScoreMin, a.Config.ScoreMax),
		}
	}

	return nil
}

// CreateReview creates a review by the author on the title. The title is
// always resolved from the request path and the author is always the
// requester; neither is client-suppliable. The one-review-per-user-per-title
// invariant is enforced by the store constraint, so a concurrent duplicate
// still surfaces as a conflict rather than a stray storage error.
func (a *App) CreateReview(title database.Title, author database.User, text string, score int) (database.Review, error) {
	if text == "" {
		return database.Review{}, ValidationError{Field: "text", Message: "required"}
	}
	if err := a.validateScore(score); err != nil {
		return database.Review{}, err
	}

	review := database.Review{
		Text:     text,
		Score:    score,
		TitleID:  title.ID,
		AuthorID: author.ID,
	}
	if err := a.DB.Create(&review).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return database.Review{}, ErrDuplicateReview
		}

		return database.Review{}, pkgErrors.Wrap(err, "creating review")
	}
	review.Author = author

	return review, nil
}

// UpdateReview applies the given text and score to the review. Nil fields
// are left untouched.
func (a *App) UpdateReview(review *database.Review, text *string, score *int) error {
	if text != nil {
		if *text == "" {
			return ValidationError{Field: "text", Message: "required"}
		}
		review.Text = *text
	}
	if score != nil {
		if err := a.validateScore(*score); err != nil {
			return err
		}
		review.Score = *score
	}

	if err := a.DB.Save(review).Error; err != nil {
		return pkgErrors.Wrap(err, "updating review")
	}

	return nil
}

// GetReview finds a review on the given title
func (a *App) GetReview(titleID, reviewID int) (database.Review, error) {
	var review database.Review
	err := a.DB.Preload("Author").
		Where("id = ? AND title_id = ?", reviewID, titleID).
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return review, ErrNotFound
	} else if err != nil {
		return review, pkgErrors.Wrap(err, "finding review")
	}

	return review, nil
}

// ListReviews returns the reviews on the given title, newest first
func (a *App) ListReviews(titleID int) ([]database.Review, error) {
	var reviews []database.Review
	err := a.DB.Preload("Author").
		Where("title_id = ?", titleID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, pkgErrors.Wrap(err, "listing reviews")
	}

	return reviews, nil
}

// DeleteReview removes the review along with its comments
func (a *App) DeleteReview(review database.Review) error {
	tx := a.DB.Begin()

	if err := tx.Where("review_id = ?", review.ID).Delete(&database.Comment{}).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting comments")
	}
	if err := tx.Delete(&review).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting review")
	}

	tx.Commit()

	return nil
}
