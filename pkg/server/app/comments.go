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

	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/revuehub/revue/pkg/server/database"
)

// CreateComment creates a comment by the author on the review. The review
// is always resolved from the request path and the author is always the
// requester. There is no bound on comments per review.
func (a *App) CreateComment(review database.Review, author database.User, text string) (database.Comment, error) {
	if text == "" {
		return database.Comment{}, ValidationError{Field: "text", Message: "required"}
	}

	comment := database.Comment{
		Text:     text,
		ReviewID: review.ID,
		AuthorID: author.ID,
	}
	if err := a.DB.Create(&comment).Error; err != nil {
		return database.Comment{}, pkgErrors.Wrap(err, "creating comment")
	}
	comment.Author = author

	return comment, nil
}

// UpdateComment applies the given text to the comment
func (a *App) UpdateComment(comment *database.Comment, text *string) error {
	if text != nil {
		if *text == "" {
			return ValidationError{Field: "text", Message: "required"}
		}
		comment.Text = *text
	}

	if err := a.DB.Save(comment).Error; err != nil {
		return pkgErrors.Wrap(err, "updating comment")
	}

	return nil
}

// GetComment finds a comment on the given review
func (a *App) GetComment(reviewID, commentID int) (database.Comment, error) {
	var comment database.Comment
	err := a.DB.Preload("Author").
		Where("id = ? AND review_id = ?", commentID, reviewID).
		First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return comment, ErrNotFound
	} else if err != nil {
		return comment, pkgErrors.Wrap(err, "finding comment")
	}

	return comment, nil
}

// ListComments returns the comments on the given review, newest first
func (a *App) ListComments(reviewID int) ([]database.Comment, error) {
	var comments []database.Comment
	err := a.DB.Preload("Author").
		Where("review_id = ?", reviewID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, pkgErrors.Wrap(err, "listing comments")
	}

	return comments, nil
}

// DeleteComment removes the comment
func (a *App) DeleteComment(comment database.Comment) error {
	if err := a.DB.Delete(&comment).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting comment")
	}

	return nil
}
