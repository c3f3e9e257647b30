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
	"time"

	"github.com/revuehub/revue/pkg/server/database"
)

// Review is a result of PresentReview. The author is presented by
// username.
type Review struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	Author    string    `json:"author"`
	TitleID   int       `json:"title_id"`
	CreatedAt time.Time `json:"pub_date"`
}

// PresentReview presents a review
func PresentReview(review database.Review) Review {
	return Review{
		ID:        review.ID,
		Text:      review.Text,
		Score:     review.Score,
		Author:    review.Author.Username,
		TitleID:   review.TitleID,
		CreatedAt: FormatTS(review.CreatedAt),
	}
}

// PresentReviews presents reviews
func PresentReviews(reviews []database.Review) []Review {
	ret := []Review{}

	for _, review := range reviews {
		ret = append(ret, PresentReview(review))
	}

	return ret
}

// Comment is a result of PresentComment
type Comment struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	ReviewID  int       `json:"review_id"`
	CreatedAt time.Time `json:"pub_date"`
}

// PresentComment presents a comment
func PresentComment(comment database.Comment) Comment {
	return Comment{
		ID:        comment.ID,
		Text:      comment.Text,
		Author:    comment.Author.Username,
		ReviewID:  comment.ReviewID,
		CreatedAt: FormatTS(comment.CreatedAt),
	}
}

// PresentComments presents comments
func PresentComments(comments []database.Comment) []Comment {
	ret := []Comment{}

	for _, comment := range comments {
		ret = append(ret, PresentComment(comment))
	}

	return ret
}
