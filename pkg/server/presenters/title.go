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

// Title is a result of PresentTitle. Rating is the mean review score,
// computed at read time; it is null, never zero, when the title has no
// reviews.
type Title struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Year        int       `json:"year"`
	Rating      *float64  `json:"rating"`
	Description string    `json:"description"`
	Category    *Category `json:"category"`
	Genres      []Genre   `json:"genres"`
}

// PresentTitle presents a title with its derived rating
func PresentTitle(title database.Title, rating *float64) Title {
	ret := Title{
		ID:          title.ID,
		Name:        title.Name,
		Year:        title.Year,
		Rating:      rating,
		Description: title.Description,
		Genres:      PresentGenres(title.Genres),
	}

	if title.Category != nil {
		category := PresentCategory(*title.Category)
		ret.Category = &category
	}

	return ret
}

// PresentTitles presents titles using the given per-title ratings. Titles
// absent from the ratings map are presented with a null rating.
func PresentTitles(titles []database.Title, ratings map[int]float64) []Title {
	ret := []Title{}

	for _, title := range titles {
		var rating *float64
		if r, ok := ratings[title.ID]; ok {
			rating = &r
		}

		ret = append(ret, PresentTitle(title, rating))
	}

	return ret
}
