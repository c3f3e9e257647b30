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

// Category is a result of PresentCategory
type Category struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PresentCategory presents a category
func PresentCategory(category database.Category) Category {
	return Category{
		Name: category.Name,
		Slug: category.Slug,
	}
}

// PresentCategories presents categories
func PresentCategories(categories []database.Category) []Category {
	ret := []Category{}

	for _, category := range categories {
		ret = append(ret, PresentCategory(category))
	}

	return ret
}

// Genre is a result of PresentGenre
type Genre struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PresentGenre presents a genre
func PresentGenre(genre database.Genre) Genre {
	return Genre{
		Name: genre.Name,
		Slug: genre.Slug,
	}
}

// PresentGenres presents genres
func PresentGenres(genres []database.Genre) []Genre {
	ret := []Genre{}

	for _, genre := range genres {
		ret = append(ret, PresentGenre(genre))
	}

	return ret
}
