package models

import "unbelong/pkg/imageurl"

// Category is the kind of work; the API calls the field "type".
type Category string

const (
	CategoryManga        Category = "manga"
	CategoryIllustration Category = "illustration"
)

var Categories = []Category{CategoryManga, CategoryIllustration}

func (c Category) Valid() bool {
	return c == CategoryManga || c == CategoryIllustration
}

type WorkStatus string

const (
	WorkOngoing   WorkStatus = "ongoing"
	WorkCompleted WorkStatus = "completed"
	WorkHiatus    WorkStatus = "hiatus"
)

// Work groups illustrations, e.g. a manga series or an illustration set.
type Work struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Slug         string        `json:"slug"`
	Description  *string       `json:"description"`
	Type         Category      `json:"type"`
	Status       WorkStatus    `json:"status"`
	CoverImageID *imageurl.Ref `json:"cover_image_id"`
	CreatedAt    int64         `json:"created_at"`
	UpdatedAt    int64         `json:"updated_at"`
}

// IndexWorks maps work id to work. Later duplicates win.
func IndexWorks(works []Work) map[string]Work {
	m := make(map[string]Work, len(works))
	for _, w := range works {
		m[w.ID] = w
	}
	return m
}

func CountByCategory(works []Work) map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, w := range works {
		counts[w.Type]++
	}
	return counts
}
