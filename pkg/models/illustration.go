package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"unbelong/pkg/imageurl"
)

type IllustrationStatus string

const (
	StatusDraft     IllustrationStatus = "draft"
	StatusPublished IllustrationStatus = "published"
	StatusArchived  IllustrationStatus = "archived"
)

// IllustrationStatuses lists every lifecycle status in display order.
var IllustrationStatuses = []IllustrationStatus{StatusPublished, StatusDraft, StatusArchived}

func (s IllustrationStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Illustration is a single artwork record as served by the gallery API.
// Timestamps are unix seconds.
type Illustration struct {
	ID          string             `json:"id"`
	WorkID      string             `json:"work_id"`
	Title       string             `json:"title"`
	Slug        string             `json:"slug"`
	Description *string            `json:"description"`
	ImageID     imageurl.Ref       `json:"image_id"`
	OGImageID   *imageurl.Ref      `json:"og_image_id"`
	Status      IllustrationStatus `json:"status"`
	Tags        string             `json:"tags"`
	ViewCount   int64              `json:"view_count"`
	CreatedAt   int64              `json:"created_at"`
	UpdatedAt   int64              `json:"updated_at"`
	PublishedAt *int64             `json:"published_at"`
}

func (i Illustration) IsPublished() bool { return i.Status == StatusPublished }

// DescriptionText returns the description or "" when it is null.
func (i Illustration) DescriptionText() string {
	if i.Description == nil {
		return ""
	}
	return *i.Description
}

func (i Illustration) Created() time.Time { return time.Unix(i.CreatedAt, 0) }

// ParsedTags decodes the serialized tag list, see ParseTags.
func (i Illustration) ParsedTags() ([]string, error) {
	return ParseTags(i.Tags)
}

// ErrMalformedTags is wrapped by ParseTags when the tags field is not a JSON
// list of strings.
var ErrMalformedTags = errors.New("malformed tags")

// ParseTags decodes a JSON-encoded string list. Empty input and JSON null
// mean no tags.
func ParseTags(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTags, err)
	}
	return tags, nil
}

// FilterByStatus keeps the illustrations with the given status, in order.
func FilterByStatus(items []Illustration, status IllustrationStatus) []Illustration {
	out := make([]Illustration, 0, len(items))
	for _, it := range items {
		if it.Status == status {
			out = append(out, it)
		}
	}
	return out
}

// PublishedOnly is the subset that may appear on public pages.
func PublishedOnly(items []Illustration) []Illustration {
	return FilterByStatus(items, StatusPublished)
}

func CountByStatus(items []Illustration) map[IllustrationStatus]int {
	counts := make(map[IllustrationStatus]int, len(IllustrationStatuses))
	for _, it := range items {
		counts[it.Status]++
	}
	return counts
}
