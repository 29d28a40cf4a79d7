// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// Engagement weights applied by EngagementScore. Comments and likes count
// for more than passive views.
const (
	commentWeight = 3.0
	likeWeight    = 2.0
	shareWeight   = 2.0
	viewWeight    = 0.1
)

// StatusActive is the only status the recommendation paths ask for.
const StatusActive = "active"

// ContentItem is a published blog post as seen by the recommendation
// subsystem. It is read-only here; the content store owns it.
type ContentItem struct {
	ID           string    `json:"content_id" yaml:"id"`
	Title        string    `json:"title" yaml:"title"`
	Summary      string    `json:"summary,omitempty" yaml:"summary"`
	Body         string    `json:"content,omitempty" yaml:"body"`
	Category     string    `json:"category" yaml:"category"`
	Tags         string    `json:"tags,omitempty" yaml:"tags"` // comma separated
	Status       string    `json:"status,omitempty" yaml:"status"`
	AuthorName   string    `json:"author_name,omitempty" yaml:"author"`
	Views        int       `json:"views" yaml:"views"`
	Likes        int       `json:"likes" yaml:"likes"`
	Shares       int       `json:"shares" yaml:"shares"`
	CommentCount int       `json:"comment_count" yaml:"comment_count"`
	PublishedAt  time.Time `json:"publication_date" yaml:"published_at"`
}

// EngagementScore folds the engagement counters into a single number.
func (c ContentItem) EngagementScore() float64 {
	return float64(c.CommentCount)*commentWeight +
		float64(c.Likes)*likeWeight +
		float64(c.Shares)*shareWeight +
		float64(c.Views)*viewWeight
}

// TagList splits the comma-separated tag string, dropping empty entries.
func (c ContentItem) TagList() []string {
	if strings.TrimSpace(c.Tags) == "" {
		return []string{}
	}
	parts := strings.Split(c.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
