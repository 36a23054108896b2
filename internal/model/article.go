package model

import (
	"net/url"
	"strings"
	"time"
)

// Article is the normalized representation of one entertainment news article,
// created once per intake event and immutable afterwards.
type Article struct {
	Title       string     `json:"title"`
	Source      string     `json:"source"`
	URL         string     `json:"url"`
	Content     string     `json:"content"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CapturedAt  *time.Time `json:"captured_at,omitempty"`
}

// Host returns the lowercased URL host, or "" when the URL does not parse.
func (a Article) Host() string {
	u, err := url.Parse(a.URL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

// PublishedDate returns the article's civil publish date, or the zero Date
// when the publish timestamp is unknown.
func (a Article) PublishedDate() Date {
	if a.PublishedAt == nil {
		return Date{}
	}
	return DateOf(*a.PublishedAt)
}

// Classification is the classifier collaborator's verdict for one run.
// Confidence is optional; absence means "usable", not "unknown".
type Classification struct {
	CategoryPath string   `json:"category_path"`
	Confidence   *float64 `json:"confidence,omitempty"`
}

// MatchStrength records how confidently the article was tied to its company.
type MatchStrength string

const (
	MatchStrong MatchStrength = "strong" // title, lead, or URL-host keyword hit
	MatchWeak   MatchStrength = "weak"   // body-only keyword hit
	MatchNone   MatchStrength = "none"   // no keyword hit; company is Unknown
)
