// Package domain contains the core business entities and domain logic for the BookHaven catalog.
package domain

import "time"

// Book represents a catalog entry.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description,omitempty"`
	Genre         Genre     `json:"genre"`
	PublishedYear *int      `json:"published_year,omitempty"`
	CoverImage    string    `json:"cover_image,omitempty"`
	OwnerID       string    `json:"owner_id"` // immutable, set at creation
	CreatedAt     time.Time `json:"created_at"`
}

// IsOwnedBy reports whether userID is the book's owner.
// Ownership is the authorization rule for every book mutation.
func (b *Book) IsOwnedBy(userID string) bool {
	return userID != "" && b.OwnerID == userID
}

// HasYear reports whether the book carries a published year.
// Books without a year sort after all books with one in year orderings.
func (b *Book) HasYear() bool {
	return b.PublishedYear != nil
}

// Year returns the published year, or 0 when absent.
func (b *Book) Year() int {
	if b.PublishedYear == nil {
		return 0
	}
	return *b.PublishedYear
}
