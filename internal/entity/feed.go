package entity

import "time"

// FeedEntry is a post annotated for one viewer: whether the viewer owns it
// and the owner's email for display.
type FeedEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Caption   string    `json:"caption"`
	URL       string    `json:"url"`
	FileType  FileType  `json:"file_type"`
	FileName  string    `json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
	IsOwner   bool      `json:"is_owner"`
	Email     string    `json:"email"`
}
