package entity

import (
	"strings"
	"time"
)

type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypeVideo FileType = "video"
)

// FileTypeFromContentType classifies an upload from its declared content
// type: any video/* stream is a video, everything else is an image.
func FileTypeFromContentType(contentType string) FileType {
	if strings.HasPrefix(contentType, "video/") {
		return FileTypeVideo
	}
	return FileTypeImage
}

// Post is one user-submitted media item. All fields are immutable after
// creation; the only mutation is wholesale removal.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Caption   string    `json:"caption"`
	URL       string    `json:"url"`
	FileType  FileType  `json:"file_type"`
	FileName  string    `json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
}
