package domain

import "time"

type Publication struct {
	ID              uint       `json:"id"`
	Title           string     `json:"title"`
	Abstract        string     `json:"abstract"`
	Keywords        []string   `json:"keywords"`
	PostedBy        uint       `json:"-"`
	Poster          User       `json:"-"`
	PostedAt        time.Time  `json:"posted_at"`
	TaggedMembers   []User     `json:"-"`
	TaggedExternals []External `json:"tagged_externals"`
	AttachedFiles   []UserFile `json:"attached_files"`
}

// External is an outside contact that publications can tag.
type External struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	CV         string    `json:"cv"`
	ProfilePic string    `json:"profile_pic"`
	CreatedAt  time.Time `json:"created_at"`
}

type UserFile struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	File       string    `json:"file"`
	UploadedBy uint      `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
	FileType   string    `json:"file_type"`
	Size       int64     `json:"size"`
}
