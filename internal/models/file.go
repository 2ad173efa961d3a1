package models

import (
	"time"
)

type FileRecord struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Filename      string    `json:"filename" gorm:"not null"` // display name only, never a path
	UploadDate    time.Time `json:"uploadDate" gorm:"autoCreateTime"`
	UploadedBy    uint      `json:"uploadedBy" gorm:"index;not null"`
	DownloadToken string    `json:"downloadToken" gorm:"uniqueIndex;not null"`
}

// BlobKey is the storage key for the record's content. The token prefix
// anchors uniqueness so client filenames cannot collide.
func (f *FileRecord) BlobKey() string {
	return f.DownloadToken + "_" + f.Filename
}
