package db

import "time"

type blobModel struct {
	Key         string `gorm:"primaryKey;size:512"`
	Body        []byte `gorm:"not null"`
	ContentType string `gorm:"not null"`
	Size        int    `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (blobModel) TableName() string {
	return "blobs"
}
