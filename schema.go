package gallery

import "time"

// ImageRecord is one row of the images table. A record exists only after both
// the blob write and the metadata insert have succeeded; a blob without a row
// is garbage, never a visible record.
type ImageRecord struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	URL        string    `json:"url" gorm:"not null"`
	Name       string    `json:"name" gorm:"not null"`
	Size       int64     `json:"size" gorm:"not null"`
	Username   *string   `json:"username"`
	Email      *string   `json:"email"`
	UploadedAt time.Time `json:"uploadedAt" gorm:"column:uploaded_at;autoCreateTime"`
}

func (r ImageRecord) TableName() string {
	return "images"
}
