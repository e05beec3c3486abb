package models

import "time"

// Resume stores an uploaded resume and its extracted text.
type Resume struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Filename   string    `gorm:"size:255;not null" json:"filename"`
	RawText    string    `gorm:"type:text" json:"raw_text"`
	FileURL    string    `gorm:"size:512" json:"file_url"`
	UserID     *uint     `json:"user_id"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

// JobDescription stores the posting an interview is practiced against.
type JobDescription struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:255" json:"title"`
	JDText     string    `gorm:"type:text;not null" json:"jd_text"`
	UserID     *uint     `json:"user_id"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
