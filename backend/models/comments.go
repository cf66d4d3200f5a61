package models

import "time"

type ChapterComment struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CourseID  string    `gorm:"index" json:"courseId"`
	ChapterID string    `gorm:"index" json:"chapterId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
