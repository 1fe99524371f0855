package model

import "time"

type Lesson struct {
	Base
	SectionID string `gorm:"index:idx_lessons_section_order;type:varchar(20);not null" json:"sectionId"`
	Title     string `gorm:"size:255;not null" json:"title"`
	Content   string `gorm:"type:longtext" json:"content"`
	// Zero-based position among the section's lessons, contiguous per section.
	OrderIndex int `gorm:"index:idx_lessons_section_order;not null;default:0" json:"orderIndex"`

	VideoURL      string  `gorm:"size:512" json:"videoUrl,omitempty"`
	VideoDuration float64 `gorm:"default:0" json:"videoDuration,omitempty"`
	ThumbnailURL  string  `gorm:"size:512" json:"thumbnailUrl,omitempty"`

	// Edit lock: both fields set while a user holds the lock, both NULL otherwise.
	LockedBy *string    `gorm:"type:varchar(20);index" json:"lockedBy,omitempty"`
	LockedAt *time.Time `json:"lockedAt,omitempty"`

	Exercises []Exercise `gorm:"foreignKey:LessonID" json:"exercises,omitempty"`
	Quiz      *Quiz      `gorm:"foreignKey:LessonID" json:"quiz,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}
