package model

// Quiz is 1:1 with its lesson, enforced by the unique index on lesson_id.
type Quiz struct {
	Base
	LessonID  string `gorm:"uniqueIndex;type:varchar(20);not null" json:"lessonId"`
	Title     string `gorm:"size:255;not null" json:"title"`
	Questions string `gorm:"type:json" json:"questions"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
