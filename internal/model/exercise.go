package model

type Exercise struct {
	Base
	LessonID     string `gorm:"index:idx_exercises_lesson_order;type:varchar(20);not null" json:"lessonId"`
	Title        string `gorm:"size:255;not null" json:"title"`
	Instructions string `gorm:"type:text" json:"instructions"`
	StarterCode  string `gorm:"type:text" json:"starterCode"`
	Solution     string `gorm:"type:text" json:"solution"`
	OrderIndex   int    `gorm:"index:idx_exercises_lesson_order;not null;default:0" json:"orderIndex"`
}

func (Exercise) TableName() string {
	return "exercises"
}
