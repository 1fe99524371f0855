package model

type Section struct {
	Base
	CourseID    string `gorm:"index:idx_sections_course_order;type:varchar(20);not null" json:"courseId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	// Zero-based position among the course's sections, contiguous per course.
	OrderIndex int `gorm:"index:idx_sections_course_order;not null;default:0" json:"orderIndex"`
}

func (Section) TableName() string {
	return "sections"
}
