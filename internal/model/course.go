package model

type CourseLanguage string

const (
	LanguageJavaScript CourseLanguage = "javascript"
	LanguagePython     CourseLanguage = "python"
)

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
)

type Course struct {
	Base
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Language    CourseLanguage `gorm:"type:varchar(20);not null;default:'javascript'" json:"language"`
	Status      CourseStatus   `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	CreatedBy   string         `gorm:"index;type:varchar(20);not null" json:"createdBy"`
}

func (Course) TableName() string {
	return "courses"
}
