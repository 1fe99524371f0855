package model

import "time"

// ClassAssignment links a class to a course. The content subsystem only reads
// these rows: a course with assignments cannot be deleted.
type ClassAssignment struct {
	Base
	ClassID    string    `gorm:"index;type:varchar(20);not null" json:"classId"`
	CourseID   string    `gorm:"index;type:varchar(20);not null" json:"courseId"`
	AssignedAt time.Time `json:"assignedAt"`
}

func (ClassAssignment) TableName() string {
	return "class_assignments"
}
