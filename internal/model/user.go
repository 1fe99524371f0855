package model

type UserRole string

const (
	Admin   UserRole = "admin"
	Teacher UserRole = "teacher"
	Student UserRole = "student"
)

type User struct {
	Base
	Email    string   `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string   `gorm:"size:255;not null" json:"-"`
	Name     string   `gorm:"size:255;not null" json:"name"`
	Role     UserRole `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
}

func (User) TableName() string {
	return "users"
}
