package database

import (
	"errors"
	"fmt"

	"prepos_backend/internal/config"
	"prepos_backend/internal/model"
	"prepos_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/clause"
)

// Models 需要迁移的全部表
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Exam{},
		&model.Subject{},
		&model.Topic{},
		&model.StudySession{},
		&model.DsaTopic{},
		&model.MockTestAttempt{},
		&model.MockInterview{},
		&model.CompanyApplication{},
		&model.Post{},
		&model.InterviewSession{},
		&model.InterviewQuestion{},
		&model.Motivation{},
	}
}

// Open 按驱动建立连接，不做迁移
func Open(cfg *config.DatabaseConfig, logLevel gormlogger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	case "mysql", "":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=UTC",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
}

// InitDB migrate 为 false 时跳过建表和默认数据（release 模式未指定 -migrate）
func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	db, err := Open(cfg, gormlogger.Warn)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Database connection established", zap.String("driver", cfg.Driver))

	if !migrate {
		logger.Log.Info("Database migration skipped")
		return db, nil
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	logger.Log.Info("Database migration completed")

	if err := SeedDefaults(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// SeedDefaults 空表时写入激励短句和默认考试目录，重复执行无副作用
func SeedDefaults(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Motivation{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		defaultMotivations := []string{
			"Small sessions, every day. Consistency beats intensity.",
			"Every solved problem is a pattern you will recognise in the interview.",
			"Your streak is proof that you show up. Keep it alive today.",
			"Revise what is weak, not what is comfortable.",
			"One focused hour now is worth three distracted ones tonight.",
		}
		for _, content := range defaultMotivations {
			if err := db.Create(&model.Motivation{Content: content, IsEnabled: true}).Error; err != nil {
				return err
			}
		}
	}

	for _, exam := range DefaultCatalog() {
		if err := UpsertExam(db, exam); err != nil {
			return err
		}
	}
	return nil
}

// UpsertExam 按名称写入考试目录；同名考试已存在时跳过
func UpsertExam(db *gorm.DB, exam model.Exam) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var existing model.Exam
		err := tx.Where("name = ?", exam.Name).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&exam).Error; err != nil {
			return err
		}
		for i := range exam.Subjects {
			subject := exam.Subjects[i]
			subject.ExamID = exam.ID
			if err := tx.Omit(clause.Associations).Create(&subject).Error; err != nil {
				return err
			}
			for j := range subject.Topics {
				topic := subject.Topics[j]
				topic.SubjectID = subject.ID
				if err := tx.Create(&topic).Error; err != nil {
					return err
				}
			}
		}
		logger.Log.Info("Seeded exam catalog", zap.String("exam", exam.Name), zap.Int("subjects", len(exam.Subjects)))
		return nil
	})
}
