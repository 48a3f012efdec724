package database

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/configs"
	recentModel "prisonsphere_backend/internals/features/home/recent_activities/model"
	inmateModel "prisonsphere_backend/internals/features/inmates/inmates/model"
	paroleModel "prisonsphere_backend/internals/features/inmates/paroles/model"
	visitorModel "prisonsphere_backend/internals/features/inmates/visitors/model"
	activityModel "prisonsphere_backend/internals/features/programs/activity_logs/model"
	behaviorModel "prisonsphere_backend/internals/features/programs/behavior_logs/model"
	programModel "prisonsphere_backend/internals/features/programs/work_programs/model"
	reportModel "prisonsphere_backend/internals/features/reports/reports/model"
	authModel "prisonsphere_backend/internals/features/users/auth/model"
	userModel "prisonsphere_backend/internals/features/users/user/model"
)

var DB *gorm.DB

// Models lists every table owned by the application, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&inmateModel.InmateModel{},
		&inmateModel.InmateSequenceModel{},
		&visitorModel.VisitorModel{},
		&paroleModel.ParoleModel{},
		&programModel.WorkProgramModel{},
		&programModel.WorkProgramEnrollmentModel{},
		&behaviorModel.BehaviorLogModel{},
		&activityModel.ActivityLogModel{},
		&recentModel.RecentActivityLogModel{},
		&reportModel.ReportModel{},
	}
}

func ConnectDB() {
	zap.L().Info("connecting to PostgreSQL")

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=prisonsphere&options=-c statement_timeout=5000",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			configs.GetEnv("DB_HOST", "localhost"),
			configs.GetEnv("DB_PORT", "5432"),
			os.Getenv("DB_NAME"),
			configs.GetEnv("DB_SSLMODE", "disable"),
		)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         configs.NewGormLogger(zap.L()),
		TranslateError: true,
	})
	if err != nil {
		zap.L().Fatal("database connection failed", zap.Error(err))
	}
	DB = db
	zap.L().Info("database connected")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		zap.L().Warn("pool tune failed", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(DB); err != nil {
			zap.L().Warn("warm-up ping failed", zap.Error(err))
		}
	}()
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
