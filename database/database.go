package database

import (
	"timesheet/models"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(dsn string) error {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Project{},
		&models.Task{},
		&models.Entry{},
	)
	if err != nil {
		return err
	}

	return seedDefaultManager()
}

func seedDefaultManager() error {
	var count int64
	DB.Model(&models.User{}).Where("username = ?", "manager").Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("manager"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	manager := models.User{
		Username:     "manager",
		FullName:     "Manager",
		PasswordHash: string(hashedPassword),
		Role:         models.RoleManager,
	}

	if result := DB.Create(&manager); result.Error != nil {
		return result.Error
	}

	log.Info("default manager user created (username: manager, password: manager)")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
