package migrations

import (
	"order_portal/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunMigrations migrates the schema and seeds the default super admin.
func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	log.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.Credential{},
		&models.User{},
		&models.Brand{},
		&models.Product{},
		&models.SKU{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return err
	}

	if err := createDefaultData(db, log); err != nil {
		log.Warn("Failed to create default data", zap.Error(err))
	}

	log.Info("Database migrations completed")
	return nil
}

// createDefaultData seeds a super admin so a fresh deployment can sign in and
// create everyone else through the privileged endpoint.
func createDefaultData(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", string(models.SuperAdmin)).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Super admin already exists")
		return nil
	}

	log.Info("Creating default super admin...")
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	return db.Transaction(func(tx *gorm.DB) error {
		cred := &models.Credential{
			ID:           id,
			Email:        "admin@example.com",
			PasswordHash: string(hash),
		}
		if err := tx.Create(cred).Error; err != nil {
			return err
		}
		admin := &models.User{
			ID:        id,
			Email:     cred.Email,
			Role:      string(models.SuperAdmin),
			OwnerName: "Administrator",
			IsActive:  true,
		}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}
		log.Info("Default super admin created", zap.String("email", cred.Email))
		return nil
	})
}
