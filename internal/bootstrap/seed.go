package bootstrap

import (
	"log"

	"anoa.com/tccscheduler/internal/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSecretariatUser creates a default secretariat account so a fresh
// development database has someone able to provision the rest.
func SeedSecretariatUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ?", "secretaria@tcc.local").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Secretariat user already exists, skipping seed")
		return nil
	}

	password := "secretaria123"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := entity.User{
		Name:         "Secretaria",
		Email:        "secretaria@tcc.local",
		PasswordHash: string(hashedPasswordBytes),
		Role:         entity.RoleSecretariat,
	}

	if err := db.Create(&user).Error; err != nil {
		return err
	}

	log.Println("Secretariat user seeded successfully")
	log.Println("   Email: secretaria@tcc.local")
	log.Println("   Password: secretaria123")

	return nil
}
