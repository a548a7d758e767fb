// scripts/create_admin.go
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gediyoneyasu/WCU-CS-management/config"
	"github.com/gediyoneyasu/WCU-CS-management/database"
	"github.com/gediyoneyasu/WCU-CS-management/models"
)

// Creates an admin-teacher account from the command line, for setups
// that never call /install. Usage:
//
//	go run scripts/create_admin.go <teacher_id> <email> <password>
func main() {
	if len(os.Args) != 4 {
		fmt.Println("usage: create_admin <teacher_id> <email> <password>")
		os.Exit(2)
	}
	teacherID, email, password := os.Args[1], os.Args[2], os.Args[3]

	cfg := config.Load()
	database.Connect(cfg)

	var existing models.Teacher
	err := database.DB.Where("teacher_id = ? OR email = ?", teacherID, email).First(&existing).Error
	if err == nil {
		fmt.Println("account already exists:", existing.TeacherID)
		os.Exit(0)
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("failed to query teachers: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	t := models.Teacher{
		TeacherID: teacherID,
		Name:      "School Administrator",
		Email:     email,
		Password:  string(hashed),
		Role:      models.RoleAdmin,
	}
	if err := database.DB.Create(&t).Error; err != nil {
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("admin account created:", teacherID)
}
