package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ruangkerja/leave-management/internal/auth"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := gorm.Open(gormPostgres.Open(cfg.Database.Source), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, table := range []string{"leave_requests", "leave_balances", "user_permissions"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing leave data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		seedUser(db, "sari@mail.com", "Sari", "Engineering", string(hash))
		seedUser(db, "wulan@mail.com", "Wulan HR", "People Operations", string(hash))

		permissions := []struct {
			Name string
			Desc string
		}{
			{auth.PermAdmin, "full administrator"},
			{auth.PermSubmitLeave, "Can submit leave requests"},
			{auth.PermViewOwnLeave, "Can view own leave requests"},
			{auth.PermApproveLeave, "Can approve leave requests"},
			{auth.PermRejectLeave, "Can reject leave requests"},
			{auth.PermViewAllLeave, "Can view all leave requests"},
			{auth.PermManageBalances, "Can manage leave balances"},
			{auth.PermManageLeaveTypes, "Can manage leave types"},
		}

		for _, p := range permissions {
			var pid int64
			row := db.Raw("SELECT id FROM permissions WHERE name = ?", p.Name).Row()
			if err := row.Scan(&pid); err != nil {
				if err := db.Exec("INSERT INTO permissions (name, description, created_at) VALUES (?, ?, now())", p.Name, p.Desc).Error; err != nil {
					log.Fatalf("failed to insert permission %s: %v", p.Name, err)
				}
			}
		}

		grantPermissions(db, "wulan@mail.com", []string{
			auth.PermAdmin,
			auth.PermSubmitLeave,
			auth.PermViewOwnLeave,
			auth.PermApproveLeave,
			auth.PermRejectLeave,
			auth.PermViewAllLeave,
			auth.PermManageBalances,
			auth.PermManageLeaveTypes,
		})
		fmt.Println("Granted all permissions to HR user: wulan@mail.com")

		grantPermissions(db, "sari@mail.com", []string{
			auth.PermSubmitLeave,
			auth.PermViewOwnLeave,
		})
		fmt.Println("Granted employee permissions to sari@mail.com")

		leaveTypes := []struct {
			Name                  string
			Desc                  string
			RequiresApproval      bool
			RequiresJustification bool
			BalanceTracked        bool
			DefaultDays           int
		}{
			{"annual", "Paid annual leave", true, false, true, cfg.Leave.AnnualDefaultDays},
			{"sick", "Sick leave", true, false, true, cfg.Leave.SickDefaultDays},
			{"exceptional", "Exceptional leave for special circumstances", true, true, false, 0},
		}

		for _, lt := range leaveTypes {
			var exists int
			row := db.Raw("SELECT 1 FROM leave_types WHERE name = ?", lt.Name).Row()
			if err := row.Scan(&exists); err != nil {
				if err := db.Exec(
					"INSERT INTO leave_types (name, description, requires_approval, requires_justification, balance_tracked, default_days, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, true, now(), now())",
					lt.Name, lt.Desc, lt.RequiresApproval, lt.RequiresJustification, lt.BalanceTracked, lt.DefaultDays,
				).Error; err != nil {
					log.Fatalf("failed to insert leave type %s: %v", lt.Name, err)
				}
				fmt.Printf("Seeded leave type: %s\n", lt.Name)
			}
		}

		fmt.Println("Leave types seeded successfully")
	},
}

func seedUser(db *gorm.DB, email, name, department, passwordHash string) {
	var exists int
	row := db.Raw("SELECT 1 FROM users WHERE email = ?", email).Row()
	if err := row.Scan(&exists); err == nil {
		fmt.Printf("user %s already exists; will ensure permissions\n", email)
		return
	}

	if err := db.Exec(
		"INSERT INTO users (email, name, password_hash, department, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, true, now(), now())",
		email, name, passwordHash, department,
	).Error; err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}
	fmt.Println("Seeded user:", email)
}

func grantPermissions(db *gorm.DB, email string, permissionNames []string) {
	var userID int64
	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&userID); err != nil {
		log.Fatalf("failed to lookup user id for %s: %v", email, err)
	}

	for _, permName := range permissionNames {
		var pid int64
		if err := db.Raw("SELECT id FROM permissions WHERE name = ?", permName).Row().Scan(&pid); err != nil {
			log.Fatalf("permission not found %s: %v", permName, err)
		}

		var exists int
		if err := db.Raw("SELECT 1 FROM user_permissions WHERE user_id = ? AND permission_id = ?", userID, pid).Row().Scan(&exists); err == nil {
			continue
		}

		if err := db.Exec("INSERT INTO user_permissions (user_id, permission_id, granted_by, created_at) VALUES (?, ?, NULL, now())", userID, pid).Error; err != nil {
			log.Fatalf("failed to grant permission %s to %s: %v", permName, email, err)
		}
	}
}
