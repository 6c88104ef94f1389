package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Backfill defaults on legacy rows",
	Long:  `Backfill legacy rows created before status and role columns existed: time off entries get status approved, users get role employee. Safe to run repeatedly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := openGorm(db)
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}

		var totalEntries int64
		if err := gormDB.Raw("SELECT COUNT(*) FROM time_off_entries").Row().Scan(&totalEntries); err != nil {
			log.Fatalf("failed to count time off entries: %v", err)
		}

		res := gormDB.Exec("UPDATE time_off_entries SET status = 'approved', updated_at = now() WHERE status IS NULL OR status = ''")
		if res.Error != nil {
			log.Fatalf("failed to backfill time off statuses: %v", res.Error)
		}
		fmt.Printf("Time off entries: %d total, %d backfilled with status approved\n", totalEntries, res.RowsAffected)

		var totalUsers int64
		if err := gormDB.Raw("SELECT COUNT(*) FROM users").Row().Scan(&totalUsers); err != nil {
			log.Fatalf("failed to count users: %v", err)
		}

		res = gormDB.Exec("UPDATE users SET role = 'employee', updated_at = now() WHERE role IS NULL OR role = ''")
		if res.Error != nil {
			log.Fatalf("failed to backfill user roles: %v", res.Error)
		}
		fmt.Printf("Users: %d total, %d backfilled with role employee\n", totalUsers, res.RowsAffected)
	},
}
