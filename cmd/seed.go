package cmd

import (
	"fmt"
	"log"

	"github.com/frahmantamala/timeoff-management/internal/directory"
	directoryPostgres "github.com/frahmantamala/timeoff-management/internal/directory/postgres"
	"github.com/frahmantamala/timeoff-management/pkg/logger"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the default departments and teams",
	Long:  `Seed the database with the default organization structure. Does nothing when departments already exist.`,
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

		svc := directory.NewService(directoryPostgres.NewDirectoryRepository(gormDB), logger.LoggerWrapper())

		seeded, err := svc.Seed()
		if err != nil {
			log.Fatalf("failed to seed organization: %v", err)
		}

		if !seeded {
			fmt.Println("Departments already exist; nothing to seed")
			return
		}

		fmt.Println("Seeded default departments and teams")
	},
}
