package db

import (
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/config"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := Open(cfg.DBDriver, cfg.DBUrl)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if cfg.DBDriver != "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("failed to get sql.DB: %v", err)
		}

		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	if err := Migrate(db, cfg.DBSlotExclusion && cfg.DBDriver != "sqlite"); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := EnsureStaff(db, cfg.BootstrapStaffUsername, cfg.BootstrapStaffPassword); err != nil {
		log.Fatalf("failed to bootstrap staff user: %v", err)
	}

	return db
}

// Open connects with TranslateError on, so duplicate keys and foreign key
// violations surface as gorm errors on every driver.
func Open(driver, dsn string) (*gorm.DB, error) {
	gcfg := &gorm.Config{TranslateError: true}

	switch driver {
	case "postgres", "":
		gcfg.PrepareStmt = true
		return gorm.Open(postgres.Open(dsn), gcfg)
	case "sqlite":
		return gorm.Open(sqlite.Open(sqliteDSN(dsn)), gcfg)
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
}

// sqliteDSN enables foreign keys through the DSN so every pooled connection
// gets them, not only the one a PRAGMA happened to run on.
func sqliteDSN(dsn string) string {
	lower := strings.ToLower(dsn)
	if strings.Contains(lower, "_foreign_keys=") || strings.Contains(lower, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=1"
	}
	return dsn + "?_foreign_keys=1"
}

func Migrate(db *gorm.DB, slotExclusion bool) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Washer{},
		&models.AvailableSlot{},
		&models.ReservedSlot{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	if slotExclusion {
		return applySlotExclusion(db)
	}
	return nil
}

// applySlotExclusion adds a Postgres constraint rejecting intersecting
// [start_at, end_at) ranges on the same washer.
func applySlotExclusion(db *gorm.DB) error {
	ddls := []string{
		"CREATE EXTENSION IF NOT EXISTS btree_gist",
		`DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint WHERE conname = 'available_slots_no_overlap'
	) THEN
		ALTER TABLE available_slots
			ADD CONSTRAINT available_slots_no_overlap
			EXCLUDE USING gist (washer_id WITH =, tstzrange(start_at, end_at, '[)') WITH &&);
	END IF;
END $$`,
	}

	for _, ddl := range ddls {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("slot exclusion ddl: %w", err)
		}
	}
	return nil
}

// EnsureStaff creates the first bolsista when no staff member exists yet. A
// username already held by a regular user is left untouched.
func EnsureStaff(db *gorm.DB, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("bolsista = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var existing int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		// não promove contas comuns a partir do ambiente
		log.Printf("bootstrap staff user %q already exists as a regular user, skipping", username)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	log.Printf("bootstrapping staff user %q", username)
	return db.Create(&models.User{
		Username:     username,
		PasswordHash: string(hash),
		Name:         username,
		Bolsista:     true,
	}).Error
}
