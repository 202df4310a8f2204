package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/db"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/models"
)

// NewDB returns a migrated in-memory sqlite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	gdb, err := db.Open("sqlite", dsn)
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb, false))
	return gdb
}

func CreateUser(t *testing.T, gdb *gorm.DB, username string, staff bool) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	u := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Name:         username,
		Bolsista:     staff,
	}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

func CreateWasher(t *testing.T, gdb *gorm.DB, name string) *models.Washer {
	t.Helper()

	w := &models.Washer{Name: name}
	require.NoError(t, gdb.Create(w).Error)
	return w
}

func CreateSlot(t *testing.T, gdb *gorm.DB, washerID uint, start time.Time, d time.Duration) *models.AvailableSlot {
	t.Helper()

	s := &models.AvailableSlot{WasherID: washerID, Start: start}
	s.SetDuration(d)
	require.NoError(t, gdb.Omit("Washer").Create(s).Error)
	return s
}

func CreateReservation(t *testing.T, gdb *gorm.DB, userID, slotID uint, presence bool) *models.ReservedSlot {
	t.Helper()

	r := &models.ReservedSlot{UserID: userID, SlotID: slotID, Presence: presence}
	require.NoError(t, gdb.Omit("Slot", "User").Create(r).Error)
	return r
}
