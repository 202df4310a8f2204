package repository

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/domain/laundry"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/httperr"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/models"
)

type LaundryGormRepository struct {
	db *gorm.DB
}

func NewLaundryGormRepository(db *gorm.DB) *LaundryGormRepository {
	return &LaundryGormRepository{db: db}
}

// translate maps storage errors to business errors. notFound is returned for
// missing rows and dangling foreign keys.
func translate(err error, notFound error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case httperr.IsExclusionConflict(err):
		return laundry.ErrSlotOverlap
	case httperr.IsForeignKeyViolation(err):
		return notFound
	}
	return errors.Wrap(err, op)
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *LaundryGormRepository) Transaction(
	ctx context.Context,
	fn func(repo laundry.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&LaundryGormRepository{db: tx})
	})
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *LaundryGormRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err, laundry.ErrUserNotFound, "get user")
	}
	return &u, nil
}

func (r *LaundryGormRepository) GetUserByUsername(
	ctx context.Context,
	username string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).Error; err != nil {
		return nil, translate(err, laundry.ErrUserNotFound, "get user by username")
	}
	return &u, nil
}

func (r *LaundryGormRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("username ASC").
		Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	return users, nil
}

func (r *LaundryGormRepository) CreateUser(ctx context.Context, u *models.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if httperr.IsUniqueViolation(err) {
		return laundry.ErrUsernameTaken
	}
	return translate(err, laundry.ErrUserNotFound, "create user")
}

func (r *LaundryGormRepository) UpdateUser(ctx context.Context, u *models.User) error {
	err := r.db.WithContext(ctx).Save(u).Error
	if httperr.IsUniqueViolation(err) {
		return laundry.ErrUsernameTaken
	}
	return translate(err, laundry.ErrUserNotFound, "update user")
}

func (r *LaundryGormRepository) DeleteUser(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, &models.User{}, id, laundry.ErrUserNotFound)
}

// --------------------------------------------------
// Washer
// --------------------------------------------------

func (r *LaundryGormRepository) GetWasher(ctx context.Context, id uint) (*models.Washer, error) {
	var w models.Washer
	if err := r.db.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, translate(err, laundry.ErrWasherNotFound, "get washer")
	}
	return &w, nil
}

func (r *LaundryGormRepository) ListWashers(ctx context.Context) ([]models.Washer, error) {
	var washers []models.Washer
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&washers).Error; err != nil {
		return nil, errors.Wrap(err, "list washers")
	}
	return washers, nil
}

func (r *LaundryGormRepository) CreateWasher(ctx context.Context, w *models.Washer) error {
	return translate(r.db.WithContext(ctx).Create(w).Error, laundry.ErrWasherNotFound, "create washer")
}

func (r *LaundryGormRepository) UpdateWasher(ctx context.Context, w *models.Washer) error {
	return translate(r.db.WithContext(ctx).Save(w).Error, laundry.ErrWasherNotFound, "update washer")
}

func (r *LaundryGormRepository) DeleteWasher(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, &models.Washer{}, id, laundry.ErrWasherNotFound)
}

// --------------------------------------------------
// Available slot
// --------------------------------------------------

func (r *LaundryGormRepository) GetSlot(ctx context.Context, id uint) (*models.AvailableSlot, error) {
	var s models.AvailableSlot
	if err := r.db.WithContext(ctx).
		Preload("Washer").
		First(&s, id).Error; err != nil {
		return nil, translate(err, laundry.ErrSlotNotFound, "get slot")
	}
	return &s, nil
}

func (r *LaundryGormRepository) ListSlots(
	ctx context.Context,
	from time.Time,
) ([]models.AvailableSlot, error) {

	q := r.db.WithContext(ctx).Preload("Washer")
	if !from.IsZero() {
		q = q.Where("start_at >= ?", from.UTC())
	}

	var slots []models.AvailableSlot
	if err := q.Order("start_at ASC").Order("washer_id ASC").Find(&slots).Error; err != nil {
		return nil, errors.Wrap(err, "list slots")
	}
	return slots, nil
}

func (r *LaundryGormRepository) ListSlotsNear(
	ctx context.Context,
	washerID uint,
	from time.Time,
	to time.Time,
) ([]models.AvailableSlot, error) {

	var slots []models.AvailableSlot
	if err := r.db.WithContext(ctx).
		Where(
			"washer_id = ? AND start_at < ? AND end_at >= ?",
			washerID,
			to.UTC(),
			from.UTC(),
		).
		Order("start_at ASC").
		Find(&slots).Error; err != nil {
		return nil, errors.Wrap(err, "list slots near")
	}
	return slots, nil
}

func (r *LaundryGormRepository) ListUnreservedSlots(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.AvailableSlot, error) {

	q := r.db.WithContext(ctx).
		Preload("Washer").
		Where("NOT EXISTS (SELECT 1 FROM reserved_slots rs WHERE rs.slot_id = available_slots.id)").
		Where("start_at >= ?", from.UTC())
	if !to.IsZero() {
		q = q.Where("start_at < ?", to.UTC())
	}

	var slots []models.AvailableSlot
	if err := q.Order("start_at ASC").Order("washer_id ASC").Find(&slots).Error; err != nil {
		return nil, errors.Wrap(err, "list unreserved slots")
	}
	return slots, nil
}

func (r *LaundryGormRepository) CreateSlot(ctx context.Context, s *models.AvailableSlot) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error
	return translate(err, laundry.ErrWasherNotFound, "create slot")
}

func (r *LaundryGormRepository) UpdateSlot(ctx context.Context, s *models.AvailableSlot) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error
	return translate(err, laundry.ErrWasherNotFound, "update slot")
}

func (r *LaundryGormRepository) DeleteSlot(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, &models.AvailableSlot{}, id, laundry.ErrSlotNotFound)
}

// --------------------------------------------------
// Reserved slot
// --------------------------------------------------

func (r *LaundryGormRepository) IsSlotReserved(ctx context.Context, slotID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReservedSlot{}).
		Where("slot_id = ?", slotID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "is slot reserved")
	}
	return count > 0, nil
}

func (r *LaundryGormRepository) CountAbsences(
	ctx context.Context,
	userID uint,
	from time.Time,
	to time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReservedSlot{}).
		Joins("JOIN available_slots s ON s.id = reserved_slots.slot_id").
		Where(
			"reserved_slots.user_id = ? AND reserved_slots.presence = ? AND s.start_at >= ? AND s.start_at <= ?",
			userID,
			false,
			from.UTC(),
			to.UTC(),
		).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count absences")
	}
	return count, nil
}

func (r *LaundryGormRepository) CountActiveReservations(
	ctx context.Context,
	userID uint,
	from time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReservedSlot{}).
		Joins("JOIN available_slots s ON s.id = reserved_slots.slot_id").
		Where("reserved_slots.user_id = ? AND s.start_at >= ?", userID, from.UTC()).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count active reservations")
	}
	return count, nil
}

func (r *LaundryGormRepository) CreateReservation(ctx context.Context, rs *models.ReservedSlot) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(rs).Error
	if httperr.IsUniqueViolation(err) {
		return laundry.ErrSlotUnavailable
	}
	return translate(err, laundry.ErrSlotNotFound, "create reservation")
}

func (r *LaundryGormRepository) GetReservation(ctx context.Context, id uint) (*models.ReservedSlot, error) {
	var rs models.ReservedSlot
	if err := r.db.WithContext(ctx).
		Preload("Slot.Washer").
		Preload("User").
		First(&rs, id).Error; err != nil {
		return nil, translate(err, laundry.ErrReservationNotFound, "get reservation")
	}
	return &rs, nil
}

func (r *LaundryGormRepository) ListUserReservations(
	ctx context.Context,
	userID uint,
	from time.Time,
) ([]models.ReservedSlot, error) {

	var list []models.ReservedSlot
	if err := r.reservationsQuery(ctx, from).
		Where("reserved_slots.user_id = ?", userID).
		Find(&list).Error; err != nil {
		return nil, errors.Wrap(err, "list user reservations")
	}
	return list, nil
}

func (r *LaundryGormRepository) ListReservations(
	ctx context.Context,
	from time.Time,
) ([]models.ReservedSlot, error) {

	var list []models.ReservedSlot
	if err := r.reservationsQuery(ctx, from).Find(&list).Error; err != nil {
		return nil, errors.Wrap(err, "list reservations")
	}
	return list, nil
}

func (r *LaundryGormRepository) UpdateReservation(ctx context.Context, rs *models.ReservedSlot) error {
	res := r.db.WithContext(ctx).
		Model(&models.ReservedSlot{}).
		Where("id = ?", rs.ID).
		Update("presence", rs.Presence)
	if res.Error != nil {
		return errors.Wrap(res.Error, "update reservation")
	}
	if res.RowsAffected == 0 {
		return laundry.ErrReservationNotFound
	}
	return nil
}

func (r *LaundryGormRepository) DeleteReservation(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, &models.ReservedSlot{}, id, laundry.ErrReservationNotFound)
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func (r *LaundryGormRepository) reservationsQuery(ctx context.Context, from time.Time) *gorm.DB {
	q := r.db.WithContext(ctx).
		Preload("Slot.Washer").
		Preload("User").
		Joins("JOIN available_slots s ON s.id = reserved_slots.slot_id")
	if !from.IsZero() {
		q = q.Where("s.start_at >= ?", from.UTC())
	}
	return q.Order("s.start_at ASC").Order("s.washer_id ASC")
}

func (r *LaundryGormRepository) deleteByID(
	ctx context.Context,
	model any,
	id uint,
	notFound error,
) error {

	res := r.db.WithContext(ctx).Delete(model, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete")
	}
	if res.RowsAffected == 0 {
		return notFound
	}
	return nil
}

// Compile-time check
var _ laundry.Repository = (*LaundryGormRepository)(nil)
