package account

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/audit"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/domain/laundry"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/models"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type UserInput struct {
	Username   string
	Email      string
	Password   string
	Name       string
	Bolsista   bool
	Enrollment string
	Apartment  string
	Phone      string
}

// ======================================================
// USE CASE
// ======================================================

type SaveUser struct {
	repo  laundry.Repository
	audit *audit.Dispatcher

	// EmailDomains, when set, must accept the e-mail before it is saved.
	EmailDomains EmailDomainChecker
}

type EmailDomainChecker interface {
	Valid(email string) bool
}

func NewSaveUser(repo laundry.Repository, audit *audit.Dispatcher) *SaveUser {
	return &SaveUser{repo: repo, audit: audit}
}

func (uc *SaveUser) Create(ctx context.Context, staffID uint, in UserInput) (*models.User, error) {
	if in.Password == "" {
		return nil, laundry.ErrPasswordRequired
	}

	u := &models.User{}
	if err := uc.apply(u, in); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   audit.ActionUserCreated,
		Entity:   "user",
		EntityID: &u.ID,
	})
	return u, nil
}

// Update replaces the profile of an existing user. An empty password keeps
// the current hash.
func (uc *SaveUser) Update(ctx context.Context, staffID uint, userID uint, in UserInput) (*models.User, error) {
	u, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := uc.apply(u, in); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   audit.ActionUserUpdated,
		Entity:   "user",
		EntityID: &u.ID,
	})
	return u, nil
}

func (uc *SaveUser) Delete(ctx context.Context, staffID uint, userID uint) error {
	if err := uc.repo.DeleteUser(ctx, userID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   audit.ActionUserDeleted,
		Entity:   "user",
		EntityID: &userID,
	})
	return nil
}

func (uc *SaveUser) apply(u *models.User, in UserInput) error {
	phone := strings.TrimSpace(in.Phone)
	if phone != "" && !validators.IsPhoneValid(phone) {
		return laundry.ErrInvalidPhone
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email != "" && uc.EmailDomains != nil && !uc.EmailDomains.Valid(email) {
		return laundry.ErrInvalidEmail
	}

	if in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.PasswordHash = string(hashed)
	}

	u.Username = strings.TrimSpace(in.Username)
	u.Email = email
	u.Name = strings.TrimSpace(in.Name)
	u.Bolsista = in.Bolsista
	u.Enrollment = strings.TrimSpace(in.Enrollment)
	u.Apartment = strings.TrimSpace(in.Apartment)
	u.Phone = phone
	return nil
}
