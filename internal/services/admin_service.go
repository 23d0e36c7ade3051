package services

import (
	"context"
	"database/sql"
	"errors"

	"contestbot/internal/config"
	"contestbot/internal/models"
	"contestbot/internal/repositories"
)

// AdminStore is implemented by *repositories.AdminRepository.
type AdminStore interface {
	Add(ctx context.Context, userId int64, addedBy sql.NullInt64) error
	Remove(ctx context.Context, userId int64) error
	IsAdmin(ctx context.Context, userId int64) (bool, error)
	FindAll(ctx context.Context) ([]models.Admin, error)
}

type AdminService struct {
	repo AdminStore
}

func NewAdminService(repo AdminStore) *AdminService {
	return &AdminService{
		repo: repo,
	}
}

func (s *AdminService) Add(ctx context.Context, userId, addedBy int64) error {
	by := sql.NullInt64{}
	if addedBy != 0 {
		by = sql.NullInt64{Int64: addedBy, Valid: true}
	}
	return s.repo.Add(ctx, userId, by)
}

// Remove drops an admin. The acting admin cannot remove themself.
func (s *AdminService) Remove(ctx context.Context, actingId, targetId int64) error {
	if actingId == targetId {
		return ErrSelfRemoval
	}
	return s.repo.Remove(ctx, targetId)
}

// IsAdmin consults the table and the bootstrap list from config.
func (s *AdminService) IsAdmin(ctx context.Context, userId int64) bool {
	for _, id := range config.ADMIN_IDS {
		if id == userId {
			return true
		}
	}

	ok, err := s.repo.IsAdmin(ctx, userId)
	if err != nil {
		log.Error("Failed to check admin: ", err)
		return false
	}
	return ok
}

func (s *AdminService) List(ctx context.Context) ([]models.Admin, error) {
	return s.repo.FindAll(ctx)
}

// SeedBootstrapAdmins makes sure every configured admin id has a row.
func (s *AdminService) SeedBootstrapAdmins(ctx context.Context) {
	for _, id := range config.ADMIN_IDS {
		err := s.repo.Add(ctx, id, sql.NullInt64{})
		if err != nil && !errors.Is(err, repositories.ErrAlreadyExists) {
			log.Error("Failed to seed admin ", id, ": ", err)
		}
	}
}
