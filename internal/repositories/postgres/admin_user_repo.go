package postgres

import (
	"context"
	"errors"

	"github.com/unedp/careers/internal/models"
	"github.com/unedp/careers/internal/utils"
	"gorm.io/gorm"
)

// AdminUserRepository reads the admin directory. Provisioning rows is an
// out-of-band ops action; there is no write path here.
type AdminUserRepository interface {
	GetByID(ctx context.Context, id string) (*models.AdminUser, error)
}

type adminUserRepo struct {
	db *gorm.DB
}

func NewAdminUserRepo(db *gorm.DB) AdminUserRepository {
	return &adminUserRepo{db: db}
}

func (r *adminUserRepo) GetByID(ctx context.Context, id string) (*models.AdminUser, error) {
	var u models.AdminUser
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &u, err
}
