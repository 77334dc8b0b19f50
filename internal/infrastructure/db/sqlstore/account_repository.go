package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/thumbtack/onlineshop/internal/core/domain"
)

// AccountRepository implements ports.AccountRepository.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Insert stores a new account and sets its id. A login taken by a
// concurrent registration surfaces as domain.ErrLoginAlreadyInUse.
func (r *AccountRepository) Insert(ctx context.Context, a *domain.Account) error {
	m := toAccountModel(a)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isDuplicate(err) {
			return domain.ErrLoginAlreadyInUse.WithField("login")
		}
		return fmt.Errorf("insert account: %w", err)
	}
	a.ID = m.ID
	return nil
}

// Update rewrites the profile and password. Login, role and deposit are
// never touched here.
func (r *AccountRepository) Update(ctx context.Context, a *domain.Account) error {
	m := toAccountModel(a)
	res := r.db.WithContext(ctx).Model(&accountModel{}).Where("id = ?", a.ID).
		Select("password_hash", "first_name", "last_name", "patronymic", "email", "address", "phone", "position").
		Updates(&m)
	if res.Error != nil {
		return fmt.Errorf("update account: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) Get(ctx context.Context, id int64) (*domain.Account, error) {
	var m accountModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return m.toDomain(), nil
}

func (r *AccountRepository) FindByLogin(ctx context.Context, login string) (*domain.Account, error) {
	var m accountModel
	if err := r.db.WithContext(ctx).Where("login = ?", login).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return m.toDomain(), nil
}

func (r *AccountRepository) Exists(ctx context.Context, login string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&accountModel{}).Where("login = ?", login).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count accounts: %w", err)
	}
	return n > 0, nil
}

func (r *AccountRepository) GetClients(ctx context.Context) ([]*domain.Account, error) {
	var models []accountModel
	if err := r.db.WithContext(ctx).Where("role = ?", string(domain.RoleClient)).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	out := make([]*domain.Account, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}
	return out, nil
}
