package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"consigne/internal/model"
)

// UserQuery carries the listing parameters exposed on the admin dashboard:
// substring filter on username, offset/limit pagination and sort column.
type UserQuery struct {
	Contains string
	Offset   int
	Limit    int
	SortBy   string
	SortDesc bool
}

// userSortColumns whitelists the columns a caller may order by; anything else
// falls back to username.
var userSortColumns = map[string]string{
	"username":        "username",
	"email":           "email",
	"company":         "company",
	"role":            "role",
	"status":          "status",
	"collecte_status": "collecte_status",
	"created_at":      "created_at",
}

func (q UserQuery) orderClause() string {
	col, ok := userSortColumns[strings.ToLower(q.SortBy)]
	if !ok {
		col = "username"
	}
	if q.SortDesc {
		return col + " DESC"
	}
	return col + " ASC"
}

// UserRepository defines user persistence operations. Lookups return
// (nil, nil) when no record exists; callers decide whether absence is an
// error. Search is case-insensitive, following the MySQL default collation.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Save(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Search(ctx context.Context, q UserQuery) ([]model.User, error)
	SearchAwaitingPassage(ctx context.Context, q UserQuery) ([]model.User, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountAwaitingPassage(ctx context.Context) (int64, error)
	SaveAddress(ctx context.Context, address *model.Address) error
	DeleteAddresses(ctx context.Context, ids []uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Save(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Address").Preload("DeliveryAddress").
		Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Address").Preload("DeliveryAddress").
		Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Search(ctx context.Context, q UserQuery) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Preload("Address").Preload("DeliveryAddress").
		Where("username LIKE ?", "%"+q.Contains+"%").
		Order(q.orderClause()).
		Offset(q.Offset).Limit(q.Limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// SearchAwaitingPassage restricts Search to collection points whose status
// warrants a pickup. A user with collecte_point = false never matches, no
// matter what collecte_status holds.
func (r *userRepository) SearchAwaitingPassage(ctx context.Context, q UserQuery) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Preload("Address").Preload("DeliveryAddress").
		Where("collecte_point = ?", true).
		Where("collecte_status IN ?", []model.CollecteStatus{model.CollecteAlmostFull, model.CollecteFull}).
		Where("username LIKE ?", "%"+q.Contains+"%").
		Order(q.orderClause()).
		Offset(q.Offset).Limit(q.Limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListByRole returns every user holding the role, used for CSV export.
func (r *userRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Preload("Address").Preload("DeliveryAddress").
		Where("role = ?", role).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes the user row and reports affected rows; deleting an absent
// id is not an error.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	return res.RowsAffected, res.Error
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error
	return count, err
}

func (r *userRepository) CountAwaitingPassage(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("collecte_point = ?", true).
		Where("collecte_status IN ?", []model.CollecteStatus{model.CollecteAlmostFull, model.CollecteFull}).
		Count(&count).Error
	return count, err
}

func (r *userRepository) SaveAddress(ctx context.Context, address *model.Address) error {
	return r.db.WithContext(ctx).Save(address).Error
}

func (r *userRepository) DeleteAddresses(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Address{}).Error
}
