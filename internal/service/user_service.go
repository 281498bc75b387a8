package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"consigne/internal/auth"
	"consigne/internal/cache"
	"consigne/internal/errors"
	"consigne/internal/model"
	"consigne/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// AddressInput carries address fields for create/update operations.
type AddressInput struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// CreateUserInput carries the full signup payload. Password is plaintext;
// hashing happens inside the service, never in the caller.
type CreateUserInput struct {
	Username          string
	Email             string
	Password          string
	Company           string
	Tel               string
	Role              model.Role
	Reseller          bool
	Producer          bool
	HeavyTruck        bool
	Stacker           bool
	Forklift          bool
	PalletTruck       bool
	CollectePoint     bool
	DeliverySchedules string
	DeliveryData      string
	InternalData      string
	Address           *AddressInput
	DeliveryAddress   *AddressInput
}

// UpdateUserInput holds a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Username          *string
	Email             *string
	Password          *string
	Company           *string
	Tel               *string
	Role              *model.Role
	Status            *model.UserStatus
	Reseller          *bool
	Producer          *bool
	HeavyTruck        *bool
	Stacker           *bool
	Forklift          *bool
	PalletTruck       *bool
	CollectePoint     *bool
	CollecteStatus    *model.CollecteStatus
	DeliverySchedules *string
	DeliveryData      *string
	InternalData      *string
	Address           *AddressInput
	DeliveryAddress   *AddressInput
}

// UserService owns the user identity lifecycle.
type UserService interface {
	CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (int64, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	SearchUsers(ctx context.Context, q repository.UserQuery) ([]model.User, error)
	ExportUsers(ctx context.Context) ([]model.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id.String())
}

func addressFromInput(in *AddressInput) *model.Address {
	if in == nil {
		return nil
	}
	return &model.Address{
		Street:  in.Street,
		City:    in.City,
		ZipCode: in.ZipCode,
		Country: in.Country,
	}
}

// CreateUser registers a user with status PENDING. Addresses are persisted
// first so the user row never references an address that failed to save. The
// unique index on email is the authoritative conflict check; the prior
// FindByEmail only makes the common case cheaper.
func (s *userService) CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:          in.Username,
		Email:             in.Email,
		PasswordHash:      hash,
		Company:           in.Company,
		Tel:               in.Tel,
		Role:              in.Role,
		Status:            model.StatusPending,
		Reseller:          in.Reseller,
		Producer:          in.Producer,
		HeavyTruck:        in.HeavyTruck,
		Stacker:           in.Stacker,
		Forklift:          in.Forklift,
		PalletTruck:       in.PalletTruck,
		CollectePoint:     in.CollectePoint,
		DeliverySchedules: in.DeliverySchedules,
		DeliveryData:      in.DeliveryData,
		InternalData:      in.InternalData,
	}
	if user.CollectePoint {
		user.CollecteStatus = model.CollecteEmpty
	}

	if addr := addressFromInput(in.Address); addr != nil {
		if err := s.repo.SaveAddress(ctx, addr); err != nil {
			return nil, fmt.Errorf("save address: %w", err)
		}
		user.AddressID = &addr.ID
		user.Address = addr
	}
	if addr := addressFromInput(in.DeliveryAddress); addr != nil {
		if err := s.repo.SaveAddress(ctx, addr); err != nil {
			return nil, fmt.Errorf("save delivery address: %w", err)
		}
		user.DeliveryAddressID = &addr.ID
		user.DeliveryAddress = addr
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// Two signups can race past the existence check; the unique index
		// settles it.
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// UpdateUser applies a partial merge onto the stored record: read, overwrite
// the supplied fields only, write back. A new password is re-hashed here.
func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}

	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if in.Company != nil {
		user.Company = *in.Company
	}
	if in.Tel != nil {
		user.Tel = *in.Tel
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.Status != nil {
		user.Status = *in.Status
	}
	if in.Reseller != nil {
		user.Reseller = *in.Reseller
	}
	if in.Producer != nil {
		user.Producer = *in.Producer
	}
	if in.HeavyTruck != nil {
		user.HeavyTruck = *in.HeavyTruck
	}
	if in.Stacker != nil {
		user.Stacker = *in.Stacker
	}
	if in.Forklift != nil {
		user.Forklift = *in.Forklift
	}
	if in.PalletTruck != nil {
		user.PalletTruck = *in.PalletTruck
	}
	if in.CollectePoint != nil {
		user.CollectePoint = *in.CollectePoint
		if user.CollectePoint && !user.CollecteStatus.Valid() {
			user.CollecteStatus = model.CollecteEmpty
		}
	}
	if in.CollecteStatus != nil {
		user.CollecteStatus = *in.CollecteStatus
	}
	if in.DeliverySchedules != nil {
		user.DeliverySchedules = *in.DeliverySchedules
	}
	if in.DeliveryData != nil {
		user.DeliveryData = *in.DeliveryData
	}
	if in.InternalData != nil {
		user.InternalData = *in.InternalData
	}

	if in.Address != nil {
		addr := user.Address
		if addr == nil {
			addr = &model.Address{}
		}
		addr.Street = in.Address.Street
		addr.City = in.Address.City
		addr.ZipCode = in.Address.ZipCode
		addr.Country = in.Address.Country
		if err := s.repo.SaveAddress(ctx, addr); err != nil {
			return nil, fmt.Errorf("save address: %w", err)
		}
		user.AddressID = &addr.ID
		user.Address = addr
	}
	if in.DeliveryAddress != nil {
		addr := user.DeliveryAddress
		if addr == nil {
			addr = &model.Address{}
		}
		addr.Street = in.DeliveryAddress.Street
		addr.City = in.DeliveryAddress.City
		addr.ZipCode = in.DeliveryAddress.ZipCode
		addr.Country = in.DeliveryAddress.Country
		if err := s.repo.SaveAddress(ctx, addr); err != nil {
			return nil, fmt.Errorf("save delivery address: %w", err)
		}
		user.DeliveryAddressID = &addr.ID
		user.DeliveryAddress = addr
	}

	if err := s.repo.Save(ctx, user); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrEmailTaken
		}
		return nil, fmt.Errorf("save user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

// DeleteUser removes the user and its owned addresses. Idempotent: an absent
// id reports zero affected rows, not an error.
func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) (int64, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return 0, nil
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}

	var addressIDs []uuid.UUID
	if user.AddressID != nil {
		addressIDs = append(addressIDs, *user.AddressID)
	}
	if user.DeliveryAddressID != nil {
		addressIDs = append(addressIDs, *user.DeliveryAddressID)
	}
	if err := s.repo.DeleteAddresses(ctx, addressIDs); err != nil {
		return affected, fmt.Errorf("delete addresses: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return affected, nil
}

// GetUser retrieves a user by ID with caching.
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

func (s *userService) SearchUsers(ctx context.Context, q repository.UserQuery) ([]model.User, error) {
	return s.repo.Search(ctx, q)
}

// ExportUsers returns every USER-role account for the admin export view.
func (s *userService) ExportUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.ListByRole(ctx, model.RoleUser)
}

func (s *userService) CountUsers(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
