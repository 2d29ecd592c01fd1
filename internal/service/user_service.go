package service

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/makara-hq/portfolio-backend/internal/email"
	"github.com/makara-hq/portfolio-backend/internal/repository"
)

// ============================================
// User Service
// ============================================

// UserUpdate is a sparse update: nil fields are left untouched.
// A non-nil Password is re-hashed before storage.
type UserUpdate struct {
	FullName *string
	Password *string
}

type UserService interface {
	Create(ctx context.Context, email, fullname, password string) (*repository.User, error)
	GetByEmail(ctx context.Context, email string) (*repository.User, error)
	List(ctx context.Context, params ListParams) ([]*repository.User, error)
	Update(ctx context.Context, email string, upd UserUpdate) (*repository.User, error)
	Delete(ctx context.Context, email string) error
}

type userService struct {
	userRepo    repository.UserRepository
	emailSvc    *email.Service
	broadcaster ChangeBroadcaster
}

func NewUserService(userRepo repository.UserRepository, emailSvc *email.Service, broadcaster ChangeBroadcaster) UserService {
	return &userService{userRepo: userRepo, emailSvc: emailSvc, broadcaster: broadcaster}
}

func (s *userService) Create(ctx context.Context, userEmail, fullname, password string) (*repository.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &repository.User{
		Email:    userEmail,
		FullName: fullname,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.emailSvc != nil {
		go func() {
			if err := s.emailSvc.SendWelcome(user.Email, user.FullName); err != nil {
				log.Printf("⚠️ [Email] Failed to send welcome email to %s: %v", user.Email, err)
			}
		}()
	}

	if s.broadcaster != nil {
		s.broadcaster.RecordCreated("user", userPayload(user))
	}
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, userEmail string) (*repository.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, params ListParams) ([]*repository.User, error) {
	return s.userRepo.List(ctx, params.filter())
}

func (s *userService) Update(ctx context.Context, userEmail string, upd UserUpdate) (*repository.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if upd.FullName != nil {
		user.FullName = *upd.FullName
	}
	if upd.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.RecordUpdated("user", userPayload(user))
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, userEmail string) error {
	user, err := s.userRepo.FindByEmail(ctx, userEmail)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}

	if err := s.userRepo.Delete(ctx, userEmail); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.RecordDeleted("user", userEmail)
	}
	return nil
}

// userPayload never includes the password hash.
func userPayload(u *repository.User) map[string]interface{} {
	return map[string]interface{}{
		"email":    u.Email,
		"fullname": u.FullName,
	}
}
