package services

import (
	"context"
	"errors"

	"github.com/pquerna/otp/totp"

	"crane-backend/internal/auth"
	"crane-backend/internal/authz"
	"crane-backend/internal/models"
	"crane-backend/internal/repositories"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrTOTPRequired       = errors.New("totp code required")
	ErrTOTPInvalid        = errors.New("invalid totp code")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrSelfDelete         = errors.New("cannot delete your own account")
	ErrSelfReset          = errors.New("cannot reset your own password, use change-password")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type UserService struct {
	Repo       *repositories.UserRepository
	JWTManager *auth.JWTManager
}

func NewUserService(repo *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		Repo:       repo,
		JWTManager: jwtManager,
	}
}

// Login authenticates a user and returns a JWT token. Users with 2FA enabled
// must also supply a valid TOTP code.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	if user.TOTPEnabled {
		if req.TOTPCode == "" {
			return nil, ErrTOTPRequired
		}
		if !totp.Validate(req.TOTPCode, user.TOTPSecret) {
			return nil, ErrTOTPInvalid
		}
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		AccessToken: token,
		User:        user,
	}, nil
}

// Register creates a user. Only admins reach this, so the role arrives from
// the request body and just needs to be a known one.
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return nil, errors.New("full_name, email, and password are required")
	}
	if req.Role != "" && !authz.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	if existing, _ := s.Repo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hashedPassword,
		Role:         req.Role,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.Repo.Get(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Repo.List(ctx)
}

// UpdateUser applies the provided fields to an existing user.
func (s *UserService) UpdateUser(ctx context.Context, id int, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" && req.Email != user.Email {
		if existing, _ := s.Repo.GetByEmail(ctx, req.Email); existing != nil && existing.ID != id {
			return nil, ErrEmailTaken
		}
		user.Email = req.Email
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Role != "" {
		if !authz.ValidRole(req.Role) {
			return nil, ErrInvalidRole
		}
		user.Role = req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.Repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user. Self-deletion is refused so an installation
// cannot lock itself out.
func (s *UserService) DeleteUser(ctx context.Context, id, actorID int) error {
	if id == actorID {
		return ErrSelfDelete
	}
	if _, err := s.Repo.Get(ctx, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

// ChangePassword lets a user rotate their own password.
func (s *UserService) ChangePassword(ctx context.Context, userID int, req *models.ChangePasswordRequest) error {
	if req.NewPassword == "" {
		return errors.New("new password is required")
	}
	user, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(user.PasswordHash, req.CurrentPassword) {
		return ErrWrongPassword
	}
	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.Repo.SetPassword(ctx, userID, hashedPassword)
}

// ResetPassword sets another user's password without knowing the old one.
// Restricted to super_admin at the route level; own-account rotation goes
// through ChangePassword, which verifies the current password.
func (s *UserService) ResetPassword(ctx context.Context, userID, actorID int, newPassword string) error {
	if userID == actorID {
		return ErrSelfReset
	}
	if newPassword == "" {
		return errors.New("new password is required")
	}
	if _, err := s.Repo.Get(ctx, userID); err != nil {
		return err
	}
	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Repo.SetPassword(ctx, userID, hashedPassword)
}
