// Package service contains the business logic orchestrating auth, storage,
// and validation for user accounts.
package service

import (
	"context"
	"strings"

	"learnhub/internal/auth"
	"learnhub/internal/models"
	"learnhub/internal/observability"
	"learnhub/internal/repository"
	"learnhub/internal/validation"
)

// AccountService orchestrates registration, login, profile management, and
// admin operations over the user store.
type AccountService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

// NewAccountService returns an AccountService using the given store and token service.
func NewAccountService(users repository.UserRepository, tokens *auth.TokenService) *AccountService {
	return &AccountService{users: users, tokens: tokens}
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// UpdateProfileInput carries the mutable profile fields. Empty fields are
// left unchanged.
type UpdateProfileInput struct {
	UserID   string
	FullName string
	Email    string
}

// AuthResult is the outcome of a successful registration or login.
type AuthResult struct {
	Token string
	User  models.PublicUser
}

// Register validates input, hashes the password, creates the user, and
// issues a bearer token for the new account.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	username, email, errs := validation.Registration(in.Username, in.Email, in.Password, in.FullName)
	if !errs.OK() {
		observability.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, models.NewValidationError(errs.Message())
	}

	// Pre-insert duplicate check. The store's unique indexes remain the
	// authoritative guard; a concurrent insert racing past this check is
	// translated to the same conflict by the repository.
	if existing, err := s.users.FindByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		observability.RegistrationsTotal.WithLabelValues("conflict").Inc()
		return nil, models.NewConflictError("Username already taken")
	}
	if existing, err := s.users.FindByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		observability.RegistrationsTotal.WithLabelValues("conflict").Inc()
		return nil, models.NewConflictError("Email already registered")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hash,
		FullName: strings.TrimSpace(in.FullName),
		Role:     models.RoleUser,
		IsActive: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if models.IsCode(err, models.CodeConflict) {
			observability.RegistrationsTotal.WithLabelValues("conflict").Inc()
		}
		return nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.RegistrationsTotal.WithLabelValues("success").Inc()
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Login authenticates an active account by username or email. Unknown
// identifiers, wrong passwords, and soft-deleted accounts all yield the same
// generic unauthorized error so callers cannot enumerate users.
func (s *AccountService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, models.NewValidationError("Username and password are required")
	}

	user, err := s.users.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(password, user.Password) {
		observability.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.LoginsTotal.WithLabelValues("success").Inc()
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// GetProfile returns the public view of the user with the given id.
func (s *AccountService) GetProfile(ctx context.Context, userID string) (*models.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := user.Public()
	return &view, nil
}

// UpdateProfile applies the provided profile fields. An email change is
// re-validated for uniqueness against all other users (active or not);
// updating to the account's current email is a no-op.
func (s *AccountService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.PublicUser, error) {
	user, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if fullName := strings.TrimSpace(in.FullName); fullName != "" {
		errs := validation.FieldErrors{}
		validation.CheckFullName(fullName, errs)
		if !errs.OK() {
			return nil, models.NewValidationError(errs.Message())
		}
		user.FullName = fullName
	}

	if in.Email != "" {
		email := validation.NormalizeEmail(in.Email)
		errs := validation.FieldErrors{}
		validation.CheckEmail(email, errs)
		if !errs.OK() {
			return nil, models.NewValidationError(errs.Message())
		}
		if email != user.Email {
			owner, err := s.users.FindByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if owner != nil && owner.ID != user.ID {
				return nil, models.NewConflictError("Email already taken")
			}
			user.Email = email
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	view := user.Public()
	return &view, nil
}

// AdminListUsers returns all active users, newest first, after verifying the
// caller's live record holds the admin role.
func (s *AccountService) AdminListUsers(ctx context.Context, callerID string, limit, offset int) ([]models.PublicUser, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	users, err := s.users.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	views := make([]models.PublicUser, 0, len(users))
	for i := range users {
		views = append(views, users[i].Public())
	}
	return views, nil
}

// AdminDeleteUser soft-deletes the target account after verifying the
// caller's live record holds the admin role.
func (s *AccountService) AdminDeleteUser(ctx context.Context, callerID, targetID string) (*models.PublicUser, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	user, err := s.users.SoftDelete(ctx, targetID)
	if err != nil {
		return nil, err
	}

	view := user.Public()
	return &view, nil
}

// requireAdmin loads the caller's live record: deactivation or demotion
// takes effect immediately on admin routes, regardless of token claims.
func (s *AccountService) requireAdmin(ctx context.Context, callerID string) error {
	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return models.NewForbiddenError("Admin access required")
		}
		return err
	}
	if !caller.IsActive || !caller.IsAdmin() {
		return models.NewForbiddenError("Admin access required")
	}
	return nil
}
