package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"mandoubi/internal/adapters/persistence/repositories"
	"mandoubi/internal/core/domain"
	"mandoubi/internal/pkg/password"

	"github.com/google/uuid"
)

// UserService handles agent and administrator accounts.
// Every mutation re-applies the access policy against the stored actor.
type UserService struct {
	userRepo repositories.UserRepository
	sessions SessionCloser
}

// NewUserService creates a new user service. sessions may be nil.
func NewUserService(userRepo repositories.UserRepository, sessions SessionCloser) *UserService {
	return &UserService{userRepo: userRepo, sessions: sessions}
}

// CreateUserInput represents a new account
type CreateUserInput struct {
	Name     string      `json:"name" validate:"required,max=100"`
	Username string      `json:"username" validate:"required,min=3,max=50"`
	Email    string      `json:"email" validate:"omitempty,email,max=100"`
	Password string      `json:"password" validate:"required,min=6"`
	Phone    string      `json:"phone" validate:"max=30"`
	City     string      `json:"city" validate:"max=100"`
	Role     domain.Role `json:"role" validate:"omitempty,oneof=ADMIN SUPERVISOR FOLLOW_UP TECHNICAL"`
}

// UpdateUserInput represents a partial account update; absent fields are left as is
type UpdateUserInput struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email" validate:"omitempty,email,max=100"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
	City     *string `json:"city" validate:"omitempty,max=100"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// ToUpdate converts the input into the domain update
func (in *UpdateUserInput) ToUpdate() domain.UserUpdate {
	return domain.UserUpdate{
		Name:     in.Name,
		Username: in.Username,
		Email:    in.Email,
		Phone:    in.Phone,
		City:     in.City,
		Password: in.Password,
	}
}

// CreateAgent creates an ACTIVE agent account
func (s *UserService) CreateAgent(ctx context.Context, actorID string, input *CreateUserInput) (*domain.User, error) {
	return s.create(ctx, actorID, domain.RoleAgent, input)
}

// CreateAdmin creates an administrative account. Role defaults to ADMIN.
func (s *UserService) CreateAdmin(ctx context.Context, actorID string, input *CreateUserInput) (*domain.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleAdmin
	}
	if !role.IsAdministrative() {
		return nil, domain.ErrInvalidInput
	}
	return s.create(ctx, actorID, role, input)
}

func (s *UserService) create(ctx context.Context, actorID string, role domain.Role, input *CreateUserInput) (*domain.User, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := domain.CanCreateUser(actor, role); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(input.Username)
	if username == "" || strings.TrimSpace(input.Name) == "" || !password.ValidatePassword(input.Password) {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEntry
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(input.Name),
		Username: username,
		Email:    strings.TrimSpace(input.Email),
		Password: hashed,
		Role:     role,
		Phone:    strings.TrimSpace(input.Phone),
		City:     strings.TrimSpace(input.City),
		Status:   domain.UserActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("👤 %s account %s created by %s", role, user.Username, actor.Username)
	return user, nil
}

// ListAgents lists every agent
func (s *UserService) ListAgents(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.ListByRoles(ctx, domain.RoleAgent)
}

// ListAdmins lists every administrative account
func (s *UserService) ListAdmins(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.ListByRoles(ctx, domain.AdministrativeRoles...)
}

// GetAgent gets an agent by ID
func (s *UserService) GetAgent(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleAgent {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

// UpdateAgent updates an agent account
func (s *UserService) UpdateAgent(ctx context.Context, actorID, id string, upd domain.UserUpdate) (*domain.User, error) {
	target, err := s.GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, actorID, target, upd)
}

// UpdateAdmin updates an administrative account
func (s *UserService) UpdateAdmin(ctx context.Context, actorID, id string, upd domain.UserUpdate) (*domain.User, error) {
	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !target.Role.IsAdministrative() {
		return nil, domain.ErrNotFound
	}
	return s.update(ctx, actorID, target, upd)
}

// UpdateProfile updates the actor's own account
func (s *UserService) UpdateProfile(ctx context.Context, actorID string, upd domain.UserUpdate) (*domain.User, error) {
	target, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, actorID, target, upd)
}

func (s *UserService) update(ctx context.Context, actorID string, target *domain.User, upd domain.UserUpdate) (*domain.User, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	allowed, err := domain.AuthorizeUserUpdate(actor, target, upd)
	if err != nil {
		return nil, err
	}
	if allowed.IsEmpty() {
		return target, nil
	}

	if allowed.Username != nil {
		username := strings.TrimSpace(*allowed.Username)
		if username == "" {
			return nil, domain.ErrInvalidInput
		}
		if username != target.Username {
			exists, err := s.userRepo.ExistsByUsername(ctx, username)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrDuplicateEntry
			}
		}
		allowed.Username = &username
	}

	if allowed.Password != nil {
		if !password.ValidatePassword(*allowed.Password) {
			return nil, domain.ErrInvalidInput
		}
		hashed, err := password.Hash(*allowed.Password)
		if err != nil {
			return nil, err
		}
		target.Password = hashed
	}

	allowed.Apply(target)
	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// ToggleAgentStatus flips an agent between ACTIVE and SUSPENDED.
// Suspending also closes the agent's open sessions.
func (s *UserService) ToggleAgentStatus(ctx context.Context, actorID, id string) (*domain.User, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireAdministrative(actor); err != nil {
		return nil, err
	}

	agent, err := s.GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}

	if agent.IsSuspended() {
		agent.Status = domain.UserActive
	} else {
		agent.Status = domain.UserSuspended
	}
	if err := s.userRepo.Update(ctx, agent); err != nil {
		return nil, err
	}

	log.Printf("🔁 Agent %s is now %s (by %s)", agent.Username, agent.Status, actor.Username)

	if agent.IsSuspended() && s.sessions != nil {
		if _, err := s.sessions.CloseUser(ctx, agent.ID); err != nil {
			// the watcher sweep closes them on its next run
			log.Printf("⚠️ Failed to close sessions of %s: %v", agent.Username, err)
		}
	}
	return agent, nil
}

// actor loads the acting user; an unknown actor is treated as unauthorised
func (s *UserService) actor(ctx context.Context, id string) (*domain.User, error) {
	actor, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrForbidden
	}
	return actor, err
}
