package services

import (
	"context"
	"errors"
	"testing"

	"mandoubi/internal/core/domain"
	"mandoubi/internal/pkg/password"
)

type recordingCloser struct {
	closed []string
}

func (c *recordingCloser) CloseUser(_ context.Context, userID string) (int, error) {
	c.closed = append(c.closed, userID)
	return 1, nil
}

func strPtr(s string) *string { return &s }

func TestCreateAgentAndAdmin(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers(adminUser("D1", domain.RoleAdmin), adminUser("S1", domain.RoleSupervisor))
	s := NewUserService(users, nil)

	agent, err := s.CreateAgent(ctx, "S1", &CreateUserInput{Name: "Ali", Username: "ali", Password: "secret1", City: "Riyadh"})
	if err != nil {
		t.Fatalf("create agent: %v", err)
	}
	if agent.Role != domain.RoleAgent || agent.Status != domain.UserActive {
		t.Errorf("agent = %+v", agent)
	}
	if agent.Password == "secret1" || !password.Verify("secret1", agent.Password) {
		t.Error("password must be stored hashed")
	}

	if _, err := s.CreateAgent(ctx, "D1", &CreateUserInput{Name: "Ali 2", Username: "ali", Password: "secret1"}); !errors.Is(err, domain.ErrDuplicateEntry) {
		t.Errorf("duplicate username: got %v", err)
	}
	if _, err := s.CreateAgent(ctx, "D1", &CreateUserInput{Name: "Short", Username: "short", Password: "123"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("short password: got %v", err)
	}

	if _, err := s.CreateAdmin(ctx, "S1", &CreateUserInput{Name: "X", Username: "x-admin", Password: "secret1"}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("supervisor creating admin: got %v", err)
	}
	admin, err := s.CreateAdmin(ctx, "D1", &CreateUserInput{Name: "Follow", Username: "follow", Password: "secret1", Role: domain.RoleFollowUp})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if admin.Role != domain.RoleFollowUp {
		t.Errorf("role = %s", admin.Role)
	}
	if _, err := s.CreateAdmin(ctx, "D1", &CreateUserInput{Name: "A", Username: "agentish", Password: "secret1", Role: domain.RoleAgent}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("agent role through admin create: got %v", err)
	}

	agents, _ := s.ListAgents(ctx)
	admins, _ := s.ListAdmins(ctx)
	if len(agents) != 1 || len(admins) != 3 {
		t.Errorf("agents = %d, admins = %d", len(agents), len(admins))
	}
}

func TestSupervisorCannotChangeDirectorPassword(t *testing.T) {
	ctx := context.Background()
	hashed, _ := password.Hash("director-pass")
	director := adminUser("D1", domain.RoleAdmin)
	director.Password = hashed
	supervisor := adminUser("S1", domain.RoleSupervisor)
	follow := adminUser("F1", domain.RoleFollowUp)
	follow.Password = hashed
	users := newMemUsers(director, supervisor, follow)
	s := NewUserService(users, nil)

	// the password alone is dropped, leaving an empty update
	if _, err := s.UpdateAdmin(ctx, "S1", "D1", domain.UserUpdate{Password: strPtr("hacked1")}); err != nil {
		t.Fatalf("password-only update: %v", err)
	}
	if got := users.get(t, "D1"); got.Password != hashed {
		t.Error("director password changed")
	}

	// with other fields the director stays off limits
	_, err := s.UpdateAdmin(ctx, "S1", "D1", domain.UserUpdate{Name: strPtr("New"), Password: strPtr("hacked1")})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("name update on director: got %v", err)
	}

	// a peer's other fields apply while the password is dropped
	got, err := s.UpdateAdmin(ctx, "S1", "F1", domain.UserUpdate{Name: strPtr("Fatima"), Password: strPtr("hacked1")})
	if err != nil {
		t.Fatalf("peer update: %v", err)
	}
	if got.Name != "Fatima" {
		t.Errorf("name = %q", got.Name)
	}
	if stored := users.get(t, "F1"); stored.Password != hashed {
		t.Error("peer password changed")
	}
}

func TestDirectorUpdatesAnyone(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers(adminUser("D1", domain.RoleAdmin), adminUser("S1", domain.RoleSupervisor))
	s := NewUserService(users, nil)

	if _, err := s.UpdateAdmin(ctx, "D1", "S1", domain.UserUpdate{Password: strPtr("newpass")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if stored := users.get(t, "S1"); !password.Verify("newpass", stored.Password) {
		t.Error("supervisor password not updated")
	}
}

func TestUpdateUsernameUniqueness(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers(adminUser("D1", domain.RoleAdmin), agentUser("A1", "Ali"), agentUser("A2", "Omar"))
	s := NewUserService(users, nil)

	_, err := s.UpdateAgent(ctx, "D1", "A1", domain.UserUpdate{Username: strPtr("omar")})
	if !errors.Is(err, domain.ErrDuplicateEntry) {
		t.Errorf("taken username: got %v", err)
	}
	if _, err := s.UpdateAgent(ctx, "D1", "A1", domain.UserUpdate{Username: strPtr("ali")}); err != nil {
		t.Errorf("unchanged username: %v", err)
	}
	if _, err := s.UpdateAgent(ctx, "D1", "D1", domain.UserUpdate{Name: strPtr("x")}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("admin through agent route: got %v", err)
	}
}

func TestAgentProfileEdits(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers(agentUser("A1", "Ali"))
	s := NewUserService(users, nil)

	got, err := s.UpdateProfile(ctx, "A1", domain.UserUpdate{Name: strPtr("Ali K"), City: strPtr("Jeddah")})
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if got.Name != "Ali K" || got.City != "Jeddah" {
		t.Errorf("user = %+v", got)
	}
	if _, err := s.UpdateProfile(ctx, "A1", domain.UserUpdate{Username: strPtr("boss")}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("agent username change: got %v", err)
	}
}

func TestToggleAgentStatusClosesSessions(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers(adminUser("S1", domain.RoleSupervisor), agentUser("A1", "Ali"))
	closer := &recordingCloser{}
	s := NewUserService(users, closer)

	got, err := s.ToggleAgentStatus(ctx, "S1", "A1")
	if err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if got.Status != domain.UserSuspended || users.get(t, "A1").Status != domain.UserSuspended {
		t.Errorf("status = %s", got.Status)
	}
	if len(closer.closed) != 1 || closer.closed[0] != "A1" {
		t.Errorf("closed = %v", closer.closed)
	}

	got, err = s.ToggleAgentStatus(ctx, "S1", "A1")
	if err != nil || got.Status != domain.UserActive {
		t.Errorf("reactivate: %v, %s", err, got.Status)
	}
	if len(closer.closed) != 1 {
		t.Error("reactivation must not close sessions")
	}

	if _, err := s.ToggleAgentStatus(ctx, "A1", "A1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("agent toggling: got %v", err)
	}
}
