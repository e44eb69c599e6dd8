package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"mandoubi/internal/core/domain"
	"mandoubi/internal/pkg/password"

	"golang.org/x/crypto/bcrypt"
)

var errBackend = errors.New("backend down")

func init() {
	password.Cost = bcrypt.MinCost
}

// ---- users ----

type memUsers struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemUsers(users ...*domain.User) *memUsers {
	r := &memUsers{users: make(map[string]domain.User)}
	for _, u := range users {
		r.users[u.ID] = *u
	}
	return r
}

func (r *memUsers) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return domain.ErrDuplicateEntry
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *memUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUsers) ListByRoles(_ context.Context, roles ...domain.Role) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		for _, role := range roles {
			if u.Role == role {
				u := u
				out = append(out, &u)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memUsers) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memUsers) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(context.Background(), username)
	return err == nil, nil
}

func (r *memUsers) get(t *testing.T, id string) domain.User {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		t.Fatalf("user %s not stored", id)
	}
	return u
}

// ---- requests ----

type memRequests struct {
	mu       sync.Mutex
	requests map[string]domain.SalesRequest
}

func newMemRequests(requests ...*domain.SalesRequest) *memRequests {
	r := &memRequests{requests: make(map[string]domain.SalesRequest)}
	for _, req := range requests {
		r.requests[req.ID] = *req
	}
	return r
}

func (r *memRequests) Create(_ context.Context, req *domain.SalesRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[req.ID] = *req
	return nil
}

func (r *memRequests) GetByID(_ context.Context, id string) (*domain.SalesRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &req, nil
}

func (r *memRequests) List(_ context.Context) ([]*domain.SalesRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.SalesRequest, 0, len(r.requests))
	for _, req := range r.requests {
		req := req
		out = append(out, &req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memRequests) ListPage(ctx context.Context, status domain.RequestStatus, offset, limit int) ([]*domain.SalesRequest, int64, error) {
	all, _ := r.List(ctx)
	var filtered []*domain.SalesRequest
	for _, req := range all {
		if status == "" || req.Status == status {
			filtered = append(filtered, req)
		}
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return []*domain.SalesRequest{}, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (r *memRequests) ListByAgent(ctx context.Context, agentID string) ([]*domain.SalesRequest, error) {
	all, _ := r.List(ctx)
	var out []*domain.SalesRequest
	for _, req := range all {
		if req.AgentID == agentID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *memRequests) Update(_ context.Context, req *domain.SalesRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[req.ID] = *req
	return nil
}

func (r *memRequests) Transition(_ context.Context, req *domain.SalesRequest, from domain.RequestStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.requests[req.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Status != from {
		return domain.ErrInvalidTransition
	}
	r.requests[req.ID] = *req
	return nil
}

// ---- institutions ----

type memInstitutions struct {
	mu    sync.Mutex
	items map[string]domain.Institution // by id
	// beforeCreate runs once before the next insert, outside the lock
	beforeCreate func()
	failWith     error
}

func newMemInstitutions() *memInstitutions {
	return &memInstitutions{items: make(map[string]domain.Institution)}
}

func (r *memInstitutions) List(_ context.Context) ([]*domain.Institution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Institution, 0, len(r.items))
	for _, inst := range r.items {
		inst := inst
		out = append(out, &inst)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memInstitutions) Search(ctx context.Context, term string) ([]*domain.Institution, error) {
	all, _ := r.List(ctx)
	term = strings.ToLower(term)
	var out []*domain.Institution
	for _, inst := range all {
		if strings.Contains(strings.ToLower(inst.Name), term) || strings.Contains(strings.ToLower(inst.City), term) {
			out = append(out, inst)
		}
	}
	return out, nil
}

func (r *memInstitutions) GetByName(_ context.Context, name string) (*domain.Institution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, inst := range r.items {
		if inst.Name == name {
			return &inst, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memInstitutions) Create(_ context.Context, inst *domain.Institution) error {
	if hook := r.beforeCreate; hook != nil {
		r.beforeCreate = nil
		hook()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Name == inst.Name {
			return domain.ErrDuplicateEntry
		}
	}
	r.items[inst.ID] = *inst
	return nil
}

func (r *memInstitutions) Update(_ context.Context, inst *domain.Institution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[inst.ID]; !ok {
		return domain.ErrNotFound
	}
	r.items[inst.ID] = *inst
	return nil
}

func (r *memInstitutions) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memInstitutions) byName(name string) []domain.Institution {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Institution
	for _, inst := range r.items {
		if inst.Name == name {
			out = append(out, inst)
		}
	}
	return out
}

// ---- systems ----

type memSystems struct {
	mu      sync.Mutex
	systems map[string]domain.SystemProduct
}

func newMemSystems(systems ...*domain.SystemProduct) *memSystems {
	r := &memSystems{systems: make(map[string]domain.SystemProduct)}
	for _, s := range systems {
		r.systems[s.ID] = *s
	}
	return r
}

func (r *memSystems) List(_ context.Context) ([]*domain.SystemProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.SystemProduct, 0, len(r.systems))
	for _, s := range r.systems {
		s := s
		out = append(out, &s)
	}
	return out, nil
}

func (r *memSystems) GetByID(_ context.Context, id string) (*domain.SystemProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.systems[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *memSystems) Create(_ context.Context, product *domain.SystemProduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.systems[product.ID] = *product
	return nil
}

func (r *memSystems) Update(_ context.Context, product *domain.SystemProduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.systems[product.ID]; !ok {
		return domain.ErrNotFound
	}
	r.systems[product.ID] = *product
	return nil
}

func (r *memSystems) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.systems[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.systems, id)
	return nil
}

// ---- notifications ----

type memNotifications struct {
	mu       sync.Mutex
	items    map[string]domain.Notification
	failWith error
	creates  int
}

func newMemNotifications() *memNotifications {
	return &memNotifications{items: make(map[string]domain.Notification)}
}

func (r *memNotifications) ListByUser(_ context.Context, userID string) ([]*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Notification
	for _, n := range r.items {
		if n.UserID == userID {
			n := n
			out = append(out, &n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memNotifications) GetByID(_ context.Context, id string) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &n, nil
}

func (r *memNotifications) Create(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.items[n.ID]; ok {
		return nil
	}
	r.items[n.ID] = *n
	return nil
}

func (r *memNotifications) Update(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[n.ID]; !ok {
		return domain.ErrNotFound
	}
	r.items[n.ID] = *n
	return nil
}

func (r *memNotifications) MarkAllReadByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, n := range r.items {
		if n.UserID == userID {
			n.IsRead = true
			r.items[id] = n
		}
	}
	return nil
}

func (r *memNotifications) CountUnread(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.items {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *memNotifications) forUser(userID string) []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Notification
	for _, n := range r.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// ---- publisher, generator ----

type recordingPublisher struct {
	mu       sync.Mutex
	events   []domain.RequestStatusChanged
	failWith error
}

func (p *recordingPublisher) PublishStatusChanged(_ context.Context, event domain.RequestStatusChanged) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWith != nil {
		return p.failWith
	}
	p.events = append(p.events, event)
	return nil
}

type stubGenerator struct {
	text   string
	err    error
	prompt string
	calls  int
}

func (g *stubGenerator) Generate(_ context.Context, _, prompt string) (string, error) {
	g.calls++
	g.prompt = prompt
	return g.text, g.err
}

// ---- fixtures ----

var fixedNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

func agentUser(id, name string) *domain.User {
	return &domain.User{ID: id, Name: name, Username: strings.ToLower(name), Role: domain.RoleAgent, Status: domain.UserActive}
}

func adminUser(id string, role domain.Role) *domain.User {
	return &domain.User{ID: id, Name: string(role), Username: strings.ToLower(string(role)) + id, Role: role, Status: domain.UserActive}
}

func hrSystem() *domain.SystemProduct {
	return &domain.SystemProduct{
		ID:         "S1",
		Name:       "HR",
		Prices:     domain.TierTable{domain.TierStandard: 100, domain.TierPlus: 200, domain.TierPremium: 300},
		Commission: domain.TierTable{domain.TierStandard: 10, domain.TierPlus: 20, domain.TierPremium: 30},
	}
}

type fixture struct {
	users         *memUsers
	requests      *memRequests
	systems       *memSystems
	institutions  *memInstitutions
	notifications *memNotifications
	publisher     *recordingPublisher
	svc           *RequestService
}

func newFixture(users ...*domain.User) *fixture {
	f := &fixture{
		users:         newMemUsers(users...),
		requests:      newMemRequests(),
		systems:       newMemSystems(hrSystem()),
		institutions:  newMemInstitutions(),
		notifications: newMemNotifications(),
		publisher:     &recordingPublisher{},
	}

	instSvc := NewInstitutionService(f.institutions)
	instSvc.now = func() time.Time { return fixedNow }
	notifSvc := NewNotificationService(f.notifications)
	notifSvc.now = func() time.Time { return fixedNow }

	f.svc = NewRequestService(f.requests, f.users, f.systems, instSvc, notifSvc, f.publisher,
		SideEffectPolicy{Timeout: time.Second, Retries: 1})
	f.svc.now = func() time.Time { return fixedNow }
	return f
}
