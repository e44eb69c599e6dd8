package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleAdmin      Role = "ADMIN" // director, top administrative tier
	RoleSupervisor Role = "SUPERVISOR"
	RoleFollowUp   Role = "FOLLOW_UP"
	RoleTechnical  Role = "TECHNICAL"
	RoleAgent      Role = "AGENT"
)

// AdministrativeRoles lists every role that authenticates against the admin family
var AdministrativeRoles = []Role{RoleAdmin, RoleSupervisor, RoleFollowUp, RoleTechnical}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleFollowUp, RoleTechnical, RoleAgent:
		return true
	}
	return false
}

// IsAdministrative reports whether r is any non-agent role
func (r Role) IsAdministrative() bool {
	return r.Valid() && r != RoleAgent
}

// IsDirector reports whether r is the top administrative role
func (r Role) IsDirector() bool {
	return r == RoleAdmin
}

// LoginFamily selects the pool a login is checked against
type LoginFamily string

const (
	FamilyAgent LoginFamily = "AGENT"
	FamilyAdmin LoginFamily = "ADMIN"
)

// Admits reports whether a user with role r may log in through family f
func (f LoginFamily) Admits(r Role) bool {
	switch f {
	case FamilyAgent:
		return r == RoleAgent
	case FamilyAdmin:
		return r.IsAdministrative()
	}
	return false
}

// UserStatus represents account status
type UserStatus string

const (
	UserActive    UserStatus = "ACTIVE"
	UserSuspended UserStatus = "SUSPENDED"
)

// User represents a user in the domain layer
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Username  string     `json:"username"`
	Email     string     `json:"email,omitempty"`
	Password  string     `json:"-"` // Hashed
	Role      Role       `json:"role"`
	Phone     string     `json:"phone,omitempty"`
	City      string     `json:"city,omitempty"`
	Status    UserStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsSuspended reports whether the account is suspended
func (u *User) IsSuspended() bool {
	return u.Status == UserSuspended
}

// SubscriptionType is a pricing tier
type SubscriptionType string

const (
	TierStandard SubscriptionType = "STANDARD"
	TierPlus     SubscriptionType = "PLUS"
	TierPremium  SubscriptionType = "PREMIUM"
)

// Tiers lists every subscription tier in display order
var Tiers = []SubscriptionType{TierStandard, TierPlus, TierPremium}

// Valid reports whether t is a known tier
func (t SubscriptionType) Valid() bool {
	return t == TierStandard || t == TierPlus || t == TierPremium
}

// TierTable maps every tier to an amount in the smallest currency unit
type TierTable map[SubscriptionType]int64

// Complete reports whether all three tiers are present with non-negative amounts
func (t TierTable) Complete() bool {
	for _, tier := range Tiers {
		amount, ok := t[tier]
		if !ok || amount < 0 {
			return false
		}
	}
	return len(t) == len(Tiers)
}

// SystemProduct is a sellable software product line
type SystemProduct struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Prices      TierTable `json:"prices"`
	Commission  TierTable `json:"commission"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RequestStatus is the lifecycle state of a sales request
type RequestStatus string

const (
	StatusPending  RequestStatus = "PENDING"
	StatusAccepted RequestStatus = "ACCEPTED"
	StatusRejected RequestStatus = "REJECTED"
	StatusNeedInfo RequestStatus = "NEED_INFO"
)

// Valid reports whether s is a known status
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusNeedInfo:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed
func (s RequestStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// SalesRequest is a proposed sale submitted by an agent.
// AgentName and SystemName are snapshots taken at submission and are never refreshed.
type SalesRequest struct {
	ID               string           `json:"id"`
	AgentID          string           `json:"agent_id"`
	AgentName        string           `json:"agent_name"`
	InstitutionName  string           `json:"institution_name"`
	SystemID         string           `json:"system_id"`
	SystemName       string           `json:"system_name"`
	SubscriptionType SubscriptionType `json:"subscription_type"`
	Location         string           `json:"location"`
	ContactName      string           `json:"contact_name"`
	ContactPhone     string           `json:"contact_phone"`
	Status           RequestStatus    `json:"status"`
	RejectionReason  string           `json:"rejection_reason,omitempty"`
	AdminNote        string           `json:"admin_note,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// InstitutionStatus is the relationship state with a prospect site
type InstitutionStatus string

const (
	InstitutionCustomer      InstitutionStatus = "CUSTOMER"
	InstitutionInterested    InstitutionStatus = "INTERESTED"
	InstitutionNotInterested InstitutionStatus = "NOT_INTERESTED"
	InstitutionRejected      InstitutionStatus = "REJECTED"
	InstitutionLater         InstitutionStatus = "LATER"
)

// Institution is a tracked prospect or customer site, keyed by exact name
type Institution struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	City          string            `json:"city"`
	Address       string            `json:"address"`
	LastVisitedBy string            `json:"last_visited_by"`
	LastVisitDate string            `json:"last_visit_date"` // YYYY-MM-DD
	Status        InstitutionStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// NotificationType controls how a notification is presented
type NotificationType string

const (
	NotificationSuccess NotificationType = "SUCCESS"
	NotificationDanger  NotificationType = "DANGER"
	NotificationInfo    NotificationType = "INFO"
)

// Notification is a one-way message to a user
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

// DateLayout is the calendar date format used for visit dates
const DateLayout = "2006-01-02"
