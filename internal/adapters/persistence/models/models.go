package models

import (
	"time"

	"mandoubi/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Accounts
// ============================================================

// User represents users table. Agents and administrators share the table and are
// told apart by role.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Username  string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string    `gorm:"size:100" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:20;index;not null" json:"role"`
	Phone     string    `gorm:"size:30" json:"phone"`
	City      string    `gorm:"size:100" json:"city"`
	Status    string    `gorm:"size:20;default:'ACTIVE'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// ToDomain converts the row to a domain user
func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		Role:      domain.Role(u.Role),
		Phone:     u.Phone,
		City:      u.City,
		Status:    domain.UserStatus(u.Status),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserFromDomain converts a domain user to a row
func UserFromDomain(u *domain.User) *User {
	return &User{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		Role:      string(u.Role),
		Phone:     u.Phone,
		City:      u.City,
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ============================================================
// Catalogue
// ============================================================

// SystemProduct represents system_products table. Each tier gets its own column.
type SystemProduct struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	Name               string    `gorm:"size:100;not null" json:"name"`
	Description        string    `gorm:"type:text" json:"description"`
	PriceStandard      int64     `gorm:"not null;default:0" json:"price_standard"`
	PricePlus          int64     `gorm:"not null;default:0" json:"price_plus"`
	PricePremium       int64     `gorm:"not null;default:0" json:"price_premium"`
	CommissionStandard int64     `gorm:"not null;default:0" json:"commission_standard"`
	CommissionPlus     int64     `gorm:"not null;default:0" json:"commission_plus"`
	CommissionPremium  int64     `gorm:"not null;default:0" json:"commission_premium"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SystemProduct) TableName() string {
	return "system_products"
}

// ToDomain converts the row to a domain product
func (s *SystemProduct) ToDomain() *domain.SystemProduct {
	return &domain.SystemProduct{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Prices: domain.TierTable{
			domain.TierStandard: s.PriceStandard,
			domain.TierPlus:     s.PricePlus,
			domain.TierPremium:  s.PricePremium,
		},
		Commission: domain.TierTable{
			domain.TierStandard: s.CommissionStandard,
			domain.TierPlus:     s.CommissionPlus,
			domain.TierPremium:  s.CommissionPremium,
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// SystemProductFromDomain converts a domain product to a row
func SystemProductFromDomain(s *domain.SystemProduct) *SystemProduct {
	return &SystemProduct{
		ID:                 s.ID,
		Name:               s.Name,
		Description:        s.Description,
		PriceStandard:      s.Prices[domain.TierStandard],
		PricePlus:          s.Prices[domain.TierPlus],
		PricePremium:       s.Prices[domain.TierPremium],
		CommissionStandard: s.Commission[domain.TierStandard],
		CommissionPlus:     s.Commission[domain.TierPlus],
		CommissionPremium:  s.Commission[domain.TierPremium],
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// ============================================================
// Sales pipeline
// ============================================================

// SalesRequest represents sales_requests table. agent_name and system_name are
// snapshots and carry no foreign key.
type SalesRequest struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	AgentID          string    `gorm:"size:36;index;not null" json:"agent_id"`
	AgentName        string    `gorm:"size:100" json:"agent_name"`
	InstitutionName  string    `gorm:"size:191;not null" json:"institution_name"`
	SystemID         string    `gorm:"size:36;index" json:"system_id"`
	SystemName       string    `gorm:"size:100" json:"system_name"`
	SubscriptionType string    `gorm:"size:20;not null" json:"subscription_type"`
	Location         string    `gorm:"size:255" json:"location"`
	ContactName      string    `gorm:"size:100" json:"contact_name"`
	ContactPhone     string    `gorm:"size:30" json:"contact_phone"`
	Status           string    `gorm:"size:20;index;default:'PENDING'" json:"status"`
	RejectionReason  *string   `gorm:"type:text" json:"rejection_reason"`
	AdminNote        *string   `gorm:"type:text" json:"admin_note"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (SalesRequest) TableName() string {
	return "sales_requests"
}

// ToDomain converts the row to a domain request
func (r *SalesRequest) ToDomain() *domain.SalesRequest {
	return &domain.SalesRequest{
		ID:               r.ID,
		AgentID:          r.AgentID,
		AgentName:        r.AgentName,
		InstitutionName:  r.InstitutionName,
		SystemID:         r.SystemID,
		SystemName:       r.SystemName,
		SubscriptionType: domain.SubscriptionType(r.SubscriptionType),
		Location:         r.Location,
		ContactName:      r.ContactName,
		ContactPhone:     r.ContactPhone,
		Status:           domain.RequestStatus(r.Status),
		RejectionReason:  deref(r.RejectionReason),
		AdminNote:        deref(r.AdminNote),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// SalesRequestFromDomain converts a domain request to a row
func SalesRequestFromDomain(r *domain.SalesRequest) *SalesRequest {
	return &SalesRequest{
		ID:               r.ID,
		AgentID:          r.AgentID,
		AgentName:        r.AgentName,
		InstitutionName:  r.InstitutionName,
		SystemID:         r.SystemID,
		SystemName:       r.SystemName,
		SubscriptionType: string(r.SubscriptionType),
		Location:         r.Location,
		ContactName:      r.ContactName,
		ContactPhone:     r.ContactPhone,
		Status:           string(r.Status),
		RejectionReason:  ref(r.RejectionReason),
		AdminNote:        ref(r.AdminNote),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// Institution represents institutions table. name is the natural key and
// compares byte for byte (binary collation), so case variants stay distinct rows.
type Institution struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Name          string    `gorm:"type:varchar(191) COLLATE utf8mb4_bin;uniqueIndex;not null" json:"name"`
	City          string    `gorm:"size:100" json:"city"`
	Address       string    `gorm:"size:255" json:"address"`
	LastVisitedBy string    `gorm:"size:100" json:"last_visited_by"`
	LastVisitDate string    `gorm:"size:10" json:"last_visit_date"`
	Status        string    `gorm:"size:20;default:'INTERESTED'" json:"status"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Institution) TableName() string {
	return "institutions"
}

// ToDomain converts the row to a domain institution
func (i *Institution) ToDomain() *domain.Institution {
	return &domain.Institution{
		ID:            i.ID,
		Name:          i.Name,
		City:          i.City,
		Address:       i.Address,
		LastVisitedBy: i.LastVisitedBy,
		LastVisitDate: i.LastVisitDate,
		Status:        domain.InstitutionStatus(i.Status),
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

// InstitutionFromDomain converts a domain institution to a row
func InstitutionFromDomain(i *domain.Institution) *Institution {
	return &Institution{
		ID:            i.ID,
		Name:          i.Name,
		City:          i.City,
		Address:       i.Address,
		LastVisitedBy: i.LastVisitedBy,
		LastVisitDate: i.LastVisitDate,
		Status:        string(i.Status),
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

// ============================================================
// Notifications
// ============================================================

// Notification represents notifications table
type Notification struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;index;not null" json:"user_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Type      string    `gorm:"size:20;not null" json:"type"`
	IsRead    bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// ToDomain converts the row to a domain notification
func (n *Notification) ToDomain() *domain.Notification {
	return &domain.Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      domain.NotificationType(n.Type),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// NotificationFromDomain converts a domain notification to a row
func NotificationFromDomain(n *domain.Notification) *Notification {
	return &Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&SystemProduct{},
		&SalesRequest{},
		&Institution{},
		&Notification{},
	)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
