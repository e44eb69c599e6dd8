package services

import (
	"context"
	"sort"
	"time"

	"mandoubi/internal/adapters/persistence/repositories"
	"mandoubi/internal/core/domain"
)

// ReportService derives financial and activity figures from requests
type ReportService struct {
	requestRepo repositories.RequestRepository
	systemRepo  repositories.SystemRepository
	userRepo    repositories.UserRepository
	now         func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	requestRepo repositories.RequestRepository,
	systemRepo repositories.SystemRepository,
	userRepo repositories.UserRepository,
) *ReportService {
	return &ReportService{
		requestRepo: requestRepo,
		systemRepo:  systemRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// AgentBreakdown is one agent's row in the report
type AgentBreakdown struct {
	AgentID    string `json:"agent_id"`
	AgentName  string `json:"agent_name"`
	Requests   int    `json:"requests"`
	Accepted   int    `json:"accepted"`
	Revenue    int64  `json:"revenue"`
	Commission int64  `json:"commission"`
}

// SystemBreakdown is one product's share of accepted contracts
type SystemBreakdown struct {
	SystemID   string `json:"system_id"`
	SystemName string `json:"system_name"`
	Accepted   int    `json:"accepted"`
	Share      int64  `json:"share"` // percent of accepted contracts
}

// Report is the administrator sales report
type Report struct {
	TotalRequests        int               `json:"total_requests"`
	AcceptedContracts    int               `json:"accepted_contracts"`
	TotalRevenue         int64             `json:"total_revenue"`
	TotalCommission      int64             `json:"total_commission"`
	AverageContractValue int64             `json:"average_contract_value"`
	ConversionRate       int64             `json:"conversion_rate"`
	Agents               []AgentBreakdown  `json:"agents"`
	Systems              []SystemBreakdown `json:"systems"`
	GeneratedAt          time.Time         `json:"generated_at"`
}

// DailyCount is the number of requests created on one date
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Dashboard is the administrator overview
type Dashboard struct {
	TodayRequests   int                             `json:"today_requests"`
	PendingCount    int                             `json:"pending_count"`
	AcceptedCount   int                             `json:"accepted_count"`
	ConversionRate  int64                           `json:"conversion_rate"`
	Last7Days       []DailyCount                    `json:"last_7_days"`
	SubscriptionMix map[domain.SubscriptionType]int `json:"subscription_mix"`
}

// AgentStats is an agent's own summary
type AgentStats struct {
	Total           int   `json:"total"`
	Accepted        int   `json:"accepted"`
	Pending         int   `json:"pending"`
	Rejected        int   `json:"rejected"`
	ConversionRate  int64 `json:"conversion_rate"`
	TotalCommission int64 `json:"total_commission"`
}

func (s *ReportService) load(ctx context.Context) ([]*domain.SalesRequest, domain.SystemCatalog, error) {
	requests, err := s.requestRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	systems, err := s.systemRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return requests, domain.NewSystemCatalog(systems), nil
}

// Report builds the sales report over every request
func (s *ReportService) Report(ctx context.Context) (*Report, error) {
	requests, catalog, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	agents, err := s.userRepo.ListByRoles(ctx, domain.RoleAgent)
	if err != nil {
		return nil, err
	}

	accepted := domain.Accepted(requests)
	report := &Report{
		TotalRequests:        len(requests),
		AcceptedContracts:    len(accepted),
		TotalRevenue:         domain.TotalRevenue(requests, catalog),
		TotalCommission:      domain.TotalCommission(requests, catalog),
		AverageContractValue: domain.AverageContractValue(accepted, catalog),
		ConversionRate:       domain.ConversionRate(requests),
		GeneratedAt:          s.now(),
	}

	// every agent gets a row, plus any agent id that only survives in request snapshots
	rows := make(map[string]*AgentBreakdown, len(agents))
	order := make([]string, 0, len(agents))
	for _, a := range agents {
		rows[a.ID] = &AgentBreakdown{AgentID: a.ID, AgentName: a.Name}
		order = append(order, a.ID)
	}
	for _, r := range requests {
		row, ok := rows[r.AgentID]
		if !ok {
			row = &AgentBreakdown{AgentID: r.AgentID, AgentName: r.AgentName}
			rows[r.AgentID] = row
			order = append(order, r.AgentID)
		}
		row.Requests++
		if r.Status == domain.StatusAccepted {
			row.Accepted++
			row.Revenue += catalog.PriceOf(r)
			row.Commission += catalog.CommissionOf(r)
		}
	}
	report.Agents = make([]AgentBreakdown, 0, len(order))
	for _, id := range order {
		report.Agents = append(report.Agents, *rows[id])
	}
	sort.SliceStable(report.Agents, func(i, j int) bool {
		return report.Agents[i].Accepted > report.Agents[j].Accepted
	})

	perSystem := make(map[string]int)
	for _, r := range accepted {
		perSystem[r.SystemID]++
	}
	report.Systems = make([]SystemBreakdown, 0, len(catalog))
	for _, sys := range catalog {
		count := perSystem[sys.ID]
		report.Systems = append(report.Systems, SystemBreakdown{
			SystemID:   sys.ID,
			SystemName: sys.Name,
			Accepted:   count,
			Share:      domain.Percent(count, len(accepted)),
		})
	}
	sort.Slice(report.Systems, func(i, j int) bool {
		return report.Systems[i].SystemName < report.Systems[j].SystemName
	})

	return report, nil
}

// Dashboard builds today's overview and the last seven days of activity
func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	requests, err := s.requestRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	loc := now.Location()
	today := now.Format(domain.DateLayout)

	dash := &Dashboard{
		ConversionRate: domain.ConversionRate(requests),
		SubscriptionMix: map[domain.SubscriptionType]int{
			domain.TierStandard: 0,
			domain.TierPlus:     0,
			domain.TierPremium:  0,
		},
	}

	perDay := make(map[string]int)
	for _, r := range requests {
		day := r.CreatedAt.In(loc).Format(domain.DateLayout)
		perDay[day]++
		if day == today {
			dash.TodayRequests++
		}
		switch r.Status {
		case domain.StatusPending:
			dash.PendingCount++
		case domain.StatusAccepted:
			dash.AcceptedCount++
		}
		if r.SubscriptionType.Valid() {
			dash.SubscriptionMix[r.SubscriptionType]++
		}
	}

	dash.Last7Days = make([]DailyCount, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format(domain.DateLayout)
		dash.Last7Days = append(dash.Last7Days, DailyCount{Date: day, Count: perDay[day]})
	}

	return dash, nil
}

// AgentStats summarises one agent's requests and earned commission
func (s *ReportService) AgentStats(ctx context.Context, agentID string) (*AgentStats, error) {
	requests, err := s.requestRepo.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	systems, err := s.systemRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &AgentStats{
		Total:           len(requests),
		ConversionRate:  domain.ConversionRate(requests),
		TotalCommission: domain.TotalCommission(requests, domain.NewSystemCatalog(systems)),
	}
	for _, r := range requests {
		switch r.Status {
		case domain.StatusAccepted:
			stats.Accepted++
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}
