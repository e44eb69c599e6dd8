package domain

import "time"

// RequestStatusChanged is published after a status transition is persisted
type RequestStatusChanged struct {
	RequestID       string        `json:"request_id"`
	AgentID         string        `json:"agent_id"`
	InstitutionName string        `json:"institution_name"`
	From            RequestStatus `json:"from"`
	To              RequestStatus `json:"to"`
	Reason          string        `json:"reason,omitempty"`
	ChangedBy       string        `json:"changed_by"`
	ChangedAt       time.Time     `json:"changed_at"`
}
