package services

import (
	"context"
	"testing"
	"time"

	"mandoubi/internal/core/domain"
)

func newInstitutionService(repo *memInstitutions) *InstitutionService {
	s := NewInstitutionService(repo)
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestSyncFromRequestIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newMemInstitutions()
	s := newInstitutionService(repo)
	req := &domain.SalesRequest{
		ID:              "R1",
		AgentName:       "Ali",
		InstitutionName: "Omega Labs",
		Location:        "Khobar - Corniche",
		Status:          domain.StatusAccepted,
	}

	for i := 0; i < 2; i++ {
		if _, err := s.SyncFromRequest(ctx, req); err != nil {
			t.Fatalf("sync %d: %v", i, err)
		}
	}

	rows := repo.byName("Omega Labs")
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].City != "Khobar" || rows[0].Status != domain.InstitutionCustomer {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestSyncUpdatesExistingInstitution(t *testing.T) {
	ctx := context.Background()
	repo := newMemInstitutions()
	repo.items["I1"] = domain.Institution{ID: "I1", Name: "Sigma", City: "Tabuk", Status: domain.InstitutionLater, LastVisitedBy: "Omar"}
	s := newInstitutionService(repo)

	got, err := s.SyncFromRequest(ctx, &domain.SalesRequest{
		InstitutionName: "Sigma",
		AgentName:       "Ali",
		Location:        "Riyadh",
		Status:          domain.StatusAccepted,
	})
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if got.ID != "I1" || got.City != "Tabuk" || got.Status != domain.InstitutionCustomer || got.LastVisitedBy != "Ali" {
		t.Errorf("institution = %+v", got)
	}
}

func TestSyncRecoversFromLostInsertRace(t *testing.T) {
	ctx := context.Background()
	repo := newMemInstitutions()
	repo.beforeCreate = func() {
		repo.mu.Lock()
		repo.items["winner"] = domain.Institution{ID: "winner", Name: "Race Corp", Status: domain.InstitutionInterested}
		repo.mu.Unlock()
	}
	s := newInstitutionService(repo)

	got, err := s.SyncFromRequest(ctx, &domain.SalesRequest{
		InstitutionName: "Race Corp",
		AgentName:       "Ali",
		Location:        "Riyadh",
		Status:          domain.StatusAccepted,
	})
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if got.ID != "winner" {
		t.Errorf("updated id = %s, want winner", got.ID)
	}
	rows := repo.byName("Race Corp")
	if len(rows) != 1 || rows[0].Status != domain.InstitutionCustomer {
		t.Errorf("rows = %+v", rows)
	}
}

func TestSyncWithoutCity(t *testing.T) {
	repo := newMemInstitutions()
	s := newInstitutionService(repo)
	got, err := s.SyncFromRequest(context.Background(), &domain.SalesRequest{
		InstitutionName: "Nowhere",
		Location:        " - ",
		Status:          domain.StatusAccepted,
	})
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if got.City != domain.UnspecifiedCity {
		t.Errorf("city = %q", got.City)
	}
}

func TestLogVisit(t *testing.T) {
	ctx := context.Background()
	repo := newMemInstitutions()
	s := newInstitutionService(repo)
	ali := agentUser("A1", "Ali")

	got, err := s.LogVisit(ctx, ali, &LogVisitInput{Name: "Pi Bank", City: "Abha"})
	if err != nil {
		t.Fatalf("first visit: %v", err)
	}
	if got.Status != domain.InstitutionInterested || got.City != "Abha" || got.LastVisitDate != "2025-03-14" {
		t.Errorf("created = %+v", got)
	}

	// a known institution keeps its status
	stored := repo.items[got.ID]
	stored.Status = domain.InstitutionCustomer
	repo.items[got.ID] = stored

	omar := agentUser("A2", "Omar")
	got, err = s.LogVisit(ctx, omar, &LogVisitInput{Name: "Pi Bank"})
	if err != nil {
		t.Fatalf("second visit: %v", err)
	}
	if got.Status != domain.InstitutionCustomer || got.LastVisitedBy != "Omar" || got.City != "Abha" {
		t.Errorf("updated = %+v", got)
	}
	if len(repo.byName("Pi Bank")) != 1 {
		t.Error("visit created a duplicate row")
	}

	if _, err := s.LogVisit(ctx, ali, &LogVisitInput{Name: " "}); err != domain.ErrInvalidInput {
		t.Errorf("blank name: got %v", err)
	}
}

func TestInstitutionListSearch(t *testing.T) {
	ctx := context.Background()
	repo := newMemInstitutions()
	repo.items["1"] = domain.Institution{ID: "1", Name: "Alpha Clinic", City: "Riyadh"}
	repo.items["2"] = domain.Institution{ID: "2", Name: "Beta School", City: "Jeddah"}
	s := newInstitutionService(repo)

	all, _ := s.List(ctx, "")
	if len(all) != 2 {
		t.Errorf("all = %d", len(all))
	}
	found, _ := s.List(ctx, "jed")
	if len(found) != 1 || found[0].ID != "2" {
		t.Errorf("search = %+v", found)
	}
	if err := s.Delete(ctx, "1"); err != nil {
		t.Errorf("delete: %v", err)
	}
	if err := s.Delete(ctx, "1"); err != domain.ErrNotFound {
		t.Errorf("second delete: got %v", err)
	}
}
