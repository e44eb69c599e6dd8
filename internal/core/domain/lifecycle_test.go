package domain

import (
	"errors"
	"testing"
)

func TestCheckTransition(t *testing.T) {
	all := []RequestStatus{StatusPending, StatusAccepted, StatusRejected, StatusNeedInfo}

	for _, from := range []RequestStatus{StatusAccepted, StatusRejected} {
		for _, to := range all {
			if err := CheckTransition(from, to, "reason"); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("%s -> %s: got %v, want ErrInvalidTransition", from, to, err)
			}
		}
	}

	for _, from := range []RequestStatus{StatusPending, StatusNeedInfo} {
		for _, to := range all {
			if from == StatusPending && to == StatusPending {
				continue
			}
			reason := ""
			if to == StatusRejected {
				reason = "too expensive"
			}
			if err := CheckTransition(from, to, reason); err != nil {
				t.Errorf("%s -> %s: unexpected error %v", from, to, err)
			}
		}
	}

	if err := CheckTransition(StatusPending, StatusPending, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("pending -> pending: got %v, want ErrInvalidTransition", err)
	}
	if err := CheckTransition(StatusNeedInfo, StatusNeedInfo, ""); err != nil {
		t.Errorf("need info -> need info: unexpected error %v", err)
	}

	if err := CheckTransition(StatusPending, StatusRejected, ""); !errors.Is(err, ErrMissingReason) {
		t.Errorf("empty reason: got %v, want ErrMissingReason", err)
	}
	if err := CheckTransition(StatusPending, StatusRejected, "   "); !errors.Is(err, ErrMissingReason) {
		t.Errorf("blank reason: got %v, want ErrMissingReason", err)
	}
	if err := CheckTransition(StatusPending, "ARCHIVED", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown target: got %v, want ErrInvalidInput", err)
	}
}

func TestCityFromLocation(t *testing.T) {
	tests := map[string]string{
		"Baghdad - Karrada":   "Baghdad",
		"  Basra-Ashar ":      "Basra",
		"Erbil":               "Erbil",
		"":                    UnspecifiedCity,
		" - somewhere":        UnspecifiedCity,
		"Najaf - Kufa - East": "Najaf",
	}
	for in, want := range tests {
		if got := CityFromLocation(in); got != want {
			t.Errorf("CityFromLocation(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInstitutionStatusFor(t *testing.T) {
	if got := InstitutionStatusFor(StatusAccepted); got != InstitutionCustomer {
		t.Errorf("accepted -> %s", got)
	}
	if got := InstitutionStatusFor(StatusRejected); got != InstitutionInterested {
		t.Errorf("rejected -> %s", got)
	}
}
