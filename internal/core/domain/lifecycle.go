package domain

import "strings"

// UnspecifiedReason stands in for a rejection reason that somehow ended up empty
const UnspecifiedReason = "unspecified"

// UnspecifiedCity is stored when a request location carries no city part
const UnspecifiedCity = "unspecified"

// CheckTransition validates moving a request from one status to another.
// NEED_INFO behaves like PENDING for admin actions; terminal states never move.
// PENDING cannot be re-entered from PENDING.
func CheckTransition(from, to RequestStatus, reason string) error {
	if !to.Valid() {
		return ErrInvalidInput
	}
	if from.IsTerminal() || (from == StatusPending && to == StatusPending) {
		return ErrInvalidTransition
	}
	if to == StatusRejected && strings.TrimSpace(reason) == "" {
		return ErrMissingReason
	}
	return nil
}

// CityFromLocation extracts the city from a "city - area" location string
func CityFromLocation(location string) string {
	city, _, _ := strings.Cut(location, "-")
	city = strings.TrimSpace(city)
	if city == "" {
		return UnspecifiedCity
	}
	return city
}

// InstitutionStatusFor maps a request outcome to the synced institution status
func InstitutionStatusFor(status RequestStatus) InstitutionStatus {
	if status == StatusAccepted {
		return InstitutionCustomer
	}
	return InstitutionInterested
}
