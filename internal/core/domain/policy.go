package domain

// UserUpdate carries the profile fields a caller asked to change.
// A nil field means "leave as is".
type UserUpdate struct {
	Name     *string
	Username *string
	Email    *string
	Phone    *string
	City     *string
	Password *string // plain text, hashed by the service
}

// IsEmpty reports whether no field is set
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Username == nil && u.Email == nil &&
		u.Phone == nil && u.City == nil && u.Password == nil
}

// RequireAdministrative fails unless actor holds an administrative role
func RequireAdministrative(actor *User) error {
	if actor == nil || actor.IsSuspended() || !actor.Role.IsAdministrative() {
		return ErrForbidden
	}
	return nil
}

// RequireDirector fails unless actor is the top administrative role
func RequireDirector(actor *User) error {
	if actor == nil || actor.IsSuspended() || !actor.Role.IsDirector() {
		return ErrForbidden
	}
	return nil
}

// CanCreateUser checks whether actor may create an account with the given role.
// Agents may be created by any administrator, administrative accounts only by the director.
func CanCreateUser(actor *User, role Role) error {
	if !role.Valid() {
		return ErrInvalidInput
	}
	if role == RoleAgent {
		return RequireAdministrative(actor)
	}
	return RequireDirector(actor)
}

// AuthorizeUserUpdate applies the access policy to an update of target by actor and
// returns the update that may actually be applied. Fields the actor may submit but not
// change (another administrator's password) are dropped rather than rejected.
func AuthorizeUserUpdate(actor, target *User, upd UserUpdate) (UserUpdate, error) {
	if actor == nil || target == nil || actor.IsSuspended() {
		return UserUpdate{}, ErrForbidden
	}

	if actor.Role == RoleAgent {
		if actor.ID != target.ID {
			return UserUpdate{}, ErrForbidden
		}
		if upd.Username != nil || upd.Email != nil || upd.Phone != nil || upd.Password != nil {
			return UserUpdate{}, ErrForbidden
		}
		return UserUpdate{Name: upd.Name, City: upd.City}, nil
	}

	if !actor.Role.IsAdministrative() {
		return UserUpdate{}, ErrForbidden
	}

	// Self edits, agent edits and anything the director does pass through
	if actor.ID == target.ID || target.Role == RoleAgent || actor.Role.IsDirector() {
		return upd, nil
	}

	upd.Password = nil
	if target.Role.IsDirector() && !upd.IsEmpty() {
		return UserUpdate{}, ErrForbidden
	}
	return upd, nil
}

// Apply copies the set fields of upd onto u, except Password which the caller hashes
func (upd UserUpdate) Apply(u *User) {
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.City != nil {
		u.City = *upd.City
	}
}
