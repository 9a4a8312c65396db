package viewer

import (
	"errors"

	"orderboard/internal/pkg/errs"
	"orderboard/internal/pkg/guard"
)

var (
	// ErrSessionIsNotConstructed is returned when a Session was not created
	// through the NewSession constructor.
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession constructor")
)

// Session is the lifecycle-scoped viewer context: who is looking at the
// dashboard and in what capacity. It is created on sign-in, torn down on
// sign-out, and passed to the engine explicitly — never held as ambient
// global state.
//
// The token is opaque to this core; it is forwarded to the backend as a
// bearer credential and may be empty when the backend does not require one.
type Session struct {
	identity string
	role     Role
	token    string

	guard guard.ConstructorGuard
}

// NewSession creates a viewer session. Identity must be non-empty and role
// must be a recognized viewer role.
func NewSession(identity string, role Role, token string) (Session, error) {
	session := Session{
		token: token,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		session.setIdentity(identity),
		session.setRole(role),
	); err != nil {
		return Session{}, err
	}

	return session, nil
}

// Validate ensures the session was created through the constructor.
func (s Session) Validate() error {
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

// Identity returns the viewer's stable identity (username).
func (s Session) Identity() string {
	return s.identity
}

// Role returns the viewer's role.
func (s Session) Role() Role {
	return s.role
}

// Token returns the opaque bearer credential, possibly empty.
func (s Session) Token() string {
	return s.token
}

func (s *Session) setIdentity(identity string) error {
	if identity == "" {
		return errs.NewValueIsRequiredError("identity")
	}
	s.identity = identity
	return nil
}

func (s *Session) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	s.role = role
	return nil
}
