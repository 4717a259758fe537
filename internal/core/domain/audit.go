package domain

import "time"

// Audit actions and outcomes recorded for identity operations.
const (
	AuditRegister      = "register"
	AuditLogin         = "login"
	AuditPasswordReset = "password_reset"

	OutcomeSuccess  = "success"
	OutcomeDenied   = "denied"
	OutcomeConflict = "conflict"
)

// AuthEvent is an audit record of an identity operation. It carries which
// subject did what and whether it succeeded — never a password or hash.
type AuthEvent struct {
	Kind       AccountKind
	SubjectKey string
	Action     string
	Outcome    string
	Timestamp  time.Time
}
