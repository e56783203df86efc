package finance

// PaymentConfirmation proposes marking one session paid on a settlement
// date. The engine only proposes; applying is the persistence layer's
// job and must be guarded by the session's current paid=false state.
type PaymentConfirmation struct {
	SessionID   string
	PaymentDate string
}

// Validate checks the proposal names a session.
func (c PaymentConfirmation) Validate() error {
	if c.SessionID == "" {
		return ErrEmptySessionID
	}
	return nil
}
