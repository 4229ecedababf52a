package services

// Actor is the authenticated identity performing an operation, as supplied
// by the auth middleware. The core trusts it fully.
type Actor struct {
	ID   string
	Role string
}
