package ports

// Notice is a transient, user-facing message: a push update announcing an
// order's new status, or a non-fatal refresh failure. Presentation (toasts
// and the like) lives outside this core.
type Notice struct {
	OrderID string
	Status  string
	Message string
}

// Notifier surfaces notices to the user. Implementations must not block the
// caller; dropping a notice is preferable to stalling the refresh pipeline
// or the push connection.
type Notifier interface {
	Notify(notice Notice)
}
