package ports

// RefreshSource identifies which channel asked for a refresh. It is carried
// for logging only; all sources are treated identically by the engine.
type RefreshSource string

const (
	// RefreshManual is an explicit user action.
	RefreshManual RefreshSource = "manual"

	// RefreshTimer is the fixed-interval polling job.
	RefreshTimer RefreshSource = "timer"

	// RefreshPush is a push-event arrival on the persistent connection.
	RefreshPush RefreshSource = "push"

	// RefreshTransition follows a successful status-transition response.
	RefreshTransition RefreshSource = "transition"
)

// RefreshTrigger is the single entry point through which all update channels
// request a refresh. Requests arriving while a refresh cycle is in flight
// coalesce into at most one additional cycle; none are dropped outright and
// none run concurrently.
type RefreshTrigger interface {
	RequestRefresh(source RefreshSource)
}
