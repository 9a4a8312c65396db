package cmd

import (
	"context"
	"log/slog"
	"strings"

	"orderboard/internal/adapters/out/backendhttp"
	"orderboard/internal/adapters/out/trackingws"
	"orderboard/internal/adapters/out/viewmem"
	"orderboard/internal/core/application/usecases/commands"
	"orderboard/internal/core/application/usecases/queries"
	"orderboard/internal/core/domain/model/viewer"
	"orderboard/internal/core/domain/services"
	"orderboard/internal/core/ports"
	"orderboard/internal/engine"
	"orderboard/internal/jobs"
)

// CompositionRoot wires the adapters, the refresh engine, and the update
// channels around one viewer session, and hands out the command and query
// handlers the presentation layer calls.
type CompositionRoot struct {
	config  Config
	logger  *slog.Logger
	session viewer.Session

	gateway    *backendhttp.Client
	viewStore  *viewmem.Store
	notifier   ports.Notifier
	engine     *engine.Engine
	tracking   *trackingws.Connection
	jobManager *jobs.JobManager
}

// NewCompositionRoot builds the whole object graph. Fails when the viewer
// identity or role in the config is unusable.
func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	role, err := viewer.ParseRole(config.ViewerRole)
	if err != nil {
		return nil, err
	}
	session, err := viewer.NewSession(config.ViewerID, role, config.ViewerToken)
	if err != nil {
		return nil, err
	}

	gateway := backendhttp.NewClient(config.BackendBaseURL, config.ViewerToken, config.HTTPTimeout, logger)
	viewStore := viewmem.NewStore()
	projector := services.NewViewProjector(services.NewStatusClassifier())
	notifier := slogNotifier{logger: logger.With("component", "notifier")}

	refreshHandler := commands.NewRefreshViewCommandHandler(
		gateway, projector, viewStore, session, config.FetchLimit)
	refresh := func(ctx context.Context, source ports.RefreshSource) error {
		cmd, err := commands.NewRefreshViewCommand(source)
		if err != nil {
			return err
		}
		return refreshHandler.Handle(ctx, cmd)
	}

	eng := engine.NewEngine(refresh, notifier, logger)
	tracking := trackingws.NewConnection(
		trackingEndpoint(config.TrackingWSURL, config.ViewerID),
		trackingws.NewGorillaDialer(),
		eng, notifier,
		config.ReconnectDelay, config.KeepaliveInterval,
		logger,
	)

	return &CompositionRoot{
		config:     config,
		logger:     logger,
		session:    session,
		gateway:    gateway,
		viewStore:  viewStore,
		notifier:   notifier,
		engine:     eng,
		tracking:   tracking,
		jobManager: jobs.NewJobManager(eng, config.PollInterval, logger),
	}, nil
}

// Start launches the refresh loop, the tracking connection and the polling
// job, then requests the initial refresh.
func (c *CompositionRoot) Start(ctx context.Context) error {
	if err := c.jobManager.StartAll(); err != nil {
		return err
	}
	go c.engine.Run(ctx)
	go c.tracking.Run(ctx)
	c.engine.RequestRefresh(ports.RefreshManual)
	return nil
}

// Stop finishes the background work. The caller cancels the context passed
// to Start first; Stop then waits for the loops to drain.
func (c *CompositionRoot) Stop() {
	c.jobManager.StopAll()
	<-c.engine.Done()
	<-c.tracking.Done()
}

// RequestRefresh exposes the manual update channel.
func (c *CompositionRoot) RequestRefresh() {
	c.engine.RequestRefresh(ports.RefreshManual)
}

func (c *CompositionRoot) CreateRequestTransitionCommandHandler() commands.RequestTransitionCommandHandler {
	return commands.NewRequestTransitionCommandHandler(c.gateway, c.viewStore, c.engine, c.session)
}

func (c *CompositionRoot) CreateReportDeliveryAttemptCommandHandler() commands.ReportDeliveryAttemptCommandHandler {
	return commands.NewReportDeliveryAttemptCommandHandler(c.CreateRequestTransitionCommandHandler())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.gateway, c.engine, c.session)
}

func (c *CompositionRoot) CreateGetDashboardQueryHandler() queries.GetDashboardQueryHandler {
	return queries.NewGetDashboardQueryHandler(c.viewStore)
}

func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	return queries.NewGetOrderDetailsQueryHandler(c.gateway)
}

// trackingEndpoint appends the per-viewer tracking path to the base URL.
func trackingEndpoint(baseURL, viewerID string) string {
	return strings.TrimSuffix(baseURL, "/") + "/ws/tracking/" + viewerID
}

// slogNotifier renders notices into the log. A real front end would swap in
// a toast presenter here.
type slogNotifier struct {
	logger *slog.Logger
}

func (n slogNotifier) Notify(notice ports.Notice) {
	n.logger.Info("Notice",
		"order_id", notice.OrderID, "status", notice.Status, "message", notice.Message)
}
