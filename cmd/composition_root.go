package cmd

import (
	"log/slog"

	"shipments/internal/adapters/in/http"
	"shipments/internal/adapters/out/postgres"
	"shipments/internal/core/application/usecases/commands"
	"shipments/internal/core/application/usecases/queries"
	"shipments/internal/core/ports"
	"shipments/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	renderer   ports.DocumentRenderer
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCompositionRoot wires the application. renderer and notifier are the
// object storage and pub/sub adapters built by main.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	renderer ports.DocumentRenderer,
	notifier ports.Notifier,
	logger *slog.Logger,
) (CompositionRoot, error) {
	lockTimeout, err := config.LockTimeout()
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, postgres.WithLockTimeout(lockTimeout)),
		renderer:   renderer,
		notifier:   notifier,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) fulfillmentUoWFactory() commands.FulfillmentUoWFactory {
	return FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) reversalUoWFactory() commands.ReversalUoWFactory {
	return FuncReversalUoWFactory(func() commands.ReversalUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) documentUoWFactory() commands.DocumentUoWFactory {
	return FuncDocumentUoWFactory(func() commands.DocumentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateDocumentPublisher() commands.DocumentPublisher {
	return commands.NewDocumentPublisher(c.documentUoWFactory(), c.renderer, c.notifier, commands.SystemClock, c.logger)
}

func (c *CompositionRoot) CreateFulfillLoadCommandHandler() commands.FulfillLoadCommandHandler {
	return commands.NewFulfillLoadCommandHandler(
		c.fulfillmentUoWFactory(),
		c.CreateDocumentPublisher(),
		c.config.LegacyPrefix(),
		commands.SystemClock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateVoidBOLCommandHandler() commands.VoidBOLCommandHandler {
	return commands.NewVoidBOLCommandHandler(
		c.reversalUoWFactory(),
		commands.NewFulfillmentReverser(c.logger),
		c.CreateDocumentPublisher(),
		commands.SystemClock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateDeleteBOLCommandHandler() commands.DeleteBOLCommandHandler {
	return commands.NewDeleteBOLCommandHandler(
		c.reversalUoWFactory(),
		commands.NewFulfillmentReverser(c.logger),
		c.CreateDocumentPublisher(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateRenderPendingDocumentsCommandHandler() commands.RenderPendingDocumentsCommandHandler {
	return commands.NewRenderPendingDocumentsCommandHandler(c.documentUoWFactory(), c.CreateDocumentPublisher(), c.logger)
}

func (c *CompositionRoot) CreateGetLoadStatusQueryHandler() queries.GetLoadStatusQueryHandler {
	return queries.NewGetLoadStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetReleaseStatusQueryHandler() queries.GetReleaseStatusQueryHandler {
	return queries.NewGetReleaseStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBOLQueryHandler() queries.GetBOLQueryHandler {
	return queries.NewGetBOLQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *http.Server {
	return http.NewServer(
		c.CreateFulfillLoadCommandHandler(),
		c.CreateVoidBOLCommandHandler(),
		c.CreateDeleteBOLCommandHandler(),
		c.CreateGetLoadStatusQueryHandler(),
		c.CreateGetReleaseStatusQueryHandler(),
		c.CreateGetBOLQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	retry := jobs.NewDocumentRetryJob(
		c.CreateRenderPendingDocumentsCommandHandler(),
		c.config.RetrySchedule(),
		DefaultDocumentBatch,
		c.logger,
	)
	return jobs.NewJobManager(retry)
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

type FuncReversalUoWFactory func() commands.ReversalUoW

func (f FuncReversalUoWFactory) Create() commands.ReversalUoW {
	return f()
}

type FuncDocumentUoWFactory func() commands.DocumentUoW

func (f FuncDocumentUoWFactory) Create() commands.DocumentUoW {
	return f()
}
