package postgres_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"shipments/internal/adapters/out/postgres/referencerepo"
	"shipments/internal/core/application/usecases/commands"
	"shipments/internal/core/domain/model/bol"
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/reference"
	"shipments/internal/core/domain/model/release"
	"shipments/internal/core/domain/services"

	"github.com/google/uuid"
)

type fulfillmentFactory struct{ suite *UnitOfWorkIntegrationTestSuite }

func (f fulfillmentFactory) Create() commands.FulfillmentUoW { return f.suite.factory.Create() }

type reversalFactory struct{ suite *UnitOfWorkIntegrationTestSuite }

func (f reversalFactory) Create() commands.ReversalUoW { return f.suite.factory.Create() }

type documentFactory struct{ suite *UnitOfWorkIntegrationTestSuite }

func (f documentFactory) Create() commands.DocumentUoW { return f.suite.factory.Create() }

type nopPublisher struct{}

func (nopPublisher) PublishIssued(context.Context, *bol.BOL)            {}
func (nopPublisher) Announce(context.Context, bol.EventKind, *bol.BOL) {}

type failingRenderer struct{}

func (failingRenderer) Render(context.Context, bol.Snapshot) (string, error) {
	return "", errors.New("object store unavailable")
}

// world is the seeded reference data of tenant PRT.
type world struct {
	tenantID     kernel.UUID
	carrierID    kernel.UUID
	truckID      kernel.UUID
	otherCarrier kernel.UUID
	releaseID    kernel.UUID
	loads        []*release.Load
	actor        kernel.Actor
}

func clockAt(t time.Time) commands.Clock {
	return func() time.Time { return t }
}

var issuedAt = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func (suite *UnitOfWorkIntegrationTestSuite) fulfillHandler() commands.FulfillLoadCommandHandler {
	return commands.NewFulfillLoadCommandHandler(
		fulfillmentFactory{suite}, nopPublisher{}, "BOL", clockAt(issuedAt), slog.New(slog.DiscardHandler))
}

func (suite *UnitOfWorkIntegrationTestSuite) voidHandler() commands.VoidBOLCommandHandler {
	logger := slog.New(slog.DiscardHandler)
	return commands.NewVoidBOLCommandHandler(
		reversalFactory{suite}, commands.NewFulfillmentReverser(logger), nopPublisher{}, clockAt(issuedAt.Add(time.Hour)), logger)
}

func (suite *UnitOfWorkIntegrationTestSuite) seed() world {
	return suite.seedTenant("PRT", "PRT")
}

// seedTenant seeds a tenant with one release of three loads, plus a second
// tenant owning a foreign carrier.
func (suite *UnitOfWorkIntegrationTestSuite) seedTenant(code, prefix string) world {
	ctx := context.Background()
	w := world{}

	tenant := referencerepo.TenantDTO{ID: uuid.New(), Code: code, Name: "Port Terminal", BOLPrefix: prefix}
	other := referencerepo.TenantDTO{ID: uuid.New(), Code: "OTHER-" + code, Name: "Other Co"}
	tenantRef := tenant.ID
	otherRef := other.ID
	customer := referencerepo.CustomerDTO{ID: uuid.New(), TenantID: &tenantRef, Name: "Acme Steel"}
	product := referencerepo.ProductDTO{ID: uuid.New(), TenantID: &tenantRef, Name: "Pig Iron"}
	lot := referencerepo.LotDTO{
		ID: uuid.New(), TenantID: &tenantRef, ProductID: &product.ID,
		Code: "LOT-7", Chemistry: map[string]string{"C": "4.1"},
	}
	carrier := referencerepo.CarrierDTO{ID: uuid.New(), TenantID: &tenantRef, Name: "River Haulers"}
	otherCarrier := referencerepo.CarrierDTO{ID: uuid.New(), TenantID: &otherRef, Name: "Foreign Freight"}
	truck := referencerepo.TruckDTO{ID: uuid.New(), CarrierID: carrier.ID, TruckNumber: "T-12", TrailerNumber: "TR-3"}

	for _, row := range []any{&tenant, &other, &customer, &product, &lot, &carrier, &otherCarrier, &truck} {
		suite.Require().NoError(suite.db.Create(row).Error)
	}

	w.tenantID = suite.kid(tenant.ID)
	w.carrierID = suite.kid(carrier.ID)
	w.otherCarrier = suite.kid(otherCarrier.ID)
	w.truckID = suite.kid(truck.ID)
	lotID := suite.kid(lot.ID)

	total, err := kernel.ParseQuantity("75.00")
	suite.Require().NoError(err)
	tenantID := w.tenantID
	rel, err := release.NewRelease(kernel.NewUUID(), release.Details{
		Number:        "R-1001",
		TenantID:      &tenantID,
		CustomerID:    suite.kid(customer.ID),
		LotID:         &lotID,
		TotalQuantity: total,
		ShipTo:        reference.Address{Name: "Acme Steel Gary Works", City: "Gary", State: "IN"},
	})
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ReleaseRepository().Add(ctx, rel))
	planned, err := kernel.ParseQuantity("25.00")
	suite.Require().NoError(err)
	for seq := 1; seq <= 3; seq++ {
		load, loadErr := release.NewLoad(kernel.NewUUID(), rel.ID(), seq, planned)
		suite.Require().NoError(loadErr)
		suite.Require().NoError(uow.LoadRepository().Add(ctx, load))
		w.loads = append(w.loads, load)
	}
	suite.Require().NoError(uow.Commit(ctx))
	w.releaseID = rel.ID()

	w.actor, err = kernel.NewActor("dispatcher", &tenantID)
	suite.Require().NoError(err)
	return w
}

func (suite *UnitOfWorkIntegrationTestSuite) fulfillCmd(w world, load *release.Load, carrierID kernel.UUID, qty string) commands.FulfillLoadCommand {
	quantity, err := kernel.ParseQuantity(qty)
	suite.Require().NoError(err)
	truckID := w.truckID
	cmd, err := commands.NewFulfillLoadCommand(load.ID(), carrierID, &truckID, quantity, w.actor)
	suite.Require().NoError(err)
	return cmd
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFulfillment_NumbersAreSequentialPerTenantYear() {
	ctx := context.Background()
	w := suite.seed()
	handler := suite.fulfillHandler()

	first, err := handler.Handle(ctx, suite.fulfillCmd(w, w.loads[0], w.carrierID, "25.00"))
	suite.Require().NoError(err)
	suite.Equal("PRT-2025-0001", first.Number().String())

	second, err := handler.Handle(ctx, suite.fulfillCmd(w, w.loads[1], w.carrierID, "25.00"))
	suite.Require().NoError(err)
	suite.Equal("PRT-2025-0002", second.Number().String())

	stored, err := suite.factory.Create().BOLRepository().Get(ctx, first.ID())
	suite.Require().NoError(err)
	snap := stored.Snapshot()
	suite.Equal("Port Terminal", snap.TenantName)
	suite.Equal("Pig Iron", snap.ProductName)
	suite.Equal("T-12", snap.TruckNumber)
	suite.Equal("4.1", snap.Chemistry["C"])
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFulfillment_TenantsSharingAPrefixGetDistinctNumbers() {
	ctx := context.Background()
	upper := suite.seedTenant("PRT", "")
	lower := suite.seedTenant("prt", "")
	handler := suite.fulfillHandler()

	first, err := handler.Handle(ctx, suite.fulfillCmd(upper, upper.loads[0], upper.carrierID, "25.00"))
	suite.Require().NoError(err)
	second, err := handler.Handle(ctx, suite.fulfillCmd(lower, lower.loads[0], lower.carrierID, "25.00"))
	suite.Require().NoError(err)
	third, err := handler.Handle(ctx, suite.fulfillCmd(lower, lower.loads[1], lower.carrierID, "25.00"))
	suite.Require().NoError(err)

	suite.Equal("PRT-2025-0001", first.Number().String())
	suite.Equal("PRT-2025-0002", second.Number().String())
	suite.Equal("PRT-2025-0003", third.Number().String())
	suite.Equal(int64(3), suite.count("bols"))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFulfillment_ReleaseCompletesAndVoidReopens() {
	ctx := context.Background()
	w := suite.seed()
	handler := suite.fulfillHandler()

	first, err := handler.Handle(ctx, suite.fulfillCmd(w, w.loads[0], w.carrierID, "25.75"))
	suite.Require().NoError(err)

	load1 := suite.load(w.loads[0].ID())
	suite.Equal(release.Shipped, load1.Status())
	suite.Equal("25.75", load1.ActualQuantity().String())
	suite.Equal(release.Open, suite.release(w.releaseID).Status())

	for _, l := range w.loads[1:] {
		_, err = handler.Handle(ctx, suite.fulfillCmd(w, l, w.carrierID, "25.00"))
		suite.Require().NoError(err)
	}
	suite.Equal(release.Complete, suite.release(w.releaseID).Status())

	voidCmd, err := commands.NewVoidBOLCommand(first.ID(), "wrong truck", w.actor)
	suite.Require().NoError(err)
	voided, err := suite.voidHandler().Handle(ctx, voidCmd)
	suite.Require().NoError(err)
	suite.True(voided.IsVoided())

	load1 = suite.load(w.loads[0].ID())
	suite.Equal(release.Pending, load1.Status())
	suite.Nil(load1.BOLID())
	suite.Nil(load1.ActualQuantity())
	suite.Equal(release.Open, suite.release(w.releaseID).Status())

	// The load can be fulfilled again and gets a fresh number.
	again, err := handler.Handle(ctx, suite.fulfillCmd(w, w.loads[0], w.carrierID, "25.00"))
	suite.Require().NoError(err)
	suite.Equal("PRT-2025-0004", again.Number().String())
	suite.Equal(release.Complete, suite.release(w.releaseID).Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFulfillment_ConcurrentCallsShipOnce() {
	const callers = 5
	ctx := context.Background()
	w := suite.seed()
	handler := suite.fulfillHandler()

	var wg sync.WaitGroup
	results := make(chan error, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := handler.Handle(ctx, suite.fulfillCmd(w, w.loads[0], w.carrierID, "25.00"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, notPending int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, release.ErrLoadNotPending):
			notPending++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(1, ok)
	suite.Equal(callers-1, notPending)
	suite.Equal(int64(1), suite.count("bols"))

	var last int64
	suite.Require().NoError(suite.db.Raw("SELECT last_sequence FROM bol_counters").Scan(&last).Error)
	suite.Equal(int64(1), last, "losing callers must not consume numbers")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFulfillment_ParallelLoadsCompleteRelease() {
	ctx := context.Background()
	w := suite.seed()
	handler := suite.fulfillHandler()

	var wg sync.WaitGroup
	errCh := make(chan error, len(w.loads))
	for _, l := range w.loads {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := handler.Handle(ctx, suite.fulfillCmd(w, l, w.carrierID, "25.00"))
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		suite.Require().NoError(err)
	}

	suite.Equal(release.Complete, suite.release(w.releaseID).Status())
	suite.Equal(int64(3), suite.count("bols"))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFulfillment_CrossTenantCarrierLeavesNoTrace() {
	ctx := context.Background()
	w := suite.seed()

	quantity, err := kernel.ParseQuantity("25.00")
	suite.Require().NoError(err)
	cmd, err := commands.NewFulfillLoadCommand(w.loads[0].ID(), w.otherCarrier, nil, quantity, w.actor)
	suite.Require().NoError(err)

	_, err = suite.fulfillHandler().Handle(ctx, cmd)
	suite.Require().ErrorIs(err, services.ErrTenantMismatch)

	suite.Equal(int64(0), suite.count("bols"))
	suite.Equal(int64(0), suite.count("bol_counters"))
	suite.Equal(release.Pending, suite.load(w.loads[0].ID()).Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFulfillment_RenderFailureStoresPlaceholder() {
	ctx := context.Background()
	w := suite.seed()
	logger := slog.New(slog.DiscardHandler)
	publisher := commands.NewDocumentPublisher(documentFactory{suite}, failingRenderer{}, nil, clockAt(issuedAt), logger)
	handler := commands.NewFulfillLoadCommandHandler(fulfillmentFactory{suite}, publisher, "BOL", clockAt(issuedAt), logger)

	doc, err := handler.Handle(ctx, suite.fulfillCmd(w, w.loads[0], w.carrierID, "25.00"))
	suite.Require().NoError(err)

	stored, err := suite.factory.Create().BOLRepository().Get(ctx, doc.ID())
	suite.Require().NoError(err)
	suite.Equal("pending/PRT-2025-0001.json", stored.DocumentKey())
	suite.False(stored.DocumentRendered())

	pending, err := suite.factory.Create().BOLRepository().ListUnrendered(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(doc.ID(), pending[0].ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) load(id kernel.UUID) *release.Load {
	l, err := suite.factory.Create().LoadRepository().Get(context.Background(), id)
	suite.Require().NoError(err)
	return l
}

func (suite *UnitOfWorkIntegrationTestSuite) release(id kernel.UUID) *release.Release {
	r, err := suite.factory.Create().ReleaseRepository().Get(context.Background(), id)
	suite.Require().NoError(err)
	return r
}

func (suite *UnitOfWorkIntegrationTestSuite) count(table string) int64 {
	var n int64
	suite.Require().NoError(suite.db.Table(table).Count(&n).Error)
	return n
}

func (suite *UnitOfWorkIntegrationTestSuite) kid(u uuid.UUID) kernel.UUID {
	id, err := kernel.UUIDFromBytes(u[:])
	suite.Require().NoError(err)
	return id
}
