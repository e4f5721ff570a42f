package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"shipments/internal/core/application/usecases/commands"
	"shipments/internal/core/domain/model/bol"
	"shipments/internal/core/domain/model/counter"
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/reference"
	"shipments/internal/core/domain/model/release"
	"shipments/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type MockReleaseRepository struct{ mock.Mock }

func (m *MockReleaseRepository) Add(ctx context.Context, r *release.Release) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReleaseRepository) Update(ctx context.Context, r *release.Release) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReleaseRepository) Get(ctx context.Context, id kernel.UUID) (*release.Release, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*release.Release), args.Error(1)
}

func (m *MockReleaseRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*release.Release, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*release.Release), args.Error(1)
}

type MockLoadRepository struct{ mock.Mock }

func (m *MockLoadRepository) Add(ctx context.Context, l *release.Load) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLoadRepository) Update(ctx context.Context, l *release.Load) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLoadRepository) Get(ctx context.Context, id kernel.UUID) (*release.Load, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*release.Load), args.Error(1)
}

func (m *MockLoadRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*release.Load, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*release.Load), args.Error(1)
}

func (m *MockLoadRepository) ListByRelease(ctx context.Context, releaseID kernel.UUID) ([]*release.Load, error) {
	args := m.Called(ctx, releaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*release.Load), args.Error(1)
}

type MockBOLRepository struct{ mock.Mock }

func (m *MockBOLRepository) Add(ctx context.Context, b *bol.BOL) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBOLRepository) Update(ctx context.Context, b *bol.BOL) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBOLRepository) Get(ctx context.Context, id kernel.UUID) (*bol.BOL, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bol.BOL), args.Error(1)
}

func (m *MockBOLRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*bol.BOL, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bol.BOL), args.Error(1)
}

func (m *MockBOLRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBOLRepository) ListUnrendered(ctx context.Context, limit int) ([]*bol.BOL, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bol.BOL), args.Error(1)
}

type MockCounterRepository struct{ mock.Mock }

func (m *MockCounterRepository) GetForUpdate(ctx context.Context, key string, year int) (*counter.Counter, error) {
	args := m.Called(ctx, key, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*counter.Counter), args.Error(1)
}

func (m *MockCounterRepository) Update(ctx context.Context, c *counter.Counter) error {
	return m.Called(ctx, c).Error(0)
}

type MockReferenceRepository struct{ mock.Mock }

func (m *MockReferenceRepository) GetTenant(ctx context.Context, id kernel.UUID) (reference.Tenant, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(reference.Tenant), args.Error(1)
}

func (m *MockReferenceRepository) GetCustomer(ctx context.Context, id kernel.UUID) (reference.Customer, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(reference.Customer), args.Error(1)
}

func (m *MockReferenceRepository) GetProduct(ctx context.Context, id kernel.UUID) (reference.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(reference.Product), args.Error(1)
}

func (m *MockReferenceRepository) GetLot(ctx context.Context, id kernel.UUID) (reference.Lot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(reference.Lot), args.Error(1)
}

func (m *MockReferenceRepository) GetCarrier(ctx context.Context, id kernel.UUID) (reference.Carrier, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(reference.Carrier), args.Error(1)
}

func (m *MockReferenceRepository) GetTruck(ctx context.Context, id kernel.UUID) (reference.Truck, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(reference.Truck), args.Error(1)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) ReleaseRepository() ports.ReleaseRepository {
	return m.Called().Get(0).(ports.ReleaseRepository)
}

func (m *MockUoW) LoadRepository() ports.LoadRepository {
	return m.Called().Get(0).(ports.LoadRepository)
}

func (m *MockUoW) BOLRepository() ports.BOLRepository {
	return m.Called().Get(0).(ports.BOLRepository)
}

func (m *MockUoW) CounterRepository() ports.CounterRepository {
	return m.Called().Get(0).(ports.CounterRepository)
}

func (m *MockUoW) ReferenceRepository() ports.ReferenceRepository {
	return m.Called().Get(0).(ports.ReferenceRepository)
}

type MockFulfillmentUoWFactory struct{ mock.Mock }

func (m *MockFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return m.Called().Get(0).(commands.FulfillmentUoW)
}

type MockReversalUoWFactory struct{ mock.Mock }

func (m *MockReversalUoWFactory) Create() commands.ReversalUoW {
	return m.Called().Get(0).(commands.ReversalUoW)
}

type MockDocumentUoWFactory struct{ mock.Mock }

func (m *MockDocumentUoWFactory) Create() commands.DocumentUoW {
	return m.Called().Get(0).(commands.DocumentUoW)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) PublishIssued(ctx context.Context, doc *bol.BOL) {
	m.Called(ctx, doc)
}

func (m *MockPublisher) Announce(ctx context.Context, kind bol.EventKind, doc *bol.BOL) {
	m.Called(ctx, kind, doc)
}

type MockRenderer struct{ mock.Mock }

func (m *MockRenderer) Render(ctx context.Context, s bol.Snapshot) (string, error) {
	args := m.Called(ctx, s)
	return args.String(0), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, e bol.Event) error {
	return m.Called(ctx, e).Error(0)
}

// repos wires a MockUoW with one mock per repository. Accessors may be called
// any number of times.
type repos struct {
	uow      *MockUoW
	releases *MockReleaseRepository
	loads    *MockLoadRepository
	bols     *MockBOLRepository
	counters *MockCounterRepository
	refs     *MockReferenceRepository
}

func newRepos() repos {
	r := repos{
		uow:      new(MockUoW),
		releases: new(MockReleaseRepository),
		loads:    new(MockLoadRepository),
		bols:     new(MockBOLRepository),
		counters: new(MockCounterRepository),
		refs:     new(MockReferenceRepository),
	}
	r.uow.On("ReleaseRepository").Return(r.releases).Maybe()
	r.uow.On("LoadRepository").Return(r.loads).Maybe()
	r.uow.On("BOLRepository").Return(r.bols).Maybe()
	r.uow.On("CounterRepository").Return(r.counters).Maybe()
	r.uow.On("ReferenceRepository").Return(r.refs).Maybe()
	return r
}

func (r repos) assertExpectations(t *testing.T) {
	t.Helper()
	r.uow.AssertExpectations(t)
	r.releases.AssertExpectations(t)
	r.loads.AssertExpectations(t)
	r.bols.AssertExpectations(t)
	r.counters.AssertExpectations(t)
	r.refs.AssertExpectations(t)
}

func qty(t *testing.T, s string) kernel.Quantity {
	t.Helper()
	q, err := kernel.ParseQuantity(s)
	require.NoError(t, err)
	return q
}

func tenantActor(t *testing.T, tenantID *kernel.UUID) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor("user-1", tenantID)
	require.NoError(t, err)
	return a
}

// fixture is one tenant with a release of three 25.00 loads, a carrier with
// a truck, and a chemistry-tagged lot.
type fixture struct {
	tenant   reference.Tenant
	customer reference.Customer
	product  reference.Product
	lot      reference.Lot
	carrier  reference.Carrier
	truck    reference.Truck
	release  *release.Release
	loads    []*release.Load
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	tenantID := kernel.NewUUID()
	f := fixture{
		tenant:   reference.Tenant{ID: tenantID, Code: "prt", Name: "Port Terminal", BOLPrefix: "PRT"},
		customer: reference.Customer{ID: kernel.NewUUID(), TenantID: &tenantID, Name: "Acme Steel"},
	}
	f.product = reference.Product{ID: kernel.NewUUID(), TenantID: &tenantID, Name: "Pig Iron"}
	f.lot = reference.Lot{
		ID: kernel.NewUUID(), TenantID: &tenantID, ProductID: &f.product.ID,
		Code: "LOT-7", Chemistry: map[string]string{"C": "4.1", "Si": "0.6"},
	}
	f.carrier = reference.Carrier{ID: kernel.NewUUID(), TenantID: &tenantID, Name: "River Haulers"}
	f.truck = reference.Truck{ID: kernel.NewUUID(), CarrierID: f.carrier.ID, TruckNumber: "T-12", TrailerNo: "TR-3"}

	rel, err := release.NewRelease(kernel.NewUUID(), release.Details{
		Number:        "R-1001",
		TenantID:      &tenantID,
		CustomerID:    f.customer.ID,
		LotID:         &f.lot.ID,
		TotalQuantity: qty(t, "75.00"),
		ShipTo:        reference.Address{Name: "Mill 2", City: "Gary", State: "IN"},
	})
	require.NoError(t, err)
	f.release = rel

	for i := 1; i <= 3; i++ {
		l, loadErr := release.NewLoad(kernel.NewUUID(), rel.ID(), i, qty(t, "25.00"))
		require.NoError(t, loadErr)
		f.loads = append(f.loads, l)
	}
	return f
}

func (f fixture) tenantID() *kernel.UUID {
	id := f.tenant.ID
	return &id
}

func issuedBOL(t *testing.T, f fixture, load *release.Load) *bol.BOL {
	t.Helper()
	n, err := bol.NewNumber("PRT", 2025, 1)
	require.NoError(t, err)
	doc, err := bol.NewBOL(kernel.NewUUID(), bol.Issue{
		Number:    n,
		TenantID:  f.tenantID(),
		ReleaseID: f.release.ID(),
		LoadID:    load.ID(),
		Quantity:  qty(t, "25.75"),
		IssuedBy:  "user-1",
		IssuedAt:  fixedNow,
	})
	require.NoError(t, err)
	require.NoError(t, load.Ship(doc.ID(), doc.Quantity()))
	return doc
}
