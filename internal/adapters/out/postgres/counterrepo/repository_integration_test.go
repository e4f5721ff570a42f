package counterrepo_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"shipments/internal/adapters/out/postgres/counterrepo"
	"shipments/internal/core/domain/model/counter"
	"shipments/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type CounterRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *counterrepo.GormCounterRepository
}

func (suite *CounterRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&counterrepo.CounterDTO{}))
}

func (suite *CounterRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE bol_counters").Error)
	suite.repository = counterrepo.NewGormCounterRepository(suite.db)
}

func (suite *CounterRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CounterRepositoryIntegrationTestSuite) TestGetForUpdate_CreatesMissingRowAtZero() {
	ctx := context.Background()

	c, err := suite.repository.GetForUpdate(ctx, "PRT", 2025)
	suite.Require().NoError(err)
	suite.Equal(int64(0), c.Last())

	var count int64
	suite.Require().NoError(suite.db.Model(&counterrepo.CounterDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *CounterRepositoryIntegrationTestSuite) TestUpdate_PersistsSequence() {
	ctx := context.Background()

	c, err := suite.repository.GetForUpdate(ctx, counter.KeyFor("bol"), 2025)
	suite.Require().NoError(err)
	suite.Equal(int64(1), c.Next())
	suite.Equal(int64(2), c.Next())
	suite.Require().NoError(suite.repository.Update(ctx, c))

	again, err := suite.repository.GetForUpdate(ctx, counter.KeyFor("bol"), 2025)
	suite.Require().NoError(err)
	suite.Equal(int64(2), again.Last())
}

func (suite *CounterRepositoryIntegrationTestSuite) TestCounters_AreIndependentPerKeyAndYear() {
	ctx := context.Background()
	prefixA := counter.KeyFor("PRT")
	prefixB := counter.KeyFor("NWF")

	for _, k := range []struct {
		key  string
		year int
	}{
		{prefixA, 2025},
		{prefixA, 2025},
		{prefixB, 2025},
		{prefixA, 2026},
	} {
		c, err := suite.repository.GetForUpdate(ctx, k.key, k.year)
		suite.Require().NoError(err)
		c.Next()
		suite.Require().NoError(suite.repository.Update(ctx, c))
	}

	a2025, err := suite.repository.GetForUpdate(ctx, prefixA, 2025)
	suite.Require().NoError(err)
	suite.Equal(int64(2), a2025.Last())

	b2025, err := suite.repository.GetForUpdate(ctx, prefixB, 2025)
	suite.Require().NoError(err)
	suite.Equal(int64(1), b2025.Last())

	a2026, err := suite.repository.GetForUpdate(ctx, prefixA, 2026)
	suite.Require().NoError(err)
	suite.Equal(int64(1), a2026.Last())
}

func (suite *CounterRepositoryIntegrationTestSuite) TestUpdate_MissingRow() {
	c, err := counter.RestoreCounter("nobody", 2025, 3)
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), c)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CounterRepositoryIntegrationTestSuite) TestGetForUpdate_ConcurrentAllocationsAreGapFree() {
	const workers = 20
	ctx := context.Background()

	var (
		mu   sync.Mutex
		seen []int64
		wg   sync.WaitGroup
	)
	errCh := make(chan error, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := suite.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				repo := counterrepo.NewGormCounterRepository(tx)
				c, err := repo.GetForUpdate(ctx, "PRT", 2025)
				if err != nil {
					return err
				}
				n := c.Next()
				if err := repo.Update(ctx, c); err != nil {
					return err
				}
				mu.Lock()
				seen = append(seen, n)
				mu.Unlock()
				return nil
			})
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		suite.Require().NoError(err)
	}

	sort.Slice(seen, func(i, j int) bool { return seen[i] < seen[j] })
	suite.Require().Len(seen, workers)
	for i, n := range seen {
		suite.Equal(int64(i+1), n)
	}
}

func TestCounterRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CounterRepositoryIntegrationTestSuite))
}
