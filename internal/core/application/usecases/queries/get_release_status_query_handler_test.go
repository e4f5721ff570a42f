package queries_test

import (
	"context"

	"shipments/internal/core/application/usecases/queries"
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/pkg/errs"
)

func (suite *QueryHandlersTestSuite) TestGetReleaseStatus_WithLoads() {
	tenantID := kernel.NewUUID()
	rel, loads, _ := suite.shippedRelease(&tenantID)

	query, err := queries.NewGetReleaseStatusQuery(rel.ID(), suite.actor(&tenantID))
	suite.Require().NoError(err)

	resp, err := suite.releaseHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal("R-1001", resp.Number)
	suite.Equal("OPEN", resp.Status)
	suite.Equal("75.00", resp.TotalQuantity.String())
	suite.Equal("25.75", resp.ShippedQuantity)
	suite.Require().Len(resp.Loads, 3)
	for i, l := range resp.Loads {
		suite.Equal(i+1, l.Sequence)
		suite.True(l.ID.IsEqual(loads[i].ID()))
	}
	suite.Equal("SHIPPED", resp.Loads[0].Status)
	suite.Equal("PENDING", resp.Loads[1].Status)
}

func (suite *QueryHandlersTestSuite) TestGetReleaseStatus_LegacyReleaseHiddenFromTenantActor() {
	rel, _, _ := suite.shippedRelease(nil)
	tenantID := kernel.NewUUID()

	query, err := queries.NewGetReleaseStatusQuery(rel.ID(), suite.actor(&tenantID))
	suite.Require().NoError(err)

	_, err = suite.releaseHandler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	platform, err := queries.NewGetReleaseStatusQuery(rel.ID(), suite.actor(nil))
	suite.Require().NoError(err)
	resp, err := suite.releaseHandler.Handle(context.Background(), platform)
	suite.Require().NoError(err)
	suite.Nil(resp.TenantID)
}

func (suite *QueryHandlersTestSuite) TestGetReleaseStatus_Unknown() {
	query, err := queries.NewGetReleaseStatusQuery(kernel.NewUUID(), suite.actor(nil))
	suite.Require().NoError(err)

	_, err = suite.releaseHandler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}
