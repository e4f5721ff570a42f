package queries_test

import (
	"context"

	"shipments/internal/core/application/usecases/queries"
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/pkg/errs"
)

func (suite *QueryHandlersTestSuite) TestGetLoadStatus_Shipped() {
	tenantID := kernel.NewUUID()
	_, loads, doc := suite.shippedRelease(&tenantID)

	query, err := queries.NewGetLoadStatusQuery(loads[0].ID(), suite.actor(&tenantID))
	suite.Require().NoError(err)

	resp, err := suite.loadHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal("SHIPPED", resp.Status)
	suite.Equal(1, resp.Sequence)
	suite.Equal("25.00", resp.PlannedQuantity.String())
	suite.Require().NotNil(resp.ActualQuantity)
	suite.Equal("25.75", resp.ActualQuantity.String())
	suite.Require().NotNil(resp.BOLID)
	suite.True(resp.BOLID.IsEqual(doc.ID()))
	suite.Equal("PRT-2025-0001", resp.BOLNumber)
}

func (suite *QueryHandlersTestSuite) TestGetLoadStatus_Pending() {
	tenantID := kernel.NewUUID()
	_, loads, _ := suite.shippedRelease(&tenantID)

	query, err := queries.NewGetLoadStatusQuery(loads[1].ID(), suite.actor(nil))
	suite.Require().NoError(err)

	resp, err := suite.loadHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal("PENDING", resp.Status)
	suite.Nil(resp.BOLID)
	suite.Empty(resp.BOLNumber)
	suite.Nil(resp.ActualQuantity)
}

func (suite *QueryHandlersTestSuite) TestGetLoadStatus_OtherTenantIsNotFound() {
	tenantID := kernel.NewUUID()
	other := kernel.NewUUID()
	_, loads, _ := suite.shippedRelease(&tenantID)

	query, err := queries.NewGetLoadStatusQuery(loads[0].ID(), suite.actor(&other))
	suite.Require().NoError(err)

	_, err = suite.loadHandler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestGetLoadStatus_Unknown() {
	query, err := queries.NewGetLoadStatusQuery(kernel.NewUUID(), suite.actor(nil))
	suite.Require().NoError(err)

	_, err = suite.loadHandler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}
