package queries_test

import (
	"context"
	"time"

	"shipments/internal/core/application/usecases/queries"
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/pkg/errs"
)

func (suite *QueryHandlersTestSuite) TestGetBOL_Issued() {
	tenantID := kernel.NewUUID()
	rel, loads, doc := suite.shippedRelease(&tenantID)

	query, err := queries.NewGetBOLQuery(doc.ID(), suite.actor(&tenantID))
	suite.Require().NoError(err)

	resp, err := suite.bolHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal("PRT-2025-0001", resp.Number)
	suite.True(resp.ReleaseID.IsEqual(rel.ID()))
	suite.Require().NotNil(resp.LoadID)
	suite.True(resp.LoadID.IsEqual(loads[0].ID()))
	suite.Equal("25.75", resp.Quantity.String())
	suite.Equal("dispatcher", resp.IssuedBy)
	suite.True(resp.IssuedAt.Equal(time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)))
	suite.False(resp.Voided)
	suite.Nil(resp.VoidedAt)
	suite.Equal("Acme Steel", resp.Snapshot.CustomerName)
	suite.Equal("PRT-2025-0001", resp.Snapshot.Number)
}

func (suite *QueryHandlersTestSuite) TestGetBOL_Voided() {
	tenantID := kernel.NewUUID()
	_, _, doc := suite.shippedRelease(&tenantID)
	suite.Require().NoError(doc.Void("supervisor", "wrong truck", time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)))
	suite.Require().NoError(suite.bols.Update(context.Background(), doc))

	query, err := queries.NewGetBOLQuery(doc.ID(), suite.actor(nil))
	suite.Require().NoError(err)

	resp, err := suite.bolHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.True(resp.Voided)
	suite.Equal("wrong truck", resp.VoidReason)
	suite.Equal("supervisor", resp.VoidedBy)
	suite.Require().NotNil(resp.VoidedAt)
	suite.True(resp.VoidedAt.Equal(time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)))
}

func (suite *QueryHandlersTestSuite) TestGetBOL_OtherTenantIsNotFound() {
	tenantID := kernel.NewUUID()
	other := kernel.NewUUID()
	_, _, doc := suite.shippedRelease(&tenantID)

	query, err := queries.NewGetBOLQuery(doc.ID(), suite.actor(&other))
	suite.Require().NoError(err)

	_, err = suite.bolHandler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}
