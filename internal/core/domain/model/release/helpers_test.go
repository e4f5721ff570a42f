package release_test

import (
	"testing"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/reference"
	"shipments/internal/core/domain/model/release"

	"github.com/stretchr/testify/require"
)

func quantity(t *testing.T, s string) kernel.Quantity {
	t.Helper()
	q, err := kernel.ParseQuantity(s)
	require.NoError(t, err)
	return q
}

func newRelease(t *testing.T) *release.Release {
	t.Helper()
	tenantID := kernel.NewUUID()
	r, err := release.NewRelease(kernel.NewUUID(), release.Details{
		Number:        "R-1001",
		TenantID:      &tenantID,
		CustomerID:    kernel.NewUUID(),
		TotalQuantity: quantity(t, "75.00"),
		ShipTo:        reference.Address{Name: "Plant 4", City: "Tacoma", State: "WA"},
	})
	require.NoError(t, err)
	return r
}

func newLoads(t *testing.T, r *release.Release, n int) []*release.Load {
	t.Helper()
	loads := make([]*release.Load, 0, n)
	for i := 1; i <= n; i++ {
		l, err := release.NewLoad(kernel.NewUUID(), r.ID(), i, quantity(t, "25.00"))
		require.NoError(t, err)
		loads = append(loads, l)
	}
	return loads
}
