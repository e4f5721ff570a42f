package commands_test

import (
	"testing"

	"shipments/internal/core/application/usecases/commands"
	"shipments/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFulfillLoadCommand_Success(t *testing.T) {
	loadID := kernel.NewUUID()
	carrierID := kernel.NewUUID()
	truckID := kernel.NewUUID()
	actor := tenantActor(t, nil)

	cmd, err := commands.NewFulfillLoadCommand(loadID, carrierID, &truckID, qty(t, "25.75"), actor)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, loadID, cmd.LoadID())
	assert.Equal(t, carrierID, cmd.CarrierID())
	assert.Equal(t, &truckID, cmd.TruckID())
	assert.Equal(t, "25.75", cmd.Quantity().String())
	assert.Equal(t, "user-1", cmd.Actor().UserID())
}

func TestNewFulfillLoadCommand_WithoutTruck(t *testing.T) {
	cmd, err := commands.NewFulfillLoadCommand(kernel.NewUUID(), kernel.NewUUID(), nil, qty(t, "1.00"), tenantActor(t, nil))

	require.NoError(t, err)
	assert.Nil(t, cmd.TruckID())
}

func TestNewFulfillLoadCommand_InvalidInputs(t *testing.T) {
	tests := []struct {
		name    string
		build   func() error
		wantErr error
	}{
		{
			name: "zero load id",
			build: func() error {
				_, err := commands.NewFulfillLoadCommand(kernel.UUID{}, kernel.NewUUID(), nil, qty(t, "1.00"), tenantActor(t, nil))
				return err
			},
			wantErr: kernel.ErrUUIDIsNotConstructed,
		},
		{
			name: "missing quantity",
			build: func() error {
				_, err := commands.NewFulfillLoadCommand(kernel.NewUUID(), kernel.NewUUID(), nil, kernel.Quantity{}, tenantActor(t, nil))
				return err
			},
			wantErr: kernel.ErrInvalidQuantity,
		},
		{
			name: "actor not constructed",
			build: func() error {
				_, err := commands.NewFulfillLoadCommand(kernel.NewUUID(), kernel.NewUUID(), nil, qty(t, "1.00"), kernel.Actor{})
				return err
			},
			wantErr: kernel.ErrActorIsNotConstructed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.build(), tt.wantErr)
		})
	}
}

func TestFulfillLoadCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.FulfillLoadCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrFulfillLoadCommandIsNotConstructed)
}
