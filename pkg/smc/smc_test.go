//go:build darwin && arm64

package smc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBatteryCharge(t *testing.T) {
	c := NewMock(map[string][]byte{
		BatteryChargeKey: {0x4b},
	})
	require.NoError(t, c.Open())
	defer c.Close()

	charge, err := c.GetBatteryCharge()
	require.NoError(t, err)
	assert.Equal(t, 75, charge)
}

func TestGetBatteryChargeBadLength(t *testing.T) {
	c := NewMock(map[string][]byte{
		BatteryChargeKey: {0x4b, 0x00},
	})
	require.NoError(t, c.Open())
	defer c.Close()

	_, err := c.GetBatteryCharge()
	assert.Error(t, err)
}
