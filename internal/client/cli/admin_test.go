package cli

import (
	"context"
	"math"
	"strconv"
	"testing"

	"github.com/dmitrijs2005/affiliatepro/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInt(t *testing.T) {
	n, err := toInt(42)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	n, err = toInt(int64(math.MaxInt))
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, n)

	if strconv.IntSize == 32 {
		_, err = toInt(int64(math.MaxInt32) + 1)
		require.ErrorIs(t, err, common.ErrValidation)
		_, err = toInt(int64(math.MinInt32) - 1)
		require.ErrorIs(t, err, common.ErrValidation)
	}
}

func TestAddProduct_CommissionOutOfRangeRejected(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t),
		"Kopi", "250000", "4294967301", "", "https://example.com/kopi",
	)
	ctx := context.Background()

	err := a.AddProduct(ctx)
	require.ErrorIs(t, err, common.ErrValidation)

	list, err := a.products.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 20, "nothing is created")
}
