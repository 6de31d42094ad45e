package fam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodTableResolve(t *testing.T) {
	pt := NewPeriodTable()
	pt.Set([]Period{
		{ID: "2023", Year: 2023, Type: Annual},
		{ID: "2024", Year: 2024, Type: Annual},
		{ID: "2025", Year: 2025, Type: Annual},
	})

	idx, err := pt.IndexOf("2024")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	prev, err := pt.Resolve("2024", -1)
	require.NoError(t, err)
	assert.Equal(t, PeriodId("2023"), prev)

	next, err := pt.Resolve("2024", 1)
	require.NoError(t, err)
	assert.Equal(t, PeriodId("2025"), next)

	_, err = pt.Resolve("2023", -1)
	require.Error(t, err)
	var oorErr *PeriodOutOfRangeError
	require.ErrorAs(t, err, &oorErr)

	_, err = pt.Resolve("2099", 0)
	require.Error(t, err)
	var unknownErr *UnknownPeriodError
	require.ErrorAs(t, err, &unknownErr)
}

func TestPeriodTableAppendUpdatesIndex(t *testing.T) {
	pt := NewPeriodTable()
	pt.Set([]Period{{ID: "2024", Year: 2024, Type: Annual}})
	pt.Append(Period{ID: "2025", Year: 2025, Type: Annual})

	assert.Equal(t, 2, pt.Len())
	idx, err := pt.IndexOf("2025")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	latest, ok := pt.Latest()
	require.True(t, ok)
	assert.Equal(t, PeriodId("2025"), latest.ID)
}

func TestPeriodTableLatestEmpty(t *testing.T) {
	pt := NewPeriodTable()
	_, ok := pt.Latest()
	assert.False(t, ok)
}
