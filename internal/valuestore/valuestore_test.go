package valuestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGet(t *testing.T) {
	s := New()
	_, ok := s.Get("2024", "revenue")
	assert.False(t, ok)

	s.Set("2024", "revenue", 500000)
	v, ok := s.Get("2024", "revenue")
	assert.True(t, ok)
	assert.Equal(t, 500000.0, v)
	assert.True(t, s.Has("2024", "revenue"))
}

func TestSetOverwrites(t *testing.T) {
	s := New()
	s.Set("2024", "revenue", 1)
	s.Set("2024", "revenue", 2)
	v, _ := s.Get("2024", "revenue")
	assert.Equal(t, 2.0, v)
}

func TestDistinctKeysDoNotCollide(t *testing.T) {
	s := New()
	s.Set("2024", "revenue", 1)
	s.Set("2025", "revenue", 2)
	s.Set("2024", "cogs", 3)

	v1, _ := s.Get("2024", "revenue")
	v2, _ := s.Get("2025", "revenue")
	v3, _ := s.Get("2024", "cogs")
	assert.Equal(t, 1.0, v1)
	assert.Equal(t, 2.0, v2)
	assert.Equal(t, 3.0, v3)
}
