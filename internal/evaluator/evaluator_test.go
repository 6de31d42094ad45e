package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takrawm/famengine/internal/fam"
	"github.com/takrawm/famengine/internal/nodestore"
)

func TestEvaluateSimpleArithmetic(t *testing.T) {
	s := nodestore.New()
	a := s.AddLeaf(10, "a")
	b := s.AddLeaf(4, "b")
	add := s.AddOp(a, b, fam.Add, "add")
	sub := s.AddOp(a, b, fam.Sub, "sub")
	mul := s.AddOp(a, b, fam.Mul, "mul")
	div := s.AddOp(a, b, fam.Div, "div")

	vals, err := Evaluate(s, []nodestore.ID{add, sub, mul, div})
	require.NoError(t, err)
	assert.Equal(t, 14.0, vals[add])
	assert.Equal(t, 6.0, vals[sub])
	assert.Equal(t, 40.0, vals[mul])
	assert.Equal(t, 2.5, vals[div])
}

func TestEvaluateSharedSubgraphEvaluatedOnce(t *testing.T) {
	s := nodestore.New()
	leaf := s.AddLeaf(5, "leaf")
	left := s.AddOp(leaf, leaf, fam.Add, "double")
	root := s.AddOp(left, left, fam.Mul, "square")

	vals, err := Evaluate(s, []nodestore.ID{root})
	require.NoError(t, err)
	assert.Equal(t, 100.0, vals[root])
}

func TestEvaluateDivisionByZero(t *testing.T) {
	s := nodestore.New()
	a := s.AddLeaf(1, "a")
	zero := s.AddLeaf(0, "zero")
	div := s.AddOp(a, zero, fam.Div, "x")

	_, err := Evaluate(s, []nodestore.ID{div})
	require.Error(t, err)
	var dbz *fam.DivisionByZeroError
	require.ErrorAs(t, err, &dbz)
}

func TestEvaluateDivisionBySubnormalIsNotAnError(t *testing.T) {
	s := nodestore.New()
	one := s.AddLeaf(1, "one")
	subnormal := s.AddLeaf(5e-324, "subnormal")
	div := s.AddOp(one, subnormal, fam.Div, "x")

	vals, err := Evaluate(s, []nodestore.ID{div})
	require.NoError(t, err)
	assert.True(t, vals[div] > 0)
}

func TestEvaluateOnlyReachableSubgraph(t *testing.T) {
	s := nodestore.New()
	root := s.AddLeaf(1, "root")
	s.AddLeaf(2, "unreachable")

	vals, err := Evaluate(s, []nodestore.ID{root})
	require.NoError(t, err)
	assert.Len(t, vals, 1)
}
