package config

import (
	"fmt"

	"github.com/takrawm/famengine/internal/fam"
)

// formulaYAML is the on-disk shape of a Calculation rule's formula
// tree, recursively unmarshaled from rules.yaml. Exactly one of
// {Number, Ref, Op} is set per node:
//
//	{number: 1.5}
//	{ref: revenue}                  # offset defaults to 0
//	{ref: revenue, offset: -1}
//	{op: sub, left: {...}, right: {...}}
type formulaYAML struct {
	Number *float64     `yaml:"number,omitempty"`
	Ref    string       `yaml:"ref,omitempty"`
	Offset int          `yaml:"offset,omitempty"`
	Op     string       `yaml:"op,omitempty"`
	Left   *formulaYAML `yaml:"left,omitempty"`
	Right  *formulaYAML `yaml:"right,omitempty"`
}

// toFormula converts the YAML tree into a fam.Formula, the shape
// internal/builder expects.
func (f *formulaYAML) toFormula() (*fam.Formula, error) {
	if f == nil {
		return nil, fmt.Errorf("empty formula node")
	}

	switch {
	case f.Number != nil:
		return fam.Num(*f.Number), nil

	case f.Ref != "":
		if f.Offset == 0 {
			return fam.Ref(fam.AccountId(f.Ref)), nil
		}
		return fam.RefAt(fam.AccountId(f.Ref), f.Offset), nil

	case f.Op != "":
		op, err := parseOp(f.Op)
		if err != nil {
			return nil, err
		}
		left, err := f.Left.toFormula()
		if err != nil {
			return nil, fmt.Errorf("left operand: %w", err)
		}
		right, err := f.Right.toFormula()
		if err != nil {
			return nil, fmt.Errorf("right operand: %w", err)
		}
		return fam.Bin(op, left, right), nil

	default:
		return nil, fmt.Errorf("formula node must set one of number, ref, op")
	}
}

func parseOp(s string) (fam.Op, error) {
	switch s {
	case "add":
		return fam.Add, nil
	case "sub":
		return fam.Sub, nil
	case "mul":
		return fam.Mul, nil
	case "div":
		return fam.Div, nil
	default:
		return "", fmt.Errorf("unknown formula operator %q", s)
	}
}
