// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"math"

	"github.com/db47h/evsim"
)

// ConstValue is the value of a Const part.
//
var ConstValue = evsim.IntKey{ID: "Value", Default: 0, Min: math.MinInt, Max: math.MaxInt, Desc: "Constant value"}

type constNode struct {
	out []evsim.Signal
	v   uint64
}

func (c *constNode) ReadInputs(*evsim.Model)     {}
func (c *constNode) WriteOutputs(m *evsim.Model) { m.Set(c.out[0], c.v) }
func (c *constNode) Outputs() []evsim.Signal     { return c.out }
func (c *constNode) Sensitivity() []evsim.Signal { return nil }

// Const is a constant source. Negative values are sign extended, then masked
// to the output width.
//
//	Attributes: Bits, Value
//	Outputs: out[Bits]
//	Function: out = Value
//
var Const = &evsim.PartSpec{
	Name:    "Const",
	Keys:    []evsim.Key{evsim.Bits, ConstValue},
	Outputs: pins(pOut),
	Mount: func(s *evsim.Socket) ([]evsim.Node, error) {
		return []evsim.Node{&constNode{out: s.Outputs(), v: uint64(ConstValue.Get(s.Attributes()))}}, nil
	},
}

type probe struct {
	in []evsim.Signal
	v  evsim.Value
	fn func(evsim.Value)
}

func (p *probe) ReadInputs(m *evsim.Model)   { p.v = m.Value(p.in[0]) }
func (p *probe) WriteOutputs(*evsim.Model)   { p.fn(p.v) }
func (p *probe) Outputs() []evsim.Signal     { return nil }
func (p *probe) Sensitivity() []evsim.Signal { return p.in }

// Probe returns an output part that calls fn with the value of its input each
// time the input changes. Unlike evsim.Model.Watch, the probe is a node: fn is
// called from the write phase of the round following the change.
//
//	Attributes: Bits
//	Inputs: in[Bits]
//	Function: fn(in)
//
func Probe(fn func(evsim.Value)) *evsim.PartSpec {
	return &evsim.PartSpec{
		Name:   "Probe",
		Keys:   []evsim.Key{evsim.Bits},
		Inputs: pins(pIn),
		Mount: func(s *evsim.Socket) ([]evsim.Node, error) {
			return []evsim.Node{&probe{in: s.Inputs(), fn: fn}}, nil
		},
	}
}
