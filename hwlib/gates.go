// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable parts for evsim.
//
// Copyright 2018 Denis Bernard <db047h@gmail.com>
//
// This package is licensed under the MIT license. See license text in the LICENSE file.
//
package hwlib

import (
	"github.com/db47h/evsim"
)

// common pin names
const (
	pA   = "a"
	pB   = "b"
	pIn  = "in"
	pSel = "sel"
	pOut = "out"
)

// pins returns a PinsFn for the given pin names, all Bits wide.
func pins(names ...string) evsim.PinsFn {
	return func(a evsim.Attributes) []evsim.Pin {
		bits := evsim.Bits.Uint(a)
		ps := make([]evsim.Pin, len(names))
		for i, n := range names {
			ps[i] = evsim.Pin{Name: n, Bits: bits}
		}
		return ps
	}
}

type notNode struct {
	in, out []evsim.Signal
	v       uint64
}

func newNot(in, out evsim.Signal) *notNode {
	return &notNode{in: []evsim.Signal{in}, out: []evsim.Signal{out}}
}

func (n *notNode) ReadInputs(m *evsim.Model)   { n.v = m.Get(n.in[0]) }
func (n *notNode) WriteOutputs(m *evsim.Model) { m.Set(n.out[0], ^n.v) }
func (n *notNode) Outputs() []evsim.Signal     { return n.out }
func (n *notNode) Sensitivity() []evsim.Signal { return n.in }

// Not is a NOT gate.
//
//	Attributes: Bits
//	Inputs: in[Bits]
//	Outputs: out[Bits]
//	Function: out = ^in
//
var Not = &evsim.PartSpec{
	Name:    "NOT",
	Keys:    []evsim.Key{evsim.Bits},
	Inputs:  pins(pIn),
	Outputs: pins(pOut),
	Mount: func(s *evsim.Socket) ([]evsim.Node, error) {
		return []evsim.Node{newNot(s.Input(pIn), s.Output(pOut))}, nil
	},
}

// gate is a two input gate. Output values are masked to the output width by
// Model.Set.
type gate struct {
	fn     func(a, b uint64) uint64
	a, b   evsim.Signal
	out    evsim.Signal
	outs   []evsim.Signal
	ins    []evsim.Signal
	outVal uint64
}

func (g *gate) ReadInputs(m *evsim.Model) {
	g.outVal = g.fn(m.Get(g.a), m.Get(g.b))
}

func (g *gate) WriteOutputs(m *evsim.Model) {
	m.Set(g.out, g.outVal)
}

func (g *gate) Outputs() []evsim.Signal     { return g.outs }
func (g *gate) Sensitivity() []evsim.Signal { return g.ins }

func newGate(name string, fn func(a, b uint64) uint64) *evsim.PartSpec {
	return &evsim.PartSpec{
		Name:    name,
		Keys:    []evsim.Key{evsim.Bits},
		Inputs:  pins(pA, pB),
		Outputs: pins(pOut),
		Mount: func(s *evsim.Socket) ([]evsim.Node, error) {
			g := &gate{fn: fn, a: s.Input(pA), b: s.Input(pB), out: s.Output(pOut)}
			g.ins = []evsim.Signal{g.a, g.b}
			g.outs = []evsim.Signal{g.out}
			return []evsim.Node{g}, nil
		},
	}
}

// Two input gates.
//
//	Attributes: Bits
//	Inputs: a[Bits], b[Bits]
//	Outputs: out[Bits]
//
//	And:  out = a & b
//	Nand: out = ^(a & b)
//	Or:   out = a | b
//	Nor:  out = ^(a | b)
//	Xor:  out = a ^ b
//	Xnor: out = ^(a ^ b)
//
var (
	And  = newGate("AND", func(a, b uint64) uint64 { return a & b })
	Nand = newGate("NAND", func(a, b uint64) uint64 { return ^(a & b) })
	Or   = newGate("OR", func(a, b uint64) uint64 { return a | b })
	Nor  = newGate("NOR", func(a, b uint64) uint64 { return ^(a | b) })
	Xor  = newGate("XOR", func(a, b uint64) uint64 { return a ^ b })
	Xnor = newGate("XNOR", func(a, b uint64) uint64 { return ^(a ^ b) })
)
