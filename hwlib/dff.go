// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import "github.com/db47h/evsim"

type dff struct {
	d, c    evsim.Signal
	q, nq   evsim.Signal
	outs    []evsim.Signal
	sens    []evsim.Signal
	lastClk bool
	v       uint64
}

func (f *dff) ReadInputs(m *evsim.Model) {
	clk := m.Bool(f.c)
	// raising edge?
	if clk && !f.lastClk {
		f.v = m.Get(f.d)
	}
	f.lastClk = clk
}

func (f *dff) WriteOutputs(m *evsim.Model) {
	m.Set(f.q, f.v)
	m.Set(f.nq, ^f.v)
}

func (f *dff) Outputs() []evsim.Signal     { return f.outs }
func (f *dff) Sensitivity() []evsim.Signal { return f.sens }

// DFF is a clocked data flip flop. It only observes its clock, changes of D
// between two rising edges do not trigger any evaluation.
//
//	Attributes: Bits
//	Inputs: D[Bits], C
//	Outputs: Q[Bits], ~Q[Bits]
//	Function: Q = D at the last rising edge of C
//
var DFF = &evsim.PartSpec{
	Name: "DFF",
	Keys: []evsim.Key{evsim.Bits},
	Inputs: func(a evsim.Attributes) []evsim.Pin {
		return []evsim.Pin{{Name: "D", Bits: evsim.Bits.Uint(a)}, {Name: "C", Bits: 1, Clock: true}}
	},
	Outputs: func(a evsim.Attributes) []evsim.Pin {
		n := evsim.Bits.Uint(a)
		return []evsim.Pin{{Name: "Q", Bits: n}, {Name: "~Q", Bits: n}}
	},
	Mount: func(s *evsim.Socket) ([]evsim.Node, error) {
		f := &dff{d: s.Input("D"), c: s.Input("C"), q: s.Output("Q"), nq: s.Output("~Q")}
		f.outs = []evsim.Signal{f.q, f.nq}
		f.sens = []evsim.Signal{f.c}
		return []evsim.Node{f}, nil
	},
}
