// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import "github.com/db47h/evsim"

// comb is a combinational node computing all its outputs from all its
// inputs with fn. It observes every input.
type comb struct {
	fn   func(in, out []uint64)
	ins  []evsim.Signal
	outs []evsim.Signal
	iv   []uint64
	ov   []uint64
}

func newComb(s *evsim.Socket, fn func(in, out []uint64)) *comb {
	c := &comb{fn: fn, ins: s.Inputs(), outs: s.Outputs()}
	c.iv = make([]uint64, len(c.ins))
	c.ov = make([]uint64, len(c.outs))
	return c
}

func (c *comb) ReadInputs(m *evsim.Model) {
	for i, s := range c.ins {
		c.iv[i] = m.Get(s)
	}
	c.fn(c.iv, c.ov)
}

func (c *comb) WriteOutputs(m *evsim.Model) {
	for i, s := range c.outs {
		m.Set(s, c.ov[i])
	}
}

func (c *comb) Outputs() []evsim.Signal     { return c.outs }
func (c *comb) Sensitivity() []evsim.Signal { return c.ins }
