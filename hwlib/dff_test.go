// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"testing"

	"github.com/db47h/evsim"
	hl "github.com/db47h/evsim/hwlib"
	"github.com/db47h/evsim/hwtest"
)

// tick raises then lowers clk, stepping m after each transition.
func tick(t *testing.T, m *evsim.Model, clk evsim.Signal) {
	t.Helper()
	m.Set(clk, 1)
	hwtest.Step(t, m)
	m.Set(clk, 0)
	hwtest.Step(t, m)
}

func TestDFF(t *testing.T) {
	m := evsim.New()
	p := hwtest.Mount(t, m, hl.DFF, evsim.Attributes{"Bits": 4})
	d, clk := p.Inputs()[0], p.Inputs()[1]
	q, nq := p.Output("Q"), p.Output("~Q")
	m.Set(clk, 0)
	hwtest.Step(t, m)

	var prev uint64
	for i := uint64(15); i < 16; i-- {
		m.Set(d, i)
		hwtest.Step(t, m)
		if got := m.Get(q); got != prev {
			t.Fatalf("D = %d: Q changed to %d before the clock edge", i, got)
		}
		m.Set(clk, 1)
		hwtest.Step(t, m)
		if got := m.Get(q); got != i {
			t.Fatalf("D = %d: Q = %d after rising edge", i, got)
		}
		if got := m.Get(nq); got != ^i&0xf {
			t.Fatalf("D = %d: ~Q = %#x after rising edge", i, got)
		}
		// falling edge and D changes are ignored.
		m.Set(d, 0)
		m.Set(clk, 0)
		hwtest.Step(t, m)
		if got := m.Get(q); got != i {
			t.Fatalf("D = %d: Q = %d after falling edge", i, got)
		}
		prev = i
	}
}

func TestDFF_shift(t *testing.T) {
	const stages = 4
	m := evsim.New()
	clk, in := m.NewSignal("clk", 1), m.NewSignal("in", 1)
	m.Set(clk, 0)
	m.Set(in, 0)
	s := in
	var outs []evsim.Signal
	for i := 0; i < stages; i++ {
		p, err := m.Mount(hl.DFF, nil, s, clk)
		if err != nil {
			t.Fatal(err)
		}
		s = p.Output("Q")
		outs = append(outs, s)
	}
	hwtest.Step(t, m)

	pattern := []uint64{1, 0, 1, 1, 0, 0, 0, 0}
	var hist []uint64
	for _, v := range pattern {
		m.Set(in, v)
		hwtest.Step(t, m)
		tick(t, m, clk)
		hist = append([]uint64{v}, hist...)
		for j, o := range outs {
			var exp uint64
			if j < len(hist) {
				exp = hist[j]
			}
			if got := m.Get(o); got != exp {
				t.Fatalf("after %d edges: stage %d = %d, expected %d", len(hist), j, got, exp)
			}
		}
	}
}
