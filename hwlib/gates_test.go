// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"testing"
	"testing/quick"

	"github.com/db47h/evsim"
	hl "github.com/db47h/evsim/hwlib"
	"github.com/db47h/evsim/hwtest"
)

// testGate checks all input combinations of a part with 1 bit inputs. result
// holds, for each output, the expected values for all input combinations, the
// first input being the most significant bit.
func testGate(t *testing.T, gate *evsim.PartSpec, result [][]uint64) {
	t.Helper()
	m := evsim.New()
	p := hwtest.Mount(t, m, gate, nil)
	ins := p.Inputs()
	tot := 1 << uint(len(ins))
	for i := 0; i < tot; i++ {
		for bit := range ins {
			m.Set(ins[len(ins)-bit-1], uint64(i>>uint(bit)&1))
		}
		hwtest.Step(t, m)
		for o, out := range p.Outputs() {
			if got, exp := m.Get(out), result[o][i]; got != exp {
				t.Errorf("%s input %0*b: output %d = %d, expected %d", gate.Name, len(ins), i, o, got, exp)
			}
		}
	}
}

func Test_gate_builtin(t *testing.T) {
	td := []struct {
		gate   *evsim.PartSpec
		result [][]uint64 // a=0 && b=0, a=0 && b=1, a=1 && b=0, a=1 && b=1
	}{
		{hl.Not, [][]uint64{{1, 0}}},
		{hl.And, [][]uint64{{0, 0, 0, 1}}},
		{hl.Nand, [][]uint64{{1, 1, 1, 0}}},
		{hl.Or, [][]uint64{{0, 1, 1, 1}}},
		{hl.Nor, [][]uint64{{1, 0, 0, 0}}},
		{hl.Xor, [][]uint64{{0, 1, 1, 0}}},
		{hl.Xnor, [][]uint64{{1, 0, 0, 1}}},
		{hl.MultiNot, [][]uint64{
			{1, 1, 1, 1, 0, 0, 0, 0},
			{1, 1, 0, 0, 1, 1, 0, 0},
			{1, 0, 1, 0, 1, 0, 1, 0},
		}},
		{hl.Mux, [][]uint64{{0, 0, 1, 1, 0, 1, 0, 1}}},
		{hl.DMux, [][]uint64{{0, 1, 0, 0}, {0, 0, 0, 1}}},
	}
	for _, d := range td {
		t.Run(d.gate.Name, func(t *testing.T) {
			testGate(t, d.gate, d.result)
		})
	}
}

func Test_gateN_builtin(t *testing.T) {
	td := []struct {
		gate *evsim.PartSpec
		ctrl func(a, b uint64) uint64
	}{
		{hl.And, func(a, b uint64) uint64 { return a & b }},
		{hl.Or, func(a, b uint64) uint64 { return a | b }},
		{hl.Nand, func(a, b uint64) uint64 { return ^(a & b) }},
		{hl.Nor, func(a, b uint64) uint64 { return ^(a | b) }},
		{hl.Xor, func(a, b uint64) uint64 { return a ^ b }},
		{hl.Xnor, func(a, b uint64) uint64 { return ^(a ^ b) }},
	}
	for _, d := range td {
		t.Run(d.gate.Name, func(t *testing.T) {
			for _, bits := range []uint{1, 3, 8, 16, 31, 32, 63, 64} {
				m := evsim.New()
				p := hwtest.Mount(t, m, d.gate, evsim.Attributes{"Bits": int(bits)})
				a, b, out := p.Inputs()[0], p.Inputs()[1], p.Output("out")
				hwtest.Step(t, m)
				mask := evsim.Mask(bits)

				f := func(x, y uint64) bool {
					x, y = x&mask, y&mask
					m.Set(a, x)
					m.Set(b, y)
					r := m.Rounds()
					hwtest.Step(t, m)
					rounds := m.Rounds() - r
					// no round at all if neither input changed.
					return m.Get(out) == d.ctrl(x, y)&mask && rounds <= 1
				}
				if err := quick.Check(f, nil); err != nil {
					t.Fatalf("%d bits: %v", bits, err)
				}
			}
		})
	}
}

// exactly one round for any input change.
func Test_gate_oneRound(t *testing.T) {
	m := evsim.New()
	p := hwtest.Mount(t, m, hl.And, evsim.Attributes{"Bits": 8})
	a, b := p.Inputs()[0], p.Inputs()[1]
	hwtest.Step(t, m)
	for i, v := range [][2]uint64{{0xff, 0x0f}, {0x3c, 0x0f}, {0x3c, 0xf0}} {
		m.Set(a, v[0])
		m.Set(b, v[1])
		r := m.Rounds()
		hwtest.Step(t, m)
		if n := m.Rounds() - r; n != 1 {
			t.Errorf("case %d: %d rounds", i, n)
		}
		if got := m.Get(p.Output("out")); got != v[0]&v[1] {
			t.Errorf("case %d: %#x & %#x = %#x", i, v[0], v[1], got)
		}
	}
}
