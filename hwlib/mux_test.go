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

func TestMux(t *testing.T) {
	for _, sel := range []int{1, 2, 4} {
		m := evsim.New()
		a := evsim.Attributes{"Bits": 16, "SelectorBits": sel}
		p := hwtest.Mount(t, m, hl.Mux, a)
		ins := p.Inputs()
		if len(ins) != 1+1<<uint(sel) {
			t.Fatalf("SelectorBits %d: %d inputs", sel, len(ins))
		}
		f := func(s uint8, vs [16]uint16) bool {
			s &= uint8(evsim.Mask(uint(sel)))
			m.Set(ins[0], uint64(s))
			for i, in := range ins[1:] {
				m.Set(in, uint64(vs[i]))
			}
			hwtest.Step(t, m)
			return m.Get(p.Output("out")) == uint64(vs[s])
		}
		if err := quick.Check(f, nil); err != nil {
			t.Errorf("SelectorBits %d: %v", sel, err)
		}
	}
}

func TestDMux(t *testing.T) {
	m := evsim.New()
	p := hwtest.Mount(t, m, hl.DMux, evsim.Attributes{"Bits": 8, "SelectorBits": 2})
	sel, in := p.Inputs()[0], p.Inputs()[1]
	outs := p.Outputs()
	if len(outs) != 4 {
		t.Fatalf("%d outputs", len(outs))
	}
	for s := uint64(0); s < 4; s++ {
		m.Set(sel, s)
		m.Set(in, 0xa0+s)
		hwtest.Step(t, m)
		for i, o := range outs {
			var exp uint64
			if uint64(i) == s {
				exp = 0xa0 + s
			}
			if got := m.Get(o); got != exp {
				t.Errorf("sel = %d: out_%d = %#x, expected %#x", s, i, got, exp)
			}
		}
	}
}
