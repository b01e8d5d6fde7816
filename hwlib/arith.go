// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"math/bits"

	"github.com/db47h/evsim"
)

// Adder is a N-bits adder with carry.
//
//	Attributes: Bits
//	Inputs: a[Bits], b[Bits], c_i
//	Outputs: s[Bits], c_o
//	Function: s = lsb(a + b + c_i)
//	          c_o = carry out of bit Bits-1
//
var Adder = &evsim.PartSpec{
	Name: "Adder",
	Keys: []evsim.Key{evsim.Bits},
	Inputs: func(a evsim.Attributes) []evsim.Pin {
		n := evsim.Bits.Uint(a)
		return []evsim.Pin{{Name: pA, Bits: n}, {Name: pB, Bits: n}, {Name: "c_i", Bits: 1}}
	},
	Outputs: func(a evsim.Attributes) []evsim.Pin {
		return []evsim.Pin{{Name: "s", Bits: evsim.Bits.Uint(a)}, {Name: "c_o", Bits: 1}}
	},
	Mount: func(s *evsim.Socket) ([]evsim.Node, error) {
		n := evsim.Bits.Uint(s.Attributes())
		return []evsim.Node{newComb(s, func(in, out []uint64) {
			sum, c := bits.Add64(in[0], in[1], in[2])
			if n < 64 {
				c = sum >> n & 1
			}
			out[0], out[1] = sum, c
		})}, nil
	},
}
