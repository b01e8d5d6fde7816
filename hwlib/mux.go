// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/evsim"
)

// SelectorBits is the width of the selector input of Mux and DMux.
//
var SelectorBits = evsim.IntKey{ID: "SelectorBits", Default: 1, Min: 1, Max: 4, Desc: "Selector bits"}

func muxInputs(a evsim.Attributes) []evsim.Pin {
	sel := SelectorBits.Uint(a)
	bits := evsim.Bits.Uint(a)
	ps := []evsim.Pin{{Name: pSel, Bits: sel}}
	for i := 0; i < 1<<sel; i++ {
		ps = append(ps, evsim.Pin{Name: pIn + "_" + strconv.Itoa(i), Bits: bits})
	}
	return ps
}

// Mux is a multiplexer.
//
//	Attributes: Bits, SelectorBits
//	Inputs: sel[SelectorBits], in_0[Bits], ... in_<2^SelectorBits-1>[Bits]
//	Outputs: out[Bits]
//	Function: out = in_<sel>
//
var Mux = &evsim.PartSpec{
	Name:    "MUX",
	Keys:    []evsim.Key{evsim.Bits, SelectorBits},
	Inputs:  muxInputs,
	Outputs: pins(pOut),
	Mount: func(s *evsim.Socket) ([]evsim.Node, error) {
		return []evsim.Node{newComb(s, func(in, out []uint64) {
			out[0] = in[1+in[0]]
		})}, nil
	},
}

func dmuxOutputs(a evsim.Attributes) []evsim.Pin {
	sel := SelectorBits.Uint(a)
	bits := evsim.Bits.Uint(a)
	ps := make([]evsim.Pin, 1<<sel)
	for i := range ps {
		ps[i] = evsim.Pin{Name: pOut + "_" + strconv.Itoa(i), Bits: bits}
	}
	return ps
}

// DMux is a demultiplexer.
//
//	Attributes: Bits, SelectorBits
//	Inputs: sel[SelectorBits], in[Bits]
//	Outputs: out_0[Bits], ... out_<2^SelectorBits-1>[Bits]
//	Function: out_<sel> = in, all other outputs are 0
//
var DMux = &evsim.PartSpec{
	Name: "DMUX",
	Keys: []evsim.Key{evsim.Bits, SelectorBits},
	Inputs: func(a evsim.Attributes) []evsim.Pin {
		return []evsim.Pin{{Name: pSel, Bits: SelectorBits.Uint(a)}, {Name: pIn, Bits: evsim.Bits.Uint(a)}}
	},
	Outputs: dmuxOutputs,
	Mount: func(s *evsim.Socket) ([]evsim.Node, error) {
		return []evsim.Node{newComb(s, func(in, out []uint64) {
			for i := range out {
				out[i] = 0
			}
			out[in[0]] = in[1]
		})}, nil
	},
}
