// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/evsim"
)

// multiNotWays is the number of independent inverters in a MultiNot.
const multiNotWays = 3

func indexedPins(prefix string, n int) evsim.PinsFn {
	names := make([]string, n)
	for i := range names {
		names[i] = prefix + strconv.Itoa(i)
	}
	return pins(names...)
}

// MultiNot packages three independent NOT gates. Each gate is mounted as a
// separate node observing only its own input, so a change on I_i only
// re-evaluates the gate driving O_i.
//
//	Attributes: Bits
//	Inputs: I_0[Bits], I_1[Bits], I_2[Bits]
//	Outputs: O_0[Bits], O_1[Bits], O_2[Bits]
//	Function: O_i = ^I_i
//
var MultiNot = &evsim.PartSpec{
	Name:    "MultiNot",
	Keys:    []evsim.Key{evsim.Bits},
	Inputs:  indexedPins("I_", multiNotWays),
	Outputs: indexedPins("O_", multiNotWays),
	Mount: func(s *evsim.Socket) ([]evsim.Node, error) {
		nodes := make([]evsim.Node, multiNotWays)
		for i := range nodes {
			nodes[i] = newNot(s.InputAt(i), s.OutputAt(i))
		}
		return nodes, nil
	},
}
