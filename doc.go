// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package evsim implements a discrete-event simulator for digital circuits.

A Model owns a flat arena of fixed-width signals and a set of nodes. Nodes
observe some of their input signals; when a committed signal value changes,
every node observing it is marked dirty. Model.Step then runs evaluation rounds
until no node is dirty: in each round, all dirty nodes read their inputs
(ReadInputs), then all of them commit their outputs (WriteOutputs). Outputs
committed in one round become the inputs of the next, so the evaluation order
of nodes within a round has no effect on the result. A circuit that does not
settle within a bounded number of rounds (a combinational loop that
oscillates) makes Step fail with a *NonConvergentError.

Components are described by a PartSpec: a name, the attribute keys it accepts,
its input and output pins as a function of its attributes, and a MountFn that
returns the nodes implementing it. Model.Mount checks the width of every input
signal against the pins the part declares before adding any node, so wiring
errors surface as *WidthMismatchError at mount time, never during evaluation.

The hwlib package provides a library of parts: logic gates, flip-flops,
multiplexers, adders and a multi-port RAM.
*/
package evsim
