// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package evsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Sentinel errors. Use errors.Cause to compare.
//
var (
	ErrMultipleDrivers = errors.New("signal driven by more than one node")
	ErrBusy            = errors.New("model is evaluating")
	ErrNoSuchRAM       = errors.New("no memory with that label")
)

// WidthMismatchError is returned when a signal bound to a pin does not have
// the width declared by the pin.
//
type WidthMismatchError struct {
	Part   string // part or node that requested the check
	Pin    string
	Signal string
	Want   uint
	Got    uint
}

func (e *WidthMismatchError) Error() string {
	return e.Part + "." + e.Pin + ": signal " + e.Signal + " is " + strconv.Itoa(int(e.Got)) +
		" bits wide, expected " + strconv.Itoa(int(e.Want))
}

// NonConvergentError is returned by Model.Step when the circuit did not reach
// a stable state within the configured number of rounds.
//
type NonConvergentError struct {
	Rounds int
	Nodes  []string // names of the nodes still pending
}

func (e *NonConvergentError) Error() string {
	const maxNames = 8
	var b strings.Builder
	b.WriteString("no stable state after ")
	b.WriteString(strconv.Itoa(e.Rounds))
	b.WriteString(" rounds")
	if len(e.Nodes) > 0 {
		b.WriteString(", pending: ")
		for i, n := range e.Nodes {
			if i == maxNames {
				b.WriteString(", ...")
				break
			}
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(n)
		}
	}
	return b.String()
}
