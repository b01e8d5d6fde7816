// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package evsim

// A Socket gives a MountFn access to the signals bound to a part's pins and to
// its attributes.
//
type Socket struct {
	m     *Model
	name  string
	attrs Attributes
	ipins []Pin
	ins   []Signal
	opins []Pin
	outs  []Signal
}

// Name returns the name of the part being mounted (its label if set).
//
func (s *Socket) Name() string { return s.name }

// Attributes returns the attributes of the part being mounted.
//
func (s *Socket) Attributes() Attributes { return s.attrs }

// Input returns the signal bound to the named input pin.
// This function panics if the pin does not exist.
//
func (s *Socket) Input(name string) Signal {
	for i, p := range s.ipins {
		if p.Name == name {
			return s.ins[i]
		}
	}
	panic("input pin " + name + " does not exist in " + s.name)
}

// InputAt returns the signal bound to the i-th input pin.
//
func (s *Socket) InputAt(i int) Signal { return s.ins[i] }

// Inputs returns the signals bound to all input pins, in pin order.
//
func (s *Socket) Inputs() []Signal {
	r := make([]Signal, len(s.ins))
	copy(r, s.ins)
	return r
}

// Output returns the signal allocated for the named output pin.
// This function panics if the pin does not exist.
//
func (s *Socket) Output(name string) Signal {
	for i, p := range s.opins {
		if p.Name == name {
			return s.outs[i]
		}
	}
	panic("output pin " + name + " does not exist in " + s.name)
}

// OutputAt returns the signal allocated for the i-th output pin.
//
func (s *Socket) OutputAt(i int) Signal { return s.outs[i] }

// Outputs returns the signals of all output pins, in pin order.
//
func (s *Socket) Outputs() []Signal {
	r := make([]Signal, len(s.outs))
	copy(r, s.outs)
	return r
}

// NewSignal allocates an internal signal private to the part.
//
func (s *Socket) NewSignal(name string, bits uint) Signal {
	return s.m.NewSignal(s.name+"."+name, bits)
}
