// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package evsim

import "github.com/pkg/errors"

// A Pin describes an input or output of a part.
//
type Pin struct {
	Name  string
	Bits  uint
	Desc  string
	Clock bool
}

// A PinsFn returns the ordered pin list of a part for the given attributes.
// It must be a pure function of a.
//
type PinsFn func(a Attributes) []Pin

// A MountFn mounts a part into socket s and returns the nodes that implement
// it. MountFn's should query the socket for the input and output signals and
// return nodes bound to these signals.
//
// For example, a Not gate can be defined like this:
//
//	not := &PartSpec{
//		Name: "Not",
//		Keys: []Key{Bits},
//		Inputs: func(a Attributes) []Pin { return []Pin{{Name: "in", Bits: Bits.Uint(a)}} },
//		Outputs: func(a Attributes) []Pin { return []Pin{{Name: "out", Bits: Bits.Uint(a)}} },
//		Mount: func(s *Socket) ([]Node, error) {
//			return []Node{&notNode{in: s.Input("in"), out: s.Output("out")}}, nil
//		}}
//
type MountFn func(s *Socket) ([]Node, error)

// A PartSpec wraps a part specification (its blueprint).
//
type PartSpec struct {
	// Part name.
	Name string
	// Keys lists the attributes accepted by the part. The Label attribute
	// is always accepted.
	Keys []Key
	// Inputs returns the input pins, in binding order.
	Inputs PinsFn
	// Outputs returns the output pins.
	Outputs PinsFn
	// Mount function (see MountFn).
	Mount MountFn
}

// Pins returns the input and output pins of p for the given attributes.
//
func (p *PartSpec) Pins(a Attributes) (in, out []Pin) {
	if p.Inputs != nil {
		in = p.Inputs(a)
	}
	if p.Outputs != nil {
		out = p.Outputs(a)
	}
	return in, out
}

// CheckAttributes returns an error if a holds an attribute unknown to p or an
// invalid value.
//
func (p *PartSpec) CheckAttributes(a Attributes) error {
	if err := a.check(p.Keys); err != nil {
		return errors.Wrap(err, p.Name)
	}
	return nil
}

// A Part is a part mounted in a Model.
//
type Part struct {
	spec  *PartSpec
	label string
	attrs Attributes
	ins   []Signal
	outs  []Signal
	opins []Pin
	nodes []NodeID
}

// Spec returns the part's specification.
//
func (p *Part) Spec() *PartSpec { return p.spec }

// Label returns the part's label.
//
func (p *Part) Label() string { return p.label }

// Attributes returns the attributes the part was mounted with.
//
func (p *Part) Attributes() Attributes { return p.attrs }

// Inputs returns the signals bound to the part's inputs.
//
func (p *Part) Inputs() []Signal { return p.ins }

// Outputs returns the part's output signals in pin order.
//
func (p *Part) Outputs() []Signal { return p.outs }

// Output returns the output signal with the given pin name.
// This function panics if the pin does not exist.
//
func (p *Part) Output(name string) Signal {
	for i, o := range p.opins {
		if o.Name == name {
			return p.outs[i]
		}
	}
	panic("output pin " + name + " does not exist in " + p.spec.Name)
}

// Nodes returns the ids of the nodes implementing the part.
//
func (p *Part) Nodes() []NodeID { return p.nodes }

// Parts returns all parts mounted in m, in mount order.
//
func (m *Model) Parts() []*Part { return m.parts }

// Part returns the part with the given label.
//
func (m *Model) Part(label string) (*Part, bool) {
	p, ok := m.labels[label]
	return p, ok
}

// Mount mounts a new part built from spec p with attributes a. The inputs are
// bound positionally to the pins returned by p.Inputs(a).
//
// Attributes are validated, the input count and the width of every input are
// checked, output signals are allocated and the mount function is called. If
// any of these steps fails, the signals allocated by Mount are released and no
// node is added to the model.
//
func (m *Model) Mount(p *PartSpec, a Attributes, inputs ...Signal) (pt *Part, err error) {
	if m.busy {
		return nil, errors.WithStack(ErrBusy)
	}
	if a == nil {
		a = Attributes{}
	}
	if err = p.CheckAttributes(a); err != nil {
		return nil, err
	}
	label := Label.Get(a)
	name := p.Name
	if label != "" {
		if _, ok := m.labels[label]; ok {
			return nil, errors.Errorf("%s: duplicate label %q", p.Name, label)
		}
		name = label
	}

	ipins, opins := p.Pins(a)
	if len(inputs) != len(ipins) {
		return nil, errors.Errorf("%s: got %d inputs, expected %d", name, len(inputs), len(ipins))
	}
	for i, pin := range ipins {
		if err = m.CheckBits(inputs[i], pin.Bits, name, pin.Name); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	sigCount := len(m.sigs)
	defer func() {
		if err != nil {
			m.release(sigCount)
		}
	}()

	outs := make([]Signal, len(opins))
	for i, pin := range opins {
		outs[i] = m.NewSignal(name+"."+pin.Name, pin.Bits)
	}
	s := &Socket{m: m, name: name, attrs: a, ipins: ipins, ins: inputs, opins: opins, outs: outs}
	nodes, err := p.Mount(s)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}

	// check drivers of all nodes before adding any.
	base := NodeID(len(m.nodes))
	for i, n := range nodes {
		if err = m.checkDrivers(base+NodeID(i), n.Outputs()); err != nil {
			return nil, errors.Wrap(err, nodeName(name, i, len(nodes)))
		}
		for _, o := range nodes[:i] {
			if err = m.sharedOutput(o, n); err != nil {
				return nil, errors.Wrap(err, nodeName(name, i, len(nodes)))
			}
		}
	}

	pt = &Part{spec: p, label: label, attrs: a, ins: inputs, outs: outs, opins: opins}
	for i, n := range nodes {
		id := base + NodeID(i)
		m.add(id, nodeName(name, i, len(nodes)), n)
		pt.nodes = append(pt.nodes, id)
	}
	m.parts = append(m.parts, pt)
	if label != "" {
		m.labels[label] = pt
	}
	return pt, nil
}

func (m *Model) sharedOutput(a, b Node) error {
	for _, x := range a.Outputs() {
		for _, y := range b.Outputs() {
			if x == y {
				return errors.Wrap(ErrMultipleDrivers, m.sig(x).name)
			}
		}
	}
	return nil
}

// release drops all signals allocated after the first n. Only valid if no node
// references them.
func (m *Model) release(n int) {
	for i := n; i < len(m.sigs); i++ {
		m.sigs[i] = signal{}
	}
	m.sigs = m.sigs[:n]
}
