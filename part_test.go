// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package evsim_test

import (
	"testing"

	"github.com/db47h/evsim"
	hl "github.com/db47h/evsim/hwlib"
	"github.com/pkg/errors"
)

func TestMount_errors(t *testing.T) {
	data := []struct {
		name  string
		attrs evsim.Attributes
		bits  []uint // input widths
		err   string
	}{
		{"ok", evsim.Attributes{"Bits": 8}, []uint{8, 8}, ""},
		{"label", evsim.Attributes{"Bits": 8, "Label": "foo"}, []uint{8, 8}, ""},
		{"width", evsim.Attributes{"Bits": 8}, []uint{8, 4}, "AND.b: signal in1 is 4 bits wide, expected 8"},
		{"width_label", evsim.Attributes{"Bits": 8, "Label": "g0"}, []uint{4, 8}, "g0.a: signal in0 is 4 bits wide, expected 8"},
		{"count", nil, []uint{1}, "AND: got 1 inputs, expected 2"},
		{"unknown_attr", evsim.Attributes{"Bitz": 8}, []uint{1, 1}, "AND: unknown attribute \"Bitz\""},
		{"range", evsim.Attributes{"Bits": 65}, []uint{1, 1}, "AND: attribute Bits: value 65 out of range [1, 64]"},
		{"type", evsim.Attributes{"Bits": "8"}, []uint{1, 1}, "AND: attribute Bits: expected an integer, got string"},
		{"label_type", evsim.Attributes{"Label": 42}, []uint{1, 1}, "AND: attribute Label: expected a string, got int"},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			m := evsim.New()
			ins := make([]evsim.Signal, len(d.bits))
			for i, b := range d.bits {
				ins[i] = m.NewSignal("in"+string(rune('0'+i)), b)
			}
			sc := m.SignalCount()
			_, err := m.Mount(hl.And, d.attrs, ins...)
			if err == nil && d.err != "" || err != nil && err.Error() != d.err {
				trace(t, err)
				t.Fatalf("Got error %q, expected %q", err, d.err)
			}
			if err != nil {
				if m.Size() != 0 || m.Pending() != 0 || m.SignalCount() != sc || len(m.Parts()) != 0 {
					t.Errorf("failed mount left %d nodes, %d pending, %d signals", m.Size(), m.Pending(), m.SignalCount()-sc)
				}
			}
		})
	}
}

func TestMount_widthMismatch(t *testing.T) {
	m := evsim.New()
	a, b := m.NewSignal("a", 4), m.NewSignal("b", 8)
	_, err := m.Mount(hl.Or, evsim.Attributes{"Bits": 8}, a, b)
	wm, ok := errors.Cause(err).(*evsim.WidthMismatchError)
	if !ok {
		t.Fatalf("expected a *WidthMismatchError, got %v", err)
	}
	if wm.Part != "OR" || wm.Pin != "a" || wm.Want != 8 || wm.Got != 4 {
		t.Errorf("unexpected error fields %+v", *wm)
	}
	if m.Size() != 0 {
		t.Errorf("%d nodes added", m.Size())
	}
}

func TestMount_label(t *testing.T) {
	m := evsim.New()
	a, b := m.NewSignal("a", 1), m.NewSignal("b", 1)
	p, err := m.Mount(hl.Xor, evsim.Attributes{"Label": "x"}, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if q, ok := m.Part("x"); !ok || q != p {
		t.Fatal("labeled part not found")
	}
	if p.Label() != "x" || p.Spec() != hl.Xor {
		t.Errorf("label = %q, spec = %s", p.Label(), p.Spec().Name)
	}
	if name := m.Name(p.Output("out")); name != "x.out" {
		t.Errorf("output signal name = %q", name)
	}
	if name := m.NodeName(p.Nodes()[0]); name != "x" {
		t.Errorf("node name = %q", name)
	}
	_, err = m.Mount(hl.Xor, evsim.Attributes{"Label": "x"}, a, b)
	if err == nil || err.Error() != `XOR: duplicate label "x"` {
		t.Errorf("unexpected error %v", err)
	}
	if _, err = m.RAM("x"); errors.Cause(err) != evsim.ErrNoSuchRAM {
		t.Errorf("expected ErrNoSuchRAM, got %v", err)
	}
}

func TestMount_outputs(t *testing.T) {
	m := evsim.New()
	p, err := m.Mount(hl.MultiNot, evsim.Attributes{"Bits": 4},
		m.NewSignal("a", 4), m.NewSignal("b", 4), m.NewSignal("c", 4))
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Nodes()) != 3 || len(p.Outputs()) != 3 {
		t.Fatalf("%d nodes, %d outputs", len(p.Nodes()), len(p.Outputs()))
	}
	for i, id := range p.Nodes() {
		if name, exp := m.NodeName(id), "MultiNot#"+string(rune('0'+i)); name != exp {
			t.Errorf("node %d: name %q, expected %q", i, name, exp)
		}
		if d := m.Driver(p.Outputs()[i]); d != id {
			t.Errorf("output %d driven by %d, expected %d", i, d, id)
		}
		if m.Bits(p.Outputs()[i]) != 4 {
			t.Errorf("output %d is %d bits wide", i, m.Bits(p.Outputs()[i]))
		}
	}
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for unknown pin")
		}
	}()
	p.Output("nope")
}
