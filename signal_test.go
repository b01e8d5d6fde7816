// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package evsim_test

import (
	"testing"
	"testing/quick"

	"github.com/db47h/evsim"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestSignal_mask(t *testing.T) {
	m := evsim.New()
	f := func(bits uint8, v uint64) bool {
		b := uint(bits%64) + 1
		s := m.NewSignal("s", b)
		m.Set(s, v)
		got := m.Get(s)
		return got == v&evsim.Mask(b) && (b == 64 || got>>b == 0)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestSignal_states(t *testing.T) {
	m := evsim.New()
	s := m.NewSignal("s", 4)
	if v := m.Value(s); v.State != evsim.Unknown || v.V != 0 {
		t.Fatalf("initial value %v", v)
	}
	m.Set(s, 0xf)
	if v := m.Value(s); !v.Bool() || v.String() != "0xf" {
		t.Errorf("value %v", v)
	}
	m.SetHighZ(s)
	if v := m.Value(s); v.Bool() || v.State != evsim.HighZ || v.String() != "highZ" {
		t.Errorf("value %v", v)
	}
	m.SetUnknown(s)
	if v := m.Value(s); v.State != evsim.Unknown || v.String() != "unknown" {
		t.Errorf("value %v", v)
	}
}

func TestSignal_watch(t *testing.T) {
	m := evsim.New()
	s := m.NewSignal("s", 8)
	var got []evsim.Value
	m.Watch(s, func(v evsim.Value) { got = append(got, v) })

	m.Set(s, 0)     // unknown -> 0
	m.Set(s, 0)     // no change
	m.Set(s, 0x100) // masked to 0, no change
	m.Set(s, 0x1ff) // 0xff
	m.SetHighZ(s)
	m.SetHighZ(s)

	want := []evsim.Value{{0, evsim.Defined}, {0xff, evsim.Defined}, {0, evsim.HighZ}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("notifications (-want +got):\n%s", diff)
	}
}

func TestSignal_observers(t *testing.T) {
	m := evsim.New()
	trig := m.NewSignal("trig", 1)
	in := m.NewSignal("in", 1)
	n := &copyNode{in: in, out: m.NewSignal("out", 1), trig: trig}
	id, err := m.Add("copy", n)
	if err != nil {
		t.Fatal(err)
	}
	m.Observe(trig, id)
	m.Observe(trig, id)
	if diff := cmp.Diff([]evsim.NodeID{id}, m.Observers(trig)); diff != "" {
		t.Errorf("observers (-want +got):\n%s", diff)
	}
	if err = m.Step(); err != nil {
		t.Fatal(err)
	}
	evals := m.Evals(id)

	// in is not observed: no evaluation.
	m.Set(in, 1)
	if m.Pending() != 0 {
		t.Fatalf("%d nodes pending after change of an unobserved signal", m.Pending())
	}
	// writing the same value does not dirty observers.
	m.Set(trig, 0)
	m.Step()
	m.Set(trig, 0)
	if m.Pending() != 0 {
		t.Fatalf("%d nodes pending after writing an unchanged value", m.Pending())
	}
	if m.Evals(id) != evals+1 {
		t.Errorf("%d evaluations, expected %d", m.Evals(id), evals+1)
	}
}

func TestSignal_checkBits(t *testing.T) {
	m := evsim.New()
	s := m.NewSignal("data", 4)
	if err := m.CheckBits(s, 4, "ram", "D"); err != nil {
		t.Fatal(err)
	}
	err := m.CheckBits(s, 8, "ram", "D")
	exp := &evsim.WidthMismatchError{Part: "ram", Pin: "D", Signal: "data", Want: 8, Got: 4}
	if diff := cmp.Diff(exp, errors.Cause(err)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSignal_invalidWidth(t *testing.T) {
	for _, bits := range []uint{0, 65} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewSignal(%d): expected a panic", bits)
				}
			}()
			evsim.New().NewSignal("s", bits)
		}()
	}
}
