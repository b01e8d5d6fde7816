// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits.
//
package hwtest

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/evsim"
	"github.com/google/go-cmp/cmp"
)

// Inputs allocates one signal per input pin of p for the given attributes.
//
func Inputs(m *evsim.Model, p *evsim.PartSpec, a evsim.Attributes) []evsim.Signal {
	in, _ := p.Pins(a)
	sigs := make([]evsim.Signal, len(in))
	for i, pin := range in {
		sigs[i] = m.NewSignal(pin.Name, pin.Bits)
	}
	return sigs
}

// Mount mounts p on fresh input signals and fails the test on error.
//
func Mount(t testing.TB, m *evsim.Model, p *evsim.PartSpec, a evsim.Attributes) *evsim.Part {
	t.Helper()
	pt, err := m.Mount(p, a, Inputs(m, p, a)...)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return pt
}

// Step runs m to a fixed point and fails the test on error.
//
func Step(t testing.TB, m *evsim.Model) {
	t.Helper()
	if err := m.Step(); err != nil {
		t.Fatalf("%+v", err)
	}
}

func snapshot(m *evsim.Model, sigs []evsim.Signal) []evsim.Value {
	vs := make([]evsim.Value, len(sigs))
	for i, s := range sigs {
		vs[i] = m.Snapshot(s)
	}
	return vs
}

// ComparePart takes two parts and compares their outputs given the same inputs.
// Both parts must have the same input/output interface for the given
// attributes. Both parts are mounted in the same model, driven by the same
// input signals, and their outputs compared after every step for iter sets of
// random inputs, in addition to all zeros and all ones.
//
func ComparePart(t *testing.T, p1, p2 *evsim.PartSpec, a evsim.Attributes, iter int) {
	t.Helper()

	in1, out1 := p1.Pins(a)
	in2, out2 := p2.Pins(a)
	if diff := cmp.Diff(in1, in2); diff != "" {
		t.Fatalf("input pins differ (-%s +%s):\n%s", p1.Name, p2.Name, diff)
	}
	if diff := cmp.Diff(out1, out2); diff != "" {
		t.Fatalf("output pins differ (-%s +%s):\n%s", p1.Name, p2.Name, diff)
	}

	m := evsim.New()
	inputs := Inputs(m, p1, a)
	pt1, err := m.Mount(p1, a, inputs...)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	pt2, err := m.Mount(p2, a, inputs...)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	check := func() {
		t.Helper()
		Step(t, m)
		if diff := cmp.Diff(snapshot(m, pt1.Outputs()), snapshot(m, pt2.Outputs())); diff != "" {
			t.Fatalf("inputs %s: outputs differ (-%s +%s):\n%s", inputString(m, in1, inputs), p1.Name, p2.Name, diff)
		}
	}

	start := time.Now()

	// try all 0
	for _, s := range inputs {
		m.Set(s, 0)
	}
	check()

	// try all 1
	for _, s := range inputs {
		m.Set(s, ^uint64(0))
	}
	check()

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < iter; i++ {
		for _, s := range inputs {
			m.Set(s, rnd.Uint64())
		}
		check()
	}

	elapsed := time.Since(start)
	t.Logf("%d nodes. %d rounds in %v", m.Size(), m.Rounds(), elapsed)
}

func inputString(m *evsim.Model, pins []evsim.Pin, sigs []evsim.Signal) string {
	var b strings.Builder
	for i, p := range pins {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteRune('=')
		b.WriteString(m.Snapshot(sigs[i]).String())
	}
	return b.String()
}
