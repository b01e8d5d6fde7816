// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package evsim

import "strconv"

// State is the validity state of a signal value.
//
type State uint8

// Signal states.
//
const (
	Unknown State = iota
	Defined
	HighZ
)

func (s State) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Defined:
		return "defined"
	case HighZ:
		return "highZ"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// A Value is the committed state of a signal.
//
type Value struct {
	V     uint64
	State State
}

// Bool returns true if v is defined and its least significant bit is set.
//
func (v Value) Bool() bool {
	return v.State == Defined && v.V&1 != 0
}

func (v Value) String() string {
	if v.State != Defined {
		return v.State.String()
	}
	return "0x" + strconv.FormatUint(v.V, 16)
}

// Mask returns a bit mask for the given width.
//
func Mask(bits uint) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return 1<<bits - 1
}

// A Signal is a handle to a fixed-width wire in a Model. Signals are only
// valid for the Model that created them.
//
type Signal int

// NoNode is the NodeID of signals with no driver.
//
const NoNode NodeID = -1

type signal struct {
	name     string
	bits     uint
	mask     uint64
	val      Value
	obs      []NodeID // observers, in registration order
	driver   NodeID
	watchers []func(Value)
}

// NewSignal allocates a new signal of the given bit width. Its initial value is
// 0 and its state Unknown.
//
// NewSignal panics if bits is not in the range [1, 64].
//
func (m *Model) NewSignal(name string, bits uint) Signal {
	if bits < 1 || bits > 64 {
		panic("invalid bit width " + strconv.Itoa(int(bits)) + " for signal " + name)
	}
	m.sigs = append(m.sigs, signal{
		name:   name,
		bits:   bits,
		mask:   Mask(bits),
		driver: NoNode,
	})
	return Signal(len(m.sigs) - 1)
}

func (m *Model) sig(s Signal) *signal {
	if s < 0 || int(s) >= len(m.sigs) {
		panic("signal " + strconv.Itoa(int(s)) + " does not exist")
	}
	return &m.sigs[s]
}

// Name returns the name of signal s.
//
func (m *Model) Name(s Signal) string { return m.sig(s).name }

// Bits returns the bit width of signal s.
//
func (m *Model) Bits(s Signal) uint { return m.sig(s).bits }

// Value returns the committed value of signal s.
// It must not be called from a WriteOutputs method.
//
func (m *Model) Value(s Signal) Value {
	if m.phase == phaseWrite {
		panic("signal " + m.sig(s).name + " read during write phase")
	}
	return m.sig(s).val
}

// Get returns the committed value of signal s as an integer.
// It must not be called from a WriteOutputs method.
//
func (m *Model) Get(s Signal) uint64 {
	return m.Value(s).V
}

// Bool returns true if signal s is defined and its least significant bit is
// set. It must not be called from a WriteOutputs method.
//
func (m *Model) Bool(s Signal) bool {
	return m.Value(s).Bool()
}

// Snapshot returns a copy of the committed value of signal s. Unlike Value,
// it can be called at any time, including from watchers.
//
func (m *Model) Snapshot(s Signal) Value {
	return m.sig(s).val
}

// Set sets the value of signal s to v, masked to the signal's width. If the
// committed value changes, all nodes observing s are marked dirty and the
// watchers of s are notified.
//
// Set must not be called from a ReadInputs method.
//
func (m *Model) Set(s Signal, v uint64) {
	sg := m.sig(s)
	m.commit(s, sg, Value{v & sg.mask, Defined})
}

// SetHighZ puts signal s in the high impedance state.
//
func (m *Model) SetHighZ(s Signal) {
	m.commit(s, m.sig(s), Value{0, HighZ})
}

// SetUnknown puts signal s in the unknown state.
//
func (m *Model) SetUnknown(s Signal) {
	m.commit(s, m.sig(s), Value{0, Unknown})
}

func (m *Model) commit(s Signal, sg *signal, v Value) {
	if m.phase == phaseRead {
		panic("signal " + sg.name + " written during read phase")
	}
	if sg.val == v {
		return
	}
	sg.val = v
	for _, n := range sg.obs {
		m.Touch(n)
	}
	for _, w := range sg.watchers {
		w(v)
	}
}

// CheckBits returns a *WidthMismatchError if signal s is not bits wide. who
// and pin identify the requester in the error message.
//
func (m *Model) CheckBits(s Signal, bits uint, who, pin string) error {
	if got := m.sig(s).bits; got != bits {
		return &WidthMismatchError{Part: who, Pin: pin, Signal: m.sig(s).name, Want: bits, Got: got}
	}
	return nil
}

// Observe registers node n as an observer of signal s. Registering the same
// node twice is a no-op.
//
func (m *Model) Observe(s Signal, n NodeID) {
	sg := m.sig(s)
	for _, o := range sg.obs {
		if o == n {
			return
		}
	}
	sg.obs = append(sg.obs, n)
}

// Observers returns the nodes observing signal s.
//
func (m *Model) Observers(s Signal) []NodeID {
	obs := m.sig(s).obs
	r := make([]NodeID, len(obs))
	copy(r, obs)
	return r
}

// Driver returns the node driving signal s or NoNode.
//
func (m *Model) Driver(s Signal) NodeID {
	return m.sig(s).driver
}

// Watch attaches fn to signal s. fn is called with the new value each time a
// change of s is committed. Watchers do not take part in evaluation and must
// not modify the model.
//
func (m *Model) Watch(s Signal, fn func(Value)) {
	sg := m.sig(s)
	sg.watchers = append(sg.watchers, fn)
}

// SignalCount returns the number of signals allocated in the model.
//
func (m *Model) SignalCount() int { return len(m.sigs) }
