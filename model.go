// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package evsim

import (
	"io"
	"log"
	"strconv"

	"github.com/pkg/errors"
)

// A Node is the unit of evaluation in a Model.
//
// Nodes are evaluated in two strictly separated phases. ReadInputs reads the
// committed values of input signals into the node's internal state and must
// not write any signal. WriteOutputs commits new output values computed from
// that state and must not read any signal. Within a round, all ReadInputs
// calls complete before the first WriteOutputs call, so evaluation order
// among dirty nodes does not matter.
//
type Node interface {
	ReadInputs(m *Model)
	WriteOutputs(m *Model)
	// Outputs returns the signals driven by the node. It must return the
	// same signals on every call.
	Outputs() []Signal
	// Sensitivity returns the signals that trigger a re-evaluation of the
	// node when their committed value changes.
	Sensitivity() []Signal
}

// A NodeID identifies a node in a Model.
//
type NodeID int

type phase uint8

const (
	phaseIdle phase = iota
	phaseRead
	phaseWrite
)

// DefaultMaxRounds is the default bound on rounds per Step.
//
const DefaultMaxRounds = 1000

type nodeEntry struct {
	n     Node
	name  string
	evals uint64
}

// Model is a runnable simulation. It owns all signals and nodes and drives
// their evaluation to a fixed point.
//
// A Model is not safe for concurrent use.
//
type Model struct {
	sigs  []signal
	nodes []nodeEntry

	pending []NodeID // dirty nodes, in insertion order
	queued  []bool   // queued[id] is true if id is in pending
	cur     []NodeID // nodes evaluated in the current round

	phase     phase
	busy      bool
	maxRounds int
	rounds    uint64

	parts  []*Part
	labels map[string]*Part

	log *log.Logger
}

// An Option configures a Model.
//
type Option func(m *Model)

// MaxRounds sets the maximum number of rounds per Step before Step gives up
// with a *NonConvergentError. Values less than 1 select DefaultMaxRounds.
//
func MaxRounds(n int) Option {
	return func(m *Model) {
		if n < 1 {
			n = DefaultMaxRounds
		}
		m.maxRounds = n
	}
}

// Logger sets the logger used to report non-convergence and memory loads.
// The default logger discards everything.
//
func Logger(l *log.Logger) Option {
	return func(m *Model) {
		if l == nil {
			l = discard
		}
		m.log = l
	}
}

var discard = log.New(io.Discard, "", 0)

// New returns a new empty Model.
//
func New(opts ...Option) *Model {
	m := &Model{
		maxRounds: DefaultMaxRounds,
		labels:    make(map[string]*Part),
		log:       discard,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Add adds node n to the model under the given name. The node is registered
// as an observer of its Sensitivity signals, recorded as the driver of its
// Outputs and marked dirty so that its outputs are computed by the next Step.
//
func (m *Model) Add(name string, n Node) (NodeID, error) {
	if m.busy {
		return NoNode, errors.WithStack(ErrBusy)
	}
	id := NodeID(len(m.nodes))
	if err := m.checkDrivers(id, n.Outputs()); err != nil {
		return NoNode, errors.Wrap(err, name)
	}
	m.add(id, name, n)
	return id, nil
}

func (m *Model) checkDrivers(id NodeID, outs []Signal) error {
	for i, s := range outs {
		if d := m.sig(s).driver; d != NoNode && d != id {
			return errors.Wrap(ErrMultipleDrivers, m.sig(s).name)
		}
		for _, o := range outs[:i] {
			if o == s {
				return errors.Wrap(ErrMultipleDrivers, m.sig(s).name)
			}
		}
	}
	return nil
}

func (m *Model) add(id NodeID, name string, n Node) {
	m.nodes = append(m.nodes, nodeEntry{n: n, name: name})
	m.queued = append(m.queued, false)
	for _, s := range n.Outputs() {
		m.sig(s).driver = id
	}
	for _, s := range n.Sensitivity() {
		m.Observe(s, id)
	}
	m.Touch(id)
}

// Touch marks node id dirty.
//
func (m *Model) Touch(id NodeID) {
	if m.queued[id] {
		return
	}
	m.queued[id] = true
	m.pending = append(m.pending, id)
}

// Pending returns the number of dirty nodes.
//
func (m *Model) Pending() int { return len(m.pending) }

// Size returns the node count in the model.
//
func (m *Model) Size() int { return len(m.nodes) }

// Node returns the node with the given id.
//
func (m *Model) Node(id NodeID) Node { return m.nodes[id].n }

// NodeName returns the name of the node with the given id.
//
func (m *Model) NodeName(id NodeID) string { return m.nodes[id].name }

// Evals returns the number of times the node with the given id has been
// evaluated.
//
func (m *Model) Evals(id NodeID) uint64 { return m.nodes[id].evals }

// Rounds returns the total number of evaluation rounds run so far.
//
func (m *Model) Rounds() uint64 { return m.rounds }

// Busy returns true while the model is evaluating nodes.
//
func (m *Model) Busy() bool { return m.busy }

// Step runs evaluation rounds until no node is dirty.
//
// If the model does not settle within the configured maximum number of rounds,
// Step returns a *NonConvergentError. Signals committed in completed rounds
// keep their values and the nodes that were still dirty stay pending.
//
func (m *Model) Step() error {
	if m.busy {
		return errors.WithStack(ErrBusy)
	}
	m.busy = true
	defer func() { m.busy = false; m.phase = phaseIdle }()

	for n := 0; len(m.pending) > 0; n++ {
		if n == m.maxRounds {
			err := &NonConvergentError{Rounds: n, Nodes: m.pendingNames()}
			m.log.Print(err)
			return errors.WithStack(err)
		}
		m.round()
	}
	return nil
}

func (m *Model) round() {
	m.cur, m.pending = m.pending, m.cur[:0]
	for _, id := range m.cur {
		m.queued[id] = false
	}
	m.phase = phaseRead
	for _, id := range m.cur {
		m.nodes[id].n.ReadInputs(m)
	}
	m.phase = phaseWrite
	for _, id := range m.cur {
		e := &m.nodes[id]
		e.n.WriteOutputs(m)
		e.evals++
	}
	m.phase = phaseIdle
	m.rounds++
}

func (m *Model) pendingNames() []string {
	names := make([]string, len(m.pending))
	for i, id := range m.pending {
		names[i] = m.nodes[id].name
	}
	return names
}

// Dispose releases all signals, nodes and parts of the model. The model is
// empty and reusable afterwards.
//
func (m *Model) Dispose() {
	m.sigs = nil
	m.nodes = nil
	m.pending = nil
	m.queued = nil
	m.cur = nil
	m.parts = nil
	m.labels = make(map[string]*Part)
}

// nodeName builds a node name for node i of n in part p.
func nodeName(p string, i, n int) string {
	if n == 1 {
		return p
	}
	return p + "#" + strconv.Itoa(i)
}
