// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/evsim"
)

// Port count attributes of MultiPortRAM.
//
var (
	WritePorts = evsim.IntKey{ID: "WritePorts", Default: 2, Min: 1, Max: 16, Desc: "Number of write ports"}
	ReadPorts  = evsim.IntKey{ID: "ReadPorts", Default: 2, Min: 1, Max: 16, Desc: "Number of read ports"}
)

func ramInputs(a evsim.Attributes) []evsim.Pin {
	w, r := WritePorts.Get(a), ReadPorts.Get(a)
	bits, addrBits := evsim.Bits.Uint(a), evsim.AddrBits.Uint(a)
	ps := make([]evsim.Pin, 3*w+r+1)
	for i := 0; i < w; i++ {
		n := strconv.Itoa(i)
		ps[3*i] = evsim.Pin{Name: "WE" + n, Bits: 1, Desc: "Write enable " + n}
		ps[3*i+1] = evsim.Pin{Name: "WA" + n, Bits: addrBits, Desc: "Write address " + n}
		ps[3*i+2] = evsim.Pin{Name: "WD" + n, Bits: bits, Desc: "Write data " + n}
	}
	for i := 0; i < r; i++ {
		n := strconv.Itoa(i)
		ps[3*w+i] = evsim.Pin{Name: "RA" + n, Bits: addrBits, Desc: "Read address " + n}
	}
	ps[len(ps)-1] = evsim.Pin{Name: "C", Bits: 1, Desc: "Clock", Clock: true}
	return ps
}

func ramOutputs(a evsim.Attributes) []evsim.Pin {
	r := ReadPorts.Get(a)
	bits := evsim.Bits.Uint(a)
	ps := make([]evsim.Pin, r)
	for i := range ps {
		n := strconv.Itoa(i)
		ps[i] = evsim.Pin{Name: "D" + n, Bits: bits, Desc: "Read data " + n}
	}
	return ps
}

// MultiPortRAM is a RAM with independent write ports and read ports sharing
// one memory array and one clock.
//
//	Attributes: Bits, AddrBits, WritePorts, ReadPorts, Label, IsProgramMemory
//	Inputs: WE0, WA0[AddrBits], WD0[Bits], ... WE<w-1>, WA<w-1>, WD<w-1>,
//	        RA0[AddrBits], ... RA<r-1>,
//	        C
//	Outputs: D0[Bits], ... D<r-1>
//
// On a rising edge of C, every write port whose enable line is set stores its
// data at its address. Ports are processed in ascending order, so when two
// enabled ports target the same address, the port with the highest index
// wins. Read ports are combinational: D<i> always holds the word at RA<i>,
// including a word written on the same edge.
//
// The nodes mounted for a MultiPortRAM implement evsim.RAM.
//
var MultiPortRAM = &evsim.PartSpec{
	Name:    "MultiPortRAM",
	Keys:    []evsim.Key{evsim.Bits, evsim.AddrBits, WritePorts, ReadPorts, evsim.IsProgramMemory},
	Inputs:  ramInputs,
	Outputs: ramOutputs,
	Mount:   mountRAM,
}

type writePort struct {
	en, addr, data evsim.Signal
}

type readPort struct {
	addr, data evsim.Signal
	latched    uint64
}

type multiPortRAM struct {
	label    string
	addrBits uint
	program  bool
	mem      *evsim.DataField
	wr       []writePort
	rd       []readPort
	clk      evsim.Signal
	lastClk  bool
	outs     []evsim.Signal
	sens     []evsim.Signal
}

func mountRAM(s *evsim.Socket) ([]evsim.Node, error) {
	a := s.Attributes()
	w, r := WritePorts.Get(a), ReadPorts.Get(a)
	addrBits := evsim.AddrBits.Uint(a)
	ram := &multiPortRAM{
		label:    evsim.Label.Get(a),
		addrBits: addrBits,
		program:  evsim.IsProgramMemory.Get(a),
		mem:      evsim.NewDataField(1<<addrBits, evsim.Bits.Uint(a)),
		wr:       make([]writePort, w),
		rd:       make([]readPort, r),
		clk:      s.InputAt(3*w + r),
		outs:     s.Outputs(),
	}
	for i := range ram.wr {
		ram.wr[i] = writePort{en: s.InputAt(3 * i), addr: s.InputAt(3*i + 1), data: s.InputAt(3*i + 2)}
	}
	// only the clock and read addresses trigger an evaluation.
	ram.sens = append(ram.sens, ram.clk)
	for i := range ram.rd {
		ram.rd[i] = readPort{addr: s.InputAt(3*w + i), data: ram.outs[i]}
		ram.sens = append(ram.sens, ram.rd[i].addr)
	}
	return []evsim.Node{ram}, nil
}

func (r *multiPortRAM) ReadInputs(m *evsim.Model) {
	clk := m.Bool(r.clk)
	if clk && !r.lastClk {
		for _, p := range r.wr {
			if m.Bool(p.en) {
				r.mem.Set(m.Get(p.addr), m.Get(p.data))
			}
		}
	}
	r.lastClk = clk
	for i := range r.rd {
		r.rd[i].latched = m.Get(r.rd[i].addr)
	}
}

func (r *multiPortRAM) WriteOutputs(m *evsim.Model) {
	for _, p := range r.rd {
		m.Set(p.data, r.mem.Get(p.latched))
	}
}

func (r *multiPortRAM) Outputs() []evsim.Signal     { return r.outs }
func (r *multiPortRAM) Sensitivity() []evsim.Signal { return r.sens }

func (r *multiPortRAM) Memory() *evsim.DataField { return r.mem }
func (r *multiPortRAM) Label() string            { return r.label }
func (r *multiPortRAM) AddrBits() uint           { return r.addrBits }
func (r *multiPortRAM) DataBits() uint           { return r.mem.Bits() }
func (r *multiPortRAM) Size() int                { return r.mem.Size() }
func (r *multiPortRAM) IsProgramMemory() bool    { return r.program }

func (r *multiPortRAM) SetProgramMemory(d *evsim.DataField) {
	r.mem.SetFrom(d)
}
