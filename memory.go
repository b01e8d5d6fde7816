// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package evsim

import "github.com/pkg/errors"

// A DataField is a word addressable memory array. Every stored word is masked
// to the field's bit width.
//
type DataField struct {
	bits  uint
	mask  uint64
	words []uint64
}

// NewDataField returns a zeroed DataField of size words of the given width.
//
func NewDataField(size int, bits uint) *DataField {
	if bits < 1 || bits > 64 {
		panic("invalid data field width")
	}
	return &DataField{bits: bits, mask: Mask(bits), words: make([]uint64, size)}
}

// Size returns the number of words in d.
//
func (d *DataField) Size() int { return len(d.words) }

// Bits returns the word width of d.
//
func (d *DataField) Bits() uint { return d.bits }

// Get returns the word at addr. Addresses out of range read as 0.
//
func (d *DataField) Get(addr uint64) uint64 {
	if addr >= uint64(len(d.words)) {
		return 0
	}
	return d.words[addr]
}

// Set stores v at addr. Writes out of range are ignored.
//
func (d *DataField) Set(addr uint64, v uint64) {
	if addr >= uint64(len(d.words)) {
		return
	}
	d.words[addr] = v & d.mask
}

// Words returns a copy of the contents of d.
//
func (d *DataField) Words() []uint64 {
	w := make([]uint64, len(d.words))
	copy(w, d.words)
	return w
}

// SetFrom replaces the contents of d with those of src. Words beyond the end
// of src are cleared, words of src beyond the end of d are dropped.
//
func (d *DataField) SetFrom(src *DataField) {
	n := copy(d.words, src.words)
	for i := range d.words[:n] {
		d.words[i] &= d.mask
	}
	for i := n; i < len(d.words); i++ {
		d.words[i] = 0
	}
}

// Clear sets all words to 0.
//
func (d *DataField) Clear() {
	for i := range d.words {
		d.words[i] = 0
	}
}

// RAM is implemented by nodes that own a memory array that a host can inspect
// or load.
//
type RAM interface {
	Memory() *DataField
	// SetProgramMemory replaces the memory contents. It must only be called
	// between steps.
	SetProgramMemory(d *DataField)
	Label() string
	AddrBits() uint
	DataBits() uint
	Size() int
	IsProgramMemory() bool
}

// RAM returns the memory of the part with the given label.
//
func (m *Model) RAM(label string) (RAM, error) {
	if p, ok := m.labels[label]; ok {
		for _, id := range p.nodes {
			if r, ok := m.nodes[id].n.(RAM); ok {
				return r, nil
			}
		}
	}
	return nil, errors.Wrap(ErrNoSuchRAM, label)
}

// Memories returns all memories in the model, in mount order.
//
func (m *Model) Memories() []RAM {
	var rs []RAM
	for _, e := range m.nodes {
		if r, ok := e.n.(RAM); ok {
			rs = append(rs, r)
		}
	}
	return rs
}

// LoadProgram replaces the contents of the memory labeled label with d. The
// memory node is marked dirty so that its outputs reflect the new contents
// after the next Step.
//
func (m *Model) LoadProgram(label string, d *DataField) error {
	if m.busy {
		return errors.WithStack(ErrBusy)
	}
	p, ok := m.labels[label]
	if !ok {
		return errors.Wrap(ErrNoSuchRAM, label)
	}
	for _, id := range p.nodes {
		r, ok := m.nodes[id].n.(RAM)
		if !ok {
			continue
		}
		if d.Bits() != r.DataBits() {
			return errors.Errorf("%s: image is %d bits wide, memory is %d bits", label, d.Bits(), r.DataBits())
		}
		r.SetProgramMemory(d)
		m.Touch(id)
		m.log.Printf("%s: loaded %d words", label, d.Size())
		return nil
	}
	return errors.Wrap(ErrNoSuchRAM, label)
}
