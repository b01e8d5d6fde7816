// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"log"
	"math/rand"
	"strconv"
	"time"

	"github.com/db47h/evsim"
	hl "github.com/db47h/evsim/hwlib"
	"github.com/db47h/evsim/imagestore"
	"github.com/db47h/evsim/internal/config"
	"github.com/pkg/errors"
)

// bench is a MultiPortRAM driven by the workload, with a reference copy of
// its contents.
type bench struct {
	m   *evsim.Model
	ram *evsim.Part
	clk evsim.Signal
	we  []evsim.Signal
	wa  []evsim.Signal
	wd  []evsim.Signal
	ra  []evsim.Signal
	ref map[uint64]uint64

	mask, addrMask uint64
}

type result struct {
	Cycles     int
	Reads      int
	Writes     int
	Mismatches int
	Rounds     uint64
	Elapsed    time.Duration
}

func newBench(cfg *config.Config, l *log.Logger) (*bench, error) {
	m := evsim.New(evsim.MaxRounds(cfg.MaxRounds), evsim.Logger(l))
	a := cfg.RAMAttributes()
	b := &bench{
		m:        m,
		ref:      make(map[uint64]uint64),
		mask:     evsim.Mask(uint(cfg.RAM.Bits)),
		addrMask: evsim.Mask(uint(cfg.RAM.AddrBits)),
	}
	var ins []evsim.Signal
	for i := 0; i < cfg.RAM.WritePorts; i++ {
		n := strconv.Itoa(i)
		b.we = append(b.we, m.NewSignal("we"+n, 1))
		b.wa = append(b.wa, m.NewSignal("wa"+n, uint(cfg.RAM.AddrBits)))
		b.wd = append(b.wd, m.NewSignal("wd"+n, uint(cfg.RAM.Bits)))
		ins = append(ins, b.we[i], b.wa[i], b.wd[i])
	}
	for i := 0; i < cfg.RAM.ReadPorts; i++ {
		b.ra = append(b.ra, m.NewSignal("ra"+strconv.Itoa(i), uint(cfg.RAM.AddrBits)))
	}
	b.clk = m.NewSignal("clk", 1)
	ins = append(ins, b.ra...)
	ins = append(ins, b.clk)
	for _, s := range ins {
		m.Set(s, 0)
	}
	var err error
	if b.ram, err = m.Mount(hl.MultiPortRAM, a, ins...); err != nil {
		return nil, err
	}
	return b, m.Step()
}

// load replaces the memory contents with the image stored under the memory
// label, if any.
func (b *bench) load(st *imagestore.Store, label string) (bool, error) {
	d, err := st.Load(label)
	if errors.Cause(err) == imagestore.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err = b.m.LoadProgram(label, d); err != nil {
		return false, err
	}
	for i, w := range d.Words() {
		if w != 0 && uint64(i) <= b.addrMask {
			b.ref[uint64(i)] = w
		}
	}
	return true, b.m.Step()
}

func (b *bench) save(st *imagestore.Store, label string) error {
	r, err := b.m.RAM(label)
	if err != nil {
		return err
	}
	return st.Save(label, r.Memory())
}

// cycle applies random writes on a rising clock edge, then random reads, and
// returns the number of read ports that disagree with the reference.
func (b *bench) cycle(rnd *rand.Rand, res *result) (int, error) {
	m := b.m
	m.Set(b.clk, 0)
	for i := range b.we {
		en := rnd.Intn(2)
		addr, data := rnd.Uint64()&b.addrMask, rnd.Uint64()&b.mask
		m.Set(b.we[i], uint64(en))
		m.Set(b.wa[i], addr)
		m.Set(b.wd[i], data)
		if en != 0 {
			// ascending port order, last writer wins
			b.ref[addr] = data
			res.Writes++
		}
	}
	if err := m.Step(); err != nil {
		return 0, err
	}
	m.Set(b.clk, 1)
	if err := m.Step(); err != nil {
		return 0, err
	}

	for _, s := range b.ra {
		m.Set(s, rnd.Uint64()&b.addrMask)
	}
	if err := m.Step(); err != nil {
		return 0, err
	}
	bad := 0
	for i, s := range b.ra {
		res.Reads++
		if got, exp := m.Get(b.ram.Outputs()[i]), b.ref[m.Get(s)]; got != exp {
			bad++
		}
	}
	return bad, nil
}

func run(cfg *config.Config, st *imagestore.Store, save bool, l *log.Logger) (*result, error) {
	b, err := newBench(cfg, l)
	if err != nil {
		return nil, err
	}
	if st != nil {
		ok, err := b.load(st, cfg.RAM.Label)
		if err != nil {
			return nil, err
		}
		if ok {
			l.Printf("%s: image loaded", cfg.RAM.Label)
		}
	}

	res := &result{Cycles: cfg.Workload.Cycles}
	rnd := rand.New(rand.NewSource(cfg.Workload.Seed))
	r0 := b.m.Rounds()
	start := time.Now()
	for i := 0; i < cfg.Workload.Cycles; i++ {
		bad, err := b.cycle(rnd, res)
		if err != nil {
			return nil, errors.Wrapf(err, "cycle %d", i)
		}
		if bad > 0 {
			l.Printf("cycle %d: %d mismatched reads", i, bad)
			res.Mismatches += bad
		}
	}
	res.Elapsed = time.Since(start)
	res.Rounds = b.m.Rounds() - r0

	if st != nil && save {
		if err = b.save(st, cfg.RAM.Label); err != nil {
			return nil, err
		}
		l.Printf("%s: image saved", cfg.RAM.Label)
	}
	return res, nil
}
