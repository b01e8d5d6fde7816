// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads the configuration of the evsim command.
//
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/db47h/evsim"
	hl "github.com/db47h/evsim/hwlib"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// RAM configures the memory under test.
//
type RAM struct {
	Label      string `yaml:"label"`
	Bits       int    `yaml:"bits"`
	AddrBits   int    `yaml:"addrBits"`
	WritePorts int    `yaml:"writePorts"`
	ReadPorts  int    `yaml:"readPorts"`
	Program    bool   `yaml:"program,omitempty"`
}

// Workload configures the random workload run against the memory.
//
type Workload struct {
	Cycles int   `yaml:"cycles"`
	Seed   int64 `yaml:"seed"`
}

// Config is the top level configuration document.
//
type Config struct {
	MaxRounds int      `yaml:"maxRounds"`
	RAM       RAM      `yaml:"ram"`
	Workload  Workload `yaml:"workload"`
	Store     string   `yaml:"store,omitempty"`
}

// Default returns the default configuration.
//
func Default() *Config {
	return &Config{
		MaxRounds: evsim.DefaultMaxRounds,
		RAM: RAM{
			Label:      "mem",
			Bits:       8,
			AddrBits:   8,
			WritePorts: 2,
			ReadPorts:  2,
		},
		Workload: Workload{
			Cycles: 10000,
			Seed:   1,
		},
	}
}

// Load reads a configuration from r. Fields absent from the document keep
// their default value.
//
func Load(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads the configuration file at path.
//
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	c, err := Load(f)
	return c, errors.Wrap(err, path)
}

// Validate checks c against the bounds of the model and memory attributes.
//
func (c *Config) Validate() error {
	if c.MaxRounds < 1 {
		return errors.Errorf("config: maxRounds must be positive, got %d", c.MaxRounds)
	}
	if c.RAM.Label == "" {
		return errors.New("config: ram.label is empty")
	}
	if err := hl.MultiPortRAM.CheckAttributes(c.RAMAttributes()); err != nil {
		return errors.Wrap(err, "config: ram")
	}
	if c.Workload.Cycles < 0 {
		return errors.Errorf("config: workload.cycles must not be negative, got %d", c.Workload.Cycles)
	}
	return nil
}

// RAMAttributes returns the attributes of the memory under test.
//
func (c *Config) RAMAttributes() evsim.Attributes {
	return evsim.Attributes{
		"Label":           c.RAM.Label,
		"Bits":            c.RAM.Bits,
		"AddrBits":        c.RAM.AddrBits,
		"WritePorts":      c.RAM.WritePorts,
		"ReadPorts":       c.RAM.ReadPorts,
		"IsProgramMemory": c.RAM.Program,
	}
}

// Marshal returns c as a YAML document.
//
func (c *Config) Marshal() ([]byte, error) {
	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.WithStack(err)
	}
	return b.Bytes(), nil
}
