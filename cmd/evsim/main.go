// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command evsim runs a random workload against a multi-port RAM and checks
// every read against a reference model.
//
// The memory geometry, round bound and workload are read from an optional
// YAML configuration file. Memory images can be loaded from and saved to a
// bbolt database, keyed by the memory label.
//
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/db47h/evsim/imagestore"
	"github.com/db47h/evsim/internal/config"
	"github.com/mattn/go-isatty"
	"github.com/pkg/profile"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		flag.PrintDefaults()
	}
	cfgFile := flag.String("config", "", "configuration `file`")
	storePath := flag.String("store", "", "memory image database `path`")
	save := flag.Bool("save", false, "save the final memory image to the store")
	cycles := flag.Int("cycles", -1, "number of clock cycles (overrides the configuration)")
	seed := flag.Int64("seed", 0, "random seed (overrides the configuration)")
	prof := flag.String("profile", "", "enable profiling: cpu or mem")
	verbose := flag.Bool("v", false, "verbose output")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("evsim: ")

	os.Exit(runMain(*cfgFile, *storePath, *prof, *save, *cycles, *seed, *verbose))
}

func runMain(cfgFile, storePath, prof string, save bool, cycles int, seed int64, verbose bool) int {
	switch prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	default:
		log.Printf("unknown profile mode %q", prof)
		return 2
	}

	cfg := config.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = config.LoadFile(cfgFile); err != nil {
			log.Print(err)
			return 2
		}
	}
	if cycles >= 0 {
		cfg.Workload.Cycles = cycles
	}
	if seed != 0 {
		cfg.Workload.Seed = seed
	}
	if storePath != "" {
		cfg.Store = storePath
	}
	if err := cfg.Validate(); err != nil {
		log.Print(err)
		return 2
	}

	l := log.New(io.Discard, "evsim: ", 0)
	if verbose {
		l.SetOutput(os.Stderr)
	}

	var st *imagestore.Store
	if cfg.Store != "" {
		var err error
		if st, err = imagestore.Open(cfg.Store); err != nil {
			log.Print(err)
			return 2
		}
		defer st.Close()
	}

	res, err := run(cfg, st, save, l)
	if err != nil {
		log.Printf("%+v", err)
		return 2
	}
	report(os.Stdout, res, isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
	if res.Mismatches > 0 {
		return 1
	}
	return 0
}

// report prints a human readable summary on terminals and a single line of
// key=value pairs otherwise.
func report(w io.Writer, r *result, tty bool) {
	var rate float64
	if s := r.Elapsed.Seconds(); s > 0 {
		rate = float64(r.Cycles) / s
	}
	if !tty {
		fmt.Fprintf(w, "cycles=%d writes=%d reads=%d mismatches=%d rounds=%d elapsed=%s rate=%.0f\n",
			r.Cycles, r.Writes, r.Reads, r.Mismatches, r.Rounds, r.Elapsed, rate)
		return
	}
	fmt.Fprintf(w, "%d cycles, %d writes, %d reads in %v (%.0f cycles/s)\n", r.Cycles, r.Writes, r.Reads, r.Elapsed, rate)
	fmt.Fprintf(w, "%d evaluation rounds\n", r.Rounds)
	if r.Mismatches > 0 {
		fmt.Fprintf(w, "%d MISMATCHED READS\n", r.Mismatches)
	} else {
		fmt.Fprintln(w, "all reads matched")
	}
}
