// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/ezrec/ubridge/bridge"
	"github.com/ezrec/ubridge/emulator"
	"github.com/ezrec/ubridge/scenario"
	"github.com/ezrec/ubridge/serial"
)

// environ selects the simulation parameters from the environment.
type environ struct {
	DataWidth   int `env:"UBRIDGE_DATA_WIDTH"`
	OpcodeWidth int `env:"UBRIDGE_OPCODE_WIDTH"`
	SaveCount   int `env:"UBRIDGE_SAVE_COUNT"`
	TickLimit   int `env:"UBRIDGE_TICK_LIMIT"`
	TxLatency   int `env:"UBRIDGE_TX_LATENCY"`
}

func main() {
	var script string
	var input string
	var output string
	var verbose bool

	flag.StringVar(&script, "c", "", "Scenario script to play")
	flag.StringVar(&input, "i", "-", "Serial input")
	flag.StringVar(&output, "o", "-", "Serial output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	var cfg environ
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	m, err := emulator.NewMachine(bridge.Config{
		DataWidth:   cfg.DataWidth,
		OpcodeWidth: cfg.OpcodeWidth,
		SaveCount:   cfg.SaveCount,
	})
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	m.Verbose = verbose

	var outf io.Writer = os.Stdout
	if output != "-" {
		file, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer file.Close()
		outf = file
	}

	tx := m.Transmitter()
	tx.Output = outf
	if cfg.TxLatency != 0 {
		tx.Latency = cfg.TxLatency
	}

	// Play a scenario script.
	if len(script) != 0 {
		inf, err := os.Open(script)
		if err != nil {
			log.Fatalf("%v: %v", script, err)
		}
		defer inf.Close()

		sc := &scenario.Scenario{Verbose: verbose}
		sc.PredefineAll(m.Defines())

		err = sc.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", script, err)
		}

		err = sc.Play(m)
		if err != nil {
			log.Fatalf("%v: %v", script, err)
		}

		return
	}

	// Bridge a raw byte stream.
	var readf io.Reader = os.Stdin
	if input != "-" {
		file, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer file.Close()
		readf = file
	}

	m.Rx = &serial.Tape{Input: readf}
	m.Reset()

	err = m.Run(cfg.TickLimit)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}
