// Copyright 2019 The Nuclear Core Authors
// This file is part of the Nuclear Core library.
//
// The Nuclear Core library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The Nuclear Core library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the Nuclear Core library. If not, see <http://www.gnu.org/licenses/>.

// Command validator-core is the CLI front-end to the block validation
// core: "validate" replays an RLP-encoded block file through a fresh
// Processor, "console" opens an interactive REPL over the same
// Processor for ad-hoc chain inspection.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v2"

	"github.com/hardentoo/etclient/common"
	"github.com/hardentoo/etclient/core"
	"github.com/hardentoo/etclient/core/types"
	"github.com/hardentoo/etclient/log"
	"github.com/hardentoo/etclient/params"
	"github.com/hardentoo/etclient/rlp"
)

func main() {
	app := &cli.App{
		Name:  "validator-core",
		Usage: "replay and inspect blocks through the block validation core",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "TOML chain configuration file"},
		},
		Commands: []*cli.Command{
			validateCommand,
			consoleCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Crit("validator-core: fatal error", "err", err)
	}
}

func loadConfig(c *cli.Context) *params.ChainConfig {
	path := c.String("config")
	if path == "" {
		return params.MainnetChainConfig()
	}
	cfg, err := params.LoadChainConfig(path)
	if err != nil {
		log.Crit("validator-core: failed to load chain config", "path", path, "err", err)
	}
	return cfg
}

var validateCommand = &cli.Command{
	Name:      "validate",
	Usage:     "replay an RLP-encoded block file through the processor",
	ArgsUsage: "<block.rlp>",
	Action: func(c *cli.Context) error {
		if c.Args().Len() != 1 {
			return fmt.Errorf("validate: expected exactly one block file argument")
		}
		data, err := os.ReadFile(c.Args().First())
		if err != nil {
			return err
		}
		var block types.Block
		if err := rlp.DecodeBytes(data, &block); err != nil {
			return fmt.Errorf("validate: malformed block RLP: %w", err)
		}

		p := core.New(loadConfig(c))
		if p.Put(&block) {
			fmt.Printf("accepted block %s (number %s)\n", block.Hash(), block.Header.Number)
			return nil
		}
		return fmt.Errorf("rejected block %s (number %s)", block.Hash(), block.Header.Number)
	},
}

var consoleCommand = &cli.Command{
	Name:  "console",
	Usage: "open an interactive REPL over a fresh processor (fetch <hash>, exit)",
	Action: func(c *cli.Context) error {
		p := core.New(loadConfig(c))

		line := liner.NewLiner()
		defer line.Close()
		line.SetCtrlCAborts(true)

		fmt.Println(wordwrap.WrapString(
			"validator-core console. Commands: fetch <hash>, exit.", 72))

		for {
			input, err := line.Prompt("> ")
			if err != nil {
				return nil
			}
			line.AppendHistory(input)

			fields := strings.Fields(input)
			if len(fields) == 0 {
				continue
			}
			switch fields[0] {
			case "exit", "quit":
				return nil
			case "fetch":
				if len(fields) != 2 {
					fmt.Println("usage: fetch <hash>")
					continue
				}
				th, ok := p.Fetch(common.HexToHash(fields[1]))
				if !ok {
					fmt.Println("not found")
					continue
				}
				fmt.Printf("number=%s difficulty=%s total=%s\n", th.Header.Number, th.Header.Difficulty, th.Total)
			default:
				fmt.Println("unknown command:", fields[0])
			}
		}
	},
}
