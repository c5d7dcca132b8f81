// Copyright 2019 The Nuclear Core Authors
// Copyright 2016 The go-ethereum Authors
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

// Package params holds the chain configuration a processor is built
// from: the chain id used by the EIP155 signer onward, any fork-height
// overrides for a non-default network, and the genesis allocation. It
// is loaded from a TOML file the same way go-ethereum's own node/chain
// config is, via github.com/naoina/toml.
package params

import (
	"io"
	"math/big"
	"os"
	"reflect"

	"github.com/naoina/toml"

	"github.com/hardentoo/etclient/common"
	"github.com/hardentoo/etclient/consensus"
)

// ChainConfig is the set of per-network knobs a Processor is
// parameterized by. Without fork-height overrides it uses the mainnet
// fork heights spec.md §3 fixes. A zero-value ChainConfig has a nil
// chain id; MainnetChainConfig and DecodeChainConfig set it to 1.
type ChainConfig struct {
	ChainID *big.Int `toml:"chain_id"`

	HomesteadBlock *big.Int `toml:"homestead_block"`
	EIP150Block    *big.Int `toml:"eip150_block"`
	EIP160Block    *big.Int `toml:"eip160_block"`
	ECIP1017Block  *big.Int `toml:"ecip1017_block"`

	Genesis GenesisAlloc `toml:"genesis"`
}

// GenesisAlloc is the hex-address -> starting wei balance table
// materialized into the empty world state at processor construction.
// Addresses are kept as hex strings (rather than common.Address) so the
// table round-trips through TOML, whose map keys must be strings.
type GenesisAlloc map[string]*big.Int

// Accounts resolves the hex keys into common.Address for genesis
// construction.
func (a GenesisAlloc) Accounts() map[common.Address]*big.Int {
	out := make(map[common.Address]*big.Int, len(a))
	for addr, bal := range a {
		out[common.HexToAddress(addr)] = bal
	}
	return out
}

// MainnetChainConfig is the default configuration: chain id 1, and the
// fork heights consensus.HeightToPatch already hardcodes.
func MainnetChainConfig() *ChainConfig {
	return &ChainConfig{ChainID: big.NewInt(1)}
}

// Patch selects the rule set in force at number. Mainnet's hardcoded
// heights (consensus.HeightToPatch) are used unless a non-default
// network overrides every one of the four fork blocks. A partial
// override is accepted by config loading but ignored here: all four
// mainnet boundaries are used, so custom and mainnet boundaries never mix.
func (c *ChainConfig) Patch(number *big.Int) consensus.Patch {
	if !c.hasFullOverride() {
		return consensus.HeightToPatch(number)
	}
	switch {
	case number.Cmp(c.HomesteadBlock) < 0:
		return consensus.Frontier{}
	case number.Cmp(c.EIP150Block) < 0:
		return consensus.Homestead{}
	case number.Cmp(c.EIP160Block) < 0:
		return consensus.EIP150{}
	case number.Cmp(c.ECIP1017Block) < 0:
		return consensus.EIP160{}
	default:
		return consensus.ECIP1017{}
	}
}

func (c *ChainConfig) hasFullOverride() bool {
	return c.HomesteadBlock != nil && c.EIP150Block != nil && c.EIP160Block != nil && c.ECIP1017Block != nil
}

// tomlSettings mirrors go-ethereum's cmd/geth/config.go: unknown TOML
// keys are accepted (MissingField returns nil) so a config file written
// for a future field doesn't break an older binary.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string { return key },
	FieldToKey:    func(rt reflect.Type, field string) string { return field },
	MissingField:  func(rt reflect.Type, field string) error { return nil },
}

// LoadChainConfig reads and parses a TOML chain-configuration file.
func LoadChainConfig(path string) (*ChainConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeChainConfig(f)
}

// DecodeChainConfig parses TOML chain configuration from r.
func DecodeChainConfig(r io.Reader) (*ChainConfig, error) {
	cfg := MainnetChainConfig()
	if err := tomlSettings.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	if cfg.ChainID == nil {
		cfg.ChainID = big.NewInt(1)
	}
	return cfg, nil
}
