// Copyright 2019 The Nuclear Core Authors
// Copyright 2015 The go-ethereum Authors
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

// Package core is the façade: Processor owns the state store, the
// header chain, and the Ethash DAG, and is the only component that
// allocates a DAG or mutates the chain index.
package core

import (
	"github.com/pborman/uuid"

	"github.com/hardentoo/etclient/common"
	"github.com/hardentoo/etclient/consensus/ethash"
	"github.com/hardentoo/etclient/core/chain"
	"github.com/hardentoo/etclient/core/state"
	"github.com/hardentoo/etclient/core/types"
	"github.com/hardentoo/etclient/core/validator"
	"github.com/hardentoo/etclient/ethdb"
	"github.com/hardentoo/etclient/log"
	"github.com/hardentoo/etclient/params"
)

// Processor is the single-threaded orchestrator spec.md §4.1 describes:
// it is the only component that allocates a DAG or mutates the chain
// index, and a Put runs to completion before another may start.
type Processor struct {
	config *params.ChainConfig

	db    *state.Database
	chain *chain.Index
	dag   *ethash.LightDAG

	log log.Logger
}

// New builds a Processor backed by a fresh in-memory key/value store,
// deploying cfg's genesis allocation and inserting the resulting
// genesis header as the chain index's root.
func New(cfg *params.ChainConfig) *Processor {
	if cfg == nil {
		cfg = params.MainnetChainConfig()
	}
	kv := ethdb.NewMemDatabase()
	sdb := state.NewDatabase(kv)

	root, err := deployGenesis(sdb, cfg)
	if err != nil {
		panic("core: failed to deploy genesis allocation: " + err.Error())
	}
	genesis := genesisHeader(root)

	p := &Processor{
		config: cfg,
		db:     sdb,
		chain:  chain.NewIndex(genesis),
		dag:    ethash.New(0),
		log:    log.New("processor", uuid.New()),
	}
	return p
}

// Put validates block against the chain it already holds and, if valid,
// links it in. It returns false without mutating any shared state if
// the parent is unknown or validation fails (spec.md §4.1).
func (p *Processor) Put(block *types.Block) bool {
	parentTotal, ok := p.chain.Fetch(block.Header.ParentHash)
	if !ok {
		p.log.Debug("core: rejecting block with unknown parent", "number", block.Header.Number, "parent", block.Header.ParentHash)
		return false
	}

	number := block.Header.Number.Uint64()
	recentHashes := p.chain.LastHashes(256)
	if !p.dag.IsValidFor(number) {
		p.log.Info("core: rebuilding ethash DAG for new epoch", "number", number)
		p.dag = ethash.New(number)
	}

	patch := p.config.Patch(block.Header.Number)
	v := validator.New(block, parentTotal.Header, p.db, p.dag, recentHashes, patch, p.config.ChainID, p.dag.IsValidFor(number))
	if !v.Validate() {
		p.log.Debug("core: rejecting invalid block", "number", number, "hash", block.Hash())
		return false
	}

	p.chain.Put(chain.FromParent(block.Header, parentTotal))
	p.log.Info("core: accepted block", "number", number, "hash", block.Hash())
	return true
}

// Fetch exposes the chain index's lookup for callers (e.g. cmd) that
// need to inspect what the processor has accepted.
func (p *Processor) Fetch(hash common.Hash) (chain.TotalHeader, bool) {
	return p.chain.Fetch(hash)
}
