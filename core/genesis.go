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

package core

import (
	"math/big"

	"github.com/hardentoo/etclient/common"
	"github.com/hardentoo/etclient/core/state"
	"github.com/hardentoo/etclient/core/types"
	"github.com/hardentoo/etclient/params"
)

// genesisDifficulty and genesisGasLimit are rule-of-record mainnet
// constants (spec.md §6).
var (
	genesisDifficulty = big.NewInt(17179869184)
	genesisGasLimit   = uint64(5000)
)

// deployGenesis applies cfg's allocation as a sequence of state
// transitions into an empty world state, matching the original's
// "transit_genesis" step, and returns the committed root. This is the
// only place balances are minted out of nothing rather than moved by a
// transaction.
func deployGenesis(db *state.Database, cfg *params.ChainConfig) (common.Hash, error) {
	sdb, err := state.New(common.Hash{}, db)
	if err != nil {
		return common.Hash{}, err
	}
	for addr, bal := range cfg.Genesis.Accounts() {
		sdb.AddBalance(addr, bal)
	}
	return sdb.Commit()
}

// genesisHeader builds the fixed-field genesis header (spec.md §6):
// zero parent hash, zero number, and the baseline difficulty/gas-
// limit/timestamp, rooted at root.
func genesisHeader(root common.Hash) *types.Header {
	return &types.Header{
		ParentHash:  common.Hash{},
		UncleHash:   types.CalcUncleHash(nil),
		Coinbase:    common.Address{},
		Root:        root,
		TxHash:      types.DeriveSha(types.Transactions(nil)),
		ReceiptHash: types.DeriveSha(types.Receipts(nil)),
		Difficulty:  new(big.Int).Set(genesisDifficulty),
		Number:      new(big.Int),
		GasLimit:    genesisGasLimit,
		GasUsed:     0,
		Time:        0,
		Extra:       nil,
	}
}
