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

// Package validator implements the five-check block validator: basic
// well-formedness, timestamp/difficulty, proof-of-work, gas-limit drift,
// and stateful re-execution. A Validator borrows its inputs and is
// discarded after a single Validate call.
package validator

import (
	"math/big"

	"github.com/hardentoo/etclient/common"
	"github.com/hardentoo/etclient/consensus"
	"github.com/hardentoo/etclient/consensus/ethash"
	"github.com/hardentoo/etclient/core/state"
	"github.com/hardentoo/etclient/core/types"
	"github.com/hardentoo/etclient/core/vm"
	"github.com/hardentoo/etclient/log"
)

var (
	gasLimitBoundDivisor = big.NewInt(1024)
	minGasLimit          = uint64(5000)
	rewardGasLimit       = uint64(1000000)
)

// DAG is the subset of consensus/ethash.LightDAG the validator depends
// on; declared here so tests can substitute a fake without importing the
// concrete cache implementation.
type DAG interface {
	Hashimoto(partialHash common.Hash, nonce uint64) (mixHash, result common.Hash)
}

// Validator runs the five independent checks of spec.md §4.2 against one
// candidate block. It borrows every input (block, parent header, state
// database, DAG, recent hashes): it must not outlive any of them, and it
// mutates only the locally-scoped state view it opens in checkState.
type Validator struct {
	block        *types.Block
	parent       *types.Header
	stateDB      *state.Database
	dag          DAG
	recentHashes []common.Hash
	patch        consensus.Patch
	chainID      *big.Int
}

// New builds a Validator for block against parent, bound to patch and
// chainID (used only by the EIP155 signer onward). It panics (a contract
// violation, not a rejection, per spec.md §7) if dag does not cover
// block's number or recentHashes is shorter than min(block.Number, 256).
func New(block *types.Block, parent *types.Header, stateDB *state.Database, dag DAG, recentHashes []common.Hash, patch consensus.Patch, chainID *big.Int, dagCoversNumber bool) *Validator {
	if !dagCoversNumber {
		panic("validator: DAG does not cover this block's epoch")
	}
	want := block.Header.Number.Uint64()
	if want > 256 {
		want = 256
	}
	if uint64(len(recentHashes)) < want {
		panic("validator: recent-hash window shorter than min(number, 256)")
	}
	return &Validator{
		block: block, parent: parent, stateDB: stateDB,
		dag: dag, recentHashes: recentHashes, patch: patch, chainID: chainID,
	}
}

// Validate is the conjunction of all five sub-checks. Every sub-check
// always runs, even once an earlier one has already failed, so that a
// caller surfacing individual diagnostics sees the complete picture
// (spec.md §4.2).
func (v *Validator) Validate() bool {
	basic := v.checkBasic()
	timestampDifficulty := v.checkTimestampAndDifficulty()
	pow := v.checkConsensus()
	gasLimit := v.checkGasLimit()
	state := v.checkState()
	return basic && timestampDifficulty && pow && gasLimit && state
}

// checkBasic is spec.md §4.2(a): parent linkage, number continuity,
// uncle-hash and transactions-root agreement, and per-transaction basic
// validity under the patch's signer.
func (v *Validator) checkBasic() bool {
	h := v.block.Header
	if !h.HasParent() {
		return false
	}
	if h.ParentHash != v.parent.Hash() {
		return false
	}
	wantNumber := new(big.Int).Add(v.parent.Number, common.Big1)
	if h.Number.Cmp(wantNumber) != 0 {
		return false
	}
	if h.UncleHash != types.CalcUncleHash(v.block.Uncles) {
		return false
	}
	if h.TxHash != types.DeriveSha(v.block.Transactions) {
		return false
	}
	signer := v.patch.Signer(v.chainID)
	for _, tx := range v.block.Transactions {
		if !v.txBasicValid(tx, signer) {
			return false
		}
	}
	return true
}

// txBasicValid checks that tx's signature recovers under signer, that it
// carries enough gas to cover the intrinsic floor, and that its economic
// fields are non-negative -- the "gas-price/value bounds imposed by that
// fork" spec.md §4.2(a) gestures at, none of which tighten further until
// EIP-1559 (out of scope here).
func (v *Validator) txBasicValid(tx *types.Transaction, signer types.Signer) bool {
	if _, err := tx.AsMessage(signer); err != nil {
		return false
	}
	if tx.GasPrice().Sign() < 0 || tx.Value().Sign() < 0 {
		return false
	}
	intrinsic := types.IntrinsicGas(tx.Data(), tx.To() == nil, vm.TxGas, vm.TxDataZeroGas, vm.TxDataNonZeroGas)
	return tx.Gas() >= intrinsic
}

// checkTimestampAndDifficulty is spec.md §4.2(b).
func (v *Validator) checkTimestampAndDifficulty() bool {
	h := v.block.Header
	if h.Time <= v.parent.Time {
		return false
	}
	want := consensus.CalculateDifficulty(v.patch, v.parent.Difficulty, v.parent.Time, h.Number, h.Time)
	return h.Difficulty.Cmp(want) == 0
}

// checkConsensus is spec.md §4.2(c). It preserves the original's exact
// (if unusual) boundary test: the raw 64-bit nonce value, not the
// hashimoto result, is compared against cross_boundary(difficulty).
func (v *Validator) checkConsensus() bool {
	h := v.block.Header
	mixHash, _ := v.dag.Hashimoto(h.PartialHash(), h.Nonce.Uint64())
	if mixHash != h.MixDigest {
		return false
	}
	nonceValue := new(big.Int).SetUint64(h.Nonce.Uint64())
	return nonceValue.Cmp(ethash.CrossBoundary(h.Difficulty)) <= 0
}

// checkGasLimit is spec.md §4.2(d): strict drift bounds plus an absolute
// floor.
func (v *Validator) checkGasLimit() bool {
	return validateGasLimit(v.parent.GasLimit, v.block.Header.GasLimit)
}

func validateGasLimit(last, this uint64) bool {
	lastBig := new(big.Int).SetUint64(last)
	step := new(big.Int).Div(lastBig, gasLimitBoundDivisor)
	lower := new(big.Int).Sub(lastBig, step)
	upper := new(big.Int).Add(lastBig, step)
	thisBig := new(big.Int).SetUint64(this)
	return thisBig.Cmp(upper) < 0 && thisBig.Cmp(lower) > 0 && this >= minGasLimit
}

// checkState is spec.md §4.2(e)/§4.3: re-execute every transaction from
// parent.Root, apply miner/uncle rewards as pseudo-transactions, and
// compare the four final equalities. A failing to_valid step returns
// false immediately -- it does not unwind receipts already accumulated
// in this call's local scope, matching the original's non-short-circuit
// replay-then-compare shape (spec.md §9).
func (v *Validator) checkState() bool {
	h := v.block.Header
	db, err := state.New(v.parent.Root, v.stateDB)
	if err != nil {
		log.Error("validator: failed to open parent state", "root", v.parent.Root, "err", err)
		return false
	}

	var receipts types.Receipts
	var blockBloom common.Bloom
	var blockUsedGas uint64

	signer := v.patch.Signer(v.chainID)
	hp := vm.HeaderParams{
		Beneficiary: h.Coinbase, Difficulty: h.Difficulty, Number: h.Number,
		Timestamp: h.Time, GasLimit: h.GasLimit,
	}

	for _, tx := range v.block.Transactions {
		msg, err := tx.AsMessage(signer)
		if err != nil {
			return false
		}
		valid, err := vm.ToValid(db, msg)
		if err != nil {
			return false
		}
		result := vm.Execute(db, valid, hp, v.recentHashes)

		bloom := types.CreateLogBloom(result.Logs)
		receipt := &types.Receipt{
			StateRoot: db.IntermediateRoot(),
			UsedGas:   result.RealUsedGas,
			Bloom:     bloom,
			Logs:      result.Logs,
		}

		blockBloom = types.BloomOr(blockBloom, bloom)
		blockUsedGas += result.RealUsedGas
		receipts = append(receipts, receipt)
	}

	v.applyRewards(db, hp)

	if h.Root != db.IntermediateRoot() {
		return false
	}
	if h.ReceiptHash != types.DeriveSha(receipts) {
		return false
	}
	if h.Bloom != blockBloom {
		return false
	}
	return h.GasUsed == blockUsedGas
}

// applyRewards credits the miner and uncle miners by running the reward
// value through the same Execute path as a real transaction (caller
// nil, zero gas price, a fixed 1,000,000 gas limit, no input) -- spec.md
// §4.3's "reward as pseudo-transaction" shape. Its VM output is
// deliberately discarded; only the state mutation matters.
func (v *Validator) applyRewards(db *state.StateDB, hp vm.HeaderParams) {
	h := v.block.Header
	reward := v.patch.BlockReward(h.Number, len(v.block.Uncles))
	beneficiary := h.Coinbase
	vm.Execute(db, vm.Valid{
		To: &beneficiary, Value: reward, GasLimit: rewardGasLimit, GasPrice: new(big.Int),
	}, hp, v.recentHashes)

	for _, uncle := range v.block.Uncles {
		uncleReward := v.patch.UncleReward(h.Number, uncle.Number)
		beneficiary := uncle.Coinbase
		vm.Execute(db, vm.Valid{
			To: &beneficiary, Value: uncleReward, GasLimit: rewardGasLimit, GasPrice: new(big.Int),
		}, hp, v.recentHashes)
	}
}
