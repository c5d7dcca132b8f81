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

package core

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hardentoo/etclient/common"
	"github.com/hardentoo/etclient/consensus"
	"github.com/hardentoo/etclient/consensus/ethash"
	"github.com/hardentoo/etclient/core/state"
	"github.com/hardentoo/etclient/core/types"
	"github.com/hardentoo/etclient/core/vm"
	"github.com/hardentoo/etclient/ethdb"
	"github.com/hardentoo/etclient/params"
)

// validChild builds a block #1 on top of cfg's genesis that every one of
// the five validator checks accepts: Frontier retarget per spec.md §8's
// S1 scenario, a same-sized gas limit, a sealed (if toy) PoW, and a state
// root produced by independently replaying the same reward-as-pseudo-
// transaction the validator itself would apply.
func validChild(t *testing.T, genesis *types.Header, beneficiary common.Address) *types.Block {
	t.Helper()

	number := big.NewInt(1)
	childTime := uint64(1438269988) // spec.md §8 S1
	patch := consensus.HeightToPatch(number)
	difficulty := consensus.CalculateDifficulty(patch, genesis.Difficulty, genesis.Time, number, childTime)
	require.Equal(t, big.NewInt(17171480576), difficulty, "S1 scenario value")

	shadow := state.NewDatabase(ethdb.NewMemDatabase())
	sdb, err := state.New(genesis.Root, shadow)
	require.NoError(t, err)

	hp := vm.HeaderParams{
		Beneficiary: beneficiary, Difficulty: difficulty, Number: number,
		Timestamp: childTime, GasLimit: genesis.GasLimit,
	}
	reward := patch.BlockReward(number, 0)
	vm.Execute(sdb, vm.Valid{To: &beneficiary, Value: reward, GasLimit: 1000000, GasPrice: new(big.Int)}, hp, nil)
	root := sdb.IntermediateRoot()

	header := &types.Header{
		ParentHash:  genesis.Hash(),
		UncleHash:   types.CalcUncleHash(nil),
		Coinbase:    beneficiary,
		Root:        root,
		TxHash:      types.DeriveSha(types.Transactions(nil)),
		ReceiptHash: types.DeriveSha(types.Receipts(nil)),
		Difficulty:  difficulty,
		Number:      number,
		GasLimit:    genesis.GasLimit,
		GasUsed:     0,
		Time:        childTime,
	}
	seal(header, 42)
	return types.NewBlock(header, nil, nil)
}

// seal computes a (mix_hash, nonce) pair that satisfies checkConsensus for
// header: at these toy difficulties cross_boundary(difficulty) vastly
// exceeds any 64-bit nonce, so any nonce value clears the boundary test
// and only mix_hash need actually match the DAG.
func seal(header *types.Header, nonce uint64) {
	dag := ethash.New(header.Number.Uint64())
	mixHash, _ := dag.Hashimoto(header.PartialHash(), nonce)
	header.MixDigest = mixHash
	header.Nonce = types.EncodeNonce(nonce)
}

func TestProcessorAcceptsValidChildBlock(t *testing.T) {
	cfg := params.MainnetChainConfig()
	p := New(cfg)

	genesisRoot, err := deployGenesis(state.NewDatabase(ethdb.NewMemDatabase()), cfg)
	require.NoError(t, err)
	genesis := genesisHeader(genesisRoot)

	genTotal, ok := p.Fetch(genesis.Hash())
	require.True(t, ok, "processor's own genesis must match an independently built one")

	beneficiary := common.HexToAddress("0x111111111111111111111111111111111111aaaa")
	block := validChild(t, genesis, beneficiary)

	assert.True(t, p.Put(block))

	childTotal, ok := p.Fetch(block.Hash())
	require.True(t, ok)
	assert.Equal(t, new(big.Int).Add(genTotal.Total, block.Header.Difficulty), childTotal.Total)
}

// TestProcessorRejectsBlockWithUnknownParent covers Processor.Put's first
// guard: an absent parent is rejected outright, before any validator runs.
func TestProcessorRejectsBlockWithUnknownParent(t *testing.T) {
	p := New(params.MainnetChainConfig())
	orphan := &types.Header{
		ParentHash: common.HexToHash("0xdeadbeef"),
		Number:     big.NewInt(1),
		Difficulty: big.NewInt(125000),
		GasLimit:   5000,
	}
	assert.False(t, p.Put(types.NewBlock(orphan, nil, nil)))
}

// TestProcessorRejectsWrongBlockNumber is spec.md §8 S4: a block whose
// number does not increment by exactly one over its parent is rejected.
func TestProcessorRejectsWrongBlockNumber(t *testing.T) {
	cfg := params.MainnetChainConfig()
	p := New(cfg)
	genesisRoot, err := deployGenesis(state.NewDatabase(ethdb.NewMemDatabase()), cfg)
	require.NoError(t, err)
	genesis := genesisHeader(genesisRoot)

	beneficiary := common.HexToAddress("0x111111111111111111111111111111111111aaaa")
	block := validChild(t, genesis, beneficiary)
	block.Header.Number = big.NewInt(0) // not parent.Number + 1

	assert.False(t, p.Put(block))
}

// TestProcessorRejectsNonIncreasingTimestamp is spec.md §8 S5: the child's
// timestamp must be strictly greater than its parent's, even if every
// other field would otherwise validate.
func TestProcessorRejectsNonIncreasingTimestamp(t *testing.T) {
	cfg := params.MainnetChainConfig()
	p := New(cfg)
	genesisRoot, err := deployGenesis(state.NewDatabase(ethdb.NewMemDatabase()), cfg)
	require.NoError(t, err)
	genesis := genesisHeader(genesisRoot)

	beneficiary := common.HexToAddress("0x111111111111111111111111111111111111aaaa")
	block := validChild(t, genesis, beneficiary)
	block.Header.Time = genesis.Time

	assert.False(t, p.Put(block))
}

// TestProcessorRejectsTamperedStateRoot is spec.md §8 S6: perturbing the
// state root by one bit fails validation even when basic well-formedness,
// timestamp/difficulty, gas-limit drift, and (after re-sealing) proof-of-
// work all still pass.
func TestProcessorRejectsTamperedStateRoot(t *testing.T) {
	cfg := params.MainnetChainConfig()
	p := New(cfg)
	genesisRoot, err := deployGenesis(state.NewDatabase(ethdb.NewMemDatabase()), cfg)
	require.NoError(t, err)
	genesis := genesisHeader(genesisRoot)

	beneficiary := common.HexToAddress("0x111111111111111111111111111111111111aaaa")
	block := validChild(t, genesis, beneficiary)
	block.Header.Root[0] ^= 0x01
	seal(block.Header, 42) // reseal so PoW still matches the tampered header

	assert.False(t, p.Put(block))
}
