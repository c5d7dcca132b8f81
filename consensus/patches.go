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

package consensus

import (
	"math/big"

	"github.com/hardentoo/etclient/core/types"
)

// ecip1017DelayBlock is ECIP-1017's difficulty bomb delay: every block
// computes its bomb term as if it were this many blocks earlier.
var ecip1017DelayBlock = big.NewInt(3000000)

// Frontier is the genesis rule set: ±difficulty/2048 retarget,
// the un-delayed difficulty bomb, flat 5-ether block/uncle rewards, and
// plain (non-EIP-2) signature validation.
type Frontier struct{}

func (Frontier) Name() string { return "Frontier" }
func (Frontier) Signer(chainID *big.Int) types.Signer {
	return types.FrontierSigner{}
}
func (Frontier) BaseTargetDifficulty(parentDifficulty *big.Int, parentTime, thisTime uint64) *big.Int {
	return frontierBaseTarget(parentDifficulty, parentTime, thisTime)
}
func (Frontier) DifficultyBomb(number *big.Int) *big.Int { return defaultBomb(number) }
func (Frontier) BlockReward(number *big.Int, ommerCount int) *big.Int {
	return flatBlockReward{}.BlockReward(number, ommerCount)
}
func (Frontier) UncleReward(number, uncleNumber *big.Int) *big.Int {
	return flatBlockReward{}.UncleReward(number, uncleNumber)
}

// Homestead adds the EIP-2 low-s signature check and the canonical
// max(1-(ts-pts)/10, -99) difficulty retarget; rewards are unchanged.
type Homestead struct{}

func (Homestead) Name() string { return "Homestead" }
func (Homestead) Signer(chainID *big.Int) types.Signer {
	return types.HomesteadSigner{}
}
func (Homestead) BaseTargetDifficulty(parentDifficulty *big.Int, parentTime, thisTime uint64) *big.Int {
	return homesteadBaseTarget(parentDifficulty, parentTime, thisTime)
}
func (Homestead) DifficultyBomb(number *big.Int) *big.Int { return defaultBomb(number) }
func (Homestead) BlockReward(number *big.Int, ommerCount int) *big.Int {
	return flatBlockReward{}.BlockReward(number, ommerCount)
}
func (Homestead) UncleReward(number, uncleNumber *big.Int) *big.Int {
	return flatBlockReward{}.UncleReward(number, uncleNumber)
}

// EIP150 (the "Tangerine Whistle" gas-repricing fork) changes no
// consensus field this validator tracks beyond what Homestead already
// set; it is its own patch only because it is a distinct height range
// with its own signer/difficulty/reward identity per spec.md §3.
type EIP150 struct{ Homestead }

func (EIP150) Name() string { return "EIP150" }

// EIP160 ("Spurious Dragon") adds EIP-155 chain-id replay protection to
// transaction signatures; difficulty and reward are unchanged from
// Homestead.
type EIP160 struct{ Homestead }

func (EIP160) Name() string { return "EIP160" }
func (EIP160) Signer(chainID *big.Int) types.Signer {
	return types.NewEIP155Signer(chainID)
}

// ECIP1017 is the Ethereum Classic "Monetary Policy" fork: the
// difficulty bomb is permanently delayed by 3,000,000 blocks and the
// block/uncle reward follows the era-based disinflation schedule
// instead of the flat 5-ether reward.
type ECIP1017 struct{ EIP160 }

func (ECIP1017) Name() string { return "ECIP1017" }
func (ECIP1017) DifficultyBomb(number *big.Int) *big.Int {
	return delayedBomb(number, ecip1017DelayBlock)
}
func (ECIP1017) BlockReward(number *big.Int, ommerCount int) *big.Int {
	return ecip1017Reward{}.BlockReward(number, ommerCount)
}
func (ECIP1017) UncleReward(number, uncleNumber *big.Int) *big.Int {
	return ecip1017Reward{}.UncleReward(number, uncleNumber)
}
