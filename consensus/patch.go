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

// Package consensus bundles the five fork rule sets ("patches") the
// validator is parameterized over: signature policy, difficulty/bomb
// functions, and the block/uncle reward schedule, plus the height-range
// selector that picks one per block.
package consensus

import (
	"math/big"

	"github.com/hardentoo/etclient/core/types"
)

// Fork height boundaries. A block's number selects exactly one patch;
// the boundaries themselves belong to the following patch (e.g. block
// 1,150,000 is the first Homestead block).
var (
	HomesteadBlock = big.NewInt(1150000)
	EIP150Block    = big.NewInt(2500000)
	EIP160Block    = big.NewInt(3000000)
	ECIP1017Block  = big.NewInt(5000001)
)

// Patch is a named fork rule set: how transactions are signed, how
// difficulty retargets, and how block/uncle rewards are computed.
type Patch interface {
	Name() string
	Signer(chainID *big.Int) types.Signer
	BaseTargetDifficulty(parentDifficulty *big.Int, parentTime, thisTime uint64) *big.Int
	DifficultyBomb(number *big.Int) *big.Int
	BlockReward(number *big.Int, ommerCount int) *big.Int
	UncleReward(number, uncleNumber *big.Int) *big.Int
}

// HeightToPatch selects the rule set in force at number, per the five
// fork-height ranges: [0,1_150_000) Frontier, [1_150_000,2_500_000)
// Homestead, [2_500_000,3_000_000) EIP-150, [3_000_000,5_000_001)
// EIP-160, [5_000_001,inf) ECIP-1017.
func HeightToPatch(number *big.Int) Patch {
	switch {
	case number.Cmp(HomesteadBlock) < 0:
		return Frontier{}
	case number.Cmp(EIP150Block) < 0:
		return Homestead{}
	case number.Cmp(EIP160Block) < 0:
		return EIP150{}
	case number.Cmp(ECIP1017Block) < 0:
		return EIP160{}
	default:
		return ECIP1017{}
	}
}
