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

package consensus

import "math/big"

var (
	maximumBlockReward       = big.NewInt(5e+18)
	big8                     = big.NewInt(8)
	big32                    = big.NewInt(32)
	disinflationRateQuotient = big.NewInt(4)
	disinflationRateDivisor  = big.NewInt(5)

	// eraLength is ECIP-1017's era length in blocks. Mainnet (and the
	// Classic chain this patch models) fixes it at 5,000,000.
	eraLength = big.NewInt(5000000)
)

// flatBlockReward is the pre-ECIP-1017 reward schedule (Frontier through
// EIP-160): a flat 5 ether to the block's beneficiary, plus 1/32 of that
// per included uncle; each uncle miner separately receives a reward
// scaled by how stale the uncle is.
type flatBlockReward struct{}

func (flatBlockReward) BlockReward(number *big.Int, ommerCount int) *big.Int {
	reward := new(big.Int).Set(maximumBlockReward)
	if ommerCount > 0 {
		perUncle := new(big.Int).Div(maximumBlockReward, big32)
		reward.Add(reward, new(big.Int).Mul(perUncle, big.NewInt(int64(ommerCount))))
	}
	return reward
}

func (flatBlockReward) UncleReward(number, uncleNumber *big.Int) *big.Int {
	r := new(big.Int).Add(uncleNumber, big8)
	r.Sub(r, number)
	r.Mul(r, maximumBlockReward)
	r.Div(r, big8)
	return r
}

// ecip1017Reward implements ECIP-1017's era-based disinflationary
// schedule, restored from the ethereumproject go-ethereum fork's
// AccumulateRewards/GetBlockEra family (see DESIGN.md).
type ecip1017Reward struct{}

func (ecip1017Reward) BlockReward(number *big.Int, ommerCount int) *big.Int {
	era := blockEra(number, eraLength)
	reward := winnerRewardByEra(era)
	if ommerCount > 0 {
		perUncle := uncleRewardByEra(era, number, nil)
		reward.Add(reward, new(big.Int).Mul(perUncle, big.NewInt(int64(ommerCount))))
	}
	return reward
}

func (ecip1017Reward) UncleReward(number, uncleNumber *big.Int) *big.Int {
	era := blockEra(number, eraLength)
	if era.Sign() == 0 {
		r := new(big.Int).Add(uncleNumber, big8)
		r.Sub(r, number)
		r.Mul(r, maximumBlockReward)
		r.Div(r, big8)
		return r
	}
	return new(big.Int).Div(winnerRewardByEra(era), big32)
}

// uncleRewardByEra returns the flat per-uncle bonus credited to the
// winning miner for including an uncle in any era after Era 1; it is the
// same 1/32 share the uncle miner itself receives from Era 2 onward.
func uncleRewardByEra(era, number *big.Int, _ *big.Int) *big.Int {
	return new(big.Int).Div(winnerRewardByEra(era), big32)
}

// winnerRewardByEra returns the flat block reward for era (disinflating
// by 4/5 per era after Era 1).
func winnerRewardByEra(era *big.Int) *big.Int {
	if era.Sign() == 0 {
		return new(big.Int).Set(maximumBlockReward)
	}
	q := new(big.Int).Exp(disinflationRateQuotient, era, nil)
	d := new(big.Int).Exp(disinflationRateDivisor, era, nil)
	r := new(big.Int).Mul(maximumBlockReward, q)
	return r.Div(r, d)
}

// blockEra returns the zero-indexed ECIP-1017 era a block belongs to:
// "Era 1" is era 0, "Era 2" is era 1, and so on.
func blockEra(blockNum, eraLen *big.Int) *big.Int {
	if blockNum.Sign() < 1 {
		return new(big.Int)
	}
	remainder := new(big.Int).Mod(new(big.Int).Sub(blockNum, bigOne), eraLen)
	base := new(big.Int).Sub(blockNum, remainder)
	return new(big.Int).Div(base, eraLen)
}
