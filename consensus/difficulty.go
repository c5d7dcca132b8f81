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
	minDifficulty           = big.NewInt(125000)
	difficultyBoundDivisor  = big.NewInt(2048)
	frontierDurationLimit   = big.NewInt(13)
	bigMinus99              = big.NewInt(-99)
	bigOne                  = big.NewInt(1)
	bigTen                  = big.NewInt(10)
	bombFreeExponentFloor   = big.NewInt(100000)
	bombExponentOffset      = big.NewInt(2)
)

// CalculateDifficulty implements the retarget formula shared by every
// patch: clamp the base target to the minimum, then clamp base+bomb to
// the minimum again. The minimum is applied twice -- once to the base
// target alone, once to base+bomb -- matching the original's
// double-clamp shape exactly (spec.md's "Clamp to a minimum of 125 000"
// understates that it happens at both stages).
func CalculateDifficulty(p Patch, parentDifficulty *big.Int, parentTime uint64, thisNumber *big.Int, thisTime uint64) *big.Int {
	target := p.BaseTargetDifficulty(parentDifficulty, parentTime, thisTime)
	target = bigMax(minDifficulty, target)
	target = bigMax(minDifficulty, new(big.Int).Add(target, p.DifficultyBomb(thisNumber)))
	return target
}

func bigMax(a, b *big.Int) *big.Int {
	if a.Cmp(b) > 0 {
		return new(big.Int).Set(a)
	}
	return new(big.Int).Set(b)
}

// frontierBaseTarget is Frontier's ±difficulty/2048 retarget: difficulty
// rises by one bound-divisor step if the block arrived within the
// 13-second duration limit, and falls by one step otherwise.
func frontierBaseTarget(parentDifficulty *big.Int, parentTime, thisTime uint64) *big.Int {
	adjust := new(big.Int).Div(parentDifficulty, difficultyBoundDivisor)
	diff := new(big.Int).SetUint64(thisTime - parentTime)
	if thisTime < parentTime {
		diff.SetUint64(0)
	}
	if diff.Cmp(frontierDurationLimit) < 0 {
		return new(big.Int).Add(parentDifficulty, adjust)
	}
	return new(big.Int).Sub(parentDifficulty, adjust)
}

// homesteadBaseTarget is the canonical max(1-(ts-pts)/10, -99) retarget
// introduced at Homestead and carried unchanged through EIP-150, EIP-160,
// and ECIP-1017.
func homesteadBaseTarget(parentDifficulty *big.Int, parentTime, thisTime uint64) *big.Int {
	var elapsed int64
	if thisTime > parentTime {
		elapsed = int64(thisTime - parentTime)
	}
	adj := new(big.Int).Sub(bigOne, new(big.Int).Div(big.NewInt(elapsed), bigTen))
	if adj.Cmp(bigMinus99) < 0 {
		adj = new(big.Int).Set(bigMinus99)
	}
	step := new(big.Int).Div(parentDifficulty, difficultyBoundDivisor)
	return new(big.Int).Add(parentDifficulty, new(big.Int).Mul(step, adj))
}

// defaultBomb is floor(2**((number/100000) - 2)), zero below block
// 200,000 where the exponent would be negative.
func defaultBomb(number *big.Int) *big.Int {
	return bombAt(number, new(big.Int))
}

// delayedBomb computes the bomb as if the chain were still at
// number-delay: the "difficulty bomb delay" mechanism every bomb-easing
// fork (EIP-649/1234 upstream; ECIP-1017's own freeze here) uses.
func delayedBomb(number, delay *big.Int) *big.Int {
	return bombAt(number, delay)
}

func bombAt(number, delay *big.Int) *big.Int {
	fake := new(big.Int).Sub(number, delay)
	if fake.Sign() <= 0 {
		return new(big.Int)
	}
	exp := new(big.Int).Div(fake, bombFreeExponentFloor)
	exp.Sub(exp, bombExponentOffset)
	if exp.Sign() < 0 {
		return new(big.Int)
	}
	return new(big.Int).Lsh(bigOne, uint(exp.Uint64()))
}
