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

package consensus

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateDifficultyFrontierFastBlock(t *testing.T) {
	// Child arrives within the 13s duration limit: difficulty rises by
	// one bound-divisor step (parent/2048), no bomb yet below block 200,000.
	parentDifficulty := big.NewInt(1000000)
	got := CalculateDifficulty(Frontier{}, parentDifficulty, 1000, big.NewInt(1), 1005)
	want := new(big.Int).Add(parentDifficulty, new(big.Int).Div(parentDifficulty, difficultyBoundDivisor))
	assert.Equal(t, want, got)
}

func TestCalculateDifficultyFrontierSlowBlock(t *testing.T) {
	// Child arrives beyond the duration limit: difficulty falls by one step.
	parentDifficulty := big.NewInt(1000000)
	got := CalculateDifficulty(Frontier{}, parentDifficulty, 1000, big.NewInt(1), 1020)
	want := new(big.Int).Sub(parentDifficulty, new(big.Int).Div(parentDifficulty, difficultyBoundDivisor))
	assert.Equal(t, want, got)
}

func TestCalculateDifficultyClampsToMinimum(t *testing.T) {
	got := CalculateDifficulty(Frontier{}, big.NewInt(100), 1000, big.NewInt(1), 1020)
	assert.Equal(t, minDifficulty, got)
}

func TestCalculateDifficultyHomesteadRetarget(t *testing.T) {
	// 5s gap: adj = 1 - 5/10 = 1 (integer division), so difficulty rises
	// by one full bound-divisor step. thisNumber is kept below 200,000 so
	// defaultBomb contributes nothing and want need not account for it.
	parentDifficulty := big.NewInt(2000000)
	got := CalculateDifficulty(Homestead{}, parentDifficulty, 1000, big.NewInt(1000), 1005)
	step := new(big.Int).Div(parentDifficulty, difficultyBoundDivisor)
	want := new(big.Int).Add(parentDifficulty, step)
	assert.Equal(t, want, got)
}

func TestCalculateDifficultyHomesteadClampsAdjustmentFloor(t *testing.T) {
	// A huge gap clamps adj at -99, not the unbounded negative value.
	// thisNumber is kept below 200,000 so defaultBomb contributes nothing.
	parentDifficulty := big.NewInt(2000000)
	got := CalculateDifficulty(Homestead{}, parentDifficulty, 1000, big.NewInt(1000), 100000)
	step := new(big.Int).Div(parentDifficulty, difficultyBoundDivisor)
	want := new(big.Int).Add(parentDifficulty, new(big.Int).Mul(step, bigMinus99))
	want = bigMax(minDifficulty, want)
	assert.Equal(t, want, got)
}

func TestDifficultyBombAbsentBeforeThreshold(t *testing.T) {
	assert.Equal(t, big.NewInt(0), defaultBomb(big.NewInt(199999)))
}

func TestDifficultyBombPresentAboveThreshold(t *testing.T) {
	// number/100000 - 2 = 1 at block 300000.
	assert.Equal(t, big.NewInt(2), defaultBomb(big.NewInt(300000)))
}

func TestECIP1017DelaysBomb(t *testing.T) {
	// At block 5,300,000 the plain bomb exponent would be 51, but
	// ECIP-1017 always evaluates as if the chain were 3,000,000 blocks
	// earlier, i.e. as block 2,300,000 (exponent 21).
	plain := defaultBomb(big.NewInt(5300000))
	delayed := ECIP1017{}.DifficultyBomb(big.NewInt(5300000))
	assert.True(t, plain.Cmp(delayed) > 0)
	assert.Equal(t, defaultBomb(big.NewInt(2300000)), delayed)
}
