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

// TestHeightToPatchBoundaries walks every fork boundary named in spec.md
// §8's rule-set-selection property: one block below a boundary still
// uses the previous patch, the boundary block itself uses the next one.
func TestHeightToPatchBoundaries(t *testing.T) {
	cases := []struct {
		number int64
		want   string
	}{
		{0, "Frontier"},
		{1149999, "Frontier"},
		{1150000, "Homestead"},
		{2499999, "Homestead"},
		{2500000, "EIP150"},
		{2999999, "EIP150"},
		{3000000, "EIP160"},
		{5000000, "EIP160"},
		{5000001, "ECIP1017"},
		{6000000, "ECIP1017"},
	}
	for _, c := range cases {
		got := HeightToPatch(big.NewInt(c.number))
		assert.Equal(t, c.want, got.Name(), "block %d", c.number)
	}
}

func TestEIP150And160InheritHomesteadDifficultyAndReward(t *testing.T) {
	// EIP150 and EIP160 are Homestead plus a signer change only; neither
	// patch changes the fields this validator tracks beyond the signer.
	number := big.NewInt(3000000)
	parentDifficulty := big.NewInt(2000000)

	homestead := Homestead{}.BaseTargetDifficulty(parentDifficulty, 1000, 1005)
	eip150 := EIP150{}.BaseTargetDifficulty(parentDifficulty, 1000, 1005)
	eip160 := EIP160{}.BaseTargetDifficulty(parentDifficulty, 1000, 1005)
	assert.Equal(t, homestead, eip150)
	assert.Equal(t, homestead, eip160)

	assert.Equal(t, Homestead{}.BlockReward(number, 0), EIP150{}.BlockReward(number, 0))
	assert.Equal(t, Homestead{}.BlockReward(number, 0), EIP160{}.BlockReward(number, 0))
}

func TestECIP1017EraRewardDisinflates(t *testing.T) {
	era0 := ECIP1017{}.BlockReward(big.NewInt(4999999), 0)
	era1 := ECIP1017{}.BlockReward(big.NewInt(5000001), 0)
	era2 := ECIP1017{}.BlockReward(big.NewInt(10000001), 0)

	assert.Equal(t, big.NewInt(5e+18), era0)
	// Era 1 pays 4/5 of the flat 5-ether reward.
	want1 := new(big.Int).Div(new(big.Int).Mul(big.NewInt(5e+18), big.NewInt(4)), big.NewInt(5))
	assert.Equal(t, want1, era1)
	// Era 2 pays (4/5)^2 of the flat reward.
	want2 := new(big.Int).Div(new(big.Int).Mul(big.NewInt(5e+18), big.NewInt(16)), big.NewInt(25))
	assert.Equal(t, want2, era2)
	assert.True(t, era0.Cmp(era1) > 0)
	assert.True(t, era1.Cmp(era2) > 0)
}

func TestFlatUncleRewardScalesWithStaleness(t *testing.T) {
	r := flatBlockReward{}
	// An uncle one block stale earns 7/8 of the flat reward.
	oneStale := r.UncleReward(big.NewInt(10), big.NewInt(9))
	want := new(big.Int).Div(new(big.Int).Mul(maximumBlockReward, big.NewInt(7)), big8)
	assert.Equal(t, want, oneStale)
}
