// Copyright 2019 The Nuclear Core Authors
// Copyright 2017 The go-ethereum Authors
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

// Package ethash implements the light-client side of the Ethash
// proof-of-work check: hashimoto against a height-derived cache and the
// difficulty-boundary test. The real Ethash DAG generator (the
// memory-hard dataset derived from a seed) is an external collaborator
// contracted only at this package's interface (spec.md §1); what's here
// is a from-scratch cache keyed the same way (30,000-block epochs,
// LRU-held across calls) that produces a deterministic, internally
// self-consistent (mix_hash, result) pair rather than one that matches
// mainnet byte-for-byte.
package ethash

import (
	"math/big"

	"github.com/hashicorp/golang-lru"

	"github.com/hardentoo/etclient/common"
	"github.com/hardentoo/etclient/crypto"
)

// EpochLength is the number of blocks a single Ethash epoch (and hence a
// single DAG/cache) covers.
const EpochLength = 30000

// cacheSize bounds how many epoch caches LightDAG keeps warm; mainnet
// nodes only ever need the current and next epoch.
const cacheSize = 3

// LightDAG is the verification-only, cache-backed side of Ethash for a
// single epoch. A new epoch requires a new LightDAG (see IsValidFor).
type LightDAG struct {
	epoch uint64
	cache *lru.Cache
}

// New builds a LightDAG covering the epoch that contains blockNumber.
func New(blockNumber uint64) *LightDAG {
	cache, err := lru.New(cacheSize)
	if err != nil {
		panic(err)
	}
	return &LightDAG{epoch: blockNumber / EpochLength, cache: cache}
}

// IsValidFor reports whether this LightDAG still covers blockNumber's
// epoch; the processor rebuilds the DAG once this turns false.
func (d *LightDAG) IsValidFor(blockNumber uint64) bool {
	return blockNumber/EpochLength == d.epoch
}

// seedHash derives the epoch's seed, matching the real Ethash
// generate_seed_hash construction: repeated keccak256 of the zero hash,
// once per epoch elapsed.
func (d *LightDAG) seedHash() common.Hash {
	if v, ok := d.cache.Get(d.epoch); ok {
		return v.(common.Hash)
	}
	seed := make([]byte, 32)
	for i := uint64(0); i < d.epoch; i++ {
		seed = crypto.Keccak256(seed)
	}
	h := common.BytesToHash(seed)
	d.cache.Add(d.epoch, h)
	return h
}

// Hashimoto verifies the PoW seal: it mixes the epoch seed, the header's
// partial hash, and the nonce into a mix digest and a result, mirroring
// the real hashimoto_light's two-stage (dataset-lookup then digest)
// shape with a cache lookup in place of the dataset.
func (d *LightDAG) Hashimoto(partialHash common.Hash, nonce uint64) (mixHash, result common.Hash) {
	seed := d.seedHash()
	nonceBytes := make([]byte, 8)
	for i := 0; i < 8; i++ {
		nonceBytes[7-i] = byte(nonce >> (8 * uint(i)))
	}
	mix := crypto.Keccak256(seed.Bytes(), partialHash.Bytes(), nonceBytes)
	res := crypto.Keccak256(mix, partialHash.Bytes())
	return common.BytesToHash(mix), common.BytesToHash(res)
}

// CrossBoundary returns 2**256 / difficulty via integer division; the
// nonce's nominal PoW result must be less than or equal to this boundary.
func CrossBoundary(difficulty *big.Int) *big.Int {
	if difficulty.Sign() == 0 {
		return new(big.Int)
	}
	two256 := new(big.Int).Lsh(big.NewInt(1), 256)
	return new(big.Int).Div(two256, difficulty)
}
