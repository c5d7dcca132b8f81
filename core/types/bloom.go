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

package types

import (
	"github.com/hardentoo/etclient/common"
	"github.com/hardentoo/etclient/crypto"
)

// addBloom sets the three bits derived from the low 11 bits of three 16-bit
// windows of keccak256(item) into the bloom filter.
func addBloom(b *common.Bloom, item []byte) {
	h := crypto.Keccak256(item)
	for i := 0; i < 3; i++ {
		bit := (uint(h[2*i])<<8 + uint(h[2*i+1])) & 0x7ff
		byteIdx := common.BloomLength - 1 - bit/8
		bitMask := byte(1) << (bit % 8)
		b[byteIdx] |= bitMask
	}
}

// BloomAdd inserts an address or topic into the bloom filter.
func BloomAdd(b *common.Bloom, item []byte) { addBloom(b, item) }

// BloomOr returns the bitwise OR of two bloom filters.
func BloomOr(a, b common.Bloom) common.Bloom {
	var out common.Bloom
	for i := range out {
		out[i] = a[i] | b[i]
	}
	return out
}

// CreateLogBloom builds the bloom filter for a single transaction's logs.
func CreateLogBloom(logs []*Log) common.Bloom {
	var b common.Bloom
	for _, log := range logs {
		BloomAdd(&b, log.Address.Bytes())
		for _, topic := range log.Topics {
			t := topic
			BloomAdd(&b, t.Bytes())
		}
	}
	return b
}

// CreateBloom ORs together the per-receipt blooms of a whole block.
func CreateBloom(receipts []*Receipt) common.Bloom {
	var b common.Bloom
	for _, r := range receipts {
		b = BloomOr(b, r.Bloom)
	}
	return b
}
