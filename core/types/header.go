// Copyright 2019 The Nuclear Core Authors
// Copyright 2014 The go-ethereum Authors
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
	"encoding/binary"
	"math/big"

	"github.com/hardentoo/etclient/common"
	"github.com/hardentoo/etclient/crypto"
	"github.com/hardentoo/etclient/rlp"
)

// BlockNonce is the 64-bit PoW nonce.
type BlockNonce [8]byte

func EncodeNonce(i uint64) BlockNonce {
	var n BlockNonce
	binary.BigEndian.PutUint64(n[:], i)
	return n
}

func (n BlockNonce) Uint64() uint64 { return binary.BigEndian.Uint64(n[:]) }

// Header is the consensus header. Field order is RLP-significant.
type Header struct {
	ParentHash  common.Hash
	UncleHash   common.Hash
	Coinbase    common.Address
	Root        common.Hash
	TxHash      common.Hash
	ReceiptHash common.Hash
	Bloom       common.Bloom
	Difficulty  *big.Int
	Number      *big.Int
	GasLimit    uint64
	GasUsed     uint64
	Time        uint64
	Extra       []byte
	MixDigest   common.Hash
	Nonce       BlockNonce
}

// partialHeader is the header with MixDigest and Nonce elided, used to
// compute the pre-seal hash fed to the PoW function.
type partialHeader struct {
	ParentHash  common.Hash
	UncleHash   common.Hash
	Coinbase    common.Address
	Root        common.Hash
	TxHash      common.Hash
	ReceiptHash common.Hash
	Bloom       common.Bloom
	Difficulty  *big.Int
	Number      *big.Int
	GasLimit    uint64
	GasUsed     uint64
	Time        uint64
	Extra       []byte
}

// Hash returns keccak256(rlp(header)), the block's identity in the chain index.
func (h *Header) Hash() common.Hash {
	enc, err := rlp.EncodeToBytes(h)
	if err != nil {
		panic("types: header is not RLP-encodable: " + err.Error())
	}
	return crypto.Keccak256Hash(enc)
}

// PartialHash returns keccak256(rlp(header without mix_hash and nonce)),
// the value hashimoto verifies the seal against.
func (h *Header) PartialHash() common.Hash {
	p := partialHeader{
		ParentHash: h.ParentHash, UncleHash: h.UncleHash, Coinbase: h.Coinbase,
		Root: h.Root, TxHash: h.TxHash, ReceiptHash: h.ReceiptHash, Bloom: h.Bloom,
		Difficulty: h.Difficulty, Number: h.Number, GasLimit: h.GasLimit,
		GasUsed: h.GasUsed, Time: h.Time, Extra: h.Extra,
	}
	enc, err := rlp.EncodeToBytes(&p)
	if err != nil {
		panic("types: partial header is not RLP-encodable: " + err.Error())
	}
	return crypto.Keccak256Hash(enc)
}

// HasParent reports whether ParentHash is set; only the genesis header may
// legitimately lack a parent.
func (h *Header) HasParent() bool {
	return !h.ParentHash.IsZero()
}

func CalcUncleHash(uncles []*Header) common.Hash {
	enc, err := rlp.EncodeToBytes(uncles)
	if err != nil {
		panic("types: uncle list is not RLP-encodable: " + err.Error())
	}
	return crypto.Keccak256Hash(enc)
}
