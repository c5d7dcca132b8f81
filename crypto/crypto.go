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

// Package crypto provides the Keccak-256 hash and secp256k1 signature
// primitives the validation core needs: header/tx hashing and
// signature recovery.
package crypto

import (
	"errors"
	"math/big"

	"github.com/hardentoo/etclient/common"
	"golang.org/x/crypto/sha3"
)

// Keccak256 returns the Keccak-256 digest of the concatenation of data.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hash returns the Keccak-256 digest as a common.Hash.
func Keccak256Hash(data ...[]byte) common.Hash {
	return common.BytesToHash(Keccak256(data...))
}

var ErrInvalidRecoveryID = errors.New("crypto: invalid recovery id")

// secp256k1N is the order of the secp256k1 curve group, used for the
// Homestead low-s signature malleability check.
var secp256k1N, _ = new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)

// ValidateSignatureValues checks whether (v, r, s) are syntactically valid.
// homestead toggles the additional low-s malleability requirement introduced
// by EIP-2 at the Homestead fork.
func ValidateSignatureValues(v byte, r, s *big.Int, homestead bool) bool {
	if r.Sign() <= 0 || s.Sign() <= 0 {
		return false
	}
	if r.Cmp(secp256k1N) >= 0 || s.Cmp(secp256k1N) >= 0 {
		return false
	}
	if homestead && s.Cmp(new(big.Int).Rsh(secp256k1N, 1)) > 0 {
		return false
	}
	return v == 0 || v == 1
}

// CreateAddress derives the deterministic address of a newly-created
// contract from its deployer and nonce, as `keccak(rlp([sender, nonce]))[12:]`.
func CreateAddress(sender common.Address, nonce uint64) common.Address {
	nonceBytes := big.NewInt(0).SetUint64(nonce).Bytes()
	payload := encodeCreateList(sender.Bytes(), nonceBytes)
	return common.BytesToAddress(Keccak256(payload))
}

// encodeCreateList RLP-encodes [sender, nonce] by hand rather than through
// the rlp package (importing rlp here would not create a cycle, since rlp
// does not need crypto); this keeps address derivation self-contained,
// and go-ethereum's own crypto.CreateAddress only needs rlp.Encode of a
// 2-tuple.
func encodeCreateList(sender, nonce []byte) []byte {
	enc := func(b []byte) []byte {
		switch {
		case len(b) == 1 && b[0] < 0x80:
			return b
		case len(b) < 56:
			return append([]byte{byte(0x80 + len(b))}, b...)
		default:
			panic("crypto: unexpectedly long field in CreateAddress")
		}
	}
	sender = enc(sender)
	nonce = enc(nonce)
	body := append(append([]byte{}, sender...), nonce...)
	if len(body) < 56 {
		return append([]byte{byte(0xc0 + len(body))}, body...)
	}
	panic("crypto: unexpectedly long payload in CreateAddress")
}
