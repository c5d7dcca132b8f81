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

package crypto

import (
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/hardentoo/etclient/common"
)

// Sign produces a 65-byte [R || S || V] signature of hash under priv.
func Sign(hash []byte, priv *secp256k1.PrivateKey) ([]byte, error) {
	if len(hash) != 32 {
		return nil, errors.New("crypto: hash must be 32 bytes")
	}
	sig := signRecoverable(priv, hash)
	return sig, nil
}

// Ecrecover recovers the uncompressed public key that produced sig over hash.
func Ecrecover(hash, sig []byte) ([]byte, error) {
	if len(sig) != 65 {
		return nil, errors.New("crypto: invalid signature length")
	}
	pub, err := recoverPublicKey(hash, sig)
	if err != nil {
		return nil, err
	}
	return pub.SerializeUncompressed(), nil
}

// PubkeyToAddress derives the 20-byte address from an uncompressed public key.
func PubkeyToAddress(pub []byte) common.Address {
	if len(pub) == 65 {
		pub = pub[1:]
	}
	return common.BytesToAddress(Keccak256(pub)[12:])
}

// SigToAddress recovers the sender address directly from a signature.
func SigToAddress(hash, sig []byte) (common.Address, error) {
	pub, err := Ecrecover(hash, sig)
	if err != nil {
		return common.Address{}, err
	}
	return PubkeyToAddress(pub), nil
}

func signRecoverable(priv *secp256k1.PrivateKey, hash []byte) []byte {
	// secp256k1.SignCompact returns [recovery_id+27 || R || S]; rearrange to
	// the Ethereum [R || S || recovery_id] convention used throughout this
	// module and by the header/transaction signature fields.
	compact := secp256k1.SignCompact(priv, hash, false)
	out := make([]byte, 65)
	copy(out[0:32], compact[1:33])
	copy(out[32:64], compact[33:65])
	out[64] = compact[0] - 27
	return out
}

func recoverPublicKey(hash, sig []byte) (*secp256k1.PublicKey, error) {
	v := sig[64]
	if v > 3 {
		return nil, ErrInvalidRecoveryID
	}
	compact := make([]byte, 65)
	compact[0] = 27 + v
	copy(compact[1:33], sig[0:32])
	copy(compact[33:65], sig[32:64])
	pub, _, err := secp256k1.RecoverCompact(compact, hash)
	if err != nil {
		return nil, err
	}
	return pub, nil
}

// NewPrivateKeyFromBytes parses a raw 32-byte scalar into a signing key,
// used by tests to construct deterministic transaction signers.
func NewPrivateKeyFromBytes(b []byte) *secp256k1.PrivateKey {
	return secp256k1.PrivKeyFromBytes(b)
}
