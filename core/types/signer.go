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

package types

import (
	"math/big"

	"github.com/hardentoo/etclient/common"
	"github.com/hardentoo/etclient/crypto"
	"github.com/hardentoo/etclient/rlp"
)

// Signer encapsulates a fork's transaction signing scheme: how the signing
// hash is built, how sender recovery works, and how a raw 65-byte signature
// is translated into the (v, r, s) triple stored on the transaction.
type Signer interface {
	Sender(tx *Transaction) (common.Address, error)
	SignatureValues(tx *Transaction, sig []byte) (r, s, v *big.Int, err error)
	Hash(tx *Transaction) common.Hash
	Equal(Signer) bool
}

// FrontierSigner implements the original, pre-replay-protection signing
// scheme: v is stored as the raw recovery id, 0 or 1; the 27/28 offset of
// mainnet Frontier transactions is not applied.
type FrontierSigner struct{}

func (FrontierSigner) Equal(s2 Signer) bool { _, ok := s2.(FrontierSigner); return ok }

func (fs FrontierSigner) Hash(tx *Transaction) common.Hash {
	enc, err := rlp.EncodeToBytes(tx.signingFields())
	if err != nil {
		panic("types: cannot hash transaction for signing: " + err.Error())
	}
	return crypto.Keccak256Hash(enc)
}

func (fs FrontierSigner) SignatureValues(tx *Transaction, sig []byte) (r, s, v *big.Int, err error) {
	return decodeSignature(sig)
}

func (fs FrontierSigner) Sender(tx *Transaction) (common.Address, error) {
	v, r, s := tx.data.V, tx.data.R, tx.data.S
	if !crypto.ValidateSignatureValues(byte(v.Uint64()), r, s, false) {
		return common.Address{}, ErrInvalidSig
	}
	sighash := fs.Hash(tx)
	return recoverSender(sighash, r, s, v)
}

// HomesteadSigner is the FrontierSigner with the EIP-2 low-s requirement.
type HomesteadSigner struct{ FrontierSigner }

func (hs HomesteadSigner) Equal(s2 Signer) bool { _, ok := s2.(HomesteadSigner); return ok }

func (hs HomesteadSigner) Sender(tx *Transaction) (common.Address, error) {
	v, r, s := tx.data.V, tx.data.R, tx.data.S
	if !crypto.ValidateSignatureValues(byte(v.Uint64()), r, s, true) {
		return common.Address{}, ErrInvalidSig
	}
	sighash := hs.Hash(tx)
	return recoverSender(sighash, r, s, v)
}

// EIP155Signer adds chain-id replay protection: v = {0,1} + 35 + 2*chainID.
type EIP155Signer struct {
	chainID *big.Int
}

func NewEIP155Signer(chainID *big.Int) EIP155Signer {
	if chainID == nil {
		chainID = new(big.Int)
	}
	return EIP155Signer{chainID: chainID}
}

func (s EIP155Signer) Equal(s2 Signer) bool {
	other, ok := s2.(EIP155Signer)
	return ok && other.chainID.Cmp(s.chainID) == 0
}

type eip155SigningData struct {
	AccountNonce uint64
	Price        *big.Int
	GasLimit     uint64
	Recipient    *common.Address `rlp:"nil"`
	Amount       *big.Int
	Payload      []byte
	ChainID      *big.Int
	EmptyOne     uint64
	EmptyTwo     uint64
}

func (s EIP155Signer) Hash(tx *Transaction) common.Hash {
	f := tx.signingFields()
	enc, err := rlp.EncodeToBytes(eip155SigningData{
		AccountNonce: f.AccountNonce, Price: f.Price, GasLimit: f.GasLimit,
		Recipient: f.Recipient, Amount: f.Amount, Payload: f.Payload,
		ChainID: s.chainID, EmptyOne: 0, EmptyTwo: 0,
	})
	if err != nil {
		panic("types: cannot hash transaction for signing: " + err.Error())
	}
	return crypto.Keccak256Hash(enc)
}

func (s EIP155Signer) SignatureValues(tx *Transaction, sig []byte) (r, sVal, v *big.Int, err error) {
	r, sVal, v, err = decodeSignature(sig)
	if err != nil {
		return nil, nil, nil, err
	}
	if s.chainID.Sign() != 0 {
		v = new(big.Int).Add(v, new(big.Int).Add(big.NewInt(35), new(big.Int).Mul(s.chainID, big.NewInt(2))))
	}
	return r, sVal, v, nil
}

func (s EIP155Signer) Sender(tx *Transaction) (common.Address, error) {
	v := new(big.Int).Set(tx.data.V)
	r, sv := tx.data.R, tx.data.S
	if s.chainID.Sign() != 0 {
		// Recover chain id from v = {0,1} + 35 + 2*chainID and verify it
		// matches the signer's configured chain id.
		if v.BitLen() > 64 {
			return common.Address{}, ErrInvalidChainID
		}
		vUint := v.Uint64()
		if vUint < 35 {
			return common.Address{}, ErrInvalidChainID
		}
		recovered := new(big.Int).SetUint64((vUint - 35) / 2)
		if recovered.Cmp(s.chainID) != 0 {
			return common.Address{}, ErrInvalidChainID
		}
		v = new(big.Int).SetUint64((vUint - 35) % 2)
	}
	if !crypto.ValidateSignatureValues(byte(v.Uint64()), r, sv, true) {
		return common.Address{}, ErrInvalidSig
	}
	sighash := s.Hash(tx)
	return recoverSender(sighash, r, sv, v)
}

func decodeSignature(sig []byte) (r, s, v *big.Int, err error) {
	if len(sig) != 65 {
		return nil, nil, nil, ErrInvalidSig
	}
	r = new(big.Int).SetBytes(sig[:32])
	s = new(big.Int).SetBytes(sig[32:64])
	v = new(big.Int).SetBytes([]byte{sig[64]})
	return r, s, v, nil
}

func recoverSender(sighash common.Hash, r, s, v *big.Int) (common.Address, error) {
	sig := make([]byte, 65)
	copy(sig[0:32], leftPad(r.Bytes(), 32))
	copy(sig[32:64], leftPad(s.Bytes(), 32))
	sig[64] = byte(v.Uint64())
	addr, err := crypto.SigToAddress(sighash.Bytes(), sig)
	if err != nil {
		return common.Address{}, err
	}
	return addr, nil
}

func leftPad(b []byte, n int) []byte {
	if len(b) >= n {
		return b[len(b)-n:]
	}
	out := make([]byte, n)
	copy(out[n-len(b):], b)
	return out
}
