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
	"errors"
	"io"
	"math/big"

	"github.com/hardentoo/etclient/common"
	"github.com/hardentoo/etclient/crypto"
	"github.com/hardentoo/etclient/rlp"
)

var (
	ErrInvalidSig    = errors.New("types: invalid transaction signature")
	ErrInvalidChainID = errors.New("types: invalid chain id for signer")
)

// txdata is the RLP-encoded body of a transaction; field order is significant.
type txdata struct {
	AccountNonce uint64
	Price        *big.Int
	GasLimit     uint64
	Recipient    *common.Address `rlp:"nil"` // nil means contract creation
	Amount       *big.Int
	Payload      []byte
	V            *big.Int
	R            *big.Int
	S            *big.Int
}

// Transaction is an Ethereum-style transaction: a nonce, a gas price and
// limit, a destination (or contract creation), a value, input data, and a
// (v, r, s) signature.
type Transaction struct {
	data txdata
	hash *common.Hash
}

func NewTransaction(nonce uint64, to common.Address, amount *big.Int, gasLimit uint64, gasPrice *big.Int, data []byte) *Transaction {
	return newTransaction(nonce, &to, amount, gasLimit, gasPrice, data)
}

func NewContractCreation(nonce uint64, amount *big.Int, gasLimit uint64, gasPrice *big.Int, data []byte) *Transaction {
	return newTransaction(nonce, nil, amount, gasLimit, gasPrice, data)
}

func newTransaction(nonce uint64, to *common.Address, amount *big.Int, gasLimit uint64, gasPrice *big.Int, data []byte) *Transaction {
	if amount == nil {
		amount = new(big.Int)
	}
	if gasPrice == nil {
		gasPrice = new(big.Int)
	}
	return &Transaction{data: txdata{
		AccountNonce: nonce,
		Recipient:    to,
		Payload:      common.CopyBytes(data),
		Amount:       new(big.Int).Set(amount),
		GasLimit:     gasLimit,
		Price:        new(big.Int).Set(gasPrice),
		V:            new(big.Int),
		R:            new(big.Int),
		S:            new(big.Int),
	}}
}

func (tx *Transaction) Nonce() uint64         { return tx.data.AccountNonce }
func (tx *Transaction) GasPrice() *big.Int    { return tx.data.Price }
func (tx *Transaction) Gas() uint64           { return tx.data.GasLimit }
func (tx *Transaction) Value() *big.Int       { return tx.data.Amount }
func (tx *Transaction) Data() []byte          { return tx.data.Payload }
func (tx *Transaction) To() *common.Address   { return tx.data.Recipient }
func (tx *Transaction) RawSignatureValues() (v, r, s *big.Int) {
	return tx.data.V, tx.data.R, tx.data.S
}

// WithSignature returns a new transaction with the given signer's (v, r, s) applied.
func (tx *Transaction) WithSignature(signer Signer, sig []byte) (*Transaction, error) {
	r, s, v, err := signer.SignatureValues(tx, sig)
	if err != nil {
		return nil, err
	}
	cp := tx.data
	cp.R, cp.S, cp.V = r, s, v
	return &Transaction{data: cp}, nil
}

// Hash returns the transaction's RLP hash, used as its identity.
func (tx *Transaction) Hash() common.Hash {
	if tx.hash != nil {
		return *tx.hash
	}
	enc, err := rlp.EncodeToBytes(&tx.data)
	if err != nil {
		panic("types: transaction is not RLP-encodable: " + err.Error())
	}
	h := crypto.Keccak256Hash(enc)
	tx.hash = &h
	return h
}

// EncodeRLP implements rlp.Encoder so a *Transaction can be RLP-encoded
// directly (its unexported fields would otherwise be invisible to the
// reflection-based encoder).
func (tx *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &tx.data)
}

// DecodeRLP implements rlp.Decoder, the counterpart to EncodeRLP: without
// it the reflection-based decoder would skip tx's unexported fields
// entirely and silently leave tx empty.
func (tx *Transaction) DecodeRLP(raw []byte) error {
	var data txdata
	if err := rlp.DecodeBytes(raw, &data); err != nil {
		return err
	}
	tx.data = data
	tx.hash = nil
	return nil
}

// intrinsicData is the portion of txdata that is hashed when producing the
// signature; it is everything except V, R, S themselves, plus any signer-
// supplied replay-protection augmentation (see Signer.Hash).
type intrinsicData struct {
	AccountNonce uint64
	Price        *big.Int
	GasLimit     uint64
	Recipient    *common.Address `rlp:"nil"`
	Amount       *big.Int
	Payload      []byte
}

func (tx *Transaction) signingFields() intrinsicData {
	return intrinsicData{
		AccountNonce: tx.data.AccountNonce,
		Price:        tx.data.Price,
		GasLimit:     tx.data.GasLimit,
		Recipient:    tx.data.Recipient,
		Amount:       tx.data.Amount,
		Payload:      tx.data.Payload,
	}
}

// Message is the validated, VM-ready projection of a transaction: a
// recovered sender, resolved recipient (nil for contract creation), and
// the transaction's economic fields.
type Message struct {
	From       common.Address
	To         *common.Address
	Nonce      uint64
	Value      *big.Int
	GasLimit   uint64
	GasPrice   *big.Int
	Data       []byte
	CheckNonce bool
}

func NewMessage(from common.Address, to *common.Address, nonce uint64, amount *big.Int, gasLimit uint64, gasPrice *big.Int, data []byte, checkNonce bool) Message {
	return Message{
		From: from, To: to, Nonce: nonce, Value: amount,
		GasLimit: gasLimit, GasPrice: gasPrice, Data: data, CheckNonce: checkNonce,
	}
}

// AsMessage recovers the sender under signer and produces the Message the
// VM executes. This is the `to_valid` step of spec.md §4.3: any failure
// here must fail the whole block, not just this transaction.
func (tx *Transaction) AsMessage(signer Signer) (Message, error) {
	from, err := signer.Sender(tx)
	if err != nil {
		return Message{}, err
	}
	return Message{
		From: from, To: tx.data.Recipient, Nonce: tx.data.AccountNonce,
		Value: tx.data.Amount, GasLimit: tx.data.GasLimit, GasPrice: tx.data.Price,
		Data: tx.data.Payload, CheckNonce: true,
	}, nil
}

// IntrinsicGas returns the gas floor a transaction must cover before any
// execution: the fixed per-transaction floor plus a per-byte input cost
// that the active patch's signature/VM rules may adjust (e.g. EIP-2028's
// cheaper non-zero byte cost is out of scope here; EIP-150/160 scope is
// limited to the call-gas and state-clearing changes spec.md names).
func IntrinsicGas(data []byte, isContractCreation bool, txGasFloor, txDataZeroGas, txDataNonZeroGas uint64) uint64 {
	gas := txGasFloor
	if isContractCreation {
		gas += 32000
	}
	for _, b := range data {
		if b == 0 {
			gas += txDataZeroGas
		} else {
			gas += txDataNonZeroGas
		}
	}
	return gas
}

// Transactions is an ordered list of transactions, used when deriving the
// block's transactions-root.
type Transactions []*Transaction
