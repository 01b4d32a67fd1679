package ledger

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/core/ports"
)

// Transaction is an ordered list of instructions executed all-or-nothing,
// together with the signatures of every account flagged as signer.
type Transaction struct {
	ID           uuid.UUID
	Instructions []ports.Instruction
	Signatures   map[solana.PublicKey]solana.Signature
}

// NewTransaction returns a new unsigned transaction with a random id.
func NewTransaction(instructions ...ports.Instruction) *Transaction {
	return &Transaction{
		ID:           uuid.New(),
		Instructions: instructions,
		Signatures:   make(map[solana.PublicKey]solana.Signature),
	}
}

// Message returns the bytes signed by the transaction signers. It commits to
// the id and to every instruction, account privileges included.
func (t *Transaction) Message() []byte {
	buf := bytes.NewBuffer(nil)
	buf.Write(t.ID[:])
	writeUint32(buf, uint32(len(t.Instructions)))

	for _, ix := range t.Instructions {
		buf.Write(ix.ProgramID[:])
		writeUint32(buf, uint32(len(ix.Accounts)))
		for _, meta := range ix.Accounts {
			buf.Write(meta.PublicKey[:])
			var flags byte
			if meta.IsSigner {
				flags |= 1
			}
			if meta.IsWritable {
				flags |= 2
			}
			buf.WriteByte(flags)
		}
		writeUint32(buf, uint32(len(ix.Data)))
		buf.Write(ix.Data)
	}

	return buf.Bytes()
}

// Signers returns the distinct keys flagged as signer by any instruction, in
// order of appearance.
func (t *Transaction) Signers() []solana.PublicKey {
	signers := make([]solana.PublicKey, 0)
	seen := make(map[solana.PublicKey]bool)
	for _, ix := range t.Instructions {
		for _, meta := range ix.Accounts {
			if meta.IsSigner && !seen[meta.PublicKey] {
				seen[meta.PublicKey] = true
				signers = append(signers, meta.PublicKey)
			}
		}
	}
	return signers
}

// Sign adds the signature of every given key to the transaction. It must be
// called once all instructions are set.
func (t *Transaction) Sign(keys ...solana.PrivateKey) error {
	msg := t.Message()
	for _, key := range keys {
		sig, err := key.Sign(msg)
		if err != nil {
			return fmt.Errorf("failed to sign transaction: %w", err)
		}
		t.Signatures[key.PublicKey()] = sig
	}
	return nil
}

// Verify checks that every signer signed the transaction message.
func (t *Transaction) Verify() error {
	if len(t.Instructions) == 0 {
		return ErrNoInstructions
	}

	msg := t.Message()
	for _, signer := range t.Signers() {
		sig, ok := t.Signatures[signer]
		if !ok || !sig.Verify(signer, msg) {
			return fmt.Errorf("%w: %s", domain.ErrMissingRequiredSignature, signer)
		}
	}
	return nil
}

// accountKeys returns the distinct accounts referenced by the transaction in
// order of appearance, along with whether any instruction marks them
// writable.
func (t *Transaction) accountKeys() ([]solana.PublicKey, map[solana.PublicKey]bool) {
	keys := make([]solana.PublicKey, 0)
	writable := make(map[solana.PublicKey]bool)
	for _, ix := range t.Instructions {
		for _, meta := range ix.Accounts {
			isWritable, ok := writable[meta.PublicKey]
			if !ok {
				keys = append(keys, meta.PublicKey)
			}
			writable[meta.PublicKey] = isWritable || meta.IsWritable
		}
	}
	return keys, writable
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
