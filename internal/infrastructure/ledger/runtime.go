package ledger

import (
	"bytes"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/core/ports"
)

const maxInvokeDepth = 4

// workingAccount is an account loaded by a transaction. Its state is shared
// by every account reference of every instruction of the transaction.
type workingAccount struct {
	state    *ports.AccountState
	loaded   domain.Account
	writable bool
}

func (a *workingAccount) isModified() bool {
	return a.state.Lamports != a.loaded.Lamports ||
		!a.state.Owner.Equals(a.loaded.Owner) ||
		!bytes.Equal(a.state.Data, a.loaded.Data) ||
		a.state.Executable != a.loaded.Executable
}

// workingSet holds the state of the accounts of a transaction while being
// executed. Nothing is persisted until the whole transaction succeeds.
type workingSet struct {
	ledger   *Ledger
	keys     []solana.PublicKey
	accounts map[solana.PublicKey]*workingAccount
}

func (w *workingSet) execute(tx *Transaction) error {
	for i, ix := range tx.Instructions {
		infos := make([]*ports.AccountInfo, 0, len(ix.Accounts))
		for _, meta := range ix.Accounts {
			account := w.accounts[meta.PublicKey]
			infos = append(infos, &ports.AccountInfo{
				Key:          meta.PublicKey,
				IsSigner:     meta.IsSigner,
				IsWritable:   meta.IsWritable,
				AccountState: account.state,
			})
		}

		if err := w.process(ix.ProgramID, infos, ix.Data, 0); err != nil {
			return fmt.Errorf("instruction %d failed: %w", i, err)
		}
	}
	return nil
}

// modifiedAccounts returns the writable accounts changed by the transaction.
func (w *workingSet) modifiedAccounts() []domain.Account {
	accounts := make([]domain.Account, 0)
	for _, key := range w.keys {
		account := w.accounts[key]
		if !account.writable || !account.isModified() {
			continue
		}
		accounts = append(accounts, domain.Account{
			Address:    key,
			Lamports:   account.state.Lamports,
			Owner:      account.state.Owner,
			Data:       account.state.Data,
			Executable: account.state.Executable,
		}.Copy())
	}
	return accounts
}

func (w *workingSet) process(
	programID solana.PublicKey, infos []*ports.AccountInfo, data []byte,
	depth int,
) error {
	program, ok := w.ledger.programs[programID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProgram, programID)
	}
	w.ledger.metrics.instructionProcessed(programName(programID))

	f := newFrame(programID, infos)
	inv := &invocation{set: w, frame: f, accounts: infos, depth: depth}
	if err := program.Process(inv, data); err != nil {
		return err
	}
	return f.verify()
}

type snapshot struct {
	lamports   uint64
	owner      solana.PublicKey
	data       []byte
	executable bool
}

func takeSnapshot(state *ports.AccountState) snapshot {
	data := make([]byte, len(state.Data))
	copy(data, state.Data)
	return snapshot{state.Lamports, state.Owner, data, state.Executable}
}

type frameAccount struct {
	state    *ports.AccountState
	signer   bool
	writable bool
	pre      snapshot
}

// frame tracks the accounts of a single program invocation to check that the
// program only changed what it is allowed to.
type frame struct {
	programID solana.PublicKey
	keys      []solana.PublicKey
	accounts  map[solana.PublicKey]*frameAccount
}

func newFrame(programID solana.PublicKey, infos []*ports.AccountInfo) *frame {
	f := &frame{
		programID: programID,
		keys:      make([]solana.PublicKey, 0, len(infos)),
		accounts:  make(map[solana.PublicKey]*frameAccount),
	}
	for _, info := range infos {
		account, ok := f.accounts[info.Key]
		if !ok {
			account = &frameAccount{
				state: info.AccountState,
				pre:   takeSnapshot(info.AccountState),
			}
			f.accounts[info.Key] = account
			f.keys = append(f.keys, info.Key)
		}
		account.signer = account.signer || info.IsSigner
		account.writable = account.writable || info.IsWritable
	}
	return f
}

// refresh takes new snapshots of all accounts, once the changes made so far
// have been verified.
func (f *frame) refresh() {
	for _, account := range f.accounts {
		account.pre = takeSnapshot(account.state)
	}
}

func (f *frame) verify() error {
	var preTotal, postTotal uint64

	for _, key := range f.keys {
		account := f.accounts[key]
		pre, post := account.pre, account.state
		preTotal += pre.lamports
		postTotal += post.Lamports

		ownerChanged := !pre.owner.Equals(post.Owner)
		dataChanged := !bytes.Equal(pre.data, post.Data)
		lamportsChanged := pre.lamports != post.Lamports
		if !ownerChanged && !dataChanged && !lamportsChanged &&
			pre.executable == post.Executable {
			continue
		}

		ownedByProgram := pre.owner.Equals(f.programID)
		switch {
		case !account.writable:
			return fmt.Errorf("%w: %s", domain.ErrReadonlyAccountModified, key)
		case pre.executable != post.Executable:
			return fmt.Errorf("%w: %s", domain.ErrReadonlyAccountModified, key)
		case ownerChanged && !ownedByProgram:
			return fmt.Errorf("%w: %s", ErrModifiedProgramID, key)
		case dataChanged && !ownedByProgram:
			return fmt.Errorf("%w: %s", ErrExternalAccountDataModified, key)
		case post.Lamports < pre.lamports && !ownedByProgram:
			return fmt.Errorf("%w: %s", ErrExternalAccountLamportSpend, key)
		}
	}

	if preTotal != postTotal {
		return ErrUnbalancedInstruction
	}
	return nil
}

// invocation implements ports.Invocation.
type invocation struct {
	set      *workingSet
	frame    *frame
	accounts []*ports.AccountInfo
	depth    int
}

func (i *invocation) ProgramID() solana.PublicKey {
	return i.frame.programID
}

func (i *invocation) Accounts() []*ports.AccountInfo {
	return i.accounts
}

func (i *invocation) TokenService() ports.TokenService {
	return &tokenService{i}
}

func (i *invocation) FundingService() ports.FundingService {
	return &fundingService{i, i.set.ledger.rent}
}

func (i *invocation) Invoke(ix ports.Instruction, signerSeeds ...[][]byte) error {
	if i.depth+1 >= maxInvokeDepth {
		return ErrMaxInvokeDepth
	}

	infos := make([]*ports.AccountInfo, 0, len(ix.Accounts))
	for _, meta := range ix.Accounts {
		caller, ok := i.frame.accounts[meta.PublicKey]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingAccount, meta.PublicKey)
		}
		if meta.IsWritable && !caller.writable {
			return fmt.Errorf("%w: %s", ErrPrivilegeEscalation, meta.PublicKey)
		}
		if meta.IsSigner && !caller.signer &&
			!isSignedBy(i.frame.programID, meta.PublicKey, signerSeeds) {
			return fmt.Errorf(
				"%w: %s", domain.ErrMissingRequiredSignature, meta.PublicKey,
			)
		}
		infos = append(infos, &ports.AccountInfo{
			Key:          meta.PublicKey,
			IsSigner:     meta.IsSigner,
			IsWritable:   meta.IsWritable,
			AccountState: caller.state,
		})
	}

	// Changes made by the caller so far are checked before being handed
	// over to the callee.
	if err := i.frame.verify(); err != nil {
		return err
	}
	if err := i.set.process(ix.ProgramID, infos, ix.Data, i.depth+1); err != nil {
		return err
	}
	i.frame.refresh()
	return nil
}

func isSignedBy(
	programID, address solana.PublicKey, signerSeeds [][][]byte,
) bool {
	for _, seeds := range signerSeeds {
		if domain.IsSignedBy(programID, address, seeds) {
			return true
		}
	}
	return false
}
