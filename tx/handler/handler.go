package handler

import (
	"context"

	"github.com/TaoGe96/vetoken/state"
	"github.com/TaoGe96/vetoken/tx"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	"github.com/ethereum/go-ethereum/common"
)

// TxHandler executes one tx type against the state. Check validates
// without mutating; Process applies. NewContext resets any per-block
// bookkeeping before a batch.
type TxHandler interface {
	Check(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ResponseCheckTx, err error)
	NewContext(ctx context.Context)
	Process(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ExecTxResult, err error)
}

// Sender is the nonce-paying identity: the first signer.
func Sender(btx *tx.VetokenTx) (addr common.Address) {
	if len(btx.Signers) > 0 {
		return state.SignerAddress(btx.Signers[0])
	}
	return
}
