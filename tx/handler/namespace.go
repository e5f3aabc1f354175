package handler

import (
	"context"

	"github.com/TaoGe96/vetoken/state"
	"github.com/TaoGe96/vetoken/tx"
	"github.com/TaoGe96/vetoken/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

type InitNamespaceTxHandler struct {
	logger cmtlog.Logger
}

func NewInitNamespaceTxHandler(logger cmtlog.Logger) *InitNamespaceTxHandler {
	return &InitNamespaceTxHandler{logger: logger.With("module", "initNamespaceTx")}
}

func namespaceFromTx(ntx *tx.InitNamespaceTx) *types.Namespace {
	return &types.Namespace{
		SecurityCouncil:                 ntx.SecurityCouncil,
		ReviewCouncil:                   ntx.ReviewCouncil,
		OverrideNow:                     ntx.OverrideNow,
		LockupDefaultTargetRewardsPct:   ntx.LockupDefaultTargetRewardsPct,
		LockupDefaultTargetVotingPct:    ntx.LockupDefaultTargetVotingPct,
		LockupMinDuration:               ntx.LockupMinDuration,
		LockupMinAmount:                 ntx.LockupMinAmount,
		LockupMaxSaturation:             ntx.LockupMaxSaturation,
		ProposalMinVotingPowerForQuorum: ntx.ProposalMinVotingPowerForQuorum,
		ProposalMinPassPct:              ntx.ProposalMinPassPct,
		ProposalCanUpdateAfterVotes:     ntx.ProposalCanUpdateAfterVotes,
	}
}

func (h *InitNamespaceTxHandler) Check(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ResponseCheckTx, err error) {
	res = &abcitypes.ResponseCheckTx{Code: 0}
	ntx := btx.Tx.(*tx.InitNamespaceTx)
	_, err1 := st.InitNamespace(Sender(btx), namespaceFromTx(ntx), true)
	if err1 != nil {
		h.logger.Info("CheckTx InitNamespaceTx fail", "err", err1)
		res.Code = 1
		res.Log = err1.Error()
	}
	return
}

func (h *InitNamespaceTxHandler) NewContext(ctx context.Context) {}

func (h *InitNamespaceTxHandler) Process(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ExecTxResult, err error) {
	ntx := btx.Tx.(*tx.InitNamespaceTx)
	addr, err := st.InitNamespace(Sender(btx), namespaceFromTx(ntx), false)
	if err != nil {
		return nil, err
	}
	event := &types.EventInitNamespace{
		Namespace: addr.Hex(),
		Deployer:  Sender(btx).Hex(),
	}
	res = &abcitypes.ExecTxResult{
		Log:    addr.Hex(),
		Events: []abcitypes.Event{types.EncodeEventInitNamespace(event)},
	}
	return
}
