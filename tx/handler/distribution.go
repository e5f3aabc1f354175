package handler

import (
	"context"

	"github.com/TaoGe96/vetoken/state"
	"github.com/TaoGe96/vetoken/tx"
	"github.com/TaoGe96/vetoken/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

type InitDistributionTxHandler struct {
	logger cmtlog.Logger
}

func NewInitDistributionTxHandler(logger cmtlog.Logger) (h *InitDistributionTxHandler) {
	h = &InitDistributionTxHandler{logger: logger.With("module", "distributionTx")}
	return
}

func (h *InitDistributionTxHandler) Check(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ResponseCheckTx, err error) {
	res = &abcitypes.ResponseCheckTx{Code: 0}
	dtx := btx.Tx.(*tx.InitDistributionTx)
	_, err1 := st.InitDistribution(dtx.Uuid, dtx.Cosigner1, dtx.Cosigner2, dtx.StartTs, true)
	if err1 != nil {
		h.logger.Info("CheckTx InitDistributionTx fail", "err", err1)
		res.Code = 1
		res.Log = err1.Error()
	}
	return
}

func (h *InitDistributionTxHandler) NewContext(ctx context.Context) {}

func (h *InitDistributionTxHandler) Process(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ExecTxResult, err error) {
	dtx := btx.Tx.(*tx.InitDistributionTx)
	event, err := st.InitDistribution(dtx.Uuid, dtx.Cosigner1, dtx.Cosigner2, dtx.StartTs, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{
		Events: []abcitypes.Event{types.EncodeEventDistribution(event)},
	}
	return
}

type ClaimTxHandler struct {
	logger cmtlog.Logger
}

func NewClaimTxHandler(logger cmtlog.Logger) (h *ClaimTxHandler) {
	h = &ClaimTxHandler{logger: logger.With("module", "claimTx")}
	return
}

func (h *ClaimTxHandler) Check(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ResponseCheckTx, err error) {
	res = &abcitypes.ResponseCheckTx{Code: 0}
	dtx := btx.Tx.(*tx.ClaimFromDistributionTx)
	_, err1 := st.ClaimFromDistribution(auth, dtx.Distribution, dtx.Claimant, dtx.Amount, dtx.CosignedMsg, true)
	if err1 != nil {
		h.logger.Info("CheckTx ClaimFromDistributionTx fail", "err", err1)
		res.Code = 1
		res.Log = err1.Error()
	}
	return
}

func (h *ClaimTxHandler) NewContext(ctx context.Context) {}

func (h *ClaimTxHandler) Process(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ExecTxResult, err error) {
	dtx := btx.Tx.(*tx.ClaimFromDistributionTx)
	event, err := st.ClaimFromDistribution(auth, dtx.Distribution, dtx.Claimant, dtx.Amount, dtx.CosignedMsg, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{
		Events: []abcitypes.Event{types.EncodeEventClaim(event)},
	}
	return
}

type UpdateDistributionTxHandler struct {
	logger cmtlog.Logger
}

func NewUpdateDistributionTxHandler(logger cmtlog.Logger) (h *UpdateDistributionTxHandler) {
	h = &UpdateDistributionTxHandler{logger: logger.With("module", "updateDistributionTx")}
	return
}

func (h *UpdateDistributionTxHandler) Check(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ResponseCheckTx, err error) {
	res = &abcitypes.ResponseCheckTx{Code: 0}
	dtx := btx.Tx.(*tx.UpdateDistributionTx)
	_, err1 := st.UpdateDistribution(Sender(btx), dtx.Distribution, dtx.StartTs, true)
	if err1 != nil {
		h.logger.Info("CheckTx UpdateDistributionTx fail", "err", err1)
		res.Code = 1
		res.Log = err1.Error()
	}
	return
}

func (h *UpdateDistributionTxHandler) NewContext(ctx context.Context) {}

func (h *UpdateDistributionTxHandler) Process(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ExecTxResult, err error) {
	dtx := btx.Tx.(*tx.UpdateDistributionTx)
	event, err := st.UpdateDistribution(Sender(btx), dtx.Distribution, dtx.StartTs, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{
		Events: []abcitypes.Event{types.EncodeEventDistribution(event)},
	}
	return
}

type WithdrawDistributionTxHandler struct {
	logger cmtlog.Logger
}

func NewWithdrawDistributionTxHandler(logger cmtlog.Logger) (h *WithdrawDistributionTxHandler) {
	h = &WithdrawDistributionTxHandler{logger: logger.With("module", "withdrawDistributionTx")}
	return
}

func (h *WithdrawDistributionTxHandler) Check(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ResponseCheckTx, err error) {
	res = &abcitypes.ResponseCheckTx{Code: 0}
	dtx := btx.Tx.(*tx.WithdrawFromDistributionTx)
	_, err1 := st.WithdrawFromDistribution(Sender(btx), dtx.Distribution, dtx.Recipient, true)
	if err1 != nil {
		h.logger.Info("CheckTx WithdrawFromDistributionTx fail", "err", err1)
		res.Code = 1
		res.Log = err1.Error()
	}
	return
}

func (h *WithdrawDistributionTxHandler) NewContext(ctx context.Context) {}

func (h *WithdrawDistributionTxHandler) Process(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ExecTxResult, err error) {
	dtx := btx.Tx.(*tx.WithdrawFromDistributionTx)
	event, err := st.WithdrawFromDistribution(Sender(btx), dtx.Distribution, dtx.Recipient, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{
		Events: []abcitypes.Event{types.EncodeEventWithdraw(event)},
	}
	return
}
