package handler

import (
	"context"

	"github.com/TaoGe96/vetoken/state"
	"github.com/TaoGe96/vetoken/tx"
	"github.com/TaoGe96/vetoken/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

type InitProposalTxHandler struct {
	logger cmtlog.Logger
}

func NewInitProposalTxHandler(logger cmtlog.Logger) (h *InitProposalTxHandler) {
	h = &InitProposalTxHandler{logger: logger.With("module", "proposalTx")}
	return
}

func (h *InitProposalTxHandler) Check(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ResponseCheckTx, err error) {
	res = &abcitypes.ResponseCheckTx{Code: 0}
	ptx := btx.Tx.(*tx.InitProposalTx)
	_, err1 := st.InitProposal(Sender(btx), ptx.ProposalNonce, ptx.Uri, ptx.StartTs, ptx.EndTs, true)
	if err1 != nil {
		h.logger.Info("CheckTx InitProposalTx fail", "err", err1)
		res.Code = 1
		res.Log = err1.Error()
	}
	return
}

func (h *InitProposalTxHandler) NewContext(ctx context.Context) {}

func (h *InitProposalTxHandler) Process(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ExecTxResult, err error) {
	ptx := btx.Tx.(*tx.InitProposalTx)
	event, err := st.InitProposal(Sender(btx), ptx.ProposalNonce, ptx.Uri, ptx.StartTs, ptx.EndTs, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{
		Events: []abcitypes.Event{types.EncodeEventProposal(event)},
	}
	return
}

type UpdateProposalTxHandler struct {
	logger cmtlog.Logger
}

func NewUpdateProposalTxHandler(logger cmtlog.Logger) (h *UpdateProposalTxHandler) {
	h = &UpdateProposalTxHandler{logger: logger.With("module", "updateProposalTx")}
	return
}

func (h *UpdateProposalTxHandler) Check(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ResponseCheckTx, err error) {
	res = &abcitypes.ResponseCheckTx{Code: 0}
	ptx := btx.Tx.(*tx.UpdateProposalTx)
	_, err1 := st.UpdateProposal(Sender(btx), ptx.Proposal, ptx.Uri, ptx.StartTs, ptx.EndTs, true)
	if err1 != nil {
		h.logger.Info("CheckTx UpdateProposalTx fail", "err", err1)
		res.Code = 1
		res.Log = err1.Error()
	}
	return
}

func (h *UpdateProposalTxHandler) NewContext(ctx context.Context) {}

func (h *UpdateProposalTxHandler) Process(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ExecTxResult, err error) {
	ptx := btx.Tx.(*tx.UpdateProposalTx)
	event, err := st.UpdateProposal(Sender(btx), ptx.Proposal, ptx.Uri, ptx.StartTs, ptx.EndTs, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{
		Events: []abcitypes.Event{types.EncodeEventProposal(event)},
	}
	return
}

type VoteTxHandler struct {
	logger cmtlog.Logger
}

func NewVoteTxHandler(logger cmtlog.Logger) (h *VoteTxHandler) {
	h = &VoteTxHandler{logger: logger.With("module", "voteTx")}
	return
}

func (h *VoteTxHandler) Check(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ResponseCheckTx, err error) {
	res = &abcitypes.ResponseCheckTx{Code: 0}
	vtx := btx.Tx.(*tx.VoteTx)
	_, err1 := st.Vote(Sender(btx), vtx.Proposal, vtx.Choice, true)
	if err1 != nil {
		h.logger.Info("CheckTx VoteTx fail", "err", err1)
		res.Code = 1
		res.Log = err1.Error()
	}
	return
}

func (h *VoteTxHandler) NewContext(ctx context.Context) {}

func (h *VoteTxHandler) Process(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ExecTxResult, err error) {
	vtx := btx.Tx.(*tx.VoteTx)
	event, err := st.Vote(Sender(btx), vtx.Proposal, vtx.Choice, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{
		Events: []abcitypes.Event{types.EncodeEventVote(event)},
	}
	return
}
