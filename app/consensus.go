package app

import (
	"context"
	"errors"

	"github.com/TaoGe96/vetoken/state"
	"github.com/TaoGe96/vetoken/tx"
	"github.com/TaoGe96/vetoken/tx/handler"
	abcitypes "github.com/cometbft/cometbft/abci/types"
)

var (
	ErrUnexpectedTxProcess = errors.New("unexpected tx process")
)

func (app *VetokenApp) getState() (st *state.State) {
	st = app.db.NewState()
	app.st = st
	return
}

func (app *VetokenApp) parseTx(st *state.State, txDat []byte, allowNonceGap bool) (btx *tx.VetokenTx, auth state.AuthSet, err error) {
	btx, err = tx.UnmarshalVetokenTx(txDat)
	if err != nil {
		return
	}
	auth, err = st.Verify(btx, allowNonceGap)
	return
}

func (app *VetokenApp) CheckTx(ctx context.Context, check *abcitypes.RequestCheckTx) (res *abcitypes.ResponseCheckTx, err error) {
	res = &abcitypes.ResponseCheckTx{Code: 0}
	btx, auth, err := app.parseTx(app.db.State(), check.Tx, true)
	if err != nil {
		app.logger.Info("check tx parse fail", "err", err)
		res.Code = 1
		res.Log = err.Error()
		err = nil
		return
	}
	h, ok := app.txHdlrs[btx.Type]
	if !ok {
		app.logger.Info("check tx unsupported type", "type", btx.Type)
		res.Code = 1
		res.Log = tx.ErrUnsupportedTxType.Error()
		return
	}
	res, err = h.Check(ctx, app.db.State(), btx, auth)
	if err != nil {
		app.logger.Error("check tx fail", "err", err)
		res.Code = 1
		res.Log = err.Error()
		err = nil
	}
	return
}

// PrepareProposal filters the mempool batch through a cloned state so
// only txs that would execute make the block.
func (app *VetokenApp) PrepareProposal(ctx context.Context, proposal *abcitypes.RequestPrepareProposal) (res *abcitypes.ResponsePrepareProposal, err error) {
	st := app.getState()
	st.SetBlockTime(proposal.Time.Unix())
	for _, h := range app.txHdlrs {
		h.NewContext(ctx)
	}
	txs := make([][]byte, 0, len(proposal.Txs))
	for _, stx := range proposal.Txs {
		stTmp := st.Clone()
		btx, auth, err := app.parseTx(stTmp, stx, false)
		if err != nil {
			app.logger.Info("prepare skip tx, parse fail", "err", err)
			continue
		}
		h, ok := app.txHdlrs[btx.Type]
		if !ok {
			app.logger.Info("prepare skip tx, unsupported type", "type", btx.Type)
			continue
		}
		result, err := h.Process(ctx, stTmp, btx, auth)
		if err != nil {
			app.logger.Info("prepare skip tx", "type", btx.Type, "err", err)
			continue
		}
		if result == nil || result.Code != 0 {
			app.logger.Info("prepare skip tx, bad result", "type", btx.Type)
			continue
		}
		if err = stTmp.BumpNonce(handler.Sender(btx)); err != nil {
			app.logger.Error("prepare bump nonce fail", "err", err)
			continue
		}
		st = stTmp
		app.st = st
		txs = append(txs, stx)
	}
	return &abcitypes.ResponsePrepareProposal{Txs: txs}, nil
}

func (app *VetokenApp) process(ctx context.Context, st *state.State, txs [][]byte) (res []*abcitypes.ExecTxResult, err error) {
	for _, h := range app.txHdlrs {
		h.NewContext(ctx)
	}
	res = make([]*abcitypes.ExecTxResult, len(txs))
	for i, stx := range txs {
		btx, auth, err := app.parseTx(st, stx, false)
		if err != nil {
			app.logger.Error("unexpected tx, parse fail", "err", err)
			return nil, err
		}
		h, ok := app.txHdlrs[btx.Type]
		if !ok {
			app.logger.Error("unexpected tx, no handler", "type", btx.Type)
			return nil, ErrUnexpectedTxProcess
		}
		result, err := h.Process(ctx, st, btx, auth)
		if err != nil {
			app.logger.Error("unexpected process tx fail", "type", btx.Type, "err", err)
			return nil, ErrUnexpectedTxProcess
		}
		if result == nil || result.Code != 0 {
			app.logger.Error("unexpected process tx result", "type", btx.Type)
			return nil, ErrUnexpectedTxProcess
		}
		if err = st.BumpNonce(handler.Sender(btx)); err != nil {
			app.logger.Error("bump nonce fail", "err", err)
			return nil, err
		}
		res[i] = result
	}
	return res, nil
}

func (app *VetokenApp) ProcessProposal(ctx context.Context, proposal *abcitypes.RequestProcessProposal) (res *abcitypes.ResponseProcessProposal, err error) {
	res = &abcitypes.ResponseProcessProposal{Status: abcitypes.ResponseProcessProposal_REJECT}
	if len(proposal.Txs) == 0 {
		res.Status = abcitypes.ResponseProcessProposal_ACCEPT
		return res, nil
	}
	st := app.getState()
	st.SetBlockTime(proposal.Time.Unix())
	_, err = app.process(ctx, st, proposal.Txs)
	if err != nil {
		app.logger.Error("process proposal fail", "height", proposal.Height, "err", err)
		return res, nil
	}
	res.Status = abcitypes.ResponseProcessProposal_ACCEPT
	return res, nil
}

func (app *VetokenApp) FinalizeBlock(ctx context.Context, req *abcitypes.RequestFinalizeBlock) (*abcitypes.ResponseFinalizeBlock, error) {
	app.logger.Info("FinalizeBlock", "height", req.Height)
	app.lastBlk.Set(req)
	st := app.getState()
	st.SetBlockTime(req.Time.Unix())
	res, err := app.process(ctx, st, req.Txs)
	if err != nil {
		return nil, err
	}
	h, err := st.Update()
	if err != nil {
		app.logger.Error("state update hash fail", "err", err)
		return nil, err
	}
	return &abcitypes.ResponseFinalizeBlock{
		TxResults: res,
		AppHash:   h.Bytes(),
	}, nil
}

func (app *VetokenApp) Commit(ctx context.Context, commit *abcitypes.RequestCommit) (*abcitypes.ResponseCommit, error) {
	_, err := app.db.SetState(app.st)
	if err != nil {
		return nil, err
	}
	app.st = nil
	app.logger.Info("Commit")
	return &abcitypes.ResponseCommit{}, nil
}
