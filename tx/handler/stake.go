package handler

import (
	"context"

	"github.com/TaoGe96/vetoken/state"
	"github.com/TaoGe96/vetoken/tx"
	"github.com/TaoGe96/vetoken/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/common"
)

// StakeTxHandler covers both the self-stake and the stake-on-behalf tx
// types; they differ only in who the lockup owner is.
type StakeTxHandler struct {
	logger cmtlog.Logger

	ownerSet map[common.Address]bool
}

func NewStakeTxHandler(logger cmtlog.Logger) (h *StakeTxHandler) {
	h = &StakeTxHandler{
		logger:   logger.With("module", "stakeTx"),
		ownerSet: make(map[common.Address]bool),
	}
	return
}

func stakeArgs(btx *tx.VetokenTx) (owner common.Address, amount uint64, endTs int64) {
	switch stx := btx.Tx.(type) {
	case *tx.StakeTx:
		return Sender(btx), stx.Amount, stx.EndTs
	case *tx.StakeOnBehalfTx:
		return stx.Owner, stx.Amount, stx.EndTs
	}
	return
}

func (h *StakeTxHandler) Check(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ResponseCheckTx, err error) {
	res = &abcitypes.ResponseCheckTx{Code: 0}
	owner, amount, endTs := stakeArgs(btx)
	_, err1 := st.Stake(Sender(btx), owner, amount, endTs, true)
	if err1 != nil {
		h.logger.Info("CheckTx StakeTx fail", "err", err1)
		res.Code = 1
		res.Log = err1.Error()
	}
	return
}

func (h *StakeTxHandler) NewContext(ctx context.Context) {
	h.ownerSet = make(map[common.Address]bool)
}

func (h *StakeTxHandler) Process(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ExecTxResult, err error) {
	owner, amount, endTs := stakeArgs(btx)
	if h.ownerSet[owner] {
		// one lockup mutation per owner per block keeps the weighted
		// math order-independent
		return nil, state.ErrRecordAlreadyExists
	}
	event, err := st.Stake(Sender(btx), owner, amount, endTs, false)
	if err != nil {
		return nil, err
	}
	h.ownerSet[owner] = true
	res = &abcitypes.ExecTxResult{
		Events: []abcitypes.Event{types.EncodeEventStake(event)},
	}
	return
}

type UnstakeTxHandler struct {
	logger cmtlog.Logger
}

func NewUnstakeTxHandler(logger cmtlog.Logger) (h *UnstakeTxHandler) {
	h = &UnstakeTxHandler{logger: logger.With("module", "unstakeTx")}
	return
}

func (h *UnstakeTxHandler) Check(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ResponseCheckTx, err error) {
	res = &abcitypes.ResponseCheckTx{Code: 0}
	sender := Sender(btx)
	_, err1 := st.Unstake(sender, sender, true)
	if err1 != nil {
		h.logger.Info("CheckTx UnstakeTx fail", "err", err1)
		res.Code = 1
		res.Log = err1.Error()
	}
	return
}

func (h *UnstakeTxHandler) NewContext(ctx context.Context) {}

func (h *UnstakeTxHandler) Process(ctx context.Context, st *state.State, btx *tx.VetokenTx, auth state.AuthSet) (res *abcitypes.ExecTxResult, err error) {
	sender := Sender(btx)
	event, err := st.Unstake(sender, sender, false)
	if err != nil {
		return nil, err
	}
	res = &abcitypes.ExecTxResult{
		Events: []abcitypes.Event{types.EncodeEventUnstake(event)},
	}
	return
}
