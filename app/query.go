package app

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"strings"

	"github.com/TaoGe96/vetoken/state"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/common"
)

func (app *VetokenApp) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	path := req.Path
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	q, ok := app.queriers[path]
	if !ok {
		res = &abcitypes.ResponseQuery{}
		res.Code = 404
		return
	}
	res, err = q.Query(ctx, req)
	return
}

type Querier interface {
	Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error)
}

type NamespaceQuerier struct {
	db     *state.StateDB
	logger cmtlog.Logger
}

func NewNamespaceQuerier(db *state.StateDB, logger cmtlog.Logger) (q *NamespaceQuerier) {
	return &NamespaceQuerier{db: db, logger: logger}
}

func (q *NamespaceQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	ns, addr, height, err := q.db.GetNamespace()
	if err != nil {
		res.Code = 1
		res.Log = err.Error()
		return res, nil
	}
	res.Height = int64(height)
	res.Key = addr.Bytes()
	res.Value, _ = json.Marshal(ns)
	return res, nil
}

type LockupQuerier struct {
	db     *state.StateDB
	logger cmtlog.Logger
}

func NewLockupQuerier(db *state.StateDB, logger cmtlog.Logger) (q *LockupQuerier) {
	return &LockupQuerier{db: db, logger: logger}
}

// Query expects the 20-byte owner address in Data.
func (q *LockupQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	if len(req.Data) != common.AddressLength {
		res.Code = 1
		return res, nil
	}
	l, addr, height, err := q.db.GetLockup(common.BytesToAddress(req.Data))
	if err != nil || l == nil {
		res.Code = 1
		return res, nil
	}
	res.Height = int64(height)
	res.Key = addr.Bytes()
	res.Value, _ = json.Marshal(l)
	return res, nil
}

type ProposalQuerier struct {
	db     *state.StateDB
	logger cmtlog.Logger
}

func NewProposalQuerier(db *state.StateDB, logger cmtlog.Logger) (q *ProposalQuerier) {
	return &ProposalQuerier{db: db, logger: logger}
}

// Query resolves a proposal from a 4-byte big-endian nonce in Data.
func (q *ProposalQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	if len(req.Data) != 4 {
		res.Code = 1
		return res, nil
	}
	nonce := binary.BigEndian.Uint32(req.Data)
	p, addr, height, err := q.db.GetProposalByNonce(nonce)
	if err != nil {
		res.Code = 1
		res.Log = err.Error()
		return res, nil
	}
	res.Height = int64(height)
	res.Key = addr.Bytes()
	res.Value, _ = json.Marshal(p)
	return res, nil
}

type DistributionQuerier struct {
	db     *state.StateDB
	logger cmtlog.Logger
}

func NewDistributionQuerier(db *state.StateDB, logger cmtlog.Logger) (q *DistributionQuerier) {
	return &DistributionQuerier{db: db, logger: logger}
}

func (q *DistributionQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	if len(req.Data) != common.AddressLength {
		res.Code = 1
		return res, nil
	}
	d, height, err := q.db.GetDistribution(common.BytesToAddress(req.Data))
	if err != nil {
		res.Code = 1
		res.Log = err.Error()
		return res, nil
	}
	res.Height = int64(height)
	res.Value, _ = json.Marshal(d)
	return res, nil
}

type BalanceQuerier struct {
	db     *state.StateDB
	logger cmtlog.Logger
}

func NewBalanceQuerier(db *state.StateDB, logger cmtlog.Logger) (q *BalanceQuerier) {
	return &BalanceQuerier{db: db, logger: logger}
}

func (q *BalanceQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	if len(req.Data) != common.AddressLength {
		res.Code = 1
		return res, nil
	}
	amount, height, err := q.db.GetBalance(common.BytesToAddress(req.Data))
	if err != nil {
		res.Code = 1
		return res, nil
	}
	res.Height = int64(height)
	res.Value, _ = json.Marshal(amount)
	return res, nil
}

type NonceQuerier struct {
	db     *state.StateDB
	logger cmtlog.Logger
}

func NewNonceQuerier(db *state.StateDB, logger cmtlog.Logger) (q *NonceQuerier) {
	return &NonceQuerier{db: db, logger: logger}
}

func (q *NonceQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	if len(req.Data) != common.AddressLength {
		res.Code = 1
		return res, nil
	}
	nonce, height, err := q.db.GetNonce(common.BytesToAddress(req.Data))
	if err != nil {
		res.Code = 1
		return res, nil
	}
	res.Height = int64(height)
	res.Value, _ = json.Marshal(nonce)
	return res, nil
}
