package app

import (
	"context"
	"encoding/json"

	"github.com/TaoGe96/vetoken/config"
	"github.com/TaoGe96/vetoken/state"
	"github.com/TaoGe96/vetoken/tx"
	"github.com/TaoGe96/vetoken/tx/handler"
	"github.com/TaoGe96/vetoken/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/cometbft/cometbft/store"
	"github.com/ethereum/go-ethereum/common"
)

type finalizeBlock struct {
	Height uint64
	Hash   common.Hash
}

func (b *finalizeBlock) Set(blk *abcitypes.RequestFinalizeBlock) {
	b.Height = uint64(blk.Height)
	b.Hash = common.BytesToHash(blk.Hash)
}

var _ abcitypes.Application = &VetokenApp{}

type VetokenApp struct {
	cfg    *config.VetokenAppConfig
	logger cmtlog.Logger

	db       *state.StateDB
	lastBlk  finalizeBlock
	txHdlrs  map[tx.VetokenTxType]handler.TxHandler
	queriers map[string]Querier

	st *state.State
}

func NewVetokenApp(cfg *config.VetokenAppConfig, logger cmtlog.Logger) (app *VetokenApp, err error) {
	logger = logger.With("module", "app")

	dir := cfg.Home + "/data"
	db, err := state.NewStateDB(dir, logger)
	if err != nil {
		return nil, err
	}
	return newVetokenApp(cfg, db, logger), nil
}

// NewMemVetokenApp runs the app over an in-memory store; used by tests.
func NewMemVetokenApp(cfg *config.VetokenAppConfig, logger cmtlog.Logger) (app *VetokenApp, err error) {
	db, err := state.NewMemStateDB(logger)
	if err != nil {
		return nil, err
	}
	return newVetokenApp(cfg, db, logger), nil
}

func newVetokenApp(cfg *config.VetokenAppConfig, db *state.StateDB, logger cmtlog.Logger) *VetokenApp {
	app := &VetokenApp{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		txHdlrs:  make(map[tx.VetokenTxType]handler.TxHandler),
		queriers: make(map[string]Querier),
	}
	app.registerTxHandler()
	app.registerQuerier()
	return app
}

func (app *VetokenApp) Start(bs *store.BlockStore) {
	height := app.db.Header().Height
	if height > 0 {
		blk := bs.LoadBlock(int64(height))
		if blk == nil {
			panic("unexpected BlockStore")
		}
		app.lastBlk.Height = height
		app.lastBlk.Hash = common.BytesToHash(blk.Hash())
	}
}

func (app *VetokenApp) Stop() {
	err := app.db.Close()
	if err != nil {
		app.logger.Error("close db fail", "err", err)
	}
	app.logger.Info("vetoken app stopped")
}

func (app *VetokenApp) DB() *state.StateDB {
	return app.db
}

func (app *VetokenApp) registerTxHandler() {
	stakeHdlr := handler.NewStakeTxHandler(app.logger)
	app.txHdlrs = map[tx.VetokenTxType]handler.TxHandler{
		tx.VetokenTxTypeInitNamespace:    handler.NewInitNamespaceTxHandler(app.logger),
		tx.VetokenTxTypeStake:            stakeHdlr,
		tx.VetokenTxTypeStakeOnBehalf:    stakeHdlr,
		tx.VetokenTxTypeUnstake:          handler.NewUnstakeTxHandler(app.logger),
		tx.VetokenTxTypeInitProposal:     handler.NewInitProposalTxHandler(app.logger),
		tx.VetokenTxTypeUpdateProposal:   handler.NewUpdateProposalTxHandler(app.logger),
		tx.VetokenTxTypeVote:             handler.NewVoteTxHandler(app.logger),
		tx.VetokenTxTypeInitDistribution: handler.NewInitDistributionTxHandler(app.logger),
		tx.VetokenTxTypeClaim:            handler.NewClaimTxHandler(app.logger),
		tx.VetokenTxTypeUpdateDist:       handler.NewUpdateDistributionTxHandler(app.logger),
		tx.VetokenTxTypeWithdrawDist:     handler.NewWithdrawDistributionTxHandler(app.logger),
	}
}

func (app *VetokenApp) registerQuerier() {
	app.queriers["/namespace/"] = NewNamespaceQuerier(app.db, app.logger)
	app.queriers["/lockups/"] = NewLockupQuerier(app.db, app.logger)
	app.queriers["/proposals/"] = NewProposalQuerier(app.db, app.logger)
	app.queriers["/distributions/"] = NewDistributionQuerier(app.db, app.logger)
	app.queriers["/balances/"] = NewBalanceQuerier(app.db, app.logger)
	app.queriers["/nonces/"] = NewNonceQuerier(app.db, app.logger)
}

func (app *VetokenApp) InitChain(_ context.Context, chain *abcitypes.RequestInitChain) (res *abcitypes.ResponseInitChain, err error) {
	st := app.db.NewState()
	st.SetChainId(chain.ChainId)
	if chain.Time.Unix() > 0 {
		st.SetBlockTime(chain.Time.Unix())
	}
	if len(chain.AppStateBytes) > 0 {
		var appState types.GenesisAppState
		if err = json.Unmarshal(chain.AppStateBytes, &appState); err != nil {
			app.logger.Error("InitChain parse app state fail", "err", err)
			return nil, err
		}
		for _, bal := range appState.Balances {
			if err = st.Credit(bal.Address, bal.Amount); err != nil {
				app.logger.Error("InitChain credit balance fail", "err", err)
				return nil, err
			}
		}
		if appState.Namespace.Deployer != (common.Address{}) {
			if _, err = st.InitNamespace(appState.Namespace.Deployer, &appState.Namespace, false); err != nil {
				app.logger.Error("InitChain init namespace fail", "err", err)
				return nil, err
			}
		}
	}
	var h common.Hash
	_, err = st.Update()
	if err != nil {
		app.logger.Error("InitChain update state fail", "err", err)
		return nil, err
	}
	h, err = app.db.SetState(st)
	if err != nil {
		app.logger.Error("InitChain apply state fail", "err", err)
		return nil, err
	}
	return &abcitypes.ResponseInitChain{
		AppHash: h.Bytes(),
	}, nil
}

func (app *VetokenApp) Info(ctx context.Context, info *abcitypes.RequestInfo) (*abcitypes.ResponseInfo, error) {
	header := app.db.Header()
	return &abcitypes.ResponseInfo{
		LastBlockHeight:  int64(header.Height),
		LastBlockAppHash: header.Hash,
	}, nil
}

func (app *VetokenApp) ExtendVote(_ context.Context, extend *abcitypes.RequestExtendVote) (*abcitypes.ResponseExtendVote, error) {
	return &abcitypes.ResponseExtendVote{}, nil
}

func (app *VetokenApp) VerifyVoteExtension(_ context.Context, verify *abcitypes.RequestVerifyVoteExtension) (*abcitypes.ResponseVerifyVoteExtension, error) {
	return &abcitypes.ResponseVerifyVoteExtension{}, nil
}

func (app *VetokenApp) ApplySnapshotChunk(context.Context, *abcitypes.RequestApplySnapshotChunk) (*abcitypes.ResponseApplySnapshotChunk, error) {
	return nil, nil
}

func (app *VetokenApp) ListSnapshots(context.Context, *abcitypes.RequestListSnapshots) (*abcitypes.ResponseListSnapshots, error) {
	return nil, nil
}

func (app *VetokenApp) LoadSnapshotChunk(context.Context, *abcitypes.RequestLoadSnapshotChunk) (*abcitypes.ResponseLoadSnapshotChunk, error) {
	return nil, nil
}

func (app *VetokenApp) OfferSnapshot(context.Context, *abcitypes.RequestOfferSnapshot) (*abcitypes.ResponseOfferSnapshot, error) {
	return nil, nil
}
