package state

import (
	"sync"

	"github.com/TaoGe96/vetoken/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/cosmos/iavl"
	dbm "github.com/cosmos/iavl/db"
	"github.com/ethereum/go-ethereum/common"
)

type StateDB struct {
	mtx sync.RWMutex

	dir    string
	logger cmtlog.Logger
	db     *iavl.MutableTree

	state *State
}

func NewStateDB(dir string, logger cmtlog.Logger) (db *StateDB, err error) {
	logger = logger.With("module", "vetokendb")
	ldb, err := dbm.NewDB("vetoken", "goleveldb", dir)
	if err != nil {
		return nil, err
	}
	return newStateDB(ldb, dir, logger)
}

// NewMemStateDB builds a throwaway in-memory instance for tests and
// tooling.
func NewMemStateDB(logger cmtlog.Logger) (*StateDB, error) {
	ldb, err := dbm.NewDB("vetoken", "memdb", "")
	if err != nil {
		return nil, err
	}
	return newStateDB(ldb, "", logger)
}

func newStateDB(ldb dbm.DB, dir string, logger cmtlog.Logger) (db *StateDB, err error) {
	tdb := iavl.NewMutableTree(ldb, 128, true, Cometbft2CosmosLogger(logger))
	version, err := tdb.Load()
	if err != nil {
		return nil, err
	}
	logger.Info("load db success", "version", version)
	st := newState(tdb, logger)
	err = st.load()
	if err != nil {
		logger.Error("from vetokendb load fail", "err", err)
		return nil, err
	}
	db = &StateDB{
		dir:    dir,
		logger: logger,
		db:     tdb,
		state:  st,
	}
	return
}

func (db *StateDB) Close() (err error) {
	err = db.db.Close()
	return
}

func (db *StateDB) Header() (header *StateHeader) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	header = db.state.Header()
	return
}

func (db *StateDB) State() *State {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	return db.state
}

func (db *StateDB) NewState() (st *State) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	st = db.state.nextState()
	return
}

func (db *StateDB) SetState(st *State) (hash common.Hash, err error) {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	hash, err = st.save()
	if err != nil {
		return
	}
	db.state = st
	return
}

func (db *StateDB) GetNamespace() (ns *types.Namespace, addr common.Address, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	ns, addr, err = db.state.Namespace()
	height = db.state.header.Height
	return
}

func (db *StateDB) GetLockup(owner common.Address) (l *types.Lockup, addr common.Address, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	l, addr, err = db.state.GetLockup(owner)
	height = db.state.header.Height
	return
}

func (db *StateDB) GetProposalByNonce(nonce uint32) (p *types.Proposal, addr common.Address, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	p, addr, err = db.state.GetProposalByNonce(nonce)
	height = db.state.header.Height
	return
}

func (db *StateDB) GetVoteRecord(owner, proposal common.Address) (v *types.VoteRecord, addr common.Address, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	v, addr, err = db.state.GetVoteRecord(owner, proposal)
	height = db.state.header.Height
	return
}

func (db *StateDB) GetDistribution(addr common.Address) (d *types.Distribution, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	d, err = db.state.GetDistribution(addr)
	height = db.state.header.Height
	return
}

func (db *StateDB) GetBalance(addr common.Address) (amount uint64, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	amount, err = db.state.Balance(addr)
	height = db.state.header.Height
	return
}

func (db *StateDB) GetNonce(addr common.Address) (nonce uint64, height uint64, err error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	nonce, err = db.state.Nonce(addr)
	height = db.state.header.Height
	return
}
