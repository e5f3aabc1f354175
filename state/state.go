package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/TaoGe96/vetoken/tx"
	"github.com/TaoGe96/vetoken/types"
	"github.com/cometbft/cometbft/crypto/ed25519"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/cosmos/iavl"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/syndtr/goleveldb/leveldb"
)

var (
	KeyState   = "s"
	KeyRecord  = "r%x"
	KeyBalance = "b%x"
	KeyNonce   = "o%x"
)

var (
	ErrNotFound = errors.New("not found")

	ErrTxNonceInvalid    = errors.New("nonce invalid")
	ErrTxSigInvalid      = errors.New("signature invalid")
	ErrTxSigCountInvalid = errors.New("signer and signature count mismatch")

	ErrUnauthorized         = errors.New("unauthorized")
	ErrTooEarly             = errors.New("too early")
	ErrNamespaceNoexists    = errors.New("namespace noexists")
	ErrInvalidNamespace     = errors.New("invalid namespace config")
	ErrLockupNoexists       = errors.New("lockup noexists")
	ErrInvalidLockup        = errors.New("invalid lockup")
	ErrInvalidLockupAmount  = errors.New("invalid lockup amount")
	ErrInvalidTimestamp     = errors.New("invalid timestamp")
	ErrInvalidProposalNonce = errors.New("invalid proposal nonce")
	ErrProposalNoexists     = errors.New("proposal noexists")
	ErrProposalLocked       = errors.New("proposal has votes and cannot update")
	ErrVotingClosed         = errors.New("voting window closed")
	ErrDistributionNoexists = errors.New("distribution noexists")
	ErrRecordAlreadyExists  = errors.New("record already exists")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrInvalidUri           = errors.New("invalid uri")
)

// StateHeader is the committed chain metadata stored under KeyState.
type StateHeader struct {
	ChainId       string         `json:"chainId"`
	Height        uint64         `json:"height"`
	NamespaceAddr common.Address `json:"namespaceAddr"`
	RootHash      []byte         `json:"rootHash"`
	Hash          []byte         `json:"hash"`
}

func (h *StateHeader) Clone() *StateHeader {
	n := *h
	n.RootHash = append([]byte(nil), h.RootHash...)
	n.Hash = append([]byte(nil), h.Hash...)
	return &n
}

type recordEntry struct {
	dat     []byte
	deleted bool
}

// State is one batch of deterministic transitions over the record tree.
// Mutations buffer in the caches and flush to the tree in Update, so a
// failed transition leaves no partial writes behind.
type State struct {
	logger cmtlog.Logger
	db     *iavl.MutableTree
	dbVer  int64

	header    *StateHeader
	blockTime int64
	power     types.PowerFunc

	records     map[common.Address][]byte
	balances    map[common.Address]uint64
	nonces      map[common.Address]uint64
	modRecords  map[common.Address]*recordEntry
	modBalances map[common.Address]uint64
	modNonces   map[common.Address]uint64
}

func newState(db *iavl.MutableTree, logger cmtlog.Logger) *State {
	return &State{
		logger:      logger,
		db:          db,
		dbVer:       0,
		header:      new(StateHeader),
		power:       types.LinearPower,
		records:     make(map[common.Address][]byte),
		balances:    make(map[common.Address]uint64),
		nonces:      make(map[common.Address]uint64),
		modRecords:  make(map[common.Address]*recordEntry),
		modBalances: make(map[common.Address]uint64),
		modNonces:   make(map[common.Address]uint64),
	}
}

func (s *State) nextState() *State {
	n := newState(s.db, s.logger)
	n.dbVer = s.dbVer
	n.power = s.power
	n.blockTime = s.blockTime
	n.header = s.header.Clone()
	if s.header.Hash != nil {
		n.header.Height = s.header.Height + 1
	}
	return n
}

func (s *State) Clone() *State {
	n := newState(s.db, s.logger)
	n.dbVer = s.dbVer
	n.power = s.power
	n.blockTime = s.blockTime
	n.header = s.header.Clone()
	for k, v := range s.records {
		n.records[k] = append([]byte(nil), v...)
	}
	for k, v := range s.balances {
		n.balances[k] = v
	}
	for k, v := range s.nonces {
		n.nonces[k] = v
	}
	for k, v := range s.modRecords {
		n.modRecords[k] = &recordEntry{dat: append([]byte(nil), v.dat...), deleted: v.deleted}
	}
	for k, v := range s.modBalances {
		n.modBalances[k] = v
	}
	for k, v := range s.modNonces {
		n.modNonces[k] = v
	}
	return n
}

// SetBlockTime feeds the host clock for the current batch. The namespace
// override, when set, wins over it.
func (s *State) SetBlockTime(ts int64) {
	s.blockTime = ts
}

// SetPowerFunc swaps the voting-power curve. Must be identical on every
// node; the default is types.LinearPower.
func (s *State) SetPowerFunc(f types.PowerFunc) {
	s.power = f
}

func (s *State) load() (err error) {
	val, err := s.db.Get([]byte(KeyState))
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil
		}
		return err
	}
	if val != nil {
		err = json.Unmarshal(val, s.header)
		if err != nil {
			return
		}
		h := s.db.Hash()
		if h != nil {
			s.calcHash(h, true)
		}
	}
	return
}

func (s *State) calcHash(rootHash []byte, update bool) (h common.Hash) {
	h = crypto.Keccak256Hash(rootHash)
	if update {
		s.header.RootHash = append(s.header.RootHash[:0], rootHash...)
		s.header.Hash = append(s.header.Hash[:0], h[:]...)
	}
	return
}

// Update flushes the buffered mutations into the working tree in key
// order and returns the working hash. Persisting is save's job.
func (s *State) Update() (h common.Hash, err error) {
	var hash []byte
	defer func() {
		if hash == nil {
			s.db.Rollback()
		}
	}()

	val, err := json.Marshal(s.header)
	if err != nil {
		return
	}
	if _, err = s.db.Set([]byte(KeyState), val); err != nil {
		return
	}

	for _, addr := range sortedAddrs(s.modRecords) {
		entry := s.modRecords[addr]
		key := []byte(fmt.Sprintf(KeyRecord, addr))
		if entry.deleted {
			if _, _, err = s.db.Remove(key); err != nil {
				return
			}
			continue
		}
		if _, err = s.db.Set(key, entry.dat); err != nil {
			return
		}
	}
	for _, addr := range sortedAddrs(s.modBalances) {
		var enc []byte
		enc, err = rlp.EncodeToBytes(s.modBalances[addr])
		if err != nil {
			return
		}
		if _, err = s.db.Set([]byte(fmt.Sprintf(KeyBalance, addr)), enc); err != nil {
			return
		}
	}
	for _, addr := range sortedAddrs(s.modNonces) {
		var enc []byte
		enc, err = rlp.EncodeToBytes(s.modNonces[addr])
		if err != nil {
			return
		}
		if _, err = s.db.Set([]byte(fmt.Sprintf(KeyNonce, addr)), enc); err != nil {
			return
		}
	}

	hash = s.db.WorkingHash()
	h = s.calcHash(hash, false)
	s.modRecords = make(map[common.Address]*recordEntry)
	s.modBalances = make(map[common.Address]uint64)
	s.modNonces = make(map[common.Address]uint64)
	return
}

func (s *State) save() (h common.Hash, err error) {
	hash, ver, err := s.db.SaveVersion()
	if err != nil {
		return h, err
	}
	s.dbVer = ver
	h = s.calcHash(hash, true)
	return
}

func sortedAddrs[V any](m map[common.Address]V) []common.Address {
	addrs := make([]common.Address, 0, len(m))
	for a := range m {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return bytes.Compare(addrs[i][:], addrs[j][:]) < 0
	})
	return addrs
}

func (s *State) Header() *StateHeader {
	return s.header
}

func (s *State) Hash() (h common.Hash) {
	if s.header.Hash != nil {
		copy(h[:], s.header.Hash)
	}
	return
}

func (s *State) SetChainId(chainId string) {
	s.header.ChainId = chainId
}

func (s *State) getRecord(addr common.Address) ([]byte, error) {
	if e, ok := s.modRecords[addr]; ok {
		if e.deleted {
			return nil, nil
		}
		return e.dat, nil
	}
	if dat, ok := s.records[addr]; ok {
		return dat, nil
	}
	val, err := s.db.Get([]byte(fmt.Sprintf(KeyRecord, addr)))
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	s.records[addr] = val
	return val, nil
}

func (s *State) setRecord(addr common.Address, dat []byte) {
	s.modRecords[addr] = &recordEntry{dat: dat}
	s.records[addr] = dat
}

func (s *State) deleteRecord(addr common.Address) {
	s.modRecords[addr] = &recordEntry{deleted: true}
	delete(s.records, addr)
}

func (s *State) recordExists(addr common.Address) (bool, error) {
	dat, err := s.getRecord(addr)
	if err != nil {
		return false, err
	}
	return dat != nil, nil
}

// Namespace returns the deployment's namespace record, or
// ErrNamespaceNoexists before init.
func (s *State) Namespace() (*types.Namespace, common.Address, error) {
	addr := s.header.NamespaceAddr
	if addr == (common.Address{}) {
		return nil, addr, ErrNamespaceNoexists
	}
	dat, err := s.getRecord(addr)
	if err != nil {
		return nil, addr, err
	}
	if dat == nil {
		return nil, addr, ErrNamespaceNoexists
	}
	ns, err := types.DecodeNamespace(dat)
	return ns, addr, err
}

func (s *State) setNamespace(addr common.Address, ns *types.Namespace) {
	s.setRecord(addr, ns.Encode())
}

func (s *State) now(ns *types.Namespace) int64 {
	return ns.Now(s.blockTime)
}

// GetLockup returns the owner's lockup or nil when none exists.
func (s *State) GetLockup(owner common.Address) (*types.Lockup, common.Address, error) {
	_, nsAddr, err := s.Namespace()
	if err != nil {
		return nil, common.Address{}, err
	}
	addr := DeriveLockup(nsAddr, owner)
	dat, err := s.getRecord(addr)
	if err != nil || dat == nil {
		return nil, addr, err
	}
	l, err := types.DecodeLockup(dat)
	return l, addr, err
}

func (s *State) GetProposal(addr common.Address) (*types.Proposal, error) {
	dat, err := s.getRecord(addr)
	if err != nil {
		return nil, err
	}
	if dat == nil {
		return nil, ErrProposalNoexists
	}
	return types.DecodeProposal(dat)
}

func (s *State) GetProposalByNonce(nonce uint32) (*types.Proposal, common.Address, error) {
	_, nsAddr, err := s.Namespace()
	if err != nil {
		return nil, common.Address{}, err
	}
	addr := DeriveProposal(nsAddr, nonce)
	p, err := s.GetProposal(addr)
	return p, addr, err
}

func (s *State) GetVoteRecord(owner, proposal common.Address) (*types.VoteRecord, common.Address, error) {
	_, nsAddr, err := s.Namespace()
	if err != nil {
		return nil, common.Address{}, err
	}
	addr := DeriveVoteRecord(nsAddr, owner, proposal)
	dat, err := s.getRecord(addr)
	if err != nil || dat == nil {
		return nil, addr, err
	}
	v, err := types.DecodeVoteRecord(dat)
	return v, addr, err
}

func (s *State) GetDistribution(addr common.Address) (*types.Distribution, error) {
	dat, err := s.getRecord(addr)
	if err != nil {
		return nil, err
	}
	if dat == nil {
		return nil, ErrDistributionNoexists
	}
	return types.DecodeDistribution(dat)
}

func (s *State) GetDistributionClaim(claimant common.Address, cosignedMsg string) (*types.DistributionClaim, common.Address, error) {
	_, nsAddr, err := s.Namespace()
	if err != nil {
		return nil, common.Address{}, err
	}
	addr := DeriveDistributionClaim(nsAddr, claimant, cosignedMsg)
	dat, err := s.getRecord(addr)
	if err != nil || dat == nil {
		return nil, addr, err
	}
	c, err := types.DecodeDistributionClaim(dat)
	return c, addr, err
}

func (s *State) Balance(addr common.Address) (uint64, error) {
	if v, ok := s.modBalances[addr]; ok {
		return v, nil
	}
	if v, ok := s.balances[addr]; ok {
		return v, nil
	}
	val, err := s.db.Get([]byte(fmt.Sprintf(KeyBalance, addr)))
	if err != nil {
		if err == leveldb.ErrNotFound {
			return 0, nil
		}
		return 0, err
	}
	if val == nil {
		return 0, nil
	}
	var amount uint64
	if err := rlp.DecodeBytes(val, &amount); err != nil {
		return 0, err
	}
	s.balances[addr] = amount
	return amount, nil
}

func (s *State) setBalance(addr common.Address, amount uint64) {
	s.modBalances[addr] = amount
	s.balances[addr] = amount
}

// Transfer moves tokens between balances with checked arithmetic. The
// operations decide amounts and authorization; this is the ledger leg.
func (s *State) Transfer(from, to common.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	fromBal, err := s.Balance(from)
	if err != nil {
		return err
	}
	if fromBal < amount {
		return ErrInsufficientBalance
	}
	toBal, err := s.Balance(to)
	if err != nil {
		return err
	}
	newTo, err := types.CheckedAddU64(toBal, amount)
	if err != nil {
		return err
	}
	s.setBalance(from, fromBal-amount)
	s.setBalance(to, newTo)
	return nil
}

// Credit mints into a balance; used only from genesis.
func (s *State) Credit(addr common.Address, amount uint64) error {
	bal, err := s.Balance(addr)
	if err != nil {
		return err
	}
	newBal, err := types.CheckedAddU64(bal, amount)
	if err != nil {
		return err
	}
	s.setBalance(addr, newBal)
	return nil
}

func (s *State) Nonce(addr common.Address) (uint64, error) {
	if v, ok := s.modNonces[addr]; ok {
		return v, nil
	}
	if v, ok := s.nonces[addr]; ok {
		return v, nil
	}
	val, err := s.db.Get([]byte(fmt.Sprintf(KeyNonce, addr)))
	if err != nil {
		if err == leveldb.ErrNotFound {
			return 0, nil
		}
		return 0, err
	}
	if val == nil {
		return 0, nil
	}
	var nonce uint64
	if err := rlp.DecodeBytes(val, &nonce); err != nil {
		return 0, err
	}
	s.nonces[addr] = nonce
	return nonce, nil
}

// BumpNonce advances the sender's replay counter after a processed tx.
func (s *State) BumpNonce(addr common.Address) error {
	nonce, err := s.Nonce(addr)
	if err != nil {
		return err
	}
	s.modNonces[addr] = nonce + 1
	s.nonces[addr] = nonce + 1
	return nil
}

// AuthSet is the set of caller identities whose signatures verified on
// the current request.
type AuthSet map[common.Address]bool

func (a AuthSet) Has(addr common.Address) bool { return a[addr] }

func SignerAddress(pubkey []byte) common.Address {
	addr := ed25519.PubKey(pubkey).Address()
	return common.BytesToAddress(addr[:])
}

// Verify checks every signature against its signer, checks the first
// signer's nonce, and returns the authorized caller set. Mempool checks
// tolerate a nonce gap so queued txs from one sender do not evict each
// other.
func (s *State) Verify(btx *tx.VetokenTx, allowNonceGap bool) (AuthSet, error) {
	if len(btx.Signers) == 0 || len(btx.Signers) != len(btx.Sig) {
		return nil, ErrTxSigCountInvalid
	}
	dat, err := btx.SigData([]byte(s.header.ChainId))
	if err != nil {
		return nil, err
	}
	auth := make(AuthSet, len(btx.Signers))
	for i, pk := range btx.Signers {
		pub := ed25519.PubKey(pk)
		if !pub.VerifySignature(dat, btx.Sig[i]) {
			return nil, ErrTxSigInvalid
		}
		auth[SignerAddress(pk)] = true
	}
	sender := SignerAddress(btx.Signers[0])
	nonce, err := s.Nonce(sender)
	if err != nil {
		return nil, err
	}
	if !(nonce == btx.Nonce || (allowNonceGap && nonce < btx.Nonce)) {
		return nil, ErrTxNonceInvalid
	}
	return auth, nil
}

// InitNamespace creates the deployment namespace. Idempotent: a second
// init succeeds and leaves the existing record unchanged.
func (s *State) InitNamespace(deployer common.Address, cfg *types.Namespace, checkOnly bool) (common.Address, error) {
	addr := DeriveNamespace(deployer)
	if s.header.NamespaceAddr != (common.Address{}) && s.header.NamespaceAddr != addr {
		return addr, ErrUnauthorized
	}
	exists, err := s.recordExists(addr)
	if err != nil {
		return addr, err
	}
	if exists {
		return addr, nil
	}
	ns := *cfg
	ns.Deployer = deployer
	ns.LockupAmount = 0
	ns.ProposalNonce = 0
	if !ns.Valid() {
		return addr, ErrInvalidNamespace
	}
	if !checkOnly {
		s.setNamespace(addr, &ns)
		s.header.NamespaceAddr = addr
	}
	return addr, nil
}

// Stake creates or grows a lockup. A caller other than the owner must be
// the security council (the stake-on-behalf path); delegated stakes are
// voting-eligible but rewards-ineligible. The payer is always the caller.
func (s *State) Stake(caller, owner common.Address, amount uint64, endTs int64, checkOnly bool) (*types.EventStake, error) {
	ns, nsAddr, err := s.Namespace()
	if err != nil {
		return nil, err
	}
	now := s.now(ns)
	onBehalf := caller != owner
	if onBehalf && caller != ns.SecurityCouncil {
		return nil, ErrUnauthorized
	}

	lockupAddr := DeriveLockup(nsAddr, owner)
	dat, err := s.getRecord(lockupAddr)
	if err != nil {
		return nil, err
	}
	var lockup *types.Lockup
	if dat != nil {
		if lockup, err = types.DecodeLockup(dat); err != nil {
			return nil, err
		}
	}

	if !(amount >= ns.LockupMinAmount || (amount == 0 && lockup != nil && lockup.Amount != 0)) {
		return nil, ErrInvalidLockupAmount
	}
	minEnd, err := types.CheckedAddI64(now, ns.LockupMinDuration)
	if err != nil {
		return nil, err
	}
	if !(endTs >= minEnd || endTs == 0) {
		return nil, ErrInvalidTimestamp
	}
	if lockup != nil && !(lockup.EndTs >= now || lockup.EndTs == 0) {
		// an expired lockup must be unstaked, not grown
		return nil, ErrInvalidTimestamp
	}

	if lockup == nil {
		lockup = &types.Lockup{
			Ns:               nsAddr,
			Owner:            owner,
			TargetRewardsPct: ns.LockupDefaultTargetRewardsPct,
			TargetVotingPct:  ns.LockupDefaultTargetVotingPct,
			StartTs:          now,
			Amount:           amount,
		}
		if onBehalf {
			// delegated stakes never accrue rewards
			lockup.TargetRewardsPct = 0
		}
		lockup.EndTs, err = capEndTs(endTs, lockup.StartTs, ns.LockupMaxSaturation)
		if err != nil {
			return nil, err
		}
		if lockup.EndTs != 0 {
			lockup.WeightedStartTs = now
		}
	} else {
		if err = s.restake(ns, lockup, amount, endTs, now); err != nil {
			return nil, err
		}
	}

	if !lockup.Valid(ns, now) {
		return nil, ErrInvalidLockup
	}
	newTotal, err := types.CheckedAddU64(ns.LockupAmount, amount)
	if err != nil {
		return nil, err
	}
	bal, err := s.Balance(caller)
	if err != nil {
		return nil, err
	}
	if bal < amount {
		return nil, ErrInsufficientBalance
	}

	if !checkOnly {
		if err = s.Transfer(caller, lockupAddr, amount); err != nil {
			return nil, err
		}
		s.setRecord(lockupAddr, lockup.Encode())
		ns.LockupAmount = newTotal
		s.setNamespace(nsAddr, ns)
	}

	return &types.EventStake{
		Owner:           owner.Hex(),
		Amount:          amount,
		TotalAmount:     lockup.Amount,
		EndTs:           lockup.EndTs,
		WeightedStartTs: lockup.WeightedStartTs,
		OnBehalf:        onBehalf,
	}, nil
}

// restake applies the top-up/extend transition. The time-weighted area
// of the position is conserved: the new weighted start lands where the
// amount-weighted average remaining duration puts it.
func (s *State) restake(ns *types.Namespace, lockup *types.Lockup, amount uint64, endTs int64, now int64) error {
	if endTs <= now {
		return ErrInvalidTimestamp
	}

	newAmount, err := types.CheckedAddU64(lockup.Amount, amount)
	if err != nil {
		return err
	}
	cappedEnd, err := capEndTs(endTs, lockup.StartTs, ns.LockupMaxSaturation)
	if err != nil {
		return err
	}

	if lockup.EndTs == 0 {
		// upgrading a no-maturity position to a fixed end starts the
		// weighted clock now
		lockup.EndTs = cappedEnd
		lockup.WeightedStartTs = now
		lockup.Amount = newAmount
		return nil
	}

	if endTs < lockup.EndTs {
		// end timestamps never shorten
		return ErrInvalidTimestamp
	}

	oldAmount := new(big.Int).SetUint64(lockup.Amount)
	oldDuration := lockup.EndTs - lockup.EffectiveStartTs()
	if oldDuration < 0 {
		return ErrInvalidTimestamp
	}
	oldTw := new(big.Int).Mul(oldAmount, big.NewInt(oldDuration))

	extension := cappedEnd - lockup.EndTs
	if extension < 0 {
		extension = 0
	}
	extensionTw := new(big.Int).Mul(oldAmount, big.NewInt(extension))

	remaining := cappedEnd - now
	if remaining < 0 {
		return ErrInvalidTimestamp
	}
	addedTw := new(big.Int).Mul(new(big.Int).SetUint64(amount), big.NewInt(remaining))

	newTw := new(big.Int).Add(oldTw, extensionTw)
	newTw.Add(newTw, addedTw)
	avgDuration := new(big.Int).Div(newTw, new(big.Int).SetUint64(newAmount))
	if !avgDuration.IsInt64() {
		return types.ErrOverflow
	}
	weightedStart, err := types.CheckedAddI64(cappedEnd, -avgDuration.Int64())
	if err != nil {
		return err
	}

	lockup.Amount = newAmount
	lockup.EndTs = cappedEnd
	lockup.WeightedStartTs = weightedStart
	return nil
}

func capEndTs(endTs, startTs int64, maxSaturation uint64) (int64, error) {
	if endTs == 0 {
		return 0, nil
	}
	satEnd, err := types.CheckedAddI64(startTs, int64(maxSaturation))
	if err != nil {
		return 0, err
	}
	if endTs < satEnd {
		return endTs, nil
	}
	return satEnd, nil
}

// Unstake matures a lockup out of existence: the full amount returns to
// the owner and the record is deleted. Only the owner may unstake.
func (s *State) Unstake(caller, owner common.Address, checkOnly bool) (*types.EventUnstake, error) {
	if caller != owner {
		return nil, ErrUnauthorized
	}
	ns, nsAddr, err := s.Namespace()
	if err != nil {
		return nil, err
	}
	now := s.now(ns)

	lockupAddr := DeriveLockup(nsAddr, owner)
	dat, err := s.getRecord(lockupAddr)
	if err != nil {
		return nil, err
	}
	if dat == nil {
		return nil, ErrLockupNoexists
	}
	lockup, err := types.DecodeLockup(dat)
	if err != nil {
		return nil, err
	}
	// the gate runs against the current end; endTs == 0 passes
	if lockup.EndTs != 0 && now < lockup.EndTs {
		return nil, ErrTooEarly
	}

	remaining, err := types.CheckedSubU64(ns.LockupAmount, lockup.Amount)
	if err != nil {
		return nil, err
	}

	if !checkOnly {
		if err = s.Transfer(lockupAddr, owner, lockup.Amount); err != nil {
			return nil, err
		}
		s.deleteRecord(lockupAddr)
		ns.LockupAmount = remaining
		s.setNamespace(nsAddr, ns)
	}

	return &types.EventUnstake{Owner: owner.Hex(), Amount: lockup.Amount}, nil
}

// InitProposal registers a review-council proposal under the next
// sequential nonce and advances the namespace counter.
func (s *State) InitProposal(caller common.Address, nonce uint32, uri string, startTs, endTs int64, checkOnly bool) (*types.EventProposal, error) {
	ns, nsAddr, err := s.Namespace()
	if err != nil {
		return nil, err
	}
	if caller != ns.ReviewCouncil {
		return nil, ErrUnauthorized
	}
	if nonce != ns.ProposalNonce {
		return nil, ErrInvalidProposalNonce
	}
	if len(uri) > types.MaxUriLen {
		return nil, ErrInvalidUri
	}

	proposal := &types.Proposal{
		Ns:      nsAddr,
		Nonce:   nonce,
		Owner:   caller,
		StartTs: startTs,
		EndTs:   endTs,
		Uri:     uri,
	}
	if !proposal.Valid() {
		return nil, ErrInvalidTimestamp
	}

	addr := DeriveProposal(nsAddr, nonce)
	exists, err := s.recordExists(addr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrRecordAlreadyExists
	}

	if !checkOnly {
		pdat, err := proposal.Encode()
		if err != nil {
			return nil, err
		}
		s.setRecord(addr, pdat)
		ns.ProposalNonce = nonce + 1
		s.setNamespace(nsAddr, ns)
	}

	return &types.EventProposal{
		Proposal: addr.Hex(),
		Nonce:    nonce,
		Uri:      uri,
		StartTs:  startTs,
		EndTs:    endTs,
	}, nil
}

// UpdateProposal rewrites metadata and timing. A proposal that already
// has votes refuses updates.
func (s *State) UpdateProposal(caller, proposalAddr common.Address, uri string, startTs, endTs int64, checkOnly bool) (*types.EventProposal, error) {
	ns, _, err := s.Namespace()
	if err != nil {
		return nil, err
	}
	if caller != ns.ReviewCouncil {
		return nil, ErrUnauthorized
	}
	proposal, err := s.GetProposal(proposalAddr)
	if err != nil {
		return nil, err
	}
	if !ns.ProposalCanUpdateAfterVotes && !proposal.CanUpdate() {
		return nil, ErrProposalLocked
	}
	if len(uri) > types.MaxUriLen {
		return nil, ErrInvalidUri
	}

	proposal.Uri = uri
	proposal.StartTs = startTs
	proposal.EndTs = endTs
	if !proposal.Valid() {
		return nil, ErrInvalidTimestamp
	}

	if !checkOnly {
		pdat, err := proposal.Encode()
		if err != nil {
			return nil, err
		}
		s.setRecord(proposalAddr, pdat)
	}

	return &types.EventProposal{
		Proposal: proposalAddr.Hex(),
		Nonce:    proposal.Nonce,
		Uri:      uri,
		StartTs:  startTs,
		EndTs:    endTs,
		Updated:  true,
	}, nil
}

// Vote snapshots the owner's voting power into a new vote record and
// adds it to the proposal tally. One record per (owner, proposal); a
// duplicate vote is rejected, never double-counted.
func (s *State) Vote(owner, proposalAddr common.Address, choice uint8, checkOnly bool) (*types.EventVote, error) {
	ns, nsAddr, err := s.Namespace()
	if err != nil {
		return nil, err
	}
	now := s.now(ns)

	if int(choice) >= types.MaxVotingChoices {
		return nil, types.ErrInvalidVoteChoice
	}

	proposal, err := s.GetProposal(proposalAddr)
	if err != nil {
		return nil, err
	}
	if now < proposal.StartTs || now >= proposal.EndTs {
		return nil, ErrVotingClosed
	}

	lockupAddr := DeriveLockup(nsAddr, owner)
	dat, err := s.getRecord(lockupAddr)
	if err != nil {
		return nil, err
	}
	if dat == nil {
		return nil, ErrLockupNoexists
	}
	lockup, err := types.DecodeLockup(dat)
	if err != nil {
		return nil, err
	}

	voteAddr := DeriveVoteRecord(nsAddr, owner, proposalAddr)
	exists, err := s.recordExists(voteAddr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrRecordAlreadyExists
	}

	votingPower := s.power(ns, lockup, now)
	record := &types.VoteRecord{
		Ns:          nsAddr,
		Owner:       owner,
		Proposal:    proposalAddr,
		Lockup:      lockupAddr,
		Choice:      choice,
		VotingPower: votingPower,
	}
	if err = proposal.CastVote(choice, votingPower); err != nil {
		return nil, err
	}

	if !checkOnly {
		s.setRecord(voteAddr, record.Encode())
		pdat, err := proposal.Encode()
		if err != nil {
			return nil, err
		}
		s.setRecord(proposalAddr, pdat)
	}

	return &types.EventVote{
		Owner:       owner.Hex(),
		Proposal:    proposalAddr.Hex(),
		Choice:      choice,
		VotingPower: votingPower,
	}, nil
}

// InitDistribution opens a dual-cosigner escrow keyed by a
// caller-supplied one-time uuid.
func (s *State) InitDistribution(uuid, cosigner1, cosigner2 common.Address, startTs int64, checkOnly bool) (*types.EventDistribution, error) {
	_, nsAddr, err := s.Namespace()
	if err != nil {
		return nil, err
	}
	addr := DeriveDistribution(nsAddr, uuid)
	exists, err := s.recordExists(addr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrRecordAlreadyExists
	}

	dist := &types.Distribution{
		Ns:        nsAddr,
		Uuid:      uuid,
		Cosigner1: cosigner1,
		Cosigner2: cosigner2,
		StartTs:   startTs,
	}
	if !checkOnly {
		s.setRecord(addr, dist.Encode())
	}

	return &types.EventDistribution{
		Distribution: addr.Hex(),
		Cosigner1:    cosigner1.Hex(),
		Cosigner2:    cosigner2.Hex(),
		StartTs:      startTs,
	}, nil
}

// ClaimFromDistribution pays one claimant from the escrow. Both
// cosigners must be in the caller set, the start gate must have passed,
// and the (claimant, message) key must be fresh; the claim record's
// existence is the only replay guard.
func (s *State) ClaimFromDistribution(auth AuthSet, distributionAddr, claimant common.Address, amount uint64, cosignedMsg string, checkOnly bool) (*types.EventClaim, error) {
	ns, nsAddr, err := s.Namespace()
	if err != nil {
		return nil, err
	}
	now := s.now(ns)

	dist, err := s.GetDistribution(distributionAddr)
	if err != nil {
		return nil, err
	}
	if !auth.Has(dist.Cosigner1) || !auth.Has(dist.Cosigner2) {
		return nil, ErrUnauthorized
	}
	if now < dist.StartTs {
		return nil, ErrTooEarly
	}

	claimAddr := DeriveDistributionClaim(nsAddr, claimant, cosignedMsg)
	exists, err := s.recordExists(claimAddr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrRecordAlreadyExists
	}

	bal, err := s.Balance(distributionAddr)
	if err != nil {
		return nil, err
	}
	if bal < amount {
		return nil, ErrInsufficientBalance
	}

	if !checkOnly {
		if err = s.Transfer(distributionAddr, claimant, amount); err != nil {
			return nil, err
		}
		claim := &types.DistributionClaim{
			Ns:           nsAddr,
			Distribution: distributionAddr,
			Claimant:     claimant,
			Amount:       amount,
			CosignedMsg:  HashCosignedMsg(cosignedMsg),
		}
		s.setRecord(claimAddr, claim.Encode())
	}

	return &types.EventClaim{
		Distribution: distributionAddr.Hex(),
		Claimant:     claimant.Hex(),
		Amount:       amount,
	}, nil
}

// UpdateDistribution moves the start gate. Security council only.
func (s *State) UpdateDistribution(caller, distributionAddr common.Address, newStartTs int64, checkOnly bool) (*types.EventDistribution, error) {
	ns, _, err := s.Namespace()
	if err != nil {
		return nil, err
	}
	if caller != ns.SecurityCouncil {
		return nil, ErrUnauthorized
	}
	dist, err := s.GetDistribution(distributionAddr)
	if err != nil {
		return nil, err
	}
	dist.StartTs = newStartTs

	if !checkOnly {
		s.setRecord(distributionAddr, dist.Encode())
	}

	return &types.EventDistribution{
		Distribution: distributionAddr.Hex(),
		Cosigner1:    dist.Cosigner1.Hex(),
		Cosigner2:    dist.Cosigner2.Hex(),
		StartTs:      newStartTs,
		Updated:      true,
	}, nil
}

// WithdrawFromDistribution sweeps the remaining escrow balance to the
// recipient and closes the distribution. Security council only.
func (s *State) WithdrawFromDistribution(caller, distributionAddr, recipient common.Address, checkOnly bool) (*types.EventWithdraw, error) {
	ns, _, err := s.Namespace()
	if err != nil {
		return nil, err
	}
	if caller != ns.SecurityCouncil {
		return nil, ErrUnauthorized
	}
	if _, err = s.GetDistribution(distributionAddr); err != nil {
		return nil, err
	}
	bal, err := s.Balance(distributionAddr)
	if err != nil {
		return nil, err
	}

	if !checkOnly {
		if err = s.Transfer(distributionAddr, recipient, bal); err != nil {
			return nil, err
		}
		s.deleteRecord(distributionAddr)
	}

	return &types.EventWithdraw{
		Distribution: distributionAddr.Hex(),
		Recipient:    recipient.Hex(),
		Amount:       bal,
	}, nil
}
