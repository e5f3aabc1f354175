package state

import (
	"bytes"
	"testing"

	"github.com/TaoGe96/vetoken/tx"
	"github.com/TaoGe96/vetoken/types"
	"github.com/cometbft/cometbft/crypto/ed25519"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	testDeployer = common.HexToAddress("0x11")
	testCouncil  = common.HexToAddress("0x22")
	testReview   = common.HexToAddress("0x33")
	alice        = common.HexToAddress("0xaa")
	bob          = common.HexToAddress("0xbb")
)

const (
	day      = int64(86400)
	minDur   = 14 * day
	maxSat   = uint64(4 * 365 * day)
	baseTime = int64(1_700_000_000)
)

func testNamespaceCfg() *types.Namespace {
	return &types.Namespace{
		SecurityCouncil:                 testCouncil,
		ReviewCouncil:                   testReview,
		LockupDefaultTargetRewardsPct:   100,
		LockupDefaultTargetVotingPct:    2000,
		LockupMinDuration:               minDur,
		LockupMinAmount:                 100,
		LockupMaxSaturation:             maxSat,
		ProposalMinVotingPowerForQuorum: 1000,
		ProposalMinPassPct:              60,
	}
}

func newTestState(t *testing.T) (*State, common.Address) {
	t.Helper()
	db, err := NewMemStateDB(cmtlog.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := db.NewState()
	st.SetChainId("vetoken-test")
	st.SetBlockTime(baseTime)
	nsAddr, err := st.InitNamespace(testDeployer, testNamespaceCfg(), false)
	require.NoError(t, err)
	return st, nsAddr
}

func TestInitNamespaceIdempotent(t *testing.T) {
	st, nsAddr := newTestState(t)

	again, err := st.InitNamespace(testDeployer, testNamespaceCfg(), false)
	require.NoError(t, err)
	require.Equal(t, nsAddr, again)

	ns, _, err := st.Namespace()
	require.NoError(t, err)
	require.Equal(t, testDeployer, ns.Deployer)
	require.Equal(t, uint64(0), ns.LockupAmount)
	require.Equal(t, uint32(0), ns.ProposalNonce)

	// a different deployer cannot re-anchor an initialized chain
	_, err = st.InitNamespace(alice, testNamespaceCfg(), false)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestInitNamespaceRejectsInvalidConfig(t *testing.T) {
	db, err := NewMemStateDB(cmtlog.NewNopLogger())
	require.NoError(t, err)
	defer db.Close()
	st := db.NewState()

	cfg := testNamespaceCfg()
	cfg.LockupMinAmount = 0
	_, err = st.InitNamespace(testDeployer, cfg, false)
	require.ErrorIs(t, err, ErrInvalidNamespace)
}

func TestStakeNoMaturityThenExtend(t *testing.T) {
	st, nsAddr := newTestState(t)
	require.NoError(t, st.Credit(alice, 2000))

	event, err := st.Stake(alice, alice, 400, 0, false)
	require.NoError(t, err)
	require.Equal(t, uint64(400), event.TotalAmount)

	lockup, lockupAddr, err := st.GetLockup(alice)
	require.NoError(t, err)
	require.Equal(t, uint64(400), lockup.Amount)
	require.Equal(t, int64(0), lockup.EndTs)
	require.Equal(t, int64(0), lockup.WeightedStartTs)
	require.Equal(t, baseTime, lockup.StartTs)

	bal, err := st.Balance(alice)
	require.NoError(t, err)
	require.Equal(t, uint64(1600), bal)
	bal, err = st.Balance(lockupAddr)
	require.NoError(t, err)
	require.Equal(t, uint64(400), bal)

	// upgrading to a fixed maturity starts the weighted clock now
	endTs := baseTime + 365*day
	_, err = st.Stake(alice, alice, 400, endTs, false)
	require.NoError(t, err)
	lockup, _, err = st.GetLockup(alice)
	require.NoError(t, err)
	require.Equal(t, uint64(800), lockup.Amount)
	require.Equal(t, endTs, lockup.EndTs)
	require.Equal(t, baseTime, lockup.WeightedStartTs)

	// topping up at the same end keeps the weighted start in place
	_, err = st.Stake(alice, alice, 300, endTs, false)
	require.NoError(t, err)
	lockup, _, err = st.GetLockup(alice)
	require.NoError(t, err)
	require.Equal(t, uint64(1100), lockup.Amount)
	require.Equal(t, endTs, lockup.EndTs)
	require.Equal(t, baseTime, lockup.WeightedStartTs)

	ns, _, err := st.Namespace()
	require.NoError(t, err)
	require.Equal(t, uint64(1100), ns.LockupAmount)
	_ = nsAddr
}

func TestRestakeWeightedAverage(t *testing.T) {
	st, _ := newTestState(t)
	require.NoError(t, st.Credit(alice, 10_000))

	oldEnd := baseTime + 365*day
	_, err := st.Stake(alice, alice, 1000, oldEnd, false)
	require.NoError(t, err)

	// 100 days later: add 500 and push the end out to two years
	now := baseTime + 100*day
	st.SetBlockTime(now)
	newEnd := baseTime + 2*365*day
	_, err = st.Stake(alice, alice, 500, newEnd, false)
	require.NoError(t, err)

	lockup, _, err := st.GetLockup(alice)
	require.NoError(t, err)
	require.Equal(t, uint64(1500), lockup.Amount)
	require.Equal(t, newEnd, lockup.EndTs)

	// oldTw = 1000 * 1y; extensionTw = 1000 * 1y; addedTw = 500 * (2y - 100d)
	// avg = (oldTw + extensionTw + addedTw) / 1500; weightedStart = newEnd - avg
	oldTw := int64(1000) * (oldEnd - baseTime)
	extTw := int64(1000) * (newEnd - oldEnd)
	addTw := int64(500) * (newEnd - now)
	avg := (oldTw + extTw + addTw) / 1500
	require.Equal(t, newEnd-avg, lockup.WeightedStartTs)
	require.LessOrEqual(t, lockup.WeightedStartTs, lockup.EndTs)
	require.GreaterOrEqual(t, lockup.WeightedStartTs, baseTime)
}

func TestRestakeLargeAmountsNoOverflow(t *testing.T) {
	st, _ := newTestState(t)
	// 5,000,000 tokens at 6 decimals, twice over
	const whale = uint64(5_000_000_000_000)
	require.NoError(t, st.Credit(alice, 2*whale))

	endTs := baseTime + int64(maxSat)
	_, err := st.Stake(alice, alice, whale, endTs, false)
	require.NoError(t, err)
	_, err = st.Stake(alice, alice, whale, endTs, false)
	require.NoError(t, err)

	lockup, _, err := st.GetLockup(alice)
	require.NoError(t, err)
	require.Equal(t, 2*whale, lockup.Amount)
	require.Equal(t, baseTime, lockup.WeightedStartTs)
}

func TestStakeEndTsRules(t *testing.T) {
	st, _ := newTestState(t)
	require.NoError(t, st.Credit(alice, 10_000))

	// below the minimum duration
	_, err := st.Stake(alice, alice, 400, baseTime+minDur-1, false)
	require.ErrorIs(t, err, ErrInvalidTimestamp)

	endTs := baseTime + 365*day
	_, err = st.Stake(alice, alice, 400, endTs, false)
	require.NoError(t, err)

	// end timestamps never shorten
	_, err = st.Stake(alice, alice, 100, endTs-day, false)
	require.ErrorIs(t, err, ErrInvalidTimestamp)

	// the end is capped at the saturation horizon
	_, err = st.Stake(alice, alice, 100, baseTime+2*int64(maxSat), false)
	require.NoError(t, err)
	lockup, _, err := st.GetLockup(alice)
	require.NoError(t, err)
	require.Equal(t, baseTime+int64(maxSat), lockup.EndTs)
}

func TestStakeAmountRules(t *testing.T) {
	st, _ := newTestState(t)
	require.NoError(t, st.Credit(alice, 10_000))

	_, err := st.Stake(alice, alice, 99, 0, false)
	require.ErrorIs(t, err, ErrInvalidLockupAmount)

	// a zero top-up needs an existing position
	_, err = st.Stake(alice, alice, 0, 0, false)
	require.ErrorIs(t, err, ErrInvalidLockupAmount)

	_, err = st.Stake(alice, alice, 400, 0, false)
	require.NoError(t, err)

	// pure extension with no new tokens
	_, err = st.Stake(alice, alice, 0, baseTime+365*day, false)
	require.NoError(t, err)
	lockup, _, err := st.GetLockup(alice)
	require.NoError(t, err)
	require.Equal(t, uint64(400), lockup.Amount)
	require.Equal(t, baseTime+365*day, lockup.EndTs)
}

func TestStakeInsufficientBalance(t *testing.T) {
	st, _ := newTestState(t)
	require.NoError(t, st.Credit(alice, 100))
	_, err := st.Stake(alice, alice, 400, 0, false)
	require.ErrorIs(t, err, ErrInsufficientBalance)

	// the dry-run used by CheckTx rejects an unfundable stake too
	_, err = st.Stake(alice, alice, 400, 0, true)
	require.ErrorIs(t, err, ErrInsufficientBalance)

	require.NoError(t, st.Credit(alice, 300))
	_, err = st.Stake(alice, alice, 400, 0, true)
	require.NoError(t, err)
}

func TestUnstakeMaturityGate(t *testing.T) {
	st, _ := newTestState(t)
	require.NoError(t, st.Credit(alice, 1000))

	endTs := baseTime + 365*day
	_, err := st.Stake(alice, alice, 400, endTs, false)
	require.NoError(t, err)

	_, err = st.Unstake(alice, alice, false)
	require.ErrorIs(t, err, ErrTooEarly)

	st.SetBlockTime(endTs)
	event, err := st.Unstake(alice, alice, false)
	require.NoError(t, err)
	require.Equal(t, uint64(400), event.Amount)

	lockup, _, err := st.GetLockup(alice)
	require.NoError(t, err)
	require.Nil(t, lockup)

	bal, err := st.Balance(alice)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), bal)

	ns, _, err := st.Namespace()
	require.NoError(t, err)
	require.Equal(t, uint64(0), ns.LockupAmount)

	_, err = st.Unstake(alice, alice, false)
	require.ErrorIs(t, err, ErrLockupNoexists)
}

func TestUnstakeNoMaturityLock(t *testing.T) {
	st, _ := newTestState(t)
	require.NoError(t, st.Credit(alice, 1000))
	_, err := st.Stake(alice, alice, 400, 0, false)
	require.NoError(t, err)

	// endTs == 0 never gates on the clock
	_, err = st.Unstake(alice, alice, false)
	require.NoError(t, err)
}

func TestStakeOnBehalf(t *testing.T) {
	st, _ := newTestState(t)
	require.NoError(t, st.Credit(testCouncil, 1000))
	require.NoError(t, st.Credit(alice, 1000))

	// only the security council may stake for another owner
	_, err := st.Stake(alice, bob, 400, 0, false)
	require.ErrorIs(t, err, ErrUnauthorized)

	endTs := baseTime + 365*day
	event, err := st.Stake(testCouncil, bob, 400, endTs, false)
	require.NoError(t, err)
	require.True(t, event.OnBehalf)

	// delegated stakes carry voting weight but no rewards weight
	lockup, _, err := st.GetLockup(bob)
	require.NoError(t, err)
	require.Equal(t, uint16(0), lockup.TargetRewardsPct)
	require.Equal(t, uint16(2000), lockup.TargetVotingPct)

	// the council paid, not the owner
	bal, err := st.Balance(testCouncil)
	require.NoError(t, err)
	require.Equal(t, uint64(600), bal)

	// delegation grants no privileged unstake
	_, err = st.Unstake(testCouncil, bob, false)
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = st.Unstake(bob, bob, false)
	require.ErrorIs(t, err, ErrTooEarly)
}

func TestProposalLifecycle(t *testing.T) {
	st, nsAddr := newTestState(t)

	_, err := st.InitProposal(alice, 0, "ipfs://p0", baseTime, baseTime+7*day, false)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = st.InitProposal(testReview, 1, "ipfs://p0", baseTime, baseTime+7*day, false)
	require.ErrorIs(t, err, ErrInvalidProposalNonce)

	event, err := st.InitProposal(testReview, 0, "ipfs://p0", baseTime, baseTime+7*day, false)
	require.NoError(t, err)
	require.Equal(t, uint32(0), event.Nonce)

	ns, _, err := st.Namespace()
	require.NoError(t, err)
	require.Equal(t, uint32(1), ns.ProposalNonce)

	// the consumed nonce cannot be replayed
	_, err = st.InitProposal(testReview, 0, "ipfs://p0", baseTime, baseTime+7*day, false)
	require.ErrorIs(t, err, ErrInvalidProposalNonce)

	proposalAddr := DeriveProposal(nsAddr, 0)
	_, err = st.UpdateProposal(testReview, proposalAddr, "ipfs://p0-v2", baseTime+day, baseTime+8*day, false)
	require.NoError(t, err)
	proposal, err := st.GetProposal(proposalAddr)
	require.NoError(t, err)
	require.Equal(t, "ipfs://p0-v2", proposal.Uri)
	require.Equal(t, baseTime+day, proposal.StartTs)

	_, err = st.UpdateProposal(alice, proposalAddr, "x", baseTime, baseTime+day, false)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = st.InitProposal(testReview, 1, string(make([]byte, types.MaxUriLen+1)), baseTime, baseTime+day, false)
	require.ErrorIs(t, err, ErrInvalidUri)
}

func TestVote(t *testing.T) {
	st, nsAddr := newTestState(t)
	require.NoError(t, st.Credit(alice, 10_000))

	endTs := baseTime + int64(maxSat)
	_, err := st.Stake(alice, alice, 1000, endTs, false)
	require.NoError(t, err)

	voteStart := baseTime + day
	voteEnd := baseTime + 8*day
	_, err = st.InitProposal(testReview, 0, "ipfs://p0", voteStart, voteEnd, false)
	require.NoError(t, err)
	proposalAddr := DeriveProposal(nsAddr, 0)

	// outside the window in either direction
	_, err = st.Vote(alice, proposalAddr, 0, false)
	require.ErrorIs(t, err, ErrVotingClosed)

	st.SetBlockTime(voteStart)
	_, err = st.Vote(bob, proposalAddr, 0, false)
	require.ErrorIs(t, err, ErrLockupNoexists)

	event, err := st.Vote(alice, proposalAddr, 1, false)
	require.NoError(t, err)
	// saturation duration pins the full multiplier
	require.Equal(t, uint64(20000), event.VotingPower)

	record, _, err := st.GetVoteRecord(alice, proposalAddr)
	require.NoError(t, err)
	require.Equal(t, uint8(1), record.Choice)
	require.Equal(t, uint64(20000), record.VotingPower)

	proposal, err := st.GetProposal(proposalAddr)
	require.NoError(t, err)
	require.Equal(t, uint64(20000), proposal.VotingPowerChoices[1])

	// one vote per (owner, proposal)
	_, err = st.Vote(alice, proposalAddr, 2, false)
	require.ErrorIs(t, err, ErrRecordAlreadyExists)

	// a voted proposal refuses updates
	_, err = st.UpdateProposal(testReview, proposalAddr, "ipfs://p0-v2", voteStart, voteEnd, false)
	require.ErrorIs(t, err, ErrProposalLocked)

	st.SetBlockTime(voteEnd)
	_, err = st.Vote(alice, proposalAddr, 0, false)
	require.ErrorIs(t, err, ErrVotingClosed)

	_, err = st.Vote(alice, proposalAddr, types.MaxVotingChoices, false)
	require.ErrorIs(t, err, types.ErrInvalidVoteChoice)
}

func TestDistributionLifecycle(t *testing.T) {
	st, nsAddr := newTestState(t)

	uuid := common.HexToAddress("0x7777")
	cosigner1 := common.HexToAddress("0xc1")
	cosigner2 := common.HexToAddress("0xc2")
	claimant := common.HexToAddress("0xd1")

	_, err := st.InitDistribution(uuid, cosigner1, cosigner2, baseTime, false)
	require.NoError(t, err)
	distAddr := DeriveDistribution(nsAddr, uuid)

	// a uuid is single-use
	_, err = st.InitDistribution(uuid, cosigner1, cosigner2, baseTime, false)
	require.ErrorIs(t, err, ErrRecordAlreadyExists)

	require.NoError(t, st.Credit(distAddr, 35_000_000))

	both := AuthSet{cosigner1: true, cosigner2: true}
	one := AuthSet{cosigner1: true}

	// one cosigner is never enough
	_, err = st.ClaimFromDistribution(one, distAddr, claimant, 33_000_000, "tranche-1", false)
	require.ErrorIs(t, err, ErrUnauthorized)

	event, err := st.ClaimFromDistribution(both, distAddr, claimant, 33_000_000, "tranche-1", false)
	require.NoError(t, err)
	require.Equal(t, uint64(33_000_000), event.Amount)

	bal, err := st.Balance(claimant)
	require.NoError(t, err)
	require.Equal(t, uint64(33_000_000), bal)
	bal, err = st.Balance(distAddr)
	require.NoError(t, err)
	require.Equal(t, uint64(2_000_000), bal)

	// the consumed (claimant, message) key is the replay guard
	_, err = st.ClaimFromDistribution(both, distAddr, claimant, 2_000_000, "tranche-1", false)
	require.ErrorIs(t, err, ErrRecordAlreadyExists)

	claim, _, err := st.GetDistributionClaim(claimant, "tranche-1")
	require.NoError(t, err)
	require.Equal(t, uint64(33_000_000), claim.Amount)
	require.Equal(t, HashCosignedMsg("tranche-1"), claim.CosignedMsg)

	// a claim above the escrow balance fails before any transfer
	_, err = st.ClaimFromDistribution(both, distAddr, claimant, 3_000_000, "tranche-2", false)
	require.ErrorIs(t, err, ErrInsufficientBalance)

	// postponing the start gate blocks further claims
	_, err = st.UpdateDistribution(alice, distAddr, baseTime+day, false)
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = st.UpdateDistribution(testCouncil, distAddr, baseTime+day, false)
	require.NoError(t, err)
	_, err = st.ClaimFromDistribution(both, distAddr, claimant, 1_000_000, "tranche-2", false)
	require.ErrorIs(t, err, ErrTooEarly)

	// the council sweep empties and closes the escrow
	_, err = st.WithdrawFromDistribution(alice, distAddr, bob, false)
	require.ErrorIs(t, err, ErrUnauthorized)
	event2, err := st.WithdrawFromDistribution(testCouncil, distAddr, bob, false)
	require.NoError(t, err)
	require.Equal(t, uint64(2_000_000), event2.Amount)

	bal, err = st.Balance(bob)
	require.NoError(t, err)
	require.Equal(t, uint64(2_000_000), bal)
	_, err = st.GetDistribution(distAddr)
	require.ErrorIs(t, err, ErrDistributionNoexists)
}

func TestClaimBeforeStart(t *testing.T) {
	st, nsAddr := newTestState(t)
	uuid := common.HexToAddress("0x8888")
	cosigner1 := common.HexToAddress("0xc1")
	cosigner2 := common.HexToAddress("0xc2")

	_, err := st.InitDistribution(uuid, cosigner1, cosigner2, baseTime+day, false)
	require.NoError(t, err)
	distAddr := DeriveDistribution(nsAddr, uuid)
	require.NoError(t, st.Credit(distAddr, 1000))

	both := AuthSet{cosigner1: true, cosigner2: true}
	_, err = st.ClaimFromDistribution(both, distAddr, alice, 100, "early", false)
	require.ErrorIs(t, err, ErrTooEarly)
}

func TestVerifySignatures(t *testing.T) {
	st, _ := newTestState(t)

	priv := ed25519.GenPrivKey()
	pub := priv.PubKey().Bytes()
	sender := SignerAddress(pub)

	btx := &tx.VetokenTx{
		Version: tx.VetokenTxVersion0,
		Type:    tx.VetokenTxTypeStake,
		Nonce:   0,
		Signers: [][]byte{pub},
		Tx:      &tx.StakeTx{Amount: 400, EndTs: 0},
	}
	dat, err := btx.SigData([]byte("vetoken-test"))
	require.NoError(t, err)
	sig, err := priv.Sign(dat)
	require.NoError(t, err)
	btx.Sig = [][]byte{sig}

	auth, err := st.Verify(btx, false)
	require.NoError(t, err)
	require.True(t, auth.Has(sender))

	// signatures are bound to the chain id
	st.SetChainId("vetoken-other")
	_, err = st.Verify(btx, false)
	require.ErrorIs(t, err, ErrTxSigInvalid)
	st.SetChainId("vetoken-test")

	// a future nonce only passes the mempool-style check
	btx.Nonce = 3
	dat, err = btx.SigData([]byte("vetoken-test"))
	require.NoError(t, err)
	sig, err = priv.Sign(dat)
	require.NoError(t, err)
	btx.Sig = [][]byte{sig}
	_, err = st.Verify(btx, false)
	require.ErrorIs(t, err, ErrTxNonceInvalid)
	_, err = st.Verify(btx, true)
	require.NoError(t, err)

	// a consumed nonce fails both ways
	require.NoError(t, st.BumpNonce(sender))
	btx.Nonce = 0
	dat, err = btx.SigData([]byte("vetoken-test"))
	require.NoError(t, err)
	sig, err = priv.Sign(dat)
	require.NoError(t, err)
	btx.Sig = [][]byte{sig}
	_, err = st.Verify(btx, true)
	require.ErrorIs(t, err, ErrTxNonceInvalid)

	btx.Sig = nil
	_, err = st.Verify(btx, false)
	require.ErrorIs(t, err, ErrTxSigCountInvalid)
}

func TestCommitAndReadBack(t *testing.T) {
	db, err := NewMemStateDB(cmtlog.NewNopLogger())
	require.NoError(t, err)
	defer db.Close()

	st := db.NewState()
	st.SetChainId("vetoken-test")
	st.SetBlockTime(baseTime)
	_, err = st.InitNamespace(testDeployer, testNamespaceCfg(), false)
	require.NoError(t, err)
	require.NoError(t, st.Credit(alice, 1000))
	_, err = st.Stake(alice, alice, 400, 0, false)
	require.NoError(t, err)

	h, err := st.Update()
	require.NoError(t, err)
	require.NotEqual(t, common.Hash{}, h)
	saved, err := db.SetState(st)
	require.NoError(t, err)
	require.Equal(t, h, saved)

	lockup, _, _, err := db.GetLockup(alice)
	require.NoError(t, err)
	require.Equal(t, uint64(400), lockup.Amount)

	// the next working state sees the committed records
	next := db.NewState()
	next.SetBlockTime(baseTime)
	lockup2, _, err := next.GetLockup(alice)
	require.NoError(t, err)
	require.Equal(t, lockup.Amount, lockup2.Amount)

	bal, _, err := db.GetBalance(alice)
	require.NoError(t, err)
	require.Equal(t, uint64(600), bal)
}

func TestCloneIsolation(t *testing.T) {
	st, _ := newTestState(t)
	require.NoError(t, st.Credit(alice, 1000))

	clone := st.Clone()
	_, err := clone.Stake(alice, alice, 400, 0, false)
	require.NoError(t, err)

	lockup, _, err := st.GetLockup(alice)
	require.NoError(t, err)
	require.Nil(t, lockup)
	lockup, _, err = clone.GetLockup(alice)
	require.NoError(t, err)
	require.Equal(t, uint64(400), lockup.Amount)
}

func TestSortedAddrsByteOrder(t *testing.T) {
	m := map[common.Address]uint64{}
	for _, b := range []byte{0x61, 0x41, 0xff, 0x00, 0x7a} {
		var a common.Address
		a[0] = b
		m[a] = 1
	}
	addrs := sortedAddrs(m)
	require.Len(t, addrs, 5)
	for i := 1; i < len(addrs); i++ {
		require.True(t, bytes.Compare(addrs[i-1][:], addrs[i][:]) < 0)
	}
}

func TestDeriveDeterminism(t *testing.T) {
	nsAddr := DeriveNamespace(testDeployer)
	require.Equal(t, nsAddr, DeriveNamespace(testDeployer))
	require.NotEqual(t, nsAddr, DeriveNamespace(alice))

	require.NotEqual(t, DeriveLockup(nsAddr, alice), DeriveLockup(nsAddr, bob))
	require.NotEqual(t, DeriveProposal(nsAddr, 0), DeriveProposal(nsAddr, 1))
	require.NotEqual(t,
		DeriveDistributionClaim(nsAddr, alice, "m1"),
		DeriveDistributionClaim(nsAddr, alice, "m2"))
}
