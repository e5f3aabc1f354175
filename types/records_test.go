package types

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

const (
	testDay    = int64(86400)
	testMinDur = 14 * testDay
	testMaxSat = uint64(4 * 365 * testDay)
)

func testNamespace() *Namespace {
	return &Namespace{
		SecurityCouncil:                 common.HexToAddress("0x22"),
		ReviewCouncil:                   common.HexToAddress("0x33"),
		LockupDefaultTargetRewardsPct:   100,
		LockupDefaultTargetVotingPct:    2000,
		LockupMinDuration:               testMinDur,
		LockupMinAmount:                 100,
		LockupMaxSaturation:             testMaxSat,
		ProposalMinVotingPowerForQuorum: 1000,
		ProposalMinPassPct:              60,
	}
}

func TestNamespaceValid(t *testing.T) {
	ns := testNamespace()
	require.True(t, ns.Valid())

	bad := *ns
	bad.LockupMinDuration = 0
	require.False(t, bad.Valid())

	bad = *ns
	bad.LockupMaxSaturation = uint64(ns.LockupMinDuration)
	require.False(t, bad.Valid())

	bad = *ns
	bad.LockupDefaultTargetVotingPct = 99
	require.False(t, bad.Valid())

	bad = *ns
	bad.LockupDefaultTargetVotingPct = 2501
	require.False(t, bad.Valid())

	bad = *ns
	bad.ProposalMinPassPct = 101
	require.False(t, bad.Valid())
}

func TestNamespaceNowOverride(t *testing.T) {
	ns := testNamespace()
	require.Equal(t, int64(1234), ns.Now(1234))
	ns.OverrideNow = 999
	require.Equal(t, int64(999), ns.Now(1234))
}

func TestLinearPowerCurve(t *testing.T) {
	ns := testNamespace()
	start := int64(1000)
	l := &Lockup{
		Amount:          10000,
		StartTs:         start,
		TargetVotingPct: 2000,
	}

	// at or below the minimum duration the curve floors at the amount
	l.EndTs = start + ns.LockupMinDuration
	require.Equal(t, uint64(10000), LinearPower(ns, l, start))

	// at or past saturation the curve caps at TargetVotingPct/100 x amount
	l.EndTs = start + int64(ns.LockupMaxSaturation)
	require.Equal(t, uint64(200000), LinearPower(ns, l, start))

	// one year sits between the two anchors
	l.EndTs = start + 365*testDay
	require.Equal(t, uint64(56120), LinearPower(ns, l, start))

	// an expired lockup carries no power
	require.Equal(t, uint64(0), LinearPower(ns, l, l.EndTs))
	require.Equal(t, uint64(0), LinearPower(ns, l, l.EndTs+1))
}

func TestLinearPowerUsesWeightedStart(t *testing.T) {
	ns := testNamespace()
	start := int64(1000)
	l := &Lockup{
		Amount:          10000,
		StartTs:         start,
		EndTs:           start + int64(ns.LockupMaxSaturation),
		TargetVotingPct: 2000,
	}
	full := LinearPower(ns, l, start)

	// pushing the weighted start forward shortens the effective duration
	l.WeightedStartTs = start + int64(ns.LockupMaxSaturation) - ns.LockupMinDuration
	require.Less(t, LinearPower(ns, l, start), full)
	require.Equal(t, l.Amount, LinearPower(ns, l, start))
}

func TestLockupValid(t *testing.T) {
	ns := testNamespace()
	now := int64(1000)
	l := &Lockup{
		Amount:          500,
		StartTs:         now,
		EndTs:           now + ns.LockupMinDuration,
		TargetVotingPct: 2000,
	}
	require.True(t, l.Valid(ns, now))

	// the zero end sentinel is always a valid maturity
	open := *l
	open.EndTs = 0
	require.True(t, open.Valid(ns, now))

	short := *l
	short.EndTs = now + ns.LockupMinDuration - 1
	require.False(t, short.Valid(ns, now))

	dust := *l
	dust.Amount = ns.LockupMinAmount - 1
	require.False(t, dust.Valid(ns, now))
}

func TestRewardsPower(t *testing.T) {
	ns := testNamespace()
	start := int64(1000)
	l := &Lockup{
		Amount:           10000,
		StartTs:          start,
		EndTs:            start + int64(ns.LockupMaxSaturation),
		TargetRewardsPct: 150,
		TargetVotingPct:  2000,
	}
	p, err := l.RewardsPower(ns, start)
	require.NoError(t, err)
	require.Equal(t, uint64(300000), p)

	// delegated lockups hold zero rewards weight
	l.TargetRewardsPct = 0
	p, err = l.RewardsPower(ns, start)
	require.NoError(t, err)
	require.Equal(t, uint64(0), p)
}

func TestProposalCastVoteAndTally(t *testing.T) {
	p := &Proposal{StartTs: 100, EndTs: 200}
	require.True(t, p.Valid())
	require.True(t, p.CanUpdate())

	require.NoError(t, p.CastVote(0, 500))
	require.NoError(t, p.CastVote(1, 300))
	require.NoError(t, p.CastVote(0, 200))
	require.Equal(t, uint64(1000), p.TotalVotingPower())
	require.Equal(t, uint64(700), p.VotingPowerChoices[0])
	require.False(t, p.CanUpdate())

	require.ErrorIs(t, p.CastVote(MaxVotingChoices, 1), ErrInvalidVoteChoice)
}

func TestProposalQuorumAndPass(t *testing.T) {
	ns := testNamespace()
	p := &Proposal{StartTs: 100, EndTs: 200}

	require.NoError(t, p.CastVote(2, 900))
	require.False(t, p.HasQuorum(ns))
	require.False(t, p.HasPassed(ns, 300))

	require.NoError(t, p.CastVote(2, 600))
	require.True(t, p.HasQuorum(ns))

	// the window must have closed before a pass is final
	require.False(t, p.HasPassed(ns, 150))
	require.True(t, p.HasPassed(ns, 200))

	// a split below the pass threshold never passes
	split := &Proposal{StartTs: 100, EndTs: 200}
	require.NoError(t, split.CastVote(0, 800))
	require.NoError(t, split.CastVote(1, 800))
	require.True(t, split.HasQuorum(ns))
	require.False(t, split.HasPassed(ns, 200))
}

func TestProposalValidBounds(t *testing.T) {
	p := &Proposal{StartTs: 200, EndTs: 100}
	require.False(t, p.Valid())

	p = &Proposal{StartTs: 100, EndTs: 200, Uri: string(make([]byte, MaxUriLen+1))}
	require.False(t, p.Valid())
}
