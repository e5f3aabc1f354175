package types

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestNamespaceEncodeDecode(t *testing.T) {
	ns := testNamespace()
	ns.Deployer = common.HexToAddress("0x11")
	ns.OverrideNow = -42
	ns.LockupAmount = 123456
	ns.ProposalNonce = 7
	ns.ProposalCanUpdateAfterVotes = true

	dat := ns.Encode()
	require.Equal(t, KindNamespace, RecordKindOf(dat))

	got, err := DecodeNamespace(dat)
	require.NoError(t, err)
	require.Equal(t, ns, got)
}

func TestLockupEncodeDecode(t *testing.T) {
	l := &Lockup{
		Ns:               common.HexToAddress("0x01"),
		Owner:            common.HexToAddress("0x02"),
		Amount:           5_000_000_000_000,
		StartTs:          1_700_000_000,
		EndTs:            1_700_000_000 + 4*365*testDay,
		WeightedStartTs:  1_700_001_000,
		TargetRewardsPct: 100,
		TargetVotingPct:  2000,
	}
	got, err := DecodeLockup(l.Encode())
	require.NoError(t, err)
	require.Equal(t, l, got)
}

func TestProposalEncodeDecode(t *testing.T) {
	p := &Proposal{
		Ns:      common.HexToAddress("0x01"),
		Nonce:   3,
		Owner:   common.HexToAddress("0x33"),
		StartTs: 100,
		EndTs:   200,
		Uri:     "ipfs://QmProposal",
	}
	p.VotingPowerChoices[0] = 700
	p.VotingPowerChoices[5] = 42

	dat, err := p.Encode()
	require.NoError(t, err)
	got, err := DecodeProposal(dat)
	require.NoError(t, err)
	require.Equal(t, p, got)
}

func TestProposalEncodeRejectsLongUri(t *testing.T) {
	p := &Proposal{StartTs: 100, EndTs: 200, Uri: string(make([]byte, MaxUriLen+1))}
	_, err := p.Encode()
	require.ErrorIs(t, err, ErrUriTooLong)
}

// Vote records persisted by older versions carried a larger reserved
// region. Decoding reads only the known-layout prefix, so both widths
// must yield identical logical fields.
func TestVoteRecordLegacyPadding(t *testing.T) {
	v := &VoteRecord{
		Ns:          common.HexToAddress("0x01"),
		Owner:       common.HexToAddress("0x02"),
		Proposal:    common.HexToAddress("0x03"),
		Lockup:      common.HexToAddress("0x04"),
		Choice:      2,
		VotingPower: 98765,
	}
	current := v.Encode()
	legacy := append(append([]byte(nil), current...),
		make([]byte, VoteRecordLegacyPadding-VoteRecordPadding)...)
	require.Greater(t, len(legacy), len(current))

	fromCurrent, err := DecodeVoteRecord(current)
	require.NoError(t, err)
	fromLegacy, err := DecodeVoteRecord(legacy)
	require.NoError(t, err)
	require.Equal(t, fromCurrent, fromLegacy)
	require.Equal(t, v, fromLegacy)
}

func TestDistributionClaimEncodeDecode(t *testing.T) {
	c := &DistributionClaim{
		Ns:           common.HexToAddress("0x01"),
		Distribution: common.HexToAddress("0x05"),
		Claimant:     common.HexToAddress("0x06"),
		Amount:       33_000_000,
	}
	copy(c.CosignedMsg[:], []byte("tranche-2026-08"))

	got, err := DecodeDistributionClaim(c.Encode())
	require.NoError(t, err)
	require.Equal(t, c, got)
}

func TestDecodeRejectsWrongKind(t *testing.T) {
	l := &Lockup{Owner: common.HexToAddress("0x02"), Amount: 1}
	_, err := DecodeNamespace(l.Encode())
	require.ErrorIs(t, err, ErrWrongKind)

	_, err = DecodeLockup(nil)
	require.ErrorIs(t, err, ErrShortRecord)

	_, err = DecodeVoteRecord([]byte{byte(KindVoteRecord), 1, 2})
	require.ErrorIs(t, err, ErrShortRecord)
}
