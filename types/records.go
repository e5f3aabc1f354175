package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

const (
	MaxVotingChoices = 6
	MaxUriLen        = 255
)

// RecordKind is the fixed-width discriminator leading every stored record.
type RecordKind uint8

const (
	KindUnknown           RecordKind = 0
	KindNamespace         RecordKind = 1
	KindLockup            RecordKind = 2
	KindProposal          RecordKind = 3
	KindVoteRecord        RecordKind = 4
	KindDistribution      RecordKind = 5
	KindDistributionClaim RecordKind = 6
)

type ProposalStatus uint8

const (
	ProposalStatusDraft ProposalStatus = 0
)

// Namespace holds the deployment-wide configuration and the three
// authority identities. One instance per deployment.
type Namespace struct {
	Deployer        common.Address `json:"deployer"`
	SecurityCouncil common.Address `json:"securityCouncil"`
	ReviewCouncil   common.Address `json:"reviewCouncil"`

	OverrideNow                     int64  `json:"overrideNow"`
	LockupDefaultTargetRewardsPct   uint16 `json:"lockupDefaultTargetRewardsPct"`
	LockupDefaultTargetVotingPct    uint16 `json:"lockupDefaultTargetVotingPct"`
	LockupMinDuration               int64  `json:"lockupMinDuration"`
	LockupMinAmount                 uint64 `json:"lockupMinAmount"`
	LockupMaxSaturation             uint64 `json:"lockupMaxSaturation"`
	ProposalMinVotingPowerForQuorum uint64 `json:"proposalMinVotingPowerForQuorum"`
	ProposalMinPassPct              uint16 `json:"proposalMinPassPct"`
	ProposalCanUpdateAfterVotes     bool   `json:"proposalCanUpdateAfterVotes"`

	LockupAmount  uint64 `json:"lockupAmount"`
	ProposalNonce uint32 `json:"proposalNonce"`
}

// Now returns the namespace clock: the override if set, otherwise the
// host-supplied block time. The override exists for deterministic tests.
func (ns *Namespace) Now(blockTime int64) int64 {
	if ns.OverrideNow != 0 {
		return ns.OverrideNow
	}
	return blockTime
}

func (ns *Namespace) Valid() bool {
	return ns.LockupMinDuration > 0 &&
		ns.LockupMinAmount > 0 &&
		ns.LockupMaxSaturation > uint64(ns.LockupMinDuration) &&
		ns.LockupDefaultTargetRewardsPct >= 100 &&
		ns.LockupDefaultTargetVotingPct >= 100 &&
		ns.LockupDefaultTargetVotingPct <= 2500 && // max 25x
		ns.ProposalMinVotingPowerForQuorum > 0 &&
		ns.ProposalMinPassPct > 0 &&
		ns.ProposalMinPassPct <= 100
}

// Lockup is the per-owner staking record. EndTs == 0 means no fixed
// maturity; WeightedStartTs == 0 falls back to StartTs.
type Lockup struct {
	Ns    common.Address `json:"ns"`
	Owner common.Address `json:"owner"`

	Amount          uint64 `json:"amount"`
	StartTs         int64  `json:"startTs"`
	EndTs           int64  `json:"endTs"`
	WeightedStartTs int64  `json:"weightedStartTs"`

	TargetRewardsPct uint16 `json:"targetRewardsPct"`
	TargetVotingPct  uint16 `json:"targetVotingPct"`
}

func (l *Lockup) MinEndTs(ns *Namespace, now int64) (int64, error) {
	return checkedAddI64(now, ns.LockupMinDuration)
}

func (l *Lockup) Valid(ns *Namespace, now int64) bool {
	minEnd, err := l.MinEndTs(ns, now)
	if err != nil {
		return false
	}
	return l.Amount >= ns.LockupMinAmount &&
		l.StartTs >= 0 &&
		(l.EndTs >= minEnd || l.EndTs == 0) &&
		(l.EndTs >= l.StartTs || l.EndTs == 0) &&
		l.TargetVotingPct >= 100 &&
		l.TargetVotingPct <= 2500
}

func (l *Lockup) EffectiveStartTs() int64 {
	if l.WeightedStartTs == 0 {
		return l.StartTs
	}
	return l.WeightedStartTs
}

// PowerFunc maps a lockup to its voting-power scalar at a given moment.
// The mapping is a deployment parameter; it must be deterministic.
type PowerFunc func(ns *Namespace, l *Lockup, now int64) uint64

// LinearPower is the default curve: zero once expired, 100% of the
// amount at the minimum duration, rising linearly to
// TargetVotingPct/100 x amount at the saturation duration.
//
//	                Voting Power
//	                 ^
//	                 |
//	Max Voting Power |           ----
//	                 |         /
//	                 |        /
//	                 |       /
//	                 |      /
//	           100%  |    /
//	                 | ---
//	                 +---------------------> EndTs - EffectiveStartTs
//	                   MinTime   MaxTime
func LinearPower(ns *Namespace, l *Lockup, now int64) uint64 {
	if now >= l.EndTs {
		return 0
	}
	if l.EndTs <= l.StartTs {
		return 0
	}

	duration := new(big.Int).SetInt64(l.EndTs - l.EffectiveStartTs())
	amount := new(big.Int).SetUint64(l.Amount)
	maxPower := new(big.Int).Mul(amount, big.NewInt(int64(l.TargetVotingPct)))
	maxPower.Div(maxPower, big.NewInt(100))

	minDuration := new(big.Int).SetInt64(ns.LockupMinDuration)
	maxSaturation := new(big.Int).SetUint64(ns.LockupMaxSaturation)

	if duration.Cmp(minDuration) <= 0 {
		return l.Amount // minimal 100% of the amount
	}
	if duration.Cmp(maxSaturation) >= 0 {
		return maxPower.Uint64()
	}

	// amount + (maxPower - amount) * (duration - min) / (saturation - min)
	ret := new(big.Int).Sub(maxPower, amount)
	ret.Mul(ret, new(big.Int).Sub(duration, minDuration))
	ret.Div(ret, new(big.Int).Sub(maxSaturation, minDuration))
	ret.Add(ret, amount)
	return ret.Uint64()
}

// VotingPower evaluates the default curve for this lockup.
func (l *Lockup) VotingPower(ns *Namespace, now int64) uint64 {
	return LinearPower(ns, l, now)
}

// RewardsPower scales the voting power by the rewards target. Not
// consumed by the engine itself; exposed for downstream reward programs.
func (l *Lockup) RewardsPower(ns *Namespace, now int64) (uint64, error) {
	p, err := checkedMulU64(l.VotingPower(ns, now), uint64(l.TargetRewardsPct))
	if err != nil {
		return 0, err
	}
	return p / 100, nil
}

// Proposal is a review-council-issued voting item. The nonce is drawn
// strictly sequentially from the namespace counter.
type Proposal struct {
	Ns    common.Address `json:"ns"`
	Nonce uint32         `json:"nonce"`
	Owner common.Address `json:"owner"`

	StartTs int64          `json:"startTs"`
	EndTs   int64          `json:"endTs"`
	Status  ProposalStatus `json:"status"`

	VotingPowerChoices [MaxVotingChoices]uint64 `json:"votingPowerChoices"`

	Uri string `json:"uri"`
}

func (p *Proposal) Valid() bool {
	return len(p.Uri) <= MaxUriLen && p.StartTs < p.EndTs
}

func (p *Proposal) CanUpdate() bool {
	return p.TotalVotingPower() == 0
}

func (p *Proposal) CastVote(choice uint8, votingPower uint64) error {
	if int(choice) >= MaxVotingChoices {
		return ErrInvalidVoteChoice
	}
	// keeps the cross-choice total inside u64 so tallies never wrap
	if _, err := checkedAddU64(p.TotalVotingPower(), votingPower); err != nil {
		return err
	}
	sum, err := checkedAddU64(p.VotingPowerChoices[choice], votingPower)
	if err != nil {
		return err
	}
	p.VotingPowerChoices[choice] = sum
	return nil
}

func (p *Proposal) TotalVotingPower() uint64 {
	var total uint64
	for _, c := range p.VotingPowerChoices {
		total += c
	}
	return total
}

func (p *Proposal) HasQuorum(ns *Namespace) bool {
	return p.TotalVotingPower() > ns.ProposalMinVotingPowerForQuorum
}

func (p *Proposal) HasPassed(ns *Namespace, now int64) bool {
	if !p.HasQuorum(ns) {
		return false
	}
	if now < p.EndTs {
		return false
	}
	threshold := new(big.Int).SetUint64(p.TotalVotingPower())
	threshold.Mul(threshold, big.NewInt(int64(ns.ProposalMinPassPct)))
	threshold.Div(threshold, big.NewInt(100))
	for _, c := range p.VotingPowerChoices {
		if new(big.Int).SetUint64(c).Cmp(threshold) > 0 {
			return true
		}
	}
	return false
}

// VoteRecord pins one (owner, proposal) vote with the power snapshotted
// at vote time. Immutable once written.
type VoteRecord struct {
	Ns       common.Address `json:"ns"`
	Owner    common.Address `json:"owner"`
	Proposal common.Address `json:"proposal"`
	Lockup   common.Address `json:"lockup"`

	Choice      uint8  `json:"choice"`
	VotingPower uint64 `json:"votingPower"`
}

func (v *VoteRecord) Valid() bool {
	return int(v.Choice) < MaxVotingChoices
}

// Distribution is a dual-cosigner payout escrow. The uuid keeps
// distributions by the same cosigner pair independent.
type Distribution struct {
	Ns        common.Address `json:"ns"`
	Uuid      common.Address `json:"uuid"`
	Cosigner1 common.Address `json:"cosigner1"`
	Cosigner2 common.Address `json:"cosigner2"`
	StartTs   int64          `json:"startTs"`
}

// DistributionClaim records one consumed (claimant, cosigned message)
// payout. Its existence is the replay guard.
type DistributionClaim struct {
	Ns           common.Address `json:"ns"`
	Distribution common.Address `json:"distribution"`
	Claimant     common.Address `json:"claimant"`
	Amount       uint64         `json:"amount"`
	CosignedMsg  [32]byte       `json:"cosignedMsg"` // sha256 of the cosigned message
}
