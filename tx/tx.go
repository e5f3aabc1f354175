package tx

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
)

// VetokenTx is the signed envelope carried in block txs. Signers holds
// the raw ed25519 public keys; Sig holds one signature per signer over
// SigData. The first signer pays the nonce.
type VetokenTx struct {
	Version uint8         `json:"version"`
	Type    VetokenTxType `json:"type"`
	Nonce   uint64        `json:"nonce"`
	Signers [][]byte      `json:"signers"`
	Tx      any           `json:"tx"`
	Sig     [][]byte      `json:"sig"`
}

type InitNamespaceTx struct {
	SecurityCouncil                 common.Address `json:"securityCouncil"`
	ReviewCouncil                   common.Address `json:"reviewCouncil"`
	OverrideNow                     int64          `json:"overrideNow"`
	LockupDefaultTargetRewardsPct   uint16         `json:"lockupDefaultTargetRewardsPct"`
	LockupDefaultTargetVotingPct    uint16         `json:"lockupDefaultTargetVotingPct"`
	LockupMinDuration               int64          `json:"lockupMinDuration"`
	LockupMinAmount                 uint64         `json:"lockupMinAmount"`
	LockupMaxSaturation             uint64         `json:"lockupMaxSaturation"`
	ProposalMinVotingPowerForQuorum uint64         `json:"proposalMinVotingPowerForQuorum"`
	ProposalMinPassPct              uint16         `json:"proposalMinPassPct"`
	ProposalCanUpdateAfterVotes     bool           `json:"proposalCanUpdateAfterVotes"`
}

type StakeTx struct {
	Amount uint64 `json:"amount"`
	EndTs  int64  `json:"endTs"`
}

type StakeOnBehalfTx struct {
	Owner  common.Address `json:"owner"`
	Amount uint64         `json:"amount"`
	EndTs  int64          `json:"endTs"`
}

type UnstakeTx struct{}

type InitProposalTx struct {
	ProposalNonce uint32 `json:"proposalNonce"`
	Uri           string `json:"uri"`
	StartTs       int64  `json:"startTs"`
	EndTs         int64  `json:"endTs"`
}

type UpdateProposalTx struct {
	Proposal common.Address `json:"proposal"`
	Uri      string         `json:"uri"`
	StartTs  int64          `json:"startTs"`
	EndTs    int64          `json:"endTs"`
}

type VoteTx struct {
	Proposal common.Address `json:"proposal"`
	Choice   uint8          `json:"choice"`
}

type InitDistributionTx struct {
	Uuid      common.Address `json:"uuid"`
	Cosigner1 common.Address `json:"cosigner1"`
	Cosigner2 common.Address `json:"cosigner2"`
	StartTs   int64          `json:"startTs"`
}

type ClaimFromDistributionTx struct {
	Distribution common.Address `json:"distribution"`
	Claimant     common.Address `json:"claimant"`
	Amount       uint64         `json:"amount"`
	CosignedMsg  string         `json:"cosignedMsg"`
}

type UpdateDistributionTx struct {
	Distribution common.Address `json:"distribution"`
	StartTs      int64          `json:"startTs"`
}

type WithdrawFromDistributionTx struct {
	Distribution common.Address `json:"distribution"`
	Recipient    common.Address `json:"recipient"`
}

type vetokenTxTmpl[Tx any] struct {
	Version uint8         `json:"version"`
	Type    VetokenTxType `json:"type"`
	Nonce   uint64        `json:"nonce"`
	Signers [][]byte      `json:"signers"`
	Tx      Tx            `json:"tx"`
	Sig     [][]byte      `json:"sig"`
}

// SigData is the byte string every signer signs: the envelope with the
// signature slot replaced by the chain id, so signatures never cross
// chains.
func (tx *VetokenTx) SigData(ext []byte) (dat []byte, err error) {
	ntx := *tx
	ntx.Sig = [][]byte{ext}
	dat, err = json.Marshal(ntx)
	return
}

func parseVetokenTxType(dat []byte) VetokenTxType {
	var tx struct {
		Type VetokenTxType `json:"type"`
	}
	err := json.Unmarshal(dat, &tx)
	if err != nil {
		return VetokenTxTypeUnknown
	}
	return tx.Type
}

func unmarshalVetokenTx[Tx any](dat []byte) (btx *VetokenTx, err error) {
	var txt vetokenTxTmpl[Tx]
	err = json.Unmarshal(dat, &txt)
	if err != nil {
		return
	}
	btx = new(VetokenTx)
	btx.Version = txt.Version
	btx.Type = txt.Type
	btx.Nonce = txt.Nonce
	btx.Signers = txt.Signers
	btx.Tx = &txt.Tx
	btx.Sig = txt.Sig
	return
}

func UnmarshalVetokenTx(dat []byte) (btx *VetokenTx, err error) {
	tp := parseVetokenTxType(dat)
	switch tp {
	case VetokenTxTypeInitNamespace:
		return unmarshalVetokenTx[InitNamespaceTx](dat)
	case VetokenTxTypeStake:
		return unmarshalVetokenTx[StakeTx](dat)
	case VetokenTxTypeStakeOnBehalf:
		return unmarshalVetokenTx[StakeOnBehalfTx](dat)
	case VetokenTxTypeUnstake:
		return unmarshalVetokenTx[UnstakeTx](dat)
	case VetokenTxTypeInitProposal:
		return unmarshalVetokenTx[InitProposalTx](dat)
	case VetokenTxTypeUpdateProposal:
		return unmarshalVetokenTx[UpdateProposalTx](dat)
	case VetokenTxTypeVote:
		return unmarshalVetokenTx[VoteTx](dat)
	case VetokenTxTypeInitDistribution:
		return unmarshalVetokenTx[InitDistributionTx](dat)
	case VetokenTxTypeClaim:
		return unmarshalVetokenTx[ClaimFromDistributionTx](dat)
	case VetokenTxTypeUpdateDist:
		return unmarshalVetokenTx[UpdateDistributionTx](dat)
	case VetokenTxTypeWithdrawDist:
		return unmarshalVetokenTx[WithdrawFromDistributionTx](dat)
	default:
		err = ErrUnsupportedTxType
	}
	return
}

func MarshalVetokenTx(btx *VetokenTx) (dat []byte, err error) {
	return json.Marshal(btx)
}
