package tx

import (
	"errors"
)

type VetokenTxType uint8

const (
	VetokenTxTypeUnknown          VetokenTxType = 0
	VetokenTxTypeInitNamespace    VetokenTxType = 1
	VetokenTxTypeStake            VetokenTxType = 2
	VetokenTxTypeStakeOnBehalf    VetokenTxType = 3
	VetokenTxTypeUnstake          VetokenTxType = 4
	VetokenTxTypeInitProposal     VetokenTxType = 5
	VetokenTxTypeUpdateProposal   VetokenTxType = 6
	VetokenTxTypeVote             VetokenTxType = 7
	VetokenTxTypeInitDistribution VetokenTxType = 8
	VetokenTxTypeClaim            VetokenTxType = 9
	VetokenTxTypeUpdateDist       VetokenTxType = 10
	VetokenTxTypeWithdrawDist     VetokenTxType = 11
)

const (
	VetokenTxVersion0 uint8 = 0
	VetokenTxVersion1 uint8 = 1
)

var (
	ErrInvalidTx         = errors.New("invalid tx")
	ErrUnsupportedTxType = errors.New("unsupported tx type")
	ErrUnmatchedTxType   = errors.New("unmatched tx type")

	ErrUnsupportedTxVersion = errors.New("unsupported tx version")
)
