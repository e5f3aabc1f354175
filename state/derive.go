package state

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Record addresses derive deterministically from a per-entity seed tag
// and the identifying components, so no registry is needed and the same
// inputs always land on the same store key.
const (
	seedNamespace         = "namespace"
	seedLockup            = "lockup"
	seedProposal          = "proposal"
	seedVoteRecord        = "vote_record"
	seedDistribution      = "distribution"
	seedDistributionClaim = "claim"
)

func derive(tag string, seeds ...[]byte) common.Address {
	dat := []byte(tag)
	for _, s := range seeds {
		dat = append(dat, s...)
	}
	h := crypto.Keccak256(dat)
	return common.BytesToAddress(h[12:])
}

func DeriveNamespace(deployer common.Address) common.Address {
	return derive(seedNamespace, deployer.Bytes())
}

func DeriveLockup(ns, owner common.Address) common.Address {
	return derive(seedLockup, ns.Bytes(), owner.Bytes())
}

func DeriveProposal(ns common.Address, nonce uint32) common.Address {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], nonce)
	return derive(seedProposal, ns.Bytes(), b[:])
}

func DeriveVoteRecord(ns, owner, proposal common.Address) common.Address {
	return derive(seedVoteRecord, ns.Bytes(), owner.Bytes(), proposal.Bytes())
}

func DeriveDistribution(ns, uuid common.Address) common.Address {
	return derive(seedDistribution, ns.Bytes(), uuid.Bytes())
}

// HashCosignedMsg pins the free-form cosigned message to a fixed width.
func HashCosignedMsg(msg string) [32]byte {
	return sha256.Sum256([]byte(msg))
}

func DeriveDistributionClaim(ns, claimant common.Address, cosignedMsg string) common.Address {
	h := HashCosignedMsg(cosignedMsg)
	return derive(seedDistributionClaim, ns.Bytes(), claimant.Bytes(), h[:])
}
