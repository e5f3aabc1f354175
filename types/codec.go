package types

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// Stored records begin with a one-byte kind discriminator followed by
// their fields in fixed little-endian order, then reserved padding.
// Decoders read only the known-layout prefix and ignore trailing bytes,
// so a record written with a larger legacy padding region still decodes.

const (
	NamespacePadding         = 240
	LockupPadding            = 232
	ProposalPadding          = 240
	VoteRecordPadding        = 32
	VoteRecordLegacyPadding  = 64
	DistributionPadding      = 240
	DistributionClaimPadding = 240
)

var (
	ErrShortRecord = errors.New("record too short")
	ErrWrongKind   = errors.New("unexpected record kind")
	ErrUriTooLong  = errors.New("uri too long")
)

// RecordKindOf peeks the discriminator without decoding the body.
func RecordKindOf(dat []byte) RecordKind {
	if len(dat) == 0 {
		return KindUnknown
	}
	return RecordKind(dat[0])
}

type recordWriter struct {
	buf bytes.Buffer
}

func newRecordWriter(kind RecordKind) *recordWriter {
	w := &recordWriter{}
	w.buf.WriteByte(byte(kind))
	return w
}

func (w *recordWriter) addr(a common.Address) { w.buf.Write(a[:]) }

func (w *recordWriter) u16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *recordWriter) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *recordWriter) u64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *recordWriter) i64(v int64) { w.u64(uint64(v)) }

func (w *recordWriter) u8(v uint8) { w.buf.WriteByte(v) }

func (w *recordWriter) bool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

func (w *recordWriter) bytes(b []byte) { w.buf.Write(b) }

func (w *recordWriter) pad(n int) { w.buf.Write(make([]byte, n)) }

func (w *recordWriter) finish() []byte { return w.buf.Bytes() }

type recordReader struct {
	dat []byte
	off int
	err error
}

func newRecordReader(dat []byte, kind RecordKind) *recordReader {
	r := &recordReader{dat: dat}
	if len(dat) == 0 {
		r.err = ErrShortRecord
		return r
	}
	if RecordKind(dat[0]) != kind {
		r.err = ErrWrongKind
		return r
	}
	r.off = 1
	return r
}

func (r *recordReader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.off+n > len(r.dat) {
		r.err = ErrShortRecord
		return nil
	}
	b := r.dat[r.off : r.off+n]
	r.off += n
	return b
}

func (r *recordReader) addr() (a common.Address) {
	if b := r.take(common.AddressLength); b != nil {
		copy(a[:], b)
	}
	return
}

func (r *recordReader) u16() uint16 {
	if b := r.take(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (r *recordReader) u32() uint32 {
	if b := r.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (r *recordReader) u64() uint64 {
	if b := r.take(8); b != nil {
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

func (r *recordReader) i64() int64 { return int64(r.u64()) }

func (r *recordReader) u8() uint8 {
	if b := r.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *recordReader) bool() bool { return r.u8() != 0 }

func (ns *Namespace) Encode() []byte {
	w := newRecordWriter(KindNamespace)
	w.addr(ns.Deployer)
	w.addr(ns.SecurityCouncil)
	w.addr(ns.ReviewCouncil)
	w.i64(ns.OverrideNow)
	w.u16(ns.LockupDefaultTargetRewardsPct)
	w.u16(ns.LockupDefaultTargetVotingPct)
	w.i64(ns.LockupMinDuration)
	w.u64(ns.LockupMinAmount)
	w.u64(ns.LockupMaxSaturation)
	w.u64(ns.ProposalMinVotingPowerForQuorum)
	w.u16(ns.ProposalMinPassPct)
	w.bool(ns.ProposalCanUpdateAfterVotes)
	w.u64(ns.LockupAmount)
	w.u32(ns.ProposalNonce)
	w.pad(NamespacePadding)
	return w.finish()
}

func DecodeNamespace(dat []byte) (*Namespace, error) {
	r := newRecordReader(dat, KindNamespace)
	ns := &Namespace{
		Deployer:                        r.addr(),
		SecurityCouncil:                 r.addr(),
		ReviewCouncil:                   r.addr(),
		OverrideNow:                     r.i64(),
		LockupDefaultTargetRewardsPct:   r.u16(),
		LockupDefaultTargetVotingPct:    r.u16(),
		LockupMinDuration:               r.i64(),
		LockupMinAmount:                 r.u64(),
		LockupMaxSaturation:             r.u64(),
		ProposalMinVotingPowerForQuorum: r.u64(),
		ProposalMinPassPct:              r.u16(),
		ProposalCanUpdateAfterVotes:     r.bool(),
		LockupAmount:                    r.u64(),
		ProposalNonce:                   r.u32(),
	}
	return ns, r.err
}

func (l *Lockup) Encode() []byte {
	w := newRecordWriter(KindLockup)
	w.addr(l.Ns)
	w.addr(l.Owner)
	w.u64(l.Amount)
	w.i64(l.StartTs)
	w.i64(l.EndTs)
	w.i64(l.WeightedStartTs)
	w.u16(l.TargetRewardsPct)
	w.u16(l.TargetVotingPct)
	w.pad(LockupPadding)
	return w.finish()
}

func DecodeLockup(dat []byte) (*Lockup, error) {
	r := newRecordReader(dat, KindLockup)
	l := &Lockup{
		Ns:              r.addr(),
		Owner:           r.addr(),
		Amount:          r.u64(),
		StartTs:         r.i64(),
		EndTs:           r.i64(),
		WeightedStartTs: r.i64(),
		TargetRewardsPct: r.u16(),
		TargetVotingPct:  r.u16(),
	}
	return l, r.err
}

func (p *Proposal) Encode() ([]byte, error) {
	if len(p.Uri) > MaxUriLen {
		return nil, ErrUriTooLong
	}
	w := newRecordWriter(KindProposal)
	w.addr(p.Ns)
	w.u32(p.Nonce)
	w.addr(p.Owner)
	w.i64(p.StartTs)
	w.i64(p.EndTs)
	w.u8(uint8(p.Status))
	for _, c := range p.VotingPowerChoices {
		w.u64(c)
	}
	w.u16(uint16(len(p.Uri)))
	w.bytes([]byte(p.Uri))
	w.pad(ProposalPadding)
	return w.finish(), nil
}

func DecodeProposal(dat []byte) (*Proposal, error) {
	r := newRecordReader(dat, KindProposal)
	p := &Proposal{
		Ns:      r.addr(),
		Nonce:   r.u32(),
		Owner:   r.addr(),
		StartTs: r.i64(),
		EndTs:   r.i64(),
		Status:  ProposalStatus(r.u8()),
	}
	for i := range p.VotingPowerChoices {
		p.VotingPowerChoices[i] = r.u64()
	}
	uriLen := int(r.u16())
	p.Uri = string(r.take(uriLen))
	return p, r.err
}

func (v *VoteRecord) Encode() []byte {
	w := newRecordWriter(KindVoteRecord)
	w.addr(v.Ns)
	w.addr(v.Owner)
	w.addr(v.Proposal)
	w.addr(v.Lockup)
	w.u8(v.Choice)
	w.u64(v.VotingPower)
	w.pad(VoteRecordPadding)
	return w.finish()
}

// DecodeVoteRecord reads the fixed prefix only; records persisted with
// the legacy larger padding region decode identically.
func DecodeVoteRecord(dat []byte) (*VoteRecord, error) {
	r := newRecordReader(dat, KindVoteRecord)
	v := &VoteRecord{
		Ns:          r.addr(),
		Owner:       r.addr(),
		Proposal:    r.addr(),
		Lockup:      r.addr(),
		Choice:      r.u8(),
		VotingPower: r.u64(),
	}
	return v, r.err
}

func (d *Distribution) Encode() []byte {
	w := newRecordWriter(KindDistribution)
	w.addr(d.Ns)
	w.addr(d.Uuid)
	w.addr(d.Cosigner1)
	w.addr(d.Cosigner2)
	w.i64(d.StartTs)
	w.pad(DistributionPadding)
	return w.finish()
}

func DecodeDistribution(dat []byte) (*Distribution, error) {
	r := newRecordReader(dat, KindDistribution)
	d := &Distribution{
		Ns:        r.addr(),
		Uuid:      r.addr(),
		Cosigner1: r.addr(),
		Cosigner2: r.addr(),
		StartTs:   r.i64(),
	}
	return d, r.err
}

func (c *DistributionClaim) Encode() []byte {
	w := newRecordWriter(KindDistributionClaim)
	w.addr(c.Ns)
	w.addr(c.Distribution)
	w.addr(c.Claimant)
	w.u64(c.Amount)
	w.bytes(c.CosignedMsg[:])
	w.pad(DistributionClaimPadding)
	return w.finish()
}

func DecodeDistributionClaim(dat []byte) (*DistributionClaim, error) {
	r := newRecordReader(dat, KindDistributionClaim)
	c := &DistributionClaim{
		Ns:           r.addr(),
		Distribution: r.addr(),
		Claimant:     r.addr(),
		Amount:       r.u64(),
	}
	if b := r.take(32); b != nil {
		copy(c.CosignedMsg[:], b)
	}
	return c, r.err
}
