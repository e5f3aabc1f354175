package types

import (
	"fmt"
	"strconv"

	abci "github.com/cometbft/cometbft/abci/types"
)

const (
	EventInitNamespaceType = "init_namespace"
	EventStakeType         = "stake"
	EventUnstakeType       = "unstake"
	EventProposalType      = "proposal"
	EventVoteType          = "vote"
	EventDistributionType  = "distribution"
	EventClaimType         = "claim"
	EventWithdrawType      = "withdraw"
)

type EventInitNamespace struct {
	Namespace string `json:"namespace"`
	Deployer  string `json:"deployer"`
}

func EncodeEventInitNamespace(event *EventInitNamespace) abci.Event {
	return abci.Event{
		Type: EventInitNamespaceType,
		Attributes: []abci.EventAttribute{
			{Key: "namespace", Value: event.Namespace, Index: true},
			{Key: "deployer", Value: event.Deployer, Index: false},
		},
	}
}

func DecodeEventInitNamespace(originEvent abci.Event) *EventInitNamespace {
	event := &EventInitNamespace{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "namespace":
			event.Namespace = v.Value
		case "deployer":
			event.Deployer = v.Value
		}
	}
	return event
}

type EventStake struct {
	Owner           string `json:"owner"`
	Amount          uint64 `json:"amount"`
	TotalAmount     uint64 `json:"totalAmount"`
	EndTs           int64  `json:"endTs"`
	WeightedStartTs int64  `json:"weightedStartTs"`
	OnBehalf        bool   `json:"onBehalf"`
}

func EncodeEventStake(event *EventStake) abci.Event {
	return abci.Event{
		Type: EventStakeType,
		Attributes: []abci.EventAttribute{
			{Key: "owner", Value: event.Owner, Index: true},
			{Key: "amount", Value: fmt.Sprintf("%v", event.Amount), Index: false},
			{Key: "totalAmount", Value: fmt.Sprintf("%v", event.TotalAmount), Index: false},
			{Key: "endTs", Value: fmt.Sprintf("%v", event.EndTs), Index: false},
			{Key: "weightedStartTs", Value: fmt.Sprintf("%v", event.WeightedStartTs), Index: false},
			{Key: "onBehalf", Value: fmt.Sprintf("%v", event.OnBehalf), Index: false},
		},
	}
}

func DecodeEventStake(originEvent abci.Event) *EventStake {
	event := &EventStake{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "owner":
			event.Owner = v.Value
		case "amount":
			amount, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Amount = amount
		case "totalAmount":
			total, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.TotalAmount = total
		case "endTs":
			endTs, err := strconv.ParseInt(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.EndTs = endTs
		case "weightedStartTs":
			ts, err := strconv.ParseInt(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.WeightedStartTs = ts
		case "onBehalf":
			onBehalf, err := strconv.ParseBool(v.Value)
			if err != nil {
				return nil
			}
			event.OnBehalf = onBehalf
		}
	}
	return event
}

type EventUnstake struct {
	Owner  string `json:"owner"`
	Amount uint64 `json:"amount"`
}

func EncodeEventUnstake(event *EventUnstake) abci.Event {
	return abci.Event{
		Type: EventUnstakeType,
		Attributes: []abci.EventAttribute{
			{Key: "owner", Value: event.Owner, Index: true},
			{Key: "amount", Value: fmt.Sprintf("%v", event.Amount), Index: false},
		},
	}
}

func DecodeEventUnstake(originEvent abci.Event) *EventUnstake {
	event := &EventUnstake{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "owner":
			event.Owner = v.Value
		case "amount":
			amount, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Amount = amount
		}
	}
	return event
}

type EventProposal struct {
	Proposal string `json:"proposal"`
	Nonce    uint32 `json:"nonce"`
	Uri      string `json:"uri"`
	StartTs  int64  `json:"startTs"`
	EndTs    int64  `json:"endTs"`
	Updated  bool   `json:"updated"`
}

func EncodeEventProposal(event *EventProposal) abci.Event {
	return abci.Event{
		Type: EventProposalType,
		Attributes: []abci.EventAttribute{
			{Key: "proposal", Value: event.Proposal, Index: true},
			{Key: "nonce", Value: fmt.Sprintf("%v", event.Nonce), Index: true},
			{Key: "uri", Value: event.Uri, Index: false},
			{Key: "startTs", Value: fmt.Sprintf("%v", event.StartTs), Index: false},
			{Key: "endTs", Value: fmt.Sprintf("%v", event.EndTs), Index: false},
			{Key: "updated", Value: fmt.Sprintf("%v", event.Updated), Index: false},
		},
	}
}

func DecodeEventProposal(originEvent abci.Event) *EventProposal {
	event := &EventProposal{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "proposal":
			event.Proposal = v.Value
		case "nonce":
			nonce, err := strconv.ParseUint(v.Value, 10, 32)
			if err != nil {
				return nil
			}
			event.Nonce = uint32(nonce)
		case "uri":
			event.Uri = v.Value
		case "startTs":
			startTs, err := strconv.ParseInt(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.StartTs = startTs
		case "endTs":
			endTs, err := strconv.ParseInt(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.EndTs = endTs
		case "updated":
			updated, err := strconv.ParseBool(v.Value)
			if err != nil {
				return nil
			}
			event.Updated = updated
		}
	}
	return event
}

type EventVote struct {
	Owner       string `json:"owner"`
	Proposal    string `json:"proposal"`
	Choice      uint8  `json:"choice"`
	VotingPower uint64 `json:"votingPower"`
}

func EncodeEventVote(event *EventVote) abci.Event {
	return abci.Event{
		Type: EventVoteType,
		Attributes: []abci.EventAttribute{
			{Key: "owner", Value: event.Owner, Index: true},
			{Key: "proposal", Value: event.Proposal, Index: true},
			{Key: "choice", Value: fmt.Sprintf("%v", event.Choice), Index: false},
			{Key: "votingPower", Value: fmt.Sprintf("%v", event.VotingPower), Index: false},
		},
	}
}

func DecodeEventVote(originEvent abci.Event) *EventVote {
	event := &EventVote{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "owner":
			event.Owner = v.Value
		case "proposal":
			event.Proposal = v.Value
		case "choice":
			choice, err := strconv.ParseUint(v.Value, 10, 8)
			if err != nil {
				return nil
			}
			event.Choice = uint8(choice)
		case "votingPower":
			power, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.VotingPower = power
		}
	}
	return event
}

type EventDistribution struct {
	Distribution string `json:"distribution"`
	Cosigner1    string `json:"cosigner1"`
	Cosigner2    string `json:"cosigner2"`
	StartTs      int64  `json:"startTs"`
	Updated      bool   `json:"updated"`
}

func EncodeEventDistribution(event *EventDistribution) abci.Event {
	return abci.Event{
		Type: EventDistributionType,
		Attributes: []abci.EventAttribute{
			{Key: "distribution", Value: event.Distribution, Index: true},
			{Key: "cosigner1", Value: event.Cosigner1, Index: false},
			{Key: "cosigner2", Value: event.Cosigner2, Index: false},
			{Key: "startTs", Value: fmt.Sprintf("%v", event.StartTs), Index: false},
			{Key: "updated", Value: fmt.Sprintf("%v", event.Updated), Index: false},
		},
	}
}

func DecodeEventDistribution(originEvent abci.Event) *EventDistribution {
	event := &EventDistribution{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "distribution":
			event.Distribution = v.Value
		case "cosigner1":
			event.Cosigner1 = v.Value
		case "cosigner2":
			event.Cosigner2 = v.Value
		case "startTs":
			startTs, err := strconv.ParseInt(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.StartTs = startTs
		case "updated":
			updated, err := strconv.ParseBool(v.Value)
			if err != nil {
				return nil
			}
			event.Updated = updated
		}
	}
	return event
}

type EventClaim struct {
	Distribution string `json:"distribution"`
	Claimant     string `json:"claimant"`
	Amount       uint64 `json:"amount"`
}

func EncodeEventClaim(event *EventClaim) abci.Event {
	return abci.Event{
		Type: EventClaimType,
		Attributes: []abci.EventAttribute{
			{Key: "distribution", Value: event.Distribution, Index: true},
			{Key: "claimant", Value: event.Claimant, Index: true},
			{Key: "amount", Value: fmt.Sprintf("%v", event.Amount), Index: false},
		},
	}
}

func DecodeEventClaim(originEvent abci.Event) *EventClaim {
	event := &EventClaim{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "distribution":
			event.Distribution = v.Value
		case "claimant":
			event.Claimant = v.Value
		case "amount":
			amount, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Amount = amount
		}
	}
	return event
}

type EventWithdraw struct {
	Distribution string `json:"distribution"`
	Recipient    string `json:"recipient"`
	Amount       uint64 `json:"amount"`
}

func EncodeEventWithdraw(event *EventWithdraw) abci.Event {
	return abci.Event{
		Type: EventWithdrawType,
		Attributes: []abci.EventAttribute{
			{Key: "distribution", Value: event.Distribution, Index: true},
			{Key: "recipient", Value: event.Recipient, Index: false},
			{Key: "amount", Value: fmt.Sprintf("%v", event.Amount), Index: false},
		},
	}
}

func DecodeEventWithdraw(originEvent abci.Event) *EventWithdraw {
	event := &EventWithdraw{}
	for _, v := range originEvent.Attributes {
		switch v.Key {
		case "distribution":
			event.Distribution = v.Value
		case "recipient":
			event.Recipient = v.Value
		case "amount":
			amount, err := strconv.ParseUint(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			event.Amount = amount
		}
	}
	return event
}

// DecodeEvent maps an ABCI event back to its typed form. Unknown event
// types and unparseable attributes yield nil.
func DecodeEvent(originEvent abci.Event) any {
	switch originEvent.Type {
	case EventInitNamespaceType:
		if e := DecodeEventInitNamespace(originEvent); e != nil {
			return e
		}
	case EventStakeType:
		if e := DecodeEventStake(originEvent); e != nil {
			return e
		}
	case EventUnstakeType:
		if e := DecodeEventUnstake(originEvent); e != nil {
			return e
		}
	case EventProposalType:
		if e := DecodeEventProposal(originEvent); e != nil {
			return e
		}
	case EventVoteType:
		if e := DecodeEventVote(originEvent); e != nil {
			return e
		}
	case EventDistributionType:
		if e := DecodeEventDistribution(originEvent); e != nil {
			return e
		}
	case EventClaimType:
		if e := DecodeEventClaim(originEvent); e != nil {
			return e
		}
	case EventWithdrawType:
		if e := DecodeEventWithdraw(originEvent); e != nil {
			return e
		}
	}
	return nil
}
