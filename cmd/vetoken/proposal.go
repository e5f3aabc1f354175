package main

import (
	"github.com/TaoGe96/vetoken/tx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

type proposalArguments struct {
	txArguments
	ProposalNonce uint32
	Proposal      string
	Uri           string
	StartTs       int64
	EndTs         int64
	Choice        uint8
}

var newProposalArgs proposalArguments

var newProposalCmd = &cobra.Command{
	Use:   "newproposal",
	Short: "Review council: open a proposal under the next nonce",
	Run:   newProposalRun,
}

func init() {
	txFlags(newProposalCmd, &newProposalArgs.txArguments)
	newProposalCmd.Flags().Uint32VarP(&newProposalArgs.ProposalNonce, "pnonce", "p", 0, "namespace proposal nonce")
	newProposalCmd.Flags().StringVarP(&newProposalArgs.Uri, "uri", "r", "", "proposal metadata uri")
	newProposalCmd.Flags().Int64VarP(&newProposalArgs.StartTs, "start", "b", 0, "voting window start timestamp")
	newProposalCmd.Flags().Int64VarP(&newProposalArgs.EndTs, "end", "e", 0, "voting window end timestamp")
}

func newProposalRun(cmd *cobra.Command, args []string) {
	sendTx(&newProposalArgs.txArguments, []string{newProposalArgs.Skey}, tx.VetokenTxTypeInitProposal, &tx.InitProposalTx{
		ProposalNonce: newProposalArgs.ProposalNonce,
		Uri:           newProposalArgs.Uri,
		StartTs:       newProposalArgs.StartTs,
		EndTs:         newProposalArgs.EndTs,
	})
}

var updateProposalArgs proposalArguments

var updateProposalCmd = &cobra.Command{
	Use:   "updateproposal",
	Short: "Review council: rewrite a proposal's metadata and window",
	Run:   updateProposalRun,
}

func init() {
	txFlags(updateProposalCmd, &updateProposalArgs.txArguments)
	updateProposalCmd.Flags().StringVarP(&updateProposalArgs.Proposal, "proposal", "p", "", "proposal address")
	updateProposalCmd.Flags().StringVarP(&updateProposalArgs.Uri, "uri", "r", "", "proposal metadata uri")
	updateProposalCmd.Flags().Int64VarP(&updateProposalArgs.StartTs, "start", "b", 0, "voting window start timestamp")
	updateProposalCmd.Flags().Int64VarP(&updateProposalArgs.EndTs, "end", "e", 0, "voting window end timestamp")
}

func updateProposalRun(cmd *cobra.Command, args []string) {
	sendTx(&updateProposalArgs.txArguments, []string{updateProposalArgs.Skey}, tx.VetokenTxTypeUpdateProposal, &tx.UpdateProposalTx{
		Proposal: common.HexToAddress(updateProposalArgs.Proposal),
		Uri:      updateProposalArgs.Uri,
		StartTs:  updateProposalArgs.StartTs,
		EndTs:    updateProposalArgs.EndTs,
	})
}

var voteArgs proposalArguments

var voteCmd = &cobra.Command{
	Use:   "vote",
	Short: "Cast the sender's voting power on a proposal",
	Run:   voteRun,
}

func init() {
	txFlags(voteCmd, &voteArgs.txArguments)
	voteCmd.Flags().StringVarP(&voteArgs.Proposal, "proposal", "p", "", "proposal address")
	voteCmd.Flags().Uint8VarP(&voteArgs.Choice, "choice", "c", 0, "voting choice index")
}

func voteRun(cmd *cobra.Command, args []string) {
	sendTx(&voteArgs.txArguments, []string{voteArgs.Skey}, tx.VetokenTxTypeVote, &tx.VoteTx{
		Proposal: common.HexToAddress(voteArgs.Proposal),
		Choice:   voteArgs.Choice,
	})
}
