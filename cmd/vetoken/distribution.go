package main

import (
	"github.com/TaoGe96/vetoken/tx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

type distributionArguments struct {
	txArguments
	Uuid         string
	Cosigner1    string
	Cosigner2    string
	Distribution string
	Claimant     string
	Recipient    string
	Amount       uint64
	StartTs      int64
	Msg          string
}

var newDistributionArgs distributionArguments

var newDistributionCmd = &cobra.Command{
	Use:   "newdistribution",
	Short: "Open a dual-cosigner distribution escrow",
	Run:   newDistributionRun,
}

func init() {
	txFlags(newDistributionCmd, &newDistributionArgs.txArguments)
	newDistributionCmd.Flags().StringVarP(&newDistributionArgs.Uuid, "uuid", "i", "", "one-time uuid, 20-byte hex")
	newDistributionCmd.Flags().StringVarP(&newDistributionArgs.Cosigner1, "cosigner1", "1", "", "first cosigner address")
	newDistributionCmd.Flags().StringVarP(&newDistributionArgs.Cosigner2, "cosigner2", "2", "", "second cosigner address")
	newDistributionCmd.Flags().Int64VarP(&newDistributionArgs.StartTs, "start", "b", 0, "claims open timestamp")
}

func newDistributionRun(cmd *cobra.Command, args []string) {
	sendTx(&newDistributionArgs.txArguments, []string{newDistributionArgs.Skey}, tx.VetokenTxTypeInitDistribution, &tx.InitDistributionTx{
		Uuid:      common.HexToAddress(newDistributionArgs.Uuid),
		Cosigner1: common.HexToAddress(newDistributionArgs.Cosigner1),
		Cosigner2: common.HexToAddress(newDistributionArgs.Cosigner2),
		StartTs:   newDistributionArgs.StartTs,
	})
}

var claimArgs distributionArguments

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Pay a claimant from a distribution; needs both cosigner keys",
	Run:   claimRun,
}

func init() {
	txFlags(claimCmd, &claimArgs.txArguments)
	claimCmd.Flags().StringVarP(&claimArgs.Cokey, "cokeyPath", "k", "", "second cosigner private key path")
	claimCmd.Flags().StringVarP(&claimArgs.Distribution, "distribution", "t", "", "distribution address")
	claimCmd.Flags().StringVarP(&claimArgs.Claimant, "claimant", "c", "", "claimant address")
	claimCmd.Flags().Uint64VarP(&claimArgs.Amount, "amount", "a", 0, "amount to pay")
	claimCmd.Flags().StringVarP(&claimArgs.Msg, "msg", "m", "", "cosigned message, unique per claim")
}

func claimRun(cmd *cobra.Command, args []string) {
	sendTx(&claimArgs.txArguments, []string{claimArgs.Skey, claimArgs.Cokey}, tx.VetokenTxTypeClaim, &tx.ClaimFromDistributionTx{
		Distribution: common.HexToAddress(claimArgs.Distribution),
		Claimant:     common.HexToAddress(claimArgs.Claimant),
		Amount:       claimArgs.Amount,
		CosignedMsg:  claimArgs.Msg,
	})
}

var updateDistributionArgs distributionArguments

var updateDistributionCmd = &cobra.Command{
	Use:   "updatedistribution",
	Short: "Security council: move a distribution's start gate",
	Run:   updateDistributionRun,
}

func init() {
	txFlags(updateDistributionCmd, &updateDistributionArgs.txArguments)
	updateDistributionCmd.Flags().StringVarP(&updateDistributionArgs.Distribution, "distribution", "t", "", "distribution address")
	updateDistributionCmd.Flags().Int64VarP(&updateDistributionArgs.StartTs, "start", "b", 0, "new claims open timestamp")
}

func updateDistributionRun(cmd *cobra.Command, args []string) {
	sendTx(&updateDistributionArgs.txArguments, []string{updateDistributionArgs.Skey}, tx.VetokenTxTypeUpdateDist, &tx.UpdateDistributionTx{
		Distribution: common.HexToAddress(updateDistributionArgs.Distribution),
		StartTs:      updateDistributionArgs.StartTs,
	})
}

var withdrawDistributionArgs distributionArguments

var withdrawDistributionCmd = &cobra.Command{
	Use:   "withdrawdistribution",
	Short: "Security council: sweep and close a distribution",
	Run:   withdrawDistributionRun,
}

func init() {
	txFlags(withdrawDistributionCmd, &withdrawDistributionArgs.txArguments)
	withdrawDistributionCmd.Flags().StringVarP(&withdrawDistributionArgs.Distribution, "distribution", "t", "", "distribution address")
	withdrawDistributionCmd.Flags().StringVarP(&withdrawDistributionArgs.Recipient, "recipient", "r", "", "recipient address")
}

func withdrawDistributionRun(cmd *cobra.Command, args []string) {
	sendTx(&withdrawDistributionArgs.txArguments, []string{withdrawDistributionArgs.Skey}, tx.VetokenTxTypeWithdrawDist, &tx.WithdrawFromDistributionTx{
		Distribution: common.HexToAddress(withdrawDistributionArgs.Distribution),
		Recipient:    common.HexToAddress(withdrawDistributionArgs.Recipient),
	})
}
