package main

import (
	"github.com/TaoGe96/vetoken/tx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

type stakeArguments struct {
	txArguments
	Amount uint64
	EndTs  int64
	Owner  string
}

var stakeArgs stakeArguments

var stakeCmd = &cobra.Command{
	Use:   "stake",
	Short: "Lock tokens into the sender's lockup",
	Run:   stakeRun,
}

func init() {
	txFlags(stakeCmd, &stakeArgs.txArguments)
	stakeCmd.Flags().Uint64VarP(&stakeArgs.Amount, "amount", "a", 0, "amount to lock")
	stakeCmd.Flags().Int64VarP(&stakeArgs.EndTs, "end", "e", 0, "lock end timestamp, 0 for no fixed maturity")
}

func stakeRun(cmd *cobra.Command, args []string) {
	sendTx(&stakeArgs.txArguments, []string{stakeArgs.Skey}, tx.VetokenTxTypeStake, &tx.StakeTx{
		Amount: stakeArgs.Amount,
		EndTs:  stakeArgs.EndTs,
	})
}

var stakeOnBehalfArgs stakeArguments

var stakeOnBehalfCmd = &cobra.Command{
	Use:   "stakeonbehalf",
	Short: "Security council: lock tokens for another owner",
	Run:   stakeOnBehalfRun,
}

func init() {
	txFlags(stakeOnBehalfCmd, &stakeOnBehalfArgs.txArguments)
	stakeOnBehalfCmd.Flags().Uint64VarP(&stakeOnBehalfArgs.Amount, "amount", "a", 0, "amount to lock")
	stakeOnBehalfCmd.Flags().Int64VarP(&stakeOnBehalfArgs.EndTs, "end", "e", 0, "lock end timestamp, 0 for no fixed maturity")
	stakeOnBehalfCmd.Flags().StringVarP(&stakeOnBehalfArgs.Owner, "owner", "w", "", "lockup owner address")
}

func stakeOnBehalfRun(cmd *cobra.Command, args []string) {
	sendTx(&stakeOnBehalfArgs.txArguments, []string{stakeOnBehalfArgs.Skey}, tx.VetokenTxTypeStakeOnBehalf, &tx.StakeOnBehalfTx{
		Owner:  common.HexToAddress(stakeOnBehalfArgs.Owner),
		Amount: stakeOnBehalfArgs.Amount,
		EndTs:  stakeOnBehalfArgs.EndTs,
	})
}

var unstakeArgs txArguments

var unstakeCmd = &cobra.Command{
	Use:   "unstake",
	Short: "Withdraw a matured lockup",
	Run:   unstakeRun,
}

func init() {
	txFlags(unstakeCmd, &unstakeArgs)
}

func unstakeRun(cmd *cobra.Command, args []string) {
	sendTx(&unstakeArgs, []string{unstakeArgs.Skey}, tx.VetokenTxTypeUnstake, &tx.UnstakeTx{})
}
