package main

import (
	"fmt"
	"os"
)

func main() {
	clCmd.AddCommand(initCmd)
	clCmd.AddCommand(versionCmd)
	clCmd.AddCommand(pubkeyCmd)
	clCmd.AddCommand(signCmd)
	clCmd.AddCommand(stakeCmd)
	clCmd.AddCommand(stakeOnBehalfCmd)
	clCmd.AddCommand(unstakeCmd)
	clCmd.AddCommand(newProposalCmd)
	clCmd.AddCommand(updateProposalCmd)
	clCmd.AddCommand(voteCmd)
	clCmd.AddCommand(newDistributionCmd)
	clCmd.AddCommand(claimCmd)
	clCmd.AddCommand(updateDistributionCmd)
	clCmd.AddCommand(withdrawDistributionCmd)
	clCmd.AddCommand(queryCmd)
	if err := clCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
