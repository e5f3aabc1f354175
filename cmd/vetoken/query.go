package main

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/TaoGe96/vetoken/types"
	"github.com/cometbft/cometbft/rpc/client/http"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

type queryArguments struct {
	Url     string
	Address string
	Nonce   uint32
}

var queryArgs queryArguments

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Read engine state from a node",
}

var queryNamespaceCmd = &cobra.Command{
	Use:   "namespace",
	Short: "Show the namespace record",
	Run:   func(cmd *cobra.Command, args []string) { abciQuery("/namespace/", nil) },
}

var queryLockupCmd = &cobra.Command{
	Use:   "lockup",
	Short: "Show a lockup by owner address",
	Run: func(cmd *cobra.Command, args []string) {
		abciQuery("/lockups/", common.HexToAddress(queryArgs.Address).Bytes())
	},
}

var queryProposalCmd = &cobra.Command{
	Use:   "proposal",
	Short: "Show a proposal by nonce",
	Run: func(cmd *cobra.Command, args []string) {
		dat := make([]byte, 4)
		binary.BigEndian.PutUint32(dat, queryArgs.Nonce)
		abciQuery("/proposals/", dat)
	},
}

var queryDistributionCmd = &cobra.Command{
	Use:   "distribution",
	Short: "Show a distribution by address",
	Run: func(cmd *cobra.Command, args []string) {
		abciQuery("/distributions/", common.HexToAddress(queryArgs.Address).Bytes())
	},
}

var queryBalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show a token balance by address",
	Run: func(cmd *cobra.Command, args []string) {
		abciQuery("/balances/", common.HexToAddress(queryArgs.Address).Bytes())
	},
}

var queryTxCmd = &cobra.Command{
	Use:   "tx [hash]",
	Short: "Show a committed transaction and its decoded events",
	Args:  cobra.ExactArgs(1),
	Run:   func(cmd *cobra.Command, args []string) { queryTx(args[0]) },
}

func init() {
	queryCmd.PersistentFlags().StringVarP(&queryArgs.Url, "url", "u", "http://127.0.0.1:26657", "vetoken node rpc url")
	queryCmd.PersistentFlags().StringVarP(&queryArgs.Address, "address", "a", "", "record or owner address")
	queryCmd.PersistentFlags().Uint32VarP(&queryArgs.Nonce, "pnonce", "p", 0, "proposal nonce")
	queryCmd.AddCommand(queryNamespaceCmd)
	queryCmd.AddCommand(queryLockupCmd)
	queryCmd.AddCommand(queryProposalCmd)
	queryCmd.AddCommand(queryDistributionCmd)
	queryCmd.AddCommand(queryBalanceCmd)
	queryCmd.AddCommand(queryTxCmd)
}

func queryTx(hash string) {
	dat, err := hex.DecodeString(strings.TrimPrefix(hash, "0x"))
	if err != nil {
		fmt.Printf("bad tx hash:%v\n", err)
		return
	}
	cli, err := http.New(queryArgs.Url, "/websocket")
	if err != nil {
		fmt.Printf("new client err:%v\n", err)
		return
	}
	res, err := cli.Tx(context.Background(), dat, false)
	if err != nil {
		fmt.Printf("request err:%v\n", err)
		return
	}
	fmt.Printf("height:%d code:%d log:%s\n", res.Height, res.TxResult.Code, res.TxResult.Log)
	for _, ev := range res.TxResult.Events {
		decoded := types.DecodeEvent(ev)
		if decoded == nil {
			continue
		}
		out, _ := json.Marshal(decoded)
		fmt.Printf("%s: %s\n", ev.Type, string(out))
	}
}

func abciQuery(path string, dat []byte) {
	cli, err := http.New(queryArgs.Url, "/websocket")
	if err != nil {
		fmt.Printf("new client err:%v\n", err)
		return
	}
	res, err := cli.ABCIQuery(context.Background(), path, dat)
	if err != nil {
		fmt.Printf("request err:%v\n", err)
		return
	}
	if res.Response.Code != 0 {
		fmt.Printf("query fail: code=%d log=%s\n", res.Response.Code, res.Response.Log)
		return
	}
	fmt.Printf("key:%x height:%d\n%s\n", res.Response.Key, res.Response.Height, string(res.Response.Value))
}
