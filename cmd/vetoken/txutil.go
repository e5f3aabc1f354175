package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/TaoGe96/vetoken/crypto"
	"github.com/TaoGe96/vetoken/tx"
	"github.com/cometbft/cometbft/rpc/client/http"
	"github.com/spf13/cobra"
)

type txArguments struct {
	Url    string
	Nonce  uint64
	Skey   string
	Cokey  string
	NoSend bool
}

func txFlags(cmd *cobra.Command, args *txArguments) {
	urlFlag(cmd, &args.Url)
	skeyFlag(cmd, &args.Skey)
	nonceFlag(cmd, &args.Nonce)
	cmd.Flags().BoolVarP(&args.NoSend, "nosend", "", false, "not send transaction but print signature")
}

func newRpcClient(url string) (*http.HTTP, string, error) {
	cli, err := http.New(url, "/websocket")
	if err != nil {
		fmt.Printf("new client err:%v\n", err)
		return nil, "", err
	}
	gres, err := cli.Genesis(context.Background())
	if err != nil {
		fmt.Printf("get chain genesis err:%v\n", err)
		return nil, "", err
	}
	return cli, gres.Genesis.ChainID, nil
}

func queryNonce(cli *http.HTTP, addr []byte) (uint64, error) {
	res, err := cli.ABCIQuery(context.Background(), "/nonces/", addr)
	if err != nil {
		return 0, err
	}
	if res.Response.Code != 0 {
		return 0, errors.New(res.Response.Log)
	}
	var nonce uint64
	err = json.Unmarshal(res.Response.Value, &nonce)
	return nonce, err
}

// sendTx signs the envelope with every key in keyPaths (the first one
// pays the nonce) and broadcasts it, or prints the signatures when
// noSend is set.
func sendTx(args *txArguments, keyPaths []string, txType tx.VetokenTxType, payload any) {
	cli, chainId, err := newRpcClient(args.Url)
	if err != nil {
		return
	}
	ctx := context.Background()

	pvs := make([]*crypto.PV, 0, len(keyPaths))
	signers := make([][]byte, 0, len(keyPaths))
	for _, p := range keyPaths {
		pv := crypto.LoadFilePV(p)
		pvs = append(pvs, pv)
		signers = append(signers, pv.PublicKey())
	}

	nonce := args.Nonce
	if nonce == 0 && len(pvs) > 0 {
		n, err := queryNonce(cli, pvs[0].CallerAddress().Bytes())
		if err != nil {
			fmt.Printf("query nonce err:%v\n", err)
			return
		}
		nonce = n
	}

	btx := tx.VetokenTx{
		Version: tx.VetokenTxVersion1,
		Type:    txType,
		Nonce:   nonce,
		Signers: signers,
		Tx:      payload,
	}
	dat, err := btx.SigData([]byte(chainId))
	if err != nil {
		fmt.Printf("tx sign data err:%v\n", err)
		return
	}
	sigs := make([][]byte, 0, len(pvs))
	for _, pv := range pvs {
		sig, err := pv.Sign(dat)
		if err != nil {
			fmt.Printf("sign tx err:%v\n", err)
			return
		}
		sigs = append(sigs, sig)
	}
	if args.NoSend {
		fmt.Println("transaction signatures:")
		for _, sig := range sigs {
			fmt.Println(hex.EncodeToString(sig))
		}
		return
	}
	btx.Sig = sigs
	dat, err = tx.MarshalVetokenTx(&btx)
	if err != nil {
		fmt.Printf("encode tx err:%v\n", err)
		return
	}
	res, err := cli.BroadcastTxSync(ctx, dat)
	if err != nil {
		fmt.Printf("broadcast tx err:%v\n", err)
		return
	}
	out, _ := json.Marshal(res)
	fmt.Printf("%v\n", string(out))
}
