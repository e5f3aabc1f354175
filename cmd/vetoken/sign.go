package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/TaoGe96/vetoken/crypto"
	"github.com/spf13/cobra"
)

type signArguments struct {
	Skey string
	Data string
}

var signArgs signArguments

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign arbitrary data with a key file",
	Run:   signRun,
}

func init() {
	skeyFlag(signCmd, &signArgs.Skey)
	signCmd.Flags().StringVarP(&signArgs.Data, "data", "d", "", "data to sign")
}

func signRun(cmd *cobra.Command, args []string) {
	pv := crypto.LoadFilePV(signArgs.Skey)
	sig, err := pv.Sign([]byte(signArgs.Data))
	if err != nil {
		fmt.Printf("sign err:%v\n", err)
		return
	}
	println("pubkey:", hex.EncodeToString(pv.PublicKey()))
	println("address:", pv.CallerAddress().Hex())
	println("signature base64:", base64.StdEncoding.EncodeToString(sig))
	println("signature:", hex.EncodeToString(sig))
}
