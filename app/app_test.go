package app

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/TaoGe96/vetoken/config"
	"github.com/TaoGe96/vetoken/state"
	"github.com/TaoGe96/vetoken/tx"
	"github.com/TaoGe96/vetoken/types"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	"github.com/cometbft/cometbft/crypto/ed25519"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

const (
	testChainId  = "vetoken-test"
	testBaseTime = int64(1_700_000_000)
)

var testDeployer = common.HexToAddress("0x11")

func testGenesisState(caller common.Address) []byte {
	appState := types.GenesisAppState{
		Namespace: types.Namespace{
			Deployer:                        testDeployer,
			SecurityCouncil:                 common.HexToAddress("0x22"),
			ReviewCouncil:                   common.HexToAddress("0x33"),
			LockupDefaultTargetRewardsPct:   100,
			LockupDefaultTargetVotingPct:    2000,
			LockupMinDuration:               14 * 86400,
			LockupMinAmount:                 100,
			LockupMaxSaturation:             4 * 365 * 86400,
			ProposalMinVotingPowerForQuorum: 1000,
			ProposalMinPassPct:              60,
		},
		Balances: []types.GenesisBalance{
			{Address: caller, Amount: 10_000},
		},
	}
	dat, err := json.Marshal(&appState)
	if err != nil {
		panic(err)
	}
	return dat
}

func signTx(t *testing.T, priv ed25519.PrivKey, btx *tx.VetokenTx) []byte {
	t.Helper()
	dat, err := btx.SigData([]byte(testChainId))
	require.NoError(t, err)
	sig, err := priv.Sign(dat)
	require.NoError(t, err)
	btx.Sig = [][]byte{sig}
	raw, err := tx.MarshalVetokenTx(btx)
	require.NoError(t, err)
	return raw
}

func TestAppStakeEndToEnd(t *testing.T) {
	ctx := context.Background()
	app, err := NewMemVetokenApp(config.NewVetokenAppConfig(t.TempDir()), cmtlog.NewNopLogger())
	require.NoError(t, err)
	defer app.Stop()

	priv := ed25519.GenPrivKey()
	caller := state.SignerAddress(priv.PubKey().Bytes())

	initRes, err := app.InitChain(ctx, &abcitypes.RequestInitChain{
		ChainId:       testChainId,
		Time:          time.Unix(testBaseTime, 0),
		AppStateBytes: testGenesisState(caller),
	})
	require.NoError(t, err)
	require.NotEmpty(t, initRes.AppHash)

	bal, _, err := app.DB().GetBalance(caller)
	require.NoError(t, err)
	require.Equal(t, uint64(10_000), bal)

	stakeTx := &tx.VetokenTx{
		Version: tx.VetokenTxVersion0,
		Type:    tx.VetokenTxTypeStake,
		Nonce:   0,
		Signers: [][]byte{priv.PubKey().Bytes()},
		Tx:      &tx.StakeTx{Amount: 400, EndTs: 0},
	}
	raw := signTx(t, priv, stakeTx)

	checkRes, err := app.CheckTx(ctx, &abcitypes.RequestCheckTx{Tx: raw})
	require.NoError(t, err)
	require.Equal(t, uint32(0), checkRes.Code, checkRes.Log)

	finRes, err := app.FinalizeBlock(ctx, &abcitypes.RequestFinalizeBlock{
		Height: 1,
		Time:   time.Unix(testBaseTime, 0),
		Txs:    [][]byte{raw},
	})
	require.NoError(t, err)
	require.Len(t, finRes.TxResults, 1)
	require.Equal(t, uint32(0), finRes.TxResults[0].Code)
	require.NotEmpty(t, finRes.AppHash)

	_, err = app.Commit(ctx, &abcitypes.RequestCommit{})
	require.NoError(t, err)

	lockup, _, _, err := app.DB().GetLockup(caller)
	require.NoError(t, err)
	require.Equal(t, uint64(400), lockup.Amount)
	require.Equal(t, int64(0), lockup.EndTs)

	bal, _, err = app.DB().GetBalance(caller)
	require.NoError(t, err)
	require.Equal(t, uint64(9_600), bal)

	nonce, _, err := app.DB().GetNonce(caller)
	require.NoError(t, err)
	require.Equal(t, uint64(1), nonce)

	// replaying the consumed nonce is rejected at the mempool gate
	checkRes, err = app.CheckTx(ctx, &abcitypes.RequestCheckTx{Tx: raw})
	require.NoError(t, err)
	require.Equal(t, uint32(1), checkRes.Code)
}

func TestAppRejectsMalformedTx(t *testing.T) {
	ctx := context.Background()
	app, err := NewMemVetokenApp(config.NewVetokenAppConfig(t.TempDir()), cmtlog.NewNopLogger())
	require.NoError(t, err)
	defer app.Stop()

	_, err = app.InitChain(ctx, &abcitypes.RequestInitChain{
		ChainId: testChainId,
		Time:    time.Unix(testBaseTime, 0),
	})
	require.NoError(t, err)

	res, err := app.CheckTx(ctx, &abcitypes.RequestCheckTx{Tx: []byte("garbage")})
	require.NoError(t, err)
	require.Equal(t, uint32(1), res.Code)

	// unsigned envelopes never reach a handler
	btx := &tx.VetokenTx{Type: tx.VetokenTxTypeUnstake, Tx: &tx.UnstakeTx{}}
	raw, err := tx.MarshalVetokenTx(btx)
	require.NoError(t, err)
	res, err = app.CheckTx(ctx, &abcitypes.RequestCheckTx{Tx: raw})
	require.NoError(t, err)
	require.Equal(t, uint32(1), res.Code)
}

func TestAppProcessProposal(t *testing.T) {
	ctx := context.Background()
	app, err := NewMemVetokenApp(config.NewVetokenAppConfig(t.TempDir()), cmtlog.NewNopLogger())
	require.NoError(t, err)
	defer app.Stop()

	priv := ed25519.GenPrivKey()
	caller := state.SignerAddress(priv.PubKey().Bytes())
	_, err = app.InitChain(ctx, &abcitypes.RequestInitChain{
		ChainId:       testChainId,
		Time:          time.Unix(testBaseTime, 0),
		AppStateBytes: testGenesisState(caller),
	})
	require.NoError(t, err)

	empty, err := app.ProcessProposal(ctx, &abcitypes.RequestProcessProposal{
		Height: 1,
		Time:   time.Unix(testBaseTime, 0),
	})
	require.NoError(t, err)
	require.Equal(t, abcitypes.ResponseProcessProposal_ACCEPT, empty.Status)

	stakeTx := &tx.VetokenTx{
		Version: tx.VetokenTxVersion0,
		Type:    tx.VetokenTxTypeStake,
		Nonce:   0,
		Signers: [][]byte{priv.PubKey().Bytes()},
		Tx:      &tx.StakeTx{Amount: 400, EndTs: 0},
	}
	raw := signTx(t, priv, stakeTx)

	good, err := app.ProcessProposal(ctx, &abcitypes.RequestProcessProposal{
		Height: 1,
		Time:   time.Unix(testBaseTime, 0),
		Txs:    [][]byte{raw},
	})
	require.NoError(t, err)
	require.Equal(t, abcitypes.ResponseProcessProposal_ACCEPT, good.Status)

	// a block carrying an unexecutable tx is rejected whole
	bad, err := app.ProcessProposal(ctx, &abcitypes.RequestProcessProposal{
		Height: 1,
		Time:   time.Unix(testBaseTime, 0),
		Txs:    [][]byte{[]byte("garbage")},
	})
	require.NoError(t, err)
	require.Equal(t, abcitypes.ResponseProcessProposal_REJECT, bad.Status)
}
