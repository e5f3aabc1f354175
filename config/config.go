package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cometbft/cometbft/config"
	"github.com/cometbft/cometbft/crypto"
	"github.com/cometbft/cometbft/crypto/ed25519"
	"github.com/cometbft/cometbft/p2p"
	"github.com/cometbft/cometbft/privval"
	"github.com/ethereum/go-ethereum/common"
)

type VetokenAppConfig struct {
	Home          string `mapstructure:"-"`
	TimeoutCommit uint64 `mapstructure:"-"`

	// ApiAddr is the listen address of the read-only HTTP API; empty
	// disables it.
	ApiAddr string `mapstructure:"api_addr"`
}

func DefaultVetokenAppConfig(home string) *VetokenAppConfig {
	return &VetokenAppConfig{
		Home:    home,
		ApiAddr: "127.0.0.1:26680",
	}
}

func NewVetokenAppConfig(home string) *VetokenAppConfig {
	return &VetokenAppConfig{
		Home: home,
	}
}

type Config struct {
	*config.Config `mapstructure:",squash"`

	App *VetokenAppConfig `mapstructure:"app"`
}

func DefaultConfig(home string) *Config {
	if len(home) == 0 {
		home = os.ExpandEnv("$HOME/.vetoken")
	}
	config := &Config{
		DefaultVetokenCometConfig(),
		DefaultVetokenAppConfig(home),
	}
	config.RootDir = home
	_ = os.MkdirAll(home+"/config", 0755)
	return config
}

// InitializeOwner writes a fresh ed25519 key for the node operator and
// returns the derived caller address.
func InitializeOwner(home string) (owner string) {
	priv := ed25519.GenPrivKey()
	key := hex.EncodeToString(priv.Bytes())

	err := os.WriteFile(home+"/config/owner_priv_key", []byte(key), 0644)
	if err != nil {
		fmt.Println("Error writing private key to file:", err)
		return
	}
	addr := priv.PubKey().Address()
	owner = common.BytesToAddress(addr.Bytes()).Hex()
	return
}

func NewVetokenConfig(home string) *Config {
	if len(home) == 0 {
		home = os.ExpandEnv("$HOME/.vetoken")
	}
	_ = os.MkdirAll(home+"/config", 0755)
	config := &Config{
		DefaultVetokenCometConfig(),
		NewVetokenAppConfig(home),
	}
	config.RootDir = home
	return config
}

func InitializeNodeValidatorFiles(config *Config, privKey crypto.PrivKey) (nodeID string, pk crypto.PubKey, err error) {
	nodeKey, err := p2p.LoadOrGenNodeKey(config.NodeKeyFile())
	if err != nil {
		return "", nil, err
	}
	nodeID = string(nodeKey.ID())

	pvKeyFile := config.PrivValidatorKeyFile()
	if err := os.MkdirAll(filepath.Dir(pvKeyFile), 0o777); err != nil {
		return "", nil, fmt.Errorf("could not create directory %q: %w", filepath.Dir(pvKeyFile), err)
	}

	pvStateFile := config.PrivValidatorStateFile()
	if err := os.MkdirAll(filepath.Dir(pvStateFile), 0o777); err != nil {
		return "", nil, fmt.Errorf("could not create directory %q: %w", filepath.Dir(pvStateFile), err)
	}

	var filePV *privval.FilePV
	if privKey == nil {
		filePV = privval.LoadOrGenFilePV(pvKeyFile, pvStateFile)
	} else {
		filePV = privval.NewFilePV(privKey, pvKeyFile, pvStateFile)
		filePV.Save()
	}
	pukey, err := filePV.GetPubKey()
	if err != nil {
		return "", nil, err
	}

	return nodeID, pukey, nil
}

func InitializeNodeOnly(config *Config) {
	_, err := p2p.LoadOrGenNodeKey(config.NodeKeyFile())
	if err != nil {
		return
	}

	pvKeyFile := config.PrivValidatorKeyFile()
	if err := os.MkdirAll(filepath.Dir(pvKeyFile), 0o777); err != nil {
		return
	}

	pvStateFile := config.PrivValidatorStateFile()
	if err := os.MkdirAll(filepath.Dir(pvStateFile), 0o777); err != nil {
		return
	}
	privval.LoadOrGenFilePV(pvKeyFile, pvStateFile)
	os.Remove(pvKeyFile)
}

func DefaultVetokenCometConfig() *config.Config {
	cometConfig := config.DefaultConfig()
	cometConfig.Consensus.TimeoutPropose = time.Second * 10
	cometConfig.Consensus.TimeoutPrevote = time.Second * 1
	cometConfig.Consensus.TimeoutPrecommit = time.Second * 1
	cometConfig.Consensus.TimeoutCommit = time.Millisecond * 1200
	return cometConfig
}
