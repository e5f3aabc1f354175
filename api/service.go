package api

import (
	"encoding/hex"
	"net/http"
	"strconv"

	"github.com/TaoGe96/vetoken/state"
	"github.com/TaoGe96/vetoken/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// Service exposes committed state over HTTP for wallets and explorers.
// It reads from the same StateDB the consensus app commits into, so
// every response carries the height it was observed at.
type Service struct {
	engine *gin.Engine
	db     *state.StateDB
	logger cmtlog.Logger
}

func NewService(db *state.StateDB, logger cmtlog.Logger) *Service {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()
	s := &Service{
		engine: r,
		db:     db,
		logger: logger.With("module", "api"),
	}
	s.engine.GET("/namespace", s.handleGetNamespace)
	s.engine.GET("/lockups/:owner", s.handleGetLockup)
	s.engine.GET("/proposals/:nonce", s.handleGetProposal)
	s.engine.GET("/proposals/:nonce/votes/:owner", s.handleGetVoteRecord)
	s.engine.GET("/distributions/:address", s.handleGetDistribution)
	s.engine.GET("/balances/:address", s.handleGetBalance)
	s.engine.GET("/nonces/:address", s.handleGetNonce)
	return s
}

func (s *Service) Run(addr string) error {
	s.logger.Info("api service listening", "addr", addr)
	return s.engine.Run(addr)
}

func parseAddress(raw string) (common.Address, bool) {
	if len(raw) >= 2 && raw[0:2] == "0x" {
		raw = raw[2:]
	}
	dat, err := hex.DecodeString(raw)
	if err != nil || len(dat) != common.AddressLength {
		return common.Address{}, false
	}
	return common.BytesToAddress(dat), true
}

type NamespaceResponse struct {
	Address   string           `json:"address"`
	Namespace *types.Namespace `json:"namespace"`
	Height    uint64           `json:"height"`
}

func (s *Service) handleGetNamespace(c *gin.Context) {
	ns, addr, height, err := s.db.GetNamespace()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, NamespaceResponse{
		Address:   addr.Hex(),
		Namespace: ns,
		Height:    height,
	})
}

type LockupResponse struct {
	Address string        `json:"address"`
	Lockup  *types.Lockup `json:"lockup"`
	Height  uint64        `json:"height"`
}

func (s *Service) handleGetLockup(c *gin.Context) {
	owner, ok := parseAddress(c.Param("owner"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid owner address"})
		return
	}
	l, addr, height, err := s.db.GetLockup(owner)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, LockupResponse{
		Address: addr.Hex(),
		Lockup:  l,
		Height:  height,
	})
}

type ProposalResponse struct {
	Address  string          `json:"address"`
	Proposal *types.Proposal `json:"proposal"`
	Height   uint64          `json:"height"`
}

func (s *Service) handleGetProposal(c *gin.Context) {
	nonce, err := strconv.ParseUint(c.Param("nonce"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proposal nonce"})
		return
	}
	p, addr, height, err := s.db.GetProposalByNonce(uint32(nonce))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ProposalResponse{
		Address:  addr.Hex(),
		Proposal: p,
		Height:   height,
	})
}

type VoteRecordResponse struct {
	Address    string            `json:"address"`
	VoteRecord *types.VoteRecord `json:"voteRecord"`
	Height     uint64            `json:"height"`
}

func (s *Service) handleGetVoteRecord(c *gin.Context) {
	nonce, err := strconv.ParseUint(c.Param("nonce"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proposal nonce"})
		return
	}
	owner, ok := parseAddress(c.Param("owner"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid owner address"})
		return
	}
	_, proposalAddr, _, err := s.db.GetProposalByNonce(uint32(nonce))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	v, addr, height, err := s.db.GetVoteRecord(owner, proposalAddr)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, VoteRecordResponse{
		Address:    addr.Hex(),
		VoteRecord: v,
		Height:     height,
	})
}

type DistributionResponse struct {
	Address      string              `json:"address"`
	Distribution *types.Distribution `json:"distribution"`
	Height       uint64              `json:"height"`
}

func (s *Service) handleGetDistribution(c *gin.Context) {
	addr, ok := parseAddress(c.Param("address"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid distribution address"})
		return
	}
	d, height, err := s.db.GetDistribution(addr)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, DistributionResponse{
		Address:      addr.Hex(),
		Distribution: d,
		Height:       height,
	})
}

type BalanceResponse struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
	Height  uint64 `json:"height"`
}

func (s *Service) handleGetBalance(c *gin.Context) {
	addr, ok := parseAddress(c.Param("address"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
		return
	}
	amount, height, err := s.db.GetBalance(addr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, BalanceResponse{
		Address: addr.Hex(),
		Amount:  amount,
		Height:  height,
	})
}

type NonceResponse struct {
	Address string `json:"address"`
	Nonce   uint64 `json:"nonce"`
	Height  uint64 `json:"height"`
}

func (s *Service) handleGetNonce(c *gin.Context) {
	addr, ok := parseAddress(c.Param("address"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
		return
	}
	nonce, height, err := s.db.GetNonce(addr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, NonceResponse{
		Address: addr.Hex(),
		Nonce:   nonce,
		Height:  height,
	})
}
