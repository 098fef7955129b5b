package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"strategy_dashboard/internal/app/port"
	"strategy_dashboard/internal/domain/entity"
)

// TransactionsResponse is the body of the transaction history endpoint.
type TransactionsResponse struct {
	WalletAddress string                         `json:"wallet_address"`
	Transactions  []entity.ClassifiedTransaction `json:"transactions"`
	Source        entity.SourceState             `json:"source"`
}

// PortfolioHandler serves wallet portfolio snapshots.
type PortfolioHandler struct {
	portfolioService port.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(ps port.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: ps}
}

func (h *PortfolioHandler) chainIDsQuery(c *gin.Context) ([]uint64, bool) {
	ids, err := h.portfolioService.ParseChainFilter(c.Query("chain_ids"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return ids, true
}

// GetPortfolio handles GET /portfolio/:address.
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	chainIDs, ok := h.chainIDsQuery(c)
	if !ok {
		return
	}
	snapshot, err := h.portfolioService.GetPortfolio(c.Request.Context(), c.Param("address"), chainIDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// GetTransactions handles GET /portfolio/:address/transactions.
func (h *PortfolioHandler) GetTransactions(c *gin.Context) {
	chainIDs, ok := h.chainIDsQuery(c)
	if !ok {
		return
	}
	txs, source, err := h.portfolioService.GetTransactions(c.Request.Context(), c.Param("address"), chainIDs)
	if err != nil {
		writeError(c, err)
		return
	}
	address, _ := entity.NormalizeWalletAddress(c.Param("address"))
	c.JSON(http.StatusOK, TransactionsResponse{WalletAddress: address, Transactions: txs, Source: source})
}
