package adapter

import (
	"errors"
	"net/http"
	"net/url"

	models "github.com/ElrondNetwork/bounty-market-gateway/data"
	"github.com/ElrondNetwork/bounty-market-gateway/ledger"
	"github.com/ElrondNetwork/bounty-market-gateway/market"
	"github.com/ElrondNetwork/bounty-market-gateway/view"
	"github.com/gin-gonic/gin"
)

const (
	formContentType = "application/x-www-form-urlencoded"
	errorQueryParam = "error"
)

type indexData struct {
	view.Snapshot
	Error string
}

type webServer struct {
	router  *gin.Engine
	adapter *adapter
}

func NewWebServer(adapter *adapter) (*webServer, error) {
	if adapter == nil {
		return nil, errors.New("nil adapter provided")
	}

	ws := &webServer{
		router:  gin.Default(),
		adapter: adapter,
	}
	ws.router.SetHTMLTemplate(indexTemplate)
	ws.routes()
	return ws, nil
}

func (ws *webServer) Run(port string) error {
	return ws.router.Run(port)
}

func (ws *webServer) routes() {
	ws.router.GET("/", ws.renderIndex)
	ws.router.GET("/view", ws.processViewRequest)
	ws.router.GET("/accounts", ws.processAccountsRequest)
	ws.router.POST("/refresh", ws.processRefreshRequest)
	ws.router.POST("/bounties", ws.processCreateBountyRequest)
	ws.router.POST("/proposals", ws.processCreateProposalRequest)
	ws.router.POST("/proposals/approve", ws.processApproveRequest)
	ws.router.POST("/proposals/reject", ws.processRejectRequest)
	ws.router.POST("/withdraw", ws.processWithdrawRequest)
}

func (ws *webServer) renderIndex(c *gin.Context) {
	c.HTML(http.StatusOK, indexTemplateName, indexData{
		Snapshot: ws.adapter.Snapshot(),
		Error:    c.Query(errorQueryParam),
	})
}

func (ws *webServer) processViewRequest(c *gin.Context) {
	okResponse(c, ws.adapter.Snapshot())
}

func (ws *webServer) processAccountsRequest(c *gin.Context) {
	accounts, err := ws.adapter.Accounts(c.Request.Context())
	if err != nil {
		errResponse(c, statusFor(err), err)
		return
	}
	okResponse(c, accounts)
}

func (ws *webServer) processRefreshRequest(c *gin.Context) {
	res := ws.adapter.Refresh(c.Request.Context())
	if isForm(c) {
		redirectToIndex(c, res.Err)
		return
	}
	if res.Err != nil {
		errResponseWith(c, http.StatusBadGateway, res.Err, refreshSummary(res))
		return
	}
	okResponse(c, refreshSummary(res))
}

func (ws *webServer) processCreateBountyRequest(c *gin.Context) {
	var req models.CreateBountyRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	ws.commandResponse(c, ws.adapter.dispatcher.CreateBounty(c.Request.Context(), req.Description, req.Value))
}

func (ws *webServer) processCreateProposalRequest(c *gin.Context) {
	var req models.CreateProposalRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	ws.commandResponse(c, ws.adapter.dispatcher.CreateProposal(c.Request.Context(), req.BountyID, req.Description))
}

func (ws *webServer) processApproveRequest(c *gin.Context) {
	var req models.ProposalDecisionRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	ws.commandResponse(c, ws.adapter.dispatcher.ApproveProposal(c.Request.Context(), req.BountyID, req.ProposalID))
}

func (ws *webServer) processRejectRequest(c *gin.Context) {
	var req models.ProposalDecisionRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	ws.commandResponse(c, ws.adapter.dispatcher.RejectProposal(c.Request.Context(), req.BountyID, req.ProposalID))
}

func (ws *webServer) processWithdrawRequest(c *gin.Context) {
	ws.commandResponse(c, ws.adapter.dispatcher.Withdraw(c.Request.Context()))
}

// commandResponse sends browsers submitting the page forms back to the page,
// carrying the failure if there was one; API clients get the command summary.
func (ws *webServer) commandResponse(c *gin.Context, res market.CommandResult) {
	if isForm(c) {
		redirectToIndex(c, res.Err)
		return
	}
	if res.Err != nil {
		errResponse(c, statusFor(res.Err), res.Err)
		return
	}

	summary := models.CommandSummary{
		Action: string(res.Action),
		Sender: res.Sender,
		TxHash: res.TxHash,
	}
	if res.Refresh != nil {
		refresh := refreshSummary(*res.Refresh)
		summary.Refresh = &refresh
	}
	okResponse(c, summary)
}

func refreshSummary(res market.RefreshResult) models.RefreshSummary {
	summary := models.RefreshSummary{
		RunID:                res.RunID,
		Account:              res.Account,
		Balance:              res.Balance,
		Rows:                 res.Rows,
		DescriptionsRendered: res.DescriptionsRendered,
	}
	if res.Err != nil {
		summary.Error = res.Err.Error()
	}
	if len(res.DescriptionErrors) > 0 {
		summary.DescriptionErrors = make(map[int]string, len(res.DescriptionErrors))
		for i, err := range res.DescriptionErrors {
			summary.DescriptionErrors[i] = err.Error()
		}
	}
	return summary
}

func isForm(c *gin.Context) bool {
	return c.ContentType() == formContentType
}

func redirectToIndex(c *gin.Context, err error) {
	location := "/"
	if err != nil {
		location += "?" + url.Values{errorQueryParam: {err.Error()}}.Encode()
	}
	c.Redirect(http.StatusSeeOther, location)
}

func badRequest(c *gin.Context, err error) {
	if isForm(c) {
		redirectToIndex(c, err)
		return
	}
	errResponse(c, http.StatusBadRequest, err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, market.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrNoAccounts):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func okResponse(c *gin.Context, value interface{}) {
	c.JSON(http.StatusOK, models.Response{
		Data:       gin.H{"result": value},
		Result:     value,
		StatusCode: http.StatusOK,
	})
}

func errResponse(c *gin.Context, errCode int, err error) {
	errResponseWith(c, errCode, err, nil)
}

func errResponseWith(c *gin.Context, errCode int, err error, value interface{}) {
	c.JSON(errCode, models.Response{
		Data:       nil,
		Result:     value,
		StatusCode: errCode,
		Error:      err.Error(),
	})
}
