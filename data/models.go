package data

type CreateBountyRequest struct {
	Description string `json:"description" form:"description"`
	Value       string `json:"value" form:"value"`
}

type CreateProposalRequest struct {
	BountyID    string `json:"bountyId" form:"bountyId"`
	Description string `json:"description" form:"description"`
}

type ProposalDecisionRequest struct {
	BountyID   string `json:"bountyId" form:"bountyId"`
	ProposalID string `json:"proposalId" form:"proposalId"`
}

type Response struct {
	Data       interface{} `json:"data"`
	Result     interface{} `json:"result"`
	StatusCode int         `json:"statusCode"`
	Error      string      `json:"error,omitempty"`
}

type RefreshSummary struct {
	RunID                string         `json:"runId"`
	Account              string         `json:"account"`
	Balance              string         `json:"balance"`
	Rows                 int            `json:"rows"`
	DescriptionsRendered int            `json:"descriptionsRendered"`
	DescriptionErrors    map[int]string `json:"descriptionErrors,omitempty"`
	Error                string         `json:"error,omitempty"`
}

type CommandSummary struct {
	Action  string          `json:"action"`
	Sender  string          `json:"sender"`
	TxHash  string          `json:"txHash"`
	Refresh *RefreshSummary `json:"refresh,omitempty"`
}
