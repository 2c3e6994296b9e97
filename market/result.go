package market

// Action names a user command.
type Action string

const (
	ActionCreateBounty    Action = "createBounty"
	ActionCreateProposal  Action = "createProposal"
	ActionApproveProposal Action = "approveProposal"
	ActionRejectProposal  Action = "rejectProposal"
	ActionWithdraw        Action = "makeWithdrawal"
)

// RefreshResult describes one refresh run. Err is set when the run stopped
// before rendering bounty rows or was cancelled while fetching descriptions;
// failed descriptions are listed per row.
type RefreshResult struct {
	RunID                string
	Account              string
	Balance              string
	Rows                 int
	DescriptionsRendered int
	DescriptionErrors    map[int]error
	Err                  error
}

// Complete reports whether every read of the run succeeded.
func (rr RefreshResult) Complete() bool {
	return rr.Err == nil && len(rr.DescriptionErrors) == 0
}

// CommandResult describes one dispatched command. Refresh is nil when the
// write was never submitted.
type CommandResult struct {
	Action  Action
	Sender  string
	TxHash  string
	Err     error
	Refresh *RefreshResult
}
