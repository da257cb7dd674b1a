package model

// Action is a permission-checked operation a user may attempt.
// The set is closed: evaluation of any other value is a deny.
type Action string

const (
	ActionManageClub       Action = "manage_club"
	ActionManageFinance    Action = "manage_finance"
	ActionManageTeam       Action = "manage_team"
	ActionEditCompliance   Action = "edit_compliance"
	ActionViewSafeguarding Action = "view_safeguarding"
	ActionPayWallet        Action = "pay_wallet"
)

// Actions lists every recognised action in a stable order
func Actions() []Action {
	return []Action{
		ActionManageClub,
		ActionManageFinance,
		ActionManageTeam,
		ActionEditCompliance,
		ActionViewSafeguarding,
		ActionPayWallet,
	}
}
