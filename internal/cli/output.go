package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Session:
		o.printSession(v)
	case Permissions:
		o.printPermissions(v)
	case ManagedTeams:
		o.printManagedTeams(v)
	case CanResult:
		o.printCanResult(v)
	case Club:
		o.printClub(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Profile response type (matches API)
type Profile struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	ClubID    string `json:"club_id,omitempty"`
}

// RoleAssignment response type
type RoleAssignment struct {
	Role   string `json:"role"`
	ClubID string `json:"club_id,omitempty"`
	TeamID string `json:"team_id,omitempty"`
}

// Permissions response type
type Permissions struct {
	CanManageClub       bool   `json:"can_manage_club"`
	CanManageFinance    bool   `json:"can_manage_finance"`
	CanManageTeam       bool   `json:"can_manage_team"`
	CanEditCompliance   bool   `json:"can_edit_compliance"`
	CanViewSafeguarding bool   `json:"can_view_safeguarding"`
	CanPayWallet        bool   `json:"can_pay_wallet"`
	IsAuthenticated     bool   `json:"is_authenticated"`
	CurrentLabel        string `json:"current_label"`
}

// Club response type
type Club struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug,omitempty"`
	Sport  string `json:"sport,omitempty"`
	County string `json:"county,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Session response type
type Session struct {
	State       string           `json:"state"`
	Token       string           `json:"token,omitempty"`
	Profile     *Profile         `json:"profile"`
	Assignments []RoleAssignment `json:"assignments"`
	Override    string           `json:"override,omitempty"`
	ActiveClub  Club             `json:"active_club"`
	Permissions Permissions      `json:"permissions"`
}

// ManagedTeams response type
type ManagedTeams struct {
	All     bool     `json:"all"`
	TeamIDs []string `json:"team_ids"`
}

// CanResult response type
type CanResult struct {
	Action  string `json:"action"`
	TeamID  string `json:"team_id,omitempty"`
	Allowed bool   `json:"allowed"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSession(s Session) {
	fmt.Printf("State: %s\n", s.State)
	if s.Profile != nil {
		name := strings.TrimSpace(s.Profile.FirstName + " " + s.Profile.LastName)
		fmt.Printf("User: %s <%s>\n", name, s.Profile.Email)
	}
	fmt.Printf("Active club: %s (%s)\n", s.ActiveClub.Name, s.ActiveClub.ID)
	fmt.Printf("Acting as: %s\n", s.Permissions.CurrentLabel)
	if s.Override != "" {
		fmt.Printf("Persona override: %s\n", s.Override)
	}
	if len(s.Assignments) > 0 {
		fmt.Println("Roles:")
		for _, a := range s.Assignments {
			line := "  " + a.Role
			if a.TeamID != "" {
				line += " (team " + a.TeamID + ")"
			}
			fmt.Println(line)
		}
	}
}

func (o *Output) printPermissions(p Permissions) {
	fmt.Printf("Acting as: %s\n", p.CurrentLabel)
	fmt.Printf("  manage club:       %s\n", yesNo(p.CanManageClub))
	fmt.Printf("  manage finance:    %s\n", yesNo(p.CanManageFinance))
	fmt.Printf("  manage team:       %s\n", yesNo(p.CanManageTeam))
	fmt.Printf("  edit compliance:   %s\n", yesNo(p.CanEditCompliance))
	fmt.Printf("  view safeguarding: %s\n", yesNo(p.CanViewSafeguarding))
	fmt.Printf("  pay wallet:        %s\n", yesNo(p.CanPayWallet))
}

func (o *Output) printManagedTeams(m ManagedTeams) {
	if m.All {
		fmt.Println("Manages: all teams")
		return
	}
	if len(m.TeamIDs) == 0 {
		fmt.Println("Manages: no teams")
		return
	}
	fmt.Printf("Manages: %s\n", strings.Join(m.TeamIDs, ", "))
}

func (o *Output) printCanResult(c CanResult) {
	target := c.Action
	if c.TeamID != "" {
		target += " (team " + c.TeamID + ")"
	}
	if c.Allowed {
		fmt.Printf("%s: allowed\n", target)
	} else {
		fmt.Printf("%s: denied\n", target)
	}
}

func (o *Output) printClub(c Club) {
	fmt.Printf("Club: %s\n", c.Name)
	fmt.Printf("  ID: %s\n", c.ID)
	fmt.Printf("  Slug: %s\n", c.Slug)
	if c.Sport != "" {
		fmt.Printf("  Sport: %s\n", c.Sport)
	}
	if c.County != "" {
		fmt.Printf("  County: %s\n", c.County)
	}
	if c.Color != "" {
		fmt.Printf("  Color: %s\n", c.Color)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Server status: %s\n", h.Status)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
