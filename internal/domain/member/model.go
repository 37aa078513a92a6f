package member

import (
	"fmt"
	"time"
)

const PositionCoach = "coach"

// Member is a player or the coach of a team.
type Member struct {
	ID          int64
	SourceID    *int64
	Name        string
	Position    string
	DateOfBirth *time.Time
	Nationality string
	CurrentTeam int64
}

func (m Member) Validate() error {
	if m.CurrentTeam <= 0 {
		return fmt.Errorf("member current team is required")
	}

	return nil
}

func (m Member) IsCoach() bool {
	return m.Position == PositionCoach
}

// TeamMembers groups members under the team they currently play for.
type TeamMembers struct {
	TeamID   int64
	TeamName string
	Members  []Member
}
