package teamcompetition

import "fmt"

// TeamCompetition links a team to a competition it takes part in.
type TeamCompetition struct {
	CompetitionID int64
	TeamID        int64
}

func (l TeamCompetition) Validate() error {
	if l.CompetitionID <= 0 {
		return fmt.Errorf("competition id is required")
	}
	if l.TeamID <= 0 {
		return fmt.Errorf("team id is required")
	}

	return nil
}
