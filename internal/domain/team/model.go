package team

import "fmt"

// Team is a club as known to the provider, shared by every competition it plays in.
type Team struct {
	ID        int64
	SourceID  int64
	ShortName string
	Address   string
	AreaName  string
	TLA       string
}

func (t Team) Validate() error {
	if t.SourceID <= 0 {
		return fmt.Errorf("team source id is required")
	}

	return nil
}
