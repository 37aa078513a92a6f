package competition

import "fmt"

// Competition is a league imported from the football data provider.
type Competition struct {
	ID       int64
	SourceID int64
	Name     string
	AreaName string
	Code     string
}

func (c Competition) Validate() error {
	if c.SourceID <= 0 {
		return fmt.Errorf("competition source id is required")
	}
	if c.Code == "" {
		return fmt.Errorf("competition code is required")
	}
	if c.Name == "" {
		return fmt.Errorf("competition name is required")
	}

	return nil
}
