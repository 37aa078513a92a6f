package memory

import (
	"sync"

	"github.com/riskibarqy/league-importer/internal/domain/competition"
	"github.com/riskibarqy/league-importer/internal/domain/member"
	"github.com/riskibarqy/league-importer/internal/domain/team"
	"github.com/riskibarqy/league-importer/internal/domain/teamcompetition"
)

// Store keeps every entity in process memory and enforces the same unique
// keys as the postgres schema. Repositories created from one Store share it.
type Store struct {
	mu sync.RWMutex

	nextCompetitionID int64
	nextTeamID        int64
	nextMemberID      int64

	competitions       map[int64]competition.Competition
	competitionsByCode map[string]int64
	teams              map[int64]team.Team
	teamsBySourceID    map[int64]int64
	members            []member.Member
	links              map[teamcompetition.TeamCompetition]struct{}
	linkOrder          []teamcompetition.TeamCompetition
}

// Seed is the initial content of a Store. Rows keep their ids when set.
type Seed struct {
	Competitions []competition.Competition
	Teams        []team.Team
	Members      []member.Member
	Links        []teamcompetition.TeamCompetition
}

func NewStore(seed Seed) *Store {
	s := &Store{
		competitions:       make(map[int64]competition.Competition),
		competitionsByCode: make(map[string]int64),
		teams:              make(map[int64]team.Team),
		teamsBySourceID:    make(map[int64]int64),
		links:              make(map[teamcompetition.TeamCompetition]struct{}),
	}

	for _, item := range seed.Competitions {
		s.insertCompetitionLocked(item)
	}
	for _, item := range seed.Teams {
		s.insertTeamLocked(item)
	}
	for _, item := range seed.Members {
		s.insertMemberLocked(item)
	}
	for _, item := range seed.Links {
		s.insertLinkLocked(item)
	}
	return s
}

func (s *Store) insertCompetitionLocked(item competition.Competition) (int64, bool) {
	key := item.Code
	if _, exists := s.competitionsByCode[key]; exists {
		return 0, false
	}
	item.ID = s.assignID(item.ID, &s.nextCompetitionID)
	s.competitions[item.ID] = item
	s.competitionsByCode[key] = item.ID
	return item.ID, true
}

func (s *Store) insertTeamLocked(item team.Team) (int64, bool) {
	if _, exists := s.teamsBySourceID[item.SourceID]; exists {
		return 0, false
	}
	item.ID = s.assignID(item.ID, &s.nextTeamID)
	s.teams[item.ID] = item
	s.teamsBySourceID[item.SourceID] = item.ID
	return item.ID, true
}

func (s *Store) insertMemberLocked(item member.Member) int64 {
	item.ID = s.assignID(item.ID, &s.nextMemberID)
	s.members = append(s.members, item)
	return item.ID
}

func (s *Store) insertLinkLocked(item teamcompetition.TeamCompetition) bool {
	if _, exists := s.links[item]; exists {
		return false
	}
	s.links[item] = struct{}{}
	s.linkOrder = append(s.linkOrder, item)
	return true
}

func (s *Store) assignID(requested int64, next *int64) int64 {
	if requested > 0 {
		if requested > *next {
			*next = requested
		}
		return requested
	}
	*next = *next + 1
	return *next
}
