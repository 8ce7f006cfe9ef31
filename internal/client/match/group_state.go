package match

import "github.com/bridgehq/bridge/internal/client/models"

// GroupState is the authoritative, immutable record of the formed group.
// Constructed once from the first successful poll (or from a pre-existing
// group found at startup). A changed group means a new GroupState; there is
// no API to mutate membership locally.
type GroupState struct {
	group models.Group
}

func NewGroupState(g models.Group) *GroupState {
	cp := g
	cp.Members = append([]models.Member(nil), g.Members...)
	return &GroupState{group: cp}
}

func (s *GroupState) ID() string { return s.group.ID }

// Members returns a copy of the roster.
func (s *GroupState) Members() []models.Member {
	return append([]models.Member(nil), s.group.Members...)
}

// Group returns a value copy of the whole record.
func (s *GroupState) Group() models.Group {
	cp := s.group
	cp.Members = append([]models.Member(nil), s.group.Members...)
	return cp
}
