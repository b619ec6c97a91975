package models

// Rank is an ordinal trust classification. Lower is more trusted: Rank1 is
// established or staff, Rank4 is a fresh account with little history.
// Detector rank gates compare with >=, so a gate of Rank3 covers Rank3 and
// Rank4 senders.
type Rank uint8

const (
	Rank1 Rank = iota + 1
	Rank2
	Rank3
	Rank4
)

func (r Rank) String() string {
	switch r {
	case Rank1:
		return "rank1"
	case Rank2:
		return "rank2"
	case Rank3:
		return "rank3"
	case Rank4:
		return "rank4"
	default:
		return "unranked"
	}
}
