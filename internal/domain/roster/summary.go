package roster

// Summary is a derived aggregate over a lineup's members and coaches. It is
// never persisted; callers recompute it from the current collections.
type Summary struct {
	Goalkeepers  int
	FieldPlayers int
	Coaches      int
	TotalPlayers int
	IsValid      bool
}

// ComputeSummary counts active players by position plus coaching staff.
// IsValid reports whether every capacity rule is satisfied, minimums included.
// The function is pure and deterministic.
func ComputeSummary(players []Player, coaches []Coach, rules Rules) Summary {
	gk, fp := countActivePositions(players)

	s := Summary{
		Goalkeepers:  gk,
		FieldPlayers: fp,
		Coaches:      len(coaches),
		TotalPlayers: gk + fp,
	}
	s.IsValid = gk >= rules.MinGoalkeepers && gk <= rules.MaxGoalkeepers &&
		fp >= rules.MinFieldPlayers && fp <= rules.MaxFieldPlayers &&
		len(coaches) <= rules.MaxCoaches

	return s
}
