package roster

import "testing"

func TestComputeSummary(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name      string
		players   []Player
		coaches   []Coach
		want      Summary
		wantValid bool
	}{
		{
			name:      "empty lineup",
			want:      Summary{},
			wantValid: false,
		},
		{
			name: "minimum viable lineup",
			players: func() []Player {
				players := []Player{{MemberID: "gk", Position: PositionGoalkeeper, IsActive: true}}
				for i := 0; i < 6; i++ {
					players = append(players, Player{MemberID: fp(i), Position: PositionFieldPlayer, IsActive: true})
				}
				return players
			}(),
			coaches:   []Coach{{MemberID: "c1", Role: RoleHeadCoach}},
			want:      Summary{Goalkeepers: 1, FieldPlayers: 6, Coaches: 1, TotalPlayers: 7, IsValid: true},
			wantValid: true,
		},
		{
			name: "inactive players excluded",
			players: []Player{
				{MemberID: "gk", Position: PositionGoalkeeper, IsActive: true},
				{MemberID: "fp1", Position: PositionFieldPlayer, IsActive: false},
			},
			want:      Summary{Goalkeepers: 1, FieldPlayers: 0, Coaches: 0, TotalPlayers: 1},
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSummary(tt.players, tt.coaches, rules)
			if got != tt.want {
				t.Fatalf("ComputeSummary() = %+v, want %+v", got, tt.want)
			}
			if got.IsValid != tt.wantValid {
				t.Fatalf("IsValid = %t, want %t", got.IsValid, tt.wantValid)
			}
		})
	}
}
