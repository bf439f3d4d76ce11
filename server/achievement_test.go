package main

import "testing"

func badgeIDs(defs []AchievementDef) map[string]bool {
	out := map[string]bool{}
	for _, d := range defs {
		out[d.ID] = true
	}
	return out
}

func TestCheckAchievements(t *testing.T) {
	cfg := DefaultConfig().Player
	tests := []struct {
		name string
		res  ResultMsg
		want []string
		not  []string
	}{
		{"nothing", ResultMsg{Outcome: "lost", Lives: -1}, nil, []string{"first_blood", "victor"}},
		{"kills", ResultMsg{Outcome: "lost", Kills: 30}, []string{"first_blood", "ace"}, []string{"stage_clear"}},
		{"flawless win", ResultMsg{Outcome: "won", Cleared: 2, Kills: 3, Lives: 5},
			[]string{"first_blood", "stage_clear", "victor", "flawless"}, []string{"last_stand", "ace"}},
		{"last stand", ResultMsg{Outcome: "won", Cleared: 1, Lives: 0, Hits: 5},
			[]string{"stage_clear", "victor", "last_stand"}, []string{"flawless"}},
		{"partial clear", ResultMsg{Outcome: "lost", Cleared: 1, Lives: -1},
			[]string{"stage_clear"}, []string{"victor", "last_stand"}},
		{"healed after a hit", ResultMsg{Outcome: "won", Cleared: 2, Lives: 5, Hits: 1},
			[]string{"victor"}, []string{"flawless"}},
	}
	for _, tt := range tests {
		got := badgeIDs(CheckAchievements(tt.res, cfg))
		for _, id := range tt.want {
			if !got[id] {
				t.Errorf("%s: expected %s", tt.name, id)
			}
		}
		for _, id := range tt.not {
			if got[id] {
				t.Errorf("%s: did not expect %s", tt.name, id)
			}
		}
	}
}
