package main

// Achievement definitions, awarded per run from its result
type AchievementDef struct {
	ID          string
	Name        string
	Description string
}

var Achievements = []AchievementDef{
	{"first_blood", "First Blood", "Destroy an enemy"},
	{"ace", "Ace Pilot", "Destroy 25 enemies in a single run"},
	{"stage_clear", "Stage Clear", "Reach a safe zone"},
	{"victor", "Victor", "Clear the last level"},
	{"flawless", "Flawless Victory", "Win a run without losing a life"},
	{"last_stand", "Last Stand", "Win a run on the final life"},
}

// CheckAchievements returns the achievements earned by a finished run
func CheckAchievements(res ResultMsg, cfg PlayerConfig) []AchievementDef {
	won := res.Outcome == OutcomeWon.String()
	check := func(id string) bool {
		switch id {
		case "first_blood":
			return res.Kills >= 1
		case "ace":
			return res.Kills >= 25
		case "stage_clear":
			return res.Cleared >= 1
		case "victor":
			return won
		case "flawless":
			return won && res.Hits == 0
		case "last_stand":
			return won && res.Lives == cfg.LifeFloor
		}
		return false
	}

	var unlocked []AchievementDef
	for _, def := range Achievements {
		if check(def.ID) {
			unlocked = append(unlocked, def)
		}
	}
	return unlocked
}
