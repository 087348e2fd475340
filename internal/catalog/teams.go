package catalog

import (
	"slices"

	"github.com/AdamBeresnev/fc-knockout/internal/bracket"
)

const logoBase = "https://media.api-sports.io/football/teams/"

var Leagues = []string{"Premier League", "La Liga", "Bundesliga", "Serie A", "Ligue 1"}

var teams = []bracket.Team{
	{ID: "1", Name: "Manchester City", League: "Premier League", Country: "England", LogoURL: logoBase + "50.png"},
	{ID: "2", Name: "Arsenal", League: "Premier League", Country: "England", LogoURL: logoBase + "42.png"},
	{ID: "3", Name: "Liverpool", League: "Premier League", Country: "England", LogoURL: logoBase + "40.png"},
	{ID: "4", Name: "Chelsea", League: "Premier League", Country: "England", LogoURL: logoBase + "49.png"},
	{ID: "5", Name: "Manchester United", League: "Premier League", Country: "England", LogoURL: logoBase + "33.png"},
	{ID: "6", Name: "Tottenham", League: "Premier League", Country: "England", LogoURL: logoBase + "47.png"},
	{ID: "7", Name: "Newcastle United", League: "Premier League", Country: "England", LogoURL: logoBase + "34.png"},
	{ID: "8", Name: "Aston Villa", League: "Premier League", Country: "England", LogoURL: logoBase + "66.png"},
	{ID: "9", Name: "Real Madrid", League: "La Liga", Country: "Spain", LogoURL: logoBase + "541.png"},
	{ID: "10", Name: "Barcelona", League: "La Liga", Country: "Spain", LogoURL: logoBase + "529.png"},
	{ID: "11", Name: "Atletico Madrid", League: "La Liga", Country: "Spain", LogoURL: logoBase + "530.png"},
	{ID: "12", Name: "Sevilla", League: "La Liga", Country: "Spain", LogoURL: logoBase + "536.png"},
	{ID: "13", Name: "Real Sociedad", League: "La Liga", Country: "Spain", LogoURL: logoBase + "548.png"},
	{ID: "14", Name: "Villarreal", League: "La Liga", Country: "Spain", LogoURL: logoBase + "533.png"},
	{ID: "15", Name: "Athletic Bilbao", League: "La Liga", Country: "Spain", LogoURL: logoBase + "531.png"},
	{ID: "16", Name: "Valencia", League: "La Liga", Country: "Spain", LogoURL: logoBase + "532.png"},
	{ID: "17", Name: "Bayern Munich", League: "Bundesliga", Country: "Germany", LogoURL: logoBase + "157.png"},
	{ID: "18", Name: "Borussia Dortmund", League: "Bundesliga", Country: "Germany", LogoURL: logoBase + "165.png"},
	{ID: "19", Name: "RB Leipzig", League: "Bundesliga", Country: "Germany", LogoURL: logoBase + "173.png"},
	{ID: "20", Name: "Bayer Leverkusen", League: "Bundesliga", Country: "Germany", LogoURL: logoBase + "168.png"},
	{ID: "21", Name: "Eintracht Frankfurt", League: "Bundesliga", Country: "Germany", LogoURL: logoBase + "169.png"},
	{ID: "22", Name: "Wolfsburg", League: "Bundesliga", Country: "Germany", LogoURL: logoBase + "161.png"},
	{ID: "23", Name: "Inter Milan", League: "Serie A", Country: "Italy", LogoURL: logoBase + "505.png"},
	{ID: "24", Name: "AC Milan", League: "Serie A", Country: "Italy", LogoURL: logoBase + "489.png"},
	{ID: "25", Name: "Juventus", League: "Serie A", Country: "Italy", LogoURL: logoBase + "496.png"},
	{ID: "26", Name: "Napoli", League: "Serie A", Country: "Italy", LogoURL: logoBase + "492.png"},
	{ID: "27", Name: "Roma", League: "Serie A", Country: "Italy", LogoURL: logoBase + "497.png"},
	{ID: "28", Name: "Lazio", League: "Serie A", Country: "Italy", LogoURL: logoBase + "487.png"},
	{ID: "29", Name: "PSG", League: "Ligue 1", Country: "France", LogoURL: logoBase + "85.png"},
	{ID: "30", Name: "Marseille", League: "Ligue 1", Country: "France", LogoURL: logoBase + "81.png"},
	{ID: "31", Name: "Lyon", League: "Ligue 1", Country: "France", LogoURL: logoBase + "80.png"},
	{ID: "32", Name: "Monaco", League: "Ligue 1", Country: "France", LogoURL: logoBase + "91.png"},
}

// Teams returns a copy of every team that can be picked
func Teams() []bracket.Team {
	return slices.Clone(teams)
}

// ByLeague returns the teams of one league, an empty league means all of them
func ByLeague(league string) []bracket.Team {
	if league == "" {
		return Teams()
	}
	var result []bracket.Team
	for _, t := range teams {
		if t.League == league {
			result = append(result, t)
		}
	}
	return result
}

func Find(id string) (bracket.Team, bool) {
	for _, t := range teams {
		if t.ID == id {
			return t, true
		}
	}
	return bracket.Team{}, false
}
