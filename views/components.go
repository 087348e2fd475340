package views

import (
	"context"
	"io"
	"strconv"

	"github.com/AdamBeresnev/fc-knockout/internal/bracket"
	"github.com/a-h/templ"
)

// htmlWriter collects the first write error so components read top to bottom
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (h *htmlWriter) render(c templ.Component) {
	if h.err == nil {
		h.err = c.Render(h.ctx, h.w)
	}
}

func component(body func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		body(h)
		return h.err
	})
}

func layout(title string, content templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		h.text(title)
		h.raw(` | FC Knockout</title><script src="https://unpkg.com/htmx.org@2.0.4"></script></head>`)
		h.raw(`<body><header><a href="/">FC Knockout</a></header><main>`)
		h.render(content)
		h.raw(`</main></body></html>`)
	})
}

func Index(tournaments []bracket.Tournament) templ.Component {
	return layout("Tournaments", component(func(h *htmlWriter) {
		h.raw(`<h1>Tournaments</h1>`)
		if len(tournaments) == 0 {
			h.raw(`<p>No tournaments yet.</p>`)
		}
		h.raw(`<ul class="tournaments">`)
		for _, t := range tournaments {
			h.render(tournamentItem(t))
		}
		h.raw(`</ul>`)
	}))
}

func tournamentItem(t bracket.Tournament) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<li><a`)
		h.attr("href", string(templ.URL("/tournaments/"+t.ID.String())))
		h.raw(`>`)
		h.text(strconv.Itoa(t.PlayerCount) + " players, " + strconv.Itoa(t.TeamCount) + " teams")
		h.raw(`</a> <span class="phase">`)
		h.text(phaseLabel(t))
		h.raw(`</span> <time>`)
		h.text(t.CreatedAt.Format("2006-01-02 15:04"))
		h.raw(`</time></li>`)
	})
}

func BracketPage(t *bracket.Tournament) templ.Component {
	data := PrepareBracketData(t)
	return layout("Bracket", component(func(h *htmlWriter) {
		h.raw(`<h1>`)
		h.text(phaseLabel(*t))
		h.raw(`</h1>`)
		if t.Winner != nil {
			h.raw(`<p class="champion">Champion: `)
			h.text(t.Winner.Name)
			h.raw(`</p>`)
		}

		h.raw(`<section class="players">`)
		for _, p := range t.Players {
			h.raw(`<div class="player"><strong>`)
			h.text(p.Name)
			h.raw(`</strong> `)
			h.text(strconv.Itoa(len(p.TeamIDs)) + " teams")
			h.raw(`</div>`)
		}
		h.raw(`</section><section class="bracket">`)
		for _, round := range data.Rounds {
			h.render(roundColumn(round))
		}
		h.raw(`</section>`)
	}))
}

func roundColumn(round RoundView) templ.Component {
	return component(func(h *htmlWriter) {
		class := "round"
		if round.Current {
			class += " current"
		}
		h.raw(`<div`)
		h.attr("class", class)
		h.raw(`><h2>`)
		h.text(round.Name)
		h.raw(`</h2>`)
		for _, m := range round.Matches {
			h.render(matchCard(m))
		}
		h.raw(`</div>`)
	})
}

func matchCard(m MatchView) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="match"`)
		h.attr("id", "match-"+m.ID.String())
		h.raw(`>`)
		h.render(matchSide(m.HomeTeam, m.HomePlayer, isWinner(m.Match, m.HomeTeam.ID)))
		h.raw(`<div class="score">`)
		h.text(scoreLine(m.Match))
		h.raw(`</div>`)
		h.render(matchSide(m.AwayTeam, m.AwayPlayer, isWinner(m.Match, m.AwayTeam.ID)))
		h.raw(`<div class="state">`)
		h.text(stateLabel(m.Match))
		h.raw(`</div></div>`)
	})
}

func matchSide(team bracket.Team, player string, winner bool) templ.Component {
	return component(func(h *htmlWriter) {
		class := "side"
		if winner {
			class += " winner"
		}
		h.raw(`<div`)
		h.attr("class", class)
		h.raw(`><img`)
		h.attr("src", string(templ.URL(team.LogoURL)))
		h.raw(` alt="" width="24" height="24"> `)
		h.text(team.Name)
		h.raw(` <small>`)
		h.text(player)
		h.raw(`</small></div>`)
	})
}
