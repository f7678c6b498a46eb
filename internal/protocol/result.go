package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcoot/piranhas-client/internal/model"
)

// resultBuilder collects the children of a result element
type resultBuilder struct {
	scores []model.Score
	score  *model.Score
	part   *strings.Builder // non-nil inside a part element
	winner *model.Winner
}

func (r *resultBuilder) start(ev Event) error {
	switch ev.Name {
	case "score":
		cause := model.CauseUnknown
		if raw, ok := ev.Attr("cause"); ok {
			c, err := model.ParseScoreCause(raw)
			if err != nil {
				return fmt.Errorf("%w: %w", model.ErrProtocol, err)
			}
			cause = c
		}
		reason, _ := ev.Attr("reason")
		r.score = &model.Score{Cause: cause, Reason: reason}
	case "part":
		if r.score != nil {
			r.part = &strings.Builder{}
		}
	case "winner":
		raw, err := requireAttr(ev, "color")
		if err != nil {
			return err
		}
		color, err := model.ParsePlayerColor(raw)
		if err != nil {
			return fmt.Errorf("%w: %w", model.ErrProtocol, err)
		}
		name, _ := ev.Attr("displayName")
		r.winner = &model.Winner{DisplayName: name, Color: color}
	}
	return nil
}

func (r *resultBuilder) text(text string) {
	if r.part != nil {
		r.part.WriteString(text)
	}
}

func (r *resultBuilder) end(name string) error {
	switch name {
	case "part":
		if r.part == nil {
			return nil
		}
		raw := strings.TrimSpace(r.part.String())
		r.part = nil
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return violation(model.ErrMalformedAttribute, "score part %q", raw)
		}
		r.score.Values = append(r.score.Values, v)
	case "score":
		if r.score != nil {
			r.scores = append(r.scores, *r.score)
			r.score = nil
		}
	}
	return nil
}

func (r *resultBuilder) build() model.GameResult {
	return model.GameResult{Scores: r.scores, Winner: r.winner}
}
