package server

import (
	"encoding/json"
	"net/http"

	"github.com/lox/teenpatti/internal/deck"
	"github.com/lox/teenpatti/internal/evaluator"
)

// RankResponse describes an evaluated hand and, when a second hand was
// given, how the two compare.
type RankResponse struct {
	Cards    []deck.Card         `json:"cards"`
	Rank     evaluator.HandRank  `json:"rank"`
	Name     string              `json:"name"`
	Describe string              `json:"describe"`
	Vs       []deck.Card         `json:"vs,omitempty"`
	VsRank   *evaluator.HandRank `json:"vs_rank,omitempty"`
	Result   string              `json:"result,omitempty"` // first, second or tie
}

// handleRank evaluates ?cards=As,Kh,4d and optionally compares it with
// &vs=Qs,Qd,2c.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cards, err := deck.ParseHand(q.Get("cards"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	rank := evaluator.Evaluate(cards)
	resp := RankResponse{
		Cards:    cards,
		Rank:     rank,
		Name:     rank.Name(),
		Describe: rank.String(),
	}

	if vs := q.Get("vs"); vs != "" {
		other, err := deck.ParseHand(vs)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "vs: "+err.Error())
			return
		}
		otherRank := evaluator.Evaluate(other)
		resp.Vs = other
		resp.VsRank = &otherRank
		switch evaluator.Compare(rank, otherRank) {
		case 1:
			resp.Result = "first"
		case -1:
			resp.Result = "second"
		default:
			resp.Result = "tie"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorData{Code: "bad_request", Message: msg})
}
