package handanalyzer

import "sort"

type ranked struct {
	id   string
	eval HandEvaluation
}

// Ranking orders evaluated hands and groups equal hands into tiers
// The zero value is ready to use
type Ranking struct {
	hands []ranked
}

// Add records a player's evaluated hand
func (r *Ranking) Add(id string, eval HandEvaluation) {
	r.hands = append(r.hands, ranked{id: id, eval: eval})
}

// Tiers returns the player IDs grouped by equal score, strongest first
// Players within a tier keep the order they were added in
func (r *Ranking) Tiers() [][]string {
	sorted := append([]ranked{}, r.hands...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Compare(sorted[i].eval, sorted[j].eval) > 0
	})

	var tiers [][]string
	for i, h := range sorted {
		if i == 0 || Compare(sorted[i-1].eval, h.eval) != 0 {
			tiers = append(tiers, nil)
		}

		tiers[len(tiers)-1] = append(tiers[len(tiers)-1], h.id)
	}

	return tiers
}

// Winners returns the players holding the best hand, nil when no hand was added
func (r *Ranking) Winners() []string {
	tiers := r.Tiers()
	if len(tiers) == 0 {
		return nil
	}

	return tiers[0]
}
