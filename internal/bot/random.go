package bot

import (
	"context"
	"math/rand"
	"sync"
)

// Random picks uniformly among the legal moves. The host also uses it as the fallback when
// another suggester fails.
type Random struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewRandom(r *rand.Rand) *Random {
	return &Random{r: r}
}

func (b *Random) Suggest(_ context.Context, v View) (Suggestion, error) {
	if len(v.Legal) == 0 {
		return Suggestion{}, ErrNoLegalMoves
	}
	b.mu.Lock()
	i := b.r.Intn(len(v.Legal))
	b.mu.Unlock()
	return Suggestion{Move: v.Legal[i], Rationale: "random pick"}, nil
}
