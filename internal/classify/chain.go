package classify

import (
	"context"

	"github.com/rs/zerolog/log"

	"tshwane_places/internal/domain"
)

// Chain tries classifiers in order and falls through on any error. The
// rule-based tier is appended as the terminal member, so Classify never
// fails: a missing or broken model dependency costs accuracy, not the batch.
type Chain struct {
	tiers []domain.Classifier
}

func NewChain(models ...domain.Classifier) *Chain {
	tiers := make([]domain.Classifier, 0, len(models)+1)
	tiers = append(tiers, models...)
	tiers = append(tiers, Rules{})
	return &Chain{tiers: tiers}
}

func (c *Chain) Classify(ctx context.Context, text string) (domain.Classification, error) {
	for i, tier := range c.tiers {
		res, err := tier.Classify(ctx, text)
		if err != nil {
			log.Warn().Err(err).Int("tier", i).Msg("classifier tier failed, falling through")
			continue
		}
		return res, nil
	}
	// unreachable: Rules never errors
	return Rules{}.Classify(ctx, text)
}
