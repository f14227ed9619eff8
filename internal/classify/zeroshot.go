package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tshwane_places/internal/domain"
)

// ZeroShot talks to an external zero-shot inference service. It is strictly a
// drop-in over the rule-based vocabulary: responses using labels outside it
// are rejected so the chain can fall through.
type ZeroShot struct {
	endpoint string
	apiKey   string
	hc       *http.Client
}

func NewZeroShot(endpoint, apiKey string) *ZeroShot {
	return &ZeroShot{
		endpoint: endpoint,
		apiKey:   apiKey,
		hc:       &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *ZeroShot) Classify(ctx context.Context, text string) (domain.Classification, error) {
	labels := make([]string, 0, len(categoryKeywords))
	for _, cat := range categoryKeywords {
		labels = append(labels, cat.name)
	}

	payload := map[string]any{
		"text":            text,
		"candidate_labels": labels,
		"sentiment_labels": []string{
			string(domain.SentimentPositive),
			string(domain.SentimentNeutral),
			string(domain.SentimentNegative),
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/classify", bytes.NewReader(body))
	if err != nil {
		return domain.Classification{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Classification{}, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var out struct {
		Categories []string `json:"categories"`
		Sentiment  string   `json:"sentiment"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.Classification{}, fmt.Errorf("decode response: %w", err)
	}

	known := map[string]struct{}{}
	for _, l := range labels {
		known[l] = struct{}{}
	}
	cats := make([]string, 0, domain.MaxCategories)
	for _, c := range out.Categories {
		if _, ok := known[c]; !ok {
			return domain.Classification{}, fmt.Errorf("unknown category label %q", c)
		}
		if len(cats) < domain.MaxCategories {
			cats = append(cats, c)
		}
	}

	s := domain.Sentiment(out.Sentiment)
	switch s {
	case domain.SentimentPositive, domain.SentimentNeutral, domain.SentimentNegative:
	default:
		return domain.Classification{}, fmt.Errorf("unknown sentiment label %q", out.Sentiment)
	}

	return domain.Classification{Categories: cats, Sentiment: s}, nil
}
