package chunk

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/weaviate/tiktoken-go"

	"github.com/runnerr0/recollect/internal/extract"
)

// Estimator assigns a token-size estimate to one entry. Estimates only
// steer chunk boundaries; they are never a promise about any particular
// model's tokenizer.
type Estimator interface {
	EstimateTokens(e *extract.Entry) int
}

// serializedForm is the text both estimators measure: the compact JSON
// encoding of the entry, the same shape the JSON artifacts carry.
func serializedForm(e *extract.Entry) string {
	data, _ := json.Marshal(e)
	return string(data)
}

// HeuristicEstimator implements the four-characters-per-token rule:
// max(1, runes/4). The divisor is part of the output contract; changing it
// moves every chunk boundary downstream consumers see.
type HeuristicEstimator struct{}

func (HeuristicEstimator) EstimateTokens(e *extract.Entry) int {
	n := utf8.RuneCountInString(serializedForm(e)) / 4
	if n < 1 {
		return 1
	}
	return n
}

// TiktokenEstimator counts cl100k_base tokens exactly. It is opt-in: the
// heuristic stays the default so chunk boundaries remain reproducible
// across runs that never asked for exact counts.
type TiktokenEstimator struct {
	enc *tiktoken.Tiktoken
}

func NewTiktokenEstimator() (*TiktokenEstimator, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("load cl100k_base encoding: %w", err)
	}
	return &TiktokenEstimator{enc: enc}, nil
}

func (t *TiktokenEstimator) EstimateTokens(e *extract.Entry) int {
	n := len(t.enc.Encode(serializedForm(e), nil, nil))
	if n < 1 {
		return 1
	}
	return n
}
