package usecase

import (
	"log"
	"math"
	"math/big"
	"math/rand"
	"time"

	emaildomain "mailqa-backend/internal/email/domain"

	"github.com/google/uuid"
)

const (
	minSimilarity = 0.7
	maxSimilarity = 1.0

	vectorIDPrefix = "vec_"
	vectorIDLength = 9
)

// Indexer runs the simulated indexing pass. No vectors are computed; every
// record gets a fresh opaque id and a decorative similarity score.
type Indexer struct {
	Delay      Delay
	Step       time.Duration // delay before each record
	Similarity func() float64
	VectorID   func() string
}

// NewIndexer creates an Indexer with random scores and UUID-derived vector ids
func NewIndexer(delay Delay, step time.Duration) *Indexer {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Indexer{
		Delay:      delay,
		Step:       step,
		Similarity: func() float64 { return RandomSimilarity(rng.Float64) },
		VectorID:   NewVectorID,
	}
}

// Index processes emails one at a time. After each record the growing result
// slice is copied and passed to onProgress, so callers observe lengths
// 1, 2, ..., len(emails). Every result has status Indexed.
func (ix *Indexer) Index(emails []emaildomain.Email, onProgress func([]emaildomain.IndexResult)) []emaildomain.IndexResult {
	delay := ix.Delay
	if delay == nil {
		delay = NoDelay
	}

	results := make([]emaildomain.IndexResult, 0, len(emails))
	for _, email := range emails {
		delay(ix.Step)

		results = append(results, emaildomain.IndexResult{
			ID:         email.ID,
			VectorID:   ix.VectorID(),
			Similarity: ix.Similarity(),
			Status:     emaildomain.Indexed{},
		})

		if onProgress != nil {
			partial := make([]emaildomain.IndexResult, len(results))
			copy(partial, results)
			onProgress(partial)
		}
	}

	log.Printf("[Indexer] Indexed %d emails", len(results))
	return results
}

// RandomSimilarity maps a uniform [0,1) sample onto [0.7, 1.0).
func RandomSimilarity(float func() float64) float64 {
	s := minSimilarity + float()*(maxSimilarity-minSimilarity)
	if s >= maxSimilarity {
		s = math.Nextafter(maxSimilarity, 0)
	}
	return s
}

// NewVectorID returns "vec_" followed by 9 base-36 characters taken from a random UUID.
func NewVectorID() string {
	id := uuid.New()
	n := new(big.Int).SetBytes(id[:])
	encoded := n.Text(36)
	for len(encoded) < vectorIDLength {
		encoded = "0" + encoded
	}
	return vectorIDPrefix + encoded[len(encoded)-vectorIDLength:]
}
