package domain

import (
	"encoding/json"
	"fmt"
)

// IndexStatus is the state of one record after an indexing pass.
// The set of variants is closed: Indexed, Processing and IndexFailed.
type IndexStatus interface {
	State() string
	isIndexStatus()
}

const (
	StateIndexed    = "indexed"
	StateProcessing = "processing"
	StateError      = "error"
)

// Indexed marks a record that completed the pass.
type Indexed struct{}

// Processing marks a record still being indexed.
type Processing struct{}

// IndexFailed marks a record that could not be indexed.
type IndexFailed struct {
	Reason string
}

func (Indexed) State() string     { return StateIndexed }
func (Processing) State() string  { return StateProcessing }
func (IndexFailed) State() string { return StateError }

func (Indexed) isIndexStatus()     {}
func (Processing) isIndexStatus()  {}
func (IndexFailed) isIndexStatus() {}

// IndexResult is the derived artifact for one email.
type IndexResult struct {
	ID         string      `json:"id"`
	VectorID   string      `json:"vectorId"`
	Similarity float64     `json:"similarity"`
	Status     IndexStatus `json:"status"`
}

type indexResultJSON struct {
	ID         string  `json:"id"`
	VectorID   string  `json:"vectorId"`
	Similarity float64 `json:"similarity"`
	Status     string  `json:"status"`
	Error      string  `json:"error,omitempty"`
}

// MarshalJSON flattens Status to its state string.
func (r IndexResult) MarshalJSON() ([]byte, error) {
	out := indexResultJSON{
		ID:         r.ID,
		VectorID:   r.VectorID,
		Similarity: r.Similarity,
		Status:     StateProcessing,
	}
	if r.Status != nil {
		out.Status = r.Status.State()
	}
	if failed, ok := r.Status.(IndexFailed); ok {
		out.Error = failed.Reason
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the Status variant from its state string.
func (r *IndexResult) UnmarshalJSON(data []byte) error {
	var in indexResultJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	status, err := ParseIndexStatus(in.Status, in.Error)
	if err != nil {
		return err
	}
	*r = IndexResult{
		ID:         in.ID,
		VectorID:   in.VectorID,
		Similarity: in.Similarity,
		Status:     status,
	}
	return nil
}

// ParseIndexStatus maps a state string back to its variant.
func ParseIndexStatus(state, reason string) (IndexStatus, error) {
	switch state {
	case StateIndexed:
		return Indexed{}, nil
	case StateProcessing:
		return Processing{}, nil
	case StateError:
		return IndexFailed{Reason: reason}, nil
	default:
		return nil, fmt.Errorf("unknown index status %q", state)
	}
}
