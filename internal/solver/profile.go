package solver

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lox/ofcsolver/internal/fileutil"
	"github.com/lox/ofcsolver/internal/ofc"
)

// NodeSnapshot is the persisted form of one RegretEntry. Float32 halves the
// on-disk size of a profile with many millions of nodes; CFR's own noise
// floor is far above float32 precision, so nothing is lost converging to
// it.
type NodeSnapshot struct {
	RegretSum   []float32 `json:"r"`
	StrategySum []float32 `json:"s"`
	Normalising float32   `json:"n"`
}

// NodeRecord pairs an information-set key with its snapshot. Profile stores
// these as a slice rather than a map keyed by InfoSetKey directly, since
// encoding/json only marshals string (or TextMarshaler) map keys and the
// key is a struct.
type NodeRecord struct {
	Key      ofc.InfoSetKey `json:"key"`
	Snapshot NodeSnapshot   `json:"snapshot"`
}

// Profile is the serialized form of a trained RegretTable: a snapshot of
// every information set visited, plus the iteration count it was trained
// to. It's the hand-off artifact between the trainer and the runtime
// policy.
type Profile struct {
	Iteration int          `json:"iteration"`
	Nodes     []NodeRecord `json:"nodes"`
}

func toFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}

func toFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

// BuildProfile snapshots the trainer's current regret table into a
// Profile suitable for saving.
func (t *Trainer) BuildProfile() Profile {
	nodes := make([]NodeRecord, 0, t.regrets.Size())
	t.regrets.Range(func(key ofc.InfoSetKey, entry *RegretEntry) {
		entry.mu.Lock()
		nodes = append(nodes, NodeRecord{
			Key: key,
			Snapshot: NodeSnapshot{
				RegretSum:   toFloat32(entry.RegretSum),
				StrategySum: toFloat32(entry.StrategySum),
				Normalising: float32(entry.Normalising),
			},
		})
		entry.mu.Unlock()
	})
	return Profile{Iteration: int(t.iteration.Load()), Nodes: nodes}
}

// SaveProfile snapshots and atomically writes the trainer's state to path.
func (t *Trainer) SaveProfile(path string) error {
	profile := t.BuildProfile()
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("solver: marshal profile: %w", err)
	}
	return fileutil.WriteFileAtomic(path, data, 0o644)
}

// LoadProfile reads a Profile previously written by SaveProfile.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("solver: read profile: %w", err)
	}
	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return Profile{}, fmt.Errorf("solver: unmarshal profile: %w", err)
	}
	return profile, nil
}

// RegretTableFromProfile rebuilds a RegretTable from a loaded Profile, for
// resuming training.
func RegretTableFromProfile(profile Profile) *RegretTable {
	table := NewRegretTable()
	for _, rec := range profile.Nodes {
		table.Put(rec.Key, &RegretEntry{
			RegretSum:   toFloat64(rec.Snapshot.RegretSum),
			StrategySum: toFloat64(rec.Snapshot.StrategySum),
			Normalising: float64(rec.Snapshot.Normalising),
		})
	}
	return table
}

// LoadTrainerFromCheckpoint restores a Trainer from a persisted Profile,
// continuing from the iteration it was saved at. The caller must still
// supply the abstraction and training config the run started with; a
// Profile only records accumulated node statistics, not configuration.
func LoadTrainerFromCheckpoint(path string, absCfg ofc.AbstractionConfig, trainCfg TrainingConfig) (*Trainer, error) {
	profile, err := LoadProfile(path)
	if err != nil {
		return nil, err
	}
	table := RegretTableFromProfile(profile)
	return NewTrainerWithTable(absCfg, trainCfg, table, profile.Iteration)
}

// AverageStrategy returns the converged (time-averaged) strategy for a
// given information-set key and action count, suitable for driving
// play. It is the runtime-facing counterpart of BuildProfile: instead of
// snapshotting the whole table, it looks up a single node on demand.
func (t *Trainer) AverageStrategy(key ofc.InfoSetKey, actionCount int) []float64 {
	return t.regrets.Get(key, actionCount).AverageStrategy()
}
