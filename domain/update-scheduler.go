package domain

type EmissionKind int

const (
	EmitNone EmissionKind = iota
	EmitDelta
	EmitSnapshot
)

func (k EmissionKind) String() string {
	switch k {
	case EmitDelta:
		return "delta"
	case EmitSnapshot:
		return "snapshot"
	default:
		return "none"
	}
}

// Emission is the outcome of one scheduling cycle. Only the field matching
// Kind is set.
type Emission struct {
	Kind     EmissionKind
	Delta    Delta
	Snapshot Snapshot
}

type SchedulerMode string

const (
	DeltaMode    SchedulerMode = "delta"
	SnapshotMode SchedulerMode = "snapshot"
)

// UpdateScheduler decides per book mutation whether a feed emits a delta, a
// full snapshot or nothing. It keeps no state of its own: the counter and the
// retained snapshot live in the PairBook it is handed.
type UpdateScheduler struct {
	mode         SchedulerMode
	maxDepth     int
	bookInterval int
}

func NewUpdateScheduler(deltaMode bool, maxDepth int, bookInterval int) *UpdateScheduler {
	mode := SnapshotMode
	if deltaMode {
		mode = DeltaMode
	}
	return &UpdateScheduler{
		mode:         mode,
		maxDepth:     maxDepth,
		bookInterval: bookInterval,
	}
}

func (s *UpdateScheduler) Mode() SchedulerMode {
	return s.mode
}

// Schedule runs one cycle for a book whose live state already includes
// changes. Exactly one of the delta or snapshot paths runs.
//
// The first cycle of a book is always a snapshot. In delta mode the K-th
// non-empty mutation after a snapshot (K = book interval) is emitted as a
// snapshot instead of a delta. With a max depth, the retained snapshot is
// replaced on every cycle, including cycles whose delta is empty.
func (s *UpdateScheduler) Schedule(pb *PairBook, changes Delta, forced bool) Emission {
	if !pb.primed {
		forced = true
	}

	if s.mode == DeltaMode && !forced && pb.Updates+1 < s.bookInterval {
		delta := changes
		if s.maxDepth > 0 {
			current := LimitDepth(pb.Book, s.maxDepth)
			delta = ComputeDelta(pb.Previous, current)
			pb.Previous = &current
			if delta.IsEmpty() {
				return Emission{Kind: EmitNone}
			}
		}

		pb.Updates++
		return Emission{Kind: EmitDelta, Delta: delta}
	}

	snapshot := LimitDepth(pb.Book, s.maxDepth)
	if s.maxDepth > 0 {
		pb.Previous = &snapshot
	}
	pb.Updates = 0
	pb.primed = true

	return Emission{Kind: EmitSnapshot, Snapshot: snapshot}
}
