package contributor

// DateLayout is the calendar-date format used by every date field.
const DateLayout = "2006-01-02"

// IDPrefix is the fixed prefix of generated contributor ids.
const IDPrefix = "CB"

// Status represents the assignment stage of a contributor.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAssigned Status = "assigned"
)

// Result represents the outcome stage, independent of Status.
type Result string

const (
	ResultNone   Result = ""
	ResultPassed Result = "passed"
	ResultFailed Result = "failed"
)

// Target is the requested status for an add or ingestion operation. Entry
// surfaces offer a single four-way choice that folds both stages together;
// the store splits it back into Status and Result on write.
type Target string

const (
	TargetPending  Target = "pending"
	TargetAssigned Target = "assigned"
	TargetPassed   Target = "passed"
	TargetFailed   Target = "failed"
)

// IsResult reports whether the target carries an outcome.
func (t Target) IsResult() bool {
	return t == TargetPassed || t == TargetFailed
}

// Result returns the outcome a result-bearing target maps to.
func (t Target) Result() Result {
	switch t {
	case TargetPassed:
		return ResultPassed
	case TargetFailed:
		return ResultFailed
	default:
		return ResultNone
	}
}

// Valid reports whether the target is one of the four known values.
func (t Target) Valid() bool {
	switch t {
	case TargetPending, TargetAssigned, TargetPassed, TargetFailed:
		return true
	}
	return false
}

// Partition identifies which of the two mutually exclusive sets holds a record.
type Partition string

const (
	PartitionActive   Partition = "active"
	PartitionArchived Partition = "archived"
)

// Contributor is one tracked individual within a project. Date fields hold
// DateLayout strings; empty means unset. JSON names match the project
// export/import and share-link formats.
type Contributor struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Status        Status `json:"status"`
	Result        Result `json:"result,omitempty"`
	DateAdded     string `json:"dateAdded,omitempty"`
	DateAssigned  string `json:"dateAssigned,omitempty"`
	DateCompleted string `json:"dateCompleted,omitempty"`
	DateArchived  string `json:"dateArchived,omitempty"`
}

// Snapshot is a project's full record set, both partitions in list order.
type Snapshot struct {
	Active   []Contributor `json:"activeContributors"`
	Archived []Contributor `json:"archivedContributors"`
}

// UpdateKind selects which stage UpdateStatus mutates.
type UpdateKind string

const (
	UpdateAssignment UpdateKind = "assignment"
	UpdateResult     UpdateKind = "result"
)
