package expense

import "fmt"

// Index names a secondary index of the record store.
type Index string

const (
	IndexYearMonth Index = "yearMonth-index"
	IndexCategory  Index = "category-index"
)

// Valid reports whether i is one of the known secondary indexes.
func (i Index) Valid() bool {
	return i == IndexYearMonth || i == IndexCategory
}

// Predicate selects records during a full scan. A nil Predicate matches everything.
type Predicate func(r *Record) bool

// Match reports whether r satisfies p.
func (p Predicate) Match(r *Record) bool {
	return p == nil || p(r)
}

// OwnedBy matches records created by owner.
func OwnedBy(owner string) Predicate {
	return func(r *Record) bool {
		return r.Owner == owner
	}
}

// Plan is the single access path chosen for a listing. It is either an
// IndexLookup or a FullScan.
type Plan interface {
	plan()
}

// IndexLookup reads every record whose indexed attribute equals Key.
type IndexLookup struct {
	Index Index
	Key   string
}

// FullScan reads every record matching Predicate.
type FullScan struct {
	Predicate Predicate
}

func (IndexLookup) plan() {}
func (FullScan) plan()    {}

func (p IndexLookup) String() string { return fmt.Sprintf("index(%s=%s)", p.Index, p.Key) }
func (p FullScan) String() string    { return "scan" }

// ListFilter carries the optional listing filters as received from the caller.
// Empty fields are absent.
type ListFilter struct {
	Year     string
	Month    string
	Category string
}

// PlanFor picks the access path for filter.
//
// A complete year and month pair wins over category, and category is then not
// applied at all. A lone year or month is ignored. Ownership is never part of
// the plan; callers filter the candidates afterwards.
func PlanFor(filter ListFilter) (Plan, error) {
	if filter.Year != "" && filter.Month != "" {
		key, err := ParseYearMonth(filter.Year, filter.Month)
		if err != nil {
			return nil, err
		}

		return IndexLookup{Index: IndexYearMonth, Key: key}, nil
	}

	if filter.Category != "" {
		return IndexLookup{Index: IndexCategory, Key: filter.Category}, nil
	}

	return FullScan{}, nil
}
