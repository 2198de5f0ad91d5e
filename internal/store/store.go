package store

import "context"

// Document is a persisted record as a field map, the only shape the
// remote store exchanges.
type Document = map[string]interface{}

// Op is a filter comparison operator.
type Op string

const (
	OpEqual              Op = "=="
	OpIn                 Op = "in"
	OpGreaterThanOrEqual Op = ">="
	OpLessThanOrEqual    Op = "<="
)

// Filter is a single field predicate. Multiple filters on a query
// combine conjunctively.
type Filter struct {
	Field string
	Op    Op
	Value interface{}
}

// Query describes a filtered, ordered, limited read against a
// collection. Build it fluently with NewQuery and the Where/OrderBy
// methods; the zero limit means "no limit".
type Query struct {
	Collection string
	Filters    []Filter
	OrderField string
	Descending bool
	StartValue interface{} // inclusive lower bound on OrderField
	EndValue   interface{} // inclusive upper bound on OrderField
	LimitCount int
}

// NewQuery starts a query against the named collection.
func NewQuery(collection string) Query {
	return Query{Collection: collection}
}

// WhereEqualTo adds an equality predicate.
func (q Query) WhereEqualTo(field string, value interface{}) Query {
	q.Filters = append(q.Filters[:len(q.Filters):len(q.Filters)], Filter{Field: field, Op: OpEqual, Value: value})
	return q
}

// WhereIn adds a membership predicate. The store limits the value set
// to 10 entries per query; callers batch accordingly.
func (q Query) WhereIn(field string, values []interface{}) Query {
	q.Filters = append(q.Filters[:len(q.Filters):len(q.Filters)], Filter{Field: field, Op: OpIn, Value: values})
	return q
}

// WhereGreaterThanOrEqualTo adds a lower-bound predicate.
func (q Query) WhereGreaterThanOrEqualTo(field string, value interface{}) Query {
	q.Filters = append(q.Filters[:len(q.Filters):len(q.Filters)], Filter{Field: field, Op: OpGreaterThanOrEqual, Value: value})
	return q
}

// WhereLessThanOrEqualTo adds an upper-bound predicate.
func (q Query) WhereLessThanOrEqualTo(field string, value interface{}) Query {
	q.Filters = append(q.Filters[:len(q.Filters):len(q.Filters)], Filter{Field: field, Op: OpLessThanOrEqual, Value: value})
	return q
}

// OrderBy sets the ordering field and direction.
func (q Query) OrderBy(field string, descending bool) Query {
	q.OrderField = field
	q.Descending = descending
	return q
}

// StartAt sets an inclusive lower bound on the order-by field.
func (q Query) StartAt(value interface{}) Query {
	q.StartValue = value
	return q
}

// EndAt sets an inclusive upper bound on the order-by field.
func (q Query) EndAt(value interface{}) Query {
	q.EndValue = value
	return q
}

// Limit caps the number of returned documents.
func (q Query) Limit(n int) Query {
	q.LimitCount = n
	return q
}

// Store is the remote document store contract the repository consumes.
// Every call may fail with a transport error; Get reports a missing
// document with ErrNotFound.
type Store interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	Set(ctx context.Context, collection, id string, doc Document) error
	Delete(ctx context.Context, collection, id string) error
	Find(ctx context.Context, q Query) ([]Document, error)
	Count(ctx context.Context, q Query) (int, error)
}
