package book

import (
	"fmt"
	"strings"
)

// KeyAttribute is the primary key attribute of the inventory table.
const KeyAttribute = "bookid"

// Record is a single inventory item. Apart from bookid the attribute set is
// open: title, author, price and anything else the caller stores.
type Record map[string]interface{}

// ID returns the record's bookid, or "" when it is missing or not a string.
func (r Record) ID() string {
	id, _ := r[KeyAttribute].(string)
	return id
}

// Validate checks that the record carries a usable key.
func (r Record) Validate() error {
	raw, ok := r[KeyAttribute]
	if !ok || raw == nil {
		return fmt.Errorf("%s is required", KeyAttribute)
	}
	id, ok := raw.(string)
	if !ok {
		return fmt.Errorf("%s must be a string", KeyAttribute)
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s is required", KeyAttribute)
	}
	return nil
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Review is a reader review stored alongside, but outside of, the inventory.
// Reviews reference books by bookid only; the reference is not enforced.
type Review struct {
	ReviewID string `json:"Review Id"`
	Comment  string `json:"Comment"`
	Reviewer string `json:"Reviewer"`
}

// CompositeView is a book record merged with its reviews. It only exists for
// the lifetime of a single read.
type CompositeView struct {
	Record  Record
	Reviews []Review
}

// NewCompositeView attaches reviews to a record. A nil review list becomes an
// empty one so the merged document always carries a reviews array.
func NewCompositeView(record Record, reviews []Review) *CompositeView {
	if reviews == nil {
		reviews = []Review{}
	}
	return &CompositeView{Record: record, Reviews: reviews}
}

// Fields flattens the view into a single attribute map with the reviews under
// the "reviews" key.
func (v *CompositeView) Fields() map[string]interface{} {
	out := make(map[string]interface{}, len(v.Record)+1)
	for k, val := range v.Record {
		out[k] = val
	}
	out["reviews"] = v.Reviews
	return out
}

// NormalizeID strips embedded newlines from an inbound bookid.
func NormalizeID(raw string) string {
	return strings.ReplaceAll(raw, "\n", "")
}
