package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  Record
		wantErr string
	}{
		{name: "valid", record: Record{"bookid": "42", "title": "Dune"}},
		{name: "missing key", record: Record{"title": "Dune"}, wantErr: "bookid is required"},
		{name: "null key", record: Record{"bookid": nil}, wantErr: "bookid is required"},
		{name: "blank key", record: Record{"bookid": "  "}, wantErr: "bookid is required"},
		{name: "numeric key", record: Record{"bookid": 42}, wantErr: "bookid must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestRecord_Clone(t *testing.T) {
	original := Record{"bookid": "1", "title": "Emma"}
	clone := original.Clone()
	clone["title"] = "Persuasion"

	assert.Equal(t, "Emma", original["title"])
	assert.Equal(t, "1", clone.ID())
	assert.Nil(t, Record(nil).Clone())
}

func TestCompositeView_Fields(t *testing.T) {
	reviews := []Review{
		{ReviewID: "a1", Comment: "Great", Reviewer: "ann"},
		{ReviewID: "b2", Comment: "Long", Reviewer: "bob"},
	}
	view := NewCompositeView(Record{"bookid": "7", "title": "Ulysses"}, reviews)

	fields := view.Fields()

	assert.Equal(t, "7", fields["bookid"])
	assert.Equal(t, "Ulysses", fields["title"])
	assert.Equal(t, reviews, fields["reviews"])
}

func TestNewCompositeView_NilReviews(t *testing.T) {
	view := NewCompositeView(Record{"bookid": "7"}, nil)

	assert.NotNil(t, view.Reviews)
	assert.Empty(t, view.Reviews)
}

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "42", NormalizeID("4\n2\n"))
	assert.Equal(t, " 42 ", NormalizeID(" 42 "))
}
