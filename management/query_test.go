package management

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sortedPage struct {
	Paging Page
	Order  Sort      `schema:"sort,omitempty"`
	Fields FieldList `schema:"fields,omitempty"`
	Q      string    `schema:"q,omitempty"`
	hidden string    `schema:"-"`
}

func TestPage_OnlyPerPage(t *testing.T) {
	p := new(Page).PerPage(100)

	q, err := EncodeQuery(p)
	require.NoError(t, err)

	assert.Equal(t, "100", q.Get("per_page"))
	assert.NotContains(t, q, "page")
	assert.NotContains(t, q, "include_totals")
	assert.Len(t, q, 1)
}

func TestPage_Unset(t *testing.T) {
	q, err := EncodeQuery(&Page{})
	require.NoError(t, err)
	assert.Empty(t, q)
	assert.True(t, Page{}.IsZero())
}

func TestPage_AllFields(t *testing.T) {
	p := new(Page).Page(0).PerPage(25).IncludeTotals(true)

	q, err := EncodeQuery(p)
	require.NoError(t, err)
	assert.Equal(t, "0", q.Get("page"))
	assert.Equal(t, "25", q.Get("per_page"))
	assert.Equal(t, "true", q.Get("include_totals"))
	assert.True(t, p.WantsTotals())
}

func TestSort_EmptyIsOmitted(t *testing.T) {
	q, err := EncodeQuery(&sortedPage{})
	require.NoError(t, err)
	assert.NotContains(t, q, "sort")
	assert.Empty(t, q)
}

func TestSort_WireToken(t *testing.T) {
	tests := []struct {
		order Ordering
		want  string
	}{
		{Ascending, "date:1"},
		{Descending, "date:-1"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			r := &sortedPage{}
			r.Order.Sort("date", tc.order)

			q, err := EncodeQuery(r)
			require.NoError(t, err)
			assert.Equal(t, []string{tc.want}, q["sort"])
			assert.Equal(t, tc.want, r.Order.String())
		})
	}
}

func TestEncodeQuery_FlattensAndJoins(t *testing.T) {
	r := &sortedPage{Fields: FieldList{"email", "user_id"}, Q: `email:"jane@example.com"`, hidden: "x"}
	r.Paging.PerPage(10)

	q, err := EncodeQuery(r)
	require.NoError(t, err)
	assert.Equal(t, "email,user_id", q.Get("fields"))
	assert.Equal(t, `email:"jane@example.com"`, q.Get("q"))
	assert.Equal(t, "10", q.Get("per_page"))
	assert.NotContains(t, q, "hidden")
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		in      string
		want    Sort
		wantErr bool
	}{
		{"date:1", Sort{"date", Ascending}, false},
		{"date:-1", Sort{"date", Descending}, false},
		{"date:asc", Sort{"date", Ascending}, false},
		{"date:DESC", Sort{"date", Descending}, false},
		{"date", Sort{"date", Ascending}, false},
		{"", Sort{}, false},
		{":1", Sort{}, true},
		{"date:up", Sort{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseSort(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
	assert.True(t, Sort{}.IsEmpty())
	assert.Equal(t, "", Sort{}.String())
}

func TestOrderingString(t *testing.T) {
	assert.Equal(t, "1", Ascending.String())
	assert.Equal(t, "-1", Descending.String())
	assert.Equal(t, "1", Ordering(0).String())
}
