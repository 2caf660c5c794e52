package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePackageFilter_Empty(t *testing.T) {
	t.Parallel()

	f, errs := ParsePackageFilter(map[string]string{})
	require.Nil(t, errs)
	require.NotNil(t, f)

	assert.Nil(t, f.CountryID)
	assert.Nil(t, f.Price)
	assert.Empty(t, f.Search)
	assert.Equal(t, DefaultPackageOrdering, f.Ordering)
}

func TestParsePackageFilter_AllFields(t *testing.T) {
	t.Parallel()

	f, errs := ParsePackageFilter(map[string]string{
		"country__id":                   "3",
		"country__name":                 "Japan",
		"country__name__icontains":      "jap",
		"visa_type":                     "E_VISA",
		"price":                         "199.99",
		"price__gte":                    "100",
		"price__lte":                    "500",
		"price__range":                  "100, 500",
		"duration_days":                 "7",
		"duration_days__gte":            "3",
		"duration_days__lte":            "10",
		"destinations__id":              "12",
		"destinations__name__icontains": "tokyo",
		"search":                        "  cherry blossom  ",
	})
	require.Nil(t, errs)

	require.NotNil(t, f.CountryID)
	assert.Equal(t, uint(3), *f.CountryID)
	assert.Equal(t, "Japan", *f.CountryName)
	assert.Equal(t, "jap", *f.CountryNameContains)
	assert.Equal(t, "E_VISA", *f.VisaType)
	assert.Equal(t, 199.99, *f.Price)
	assert.Equal(t, 100.0, *f.PriceGTE)
	assert.Equal(t, 500.0, *f.PriceLTE)
	assert.Equal(t, [2]float64{100, 500}, *f.PriceRange)
	assert.Equal(t, uint(7), *f.DurationDays)
	assert.Equal(t, uint(3), *f.DurationGTE)
	assert.Equal(t, uint(10), *f.DurationLTE)
	assert.Equal(t, uint(12), *f.DestinationID)
	assert.Equal(t, "tokyo", *f.DestinationContains)
	assert.Equal(t, "cherry blossom", f.Search)
}

func TestParsePackageFilter_BadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params map[string]string
		field  string
	}{
		{"bad country id", map[string]string{"country__id": "abc"}, "country__id"},
		{"negative country id", map[string]string{"country__id": "-1"}, "country__id"},
		{"bad price", map[string]string{"price": "cheap"}, "price"},
		{"bad price gte", map[string]string{"price__gte": "x"}, "price__gte"},
		{"range one value", map[string]string{"price__range": "100"}, "price__range"},
		{"range three values", map[string]string{"price__range": "1,2,3"}, "price__range"},
		{"range non numeric", map[string]string{"price__range": "a,b"}, "price__range"},
		{"bad duration", map[string]string{"duration_days": "week"}, "duration_days"},
		{"unknown ordering field", map[string]string{"ordering": "rating"}, "ordering"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f, errs := ParsePackageFilter(tt.params)
			assert.Nil(t, f)
			require.NotNil(t, errs)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestParsePackageFilter_Ordering(t *testing.T) {
	t.Parallel()

	f, errs := ParsePackageFilter(map[string]string{"ordering": "-price, title"})
	require.Nil(t, errs)
	require.Len(t, f.Ordering, 2)
	assert.Equal(t, OrderTerm{Field: "price", Desc: true}, f.Ordering[0])
	assert.Equal(t, OrderTerm{Field: "title"}, f.Ordering[1])
}

func TestParsePackageFilter_OrderingBlankFallsBack(t *testing.T) {
	t.Parallel()

	f, errs := ParsePackageFilter(map[string]string{"ordering": " , "})
	require.Nil(t, errs)
	assert.Equal(t, DefaultPackageOrdering, f.Ordering)
}

func TestOrderClause(t *testing.T) {
	t.Parallel()

	clause := OrderClause([]OrderTerm{
		{Field: "created_at", Desc: true},
		{Field: "title"},
	})
	assert.Equal(t, "created_at DESC, title", clause)
}
