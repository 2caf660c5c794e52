// Package query parses catalog query parameters into structured filter and
// sort specifications consumed by the repositories.
package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Ordering fields accepted for package listings
var packageOrderFields = map[string]string{
	"price":         "price",
	"created_at":    "created_at",
	"title":         "title",
	"duration_days": "duration_days",
}

// OrderTerm is one column of an ORDER BY specification
type OrderTerm struct {
	Field string
	Desc  bool
}

// PackageFilter is the structured form of the package listing query grammar.
type PackageFilter struct {
	CountryID           *uint
	CountryName         *string
	CountryNameContains *string
	VisaType            *string
	Price               *float64
	PriceGTE            *float64
	PriceLTE            *float64
	PriceRange          *[2]float64
	DurationDays        *uint
	DurationGTE         *uint
	DurationLTE         *uint
	DestinationID       *uint
	DestinationContains *string
	Search              string
	Ordering            []OrderTerm
}

// DefaultPackageOrdering is applied when no ordering parameter is given:
// newest first, ties broken by title.
var DefaultPackageOrdering = []OrderTerm{
	{Field: "created_at", Desc: true},
	{Field: "title"},
}

// ParsePackageFilter parses the recognized package query parameters.
// Malformed values are reported in a field-keyed error map; nil means the
// query is valid.
func ParsePackageFilter(params map[string]string) (*PackageFilter, map[string]string) {
	f := &PackageFilter{Ordering: DefaultPackageOrdering}
	errs := map[string]string{}

	parseUint := func(key string, dst **uint) {
		raw, ok := params[key]
		if !ok || raw == "" {
			return
		}
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			errs[key] = "must be a positive integer"
			return
		}
		u := uint(v)
		*dst = &u
	}
	parseFloat := func(key string, dst **float64) {
		raw, ok := params[key]
		if !ok || raw == "" {
			return
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs[key] = "must be a number"
			return
		}
		*dst = &v
	}
	parseString := func(key string, dst **string) {
		if raw, ok := params[key]; ok && raw != "" {
			s := raw
			*dst = &s
		}
	}

	parseUint("country__id", &f.CountryID)
	parseString("country__name", &f.CountryName)
	parseString("country__name__icontains", &f.CountryNameContains)
	parseString("visa_type", &f.VisaType)
	parseFloat("price", &f.Price)
	parseFloat("price__gte", &f.PriceGTE)
	parseFloat("price__lte", &f.PriceLTE)
	parseUint("duration_days", &f.DurationDays)
	parseUint("duration_days__gte", &f.DurationGTE)
	parseUint("duration_days__lte", &f.DurationLTE)
	parseUint("destinations__id", &f.DestinationID)
	parseString("destinations__name__icontains", &f.DestinationContains)

	if raw, ok := params["price__range"]; ok && raw != "" {
		parts := strings.Split(raw, ",")
		if len(parts) != 2 {
			errs["price__range"] = "must be two numbers separated by a comma"
		} else {
			lo, errLo := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
			hi, errHi := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if errLo != nil || errHi != nil {
				errs["price__range"] = "must be two numbers separated by a comma"
			} else {
				f.PriceRange = &[2]float64{lo, hi}
			}
		}
	}

	f.Search = strings.TrimSpace(params["search"])

	if raw, ok := params["ordering"]; ok && strings.TrimSpace(raw) != "" {
		terms, err := parseOrdering(raw)
		if err != nil {
			errs["ordering"] = err.Error()
		} else {
			f.Ordering = terms
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return f, nil
}

// parseOrdering parses a comma-separated ordering expression.
// A leading "-" on a field means descending.
func parseOrdering(raw string) ([]OrderTerm, error) {
	var terms []OrderTerm
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := false
		if strings.HasPrefix(part, "-") {
			desc = true
			part = part[1:]
		}
		column, ok := packageOrderFields[part]
		if !ok {
			return nil, fmt.Errorf("unknown ordering field %q", part)
		}
		terms = append(terms, OrderTerm{Field: column, Desc: desc})
	}
	if len(terms) == 0 {
		return DefaultPackageOrdering, nil
	}
	return terms, nil
}

// OrderClause renders the ordering terms as a SQL ORDER BY fragment.
func OrderClause(terms []OrderTerm) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		if t.Desc {
			parts = append(parts, t.Field+" DESC")
		} else {
			parts = append(parts, t.Field)
		}
	}
	return strings.Join(parts, ", ")
}
