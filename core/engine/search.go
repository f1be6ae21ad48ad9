package engine

import (
	"strings"

	"github.com/asaidimu/go-sift/core/record"
)

// SearchRecords returns the records matching the search spec. A nil spec or
// an empty query is the identity. In substring mode a record matches when any
// configured field's string form contains the query; in fuzzy mode a record
// matches when the best per-field similarity reaches the spec's threshold.
// An empty field list searches every field of each record.
func SearchRecords(records []record.Record, spec *SearchSpec) []record.Record {
	if spec == nil || spec.Query == "" {
		return records
	}

	query := spec.Query
	if !spec.CaseSensitive {
		query = strings.ToLower(query)
	}

	matched := make([]record.Record, 0, len(records))
	for _, rec := range records {
		if recordMatches(rec, spec, query) {
			matched = append(matched, rec)
		}
	}
	return matched
}

func recordMatches(rec record.Record, spec *SearchSpec, query string) bool {
	fields := spec.Fields
	if len(fields) == 0 {
		fields = make([]string, 0, len(rec))
		for k := range rec {
			fields = append(fields, k)
		}
	}

	threshold := spec.threshold()
	for _, field := range fields {
		v, ok := rec.Field(field)
		if !ok || v == nil {
			continue
		}
		s := record.Stringify(v)
		if !spec.CaseSensitive {
			s = strings.ToLower(s)
		}
		if spec.Fuzzy {
			if Similarity(query, s) >= threshold {
				return true
			}
		} else if strings.Contains(s, query) {
			return true
		}
	}
	return false
}

// Similarity scores how closely two strings match as a normalized value in
// [0,1], defined as 1 - levenshtein(a,b) / max(len(a), len(b)). Two empty
// strings score 1.0; one empty string scores 0.0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	longest := max(len(a), len(b))
	return 1.0 - float64(levenshtein(a, b))/float64(longest)
}

// levenshtein computes the edit distance between two strings using the
// two-row dynamic programming form.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	al, bl := len(a), len(b)
	if al == 0 {
		return bl
	}
	if bl == 0 {
		return al
	}
	v0 := make([]int, bl+1)
	v1 := make([]int, bl+1)
	for i := 0; i <= bl; i++ {
		v0[i] = i
	}
	for i := 0; i < al; i++ {
		v1[0] = i + 1
		for j := 0; j < bl; j++ {
			cost := 0
			if a[i] != b[j] {
				cost = 1
			}
			v1[j+1] = min(v0[j]+cost, min(v0[j+1]+1, v1[j]+1))
		}
		v0, v1 = v1, v0
	}
	return v0[bl]
}
