// Package practice holds the standard practice-area categories shared by
// user profiles and content, plus helpers to map free text onto them.
package practice

import "strings"

// General is the catch-all practice area returned by Migrate.
const General = "General"

// Area describes one standard practice area.
type Area struct {
	Value       string   `json:"value"`
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

var areas = []Area{ //nolint:gochecknoglobals // fixed lookup table
	{
		Value:       "Constitutional Law",
		Label:       "Constitutional Law",
		Description: "Constitutional interpretation, civil rights, and fundamental legal principles",
		Keywords:    []string{"constitution", "civil rights", "fundamental rights", "constitutional interpretation", "supreme court"},
	},
	{
		Value:       "Corporate Law",
		Label:       "Corporate Law",
		Description: "Business formation, mergers, acquisitions, and corporate governance",
		Keywords:    []string{"business", "corporate", "mergers", "acquisitions", "company law", "securities", "governance"},
	},
	{
		Value:       "Employment Law",
		Label:       "Employment Law",
		Description: "Workplace rights, labor relations, and employment disputes",
		Keywords:    []string{"employment", "labor", "workplace", "discrimination", "wages", "workers rights"},
	},
	{
		Value:       "Intellectual Property",
		Label:       "Intellectual Property",
		Description: "Patents, trademarks, copyrights, and trade secrets",
		Keywords:    []string{"patent", "trademark", "copyright", "intellectual property", "IP", "trade secrets"},
	},
	{
		Value:       "Criminal Law",
		Label:       "Criminal Law",
		Description: "Criminal defense, prosecution, and criminal justice system",
		Keywords:    []string{"criminal", "defense", "prosecution", "crime", "justice", "court", "trial"},
	},
	{
		Value:       "Family Law",
		Label:       "Family Law",
		Description: "Divorce, custody, adoption, and family-related legal matters",
		Keywords:    []string{"family", "divorce", "custody", "adoption", "marriage", "domestic"},
	},
	{
		Value:       "Civil Litigation",
		Label:       "Civil Litigation",
		Description: "Civil disputes, commercial litigation, and dispute resolution",
		Keywords:    []string{"litigation", "civil", "dispute", "lawsuit", "court", "settlement"},
	},
	{
		Value:       "Real Estate Law",
		Label:       "Real Estate Law",
		Description: "Property transactions, real estate disputes, and property law",
		Keywords:    []string{"real estate", "property", "land", "housing", "transactions", "zoning"},
	},
	{
		Value:       "Regulatory Compliance",
		Label:       "Regulatory Compliance",
		Description: "Regulatory advisory, compliance programs, and government relations",
		Keywords:    []string{"regulatory", "compliance", "government", "regulations", "policy"},
	},
	{
		Value:       "General",
		Label:       "General Practice",
		Description: "General legal practice covering multiple areas of law",
		Keywords:    []string{"general", "practice", "legal", "law", "attorney", "lawyer"},
	},
	{
		Value:       "Student",
		Label:       "Law Student",
		Description: "Currently studying law or preparing for legal career",
		Keywords:    []string{"student", "law school", "legal education", "studying", "academic"},
	},
}

// All returns a copy of the standard practice areas in display order.
func All() []Area {
	out := make([]Area, len(areas))
	copy(out, areas)
	return out
}

// Values returns the value of every standard practice area.
func Values() []string {
	out := make([]string, len(areas))
	for i, a := range areas {
		out[i] = a.Value
	}
	return out
}

// ByValue looks up an area by its exact value.
func ByValue(value string) (Area, bool) {
	for _, a := range areas {
		if a.Value == value {
			return a, true
		}
	}
	return Area{}, false
}

// IsValid reports whether value names a standard practice area.
func IsValid(value string) bool {
	_, ok := ByValue(value)
	return ok
}

// Keywords returns the similarity keywords of the area with the given value,
// or an empty slice for unknown values.
func Keywords(value string) []string {
	a, ok := ByValue(value)
	if !ok {
		return []string{}
	}
	out := make([]string, len(a.Keywords))
	copy(out, a.Keywords)
	return out
}

// BestMatch maps free text onto a standard area: exact value or label
// first, then the area sharing the most keywords, then a substring match
// on the value.
func BestMatch(s string) (Area, bool) {
	needle := strings.ToLower(strings.TrimSpace(s))
	if needle == "" {
		return Area{}, false
	}

	for _, a := range areas {
		if strings.ToLower(a.Value) == needle || strings.ToLower(a.Label) == needle {
			return a, true
		}
	}

	best, bestHits := -1, 0
	for i, a := range areas {
		hits := 0
		for _, kw := range a.Keywords {
			kw = strings.ToLower(kw)
			if strings.Contains(needle, kw) || strings.Contains(kw, needle) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = i, hits
		}
	}
	if best >= 0 {
		return areas[best], true
	}

	for _, a := range areas {
		v := strings.ToLower(a.Value)
		if strings.Contains(v, needle) || strings.Contains(needle, v) {
			return a, true
		}
	}
	return Area{}, false
}

// Migrate returns the value of BestMatch, or General when nothing matches.
func Migrate(s string) string {
	if a, ok := BestMatch(s); ok {
		return a.Value
	}
	return General
}
