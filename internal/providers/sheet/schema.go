package sheet

import (
	"sort"
	"strings"

	"course-catalog/internal/domain"
)

// pascalKeys maps folded gviz column labels onto the lower-case keys the
// normalizer reads. Folding lower-cases and strips spaces, '_' and '-'.
var pascalKeys = map[string]string{
	"id":               domain.KeyID,
	"title":            domain.KeyTitle,
	"short":            domain.KeyShort,
	"shortdescription": domain.KeyShort,
	"summary":          "summary",
	"fulldesc":         domain.KeyFullDesc,
	"fulldescription":  domain.KeyFullDesc,
	"description":      "description",
	"category":         domain.KeyCategory,
	"level":            domain.KeyLevel,
	"duration":         domain.KeyDuration,
	"price":            domain.KeyPrice,
	"videourl":         domain.KeyVideoURL,
	"video":            domain.KeyVideoURL,
	"resources":        domain.KeyResources,
}

// AdaptCSV is the identity: CSV headers are already lower-cased and the
// normalizer knows the lower-case aliases.
func AdaptCSV(r domain.RawRecord) domain.RawRecord {
	return r
}

// AdaptGViz re-keys a record whose keys are gviz column labels.
// Unknown labels are kept lower-cased so nothing is lost. When two labels map
// to the same key the first non-empty value in label order wins.
func AdaptGViz(r domain.RawRecord) domain.RawRecord {
	labels := make([]string, 0, len(r))
	for label := range r {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	out := make(domain.RawRecord, len(r))
	for _, label := range labels {
		v := r[label]
		key, ok := pascalKeys[fold(label)]
		if !ok {
			key = strings.ToLower(strings.TrimSpace(label))
		}
		if existing := out[key]; strings.TrimSpace(existing) != "" {
			continue
		}
		out[key] = v
	}
	return out
}

func fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}
