package status

import "strings"

// Category is the kind of information a free-text label most likely carries.
type Category string

const (
	// CategoryUnknown is a label that matched no keyword.
	CategoryUnknown Category = "unknown"
	// CategoryCaseStatus is a label describing the state of a case.
	CategoryCaseStatus Category = "case_status"
	// CategoryProcedure is a label naming an insolvency procedure.
	CategoryProcedure Category = "procedure"
)

// Rule maps lowercase keyword stems to a category.
type Rule struct {
	Category Category
	Keywords []string
}

// Rules is the keyword table used by Classify, evaluated in order.
//
// The classifier is best effort. Upstream labels are not a closed set, so a
// label such as "Производство по делу прекращено" matches both tables.
// LooksLikeProcedure and LooksLikeCaseStatus test each table on its own, and
// callers must tolerate such overlaps.
var Rules = []Rule{
	{
		Category: CategoryProcedure,
		Keywords: []string{"наблюден", "конкурс", "реструкт", "реализац", "оздоров", "управлен", "мировое", "производств"},
	},
	{
		Category: CategoryCaseStatus,
		Keywords: []string{"актив", "заверш", "прекращ", "оконч", "закрыт", "введен", "введён"},
	},
}

// Classify returns the first category whose keywords occur in label.
func Classify(label string) Category {
	for _, rule := range Rules {
		if matches(rule, label) {
			return rule.Category
		}
	}
	return CategoryUnknown
}

// LooksLikeProcedure reports whether label looks like a procedure name.
func LooksLikeProcedure(label string) bool {
	return matchesCategory(CategoryProcedure, label)
}

// LooksLikeCaseStatus reports whether label looks like a case status.
func LooksLikeCaseStatus(label string) bool {
	return matchesCategory(CategoryCaseStatus, label)
}

func matchesCategory(category Category, label string) bool {
	for _, rule := range Rules {
		if rule.Category == category && matches(rule, label) {
			return true
		}
	}
	return false
}

func matches(rule Rule, label string) bool {
	x := strings.ToLower(strings.TrimSpace(label))
	if x == "" {
		return false
	}
	for _, kw := range rule.Keywords {
		if strings.Contains(x, kw) {
			return true
		}
	}
	return false
}
