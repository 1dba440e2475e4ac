package contributor

import "strings"

// ListOptions filters a partition listing. Query matches a case-insensitive
// email substring. Filter matches the assignment stage for "pending"/"assigned"
// and the outcome stage for "passed"/"failed"; empty matches everything.
type ListOptions struct {
	Query  string
	Filter string
}

func (o ListOptions) matches(c Contributor) bool {
	if o.Query != "" && !strings.Contains(strings.ToLower(c.Email), strings.ToLower(o.Query)) {
		return false
	}
	switch o.Filter {
	case "":
		return true
	case string(ResultPassed), string(ResultFailed):
		return c.Result == Result(o.Filter)
	default:
		return c.Status == Status(o.Filter)
	}
}
