package query

import (
	"cmp"
	"iter"
	"math"
	"slices"
	"strings"

	modelsv1 "github.com/equinor/radix-training-console/models/v1"
	"github.com/go-playground/validator/v10"
)

// Sort keys accepted by Request.SortBy
const (
	SortByName      = "name"
	SortByNamespace = "namespace"
	SortByAge       = "age"
	SortByStatus    = "status"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Filter selects jobs. Empty or "All" status and type match everything.
type Filter struct {
	// Text matched case-insensitively against name and namespace
	Text   string `form:"search" json:"search"`
	Status string `form:"status" json:"status"`
	Type   string `form:"type" json:"type"`
}

// Request a filtered, sorted page of jobs
type Request struct {
	Filter
	Page     int    `form:"page" json:"page" validate:"gte=1"`
	PerPage  int    `form:"perPage" json:"perPage" validate:"gte=1,lte=100"`
	SortBy   string `form:"sortBy" json:"sortBy" validate:"omitempty,oneof=name namespace age status"`
	SortDesc bool   `form:"sortDesc" json:"sortDesc"`
}

// Result visible window of the matched jobs
type Result struct {
	Visible      []modelsv1.JobSummary
	TotalMatched int
}

// SetDefaults sets page and page size when they are not given
func (r *Request) SetDefaults() {
	if r.Page == 0 {
		r.Page = DefaultPage
	}
	if r.PerPage == 0 {
		r.PerPage = DefaultPerPage
	}
}

// Validate validates the paging and sorting parameters
func (r Request) Validate() error {
	return validate.Struct(r)
}

// Offset of the first visible job. Saturates at math.MaxInt instead of overflowing.
func (r Request) Offset() int {
	if r.Page <= 1 || r.PerPage < 1 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.PerPage {
		return math.MaxInt
	}
	return (r.Page - 1) * r.PerPage
}

// Matches reports whether the job passes every predicate of the filter
func (f Filter) Matches(job modelsv1.JobSummary) bool {
	return matchesText(job, f.Text) &&
		matchesValue(string(job.Status), f.Status) &&
		matchesValue(string(job.Type), f.Type)
}

// Matching returns the jobs passing the filter, in their original order.
// The sequence is evaluated on every iteration.
func Matching(jobs []modelsv1.JobSummary, filter Filter) iter.Seq[modelsv1.JobSummary] {
	return func(yield func(modelsv1.JobSummary) bool) {
		for _, job := range jobs {
			if filter.Matches(job) && !yield(job) {
				return
			}
		}
	}
}

// Query filters, sorts and pages the jobs. The input is never modified.
func Query(jobs []modelsv1.JobSummary, request Request) Result {
	matched := slices.Collect(Matching(jobs, request.Filter))
	if request.SortBy != "" {
		sortJobs(matched, request.SortBy, request.SortDesc)
	}
	result := Result{Visible: []modelsv1.JobSummary{}, TotalMatched: len(matched)}
	if request.PerPage < 1 {
		return result
	}
	offset := request.Offset()
	if offset >= len(matched) {
		return result
	}
	end := offset + min(request.PerPage, len(matched)-offset)
	result.Visible = matched[offset:end]
	return result
}

func matchesText(job modelsv1.JobSummary, text string) bool {
	if text == "" {
		return true
	}
	text = strings.ToLower(text)
	return strings.Contains(strings.ToLower(job.Name), text) || strings.Contains(strings.ToLower(job.Namespace), text)
}

func matchesValue(value, filter string) bool {
	return filter == "" || filter == modelsv1.FilterAll || value == filter
}

func sortJobs(jobs []modelsv1.JobSummary, sortBy string, desc bool) {
	compare := func(a, b modelsv1.JobSummary) int {
		switch sortBy {
		case SortByName:
			return cmp.Compare(a.Name, b.Name)
		case SortByNamespace:
			return cmp.Compare(a.Namespace, b.Namespace)
		case SortByAge:
			// youngest first
			return b.Created.Compare(a.Created)
		case SortByStatus:
			return cmp.Compare(a.Status, b.Status)
		default:
			return 0
		}
	}
	slices.SortStableFunc(jobs, func(a, b modelsv1.JobSummary) int {
		if desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
}
