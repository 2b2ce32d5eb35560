package v1

// JobView a job as presented in the job list
// swagger:model JobView
type JobView struct {
	JobSummary `json:",inline"`

	// Age of the job, in the short form used by kubectl
	//
	// example: 10m
	Age string `json:"age"`

	// StatusColor color used to present the status
	//
	// required: true
	// Enum: blue,green,red,orange,grey
	// example: blue
	StatusColor string `json:"statusColor"`

	// Terminal is true when the status will not change anymore
	//
	// required: true
	Terminal bool `json:"terminal"`
}

// JobList a page of jobs matching a query
// swagger:model JobList
type JobList struct {
	// Jobs on the requested page
	//
	// required: true
	Jobs []JobView `json:"jobs"`

	// TotalMatched number of jobs matching the filter on all pages
	//
	// required: true
	// example: 3
	TotalMatched int `json:"totalMatched"`

	// Page requested page, starting at 1
	//
	// required: true
	// example: 1
	Page int `json:"page"`

	// PerPage maximum number of jobs per page
	//
	// required: true
	// example: 10
	PerPage int `json:"perPage"`
}

// DraftValidation result of validating a job configuration draft
// swagger:model DraftValidation
type DraftValidation struct {
	// Errors message per invalid field, empty when the draft is valid
	//
	// required: true
	Errors ValidationResult `json:"errors"`

	// Totals aggregated resources, only set when the draft is valid
	//
	// required: false
	Totals *ResourceTotals `json:"totals,omitempty"`
}

// IsValid reports whether the draft had no errors
func (v DraftValidation) IsValid() bool {
	return v.Errors.IsValid()
}
