package senam

import "github.com/cmlabs-hris/senam-dashboard/internal/pkg/validator"

// ============= Request DTOs =============

// FilterRequest replaces every categorical filter and the year scope at once.
type FilterRequest struct {
	Search   string `json:"search" validate:"max=200"`
	Tempat   string `json:"tempat"`
	Kelompok string `json:"kelompok"`
	Status   string `json:"status"`
	Struktur string `json:"struktur"`
	Year     string `json:"year"`
}

func (r *FilterRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}

	var errs validator.ValidationErrors

	// Year
	if r.Year != "" && r.Year != AllValue && !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be \"all\" or a four digit year",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SearchRequest struct {
	Term string `json:"term" validate:"max=200"`
}

func (r *SearchRequest) Validate() error {
	return validator.Struct(r)
}

type DateRangeRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Validate returns guard errors for a missing or inverted range and
// validation errors for malformed month keys.
func (r *DateRangeRequest) Validate() error {
	if validator.IsEmpty(r.Start) || validator.IsEmpty(r.End) {
		return ErrDateRangeRequired
	}

	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Start) {
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "start must be in YYYY-MM format",
		})
	}
	if !validator.IsValidMonth(r.End) {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: "end must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	if r.Start > r.End {
		return ErrDateRangeInverted
	}

	return nil
}

type ChangePageRequest struct {
	Page int `json:"page"`
}

type PageSizeRequest struct {
	PageSize int `json:"page_size" validate:"oneof=10 25 50 100"`
}

func (r *PageSizeRequest) Validate() error {
	return validator.Struct(r)
}

type SortRequest struct {
	Column string `json:"column" validate:"required,oneof=nama nik jk jabatan struktur tempat total_all"`
}

func (r *SortRequest) Validate() error {
	return validator.Struct(r)
}

type ChartKindRequest struct {
	Kind string `json:"kind" validate:"required,oneof=bar line pie"`
}

func (r *ChartKindRequest) Validate() error {
	return validator.Struct(r)
}

type ShiftModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=shift non_shift"`
}

func (r *ShiftModeRequest) Validate() error {
	return validator.Struct(r)
}

type ShiftFilterRequest struct {
	Filter string `json:"filter" validate:"required,oneof=all shift non_shift"`
}

func (r *ShiftFilterRequest) Validate() error {
	return validator.Struct(r)
}

// ToggleSelectionRequest flips membership, or forces it when Checked is set.
type ToggleSelectionRequest struct {
	ID      string `json:"-"`
	Checked *bool  `json:"checked,omitempty"`
}

func (r *ToggleSelectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SelectPageRequest struct {
	Checked bool `json:"checked"`
}

type OpenDetailRequest struct {
	ID string `json:"-"`
}

func (r *OpenDetailRequest) Validate() error {
	if validator.IsEmpty(r.ID) {
		return validator.ValidationErrors{{Field: "id", Message: "id is required"}}
	}
	return nil
}
