package dto

import (
	"time"

	"github.com/hirearena/contest-api/internal/models"
)

// ContestCreateRequest is the payload for posting a new contest. Cross-field
// range rules live in the validator tags so one pass reports every violation.
type ContestCreateRequest struct {
	JobTitle            string     `json:"job_title" validate:"required,min=3,max=255"`
	ShortDescription    string     `json:"short_description" validate:"required,max=512"`
	DetailedDescription string     `json:"detailed_description" validate:"omitempty"`
	LocationType        string     `json:"location_type" validate:"required,oneof=REMOTE ON-SITE HYBRID"`
	LocationCity        string     `json:"location_city" validate:"required_unless=LocationType REMOTE"`
	LocationState       string     `json:"location_state" validate:"required_unless=LocationType REMOTE"`
	LocationCountry     string     `json:"location_country" validate:"omitempty,max=128"`
	EmploymentType      string     `json:"employment_type" validate:"required,oneof='Full-time' 'Part-time' 'Contract' 'Freelance'"`
	ExperienceMin       int        `json:"experience_min" validate:"gte=0"`
	ExperienceMax       int        `json:"experience_max" validate:"gte=0,gtefield=ExperienceMin"`
	BudgetMin           float64    `json:"budget_min" validate:"gte=0"`
	BudgetMax           float64    `json:"budget_max" validate:"gte=0,gtefield=BudgetMin"`
	FreelancerFee       float64    `json:"freelancer_fee" validate:"gte=0"`
	VendorFee           float64    `json:"vendor_fee" validate:"gte=0"`
	IsFeatured          bool       `json:"is_featured"`
	IsUrgent            bool       `json:"is_urgent"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	DriveDate           *time.Time `json:"drive_date"`
	DriveStartTime      string     `json:"drive_start_time" validate:"omitempty,max=16"`
	DriveEndTime        string     `json:"drive_end_time" validate:"omitempty,max=16"`
	DriveTimezone       string     `json:"drive_timezone" validate:"omitempty,max=64"`

	Skills []ContestSkillRequest `json:"skills" validate:"omitempty,dive"`
}

// ContestUpdateRequest patches an existing contest. Nil fields are untouched.
type ContestUpdateRequest struct {
	JobTitle            *string    `json:"job_title" validate:"omitempty,min=3,max=255"`
	ShortDescription    *string    `json:"short_description" validate:"omitempty,max=512"`
	DetailedDescription *string    `json:"detailed_description"`
	LocationType        *string    `json:"location_type" validate:"omitempty,oneof=REMOTE ON-SITE HYBRID"`
	LocationCity        *string    `json:"location_city"`
	LocationState       *string    `json:"location_state"`
	LocationCountry     *string    `json:"location_country" validate:"omitempty,max=128"`
	EmploymentType      *string    `json:"employment_type" validate:"omitempty,oneof='Full-time' 'Part-time' 'Contract' 'Freelance'"`
	ExperienceMin       *int       `json:"experience_min" validate:"omitempty,gte=0"`
	ExperienceMax       *int       `json:"experience_max" validate:"omitempty,gte=0"`
	BudgetMin           *float64   `json:"budget_min" validate:"omitempty,gte=0"`
	BudgetMax           *float64   `json:"budget_max" validate:"omitempty,gte=0"`
	FreelancerFee       *float64   `json:"freelancer_fee" validate:"omitempty,gte=0"`
	VendorFee           *float64   `json:"vendor_fee" validate:"omitempty,gte=0"`
	Status              *string    `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE ON-HOLD COMPLETED"`
	IsFeatured          *bool      `json:"is_featured"`
	IsUrgent            *bool      `json:"is_urgent"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	DriveDate           *time.Time `json:"drive_date"`
	DriveStartTime      *string    `json:"drive_start_time" validate:"omitempty,max=16"`
	DriveEndTime        *string    `json:"drive_end_time" validate:"omitempty,max=16"`
	DriveTimezone       *string    `json:"drive_timezone" validate:"omitempty,max=64"`
}

// ContestSkillRequest describes one skill attached to a contest.
type ContestSkillRequest struct {
	SkillName       string `json:"skill_name" validate:"required,min=1,max=128"`
	ExperienceYears *int   `json:"experience_years" validate:"omitempty,gte=0"`
	IsMandatory     bool   `json:"is_mandatory"`
}

// ContestSkillResponse serializes a contest skill.
type ContestSkillResponse struct {
	ID              string    `json:"id"`
	ContestID       string    `json:"contest_id"`
	SkillName       string    `json:"skill_name"`
	ExperienceYears *int      `json:"experience_years"`
	IsMandatory     bool      `json:"is_mandatory"`
	CreatedAt       time.Time `json:"created_at"`
}

// ContestCounters is the live status-bucketed counter block attached to
// contest responses.
type ContestCounters struct {
	Submitted   int64 `json:"submitted_count"`
	Shortlisted int64 `json:"shortlisting_count"`
	L1          int64 `json:"l1_count"`
	L2          int64 `json:"l2_count"`
	L3          int64 `json:"l3_count"`
	Offered     int64 `json:"offered_count"`
}

// ContestResponse is returned to API clients when viewing contests.
type ContestResponse struct {
	ID                  string                 `json:"id"`
	EmployerID          string                 `json:"employer_id"`
	JobTitle            string                 `json:"job_title"`
	ShortDescription    string                 `json:"short_description"`
	DetailedDescription string                 `json:"detailed_description"`
	LocationType        string                 `json:"location_type"`
	LocationCity        string                 `json:"location_city"`
	LocationState       string                 `json:"location_state"`
	LocationCountry     string                 `json:"location_country"`
	EmploymentType      string                 `json:"employment_type"`
	ExperienceMin       int                    `json:"experience_min"`
	ExperienceMax       int                    `json:"experience_max"`
	BudgetMin           float64                `json:"budget_min"`
	BudgetMax           float64                `json:"budget_max"`
	FreelancerFee       float64                `json:"freelancer_fee"`
	VendorFee           float64                `json:"vendor_fee"`
	Status              string                 `json:"status"`
	IsFeatured          bool                   `json:"is_featured"`
	IsUrgent            bool                   `json:"is_urgent"`
	ApplicationDeadline *time.Time             `json:"application_deadline"`
	DriveDate           *time.Time             `json:"drive_date"`
	DriveStartTime      string                 `json:"drive_start_time"`
	DriveEndTime        string                 `json:"drive_end_time"`
	DriveTimezone       string                 `json:"drive_timezone"`
	Counters            ContestCounters        `json:"counters"`
	Skills              []ContestSkillResponse `json:"skills"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

// NewContestResponse converts a Contest model into a DTO.
func NewContestResponse(model models.Contest, counters ContestCounters) ContestResponse {
	skills := make([]ContestSkillResponse, 0, len(model.Skills))
	for _, skill := range model.Skills {
		skills = append(skills, ContestSkillResponse{
			ID:              skill.ID,
			ContestID:       skill.ContestID,
			SkillName:       skill.SkillName,
			ExperienceYears: skill.ExperienceYears,
			IsMandatory:     skill.IsMandatory,
			CreatedAt:       skill.CreatedAt,
		})
	}

	return ContestResponse{
		ID:                  model.ID,
		EmployerID:          model.EmployerID,
		JobTitle:            model.JobTitle,
		ShortDescription:    model.ShortDescription,
		DetailedDescription: model.DetailedDescription,
		LocationType:        string(model.LocationType),
		LocationCity:        model.LocationCity,
		LocationState:       model.LocationState,
		LocationCountry:     model.LocationCountry,
		EmploymentType:      string(model.EmploymentType),
		ExperienceMin:       model.ExperienceMin,
		ExperienceMax:       model.ExperienceMax,
		BudgetMin:           model.BudgetMin,
		BudgetMax:           model.BudgetMax,
		FreelancerFee:       model.FreelancerFee,
		VendorFee:           model.VendorFee,
		Status:              string(model.Status),
		IsFeatured:          model.IsFeatured,
		IsUrgent:            model.IsUrgent,
		ApplicationDeadline: model.ApplicationDeadline,
		DriveDate:           model.DriveDate,
		DriveStartTime:      model.DriveStartTime,
		DriveEndTime:        model.DriveEndTime,
		DriveTimezone:       model.DriveTimezone,
		Counters:            counters,
		Skills:              skills,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
}
