package models

import "time"

// ContestStatus enumerates the lifecycle states of a contest.
type ContestStatus string

const (
	ContestStatusDraft     ContestStatus = "DRAFT"
	ContestStatusActive    ContestStatus = "ACTIVE"
	ContestStatusOnHold    ContestStatus = "ON-HOLD"
	ContestStatusCompleted ContestStatus = "COMPLETED"
)

// IsValid reports whether the status is a known contest status.
func (s ContestStatus) IsValid() bool {
	switch s {
	case ContestStatusDraft, ContestStatusActive, ContestStatusOnHold, ContestStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the contest may move to the target status.
// COMPLETED is terminal; a contest never reverts out of it.
func (s ContestStatus) CanTransitionTo(target ContestStatus) bool {
	allowed := map[ContestStatus][]ContestStatus{
		ContestStatusDraft:     {ContestStatusActive},
		ContestStatusActive:    {ContestStatusOnHold, ContestStatusCompleted},
		ContestStatusOnHold:    {ContestStatusActive, ContestStatusCompleted},
		ContestStatusCompleted: {},
	}

	for _, status := range allowed[s] {
		if status == target {
			return true
		}
	}
	return false
}

// LocationType enumerates where the job is performed.
type LocationType string

const (
	LocationTypeRemote LocationType = "REMOTE"
	LocationTypeOnSite LocationType = "ON-SITE"
	LocationTypeHybrid LocationType = "HYBRID"
)

// IsValid reports whether the location type is known.
func (l LocationType) IsValid() bool {
	switch l {
	case LocationTypeRemote, LocationTypeOnSite, LocationTypeHybrid:
		return true
	}
	return false
}

// EmploymentType enumerates the engagement model offered by a contest.
type EmploymentType string

const (
	EmploymentTypeFullTime  EmploymentType = "Full-time"
	EmploymentTypePartTime  EmploymentType = "Part-time"
	EmploymentTypeContract  EmploymentType = "Contract"
	EmploymentTypeFreelance EmploymentType = "Freelance"
)

// IsValid reports whether the employment type is known.
func (e EmploymentType) IsValid() bool {
	switch e {
	case EmploymentTypeFullTime, EmploymentTypePartTime, EmploymentTypeContract, EmploymentTypeFreelance:
		return true
	}
	return false
}

// Contest represents an employer-posted hiring competition.
type Contest struct {
	ID                  string         `gorm:"type:uuid;primaryKey" json:"id"`
	EmployerID          string         `gorm:"type:uuid;not null;index" json:"employer_id"`
	JobTitle            string         `gorm:"size:255;not null" json:"job_title"`
	ShortDescription    string         `gorm:"size:512" json:"short_description"`
	DetailedDescription string         `gorm:"type:text" json:"detailed_description"`
	LocationType        LocationType   `gorm:"size:16;not null" json:"location_type"`
	LocationCity        string         `gorm:"size:128" json:"location_city"`
	LocationState       string         `gorm:"size:128" json:"location_state"`
	LocationCountry     string         `gorm:"size:128" json:"location_country"`
	EmploymentType      EmploymentType `gorm:"size:32;not null" json:"employment_type"`
	ExperienceMin       int            `gorm:"not null" json:"experience_min"`
	ExperienceMax       int            `gorm:"not null" json:"experience_max"`
	BudgetMin           float64        `gorm:"not null" json:"budget_min"`
	BudgetMax           float64        `gorm:"not null" json:"budget_max"`
	FreelancerFee       float64        `json:"freelancer_fee"`
	VendorFee           float64        `json:"vendor_fee"`
	Status              ContestStatus  `gorm:"size:16;not null;index" json:"status"`
	IsFeatured          bool           `json:"is_featured"`
	IsUrgent            bool           `json:"is_urgent"`
	ApplicationDeadline *time.Time     `json:"application_deadline"`
	DriveDate           *time.Time     `json:"drive_date"`
	DriveStartTime      string         `gorm:"size:16" json:"drive_start_time"`
	DriveEndTime        string         `gorm:"size:16" json:"drive_end_time"`
	DriveTimezone       string         `gorm:"size:64" json:"drive_timezone"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`

	Skills       []ContestSkill       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"skills"`
	Applications []ContestApplication `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"applications,omitempty"`
}

// IsOpen reports whether the contest currently accepts applications.
func (c Contest) IsOpen(reference time.Time) bool {
	if c.Status != ContestStatusActive {
		return false
	}
	if c.ApplicationDeadline != nil && reference.After(*c.ApplicationDeadline) {
		return false
	}
	return true
}

// ContestSkill is a single skill requirement attached to a contest.
type ContestSkill struct {
	ID              string    `gorm:"type:uuid;primaryKey" json:"id"`
	ContestID       string    `gorm:"type:uuid;not null;index" json:"contest_id"`
	SkillName       string    `gorm:"size:128;not null" json:"skill_name"`
	ExperienceYears *int      `json:"experience_years"`
	IsMandatory     bool      `json:"is_mandatory"`
	CreatedAt       time.Time `json:"created_at"`
}
