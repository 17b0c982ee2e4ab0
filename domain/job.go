package domain

import (
	"context"
	"strings"
	"time"
)

// Job is a single job posting. It is the only persisted entity.
// TitleLower is the searchable form of Title, folded in Go so every backend
// matches non-ASCII letters the same way.
type Job struct {
	ID          uint      `gorm:"primaryKey" json:"id" bson:"_id"`
	Title       string    `gorm:"size:255;not null" json:"title" bson:"title"`
	TitleLower  string    `gorm:"size:255;not null;index" json:"-" bson:"title_lower"`
	Company     string    `gorm:"size:255" json:"company" bson:"company"`
	Location    string    `gorm:"size:255" json:"location" bson:"location"`
	Description string    `gorm:"type:text" json:"description" bson:"description"`
	SalaryFrom  *int64    `json:"salaryFrom" bson:"salary_from,omitempty"`
	SalaryTo    *int64    `json:"salaryTo" bson:"salary_to,omitempty"`
	Active      bool      `gorm:"not null" json:"active" bson:"active"`
	PostedAt    time.Time `gorm:"not null" json:"postedAt" bson:"posted_at"`
}

// JobInput is the body accepted when a job is posted.
// The frontend sends the activity flag as isActive and reads it back as active.
type JobInput struct {
	Title       string `json:"title" validate:"notblank,max=255"`
	Company     string `json:"company" validate:"max=255"`
	Location    string `json:"location" validate:"max=255"`
	Description string `json:"description" validate:"maxbytes=65535"`
	SalaryFrom  *int64 `json:"salaryFrom" validate:"omitempty,gte=0"`
	SalaryTo    *int64 `json:"salaryTo" validate:"omitempty,gte=0"`
	IsActive    *bool  `json:"isActive"`
}

// JobStore persists jobs. Implementations validate input on Create and
// reject malformed page requests on List.
type JobStore interface {
	Create(ctx context.Context, input JobInput) (Job, error)
	List(ctx context.Context, filter string, req PageRequest) (Page[Job], error)
	Get(ctx context.Context, id uint) (Job, error)
	Close() error
}

// JobPublisher announces jobs to other systems once they are stored.
type JobPublisher interface {
	PublishJobCreated(ctx context.Context, job Job) error
}

// NewJob trims and validates input and builds the record to persist. ID is
// left for the store to assign.
func NewJob(input JobInput, postedAt time.Time) (Job, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Company = strings.TrimSpace(input.Company)
	input.Location = strings.TrimSpace(input.Location)

	if err := input.Validate(); err != nil {
		return Job{}, err
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	return Job{
		Title:       input.Title,
		TitleLower:  strings.ToLower(input.Title),
		Company:     input.Company,
		Location:    input.Location,
		Description: input.Description,
		SalaryFrom:  input.SalaryFrom,
		SalaryTo:    input.SalaryTo,
		Active:      active,
		PostedAt:    postedAt.UTC().Truncate(time.Millisecond),
	}, nil
}

// TitleContains reports whether the job title contains filter, ignoring case.
func (j Job) TitleContains(filter string) bool {
	return strings.Contains(j.TitleLower, strings.ToLower(filter))
}
