package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"job-board/domain"
)

// JobRepository is the gorm-backed JobStore used by the mysql, postgres and
// sqlite drivers.
type JobRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db, now: time.Now}
}

func (r *JobRepository) Create(ctx context.Context, input domain.JobInput) (domain.Job, error) {
	job, err := domain.NewJob(input, r.now())
	if err != nil {
		return domain.Job{}, err
	}

	if err := r.db.WithContext(ctx).Create(&job).Error; err != nil {
		return domain.Job{}, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

func (r *JobRepository) List(ctx context.Context, filter string, req domain.PageRequest) (domain.Page[domain.Job], error) {
	if err := req.Validate(); err != nil {
		return domain.Page[domain.Job]{}, err
	}

	matching := titleContains(filter)

	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Job{}).Scopes(matching).Count(&total).Error; err != nil {
		return domain.Page[domain.Job]{}, fmt.Errorf("count jobs: %w", err)
	}

	var jobs []domain.Job
	err := r.db.WithContext(ctx).
		Scopes(matching).
		Order("id ASC").
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&jobs).Error
	if err != nil {
		return domain.Page[domain.Job]{}, fmt.Errorf("list jobs: %w", err)
	}

	return domain.NewPage(jobs, total, req), nil
}

func (r *JobRepository) Get(ctx context.Context, id uint) (domain.Job, error) {
	var job domain.Job
	err := r.db.WithContext(ctx).First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Job{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Job{}, fmt.Errorf("get job %d: %w", id, err)
	}
	return job, nil
}

func (r *JobRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// titleContains matches titles containing filter in any case. A blank filter
// matches everything.
func titleContains(filter string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if strings.TrimSpace(filter) == "" {
			return db
		}
		pattern := "%" + likeEscaper.Replace(strings.ToLower(filter)) + "%"
		return db.Where("title_lower LIKE ? ESCAPE '!'", pattern)
	}
}
