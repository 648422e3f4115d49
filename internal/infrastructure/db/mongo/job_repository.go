package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
)

const collectionJobs = "jobs"

type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs)}
}

type mongoSalaryRange struct {
	Min      int    `bson:"min,omitempty"`
	Max      int    `bson:"max,omitempty"`
	Currency string `bson:"currency,omitempty"`
}

type mongoJob struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Title             string             `bson:"title"`
	Company           string             `bson:"company"`
	CompanyWebsiteURL string             `bson:"company_website_url"`
	Description       string             `bson:"description"`
	Location          string             `bson:"location"`
	JobType           string             `bson:"job_type"`
	Salary            *mongoSalaryRange  `bson:"salary,omitempty"`
	PostedBy          string             `bson:"posted_by"`
	Status            string             `bson:"status"`
	CreatedAt         time.Time          `bson:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at"`
}

func toMongoJob(j *domain.Job) *mongoJob {
	m := &mongoJob{
		Title:             j.Title,
		Company:           j.Company,
		CompanyWebsiteURL: j.CompanyWebsiteURL,
		Description:       j.Description,
		Location:          j.Location,
		JobType:           j.JobType,
		PostedBy:          j.PostedBy,
		Status:            string(j.Status),
		CreatedAt:         j.CreatedAt,
		UpdatedAt:         j.UpdatedAt,
	}
	if j.Salary != nil {
		m.Salary = &mongoSalaryRange{Min: j.Salary.Min, Max: j.Salary.Max, Currency: j.Salary.Currency}
	}
	return m
}

func (m *mongoJob) toDomain() *domain.Job {
	j := &domain.Job{
		ID:                m.ID.Hex(),
		Title:             m.Title,
		Company:           m.Company,
		CompanyWebsiteURL: m.CompanyWebsiteURL,
		Description:       m.Description,
		Location:          m.Location,
		JobType:           m.JobType,
		PostedBy:          m.PostedBy,
		Status:            domain.JobStatus(m.Status),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if m.Salary != nil {
		j.Salary = &domain.SalaryRange{Min: m.Salary.Min, Max: m.Salary.Max, Currency: m.Salary.Currency}
	}
	return j
}

func (r *JobRepository) Create(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toMongoJob(j))
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}

	created := *j
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}

	var m mongoJob
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return m.toDomain(), nil
}

// List returns postings newest first, optionally filtered by status.
func (r *JobRepository) List(ctx context.Context, status domain.JobStatus) ([]*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer cur.Close(ctx)

	var jobs []*domain.Job
	for cur.Next(ctx) {
		var m mongoJob
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		jobs = append(jobs, m.toDomain())
	}
	return jobs, cur.Err()
}

func (r *JobRepository) Update(ctx context.Context, j *domain.Job) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(j.ID)
	if err != nil {
		return domain.ErrJobNotFound
	}

	doc := toMongoJob(j)
	doc.ID = oid
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrJobNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// EnsureIndexes creates the query indexes for listings.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "posted_by", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
