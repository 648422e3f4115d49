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

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

// mongoUser is the persisted account document. Optional fields carry
// omitempty so that unset values are stripped rather than written as null.
type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Username     string             `bson:"username,omitempty"`
	CollegeEmail string             `bson:"college_email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	MobileNumber string             `bson:"mobile_number,omitempty"`
	Bio          string             `bson:"bio,omitempty"`
	LinkedIn     string             `bson:"linkedin,omitempty"`
	GitHub       string             `bson:"github,omitempty"`

	RollNumber     string   `bson:"roll_number,omitempty"`
	RegisterNumber string   `bson:"register_number,omitempty"`
	Department     string   `bson:"department,omitempty"`
	YearOfStudy    *int     `bson:"year_of_study,omitempty"`
	Batch          string   `bson:"batch,omitempty"`
	GithubRepo     string   `bson:"github_repo,omitempty"`
	ProjectDomains []string `bson:"project_domains,omitempty"`

	GraduationYear           *int   `bson:"graduation_year,omitempty"`
	StudyPeriod              string `bson:"study_period,omitempty"`
	CurrentCompany           string `bson:"current_company,omitempty"`
	IsPlaced                 bool   `bson:"is_placed"`
	JobRole                  string `bson:"job_role,omitempty"`
	Domain                   string `bson:"domain,omitempty"`
	Location                 string `bson:"location,omitempty"`
	Salary                   *int   `bson:"salary,omitempty"`
	IsAvailableForMentorship bool   `bson:"is_available_for_mentorship"`

	Skills    []string `bson:"skills,omitempty"`
	Interests []string `bson:"interests,omitempty"`

	Verified            bool      `bson:"is_verified"`
	PasswordInitialized bool      `bson:"password_initialized"`
	CreatedAt           time.Time `bson:"created_at"`
	UpdatedAt           time.Time `bson:"updated_at"`
}

func toMongoUser(u *domain.User) *mongoUser {
	return &mongoUser{
		Name:                     u.Name,
		Username:                 u.Username,
		CollegeEmail:             u.CollegeEmail,
		PasswordHash:             u.PasswordHash,
		Role:                     u.Role,
		MobileNumber:             u.MobileNumber,
		Bio:                      u.Bio,
		LinkedIn:                 u.LinkedIn,
		GitHub:                   u.GitHub,
		RollNumber:               u.RollNumber,
		RegisterNumber:           u.RegisterNumber,
		Department:               u.Department,
		YearOfStudy:              u.YearOfStudy,
		Batch:                    u.Batch,
		GithubRepo:               u.GithubRepo,
		ProjectDomains:           u.ProjectDomains,
		GraduationYear:           u.GraduationYear,
		StudyPeriod:              u.StudyPeriod,
		CurrentCompany:           u.CurrentCompany,
		IsPlaced:                 u.IsPlaced,
		JobRole:                  u.JobRole,
		Domain:                   u.Domain,
		Location:                 u.Location,
		Salary:                   u.Salary,
		IsAvailableForMentorship: u.IsAvailableForMentorship,
		Skills:                   u.Skills,
		Interests:                u.Interests,
		Verified:                 u.Verified,
		PasswordInitialized:      u.PasswordInitialized,
		CreatedAt:                u.CreatedAt,
		UpdatedAt:                u.UpdatedAt,
	}
}

func (m *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:                       m.ID.Hex(),
		Name:                     m.Name,
		Username:                 m.Username,
		CollegeEmail:             m.CollegeEmail,
		PasswordHash:             m.PasswordHash,
		Role:                     m.Role,
		MobileNumber:             m.MobileNumber,
		Bio:                      m.Bio,
		LinkedIn:                 m.LinkedIn,
		GitHub:                   m.GitHub,
		RollNumber:               m.RollNumber,
		RegisterNumber:           m.RegisterNumber,
		Department:               m.Department,
		YearOfStudy:              m.YearOfStudy,
		Batch:                    m.Batch,
		GithubRepo:               m.GithubRepo,
		ProjectDomains:           m.ProjectDomains,
		GraduationYear:           m.GraduationYear,
		StudyPeriod:              m.StudyPeriod,
		CurrentCompany:           m.CurrentCompany,
		IsPlaced:                 m.IsPlaced,
		JobRole:                  m.JobRole,
		Domain:                   m.Domain,
		Location:                 m.Location,
		Salary:                   m.Salary,
		IsAvailableForMentorship: m.IsAvailableForMentorship,
		Skills:                   m.Skills,
		Interests:                m.Interests,
		Verified:                 m.Verified,
		PasswordInitialized:      m.PasswordInitialized,
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}
}

// FindByEmail retrieves an account by normalized college email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	err := r.col.FindOne(ctx, bson.M{"college_email": email}).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var mu mongoUser
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return mu.toDomain(), nil
}

// Create inserts a new account. The unique index on college_email surfaces a
// concurrent duplicate as domain.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toMongoUser(u))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *u
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// Update replaces the stored document for an existing account.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	doc := toMongoUser(u)
	doc.ID = oid
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the uniqueness constraints the pipeline relies on.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "college_email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
