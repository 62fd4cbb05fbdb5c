package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/domain"
)

// userDocument is the bson shape of the users collection.
type userDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	Password    string             `bson:"password"`
	Phone       string             `bson:"phone,omitempty"`
	Role        string             `bson:"role"`
	CompanyName string             `bson:"companyName,omitempty"`
	CompanyRole string             `bson:"companyRole,omitempty"`
	CollegeName string             `bson:"collegeName,omitempty"`
	Branch      string             `bson:"branch,omitempty"`
	CollegeID   string             `bson:"collegeId,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func documentFromRecord(r userRecord, id primitive.ObjectID) userDocument {
	return userDocument{
		ID:          id,
		Name:        r.Name,
		Email:       r.Email,
		Password:    r.Password,
		Phone:       r.Phone,
		Role:        r.Role,
		CompanyName: r.CompanyName,
		CompanyRole: r.CompanyRole,
		CollegeName: r.CollegeName,
		Branch:      r.Branch,
		CollegeID:   r.CollegeID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (d userDocument) record() userRecord {
	return userRecord{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Email:       d.Email,
		Password:    d.Password,
		Phone:       d.Phone,
		Role:        d.Role,
		CompanyName: d.CompanyName,
		CompanyRole: d.CompanyRole,
		CollegeName: d.CollegeName,
		Branch:      d.Branch,
		CollegeID:   d.CollegeID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type mongoUserRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoUserRepository returns a MongoDB-backed implementation. The
// collection must carry a unique index on email.
func NewMongoUserRepository(coll *mongo.Collection) UserRepository {
	return &mongoUserRepository{coll: coll, now: time.Now}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	now := r.now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	doc := documentFromRecord(recordFromUser(user), primitive.NewObjectID())
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	user.ID = doc.ID.Hex()
	return nil
}

func (r *mongoUserRepository) Update(ctx context.Context, user *domain.User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return ErrNotFound
	}
	user.UpdatedAt = r.now().UTC()

	doc := documentFromRecord(recordFromUser(user), oid)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.record().toUser()
}
