package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/domain"
)

func TestMongoUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoUserRepository(mt.Coll)

		user := &domain.User{Name: "Jane", Email: "jane@x.com", PasswordHash: "h", Profile: domain.StudentProfile{CollegeName: "MIT"}}
		require.NoError(mt, repo.Create(context.Background(), user))

		_, err := primitive.ObjectIDFromHex(user.ID)
		assert.NoError(mt, err)
		assert.False(mt, user.CreatedAt.IsZero())
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: alumni.users index: email_unique",
		}))
		repo := NewMongoUserRepository(mt.Coll)

		err := repo.Create(context.Background(), &domain.User{Email: "jane@x.com", Profile: domain.AdminProfile{}})
		assert.ErrorIs(mt, err, ErrDuplicateEmail)
	})

	mt.Run("get by email", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "alumni.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "name", Value: "Ann"},
			{Key: "email", Value: "ann@x.com"},
			{Key: "password", Value: "hash"},
			{Key: "role", Value: "ROLE_ALUMNI"},
			{Key: "companyName", Value: "Acme"},
			{Key: "companyRole", Value: "CTO"},
		}))
		repo := NewMongoUserRepository(mt.Coll)

		user, err := repo.GetByEmail(context.Background(), "ann@x.com")
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), user.ID)
		assert.Equal(mt, domain.RoleAlumni, user.Role())
		assert.Equal(mt, domain.AlumniProfile{CompanyName: "Acme", CompanyRole: "CTO"}, user.Profile)
	})

	mt.Run("get by email not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "alumni.users", mtest.FirstBatch))
		repo := NewMongoUserRepository(mt.Coll)

		_, err := repo.GetByEmail(context.Background(), "nobody@x.com")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("get by malformed id", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.Coll)

		_, err := repo.GetByID(context.Background(), "not-an-object-id")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("update unmatched", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}})
		repo := NewMongoUserRepository(mt.Coll)

		err := repo.Update(context.Background(), &domain.User{ID: primitive.NewObjectID().Hex(), Profile: domain.AdminProfile{}})
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}
