package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"itemboard/internal/model"
	"itemboard/internal/repository"
)

func TestUserRepositoryFindByEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := repository.NewMongoUserRepository(mt.DB)

		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "itemboard.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "email", Value: "a@b.com"},
			{Key: "passwordHash", Value: "hash"},
			{Key: "displayName", Value: "Alice"},
			{Key: "isActive", Value: true},
		}))

		user, err := repo.FindByEmail(context.Background(), "a@b.com")
		require.NoError(mt, err)
		require.Equal(mt, oid, user.ID)
		require.Equal(mt, "a@b.com", user.Email)
		require.Equal(mt, "hash", user.PasswordHash)
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := repository.NewMongoUserRepository(mt.DB)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "itemboard.users", mtest.FirstBatch))

		_, err := repo.FindByEmail(context.Background(), "nobody@b.com")
		require.ErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestUserRepositoryCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success sets timestamps and id", func(mt *mtest.T) {
		repo := repository.NewMongoUserRepository(mt.DB)

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user := &model.User{Email: "a@b.com", PasswordHash: "hash", IsActive: true}
		id, err := repo.Create(context.Background(), user)
		require.NoError(mt, err)
		require.NotEmpty(mt, id)
		require.False(mt, user.CreatedAt.IsZero())
		require.Equal(mt, user.CreatedAt, user.UpdatedAt)
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		repo := repository.NewMongoUserRepository(mt.DB)

		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		_, err := repo.Create(context.Background(), &model.User{Email: "a@b.com"})
		require.ErrorIs(mt, err, repository.ErrDuplicate)
	})
}

func TestUserRepositoryFindByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("invalid hex is not found", func(mt *mtest.T) {
		repo := repository.NewMongoUserRepository(mt.DB)

		// no mock response needed: the lookup is rejected before any query
		_, err := repo.FindByID(context.Background(), "not-a-hex-id")
		require.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("found", func(mt *mtest.T) {
		repo := repository.NewMongoUserRepository(mt.DB)

		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "itemboard.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "email", Value: "a@b.com"},
		}))

		user, err := repo.FindByID(context.Background(), oid.Hex())
		require.NoError(mt, err)
		require.Equal(mt, oid, user.ID)
	})
}

func TestUserRepositoryUpdateProfile(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns updated document", func(mt *mtest.T) {
		repo := repository.NewMongoUserRepository(mt.DB)

		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: oid},
			{Key: "email", Value: "a@b.com"},
			{Key: "displayName", Value: "X"},
		}}))

		user, err := repo.UpdateProfile(context.Background(), oid.Hex(), map[string]string{"displayName": "X"})
		require.NoError(mt, err)
		require.Equal(mt, "X", user.DisplayName)
	})

	mt.Run("missing user", func(mt *mtest.T) {
		repo := repository.NewMongoUserRepository(mt.DB)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.UpdateProfile(context.Background(), primitive.NewObjectID().Hex(), map[string]string{"bio": "x"})
		require.ErrorIs(mt, err, repository.ErrNotFound)
	})
}
