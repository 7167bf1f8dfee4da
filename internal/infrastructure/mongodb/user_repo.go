package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asanbekov/account-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const usersCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	user.ID = id
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var u domain.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) SetVerifyOtp(ctx context.Context, id, otp string, expireAt int64) error {
	return r.updateByID(ctx, id, bson.M{
		"verifyOtp":         otp,
		"verifyOtpExpireAt": expireAt,
	})
}

func (r *UserRepository) MarkVerified(ctx context.Context, id string) error {
	return r.updateByID(ctx, id, bson.M{
		"isAccountVerified": true,
		"verifyOtp":         "",
		"verifyOtpExpireAt": int64(0),
	})
}

func (r *UserRepository) SetResetOtp(ctx context.Context, id, otp string, expireAt int64) error {
	return r.updateByID(ctx, id, bson.M{
		"resetOtp":         otp,
		"resetOtpExpireAt": expireAt,
	})
}

func (r *UserRepository) ResetPassword(ctx context.Context, id, passwordHash string) error {
	return r.updateByID(ctx, id, bson.M{
		"password":         passwordHash,
		"resetOtp":         "",
		"resetOtpExpireAt": int64(0),
	})
}

// ClearExpiredOtps blanks out verify/reset OTP pairs whose expiry has passed.
// Expiry 0 means "no OTP outstanding" and is skipped.
func (r *UserRepository) ClearExpiredOtps(ctx context.Context, now int64) (int64, error) {
	var cleared int64

	res, err := r.coll.UpdateMany(ctx,
		bson.M{"verifyOtpExpireAt": bson.M{"$gt": 0, "$lt": now}},
		bson.M{"$set": bson.M{"verifyOtp": "", "verifyOtpExpireAt": int64(0)}, "$currentDate": bson.M{"updatedAt": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("clear expired verify otps: %w", err)
	}
	cleared += res.ModifiedCount

	res, err = r.coll.UpdateMany(ctx,
		bson.M{"resetOtpExpireAt": bson.M{"$gt": 0, "$lt": now}},
		bson.M{"$set": bson.M{"resetOtp": "", "resetOtpExpireAt": int64(0)}, "$currentDate": bson.M{"updatedAt": true}},
	)
	if err != nil {
		return cleared, fmt.Errorf("clear expired reset otps: %w", err)
	}
	cleared += res.ModifiedCount

	return cleared, nil
}

func (r *UserRepository) updateByID(ctx context.Context, id string, set bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	set["updatedAt"] = time.Now()
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
