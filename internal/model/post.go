package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a blog post. UserID references the owning User and is
// set once at creation. User is populated in responses only; it stays nil
// when the owner record no longer exists.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body" json:"body"`
	UserID    primitive.ObjectID `bson:"user" json:"-"`
	User      *User              `bson:"-" json:"user,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
