package docstore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// User is a submitting actor stored in the users collection. Authentication is
// handled elsewhere; the store only resolves identities for slip attribution.
type User struct {
	Email string   `bson:"email"`
	Name  string   `bson:"name"`
	Roles []string `bson:"roles,omitempty"`
}

// UserByEmail resolves a user by email, returning nil when unknown.
func (s *Store) UserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.collection(CollectionUsers).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user %s: %w", email, err)
	}
	return &user, nil
}
