package model

import "golang.org/x/crypto/bcrypt"

// User is the persisted account record. Username doubles as the Mongo _id,
// so the unique-username invariant is enforced by the collection itself.
type User struct {
	Username string `bson:"_id" json:"username"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"`
}

func (u *User) ToDto() UserDto {
	return UserDto{
		Username: u.Username,
		Email:    u.Email,
	}
}

// UserDto is the identity handed around after authentication. It never
// carries the password hash.
type UserDto struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"secret"`
	Email    string `json:"email" example:"alice@example.com"`
}

// ToEntity hashes the password and builds the storable record.
func (r *RegisterRequest) ToEntity() (*User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(r.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &User{
		Username: r.Username,
		Email:    r.Email,
		Password: string(hashed),
	}, nil
}

type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"secret"`
}
