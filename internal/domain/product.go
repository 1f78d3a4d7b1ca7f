package domain

import "time"

type Review struct {
	UserID    string    `bson:"user_id" json:"user_id"`
	Name      string    `bson:"name" json:"name"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Product embeds its reviews; NumReviews and Rating are derived from the
// review list and rewritten together with it, never maintained on their own.
type Product struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Brand       string    `bson:"brand" json:"brand"`
	Category    string    `bson:"category" json:"category"`
	Description string    `bson:"description" json:"description"`
	Image       string    `bson:"image" json:"image"`
	Price       float64   `bson:"price" json:"price"`
	Stock       int       `bson:"stock" json:"stock"`
	Reviews     []Review  `bson:"reviews" json:"reviews"`
	NumReviews  int       `bson:"num_reviews" json:"num_reviews"`
	Rating      float64   `bson:"rating" json:"rating"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	IsAdmin      bool      `bson:"is_admin" json:"is_admin"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
