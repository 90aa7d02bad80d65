package subscription

import (
	"context"
	"time"
)

// Subscriber is a newsletter recipient.
type Subscriber struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Request is the sign-up payload.
type Request struct {
	Email  string `json:"email"`
	Source string `json:"source,omitempty"`
}

// Response reports the outcome of a sign-up.
type Response struct {
	Subscriber        Subscriber `json:"subscriber"`
	AlreadySubscribed bool       `json:"alreadySubscribed"`
}

// Repository persists subscribers. Create returns created=false with the
// existing row when the e-mail is already present.
type Repository interface {
	Create(ctx context.Context, email, source string) (Subscriber, bool, error)
	Delete(ctx context.Context, email string) (bool, error)
}
