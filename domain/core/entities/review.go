package entities

import "time"

// Review is a rating left on a movie. Reviews are append-only.
type Review struct {
	ID        string    `json:"id" dynamodbav:"id"`
	MovieID   string    `json:"movieId" dynamodbav:"movieId"`
	UserID    string    `json:"userId" dynamodbav:"userId"`
	Rating    float64   `json:"rating" dynamodbav:"rating"`
	Comment   string    `json:"comment,omitempty" dynamodbav:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}
