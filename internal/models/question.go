package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question is a question bank entry. Deletion only clears IsActive.
type Question struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Category   string             `bson:"category" json:"category"`
	Question   string             `bson:"question" json:"question"`
	Difficulty string             `bson:"difficulty" json:"difficulty"`
	IsActive   bool               `bson:"isActive" json:"isActive"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// GeneratedQuestion is one LLM-generated interview question.
type GeneratedQuestion struct {
	ID         int    `json:"id"`
	Category   string `json:"category"`
	Question   string `json:"question"`
	Difficulty string `json:"difficulty"`
}
