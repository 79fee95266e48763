package models

import "time"

// User is a log owner stored as a single document: exercises live embedded in
// the user rather than in their own collection.
type User struct {
	ID        string     `bson:"_id" json:"_id"`
	Name      string     `bson:"name" json:"name"`
	Count     int        `bson:"count" json:"count"`
	Exercises []Exercise `bson:"exercises" json:"exercises"`
}

// Exercise is one logged activity. It belongs to exactly one user and is
// never moved or shared.
type Exercise struct {
	ID          string    `bson:"_id" json:"_id"`
	Description string    `bson:"description" json:"description"`
	Duration    float64   `bson:"duration" json:"duration"`
	Date        time.Time `bson:"date" json:"date"`
}

// UserSummary is the projection returned by the list-users endpoint.
type UserSummary struct {
	ID   string `bson:"_id" json:"_id"`
	Name string `bson:"name" json:"name"`
}
