package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Documents are stored schemaless and returned to clients as-is; typed
// models exist only for the reads that inspect specific fields.

type User struct {
	ID    primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Email string             `json:"email" bson:"email"`
	Name  string             `json:"name,omitempty" bson:"name,omitempty"`
	Role  string             `json:"role" bson:"role"` // student, tutor, admin
}

type BookedSession struct {
	ID             primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	StudentEmail   string             `json:"student_email" bson:"student_email"`
	StudySessionID string             `json:"study_session_id" bson:"study_session_id"`
}
