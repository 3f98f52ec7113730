package booked

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"studyhub/db"
	"studyhub/models"
	"studyhub/query"
	"studyhub/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const dbTimeout = 5 * time.Second

// GetBookedSessions resolves a student's bookings to the study sessions
// they reference. The two reads are not atomic: a session deleted between
// them simply drops out of the result.
func GetBookedSessions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	filter := query.Booked(r.URL.Query())
	bookings, err := utils.FindAndDecode[models.BookedSession](ctx, db.BookedCollection, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	sessionIds := make([]primitive.ObjectID, 0, len(bookings))
	for _, b := range bookings {
		oid, err := primitive.ObjectIDFromHex(b.StudySessionID)
		if err != nil {
			// unresolvable reference, same as a deleted session
			continue
		}
		sessionIds = append(sessionIds, oid)
	}

	result, err := utils.FindAndDecode[bson.M](ctx, db.StudySessionCollection, bson.M{"_id": bson.M{"$in": sessionIds}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve booked sessions")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// CreateBookedSession inserts a booking unless its study_session_id is
// already booked. The key is the session id alone, for any student, and
// the check-then-insert is not atomic under concurrent requests.
func CreateBookedSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	var data bson.M
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	err := db.BookedCollection.FindOne(ctx, bson.M{"study_session_id": data["study_session_id"]}).Err()
	if err == nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "You already booked this session."})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check existing booking")
		return
	}

	res, err := db.BookedCollection.InsertOne(ctx, data)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to insert booking")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"insertedId": res.InsertedID})
}
