package sessions

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"studyhub/db"
	"studyhub/query"
	"studyhub/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const dbTimeout = 5 * time.Second

// updatableFields is the fixed set a PATCH may touch. Fields absent from
// the body are still written, as null, which mirrors the update contract.
var updatableFields = []string{
	"sessionTitle",
	"sessionDescription",
	"registrationStartDate",
	"registrationEndDate",
	"classStartTime",
	"classEndTime",
	"sessionDuration",
	"registrationFee",
	"status",
}

func findSessions(w http.ResponseWriter, r *http.Request, filter bson.M, capped bool) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	opts := options.Find()
	if limit := query.Limit(r.URL.Query()); capped && limit > 0 {
		opts.SetLimit(limit)
	}

	result, err := utils.FindAndDecode[bson.M](ctx, db.StudySessionCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve study sessions")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// GetStudySessions lists study sessions filtered by id, email and status.
func GetStudySessions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter, err := query.Sessions(r.URL.Query())
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	findSessions(w, r, filter, true)
}

// GetApprovedSessions lists approved sessions, optionally capped by limit.
func GetApprovedSessions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	findSessions(w, r, bson.M{"status": "approved"}, true)
}

// GetListedSessions lists every session that is pending or approved.
// This route takes no parameters, limit included.
func GetListedSessions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	findSessions(w, r, bson.M{"status": bson.M{"$in": []string{"pending", "approved"}}}, false)
}

// CreateStudySession inserts the body as-is.
func CreateStudySession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	var data bson.M
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	res, err := db.StudySessionCollection.InsertOne(ctx, data)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to insert study session")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"insertedId": res.InsertedID})
}

// UpdateStudySession replaces the fixed field set of the session at ?id=.
func UpdateStudySession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	updateByID(w, r, updatableFields)
}

// UpdateSessionStatus sets registrationFee and status of the session at ?id=.
func UpdateSessionStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	updateByID(w, r, []string{"registrationFee", "status"})
}

// buildSet writes every listed field, so a field the body omits is set to
// null rather than left alone.
func buildSet(fields []string, data bson.M) bson.M {
	set := bson.M{}
	for _, f := range fields {
		set[f] = data[f]
	}
	return set
}

func updateByID(w http.ResponseWriter, r *http.Request, fields []string) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	oid, err := query.ObjectID(r.URL.Query().Get("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var data bson.M
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	res, err := db.StudySessionCollection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": buildSet(fields, data)})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update study session")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"matchedCount":  res.MatchedCount,
		"modifiedCount": res.ModifiedCount,
	})
}

// DeleteStudySession removes the session at ?id=. Bookings, reviews and
// materials that reference it are left in place.
func DeleteStudySession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	oid, err := query.ObjectID(r.URL.Query().Get("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := db.StudySessionCollection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete study session")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"deletedCount": res.DeletedCount})
}
