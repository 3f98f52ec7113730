package notes

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
)

const dbTimeout = 5 * time.Second

// GetNotes lists notes filtered by email or id.
func GetNotes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	filter, err := query.Notes(r.URL.Query())
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := utils.FindAndDecode[bson.M](ctx, db.NotesCollection, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve notes")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// CreateNote inserts the body as-is.
func CreateNote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	var note bson.M
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	res, err := db.NotesCollection.InsertOne(ctx, note)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to insert note")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"insertedId": res.InsertedID})
}

// UpdateNote sets title and note of the note at :id.
func UpdateNote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	oid, err := query.ObjectID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var data bson.M
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	update := bson.M{"$set": bson.M{
		"title": data["title"],
		"note":  data["note"],
	}}
	res, err := db.NotesCollection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update note")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"matchedCount":  res.MatchedCount,
		"modifiedCount": res.ModifiedCount,
	})
}

// DeleteNote removes the note at :id. A missing note is a zero-count
// success, not an error.
func DeleteNote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	oid, err := query.ObjectID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := db.NotesCollection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete note")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"deletedCount": res.DeletedCount})
}
