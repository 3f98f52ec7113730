package materials

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"studyhub/db"
	"studyhub/query"
	"studyhub/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const dbTimeout = 5 * time.Second

// GetMaterials lists materials filtered by tutor email or session id.
func GetMaterials(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	filter := query.Materials(r.URL.Query())
	result, err := utils.FindAndDecode[bson.M](ctx, db.MaterialsCollection, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve materials")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// GetMaterial returns the single material at ?id=, or null when absent.
func GetMaterial(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	oid, err := query.ObjectID(r.URL.Query().Get("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var material bson.M
	err = db.MaterialsCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&material)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve material")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, material)
}

// CreateMaterial inserts the body as-is.
func CreateMaterial(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	var data bson.M
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	res, err := db.MaterialsCollection.InsertOne(ctx, data)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to insert material")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"insertedId": res.InsertedID})
}

// UpdateMaterial sets materialTitle, image and link of the material at :id.
func UpdateMaterial(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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
		"materialTitle": data["materialTitle"],
		"image":         data["image"],
		"link":          data["link"],
	}}
	res, err := db.MaterialsCollection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update material")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"matchedCount":  res.MatchedCount,
		"modifiedCount": res.ModifiedCount,
	})
}

// DeleteMaterial removes the material at :id.
func DeleteMaterial(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	oid, err := query.ObjectID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := db.MaterialsCollection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete material")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"deletedCount": res.DeletedCount})
}
