package reviews

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

// GetReviews lists reviews for the study session at ?id=.
func GetReviews(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	filter := query.Reviews(r.URL.Query())
	result, err := utils.FindAndDecode[bson.M](ctx, db.ReviewsCollection, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// AddReview inserts the body as-is.
func AddReview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	var review bson.M
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	res, err := db.ReviewsCollection.InsertOne(ctx, review)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to insert review")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"insertedId": res.InsertedID})
}
