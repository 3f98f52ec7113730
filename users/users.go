package users

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
	"go.mongodb.org/mongo-driver/mongo"
)

const dbTimeout = 5 * time.Second

// GetUsers lists users filtered by role or search.
func GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	filter := query.Users(r.URL.Query())
	users, err := utils.FindAndDecode[bson.M](ctx, db.UsersCollection, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, users)
}

// CreateUser inserts the body as-is unless a user with that email exists.
// A duplicate is reported as a 200 with a message, not an error status.
func CreateUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	var user bson.M
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	err := db.UsersCollection.FindOne(ctx, bson.M{"email": user["email"]}).Err()
	if err == nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "User Already exist"})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check existing user")
		return
	}

	res, err := db.UsersCollection.InsertOne(ctx, user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to insert user")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"insertedId": res.InsertedID})
}

// UpdateUserRole sets the role field of the user at ?id=. Only role is
// touched; a body without role writes it as null.
func UpdateUserRole(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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

	update := bson.M{"$set": bson.M{"role": data["role"]}}
	res, err := db.UsersCollection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"matchedCount":  res.MatchedCount,
		"modifiedCount": res.ModifiedCount,
	})
}

// IsAdmin answers whether the user at :email has the admin role. The path
// email must match the authenticated email; a missing user is false.
func IsAdmin(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	role, ok := lookupRole(w, r, ps.ByName("email"))
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"admin": role == "admin"})
}

// IsTutor answers whether the user at :email has the tutor role.
func IsTutor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	role, ok := lookupRole(w, r, ps.ByName("email"))
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"tutor": role == "tutor"})
}

// lookupRole enforces the identity match before touching the store, then
// returns the stored role ("" when no user matches). ok is false when a
// response has already been written.
func lookupRole(w http.ResponseWriter, r *http.Request, email string) (string, bool) {
	if email != utils.GetEmailFromRequest(r) {
		utils.RespondWithJSON(w, http.StatusForbidden, utils.M{"message": "Forbidden access."})
		return "", false
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	var user models.User
	err := db.UsersCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", true
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve user")
		return "", false
	}
	return user.Role, true
}
