package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"studyhub/db"
	"studyhub/globals"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// The identity check must reject a mismatched path email before any store
// lookup, so these tests need no database.
func TestRoleCheckIdentityMismatch(t *testing.T) {
	handlers := map[string]httprouter.Handle{
		"admin": IsAdmin,
		"tutor": IsTutor,
	}

	for name, handle := range handlers {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/"+name+"/b@x.com", nil)
			ctx := context.WithValue(req.Context(), globals.EmailKey, "a@x.com")
			rec := httptest.NewRecorder()

			handle(rec, req.WithContext(ctx), httprouter.Params{{Key: "email", Value: "b@x.com"}})

			if rec.Code != http.StatusForbidden {
				t.Errorf("status = %d, want 403", rec.Code)
			}
		})
	}
}

func TestRoleCheckUnauthenticatedContext(t *testing.T) {
	// no email in context reads as "", which can never equal a path email
	req := httptest.NewRequest(http.MethodGet, "/users/admin/a@x.com", nil)
	rec := httptest.NewRecorder()

	IsAdmin(rec, req, httprouter.Params{{Key: "email", Value: "a@x.com"}})

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestCreateUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate email", func(mt *mtest.T) {
		db.UsersCollection = mt.Coll
		ns := mt.DB.Name() + "." + mt.Coll.Name()

		// the pre-check finds a user; an insert attempt after that would
		// have no queued response and fail the request with a 500
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
			bson.D{{Key: "email", Value: "a@x.com"}, {Key: "role", Value: "student"}}))

		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":"a@x.com","role":"tutor"}`))
		rec := httptest.NewRecorder()
		CreateUser(rec, req, nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatal(err)
		}
		if resp["message"] != "User Already exist" {
			t.Errorf("message = %v", resp["message"])
		}
		if _, ok := resp["insertedId"]; ok {
			t.Error("duplicate must not insert")
		}
	})

	mt.Run("new email", func(mt *mtest.T) {
		db.UsersCollection = mt.Coll
		ns := mt.DB.Name() + "." + mt.Coll.Name()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":"b@x.com","role":"student"}`))
		rec := httptest.NewRecorder()
		CreateUser(rec, req, nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatal(err)
		}
		if id, ok := resp["insertedId"].(string); !ok || id == "" {
			t.Errorf("insertedId = %v", resp["insertedId"])
		}
	})
}

func TestGetUsersStoreFailure(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find error maps to 500", func(mt *mtest.T) {
		db.UsersCollection = mt.Coll
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Message: "interrupted",
			Name:    "InterruptedAtShutdown",
		}))

		req := httptest.NewRequest(http.MethodGet, "/users?role=student", nil)
		rec := httptest.NewRecorder()
		GetUsers(rec, req, nil)

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})
}
