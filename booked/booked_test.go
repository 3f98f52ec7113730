package booked

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"studyhub/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestCreateBookedSession(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("already booked", func(mt *mtest.T) {
		db.BookedCollection = mt.Coll
		ns := mt.DB.Name() + "." + mt.Coll.Name()

		// the session id is booked by someone else; the key is the session
		// alone, so a different student is still turned away
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
			bson.D{{Key: "student_email", Value: "other@x.com"}, {Key: "study_session_id", Value: "s1"}}))

		body := `{"student_email":"sam@x.com","study_session_id":"s1"}`
		req := httptest.NewRequest(http.MethodPost, "/booked-sessions", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateBookedSession(rec, req, nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatal(err)
		}
		if resp["message"] != "You already booked this session." {
			t.Errorf("message = %v", resp["message"])
		}
		if _, ok := resp["insertedId"]; ok {
			t.Error("duplicate must not insert")
		}
	})

	mt.Run("first booking", func(mt *mtest.T) {
		db.BookedCollection = mt.Coll
		ns := mt.DB.Name() + "." + mt.Coll.Name()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		body := `{"student_email":"sam@x.com","study_session_id":"s2"}`
		req := httptest.NewRequest(http.MethodPost, "/booked-sessions", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateBookedSession(rec, req, nil)

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

func TestGetBookedSessionsDropsMissingSessions(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("join", func(mt *mtest.T) {
		db.BookedCollection = mt.Coll
		db.StudySessionCollection = mt.Coll
		ns := mt.DB.Name() + "." + mt.Coll.Name()

		kept := primitive.NewObjectID()
		deleted := primitive.NewObjectID()

		// phase 1: three bookings, one of them holding an unresolvable
		// reference; phase 2: only one referenced session still exists
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
				bson.D{{Key: "student_email", Value: "sam@x.com"}, {Key: "study_session_id", Value: kept.Hex()}},
				bson.D{{Key: "student_email", Value: "sam@x.com"}, {Key: "study_session_id", Value: deleted.Hex()}},
				bson.D{{Key: "student_email", Value: "sam@x.com"}, {Key: "study_session_id", Value: "not-an-id"}},
			),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch),
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: kept}, {Key: "sessionTitle", Value: "Algebra II"}, {Key: "status", Value: "approved"}},
			),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch),
		)

		req := httptest.NewRequest(http.MethodGet, "/booked-sessions?std_email=sam@x.com", nil)
		rec := httptest.NewRecorder()
		GetBookedSessions(rec, req, nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var result []map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatal(err)
		}
		if len(result) != 1 {
			t.Fatalf("got %d sessions, want 1: %v", len(result), result)
		}
		if result[0]["_id"] != kept.Hex() {
			t.Errorf("_id = %v, want %s", result[0]["_id"], kept.Hex())
		}
	})
}
