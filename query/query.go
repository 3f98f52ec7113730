// Package query builds the bson filter for every list route in one place,
// so the merge rules between parameters are explicit instead of being an
// accident of handler statement order.
package query

import (
	"fmt"
	"net/url"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ObjectID converts a client-supplied id string into a store identifier.
// A malformed id is a client error, never an empty result.
func ObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid id %q: %w", id, err)
	}
	return oid, nil
}

// Limit parses the limit parameter. Absent, non-numeric or non-positive
// values mean no cap.
func Limit(q url.Values) int64 {
	n, err := strconv.ParseInt(q.Get("limit"), 10, 64)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// Users recognizes role and search. search replaces any role constraint:
// the two are mutually exclusive, search wins. search matches name or email
// as a case-insensitive substring.
func Users(q url.Values) bson.M {
	filter := bson.M{}
	if role := q.Get("role"); role != "" {
		filter = bson.M{"role": role}
	}
	if search := q.Get("search"); search != "" {
		filter = bson.M{"$or": []bson.M{
			{"name": primitive.Regex{Pattern: search, Options: "i"}},
			{"email": primitive.Regex{Pattern: search, Options: "i"}},
		}}
	}
	return filter
}

// Sessions recognizes id, email and status. email replaces id (they are
// exclusive, email wins); status merges onto whichever of the two applied,
// so email+status constrains on both. A malformed id fails the request.
func Sessions(q url.Values) (bson.M, error) {
	filter := bson.M{}
	if id := q.Get("id"); id != "" {
		oid, err := ObjectID(id)
		if err != nil {
			return nil, err
		}
		filter = bson.M{"_id": oid}
	}
	if email := q.Get("email"); email != "" {
		filter = bson.M{"tutorEmail": email}
	}
	if status := q.Get("status"); status != "" {
		filter["status"] = status
	}
	return filter, nil
}

// Booked recognizes std_email. Absent means all bookings.
func Booked(q url.Values) bson.M {
	filter := bson.M{}
	if email := q.Get("std_email"); email != "" {
		filter = bson.M{"student_email": email}
	}
	return filter
}

// Reviews always keys on study_session_id. An absent id keys on null,
// which matches documents whose reference is null or missing; "?id=" keys
// on the empty string.
func Reviews(q url.Values) bson.M {
	if !q.Has("id") {
		return bson.M{"study_session_id": nil}
	}
	return bson.M{"study_session_id": q.Get("id")}
}

// Notes recognizes email and id. id replaces email (exclusive, id wins).
// A malformed id fails the request.
func Notes(q url.Values) (bson.M, error) {
	filter := bson.M{}
	if email := q.Get("email"); email != "" {
		filter = bson.M{"email": email}
	}
	if id := q.Get("id"); id != "" {
		oid, err := ObjectID(id)
		if err != nil {
			return nil, err
		}
		filter = bson.M{"_id": oid}
	}
	return filter, nil
}

// Materials recognizes email and id. email constrains tutorEmail; id
// constrains sessionID, which is stored as a plain string, not an object
// identifier. id replaces email (exclusive, id wins).
func Materials(q url.Values) bson.M {
	filter := bson.M{}
	if email := q.Get("email"); email != "" {
		filter = bson.M{"tutorEmail": email}
	}
	if id := q.Get("id"); id != "" {
		filter = bson.M{"sessionID": id}
	}
	return filter
}
