package routes

import (
	"studyhub/auth"
	"studyhub/booked"
	"studyhub/materials"
	"studyhub/middleware"
	"studyhub/notes"
	"studyhub/ratelim"
	"studyhub/reviews"
	"studyhub/sessions"
	"studyhub/users"

	"github.com/julienschmidt/httprouter"
)

// route is one row of the API surface. Whether a route requires a bearer
// token is declared here, in one table, not at each call site.
type route struct {
	method    string
	path      string
	handle    httprouter.Handle
	protected bool
	limited   bool
}

func table() []route {
	return []route{
		{"POST", "/jwt", auth.CreateToken, false, true},

		{"GET", "/users", users.GetUsers, false, false},
		{"POST", "/users", users.CreateUser, false, true},
		{"PUT", "/users", users.UpdateUserRole, true, true},
		{"GET", "/users/admin/:email", users.IsAdmin, true, false},
		{"GET", "/users/tutor/:email", users.IsTutor, true, false},

		{"GET", "/study-sessions", sessions.GetStudySessions, false, false},
		{"GET", "/study-session/approved", sessions.GetApprovedSessions, false, false},
		{"GET", "/all-study-session", sessions.GetListedSessions, false, false},
		{"POST", "/study-sessions", sessions.CreateStudySession, false, true},
		{"PATCH", "/study-sessions", sessions.UpdateStudySession, true, true},
		{"PUT", "/study-session/update-status", sessions.UpdateSessionStatus, true, true},
		{"DELETE", "/study-sessions", sessions.DeleteStudySession, true, true},

		{"GET", "/booked-sessions", booked.GetBookedSessions, true, false},
		{"POST", "/booked-sessions", booked.CreateBookedSession, true, true},

		{"GET", "/reviews", reviews.GetReviews, false, false},
		{"POST", "/reviews", reviews.AddReview, true, true},

		{"GET", "/notes", notes.GetNotes, true, false},
		{"POST", "/notes", notes.CreateNote, true, true},
		{"PUT", "/notes/:id", notes.UpdateNote, true, true},
		{"DELETE", "/notes/:id", notes.DeleteNote, true, true},

		{"GET", "/materials", materials.GetMaterials, true, false},
		{"GET", "/materials/single-material", materials.GetMaterial, true, false},
		{"POST", "/materials", materials.CreateMaterial, true, true},
		{"PUT", "/materials/:id", materials.UpdateMaterial, true, true},
		{"DELETE", "/materials/:id", materials.DeleteMaterial, true, true},
	}
}

// Register wires the whole table onto the router, applying authentication
// and rate limiting as each row declares.
func Register(router *httprouter.Router, rl *ratelim.RateLimiter) {
	for _, rt := range table() {
		h := rt.handle
		if rt.protected {
			h = middleware.Authenticate(h)
		}
		if rt.limited {
			h = rl.Limit(h)
		}
		router.Handle(rt.method, rt.path, h)
	}
}
