package middleware

import (
	"context"
	"net/http"
	"studyhub/globals"
	"studyhub/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// JWT claims
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Authenticate requires a valid "Bearer <token>" Authorization header.
// A missing header is 401; a present but unverifiable token is 403.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			utils.RespondWithJSON(w, http.StatusUnauthorized, utils.M{"message": "Unauthorized user!"})
			return
		}

		if len(tokenString) < 8 || tokenString[:7] != "Bearer " {
			utils.RespondWithJSON(w, http.StatusForbidden, utils.M{"message": "Forbidden access."})
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString[7:], claims, func(token *jwt.Token) (any, error) {
			return globals.JwtSecret, nil
		})
		if err != nil || !token.Valid {
			utils.RespondWithJSON(w, http.StatusForbidden, utils.M{"message": "Forbidden access."})
			return
		}

		// Store the email claim in context
		ctx := context.WithValue(r.Context(), globals.EmailKey, claims.Email)
		next(w, r.WithContext(ctx), ps)
	}
}
