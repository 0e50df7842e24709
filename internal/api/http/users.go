package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	authmw "github.com/laxa-app/laxa/internal/auth/middleware"
	"github.com/laxa-app/laxa/internal/homework"
)

// CreateChildHandler lets a parent add a child account under their own.
func CreateChildHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parentID := authmw.SubjectFromContext(r.Context())
		if parentID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req struct {
			Username    string `json:"username"`
			DisplayName string `json:"display_name"`
			Password    string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Username == "" || req.Password == "" {
			http.Error(w, "username and password required", http.StatusBadRequest)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		id := homework.NewID()
		_, err = db.ExecContext(r.Context(),
			`INSERT INTO users (id, username, display_name, password_hash, role, parent_id, created_at)
			 VALUES ($1,$2,$3,$4,'child',$5,$6)`,
			id, req.Username, req.DisplayName, string(hash), parentID, time.Now().Unix())
		if err != nil {
			http.Error(w, "create child: "+err.Error(), http.StatusBadRequest)
			return
		}

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": id, "username": req.Username})
	}
}
