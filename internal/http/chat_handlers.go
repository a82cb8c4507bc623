package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/YashGangan/chatteroo/internal/chat"
	"github.com/YashGangan/chatteroo/internal/store"
	"github.com/YashGangan/chatteroo/pkg/auth"
)

type ProfileAPI struct{ DB *store.Postgres }

type updateProfileReq struct {
	Username string `json:"username"`
}

type profileResp struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Update changes the authenticated user's display name. Picking a new
// name here does not rename the user inside rooms they already joined;
// it applies to the next join.
func (a *ProfileAPI) Update(w http.ResponseWriter, r *http.Request) {
	var req updateProfileReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	uid := auth.UserID(r.Context())
	u, err := a.DB.UpdateUsername(r.Context(), uid, req.Username)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, profileResp{ID: u.ID, Email: u.Email, Username: u.Username})
}

type RoomsAPI struct{ Reg *chat.Registry }

// List returns rooms that currently have members, with member counts.
func (a *RoomsAPI) List(w http.ResponseWriter, _ *http.Request) {
	rooms := a.Reg.Rooms()
	if rooms == nil {
		rooms = []chat.RoomInfo{}
	}
	writeJSON(w, rooms)
}
