package dto

import (
	"time"

	"github.com/voluntree/backend/internal/model"
)

// EdgeUser is the compact counterpart shape embedded in follower listings.
type EdgeUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Avatar   string `json:"avatar"`
}

// EdgeEntry is one row of a followers or followings listing.
type EdgeEntry struct {
	EdgeID      uint      `json:"edgeId"`
	Counterpart EdgeUser  `json:"user"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewEdgeEntry maps a follow edge to a listing row, picking the side that
// is the counterpart from the listed user's perspective.
func NewEdgeEntry(edge *model.Follow, counterpart *model.User) EdgeEntry {
	entry := EdgeEntry{
		EdgeID:    edge.ID,
		CreatedAt: edge.CreatedAt,
	}
	if counterpart != nil {
		entry.Counterpart = EdgeUser{
			ID:       counterpart.ID,
			Username: counterpart.Username,
			Fullname: counterpart.Fullname,
			Avatar:   counterpart.Avatar,
		}
	}
	return entry
}

// EdgeListResponse is a paginated follower or following listing.
type EdgeListResponse struct {
	Entries []EdgeEntry `json:"entries"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
}
