package dto

import "github.com/voluntree/backend/internal/model"

// ProfileProject is the compact project shape embedded in a profile.
type ProfileProject struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
	Status   string `json:"status"`
}

// ProfilePost is the compact post shape embedded in a profile.
type ProfilePost struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
}

// ProfileResponse aggregates everything a profile page needs in one payload.
// IsFollowing is viewer-dependent and always computed per request.
type ProfileResponse struct {
	User           *UserResponse    `json:"user"`
	FollowersCount int64            `json:"followersCount"`
	FollowingCount int64            `json:"followingCount"`
	IsFollowing    bool             `json:"isFollowing"`
	OwnProjects    []ProfileProject `json:"ownProjects"`
	Posts          []ProfilePost    `json:"posts"`
	JoinedProjects []ProfileProject `json:"joinedProjects"`
}

// NewProfileProjects maps models to their compact profile shape.
func NewProfileProjects(projects []model.Project) []ProfileProject {
	out := make([]ProfileProject, 0, len(projects))
	for _, p := range projects {
		out = append(out, ProfileProject{
			ID:       p.ID,
			Title:    p.Title,
			Category: p.Category,
			Status:   p.Status,
		})
	}
	return out
}

// NewProfilePosts maps models to their compact profile shape.
func NewProfilePosts(posts []model.Post) []ProfilePost {
	out := make([]ProfilePost, 0, len(posts))
	for _, p := range posts {
		out = append(out, ProfilePost{
			ID:      p.ID,
			Content: p.Content,
			Image:   p.Image,
		})
	}
	return out
}
