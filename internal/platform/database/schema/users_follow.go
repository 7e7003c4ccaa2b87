package schema

// UsersFollowTable represents the 'users.follow' table
type UsersFollowTable struct {
	Table      string
	FollowerID string
	FolloweeID string
	CreatedAt  string
}

// UsersFollow is the schema definition for users.follow
var UsersFollow = UsersFollowTable{
	Table:      "users.follow",
	FollowerID: "followerid",
	FolloweeID: "followeeid",
	CreatedAt:  "createdat",
}
