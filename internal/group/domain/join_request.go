package domain

import "time"

// JoinRequestStatus definition join request lifecycle state
type JoinRequestStatus string

const (
	// JoinRequestPending waiting on a group authority
	JoinRequestPending JoinRequestStatus = "pending"
	// JoinRequestAccepted requester became a member
	JoinRequestAccepted JoinRequestStatus = "accepted"
	// JoinRequestRejected request turned down
	JoinRequestRejected JoinRequestStatus = "rejected"
)

// MemberRole definition member role inside a group
type MemberRole string

const (
	// RoleAdmin group authority, may accept join requests
	RoleAdmin MemberRole = "admin"
	// RoleMember plain member
	RoleMember MemberRole = "member"
)

// Group minimal group record this service needs: the name goes into
// the acceptance event payload
type Group struct {
	ID        string    `gorm:"primaryKey;size:36" json:"group_id"`
	Name      string    `gorm:"not null" json:"name"`
	OwnerID   string    `gorm:"index;size:36" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// JoinRequest one request of a user to join a group
type JoinRequest struct {
	ID          string            `gorm:"primaryKey;size:36" json:"request_id"`
	GroupID     string            `gorm:"index:idx_join_requests_group_status;size:36" json:"group_id"`
	RequesterID string            `gorm:"index;size:36" json:"requester_id"`
	Status      JoinRequestStatus `gorm:"index:idx_join_requests_group_status;size:16" json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// GroupMember membership row, also feeds group channel subscriptions
type GroupMember struct {
	GroupID  string     `gorm:"primaryKey;size:36" json:"group_id"`
	UserID   string     `gorm:"primaryKey;index;size:36" json:"user_id"`
	Role     MemberRole `gorm:"size:16" json:"role"`
	JoinedAt time.Time  `gorm:"autoCreateTime" json:"joined_at"`
}
