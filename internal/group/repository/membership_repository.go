package repository

import (
	"context"
	"errors"

	"github.com/Saieshwar5/sangam-sub001/internal/group/domain"
	errprocess "github.com/Saieshwar5/sangam-sub001/pkg/err"

	"gorm.io/gorm"
)

// MembershipRepository durable storage for groups, memberships and
// join requests
type MembershipRepository interface {
	AutoMigrate() error
	FindGroup(ctx context.Context, groupID string) (*domain.Group, error)
	CreateGroup(ctx context.Context, group *domain.Group) error

	CreateJoinRequest(ctx context.Context, req *domain.JoinRequest) error
	FindJoinRequest(ctx context.Context, requestID string) (*domain.JoinRequest, error)
	FindPendingRequest(ctx context.Context, groupID, requesterID string) (*domain.JoinRequest, error)
	ListPendingByGroup(ctx context.Context, groupID string) ([]domain.JoinRequest, error)
	// AcceptAndAddMember flips a pending request to accepted and records
	// the membership in one transaction, so a failed membership insert
	// rolls the status back and the request stays acceptable.
	AcceptAndAddMember(ctx context.Context, requestID string, member *domain.GroupMember) error

	IsMember(ctx context.Context, groupID, userID string) (bool, error)
	IsAdmin(ctx context.Context, groupID, userID string) (bool, error)
	GroupIDsOf(ctx context.Context, userID string) ([]string, error)
}

type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository create MembershipRepository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

// AutoMigrate keep the tables in sync with the models
func (r *membershipRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Group{}, &domain.JoinRequest{}, &domain.GroupMember{})
}

func (r *membershipRepository) FindGroup(ctx context.Context, groupID string) (*domain.Group, error) {
	var group domain.Group
	err := r.db.WithContext(ctx).First(&group, "id = ?", groupID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errprocess.NotFound("group not found")
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *membershipRepository) CreateGroup(ctx context.Context, group *domain.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *membershipRepository) CreateJoinRequest(ctx context.Context, req *domain.JoinRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *membershipRepository) FindJoinRequest(ctx context.Context, requestID string) (*domain.JoinRequest, error) {
	var req domain.JoinRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", requestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errprocess.NotFound("join request not found")
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *membershipRepository) FindPendingRequest(ctx context.Context, groupID, requesterID string) (*domain.JoinRequest, error) {
	var req domain.JoinRequest
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND requester_id = ? AND status = ?", groupID, requesterID, domain.JoinRequestPending).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *membershipRepository) ListPendingByGroup(ctx context.Context, groupID string) ([]domain.JoinRequest, error) {
	var reqs []domain.JoinRequest
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND status = ?", groupID, domain.JoinRequestPending).
		Order("created_at ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *membershipRepository) AcceptAndAddMember(ctx context.Context, requestID string, member *domain.GroupMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// the status guard doubles as a lost-update check when two
		// admins accept concurrently
		res := tx.Model(&domain.JoinRequest{}).
			Where("id = ? AND status = ?", requestID, domain.JoinRequestPending).
			Update("status", domain.JoinRequestAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errprocess.Validation("join request is not pending")
		}
		return tx.Create(member).Error
	})
}

func (r *membershipRepository) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *membershipRepository) IsAdmin(ctx context.Context, groupID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.GroupMember{}).
		Where("group_id = ? AND user_id = ? AND role = ?", groupID, userID, domain.RoleAdmin).
		Count(&count).Error
	return count > 0, err
}

func (r *membershipRepository) GroupIDsOf(ctx context.Context, userID string) ([]string, error) {
	var groupIDs []string
	err := r.db.WithContext(ctx).
		Model(&domain.GroupMember{}).
		Where("user_id = ?", userID).
		Pluck("group_id", &groupIDs).Error
	return groupIDs, err
}
