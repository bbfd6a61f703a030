package app

import (
	"context"

	"github.com/Saieshwar5/sangam-sub001/internal/group/domain"
	"github.com/Saieshwar5/sangam-sub001/internal/group/repository"
	errprocess "github.com/Saieshwar5/sangam-sub001/pkg/err"

	"github.com/google/uuid"
)

// Notifier live push hooks fired after a join request transition is
// durable. Implemented by the realtime notification flow; calls never
// fail the membership operation.
type Notifier interface {
	NotifyJoinRequested(groupID, requesterID, requestID string)
	NotifyJoinAccepted(groupID, groupName, requesterID, requestID string)
}

// MembershipUseCase join-request lifecycle of a group
type MembershipUseCase struct {
	repo     repository.MembershipRepository
	notifier Notifier
}

// NewMembershipUseCase create MembershipUseCase
func NewMembershipUseCase(repo repository.MembershipRepository, notifier Notifier) *MembershipUseCase {
	return &MembershipUseCase{repo: repo, notifier: notifier}
}

// RequestJoin durably record a pending join request, then tell the
// group channel about it
func (uc *MembershipUseCase) RequestJoin(ctx context.Context, groupID, requesterID string) (*domain.JoinRequest, error) {
	if _, err := uc.repo.FindGroup(ctx, groupID); err != nil {
		return nil, err
	}

	isMember, err := uc.repo.IsMember(ctx, groupID, requesterID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, errprocess.Validation("already a member of this group")
	}

	pending, err := uc.repo.FindPendingRequest(ctx, groupID, requesterID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, errprocess.Validation("already requested, wait for approval")
	}

	req := &domain.JoinRequest{
		ID:          uuid.New().String(),
		GroupID:     groupID,
		RequesterID: requesterID,
		Status:      domain.JoinRequestPending,
	}
	if err := uc.repo.CreateJoinRequest(ctx, req); err != nil {
		return nil, err
	}

	// request is committed, connected authorities get a live hint;
	// everyone else finds it in the pending listing
	if uc.notifier != nil {
		uc.notifier.NotifyJoinRequested(groupID, requesterID, req.ID)
	}
	return req, nil
}

// Accept flip a pending request to accepted, record the membership,
// then tell the requester. Admin only.
func (uc *MembershipUseCase) Accept(ctx context.Context, requestID, approverID string) (*domain.JoinRequest, error) {
	req, err := uc.repo.FindJoinRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.JoinRequestPending {
		return nil, errprocess.Validation("join request is not pending")
	}

	isAdmin, err := uc.repo.IsAdmin(ctx, req.GroupID, approverID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, errprocess.Forbidden("only a group admin can accept join requests")
	}

	group, err := uc.repo.FindGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}

	// status flip and membership row commit together; a failure leaves
	// the request pending so accepting can simply be retried
	if err := uc.repo.AcceptAndAddMember(ctx, requestID, &domain.GroupMember{
		GroupID: req.GroupID,
		UserID:  req.RequesterID,
		Role:    domain.RoleMember,
	}); err != nil {
		return nil, err
	}
	req.Status = domain.JoinRequestAccepted

	if uc.notifier != nil {
		uc.notifier.NotifyJoinAccepted(group.ID, group.Name, req.RequesterID, req.ID)
	}
	return req, nil
}

// ListPending pending requests of a group, for the authorities' REST
// view
func (uc *MembershipUseCase) ListPending(ctx context.Context, groupID, callerID string) ([]domain.JoinRequest, error) {
	isAdmin, err := uc.repo.IsAdmin(ctx, groupID, callerID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, errprocess.Forbidden("only a group admin can list join requests")
	}
	return uc.repo.ListPendingByGroup(ctx, groupID)
}

// GroupIDsOf groups a user belongs to, consumed by the websocket
// handshake for channel subscriptions
func (uc *MembershipUseCase) GroupIDsOf(ctx context.Context, userID string) ([]string, error) {
	return uc.repo.GroupIDsOf(ctx, userID)
}
