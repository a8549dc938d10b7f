// AngelaMos | 2026
// service.go

package staff

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bazario/bazario-api/internal/core"
	"github.com/bazario/bazario-api/internal/user"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddStaff registers a staff contact under the calling business. The
// (business, phone number) uniqueness check lives here, not in the schema.
func (s *Service) AddStaff(
	ctx context.Context,
	businessID, role string,
	req AddStaffRequest,
) (*Staff, error) {
	if role != user.RoleBusiness {
		return nil, fmt.Errorf("add staff: %w", core.ErrForbidden)
	}

	exists, err := s.repo.ExistsByBusinessPhone(
		ctx, businessID, req.PhoneNumber, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("add staff: %w", core.ErrDuplicateKey)
	}

	member := &Staff{
		ID:          uuid.New().String(),
		BusinessID:  businessID,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}

	if req.WhatsappNumber != "" {
		whatsapp := req.WhatsappNumber
		member.WhatsappNumber = &whatsapp
	}

	if err := s.repo.Create(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

func (s *Service) ListStaff(
	ctx context.Context,
	businessID string,
) ([]Staff, error) {
	return s.repo.ListByBusiness(ctx, businessID)
}

// EditStaff applies only the fields present in the request. A phone number
// change re-runs the per-business uniqueness check, excluding the row itself.
func (s *Service) EditStaff(
	ctx context.Context,
	businessID, role, staffID string,
	req EditStaffRequest,
) (*Staff, error) {
	if role != user.RoleBusiness {
		return nil, fmt.Errorf("edit staff: %w", core.ErrForbidden)
	}

	member, err := s.repo.GetOwned(ctx, businessID, staffID)
	if err != nil {
		return nil, err
	}

	if req.PhoneNumber != nil && *req.PhoneNumber != member.PhoneNumber {
		taken, err := s.repo.ExistsByBusinessPhone(
			ctx, businessID, *req.PhoneNumber, staffID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("edit staff: %w", core.ErrDuplicateKey)
		}
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Email != nil {
		member.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		member.PhoneNumber = *req.PhoneNumber
	}
	if req.WhatsappNumber != nil {
		member.WhatsappNumber = req.WhatsappNumber
	}

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

// DeleteStaff removes the staff row; the schema cascades the listing
// mappings away with it.
func (s *Service) DeleteStaff(
	ctx context.Context,
	businessID, role, staffID string,
) error {
	if role != user.RoleBusiness {
		return fmt.Errorf("delete staff: %w", core.ErrForbidden)
	}

	return s.repo.Delete(ctx, businessID, staffID)
}

// ValidateOwnedSet reports whether every id resolves to a staff row owned by
// the business. A count mismatch covers unknown ids, foreign ids, and
// duplicates in the request.
func (s *Service) ValidateOwnedSet(
	ctx context.Context,
	businessID string,
	staffIDs []string,
) (bool, error) {
	if len(staffIDs) == 0 {
		return true, nil
	}

	count, err := s.repo.CountOwned(ctx, businessID, staffIDs)
	if err != nil {
		return false, err
	}

	return count == len(staffIDs), nil
}
