package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

func (r *repos) CreateDispute(ctx context.Context, dispute *domain.Dispute) error {
	st, unlock := r.begin()
	defer unlock()
	for _, d := range st.disputes {
		if d.OrderID == dispute.OrderID && d.Status == domain.DisputeOpen {
			return fmt.Errorf("order %s already has an open dispute", dispute.OrderID)
		}
	}
	st.disputes = append(st.disputes, *dispute)
	return nil
}

func (r *repos) GetOpenDisputeForUpdate(ctx context.Context, orderID string) (*domain.Dispute, error) {
	st, unlock := r.begin()
	defer unlock()
	for _, d := range st.disputes {
		if d.OrderID == orderID && d.Status == domain.DisputeOpen {
			return &d, nil
		}
	}
	return nil, fmt.Errorf("open dispute for order %s: %w", orderID, domain.ErrNotFound)
}

func (r *repos) UpdateDispute(ctx context.Context, dispute *domain.Dispute) error {
	st, unlock := r.begin()
	defer unlock()
	for i, d := range st.disputes {
		if d.ID == dispute.ID {
			st.disputes[i] = *dispute
			return nil
		}
	}
	return fmt.Errorf("dispute %s: %w", dispute.ID, domain.ErrNotFound)
}

func (r *repos) GetDisputeByOrderID(ctx context.Context, orderID string) (*domain.Dispute, error) {
	st, unlock := r.begin()
	defer unlock()
	for i := len(st.disputes) - 1; i >= 0; i-- {
		if d := st.disputes[i]; d.OrderID == orderID {
			return &d, nil
		}
	}
	return nil, fmt.Errorf("dispute for order %s: %w", orderID, domain.ErrNotFound)
}

func (r *repos) ListDisputes(ctx context.Context, filter domain.DisputeFilter) ([]*domain.Dispute, int64, error) {
	st, unlock := r.begin()
	defer unlock()
	var matched []*domain.Dispute
	for _, d := range st.disputes {
		if filter.OrderID != "" && d.OrderID != filter.OrderID {
			continue
		}
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		d := d
		matched = append(matched, &d)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].OpenedAt.After(matched[j].OpenedAt) })
	return paginate(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}
