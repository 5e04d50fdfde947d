package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

func (r *repos) CreateOrder(ctx context.Context, order *domain.Order) error {
	st, unlock := r.begin()
	defer unlock()
	if _, ok := st.orders[order.ID]; ok {
		return fmt.Errorf("order %s already exists", order.ID)
	}
	for _, o := range st.orders {
		if o.Number == order.Number {
			return fmt.Errorf("order number %s already exists", order.Number)
		}
	}
	st.orders[order.ID] = *order
	return nil
}

func getOrder(st *state, orderID string) (*domain.Order, error) {
	o, ok := st.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}
	return &o, nil
}

func (r *repos) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	st, unlock := r.begin()
	defer unlock()
	return getOrder(st, orderID)
}

func (r *repos) GetOrderForUpdate(ctx context.Context, orderID string) (*domain.Order, error) {
	st, unlock := r.begin()
	defer unlock()
	return getOrder(st, orderID)
}

func (r *repos) UpdateOrder(ctx context.Context, order *domain.Order) error {
	st, unlock := r.begin()
	defer unlock()
	cur, ok := st.orders[order.ID]
	if !ok {
		return fmt.Errorf("order %s: %w", order.ID, domain.ErrNotFound)
	}
	if cur.Version != order.Version {
		return fmt.Errorf("order %s version %d: %w", order.ID, order.Version, domain.ErrConcurrentUpdate)
	}
	order.Version++
	st.orders[order.ID] = *order
	return nil
}

func (r *repos) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, int64, error) {
	st, unlock := r.begin()
	defer unlock()
	var matched []*domain.Order
	for _, o := range st.orders {
		if filter.BuyerID != "" && o.BuyerID != filter.BuyerID {
			continue
		}
		if filter.SellerID != "" && o.SellerID != filter.SellerID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		o := o
		matched = append(matched, &o)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return paginate(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}

func (r *repos) CountOpenOrders(ctx context.Context, buyerID, sellerID string) (int64, error) {
	st, unlock := r.begin()
	defer unlock()
	var n int64
	for _, o := range st.orders {
		if o.BuyerID == buyerID && o.SellerID == sellerID && slices.Contains(domain.OpenStatuses, o.Status) {
			n++
		}
	}
	return n, nil
}

func (r *repos) FindDueOrders(ctx context.Context, status domain.OrderStatus, now time.Time, limit int) ([]string, error) {
	st, unlock := r.begin()
	defer unlock()
	var due []domain.Order
	for _, o := range st.orders {
		if o.Status == status && o.DueAt != nil && !o.DueAt.After(now) {
			due = append(due, o)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].DueAt.Before(*due[j].DueAt) })
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	ids := make([]string, len(due))
	for i, o := range due {
		ids[i] = o.ID
	}
	return ids, nil
}

func (r *repos) GetBuyerStats(ctx context.Context, buyerID string) (domain.OrderStats, error) {
	st, unlock := r.begin()
	defer unlock()
	var stats domain.OrderStats
	for _, o := range st.orders {
		if o.BuyerID != buyerID {
			continue
		}
		if o.Status == domain.StatusDisputed {
			stats.ActiveDisputes++
		}
		if !o.Status.IsTerminal() {
			continue
		}
		stats.Total++
		if o.Status == domain.StatusCompleted {
			stats.Completed++
		} else {
			stats.Cancelled++
		}
		if o.DisputedAt != nil {
			stats.Disputed++
		}
	}
	return stats, nil
}

func (r *repos) AppendTransition(ctx context.Context, t *domain.OrderTransition) error {
	st, unlock := r.begin()
	defer unlock()
	st.transitions = append(st.transitions, *t)
	return nil
}

func (r *repos) ListTransitions(ctx context.Context, orderID string) ([]*domain.OrderTransition, error) {
	st, unlock := r.begin()
	defer unlock()
	var out []*domain.OrderTransition
	for _, t := range st.transitions {
		if t.OrderID == orderID {
			t := t
			out = append(out, &t)
		}
	}
	return out, nil
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
