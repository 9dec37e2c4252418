package report

import (
	"context"

	"golang.org/x/sync/errgroup"

	reportrepo "scoopshop/internal/repository/report"
)

const topProductsLimit = 10

// SalesReport is the read-only aggregate consumed by the export layer.
type SalesReport struct {
	Totals      reportrepo.Totals          `json:"totals"`
	ByCustomer  []reportrepo.CustomerSales `json:"byCustomer"`
	TopProducts []reportrepo.TopProduct    `json:"topProducts"`
}

type Service struct {
	repo reportrepo.Repository
}

func New(repo reportrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Sales gathers the three aggregate views concurrently.
func (s *Service) Sales(ctx context.Context) (*SalesReport, error) {
	var out SalesReport

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		totals, err := s.repo.Totals(ctx)
		if err != nil {
			return err
		}
		out.Totals = *totals
		return nil
	})
	g.Go(func() error {
		byCustomer, err := s.repo.SalesByCustomer(ctx)
		if err != nil {
			return err
		}
		out.ByCustomer = byCustomer
		return nil
	})
	g.Go(func() error {
		top, err := s.repo.TopProducts(ctx, topProductsLimit)
		if err != nil {
			return err
		}
		out.TopProducts = top
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
