package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrolink/livestock-api/internal/core/domain"
	"github.com/agrolink/livestock-api/internal/core/ports"
)

// ProposalService implements purchase proposal use cases. Answering a
// proposal only records the answer; notifying the customer is out of scope.
type ProposalService struct {
	proposals ports.ProposalRepository
	log       zerolog.Logger
}

func NewProposalService(proposals ports.ProposalRepository, log zerolog.Logger) *ProposalService {
	return &ProposalService{proposals: proposals, log: log}
}

func (s *ProposalService) List(ctx context.Context) ([]*domain.Proposal, error) {
	return s.proposals.List(ctx)
}

func (s *ProposalService) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Proposal, error) {
	return s.proposals.ListByCustomer(ctx, customerID)
}

func (s *ProposalService) Create(ctx context.Context, customerID, listingID, description string) (*domain.Proposal, error) {
	proposal := &domain.Proposal{
		CustomerID:  customerID,
		ListingID:   listingID,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.proposals.Insert(ctx, proposal)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("proposal_id", created.ID).Str("listing_id", listingID).Msg("proposal created")
	return created, nil
}

func (s *ProposalService) Answer(ctx context.Context, id, answer string) (*domain.Proposal, error) {
	updated, err := s.proposals.SetAnswer(ctx, id, answer)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("proposal_id", id).Msg("proposal answered")
	return updated, nil
}
