package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/vesdm/institute-backend/internal/authz"
	"github.com/vesdm/institute-backend/internal/model"
	"github.com/vesdm/institute-backend/internal/repository"
)

// InquiryService handles public contact-form submissions.
type InquiryService struct {
	inquiryRepo *repository.InquiryRepository
	log         zerolog.Logger
}

// NewInquiryService creates a new InquiryService.
func NewInquiryService(inquiryRepo *repository.InquiryRepository, log zerolog.Logger) *InquiryService {
	return &InquiryService{
		inquiryRepo: inquiryRepo,
		log:         log.With().Str("component", "inquiry_service").Logger(),
	}
}

// Submit records a contact-form inquiry.
func (s *InquiryService) Submit(ctx context.Context, req model.CreateInquiryRequest) (*model.Inquiry, error) {
	inquiry := &model.Inquiry{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		CourseInterest: req.CourseInterest,
		Message:        req.Message,
	}
	if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
		return nil, err
	}
	s.log.Info().Str("inquiry_id", inquiry.ID.String()).Msg("Inquiry submitted")
	return inquiry, nil
}

// List retrieves all inquiries. Admin only.
func (s *InquiryService) List(ctx context.Context, actor authz.Actor) ([]model.Inquiry, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}
	inquiries, err := s.inquiryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if inquiries == nil {
		inquiries = []model.Inquiry{}
	}
	return inquiries, nil
}
