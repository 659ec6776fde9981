package crm

import (
	"context"
	"strings"
	"time"

	"github.com/erp/erpapp/internal/application/common"
	"github.com/erp/erpapp/internal/domain/crm"
	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/erp/erpapp/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

var errLeadEmailTaken = shared.NewDomainError("ALREADY_EXISTS", "A lead with this email already exists")

// CRMService manages leads, contacts, deals and activities
type CRMService struct {
	leads      crm.LeadRepository
	contacts   crm.ContactRepository
	deals      crm.DealRepository
	activities crm.ActivityRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewCRMService creates a new CRM service
func NewCRMService(
	leads crm.LeadRepository,
	contacts crm.ContactRepository,
	deals crm.DealRepository,
	activities crm.ActivityRepository,
	logger *zap.Logger,
) *CRMService {
	return &CRMService{
		leads:      leads,
		contacts:   contacts,
		deals:      deals,
		activities: activities,
		logger:     logger,
		now:        time.Now,
	}
}

// ListLeads lists leads newest first
func (s *CRMService) ListLeads(ctx context.Context, q LeadListQuery) (common.ListResponse[LeadResponse], error) {
	filter, err := q.ToFilter()
	if err != nil {
		return common.ListResponse[LeadResponse]{}, err
	}
	if q.Status != "" {
		filter = filter.With(crm.FilterStatus, q.Status)
	}
	if c := strings.TrimSpace(q.Company); c != "" {
		filter = filter.With(crm.FilterCompany, c)
	}
	filter = filter.WithSearch(q.Search)

	page, err := s.leads.FindAll(ctx, filter)
	if err != nil {
		return common.ListResponse[LeadResponse]{}, err
	}
	return common.NewListResponse(page, ToLeadResponse), nil
}

// GetLead returns one lead
func (s *CRMService) GetLead(ctx context.Context, id uint) (*LeadResponse, error) {
	lead, err := s.leads.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Lead")
	}
	resp := ToLeadResponse(lead)
	return &resp, nil
}

// CreateLead creates a lead owned by the acting user
func (s *CRMService) CreateLead(ctx context.Context, req LeadRequest, actorID uint) (*LeadResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "crm", "create_lead")
	defer span.End()

	lead, err := crm.NewLead(req.details(), common.Uintp(actorID))
	if err != nil {
		return nil, err
	}
	if err := s.ensureLeadEmailFree(ctx, lead.Email, 0); err != nil {
		return nil, err
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Lead created", zap.Uint("lead_id", lead.ID), zap.Uint("actor_id", actorID))
	resp := ToLeadResponse(lead)
	return &resp, nil
}

// UpdateLead replaces every editable field of a lead
func (s *CRMService) UpdateLead(ctx context.Context, id uint, req LeadRequest, actorID uint) (*LeadResponse, error) {
	lead, err := s.leads.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Lead")
	}
	if err := lead.Update(req.details()); err != nil {
		return nil, err
	}
	if err := s.ensureLeadEmailFree(ctx, lead.Email, lead.ID); err != nil {
		return nil, err
	}
	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, err
	}

	s.logger.Info("Lead updated", zap.Uint("lead_id", lead.ID), zap.Uint("actor_id", actorID))
	resp := ToLeadResponse(lead)
	return &resp, nil
}

func (s *CRMService) ensureLeadEmailFree(ctx context.Context, email string, excludeID uint) error {
	if email == "" {
		return nil
	}
	taken, err := s.leads.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return errLeadEmailTaken
	}
	return nil
}

// ListContacts lists active contacts
func (s *CRMService) ListContacts(ctx context.Context, q ContactListQuery) (common.ListResponse[ContactResponse], error) {
	filter, err := q.ToFilter()
	if err != nil {
		return common.ListResponse[ContactResponse]{}, err
	}
	if q.Type != "" {
		filter = filter.With(crm.FilterType, q.Type)
	}
	filter = filter.WithSearch(q.Search)

	page, err := s.contacts.FindAll(ctx, filter)
	if err != nil {
		return common.ListResponse[ContactResponse]{}, err
	}
	return common.NewListResponse(page, ToContactResponse), nil
}

// GetContact returns one contact
func (s *CRMService) GetContact(ctx context.Context, id uint) (*ContactResponse, error) {
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Contact")
	}
	resp := ToContactResponse(contact)
	return &resp, nil
}

// CreateContact creates a contact
func (s *CRMService) CreateContact(ctx context.Context, req ContactRequest, actorID uint) (*ContactResponse, error) {
	contact, err := crm.NewContact(crm.ContactDetails{
		Type:        crm.ContactType(req.Type),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Phone:       req.Phone,
		Website:     req.Website,
		Address:     req.Address,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, err
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}

	s.logger.Info("Contact created", zap.Uint("contact_id", contact.ID), zap.Uint("actor_id", actorID))
	resp := ToContactResponse(contact)
	return &resp, nil
}

// ListDeals lists deals newest first
func (s *CRMService) ListDeals(ctx context.Context, q DealListQuery) (common.ListResponse[DealResponse], error) {
	filter, err := q.ToFilter()
	if err != nil {
		return common.ListResponse[DealResponse]{}, err
	}
	if q.Stage != "" {
		filter = filter.With(crm.FilterStage, q.Stage)
	}
	if q.ContactID != nil {
		filter = filter.With(crm.FilterContactID, *q.ContactID)
	}

	page, err := s.deals.FindAll(ctx, filter)
	if err != nil {
		return common.ListResponse[DealResponse]{}, err
	}
	return common.NewListResponse(page, ToDealResponse), nil
}

// GetDeal returns one deal
func (s *CRMService) GetDeal(ctx context.Context, id uint) (*DealResponse, error) {
	deal, err := s.deals.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Deal")
	}
	resp := ToDealResponse(deal)
	return &resp, nil
}

// CreateDeal creates a deal, optionally linked to an existing contact
func (s *CRMService) CreateDeal(ctx context.Context, req DealRequest, actorID uint) (*DealResponse, error) {
	deal, err := crm.NewDeal(crm.DealDetails{
		Name:              req.Name,
		ContactID:         req.ContactID,
		Amount:            req.Amount,
		Currency:          req.Currency,
		Stage:             crm.DealStage(req.Stage),
		Probability:       req.Probability,
		ExpectedCloseDate: req.ExpectedCloseDate.Ptr(),
		Description:       req.Description,
		AssignedTo:        req.AssignedTo,
	})
	if err != nil {
		return nil, err
	}
	if deal.ContactID != nil {
		if _, err := s.contacts.FindByID(ctx, *deal.ContactID); err != nil {
			return nil, common.TranslateNotFound(err, "Contact")
		}
	}
	if err := s.deals.Create(ctx, deal); err != nil {
		return nil, err
	}

	s.logger.Info("Deal created",
		zap.Uint("deal_id", deal.ID),
		zap.String("amount", deal.Amount.StringFixed(2)),
		zap.Uint("actor_id", actorID),
	)
	resp := ToDealResponse(deal)
	return &resp, nil
}

// ListActivities lists activities by scheduled time, latest first
func (s *CRMService) ListActivities(ctx context.Context, q ActivityListQuery) (common.ListResponse[ActivityResponse], error) {
	filter, err := q.ToFilter()
	if err != nil {
		return common.ListResponse[ActivityResponse]{}, err
	}
	if q.LeadID != nil {
		filter = filter.With(crm.FilterLeadID, *q.LeadID)
	}
	if q.ContactID != nil {
		filter = filter.With(crm.FilterContactID, *q.ContactID)
	}
	if q.DealID != nil {
		filter = filter.With(crm.FilterDealID, *q.DealID)
	}
	if q.IsCompleted != nil {
		filter = filter.With(crm.FilterIsCompleted, *q.IsCompleted)
	}

	page, err := s.activities.FindAll(ctx, filter)
	if err != nil {
		return common.ListResponse[ActivityResponse]{}, err
	}
	return common.NewListResponse(page, ToActivityResponse), nil
}

// GetActivity returns one activity
func (s *CRMService) GetActivity(ctx context.Context, id uint) (*ActivityResponse, error) {
	activity, err := s.activities.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Activity")
	}
	resp := ToActivityResponse(activity)
	return &resp, nil
}

// CreateActivity schedules an activity against optional lead, contact and deal
func (s *CRMService) CreateActivity(ctx context.Context, req ActivityRequest, actorID uint) (*ActivityResponse, error) {
	activity, err := crm.NewActivity(crm.ActivityDetails{
		ActivityType: crm.ActivityType(req.ActivityType),
		Subject:      req.Subject,
		Description:  req.Description,
		ScheduledAt:  req.ScheduledAt,
		LeadID:       req.LeadID,
		ContactID:    req.ContactID,
		DealID:       req.DealID,
		AssignedTo:   req.AssignedTo,
	})
	if err != nil {
		return nil, err
	}
	if err := s.checkActivityLinks(ctx, activity); err != nil {
		return nil, err
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, err
	}

	s.logger.Info("Activity created", zap.Uint("activity_id", activity.ID), zap.Uint("actor_id", actorID))
	resp := ToActivityResponse(activity)
	return &resp, nil
}

func (s *CRMService) checkActivityLinks(ctx context.Context, a *crm.Activity) error {
	if a.LeadID != nil {
		if _, err := s.leads.FindByID(ctx, *a.LeadID); err != nil {
			return common.TranslateNotFound(err, "Lead")
		}
	}
	if a.ContactID != nil {
		if _, err := s.contacts.FindByID(ctx, *a.ContactID); err != nil {
			return common.TranslateNotFound(err, "Contact")
		}
	}
	if a.DealID != nil {
		if _, err := s.deals.FindByID(ctx, *a.DealID); err != nil {
			return common.TranslateNotFound(err, "Deal")
		}
	}
	return nil
}

// CompleteActivity marks an open activity as done
func (s *CRMService) CompleteActivity(ctx context.Context, id uint, actorID uint) (*ActivityResponse, error) {
	activity, err := s.activities.FindByID(ctx, id)
	if err != nil {
		return nil, common.TranslateNotFound(err, "Activity")
	}
	if err := activity.Complete(s.now()); err != nil {
		return nil, err
	}
	if err := s.activities.Update(ctx, activity); err != nil {
		return nil, err
	}

	s.logger.Info("Activity completed", zap.Uint("activity_id", activity.ID), zap.Uint("actor_id", actorID))
	resp := ToActivityResponse(activity)
	return &resp, nil
}
