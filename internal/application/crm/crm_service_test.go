package crm

import (
	"context"
	"testing"
	"time"

	"github.com/erp/erpapp/internal/application/common"
	"github.com/erp/erpapp/internal/domain/crm"
	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *crm.Lead) error {
	args := m.Called(ctx, lead)
	lead.ID = 11
	return args.Error(0)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *crm.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id uint) (*crm.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Lead), args.Error(1)
}

func (m *MockLeadRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[crm.Lead], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Page[crm.Lead]), args.Error(1)
}

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, contact *crm.Contact) error {
	return m.Called(ctx, contact).Error(0)
}

func (m *MockContactRepository) FindByID(ctx context.Context, id uint) (*crm.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Contact), args.Error(1)
}

func (m *MockContactRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[crm.Contact], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Page[crm.Contact]), args.Error(1)
}

type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) Create(ctx context.Context, deal *crm.Deal) error {
	return m.Called(ctx, deal).Error(0)
}

func (m *MockDealRepository) FindByID(ctx context.Context, id uint) (*crm.Deal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Deal), args.Error(1)
}

func (m *MockDealRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[crm.Deal], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Page[crm.Deal]), args.Error(1)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *crm.Activity) error {
	return m.Called(ctx, activity).Error(0)
}

func (m *MockActivityRepository) Update(ctx context.Context, activity *crm.Activity) error {
	return m.Called(ctx, activity).Error(0)
}

func (m *MockActivityRepository) FindByID(ctx context.Context, id uint) (*crm.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Activity), args.Error(1)
}

func (m *MockActivityRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[crm.Activity], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Page[crm.Activity]), args.Error(1)
}

type crmMocks struct {
	leads      *MockLeadRepository
	contacts   *MockContactRepository
	deals      *MockDealRepository
	activities *MockActivityRepository
}

func newTestCRMService() (*CRMService, crmMocks) {
	m := crmMocks{
		leads:      new(MockLeadRepository),
		contacts:   new(MockContactRepository),
		deals:      new(MockDealRepository),
		activities: new(MockActivityRepository),
	}
	return NewCRMService(m.leads, m.contacts, m.deals, m.activities, zap.NewNop()), m
}

func intp(v int) *int { return &v }

func TestCRMService_CreateLead(t *testing.T) {
	ctx := context.Background()

	t.Run("creates lead with actor as owner", func(t *testing.T) {
		svc, m := newTestCRMService()
		m.leads.On("ExistsByEmail", mock.Anything, "ada@example.com", uint(0)).Return(false, nil)
		m.leads.On("Create", mock.Anything, mock.AnythingOfType("*crm.Lead")).Return(nil)

		resp, err := svc.CreateLead(ctx, LeadRequest{FirstName: "Ada", LastName: "Lovelace", Email: "Ada@Example.com"}, 4)
		require.NoError(t, err)
		assert.Equal(t, uint(11), resp.ID)
		assert.Equal(t, "new", resp.Status)
		assert.Equal(t, "ada@example.com", resp.Email)
		require.NotNil(t, resp.CreatedBy)
		assert.Equal(t, uint(4), *resp.CreatedBy)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, m := newTestCRMService()
		m.leads.On("ExistsByEmail", mock.Anything, "ada@example.com", uint(0)).Return(true, nil)

		_, err := svc.CreateLead(ctx, LeadRequest{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}, 4)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		m.leads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("skips email check when email is empty", func(t *testing.T) {
		svc, m := newTestCRMService()
		m.leads.On("Create", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.CreateLead(ctx, LeadRequest{FirstName: "Ada", LastName: "Lovelace"}, 4)
		require.NoError(t, err)
		m.leads.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCRMService_UpdateLead(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestCRMService()

	existing, err := crm.NewLead(crm.LeadDetails{FirstName: "Ada", LastName: "Lovelace"}, nil)
	require.NoError(t, err)
	existing.ID = 5

	m.leads.On("FindByID", mock.Anything, uint(5)).Return(existing, nil)
	m.leads.On("ExistsByEmail", mock.Anything, "ada@analytical.org", uint(5)).Return(false, nil)
	m.leads.On("Update", mock.Anything, existing).Return(nil)

	resp, err := svc.UpdateLead(ctx, 5, LeadRequest{
		FirstName: "Ada", LastName: "King", Email: "ada@analytical.org", Status: "qualified",
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, "King", resp.LastName)
	assert.Equal(t, "qualified", resp.Status)

	m.leads.On("FindByID", mock.Anything, uint(99)).Return(nil, shared.ErrNotFound)
	_, err = svc.UpdateLead(ctx, 99, LeadRequest{FirstName: "A", LastName: "B"}, 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Contains(t, err.Error(), "Lead not found")
}

func TestCRMService_ListLeads(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestCRMService()

	lead, _ := crm.NewLead(crm.LeadDetails{FirstName: "Ada", LastName: "Lovelace"}, nil)
	m.leads.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		status, _ := f.Get(crm.FilterStatus)
		company, _ := f.Get(crm.FilterCompany)
		return f.Skip == 10 && f.Limit == 5 && status == "new" && company == "acme" && f.Search == "ada"
	})).Return(shared.Page[crm.Lead]{Items: []crm.Lead{*lead}, Total: 11, Skip: 10, Limit: 5}, nil)

	resp, err := svc.ListLeads(ctx, LeadListQuery{
		PageQuery: common.PageQuery{Skip: intp(10), Limit: intp(5)},
		Status:    "new", Company: " acme ", Search: " ada ",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.Total)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, 10, resp.Skip)

	_, err = svc.ListLeads(ctx, LeadListQuery{PageQuery: common.PageQuery{Limit: intp(5000)}})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestCRMService_CreateDeal(t *testing.T) {
	ctx := context.Background()

	t.Run("missing contact", func(t *testing.T) {
		svc, m := newTestCRMService()
		m.contacts.On("FindByID", mock.Anything, uint(8)).Return(nil, shared.ErrNotFound)

		contactID := uint(8)
		_, err := svc.CreateDeal(ctx, DealRequest{Name: "Big one", ContactID: &contactID, Amount: decimal.NewFromInt(100)}, 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Contains(t, err.Error(), "Contact not found")
	})

	t.Run("defaults stage and currency", func(t *testing.T) {
		svc, m := newTestCRMService()
		m.deals.On("Create", mock.Anything, mock.Anything).Return(nil)

		closeDate := common.NewDate(time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC))
		resp, err := svc.CreateDeal(ctx, DealRequest{
			Name: "Renewal", Amount: decimal.RequireFromString("2500.505"), ExpectedCloseDate: &closeDate,
		}, 1)
		require.NoError(t, err)
		assert.Equal(t, "prospecting", resp.Stage)
		assert.Equal(t, "USD", resp.Currency)
		assert.Equal(t, "2500.51", resp.Amount.StringFixed(2))
		require.NotNil(t, resp.ExpectedCloseDate)
		assert.Equal(t, 30, resp.ExpectedCloseDate.Day())
	})
}

func TestCRMService_Activities(t *testing.T) {
	ctx := context.Background()

	t.Run("create validates linked lead", func(t *testing.T) {
		svc, m := newTestCRMService()
		m.leads.On("FindByID", mock.Anything, uint(3)).Return(nil, shared.ErrNotFound)

		leadID := uint(3)
		_, err := svc.CreateActivity(ctx, ActivityRequest{
			ActivityType: "call", Subject: "Intro", ScheduledAt: time.Now(), LeadID: &leadID,
		}, 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		m.activities.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("complete stamps time once", func(t *testing.T) {
		svc, m := newTestCRMService()
		now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return now }

		activity, err := crm.NewActivity(crm.ActivityDetails{ActivityType: crm.ActivityTypeTask, Subject: "Send deck", ScheduledAt: now})
		require.NoError(t, err)
		activity.ID = 2
		m.activities.On("FindByID", mock.Anything, uint(2)).Return(activity, nil)
		m.activities.On("Update", mock.Anything, activity).Return(nil).Once()

		resp, err := svc.CompleteActivity(ctx, 2, 1)
		require.NoError(t, err)
		assert.True(t, resp.IsCompleted)
		require.NotNil(t, resp.CompletedAt)
		assert.Equal(t, now, *resp.CompletedAt)

		_, err = svc.CompleteActivity(ctx, 2, 1)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		m.activities.AssertExpectations(t)
	})

	t.Run("list passes filters", func(t *testing.T) {
		svc, m := newTestCRMService()
		done := false
		dealID := uint(9)
		m.activities.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
			d, _ := f.Get(crm.FilterDealID)
			c, _ := f.Get(crm.FilterIsCompleted)
			_, hasLead := f.Get(crm.FilterLeadID)
			return d == uint(9) && c == false && !hasLead
		})).Return(shared.Page[crm.Activity]{}, nil)

		resp, err := svc.ListActivities(ctx, ActivityListQuery{DealID: &dealID, IsCompleted: &done})
		require.NoError(t, err)
		assert.NotNil(t, resp.Items)
	})
}
