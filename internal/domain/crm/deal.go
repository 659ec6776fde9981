package crm

import (
	"strings"
	"time"

	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DealStage is the pipeline stage of a deal
type DealStage string

const (
	DealStageProspecting   DealStage = "prospecting"
	DealStageQualification DealStage = "qualification"
	DealStageProposal      DealStage = "proposal"
	DealStageNegotiation   DealStage = "negotiation"
	DealStageClosedWon     DealStage = "closed_won"
	DealStageClosedLost    DealStage = "closed_lost"
)

// PipelineStages lists stages in pipeline order
var PipelineStages = []DealStage{
	DealStageProspecting,
	DealStageQualification,
	DealStageProposal,
	DealStageNegotiation,
	DealStageClosedWon,
	DealStageClosedLost,
}

// IsValid reports whether s is a known stage
func (s DealStage) IsValid() bool {
	for _, st := range PipelineStages {
		if st == s {
			return true
		}
	}
	return false
}

// StageOrder returns the position of s in the pipeline, or len(PipelineStages)
// for unknown stages so they sort last.
func StageOrder(s DealStage) int {
	for i, st := range PipelineStages {
		if st == s {
			return i
		}
	}
	return len(PipelineStages)
}

// DefaultCurrency is used when a deal does not specify one
const DefaultCurrency = "USD"

// Deal is a sales opportunity
type Deal struct {
	shared.BaseEntity
	Name              string
	ContactID         *uint
	Amount            decimal.Decimal
	Currency          string
	Stage             DealStage
	Probability       int
	ExpectedCloseDate *time.Time
	Description       string
	AssignedTo        *uint
}

// DealDetails holds the fields accepted when creating a deal
type DealDetails struct {
	Name              string
	ContactID         *uint
	Amount            decimal.Decimal
	Currency          string
	Stage             DealStage
	Probability       int
	ExpectedCloseDate *time.Time
	Description       string
	AssignedTo        *uint
}

// NewDeal creates a deal
func NewDeal(d DealDetails) (*Deal, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Deal name is required")
	}
	if d.Amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Deal amount cannot be negative")
	}
	if d.Probability < 0 || d.Probability > 100 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Probability must be between 0 and 100")
	}
	if d.Stage == "" {
		d.Stage = DealStageProspecting
	}
	if !d.Stage.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid deal stage")
	}
	currency := strings.ToUpper(strings.TrimSpace(d.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	if len(currency) != 3 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Currency must be a 3-letter code")
	}

	return &Deal{
		BaseEntity:        shared.NewBaseEntity(),
		Name:              name,
		ContactID:         d.ContactID,
		Amount:            d.Amount.Round(2),
		Currency:          currency,
		Stage:             d.Stage,
		Probability:       d.Probability,
		ExpectedCloseDate: d.ExpectedCloseDate,
		Description:       d.Description,
		AssignedTo:        d.AssignedTo,
	}, nil
}

// IsClosed reports whether the deal left the open pipeline
func (d *Deal) IsClosed() bool {
	return d.Stage == DealStageClosedWon || d.Stage == DealStageClosedLost
}
