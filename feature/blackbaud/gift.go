package blackbaud

import (
	"context"
	"strings"

	"destination-sync/core/fault"

	"go.uber.org/zap"
)

// Acknowledgement is a gift acknowledgement.
type Acknowledgement struct {
	Date   string `json:"date,omitempty"`
	Status string `json:"status,omitempty"`
}

// Receipt is a gift receipt.
type Receipt struct {
	Date   string `json:"date,omitempty"`
	Status string `json:"status,omitempty"`
}

// RecurringGiftSchedule is the installment schedule of a recurring gift.
type RecurringGiftSchedule struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Frequency string `json:"frequency,omitempty"`
}

// GiftPayload is a fully mapped gift.
type GiftPayload struct {
	// ConstituentID is the donor. Required unless Constituent carries fields.
	ConstituentID string `json:"constituent_id,omitempty"`
	// Constituent, when set, is reconciled first and becomes the donor.
	Constituent *ConstituentPayload `json:"constituent,omitempty"`

	Amount                *float64               `json:"amount"`
	FundID                string                 `json:"fund_id"`
	PaymentMethod         string                 `json:"payment_method"`
	Date                  string                 `json:"date,omitempty"`
	CheckDate             string                 `json:"check_date,omitempty"`
	CheckNumber           string                 `json:"check_number,omitempty"`
	GiftStatus            string                 `json:"gift_status,omitempty"`
	IsAnonymous           *bool                  `json:"is_anonymous,omitempty"`
	LinkedGifts           []string               `json:"linked_gifts,omitempty"`
	LookupID              string                 `json:"lookup_id,omitempty"`
	PostDate              string                 `json:"post_date,omitempty"`
	PostStatus            string                 `json:"post_status,omitempty"`
	Type                  string                 `json:"type,omitempty"`
	Subtype               string                 `json:"subtype,omitempty"`
	Acknowledgement       *Acknowledgement       `json:"acknowledgement,omitempty"`
	Receipt               *Receipt               `json:"receipt,omitempty"`
	RecurringGiftSchedule *RecurringGiftSchedule `json:"recurring_gift_schedule,omitempty"`
}

// GiftResult is the outcome of a gift creation.
type GiftResult struct {
	ID            string `json:"id"`
	ConstituentID string `json:"constituent_id"`
}

type giftAmount struct {
	Value float64 `json:"value"`
}

type giftSplit struct {
	Amount giftAmount `json:"amount"`
	FundID string     `json:"fund_id"`
}

type giftPayment struct {
	PaymentMethod string     `json:"payment_method"`
	CheckDate     *fuzzyDate `json:"check_date,omitempty"`
	CheckNumber   string     `json:"check_number,omitempty"`
}

type giftBody struct {
	Amount                giftAmount             `json:"amount"`
	ConstituentID         string                 `json:"constituent_id"`
	Date                  string                 `json:"date,omitempty"`
	GiftSplits            []giftSplit            `json:"gift_splits"`
	GiftStatus            string                 `json:"gift_status,omitempty"`
	IsAnonymous           *bool                  `json:"is_anonymous,omitempty"`
	LinkedGifts           []string               `json:"linked_gifts,omitempty"`
	LookupID              string                 `json:"lookup_id,omitempty"`
	Payments              []giftPayment          `json:"payments"`
	PostDate              string                 `json:"post_date,omitempty"`
	PostStatus            string                 `json:"post_status"`
	Type                  string                 `json:"type"`
	Subtype               string                 `json:"subtype,omitempty"`
	Acknowledgements      []Acknowledgement      `json:"acknowledgements,omitempty"`
	Receipts              []Receipt              `json:"receipts,omitempty"`
	RecurringGiftSchedule *RecurringGiftSchedule `json:"recurring_gift_schedule,omitempty"`
}

func buildGiftBody(constituentID string, p GiftPayload) (giftBody, error) {
	switch {
	case p.Amount == nil:
		return giftBody{}, fault.Validation(fault.CodeMissingField, "Missing amount value")
	case strings.TrimSpace(p.FundID) == "":
		return giftBody{}, fault.Validation(fault.CodeMissingField, "Missing fund_id value")
	case strings.TrimSpace(p.PaymentMethod) == "":
		return giftBody{}, fault.Validation(fault.CodeMissingField, "Missing payment_method value")
	}

	checkDate, err := parseFuzzyDate("check_date", p.CheckDate)
	if err != nil {
		return giftBody{}, err
	}

	body := giftBody{
		Amount:        giftAmount{Value: *p.Amount},
		ConstituentID: constituentID,
		Date:          p.Date,
		GiftSplits:    []giftSplit{{Amount: giftAmount{Value: *p.Amount}, FundID: p.FundID}},
		GiftStatus:    p.GiftStatus,
		IsAnonymous:   p.IsAnonymous,
		LinkedGifts:   p.LinkedGifts,
		LookupID:      p.LookupID,
		Payments: []giftPayment{{
			PaymentMethod: p.PaymentMethod,
			CheckDate:     checkDate,
			CheckNumber:   p.CheckNumber,
		}},
		PostDate:              p.PostDate,
		PostStatus:            p.PostStatus,
		Type:                  p.Type,
		Subtype:               p.Subtype,
		RecurringGiftSchedule: p.RecurringGiftSchedule,
	}
	if body.PostStatus == "" {
		body.PostStatus = "NotPosted"
	}
	if body.Type == "" {
		body.Type = "Donation"
	}
	if p.Acknowledgement != nil && *p.Acknowledgement != (Acknowledgement{}) {
		body.Acknowledgements = []Acknowledgement{*p.Acknowledgement}
	}
	if p.Receipt != nil && *p.Receipt != (Receipt{}) {
		body.Receipts = []Receipt{*p.Receipt}
	}
	return body, nil
}

// GiftService creates gifts, reconciling the donor first when needed.
type GiftService struct {
	reconciler *Reconciler
	client     *Client
	logger     *zap.Logger
}

// NewGiftService creates a gift service.
func NewGiftService(reconciler *Reconciler, client *Client, logg *zap.Logger) *GiftService {
	if logg == nil {
		logg = zap.NewNop()
	}
	return &GiftService{reconciler: reconciler, client: client, logger: logg}
}

// CreateGift creates a gift. When the payload carries constituent fields the
// constituent is reconciled first and becomes the donor.
func (g *GiftService) CreateGift(ctx context.Context, p GiftPayload, s Settings) (*GiftResult, error) {
	body, err := buildGiftBody(p.ConstituentID, p)
	if err != nil {
		return nil, err
	}
	constituentID := p.ConstituentID

	if !p.Constituent.IsEmpty() {
		donor := *p.Constituent
		if donor.ConstituentID == "" {
			donor.ConstituentID = p.ConstituentID
		}
		res, err := g.reconciler.ReconcileRecord(ctx, donor, s)
		if err != nil {
			return nil, err
		}
		constituentID = res.ID
	} else if constituentID == "" {
		return nil, fault.Validation(fault.CodeMissingField, "Missing constituent_id value")
	}
	body.ConstituentID = constituentID

	id, err := g.client.CreateGift(ctx, s, body)
	if err != nil {
		return nil, err
	}

	g.logger.Info("Created gift", zap.String("gift_id", id), zap.String("constituent_id", constituentID))
	return &GiftResult{ID: id, ConstituentID: constituentID}, nil
}
