package workflow

import (
	"context"
	"fmt"

	"slipflow/internal/slip"
)

// NewQCSlip requests creation of a quality-control slip. QC slips are created
// already actioned: there is no separate submit/approve step in the base flow.
type NewQCSlip struct {
	OrderNumber            string
	COANumber              string
	QCType                 string
	ProductionManagerEmail string
	DispatchManagerEmail   string
	ActionedLines          []slip.ActionedLine
	CreatedBy              slip.Identity
}

// NewIRSlip requests creation of an incident report.
type NewIRSlip struct {
	OrderNumber       string
	NatureOfComplaint string
	CorrectiveAction  string
	CreatedBy         slip.Identity
}

// NewCCSlip requests creation of a customer complaint.
type NewCCSlip struct {
	OrderNumber      string
	ComplaintDetails string
	CreatedBy        slip.Identity
}

// CreateQC validates, mints an id, and persists a Complete QC slip.
func (e *Engine) CreateQC(ctx context.Context, req NewQCSlip) (Result, error) {
	orderNumber, err := requireOrderNumber(req.OrderNumber)
	if err != nil {
		return Result{}, err
	}
	if len(req.ActionedLines) == 0 {
		return Result{}, fmt.Errorf("%w: at least one line item must be actioned", ErrValidation)
	}

	slipID, err := e.mintID(ctx, slip.TypeQC)
	if err != nil {
		return Result{}, err
	}

	doc := &slip.Slip{
		SlipID:      slipID,
		Type:        slip.TypeQC,
		OrderNumber: orderNumber,
		Status:      slip.StatusComplete,
		CreatedAt:   e.now().UTC(),
		CreatedBy:   req.CreatedBy,
		QC: &slip.QCPayload{
			COANumber:              req.COANumber,
			QCType:                 req.QCType,
			ProductionManagerEmail: req.ProductionManagerEmail,
			DispatchManagerEmail:   req.DispatchManagerEmail,
			ActionedLines:          req.ActionedLines,
		},
	}
	if err := e.persist(ctx, doc); err != nil {
		return Result{}, err
	}
	return Result{Slip: doc, NotifyErr: e.notifyCreated(ctx, doc)}, nil
}

// CreateIR validates, mints an id, and persists an Open incident report.
// Closure is handled by admin flows outside this engine.
func (e *Engine) CreateIR(ctx context.Context, req NewIRSlip) (Result, error) {
	orderNumber, err := requireOrderNumber(req.OrderNumber)
	if err != nil {
		return Result{}, err
	}

	slipID, err := e.mintID(ctx, slip.TypeIR)
	if err != nil {
		return Result{}, err
	}

	doc := &slip.Slip{
		SlipID:      slipID,
		Type:        slip.TypeIR,
		OrderNumber: orderNumber,
		Status:      slip.StatusOpen,
		CreatedAt:   e.now().UTC(),
		CreatedBy:   req.CreatedBy,
		IR: &slip.IRPayload{
			NatureOfComplaint: req.NatureOfComplaint,
			CorrectiveAction:  req.CorrectiveAction,
		},
	}
	if err := e.persist(ctx, doc); err != nil {
		return Result{}, err
	}
	return Result{Slip: doc, NotifyErr: e.notifyCreated(ctx, doc)}, nil
}

// CreateCC validates, mints an id, and persists an Open customer complaint.
func (e *Engine) CreateCC(ctx context.Context, req NewCCSlip) (Result, error) {
	orderNumber, err := requireOrderNumber(req.OrderNumber)
	if err != nil {
		return Result{}, err
	}

	slipID, err := e.mintID(ctx, slip.TypeCC)
	if err != nil {
		return Result{}, err
	}

	doc := &slip.Slip{
		SlipID:      slipID,
		Type:        slip.TypeCC,
		OrderNumber: orderNumber,
		Status:      slip.StatusOpen,
		CreatedAt:   e.now().UTC(),
		CreatedBy:   req.CreatedBy,
		CC: &slip.CCPayload{
			ComplaintDetails: req.ComplaintDetails,
		},
	}
	if err := e.persist(ctx, doc); err != nil {
		return Result{}, err
	}
	return Result{Slip: doc, NotifyErr: e.notifyCreated(ctx, doc)}, nil
}
