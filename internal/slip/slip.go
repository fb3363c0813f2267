package slip

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Type discriminates the four slip variants.
type Type string

const (
	TypeQC       Type = "qc"
	TypeIR       Type = "ir"
	TypeCC       Type = "cc"
	TypeDispatch Type = "dispatch"
)

// Status represents a slip lifecycle state. The valid set depends on the type.
type Status string

const (
	StatusOpen          Status = "Open"
	StatusComplete      Status = "Complete"
	StatusDispatched    Status = "Dispatched"
	StatusPendingReview Status = "Dispatched - Pending Review"
)

var allTypes = []Type{TypeQC, TypeIR, TypeCC, TypeDispatch}

var statusDomains = map[Type][]Status{
	TypeQC:       {StatusOpen, StatusComplete},
	TypeIR:       {StatusOpen},
	TypeCC:       {StatusOpen},
	TypeDispatch: {StatusPendingReview, StatusDispatched},
}

var typeLabels = map[Type]string{
	TypeQC:       "QC Slip",
	TypeIR:       "Incident Report",
	TypeCC:       "Customer Complaint",
	TypeDispatch: "Dispatch Slip",
}

// Identity names the actor responsible for a slip action.
type Identity struct {
	Name  string `bson:"name"`
	Email string `bson:"email"`
}

// ActionedLine is one order line actioned on a QC slip.
type ActionedLine struct {
	LineNumber      string   `bson:"line_number"`
	PartID          string   `bson:"part_id"`
	PartDescription string   `bson:"part_description"`
	MiscReference   string   `bson:"misc_reference,omitempty"`
	OrderQty        float64  `bson:"order_qty"`
	ActionQty       float64  `bson:"action_qty"`
	Comment         string   `bson:"comment,omitempty"`
	Attachments     []string `bson:"attachments,omitempty"`
}

// QCPayload carries QC-specific slip data.
type QCPayload struct {
	COANumber              string         `bson:"coa_number,omitempty"`
	QCType                 string         `bson:"qc_type,omitempty"`
	ProductionManagerEmail string         `bson:"production_manager_email,omitempty"`
	DispatchManagerEmail   string         `bson:"dispatch_manager_email,omitempty"`
	ActionedLines          []ActionedLine `bson:"actioned_lines,omitempty"`
	IsRetroactive          bool           `bson:"is_retroactive,omitempty"`
	Comments               string         `bson:"comments,omitempty"`
}

// IRPayload carries incident-report data.
type IRPayload struct {
	NatureOfComplaint string `bson:"nature_of_complaint"`
	CorrectiveAction  string `bson:"corrective_action,omitempty"`
}

// CCPayload carries customer-complaint data.
type CCPayload struct {
	ComplaintDetails string `bson:"complaint_details"`
}

// Review records the admin resolution of a pending dispatch.
type Review struct {
	ReviewedBy string    `bson:"reviewed_by"`
	ReviewedAt time.Time `bson:"reviewed_at"`
	Comments   string    `bson:"comments,omitempty"`
}

// DispatchPayload carries dispatch-specific slip data. Review is nil until an
// admin approves a pending dispatch.
type DispatchPayload struct {
	Review *Review `bson:"review,omitempty"`
}

// Slip is a workflow document. SlipID and CreatedAt are immutable once the
// document is persisted; exactly one payload field matching Type is non-nil.
type Slip struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	SlipID      string             `bson:"slip_id"`
	Type        Type               `bson:"slip_type"`
	OrderNumber string             `bson:"order_number"`
	Status      Status             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
	CreatedBy   Identity           `bson:"created_by"`
	Attachments []string           `bson:"attachments,omitempty"`

	QC       *QCPayload       `bson:"qc,omitempty"`
	IR       *IRPayload       `bson:"ir,omitempty"`
	CC       *CCPayload       `bson:"cc,omitempty"`
	Dispatch *DispatchPayload `bson:"dispatch,omitempty"`
}

// AllTypes returns the ordered list of slip types.
func AllTypes() []Type {
	cp := make([]Type, len(allTypes))
	copy(cp, allTypes)
	return cp
}

// ParseType converts a string into a known Type.
func ParseType(value string) (Type, bool) {
	normalized := Type(strings.ToLower(strings.TrimSpace(value)))
	for _, t := range allTypes {
		if t == normalized {
			return t, true
		}
	}
	return "", false
}

// Label returns the human-readable name for a slip type.
func (t Type) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

// ValidStatus reports whether a status belongs to the type's domain.
func ValidStatus(t Type, status Status) bool {
	for _, s := range statusDomains[t] {
		if s == status {
			return true
		}
	}
	return false
}

// Statuses returns the status domain for a slip type.
func Statuses(t Type) []Status {
	domain := statusDomains[t]
	cp := make([]Status, len(domain))
	copy(cp, domain)
	return cp
}

// IsTerminal reports whether a status ends the slip's lifecycle in core scope.
func (s Status) IsTerminal() bool {
	return s == StatusComplete || s == StatusDispatched
}
