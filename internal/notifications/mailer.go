package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wneessen/go-mail"

	"slipflow/internal/config"
	"slipflow/internal/logging"
	"slipflow/internal/slip"
)

type mailService struct {
	from          string
	testRecipient string
	irRecipients  []string
	ccRecipients  []string
	settings      SettingsSource
	transport     sender
	logger        *slog.Logger
}

func newMailService(cfg *config.Config, settings SettingsSource, transport sender, logger *slog.Logger) *mailService {
	return &mailService{
		from:          cfg.Notify.From,
		testRecipient: cfg.Notify.TestRecipient,
		irRecipients:  cfg.Notify.IRRecipients,
		ccRecipients:  cfg.Notify.CCRecipients,
		settings:      settings,
		transport:     transport,
		logger:        logging.WithComponent(logger, "notifications"),
	}
}

// delivery is a notification before test-mode resolution.
type delivery struct {
	subject string
	body    string
	to      []string
	cc      []string
}

func (m *mailService) SlipCreated(ctx context.Context, created *slip.Slip) error {
	return m.send(ctx, m.creationDelivery(created))
}

func (m *mailService) DispatchReviewed(ctx context.Context, dispatch, retroactiveQC *slip.Slip) error {
	var reviewer string
	if dispatch.Dispatch != nil && dispatch.Dispatch.Review != nil {
		reviewer = dispatch.Dispatch.Review.ReviewedBy
	}
	body := fmt.Sprintf(
		"Dispatch slip %s for order %s was approved by %s.\nA retroactive QC slip %s was created to complete the audit trail.",
		dispatch.SlipID, dispatch.OrderNumber, reviewer, retroactiveQC.SlipID,
	)
	return m.send(ctx, delivery{
		subject: fmt.Sprintf("[DISPATCH] %s - Order %s Approved", dispatch.SlipID, dispatch.OrderNumber),
		body:    body,
		to:      dedupe([]string{dispatch.CreatedBy.Email}),
	})
}

func (m *mailService) TestNotification(ctx context.Context) error {
	return m.send(ctx, delivery{
		subject: "slipflow notification test",
		body:    "Notification system test.",
		to:      []string{m.testRecipient},
	})
}

// creationDelivery picks recipients per slip type, mirroring who acts on each
// document: managers for QC (creator cc'd), the QA list for incidents, the
// sales list for complaints, and the creator for dispatches.
func (m *mailService) creationDelivery(created *slip.Slip) delivery {
	switch created.Type {
	case slip.TypeQC:
		var to []string
		if created.QC != nil {
			if created.QC.ProductionManagerEmail != "" {
				to = append(to, created.QC.ProductionManagerEmail)
			}
			if created.QC.DispatchManagerEmail != "" {
				to = append(to, created.QC.DispatchManagerEmail)
			}
		}
		return delivery{
			subject: fmt.Sprintf("[QC SLIP] %s - Order %s Requires Review", created.SlipID, created.OrderNumber),
			body:    m.slipBody(created),
			to:      dedupe(to),
			cc:      dedupe([]string{created.CreatedBy.Email}),
		}
	case slip.TypeIR:
		return delivery{
			subject: fmt.Sprintf("New Incident Report Logged: %s", created.SlipID),
			body:    m.slipBody(created),
			to:      dedupe(m.irRecipients),
			cc:      dedupe([]string{created.CreatedBy.Email}),
		}
	case slip.TypeCC:
		return delivery{
			subject: fmt.Sprintf("Customer Complaint Logged: %s", created.SlipID),
			body:    m.slipBody(created),
			to:      dedupe(m.ccRecipients),
			cc:      dedupe([]string{created.CreatedBy.Email}),
		}
	default:
		subject := fmt.Sprintf("Dispatch Slip %s - Order %s %s", created.SlipID, created.OrderNumber, created.Status)
		return delivery{
			subject: subject,
			body:    m.slipBody(created),
			to:      dedupe([]string{created.CreatedBy.Email}),
		}
	}
}

func (m *mailService) slipBody(created *slip.Slip) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", created.Type.Label(), created.SlipID)
	fmt.Fprintf(&b, "Order: %s\n", created.OrderNumber)
	fmt.Fprintf(&b, "Status: %s\n", created.Status)
	fmt.Fprintf(&b, "Submitted by: %s <%s>\n", created.CreatedBy.Name, created.CreatedBy.Email)
	switch {
	case created.QC != nil && created.QC.IsRetroactive:
		fmt.Fprintf(&b, "Retroactive QC slip. Review comments: %s\n", created.QC.Comments)
	case created.QC != nil:
		fmt.Fprintf(&b, "Actioned lines: %d\n", len(created.QC.ActionedLines))
	case created.IR != nil:
		fmt.Fprintf(&b, "Nature of complaint: %s\n", created.IR.NatureOfComplaint)
	case created.CC != nil:
		fmt.Fprintf(&b, "Complaint details: %s\n", created.CC.ComplaintDetails)
	}
	return b.String()
}

// send applies test-mode resolution and hands the message to the transport.
func (m *mailService) send(ctx context.Context, d delivery) error {
	testing, err := m.settings.EmailTestingEnabled(ctx)
	if err != nil {
		// The toggle read failing must not let test traffic reach real
		// recipients; the store default is ON and so is ours.
		m.logger.Warn("email settings read failed; assuming testing mode",
			slog.String("error", err.Error()))
		testing = true
	}

	resolved, err := resolve(d, testing, m.testRecipient)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(resolved.to...); err != nil {
		return fmt.Errorf("set recipients: %w", err)
	}
	if len(resolved.cc) > 0 {
		if err := msg.Cc(resolved.cc...); err != nil {
			return fmt.Errorf("set cc: %w", err)
		}
	}
	msg.Subject(resolved.subject)
	msg.SetBodyString(mail.TypeTextPlain, resolved.body)

	if err := m.transport.Send(ctx, msg); err != nil {
		return fmt.Errorf("send %q: %w", resolved.subject, err)
	}
	m.logger.Info("notification sent",
		slog.String("subject", resolved.subject),
		slog.String("to", strings.Join(resolved.to, ", ")))
	return nil
}

// resolve substitutes the test recipient when testing mode is on, appending
// the original recipient list to the body for traceability.
func resolve(d delivery, testing bool, testRecipient string) (delivery, error) {
	if testing {
		if testRecipient == "" {
			return delivery{}, fmt.Errorf("testing mode is on but no test recipient is configured")
		}
		originalCc := "None"
		if len(d.cc) > 0 {
			originalCc = strings.Join(d.cc, ", ")
		}
		d.body += fmt.Sprintf(
			"\n--- TEST MODE ACTIVE ---\nOriginal To: %s\nOriginal Cc: %s\n",
			strings.Join(d.to, ", "), originalCc,
		)
		d.to = []string{testRecipient}
		d.cc = nil
		d.subject = "[TEST MODE] " + d.subject
	}
	if len(d.to) == 0 {
		return delivery{}, fmt.Errorf("no recipients for %q", d.subject)
	}
	return d, nil
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
