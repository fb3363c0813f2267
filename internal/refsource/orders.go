package refsource

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// OrderLine is one customer order line mapped to its semantic fields.
type OrderLine struct {
	LineNumber      string
	PartID          string
	PartDescription string
	MiscReference   string
	OrderQty        float64
}

// OrderLines reads the line items for one customer order. Misc_Reference takes
// precedence over the part description when present. Result columns are mapped
// by name rather than position so schema-tolerant reads survive column
// reordering.
func (s *Source) OrderLines(ctx context.Context, orderID string) ([]OrderLine, error) {
	query := `SELECT
        CUST_ORDER_LINE.LINE_NO AS LineNumber,
        COALESCE(NULLIF(TRIM(CUST_ORDER_LINE.MISC_REFERENCE), ''), TRIM(PART.DESCRIPTION)) AS PartDescription,
        TRIM(CUST_ORDER_LINE.PART_ID) AS PartID,
        TRIM(CUST_ORDER_LINE.MISC_REFERENCE) AS MiscReference,
        CUST_ORDER_LINE.ORDER_QTY AS OrderQty
    FROM CUST_ORDER_LINE
    LEFT JOIN PART ON PART.ID = CUST_ORDER_LINE.PART_ID
    WHERE CUST_ORDER_LINE.CUST_ORDER_ID = ` + s.placeholder(1)

	queryCtx, cancel := s.bound(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(queryCtx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order lines for %s: %w", orderID, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("order line columns: %w", err)
	}

	var lines []OrderLine
	for rows.Next() {
		values := make([]any, len(columns))
		for i := range values {
			values[i] = new(any)
		}
		if err := rows.Scan(values...); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}

		record := make(map[string]any, len(columns))
		for i, column := range columns {
			record[strings.ToLower(column)] = *(values[i].(*any))
		}

		lines = append(lines, OrderLine{
			LineNumber:      asString(record["linenumber"]),
			PartID:          asString(record["partid"]),
			PartDescription: asString(record["partdescription"]),
			MiscReference:   asString(record["miscreference"]),
			OrderQty:        asFloat(record["orderqty"]),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order lines: %w", err)
	}
	return lines, nil
}

func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []byte:
		return strings.TrimSpace(string(v))
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func asFloat(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case int64:
		return float64(v)
	case []byte:
		parsed, _ := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		return parsed
	case string:
		parsed, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return parsed
	default:
		return 0
	}
}
