package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/erayozt/hakedis-sub001/internal/apperrors"
	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	portssvc "github.com/erayozt/hakedis-sub001/internal/core/ports/services"
	"github.com/erayozt/hakedis-sub001/internal/utils"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02"

// Renderer writes statements and approval lists as documents. It only formats
// the figures it is handed.
type Renderer struct {
	currency string
	places   int32
}

// NewRenderer creates a renderer that prints amounts with places decimals.
func NewRenderer(currency string, places int32) *Renderer {
	return &Renderer{currency: currency, places: places}
}

var _ portssvc.StatementRenderer = (*Renderer)(nil)

// RenderStatement renders totals in the requested format.
func (r *Renderer) RenderStatement(totals domain.StatementTotals, format domain.ExportFormat) ([]byte, error) {
	switch format {
	case domain.FormatPDF:
		return r.statementPDF(totals)
	case domain.FormatXLSX:
		return r.statementXLSX(totals)
	case domain.FormatCSV:
		return r.statementCSV(totals)
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q", apperrors.ErrValidation, format)
	}
}

type summaryLine struct {
	label string
	value string
}

func (r *Renderer) money(d decimal.Decimal) string {
	return utils.FormatWithCurrency(d, r.places, r.currency)
}

func (r *Renderer) summary(t domain.StatementTotals) []summaryLine {
	return []summaryLine{
		{"Merchant", t.MerchantID},
		{"Period", t.PeriodStart.Format(dateLayout) + " - " + t.PeriodEnd.Format(dateLayout)},
		{"Volume", r.money(t.Volume)},
		{"Refund volume", r.money(t.RefundVolume)},
		{"Net volume", r.money(t.NetVolume)},
		{"Commission rate", utils.FormatPercent(t.CommissionRate, 2)},
		{"Commission", r.money(t.Commission)},
		{"Refund commission", r.money(t.RefundCommission)},
		{"Net commission", r.money(t.NetCommission)},
		{"Net settlement", r.money(t.NetSettlementAmount)},
		{"Package fee", r.money(t.PackageFee)},
		{"Other fees", r.money(t.OtherFees)},
		{"Total payable", r.money(t.TotalPayable)},
		{"Average ticket", r.money(t.AverageTicket)},
		{"Refund ratio", utils.FormatPercent(t.RefundRatio, 2)},
		{"Effective rate", utils.FormatPercent(t.EffectiveRate, 2)},
	}
}

var rowHeader = []string{"Category", "Count", "Volume", "Commission", "Net amount"}

func (r *Renderer) rowCells(row domain.StatementRow) []string {
	return []string{
		string(row.Category),
		strconv.Itoa(row.Count),
		utils.FormatWithPrecision(row.Volume, r.places),
		utils.FormatWithPrecision(row.Commission, r.places),
		utils.FormatWithPrecision(row.NetAmount, r.places),
	}
}

func (r *Renderer) statementPDF(t domain.StatementTotals) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Settlement Statement")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	for _, line := range r.summary(t) {
		pdf.CellFormat(50, 6, line.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, line.value, "", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	widths := []float64{50, 20, 40, 40, 40}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range rowHeader {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, row := range t.Rows {
		for i, cell := range r.rowCells(row) {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write statement pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) statementXLSX(t domain.StatementTotals) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet, rowsSheet := "summary", "rows"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to name summary sheet: %w", err)
	}
	if _, err := f.NewSheet(rowsSheet); err != nil {
		return nil, fmt.Errorf("failed to create rows sheet: %w", err)
	}

	for i, line := range r.summary(t) {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &[]any{line.label, line.value}); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	header := make([]any, len(rowHeader))
	for i, h := range rowHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(rowsSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write rows header: %w", err)
	}
	for i, row := range t.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{
			string(row.Category),
			row.Count,
			row.Volume.InexactFloat64(),
			row.Commission.InexactFloat64(),
			row.NetAmount.InexactFloat64(),
		}
		if err := f.SetSheetRow(rowsSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write statement row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write statement xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) statementCSV(t domain.StatementTotals) ([]byte, error) {
	records := [][]string{rowHeader}
	for _, row := range t.Rows {
		records = append(records, r.rowCells(row))
	}
	records = append(records, []string{})
	for _, line := range r.summary(t) {
		records = append(records, []string{line.label, line.value})
	}
	return writeCSV(records)
}

// RenderApprovals renders approvals as CSV in the given order.
func (r *Renderer) RenderApprovals(approvals []domain.SettlementApproval) ([]byte, error) {
	records := [][]string{{"approval_id", "merchant_id", "cycle", "approved_amount", "currency", "approved_at", "approved_by"}}
	for _, a := range approvals {
		records = append(records, []string{
			a.ApprovalID,
			a.MerchantID,
			strconv.Itoa(a.Cycle),
			utils.FormatWithPrecision(a.ApprovedAmount, r.places),
			r.currency,
			a.ApprovedAt.UTC().Format(time.RFC3339),
			a.ApprovedBy,
		})
	}
	return writeCSV(records)
}

func writeCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}
