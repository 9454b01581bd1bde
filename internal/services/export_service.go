package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"image/color"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/kisanmitra/farm-analytics-api/internal/models"
	"github.com/xuri/excelize/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SummaryRow is one farmer's line in a batch summary export. Err is set when
// the farmer's profile could not be processed; Analytics is nil then.
type SummaryRow struct {
	FarmerID  uint
	Source    string
	Analytics *models.AnalyticsResult
	Err       string
}

var summaryHeader = []string{
	"farmer_id", "source", "total_land_hectares", "active_crops", "crop_diversity",
	"total_estimated_yield", "total_estimated_revenue", "overall_efficiency",
	"soil_health_score", "infrastructure_score", "data_quality_score",
	"data_quality_level", "error",
}

type ExportService struct {
	analyticsSvc *AnalyticsService
	now          func() time.Time
}

func NewExportService(analyticsSvc *AnalyticsService) *ExportService {
	return &ExportService{analyticsSvc: analyticsSvc, now: time.Now}
}

// ExportFarmer resolves a farmer's analytics and renders them in format
func (s *ExportService) ExportFarmer(ctx context.Context, farmerID uint, format string) ([]byte, string, error) {
	if !isExportFormat(format) {
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	report, err := s.analyticsSvc.GetFarmerAnalytics(ctx, farmerID)
	if err != nil {
		return nil, "", err
	}
	return s.Render(ctx, format, farmerID, report)
}

// Render writes one farmer's report in the requested format
func (s *ExportService) Render(ctx context.Context, format string, farmerID uint, report *AnalyticsReport) ([]byte, string, error) {
	switch format {
	case models.ExportFormatCSV:
		return s.ExportCSV(ctx, farmerID, report)
	case models.ExportFormatXLSX:
		return s.ExportXLSX(ctx, farmerID, report)
	case models.ExportFormatPDF:
		return s.ExportPDF(ctx, farmerID, report)
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func (s *ExportService) ExportCSV(ctx context.Context, farmerID uint, report *AnalyticsReport) ([]byte, string, error) {
	res := report.Analytics
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Farm Analytics Report", s.now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{"Farmer", strconv.FormatUint(uint64(farmerID), 10)})
	_ = writer.Write([]string{"Source", report.Source})
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Overview"})
	_ = writer.Write([]string{"Metric", "Value"})
	for _, row := range overviewRows(res) {
		_ = writer.Write([]string{row[0], row[1]})
	}
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Crop Estimates"})
	_ = writer.Write([]string{"Crop", "Area (ha)", "Area Imputed", "Yield", "Unit", "Revenue"})
	for _, c := range res.YieldEstimates.CropWiseEstimates {
		_ = writer.Write([]string{
			c.CropName,
			fmt.Sprintf("%.4f", c.AreaHectares),
			strconv.FormatBool(c.AreaImputed),
			fmt.Sprintf("%.3f", c.EstimatedYield),
			c.YieldUnit,
			fmt.Sprintf("%.2f", c.EstimatedRevenue),
		})
	}
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Recommendations"})
	_ = writer.Write([]string{"Priority", "Title", "Action"})
	for _, r := range res.Recommendations {
		_ = writer.Write([]string{r.Priority, r.Title, r.Action})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), s.filename(fmt.Sprintf("farm_analytics_%d", farmerID), models.ExportFormatCSV), nil
}

func (s *ExportService) ExportXLSX(ctx context.Context, farmerID uint, report *AnalyticsReport) ([]byte, string, error) {
	res := report.Analytics
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Analytics"
	_ = f.SetSheetName("Sheet1", sheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCEDC8"}, Pattern: 1},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	_ = f.SetCellValue(sheet, "A1", "Farm Analytics Report")
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	_ = f.SetCellValue(sheet, "A2", "Farmer")
	_ = f.SetCellValue(sheet, "B2", farmerID)
	_ = f.SetCellValue(sheet, "A3", "Source")
	_ = f.SetCellValue(sheet, "B3", report.Source)

	row := 5
	_ = f.SetSheetRow(sheet, cell(1, row), &[]interface{}{"Metric", "Value"})
	_ = f.SetCellStyle(sheet, cell(1, row), cell(2, row), headerStyle)
	for _, m := range overviewRows(res) {
		row++
		_ = f.SetSheetRow(sheet, cell(1, row), &[]interface{}{m[0], m[1]})
	}

	crops := "Crops"
	_, _ = f.NewSheet(crops)
	_ = f.SetSheetRow(crops, "A1", &[]interface{}{"Crop", "Area (ha)", "Area Imputed", "Yield", "Unit", "Price", "Revenue"})
	_ = f.SetCellStyle(crops, "A1", "G1", headerStyle)
	for i, c := range res.YieldEstimates.CropWiseEstimates {
		_ = f.SetSheetRow(crops, cell(1, i+2), &[]interface{}{
			c.CropName, c.AreaHectares, c.AreaImputed, c.EstimatedYield, c.YieldUnit, c.PricePerUnit, c.EstimatedRevenue,
		})
	}

	recs := "Recommendations"
	_, _ = f.NewSheet(recs)
	_ = f.SetSheetRow(recs, "A1", &[]interface{}{"Type", "Priority", "Title", "Description", "Action"})
	_ = f.SetCellStyle(recs, "A1", "E1", headerStyle)
	for i, r := range res.Recommendations {
		_ = f.SetSheetRow(recs, cell(1, i+2), &[]interface{}{r.Type, r.Priority, r.Title, r.Description, r.Action})
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), s.filename(fmt.Sprintf("farm_analytics_%d", farmerID), models.ExportFormatXLSX), nil
}

func (s *ExportService) ExportPDF(ctx context.Context, farmerID uint, report *AnalyticsReport) ([]byte, string, error) {
	res := report.Analytics
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Farm Analytics Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 8, fmt.Sprintf("Farmer %d - source %s - %s", farmerID, report.Source, s.now().Format("2006-01-02")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Overview")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	for _, m := range overviewRows(res) {
		pdf.Cell(70, 6, m[0]+":")
		pdf.Cell(40, 6, m[1])
		pdf.Ln(6)
	}
	pdf.Ln(6)

	estimates := res.YieldEstimates.CropWiseEstimates
	if len(estimates) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(40, 10, "Crop Estimates")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		for _, c := range estimates {
			pdf.Cell(50, 6, c.CropName)
			pdf.Cell(40, 6, fmt.Sprintf("%.2f ha", c.AreaHectares))
			pdf.Cell(40, 6, fmt.Sprintf("%.2f %s", c.EstimatedYield, c.YieldUnit))
			pdf.Cell(40, 6, fmt.Sprintf("INR %.0f", c.EstimatedRevenue))
			pdf.Ln(6)
		}
		pdf.Ln(4)

		chart, err := revenueChart(estimates)
		if err != nil {
			return nil, "", fmt.Errorf("failed to render crop chart: %w", err)
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("crop-revenue", opts, bytes.NewReader(chart))
		pdf.ImageOptions("crop-revenue", pdf.GetX(), pdf.GetY(), 170, 85, true, opts, 0, "")
		pdf.Ln(4)
	}

	if len(res.Recommendations) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(40, 10, "Recommendations")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		for _, r := range res.Recommendations {
			pdf.MultiCell(0, 6, fmt.Sprintf("[%s] %s: %s", r.Priority, r.Title, r.Action), "", "L", false)
		}
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), s.filename(fmt.Sprintf("farm_analytics_%d", farmerID), models.ExportFormatPDF), nil
}

// ExportSummary renders one line per farmer for a batch export
func (s *ExportService) ExportSummary(ctx context.Context, format string, rows []SummaryRow) ([]byte, string, error) {
	name := "farm_analytics_summary"
	switch format {
	case models.ExportFormatCSV:
		buf := new(bytes.Buffer)
		writer := csv.NewWriter(buf)
		_ = writer.Write(summaryHeader)
		for _, r := range rows {
			_ = writer.Write(summaryRecord(r))
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), s.filename(name, format), nil

	case models.ExportFormatXLSX:
		f := excelize.NewFile()
		defer f.Close()
		sheet := "Summary"
		_ = f.SetSheetName("Sheet1", sheet)
		header := make([]interface{}, len(summaryHeader))
		for i, h := range summaryHeader {
			header[i] = h
		}
		_ = f.SetSheetRow(sheet, "A1", &header)
		for i, r := range rows {
			_ = f.SetSheetRow(sheet, cell(1, i+2), &[]interface{}{
				r.FarmerID, r.Source,
				pick(r, func(a *models.AnalyticsResult) interface{} { return a.FarmMetrics.TotalLandHectares }),
				pick(r, func(a *models.AnalyticsResult) interface{} { return a.FarmMetrics.ActiveCrops }),
				pick(r, func(a *models.AnalyticsResult) interface{} { return a.CropAnalytics.CropDiversity }),
				pick(r, func(a *models.AnalyticsResult) interface{} { return a.YieldEstimates.TotalEstimatedYield }),
				pick(r, func(a *models.AnalyticsResult) interface{} { return a.YieldEstimates.TotalEstimatedRevenue }),
				pick(r, func(a *models.AnalyticsResult) interface{} { return a.EfficiencyMetrics.OverallEfficiency }),
				pick(r, func(a *models.AnalyticsResult) interface{} { return a.SoilAnalysis.HealthScore }),
				pick(r, func(a *models.AnalyticsResult) interface{} { return a.InfrastructureScore.Score }),
				pick(r, func(a *models.AnalyticsResult) interface{} { return a.DataQuality.Score }),
				pick(r, func(a *models.AnalyticsResult) interface{} { return a.DataQuality.Level }),
				r.Err,
			})
		}
		buf, err := f.WriteToBuffer()
		if err != nil {
			return nil, "", err
		}
		return buf.Bytes(), s.filename(name, format), nil

	case models.ExportFormatPDF:
		pdf := gofpdf.New("L", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(40, 10, "Farm Analytics Summary")
		pdf.Ln(10)
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(40, 8, fmt.Sprintf("%d farmers - %s", len(rows), s.now().Format("2006-01-02 15:04")))
		pdf.Ln(10)

		cols := []string{"Farmer", "Land (ha)", "Crops", "Yield", "Revenue (INR)", "Efficiency", "Infra", "Quality"}
		widths := []float64{25, 30, 20, 35, 45, 30, 25, 35}
		pdf.SetFont("Arial", "B", 10)
		for i, c := range cols {
			pdf.CellFormat(widths[i], 7, c, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
		for _, r := range rows {
			values := []string{strconv.FormatUint(uint64(r.FarmerID), 10), "-", "-", "-", "-", "-", "-", "error"}
			if a := r.Analytics; a != nil {
				values = []string{
					values[0],
					fmt.Sprintf("%.2f", a.FarmMetrics.TotalLandHectares),
					strconv.Itoa(a.FarmMetrics.ActiveCrops),
					fmt.Sprintf("%.2f", a.YieldEstimates.TotalEstimatedYield),
					fmt.Sprintf("%.0f", a.YieldEstimates.TotalEstimatedRevenue),
					strconv.Itoa(a.EfficiencyMetrics.OverallEfficiency),
					strconv.Itoa(a.InfrastructureScore.Score),
					a.DataQuality.Level,
				}
			}
			for i, v := range values {
				pdf.CellFormat(widths[i], 6, v, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		buf := new(bytes.Buffer)
		if err := pdf.Output(buf); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), s.filename(name, format), nil

	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func (s *ExportService) filename(base, ext string) string {
	return fmt.Sprintf("%s_%s.%s", base, s.now().Format("2006-01-02"), ext)
}

// revenueChart draws estimated revenue per crop as a PNG bar chart
func revenueChart(estimates []models.CropYieldEstimate) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Estimated revenue by crop (INR)"
	p.Y.Label.Text = "Revenue"
	p.Y.Min = 0

	values := make(plotter.Values, len(estimates))
	labels := make([]string, len(estimates))
	for i, c := range estimates {
		values[i] = c.EstimatedRevenue
		labels[i] = c.CropName
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.Color = color.RGBA{R: 104, G: 159, B: 56, A: 255}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)

	w, err := p.WriterTo(6*vg.Inch, 3*vg.Inch, "png")
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if _, err := w.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func overviewRows(res *models.AnalyticsResult) [][2]string {
	return [][2]string{
		{"Total Land (ha)", fmt.Sprintf("%.2f", res.FarmMetrics.TotalLandHectares)},
		{"Active Crops", strconv.Itoa(res.FarmMetrics.ActiveCrops)},
		{"Crop Diversity", strconv.Itoa(res.CropAnalytics.CropDiversity)},
		{"Land Utilization (%)", fmt.Sprintf("%.1f", res.CropAnalytics.LandUtilization.UtilizationPercentage)},
		{"Estimated Yield", fmt.Sprintf("%.2f", res.YieldEstimates.TotalEstimatedYield)},
		{"Estimated Revenue (INR)", fmt.Sprintf("%.2f", res.YieldEstimates.TotalEstimatedRevenue)},
		{"Infrastructure Bonus (%)", strconv.Itoa(res.YieldEstimates.InfrastructureBonus)},
		{"Overall Efficiency", strconv.Itoa(res.EfficiencyMetrics.OverallEfficiency)},
		{"Soil Health", strconv.Itoa(res.SoilAnalysis.HealthScore)},
		{"Infrastructure Score", fmt.Sprintf("%d (%s)", res.InfrastructureScore.Score, res.InfrastructureScore.Level)},
		{"Data Quality", fmt.Sprintf("%d (%s)", res.DataQuality.Score, res.DataQuality.Level)},
	}
}

func summaryRecord(r SummaryRow) []string {
	id := strconv.FormatUint(uint64(r.FarmerID), 10)
	a := r.Analytics
	if a == nil {
		return []string{id, r.Source, "", "", "", "", "", "", "", "", "", "", r.Err}
	}
	return []string{
		id,
		r.Source,
		fmt.Sprintf("%.4f", a.FarmMetrics.TotalLandHectares),
		strconv.Itoa(a.FarmMetrics.ActiveCrops),
		strconv.Itoa(a.CropAnalytics.CropDiversity),
		fmt.Sprintf("%.3f", a.YieldEstimates.TotalEstimatedYield),
		fmt.Sprintf("%.2f", a.YieldEstimates.TotalEstimatedRevenue),
		strconv.Itoa(a.EfficiencyMetrics.OverallEfficiency),
		strconv.Itoa(a.SoilAnalysis.HealthScore),
		strconv.Itoa(a.InfrastructureScore.Score),
		strconv.Itoa(a.DataQuality.Score),
		a.DataQuality.Level,
		r.Err,
	}
}

func pick(r SummaryRow, get func(*models.AnalyticsResult) interface{}) interface{} {
	if r.Analytics == nil {
		return ""
	}
	return get(r.Analytics)
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func isExportFormat(format string) bool {
	switch format {
	case models.ExportFormatCSV, models.ExportFormatXLSX, models.ExportFormatPDF:
		return true
	}
	return false
}
