package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/alexanderramin/tratlus/internal/domain"
)

const (
	pdfMargin   = 20.0
	qrSizeMM    = 35.0
	qrPixels    = 256
	qrImageName = "calendar-qr"
)

type rgb struct{ r, g, b int }

var (
	colorTitle  = rgb{146, 64, 14}
	colorMuted  = rgb{120, 113, 108}
	colorRule   = rgb{217, 119, 6}
	colorHeader = rgb{120, 53, 15}
	colorTime   = rgb{8, 145, 178}
	colorCost   = rgb{21, 128, 61}
)

// WritePDF renders it as an A4 document: title, dates, each day's
// activities with costs, the total, and a QR code of the calendar link.
func WritePDF(w io.Writer, it *domain.TravelItinerary) error {
	pdf, err := buildPDF(it, true)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func buildPDF(it *domain.TravelItinerary, compress bool) (*gofpdf.Fpdf, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(it.Destination+" Itinerary", true)
	pdf.SetCreator("Tratlus", true)

	// Core fonts are cp1252; accented place names need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	setColor := func(c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "", 8)
		setColor(colorMuted)
		pdf.CellFormat(0, 5, footer, "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin

	pdf.SetFont("Arial", "B", 24)
	setColor(colorTitle)
	pdf.CellFormat(0, 12, tr(it.Destination), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	setColor(colorMuted)
	pdf.CellFormat(0, 8, fmt.Sprintf("%s - %s", it.TripDates.StartDate, it.TripDates.EndDate), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	rule(pdf, contentW)

	for _, day := range it.Days {
		pdf.SetFont("Arial", "B", 14)
		setColor(colorHeader)
		pdf.CellFormat(0, 8, fmt.Sprintf("Day %d - %s", day.DayNumber, day.Date), "", 1, "L", false, 0, "")

		for _, a := range day.Activities {
			pdf.SetFont("Arial", "", 11)
			setColor(colorTime)
			pdf.CellFormat(35, 6, tr(a.Time), "", 0, "L", false, 0, "")
			setColor(colorHeader)
			pdf.CellFormat(contentW-60, 6, tr(a.Title), "", 0, "L", false, 0, "")
			setColor(colorCost)
			pdf.CellFormat(25, 6, money(a.EstimatedCost), "", 1, "R", false, 0, "")

			pdf.SetFont("Arial", "", 9)
			if a.Location != "" {
				setColor(colorMuted)
				pdf.SetX(pdfMargin + 35)
				pdf.CellFormat(contentW-35, 5, tr(a.Location), "", 1, "L", false, 0, "")
			}
			if a.Description != "" {
				setColor(colorTitle)
				pdf.SetX(pdfMargin + 35)
				pdf.MultiCell(contentW-35, 4.5, tr(a.Description), "", "L", false)
			}
			if a.WebsiteURL != "" {
				setColor(colorTime)
				pdf.SetX(pdfMargin + 35)
				pdf.CellFormat(contentW-35, 5, "Visit Website", "", 1, "L", false, 0, a.WebsiteURL)
			}
			pdf.Ln(2)
		}
		pdf.Ln(4)
	}

	pdf.Ln(4)
	rule(pdf, contentW)
	pdf.SetFont("Arial", "B", 14)
	setColor(colorHeader)
	pdf.CellFormat(contentW/2, 8, "Total Estimated Cost:", "", 0, "L", false, 0, "")
	setColor(colorCost)
	pdf.CellFormat(contentW/2, 8, money(it.TotalEstimatedCost), "", 1, "R", false, 0, "")

	if err := addCalendarQR(pdf, it); err != nil {
		return nil, err
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return pdf, nil
}

func rule(pdf *gofpdf.Fpdf, width float64) {
	pdf.SetDrawColor(colorRule.r, colorRule.g, colorRule.b)
	y := pdf.GetY()
	pdf.Line(pdfMargin, y, pdfMargin+width, y)
	pdf.Ln(6)
}

// addCalendarQR places a QR code of the calendar link below the total. Long
// itineraries overflow the QR capacity, in which case the link drops the
// per-day details.
func addCalendarQR(pdf *gofpdf.Fpdf, it *domain.TravelItinerary) error {
	png, err := qrcode.Encode(calendarURL(it, true), qrcode.Medium, qrPixels)
	if err != nil {
		png, err = qrcode.Encode(calendarURL(it, false), qrcode.Medium, qrPixels)
		if err != nil {
			return fmt.Errorf("encoding calendar qr: %w", err)
		}
	}

	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+qrSizeMM+15 > pageH-pdfMargin {
		pdf.AddPage()
	}
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(colorMuted.r, colorMuted.g, colorMuted.b)
	pdf.CellFormat(0, 5, "Scan to add this trip to Google Calendar", "", 1, "L", false, 0, "")

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(qrImageName, opts, bytes.NewReader(png))
	pdf.ImageOptions(qrImageName, pdfMargin, pdf.GetY()+2, qrSizeMM, qrSizeMM, false, opts, 0, CalendarURL(it))
	return nil
}
