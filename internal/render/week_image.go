// Package render draws schedule images sent to chat.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"github.com/pluggkompis/pluggkompis_bot/internal/availability"
	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/service"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type FontStyle string

const (
	FontStyleRegular FontStyle = ""
	FontStyleMedium  FontStyle = "medium"
	FontStyleBold    FontStyle = "bold"
)

const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 100
	leftLabelsWidth  = 80
	legendWidth      = 140
	dayPaddingX      = 8
	minSlotHeight    = 8.0
	slotBorderRadius = 6.0
	shadowOffset     = 3.0
	hourPaddingTop   = 1
	hourPaddingBot   = 1
	defaultMinHour   = 14
	defaultMaxHour   = 19
)

const (
	titleFontSize      = 25.0
	dayFontSize        = 24.0
	hourLabelFontSize  = 18.0
	slotTimeFontSize   = 17.0
	slotLabelFontSize  = 14.0
	legendItemFontSize = 13.0
)

var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	hourLabelColor   = color.RGBA{110, 115, 120, 200}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{255, 205, 0, 90}
	evenDayColor     = color.NRGBA{240, 240, 240, 255}
	oddDayColor      = color.NRGBA{225, 225, 225, 255}
	currentTimeColor = color.NRGBA{255, 80, 80, 200}

	slotAmpleColor     = color.RGBA{133, 193, 85, 220}
	slotLimitedColor   = color.RGBA{245, 190, 80, 230}
	slotFullColor      = color.RGBA{235, 120, 120, 230}
	slotCancelledColor = color.RGBA{158, 158, 158, 200}
	slotTextColor      = color.RGBA{20, 24, 28, 230}
	slotShadowColor    = color.RGBA{0, 0, 0, 20}

	legendItemColor = color.RGBA{70, 74, 78, 220}
)

type hourRange struct {
	start int
	end   int
	total int
}

var (
	fontsMu     sync.Mutex
	cachedFonts = make(map[FontStyle]*opentype.Font)
)

func fontData(style FontStyle) []byte {
	switch style {
	case FontStyleBold:
		return gobold.TTF
	case FontStyleMedium:
		return gomedium.TTF
	default:
		return goregular.TTF
	}
}

// loadFont sets a Go font face of the given size, falling back to basicfont.
func loadFont(dc *gg.Context, size float64, style FontStyle) {
	fontsMu.Lock()
	parsed, ok := cachedFonts[style]
	if !ok {
		f, err := opentype.Parse(fontData(style))
		if err == nil {
			cachedFonts[style] = f
			parsed = f
		}
	}
	fontsMu.Unlock()

	if parsed != nil {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// WeekImage draws the venue week as a PNG. Slots are colored by availability
// tier; cancelled slots are grey. now marks today and the current time when
// it falls inside the week.
func WeekImage(week *service.WeekView, now time.Time) ([]byte, error) {
	if week == nil {
		return nil, fmt.Errorf("render week: nil view")
	}

	today := calendar.DateOf(now)
	highlightToday := !today.Before(week.Days[0]) && !today.After(week.Days[6])

	byDay := week.ByDay()
	hours := calculateHourRange(week.Slots)

	dc := createCanvas()
	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / len(week.Days)
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, week)
	drawHourLabels(dc, hours, cellHeight)
	for i, day := range week.Days {
		x := float64(leftLabelsWidth + i*dayWidth)
		y := float64(headerHeight)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, i, highlightToday && day == today)
		drawDayHeader(dc, day, x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)
		for _, slot := range byDay[i] {
			drawSlot(dc, slot, x, y, dayWidth, hours, cellHeight)
		}
	}
	if highlightToday {
		drawCurrentTimeLine(dc, now, hours, cellHeight, dayWidth)
	}
	drawLegend(dc, dayWidth)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func calculateHourRange(slots []service.SlotView) hourRange {
	minHour, maxHour := 24, 0
	for _, s := range slots {
		startH := s.Slot.StartTime.Hour
		endH := s.Slot.EndTime.Hour
		if s.Slot.EndTime.Minute > 0 {
			endH++
		}
		minHour = min(minHour, startH)
		maxHour = max(maxHour, endH)
	}
	if minHour == 24 {
		minHour, maxHour = defaultMinHour, defaultMaxHour
	}

	start := max(minHour-hourPaddingTop, 0)
	end := min(maxHour+hourPaddingBot, 23)
	return hourRange{start: start, end: end, total: end - start + 1}
}

func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

func drawHeader(dc *gg.Context, week *service.WeekView) {
	first, last := week.Days[0], week.Days[6]
	title := week.Venue.Name + " · " + monthName(first.Month)
	if first.Month != last.Month {
		title += " - " + monthName(last.Month)
	}
	title += fmt.Sprintf(" %d", last.Year)

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	_, h := dc.MeasureString(title)
	dc.DrawStringAnchored(title, float64(leftLabelsWidth), float64(headerHeight)/8+h/2, 0, 0)
}

func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	loadFont(dc, hourLabelFontSize, FontStyleMedium)
	dc.SetColor(hourLabelColor)
	for i := 0; i < hours.total; i++ {
		y := float64(headerHeight) + float64(i)*cellHeight
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", hours.start+i), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	switch {
	case isToday:
		dc.SetColor(todayBgColor)
	case dayIndex%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

func drawDayHeader(dc *gg.Context, day calendar.Date, x, y float64, dayWidth int) {
	loadFont(dc, dayFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(day.Short(), x+float64(dayWidth)/2, y, 0.5, -1)
	dc.DrawStringAnchored(day.Weekday().SwedishShort(), x+float64(dayWidth)/2, y, 0.5, -0.2)
}

func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)
	for i := 0; i <= hours.total; i++ {
		hy := y + float64(i)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

func drawSlot(dc *gg.Context, slot service.SlotView, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	start := slot.Slot.StartTime.Hours()
	end := slot.Slot.EndTime.Hours()

	slotY := y + (start-float64(hours.start))*cellHeight
	slotHeight := max((end-start)*cellHeight, minSlotHeight)
	slotWidth := float64(dayWidth) - float64(dayPaddingX*2)
	fill := slotColor(slot.Availability)

	dc.SetColor(slotShadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, slotY+2+shadowOffset, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x+dayPaddingX, slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+dayPaddingX, slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Stroke()

	txtX := x + dayPaddingX + 8
	txtY := slotY + 18

	loadFont(dc, slotTimeFontSize, FontStyleMedium)
	dc.SetColor(slotTextColor)
	dc.DrawStringAnchored(slot.Slot.StartTime.String()+"-"+slot.Slot.EndTime.String(), txtX, txtY, 0, 0)

	if slotHeight > 30 {
		loadFont(dc, slotLabelFontSize, FontStyleRegular)
		dc.DrawStringAnchored(seatLabel(slot.Availability), txtX, txtY+18, 0, 0)
	}
	if slotHeight > 50 {
		if names := slot.Slot.SubjectNames(); len(names) > 0 {
			dc.DrawStringAnchored(ellipsize(names[0], 14), txtX, txtY+36, 0, 0)
		}
	}
}

func seatLabel(s availability.Summary) string {
	if s.Cancelled {
		return "Inställt"
	}
	return fmt.Sprintf("%d/%d lediga", s.Remaining, s.Capacity)
}

func slotColor(s availability.Summary) color.RGBA {
	if s.Cancelled {
		return slotCancelledColor
	}
	switch s.Tier {
	case availability.TierAmple:
		return slotAmpleColor
	case availability.TierLimited:
		return slotLimitedColor
	default:
		return slotFullColor
	}
}

func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

func drawCurrentTimeLine(dc *gg.Context, now time.Time, hours hourRange, cellHeight float64, dayWidth int) {
	current := float64(now.Hour()) + float64(now.Minute())/60
	if current < float64(hours.start) || current > float64(hours.end+1) {
		return
	}
	y := float64(headerHeight) + (current-float64(hours.start))*cellHeight
	dc.SetColor(currentTimeColor)
	dc.SetLineWidth(2)
	dc.DrawLine(float64(leftLabelsWidth), y, float64(leftLabelsWidth+7*dayWidth), y)
	dc.Stroke()
}

func drawLegend(dc *gg.Context, dayWidth int) {
	items := []struct {
		label string
		clr   color.Color
	}{
		{"Många platser", slotAmpleColor},
		{"Få platser", slotLimitedColor},
		{"Fullt", slotFullColor},
		{"Inställt", slotCancelledColor},
	}

	const boxW, boxH = 20.0, 14.0
	x := float64(leftLabelsWidth + 7*dayWidth + 10)
	y := float64(imageHeight) - 130.0

	loadFont(dc, legendItemFontSize, FontStyleRegular)
	for _, item := range items {
		dc.SetColor(item.clr)
		dc.DrawRoundedRectangle(x, y, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.label, x+boxW+8, y+boxH/2+1, 0, 0.2)
		y += boxH + 14
	}
}

func ellipsize(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

var swedishMonths = [...]string{
	"Januari", "Februari", "Mars", "April", "Maj", "Juni",
	"Juli", "Augusti", "September", "Oktober", "November", "December",
}

func monthName(m time.Month) string {
	return swedishMonths[m-1]
}
