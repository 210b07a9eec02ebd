package report

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/Freeeeeet/tutor_dashboard/internal/dashboard"
	"github.com/Freeeeeet/tutor_dashboard/internal/formatting"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleRegular FontStyle = ""
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	chartWidth       = 1200
	chartHeight      = 700
	chartPaddingTop  = 110
	chartPaddingBot  = 90
	chartPaddingSide = 80
	barGapRatio      = 0.25
	barBorderRadius  = 8.0
	shadowOffset     = 3.0
	gridLines        = 4

	defaultFirstHour = 8
	defaultLastHour  = 20
)

// Константы шрифтов
const (
	titleFontSize    = 34.0
	subtitleFontSize = 20.0
	labelFontSize    = 20.0
	valueFontSize    = 18.0
)

// Цветовая схема
var (
	bgColor       = color.RGBA{245, 246, 248, 255}
	textColor     = color.RGBA{80, 85, 90, 220}
	subtitleColor = color.RGBA{120, 125, 130, 220}
	gridColor     = color.NRGBA{200, 200, 200, 255}
	barColor      = color.RGBA{99, 102, 241, 230}
	peakBarColor  = color.RGBA{236, 72, 153, 230}
	barShadow     = color.RGBA{0, 0, 0, 20}
	emptyColor    = color.RGBA{158, 158, 158, 200}
)

var (
	fontsOnce   sync.Once
	cachedFonts map[FontStyle]*opentype.Font
)

// bar один столбец гистограммы
type bar struct {
	label string
	value int
}

// loadFont загружает Go шрифт указанного стиля или использует basicfont как fallback
func loadFont(dc *gg.Context, size float64, style FontStyle) {
	fontsOnce.Do(func() {
		cachedFonts = make(map[FontStyle]*opentype.Font)
		for s, data := range map[FontStyle][]byte{FontStyleRegular: goregular.TTF, FontStyleBold: gobold.TTF} {
			if parsed, err := opentype.Parse(data); err == nil {
				cachedFonts[s] = parsed
			}
		}
	})

	parsed, ok := cachedFonts[style]
	if !ok {
		dc.SetFontFace(basicfont.Face7x13)
		return
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		dc.SetFontFace(basicfont.Face7x13)
		return
	}
	dc.SetFontFace(face)
}

// WeekdayChart рисует гистограмму занятий по дням недели (с понедельника)
func WeekdayChart(snapshot *dashboard.Snapshot) ([]byte, error) {
	counts := make(map[int]int, len(snapshot.WeekdayStats))
	for _, stat := range snapshot.WeekdayStats {
		counts[stat.Weekday] = stat.LessonsCount
	}

	bars := make([]bar, 0, len(formatting.MondayFirst))
	for _, weekday := range formatting.MondayFirst {
		bars = append(bars, bar{label: formatting.GetWeekdayShortName(weekday), value: counts[weekday]})
	}

	return renderBarChart("Занятия по дням недели", chartSubtitle(snapshot), bars)
}

// HourChart рисует гистограмму занятий по часу начала.
// Диапазон часов расширяется до рабочего дня 08:00-20:00.
func HourChart(snapshot *dashboard.Snapshot) ([]byte, error) {
	first, last := defaultFirstHour, defaultLastHour
	counts := make(map[int]int, len(snapshot.TimeSlotStats))
	for _, stat := range snapshot.TimeSlotStats {
		counts[stat.Hour] = stat.LessonsCount
		first = min(first, stat.Hour)
		last = max(last, stat.Hour)
	}

	bars := make([]bar, 0, last-first+1)
	for hour := first; hour <= last; hour++ {
		bars = append(bars, bar{label: fmt.Sprintf("%02d", hour), value: counts[hour]})
	}

	return renderBarChart("Занятия по времени начала", chartSubtitle(snapshot), bars)
}

func chartSubtitle(snapshot *dashboard.Snapshot) string {
	total := snapshot.Stats.CompletedLessons + snapshot.Stats.UpcomingLessons
	return fmt.Sprintf("%s · %d %s · %s",
		snapshot.Teacher.DisplayName(),
		total, formatting.PluralizeLessons(total),
		formatting.FormatDate(snapshot.GeneratedAt))
}

func renderBarChart(title, subtitle string, bars []bar) ([]byte, error) {
	dc := createCanvas()
	drawHeader(dc, title, subtitle)

	peak := 0
	for _, b := range bars {
		peak = max(peak, b.value)
	}

	plotTop := float64(chartPaddingTop)
	plotBottom := float64(chartHeight - chartPaddingBot)
	plotLeft := float64(chartPaddingSide)
	plotRight := float64(chartWidth - chartPaddingSide/2)

	drawGrid(dc, peak, plotLeft, plotRight, plotTop, plotBottom)

	if peak == 0 {
		loadFont(dc, subtitleFontSize, FontStyleRegular)
		dc.SetColor(emptyColor)
		dc.DrawStringAnchored("Пока нет занятий", (plotLeft+plotRight)/2, (plotTop+plotBottom)/2, 0.5, 0.5)
	}

	slot := (plotRight - plotLeft) / float64(len(bars))
	barWidth := slot * (1 - barGapRatio)
	for i, b := range bars {
		x := plotLeft + float64(i)*slot + (slot-barWidth)/2
		drawBar(dc, b, x, barWidth, peak, plotTop, plotBottom)
	}

	return encodeImage(dc)
}

func createCanvas() *gg.Context {
	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

func drawHeader(dc *gg.Context, title, subtitle string) {
	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, chartWidth/2, 45, 0.5, 0.5)

	loadFont(dc, subtitleFontSize, FontStyleRegular)
	dc.SetColor(subtitleColor)
	dc.DrawStringAnchored(subtitle, chartWidth/2, 80, 0.5, 0.5)
}

// drawGrid рисует горизонтальные линии сетки с подписями значений
func drawGrid(dc *gg.Context, peak int, left, right, top, bottom float64) {
	loadFont(dc, valueFontSize, FontStyleRegular)
	dc.SetLineWidth(1)

	for i := 0; i <= gridLines; i++ {
		y := bottom - (bottom-top)*float64(i)/gridLines
		dc.SetColor(gridColor)
		dc.DrawLine(left, y, right, y)
		dc.Stroke()

		if peak > 0 {
			value := float64(peak) * float64(i) / gridLines
			dc.SetColor(subtitleColor)
			dc.DrawStringAnchored(fmt.Sprintf("%.0f", value), left-12, y, 1, 0.5)
		}
	}
}

func drawBar(dc *gg.Context, b bar, x, width float64, peak int, top, bottom float64) {
	loadFont(dc, labelFontSize, FontStyleRegular)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(b.label, x+width/2, bottom+28, 0.5, 0.5)

	if b.value == 0 || peak == 0 {
		return
	}

	height := (bottom - top) * float64(b.value) / float64(peak)
	y := bottom - height

	// Тень
	dc.SetColor(barShadow)
	dc.DrawRoundedRectangle(x+shadowOffset, y+shadowOffset, width, height, barBorderRadius)
	dc.Fill()

	fill := barColor
	if b.value == peak {
		fill = peakBarColor
	}
	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x, y, width, height, barBorderRadius)
	dc.Fill()

	loadFont(dc, valueFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(fmt.Sprintf("%d", b.value), x+width/2, y-14, 0.5, 0.5)
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
