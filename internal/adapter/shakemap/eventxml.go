// Package shakemap reads and writes the legacy ShakeMap 3.5 scenario input
// artifacts: event.xml, the map fault trace, and the input directory layout.
package shakemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/couchcryptid/quake-scenario-etl/internal/domain"
)

// earthquakeXML is the single <earthquake> element of event.xml. Numeric
// fields are kept as text so optional attributes can be told apart from
// zero values.
type earthquakeXML struct {
	XMLName         xml.Name `xml:"earthquake"`
	ID              string   `xml:"id,attr"`
	Lat             string   `xml:"lat,attr"`
	Lon             string   `xml:"lon,attr"`
	Mag             string   `xml:"mag,attr"`
	Year            string   `xml:"year,attr"`
	Month           string   `xml:"month,attr"`
	Day             string   `xml:"day,attr"`
	Hour            string   `xml:"hour,attr"`
	Minute          string   `xml:"minute,attr"`
	Second          string   `xml:"second,attr"`
	TimeZone        string   `xml:"timezone,attr"`
	Depth           string   `xml:"depth,attr"`
	LocString       string   `xml:"locstring,attr"`
	Description     *string  `xml:"description,attr"`
	Rake            *string  `xml:"rake,attr"`
	Type            *string  `xml:"type,attr"`
	Directivity     *string  `xml:"directivity,attr"`
	EventSourceCode *string  `xml:"eventsourcecode,attr"`
	Reference       *string  `xml:"reference,attr"`
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pythonBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func strPtr(s string) *string { return &s }

// WriteEventXML writes ev as an event.xml document.
func WriteEventXML(w io.Writer, ev domain.EventRecord) error {
	t := ev.Time.UTC()
	tz := ev.TimeZone
	if tz == "" {
		tz = "UTC"
	}
	doc := earthquakeXML{
		ID:              ev.ID,
		Lat:             formatFloat(ev.Hypocenter.Lat),
		Lon:             formatFloat(ev.Hypocenter.Lon),
		Mag:             formatFloat(ev.Magnitude),
		Year:            strconv.Itoa(t.Year()),
		Month:           strconv.Itoa(int(t.Month())),
		Day:             strconv.Itoa(t.Day()),
		Hour:            strconv.Itoa(t.Hour()),
		Minute:          strconv.Itoa(t.Minute()),
		Second:          strconv.Itoa(t.Second()),
		TimeZone:        tz,
		Depth:           formatFloat(ev.Hypocenter.Depth),
		LocString:       ev.LocString,
		Description:     strPtr(ev.Description),
		Type:            strPtr(ev.Mechanism),
		Directivity:     strPtr(pythonBool(ev.Directivity)),
		EventSourceCode: strPtr(ev.EventSourceCode),
	}
	if ev.Rake != nil {
		doc.Rake = strPtr(formatFloat(*ev.Rake))
	}
	if ev.Reference != "" {
		doc.Reference = strPtr(ev.Reference)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write event xml: %w", err)
	}
	enc := xml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write event xml: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write event xml: %w", err)
	}
	return nil
}

// ReadEventXML parses an event.xml document. Optional attributes default
// the way ShakeMap does: no rake is unknown, no type is ALL, no
// directivity is false.
func ReadEventXML(r io.Reader) (domain.EventRecord, error) {
	var doc earthquakeXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return domain.EventRecord{}, fmt.Errorf("read event xml: %w", err)
	}

	p := attrParser{}
	ev := domain.EventRecord{
		ID:        doc.ID,
		LocString: doc.LocString,
		Magnitude: p.float("mag", doc.Mag),
		Hypocenter: domain.Point{
			Lon:   p.float("lon", doc.Lon),
			Lat:   p.float("lat", doc.Lat),
			Depth: p.float("depth", doc.Depth),
		},
		TimeZone:  "UTC",
		Mechanism: domain.MechanismAll,
	}
	year := p.int("year", doc.Year)
	month := p.int("month", doc.Month)
	day := p.int("day", doc.Day)
	hour := p.int("hour", doc.Hour)
	minute := p.int("minute", doc.Minute)
	second := p.int("second", doc.Second)

	if doc.Rake != nil {
		rake := p.float("rake", *doc.Rake)
		ev.Rake = &rake
	}
	if doc.Directivity != nil {
		ev.Directivity = p.bool("directivity", *doc.Directivity)
	}
	if p.err != nil {
		return domain.EventRecord{}, fmt.Errorf("read event xml %s: %w", doc.ID, p.err)
	}
	if doc.ID == "" {
		return domain.EventRecord{}, fmt.Errorf("read event xml: missing id attribute")
	}

	if doc.Description != nil {
		ev.Description = *doc.Description
	}
	if doc.Type != nil {
		ev.Mechanism = *doc.Type
	}
	if doc.EventSourceCode != nil {
		ev.EventSourceCode = *doc.EventSourceCode
	}
	if doc.Reference != nil {
		ev.Reference = *doc.Reference
	}
	ev.Time = time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	ev.Created = ev.Time
	return ev, nil
}

// attrParser records the first attribute conversion failure.
type attrParser struct {
	err error
}

func (p *attrParser) float(name, s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("attribute %s=%q: %w", name, s, err)
	}
	return v
}

func (p *attrParser) int(name, s string) int {
	v, err := strconv.Atoi(s)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("attribute %s=%q: %w", name, s, err)
	}
	return v
}

func (p *attrParser) bool(name, s string) bool {
	v, err := strconv.ParseBool(s)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("attribute %s=%q: %w", name, s, err)
	}
	return v
}
