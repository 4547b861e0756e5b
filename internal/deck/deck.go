// Package deck opens a .pptx presentation and locates the charts and
// SmartArt diagrams placed on its slides.
package deck

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dgallion1/pptxdom/internal/chart"
	"github.com/dgallion1/pptxdom/internal/opc"
	"github.com/dgallion1/pptxdom/internal/oxml"
	"github.com/dgallion1/pptxdom/internal/smartart"
)

// Graphic frame payload URIs.
const (
	uriChart   = "http://schemas.openxmlformats.org/drawingml/2006/chart"
	uriDiagram = "http://schemas.openxmlformats.org/drawingml/2006/diagram"
)

// ErrShapeNotFound is returned when no graphic frame matches an edit target.
var ErrShapeNotFound = errors.New("shape not found")

// Deck is an opened presentation.
type Deck struct {
	pkg *opc.Package
	log *slog.Logger
}

// Option configures a Deck.
type Option func(*Deck)

// WithLogger sets the logger handed to SmartArt diagrams.
func WithLogger(log *slog.Logger) Option {
	return func(d *Deck) { d.log = log }
}

// Open reads a presentation from r.
func Open(r io.ReaderAt, size int64, opts ...Option) (*Deck, error) {
	pkg, err := opc.Open(r, size)
	if err != nil {
		return nil, err
	}
	return newDeck(pkg, opts), nil
}

// OpenBytes reads a presentation from its bytes.
func OpenBytes(b []byte, opts ...Option) (*Deck, error) {
	pkg, err := opc.OpenBytes(b)
	if err != nil {
		return nil, err
	}
	return newDeck(pkg, opts), nil
}

// OpenFile reads a presentation from disk.
func OpenFile(name string, opts ...Option) (*Deck, error) {
	pkg, err := opc.OpenFile(name)
	if err != nil {
		return nil, err
	}
	return newDeck(pkg, opts), nil
}

func newDeck(pkg *opc.Package, opts []Option) *Deck {
	d := &Deck{pkg: pkg}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Package returns the underlying OPC package.
func (d *Deck) Package() *opc.Package { return d.pkg }

// Save writes the presentation, including every edit made through it.
func (d *Deck) Save(w io.Writer) error { return d.pkg.Save(w) }

// Bytes returns the serialized presentation.
func (d *Deck) Bytes() ([]byte, error) { return d.pkg.Bytes() }

// Slide is one slide part with its 1-based position in the deck.
type Slide struct {
	Number int
	Part   *opc.Part
}

// Slides returns the slides in presentation order.
func (d *Deck) Slides() ([]*Slide, error) {
	docs := d.pkg.RelatedParts(opc.RTOfficeDocument)
	if len(docs) == 0 {
		return nil, fmt.Errorf("package has no main document")
	}
	pres := docs[0]
	root, err := pres.Element()
	if err != nil {
		return nil, err
	}
	if !oxml.Is(root, oxml.NsP, "presentation") {
		return nil, fmt.Errorf("%s is not a presentation", pres.Name())
	}

	var out []*Slide
	for _, sldID := range oxml.Children(oxml.Child(root, oxml.NsP, "sldIdLst"), oxml.NsP, "sldId") {
		rID, _ := oxml.AttrNS(sldID, oxml.NsR, "id")
		part, ok := pres.RelatedPart(rID)
		if !ok {
			continue
		}
		out = append(out, &Slide{Number: len(out) + 1, Part: part})
	}
	return out, nil
}

// FrameKind is the payload type of a graphic frame.
type FrameKind string

const (
	FrameChart    FrameKind = "chart"
	FrameSmartArt FrameKind = "smartart"
	FrameOther    FrameKind = "other"
)

// Frame is a graphic frame on a slide.
type Frame struct {
	Name  string
	Kind  FrameKind
	RelID string // chart part or diagram data part relationship
}

// Frames returns the slide's graphic frames in document order, group
// shapes included.
func (s *Slide) Frames() ([]Frame, error) {
	root, err := s.Part.Element()
	if err != nil {
		return nil, err
	}
	var out []Frame
	for _, gf := range oxml.Descendants(root, oxml.NsP, "graphicFrame") {
		f := Frame{
			Name: oxml.Attr(oxml.Path(gf, oxml.NsP, "nvGraphicFramePr", "cNvPr"), "name"),
			Kind: FrameOther,
		}
		data := oxml.Path(gf, oxml.NsA, "graphic", "graphicData")
		switch oxml.Attr(data, "uri") {
		case uriChart:
			f.Kind = FrameChart
			f.RelID, _ = oxml.AttrNS(oxml.Child(data, oxml.NsC, "chart"), oxml.NsR, "id")
		case uriDiagram:
			f.Kind = FrameSmartArt
			f.RelID, _ = oxml.AttrNS(oxml.Child(data, oxml.NsDgm, "relIds"), oxml.NsR, "dm")
		}
		out = append(out, f)
	}
	return out, nil
}

// ChartShape is a chart placed on a slide.
type ChartShape struct {
	Slide int
	Name  string
	Chart *chart.Part
}

// SmartArtShape is a SmartArt diagram placed on a slide.
type SmartArtShape struct {
	Slide    int
	Name     string
	SmartArt *smartart.SmartArt
}

// Charts returns every chart in the deck, in slide then document order.
func (d *Deck) Charts() ([]ChartShape, error) {
	var out []ChartShape
	err := d.eachFrame(FrameChart, func(s *Slide, f Frame, target *opc.Part) error {
		c, err := chart.NewPart(target)
		if err != nil {
			return err
		}
		out = append(out, ChartShape{Slide: s.Number, Name: f.Name, Chart: c})
		return nil
	})
	return out, err
}

// SmartArts returns every SmartArt diagram in the deck. Each diagram is
// owned by its slide, whose relationships lead to the drawing caches.
func (d *Deck) SmartArts() ([]SmartArtShape, error) {
	var out []SmartArtShape
	err := d.eachFrame(FrameSmartArt, func(s *Slide, f Frame, target *opc.Part) error {
		sa, err := smartart.FromPart(target, s.Part, d.smartArtOptions()...)
		if err != nil {
			return err
		}
		out = append(out, SmartArtShape{Slide: s.Number, Name: f.Name, SmartArt: sa})
		return nil
	})
	return out, err
}

func (d *Deck) smartArtOptions() []smartart.Option {
	if d.log == nil {
		return nil
	}
	return []smartart.Option{smartart.WithLogger(d.log)}
}

// Chart returns the named chart on a slide. An empty name selects the first
// chart of the slide.
func (d *Deck) Chart(slide int, name string) (*chart.Part, error) {
	charts, err := d.Charts()
	if err != nil {
		return nil, err
	}
	for _, c := range charts {
		if c.Slide == slide && (name == "" || c.Name == name) {
			return c.Chart, nil
		}
	}
	return nil, fmt.Errorf("%w: chart %q on slide %d", ErrShapeNotFound, name, slide)
}

// SmartArt returns the named diagram on a slide. An empty name selects the
// first diagram of the slide.
func (d *Deck) SmartArt(slide int, name string) (*smartart.SmartArt, error) {
	diagrams, err := d.SmartArts()
	if err != nil {
		return nil, err
	}
	for _, s := range diagrams {
		if s.Slide == slide && (name == "" || s.Name == name) {
			return s.SmartArt, nil
		}
	}
	return nil, fmt.Errorf("%w: smartart %q on slide %d", ErrShapeNotFound, name, slide)
}

func (d *Deck) eachFrame(kind FrameKind, fn func(*Slide, Frame, *opc.Part) error) error {
	slides, err := d.Slides()
	if err != nil {
		return err
	}
	for _, s := range slides {
		frames, err := s.Frames()
		if err != nil {
			return err
		}
		for _, f := range frames {
			if f.Kind != kind {
				continue
			}
			target, ok := s.Part.RelatedPart(f.RelID)
			if !ok {
				continue
			}
			if err := fn(s, f, target); err != nil {
				return fmt.Errorf("slide %d %q: %w", s.Number, f.Name, err)
			}
		}
	}
	return nil
}
