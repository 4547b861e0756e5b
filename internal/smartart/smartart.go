// Package smartart exposes the nodes of SmartArt diagrams and keeps the
// pre-rendered drawing caches that accompany them in step with the data
// model.
//
// The data part (dgm:dataModel) is authoritative. Office also stores a
// drawing part (dsp:drawing) related to the slide, which some readers show
// instead of laying out the data model. Drawing cells carry no ids, so the
// cache is refreshed by position from the ordered node texts.
package smartart

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/beevik/etree"
	"github.com/dgallion1/pptxdom/internal/opc"
	"github.com/dgallion1/pptxdom/internal/oxml"
)

// Owner is the part a diagram belongs to, usually the slide. Drawing caches
// are discovered through its relationships.
type Owner interface {
	RelatedParts(relType string) []*opc.Part
}

// SyncReport describes the synchronization of one drawing cache.
type SyncReport struct {
	Drawing string // part name
	Nodes   int    // texts available from the data model
	Cells   int    // text cells in the drawing
	Written int    // cells overwritten
	Err     error  // set when the drawing could not be read; nothing was written
}

// Mismatch reports whether node and cell counts differ.
func (r SyncReport) Mismatch() bool { return r.Nodes != r.Cells }

// Option configures a SmartArt.
type Option func(*SmartArt)

// WithLogger logs skipped drawings and count mismatches at debug level.
func WithLogger(log *slog.Logger) Option {
	return func(s *SmartArt) { s.log = log }
}

// WithSyncObserver registers fn to receive a report per drawing cache after
// each synchronization.
func WithSyncObserver(fn func(SyncReport)) Option {
	return func(s *SmartArt) { s.observer = fn }
}

// SmartArt is a diagram's data model together with the part that owns it.
type SmartArt struct {
	data     *etree.Element
	owner    Owner
	log      *slog.Logger
	observer func(SyncReport)
}

// New wraps a dgm:dataModel element. owner may be nil for a detached
// diagram, in which case edits are never propagated.
func New(dataModel *etree.Element, owner Owner, opts ...Option) *SmartArt {
	s := &SmartArt{data: dataModel, owner: owner}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromPart wraps the data model held by a diagram data part.
func FromPart(data *opc.Part, owner Owner, opts ...Option) (*SmartArt, error) {
	root, err := data.Element()
	if err != nil {
		return nil, err
	}
	if !oxml.Is(root, oxml.NsDgm, "dataModel") {
		return nil, fmt.Errorf("%s: root is %s, not dgm:dataModel", data.Name(), root.FullTag())
	}
	return New(root, owner, opts...), nil
}

// Nodes returns the diagram's content nodes.
func (s *SmartArt) Nodes() *Nodes {
	return &Nodes{sa: s}
}

// IterText yields the non-empty node texts in document order.
func (s *SmartArt) IterText() iter.Seq[string] {
	return func(yield func(string) bool) {
		for node := range s.Nodes().All() {
			if text := node.Text(); text != "" {
				if !yield(text) {
					return
				}
			}
		}
	}
}

// TextContent returns the non-empty node texts in document order.
func (s *SmartArt) TextContent() []string {
	var out []string
	for text := range s.IterText() {
		out = append(out, text)
	}
	return out
}

// Connection is an edge between two points of the data model.
type Connection struct {
	ModelID string
	SrcID   string
	DestID  string
	Type    string // "" means parOf
}

// Connections returns the data model's connections in document order.
func (s *SmartArt) Connections() []Connection {
	var out []Connection
	for _, cxn := range oxml.Connections(s.data) {
		out = append(out, Connection{
			ModelID: oxml.Attr(cxn, "modelId"),
			SrcID:   oxml.Attr(cxn, "srcId"),
			DestID:  oxml.Attr(cxn, "destId"),
			Type:    oxml.Attr(cxn, "type"),
		})
	}
	return out
}

// Drawings returns the drawing caches currently related to the owner.
func (s *SmartArt) Drawings() []*opc.Part {
	if s.owner == nil {
		return nil
	}
	return s.owner.RelatedParts(opc.RTDiagramDrawing)
}

// Sync copies the ordered node texts into every drawing cache by position.
// Cells past the end of the node list keep their text and texts past the
// last cell are dropped. Unreadable drawings are skipped; Sync never fails.
//
// Every diagramDrawing relation of the owner is a target, so on a slide with
// two diagrams each one's texts land in both caches.
// TODO: narrow the targets to the drawing named by the data model's
// dsp:dataModelExt/@relId when present.
func (s *SmartArt) Sync() {
	drawings := s.Drawings()
	if len(drawings) == 0 {
		return
	}
	texts := s.Nodes().Texts()
	for _, part := range drawings {
		report := SyncReport{Drawing: part.Name(), Nodes: len(texts)}
		root, err := part.Element()
		if err != nil {
			report.Err = err
		} else {
			report.Cells = len(oxml.DrawingCells(root))
			report.Written = oxml.UpdateDrawingCells(root, texts)
		}
		s.report(report)
	}
}

func (s *SmartArt) report(r SyncReport) {
	if s.log != nil {
		switch {
		case r.Err != nil:
			s.log.Debug("drawing cache skipped", "drawing", r.Drawing, "error", r.Err)
		case r.Mismatch():
			s.log.Debug("drawing cache size differs", "drawing", r.Drawing, "nodes", r.Nodes, "cells", r.Cells)
		}
	}
	if s.observer != nil {
		s.observer(r)
	}
}
