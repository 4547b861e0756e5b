package opc

// Relationship types.
const (
	RTOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RTSlide          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	RTChart          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/chart"
	RTPackage        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/package"
	RTDiagramData    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/diagramData"
	RTDiagramLayout  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/diagramLayout"
	RTDiagramStyle   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/diagramQuickStyle"
	RTDiagramColors  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/diagramColors"
	RTDiagramDrawing = "http://schemas.microsoft.com/office/2007/relationships/diagramDrawing"
)

// Content types.
const (
	CTChart          = "application/vnd.openxmlformats-officedocument.drawingml.chart+xml"
	CTDiagramData    = "application/vnd.openxmlformats-officedocument.drawingml.diagramData+xml"
	CTDiagramDrawing = "application/vnd.ms-office.drawingml.diagramDrawing+xml"
	CTSlide          = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	CTXlsx           = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	CTRelationships  = "application/vnd.openxmlformats-package.relationships+xml"
	CTXML            = "application/xml"
)

const (
	contentTypesName = "/[Content_Types].xml"
	packageRelsName  = "/_rels/.rels"
)
