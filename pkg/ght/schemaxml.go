package ght

import "encoding/xml"

// xmlSchema mirrors the <pc:PointCloudSchema> document described in
// SPEC_FULL.md §6: a thin external interchange format layered over
// Schema, grounded on the teacher's own use of encoding/xml struct
// tags for a structurally similar catalog document.
//
// Elements are matched by namespace and local name, so a document may
// bind the pointcloud namespace to any prefix (conventionally pc:).
// SchemaToXML writes it as the default namespace. <pc:active> is not
// read: every dimension in the document is kept.
type xmlSchema struct {
	XMLName    xml.Name       `xml:"http://pointcloud.org/schemas/PC/ PointCloudSchema"`
	Dimensions []xmlDimension `xml:"dimension"`
}

type xmlDimension struct {
	Position       uint8   `xml:"position"`
	Size           int     `xml:"size"`
	Name           string  `xml:"name"`
	Description    string  `xml:"description,omitempty"`
	Interpretation string  `xml:"interpretation"`
	Scale          float64 `xml:"scale,omitempty"`
	Offset         float64 `xml:"offset,omitempty"`
}

// SchemaToXML renders schema as a <pc:PointCloudSchema> document.
func SchemaToXML(schema Schema) ([]byte, error) {
	doc := xmlSchema{}
	for _, d := range schema.Dimensions() {
		doc.Dimensions = append(doc.Dimensions, xmlDimension{
			Position:       d.Position,
			Size:           d.Type.Width(),
			Name:           d.Name,
			Description:    d.Description,
			Interpretation: d.Type.Interpretation(),
			Scale:          d.Scale,
			Offset:         d.Offset,
		})
	}
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, &FormatError{Reason: "schema XML encode failed: " + err.Error()}
	}
	return out, nil
}

// SchemaFromXML parses a <pc:PointCloudSchema> document produced by
// SchemaToXML (or a compatible external tool) into a Schema.
func SchemaFromXML(data []byte) (Schema, error) {
	var doc xmlSchema
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Schema{}, &FormatError{Reason: "schema XML decode failed: " + err.Error()}
	}

	dims := make([]Dimension, len(doc.Dimensions))
	for i, xd := range doc.Dimensions {
		t, err := TypeFromInterpretation(xd.Interpretation)
		if err != nil {
			return Schema{}, err
		}
		scale, offset := xd.Scale, xd.Offset
		if t.IsFloat() {
			scale, offset = 1, 0
		} else if scale == 0 {
			scale = 1
		}
		dims[i] = Dimension{
			Position:    xd.Position,
			Name:        xd.Name,
			Description: xd.Description,
			Type:        t,
			Scale:       scale,
			Offset:      offset,
		}
	}
	return NewSchema(dims)
}
