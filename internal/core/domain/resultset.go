package domain

import (
	"encoding/json"
	"fmt"
)

// ResultShape discriminates the variants of a ResultSet.
type ResultShape int

// Result shapes.
const (
	// ShapeEmpty means the hub returned nothing usable.
	ShapeEmpty ResultShape = iota

	// ShapeFlat is a ranked list of frames.
	ShapeFlat

	// ShapeTemporal is a grid of video rows by scene columns.
	ShapeTemporal
)

// String returns the string representation.
func (s ResultShape) String() string {
	switch s {
	case ShapeFlat:
		return "flat"
	case ShapeTemporal:
		return "temporal"
	default:
		return "empty"
	}
}

// ParseResultShape converts a string back into a ResultShape.
func ParseResultShape(s string) ResultShape {
	switch s {
	case "flat":
		return ShapeFlat
	case "temporal":
		return ShapeTemporal
	default:
		return ShapeEmpty
	}
}

// TemporalRow is one video's row in a temporal grid.
// A nil cell is an empty scene slot.
type TemporalRow struct {
	VideoName string
	Cells     []*FrameRecord
}

// ResultSet is the normalised result of one search. The shape is decided
// once by the normaliser and never re-sniffed downstream.
type ResultSet struct {
	// Shape is the variant tag.
	Shape ResultShape

	// Records is the flat, index-addressable record list (currentVideos).
	// For temporal results it holds the present cells in row-major order.
	Records []FrameRecord

	// Rows is the temporal grid. Empty for flat results.
	Rows []TemporalRow

	// SceneCount is the column count of the temporal grid.
	SceneCount int
}

// EmptyResultSet returns a result set with no records.
func EmptyResultSet() ResultSet {
	return ResultSet{Shape: ShapeEmpty}
}

// NewFlatResultSet builds a flat result set, assigning index = position.
func NewFlatResultSet(records []FrameRecord) ResultSet {
	if len(records) == 0 {
		return EmptyResultSet()
	}
	out := make([]FrameRecord, len(records))
	copy(out, records)
	for i := range out {
		out[i].Index = i
	}
	return ResultSet{Shape: ShapeFlat, Records: out}
}

// Len returns the number of addressable records.
func (r ResultSet) Len() int {
	return len(r.Records)
}

// IsEmpty reports whether there is nothing to render.
func (r ResultSet) IsEmpty() bool {
	return r.Shape == ShapeEmpty || len(r.Records) == 0
}

// Record returns the record at the given index.
func (r ResultSet) Record(index int) (FrameRecord, bool) {
	if index < 0 || index >= len(r.Records) {
		return FrameRecord{}, false
	}
	return r.Records[index], true
}

// resultSetJSON is the persisted form. Temporal cells reference records by
// index, with -1 marking an empty slot.
type resultSetJSON struct {
	Shape      string            `json:"shape"`
	Records    []FrameRecord     `json:"records"`
	Rows       []temporalRowJSON `json:"rows,omitempty"`
	SceneCount int               `json:"scene_count,omitempty"`
}

type temporalRowJSON struct {
	VideoName string `json:"video_name"`
	Cells     []int  `json:"cells"`
}

// MarshalJSON implements json.Marshaler.
func (r ResultSet) MarshalJSON() ([]byte, error) {
	out := resultSetJSON{
		Shape:      r.Shape.String(),
		Records:    r.Records,
		SceneCount: r.SceneCount,
	}
	if out.Records == nil {
		out.Records = []FrameRecord{}
	}
	for _, row := range r.Rows {
		cells := make([]int, len(row.Cells))
		for i, cell := range row.Cells {
			if cell == nil {
				cells[i] = -1
				continue
			}
			cells[i] = cell.Index
		}
		out.Rows = append(out.Rows, temporalRowJSON{VideoName: row.VideoName, Cells: cells})
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *ResultSet) UnmarshalJSON(data []byte) error {
	var in resultSetJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	rs := ResultSet{
		Shape:      ParseResultShape(in.Shape),
		Records:    in.Records,
		SceneCount: in.SceneCount,
	}
	for _, row := range in.Rows {
		cells := make([]*FrameRecord, len(row.Cells))
		for i, idx := range row.Cells {
			if idx < 0 {
				continue
			}
			if idx >= len(rs.Records) {
				return fmt.Errorf("temporal cell references record %d of %d", idx, len(rs.Records))
			}
			cells[i] = &rs.Records[idx]
		}
		rs.Rows = append(rs.Rows, TemporalRow{VideoName: row.VideoName, Cells: cells})
	}
	*r = rs
	return nil
}
