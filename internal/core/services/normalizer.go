package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/framescope/internal/core/domain"
	"github.com/custodia-labs/framescope/internal/core/ports/driving"
	"github.com/custodia-labs/framescope/internal/logger"
)

// Ensure ResultNormalizer implements the interface.
var _ driving.ResultNormalizer = (*ResultNormalizer)(nil)

// ResultNormalizer classifies hub payloads. The first matching rule wins:
// an array of frame objects is flat, an array of arrays is temporal, an
// object with "rows" is temporal, and anything else is empty.
type ResultNormalizer struct{}

// NewResultNormalizer creates a new result normalizer.
func NewResultNormalizer() *ResultNormalizer {
	return &ResultNormalizer{}
}

// Normalize converts a payload into a tagged result set. Shape errors are
// logged and yield an empty set.
func (n *ResultNormalizer) Normalize(payload json.RawMessage) domain.ResultSet {
	rs, err := n.classify(payload)
	if err != nil {
		logger.Warn("normalise: %v", err)
		return domain.EmptyResultSet()
	}
	logger.Debug("normalise: %s result with %d records", rs.Shape, rs.Len())
	return rs
}

func (n *ResultNormalizer) classify(payload json.RawMessage) (domain.ResultSet, error) {
	data := bytes.TrimSpace(payload)
	if len(data) == 0 {
		return domain.ResultSet{}, fmt.Errorf("%w: empty payload", domain.ErrUnrecognizedShape)
	}

	switch data[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return domain.ResultSet{}, fmt.Errorf("%w: %v", domain.ErrUnrecognizedShape, err)
		}
		if len(items) == 0 {
			return domain.ResultSet{}, fmt.Errorf("%w: empty list", domain.ErrUnrecognizedShape)
		}
		first := bytes.TrimSpace(items[0])
		switch {
		case hasVideoName(first):
			return decodeFlat(data)
		case len(first) > 0 && first[0] == '[':
			return decodeTemporal(data)
		}
	case '{':
		var wrapped struct {
			Rows json.RawMessage `json:"rows"`
		}
		if err := json.Unmarshal(data, &wrapped); err == nil && isArray(wrapped.Rows) {
			return decodeTemporal(wrapped.Rows)
		}
	}

	return domain.ResultSet{}, fmt.Errorf("%w: %.80s", domain.ErrUnrecognizedShape, data)
}

func decodeFlat(data []byte) (domain.ResultSet, error) {
	var records []domain.FrameRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return domain.ResultSet{}, fmt.Errorf("%w: decoding frames: %v", domain.ErrUnrecognizedShape, err)
	}
	return domain.NewFlatResultSet(records), nil
}

func decodeTemporal(data []byte) (domain.ResultSet, error) {
	var grid [][]*domain.FrameRecord
	if err := json.Unmarshal(data, &grid); err != nil {
		return domain.ResultSet{}, fmt.Errorf("%w: decoding temporal rows: %v", domain.ErrUnrecognizedShape, err)
	}
	return FlattenTemporal(grid)
}

// FlattenTemporal builds a temporal result set from a grid of scenes. Rows
// with no scene are dropped, each row is named after its first scene, and
// present cells receive indexes from one counter across the grid. Shorter
// rows are padded with empty cells to the widest row.
func FlattenTemporal(grid [][]*domain.FrameRecord) (domain.ResultSet, error) {
	if len(grid) == 0 {
		return domain.ResultSet{}, fmt.Errorf("%w: no temporal rows", domain.ErrUnrecognizedShape)
	}
	sceneCount := 0
	for _, scenes := range grid {
		sceneCount = max(sceneCount, len(scenes))
	}

	var records []domain.FrameRecord
	type cellRef struct {
		row, col, index int
	}
	var refs []cellRef
	var rowNames []string

	for _, scenes := range grid {
		first := firstPresent(scenes)
		if first == nil {
			continue
		}

		row := len(rowNames)
		rowNames = append(rowNames, first.VideoName)
		for col, scene := range scenes {
			if scene == nil {
				continue
			}
			rec := *scene
			rec.Index = len(records)
			refs = append(refs, cellRef{row: row, col: col, index: rec.Index})
			records = append(records, rec)
		}
	}

	if len(records) == 0 {
		return domain.ResultSet{}, fmt.Errorf("%w: temporal grid has no scenes", domain.ErrUnrecognizedShape)
	}

	// Cells point into the final records slice, so wire them after appends.
	rows := make([]domain.TemporalRow, len(rowNames))
	for i, name := range rowNames {
		rows[i] = domain.TemporalRow{VideoName: name, Cells: make([]*domain.FrameRecord, sceneCount)}
	}
	for _, ref := range refs {
		rows[ref.row].Cells[ref.col] = &records[ref.index]
	}

	return domain.ResultSet{
		Shape:      domain.ShapeTemporal,
		Records:    records,
		Rows:       rows,
		SceneCount: sceneCount,
	}, nil
}

func firstPresent(scenes []*domain.FrameRecord) *domain.FrameRecord {
	for _, s := range scenes {
		if s != nil {
			return s
		}
	}
	return nil
}

func hasVideoName(item []byte) bool {
	if len(item) == 0 || item[0] != '{' {
		return false
	}
	var probe struct {
		VideoName string `json:"video_name"`
	}
	if err := json.Unmarshal(item, &probe); err != nil {
		return false
	}
	return probe.VideoName != ""
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}
