package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModel_Temporal(t *testing.T) {
	m := ModelMetaV2.Temporal()

	assert.Equal(t, Model("TEMPORAL_META_V2"), m)
	assert.True(t, m.IsTemporal())
	assert.Equal(t, ModelMetaV2, m.Base())
	assert.Equal(t, m, m.Temporal())
	assert.False(t, ModelMetaV2.IsTemporal())
}

func TestModel_IsValid(t *testing.T) {
	tests := []struct {
		model Model
		want  bool
	}{
		{ModelMeta, true},
		{ModelMetaV2, true},
		{ModelSiglipV2, true},
		{"TEMPORAL_SIGLIP_V2", true},
		{"CLIP", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.model), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.model.IsValid())
		})
	}
}

func TestModel_Display(t *testing.T) {
	assert.Equal(t, "T-META_V2", Model("TEMPORAL_META_V2").Display())
	assert.Equal(t, "SIGLIP_V2", ModelSiglipV2.Display())
}

func TestBaseModels(t *testing.T) {
	for _, m := range BaseModels() {
		assert.True(t, m.IsValid())
		assert.False(t, m.IsTemporal())
	}
}

func TestQueryType_IsValid(t *testing.T) {
	for _, q := range []QueryType{QueryText, QueryImage, QueryTemporal, QueryScroll} {
		assert.True(t, q.IsValid(), q)
	}
	assert.False(t, QueryType("video").IsValid())
}

func TestQueryType_IsSelectable(t *testing.T) {
	assert.True(t, QueryText.IsSelectable())
	assert.True(t, QueryImage.IsSelectable())
	assert.False(t, QueryTemporal.IsSelectable())
	assert.False(t, QueryScroll.IsSelectable())
}
