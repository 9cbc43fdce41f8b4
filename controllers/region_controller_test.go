package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveMapRegion(t *testing.T) {
	name, id, ok := resolveMapRegion("jeju")
	assert.True(t, ok)
	assert.Equal(t, "제주", name)
	assert.Equal(t, uint(3), id)

	// Незамапленная область карты
	_, _, ok = resolveMapRegion("dokdo")
	assert.False(t, ok)
}

// Обе таблицы должны покрывать один и тот же набор регионов
func TestRegionTablesConsistent(t *testing.T) {
	assert.Equal(t, len(mapRegionName), len(regionBackendID))
	for mapID, name := range mapRegionName {
		id, ok := regionBackendID[name]
		assert.True(t, ok, "region %s (%s) missing backend id", name, mapID)
		assert.Greater(t, id, uint(0))
	}
}

func TestResolveRegionName(t *testing.T) {
	id, ok := resolveRegionName("서울")
	assert.True(t, ok)
	assert.Equal(t, uint(1), id)

	_, ok = resolveRegionName("평양")
	assert.False(t, ok)
}
