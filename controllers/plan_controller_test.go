package controllers

import (
	"testing"

	"tripmoa/models"

	"github.com/stretchr/testify/assert"
)

// Порядок остановок внутри дня повторяет порядок выборки из базы
func TestBuildSchedulePreservesStopOrder(t *testing.T) {
	plan := &models.Plan{
		Spots: []models.PlanSpot{
			{PlanID: 1, SpotID: 11, Day: 1, Spot: models.Spot{Name: "성산일출봉", Category: "명소"}},
			{PlanID: 1, SpotID: 12, Day: 1, Spot: models.Spot{Name: "협재해수욕장", Category: "해변"}},
			{PlanID: 1, SpotID: 13, Day: 2, Spot: models.Spot{Name: "한라산", Category: "명소"}},
		},
	}

	schedule := buildSchedule(plan)
	assert.Len(t, schedule, 2)
	assert.Len(t, schedule["day1"], 2)
	assert.Equal(t, uint(11), schedule["day1"][0].SpotID)
	assert.Equal(t, uint(12), schedule["day1"][1].SpotID)
	assert.Equal(t, uint(13), schedule["day2"][0].SpotID)
	assert.True(t, schedule["day1"][0].Selected)
}

// План отдается только владельцу, если userId передан в запросе
func TestPlanOwnedBy(t *testing.T) {
	plan := &models.Plan{UserID: 7}

	assert.True(t, planOwnedBy(plan, ""))
	assert.True(t, planOwnedBy(plan, "7"))
	assert.False(t, planOwnedBy(plan, "8"))
	assert.False(t, planOwnedBy(plan, "abc"))
}
