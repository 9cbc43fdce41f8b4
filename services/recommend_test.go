package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseScheduleContent(t *testing.T) {
	content := `{"day1":[{"spot_id":11,"name":"성산일출봉","category":"명소","address":"서귀포시"}],
"day2":[{"spot_id":12,"name":"협재해수욕장","category":"해변","address":"제주시"}]}`

	schedule, err := parseScheduleContent(content)
	assert.NoError(t, err)
	assert.Len(t, schedule, 2)
	assert.Equal(t, uint(11), schedule["day1"][0].SpotID)
	assert.Equal(t, 1, schedule["day1"][0].Day)
	assert.True(t, schedule["day1"][0].Selected)
	assert.Equal(t, "협재해수욕장", schedule["day2"][0].Name)
}

// Метка без цифр падает в день 1
func TestParseScheduleContentBadLabel(t *testing.T) {
	content := `{"day":[{"spot_id":1,"name":"광안리"}]}`

	schedule, err := parseScheduleContent(content)
	assert.NoError(t, err)
	assert.Len(t, schedule["day1"], 1)
	assert.Equal(t, 1, schedule["day1"][0].Day)
}

// Провайдер иногда заворачивает JSON в markdown-ограждение
func TestParseScheduleContentFenced(t *testing.T) {
	content := "```json\n{\"day1\":[{\"spot_id\":5,\"name\":\"한라산\"}]}\n```"

	schedule, err := parseScheduleContent(content)
	assert.NoError(t, err)
	assert.Equal(t, uint(5), schedule["day1"][0].SpotID)
}

func TestParseScheduleContentInvalid(t *testing.T) {
	_, err := parseScheduleContent("일정을 만들 수 없습니다")
	assert.Error(t, err)
}
