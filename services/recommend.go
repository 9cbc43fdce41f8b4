package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"tripmoa/config"
	"tripmoa/models"
	"tripmoa/utils"
)

// RecommendService - сервис рекомендации маршрута через внешний AI API
type RecommendService struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewRecommendService(cfg *config.Config) *RecommendService {
	return &RecommendService{
		baseURL: cfg.RecommendBaseURL,
		apiKey:  cfg.RecommendAPIKey,
		model:   cfg.RecommendModel,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// getEnv получает переменную окружения
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// rawStop - остановка в ответе провайдера
type rawStop struct {
	SpotID   uint   `json:"spot_id"`
	Category string `json:"category"`
	Name     string `json:"name"`
	Address  string `json:"address"`
}

// RecommendItinerary запрашивает у провайдера расписание по дням для региона и
// ключевых слов. Кандидаты берутся из каталога точек региона, ответ провайдера -
// JSON вида {"day1": [...], "day2": [...]}. Метки дней нормализуются через
// ParseDayLabel: отсутствие цифр трактуется как день 1.
func (rs *RecommendService) RecommendItinerary(req models.RecommendRequest, candidates []models.Spot) (models.Schedule, error) {
	prompt := rs.buildPrompt(req, candidates)

	payload := chatRequest{
		Model: rs.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a travel itinerary planner. Respond with JSON only, no extra text."},
			{Role: "user", Content: prompt},
		},
	}
	payload.ResponseFormat.Type = "json_object"

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest("POST", rs.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+rs.apiKey)

	resp, err := rs.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("recommend request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("recommend provider returned %d: %s", resp.StatusCode, string(body))
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse provider response: %w", err)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("recommend provider error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("recommend provider returned no choices")
	}

	return parseScheduleContent(result.Choices[0].Message.Content)
}

func (rs *RecommendService) buildPrompt(req models.RecommendRequest, candidates []models.Spot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "지역: %s", req.Region)
	if req.SubRegion != "" {
		fmt.Fprintf(&b, " / %s", req.SubRegion)
	}
	fmt.Fprintf(&b, "\n기간: %s ~ %s\n인원: %d\n키워드: %s\n\n",
		req.StartDate, req.EndDate, req.PeopleCount, strings.Join(req.SelectedKeywords, ", "))

	b.WriteString("후보 장소 목록:\n")
	for _, s := range candidates {
		fmt.Fprintf(&b, "- id=%d, name=%s, category=%s, address=%s, tags=%s\n",
			s.ID, s.Name, s.Category, s.Address, s.Tags)
	}

	b.WriteString(`
Составь маршрут по дням только из перечисленных кандидатов. Верни JSON-объект,
где ключи - "day1", "day2", ..., а значения - упорядоченные массивы объектов
{"spot_id": number, "name": string, "category": string, "address": string}.
Дней должно быть столько, сколько календарных дней между датами включительно.
Никакого текста кроме JSON.`)

	return b.String()
}

// parseScheduleContent разбирает JSON провайдера в расписание.
// Пустой ответ - не ошибка: вернется пустое расписание, решает вызывающий.
func parseScheduleContent(content string) (models.Schedule, error) {
	// Провайдеры иногда заворачивают JSON в markdown-ограждение
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var raw map[string][]rawStop
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse schedule: %v", err)
	}

	schedule := models.Schedule{}
	for label, stops := range raw {
		day := utils.ParseDayLabel(label)
		key := fmt.Sprintf("day%d", day)
		for _, s := range stops {
			schedule[key] = append(schedule[key], models.StopItem{
				SpotID:   s.SpotID,
				Day:      day,
				Category: s.Category,
				Name:     s.Name,
				Address:  s.Address,
				Selected: true,
			})
		}
	}
	return schedule, nil
}
