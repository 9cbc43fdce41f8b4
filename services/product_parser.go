package services

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"tripmoa/utils"

	"github.com/PuerkitoBio/goquery"
)

// ProductRow - строка каталога продуктов, общая для всех трех категорий
type ProductRow struct {
	Name       string
	Address    string
	Price      int64
	Tags       string
	URL        string
	RegionName string
}

// ProductParser парсит HTML-страницы партнерского каталога
type ProductParser struct {
	client *http.Client
}

func NewProductParser() *ProductParser {
	return &ProductParser{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// ParseURL забирает страницу каталога и вытаскивает карточки продуктов.
// Ожидаемая разметка партнера: .catalog-item с вложенными .item-name,
// .item-price, .item-address, .item-tags и ссылкой в атрибуте href.
func (pp *ProductParser) ParseURL(url, regionName string) ([]*ProductRow, error) {
	resp, err := pp.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения страницы: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("каталог вернул статус %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга HTML: %v", err)
	}

	// Убираем навигацию и скрипты, чтобы не цеплять мусорные карточки
	doc.Find("nav, header, footer, script, style").Remove()

	var rows []*ProductRow
	doc.Find(".catalog-item").Each(func(i int, s *goquery.Selection) {
		name := strings.TrimSpace(s.Find(".item-name").Text())
		if name == "" {
			return
		}

		row := &ProductRow{
			Name:       name,
			Address:    strings.TrimSpace(s.Find(".item-address").Text()),
			Price:      utils.ExtractPriceKRW(s.Find(".item-price").Text()),
			RegionName: regionName,
		}

		// Теги на карточке перечислены через запятую либо отдельными .tag
		if tags := strings.TrimSpace(s.Find(".item-tags").Text()); tags != "" {
			row.Tags = normalizeTags(tags)
		} else {
			var parts []string
			s.Find(".tag").Each(func(_ int, t *goquery.Selection) {
				if v := strings.TrimSpace(t.Text()); v != "" {
					parts = append(parts, v)
				}
			})
			row.Tags = strings.Join(parts, ",")
		}

		if href, ok := s.Find("a").First().Attr("href"); ok {
			row.URL = href
		}

		rows = append(rows, row)
	})

	return rows, nil
}

// normalizeTags приводит "#힐링 #바다" и "힐링, 바다" к единому виду "힐링,바다"
func normalizeTags(raw string) string {
	raw = strings.ReplaceAll(raw, "#", " ")
	raw = strings.ReplaceAll(raw, ",", " ")
	var parts []string
	for _, p := range strings.Fields(raw) {
		parts = append(parts, p)
	}
	return strings.Join(parts, ",")
}
