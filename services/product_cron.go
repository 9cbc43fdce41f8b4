package services

import (
	"log"
	"os"

	"tripmoa/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Источники партнерского каталога по категориям. Регион зашит в URL страницы.
type catalogSource struct {
	URL        string
	RegionName string
}

func catalogSources(envKey, def string) []catalogSource {
	base := getEnv(envKey, def)
	if base == "" {
		return nil
	}
	// Одна страница на регион; список регионов совпадает с сидером
	regions := []string{"서울", "부산", "제주", "강원", "경주", "전주", "여수", "인천"}
	var out []catalogSource
	for _, r := range regions {
		out = append(out, catalogSource{URL: base + "?region=" + r, RegionName: r})
	}
	return out
}

// Обновление одной категории: парсим все страницы, при непустом результате заменяем таблицу
func refreshCatalog(db *gorm.DB, table string, sources []catalogSource, logger *log.Logger) {
	parser := NewProductParser()

	var rows []*ProductRow
	for _, src := range sources {
		parsed, err := parser.ParseURL(src.URL, src.RegionName)
		if err != nil {
			logger.Printf("Ошибка парсинга %s: %v", src.URL, err)
			continue
		}
		rows = append(rows, parsed...)
	}

	if len(rows) == 0 {
		logger.Printf("Каталог %s: парсер не вернул строк, оставляем прежние данные", table)
		return
	}

	db.Exec("TRUNCATE " + table)
	for _, row := range rows {
		var regionID uint
		var region models.Region
		if err := db.Where("name = ?", row.RegionName).First(&region).Error; err == nil {
			regionID = region.ID
		}
		db.Table(table).Create(map[string]interface{}{
			"region_id":   regionID,
			"region_name": row.RegionName,
			"name":        row.Name,
			"address":     row.Address,
			"price":       row.Price,
			"tags":        row.Tags,
			"url":         row.URL,
		})
	}
	logger.Printf("Каталог %s обновлен: %d строк", table, len(rows))
}

func refreshAllCatalogs(db *gorm.DB) {
	logFile, _ := os.OpenFile("logs/parser_errors.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	logger := log.New(logFile, "", log.LstdFlags)
	defer logFile.Close()

	logger.Printf("Начало обновления каталогов продуктов...")

	refreshCatalog(db, "accommodations", catalogSources("CATALOG_ACCOMMODATION_URL", ""), logger)
	refreshCatalog(db, "activities", catalogSources("CATALOG_ACTIVITY_URL", ""), logger)
	refreshCatalog(db, "tickets", catalogSources("CATALOG_TICKET_URL", ""), logger)

	logger.Printf("Обновление каталогов завершено")
}

// StartProductCron запускает ежедневную синхронизацию каталогов продуктов.
// Без настроенных URL источников кроном ничего не делается - остаются данные сидера.
func StartProductCron(db *gorm.DB) {
	// Первый прогон при старте
	refreshAllCatalogs(db)

	c := cron.New()
	c.AddFunc("0 4 * * *", func() { // каждый день в 04:00
		refreshAllCatalogs(db)
	})
	c.Start()
	log.Printf("[CATALOG CRON] Планировщик запущен. Каталоги обновляются каждый день в 04:00")
}
