package database

import (
	"tripmoa/models"

	"gorm.io/gorm"
)

// SeedRegions проверяет таблицу regions и, если она пуста, заполняет её
// регионами с идентификаторами областей карты
func SeedRegions(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Region{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // Уже есть регионы, ничего не делаем
	}
	regions := []models.Region{
		{Name: "서울", MapID: "seoul"},
		{Name: "부산", MapID: "busan"},
		{Name: "제주", MapID: "jeju"},
		{Name: "강원", MapID: "gangwon"},
		{Name: "경주", MapID: "gyeongju"},
		{Name: "전주", MapID: "jeonju"},
		{Name: "여수", MapID: "yeosu"},
		{Name: "인천", MapID: "incheon"},
	}
	if err := db.Create(&regions).Error; err != nil {
		return err
	}

	subNames := map[string][]string{
		"서울": {"강남", "종로", "홍대", "잠실"},
		"부산": {"해운대", "광안리", "서면", "남포동"},
		"제주": {"제주시", "서귀포시", "애월", "성산"},
		"강원": {"강릉", "속초", "평창", "춘천"},
	}
	for _, r := range regions {
		names, ok := subNames[r.Name]
		if !ok {
			continue
		}
		for _, n := range names {
			if err := db.Create(&models.SubRegion{RegionID: r.ID, Name: n}).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedSpots заполняет каталог точек интереса, если он пуст.
// Это кандидаты для рекомендации маршрута; набор стартовый, админка пополняет.
func SeedSpots(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Spot{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	byRegion := map[string][]models.Spot{
		"제주": {
			{Name: "성산일출봉", Category: "명소", Address: "서귀포시 성산읍", Tags: "힐링,자연,일출"},
			{Name: "협재해수욕장", Category: "해변", Address: "제주시 한림읍", Tags: "힐링,바다,산책"},
			{Name: "한라산 국립공원", Category: "등산", Address: "제주시", Tags: "자연,등산,액티비티"},
			{Name: "동문시장", Category: "시장", Address: "제주시 관덕로", Tags: "맛집,쇼핑"},
			{Name: "카페 델문도", Category: "카페", Address: "제주시 조천읍", Tags: "카페,바다,힐링"},
			{Name: "우도", Category: "명소", Address: "제주시 우도면", Tags: "바다,자연,힐링"},
		},
		"서울": {
			{Name: "경복궁", Category: "명소", Address: "종로구 사직로", Tags: "역사,문화"},
			{Name: "북촌한옥마을", Category: "명소", Address: "종로구 계동길", Tags: "역사,산책,사진"},
			{Name: "광장시장", Category: "시장", Address: "종로구 창경궁로", Tags: "맛집,쇼핑"},
			{Name: "남산타워", Category: "명소", Address: "용산구 남산공원길", Tags: "야경,데이트"},
		},
		"부산": {
			{Name: "해운대해수욕장", Category: "해변", Address: "해운대구 우동", Tags: "바다,힐링,산책"},
			{Name: "감천문화마을", Category: "명소", Address: "사하구 감내2로", Tags: "사진,문화,산책"},
			{Name: "자갈치시장", Category: "시장", Address: "중구 자갈치해안로", Tags: "맛집,해산물"},
			{Name: "광안리해수욕장", Category: "해변", Address: "수영구 광안해변로", Tags: "바다,야경,카페"},
		},
	}

	for regionName, spots := range byRegion {
		var region models.Region
		if err := db.Where("name = ?", regionName).First(&region).Error; err != nil {
			continue
		}
		for i := range spots {
			spots[i].RegionID = region.ID
		}
		if err := db.Create(&spots).Error; err != nil {
			return err
		}
	}

	return nil
}

// SeedProducts заполняет каталоги продуктов стартовыми данными,
// пока крон-синхронизация с партнерским каталогом не настроена
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Accommodation{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var jeju models.Region
	if err := db.Where("name = ?", "제주").First(&jeju).Error; err != nil {
		return nil // Регионы еще не засеяны
	}

	accommodations := []models.Accommodation{
		{RegionID: jeju.ID, RegionName: "제주", Name: "오션뷰 리조트", Address: "서귀포시 중문관광로", Price: 120000, Tags: "힐링,바다,오션뷰"},
		{RegionID: jeju.ID, RegionName: "제주", Name: "한라산 게스트하우스", Address: "제주시 노형동", Price: 45000, Tags: "등산,자연,가성비"},
		{RegionID: jeju.ID, RegionName: "제주", Name: "애월 스테이", Address: "제주시 애월읍", Price: 80000, Tags: "카페,감성,힐링"},
	}
	if err := db.Create(&accommodations).Error; err != nil {
		return err
	}

	activities := []models.Activity{
		{RegionID: jeju.ID, RegionName: "제주", Name: "승마 체험", Address: "제주시 조천읍", Price: 35000, Tags: "액티비티,체험"},
		{RegionID: jeju.ID, RegionName: "제주", Name: "요트 투어", Address: "서귀포시 대포동", Price: 60000, Tags: "바다,힐링,요트"},
		{RegionID: jeju.ID, RegionName: "제주", Name: "감귤 따기 체험", Address: "서귀포시 남원읍", Price: 15000, Tags: "체험,가족"},
	}
	if err := db.Create(&activities).Error; err != nil {
		return err
	}

	tickets := []models.Ticket{
		{RegionID: jeju.ID, RegionName: "제주", Name: "아쿠아플라넷 입장권", Address: "서귀포시 성산읍", Price: 40000, Tags: "가족,실내"},
		{RegionID: jeju.ID, RegionName: "제주", Name: "테디베어 뮤지엄", Address: "서귀포시 중문관광로", Price: 12000, Tags: "가족,실내,사진"},
	}
	if err := db.Create(&tickets).Error; err != nil {
		return err
	}

	return nil
}
