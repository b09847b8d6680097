package repos

import "porcelain/internal/domain"

// SeedProducts is the starter catalog, in display order.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:           "1",
			Title:        "Modrý Cibulák - Šálek s podšálkem",
			Description:  "Klasický vzor cibulák od českého výrobce z Dubí. Jemný porcelán, kobaltová modř pod glazurou. Ideální pro ranní kávu v tradičním stylu.",
			Price:        450,
			Category:     domain.CategoryCups,
			Condition:    domain.ConditionExcellent,
			ImageURL:     "https://picsum.photos/400/400?random=1",
			Year:         "1980s",
			Manufacturer: "Thun",
		},
		{
			ID:           "2",
			Title:        "Rosenthal Talíř - Barokní Květiny",
			Description:  "Luxusní dezertní talíř značky Rosenthal. Ručně malované květinové motivy se zlatým lemováním. Sběratelský kousek.",
			Price:        1200,
			Category:     domain.CategoryPlates,
			Condition:    domain.ConditionMint,
			ImageURL:     "https://picsum.photos/400/400?random=2",
			Year:         "1920s",
			Manufacturer: "Rosenthal",
		},
		{
			ID:           "3",
			Title:        "Anglická čajová konvice",
			Description:  "Masivní konvice s motivem anglického venkova. Drobná krakeláž v glazuře dodává autentický starožitný vzhled.",
			Price:        890,
			Category:     domain.CategoryTeapots,
			Condition:    domain.ConditionGood,
			ImageURL:     "https://picsum.photos/400/400?random=3",
			Year:         "1950s",
			Manufacturer: "Staffordshire",
		},
		{
			ID:           "4",
			Title:        "Míšeňská váza - Kobalt",
			Description:  "Vysoká váza s hlubokým kobaltovým základem a ručně malovanou kyticí. Výrazný prvek do každého interiéru.",
			Price:        3500,
			Category:     domain.CategoryDecor,
			Condition:    domain.ConditionExcellent,
			ImageURL:     "https://picsum.photos/400/400?random=4",
			Year:         "1960s",
			Manufacturer: "Meissen",
		},
	}
}
