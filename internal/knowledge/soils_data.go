package knowledge

// SoilCharacteristics describes a soil type.
type SoilCharacteristics struct {
	SoilType       string   `json:"soil_type"`
	Texture        string   `json:"texture"`
	WaterRetention string   `json:"water_retention"`
	Fertility      string   `json:"fertility"`
	PHTendency     string   `json:"ph_tendency"`
	SuitableCrops  []string `json:"suitable_crops"`
	ManagementTips []string `json:"management_tips"`
}

// soilCatalogue is kept in model output order.
var soilCatalogue = []SoilCharacteristics{
	{
		SoilType:       "Clay",
		Texture:        "Heavy, sticky when wet, hard when dry",
		WaterRetention: "High - holds water well but drains slowly",
		Fertility:      "High in nutrients but can be hard for plants to access",
		PHTendency:     "Neutral to slightly alkaline (6.5-7.5)",
		SuitableCrops: []string{
			"Rice",
			"Wheat",
			"Cabbage",
			"Broccoli",
			"Brussels Sprouts",
		},
		ManagementTips: []string{
			"Add organic matter to improve structure and drainage",
			"Avoid working when too wet or dry",
			"Consider raised beds to improve drainage",
			"Apply gypsum to improve structure",
		},
	},
	{
		SoilType:       "Loamy",
		Texture:        "Medium texture, smooth and slightly sticky",
		WaterRetention: "Balanced - good drainage while retaining moisture",
		Fertility:      "High in nutrients and good at storing/releasing them",
		PHTendency:     "Usually neutral (6.0-7.0)",
		SuitableCrops: []string{
			"Most vegetables",
			"Corn",
			"Wheat",
			"Soybeans",
			"Most fruit trees",
		},
		ManagementTips: []string{
			"Maintain organic matter through mulching and compost",
			"Rotate crops to maintain fertility",
			"Regular but moderate watering",
		},
	},
	{
		SoilType:       "Sandy",
		Texture:        "Gritty, loose and single-grained",
		WaterRetention: "Low - drains quickly and dries out fast",
		Fertility:      "Low in nutrients which leach away easily",
		PHTendency:     "Often acidic (5.0-6.5)",
		SuitableCrops: []string{
			"Potatoes",
			"Carrots",
			"Radishes",
			"Lettuce",
			"Strawberries",
			"Watermelon",
		},
		ManagementTips: []string{
			"Add organic matter to improve water retention",
			"Use mulch to retain moisture",
			"More frequent but lighter watering",
			"May need more frequent fertilization",
		},
	},
	{
		SoilType:       "Silty",
		Texture:        "Smooth and floury when dry, slippery when wet",
		WaterRetention: "Good moisture retention",
		Fertility:      "Typically fertile with good nutrient content",
		PHTendency:     "Slightly acidic to neutral (6.0-7.0)",
		SuitableCrops: []string{
			"Shrubs",
			"Perennials",
			"Grass",
			"Wetland plants",
			"Most vegetables",
		},
		ManagementTips: []string{
			"Add organic matter to improve structure",
			"Take care not to compact when wet",
			"Use cover crops to prevent erosion",
			"Consider no-till or minimal tillage practices",
		},
	},
	{
		SoilType:       "Peaty",
		Texture:        "Dark, spongy and light",
		WaterRetention: "Very high water retention",
		Fertility:      "Low in nutrients, high in organic matter",
		PHTendency:     "Acidic (4.0-5.5)",
		SuitableCrops: []string{
			"Blueberries",
			"Rhododendrons",
			"Azaleas",
			"Cranberries",
			"Certain vegetables",
		},
		ManagementTips: []string{
			"May need drainage improvements",
			"Add lime to reduce acidity if needed",
			"Add balanced fertilizers",
			"Can dry out in summer and become water repellent",
		},
	},
	{
		SoilType:       "Chalky",
		Texture:        "Stony, chunky, and often light-colored",
		WaterRetention: "Low - drains quickly",
		Fertility:      "Low in nutrients, often lacks iron and manganese",
		PHTendency:     "Alkaline (7.5-8.5)",
		SuitableCrops: []string{
			"Spinach",
			"Beets",
			"Sweet Corn",
			"Cabbage family",
			"Some herbs",
		},
		ManagementTips: []string{
			"Add organic matter regularly",
			"Use acidifying fertilizers for acid-loving plants",
			"Add iron supplements if yellowing occurs (chlorosis)",
			"Choose drought-tolerant plants",
		},
	},
}
