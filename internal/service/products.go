package service

import "github.com/sakif/krishi-mitra/internal/model"

// catalogProducts is the bundled product dataset. Keywords carry search
// synonyms including transliterated Hindi terms, so a farmer searching
// "beej" finds seeds and "khaad" finds fertilizer.
var catalogProducts = []model.Product{
	// Seeds & Saplings
	{
		ID:       "s001",
		Name:     "Hybrid Paddy Seeds (1kg)",
		Category: model.CategorySeeds,
		Price:    350,
		Image:    "https://m.media-amazon.com/images/I/81Voy6TeZtL.jpg",
		Keywords: []string{"rice", "paddy", "dhaan", "chawal", "seeds", "beej"},
	},
	{
		ID:       "s002",
		Name:     "High-Yield Wheat Seeds (1kg)",
		Category: model.CategorySeeds,
		Price:    150,
		Image:    "https://m.media-amazon.com/images/I/714xCG6CxKL._AC_UF1000,1000_QL80_.jpg",
		Keywords: []string{"wheat", "gehu", "seeds", "beej"},
	},
	{
		ID:       "s003",
		Name:     "Organic Vegetable Seeds Pack",
		Category: model.CategorySeeds,
		Price:    500,
		Image:    "https://organicbazar.net/cdn/shop/files/45_vegetable_seed_kit.jpg",
		Keywords: []string{"vegetable", "sabji", "tomato", "brinjal", "seeds", "beej", "organic"},
	},
	{
		ID:       "s004",
		Name:     "Maize/Corn Seeds (500g)",
		Category: model.CategorySeeds,
		Price:    220,
		Image:    "https://m.media-amazon.com/images/I/51+2yLB57CL._AC_UF1000,1000_QL80_.jpg",
		Keywords: []string{"maize", "corn", "makka", "bhutta", "seeds", "beej"},
	},

	// Fertilizers & Pesticides
	{
		ID:       "f001",
		Name:     "Urea Fertilizer (45kg Bag)",
		Category: model.CategoryFertilizers,
		Price:    266,
		Image:    "https://www.chinatiftonfertilizer.com/uploads/e7ee1dab.jpg",
		Keywords: []string{"urea", "fertilizer", "khaad", "nitrogen"},
	},
	{
		ID:       "f002",
		Name:     "DAP Fertilizer (50kg Bag)",
		Category: model.CategoryFertilizers,
		Price:    1350,
		Image:    "https://m.media-amazon.com/images/I/71xBf6iUG9L.jpg",
		Keywords: []string{"dap", "fertilizer", "khaad", "phosphate"},
	},
	{
		ID:       "f003",
		Name:     "Neem Oil Organic Pesticide (1L)",
		Category: model.CategoryFertilizers,
		Price:    800,
		Image:    "https://m.media-amazon.com/images/I/71qSKV9deLL._AC_UF1000,1000_QL80_.jpg",
		Keywords: []string{"neem oil", "pesticide", "organic", "insecticide", "kitnashak"},
	},
	{
		ID:       "f004",
		Name:     "Potash Fertilizer (25kg)",
		Category: model.CategoryFertilizers,
		Price:    950,
		Image:    "https://m.media-amazon.com/images/I/51BFHgilwNL._AC_UF1000,1000_QL80_.jpg",
		Keywords: []string{"potash", "fertilizer", "khaad", "mop"},
	},

	// Farming Tools
	{
		ID:       "t001",
		Name:     "Manual Hand Plough",
		Category: model.CategoryTools,
		Price:    2500,
		Image:    "https://images.meesho.com/images/products/350938631/aezgf_512.webp",
		Keywords: []string{"plough", "hal", "tool", "auzaar", "manual"},
	},
	{
		ID:       "t002",
		Name:     "Spade with Wooden Handle",
		Category: model.CategoryTools,
		Price:    450,
		Image:    "https://m.media-amazon.com/images/I/31iqrdQqF6L._AC_UF1000,1000_QL80_.jpg",
		Keywords: []string{"spade", "fawda", "shovel", "tool", "auzaar"},
	},
	{
		ID:       "t003",
		Name:     "Battery Powered Knapsack Sprayer (16L)",
		Category: model.CategoryTools,
		Price:    3000,
		Image:    "https://cdn.moglix.com/p/ub735gDIfXYX7-xxlarge.jpeg",
		Keywords: []string{"sprayer", "pump", "tool", "auzaar", "battery"},
	},
	{
		ID:       "t004",
		Name:     "Sickle for Harvesting",
		Category: model.CategoryTools,
		Price:    200,
		Image:    "https://tiimg.tistatic.com/fp/1/008/297/agriculture-sickle-562.jpg",
		Keywords: []string{"sickle", "darat", "hasuli", "tool", "auzaar", "harvesting"},
	},

	// Irrigation Systems
	{
		ID:       "i001",
		Name:     "Drip Irrigation Kit (for 1 acre)",
		Category: model.CategoryIrrigation,
		Price:    15000,
		Image:    "https://m.media-amazon.com/images/I/81qS+0iTxTL._AC_UF1000,1000_QL80_.jpg",
		Keywords: []string{"drip", "irrigation", "sichai", "system", "pipe"},
	},
	{
		ID:       "i002",
		Name:     "Sprinkler System (Set of 5)",
		Category: model.CategoryIrrigation,
		Price:    5000,
		Image:    "https://agri-route.com/cdn/shop/articles/wepik-2022513-9459.jpg",
		Keywords: []string{"sprinkler", "irrigation", "sichai", "system", "fawara"},
	},
	{
		ID:       "i003",
		Name:     "HDPE Lay Flat Pipe (100m)",
		Category: model.CategoryIrrigation,
		Price:    4000,
		Image:    "https://tiimg.tistatic.com/fp/1/007/377/hdpe-lay-flat-sprinkler-hose-580.jpg",
		Keywords: []string{"pipe", "irrigation", "sichai", "flat"},
	},
	{
		ID:       "i004",
		Name:     "1 HP Water Pump",
		Category: model.CategoryIrrigation,
		Price:    6500,
		Image:    "https://www.europumps.in/cdn/shop/files/04-Web.jpg",
		Keywords: []string{"water pump", "motor", "irrigation", "sichai"},
	},
}
