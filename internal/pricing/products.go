package pricing

// Product is one entry in the master product catalog (the golden record used
// to group price observations of the "same" product across receipts).
type Product struct {
	ID             string
	NormalizedName string
	Category       string
	Unit           string
	AliasesFR      []string
	AliasesEN      []string
}

// masterProducts is the built-in catalog covering the staples of DRC grocery
// receipts. Entries are keyed by aliases in both French and English.
var masterProducts = []Product{
	{ID: "PROD_001", NormalizedName: "plantain", Category: "Fruits", Unit: "kg", AliasesFR: []string{"banane plantain", "plantain mur"}, AliasesEN: []string{"plantain", "cooking banana"}},
	{ID: "PROD_002", NormalizedName: "banana", Category: "Fruits", Unit: "kg", AliasesFR: []string{"banane", "banane douce"}, AliasesEN: []string{"banana", "sweet banana"}},
	{ID: "PROD_005", NormalizedName: "mango", Category: "Fruits", Unit: "kg", AliasesFR: []string{"mangue", "mangues"}, AliasesEN: []string{"mango", "mangoes"}},
	{ID: "PROD_008", NormalizedName: "avocado", Category: "Fruits", Unit: "piece", AliasesFR: []string{"avocat", "avocats"}, AliasesEN: []string{"avocado", "avocados"}},
	{ID: "PROD_020", NormalizedName: "tomato", Category: "Vegetables", Unit: "kg", AliasesFR: []string{"tomate", "tomates"}, AliasesEN: []string{"tomato", "tomatoes"}},
	{ID: "PROD_021", NormalizedName: "onion", Category: "Vegetables", Unit: "kg", AliasesFR: []string{"oignon", "oignons"}, AliasesEN: []string{"onion", "onions"}},
	{ID: "PROD_024", NormalizedName: "potato", Category: "Vegetables", Unit: "kg", AliasesFR: []string{"pomme de terre", "patate"}, AliasesEN: []string{"potato", "potatoes"}},
	{ID: "PROD_025", NormalizedName: "cassava", Category: "Vegetables", Unit: "kg", AliasesFR: []string{"manioc", "kwanga"}, AliasesEN: []string{"cassava", "manioc"}},
	{ID: "PROD_028", NormalizedName: "pepper", Category: "Vegetables", Unit: "kg", AliasesFR: []string{"poivre", "piment", "poivron"}, AliasesEN: []string{"pepper", "bell pepper", "chili"}},
	{ID: "PROD_030", NormalizedName: "okra", Category: "Vegetables", Unit: "kg", AliasesFR: []string{"gombo", "gombos"}, AliasesEN: []string{"okra", "lady finger"}},
	{ID: "PROD_040", NormalizedName: "chicken", Category: "Proteins", Unit: "kg", AliasesFR: []string{"poulet", "poulets"}, AliasesEN: []string{"chicken"}},
	{ID: "PROD_041", NormalizedName: "beef", Category: "Proteins", Unit: "kg", AliasesFR: []string{"boeuf", "viande de boeuf"}, AliasesEN: []string{"beef"}},
	{ID: "PROD_043", NormalizedName: "fish", Category: "Proteins", Unit: "kg", AliasesFR: []string{"poisson", "poissons"}, AliasesEN: []string{"fish"}},
	{ID: "PROD_044", NormalizedName: "egg", Category: "Proteins", Unit: "piece", AliasesFR: []string{"oeuf", "oeufs"}, AliasesEN: []string{"egg", "eggs"}},
	{ID: "PROD_045", NormalizedName: "tilapia", Category: "Proteins", Unit: "kg", AliasesFR: []string{"tilapia"}, AliasesEN: []string{"tilapia"}},
	{ID: "PROD_046", NormalizedName: "sardine", Category: "Proteins", Unit: "can", AliasesFR: []string{"sardine", "sardines"}, AliasesEN: []string{"sardine", "sardines"}},
	{ID: "PROD_050", NormalizedName: "milk", Category: "Dairy", Unit: "L", AliasesFR: []string{"lait"}, AliasesEN: []string{"milk"}},
	{ID: "PROD_051", NormalizedName: "butter", Category: "Dairy", Unit: "g", AliasesFR: []string{"beurre"}, AliasesEN: []string{"butter"}},
	{ID: "PROD_060", NormalizedName: "rice", Category: "Grains", Unit: "kg", AliasesFR: []string{"riz"}, AliasesEN: []string{"rice"}},
	{ID: "PROD_061", NormalizedName: "flour", Category: "Grains", Unit: "kg", AliasesFR: []string{"farine"}, AliasesEN: []string{"flour"}},
	{ID: "PROD_062", NormalizedName: "bread", Category: "Grains", Unit: "piece", AliasesFR: []string{"pain"}, AliasesEN: []string{"bread"}},
	{ID: "PROD_063", NormalizedName: "pasta", Category: "Grains", Unit: "kg", AliasesFR: []string{"pates", "spaghetti", "macaroni"}, AliasesEN: []string{"pasta", "spaghetti", "macaroni"}},
	{ID: "PROD_065", NormalizedName: "beans", Category: "Grains", Unit: "kg", AliasesFR: []string{"haricots", "haricot"}, AliasesEN: []string{"beans", "kidney beans"}},
	{ID: "PROD_066", NormalizedName: "peanuts", Category: "Grains", Unit: "kg", AliasesFR: []string{"arachides", "cacahuetes"}, AliasesEN: []string{"peanuts", "groundnuts"}},
	{ID: "PROD_070", NormalizedName: "palm oil", Category: "Oils", Unit: "L", AliasesFR: []string{"huile de palme", "huile rouge"}, AliasesEN: []string{"palm oil", "red oil"}},
	{ID: "PROD_071", NormalizedName: "vegetable oil", Category: "Oils", Unit: "L", AliasesFR: []string{"huile vegetale"}, AliasesEN: []string{"vegetable oil"}},
	{ID: "PROD_080", NormalizedName: "sugar", Category: "Pantry", Unit: "kg", AliasesFR: []string{"sucre"}, AliasesEN: []string{"sugar"}},
	{ID: "PROD_081", NormalizedName: "salt", Category: "Pantry", Unit: "kg", AliasesFR: []string{"sel"}, AliasesEN: []string{"salt"}},
	{ID: "PROD_082", NormalizedName: "tomato paste", Category: "Pantry", Unit: "can", AliasesFR: []string{"concentre tomate", "pate tomate"}, AliasesEN: []string{"tomato paste"}},
	{ID: "PROD_090", NormalizedName: "mineral water", Category: "Drinks", Unit: "L", AliasesFR: []string{"eau minerale"}, AliasesEN: []string{"mineral water", "water"}},
	{ID: "PROD_091", NormalizedName: "soda", Category: "Drinks", Unit: "bottle", AliasesFR: []string{"boisson gazeuse"}, AliasesEN: []string{"soda", "soft drink"}},
	{ID: "PROD_100", NormalizedName: "soap", Category: "Household", Unit: "piece", AliasesFR: []string{"savon"}, AliasesEN: []string{"soap"}},
	{ID: "PROD_101", NormalizedName: "detergent", Category: "Household", Unit: "kg", AliasesFR: []string{"detergent", "lessive"}, AliasesEN: []string{"detergent", "washing powder"}},
	{ID: "PROD_102", NormalizedName: "toilet paper", Category: "Household", Unit: "pack", AliasesFR: []string{"papier toilette"}, AliasesEN: []string{"toilet paper"}},
	{ID: "PROD_103", NormalizedName: "diapers", Category: "Household", Unit: "pack", AliasesFR: []string{"couches"}, AliasesEN: []string{"diapers", "nappies"}},
}

// abbreviationMap expands receipt shorthand to full product phrases, covering
// both the French and English abbreviations seen on DRC tills, plus brand
// names that map to a generic product.
var abbreviationMap = map[string]string{
	// French
	"hle plm":  "huile de palme",
	"hle vgt":  "huile vegetale",
	"fne":      "farine",
	"scr":      "sucre",
	"lt":       "lait",
	"eau min":  "eau minerale",
	"svn":      "savon",
	"dtrgt":    "detergent",
	"cch":      "couches",
	"pp tlt":   "papier toilette",
	"conc tom": "concentre tomate",
	"pte tom":  "pate tomate",
	// English
	"veg oil": "vegetable oil",
	"plm oil": "palm oil",
	"tom pst": "tomato paste",
	"grndnts": "groundnuts",
	"pnts":    "peanuts",
	"chkn":    "chicken",
	"fsh":     "fish",
	"wtr":     "water",
	"min wtr": "mineral water",
	"tlt ppr": "toilet paper",
	// Brands that resolve to a generic product
	"fanta":   "soda",
	"coca":    "soda",
	"sprite":  "soda",
	"omo":     "detergent",
	"ariel":   "detergent",
	"pampers": "couches",
	"huggies": "couches",
}

// noiseWords are dropped during cleaning: articles, prepositions and packaging
// terms in French and English.
var noiseWords = map[string]bool{
	"le": true, "la": true, "les": true, "un": true, "une": true, "des": true,
	"du": true, "de": true, "au": true, "aux": true,
	"the": true, "an": true, "of": true, "to": true, "for": true, "with": true,
	"pack": true, "paquet": true, "sachet": true, "boite": true, "box": true,
	"piece": true, "pcs": true, "kg": true, "ml": true,
}
