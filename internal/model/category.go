package model

import "sort"

// The fixed category lookup table. Maintained by the merchandising side;
// consumed read-only here to annotate reports and exports. Code "00" is the
// all-categories pseudo entry and is never assigned to a product.
const (
	CategoryAll     = "00"
	CategoryDefault = "99" // Consumables, the catch-all for unclassified imports
)

var Categories = map[string]string{
	"00": "All Categories", "01": "Lunch Box", "02": "Rice Roll", "03": "Rice Ball",
	"04": "Burger/Sandwich", "05": "Counter Fast Food", "06": "Fast Food Meal", "07": "Chilled Meal",
	"08": "Frozen Meal", "09": "Bakery", "10": "In-Store Cooking", "11": "Special Sales",
	"12": "Outsourced Cooking", "13": "Processed Meat", "14": "Fish Cake/Crab Stick", "15": "Tofu/Sprouts",
	"16": "Root Vegetables", "17": "Fruit Vegetables", "18": "Leafy Vegetables", "19": "Seasoning",
	"20": "Salad", "21": "Mushrooms", "22": "Kimchi", "23": "Seasoned Greens",
	"24": "Grains", "25": "Processed Vegetables", "26": "Domestic Fruit", "27": "Imported Fruit",
	"28": "Dried Fruit", "29": "Processed Fruit", "30": "Domestic Pork", "31": "Chicken/Eggs",
	"32": "Domestic Beef", "33": "Imported Meat", "34": "Processed Livestock", "35": "Fish",
	"36": "Seafood", "37": "Dried Seafood", "38": "Processed Seafood", "39": "Milk",
	"40": "Fermented Milk", "41": "Chilled Drinks", "42": "Cheese/Butter", "43": "Ice Cream",
	"44": "Ice", "45": "Coffee/Tea Drinks", "46": "Functional Drinks", "47": "Carbonated Drinks",
	"48": "Water/Sparkling Water", "49": "Juice", "50": "Beer", "51": "Soju/Traditional Liquor",
	"52": "Spirits/Wine", "53": "Snacks", "54": "Cookies/Biscuits", "55": "Candy/Gum",
	"56": "Chocolate", "57": "Bar Snacks", "58": "Noodles", "59": "Instant Food",
	"60": "Coffee/Tea", "61": "Condiments", "62": "Canned Food", "63": "Cereal/Baby Food",
	"64": "Cooking Oil", "65": "Tobacco", "66": "Service Items", "67": "Personal Hygiene",
	"68": "Medicine/Medical", "69": "Health", "70": "Hair/Body Care", "71": "Cosmetics",
	"72": "Beauty Accessories", "73": "Color Cosmetics (unused)", "74": "Body Products (unused)", "75": "Sanitary/Tissue",
	"76": "Household Goods", "77": "Culture/Electronics", "78": "Housewares", "79": "Clothing",
	"80": "Pet Supplies", "81": "Korean Food", "82": "Asian Food", "83": "Western Food",
	"88": "Special Sales/Commission", "89": "Bundle/Set Non-Food", "90": "Online Liquor", "91": "Commission Items",
	"93": "Other Business", "99": "Consumables",
}

// CategoryLabel resolves a category code to its display label, falling back
// to "Other" for codes outside the table.
func CategoryLabel(code string) string {
	if label, ok := Categories[code]; ok {
		return label
	}
	return "Other"
}

// IsAssignableCategory reports whether code can be stored on a product.
func IsAssignableCategory(code string) bool {
	if code == CategoryAll {
		return false
	}
	_, ok := Categories[code]
	return ok
}

// CategoryEntry is one row of the lookup table as served to clients.
type CategoryEntry struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// CategoryList returns the full lookup table sorted by code.
func CategoryList() []CategoryEntry {
	entries := make([]CategoryEntry, 0, len(Categories))
	for code, label := range Categories {
		entries = append(entries, CategoryEntry{Code: code, Label: label})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Code < entries[j].Code })
	return entries
}
