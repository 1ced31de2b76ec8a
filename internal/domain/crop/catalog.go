package crop

// Static encoding tables and the class catalog for the crop recommendation
// model. The integer codes must stay byte-for-byte consistent with the
// label encoding used during offline training; changing them silently
// corrupts predictions.

// districtCodes maps district names to training-time label codes.
var districtCodes = map[string]float64{
	"Khartoum": 2,
	"ALfashir": 0,
	"Algazira": 1,
	"Shendi":   4,
	"Niyala":   3,
}

// soilColorCodes maps soil color names to training-time label codes.
var soilColorCodes = map[string]float64{
	"Black":         0,
	"Red":           5,
	"Medium Brown":  3,
	"Dark Brown":    1,
	"Light Brown":   2,
	"Reddish Brown": 6,
}

// classCatalog is the ordered label set the classifier predicts over.
var classCatalog = []string{
	"Cotton",
	"Ginger",
	"Gram",
	"Grapes",
	"Groundnut",
	"Jowar",
	"Maize",
	"Masoor",
	"Moong",
	"Rice",
	"Soybean",
	"Sugarcane",
	"Tur",
	"Turmeric",
	"Urad",
	"Wheat",
}

// NumClasses is the size of the crop class catalog.
const NumClasses = 16

// NumFeatures is the width of the encoded feature vector, including the
// vestigial training-index column.
const NumFeatures = 9

// Range is an inclusive numeric bound on an input field.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Ranges documents the valid bounds for each numeric input field.
var Ranges = map[string]Range{
	"nitrogen":    {Min: 20, Max: 150},
	"phosphorus":  {Min: 10, Max: 90},
	"potassium":   {Min: 5, Max: 150},
	"ph":          {Min: 0.5, Max: 8.5},
	"rainfall":    {Min: 300, Max: 1700},
	"temperature": {Min: 10, Max: 40},
}

// Districts returns the valid district names in stable catalog order.
func Districts() []string {
	return []string{"Khartoum", "ALfashir", "Algazira", "Shendi", "Niyala"}
}

// SoilColors returns the valid soil color names in stable catalog order.
func SoilColors() []string {
	return []string{"Black", "Red", "Medium Brown", "Dark Brown", "Light Brown", "Reddish Brown"}
}

// Crops returns the full class catalog.
func Crops() []string {
	out := make([]string, len(classCatalog))
	copy(out, classCatalog)
	return out
}

// ValidCrop reports whether name is in the class catalog.
func ValidCrop(name string) bool {
	for _, c := range classCatalog {
		if c == name {
			return true
		}
	}
	return false
}
