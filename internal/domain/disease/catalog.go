package disease

import "strings"

// classCatalog is the ordered 38-class label set of the plant disease
// model. Labels follow the PlantVillage "Plant___Condition" naming; the
// order must match the training-time class indices exactly.
var classCatalog = []string{
	"Apple___Apple_scab",
	"Apple___Black_rot",
	"Apple___Cedar_apple_rust",
	"Apple___healthy",
	"Blueberry___healthy",
	"Cherry_(including_sour)___Powdery_mildew",
	"Cherry_(including_sour)___healthy",
	"Corn_(maize)___Cercospora_leaf_spot Gray_leaf_spot",
	"Corn_(maize)___Common_rust_",
	"Corn_(maize)___Northern_Leaf_Blight",
	"Corn_(maize)___healthy",
	"Grape___Black_rot",
	"Grape___Esca_(Black_Measles)",
	"Grape___Leaf_blight_(Isariopsis_Leaf_Spot)",
	"Grape___healthy",
	"Orange___Haunglongbing_(Citrus_greening)",
	"Peach___Bacterial_spot",
	"Peach___healthy",
	"Pepper,_bell___Bacterial_spot",
	"Pepper,_bell___healthy",
	"Potato___Early_blight",
	"Potato___Late_blight",
	"Potato___healthy",
	"Raspberry___healthy",
	"Soybean___healthy",
	"Squash___Powdery_mildew",
	"Strawberry___Leaf_scorch",
	"Strawberry___healthy",
	"Tomato___Bacterial_spot",
	"Tomato___Early_blight",
	"Tomato___Late_blight",
	"Tomato___Leaf_Mold",
	"Tomato___Septoria_leaf_spot",
	"Tomato___Spider_mites Two-spotted_spider_mite",
	"Tomato___Target_Spot",
	"Tomato___Tomato_Yellow_Leaf_Curl_Virus",
	"Tomato___Tomato_mosaic_virus",
	"Tomato___healthy",
}

// NumClasses is the size of the disease class catalog.
const NumClasses = 38

// labelSeparator splits a raw class label into plant and condition.
const labelSeparator = "___"

// ClassInfo is the human-readable form of one catalog entry.
type ClassInfo struct {
	Raw       string `json:"raw"`
	Plant     string `json:"plant"`
	Condition string `json:"condition"`
	IsHealthy bool   `json:"is_healthy"`
}

// Classes returns the full catalog in human-readable form.
func Classes() []ClassInfo {
	out := make([]ClassInfo, len(classCatalog))
	for i, raw := range classCatalog {
		plant, condition := splitLabel(raw)
		out[i] = ClassInfo{
			Raw:       raw,
			Plant:     plant,
			Condition: condition,
			IsHealthy: isHealthy(raw),
		}
	}
	return out
}

// splitLabel splits a raw label into (plant, condition), replacing
// underscores with spaces.
func splitLabel(raw string) (string, string) {
	plant, condition, _ := strings.Cut(raw, labelSeparator)
	return strings.ReplaceAll(plant, "_", " "), strings.ReplaceAll(condition, "_", " ")
}

// isHealthy reports whether the label names a healthy plant. Any label
// containing the substring "healthy" counts.
func isHealthy(raw string) bool {
	return strings.Contains(strings.ToLower(raw), "healthy")
}
