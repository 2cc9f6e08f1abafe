package domain

// Preferences 用户对衣橱的要求，MandatoryIDs 为目录中的位置
type Preferences struct {
	DesiredSize      int                `json:"desiredSize"`
	MandatoryIDs     []int              `json:"mandatoryIDs"`
	StylePreferences map[string]float64 `json:"stylePreferences"`
	Season           string             `json:"season"`
	FavoriteColors   []string           `json:"favoriteColors"`
}
