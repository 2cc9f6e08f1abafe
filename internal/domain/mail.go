package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

const MailTypeWardrobeReady = "wardrobe_ready"

type WardrobeReadyMailData struct {
	RunID       string                    `json:"runID"`
	Status      string                    `json:"status"`
	Generations int                       `json:"generations"`
	Wardrobes   []WardrobeReadyMailOption `json:"wardrobes"`
}

type WardrobeReadyMailOption struct {
	Rank          int      `json:"rank"`
	Fitness       float64  `json:"fitness"`
	OutfitQuality float64  `json:"outfitQuality"`
	GarmentNames  []string `json:"garmentNames"`
	OutfitCount   int      `json:"outfitCount"`
}
